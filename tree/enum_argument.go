package tree

import (
	"strings"

	"github.com/shyptr/gqt/editor"
)

// EnumArgument is an argument whose type is ENUM: like ScalarArgument it
// edits a single literal value, but the value is constrained to the
// schema's enumerated member names and the editor shows a completion hint
// for the typed prefix.
type EnumArgument struct {
	argumentBase

	name   string
	values []string
	value  string
	pos    int
}

func newEnumArgument(name, typ, desc string, values []string, optional, hasDefault bool, defaultValue string, state *State) *EnumArgument {
	a := &EnumArgument{name: name, values: values, value: defaultValue}
	a.typ = typ
	a.desc = desc
	a.isOptional = optional
	a.hasDefault = hasDefault
	a.state = state
	a.initSymbol()
	return a
}

func (a *EnumArgument) Kind() Kind         { return KindEnumArgument }
func (a *EnumArgument) NodeName() string   { return a.name }
func (a *EnumArgument) Values() []string   { return a.values }
func (a *EnumArgument) Value() string      { return a.value }
func (a *EnumArgument) Pos() int           { return a.pos }

func (a *EnumArgument) SetValue(v string) {
	a.value = v
	a.pos = len([]rune(v))
}

// IsValidValue reports whether the current text matches a member of the
// enum exactly; the serializer refuses to emit anything else.
func (a *EnumArgument) IsValidValue() bool {
	for _, v := range a.values {
		if v == a.value {
			return true
		}
	}
	return false
}

// hint returns the remainder of the first enum member whose name starts
// with the current value, for the completion display; empty if the
// current value is empty, already complete, or matches nothing.
func (a *EnumArgument) hint() string {
	if a.value == "" {
		return ""
	}
	for _, v := range a.values {
		if len(v) > len(a.value) && strings.HasPrefix(v, a.value) {
			return v[len(a.value):]
		}
	}
	return ""
}

func (a *EnumArgument) Select() { a.toggleSymbol() }

func (a *EnumArgument) Key(k string) bool {
	if k == "v" && !(a.state != nil && a.state.CursorAtInputField) {
		return a.toggleVariable()
	}
	if a.state == nil || !a.state.CursorAtInputField {
		return false
	}
	cmd, insert := decodeEditKey(k)
	if cmd == editor.CommandNone {
		return false
	}
	a.value, a.pos = editor.Edit(a.value, a.pos, cmd, insert)
	return true
}

func (a *EnumArgument) KeyLeft() bool {
	if a.state == nil || !a.state.CursorAtInputField {
		return false
	}
	_, a.pos = editor.Edit(a.value, a.pos, editor.CommandMoveLeft, "")
	return true
}

func (a *EnumArgument) KeyRight() bool {
	if a.state == nil || !a.state.CursorAtInputField {
		return false
	}
	_, a.pos = editor.Edit(a.value, a.pos, editor.CommandMoveRight, "")
	return true
}

func (a *EnumArgument) Draw(s Screen, y, x int, cur *Cursor) int {
	s.WriteString(y, x, string(a.symbol), StyleGlyph)
	label := a.name + ": " + a.typ
	s.WriteString(y, x+2, label, StyleNormal)
	valX := x + 2 + len(label) + 1
	if a.isVariable {
		s.WriteString(y, valX, "$"+a.name, StyleValue)
	} else {
		s.WriteString(y, valX, a.value, StyleValue)
		if h := a.hint(); h != "" {
			s.WriteString(y, valX+len([]rune(a.value)), h, StyleHint)
		}
	}
	if a.state != nil && a.state.CursorAtInputField {
		cur.Y, cur.X = y, valX+a.pos
	}
	return y + 1
}

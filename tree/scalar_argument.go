package tree

import "github.com/shyptr/gqt/editor"

// ScalarArgument is an argument whose type is SCALAR (String, Int, Float,
// Boolean, ID, or a custom scalar): a name, a toggle symbol, and a single
// editable literal value, or a $variable reference in place of one.
type ScalarArgument struct {
	argumentBase

	name       string
	scalarName string // "String", "Int", "Float", "Boolean", "ID", or custom
	value      string
	pos        int
}

func newScalarArgument(name, typ, scalarName, desc string, optional, hasDefault bool, defaultValue string, state *State) *ScalarArgument {
	a := &ScalarArgument{name: name, scalarName: scalarName, value: defaultValue}
	a.typ = typ
	a.desc = desc
	a.isOptional = optional
	a.hasDefault = hasDefault
	a.state = state
	a.initSymbol()
	return a
}

func (a *ScalarArgument) Kind() Kind       { return KindScalarArgument }
func (a *ScalarArgument) NodeName() string { return a.name }
func (a *ScalarArgument) ScalarName() string { return a.scalarName }
func (a *ScalarArgument) Value() string      { return a.value }
func (a *ScalarArgument) Pos() int           { return a.pos }

func (a *ScalarArgument) SetValue(v string) {
	a.value = v
	a.pos = len([]rune(v))
}

func (a *ScalarArgument) Select() { a.toggleSymbol() }

func (a *ScalarArgument) Key(k string) bool {
	if k == "v" && !(a.state != nil && a.state.CursorAtInputField) {
		return a.toggleVariable()
	}
	if a.state == nil || !a.state.CursorAtInputField {
		return false
	}
	return a.editValue(k)
}

// editValue maps a decoded key token to an editor.Command and applies it.
// Single-rune tokens that aren't one of the named control keys are treated
// as literal insertions, including the single-character "v" itself (that
// is exactly why the variable toggle above is declined while editing).
func (a *ScalarArgument) editValue(k string) bool {
	cmd, insert := decodeEditKey(k)
	if cmd == editor.CommandNone {
		return false
	}
	a.value, a.pos = editor.Edit(a.value, a.pos, cmd, insert)
	return true
}

func (a *ScalarArgument) KeyLeft() bool {
	if a.state == nil || !a.state.CursorAtInputField {
		return false
	}
	_, a.pos = editor.Edit(a.value, a.pos, editor.CommandMoveLeft, "")
	return true
}

func (a *ScalarArgument) KeyRight() bool {
	if a.state == nil || !a.state.CursorAtInputField {
		return false
	}
	_, a.pos = editor.Edit(a.value, a.pos, editor.CommandMoveRight, "")
	return true
}

func (a *ScalarArgument) Draw(s Screen, y, x int, cur *Cursor) int {
	s.WriteString(y, x, string(a.symbol), StyleGlyph)
	label := a.name + ": " + a.typ
	s.WriteString(y, x+2, label, StyleNormal)
	valX := x + 2 + len(label) + 1
	if a.isVariable {
		s.WriteString(y, valX, "$"+a.name, StyleValue)
	} else {
		s.WriteString(y, valX, a.value, StyleValue)
	}
	if a.state != nil && a.state.CursorAtInputField {
		cur.Y, cur.X = y, valX+a.pos
	}
	return y + 1
}

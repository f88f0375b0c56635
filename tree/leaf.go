package tree

// Leaf is a selectable field whose type is SCALAR or ENUM: it has no
// sub-selections, so space toggles whether it is included in the emitted
// query at all, rather than any expansion. It may still take arguments;
// right-arrow reveals those independently of whether the field is
// selected, so a field's arguments can be set up before switching it on.
type Leaf struct {
	base

	name         string
	args         *ObjectFields
	deprecated   bool
	selected     bool
	argsExpanded bool
}

func newLeaf(name, typ, desc string, buildArgs func() []Node) *Leaf {
	l := &Leaf{name: name}
	l.typ = typ
	l.desc = desc
	l.args = newObjectFields(l, buildArgs)
	return l
}

func (l *Leaf) Kind() Kind       { return KindLeaf }
func (l *Leaf) NodeName() string { return l.name }
func (l *Leaf) Deprecated() bool { return l.deprecated }
func (l *Leaf) SetDeprecated(reason string) {
	l.deprecated = reason != ""
}

func (l *Leaf) Arguments() *ObjectFields { return l.args }

// Selected reports whether this field is included in the emitted query.
func (l *Leaf) Selected() bool { return l.selected }

// IsExpandable reports whether this field takes any arguments at all.
// Checking Len() forces materialization of the argument list, but building
// it never descends into selection sets (and an input object argument
// defers its own fields in turn), so this never triggers the lazy-cycle
// concern.
func (l *Leaf) IsExpandable() bool { return l.args.Len() > 0 }
func (l *Leaf) IsExpanded() bool   { return l.argsExpanded }

func (l *Leaf) Child() Node {
	if !l.argsExpanded {
		return nil
	}
	return l.args.First()
}

func (l *Leaf) Expand() {
	if l.IsExpandable() {
		l.argsExpanded = true
	}
}

func (l *Leaf) Collapse() { l.argsExpanded = false }

func (l *Leaf) Select() { l.selected = !l.selected }

func (l *Leaf) Draw(s Screen, y, x int, cur *Cursor) int {
	style := StyleNormal
	if l.deprecated {
		style = StyleDim
	}
	symbol := SymbolUnselected
	if l.selected {
		symbol = SymbolSelected
	}
	s.WriteString(y, x, string(symbol), StyleGlyph)
	x += 2
	if l.IsExpandable() {
		glyph := "▶"
		if l.argsExpanded {
			glyph = "▼"
		}
		s.WriteString(y, x, glyph, StyleGlyph)
		x += 2
	}
	label := l.name
	if l.typ != "" {
		label += ": " + l.typ
	}
	s.WriteString(y, x, label, style)
	return y + 1
}

package tree

// InputArgument is an argument whose type is INPUT_OBJECT: its value is a
// nested object literal built from its own child arguments rather than a
// single scalar. Its selection-symbol IS its expand/collapse state: an
// optional InputArgument shows its fields only while selected (■); a
// required one (●) is permanently expanded, since it will always appear in
// the emitted query. Switching it to a variable reference hides the
// nested fields entirely, since the whole argument becomes "$name".
type InputArgument struct {
	argumentBase

	name   string
	fields *ObjectFields
}

func newInputArgument(name, typ, desc string, buildFields func() []Node, optional, hasDefault bool, state *State) *InputArgument {
	a := &InputArgument{name: name}
	a.typ = typ
	a.desc = desc
	a.isOptional = optional
	a.hasDefault = hasDefault
	a.state = state
	a.fields = newObjectFields(a, buildFields)
	a.initSymbol()
	return a
}

func (a *InputArgument) Kind() Kind         { return KindInputArgument }
func (a *InputArgument) NodeName() string   { return a.name }
func (a *InputArgument) Fields() *ObjectFields { return a.fields }

func (a *InputArgument) IsExpandable() bool {
	return !a.isVariable && a.fields.Len() > 0
}

func (a *InputArgument) IsExpanded() bool {
	if a.isVariable {
		return false
	}
	if !a.canToggle() {
		return true
	}
	return a.symbol == SymbolSelected
}

func (a *InputArgument) Child() Node {
	if !a.IsExpanded() {
		return nil
	}
	return a.fields.First()
}

func (a *InputArgument) Expand() {
	if a.canToggle() {
		a.symbol = SymbolSelected
	}
}

func (a *InputArgument) Collapse() {
	if a.canToggle() {
		a.symbol = SymbolUnselected
	}
}

func (a *InputArgument) Select() { a.toggleSymbol() }

func (a *InputArgument) Key(k string) bool {
	if k == "v" {
		return a.toggleVariable()
	}
	return false
}

func (a *InputArgument) Draw(s Screen, y, x int, cur *Cursor) int {
	if a.IsExpanded() {
		s.WriteString(y, x, "▼", StyleGlyph)
	} else {
		s.WriteString(y, x, "▶", StyleGlyph)
	}
	s.WriteString(y, x+2, string(a.symbol), StyleGlyph)
	label := a.name + ": " + a.typ
	if a.isVariable {
		label += " = $" + a.name
	}
	s.WriteString(y, x+4, label, StyleNormal)
	return y + 1
}

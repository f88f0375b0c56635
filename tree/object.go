package tree

// Object is a selectable field whose type is OBJECT, INTERFACE, or UNION,
// or the synthetic root that owns the top-level query/mutation fields. Its
// children are the field's argument nodes first, followed by its selection
// nodes (Object/Leaf); the root has selection nodes only.
type Object struct {
	base

	name       string
	fields     *ObjectFields
	deprecated bool
	expanded   bool

	// isRoot marks the synthetic top-of-tree node; it is always expanded
	// and is never itself addressable as a cursor (invariant: the root is
	// never the cursor).
	isRoot bool

	// isUnion marks a field whose selection set must consist entirely of
	// "... on Type { ... }" fragments (plus __typename); its direct
	// fields are the union's member-type pseudo-fields rather than real
	// selections.
	isUnion bool

	// numberOfQueryFields is only meaningful on the root: it is the index
	// at which mutation fields begin among fields.All(), letting Tree.Draw
	// place a "Mutation" header partway down the root's children and
	// query.Build pick the operation half.
	numberOfQueryFields int

	// implementorsOffset is only meaningful on an INTERFACE field: the
	// index at which the per-implementor pseudo-fields begin among
	// fields.All(). The serializer does not consult it; it recognizes
	// fragment fields by their "... on " name prefix.
	implementorsOffset int
}

func newObject(name, typ, desc string, isUnion bool, build func() []Node) *Object {
	o := &Object{name: name, isUnion: isUnion, implementorsOffset: -1}
	o.typ = typ
	o.desc = desc
	o.fields = newObjectFields(o, build)
	return o
}

func newRootObject(build func() []Node, numberOfQueryFields int) *Object {
	o := &Object{name: "", isRoot: true, expanded: true, numberOfQueryFields: numberOfQueryFields, implementorsOffset: -1}
	o.fields = newObjectFields(o, build)
	return o
}

func (o *Object) Kind() Kind        { return KindObject }
func (o *Object) NodeName() string  { return o.name }
func (o *Object) IsRoot() bool      { return o.isRoot }
func (o *Object) IsUnion() bool     { return o.isUnion }
func (o *Object) Deprecated() bool  { return o.deprecated }
func (o *Object) SetDeprecated(reason string) {
	o.deprecated = reason != ""
}

// NumberOfQueryFields is valid only when IsRoot(); it is the split point
// between query fields and mutation fields among Fields().All().
func (o *Object) NumberOfQueryFields() int { return o.numberOfQueryFields }

// ImplementorsOffset is valid only for an INTERFACE field; -1 means the
// field is not an interface field. An interface with no possible types
// still gets an offset, equal to its number of arguments plus fields.
func (o *Object) ImplementorsOffset() int      { return o.implementorsOffset }
func (o *Object) setImplementorsOffset(i int)  { o.implementorsOffset = i }

func (o *Object) Fields() *ObjectFields { return o.fields }

func (o *Object) IsExpandable() bool { return true }
func (o *Object) IsExpanded() bool   { return o.expanded }

func (o *Object) Child() Node {
	if !o.expanded {
		return nil
	}
	return o.fields.First()
}

func (o *Object) Expand() {
	if o.isRoot {
		return
	}
	o.expanded = true
}

func (o *Object) Collapse() {
	if o.isRoot {
		return
	}
	o.expanded = false
}

// Select toggles expansion; the root never reacts to it (it has no glyph
// and is never the cursor).
func (o *Object) Select() {
	if o.isRoot {
		return
	}
	if o.expanded {
		o.Collapse()
	} else {
		o.Expand()
	}
}

// Draw renders "▼ name: Type" / "▶ name: Type", dimmed if deprecated. The
// root draws nothing of its own; Tree.Draw writes the "Mutation" section
// header, using NumberOfQueryFields as the split point.
func (o *Object) Draw(s Screen, y, x int, cur *Cursor) int {
	if o.isRoot {
		return y
	}
	glyph := "▶"
	if o.expanded {
		glyph = "▼"
	}
	style := StyleNormal
	if o.deprecated {
		style = StyleDim
	}
	s.WriteString(y, x, glyph, StyleGlyph)
	label := o.name
	if o.typ != "" {
		label += ": " + o.typ
	}
	s.WriteString(y, x+2, label, style)
	return y + 1
}

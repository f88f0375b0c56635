package tree

// linkSiblings back-fills parent/next/prev on a freshly materialized (or
// resized) list of nodes. Used by ObjectFields on first access and by
// ListArgument every time its item slice is grown or shrunk.
func linkSiblings(nodes []Node, owner Node) {
	for i, n := range nodes {
		n.setParent(owner)
		if i > 0 {
			nodes[i-1].setNext(n)
			n.setPrev(nodes[i-1])
		} else {
			n.setPrev(nil)
		}
		if i == len(nodes)-1 {
			n.setNext(nil)
		}
	}
}

// ObjectFields owns the lazily materialized, doubly linked list of an
// Object/Leaf/InputArgument's children. The build closure is supplied by
// the tree builder and runs at most once, which is what lets a
// self-referential schema (type Foo { foo: Foo }) be built without
// unbounded recursion: a field's own sub-fields aren't realized until
// something actually steps into them.
type ObjectFields struct {
	owner Node
	build func() []Node
	nodes []Node
	ready bool
}

func newObjectFields(owner Node, build func() []Node) *ObjectFields {
	return &ObjectFields{owner: owner, build: build}
}

// staticFields wraps an already-built slice; used where there is nothing to
// defer (the synthetic root, an empty argument list).
func staticFields(owner Node, nodes []Node) *ObjectFields {
	f := &ObjectFields{owner: owner, nodes: nodes, ready: true}
	linkSiblings(f.nodes, owner)
	return f
}

func (f *ObjectFields) ensure() []Node {
	if !f.ready {
		f.nodes = f.build()
		linkSiblings(f.nodes, f.owner)
		f.ready = true
	}
	return f.nodes
}

// Materialized reports whether the children have been realized yet, without
// forcing materialization. Persistence uses this to avoid waking up
// untouched subtrees just to find they hold no state worth saving.
func (f *ObjectFields) Materialized() bool { return f.ready }

func (f *ObjectFields) Len() int    { return len(f.ensure()) }
func (f *ObjectFields) All() []Node { return f.ensure() }

func (f *ObjectFields) At(i int) Node {
	all := f.ensure()
	if i < 0 || i >= len(all) {
		return nil
	}
	return all[i]
}

func (f *ObjectFields) First() Node {
	all := f.ensure()
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

func (f *ObjectFields) Last() Node {
	all := f.ensure()
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

// ByName looks up a materialized child by name; used by persistence restore
// to resolve a saved path against the rebuilt schema.
func (f *ObjectFields) ByName(name string) Node {
	for _, n := range f.ensure() {
		if n.NodeName() == name {
			return n
		}
	}
	return nil
}

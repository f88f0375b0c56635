package tree

// Tree is the single-cursor navigation state machine over a Build'd node
// graph: one root Object, one State shared by every argument, and one
// cursor Node that every key event moves or mutates.
type Tree struct {
	root   *Object
	state  *State
	cursor Node
}

func newTree(root *Object, state *State) *Tree {
	t := &Tree{root: root, state: state}
	t.cursor = root.fields.First()
	return t
}

// Root is the synthetic node owning the top-level query/mutation fields;
// never the cursor, but what persistence and the serializer walk from.
func (t *Tree) Root() *Object { return t.root }

// Cursor is the node every key event not otherwise routed (tab, arrows,
// space, everything Key doesn't consume) acts on.
func (t *Tree) Cursor() Node { return t.cursor }

func (t *Tree) State() *State { return t.state }

// SetCursor places the cursor at n (the ui controller uses it to jump to
// an error's offending node); a nil n leaves the cursor where it was.
func (t *Tree) SetCursor(n Node) {
	if n != nil {
		t.cursor = n
	}
}

func (t *Tree) CursorType() string        { return t.cursor.TypeString() }
func (t *Tree) CursorDescription() string { return t.cursor.Description() }

// KeyUp/KeyDown move the cursor to the previous/next node in document
// order among currently-visible (expanded) nodes; they no-op at either
// end of the tree.
func (t *Tree) KeyUp() {
	if p := t.prevVisible(t.cursor); p != nil {
		t.cursor = p
	}
}

func (t *Tree) KeyDown() {
	if n := t.nextVisible(t.cursor); n != nil {
		t.cursor = n
	}
}

// KeyLeft gives the cursor node first refusal (caret motion while
// editing); failing that, it collapses an expanded cursor, or else
// ascends to its parent. It never ascends past a top-level field into the
// unaddressable root.
func (t *Tree) KeyLeft() {
	if t.cursor.KeyLeft() {
		return
	}
	if t.cursor.IsExpanded() {
		t.cursor.Collapse()
		return
	}
	p := t.cursor.Parent()
	if p == nil || t.isRootNode(p) {
		return
	}
	t.cursor = p
}

// KeyRight gives the cursor node first refusal (caret motion); failing
// that, it expands a collapsed-but-expandable cursor, or steps into the
// already-expanded cursor's first child.
func (t *Tree) KeyRight() {
	if t.cursor.KeyRight() {
		return
	}
	if t.cursor.IsExpandable() && !t.cursor.IsExpanded() {
		t.cursor.Expand()
		return
	}
	if t.cursor.IsExpanded() {
		if c := t.cursor.Child(); c != nil {
			t.cursor = c
		}
	}
}

func (t *Tree) GoToBegin() {
	if f := t.root.fields.First(); f != nil {
		t.cursor = f
	}
}

func (t *Tree) GoToEnd() {
	if last := t.root.fields.Last(); last != nil {
		t.cursor = lastVisibleDescendant(last)
	}
}

// Select handles the space key.
func (t *Tree) Select() { t.cursor.Select() }

// Key routes any other key. Tab is handled here, tree-wide, since it
// flips the one flag every argument node shares rather than belonging to
// any single node.
func (t *Tree) Key(k string) bool {
	if k == "tab" {
		t.state.CursorAtInputField = !t.state.CursorAtInputField
		return true
	}
	return t.cursor.Key(k)
}

// Draw renders every visible node depth-first starting at the root's
// top-level fields, indenting two columns per level, and reports the
// on-screen position of the cursor (or, while editing a value, of the
// caret within it — a node's own Draw is responsible for that refinement)
// plus the row a "Mutation" section header was drawn on, if any.
func (t *Tree) Draw(s Screen, y0, x0 int) (int, Cursor) {
	cur := Cursor{}
	y := y0
	fields := t.root.fields.All()
	qCount := t.root.NumberOfQueryFields()
	for i, n := range fields {
		if i == qCount && i < len(fields) {
			cur.HasMutationHeader = true
			cur.YMutation = y
			s.WriteString(y, x0, "Mutation", StyleDim)
			y++
		}
		y = t.drawNode(s, n, y, x0, &cur)
	}
	return y, cur
}

func (t *Tree) drawNode(s Screen, n Node, y, x int, cur *Cursor) int {
	// Argument nodes place the caret while editing; only the cursor
	// node's own placement may stick.
	prevY, prevX := cur.Y, cur.X
	cur.Y, cur.X = y, x
	ny := n.Draw(s, y, x, cur)
	if n != t.cursor {
		cur.Y, cur.X = prevY, prevX
	} else if !t.state.CursorAtInputField {
		cur.Y, cur.X = y, x
	}
	if n.IsExpanded() {
		for c := n.Child(); c != nil; c = c.Next() {
			ny = t.drawNode(s, c, ny, x+2, cur)
		}
	}
	return ny
}

func (t *Tree) isRootNode(n Node) bool {
	o, ok := n.(*Object)
	return ok && o.isRoot
}

func (t *Tree) nextVisible(n Node) Node {
	if n.IsExpanded() {
		if c := n.Child(); c != nil {
			return c
		}
	}
	for n != nil {
		if nx := n.Next(); nx != nil {
			return nx
		}
		n = n.Parent()
		if n != nil && t.isRootNode(n) {
			return nil
		}
	}
	return nil
}

func (t *Tree) prevVisible(n Node) Node {
	if p := n.Prev(); p != nil {
		return lastVisibleDescendant(p)
	}
	parent := n.Parent()
	if parent == nil || t.isRootNode(parent) {
		return nil
	}
	return parent
}

// lastVisibleDescendant walks to the last leaf of n's currently-visible
// subtree, descending into the last child at each expanded level.
func lastVisibleDescendant(n Node) Node {
	for n.IsExpanded() {
		c := n.Child()
		if c == nil {
			break
		}
		last := c
		for last.Next() != nil {
			last = last.Next()
		}
		n = last
	}
	return n
}

package tree

import "strconv"

// ListArgument is an argument whose type is LIST: a sequence of ListItem
// slots, each holding one element of the list's underlying element kind
// (scalar, enum, input object, or a nested list). Like InputArgument, its
// symbol doubles as its expand/collapse state. The slots always end with
// one trailing ListItem: a permanently collapsed placeholder that is the
// only way to grow the list (expanding it appends the next one).
type ListArgument struct {
	argumentBase

	name  string
	items *ObjectFields

	// newElement builds a fresh element node for a slot as it's expanded;
	// supplied by the tree builder, which alone knows the list's element
	// type. The element's optionality follows the element type, and the
	// serializer emits an expanded slot's element whatever its symbol.
	newElement func() Node
}

func newListArgument(name, typ, desc string, newElement func() Node, optional, hasDefault bool, state *State) *ListArgument {
	a := &ListArgument{name: name, newElement: newElement}
	a.typ = typ
	a.desc = desc
	a.isOptional = optional
	a.hasDefault = hasDefault
	a.state = state
	a.items = staticFields(a, nil)
	a.initSymbol()
	return a
}

func (a *ListArgument) Kind() Kind           { return KindListArgument }
func (a *ListArgument) NodeName() string     { return a.name }
func (a *ListArgument) Items() *ObjectFields { return a.items }

func (a *ListArgument) IsExpandable() bool {
	return !a.isVariable
}

func (a *ListArgument) IsExpanded() bool {
	if a.isVariable {
		return false
	}
	if !a.canToggle() {
		return true
	}
	return a.symbol == SymbolSelected
}

func (a *ListArgument) Child() Node {
	if !a.IsExpanded() {
		return nil
	}
	return a.items.First()
}

func (a *ListArgument) Expand() {
	if a.canToggle() {
		a.symbol = SymbolSelected
	}
	if a.IsExpanded() {
		a.ensureTrailingItem()
	}
}

func (a *ListArgument) Collapse() {
	if a.canToggle() {
		a.symbol = SymbolUnselected
	}
}

func (a *ListArgument) Select() {
	a.toggleSymbol()
	if a.IsExpanded() {
		a.ensureTrailingItem()
	}
}

func (a *ListArgument) Key(k string) bool {
	if k == "v" {
		return a.toggleVariable()
	}
	return false
}

// ensureTrailingItem guarantees the slot list is non-empty and its last
// slot is the trailing placeholder, materializing it the first time the
// list is expanded.
func (a *ListArgument) ensureTrailingItem() {
	all := a.items.ensure()
	if len(all) > 0 {
		if last, ok := all[len(all)-1].(*ListItem); ok && last.trailing {
			return
		}
	}
	a.appendTrailing()
}

func (a *ListArgument) appendTrailing() {
	all := a.items.ensure()
	item := newListItem(a, true)
	all = append(all, item)
	a.items.nodes = all
	linkSiblings(all, a)
}

// removeItem drops item by identity and relinks the remaining slots. No-op
// if item is not one of this list's current items.
func (a *ListArgument) removeItem(item Node) {
	all := a.items.ensure()
	for i, n := range all {
		if n == item {
			all = append(all[:i], all[i+1:]...)
			a.items.nodes = all
			linkSiblings(all, a)
			return
		}
	}
}

// indexOf reports item's position among the current slots, trailing slot
// included, for the "[i]" suffix its Draw prints.
func (a *ListArgument) indexOf(item Node) int {
	for i, n := range a.items.All() {
		if n == item {
			return i
		}
	}
	return -1
}

func (a *ListArgument) Draw(s Screen, y, x int, cur *Cursor) int {
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

// ListItem is one slot of a ListArgument. A trailing item is permanently
// collapsed and carries no element; it exists purely as the add-new
// affordance: expanding it (space) materializes its element via the
// list's newElement and appends a new trailing placeholder after it, at
// which point it stops being trailing itself. A non-trailing item's
// is_expanded can be toggled freely; stepping right into an expanded,
// non-trailing item descends into its own value/fields exactly as it
// would if the element appeared directly as an argument. A collapsed
// item contributes nothing to the built query.
type ListItem struct {
	base

	list     *ListArgument
	elem     Node
	expanded bool
	trailing bool
}

func newListItem(list *ListArgument, trailing bool) *ListItem {
	return &ListItem{list: list, trailing: trailing}
}

func (i *ListItem) Kind() Kind       { return KindListItem }
func (i *ListItem) IsArgument() bool { return true }
func (i *ListItem) Element() Node    { return i.elem }
func (i *ListItem) IsTrailing() bool { return i.trailing }

func (i *ListItem) NodeName() string {
	if i.elem != nil {
		return i.elem.NodeName()
	}
	return i.list.name
}

func (i *ListItem) IsExpandable() bool { return !i.trailing }
func (i *ListItem) IsExpanded() bool   { return i.expanded }

func (i *ListItem) Child() Node {
	if !i.expanded {
		return nil
	}
	return i.elem
}

func (i *ListItem) Expand() {
	if i.expanded {
		return
	}
	i.expanded = true
	if i.elem == nil {
		i.elem = i.list.newElement()
		i.elem.setParent(i)
	}
	if i.trailing {
		i.trailing = false
		i.list.appendTrailing()
	}
}

func (i *ListItem) Collapse() {
	i.expanded = false
}

func (i *ListItem) Select() {
	if i.expanded {
		i.Collapse()
	} else {
		i.Expand()
	}
}

// Key handles backspace-remove; it only ever applies to a non-trailing
// item, since the trailing placeholder can't be removed.
func (i *ListItem) Key(k string) bool {
	if k == "backspace" && !i.trailing {
		i.list.removeItem(i)
		return true
	}
	return false
}

// Draw renders "▼[i]" / "▶[i]" for a real slot; the trailing placeholder
// always renders as literal "...".
func (i *ListItem) Draw(s Screen, y, x int, cur *Cursor) int {
	if i.trailing {
		s.WriteString(y, x, "...", StyleDim)
		return y + 1
	}
	glyph := "▶"
	if i.expanded {
		glyph = "▼"
	}
	s.WriteString(y, x, glyph+"["+strconv.Itoa(i.list.indexOf(i))+"]", StyleGlyph)
	if i.expanded && i.elem != nil {
		return i.elem.Draw(s, y, x+4, cur)
	}
	return y + 1
}

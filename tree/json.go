package tree

import (
	"encoding/json"
	"fmt"
)

// snapshotVersion is bumped whenever NodeState's shape changes in a way
// that could misinterpret an older file rather than just harmlessly drop
// unknown fields.
const snapshotVersion = 1

// Snapshot is the persisted shape of a Tree: sparse per-node state keyed
// by field name, plus the cursor's path from the root and the shared edit
// sub-mode flag. Only nodes a session actually touched appear at all;
// everything else restores to its schema-derived default.
type Snapshot struct {
	Version            int                   `json:"version"`
	CursorAtInputField bool                  `json:"cursor_at_input_field,omitempty"`
	CursorPath         []string              `json:"cursor_path,omitempty"`
	Fields             map[string]*NodeState `json:"fields,omitempty"`
}

// NodeState is one node's saved state. Which fields are meaningful
// depends on the node's kind: Expanded for Object/Leaf/a ListItem,
// Selected/Variable/Value for scalar and enum arguments, Selected/
// Variable/Fields for InputArgument, Selected/Variable/Items for
// ListArgument, Expanded/Elem for a ListItem. The trailing placeholder of
// a ListArgument is never saved; it's re-derived on restore.
type NodeState struct {
	Expanded bool                  `json:"expanded,omitempty"`
	Selected bool                  `json:"selected,omitempty"`
	Variable bool                  `json:"variable,omitempty"`
	Value    string                `json:"value,omitempty"`
	Fields   map[string]*NodeState `json:"fields,omitempty"`
	Items    []*NodeState          `json:"items,omitempty"`
	Elem     *NodeState            `json:"elem,omitempty"`
}

// ToJSON serializes the tree's current edit state. It never materializes
// an untouched subtree just to confirm it has nothing to say: a field
// whose ObjectFields was never accessed is, by construction, still at its
// schema default and is simply absent from the output.
func (t *Tree) ToJSON() ([]byte, error) {
	snap := &Snapshot{
		Version:            snapshotVersion,
		CursorAtInputField: t.state.CursorAtInputField,
		CursorPath:         cursorPath(t.cursor),
	}
	if fields := saveFields(t.root.fields); len(fields) > 0 {
		snap.Fields = fields
	}
	return json.Marshal(snap)
}

// FromJSON applies a previously saved Snapshot onto a freshly Build'd
// Tree. It is best-effort: a field, argument, or cursor path element that
// no longer exists (the schema changed underneath it) is silently
// dropped rather than treated as an error.
func (t *Tree) FromJSON(data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	if snap.Version != snapshotVersion {
		return fmt.Errorf("Unsupported tree JSON version %d", snap.Version)
	}
	t.state.CursorAtInputField = snap.CursorAtInputField
	restoreFields(t.root.fields, snap.Fields)
	if c := resolvePath(t.root, snap.CursorPath); c != nil {
		t.cursor = c
	}
	return nil
}

func saveFields(fields *ObjectFields) map[string]*NodeState {
	if !fields.Materialized() {
		return nil
	}
	out := map[string]*NodeState{}
	for _, n := range fields.All() {
		if st := saveNode(n); st != nil {
			out[n.NodeName()] = st
		}
	}
	return out
}

func saveNode(n Node) *NodeState {
	st := &NodeState{}
	dirty := false

	switch v := n.(type) {
	case *Object:
		if v.expanded {
			st.Expanded, dirty = true, true
		}
		if fields := saveFields(v.fields); len(fields) > 0 {
			st.Fields, dirty = fields, true
		}
	case *Leaf:
		if v.argsExpanded {
			st.Expanded, dirty = true, true
		}
		if v.selected {
			st.Selected, dirty = true, true
		}
		if fields := saveFields(v.args); len(fields) > 0 {
			st.Fields, dirty = fields, true
		}
	case *ScalarArgument:
		if v.symbol == SymbolSelected {
			st.Selected, dirty = true, true
		}
		if v.isVariable {
			st.Variable, dirty = true, true
		}
		if v.value != "" {
			st.Value, dirty = v.value, true
		}
	case *EnumArgument:
		if v.symbol == SymbolSelected {
			st.Selected, dirty = true, true
		}
		if v.isVariable {
			st.Variable, dirty = true, true
		}
		if v.value != "" {
			st.Value, dirty = v.value, true
		}
	case *InputArgument:
		if v.symbol == SymbolSelected {
			st.Selected, dirty = true, true
		}
		if v.isVariable {
			st.Variable, dirty = true, true
		}
		if fields := saveFields(v.fields); len(fields) > 0 {
			st.Fields, dirty = fields, true
		}
	case *ListArgument:
		if v.symbol == SymbolSelected {
			st.Selected, dirty = true, true
		}
		if v.isVariable {
			st.Variable, dirty = true, true
		}
		var items []*NodeState
		for _, it := range v.items.All() {
			li := it.(*ListItem)
			if li.trailing {
				continue
			}
			is := saveNode(li)
			if is == nil {
				is = &NodeState{}
			}
			items = append(items, is)
		}
		if len(items) > 0 {
			st.Items, dirty = items, true
		}
	case *ListItem:
		if v.expanded {
			st.Expanded, dirty = true, true
		}
		if v.elem != nil {
			if es := saveNode(v.elem); es != nil {
				st.Elem, dirty = es, true
			}
		}
	}

	if !dirty {
		return nil
	}
	return st
}

func restoreFields(fields *ObjectFields, saved map[string]*NodeState) {
	for name, st := range saved {
		if n := fields.ByName(name); n != nil {
			restoreNode(n, st)
		}
	}
}

func restoreNode(n Node, st *NodeState) {
	switch v := n.(type) {
	case *Object:
		if st.Expanded {
			v.expanded = true
		}
		restoreFields(v.fields, st.Fields)
	case *Leaf:
		if st.Expanded {
			v.argsExpanded = true
		}
		v.selected = st.Selected
		restoreFields(v.args, st.Fields)
	case *ScalarArgument:
		if st.Selected {
			v.symbol = SymbolSelected
		}
		v.isVariable = st.Variable
		if st.Value != "" {
			v.SetValue(st.Value)
		}
	case *EnumArgument:
		if st.Selected {
			v.symbol = SymbolSelected
		}
		v.isVariable = st.Variable
		if st.Value != "" {
			v.SetValue(st.Value)
		}
	case *InputArgument:
		if st.Selected {
			v.symbol = SymbolSelected
		}
		v.isVariable = st.Variable
		restoreFields(v.fields, st.Fields)
	case *ListArgument:
		if st.Selected {
			v.symbol = SymbolSelected
		}
		v.isVariable = st.Variable
		if v.IsExpanded() {
			items := make([]Node, 0, len(st.Items)+1)
			for _, is := range st.Items {
				item := newListItem(v, false)
				if is.Expanded {
					item.expanded = true
					item.elem = v.newElement()
					item.elem.setParent(item)
					if is.Elem != nil {
						restoreNode(item.elem, is.Elem)
					}
				}
				items = append(items, item)
			}
			items = append(items, newListItem(v, true))
			v.items.nodes = items
			linkSiblings(items, v)
		}
	}
}

// cursorPath returns n's field-name path from (but not including) the
// root, innermost-last becoming outermost-first after the reverse.
func cursorPath(n Node) []string {
	var rev []string
	for cur := n; cur != nil; cur = cur.Parent() {
		if o, ok := cur.(*Object); ok && o.isRoot {
			break
		}
		rev = append(rev, cur.NodeName())
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// resolvePath walks a saved cursor path from the root, stopping (and
// returning the deepest node it could still reach) as soon as a name no
// longer matches the rebuilt schema, or the current node isn't a kind
// that supports further descent (e.g. a ListArgument: list items have no
// stable name to resolve against).
func resolvePath(root *Object, path []string) Node {
	var cur Node = root
	for _, name := range path {
		var next Node
		switch v := cur.(type) {
		case *Object:
			next = v.fields.ByName(name)
		case *Leaf:
			next = v.args.ByName(name)
		case *InputArgument:
			next = v.fields.ByName(name)
		default:
			next = nil
		}
		if next == nil {
			break
		}
		cur = next
	}
	if cur == Node(root) {
		return nil
	}
	return cur
}

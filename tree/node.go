// Package tree implements the schema-derived, user-editable GraphQL
// selection tree: the node model (Object/Leaf/ScalarArgument/EnumArgument/
// InputArgument/ListArgument/ListItem), the ObjectFields sibling chain that
// owns them, and the Tree navigation state machine that routes key events
// to a single cursor node.
//
// The tree is single-threaded and cooperative: every mutation happens in
// response to a key event on the goroutine that owns the Tree, and drawing
// reads the same state immediately afterwards. Nothing here does I/O.
package tree

// Kind discriminates the closed set of node variants. Prefer a type switch
// on the concrete pointer type over branching on Kind when variant-specific
// data is needed; Kind exists for callers (persistence, the draw contract)
// that only need to know which bucket a node falls into.
type Kind string

const (
	KindObject         Kind = "object"
	KindLeaf           Kind = "leaf"
	KindScalarArgument Kind = "scalar_argument"
	KindEnumArgument   Kind = "enum_argument"
	KindInputArgument  Kind = "input_argument"
	KindListArgument   Kind = "list_argument"
	KindListItem       Kind = "list_item"
)

// Symbol is the glyph drawn to the left of an argument's name.
type Symbol rune

const (
	SymbolUnselected Symbol = '□'
	SymbolSelected   Symbol = '■'
	SymbolRequired   Symbol = '●'
)

// Style is a hint the draw contract passes to Screen; the concrete meaning
// (color, dimming) is a ui-package concern.
type Style int

const (
	StyleNormal Style = iota
	StyleDim        // deprecated fields
	StyleGlyph      // expand/select glyphs (▼ ▶ ■ □ ● $)
	StyleValue      // argument literal values
	StyleHint       // enum completion hints
)

// Screen is the terminal rendering primitive the tree draws onto: it places
// text at coordinates and knows nothing about GraphQL. A real terminal
// implementation lives in package ui; tests use an in-memory fake.
type Screen interface {
	WriteString(y, x int, s string, style Style)
}

// Cursor is filled in by Tree.Draw with the screen position of the cursor
// node (or of the caret while editing its value) and, when a "Mutation"
// section header was drawn, the row it was drawn on.
type Cursor struct {
	Y          int
	X          int
	YMutation  int
	HasMutationHeader bool
}

// Node is the contract every tree element satisfies: data, draw, query,
// select, key, and the intrusive sibling/parent pointers the navigation
// state machine walks. The set of implementations is closed (see Kind);
// new behavior is added by extending the variant's own methods, not this
// interface.
type Node interface {
	Kind() Kind
	NodeName() string
	TypeString() string
	Description() string

	// IsArgument distinguishes argument children (serialize into a
	// field's "(k:v,...)" argument list) from selection children
	// (serialize into "{ ... }").
	IsArgument() bool

	Parent() Node
	Next() Node
	Prev() Node
	setParent(Node)
	setNext(Node)
	setPrev(Node)

	// Child is the state machine's preferred "one step down" target. It
	// is nil for nodes with nothing to step into, or whose substructure
	// is currently collapsed / replaced by a variable reference.
	Child() Node

	// IsExpandable reports whether key_right's "expand" step applies to
	// this node at all (Object, ListItem, a Leaf with arguments,
	// InputArgument, ListArgument). Scalar/enum arguments and plain
	// leaves answer false.
	IsExpandable() bool
	IsExpanded() bool
	// Expand/Collapse are the directional (arrow-key) half of the
	// expand/collapse contract; Select() is the space-key half and, for
	// variants where space simply toggles, is implemented in terms of
	// these two.
	Expand()
	Collapse()

	// Select handles the space key.
	Select()
	// Key handles any key other than the directional/space keys. It
	// returns true if the cursor node consumed it, which tells the
	// controller to suppress its own bindings (help, quit, reload) for
	// that keystroke.
	Key(k string) bool
	// KeyLeft/KeyRight give the node first refusal on a directional key
	// (argument nodes use this to move the text caret while the tree's
	// edit sub-mode is active). They return true if consumed.
	KeyLeft() bool
	KeyRight() bool

	Draw(s Screen, y, x int, cur *Cursor) int

	// NodeName satisfies queryerrors.Node so any tree node can be
	// reported as the offending node of a serialization error without
	// package queryerrors importing tree.
}

// base is embedded by every concrete node type. It supplies the shared
// sibling/parent plumbing and the no-op defaults most variants don't
// override (argument nodes override KeyLeft/KeyRight/Key; Object/ListItem/
// InputArgument/ListArgument override Child/IsExpandable/IsExpanded).
type base struct {
	parent Node
	next   Node
	prev   Node
	typ    string
	desc   string
}

func (b *base) TypeString() string  { return b.typ }
func (b *base) Description() string { return b.desc }
func (b *base) Parent() Node        { return b.parent }
func (b *base) Next() Node          { return b.next }
func (b *base) Prev() Node          { return b.prev }
func (b *base) setParent(n Node)    { b.parent = n }
func (b *base) setNext(n Node)      { b.next = n }
func (b *base) setPrev(n Node)      { b.prev = n }

func (b *base) IsArgument() bool   { return false }
func (b *base) Child() Node        { return nil }
func (b *base) IsExpandable() bool { return false }
func (b *base) IsExpanded() bool   { return false }
func (b *base) Expand()            {}
func (b *base) Collapse()          {}
func (b *base) Select()            {}
func (b *base) Key(string) bool    { return false }
func (b *base) KeyLeft() bool      { return false }
func (b *base) KeyRight() bool     { return false }

// argumentBase is embedded by the four argument variants; it carries the
// symbol/variable/optionality state common to all of them (invariant 3 and
// the "has_default behaves like is_optional" design note).
type argumentBase struct {
	base
	isOptional bool
	hasDefault bool
	isVariable bool
	symbol     Symbol
	// state is the tree-wide edit sub-mode flag, shared by every argument
	// node the builder creates for a given tree, so each node can consult
	// it from Key/KeyLeft/KeyRight without Tree threading it through.
	state *State
}

func (a *argumentBase) IsArgument() bool { return true }

func (a *argumentBase) canToggle() bool {
	return a.isOptional || a.hasDefault
}

// initSymbol sets the starting symbol per invariant 3: required with no
// default is permanently '●'; everything else starts unselected.
func (a *argumentBase) initSymbol() {
	if !a.canToggle() {
		a.symbol = SymbolRequired
	} else {
		a.symbol = SymbolUnselected
	}
}

// toggleSymbol cycles □↔■; a no-op when the argument can't toggle.
func (a *argumentBase) toggleSymbol() {
	if !a.canToggle() {
		return
	}
	if a.symbol == SymbolSelected {
		a.symbol = SymbolUnselected
	} else {
		a.symbol = SymbolSelected
	}
}

func (a *argumentBase) IsVariable() bool  { return a.isVariable }
func (a *argumentBase) IsOptional() bool  { return a.isOptional }
func (a *argumentBase) HasDefault() bool  { return a.hasDefault }
func (a *argumentBase) Symbol() Symbol    { return a.symbol }

// toggleVariable implements the 'v' keybinding; it is a no-op while the
// tree-wide edit sub-mode is active, since typing 'v' there must insert the
// literal character instead.
func (a *argumentBase) toggleVariable() bool {
	if a.state != nil && a.state.CursorAtInputField {
		return false
	}
	a.isVariable = !a.isVariable
	return true
}

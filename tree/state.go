package tree

// State is shared by every argument node in a tree: a single process-local,
// tree-wide flag routing typed characters into the current argument's line
// editor (true) or to tree keybinds (false). Tab flips it. It is persisted
// alongside the tree so an editing session restores in the same mode.
type State struct {
	CursorAtInputField bool
}

package tree

import "github.com/shyptr/gqt/editor"

// decodeEditKey maps a decoded key token (as produced by the ui package's
// bubbletea key handling, e.g. "backspace", "ctrl+a", "alt+b", or a single
// printable rune) to an editor.Command. Tokens this tree doesn't recognize
// as an editing key fall through to CommandNone so the caller can decline
// them.
func decodeEditKey(k string) (editor.Command, string) {
	switch k {
	case "backspace":
		return editor.CommandBackspace, ""
	case "ctrl+d":
		return editor.CommandDeleteForward, ""
	case "ctrl+a", "home":
		return editor.CommandMoveStart, ""
	case "ctrl+e", "end":
		return editor.CommandMoveEnd, ""
	case "ctrl+k":
		return editor.CommandKillToEnd, ""
	case "ctrl+t":
		return editor.CommandTransposeChars, ""
	case "alt+b":
		return editor.CommandWordLeft, ""
	case "alt+f":
		return editor.CommandWordRight, ""
	case "alt+d":
		return editor.CommandDeleteWordForward, ""
	case "alt+backspace":
		return editor.CommandDeleteWordBack, ""
	case "left":
		return editor.CommandMoveLeft, ""
	case "right":
		return editor.CommandMoveRight, ""
	}
	if len([]rune(k)) == 1 {
		return editor.CommandInsert, k
	}
	return editor.CommandNone, ""
}

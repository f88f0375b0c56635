package editor

import "testing"

func TestEditInsert(t *testing.T) {
	text, pos := Edit("helloworld", 5, CommandInsert, " ")
	if text != "hello world" || pos != 6 {
		t.Fatalf("got %q %d", text, pos)
	}
}

func TestEditBackspace(t *testing.T) {
	text, pos := Edit("hello", 5, CommandBackspace, "")
	if text != "hell" || pos != 4 {
		t.Fatalf("got %q %d", text, pos)
	}
	text, pos = Edit("hello", 0, CommandBackspace, "")
	if text != "hello" || pos != 0 {
		t.Fatalf("backspace at start should be a no-op, got %q %d", text, pos)
	}
}

func TestEditDeleteForward(t *testing.T) {
	text, pos := Edit("hello", 0, CommandDeleteForward, "")
	if text != "ello" || pos != 0 {
		t.Fatalf("got %q %d", text, pos)
	}
}

func TestEditMoveStartEnd(t *testing.T) {
	_, pos := Edit("hello", 2, CommandMoveStart, "")
	if pos != 0 {
		t.Fatalf("got %d", pos)
	}
	_, pos = Edit("hello", 2, CommandMoveEnd, "")
	if pos != 5 {
		t.Fatalf("got %d", pos)
	}
}

func TestEditKillToEnd(t *testing.T) {
	text, pos := Edit("hello world", 5, CommandKillToEnd, "")
	if text != "hello" || pos != 5 {
		t.Fatalf("got %q %d", text, pos)
	}
}

func TestEditTransposeChars(t *testing.T) {
	text, pos := Edit("ab", 2, CommandTransposeChars, "")
	if text != "ba" || pos != 2 {
		t.Fatalf("got %q %d", text, pos)
	}
}

func TestEditWordMotion(t *testing.T) {
	text := "foo bar baz"
	_, pos := Edit(text, 11, CommandWordLeft, "")
	if pos != 8 {
		t.Fatalf("word left got %d", pos)
	}
	_, pos = Edit(text, 0, CommandWordRight, "")
	if pos != 3 {
		t.Fatalf("word right got %d", pos)
	}
}

func TestEditDeleteWordBack(t *testing.T) {
	text, pos := Edit("foo bar", 7, CommandDeleteWordBack, "")
	if text != "foo " || pos != 4 {
		t.Fatalf("got %q %d", text, pos)
	}
}

func TestEditDeleteWordForward(t *testing.T) {
	text, pos := Edit("foo bar", 0, CommandDeleteWordForward, "")
	if text != " bar" || pos != 0 {
		t.Fatalf("got %q %d", text, pos)
	}
}

func TestEditClampsStalePosition(t *testing.T) {
	text, pos := Edit("ab", 50, CommandBackspace, "")
	if text != "a" || pos != 1 {
		t.Fatalf("got %q %d", text, pos)
	}
}

// Package ui renders a tree.Tree as an interactive terminal view using
// bubbletea for the event loop and lipgloss for styling, and adapts raw
// key events into the tree's key-token vocabulary.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shyptr/gqt/tree"
)

var (
	styleNormal = lipgloss.NewStyle()
	styleDim    = lipgloss.NewStyle().Faint(true)
	styleGlyph  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleValue  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleHint   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true)
)

func lipglossStyle(s tree.Style) lipgloss.Style {
	switch s {
	case tree.StyleDim:
		return styleDim
	case tree.StyleGlyph:
		return styleGlyph
	case tree.StyleValue:
		return styleValue
	case tree.StyleHint:
		return styleHint
	default:
		return styleNormal
	}
}

type cell struct {
	r     rune
	style tree.Style
	set   bool
}

// Canvas is a tree.Screen backed by an in-memory grid of styled runes,
// rendered to a string only once every node has had a chance to draw.
type Canvas struct {
	rows [][]cell
}

func NewCanvas() *Canvas { return &Canvas{} }

func (c *Canvas) ensure(y, x int) {
	for len(c.rows) <= y {
		c.rows = append(c.rows, nil)
	}
	row := c.rows[y]
	for len(row) <= x {
		row = append(row, cell{})
	}
	c.rows[y] = row
}

func (c *Canvas) WriteString(y, x int, s string, style tree.Style) {
	if y < 0 || x < 0 {
		return
	}
	for i, r := range []rune(s) {
		c.ensure(y, x+i)
		c.rows[y][x+i] = cell{r: r, style: style, set: true}
	}
}

// Render flattens the canvas into a single ANSI string, one line per row,
// batching consecutive same-styled runes into a single lipgloss.Render
// call rather than one per character.
func (c *Canvas) Render() string {
	var out strings.Builder
	for i, row := range c.rows {
		if i > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(renderRow(row))
	}
	return out.String()
}

func renderRow(row []cell) string {
	var out strings.Builder
	var run []rune
	var runStyle tree.Style
	flush := func() {
		if len(run) == 0 {
			return
		}
		out.WriteString(lipglossStyle(runStyle).Render(string(run)))
		run = run[:0]
	}
	for _, c := range row {
		r := c.r
		if !c.set {
			r = ' '
		}
		if len(run) > 0 && c.style != runStyle {
			flush()
		}
		runStyle = c.style
		run = append(run, r)
	}
	flush()
	return out.String()
}

// Reset clears the canvas for reuse on the next frame.
func (c *Canvas) Reset() { c.rows = c.rows[:0] }

package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/shyptr/gqt/persistence"
	"github.com/shyptr/gqt/provider"
	"github.com/shyptr/gqt/query"
	"github.com/shyptr/gqt/queryerrors"
	"github.com/shyptr/gqt/tree"
)

// Controller is the bubbletea model driving one editing session: it owns
// the tree, decodes key events into the token vocabulary tree.Node.Key
// expects, and runs the built operation against a query executor on
// Enter.
type Controller struct {
	Tree     *tree.Tree
	Executor *provider.HTTPQueryExecutor
	Store    *persistence.Store
	Name     string

	canvas   *Canvas
	width    int
	height   int
	scrollY  int
	showHelp bool
	status   string
	errLine  string
}

func NewController(t *tree.Tree, executor *provider.HTTPQueryExecutor, store *persistence.Store, name string) *Controller {
	return &Controller{Tree: t, Executor: executor, Store: store, Name: name, canvas: NewCanvas()}
}

func (c *Controller) Init() tea.Cmd { return nil }

type execResultMsg struct {
	data []byte
	err  error
}

func (c *Controller) runQuery() tea.Cmd {
	q, err := query.Build(c.Tree)
	if err != nil {
		return func() tea.Msg { return execResultMsg{err: err} }
	}
	// Syntax-only: a failure here means query.Build produced something
	// malformed, not that the user made a mistake.
	if _, err := parser.ParseQuery(&ast.Source{Input: q, Name: "query"}); err != nil {
		return func() tea.Msg { return execResultMsg{err: fmt.Errorf("built operation failed to parse: %w", err)} }
	}
	if c.Executor == nil {
		return func() tea.Msg { return execResultMsg{err: fmt.Errorf("no endpoint configured")} }
	}
	return func() tea.Msg {
		data, err := c.Executor.Execute(context.Background(), q, nil)
		return execResultMsg{data: data, err: err}
	}
}

func (c *Controller) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width, c.height = msg.Width, msg.Height
		return c, nil

	case execResultMsg:
		if msg.err != nil {
			c.errLine = msg.err.Error()
			c.moveToOffending(msg.err)
		} else {
			c.status = string(msg.data)
			c.errLine = ""
		}
		return c, nil

	case tea.KeyMsg:
		return c.handleKey(msg)
	}
	return c, nil
}

func (c *Controller) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	editing := c.Tree.State().CursorAtInputField
	if !editing {
		switch k {
		case "ctrl+c", "q":
			return c, tea.Quit
		case "?":
			c.showHelp = !c.showHelp
			return c, nil
		case "up":
			c.Tree.KeyUp()
			return c, nil
		case "down":
			c.Tree.KeyDown()
			return c, nil
		case " ":
			c.Tree.Select()
			return c, nil
		case "enter":
			c.errLine = ""
			return c, c.runQuery()
		case "ctrl+s":
			return c, c.saveCmd()
		}
	}

	switch k {
	case "left":
		c.Tree.KeyLeft()
		return c, nil
	case "right":
		c.Tree.KeyRight()
		return c, nil
	case "tab":
		c.Tree.Key("tab")
		return c, nil
	default:
		c.Tree.Key(k)
		return c, nil
	}
}

// moveToOffending places the cursor on the node a QueryError blames, if
// any, so the user lands on the field that needs fixing rather than
// having to hunt for it.
func (c *Controller) moveToOffending(err error) {
	qerr, ok := err.(*queryerrors.QueryError)
	if !ok || qerr.Offending == nil {
		return
	}
	if n, ok := qerr.Offending.(tree.Node); ok {
		c.Tree.SetCursor(n)
	}
}

type saveResultMsg struct{ err error }

func (c *Controller) saveCmd() tea.Cmd {
	if c.Store == nil || c.Name == "" {
		return nil
	}
	return func() tea.Msg {
		err := c.Store.Save(context.Background(), c.Name, c.Tree)
		return saveResultMsg{err: err}
	}
}

func (c *Controller) View() string {
	c.canvas.Reset()
	_, cur := c.Tree.Draw(c.canvas, 0, 0)
	body := c.canvas.Render()

	footer := "↑/↓ move  ←/→ expand/collapse  space select  tab edit  enter run  ? help  q quit"
	if c.showHelp {
		footer = helpText
	}
	if c.errLine != "" {
		footer = "error: " + c.errLine
	}
	_ = cur // cursor position is consumed by a real terminal renderer via ANSI cursor placement, omitted in this plain render
	return body + "\n\n" + footer
}

const helpText = `navigation
  up/down    move between visible fields
  left/right expand, collapse, or step into a field's children
  space      select a field, or toggle an argument's on/off state
  space      (on a list's trailing "..." slot) append a new item
  backspace  (on a non-trailing list item) remove it
  v          switch the current argument to a $variable reference
  tab        toggle typing into the current argument's value
  enter      run the built query against the endpoint
  ctrl+s     save the current query
  ?          toggle this help
  q          quit`

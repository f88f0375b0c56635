// Package query serializes a tree.Tree's current selection/argument state
// into GraphQL operation text, accumulating and deduplicating the
// variables any argument was switched into $variable mode for.
package query

import (
	"strconv"
	"strings"

	"github.com/shyptr/gqt/queryerrors"
	"github.com/shyptr/gqt/tree"
)

// Variable is one entry of the operation's variable list.
type Variable struct {
	Name string
	Type string
}

// argumentNode is satisfied by all four argument node kinds; it is how
// the serializer asks a generic tree.Node "are you toggled on, or a
// variable reference" without a type switch per call site.
type argumentNode interface {
	Symbol() tree.Symbol
	IsVariable() bool
}

// Build serializes the operation root containing the cursor — query_root
// in the navigation model — into a single GraphQL operation named "Query"
// or "Mutation" depending on which side of the root's query/mutation
// split the cursor currently sits under.
func Build(t *tree.Tree) (string, error) {
	root := t.Root()
	fields := root.Fields().All()
	qCount := root.NumberOfQueryFields()
	if qCount > len(fields) {
		qCount = len(fields)
	}

	idx, ok := rootFieldIndex(t.Cursor(), fields)
	if !ok {
		return "", queryerrors.New("No fields selected.")
	}

	opName, active := "Query", fields[:qCount]
	if idx >= qCount {
		opName, active = "Mutation", fields[qCount:]
	}

	if !anyActive(active) {
		return "", queryerrors.New("No fields selected.")
	}

	s := &serializer{vars: map[string]Variable{}}
	body, err := s.selectionList(active)
	if err != nil {
		return "", err
	}

	header := strings.ToLower(opName) + " " + opName
	if len(s.order) > 0 {
		parts := make([]string, len(s.order))
		for i, name := range s.order {
			parts[i] = "$" + name + ":" + s.vars[name].Type
		}
		header += "(" + strings.Join(parts, ",") + ")"
	}
	return header + " {" + body + "}", nil
}

// rootFieldIndex walks cursor's ancestor chain (itself included) to find
// which of the root's direct fields it descends from, implementing the
// cursor-anchored query_root(cursor) rule: exactly one top-level field
// owns any given cursor position, and that field's index decides whether
// the query or the mutation half gets serialized. Returns false only when
// cursor is nil, which happens only for an empty schema's rootless tree.
func rootFieldIndex(cursor tree.Node, fields []tree.Node) (int, bool) {
	for n := cursor; n != nil; n = n.Parent() {
		for i, f := range fields {
			if f == n {
				return i, true
			}
		}
	}
	return 0, false
}

type serializer struct {
	vars  map[string]Variable
	order []string
}

func (s *serializer) registerVariable(name, typ string) error {
	if existing, ok := s.vars[name]; ok {
		if existing.Type != typ {
			return queryerrors.New("Variable '%s' has more than one type.", name)
		}
		return nil
	}
	s.vars[name] = Variable{Name: name, Type: typ}
	s.order = append(s.order, name)
	return nil
}

func isActive(n tree.Node) bool {
	switch v := n.(type) {
	case *tree.Leaf:
		return v.Selected()
	case *tree.Object:
		if !v.Fields().Materialized() {
			return false
		}
		for _, c := range v.Fields().All() {
			if isActive(c) {
				return true
			}
		}
		return false
	}
	return false
}

func anyActive(nodes []tree.Node) bool {
	for _, n := range nodes {
		if isActive(n) {
			return true
		}
	}
	return false
}

// selectionList renders the active subset of nodes (selection fields, not
// arguments) as a space-joined sequence of field selections.
func (s *serializer) selectionList(nodes []tree.Node) (string, error) {
	var parts []string
	for _, n := range nodes {
		if !isActive(n) {
			continue
		}
		part, err := s.field(n)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " "), nil
}

func (s *serializer) field(n tree.Node) (string, error) {
	switch v := n.(type) {
	case *tree.Object:
		if strings.HasPrefix(v.NodeName(), "... on ") {
			inner, err := s.selectionList(v.Fields().All())
			if err != nil {
				return "", err
			}
			if inner == "" {
				return "", nil
			}
			return v.NodeName() + " {" + inner + "}", nil
		}
		args, err := s.argumentList(argumentsOf(v.Fields()))
		if err != nil {
			return "", err
		}
		inner, err := s.selectionList(v.Fields().All())
		if err != nil {
			return "", err
		}
		if inner == "" {
			return "", queryerrors.At(v, "No fields selected in '%s'.", v.NodeName())
		}
		return v.NodeName() + args + " {" + inner + "}", nil

	case *tree.Leaf:
		args, err := s.argumentList(v.Arguments().All())
		if err != nil {
			return "", err
		}
		return v.NodeName() + args, nil
	}
	return "", queryerrors.At(n, "unexpected node kind in selection set")
}

// argumentsOf filters an Object's combined children down to its argument
// nodes, leaving the selection nodes for selectionList.
func argumentsOf(fields *tree.ObjectFields) []tree.Node {
	all := fields.All()
	out := make([]tree.Node, 0, len(all))
	for _, n := range all {
		if n.IsArgument() {
			out = append(out, n)
		}
	}
	return out
}

func isPresent(n tree.Node) bool {
	a, ok := n.(argumentNode)
	if !ok {
		return false
	}
	return a.Symbol() != tree.SymbolUnselected || a.IsVariable()
}

// argumentList renders "(name:value,...)", or "" if no argument in nodes
// is currently toggled on.
func (s *serializer) argumentList(nodes []tree.Node) (string, error) {
	var parts []string
	for _, n := range nodes {
		if !isPresent(n) {
			continue
		}
		val, err := s.value(n)
		if err != nil {
			return "", err
		}
		parts = append(parts, n.NodeName()+":"+val)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, ",") + ")", nil
}

// inputObjectBody renders "{name:value,...}" for an InputArgument's
// nested fields.
func (s *serializer) inputObjectBody(nodes []tree.Node) (string, error) {
	var parts []string
	for _, n := range nodes {
		if !isPresent(n) {
			continue
		}
		val, err := s.value(n)
		if err != nil {
			return "", err
		}
		parts = append(parts, n.NodeName()+":"+val)
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

// value renders the literal (or $variable) GraphQL value for an argument
// node that isPresent has already approved.
func (s *serializer) value(n tree.Node) (string, error) {
	switch v := n.(type) {
	case *tree.ScalarArgument:
		if v.IsVariable() {
			if err := s.registerVariable(v.NodeName(), v.TypeString()); err != nil {
				return "", err
			}
			return "$" + v.NodeName(), nil
		}
		return scalarLiteral(v, v.ScalarName(), v.Value())

	case *tree.EnumArgument:
		if v.IsVariable() {
			if err := s.registerVariable(v.NodeName(), v.TypeString()); err != nil {
				return "", err
			}
			return "$" + v.NodeName(), nil
		}
		if !v.IsValidValue() {
			return "", queryerrors.At(v, "%q is not a member of enum %s", v.Value(), v.TypeString())
		}
		return v.Value(), nil

	case *tree.InputArgument:
		if v.IsVariable() {
			if err := s.registerVariable(v.NodeName(), v.TypeString()); err != nil {
				return "", err
			}
			return "$" + v.NodeName(), nil
		}
		return s.inputObjectBody(v.Fields().All())

	case *tree.ListArgument:
		if v.IsVariable() {
			if err := s.registerVariable(v.NodeName(), v.TypeString()); err != nil {
				return "", err
			}
			return "$" + v.NodeName(), nil
		}
		items := v.Items().All()
		parts := make([]string, 0, len(items))
		for _, item := range items {
			li, ok := item.(*tree.ListItem)
			if !ok || li.IsTrailing() || !li.IsExpanded() {
				continue
			}
			val, err := s.listElementValue(li.Element())
			if err != nil {
				return "", err
			}
			parts = append(parts, val)
		}
		// List literals render with a space after the comma, unlike the
		// tight argument/variable lists elsewhere in the grammar.
		return "[" + strings.Join(parts, ", ") + "]", nil
	}
	return "", queryerrors.At(n, "unexpected node kind in argument value")
}

// listElementValue renders one expanded ListItem's wrapped element: a
// scalar or enum element with no value set renders as the literal null,
// since inside a list an unset slot is a deliberate null. Outside a list
// the same empty value goes through value() unchanged (an empty String is
// emitted as "", an empty Int/Float/Boolean or enum value is an error).
func (s *serializer) listElementValue(elem tree.Node) (string, error) {
	switch v := elem.(type) {
	case *tree.ScalarArgument:
		if !v.IsVariable() && v.Value() == "" {
			return "null", nil
		}
	case *tree.EnumArgument:
		if !v.IsVariable() && v.Value() == "" {
			return "null", nil
		}
	}
	return s.value(elem)
}

func scalarLiteral(n queryerrors.Node, scalarName, raw string) (string, error) {
	switch scalarName {
	case "Int":
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return "", queryerrors.At(n, "%q is not a valid Int", raw)
		}
		return raw, nil
	case "Float":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return "", queryerrors.At(n, "%q is not a valid Float", raw)
		}
		return raw, nil
	case "Boolean":
		if raw != "true" && raw != "false" {
			return "", queryerrors.At(n, "%q is not a valid Boolean", raw)
		}
		return raw, nil
	case "String", "ID":
		return strconv.Quote(raw), nil
	default:
		return raw, nil
	}
}

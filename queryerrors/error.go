// Package queryerrors holds the structured errors the tree engine raises
// during serialization, shaped after the teacher's errors.GraphQLError:
// a message plus an optional pointer to the node that caused it, so a
// controller can move the cursor there.
package queryerrors

import "fmt"

// Node is satisfied by tree.Node without importing package tree, so this
// package carries no dependency on the tree engine.
type Node interface {
	NodeName() string
}

// QueryError is raised by the serializer. Offending is nil when the error
// is not attributable to a single node (e.g. "No fields selected.").
type QueryError struct {
	Message   string
	Offending Node
}

func (e *QueryError) Error() string {
	return e.Message
}

// New builds a QueryError with no offending node.
func New(format string, args ...interface{}) *QueryError {
	return &QueryError{Message: fmt.Sprintf(format, args...)}
}

// At builds a QueryError attributed to a specific node.
func At(node Node, format string, args ...interface{}) *QueryError {
	return &QueryError{Message: fmt.Sprintf(format, args...), Offending: node}
}

// Package schema holds the shape of a GraphQL introspection document, the
// JSON returned by a standard IntrospectionQuery, and the small amount of
// type-ref arithmetic (unwrapping NON_NULL/LIST, stringifying a type) that
// the tree builder needs to turn it into selectable nodes.
package schema

import "fmt"

// TypeKind is the introspection __TypeKind enum.
type TypeKind string

const (
	Scalar      TypeKind = "SCALAR"
	Object      TypeKind = "OBJECT"
	Interface   TypeKind = "INTERFACE"
	Union       TypeKind = "UNION"
	Enum        TypeKind = "ENUM"
	InputObject TypeKind = "INPUT_OBJECT"
	List        TypeKind = "LIST"
	NonNull     TypeKind = "NON_NULL"
)

// Document is the top-level `{"__schema": ...}` introspection result.
type Document struct {
	Schema Schema `json:"__schema"`
}

// Schema mirrors the introspection __Schema type.
type Schema struct {
	QueryType        *NamedRef  `json:"queryType"`
	MutationType     *NamedRef  `json:"mutationType"`
	SubscriptionType *NamedRef  `json:"subscriptionType"`
	Types            []FullType `json:"types"`
}

// NamedRef is a bare `{name: "..."}` reference, used for queryType/mutationType.
type NamedRef struct {
	Name string `json:"name"`
}

// FullType mirrors the introspection __Type type for a named type in the
// schema's `types` list.
type FullType struct {
	Kind          TypeKind       `json:"kind"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Fields        []Field        `json:"fields"`
	InputFields   []InputValue   `json:"inputFields"`
	Interfaces    []TypeRef      `json:"interfaces"`
	EnumValues    []EnumValue    `json:"enumValues"`
	PossibleTypes []TypeRef      `json:"possibleTypes"`
}

// Field mirrors the introspection __Field type.
type Field struct {
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	Args              []InputValue `json:"args"`
	Type              TypeRef      `json:"type"`
	IsDeprecated      bool         `json:"isDeprecated"`
	DeprecationReason string       `json:"deprecationReason"`
}

// InputValue mirrors the introspection __InputValue type, used both for
// field arguments and input object fields.
type InputValue struct {
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Type         TypeRef     `json:"type"`
	DefaultValue interface{} `json:"defaultValue"`
}

// EnumValue mirrors the introspection __EnumValue type.
type EnumValue struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	IsDeprecated      bool   `json:"isDeprecated"`
	DeprecationReason string `json:"deprecationReason"`
}

// TypeRef mirrors the introspection __Type type as it appears nested inside
// a field/argument type reference: a possibly-wrapped chain of
// NON_NULL/LIST markers terminating at a named type.
type TypeRef struct {
	Kind   TypeKind `json:"kind"`
	Name   string   `json:"name"`
	OfType *TypeRef `json:"ofType"`
}

// Unwrap strips NON_NULL and LIST wrappers, returning the underlying named
// type reference.
func Unwrap(t TypeRef) TypeRef {
	for t.Kind == NonNull || t.Kind == List {
		if t.OfType == nil {
			break
		}
		t = *t.OfType
	}
	return t
}

// IsNonNull reports whether the outermost wrapper is NON_NULL.
func IsNonNull(t TypeRef) bool {
	return t.Kind == NonNull
}

// String renders a type reference the way GraphQL SDL does: `[Foo!]!`.
func (t TypeRef) String() string {
	switch t.Kind {
	case NonNull:
		if t.OfType == nil {
			return "!"
		}
		return t.OfType.String() + "!"
	case List:
		if t.OfType == nil {
			return "[]"
		}
		return "[" + t.OfType.String() + "]"
	default:
		return t.Name
	}
}

// FindType looks up a named type in the schema's type list.
func FindType(types []FullType, name string) (*FullType, error) {
	for i := range types {
		if types[i].Name == name {
			return &types[i], nil
		}
	}
	return nil, fmt.Errorf("type %q not found in schema", name)
}

package tree

import (
	"fmt"

	"github.com/shyptr/gqt/internal/schema"
)

// builder turns an introspection document's type list into tree nodes. It
// holds no tree-specific state of its own beyond the schema's types and the
// one State every argument node in the resulting tree shares.
type builder struct {
	types []schema.FullType
	state *State
}

// Build constructs a fresh, fully-collapsed Tree from a schema document.
// Every Object's selection set is deferred behind a closure (see
// ObjectFields) so self-referential and mutually-recursive types don't
// recurse at build time; only the query and mutation root's direct fields
// are realized eagerly, since the root is always expanded.
func Build(doc *schema.Document) (*Tree, error) {
	if doc.Schema.QueryType == nil {
		return nil, fmt.Errorf("tree: schema has no query type")
	}
	b := &builder{types: doc.Schema.Types, state: &State{}}

	queryType, err := schema.FindType(b.types, doc.Schema.QueryType.Name)
	if err != nil {
		return nil, fmt.Errorf("tree: query type: %w", err)
	}
	queryFields := b.buildFieldNodes(queryType.Fields)

	var mutationFields []Node
	if doc.Schema.MutationType != nil {
		mutationType, err := schema.FindType(b.types, doc.Schema.MutationType.Name)
		if err != nil {
			return nil, fmt.Errorf("tree: mutation type: %w", err)
		}
		mutationFields = b.buildFieldNodes(mutationType.Fields)
	}

	numberOfQueryFields := len(queryFields)
	all := make([]Node, 0, len(queryFields)+len(mutationFields))
	all = append(all, queryFields...)
	all = append(all, mutationFields...)

	root := newRootObject(func() []Node { return all }, numberOfQueryFields)
	return newTree(root, b.state), nil
}

// buildFieldNodes builds one Object or Leaf per field, dropping (rather
// than failing the whole tree on) a field whose declared type can't be
// resolved against the document's type list — a malformed introspection
// response shouldn't make the rest of an otherwise-usable schema
// unbrowsable.
func (b *builder) buildFieldNodes(fields []schema.Field) []Node {
	nodes := make([]Node, 0, len(fields))
	for _, f := range fields {
		n, err := b.buildFieldNode(f)
		if err != nil {
			continue
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func (b *builder) buildFieldNode(f schema.Field) (Node, error) {
	named := schema.Unwrap(f.Type)
	ft, err := schema.FindType(b.types, named.Name)
	if err != nil {
		return nil, err
	}

	switch ft.Kind {
	case schema.Object, schema.Interface, schema.Union:
		typeName := ft.Name
		args := f.Args
		o := newObject(f.Name, f.Type.String(), f.Description, ft.Kind == schema.Union, func() []Node {
			children := b.buildArgNodes(args)
			return append(children, b.buildTypeChildren(typeName)...)
		})
		if f.IsDeprecated {
			o.SetDeprecated(f.DeprecationReason)
		}
		if ft.Kind == schema.Interface {
			o.setImplementorsOffset(len(args) + len(ft.Fields))
		}
		return o, nil
	default:
		args := f.Args
		l := newLeaf(f.Name, f.Type.String(), f.Description, func() []Node {
			return b.buildArgNodes(args)
		})
		if f.IsDeprecated {
			l.SetDeprecated(f.DeprecationReason)
		}
		return l, nil
	}
}

// buildTypeChildren resolves typeName's own selectable children: a plain
// object's real fields, an interface's real fields plus one pseudo-Object
// per possible type ("... on Concrete"), or a union's __typename plus one
// pseudo-Object per member.
func (b *builder) buildTypeChildren(typeName string) []Node {
	ft, err := schema.FindType(b.types, typeName)
	if err != nil {
		return nil
	}
	switch ft.Kind {
	case schema.Union:
		nodes := make([]Node, 0, len(ft.PossibleTypes)+1)
		nodes = append(nodes, newLeaf("__typename", "String", "", func() []Node { return nil }))
		for _, pt := range ft.PossibleTypes {
			name := schema.Unwrap(pt).Name
			nodes = append(nodes, newObject("... on "+name, "", "", false, func() []Node {
				return b.buildTypeChildren(name)
			}))
		}
		return nodes
	case schema.Interface:
		nodes := b.buildFieldNodes(ft.Fields)
		for _, pt := range ft.PossibleTypes {
			name := schema.Unwrap(pt).Name
			nodes = append(nodes, newObject("... on "+name, "", "", false, func() []Node {
				return b.buildTypeChildren(name)
			}))
		}
		return nodes
	default:
		return b.buildFieldNodes(ft.Fields)
	}
}

func (b *builder) buildArgNodes(args []schema.InputValue) []Node {
	nodes := make([]Node, 0, len(args))
	for _, a := range args {
		n, err := b.buildArgument(a.Name, a.Type, a.Description, a.DefaultValue)
		if err != nil {
			continue
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// buildArgument dispatches on the argument's declared type: LIST wins
// first (it can wrap any of the others), then the wrapped type's own kind
// picks InputArgument/EnumArgument/ScalarArgument. Note that schema.Unwrap
// strips LIST along with NON_NULL, so "is this a list" has to be decided
// before unwrapping, not after.
func (b *builder) buildArgument(name string, t schema.TypeRef, desc string, def interface{}) (Node, error) {
	nonNull := schema.IsNonNull(t)
	optional := !nonNull
	defStr, hasDefault := def.(string)

	if isListRef(t) {
		elemRef := listElementRef(t)
		newElement := func() Node {
			n, err := b.buildArgument(name, elemRef, "", nil)
			if err != nil {
				return newScalarArgument(name, elemRef.String(), elemRef.Name, "", false, false, "", b.state)
			}
			return n
		}
		return newListArgument(name, t.String(), desc, newElement, optional, hasDefault, b.state), nil
	}

	named := schema.Unwrap(t)
	ft, err := schema.FindType(b.types, named.Name)
	if err != nil {
		return nil, err
	}

	switch ft.Kind {
	case schema.InputObject:
		inputFields := ft.InputFields
		return newInputArgument(name, t.String(), desc, func() []Node {
			return b.buildArgNodes(inputFields)
		}, optional, hasDefault, b.state), nil
	case schema.Enum:
		values := make([]string, len(ft.EnumValues))
		for i, v := range ft.EnumValues {
			values[i] = v.Name
		}
		return newEnumArgument(name, t.String(), desc, values, optional, hasDefault, defStr, b.state), nil
	default:
		return newScalarArgument(name, t.String(), named.Name, desc, optional, hasDefault, defStr, b.state), nil
	}
}

// isListRef reports whether t is a LIST once any leading NON_NULL wrappers
// are peeled off.
func isListRef(t schema.TypeRef) bool {
	for t.Kind == schema.NonNull {
		if t.OfType == nil {
			return false
		}
		t = *t.OfType
	}
	return t.Kind == schema.List
}

// listElementRef returns the type reference one level inside a LIST
// wrapper (itself possibly NON_NULL-wrapped); isListRef(t) must hold.
func listElementRef(t schema.TypeRef) schema.TypeRef {
	for t.Kind == schema.NonNull {
		t = *t.OfType
	}
	if t.OfType == nil {
		return t
	}
	return *t.OfType
}

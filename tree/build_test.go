package tree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqt/internal/schema"
	"github.com/shyptr/gqt/tree"
)

func nonNull(t schema.TypeRef) schema.TypeRef {
	return schema.TypeRef{Kind: schema.NonNull, OfType: &t}
}

func listOf(t schema.TypeRef) schema.TypeRef {
	return schema.TypeRef{Kind: schema.List, OfType: &t}
}

// testSchema builds a small document: Query.node(tags: [String!]): Node,
// where Node has a field ("self") of its own type — enough to prove lazy
// materialization never recurses at build time — plus a plain scalar
// field ("id") to exercise leaf selection.
func testSchema() *schema.Document {
	nodeRef := schema.TypeRef{Kind: schema.Object, Name: "Node"}
	idRef := nonNull(schema.TypeRef{Kind: schema.Scalar, Name: "ID"})
	tagsArgType := listOf(nonNull(schema.TypeRef{Kind: schema.Scalar, Name: "String"}))

	return &schema.Document{Schema: schema.Schema{
		QueryType: &schema.NamedRef{Name: "Query"},
		Types: []schema.FullType{
			{
				Kind: schema.Object,
				Name: "Query",
				Fields: []schema.Field{
					{Name: "node", Type: nodeRef, Args: []schema.InputValue{
						{Name: "tags", Type: tagsArgType},
					}},
				},
			},
			{
				Kind: schema.Object,
				Name: "Node",
				Fields: []schema.Field{
					{Name: "id", Type: idRef},
					{Name: "self", Type: nodeRef},
				},
			},
		},
	}}
}

func TestBuildDoesNotRecurseOnSelfReference(t *testing.T) {
	tr, err := tree.Build(testSchema())
	require.NoError(t, err)
	require.NotNil(t, tr.Root())

	node := tr.Root().Fields().First()
	require.Equal(t, "node", node.NodeName())
	require.False(t, node.(*tree.Object).Fields().Materialized())
}

func TestNavigationExpandCollapse(t *testing.T) {
	tr, err := tree.Build(testSchema())
	require.NoError(t, err)

	node := tr.Cursor()
	require.Equal(t, "node", node.NodeName())
	require.False(t, node.IsExpanded())

	tr.KeyRight() // expand "node"
	require.True(t, node.IsExpanded())

	tr.KeyRight() // step into first child: the "tags" argument
	require.Equal(t, "tags", tr.Cursor().NodeName())

	tr.KeyDown()
	require.Equal(t, "id", tr.Cursor().NodeName())

	tr.KeyDown()
	require.Equal(t, "self", tr.Cursor().NodeName())

	tr.KeyLeft() // ascend back to "node"
	require.Equal(t, "node", tr.Cursor().NodeName())
	require.True(t, tr.Cursor().IsExpanded())

	tr.KeyLeft() // collapse; does not ascend into the unaddressable root
	require.False(t, tr.Cursor().IsExpanded())
	require.Equal(t, "node", tr.Cursor().NodeName())
}

func TestLeafSelectionToggle(t *testing.T) {
	tr, err := tree.Build(testSchema())
	require.NoError(t, err)

	tr.KeyRight() // expand "node"
	tr.KeyRight() // -> "tags"
	tr.KeyDown()  // -> "id"
	leaf, ok := tr.Cursor().(*tree.Leaf)
	require.True(t, ok)
	require.False(t, leaf.Selected())

	tr.Select()
	require.True(t, leaf.Selected())
	tr.Select()
	require.False(t, leaf.Selected())
}

func TestListArgumentTrailingPlaceholder(t *testing.T) {
	tr, err := tree.Build(testSchema())
	require.NoError(t, err)

	tr.KeyRight() // expand "node"
	tr.KeyRight() // -> "tags"
	list, ok := tr.Cursor().(*tree.ListArgument)
	require.True(t, ok)
	require.Equal(t, 0, list.Items().Len())

	list.Expand()
	require.True(t, list.IsExpanded())
	require.Equal(t, 1, list.Items().Len())

	trailing := list.Items().First().(*tree.ListItem)
	require.True(t, trailing.IsTrailing())
	require.False(t, trailing.IsExpanded())

	// Expanding the trailing slot materializes it and appends a fresh one.
	trailing.Select()
	require.False(t, trailing.IsTrailing())
	require.True(t, trailing.IsExpanded())
	require.Equal(t, 2, list.Items().Len())

	second := list.Items().All()[1].(*tree.ListItem)
	require.True(t, second.IsTrailing())

	// Backspace removes a non-trailing item; the trailing slot refuses it.
	require.True(t, trailing.Key("backspace"))
	require.Equal(t, 1, list.Items().Len())
	require.False(t, second.Key("backspace"))
	require.Equal(t, 1, list.Items().Len())
}

func TestSnapshotRoundTrip(t *testing.T) {
	tr, err := tree.Build(testSchema())
	require.NoError(t, err)

	tr.KeyRight()
	tr.KeyRight()
	tr.KeyDown()
	leaf := tr.Cursor().(*tree.Leaf)
	require.Equal(t, "id", leaf.NodeName())
	tr.Select()
	require.True(t, leaf.Selected())

	data, err := tr.ToJSON()
	require.NoError(t, err)

	tr2, err := tree.Build(testSchema())
	require.NoError(t, err)
	require.NoError(t, tr2.FromJSON(data))

	// The saved cursor path puts the cursor straight back onto "id".
	restored := tr2.Cursor().(*tree.Leaf)
	require.Equal(t, "id", restored.NodeName())
	require.True(t, restored.Selected())
}

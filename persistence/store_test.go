package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqt/internal/schema"
	"github.com/shyptr/gqt/persistence"
	"github.com/shyptr/gqt/tree"
)

func testSchema() *schema.Document {
	return &schema.Document{Schema: schema.Schema{
		QueryType: &schema.NamedRef{Name: "Query"},
		Types: []schema.FullType{
			{
				Kind: schema.Object,
				Name: "Query",
				Fields: []schema.Field{
					{Name: "ping", Type: schema.TypeRef{Kind: schema.Scalar, Name: "Boolean"}},
				},
			},
		},
	}}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := persistence.NewStore("file://" + dir + "?create_dir=true&no_tmp_dir=true")
	defer store.Close()

	tr, err := tree.Build(testSchema())
	require.NoError(t, err)
	tr.Cursor().Select()

	require.NoError(t, store.Save(ctx, "myquery", tr))

	tr2, err := tree.Build(testSchema())
	require.NoError(t, err)
	require.NoError(t, store.Load(ctx, "myquery", tr2))
	require.True(t, tr2.Cursor().(*tree.Leaf).Selected())

	// nameless load falls back to the most recently saved query
	tr3, err := tree.Build(testSchema())
	require.NoError(t, err)
	require.NoError(t, store.Load(ctx, "", tr3))
	require.True(t, tr3.Cursor().(*tree.Leaf).Selected())

	names, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"myquery"}, names)

	require.NoError(t, store.Clear(ctx))
	names, err = store.List(ctx)
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestStoreLoadWithNoRecentQuery(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := persistence.NewStore("file://" + dir + "?create_dir=true&no_tmp_dir=true")
	defer store.Close()

	tr, err := tree.Build(testSchema())
	require.NoError(t, err)
	err = store.Load(ctx, "", tr)
	require.ErrorIs(t, err, persistence.ErrNoRecentQuery)
}

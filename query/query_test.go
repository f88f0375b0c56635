package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqt/internal/schema"
	"github.com/shyptr/gqt/query"
	"github.com/shyptr/gqt/tree"
)

func nonNull(t schema.TypeRef) schema.TypeRef {
	return schema.TypeRef{Kind: schema.NonNull, OfType: &t}
}

// heroSchema models a small Star-Wars-shaped API: an interface with two
// implementors, a union, an enum argument, and an input object argument —
// enough surface to exercise fragments, __typename, and variables.
func heroSchema() *schema.Document {
	idRef := nonNull(schema.TypeRef{Kind: schema.Scalar, Name: "ID"})
	stringRef := schema.TypeRef{Kind: schema.Scalar, Name: "String"}
	episodeRef := schema.TypeRef{Kind: schema.Enum, Name: "Episode"}
	characterRef := schema.TypeRef{Kind: schema.Interface, Name: "Character"}
	searchResultRef := schema.TypeRef{Kind: schema.Union, Name: "SearchResult"}
	humanRef := schema.TypeRef{Kind: schema.Object, Name: "Human"}
	droidRef := schema.TypeRef{Kind: schema.Object, Name: "Droid"}
	filterRef := schema.TypeRef{Kind: schema.InputObject, Name: "HeroFilter"}

	return &schema.Document{Schema: schema.Schema{
		QueryType:    &schema.NamedRef{Name: "Query"},
		MutationType: &schema.NamedRef{Name: "Mutation"},
		Types: []schema.FullType{
			{
				Kind: schema.Object,
				Name: "Query",
				Fields: []schema.Field{
					{Name: "hero", Type: characterRef, Args: []schema.InputValue{
						{Name: "episode", Type: episodeRef},
						{Name: "filter", Type: filterRef},
					}},
					{Name: "search", Type: searchResultRef, Args: []schema.InputValue{
						{Name: "term", Type: nonNull(stringRef)},
					}},
				},
			},
			{
				Kind: schema.Object,
				Name: "Mutation",
				Fields: []schema.Field{
					{Name: "createHuman", Type: humanRef, Args: []schema.InputValue{
						{Name: "name", Type: nonNull(stringRef)},
					}},
				},
			},
			{
				Kind:       schema.Interface,
				Name:       "Character",
				Fields:     []schema.Field{{Name: "id", Type: idRef}, {Name: "name", Type: stringRef}},
				PossibleTypes: []schema.TypeRef{humanRef, droidRef},
			},
			{
				Kind:          schema.Union,
				Name:          "SearchResult",
				PossibleTypes: []schema.TypeRef{humanRef, droidRef},
			},
			{
				Kind: schema.Object,
				Name: "Human",
				Fields: []schema.Field{
					{Name: "id", Type: idRef},
					{Name: "name", Type: stringRef},
					{Name: "homePlanet", Type: stringRef},
				},
			},
			{
				Kind: schema.Object,
				Name: "Droid",
				Fields: []schema.Field{
					{Name: "id", Type: idRef},
					{Name: "name", Type: stringRef},
					{Name: "primaryFunction", Type: stringRef},
				},
			},
			{
				Kind: schema.Enum,
				Name: "Episode",
				EnumValues: []schema.EnumValue{
					{Name: "NEWHOPE"}, {Name: "EMPIRE"}, {Name: "JEDI"},
				},
			},
			{
				Kind: schema.InputObject,
				Name: "HeroFilter",
				InputFields: []schema.InputValue{
					{Name: "minAge", Type: schema.TypeRef{Kind: schema.Scalar, Name: "Int"}},
				},
			},
		},
	}}
}

func findChild(n tree.Node, name string) tree.Node {
	for c := n.(*tree.Object).Fields().First(); c != nil; c = c.Next() {
		if c.NodeName() == name {
			return c
		}
	}
	return nil
}

func TestBuildNoSelectionIsAnError(t *testing.T) {
	tr, err := tree.Build(heroSchema())
	require.NoError(t, err)
	_, err = query.Build(tr)
	assert.Error(t, err)
}

func TestBuildInterfaceFragmentAndEnumArgument(t *testing.T) {
	tr, err := tree.Build(heroSchema())
	require.NoError(t, err)

	hero := findChild(tr.Root(), "hero").(*tree.Object)
	id := findChild(hero, "id").(*tree.Leaf)
	id.Select()
	humanFrag := findChild(hero, "... on Human").(*tree.Object)
	homePlanet := findChild(humanFrag, "homePlanet").(*tree.Leaf)
	homePlanet.Select()

	episode := findChild(hero, "episode").(*tree.EnumArgument)
	episode.SetValue("JEDI")
	episode.Select() // toggle selection symbol on

	q, err := query.Build(tr)
	require.NoError(t, err)
	assert.Contains(t, q, "hero(episode:JEDI)")
	assert.Contains(t, q, "... on Human {homePlanet}")
	assert.Contains(t, q, "id")
}

func TestBuildUnionEmitsTypename(t *testing.T) {
	tr, err := tree.Build(heroSchema())
	require.NoError(t, err)

	search := findChild(tr.Root(), "search").(*tree.Object)
	typename := findChild(search, "__typename").(*tree.Leaf)
	typename.Select()
	term := findChild(search, "term").(*tree.ScalarArgument)
	term.SetValue("vader")
	term.Select()

	q, err := query.Build(tr)
	require.NoError(t, err)
	assert.Contains(t, q, `search(term:"vader")`)
	assert.Contains(t, q, "__typename")
}

func TestBuildVariablesAppearInHeader(t *testing.T) {
	tr, err := tree.Build(heroSchema())
	require.NoError(t, err)

	hero := findChild(tr.Root(), "hero").(*tree.Object)
	id := findChild(hero, "id").(*tree.Leaf)
	id.Select()
	episode := findChild(hero, "episode").(*tree.EnumArgument)
	episode.Key("v") // switch to $episode variable
	require.True(t, episode.IsVariable())

	search := findChild(tr.Root(), "search").(*tree.Object)
	searchTypename := findChild(search, "__typename").(*tree.Leaf)
	searchTypename.Select()
	term := findChild(search, "term").(*tree.ScalarArgument)
	term.Key("v") // a second, differently named variable

	// This schema has no two same-named arguments of different types on
	// one operation side, so no conflict can be forced here; the test
	// checks that both distinct variables round-trip into the header, in
	// the order they were registered.
	q, err := query.Build(tr)
	require.NoError(t, err)
	assert.Contains(t, q, "query Query($episode:Episode,$term:String!)")
}

func TestBuildMutationRouting(t *testing.T) {
	tr, err := tree.Build(heroSchema())
	require.NoError(t, err)

	createHuman := findChild(tr.Root(), "createHuman").(*tree.Object)
	id := findChild(createHuman, "id").(*tree.Leaf)
	id.Select()
	name := findChild(createHuman, "name").(*tree.ScalarArgument)
	name.SetValue("Leia")
	name.Select()
	tr.SetCursor(createHuman) // query_root(cursor) picks the mutation half

	q, err := query.Build(tr)
	require.NoError(t, err)
	assert.Contains(t, q, "mutation Mutation")
	assert.Contains(t, q, `createHuman(name:"Leia")`)
}

func TestBuildOnlySerializesCursorRoot(t *testing.T) {
	tr, err := tree.Build(heroSchema())
	require.NoError(t, err)

	hero := findChild(tr.Root(), "hero").(*tree.Object)
	findChild(hero, "id").(*tree.Leaf).Select()

	createHuman := findChild(tr.Root(), "createHuman").(*tree.Object)
	findChild(createHuman, "id").(*tree.Leaf).Select()
	nameArg := findChild(createHuman, "name").(*tree.ScalarArgument)
	nameArg.SetValue("Leia")
	nameArg.Select()

	// Cursor on the query side: only hero is serialized, even though
	// createHuman also has active fields.
	tr.SetCursor(hero)
	q, err := query.Build(tr)
	require.NoError(t, err)
	assert.Contains(t, q, "query Query")
	assert.NotContains(t, q, "createHuman")

	// Moving the cursor to the mutation side flips query_root entirely.
	tr.SetCursor(createHuman)
	q, err = query.Build(tr)
	require.NoError(t, err)
	assert.Contains(t, q, "mutation Mutation")
	assert.NotContains(t, q, "hero")
}

func listArgSchema() *schema.Document {
	stringListRef := schema.TypeRef{Kind: schema.List, OfType: &schema.TypeRef{Kind: schema.Scalar, Name: "String"}}
	return &schema.Document{Schema: schema.Schema{
		QueryType: &schema.NamedRef{Name: "Query"},
		Types: []schema.FullType{
			{
				Kind: schema.Object,
				Name: "Query",
				Fields: []schema.Field{
					{Name: "a", Type: schema.TypeRef{Kind: schema.Scalar, Name: "String"}, Args: []schema.InputValue{
						{Name: "b", Type: stringListRef},
					}},
				},
			},
		},
	}}
}

// TestBuildListArgumentNullAndValues walks the unambiguous portion of the
// trailing-placeholder list mechanic: appending slots by expanding the
// trailing one, a slot with no value rendering as a literal null, a set
// value rendering as itself, and a collapsed slot contributing nothing.
func TestBuildListArgumentNullAndValues(t *testing.T) {
	tr, err := tree.Build(listArgSchema())
	require.NoError(t, err)

	a := findChild(tr.Root(), "a").(*tree.Leaf)
	a.Select()
	b := a.Arguments().First().(*tree.ListArgument)
	require.Equal(t, "b", b.NodeName())
	b.Expand()
	require.Equal(t, 1, b.Items().Len())

	q, err := query.Build(tr)
	require.NoError(t, err)
	assert.Contains(t, q, "a(b:[])")

	first := b.Items().First().(*tree.ListItem)
	first.Select() // expand the trailing slot: materializes it, appends a new trailing
	require.Equal(t, 2, b.Items().Len())

	q, err = query.Build(tr)
	require.NoError(t, err)
	assert.Contains(t, q, "a(b:[null])")

	firstElem := first.Element().(*tree.ScalarArgument)
	firstElem.SetValue("g")

	q, err = query.Build(tr)
	require.NoError(t, err)
	assert.Contains(t, q, `a(b:["g"])`)

	second := b.Items().All()[1].(*tree.ListItem)
	second.Select() // expand the new trailing slot
	require.Equal(t, 3, b.Items().Len())

	q, err = query.Build(tr)
	require.NoError(t, err)
	assert.Contains(t, q, `a(b:["g", null])`)

	first.Select() // collapse the first item; it contributes nothing now
	q, err = query.Build(tr)
	require.NoError(t, err)
	assert.Contains(t, q, "a(b:[null])")

	require.True(t, first.Key("backspace")) // non-trailing: removable
	require.Equal(t, 2, b.Items().Len())
	third := b.Items().All()[1].(*tree.ListItem)
	require.True(t, third.IsTrailing())
	require.False(t, third.Key("backspace")) // trailing: refuses removal
}

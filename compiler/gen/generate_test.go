package gen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/autostruct/names"
	"github.com/syssam/autostruct/schema"
	"github.com/syssam/autostruct/schema/field"
)

// stubMapper resolves a fixed set of native names and degrades the rest to
// custom-named descriptors, the same contract every dialect mapper honors.
type stubMapper struct{}

func (stubMapper) MapType(name string) *field.TypeInfo {
	switch name {
	case "int4":
		return field.New(field.TypeInt32)
	case "int8":
		return field.New(field.TypeInt64)
	case "text":
		return field.New(field.TypeString)
	case "timestamptz":
		return field.New(field.TypeTimestampTZ)
	case "uuid":
		return field.New(field.TypeUUID)
	case "_int4":
		return field.Slice(field.New(field.TypeInt32))
	default:
		return field.Custom(names.Pascal(name))
	}
}

func strp(s string) *string { return &s }

func testDatabase(t *testing.T) *schema.Database {
	t.Helper()
	tables, err := schema.Tables([]schema.ColumnRow{
		{TableName: "users", ColumnName: "id", UDTName: "int4", IsPrimaryKey: true},
		{TableName: "users", ColumnName: "email", UDTName: "text", IsNullable: true},
		{TableName: "users", ColumnName: "mood", UDTName: "mood"},
		{TableName: "posts", ColumnName: "id", UDTName: "int8", IsPrimaryKey: true},
		{TableName: "posts", ColumnName: "author_id", UDTName: "int4", ForeignKeyTable: strp("users"), ForeignKeyColumn: strp("id")},
		{TableName: "posts", ColumnName: "published_at", UDTName: "timestamptz", IsNullable: true},
	})
	require.NoError(t, err)
	enums, err := schema.Enums([]schema.EnumValueRow{
		{Name: "mood", Value: "happy", SortOrder: 1},
		{Name: "mood", Value: "sad", SortOrder: 2},
	})
	require.NoError(t, err)
	return &schema.Database{Enums: enums, Tables: tables}
}

func generateAll(t *testing.T, db *schema.Database, opts ...Option) []*Snippet {
	t.Helper()
	g, err := NewGenerator(stubMapper{}, opts...)
	require.NoError(t, err)
	snippets, err := g.Generate(context.Background(), db)
	require.NoError(t, err)
	return snippets
}

func TestGenerate(t *testing.T) {
	snippets := generateAll(t, testDatabase(t))
	require.Len(t, snippets, 3)

	// Output order follows assembly order: enums, then tables.
	mood, users, posts := snippets[0], snippets[1], snippets[2]
	assert.Equal(t, "Mood", mood.Ident)
	assert.Equal(t, "Users", users.Ident)
	assert.Equal(t, "Posts", posts.Ident)

	assert.Contains(t, users.Text, "type Users struct")
	assert.Contains(t, users.Text, "ID int32")
	assert.Contains(t, users.Text, "Email *string")
	assert.Contains(t, users.Text, "Mood Mood")
	assert.Equal(t, []string{"Mood"}, users.Dependencies(), "enum-typed column registers a dependency edge")

	assert.Contains(t, posts.Text, "PublishedAt *time.Time")
	assert.Equal(t, []string{"time"}, posts.Imports())
	assert.Equal(t, []string{"Users"}, posts.Dependencies(), "foreign key registers a dependency edge")
	assert.Contains(t, posts.Text, "// Requires sibling declaration: Users")
}

func TestGenerateEnum(t *testing.T) {
	snippets := generateAll(t, testDatabase(t))
	mood := snippets[0]
	assert.Contains(t, mood.Text, "type Mood string")
	assert.Contains(t, mood.Text, `MoodHappy Mood = "happy"`)
	assert.Contains(t, mood.Text, `MoodSad Mood = "sad"`)
	assert.Contains(t, mood.Text, "func (Mood) Values() []string")
	assert.Empty(t, mood.Imports())
	assert.Empty(t, mood.Dependencies())
}

func TestGenerateSingularNames(t *testing.T) {
	snippets := generateAll(t, testDatabase(t), WithSingularNames())
	assert.Equal(t, "User", snippets[1].Ident)
	assert.Equal(t, "Post", snippets[2].Ident)
	assert.Contains(t, snippets[1].Text, "type User struct")
	assert.Equal(t, []string{"User"}, snippets[2].Dependencies())
}

func TestGenerateStructTag(t *testing.T) {
	snippets := generateAll(t, testDatabase(t), WithStructTag("db"))
	assert.Contains(t, snippets[1].Text, "`db:\"email\"`")
	assert.Contains(t, snippets[2].Text, "`db:\"published_at\"`")
}

func TestGenerateComposite(t *testing.T) {
	composites, err := schema.CompositeTypes([]schema.AttributeRow{
		{Name: "address", AttributeName: "street", DataType: "text"},
		{Name: "address", AttributeName: "mood", DataType: "mood"},
	})
	require.NoError(t, err)
	enums, err := schema.Enums([]schema.EnumValueRow{{Name: "mood", Value: "happy", SortOrder: 1}})
	require.NoError(t, err)

	snippets := generateAll(t, &schema.Database{Enums: enums, CompositeTypes: composites})
	require.Len(t, snippets, 2)
	addr := snippets[1]
	assert.Equal(t, "Address", addr.Ident)
	assert.Contains(t, addr.Text, "Street string")
	assert.Contains(t, addr.Text, "Mood Mood")
	assert.Equal(t, []string{"Mood"}, addr.Dependencies())
}

func TestGenerateUnknownTypeDegrades(t *testing.T) {
	tables, err := schema.Tables([]schema.ColumnRow{
		{TableName: "shapes", ColumnName: "area", UDTName: "geometry"},
	})
	require.NoError(t, err)

	snippets := generateAll(t, &schema.Database{Tables: tables})
	require.Len(t, snippets, 1)
	assert.Contains(t, snippets[0].Text, "Area Geometry")
	assert.Equal(t, []string{"Geometry"}, snippets[0].Dependencies(), "unmapped type becomes a caller-supplied placeholder")
}

func TestGenerateStrictTypes(t *testing.T) {
	tables, err := schema.Tables([]schema.ColumnRow{
		{TableName: "shapes", ColumnName: "area", UDTName: "geometry"},
	})
	require.NoError(t, err)

	g, err := NewGenerator(stubMapper{}, WithStrictTypes())
	require.NoError(t, err)
	_, err = g.Generate(context.Background(), &schema.Database{Tables: tables})
	require.ErrorIs(t, err, ErrUnknownType)

	var genErr *GenError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "Shapes", genErr.Entity)
	assert.Equal(t, "area", genErr.Field)
	assert.Equal(t, "geometry", genErr.NativeType)
}

func TestGenerateDeterministic(t *testing.T) {
	db := testDatabase(t)
	first := generateAll(t, db, WithWorkers(4))
	second := generateAll(t, db, WithWorkers(1))
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Text, second[i].Text, "output is independent of scheduling")
	}
}

func TestNewGeneratorNilMapper(t *testing.T) {
	_, err := NewGenerator(nil)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestOptions(t *testing.T) {
	_, err := NewGenerator(stubMapper{}, WithStructTag("not a tag"))
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	_, err = NewGenerator(stubMapper{}, WithWorkers(0))
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	_, err = NewGenerator(stubMapper{}, WithWorkers(8), WithStructTag("json"))
	require.NoError(t, err)
}

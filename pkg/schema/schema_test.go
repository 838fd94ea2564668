package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/schemakit/pkg/pattern"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

func signup() *schema.Schema {
	return schema.New(
		schema.Named("username", &schema.Field{Kind: schema.KindString, Required: true, Trim: true, Lowercase: true, MinLength: schema.Ptr(3)}),
		schema.Named("age", &schema.Field{Kind: schema.KindNumber, Min: schema.Ptr(18.0), Integer: true}),
		schema.Named("address", &schema.Field{Kind: schema.KindObject, Schema: schema.New(
			schema.Named("zip", &schema.Field{Kind: schema.KindString, Format: &pattern.Config{Type: pattern.Zip, Country: "US"}}),
			schema.Named("city", &schema.Field{Kind: schema.KindString}),
		)}),
		schema.Named("plan", &schema.Field{Kind: schema.KindSelect, Options: []any{"free", "pro"}}),
		schema.Named("tags", &schema.Field{Kind: schema.KindArray, Separator: ",", ElementType: &schema.Field{Kind: schema.KindString}}),
	)
}

func TestSchema_Order(t *testing.T) {
	t.Parallel()

	t.Run("keeps declaration order", func(t *testing.T) {
		s := signup()
		assert.Equal(t, []string{"username", "age", "address", "plan", "tags"}, s.Names())
		assert.Equal(t, 5, s.Len())
	})

	t.Run("set replaces in place", func(t *testing.T) {
		s := signup()
		s.Set("age", &schema.Field{Kind: schema.KindFloat})
		assert.Equal(t, []string{"username", "age", "address", "plan", "tags"}, s.Names())

		f, ok := s.Get("age")
		require.True(t, ok)
		assert.Equal(t, schema.KindFloat, f.Kind)
	})

	t.Run("all iterates in order and stops early", func(t *testing.T) {
		var seen []string
		for name := range signup().All() {
			seen = append(seen, name)
			if name == "address" {
				break
			}
		}
		assert.Equal(t, []string{"username", "age", "address"}, seen)
	})

	t.Run("nil schema is empty", func(t *testing.T) {
		var s *schema.Schema
		assert.Zero(t, s.Len())
		assert.Nil(t, s.Names())
		_, ok := s.Get("x")
		assert.False(t, ok)
	})
}

func TestSchema_JSON(t *testing.T) {
	t.Parallel()

	t.Run("round trips preserving order", func(t *testing.T) {
		original := signup()

		data, err := json.Marshal(original)
		require.NoError(t, err)

		decoded, err := schema.ParseJSON(data)
		require.NoError(t, err)
		assert.Equal(t, original.Names(), decoded.Names())

		again, err := json.Marshal(decoded)
		require.NoError(t, err)
		assert.Equal(t, string(data), string(again))
	})

	t.Run("decodes document order, not sorted order", func(t *testing.T) {
		s, err := schema.ParseJSON([]byte(`{"zeta":{"kind":"string"},"alpha":{"kind":"number","min":1}}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"zeta", "alpha"}, s.Names())

		f, _ := s.Get("alpha")
		require.NotNil(t, f.Min)
		assert.Equal(t, 1.0, *f.Min)
	})

	t.Run("decodes nested schemas in order", func(t *testing.T) {
		s, err := schema.ParseJSON([]byte(`{"address":{"kind":"object","schema":{"zip":{"kind":"string"},"city":{"kind":"string"}}}}`))
		require.NoError(t, err)
		f, _ := s.Get("address")
		assert.Equal(t, []string{"zip", "city"}, f.Schema.Names())
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		_, err := schema.ParseJSON([]byte(`{"a":{"kind":"string"},"a":{"kind":"number"}}`))
		assert.ErrorIs(t, err, schema.ErrDuplicateField)
	})

	t.Run("rejects non objects", func(t *testing.T) {
		_, err := schema.ParseJSON([]byte(`[1,2]`))
		assert.ErrorIs(t, err, schema.ErrNotAMapping)
	})
}

func TestSchema_YAML(t *testing.T) {
	t.Parallel()

	doc := `
username:
  kind: string
  required: true
  trim: true
  minLength: 3
  messages:
    minLength: too short
address:
  kind: object
  schema:
    zip:
      kind: string
      pattern: '\d{5,6}'
scores:
  kind: record
  valueSchema:
    kind: number
`

	t.Run("decodes in document order", func(t *testing.T) {
		s, err := schema.ParseYAML([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, []string{"username", "address", "scores"}, s.Names())

		f, _ := s.Get("username")
		assert.Equal(t, "too short", f.Messages["minLength"])
		require.NotNil(t, f.MinLength)
		assert.Equal(t, 3, *f.MinLength)
	})

	t.Run("round trips through yaml and json", func(t *testing.T) {
		s, err := schema.ParseYAML([]byte(doc))
		require.NoError(t, err)

		out, err := yaml.Marshal(s)
		require.NoError(t, err)
		back, err := schema.ParseYAML(out)
		require.NoError(t, err)

		a, err := json.Marshal(s)
		require.NoError(t, err)
		b, err := json.Marshal(back)
		require.NoError(t, err)
		if diff := cmp.Diff(string(a), string(b)); diff != "" {
			t.Errorf("yaml round trip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects sequences", func(t *testing.T) {
		_, err := schema.ParseYAML([]byte("- a\n- b\n"))
		assert.ErrorIs(t, err, schema.ErrNotAMapping)
	})
}

func TestParse(t *testing.T) {
	t.Parallel()

	format, ok := schema.FormatFromPath("schemas/signup.yml")
	require.True(t, ok)
	assert.Equal(t, schema.FormatYAML, format)

	_, ok = schema.FormatFromPath("README.md")
	assert.False(t, ok)

	_, err := schema.Parse([]byte(`{}`), "toml")
	assert.ErrorIs(t, err, schema.ErrUnknownFormat)

	s, err := schema.Parse([]byte(`{"a":{"kind":"string"}}`), schema.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	data, err := schema.Marshal(s, schema.FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: string")
}

func TestKind(t *testing.T) {
	t.Parallel()

	assert.Len(t, schema.Kinds(), 23)
	for _, k := range schema.Kinds() {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, schema.Kind("matrix").Valid())
	assert.True(t, schema.KindRecord.IsComposite())
	assert.False(t, schema.KindLiteral.IsComposite())
	assert.True(t, schema.KindTel.IsText())
	assert.True(t, schema.KindEnum.IsChoice())
}

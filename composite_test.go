package schemakit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/schema"
	"github.com/dmitrymomot/schemakit/pkg/validator"
)

func TestValidate_Object(t *testing.T) {
	t.Parallel()

	s := schema.New(
		schema.Named("address", &schema.Field{Kind: schema.KindObject, Schema: schema.New(
			schema.Named("street", &schema.Field{Kind: schema.KindString, Trim: true}),
			schema.Named("zip", &schema.Field{Kind: schema.KindString, Pattern: `\d{5,6}`}),
		)}),
	)

	t.Run("reports nested paths", func(t *testing.T) {
		t.Parallel()

		res := validate(t, s, map[string]any{"address": map[string]any{"zip": "123", "street": " Main St "}})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "address.zip", res.Errors[0].Field)
		assert.Equal(t, validator.CodePattern, res.Errors[0].Code)
		assert.Equal(t, map[string]any{"street": "Main St", "zip": "123"}, res.Value["address"])
	})

	t.Run("accepts string maps", func(t *testing.T) {
		t.Parallel()

		res := validate(t, s, map[string]any{"address": map[string]string{"zip": "12345"}})
		require.True(t, res.Valid())
		assert.Equal(t, map[string]any{"street": nil, "zip": "12345"}, res.Value["address"])
	})

	t.Run("rejects non objects", func(t *testing.T) {
		t.Parallel()

		res := validate(t, s, map[string]any{"address": "Main St"})
		assert.Equal(t, map[string]string{"address": validator.CodeType}, res.Errors.Codes())
		assert.Equal(t, "Main St", res.Value["address"])
	})
}

func TestValidate_Array(t *testing.T) {
	t.Parallel()

	t.Run("reports element paths and keeps order", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Named("scores", &schema.Field{Kind: schema.KindArray, ElementType: &schema.Field{Kind: schema.KindNumber}}))
		res := validate(t, s, map[string]any{"scores": []any{"1", "x", 3}})

		assert.Equal(t, map[string]string{"scores.1": validator.CodeType}, res.Errors.Codes())
		assert.Equal(t, []any{float64(1), "x", float64(3)}, res.Value["scores"])
	})

	t.Run("empty array is valid unless required", func(t *testing.T) {
		t.Parallel()

		el := &schema.Field{Kind: schema.KindString}
		s := schema.New(
			schema.Named("optional", &schema.Field{Kind: schema.KindArray, ElementType: el}),
			schema.Named("required", &schema.Field{Kind: schema.KindArray, ElementType: el, Required: true}),
		)
		res := validate(t, s, map[string]any{"optional": []any{}, "required": []string{}})
		assert.Equal(t, map[string]string{"required": validator.CodeRequired}, res.Errors.Codes())
	})

	t.Run("splits strings on the separator", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Named("tags", &schema.Field{
			Kind:        schema.KindArray,
			Separator:   ",",
			MinItems:    schema.Ptr(2),
			ElementType: &schema.Field{Kind: schema.KindString, Lowercase: true},
		}))

		res := validate(t, s, map[string]any{"tags": "Go, Rust,,SQL"})
		require.True(t, res.Valid(), res.Errors.Error())
		assert.Equal(t, []any{"go", "rust", "sql"}, res.Value["tags"])

		res = validate(t, s, map[string]any{"tags": "Go"})
		assert.Equal(t, map[string]string{"tags": validator.CodeMinItems}, res.Errors.Codes())
		assert.Equal(t, "must have at least 2 items", res.Errors.Get("tags"))
	})

	t.Run("item bounds do not stop element checks", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Named("ids", &schema.Field{
			Kind:        schema.KindArray,
			MaxItems:    schema.Ptr(1),
			ElementType: &schema.Field{Kind: schema.KindNumber},
		}))
		res := validate(t, s, map[string]any{"ids": []any{1, "two"}})
		assert.Equal(t, []string{"ids", "ids.1"}, res.Errors.Fields())
		assert.Equal(t, validator.CodeMaxItems, res.Errors.Codes()["ids"])
	})

	t.Run("rejects scalars", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Named("ids", &schema.Field{Kind: schema.KindArray, ElementType: &schema.Field{Kind: schema.KindNumber}}))
		res := validate(t, s, map[string]any{"ids": 12})
		assert.Equal(t, map[string]string{"ids": validator.CodeType}, res.Errors.Codes())
	})
}

func TestValidate_Tuple(t *testing.T) {
	t.Parallel()

	s := schema.New(schema.Named("point", &schema.Field{
		Kind: schema.KindTuple,
		TupleSchemas: []*schema.Field{
			{Kind: schema.KindString, Trim: true},
			{Kind: schema.KindNumber, Min: schema.Ptr(0.0)},
		},
	}))

	t.Run("validates each position", func(t *testing.T) {
		t.Parallel()

		res := validate(t, s, map[string]any{"point": []any{" a ", "2"}})
		require.True(t, res.Valid(), res.Errors.Error())
		assert.Equal(t, []any{"a", float64(2)}, res.Value["point"])

		res = validate(t, s, map[string]any{"point": []any{"a", -1}})
		assert.Equal(t, map[string]string{"point.1": validator.CodeMin}, res.Errors.Codes())
	})

	t.Run("length mismatch is a single error", func(t *testing.T) {
		t.Parallel()

		res := validate(t, s, map[string]any{"point": []any{"a", "not a number", 3}})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "point", res.Errors[0].Field)
		assert.Equal(t, validator.CodeTupleLength, res.Errors[0].Code)
		assert.Equal(t, "must have exactly 2 items", res.Errors[0].Message)
		assert.Equal(t, []any{"a", "not a number", 3}, res.Value["point"])
	})
}

func TestValidate_Record(t *testing.T) {
	t.Parallel()

	s := schema.New(schema.Named("scores", &schema.Field{
		Kind:        schema.KindRecord,
		ValueSchema: &schema.Field{Kind: schema.KindNumber},
	}))

	t.Run("one bad value yields one record error", func(t *testing.T) {
		t.Parallel()

		res := validate(t, s, map[string]any{"scores": map[string]any{"a": 1, "b": "x"}})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "scores", res.Errors[0].Field)
		assert.Equal(t, validator.CodeRecord, res.Errors[0].Code)
		assert.Equal(t, []string{"b"}, res.Errors[0].TranslationValues["keys"])
		assert.Equal(t, map[string]any{"a": float64(1), "b": "x"}, res.Value["scores"])
	})

	t.Run("uses the record message", func(t *testing.T) {
		t.Parallel()

		custom := schema.New(schema.Named("scores", &schema.Field{
			Kind:               schema.KindRecord,
			RecordErrorMessage: "invalid scores: %{keys}",
			ValueSchema:        &schema.Field{Kind: schema.KindNumber, Max: schema.Ptr(100.0)},
		}))
		res := validate(t, custom, map[string]any{"scores": map[string]any{"math": 101, "art": 120, "bio": 90}})
		assert.Equal(t, "invalid scores: art, math", res.Errors.Get("scores"))
	})

	t.Run("valid record", func(t *testing.T) {
		t.Parallel()

		res := validate(t, s, map[string]any{"scores": map[string]any{"math": "90"}})
		require.True(t, res.Valid())
		assert.Equal(t, map[string]any{"math": float64(90)}, res.Value["scores"])
	})
}

func TestValidate_Union(t *testing.T) {
	t.Parallel()

	numberOrString := schema.New(schema.Named("id", &schema.Field{
		Kind:  schema.KindUnion,
		Types: []*schema.Field{{Kind: schema.KindNumber}, {Kind: schema.KindString}},
	}))

	t.Run("first matching alternative wins", func(t *testing.T) {
		t.Parallel()

		res := validate(t, numberOrString, map[string]any{"id": "42"})
		require.True(t, res.Valid())
		assert.Equal(t, float64(42), res.Value["id"])

		res = validate(t, numberOrString, map[string]any{"id": "abc"})
		require.True(t, res.Valid())
		assert.Equal(t, "abc", res.Value["id"])
	})

	t.Run("declaration order decides ties", func(t *testing.T) {
		t.Parallel()

		stringFirst := schema.New(schema.Named("id", &schema.Field{
			Kind:  schema.KindUnion,
			Types: []*schema.Field{{Kind: schema.KindString}, {Kind: schema.KindNumber}},
		}))
		res := validate(t, stringFirst, map[string]any{"id": "42"})
		assert.Equal(t, "42", res.Value["id"])
	})

	t.Run("no match yields a union error", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Named("flag", &schema.Field{
			Kind:              schema.KindUnion,
			UnionErrorMessage: "expected a number or a yes/no",
			Types:             []*schema.Field{{Kind: schema.KindNumber}, {Kind: schema.KindBoolean}},
		}))
		res := validate(t, s, map[string]any{"flag": "perhaps"})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, validator.CodeUnion, res.Errors[0].Code)
		assert.Equal(t, "expected a number or a yes/no", res.Errors[0].Message)
		assert.Equal(t, "perhaps", res.Value["flag"])
	})

	t.Run("object alternatives", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Named("payment", &schema.Field{
			Kind: schema.KindUnion,
			Types: []*schema.Field{
				{Kind: schema.KindObject, Schema: schema.New(
					schema.Named("method", &schema.Field{Kind: schema.KindLiteral, Value: "card", Required: true}),
					schema.Named("number", &schema.Field{Kind: schema.KindString, Required: true}),
				)},
				{Kind: schema.KindObject, Schema: schema.New(
					schema.Named("method", &schema.Field{Kind: schema.KindLiteral, Value: "bank", Required: true}),
					schema.Named("iban", &schema.Field{Kind: schema.KindString, Required: true, Uppercase: true}),
				)},
			},
		}))

		res := validate(t, s, map[string]any{"payment": map[string]any{"method": "bank", "iban": "de89"}})
		require.True(t, res.Valid(), res.Errors.Error())
		assert.Equal(t, map[string]any{"method": "bank", "iban": "DE89"}, res.Value["payment"])

		res = validate(t, s, map[string]any{"payment": map[string]any{"method": "cash"}})
		assert.Equal(t, map[string]string{"payment": validator.CodeUnion}, res.Errors.Codes())
	})
}

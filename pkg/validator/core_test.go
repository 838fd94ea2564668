package validator_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/validator"
)

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	t.Run("returns default message when no errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
	})

	t.Run("returns formatted message in report order", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "email", Message: "is required"})
		errs.Add(validator.ValidationError{Field: "password", Message: "too short"})
		assert.Equal(t, "validation failed: email: is required; password: too short", errs.Error())
	})
}

func TestValidationErrors_Lookup(t *testing.T) {
	t.Parallel()

	errs := validator.ValidationErrors{
		{Field: "address.zip", Code: validator.CodePattern, Message: "has an invalid format"},
		{Field: "hobbies.0", Code: validator.CodeMinLength, Message: "too short"},
	}

	t.Run("has", func(t *testing.T) {
		assert.True(t, errs.Has("address.zip"))
		assert.False(t, errs.Has("address"))
	})

	t.Run("get returns message", func(t *testing.T) {
		assert.Equal(t, "too short", errs.Get("hobbies.0"))
		assert.Empty(t, errs.Get("missing"))
	})

	t.Run("lookup returns the descriptor", func(t *testing.T) {
		got, ok := errs.Lookup("address.zip")
		require.True(t, ok)
		assert.Equal(t, validator.CodePattern, got.Code)
	})

	t.Run("fields and codes", func(t *testing.T) {
		assert.Equal(t, []string{"address.zip", "hobbies.0"}, errs.Fields())
		assert.Equal(t, map[string]string{
			"address.zip": validator.CodePattern,
			"hobbies.0":   validator.CodeMinLength,
		}, errs.Codes())
	})
}

func TestValidationErrors_JSON(t *testing.T) {
	t.Parallel()

	errs := validator.ValidationErrors{
		{Field: "zeta", Code: "required", Message: "field is required"},
		{Field: "alpha", Code: "min", Message: "must be at least 1"},
	}

	t.Run("encodes an object in report order", func(t *testing.T) {
		data, err := json.Marshal(errs)
		require.NoError(t, err)
		assert.JSONEq(t, `{"zeta":{"code":"required","message":"field is required"},"alpha":{"code":"min","message":"must be at least 1"}}`, string(data))
		assert.Less(t, strings.Index(string(data), "zeta"), strings.Index(string(data), "alpha"))
	})

	t.Run("empty errors encode as empty object", func(t *testing.T) {
		data, err := json.Marshal(validator.ValidationErrors{})
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
	})

	t.Run("decodes preserving order", func(t *testing.T) {
		data, err := json.Marshal(errs)
		require.NoError(t, err)

		var decoded validator.ValidationErrors
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, []string{"zeta", "alpha"}, decoded.Fields())
		assert.Equal(t, "min", decoded[1].Code)
	})

	t.Run("rejects non objects", func(t *testing.T) {
		var decoded validator.ValidationErrors
		assert.ErrorIs(t, json.Unmarshal([]byte(`[]`), &decoded), validator.ErrNotAnObject)
	})
}

func TestFirst(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when all rules pass", func(t *testing.T) {
		assert.Nil(t, validator.First(
			validator.MinLength("name", "john", 2),
			validator.MaxLength("name", "john", 10),
		))
	})

	t.Run("returns the first failing rule only", func(t *testing.T) {
		err := validator.First(
			validator.MinLength("name", "j", 2),
			validator.MaxLength("name", "j", 0),
		)
		require.NotNil(t, err)
		assert.Equal(t, validator.CodeMinLength, err.Code)
		assert.Equal(t, "name", err.Field)
		assert.Equal(t, "validation.minLength", err.TranslationKey)
		assert.Equal(t, 2, err.TranslationValues["min"])
	})

	t.Run("later rules are not evaluated", func(t *testing.T) {
		called := false
		validator.First(
			validator.Required("x", false),
			validator.Rule{Check: func() bool { called = true; return true }},
		)
		assert.False(t, called)
	})
}

func TestApply(t *testing.T) {
	t.Parallel()

	err := validator.Apply(
		validator.Required("email", false),
		validator.MinLength("password", "123", 8),
		validator.Min("age", 20, 18),
	)
	require.Error(t, err)
	require.True(t, validator.IsValidationError(err))

	verrs := validator.ExtractValidationErrors(fmt.Errorf("wrapped: %w", err))
	assert.Equal(t, []string{"email", "password"}, verrs.Fields())

	assert.NoError(t, validator.Apply(validator.Required("email", true)))
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("other")))
	assert.False(t, validator.IsValidationError(nil))
}

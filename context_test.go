package schemakit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/schemakit"
)

func TestLanguageFromContext(t *testing.T) {
	t.Parallel()

	t.Run("returns language set on the context", func(t *testing.T) {
		t.Parallel()

		ctx := schemakit.WithLanguage(context.Background(), "es-MX")
		lang, ok := schemakit.LanguageFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "es-MX", lang)
	})

	t.Run("reports missing language", func(t *testing.T) {
		t.Parallel()

		_, ok := schemakit.LanguageFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("treats empty language as missing", func(t *testing.T) {
		t.Parallel()

		_, ok := schemakit.LanguageFromContext(schemakit.WithLanguage(context.Background(), ""))
		assert.False(t, ok)
	})
}

func TestSchemaNameFromContext(t *testing.T) {
	t.Parallel()

	ctx := schemakit.WithSchemaName(context.Background(), "signup")
	assert.Equal(t, "signup", schemakit.SchemaNameFromContext(ctx))
	assert.Empty(t, schemakit.SchemaNameFromContext(context.Background()))
}

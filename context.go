package schemakit

import "context"

type (
	languageKey   struct{}
	schemaNameKey struct{}
)

// WithLanguage selects the message language for validations run with ctx.
// Tags are negotiated against the catalog, so "es-MX" yields Spanish.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageKey{}, lang)
}

// LanguageFromContext returns the language set by WithLanguage.
func LanguageFromContext(ctx context.Context) (string, bool) {
	lang, ok := ctx.Value(languageKey{}).(string)
	return lang, ok && lang != ""
}

// WithSchemaName labels validations run with ctx for logs and metrics.
func WithSchemaName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, schemaNameKey{}, name)
}

// SchemaNameFromContext returns the label set by WithSchemaName.
func SchemaNameFromContext(ctx context.Context) string {
	name, _ := ctx.Value(schemaNameKey{}).(string)
	return name
}

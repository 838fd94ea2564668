// Package schemakit validates and sanitizes records against declarative schemas.
//
// A schema is an ordered mapping from field names to field descriptions
// (see package schema). It is compiled once into an immutable plan and then
// reused by any number of concurrent validations.
//
// Key Features:
//
//   - Closed set of field kinds, resolved once at compile time
//   - Sanitization before validation, echoed back even for invalid fields
//   - Nested objects, arrays, tuples, records and unions
//   - One error per path, reported in declaration order
//   - Sync and async custom validators with access to the whole record
//   - Localized default messages with per-field overrides
//
// Basic Usage:
//
//	s := schema.New(
//		schema.Named("email", &schema.Field{Kind: schema.KindEmail, Required: true, Trim: true, Lowercase: true}),
//		schema.Named("age", &schema.Field{Kind: schema.KindNumber, Min: schema.Ptr(18.0)}),
//	)
//
//	res, err := schemakit.Validate(ctx, s, map[string]any{"email": " A@B.io ", "age": "17"})
//	if err != nil {
//		// schema misconfiguration, failed async validator or canceled context
//	}
//	if !res.Valid() {
//		fmt.Println(res.Errors.Get("age")) // must be at least 18
//	}
//
// Validation Pipeline:
//
// Every primitive field goes through sanitization, the required check, type
// coercion and constraint checks. The first failing constraint is the
// field's only error. Custom validators run afterwards, and only for fields
// whose value passed everything else. Async validators of the same nesting
// level run concurrently; deeper levels finish first.
//
// Composite Fields:
//
//   - object reports child errors under "parent.child"
//   - array and tuple report element errors under "field.0"
//   - a tuple of the wrong length reports a single tupleLength error
//   - record reports a single record error for any invalid entry
//   - union takes the first alternative that validates
//
// Errors:
//
// Invalid input never produces an error return. Validate returns an error
// only for faults: a *schema.SchemaError for a misconfigured schema, an
// error wrapping ErrValidatorFault when a custom validator fails or panics,
// or the context's error.
//
// Languages:
//
// Default messages come from a messages.Catalog. WithLanguage selects the
// language for a call:
//
//	ctx = schemakit.WithLanguage(ctx, "es")
//
// Form Libraries:
//
// NewResolver binds a schema to a Validator and returns values plus a
// path-keyed FieldErrors map, the shape most form libraries expect.
package schemakit

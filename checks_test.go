package schemakit_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit"
	"github.com/dmitrymomot/schemakit/pkg/async"
	"github.com/dmitrymomot/schemakit/pkg/schema"
	"github.com/dmitrymomot/schemakit/pkg/validator"
)

func TestValidate_CustomValidators(t *testing.T) {
	t.Parallel()

	t.Run("cross field check sees the sanitized record", func(t *testing.T) {
		t.Parallel()

		s := schema.New(
			schema.Named("password", &schema.Field{Kind: schema.KindPassword, Required: true, Trim: true}),
			schema.Named("confirm", &schema.Field{
				Kind:     schema.KindPassword,
				Required: true,
				Trim:     true,
				Validate: func(v any, rec schema.Record) string {
					if v != rec["password"] {
						return "passwords do not match"
					}
					return ""
				},
			}),
		)

		res := validate(t, s, map[string]any{"password": " secret1 ", "confirm": "secret1"})
		assert.True(t, res.Valid(), res.Errors.Error())

		res = validate(t, s, map[string]any{"password": "secret1", "confirm": "secret2"})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "confirm", res.Errors[0].Field)
		assert.Equal(t, validator.CodeCustom, res.Errors[0].Code)
		assert.Equal(t, "passwords do not match", res.Errors[0].Message)
	})

	t.Run("not invoked when earlier stages fail", func(t *testing.T) {
		t.Parallel()

		var syncCalls, asyncCalls atomic.Int32
		s := schema.New(schema.Named("username", &schema.Field{
			Kind:      schema.KindString,
			Required:  true,
			MinLength: schema.Ptr(3),
			Validate: func(any, schema.Record) string {
				syncCalls.Add(1)
				return ""
			},
			ValidateAsync: func(context.Context, any, schema.Record) (string, error) {
				asyncCalls.Add(1)
				return "", nil
			},
		}))

		for _, input := range []map[string]any{{}, {"username": "ab"}} {
			res := validate(t, s, input)
			assert.False(t, res.Valid())
		}
		assert.Zero(t, syncCalls.Load())
		assert.Zero(t, asyncCalls.Load())

		assert.True(t, validate(t, s, map[string]any{"username": "abc"}).Valid())
		assert.EqualValues(t, 1, syncCalls.Load())
		assert.EqualValues(t, 1, asyncCalls.Load())
	})

	t.Run("async skipped when sync validator fails", func(t *testing.T) {
		t.Parallel()

		var asyncCalls atomic.Int32
		s := schema.New(schema.Named("code", &schema.Field{
			Kind:     schema.KindString,
			Validate: func(any, schema.Record) string { return "bad code" },
			ValidateAsync: func(context.Context, any, schema.Record) (string, error) {
				asyncCalls.Add(1)
				return "", nil
			},
		}))

		res := validate(t, s, map[string]any{"code": "x"})
		assert.Equal(t, "bad code", res.Errors.Get("code"))
		assert.Zero(t, asyncCalls.Load())
	})

	t.Run("custom message override", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Named("card", &schema.Field{
			Kind:      schema.KindString,
			Validator: "luhn",
			Messages:  map[string]string{"custom": "check the card number"},
		}))
		res := validate(t, s, map[string]any{"card": "4111 1111 1111 1112"})
		assert.Equal(t, "check the card number", res.Errors.Get("card"))
		assert.True(t, validate(t, s, map[string]any{"card": "4111 1111 1111 1111"}).Valid())
	})

	t.Run("named validators from compile options", func(t *testing.T) {
		t.Parallel()

		s, err := schema.ParseJSON([]byte(`{"handle": {"kind": "string", "asyncValidator": "available"}}`))
		require.NoError(t, err)

		v := schemakit.New(schemakit.WithCompileOptions(
			schema.WithAsyncValidator("available", func(_ context.Context, v any, _ schema.Record) (string, error) {
				if v == "admin" {
					return "already taken", nil
				}
				return "", nil
			}),
		))
		res, err := v.Validate(context.Background(), s, map[string]any{"handle": "admin"})
		require.NoError(t, err)
		assert.Equal(t, "already taken", res.Errors.Get("handle"))
	})

	t.Run("parent validator skipped when a child fails", func(t *testing.T) {
		t.Parallel()

		var parentCalls atomic.Int32
		s := schema.New(schema.Named("range", &schema.Field{
			Kind: schema.KindObject,
			Validate: func(any, schema.Record) string {
				parentCalls.Add(1)
				return "from must be before to"
			},
			Schema: schema.New(
				schema.Named("from", &schema.Field{
					Kind:     schema.KindNumber,
					Validate: func(any, schema.Record) string { return "bad start" },
				}),
				schema.Named("to", &schema.Field{Kind: schema.KindNumber}),
			),
		}))

		res := validate(t, s, map[string]any{"range": map[string]any{"from": 1, "to": 2}})
		assert.Equal(t, map[string]string{"range.from": validator.CodeCustom}, res.Errors.Codes())
		assert.Zero(t, parentCalls.Load())
	})

	t.Run("record value failures become the record error", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Named("stock", &schema.Field{
			Kind: schema.KindRecord,
			ValueSchema: &schema.Field{
				Kind: schema.KindNumber,
				ValidateAsync: func(_ context.Context, v any, _ schema.Record) (string, error) {
					if v.(float64) < 0 {
						return "negative stock", nil
					}
					return "", nil
				},
			},
		}))

		res := validate(t, s, map[string]any{"stock": map[string]any{"apples": 3, "pears": -1, "plums": -2}})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "stock", res.Errors[0].Field)
		assert.Equal(t, validator.CodeRecord, res.Errors[0].Code)
		assert.Equal(t, []string{"pears", "plums"}, res.Errors[0].TranslationValues["keys"])
	})

	t.Run("union falls through when a sync validator rejects", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Named("id", &schema.Field{
			Kind: schema.KindUnion,
			Types: []*schema.Field{
				{Kind: schema.KindString, Validate: func(v any, _ schema.Record) string {
					if v != "admin" {
						return "not admin"
					}
					return ""
				}},
				{Kind: schema.KindString, Uppercase: true},
			},
		}))

		res := validate(t, s, map[string]any{"id": "bob"})
		require.True(t, res.Valid(), res.Errors.Error())
		assert.Equal(t, "BOB", res.Value["id"])

		res = validate(t, s, map[string]any{"id": "admin"})
		require.True(t, res.Valid())
		assert.Equal(t, "admin", res.Value["id"])
	})

	t.Run("union with no passing validator yields a union error", func(t *testing.T) {
		t.Parallel()

		reject := func(any, schema.Record) string { return "rejected" }
		s := schema.New(schema.Named("id", &schema.Field{
			Kind:  schema.KindUnion,
			Types: []*schema.Field{{Kind: schema.KindString, Validate: reject}, {Kind: schema.KindNumber, Validate: reject}},
		}))

		res := validate(t, s, map[string]any{"id": "7"})
		assert.Equal(t, map[string]string{"id": validator.CodeUnion}, res.Errors.Codes())
		assert.Equal(t, "7", res.Value["id"])
	})

	t.Run("nested validators decide the union trial", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Named("contact", &schema.Field{
			Kind: schema.KindUnion,
			Types: []*schema.Field{
				{Kind: schema.KindObject, Schema: schema.New(
					schema.Named("email", &schema.Field{Kind: schema.KindEmail, Required: true, Validate: func(v any, _ schema.Record) string {
						if v == "root@example.com" {
							return "reserved"
						}
						return ""
					}}),
				)},
				{Kind: schema.KindObject, Schema: schema.New(
					schema.Named("email", &schema.Field{Kind: schema.KindString, Required: true}),
					schema.Named("note", &schema.Field{Kind: schema.KindString}),
				)},
			},
		}))

		res := validate(t, s, map[string]any{"contact": map[string]any{"email": "root@example.com"}})
		require.True(t, res.Valid(), res.Errors.Error())
		assert.Equal(t, map[string]any{"email": "root@example.com", "note": nil}, res.Value["contact"])
	})

	t.Run("union winner async failures report at the union path", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Named("id", &schema.Field{
			Kind: schema.KindUnion,
			Types: []*schema.Field{
				{Kind: schema.KindNumber, ValidateAsync: func(_ context.Context, v any, _ schema.Record) (string, error) {
					if v.(float64) > 10 {
						return "too big", nil
					}
					return "", nil
				}},
				{Kind: schema.KindString},
			},
		}))

		res := validate(t, s, map[string]any{"id": 42})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "id", res.Errors[0].Field)
		assert.Equal(t, validator.CodeCustom, res.Errors[0].Code)
		assert.Equal(t, "too big", res.Errors[0].Message)
	})

	t.Run("sync panic during a union trial is a fault", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Named("id", &schema.Field{
			Kind: schema.KindUnion,
			Types: []*schema.Field{
				{Kind: schema.KindString, Validate: func(any, schema.Record) string { panic("boom") }},
				{Kind: schema.KindString},
			},
		}))

		_, err := schemakit.New().Validate(context.Background(), s, map[string]any{"id": "x"})
		require.ErrorIs(t, err, schemakit.ErrValidatorFault)
	})

	t.Run("losing alternatives never run validators", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		s := schema.New(schema.Named("id", &schema.Field{
			Kind: schema.KindUnion,
			Types: []*schema.Field{
				{Kind: schema.KindNumber, Max: schema.Ptr(1.0), Validate: func(any, schema.Record) string {
					calls.Add(1)
					return ""
				}},
				{Kind: schema.KindString},
			},
		}))

		res := validate(t, s, map[string]any{"id": "5"})
		require.True(t, res.Valid())
		assert.Equal(t, "5", res.Value["id"])
		assert.Zero(t, calls.Load())
	})

	t.Run("array elements", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Named("emails", &schema.Field{
			Kind: schema.KindArray,
			ElementType: &schema.Field{Kind: schema.KindEmail, ValidateAsync: func(_ context.Context, v any, _ schema.Record) (string, error) {
				if v == "taken@example.com" {
					return "already registered", nil
				}
				return "", nil
			}},
		}))

		res := validate(t, s, map[string]any{"emails": []any{"a@example.com", "taken@example.com"}})
		assert.Equal(t, map[string]string{"emails.1": validator.CodeCustom}, res.Errors.Codes())
	})
}

func TestValidate_AsyncConcurrency(t *testing.T) {
	t.Parallel()

	t.Run("validators of one level run concurrently", func(t *testing.T) {
		t.Parallel()

		const delay = 150 * time.Millisecond
		slow := func(ctx context.Context, _ any, _ schema.Record) (string, error) {
			select {
			case <-time.After(delay):
				return "", nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		s := schema.New(
			schema.Named("a", &schema.Field{Kind: schema.KindString, ValidateAsync: slow}),
			schema.Named("b", &schema.Field{Kind: schema.KindString, ValidateAsync: slow}),
			schema.Named("c", &schema.Field{Kind: schema.KindString, ValidateAsync: slow}),
		)

		start := time.Now()
		res := validate(t, s, map[string]any{"a": "1", "b": "2", "c": "3"})
		elapsed := time.Since(start)

		assert.True(t, res.Valid())
		assert.GreaterOrEqual(t, elapsed, delay)
		assert.Less(t, elapsed, 3*delay)
	})

	t.Run("error order ignores completion order", func(t *testing.T) {
		t.Parallel()

		failLater := func(ctx context.Context, v any, _ schema.Record) (string, error) {
			time.Sleep(time.Duration(rand.IntN(20)) * time.Millisecond)
			return fmt.Sprintf("rejected %v", v), nil
		}

		names := []string{"f0", "f1", "f2", "f3", "f4", "f5"}
		fields := make([]schema.NamedField, 0, len(names)+1)
		data := make(map[string]any, len(names)+1)
		fields = append(fields, schema.Named("nested", &schema.Field{Kind: schema.KindObject, Schema: schema.New(
			schema.Named("inner", &schema.Field{Kind: schema.KindString, ValidateAsync: failLater}),
		)}))
		data["nested"] = map[string]any{"inner": "x"}
		for _, name := range names {
			fields = append(fields, schema.Named(name, &schema.Field{Kind: schema.KindString, ValidateAsync: failLater}))
			data[name] = name
		}
		s := schema.New(fields...)

		want := append([]string{"nested.inner"}, names...)
		for range 10 {
			res := validate(t, s, data)
			assert.Equal(t, want, res.Errors.Fields())
			assert.Equal(t, "rejected f3", res.Errors.Get("f3"))
		}
	})
}

func TestValidate_ValidatorFaults(t *testing.T) {
	t.Parallel()

	errBackend := errors.New("backend unavailable")

	t.Run("async error is returned, not reported", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Named("email", &schema.Field{
			Kind: schema.KindString,
			ValidateAsync: func(context.Context, any, schema.Record) (string, error) {
				return "", errBackend
			},
		}))

		res, err := schemakit.New().Validate(context.Background(), s, map[string]any{"email": "a@b.io"})
		assert.Nil(t, res)
		require.ErrorIs(t, err, schemakit.ErrValidatorFault)
		require.ErrorIs(t, err, errBackend)
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("async panic is returned", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Named("email", &schema.Field{
			Kind: schema.KindString,
			ValidateAsync: func(context.Context, any, schema.Record) (string, error) {
				panic("boom")
			},
		}))

		_, err := schemakit.New().Validate(context.Background(), s, map[string]any{"email": "a@b.io"})
		require.ErrorIs(t, err, schemakit.ErrValidatorFault)
		assert.ErrorIs(t, err, async.ErrPanic)
	})

	t.Run("sync panic is returned", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Named("email", &schema.Field{
			Kind:     schema.KindString,
			Validate: func(any, schema.Record) string { panic("boom") },
		}))

		_, err := schemakit.New().Validate(context.Background(), s, map[string]any{"email": "a@b.io"})
		require.ErrorIs(t, err, schemakit.ErrValidatorFault)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("cancellation during async validation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		s := schema.New(schema.Named("email", &schema.Field{
			Kind: schema.KindString,
			ValidateAsync: func(ctx context.Context, _ any, _ schema.Record) (string, error) {
				cancel()
				<-ctx.Done()
				return "", ctx.Err()
			},
		}))

		_, err := schemakit.New().Validate(ctx, s, map[string]any{"email": "a@b.io"})
		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, schemakit.ErrValidatorFault)
	})
}

func TestValidate_CustomKind(t *testing.T) {
	t.Parallel()

	s := schema.New(
		schema.Named("coords", &schema.Field{
			Kind:     schema.KindCustom,
			Required: true,
			Validate: func(v any, _ schema.Record) string {
				if _, ok := v.([]any); !ok {
					return "coords must be a list"
				}
				return ""
			},
		}),
		schema.Named("token", &schema.Field{
			Kind: schema.KindCustom,
			ValidateAsync: func(_ context.Context, v any, _ schema.Record) (string, error) {
				if v != "ok" {
					return "token rejected", nil
				}
				return "", nil
			},
		}),
	)

	t.Run("required check runs before the validator", func(t *testing.T) {
		t.Parallel()

		res := validate(t, s, map[string]any{})
		assert.Equal(t, map[string]string{"coords": validator.CodeRequired}, res.Errors.Codes())
		assert.Equal(t, "field is required", res.Errors.Get("coords"))
		assert.Nil(t, res.Value["token"])
	})

	t.Run("values pass through unchanged", func(t *testing.T) {
		t.Parallel()

		coords := []any{1.5, 2.5}
		res := validate(t, s, map[string]any{"coords": coords, "token": "ok"})
		require.True(t, res.Valid(), res.Errors.Error())
		assert.Equal(t, coords, res.Value["coords"])
		assert.Equal(t, "ok", res.Value["token"])
	})

	t.Run("validator messages become custom errors", func(t *testing.T) {
		t.Parallel()

		res := validate(t, s, map[string]any{"coords": "1,2", "token": "nope"})
		assert.Equal(t, map[string]string{
			"coords": validator.CodeCustom,
			"token":  validator.CodeCustom,
		}, res.Errors.Codes())
		assert.Equal(t, "coords must be a list", res.Errors.Get("coords"))
		assert.Equal(t, "token rejected", res.Errors.Get("token"))
	})
}

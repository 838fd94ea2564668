package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/schemakit/pkg/sanitizer"
)

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		transforms []func(string) string
		expected   string
	}{
		{
			name:       "applies single transform",
			input:      "  hello  ",
			transforms: []func(string) string{sanitizer.Trim},
			expected:   "hello",
		},
		{
			name:       "applies multiple transforms in sequence",
			input:      "  HELLO WORLD  ",
			transforms: []func(string) string{sanitizer.Trim, sanitizer.ToLower},
			expected:   "hello world",
		},
		{
			name:       "handles empty transforms slice",
			input:      "hello world",
			transforms: []func(string) string{},
			expected:   "hello world",
		},
		{
			name:       "handles empty input",
			input:      "",
			transforms: []func(string) string{sanitizer.Trim, sanitizer.ToLower},
			expected:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.Apply(tt.input, tt.transforms...))
		})
	}
}

func TestCompose(t *testing.T) {
	t.Parallel()

	t.Run("creates reusable transformation", func(t *testing.T) {
		clean := sanitizer.Compose(sanitizer.Trim, sanitizer.CollapseWhitespace, sanitizer.ToLower)
		assert.Equal(t, "hello world", clean("  HELLO    WORLD  "))
		assert.Equal(t, "go", clean(" Go "))
	})

	t.Run("empty composition is identity", func(t *testing.T) {
		same := sanitizer.Compose[int]()
		assert.Equal(t, 42, same(42))
	})
}

func TestPipeline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     sanitizer.Options
		input    string
		expected string
	}{
		{
			name:     "zero options leave input unchanged",
			input:    "  Mixed  ",
			expected: "  Mixed  ",
		},
		{
			name:     "trim then lowercase",
			opts:     sanitizer.Options{Trim: true, Lowercase: true},
			input:    "  John.Doe@Example.COM ",
			expected: "john.doe@example.com",
		},
		{
			name:     "trim then uppercase",
			opts:     sanitizer.Options{Trim: true, Uppercase: true},
			input:    " in ",
			expected: "IN",
		},
		{
			name:     "strip html before trimming",
			opts:     sanitizer.Options{StripHTML: true, Trim: true},
			input:    "  <b>bold</b> text ",
			expected: "bold text",
		},
		{
			name:     "collapse whitespace",
			opts:     sanitizer.Options{CollapseWhitespace: true},
			input:    "a \t b\n\nc",
			expected: "a b c",
		},
		{
			name:     "unicode normalization composes accents",
			opts:     sanitizer.Options{Normalize: true},
			input:    "Jose\u0301",
			expected: "Jos\u00e9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.Pipeline(tt.opts)(tt.input))
		})
	}

	t.Run("pipelines are idempotent", func(t *testing.T) {
		t.Parallel()

		opts := sanitizer.Options{
			StripHTML:          true,
			Normalize:          true,
			Trim:               true,
			CollapseWhitespace: true,
			Lowercase:          true,
		}
		clean := sanitizer.Pipeline(opts)
		for _, in := range []string{"  A  B ", "<i>Hi</i>  There", "Jose\u0301", "", "\t"} {
			once := clean(in)
			assert.Equal(t, once, clean(once), "input %q", in)
		}
	})
}

func TestNamed(t *testing.T) {
	t.Parallel()

	fn, ok := sanitizer.Named("digits")
	assert.True(t, ok)
	assert.Equal(t, "4155552671", fn("(415) 555-2671"))

	_, ok = sanitizer.Named("rot13")
	assert.False(t, ok)
}

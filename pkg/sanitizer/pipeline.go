package sanitizer

// Options selects the built-in string transforms of a field.
type Options struct {
	StripHTML          bool
	Normalize          bool
	Trim               bool
	CollapseWhitespace bool
	Lowercase          bool
	Uppercase          bool
}

// IsZero reports whether no transform is enabled.
func (o Options) IsZero() bool {
	return o == Options{}
}

// Pipeline builds the transform chain for opts in its fixed order:
// strip html, unicode normalization, trim, whitespace collapse, then case.
// Every stage is idempotent, so is the whole chain.
func Pipeline(opts Options) func(string) string {
	var chain []func(string) string

	if opts.StripHTML {
		chain = append(chain, StripHTML)
	}
	if opts.Normalize {
		chain = append(chain, NormalizeUnicode)
	}
	if opts.Trim {
		chain = append(chain, Trim)
	}
	if opts.CollapseWhitespace {
		chain = append(chain, CollapseWhitespace)
	}
	switch {
	case opts.Lowercase:
		chain = append(chain, ToLower)
	case opts.Uppercase:
		chain = append(chain, ToUpper)
	}

	return Compose(chain...)
}

var named = map[string]func(string) string{
	"trim":               Trim,
	"lowercase":          ToLower,
	"uppercase":          ToUpper,
	"collapseWhitespace": CollapseWhitespace,
	"normalize":          NormalizeUnicode,
	"stripHtml":          StripHTML,
	"digits":             KeepDigits,
	"removeControlChars": RemoveControlChars,
	"singleLine":         SingleLine,
	"kebabCase":          ToKebabCase,
	"snakeCase":          ToSnakeCase,
}

// Named returns a built-in string transform by name.
// Serialized schemas reference transforms this way.
func Named(name string) (func(string) string, bool) {
	fn, ok := named[name]
	return fn, ok
}

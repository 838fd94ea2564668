package pattern

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// Type names a pattern generator.
type Type string

const (
	Phone        Type = "phone"
	Zip          Type = "zip"
	Email        Type = "email"
	URL          Type = "url"
	UUID         Type = "uuid"
	Color        Type = "color"
	CountryCode  Type = "countryCode"
	SemVer       Type = "semver"
	SocialHandle Type = "socialHandle"
	CreditCard   Type = "creditCard"
	Slug         Type = "slug"
	IPv4         Type = "ipv4"
	Alphanumeric Type = "alphanumeric"
)

// Config selects and parameterizes a generator.
// Zero-valued parameters select the generator's default variant.
type Config struct {
	Type        Type   `json:"type" yaml:"type"`
	Country     string `json:"country,omitempty" yaml:"country,omitempty"`
	Version     int    `json:"version,omitempty" yaml:"version,omitempty"`
	ColorFormat string `json:"colorFormat,omitempty" yaml:"colorFormat,omitempty"`
	Alpha       int    `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	Platform    string `json:"platform,omitempty" yaml:"platform,omitempty"`
	Brand       string `json:"brand,omitempty" yaml:"brand,omitempty"`
	// Fragment leaves the pattern unanchored so it can be embedded in a larger expression.
	Fragment bool `json:"fragment,omitempty" yaml:"fragment,omitempty"`
}

// Pattern is a compiled expression that remembers its source.
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// Build returns the pattern generated for cfg.
func Build(cfg Config) (Pattern, error) {
	gen, ok := generators[cfg.Type]
	if !ok {
		return Pattern{}, fmt.Errorf("%w: %q", ErrUnknownType, cfg.Type)
	}

	body, err := gen(cfg)
	if err != nil {
		return Pattern{}, err
	}

	source := body
	if !cfg.Fragment {
		source = Anchor(body)
	}

	re, err := regexp.Compile(source)
	if err != nil {
		return Pattern{}, errors.Join(ErrInvalidSource, err)
	}
	return Pattern{source: source, re: re}, nil
}

// MustBuild is like Build but panics on error.
// Intended for package-level pattern variables.
func MustBuild(cfg Config) Pattern {
	p, err := Build(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

// Compile turns a user-supplied source into a full-string pattern.
func Compile(source string) (Pattern, error) {
	anchored := Anchor(source)
	re, err := regexp.Compile(anchored)
	if err != nil {
		return Pattern{}, errors.Join(ErrInvalidSource, err)
	}
	return Pattern{source: anchored, re: re}, nil
}

// Anchor wraps source so that it only matches the whole input.
// Sources carrying their own anchors are wrapped too: "^a|b$" would otherwise
// match any string ending in "b".
func Anchor(source string) string {
	return "^(?:" + source + ")$"
}

// Source returns the textual expression.
func (p Pattern) Source() string { return p.source }

// String implements fmt.Stringer.
func (p Pattern) String() string { return p.source }

// Regexp returns the compiled expression, nil for the zero Pattern.
func (p Pattern) Regexp() *regexp.Regexp { return p.re }

// MatchString reports whether s matches. The zero Pattern matches nothing.
func (p Pattern) MatchString(s string) bool {
	if p.re == nil {
		return false
	}
	return p.re.MatchString(s)
}

// IsZero reports whether the pattern was never built.
func (p Pattern) IsZero() bool { return p.re == nil }

// MarshalJSON encodes the pattern as its source string.
func (p Pattern) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.source)
}

// UnmarshalJSON compiles the source string as-is.
func (p *Pattern) UnmarshalJSON(data []byte) error {
	var source string
	if err := json.Unmarshal(data, &source); err != nil {
		return err
	}
	re, err := regexp.Compile(source)
	if err != nil {
		return errors.Join(ErrInvalidSource, err)
	}
	p.source, p.re = source, re
	return nil
}

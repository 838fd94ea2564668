// Package pattern is a catalog of named, parameterized regular expression
// generators used by schema fields that need a well-known format.
//
// A Config selects the generator by Type and narrows it with optional
// parameters such as Country for phone numbers and postal codes, Version for
// UUIDs or Platform for social handles. Build returns a Pattern wrapping the
// compiled expression together with its textual source, so the same value can
// be embedded into a field description and serialized back to JSON.
//
// # Anchoring
//
// Every generated pattern matches the whole input ("^...$") unless the config
// sets Fragment, in which case the anchors are omitted and the pattern can be
// composed into a larger expression.
//
// # Usage
//
//	zip, err := pattern.Build(pattern.Config{Type: pattern.Zip, Country: "US"})
//	if err != nil {
//	    // unknown type or unsupported parameter
//	}
//	zip.MatchString("94105-1234") // true
//
// Build is pure: identical configs always produce identical sources.
package pattern

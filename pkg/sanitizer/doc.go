// Package sanitizer provides the string normalisation stage of field
// validation: small, pure transforms and helpers to chain them.
//
// The transforms fall into two groups:
//
//   - Built-in field options – Trim, ToLower, ToUpper, CollapseWhitespace,
//     NormalizeUnicode (NFC via golang.org/x/text) and StripHTML (bluemonday
//     strict policy). Pipeline chains the enabled ones in a fixed order.
//
//   - Named transforms – KeepDigits, SingleLine, ToKebabCase and friends,
//     looked up with Named so serialized schemas can reference them.
//
// Apply and Compose build ad-hoc pipelines of any func(T) T:
//
//	clean := sanitizer.Compose(
//	    sanitizer.Trim,
//	    sanitizer.CollapseWhitespace,
//	    sanitizer.ToLower,
//	)
//
//	safe := clean("  Mixed CASE   Input\n") // "mixed case input"
//
// SplitList turns delimited user input ("go, rust , ,zig") into a clean slice
// and backs the separator option of array fields.
//
// # Error handling
//
// None of the helpers returns an error; they always produce a value.
//
// # Concurrency
//
// There is no mutable global state apart from the lazily built HTML policy,
// which is safe for concurrent use, so every helper may be called from
// multiple goroutines.
package sanitizer

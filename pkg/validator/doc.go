// Package validator provides the leaf building blocks of the schema engine:
// coded validation rules, input coercion helpers and the ordered error
// collection returned to callers.
//
// A Rule couples a boolean Check with a ValidationError carrying a stable
// Code ("required", "minLength", "pattern", ...), a default English message
// and translation metadata (TranslationKey "validation.<code>" plus named
// TranslationValues) so that messages can be localized later.
//
// # Single error per field
//
// Fields report at most one error. First evaluates rules in declaration
// order and returns the first failure:
//
//	if err := validator.First(
//	    validator.MinLength("name", name, 2),
//	    validator.MaxLength("name", name, 50),
//	    validator.MatchesPattern("name", name, nameRe),
//	); err != nil {
//	    // err.Code == "minLength", ...
//	}
//
// Apply keeps the collect-everything behaviour for ad-hoc checks outside a
// schema.
//
// # Coercion
//
// ToNumber, ToBool, ToTime and ToString convert raw form input into typed
// values; IsEmpty defines what "not provided" means for required checks and
// Equal compares option values across numeric Go types.
//
// # Errors
//
// ValidationErrors is an ordered slice that implements error. Its JSON form
// is an object keyed by path, {"address.zip": {"code": "pattern", "message":
// "..."}}, written in report order.
package validator

package validator

// Rule codes reported in ValidationError.Code.
const (
	CodeRequired    = "required"
	CodeType        = "type"
	CodeMinLength   = "minLength"
	CodeMaxLength   = "maxLength"
	CodeMin         = "min"
	CodeMax         = "max"
	CodeInteger     = "integer"
	CodeMinDate     = "minDate"
	CodeMaxDate     = "maxDate"
	CodePattern     = "pattern"
	CodeOptions     = "options"
	CodeLiteral     = "literal"
	CodeMinItems    = "minItems"
	CodeMaxItems    = "maxItems"
	CodeTupleLength = "tupleLength"
	CodeUnion       = "union"
	CodeRecord      = "record"
	CodeCustom      = "custom"
)

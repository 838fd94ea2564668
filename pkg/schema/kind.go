package schema

// Kind is the closed set of field kinds a schema may declare.
type Kind string

const (
	KindString   Kind = "string"
	KindNumber   Kind = "number"
	KindFloat    Kind = "float"
	KindBoolean  Kind = "boolean"
	KindEmail    Kind = "email"
	KindURL      Kind = "url"
	KindTel      Kind = "tel"
	KindDate     Kind = "date"
	KindDateTime Kind = "datetime"
	KindColor    Kind = "color"
	KindSelect   Kind = "select"
	KindRadio    Kind = "radio"
	KindCheckbox Kind = "checkbox"
	KindPassword Kind = "password"
	KindTextarea Kind = "textarea"
	KindObject   Kind = "object"
	KindArray    Kind = "array"
	KindUnion    Kind = "union"
	KindTuple    Kind = "tuple"
	KindRecord   Kind = "record"
	KindLiteral  Kind = "literal"
	KindEnum     Kind = "enum"
	KindCustom   Kind = "custom"
)

var kinds = []Kind{
	KindString, KindNumber, KindFloat, KindBoolean, KindEmail, KindURL, KindTel,
	KindDate, KindDateTime, KindColor, KindSelect, KindRadio, KindCheckbox,
	KindPassword, KindTextarea, KindObject, KindArray, KindUnion, KindTuple,
	KindRecord, KindLiteral, KindEnum, KindCustom,
}

// Kinds returns every supported kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	for _, known := range kinds {
		if k == known {
			return true
		}
	}
	return false
}

// IsComposite reports whether fields of this kind are built from other fields.
func (k Kind) IsComposite() bool {
	switch k {
	case KindObject, KindArray, KindUnion, KindTuple, KindRecord:
		return true
	}
	return false
}

// IsText reports whether the kind holds free text.
func (k Kind) IsText() bool {
	switch k {
	case KindString, KindEmail, KindURL, KindTel, KindColor, KindPassword, KindTextarea:
		return true
	}
	return false
}

// IsNumeric reports whether values of the kind coerce to float64.
func (k Kind) IsNumeric() bool {
	return k == KindNumber || k == KindFloat
}

// IsTemporal reports whether values of the kind coerce to time.Time.
func (k Kind) IsTemporal() bool {
	return k == KindDate || k == KindDateTime
}

// IsChoice reports whether the kind validates membership in options.
func (k Kind) IsChoice() bool {
	switch k {
	case KindSelect, KindRadio, KindEnum:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }

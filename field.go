package schemakit

import (
	"time"

	"github.com/dmitrymomot/schemakit/pkg/schema"
	"github.com/dmitrymomot/schemakit/pkg/validator"
)

// sanitize runs the built-in string transforms, then the custom sanitizer.
func sanitize(n *schema.Node, raw any) any {
	v := raw
	if s, ok := v.(string); ok && n.Transform != nil {
		v = n.Transform(s)
	}
	if n.Sanitize != nil && v != nil {
		v = n.Sanitize(v)
	}
	return v
}

// primitive runs the required, coercion and constraint stages. Invalid
// values are echoed sanitized; valid ones are returned coerced.
func (r *run) primitive(n *schema.Node, path string, v any, in *inst, seq int, tgt *target) any {
	if !r.required(n, path, v, in, seq, tgt) {
		return v
	}

	val, ok := coerce(n.Kind, v)
	if !ok {
		r.report(n, seq, tgt, in, validator.TypeMismatch(path, typeName(n.Kind)))
		return v
	}

	if n.Kind == schema.KindCheckbox && n.Required && val == false {
		r.report(n, seq, tgt, in, validator.Required(path, false).Error)
		return v
	}

	if ve := validator.First(constraints(n, path, val)...); ve != nil {
		r.report(n, seq, tgt, in, *ve)
		return v
	}
	return val
}

// choice checks option membership without coercion. A slice is a
// multi-select and every element must be an option.
func (r *run) choice(n *schema.Node, path string, v any, in *inst, seq int, tgt *target) any {
	if !r.required(n, path, v, in, seq, tgt) {
		return v
	}

	if items, ok := asSlice(v); ok {
		for _, item := range items {
			if ve := validator.First(validator.OneOf(path, item, n.Options)); ve != nil {
				r.report(n, seq, tgt, in, *ve)
				return v
			}
		}
		return items
	}

	if ve := validator.First(validator.OneOf(path, v, n.Options)); ve != nil {
		r.report(n, seq, tgt, in, *ve)
	}
	return v
}

func (r *run) literal(n *schema.Node, path string, v any, in *inst, seq int, tgt *target) any {
	if !r.required(n, path, v, in, seq, tgt) {
		return v
	}
	if ve := validator.First(validator.Literal(path, v, n.Literal)); ve != nil {
		r.report(n, seq, tgt, in, *ve)
	}
	return v
}

func coerce(k schema.Kind, v any) (any, bool) {
	switch {
	case k.IsText():
		return validator.ToString(v)
	case k.IsNumeric():
		return validator.ToNumber(v)
	case k == schema.KindBoolean || k == schema.KindCheckbox:
		return validator.ToBool(v)
	case k == schema.KindDate:
		return validator.ToTime(v, true)
	case k == schema.KindDateTime:
		return validator.ToTime(v, false)
	}
	return v, true
}

func typeName(k schema.Kind) string {
	switch {
	case k.IsText():
		return "string"
	case k.IsNumeric():
		return "number"
	case k == schema.KindCheckbox:
		return "boolean"
	}
	return string(k)
}

// constraints lists the rules for a coerced value in evaluation order.
func constraints(n *schema.Node, path string, v any) []validator.Rule {
	var rules []validator.Rule
	switch val := v.(type) {
	case string:
		if n.MinLength != nil {
			rules = append(rules, validator.MinLength(path, val, *n.MinLength))
		}
		if n.MaxLength != nil {
			rules = append(rules, validator.MaxLength(path, val, *n.MaxLength))
		}
		if n.Pattern != nil {
			rules = append(rules, validator.MatchesPattern(path, val, n.Pattern))
		}
	case float64:
		if n.Integer {
			rules = append(rules, validator.Integer(path, val))
		}
		if n.Min != nil {
			rules = append(rules, validator.Min(path, val, *n.Min))
		}
		if n.Max != nil {
			rules = append(rules, validator.Max(path, val, *n.Max))
		}
	case time.Time:
		if n.MinDate != nil {
			rules = append(rules, validator.MinDate(path, val, *n.MinDate))
		}
		if n.MaxDate != nil {
			rules = append(rules, validator.MaxDate(path, val, *n.MaxDate))
		}
	}
	return rules
}

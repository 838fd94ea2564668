package schemakit

import (
	"reflect"
	"sort"
	"strconv"

	"github.com/dmitrymomot/schemakit/pkg/sanitizer"
	"github.com/dmitrymomot/schemakit/pkg/schema"
	"github.com/dmitrymomot/schemakit/pkg/validator"
)

func (r *run) object(n *schema.Node, path string, v any, in *inst, seq, depth int, tgt *target) any {
	if !r.required(n, path, v, in, seq, tgt) {
		return v
	}
	m, ok := asMap(v)
	if !ok {
		r.report(n, seq, tgt, in, validator.TypeMismatch(path, "object"))
		return v
	}

	out := make(map[string]any, len(n.Fields))
	for _, child := range n.Fields {
		out[child.Name], _ = r.resolve(child, join(path, child.Name), m[child.Name], in, depth+1, tgt)
	}
	return out
}

// array validates every element, also when the item count is out of bounds.
func (r *run) array(n *schema.Node, path string, v any, in *inst, seq, depth int, tgt *target) any {
	if s, ok := v.(string); ok && n.Separator != "" {
		parts := sanitizer.SplitList(s, n.Separator)
		items := make([]any, len(parts))
		for i, p := range parts {
			items[i] = p
		}
		v = items
	}
	if !r.required(n, path, v, in, seq, tgt) {
		return v
	}
	items, ok := asSlice(v)
	if !ok {
		r.report(n, seq, tgt, in, validator.TypeMismatch(path, "array"))
		return v
	}

	var rules []validator.Rule
	if n.MinItems != nil {
		rules = append(rules, validator.MinItems(path, len(items), *n.MinItems))
	}
	if n.MaxItems != nil {
		rules = append(rules, validator.MaxItems(path, len(items), *n.MaxItems))
	}
	if ve := validator.First(rules...); ve != nil {
		r.report(n, seq, tgt, in, *ve)
	}

	out := make([]any, len(items))
	for i, item := range items {
		out[i], _ = r.resolve(n.Element, join(path, strconv.Itoa(i)), item, in, depth+1, tgt)
	}
	return out
}

// tuple skips element checks when the length does not match.
func (r *run) tuple(n *schema.Node, path string, v any, in *inst, seq, depth int, tgt *target) any {
	if !r.required(n, path, v, in, seq, tgt) {
		return v
	}
	items, ok := asSlice(v)
	if !ok {
		r.report(n, seq, tgt, in, validator.TypeMismatch(path, "array"))
		return v
	}
	if ve := validator.First(validator.TupleLength(path, len(items), len(n.Items))); ve != nil {
		r.report(n, seq, tgt, in, *ve)
		return items
	}

	out := make([]any, len(items))
	for i, item := range items {
		out[i], _ = r.resolve(n.Items[i], join(path, strconv.Itoa(i)), item, in, depth+1, tgt)
	}
	return out
}

// recordValue validates every entry against the value schema. Invalid
// entries collapse into a single record error at the record's own path.
func (r *run) recordValue(n *schema.Node, path string, v any, in *inst, seq, depth int, tgt *target) any {
	if !r.required(n, path, v, in, seq, tgt) {
		return v
	}
	m, ok := asMap(v)
	if !ok {
		r.report(n, seq, tgt, in, validator.TypeMismatch(path, "object"))
		return v
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rec := &recordState{node: n, path: path, seq: seq, direct: tgt == nil}
	r.records = append(r.records, rec)

	out := make(map[string]any, len(m))
	for _, k := range keys {
		t := &target{kind: targetRecord, path: path, seq: seq, key: k, rec: rec, outer: tgt}
		val, vi := r.resolve(n.Value, join(path, k), m[k], in, depth+1, t)
		out[k] = val
		if vi.failed {
			rec.keys = append(rec.keys, k)
		}
	}
	return out
}

// union tries alternatives in declaration order; the first one without an
// error wins. Sync custom validators are part of the trial. Async validators
// of the winner run later and report at the union's path.
func (r *run) union(n *schema.Node, path string, v any, in *inst, seq, depth int, tgt *target) any {
	if !r.required(n, path, v, in, seq, tgt) {
		return v
	}

	saved := r.checks
	for _, alt := range n.Alternatives {
		r.checks = nil
		trial := &target{kind: targetTrial, path: path, seq: seq}
		out, ai := r.resolve(alt, path, v, nil, depth+1, trial)
		if ai.failed || !r.trialChecks(r.checks) {
			if r.fault != nil {
				r.checks = saved
				return v
			}
			continue
		}

		ai.parent = in
		trial.kind = targetUnion
		trial.outer = tgt
		r.checks = append(saved, r.checks...)
		return out
	}

	r.checks = saved
	r.report(n, seq, tgt, in, validator.Union(path))
	return v
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

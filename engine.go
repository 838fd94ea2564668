package schemakit

import (
	"context"
	"sort"

	"github.com/dmitrymomot/schemakit/pkg/messages"
	"github.com/dmitrymomot/schemakit/pkg/schema"
	"github.com/dmitrymomot/schemakit/pkg/validator"
)

// run is the state of a single Validate call. Nothing in it is shared
// between calls.
type run struct {
	ctx  context.Context
	v    *Validator
	lang string

	seq        int
	errs       []entry
	checks     []*check
	records    []*recordState
	record     schema.Record
	asyncCalls int
	fault      error
}

type entry struct {
	seq int
	err validator.ValidationError
}

// inst is one evaluation of a node. A failure marks the node and every
// ancestor, so a parent's custom validator never sees an invalid subtree.
type inst struct {
	parent *inst
	failed bool
}

func (i *inst) fail() {
	for p := i; p != nil && !p.failed; p = p.parent {
		p.failed = true
	}
}

type targetKind uint8

const (
	targetTrial targetKind = iota
	targetUnion
	targetRecord
)

// target redirects errors raised below a union or a record. Errors under a
// non-nil target are never emitted at their own path.
type target struct {
	kind  targetKind
	path  string
	seq   int
	key   string
	rec   *recordState
	outer *target
}

// recordState collects the invalid keys of one record evaluation.
type recordState struct {
	node   *schema.Node
	path   string
	seq    int
	direct bool
	keys   []string
}

func newRun(ctx context.Context, v *Validator, lang string) *run {
	return &run{ctx: ctx, v: v, lang: lang}
}

// execute resolves every field in declaration order, then runs the custom
// validators collected on the way.
func (r *run) execute(plan *schema.Compiled, data map[string]any) (*Result, error) {
	root := &inst{}
	value := make(map[string]any, len(plan.Fields()))
	r.record = value
	for _, n := range plan.Fields() {
		value[n.Name], _ = r.resolve(n, n.Name, data[n.Name], root, 0, nil)
	}
	if r.fault != nil {
		return nil, r.fault
	}

	if err := r.runChecks(); err != nil {
		return nil, err
	}
	r.flushRecords()

	return &Result{Value: value, Errors: r.collect()}, nil
}

// resolve evaluates raw against n and returns the sanitized value.
func (r *run) resolve(n *schema.Node, path string, raw any, parent *inst, depth int, tgt *target) (any, *inst) {
	in := &inst{parent: parent}
	r.seq++
	seq := r.seq

	v := sanitize(n, raw)
	var out any
	switch n.Resolver {
	case schema.ResolverObject:
		out = r.object(n, path, v, in, seq, depth, tgt)
	case schema.ResolverArray:
		out = r.array(n, path, v, in, seq, depth, tgt)
	case schema.ResolverTuple:
		out = r.tuple(n, path, v, in, seq, depth, tgt)
	case schema.ResolverRecord:
		out = r.recordValue(n, path, v, in, seq, depth, tgt)
	case schema.ResolverUnion:
		out = r.union(n, path, v, in, seq, depth, tgt)
	case schema.ResolverChoice:
		out = r.choice(n, path, v, in, seq, tgt)
	case schema.ResolverLiteral:
		out = r.literal(n, path, v, in, seq, tgt)
	case schema.ResolverCustom:
		out = r.present(n, path, v, in, seq, tgt)
	default:
		out = r.primitive(n, path, v, in, seq, tgt)
	}

	if n.HasCustom() && !in.failed && !validator.IsEmpty(out) {
		r.checks = append(r.checks, &check{
			node:  n,
			path:  path,
			seq:   seq,
			depth: depth,
			in:    in,
			tgt:   tgt,
			value: out,
		})
	}
	return out, in
}

// required applies the required check and reports whether evaluation goes on.
func (r *run) required(n *schema.Node, path string, v any, in *inst, seq int, tgt *target) bool {
	if !validator.IsEmpty(v) {
		return true
	}
	if n.Required {
		r.report(n, seq, tgt, in, validator.Required(path, false).Error)
	}
	return false
}

// present passes a value through after the required check.
func (r *run) present(n *schema.Node, path string, v any, in *inst, seq int, tgt *target) any {
	r.required(n, path, v, in, seq, tgt)
	return v
}

func (r *run) report(n *schema.Node, seq int, tgt *target, in *inst, ve validator.ValidationError) {
	in.fail()
	if tgt != nil {
		return
	}
	r.emit(n, seq, ve)
}

func (r *run) emit(n *schema.Node, seq int, ve validator.ValidationError) {
	ve.Message = r.message(n, ve)
	r.errs = append(r.errs, entry{seq: seq, err: ve})
}

// message resolves the text for ve: the field's override, then the union or
// record message, then the catalog, then the rule default.
func (r *run) message(n *schema.Node, ve validator.ValidationError) string {
	if tmpl, ok := n.Messages[ve.Code]; ok {
		return messages.Format(tmpl, ve.TranslationValues)
	}
	switch {
	case ve.Code == validator.CodeUnion && n.UnionMessage != "":
		return messages.Format(n.UnionMessage, ve.TranslationValues)
	case ve.Code == validator.CodeRecord && n.RecordMessage != "":
		return messages.Format(n.RecordMessage, ve.TranslationValues)
	case ve.Code == validator.CodeCustom:
		return ve.Message
	}
	if msg, ok := r.v.catalog.Translate(r.lang, ve.TranslationKey, ve.TranslationValues); ok {
		return msg
	}
	return ve.Message
}

// flushRecords emits one record error per record with invalid entries.
func (r *run) flushRecords() {
	for _, rec := range r.records {
		if !rec.direct || len(rec.keys) == 0 {
			continue
		}
		r.emit(rec.node, rec.seq, validator.Record(rec.path, uniqueSorted(rec.keys)))
	}
}

// collect orders errors by declaration and keeps the first one per path.
func (r *run) collect() validator.ValidationErrors {
	sort.SliceStable(r.errs, func(i, j int) bool {
		return r.errs[i].seq < r.errs[j].seq
	})

	out := make(validator.ValidationErrors, 0, len(r.errs))
	seen := make(map[string]bool, len(r.errs))
	for _, e := range r.errs {
		if seen[e.err.Field] {
			continue
		}
		seen[e.err.Field] = true
		out = append(out, e.err)
	}
	return out
}

func uniqueSorted(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Strings(out)
	n := 0
	for i, k := range out {
		if i > 0 && k == out[n-1] {
			continue
		}
		out[n] = k
		n++
	}
	return out[:n]
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

package schemakit

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrymomot/schemakit/pkg/async"
	"github.com/dmitrymomot/schemakit/pkg/schema"
	"github.com/dmitrymomot/schemakit/pkg/validator"
)

// check is a pending custom validation of a node that passed every other
// stage.
type check struct {
	node  *schema.Node
	path  string
	seq   int
	depth int
	in    *inst
	tgt   *target
	value any
	// synced is set once the sync validator passed during a union trial.
	synced bool
}

// runChecks evaluates custom validators one nesting level at a time, the
// deepest first, so a failing child skips its parent's validators. Sync
// validators run inline; async validators of a level run concurrently and
// are joined before the next level starts.
func (r *run) runChecks() error {
	if len(r.checks) == 0 {
		return nil
	}

	levels := make(map[int][]*check)
	maxDepth := 0
	for _, c := range r.checks {
		levels[c.depth] = append(levels[c.depth], c)
		maxDepth = max(maxDepth, c.depth)
	}

	for depth := maxDepth; depth >= 0; depth-- {
		level := levels[depth]
		sort.Slice(level, func(i, j int) bool { return level[i].seq < level[j].seq })

		if err := r.runLevel(level); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) runLevel(level []*check) error {
	var pending []*check
	for _, c := range level {
		if c.in.failed {
			continue
		}
		if c.node.Validate != nil && !c.synced {
			msg, err := r.runSync(c)
			if err != nil {
				return err
			}
			if msg != "" {
				r.fail(c, msg)
				continue
			}
		}
		if c.node.ValidateAsync != nil {
			pending = append(pending, c)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	futures := make([]*async.Future[string], len(pending))
	for i, c := range pending {
		futures[i] = async.Async(r.ctx, c, r.runAsync)
	}
	r.asyncCalls += len(pending)

	results, err := async.WaitAll(futures...)
	if err != nil {
		if ctxErr := r.ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", ErrValidatorFault, err)
	}

	// results keep the order of pending, which is declaration order
	for i, msg := range results {
		if msg != "" {
			r.fail(pending[i], msg)
		}
	}
	return r.ctx.Err()
}

// trialChecks runs the sync validators collected while trying one union
// alternative, deepest first, and reports whether all of them passed. A
// failure marks the alternative invalid without reporting anything. Async
// validators stay queued for the checks pass.
func (r *run) trialChecks(checks []*check) bool {
	ordered := append([]*check(nil), checks...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].depth != ordered[j].depth {
			return ordered[i].depth > ordered[j].depth
		}
		return ordered[i].seq < ordered[j].seq
	})

	ok := true
	for _, c := range ordered {
		if c.in.failed || c.node.Validate == nil || c.synced {
			continue
		}
		msg, err := r.runSync(c)
		if err != nil {
			if r.fault == nil {
				r.fault = err
			}
			return false
		}
		if msg != "" {
			c.in.fail()
			ok = false
			continue
		}
		c.synced = true
	}
	return ok
}

func (r *run) runSync(c *check) (msg string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %s: panic: %v", ErrValidatorFault, c.path, p)
		}
	}()
	return c.node.Validate(c.value, r.record), nil
}

func (r *run) runAsync(ctx context.Context, c *check) (string, error) {
	msg, err := c.node.ValidateAsync(ctx, c.value, r.record)
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.path, err)
	}
	return msg, nil
}

// fail reports a custom validator message. Under a record the failure
// becomes the record's error; under a union it moves to the union's path.
// Under a union only async failures of the winner get here; sync ones
// decide the winner during the trial.
func (r *run) fail(c *check, msg string) {
	c.in.fail()

	ve := validator.Custom(c.path, msg)
	ve.Message = r.message(c.node, ve)
	seq := c.seq

	for t := c.tgt; t != nil; t = t.outer {
		switch t.kind {
		case targetRecord:
			t.rec.keys = append(t.rec.keys, t.key)
			if t.rec.direct {
				return
			}
			ve = validator.Record(t.rec.path, uniqueSorted(t.rec.keys))
			ve.Message = r.message(t.rec.node, ve)
			seq = t.rec.seq
		case targetUnion, targetTrial:
			ve.Field = t.path
			seq = t.seq
		}
	}
	r.errs = append(r.errs, entry{seq: seq, err: ve})
}

package schemakit

import (
	"context"
	"time"

	"github.com/dmitrymomot/schemakit/pkg/validator"
)

// Report summarizes one validation for an Observer.
type Report struct {
	Schema     string // label from WithSchemaName, may be empty
	Duration   time.Duration
	Errors     validator.ValidationErrors
	AsyncCalls int
	CacheHit   bool
	Fault      error // non-nil when Validate returned an error
}

// Observer receives a Report after every validation.
// Implementations must be safe for concurrent use.
type Observer interface {
	Observe(ctx context.Context, r Report)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, r Report)

func (f ObserverFunc) Observe(ctx context.Context, r Report) { f(ctx, r) }

type nopObserver struct{}

func (nopObserver) Observe(context.Context, Report) {}

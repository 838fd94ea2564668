package schemakit

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/schemakit/pkg/cache"
	"github.com/dmitrymomot/schemakit/pkg/logger"
	"github.com/dmitrymomot/schemakit/pkg/messages"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// Config holds engine settings loadable from the environment.
type Config struct {
	CacheSize       int    `env:"SCHEMAKIT_CACHE_SIZE" envDefault:"256" validate:"gt=0"`
	DefaultLanguage string `env:"SCHEMAKIT_DEFAULT_LANGUAGE" envDefault:"en" validate:"required"`
}

// Validator validates records against schemas. It is safe for concurrent
// use; compiled plans are shared between calls.
type Validator struct {
	cfg         Config
	logger      *slog.Logger
	catalog     *messages.Catalog
	observer    Observer
	compileOpts []schema.CompileOption
	plans       *cache.LRUCache[*schema.Schema, *schema.Compiled]
}

// Option configures a Validator.
type Option func(*Validator)

// WithConfig replaces the engine settings. Zero fields keep their defaults.
func WithConfig(cfg Config) Option {
	return func(v *Validator) {
		if cfg.CacheSize > 0 {
			v.cfg.CacheSize = cfg.CacheSize
		}
		if cfg.DefaultLanguage != "" {
			v.cfg.DefaultLanguage = cfg.DefaultLanguage
		}
	}
}

// WithLogger sets the logger for compile events and faults. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithCatalog sets the catalog default messages are rendered from.
func WithCatalog(c *messages.Catalog) Option {
	return func(v *Validator) {
		if c != nil {
			v.catalog = c
		}
	}
}

// WithObserver receives a Report after every validation, including ones that
// end in a fault. Nil is ignored.
func WithObserver(o Observer) Option {
	return func(v *Validator) {
		if o != nil {
			v.observer = o
		}
	}
}

// WithCacheSize bounds the number of compiled plans kept in memory.
func WithCacheSize(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.cfg.CacheSize = n
		}
	}
}

// WithCompileOptions passes named validators and sanitizers to every
// compilation done by the Validator.
func WithCompileOptions(opts ...schema.CompileOption) Option {
	return func(v *Validator) {
		v.compileOpts = append(v.compileOpts, opts...)
	}
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		cfg:      Config{CacheSize: 256, DefaultLanguage: messages.DefaultLanguage},
		logger:   logger.Discard(),
		catalog:  messages.Default(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(v)
	}

	v.plans = cache.NewLRUCache[*schema.Schema, *schema.Compiled](v.cfg.CacheSize)
	v.plans.OnEvict(func(_ *schema.Schema, _ *schema.Compiled) {
		v.logger.Debug("compiled schema evicted", logger.Component("schemakit"))
	})
	return v
}

// Catalog returns the message catalog errors are rendered from.
func (v *Validator) Catalog() *messages.Catalog {
	return v.catalog
}

// Compile returns the plan for s, compiling it on first use.
// Plans are cached per schema instance; s must not be modified afterwards.
func (v *Validator) Compile(s *schema.Schema) (*schema.Compiled, error) {
	plan, _, err := v.compile(s)
	return plan, err
}

func (v *Validator) compile(s *schema.Schema) (*schema.Compiled, bool, error) {
	if s == nil {
		return nil, false, ErrNilSchema
	}
	if plan, ok := v.plans.Get(s); ok {
		return plan, true, nil
	}
	plan, err := v.plans.Load(s, func() (*schema.Compiled, error) {
		return schema.Compile(s, v.compileOpts...)
	})
	return plan, false, err
}

// Validate sanitizes and validates data against s.
//
// Invalid input is reported through Result.Errors and never as an error. The
// returned error is non-nil only for system faults: a *schema.SchemaError, a
// custom validator failure (ErrValidatorFault) or a done context.
func (v *Validator) Validate(ctx context.Context, s *schema.Schema, data map[string]any) (*Result, error) {
	start := time.Now()
	plan, hit, err := v.compile(s)
	if err != nil {
		v.finish(ctx, start, nil, 0, hit, err)
		return nil, err
	}
	return v.validate(ctx, plan, data, start, hit)
}

// ValidateCompiled is like Validate for an already compiled plan.
func (v *Validator) ValidateCompiled(ctx context.Context, plan *schema.Compiled, data map[string]any) (*Result, error) {
	if plan == nil {
		return nil, ErrNilSchema
	}
	return v.validate(ctx, plan, data, time.Now(), true)
}

func (v *Validator) validate(ctx context.Context, plan *schema.Compiled, data map[string]any, start time.Time, hit bool) (*Result, error) {
	if err := ctx.Err(); err != nil {
		v.finish(ctx, start, nil, 0, hit, err)
		return nil, err
	}

	r := newRun(ctx, v, v.language(ctx))
	res, err := r.execute(plan, data)
	v.finish(ctx, start, res, r.asyncCalls, hit, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (v *Validator) language(ctx context.Context) string {
	if lang, ok := LanguageFromContext(ctx); ok {
		return v.catalog.Match(lang)
	}
	return v.catalog.Match(v.cfg.DefaultLanguage)
}

func (v *Validator) finish(ctx context.Context, start time.Time, res *Result, asyncCalls int, hit bool, fault error) {
	rep := Report{
		Schema:     SchemaNameFromContext(ctx),
		Duration:   time.Since(start),
		AsyncCalls: asyncCalls,
		CacheHit:   hit,
		Fault:      fault,
	}
	if res != nil {
		rep.Errors = res.Errors
	}

	if fault != nil {
		v.logger.WarnContext(ctx, "validation aborted",
			logger.Schema(rep.Schema), logger.Duration(rep.Duration), logger.Error(fault))
	} else {
		v.logger.DebugContext(ctx, "validation finished",
			logger.Schema(rep.Schema), logger.Duration(rep.Duration),
			slog.Int("errors", len(rep.Errors)), slog.Int("async_calls", asyncCalls))
	}
	v.observer.Observe(ctx, rep)
}

var defaultValidator = New()

// Validate runs s against data with a shared default Validator.
func Validate(ctx context.Context, s *schema.Schema, data map[string]any) (*Result, error) {
	return defaultValidator.Validate(ctx, s, data)
}

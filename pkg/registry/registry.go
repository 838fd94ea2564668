package registry

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"sync"

	"github.com/dmitrymomot/schemakit"
	"github.com/dmitrymomot/schemakit/pkg/logger"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Entry is a registered schema together with its compiled plan.
type Entry struct {
	Name   string
	Schema *schema.Schema
	Plan   *schema.Compiled
}

// Registry is a concurrency-safe set of named schemas.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry

	validator *schemakit.Validator
	logger    *slog.Logger
	store     Store
	onReload  func(count int, err error)
}

// Option configures a Registry.
type Option func(*Registry)

// WithValidator sets the validator used to compile and run schemas.
func WithValidator(v *schemakit.Validator) Option {
	return func(r *Registry) {
		if v != nil {
			r.validator = v
		}
	}
}

// WithLogger sets the logger for load and watch events. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithStore makes Save and Delete persist changes to store.
func WithStore(store Store) Option {
	return func(r *Registry) {
		r.store = store
	}
}

// WithReloadHook is called after every bulk load with the resulting schema
// count and the load error, if any.
func WithReloadHook(fn func(count int, err error)) Option {
	return func(r *Registry) {
		r.onReload = fn
	}
}

// New creates an empty registry. Without WithValidator it compiles schemas
// with a default validator that logs to the registry's logger.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]*Entry),
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.validator == nil {
		r.validator = schemakit.New(schemakit.WithLogger(r.logger))
	}
	return r
}

// Validator returns the validator schemas are compiled with.
func (r *Registry) Validator() *schemakit.Validator {
	return r.validator
}

// ValidName reports whether name can identify a schema.
// Names double as file stems and store keys.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Register compiles s and stores it under name, replacing any previous
// schema. Nothing is stored when compilation fails.
func (r *Registry) Register(name string, s *schema.Schema) error {
	e, err := r.compile(name, s)
	if err != nil {
		return err
	}
	r.install(e)
	return nil
}

func (r *Registry) compile(name string, s *schema.Schema) (*Entry, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	plan, err := r.validator.Compile(s)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", name, err)
	}
	return &Entry{Name: name, Schema: s, Plan: plan}, nil
}

func (r *Registry) install(e *Entry) {
	r.mu.Lock()
	r.entries[e.Name] = e
	r.mu.Unlock()
}

// Get returns the entry registered under name or ErrNotFound.
func (r *Registry) Get(name string) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return e, nil
}

// Lookup returns the schema registered under name.
func (r *Registry) Lookup(name string) (*schema.Schema, bool) {
	e, err := r.Get(name)
	if err != nil {
		return nil, false
	}
	return e.Schema, true
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Remove drops name and reports whether it was registered.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[name]
	delete(r.entries, name)
	return ok
}

// Validate runs the schema registered under name against data.
// The schema name is attached to ctx for logs and metrics.
func (r *Registry) Validate(ctx context.Context, name string, data map[string]any) (*schemakit.Result, error) {
	e, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	ctx = schemakit.WithSchemaName(ctx, name)
	return r.validator.ValidateCompiled(ctx, e.Plan, data)
}

// Save writes the JSON description of s to the configured store and then
// registers it. The registry is left untouched when compiling, encoding or
// persisting fails.
func (r *Registry) Save(ctx context.Context, name string, s *schema.Schema) error {
	e, err := r.compile(name, s)
	if err != nil {
		return err
	}
	if r.store != nil {
		data, err := schema.Marshal(s, schema.FormatJSON)
		if err != nil {
			return fmt.Errorf("encode schema %q: %w", name, err)
		}
		if err := r.store.Put(ctx, name, data); err != nil {
			return fmt.Errorf("persist schema %q: %w", name, err)
		}
	}
	r.install(e)
	return nil
}

// Delete removes name from the registry and the configured store.
func (r *Registry) Delete(ctx context.Context, name string) error {
	removed := r.Remove(name)
	if r.store != nil {
		err := r.store.Delete(ctx, name)
		if err == nil || (removed && isNotFound(err)) {
			return nil
		}
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

func (r *Registry) reloaded(count int, err error) {
	if r.onReload != nil {
		r.onReload(count, err)
	}
}

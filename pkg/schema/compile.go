package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/dmitrymomot/schemakit/pkg/pattern"
	"github.com/dmitrymomot/schemakit/pkg/sanitizer"
	"github.com/dmitrymomot/schemakit/pkg/validator"
)

// Resolver selects how a node resolves its value. It is chosen once per node
// at compile time.
type Resolver uint8

const (
	ResolverPrimitive Resolver = iota
	ResolverChoice
	ResolverLiteral
	ResolverCustom
	ResolverObject
	ResolverArray
	ResolverTuple
	ResolverRecord
	ResolverUnion
)

var resolverNames = [...]string{
	ResolverPrimitive: "primitive",
	ResolverChoice:    "choice",
	ResolverLiteral:   "literal",
	ResolverCustom:    "custom",
	ResolverObject:    "object",
	ResolverArray:     "array",
	ResolverTuple:     "tuple",
	ResolverRecord:    "record",
	ResolverUnion:     "union",
}

func (r Resolver) String() string {
	if int(r) < len(resolverNames) {
		return resolverNames[r]
	}
	return "resolver(" + strconv.Itoa(int(r)) + ")"
}

// Node is one compiled field. Nodes are shared by concurrent validations and
// must not be modified after Compile returns.
type Node struct {
	Name     string // key in the parent object, empty for elements and alternatives
	Kind     Kind
	Resolver Resolver
	Required bool

	// Transform is the built-in string pipeline, nil when no transform is set.
	Transform func(string) string
	Sanitize  SanitizeFunc

	MinLength *int
	MaxLength *int
	Min       *float64
	Max       *float64
	Integer   bool
	MinDate   *time.Time
	MaxDate   *time.Time
	Pattern   *regexp.Regexp
	Options   []any
	Literal   any
	MinItems  *int
	MaxItems  *int
	Separator string

	Messages      map[string]string
	UnionMessage  string
	RecordMessage string

	Validate      CustomFunc
	ValidateAsync AsyncFunc

	Fields       []*Node // object
	Element      *Node   // array
	Items        []*Node // tuple
	Value        *Node   // record
	Alternatives []*Node // union
}

// HasCustom reports whether the node carries a sync or async validator.
func (n *Node) HasCustom() bool {
	return n.Validate != nil || n.ValidateAsync != nil
}

// Compiled is the executable form of a Schema.
type Compiled struct {
	source *Schema
	fields []*Node
	async  bool
}

// Schema returns the description the plan was compiled from.
func (c *Compiled) Schema() *Schema { return c.source }

// Fields returns top-level nodes in declaration order.
func (c *Compiled) Fields() []*Node { return c.fields }

// HasAsync reports whether any node in the plan has an async validator.
func (c *Compiled) HasAsync() bool { return c.async }

// CompileOption registers named functions for serialized schemas.
type CompileOption func(*compileOptions)

type compileOptions struct {
	validators map[string]CustomFunc
	async      map[string]AsyncFunc
	sanitizers map[string]SanitizeFunc
}

// WithValidator makes fn available as `validator: name`.
func WithValidator(name string, fn CustomFunc) CompileOption {
	return func(o *compileOptions) {
		o.validators[name] = fn
	}
}

// WithAsyncValidator makes fn available as `asyncValidator: name`.
func WithAsyncValidator(name string, fn AsyncFunc) CompileOption {
	return func(o *compileOptions) {
		o.async[name] = fn
	}
}

// WithSanitizer makes fn available as `sanitize: name`.
// Registered names shadow the built-in string transforms.
func WithSanitizer(name string, fn SanitizeFunc) CompileOption {
	return func(o *compileOptions) {
		o.sanitizers[name] = fn
	}
}

// builtinValidators are available to every compilation.
var builtinValidators = map[string]CustomFunc{
	"luhn": func(value any, _ Record) string {
		s, _ := validator.ToString(value)
		if !validator.LuhnValid(s) {
			return validator.Luhn("", s).Error.Message
		}
		return ""
	},
}

var (
	defaultEmail = pattern.MustBuild(pattern.Config{Type: pattern.Email})
	defaultURL   = pattern.MustBuild(pattern.Config{Type: pattern.URL})
	defaultTel   = pattern.MustBuild(pattern.Config{Type: pattern.Phone})
	defaultColor = pattern.MustBuild(pattern.Config{Type: pattern.Color})
)

// Compile checks s and builds its executable plan.
// Any misconfiguration fails with a *SchemaError naming the field path.
// Compile has no side effects and is deterministic.
func Compile(s *Schema, opts ...CompileOption) (*Compiled, error) {
	o := compileOptions{
		validators: make(map[string]CustomFunc),
		async:      make(map[string]AsyncFunc),
		sanitizers: make(map[string]SanitizeFunc),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if s == nil {
		return nil, &SchemaError{Path: "$", Reason: "schema is nil"}
	}

	c := &compiler{opts: o, visiting: make(map[*Field]bool)}
	fields, err := c.object("", s)
	if err != nil {
		return nil, err
	}
	return &Compiled{source: s, fields: fields, async: c.async}, nil
}

type compiler struct {
	opts     compileOptions
	visiting map[*Field]bool
	async    bool
}

func (c *compiler) object(prefix string, s *Schema) ([]*Node, error) {
	nodes := make([]*Node, 0, s.Len())
	for name, f := range s.All() {
		n, err := c.field(join(prefix, name), f)
		if err != nil {
			return nil, err
		}
		n.Name = name
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (c *compiler) field(path string, f *Field) (*Node, error) {
	if f == nil {
		return nil, &SchemaError{Path: path, Reason: "field is nil"}
	}
	if c.visiting[f] {
		return nil, &SchemaError{Path: path, Reason: "field refers to itself"}
	}
	c.visiting[f] = true
	defer delete(c.visiting, f)

	if !f.Kind.Valid() {
		return nil, &SchemaError{Path: path, Attribute: "kind", Reason: fmt.Sprintf("unknown kind %q", f.Kind)}
	}

	n := &Node{
		Kind:          f.Kind,
		Required:      f.Required,
		Messages:      f.Messages,
		UnionMessage:  f.UnionErrorMessage,
		RecordMessage: f.RecordErrorMessage,
	}

	steps := []func(string, *Field, *Node) error{
		c.checkSupported,
		c.sanitizers,
		c.textBounds,
		c.numericBounds,
		c.dateBounds,
		c.pattern,
		c.collectionBounds,
		c.custom,
		c.resolver,
	}
	for _, step := range steps {
		if err := step(path, f, n); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// checkSupported rejects attributes the kind never evaluates.
func (c *compiler) checkSupported(path string, f *Field, _ *Node) error {
	k := f.Kind
	unsupported := func(attr string) error {
		return &SchemaError{Path: path, Attribute: attr, Reason: fmt.Sprintf("not supported by kind %q", k)}
	}

	switch {
	case !k.IsText() && (f.MinLength != nil || f.MaxLength != nil):
		if f.MinLength != nil {
			return unsupported("minLength")
		}
		return unsupported("maxLength")
	case !k.IsText() && f.Pattern != "":
		return unsupported("pattern")
	case !k.IsText() && f.Format != nil:
		return unsupported("format")
	case !k.IsNumeric() && (f.Min != nil || f.Max != nil):
		if f.Min != nil {
			return unsupported("min")
		}
		return unsupported("max")
	case !k.IsNumeric() && f.Integer:
		return unsupported("integer")
	case !k.IsTemporal() && (f.MinDate != "" || f.MaxDate != ""):
		if f.MinDate != "" {
			return unsupported("minDate")
		}
		return unsupported("maxDate")
	case !k.IsChoice() && len(f.Options) > 0:
		return unsupported("options")
	case k != KindArray && (f.MinItems != nil || f.MaxItems != nil || f.Separator != ""):
		switch {
		case f.MinItems != nil:
			return unsupported("minItems")
		case f.MaxItems != nil:
			return unsupported("maxItems")
		}
		return unsupported("separator")
	case k != KindUnion && f.UnionErrorMessage != "":
		return unsupported("unionErrorMessage")
	case k != KindRecord && f.RecordErrorMessage != "":
		return unsupported("recordErrorMessage")
	}
	return nil
}

func (c *compiler) sanitizers(path string, f *Field, n *Node) error {
	if f.Lowercase && f.Uppercase {
		return &SchemaError{Path: path, Attribute: "uppercase", Reason: "lowercase and uppercase are mutually exclusive"}
	}

	opts := sanitizer.Options{
		StripHTML:          f.StripHTML,
		Normalize:          f.Normalize,
		Trim:               f.Trim,
		CollapseWhitespace: f.CollapseWhitespace,
		Lowercase:          f.Lowercase,
		Uppercase:          f.Uppercase,
	}
	if !opts.IsZero() {
		n.Transform = sanitizer.Pipeline(opts)
	}

	n.Sanitize = f.Sanitize
	if n.Sanitize == nil && f.Sanitizer != "" {
		fn, ok := c.lookupSanitizer(f.Sanitizer)
		if !ok {
			return &SchemaError{Path: path, Attribute: "sanitize", Reason: fmt.Sprintf("unknown sanitizer %q", f.Sanitizer)}
		}
		n.Sanitize = fn
	}
	return nil
}

func (c *compiler) lookupSanitizer(name string) (SanitizeFunc, bool) {
	if fn, ok := c.opts.sanitizers[name]; ok {
		return fn, true
	}
	transform, ok := sanitizer.Named(name)
	if !ok {
		return nil, false
	}
	return func(v any) any {
		if s, ok := v.(string); ok {
			return transform(s)
		}
		return v
	}, true
}

func (c *compiler) textBounds(path string, f *Field, n *Node) error {
	if f.MinLength != nil && *f.MinLength < 0 {
		return &SchemaError{Path: path, Attribute: "minLength", Reason: "must not be negative"}
	}
	if f.MaxLength != nil && *f.MaxLength < 0 {
		return &SchemaError{Path: path, Attribute: "maxLength", Reason: "must not be negative"}
	}
	if f.MinLength != nil && f.MaxLength != nil && *f.MinLength > *f.MaxLength {
		return &SchemaError{Path: path, Attribute: "minLength", Reason: "greater than maxLength"}
	}
	n.MinLength, n.MaxLength = f.MinLength, f.MaxLength
	return nil
}

func (c *compiler) numericBounds(path string, f *Field, n *Node) error {
	if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
		return &SchemaError{Path: path, Attribute: "min", Reason: "greater than max"}
	}
	n.Min, n.Max, n.Integer = f.Min, f.Max, f.Integer
	return nil
}

func (c *compiler) dateBounds(path string, f *Field, n *Node) error {
	parse := func(attr, raw string) (*time.Time, error) {
		if raw == "" {
			return nil, nil
		}
		t, ok := validator.ParseTime(raw)
		if !ok {
			return nil, &SchemaError{Path: path, Attribute: attr, Reason: fmt.Sprintf("invalid date %q", raw)}
		}
		if f.Kind == KindDate {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return &t, nil
	}

	var err error
	if n.MinDate, err = parse("minDate", f.MinDate); err != nil {
		return err
	}
	if n.MaxDate, err = parse("maxDate", f.MaxDate); err != nil {
		return err
	}
	if n.MinDate != nil && n.MaxDate != nil && n.MinDate.After(*n.MaxDate) {
		return &SchemaError{Path: path, Attribute: "minDate", Reason: "after maxDate"}
	}
	return nil
}

// pattern resolves the effective expression: explicit pattern, then format,
// then the kind's default.
func (c *compiler) pattern(path string, f *Field, n *Node) error {
	switch {
	case f.Pattern != "":
		p, err := pattern.Compile(f.Pattern)
		if err != nil {
			return &SchemaError{Path: path, Attribute: "pattern", Reason: "invalid regular expression", Err: err}
		}
		n.Pattern = p.Regexp()
	case f.Format != nil:
		cfg := *f.Format
		cfg.Fragment = false
		p, err := pattern.Build(cfg)
		if err != nil {
			return &SchemaError{Path: path, Attribute: "format", Reason: "invalid format", Err: err}
		}
		n.Pattern = p.Regexp()
	default:
		switch f.Kind {
		case KindEmail:
			n.Pattern = defaultEmail.Regexp()
		case KindURL:
			n.Pattern = defaultURL.Regexp()
		case KindTel:
			n.Pattern = defaultTel.Regexp()
		case KindColor:
			n.Pattern = defaultColor.Regexp()
		}
	}
	return nil
}

func (c *compiler) collectionBounds(path string, f *Field, n *Node) error {
	if f.MinItems != nil && *f.MinItems < 0 {
		return &SchemaError{Path: path, Attribute: "minItems", Reason: "must not be negative"}
	}
	if f.MaxItems != nil && *f.MaxItems < 0 {
		return &SchemaError{Path: path, Attribute: "maxItems", Reason: "must not be negative"}
	}
	if f.MinItems != nil && f.MaxItems != nil && *f.MinItems > *f.MaxItems {
		return &SchemaError{Path: path, Attribute: "minItems", Reason: "greater than maxItems"}
	}
	n.MinItems, n.MaxItems, n.Separator = f.MinItems, f.MaxItems, f.Separator
	return nil
}

func (c *compiler) custom(path string, f *Field, n *Node) error {
	n.Validate = f.Validate
	if n.Validate == nil && f.Validator != "" {
		fn, ok := c.opts.validators[f.Validator]
		if !ok {
			fn, ok = builtinValidators[f.Validator]
		}
		if !ok {
			return &SchemaError{Path: path, Attribute: "validator", Reason: fmt.Sprintf("unknown validator %q", f.Validator)}
		}
		n.Validate = fn
	}

	n.ValidateAsync = f.ValidateAsync
	if n.ValidateAsync == nil && f.AsyncValidator != "" {
		fn, ok := c.opts.async[f.AsyncValidator]
		if !ok {
			return &SchemaError{Path: path, Attribute: "asyncValidator", Reason: fmt.Sprintf("unknown async validator %q", f.AsyncValidator)}
		}
		n.ValidateAsync = fn
	}
	if n.ValidateAsync != nil {
		c.async = true
	}
	return nil
}

func (c *compiler) resolver(path string, f *Field, n *Node) error {
	missing := func(attr, reason string) error {
		return &SchemaError{Path: path, Attribute: attr, Reason: reason}
	}

	switch k := f.Kind; {
	case k.IsChoice():
		if len(f.Options) == 0 {
			return missing("options", fmt.Sprintf("kind %q requires non-empty options", k))
		}
		n.Resolver = ResolverChoice
		n.Options = f.Options

	case k == KindLiteral:
		if f.Value == nil {
			return missing("value", "kind \"literal\" requires a value")
		}
		n.Resolver = ResolverLiteral
		n.Literal = f.Value

	case k == KindCustom:
		if !n.HasCustom() {
			return missing("validator", "kind \"custom\" requires a validator or asyncValidator")
		}
		n.Resolver = ResolverCustom

	case k == KindObject:
		if f.Schema == nil {
			return missing("schema", "kind \"object\" requires a schema")
		}
		fields, err := c.object(path, f.Schema)
		if err != nil {
			return err
		}
		n.Resolver = ResolverObject
		n.Fields = fields

	case k == KindArray:
		if f.ElementType == nil {
			return missing("elementType", "kind \"array\" requires an elementType")
		}
		el, err := c.field(join(path, "elementType"), f.ElementType)
		if err != nil {
			return err
		}
		n.Resolver = ResolverArray
		n.Element = el

	case k == KindTuple:
		if len(f.TupleSchemas) == 0 {
			return missing("tupleSchemas", "kind \"tuple\" requires at least one tupleSchemas entry")
		}
		items := make([]*Node, len(f.TupleSchemas))
		for i, item := range f.TupleSchemas {
			el, err := c.field(join(path, "tupleSchemas."+strconv.Itoa(i)), item)
			if err != nil {
				return err
			}
			items[i] = el
		}
		n.Resolver = ResolverTuple
		n.Items = items

	case k == KindRecord:
		if f.ValueSchema == nil {
			return missing("valueSchema", "kind \"record\" requires a valueSchema")
		}
		val, err := c.field(join(path, "valueSchema"), f.ValueSchema)
		if err != nil {
			return err
		}
		n.Resolver = ResolverRecord
		n.Value = val

	case k == KindUnion:
		if len(f.Types) == 0 {
			return missing("types", "kind \"union\" requires at least one type")
		}
		alts := make([]*Node, len(f.Types))
		for i, alt := range f.Types {
			el, err := c.field(join(path, "types."+strconv.Itoa(i)), alt)
			if err != nil {
				return err
			}
			alts[i] = el
		}
		n.Resolver = ResolverUnion
		n.Alternatives = alts

	default:
		n.Resolver = ResolverPrimitive
	}
	return nil
}

// Walk visits n and every node below it in pre-order.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, child := range n.Fields {
		Walk(child, visit)
	}
	Walk(n.Element, visit)
	for _, item := range n.Items {
		Walk(item, visit)
	}
	Walk(n.Value, visit)
	for _, alt := range n.Alternatives {
		Walk(alt, visit)
	}
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

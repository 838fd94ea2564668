package messages

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when no requested language is supported.
const DefaultLanguage = "en"

// maxAcceptLanguageLength bounds the header size parsed per request.
const maxAcceptLanguageLength = 4096

//go:embed locales/*.yaml
var locales embed.FS

// Catalog holds message templates per language, addressed by dotted keys
// such as "validation.minLength".
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
	fallback string
	langs    []string
	matcher  language.Matcher
}

// New returns an empty catalog that falls back to fallback.
func New(fallback string) *Catalog {
	if fallback == "" {
		fallback = DefaultLanguage
	}
	c := &Catalog{
		messages: make(map[string]map[string]string),
		fallback: fallback,
	}
	c.rebuild()
	return c
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c := New(DefaultLanguage)
	if err := c.LoadFS(locales, "locales"); err != nil {
		panic(fmt.Sprintf("messages: embedded catalog: %v", err))
	}
	return c
})

// Default returns the built-in catalog (en, es, de).
// The returned catalog is shared; use Clone before adding messages.
func Default() *Catalog {
	return defaultCatalog()
}

// Clone returns an independent copy of c.
func (c *Catalog) Clone() *Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := New(c.fallback)
	for lang, msgs := range c.messages {
		m := make(map[string]string, len(msgs))
		for k, v := range msgs {
			m[k] = v
		}
		out.messages[lang] = m
	}
	out.rebuild()
	return out
}

// LoadFS merges every *.yaml and *.yml file found in dir.
func (c *Catalog) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return errors.Join(ErrFailedToReadFile, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(path.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		name := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return errors.Join(ErrFailedToReadFile, err)
		}
		if err := c.Parse(data); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// Parse merges a YAML document of the form
//
//	en:
//	  validation:
//	    required: field is required
//
// into the catalog. Later definitions of a key replace earlier ones.
func (c *Catalog) Parse(data []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Join(ErrFailedToParseYAML, err)
	}

	parsed := make(map[string]map[string]string, len(doc))
	for lang, tree := range doc {
		if _, err := language.Parse(lang); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
		}
		m, ok := tree.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: language %q holds %T", ErrInvalidStructure, lang, tree)
		}
		flat := make(map[string]string)
		flatten("", m, flat)
		parsed[strings.ToLower(lang)] = flat
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for lang, msgs := range parsed {
		dst, ok := c.messages[lang]
		if !ok {
			dst = make(map[string]string, len(msgs))
			c.messages[lang] = dst
		}
		for k, v := range msgs {
			dst[k] = v
		}
	}
	c.rebuild()
	return nil
}

// Set adds or replaces a single template.
func (c *Catalog) Set(lang, key, tmpl string) {
	lang = strings.ToLower(lang)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.messages[lang] == nil {
		c.messages[lang] = make(map[string]string)
	}
	c.messages[lang][key] = tmpl
	c.rebuild()
}

// Lookup returns the template for key in lang without falling back.
func (c *Catalog) Lookup(lang, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tmpl, ok := c.messages[strings.ToLower(lang)][key]
	return tmpl, ok
}

// Translate renders key for lang with params. Missing keys fall back to the
// catalog's fallback language; ok is false when neither has the key.
func (c *Catalog) Translate(lang, key string, params map[string]any) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, l := range []string{strings.ToLower(lang), c.fallback} {
		if tmpl, ok := c.messages[l][key]; ok {
			return Format(tmpl, params), true
		}
	}
	return "", false
}

// Languages returns supported language codes, fallback first.
func (c *Catalog) Languages() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.langs)
}

// Match picks the supported language closest to any of the requested tags,
// in order of preference. Unparsable tags are skipped.
func (c *Catalog) Match(requested ...string) string {
	tags := make([]language.Tag, 0, len(requested))
	for _, r := range requested {
		if tag, err := language.Parse(r); err == nil {
			tags = append(tags, tag)
		}
	}
	return c.match(tags)
}

// MatchAcceptLanguage negotiates an Accept-Language header value.
func (c *Catalog) MatchAcceptLanguage(header string) string {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return c.fallback
	}
	return c.match(tags)
}

func (c *Catalog) match(tags []language.Tag) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(tags) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(c.langs) {
		return c.fallback
	}
	return c.langs[idx]
}

// Must be called with lock held.
func (c *Catalog) rebuild() {
	langs := []string{c.fallback}
	for lang := range c.messages {
		if lang != c.fallback {
			langs = append(langs, lang)
		}
	}
	slices.Sort(langs[1:])

	tags := make([]language.Tag, len(langs))
	for i, l := range langs {
		tags[i] = language.Make(l)
	}
	c.langs = langs
	c.matcher = language.NewMatcher(tags)
}

// flatten turns nested maps into dotted keys.
func flatten(prefix string, m map[string]any, out map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

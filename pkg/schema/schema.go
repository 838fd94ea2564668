package schema

import "iter"

// NamedField pairs a field with its key in a Schema.
type NamedField struct {
	Name  string
	Field *Field
}

// Named is shorthand for NamedField{name, f}.
func Named(name string, f *Field) NamedField {
	return NamedField{Name: name, Field: f}
}

// Schema is an ordered mapping from field name to Field.
// Insertion order is validation order and error order.
type Schema struct {
	fields []NamedField
	index  map[string]int
}

// New builds a schema from fields in the given order.
// A repeated name replaces the earlier field in place.
func New(fields ...NamedField) *Schema {
	s := &Schema{index: make(map[string]int, len(fields))}
	for _, nf := range fields {
		s.Set(nf.Name, nf.Field)
	}
	return s
}

// Set appends a field, or replaces an existing one keeping its position.
func (s *Schema) Set(name string, f *Field) *Schema {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[name]; ok {
		s.fields[i].Field = f
		return s
	}
	s.index[name] = len(s.fields)
	s.fields = append(s.fields, NamedField{Name: name, Field: f})
	return s
}

// Get returns the field declared under name.
func (s *Schema) Get(name string) (*Field, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i].Field, true
}

// Names returns field names in declaration order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.fields))
	for i, nf := range s.fields {
		names[i] = nf.Name
	}
	return names
}

func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// All iterates fields in declaration order.
func (s *Schema) All() iter.Seq2[string, *Field] {
	return func(yield func(string, *Field) bool) {
		if s == nil {
			return
		}
		for _, nf := range s.fields {
			if !yield(nf.Name, nf.Field) {
				return
			}
		}
	}
}

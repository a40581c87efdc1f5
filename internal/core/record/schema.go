package record

// Field is a typed accessor for one named field of T.
type Field[T any] struct {
	// Key is the camelCase field name; it also derives the export header.
	Key string

	// Kind is the declared kind. Date and multi-value formatting follow
	// the declared kind, not the kind of an individual value.
	Kind Kind

	// Get reads the field from a record.
	Get func(T) Value

	// NullText is rendered by exporters when the value is null.
	NullText string
}

// Schema is the ordered set of fields an entity exposes.
type Schema[T any] struct {
	fields        []Field[T]
	index         map[string]int
	searchable    []string
	defaultExport []string
}

// NewSchema builds a schema. Later fields with a duplicate key replace earlier ones.
func NewSchema[T any](fields ...Field[T]) *Schema[T] {
	s := &Schema[T]{index: make(map[string]int, len(fields))}
	for _, f := range fields {
		if i, ok := s.index[f.Key]; ok {
			s.fields[i] = f
			continue
		}
		s.index[f.Key] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s
}

// WithSearchable sets the keys matched by free-text search.
func (s *Schema[T]) WithSearchable(keys ...string) *Schema[T] {
	s.searchable = keys
	return s
}

// WithDefaultExport sets the field list used when an export selects none.
func (s *Schema[T]) WithDefaultExport(keys ...string) *Schema[T] {
	s.defaultExport = keys
	return s
}

// Field returns the accessor for key.
func (s *Schema[T]) Field(key string) (Field[T], bool) {
	i, ok := s.index[key]
	if !ok {
		return Field[T]{}, false
	}
	return s.fields[i], true
}

// Has reports whether key is declared.
func (s *Schema[T]) Has(key string) bool {
	_, ok := s.index[key]
	return ok
}

// Fields returns all fields in declaration order.
func (s *Schema[T]) Fields() []Field[T] {
	return s.fields
}

// Keys returns all keys in declaration order.
func (s *Schema[T]) Keys() []string {
	keys := make([]string, len(s.fields))
	for i, f := range s.fields {
		keys[i] = f.Key
	}
	return keys
}

// Searchable returns the keys matched by free-text search.
func (s *Schema[T]) Searchable() []string {
	return s.searchable
}

// DefaultExport returns the default export field list, or all keys.
func (s *Schema[T]) DefaultExport() []string {
	if len(s.defaultExport) == 0 {
		return s.Keys()
	}
	return s.defaultExport
}

// Get reads key from rec. Unknown keys read as null.
func (s *Schema[T]) Get(rec T, key string) Value {
	f, ok := s.Field(key)
	if !ok || f.Get == nil {
		return Null()
	}
	return f.Get(rec)
}

// Unknown returns the keys that the schema does not declare.
func (s *Schema[T]) Unknown(keys []string) []string {
	var missing []string
	for _, k := range keys {
		if !s.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}

// Package schema holds the passive data model that describes what a query
// targets: entities, their relations, and their fields. Schemas are plain
// immutable values supplied by the caller; nothing in this package loads,
// caches, or mutates one.
package schema

// FieldType advises callers what shape a field's values take. It is not
// enforced against literal value types during parsing or validation, and
// the autocomplete engine does not read it.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
)

// FieldDef describes one field of an entity.
type FieldDef struct {
	Name string
	// Type is advisory; the empty string means unspecified.
	Type FieldType
	// Values is an ordered set of example/enum values used to populate
	// WhereValue suggestions. Order is preserved for stable suggestion
	// ordering.
	Values []string
}

// EntityDef describes one queryable entity: its relations (resolvable via
// include:) and its fields (referenceable in where: and order:).
type EntityDef struct {
	Name string
	// Relations is an ordered list of relation names to other entities.
	Relations []string
	// Fields is ordered so suggestion order is stable and matches the
	// order the schema author declared fields in.
	Fields []FieldDef
}

// Field looks up a field definition by exact, case-sensitive name.
func (e EntityDef) Field(name string) (FieldDef, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// HasRelation reports whether name is one of e's relations, compared
// case-sensitively.
func (e EntityDef) HasRelation(name string) bool {
	for _, r := range e.Relations {
		if r == name {
			return true
		}
	}
	return false
}

// Schema is an ordered sequence of entity definitions. Order governs the
// first-appearance order used when deduplicating autocomplete suggestions.
type Schema struct {
	Entities []EntityDef
}

// Entity looks up an entity definition by exact, case-sensitive name.
func (s *Schema) Entity(name string) (EntityDef, bool) {
	if s == nil {
		return EntityDef{}, false
	}
	for _, e := range s.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return EntityDef{}, false
}

// Names returns the entity names in schema order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Entities))
	for _, e := range s.Entities {
		names = append(names, e.Name)
	}
	return names
}

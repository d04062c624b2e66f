package rql

import "github.com/reflog-io/reflog-ql/schema"

// validateSchema applies spec §4.2's schema validation rules to an
// already syntactically-parsed query tree. Unknown-field errors are
// aggregated across the whole where tree into a single message; every
// other validation failure aborts immediately, matching the parser's own
// fail-fast behavior. order: field names are deliberately NOT checked
// here — a documented divergence from include/where validation (spec
// §9's open question, preserved rather than "fixed").
func validateSchema(q *QueryTree, sch *schema.Schema) error {
	if sch == nil || !q.HasEntity {
		return nil
	}
	entity, ok := sch.Entity(q.Entity)
	if !ok {
		return unknownEntityError(q.Entity, sch.Names())
	}

	for _, rel := range q.Include {
		if !entity.HasRelation(rel) {
			return unknownRelationError(rel, entity.Name, entity.Relations)
		}
	}

	if q.Where != nil {
		seen := map[string]bool{}
		var unknown []string
		q.Where.walkFields(func(field string) {
			if seen[field] {
				return
			}
			if _, ok := entity.Field(field); !ok {
				seen[field] = true
				unknown = append(unknown, field)
			}
		})
		if len(unknown) > 0 {
			known := make([]string, 0, len(entity.Fields))
			for _, f := range entity.Fields {
				known = append(known, f.Name)
			}
			return unknownFieldsError(entity.Name, unknown, known)
		}
	}
	return nil
}

package rql

import "github.com/reflog-io/reflog-ql/schema"

// Parse converts RQL text into a QueryTree, optionally validating entity,
// relation, and field references against sch (pass nil to skip
// validation). It returns a *ParseError on malformed input or unknown
// schema references (spec §4.5, §6).
func Parse(text string, sch *schema.Schema) (*QueryTree, error) {
	q, err := parseClauses(text)
	if err != nil {
		return nil, err
	}
	if err := validateSchema(q, sch); err != nil {
		return nil, err
	}
	return q, nil
}

// IsValid is the non-throwing probe described by spec §4.5: it reports
// whether text parses (and validates against sch, if non-nil) without
// error.
func IsValid(text string, sch *schema.Schema) bool {
	_, err := Parse(text, sch)
	return err == nil
}

package rql

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CompareOp is one of the six comparison operators recognized inside a
// where expression (spec §3, §4.1).
type CompareOp string

const (
	OpEqual        CompareOp = "="
	OpNotEqual     CompareOp = "!="
	OpLessThan     CompareOp = "<"
	OpGreaterThan  CompareOp = ">"
	OpLessEqual    CompareOp = "<="
	OpGreaterEqual CompareOp = ">="
)

// LogicalOp names the two ways Condition nodes combine.
type LogicalOp string

const (
	LogicalAnd LogicalOp = "and"
	LogicalOr  LogicalOp = "or"
)

// Condition is the tagged variant described in spec §3: a leaf Comparison,
// or an n-ary And/Or node. Exactly one of the two shapes is populated,
// discriminated by LogicalOp: empty means "this is a comparison leaf"
// (CmpOp holds one of OpEqual..OpGreaterEqual); LogicalAnd/LogicalOr
// mean "this is a logical node" and Children is populated instead.
type Condition struct {
	// Comparison leaf fields. Populated when LogicalOp == "".
	Field string
	CmpOp CompareOp
	Value Value

	// Logical node fields. Populated when LogicalOp != "".
	LogicalOp LogicalOp
	Children  []*Condition
}

// IsComparison reports whether c is a Comparison leaf.
func (c *Condition) IsComparison() bool { return c != nil && c.LogicalOp == "" }

// IsLogical reports whether c is an And/Or node.
func (c *Condition) IsLogical() bool { return c != nil && c.LogicalOp != "" }

func newComparison(field string, op CompareOp, v Value) *Condition {
	return &Condition{Field: field, CmpOp: op, Value: v}
}

// newLogical builds a flattened And/Or node from children: any direct
// child sharing the same logical op has its own children spliced in
// (spec §4.2/§4.3 flattening invariant — no And directly under And, no
// Or directly under Or). A single resulting child collapses to that
// child, never wrapped.
func newLogical(op LogicalOp, children ...*Condition) *Condition {
	flat := make([]*Condition, 0, len(children))
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.LogicalOp == op {
			flat = append(flat, c.Children...)
		} else {
			flat = append(flat, c)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &Condition{LogicalOp: op, Children: flat}
}

// walkFields calls fn for every Comparison field name reachable anywhere
// in the condition tree, used by the schema field-unknown validator
// (spec §4.2) which aggregates every unknown field into one message.
func (c *Condition) walkFields(fn func(field string)) {
	if c == nil {
		return
	}
	if c.IsComparison() {
		fn(c.Field)
		return
	}
	for _, child := range c.Children {
		child.walkFields(fn)
	}
}

// MarshalJSON renders the canonical query-tree JSON shape from spec §6:
// {field,op,value} for comparisons, {and:[...]} / {or:[...]} for logical
// nodes.
func (c *Condition) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	if c.IsComparison() {
		return json.Marshal(struct {
			Field string `json:"field"`
			Op    string `json:"op"`
			Value any    `json:"value"`
		}{c.Field, string(c.CmpOp), c.Value.Raw()})
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	fmt.Fprintf(&buf, "%q:[", string(c.LogicalOp))
	for i, child := range c.Children {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := child.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

// OrderTerm is one field/direction pair of an order: clause.
type OrderTerm struct {
	Field string
	Dir   string // "asc" or "desc"
}

// QueryTree is the canonical RQL value described by spec §3/§6.
type QueryTree struct {
	Entity      string
	HasEntity   bool
	Limit       int
	HasLimit    bool
	Order       []OrderTerm
	Include     []string // insertion-ordered relation names, all implicitly true
	Where       *Condition
}

// queryTreeJSON mirrors spec §6's fixed field names for marshaling.
type queryTreeJSON struct {
	Entity  string          `json:"entity,omitempty"`
	Limit   *int            `json:"limit,omitempty"`
	Order   []OrderTerm     `json:"order,omitempty"`
	Include map[string]bool `json:"include,omitempty"`
	Where   *Condition      `json:"where,omitempty"`
}

// MarshalJSON renders the query tree using spec §6's canonical shape.
func (q *QueryTree) MarshalJSON() ([]byte, error) {
	out := queryTreeJSON{Where: q.Where}
	if q.HasEntity {
		out.Entity = q.Entity
	}
	if q.HasLimit {
		l := q.Limit
		out.Limit = &l
	}
	if len(q.Order) > 0 {
		out.Order = q.Order
	}
	if len(q.Include) > 0 {
		out.Include = make(map[string]bool, len(q.Include))
		for _, k := range q.Include {
			out.Include[k] = true
		}
	}
	return json.Marshal(out)
}

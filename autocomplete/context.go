// Package autocomplete implements the two-stage cursor-context classifier
// and suggestion synthesizer described by spec §4.4. It operates on
// possibly-invalid, possibly-partial query text — an unterminated quote
// or an unbalanced paren is just more input to classify, never an
// error — and never fails.
package autocomplete

import (
	"strings"

	"github.com/reflog-io/reflog-ql/internal/clausescan"
	"github.com/reflog-io/reflog-ql/internal/wheretok"
)

// Kind discriminates the eight CursorContext variants of spec §4.4.
type Kind int

const (
	KindTopLevel Kind = iota
	KindEntityValue
	KindLimitValue
	KindOrderValue
	KindIncludeValue
	KindWhereField
	KindWhereValue
	KindUnknown
)

// CursorContext is the tagged variant Stage A produces. Exactly the
// fields relevant to Kind are meaningful; the rest are zero.
type CursorContext struct {
	Kind Kind

	Partial string

	// TopLevel only.
	UsedKeys map[string]bool

	// OrderValue, IncludeValue, WhereField, WhereValue: the entity: value
	// already present in the query, used to narrow "relevant entities".
	EntityValue string

	// OrderValue only: true once the current term's field name is
	// complete and a direction (asc/desc) is expected next.
	AfterField bool

	// WhereValue only: the field and operator the value belongs to.
	Field string
	Op    string
}

// Context implements Stage A (spec §4.4): it classifies where the cursor
// sits within text, without regard to whether text is syntactically
// valid RQL.
func Context(text string, cursor int) CursorContext {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}

	usedKeys := scanUsedKeys(text)
	entityVal := scanEntityValue(text)

	last, unbalanced, ok := clausescan.LastClause(text, cursor)
	if !ok {
		return topLevel("", usedKeys)
	}

	// Cursor sits in the whitespace gap after the last recognized
	// clause (Scan would have started a new clause at the first
	// non-whitespace byte otherwise) — a fresh clause is about to
	// begin.
	if cursor > last.End {
		return topLevel("", usedKeys)
	}

	// Cursor sits immediately past a cleanly-closed where:(...) block.
	if last.Special == "where" && !unbalanced && last.End == cursor {
		return topLevel("", usedKeys)
	}

	segment := text[last.Start:cursor]
	return classifySegment(segment, usedKeys, entityVal)
}

func topLevel(partial string, usedKeys map[string]bool) CursorContext {
	return CursorContext{Kind: KindTopLevel, Partial: partial, UsedKeys: usedKeys}
}

// classifySegment implements the "segment → context mapping" table.
func classifySegment(segment string, usedKeys map[string]bool, entityVal string) CursorContext {
	if segment == "" {
		return topLevel("", usedKeys)
	}

	lower := strings.ToLower(segment)
	switch {
	case strings.HasPrefix(lower, "entity:"):
		return CursorContext{Kind: KindEntityValue, Partial: segment[len("entity:"):]}

	case strings.HasPrefix(lower, "limit:"):
		return CursorContext{Kind: KindLimitValue, Partial: strings.TrimSpace(segment[len("limit:"):])}

	case strings.HasPrefix(lower, "order:"):
		v := segment[len("order:"):]
		if v != "" && strings.TrimSpace(v) == "" {
			return topLevel("", usedKeys)
		}
		return orderValueContext(v, entityVal)

	case strings.HasPrefix(lower, "include:"):
		return includeValueContext(segment[len("include:"):], entityVal)

	case strings.HasPrefix(lower, "where:"):
		return whereContext(segment[len("where:"):], entityVal)
	}

	if strings.Contains(segment, ":") {
		return CursorContext{Kind: KindUnknown, Partial: segment}
	}
	return topLevel(segment, usedKeys)
}

func orderValueContext(v, entityVal string) CursorContext {
	term := v
	if idx := strings.LastIndexByte(v, ','); idx >= 0 {
		term = v[idx+1:]
	}
	if term == "" {
		return CursorContext{Kind: KindOrderValue, EntityValue: entityVal}
	}

	endsWithSpace := isRQLSpaceByte(term[len(term)-1])
	if endsWithSpace && strings.TrimRight(term, " \t\r\n") != "" {
		return CursorContext{Kind: KindOrderValue, EntityValue: entityVal, AfterField: true}
	}

	fields := strings.Fields(term)
	partial := ""
	if len(fields) > 0 && !endsWithSpace {
		partial = fields[len(fields)-1]
	}
	return CursorContext{Kind: KindOrderValue, EntityValue: entityVal, Partial: partial}
}

func includeValueContext(v, entityVal string) CursorContext {
	term := v
	if idx := strings.LastIndexByte(v, ','); idx >= 0 {
		term = v[idx+1:]
	}
	return CursorContext{Kind: KindIncludeValue, EntityValue: entityVal, Partial: strings.TrimSpace(term)}
}

// whereContext implements the where:<v> branch of the mapping table: it
// strips a single wrapping paren layer and re-tokenizes the remainder
// tolerantly, using the token stream shared with the strict parser
// (internal/wheretok) to decide what the cursor is in the middle of.
func whereContext(v, entityVal string) CursorContext {
	inner := v
	if strings.HasPrefix(inner, "(") {
		inner = inner[1:]
	}
	if strings.HasSuffix(inner, ")") && !parensBalanced(inner) {
		inner = inner[:len(inner)-1]
	}

	toks, _ := wheretok.Tokenize(inner, false)
	endsWithSpace := inner != "" && isRQLSpaceByte(inner[len(inner)-1])
	return classifyWhereTokens(toks, endsWithSpace, entityVal)
}

func classifyWhereTokens(toks []wheretok.Tok, endsWithSpace bool, entityVal string) CursorContext {
	if len(toks) == 0 {
		return whereField("", entityVal)
	}
	last := toks[len(toks)-1]

	var prev, prevPrev wheretok.Tok
	hasPrev := len(toks) >= 2
	if hasPrev {
		prev = toks[len(toks)-2]
	}
	hasPrevPrev := len(toks) >= 3
	if hasPrevPrev {
		prevPrev = toks[len(toks)-3]
	}
	fieldOf := func(t wheretok.Tok, has bool) string {
		if has && (t.Kind == wheretok.Ident || t.Kind == wheretok.String) {
			return t.Text
		}
		return ""
	}

	switch last.Kind {
	case wheretok.Op:
		return whereValue("", fieldOf(prev, hasPrev), last.Text, entityVal)

	case wheretok.Ident, wheretok.String:
		if hasPrev && prev.Kind == wheretok.Op {
			if endsWithSpace {
				return whereField("", entityVal)
			}
			return whereValue(last.Text, fieldOf(prevPrev, hasPrevPrev), prev.Text, entityVal)
		}
		if endsWithSpace {
			return whereField("", entityVal)
		}
		return whereField(last.Text, entityVal)

	case wheretok.Number, wheretok.Boolean:
		if hasPrev && prev.Kind == wheretok.Op {
			if endsWithSpace {
				return whereField("", entityVal)
			}
			return whereValue(last.Text, fieldOf(prevPrev, hasPrevPrev), prev.Text, entityVal)
		}
		return whereField("", entityVal)

	default: // LParen, RParen, Keyword
		return whereField("", entityVal)
	}
}

func whereField(partial, entityVal string) CursorContext {
	return CursorContext{Kind: KindWhereField, Partial: partial, EntityValue: entityVal}
}

func whereValue(partial, field, op, entityVal string) CursorContext {
	return CursorContext{Kind: KindWhereValue, Partial: partial, Field: field, Op: op, EntityValue: entityVal}
}

func isRQLSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// parensBalanced reports whether s's parentheses are balanced overall,
// honoring quoted strings and their escapes.
func parensBalanced(s string) bool {
	depth := 0
	n := len(s)
	for i := 0; i < n; {
		switch s[i] {
		case '"':
			j := i + 1
			for j < n {
				if s[j] == '\\' {
					j += 2
					continue
				}
				if s[j] == '"' {
					j++
					break
				}
				j++
			}
			i = j
		case '(':
			depth++
			i++
		case ')':
			depth--
			i++
			if depth < 0 {
				return false
			}
		default:
			i++
		}
	}
	return depth == 0
}

// scanUsedKeys collects every recognized top-level key appearing
// anywhere in text (spec §4.4 step 4).
func scanUsedKeys(text string) map[string]bool {
	clauses, _, _ := clausescan.Scan(text)
	used := make(map[string]bool, len(clauses))
	for _, c := range clauses {
		raw := c.Raw(text)
		idx := strings.IndexByte(raw, ':')
		if idx < 0 {
			continue
		}
		key := strings.ToLower(raw[:idx])
		switch key {
		case "entity", "limit", "order", "include", "where":
			used[key] = true
		}
	}
	return used
}

// scanEntityValue extracts the first entity: value appearing anywhere
// in text, trimmed (spec §4.4 step 5).
func scanEntityValue(text string) string {
	clauses, _, _ := clausescan.Scan(text)
	for _, c := range clauses {
		raw := c.Raw(text)
		idx := strings.IndexByte(raw, ':')
		if idx < 0 {
			continue
		}
		if strings.EqualFold(raw[:idx], "entity") {
			return strings.TrimSpace(raw[idx+1:])
		}
	}
	return ""
}

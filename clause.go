package rql

import (
	"strconv"
	"strings"

	"github.com/reflog-io/reflog-ql/internal/clausescan"
)

// parseClauses splits text into top-level clauses (spec §4.2) using the
// scanner shared with autocomplete, and interprets each one into a
// QueryTree. Schema validation (if requested) happens afterward, in
// validate.go.
func parseClauses(text string) (*QueryTree, error) {
	clauses, _, _ := clausescan.Scan(text)

	q := &QueryTree{}
	seen := map[string]bool{}

	for _, c := range clauses {
		raw := c.Raw(text)
		if strings.HasPrefix(raw, `"`) {
			return nil, clauseError(raw)
		}
		idx := strings.IndexByte(raw, ':')
		if idx < 0 {
			return nil, clauseError(raw)
		}
		rawKey := raw[:idx]
		key := strings.ToLower(rawKey)
		value := raw[idx+1:]

		switch key {
		case "entity", "limit", "order", "include", "where":
		default:
			return nil, unknownKeyError(rawKey)
		}
		if seen[key] {
			return nil, duplicateKeyError(key)
		}
		seen[key] = true

		switch key {
		case "entity":
			if value == "" {
				return nil, newParseError(ErrEmptyValue, "entity must be non-empty")
			}
			q.Entity = value
			q.HasEntity = true

		case "limit":
			n, err := parseLimitValue(value)
			if err != nil {
				return nil, err
			}
			q.Limit = n
			q.HasLimit = true

		case "order":
			terms, err := parseOrderValue(value)
			if err != nil {
				return nil, err
			}
			q.Order = terms

		case "include":
			incl, err := parseIncludeValue(value)
			if err != nil {
				return nil, err
			}
			q.Include = incl

		case "where":
			cond, err := interpretWhereValue(value)
			if err != nil {
				return nil, err
			}
			q.Where = cond
		}
	}
	return q, nil
}

// parseLimitValue enforces spec §4.2's ^\d+$ regex by hand, picking the
// most specific error message the offending character implies.
func parseLimitValue(value string) (int, error) {
	if value == "" {
		return 0, newParseError(ErrInvalidInteger, "limit must be a valid integer")
	}
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			continue
		case r == '-':
			return 0, newParseError(ErrNegativeLimit, "limit must be non-negative")
		case r == '.':
			return 0, newParseError(ErrNonIntegerLimit, "limit must be an integer without decimals")
		default:
			return 0, newParseError(ErrInvalidInteger, "limit must be a valid integer")
		}
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, newParseError(ErrInvalidInteger, "limit must be a valid integer")
	}
	return n, nil
}

// parseOrderValue implements spec §4.2's order: semantics: comma
// separated terms, each tokenized on whitespace into a field and an
// optional direction.
func parseOrderValue(value string) ([]OrderTerm, error) {
	var terms []OrderTerm
	for _, part := range strings.Split(value, ",") {
		if part == "" {
			continue
		}
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		field := fields[0]
		lowerFirst := strings.ToLower(field)
		if lowerFirst == "asc" || lowerFirst == "desc" {
			return nil, newParseError(ErrOrderDirAsField, "Invalid order term %q: order must be a field name", part)
		}
		dir := "asc"
		if len(fields) >= 2 {
			lowerSecond := strings.ToLower(fields[1])
			if lowerSecond != "asc" && lowerSecond != "desc" {
				return nil, newParseError(ErrInvalidOrderDir, "Invalid order term %q: invalid direction %q", part, fields[1])
			}
			dir = lowerSecond
		}
		if len(fields) > 2 {
			return nil, newParseError(ErrInvalidOrderDir, "Invalid order term %q: unexpected extra token", part)
		}
		terms = append(terms, OrderTerm{Field: field, Dir: dir})
	}
	return terms, nil
}

// parseIncludeValue implements spec §4.2's include: semantics: comma
// separated relation names, each trimmed and required non-empty.
func parseIncludeValue(value string) ([]string, error) {
	var out []string
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			return nil, newParseError(ErrEmptyValue, "Empty include item")
		}
		out = append(out, trimmed)
	}
	return out, nil
}

// interpretWhereValue implements spec §4.2's where: semantics: unwrap an
// optional outermost balanced paren pair, then parse the remaining
// condition.
func interpretWhereValue(value string) (*Condition, error) {
	inner := value
	if strings.HasPrefix(value, "(") {
		end, ok := matchParen(value, 0)
		if !ok {
			return nil, newParseError(ErrUnbalancedParens, "Unbalanced parentheses in where clause")
		}
		if end == len(value)-1 {
			inner = value[1:end]
		}
	}
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return nil, newParseError(ErrEmptyWhere, "Empty where clause")
	}
	return parseWhere(inner)
}

// matchParen finds the index of the ')' in s that matches the '(' at
// s[open], honoring quoted strings and their escapes (spec §4.2 rule 3).
// ok is false if no match closes the parenthesis before end of string.
func matchParen(s string, open int) (close int, ok bool) {
	depth := 0
	n := len(s)
	for i := open; i < n; {
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
			if depth == 0 {
				return i - 1, true
			}
		default:
			i++
		}
	}
	return 0, false
}

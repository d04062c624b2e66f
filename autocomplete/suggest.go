package autocomplete

import (
	"strings"

	"github.com/reflog-io/reflog-ql/schema"
)

// Suggestion is one candidate completion (spec §3, §4.4). When
// ReplacePartial is false, ReplaceLength is always 0 and the client
// inserts InsertText at the cursor without touching preceding text.
// Otherwise ReplaceLength is the byte length of the context's partial,
// so the client splices text[0..cursor-ReplaceLength] + InsertText +
// text[cursor..].
type Suggestion struct {
	Label          string
	InsertText     string
	ReplacePartial bool
	ReplaceLength  int
}

var topLevelKeys = []string{"entity:", "limit:", "order:", "include:", "where:("}

var whereOperators = []string{"=", "!=", "<", ">", "<=", ">="}

// Suggest implements Stage B (spec §4.4): it turns a cursor context into
// a ranked, prefix-filtered, deduplicated suggestion list. sch may be
// nil, in which case entity/field/relation/value based contexts simply
// have nothing to offer.
func Suggest(ctx CursorContext, sch *schema.Schema) []Suggestion {
	switch ctx.Kind {
	case KindTopLevel:
		return suggestTopLevel(ctx)
	case KindEntityValue:
		return suggestEntityValue(ctx, sch)
	case KindLimitValue:
		return nil
	case KindIncludeValue:
		return suggestIncludeValue(ctx, sch)
	case KindOrderValue:
		return suggestOrderValue(ctx, sch)
	case KindWhereField:
		return suggestWhereField(ctx, sch)
	case KindWhereValue:
		return suggestWhereValue(ctx, sch)
	default: // KindUnknown
		return nil
	}
}

// SuggestAt composes Context and Suggest: the one-call convenience the
// external interface exposes alongside the two individual stages.
func SuggestAt(text string, cursor int, sch *schema.Schema) []Suggestion {
	return Suggest(Context(text, cursor), sch)
}

func matchesPrefix(label, partial string) bool {
	return len(partial) <= len(label) && strings.EqualFold(label[:len(partial)], partial)
}

func replacing(label, partial string) Suggestion {
	return Suggestion{Label: label, InsertText: label, ReplacePartial: true, ReplaceLength: len(partial)}
}

func inserting(label string) Suggestion {
	return Suggestion{Label: label, InsertText: label, ReplacePartial: false, ReplaceLength: 0}
}

func suggestTopLevel(ctx CursorContext) []Suggestion {
	var out []Suggestion
	for _, key := range topLevelKeys {
		name := strings.TrimSuffix(strings.TrimSuffix(key, "("), ":")
		if ctx.UsedKeys[name] {
			continue
		}
		if !matchesPrefix(key, ctx.Partial) {
			continue
		}
		out = append(out, replacing(key, ctx.Partial))
	}
	return out
}

func suggestEntityValue(ctx CursorContext, sch *schema.Schema) []Suggestion {
	if sch == nil {
		return nil
	}
	var out []Suggestion
	for _, e := range sch.Entities {
		if matchesPrefix(e.Name, ctx.Partial) {
			out = append(out, replacing(e.Name, ctx.Partial))
		}
	}
	return out
}

// relevantEntities returns the schema entities whose name matches
// entityVal as an exact-or-prefix, case-insensitive match. An empty
// entityVal matches every entity (spec §4.4 "relevant entities").
func relevantEntities(sch *schema.Schema, entityVal string) []schema.EntityDef {
	if sch == nil {
		return nil
	}
	if entityVal == "" {
		return sch.Entities
	}
	var out []schema.EntityDef
	for _, e := range sch.Entities {
		if matchesPrefix(e.Name, entityVal) {
			out = append(out, e)
		}
	}
	return out
}

func suggestIncludeValue(ctx CursorContext, sch *schema.Schema) []Suggestion {
	entities := relevantEntities(sch, ctx.EntityValue)
	seen := map[string]bool{}
	var out []Suggestion
	for _, e := range entities {
		for _, rel := range e.Relations {
			if seen[rel] || !matchesPrefix(rel, ctx.Partial) {
				continue
			}
			seen[rel] = true
			out = append(out, replacing(rel, ctx.Partial))
		}
	}
	return out
}

func suggestOrderValue(ctx CursorContext, sch *schema.Schema) []Suggestion {
	entities := relevantEntities(sch, ctx.EntityValue)
	seen := map[string]bool{}
	var out []Suggestion
	for _, e := range entities {
		for _, f := range e.Fields {
			if seen[f.Name] || !matchesPrefix(f.Name, ctx.Partial) {
				continue
			}
			seen[f.Name] = true
			out = append(out, replacing(f.Name, ctx.Partial))
		}
	}
	if ctx.AfterField {
		for _, dir := range []string{"asc", "desc"} {
			if matchesPrefix(dir, ctx.Partial) {
				out = append(out, replacing(dir, ctx.Partial))
			}
		}
	}
	return out
}

func suggestWhereField(ctx CursorContext, sch *schema.Schema) []Suggestion {
	entities := relevantEntities(sch, ctx.EntityValue)
	seen := map[string]bool{}
	var names []string
	for _, e := range entities {
		for _, f := range e.Fields {
			if seen[f.Name] {
				continue
			}
			seen[f.Name] = true
			names = append(names, f.Name)
		}
	}

	for _, name := range names {
		if name == ctx.Partial {
			out := make([]Suggestion, 0, len(whereOperators))
			for _, op := range whereOperators {
				out = append(out, inserting(op))
			}
			return out
		}
	}

	var out []Suggestion
	for _, name := range names {
		if matchesPrefix(name, ctx.Partial) {
			out = append(out, replacing(name, ctx.Partial))
		}
	}
	return out
}

func suggestWhereValue(ctx CursorContext, sch *schema.Schema) []Suggestion {
	entities := relevantEntities(sch, ctx.EntityValue)
	seen := map[string]bool{}
	var out []Suggestion
	for _, e := range entities {
		f, ok := e.Field(ctx.Field)
		if !ok {
			continue
		}
		for _, v := range f.Values {
			if seen[v] || !matchesPrefix(v, ctx.Partial) {
				continue
			}
			seen[v] = true
			out = append(out, replacing(v, ctx.Partial))
		}
	}
	return out
}

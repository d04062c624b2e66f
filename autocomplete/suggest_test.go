package autocomplete_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reflog-io/reflog-ql/autocomplete"
	"github.com/reflog-io/reflog-ql/schema"
)

func testSchema() *schema.Schema {
	return &schema.Schema{
		Entities: []schema.EntityDef{
			{
				Name:      "User",
				Relations: []string{"orgs", "teams"},
				Fields: []schema.FieldDef{
					{Name: "status", Type: schema.TypeString, Values: []string{"active", "inactive"}},
					{Name: "age", Type: schema.TypeNumber},
				},
			},
			{
				Name: "Order",
				Fields: []schema.FieldDef{
					{Name: "status", Type: schema.TypeString, Values: []string{"open", "closed"}},
				},
			},
		},
	}
}

func TestSuggestAt_ConcreteScenario(t *testing.T) {
	t.Parallel()
	sch := &schema.Schema{Entities: []schema.EntityDef{{Name: "User"}}}
	got := autocomplete.SuggestAt("entity:U", 8, sch)
	require.Len(t, got, 1)
	assert.Equal(t, autocomplete.Suggestion{
		Label: "User", InsertText: "User", ReplacePartial: true, ReplaceLength: 1,
	}, got[0])
}

func TestSuggest_TopLevel(t *testing.T) {
	t.Parallel()

	t.Run("drops already-used keys", func(t *testing.T) {
		ctx := autocomplete.CursorContext{
			Kind:     autocomplete.KindTopLevel,
			UsedKeys: map[string]bool{"entity": true, "where": true},
		}
		got := autocomplete.Suggest(ctx, nil)
		var labels []string
		for _, s := range got {
			labels = append(labels, s.Label)
		}
		assert.Equal(t, []string{"limit:", "order:", "include:"}, labels)
	})

	t.Run("filters by partial", func(t *testing.T) {
		ctx := autocomplete.CursorContext{Kind: autocomplete.KindTopLevel, Partial: "l"}
		got := autocomplete.Suggest(ctx, nil)
		require.Len(t, got, 1)
		assert.Equal(t, "limit:", got[0].Label)
		assert.Equal(t, 1, got[0].ReplaceLength)
	})
}

func TestSuggest_WhereField_ExactMatchOverride(t *testing.T) {
	t.Parallel()
	ctx := autocomplete.CursorContext{
		Kind: autocomplete.KindWhereField, Partial: "status", EntityValue: "User",
	}
	got := autocomplete.Suggest(ctx, testSchema())
	require.Len(t, got, 6)
	for _, s := range got {
		assert.False(t, s.ReplacePartial)
		assert.Equal(t, 0, s.ReplaceLength)
	}
	labels := make([]string, len(got))
	for i, s := range got {
		labels[i] = s.Label
	}
	assert.Equal(t, []string{"=", "!=", "<", ">", "<=", ">="}, labels)
}

func TestSuggest_WhereField_PrefixFilter(t *testing.T) {
	t.Parallel()
	ctx := autocomplete.CursorContext{
		Kind: autocomplete.KindWhereField, Partial: "a", EntityValue: "User",
	}
	got := autocomplete.Suggest(ctx, testSchema())
	require.Len(t, got, 1)
	assert.Equal(t, "age", got[0].Label)
	assert.True(t, got[0].ReplacePartial)
	assert.Equal(t, 1, got[0].ReplaceLength)
}

func TestSuggest_WhereField_DedupAcrossEntities(t *testing.T) {
	t.Parallel()
	ctx := autocomplete.CursorContext{Kind: autocomplete.KindWhereField, EntityValue: ""}
	got := autocomplete.Suggest(ctx, testSchema())
	var labels []string
	for _, s := range got {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{"status", "age"}, labels)
}

func TestSuggest_WhereValue(t *testing.T) {
	t.Parallel()
	ctx := autocomplete.CursorContext{
		Kind: autocomplete.KindWhereValue, Field: "status", EntityValue: "User", Partial: "in",
	}
	got := autocomplete.Suggest(ctx, testSchema())
	require.Len(t, got, 1)
	assert.Equal(t, "inactive", got[0].Label)
}

func TestSuggest_IncludeValue(t *testing.T) {
	t.Parallel()
	ctx := autocomplete.CursorContext{Kind: autocomplete.KindIncludeValue, EntityValue: "User"}
	got := autocomplete.Suggest(ctx, testSchema())
	var labels []string
	for _, s := range got {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{"orgs", "teams"}, labels)
}

func TestSuggest_OrderValue_AfterField(t *testing.T) {
	t.Parallel()
	ctx := autocomplete.CursorContext{Kind: autocomplete.KindOrderValue, EntityValue: "User", AfterField: true}
	got := autocomplete.Suggest(ctx, testSchema())
	labels := make([]string, len(got))
	for i, s := range got {
		labels[i] = s.Label
	}
	assert.Contains(t, labels, "asc")
	assert.Contains(t, labels, "desc")
	assert.Contains(t, labels, "status")
	assert.Contains(t, labels, "age")
}

func TestSuggest_LimitAndUnknown(t *testing.T) {
	t.Parallel()
	assert.Empty(t, autocomplete.Suggest(autocomplete.CursorContext{Kind: autocomplete.KindLimitValue}, testSchema()))
	assert.Empty(t, autocomplete.Suggest(autocomplete.CursorContext{Kind: autocomplete.KindUnknown}, testSchema()))
}

func TestSuggest_NilSchema(t *testing.T) {
	t.Parallel()
	assert.Empty(t, autocomplete.Suggest(autocomplete.CursorContext{Kind: autocomplete.KindEntityValue}, nil))
	assert.Empty(t, autocomplete.Suggest(autocomplete.CursorContext{Kind: autocomplete.KindWhereField}, nil))
}

package autocomplete_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reflog-io/reflog-ql/autocomplete"
)

func TestContext_ConcreteScenarios(t *testing.T) {
	t.Parallel()

	t.Run("entity value partial", func(t *testing.T) {
		ctx := autocomplete.Context("entity:U", 8)
		assert.Equal(t, autocomplete.KindEntityValue, ctx.Kind)
		assert.Equal(t, "U", ctx.Partial)
	})

	t.Run("top level after closed where block and a partial key", func(t *testing.T) {
		text := "entity:User where:(status!=active) l"
		ctx := autocomplete.Context(text, 36)
		assert.Equal(t, autocomplete.KindTopLevel, ctx.Kind)
		assert.Equal(t, "l", ctx.Partial)
		assert.True(t, ctx.UsedKeys["entity"])
		assert.True(t, ctx.UsedKeys["where"])
	})
}

func TestContext_TopLevel(t *testing.T) {
	t.Parallel()

	t.Run("empty query", func(t *testing.T) {
		ctx := autocomplete.Context("", 0)
		assert.Equal(t, autocomplete.KindTopLevel, ctx.Kind)
		assert.Equal(t, "", ctx.Partial)
	})

	t.Run("trailing whitespace at end of input", func(t *testing.T) {
		ctx := autocomplete.Context("entity:users ", 13)
		assert.Equal(t, autocomplete.KindTopLevel, ctx.Kind)
		assert.Equal(t, "", ctx.Partial)
	})

	t.Run("cursor immediately past closed where block", func(t *testing.T) {
		text := "entity:users where:(a=1)"
		ctx := autocomplete.Context(text, len(text))
		assert.Equal(t, autocomplete.KindTopLevel, ctx.Kind)
		assert.Equal(t, "", ctx.Partial)
	})

	t.Run("cursor out of range clamps", func(t *testing.T) {
		ctx := autocomplete.Context("entity:u", 1000)
		assert.Equal(t, autocomplete.KindEntityValue, ctx.Kind)
		assert.Equal(t, "u", ctx.Partial)
	})
}

func TestContext_LimitAndInclude(t *testing.T) {
	t.Parallel()

	text := "entity:users limit:1"
	ctx := autocomplete.Context(text, len(text))
	assert.Equal(t, autocomplete.KindLimitValue, ctx.Kind)
	assert.Equal(t, "1", ctx.Partial)

	text = "entity:users include:org,te"
	ctx = autocomplete.Context(text, len(text))
	assert.Equal(t, autocomplete.KindIncludeValue, ctx.Kind)
	assert.Equal(t, "te", ctx.Partial)
	assert.Equal(t, "users", ctx.EntityValue)
}

func TestContext_OrderValue(t *testing.T) {
	t.Parallel()

	t.Run("typing a field name", func(t *testing.T) {
		ctx := autocomplete.Context("entity:users order:pri", 23)
		assert.Equal(t, autocomplete.KindOrderValue, ctx.Kind)
		assert.Equal(t, "pri", ctx.Partial)
		assert.False(t, ctx.AfterField)
	})

	t.Run("space after field ready for direction", func(t *testing.T) {
		text := "entity:users order:price "
		ctx := autocomplete.Context(text, len(text))
		assert.Equal(t, autocomplete.KindOrderValue, ctx.Kind)
		assert.True(t, ctx.AfterField)
	})

	t.Run("space right after order colon is top level", func(t *testing.T) {
		text := "entity:users order: "
		ctx := autocomplete.Context(text, len(text))
		assert.Equal(t, autocomplete.KindTopLevel, ctx.Kind)
	})

	t.Run("second term after a comma", func(t *testing.T) {
		text := "entity:users order:price asc,na"
		ctx := autocomplete.Context(text, len(text))
		assert.Equal(t, autocomplete.KindOrderValue, ctx.Kind)
		assert.Equal(t, "na", ctx.Partial)
	})
}

func TestContext_WhereField(t *testing.T) {
	t.Parallel()

	t.Run("typing a field name", func(t *testing.T) {
		text := "entity:users where:(sta"
		ctx := autocomplete.Context(text, len(text))
		assert.Equal(t, autocomplete.KindWhereField, ctx.Kind)
		assert.Equal(t, "sta", ctx.Partial)
		assert.Equal(t, "users", ctx.EntityValue)
	})

	t.Run("fresh field after and", func(t *testing.T) {
		text := "entity:users where:(status=active and "
		ctx := autocomplete.Context(text, len(text))
		assert.Equal(t, autocomplete.KindWhereField, ctx.Kind)
		assert.Equal(t, "", ctx.Partial)
	})

	t.Run("fresh field right after open paren", func(t *testing.T) {
		text := "entity:users where:("
		ctx := autocomplete.Context(text, len(text))
		assert.Equal(t, autocomplete.KindWhereField, ctx.Kind)
		assert.Equal(t, "", ctx.Partial)
	})
}

func TestContext_WhereValue(t *testing.T) {
	t.Parallel()

	t.Run("typing a value", func(t *testing.T) {
		text := "entity:users where:(status=act"
		ctx := autocomplete.Context(text, len(text))
		assert.Equal(t, autocomplete.KindWhereValue, ctx.Kind)
		assert.Equal(t, "act", ctx.Partial)
		assert.Equal(t, "status", ctx.Field)
		assert.Equal(t, "=", ctx.Op)
	})

	t.Run("right after operator", func(t *testing.T) {
		text := "entity:users where:(status!="
		ctx := autocomplete.Context(text, len(text))
		assert.Equal(t, autocomplete.KindWhereValue, ctx.Kind)
		assert.Equal(t, "", ctx.Partial)
		assert.Equal(t, "status", ctx.Field)
		assert.Equal(t, "!=", ctx.Op)
	})

	t.Run("inside a quoted value", func(t *testing.T) {
		text := `entity:users where:(name="jo`
		ctx := autocomplete.Context(text, len(text))
		assert.Equal(t, autocomplete.KindWhereValue, ctx.Kind)
		assert.Equal(t, "jo", ctx.Partial)
		assert.Equal(t, "name", ctx.Field)
	})
}

func TestContext_UnknownKey(t *testing.T) {
	t.Parallel()
	ctx := autocomplete.Context("foo:bar", 7)
	assert.Equal(t, autocomplete.KindUnknown, ctx.Kind)
}

package guice_test

import (
	"reflect"
	"testing"

	"github.com/Jsparrow/guice"
	"github.com/Jsparrow/guice/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_Construction(t *testing.T) {
	t.Run("KeyOf and KeyFor agree", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, guice.KeyOf[string](), guice.KeyFor(reflect.TypeOf("")))
		assert.Equal(t, guice.KeyOf[*testutil.TestService](), guice.KeyFor(reflect.TypeOf(&testutil.TestService{})))
	})

	t.Run("zero key is the untyped placeholder", func(t *testing.T) {
		t.Parallel()

		var k guice.Key
		assert.True(t, k.IsZero())
		assert.Nil(t, k.Type())
		assert.False(t, guice.KeyOf[int]().IsZero())
	})

	t.Run("nil type panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { guice.KeyFor(nil) })
	})
}

func TestKey_Qualifiers(t *testing.T) {
	t.Run("qualifier value", func(t *testing.T) {
		t.Parallel()

		k := guice.KeyOf[string]().Qualified(guice.Named("primary"))

		assert.True(t, k.HasQualifier())
		assert.Equal(t, guice.Named("primary"), k.Qualifier())
		assert.Equal(t, reflect.TypeOf(guice.Named("")), k.QualifierType())
	})

	t.Run("marker qualifier type", func(t *testing.T) {
		t.Parallel()

		k := guice.KeyOf[string]().QualifiedBy(testutil.BlueType)

		assert.True(t, k.HasQualifier())
		assert.Nil(t, k.Qualifier())
		assert.Equal(t, testutil.BlueType, k.QualifierType())
	})

	t.Run("structural equality", func(t *testing.T) {
		t.Parallel()

		a := guice.KeyOf[string]().Qualified(guice.Named("x"))
		b := guice.KeyOf[string]().Qualified(guice.Named("x"))
		c := guice.KeyOf[string]().Qualified(guice.Named("y"))

		assert.Equal(t, a, b)
		assert.NotEqual(t, a, c)
		assert.NotEqual(t, a, guice.KeyOf[string]())
		assert.NotEqual(t, a, guice.KeyOf[string]().QualifiedBy(reflect.TypeOf(guice.Named(""))))
	})

	t.Run("usable as a map key", func(t *testing.T) {
		t.Parallel()

		m := make(map[guice.Key]int)
		m[guice.KeyOf[string]()] = 1
		m[guice.KeyOf[string]().Qualified(guice.Named("x"))] = 2
		m[guice.KeyOf[int]()] = 3

		require.Len(t, m, 3)
		assert.Equal(t, 2, m[guice.KeyOf[string]().Qualified(guice.Named("x"))])
	})

	t.Run("nil and non-comparable qualifiers panic", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { guice.KeyOf[string]().Qualified(nil) })
		assert.Panics(t, func() { guice.KeyOf[string]().Qualified([]string{"not", "comparable"}) })
		assert.Panics(t, func() { guice.KeyOf[string]().QualifiedBy(nil) })
	})
}

func TestKey_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "string", guice.KeyOf[string]().String())
	assert.Equal(t, `string qualified by Named("x")`,
		guice.KeyOf[string]().Qualified(guice.Named("x")).String())
	assert.Equal(t, "string qualified by testutil.Blue",
		guice.KeyOf[string]().QualifiedBy(testutil.BlueType).String())
	assert.Equal(t, "<untyped>", guice.Key{}.String())
}

package objmap

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() (*Engine, *MapperRegistry) {
	reg := NewMapperRegistry()
	return NewEngine(reg), reg
}

func TestEngine_Identity(t *testing.T) {
	eng, _ := newTestEngine()

	res, err := eng.Convert(reflect.ValueOf("hello"), reflect.TypeOf(""))
	require.NoError(t, err)
	require.True(t, res.Converted)
	assert.Equal(t, "hello", res.Value.Interface())
}

func TestEngine_SequenceConversion(t *testing.T) {
	eng, _ := newTestEngine()

	t.Run("TextToIntegers", func(t *testing.T) {
		res, err := eng.Convert(reflect.ValueOf([]string{"1", "2", "3"}), reflect.TypeOf([]int{}))
		require.NoError(t, err)
		require.True(t, res.Converted)
		assert.Equal(t, []int{1, 2, 3}, res.Value.Interface())
	})

	t.Run("EmptySequence", func(t *testing.T) {
		res, err := eng.Convert(reflect.ValueOf([]string{}), reflect.TypeOf([]int{}))
		require.NoError(t, err)
		require.True(t, res.Converted)
		assert.Equal(t, 0, res.Value.Len())
	})

	t.Run("NilSliceIsStillASequence", func(t *testing.T) {
		var src []string
		res, err := eng.Convert(reflect.ValueOf(src), reflect.TypeOf([]int{}))
		require.NoError(t, err)
		require.True(t, res.Converted)
		assert.Equal(t, 0, res.Value.Len())
	})

	t.Run("ElementFailureFailsWhole", func(t *testing.T) {
		res, err := eng.Convert(reflect.ValueOf([]string{"1", "x"}), reflect.TypeOf([]int{}))
		require.Error(t, err)
		assert.False(t, res.Converted)
		assert.Contains(t, err.Error(), "element 1")
	})

	t.Run("PointerElements", func(t *testing.T) {
		res, err := eng.Convert(reflect.ValueOf([]string{"7"}), reflect.TypeOf([]*int{}))
		require.NoError(t, err)
		require.True(t, res.Converted)
		out := res.Value.Interface().([]*int)
		require.Len(t, out, 1)
		assert.Equal(t, 7, *out[0])
	})
}

func TestEngine_SetConversion(t *testing.T) {
	eng, _ := newTestEngine()

	t.Run("TextToIntegers", func(t *testing.T) {
		src := map[string]struct{}{"1": {}, "2": {}}
		res, err := eng.Convert(reflect.ValueOf(src), reflect.TypeOf(map[int]struct{}{}))
		require.NoError(t, err)
		require.True(t, res.Converted)
		assert.Equal(t, map[int]struct{}{1: {}, 2: {}}, res.Value.Interface())
	})

	t.Run("DeduplicatesPerTargetEquality", func(t *testing.T) {
		src := map[string]struct{}{"1": {}, "01": {}}
		res, err := eng.Convert(reflect.ValueOf(src), reflect.TypeOf(map[int]struct{}{}))
		require.NoError(t, err)
		require.True(t, res.Converted)
		assert.Equal(t, map[int]struct{}{1: {}}, res.Value.Interface())
	})

	t.Run("MemberFailureFailsWhole", func(t *testing.T) {
		src := map[string]struct{}{"x": {}}
		_, err := eng.Convert(reflect.ValueOf(src), reflect.TypeOf(map[int]struct{}{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "set member")
	})
}

func TestEngine_KeyedMapConversion(t *testing.T) {
	eng, _ := newTestEngine()

	t.Run("KeysAndValuesIndependently", func(t *testing.T) {
		src := map[string]string{"1": "true", "2": "false"}
		res, err := eng.Convert(reflect.ValueOf(src), reflect.TypeOf(map[int]bool{}))
		require.NoError(t, err)
		require.True(t, res.Converted)
		assert.Equal(t, map[int]bool{1: true, 2: false}, res.Value.Interface())
	})

	t.Run("EmptyMap", func(t *testing.T) {
		res, err := eng.Convert(reflect.ValueOf(map[string]string{}), reflect.TypeOf(map[int]int{}))
		require.NoError(t, err)
		require.True(t, res.Converted)
		assert.Equal(t, 0, res.Value.Len())
	})

	t.Run("KeyFailureIdentifiesKey", func(t *testing.T) {
		src := map[string]string{"bad": "1"}
		_, err := eng.Convert(reflect.ValueOf(src), reflect.TypeOf(map[int]int{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "map key bad")
	})

	t.Run("ValueFailureIdentifiesEntry", func(t *testing.T) {
		src := map[string]string{"1": "nope"}
		_, err := eng.Convert(reflect.ValueOf(src), reflect.TypeOf(map[int]bool{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "map value nope")
		assert.Contains(t, err.Error(), "key 1")
	})
}

func TestEngine_CustomMapper(t *testing.T) {
	t.Run("TakesPrecedenceOverScalarTable", func(t *testing.T) {
		eng, reg := newTestEngine()
		RegisterMapperFunc(reg, func(s string) (int, bool) {
			return 42, true
		})

		res, err := eng.Convert(reflect.ValueOf("30"), reflect.TypeOf(0))
		require.NoError(t, err)
		require.True(t, res.Converted)
		assert.Equal(t, 42, res.Value.Interface())
	})

	t.Run("DecliningMapperFallsThroughToScalar", func(t *testing.T) {
		eng, reg := newTestEngine()
		RegisterMapperFunc(reg, func(s string) (int, bool) {
			return 0, false
		})

		res, err := eng.Convert(reflect.ValueOf("30"), reflect.TypeOf(0))
		require.NoError(t, err)
		require.True(t, res.Converted)
		assert.Equal(t, 30, res.Value.Interface())
	})

	t.Run("WrongProducedTypeIsAHardFailure", func(t *testing.T) {
		eng, reg := newTestEngine()
		reg.Register(reflect.TypeOf(""), reflect.TypeOf(0), func(source any) (any, bool) {
			return "not an int", true
		})

		res, err := eng.Convert(reflect.ValueOf("30"), reflect.TypeOf(0))
		require.Error(t, err)
		assert.False(t, res.Converted)
	})

	t.Run("NominalTypesOnly", func(t *testing.T) {
		// A mapper registered for a container pair sharing a classifier is
		// never consulted: container recursion is structural.
		eng, reg := newTestEngine()
		reg.Register(reflect.TypeOf([]string{}), reflect.TypeOf([]int{}), func(source any) (any, bool) {
			return []int{99}, true
		})

		res, err := eng.Convert(reflect.ValueOf([]string{"1"}), reflect.TypeOf([]int{}))
		require.NoError(t, err)
		require.True(t, res.Converted)
		assert.Equal(t, []int{1}, res.Value.Interface())
	})
}

func TestEngine_ScalarFallback(t *testing.T) {
	eng, _ := newTestEngine()

	res, err := eng.Convert(reflect.ValueOf("2026-08-25"), DateType)
	require.NoError(t, err)
	require.True(t, res.Converted)
	assert.Equal(t, Date{Year: 2026, Month: time.August, Day: 25}, res.Value.Interface())
}

func TestEngine_Idempotent(t *testing.T) {
	eng, _ := newTestEngine()

	first, err := eng.Convert(reflect.ValueOf("2026-08-25"), DateType)
	require.NoError(t, err)
	require.True(t, first.Converted)

	// Converting the produced value to the same kind again is the identity.
	second, err := eng.Convert(first.Value, DateType)
	require.NoError(t, err)
	require.True(t, second.Converted)
	assert.Equal(t, first.Value.Interface(), second.Value.Interface())
}

func TestEngine_PointerTarget(t *testing.T) {
	eng, _ := newTestEngine()

	res, err := eng.Convert(reflect.ValueOf("30"), reflect.TypeOf((*int)(nil)))
	require.NoError(t, err)
	require.True(t, res.Converted)
	assert.Equal(t, 30, *res.Value.Interface().(*int))
}

func TestEngine_NoConversion(t *testing.T) {
	eng, _ := newTestEngine()

	type opaque struct{ X int }
	res, err := eng.Convert(reflect.ValueOf(opaque{X: 1}), reflect.TypeOf(0))
	require.NoError(t, err)
	assert.False(t, res.Converted)
}

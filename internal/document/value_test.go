package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_InsertionOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("zebra", Int(1))
	obj.Set("apple", Int(2))
	obj.Set("mango", Int(3))

	assert.Equal(t, []string{"zebra", "apple", "mango"}, obj.Keys())

	// Overwriting keeps the original position
	obj.Set("apple", Int(20))
	assert.Equal(t, []string{"zebra", "apple", "mango"}, obj.Keys())
	v, ok := obj.Get("apple")
	require.True(t, ok)
	assert.Equal(t, Int(20), v)
}

func TestObject_Delete(t *testing.T) {
	obj := NewObject()
	obj.Set("a", Int(1))
	obj.Set("b", Int(2))
	obj.Set("c", Int(3))

	assert.True(t, obj.Delete("b"))
	assert.Equal(t, []string{"a", "c"}, obj.Keys())
	assert.Equal(t, 2, obj.Len())

	assert.False(t, obj.Delete("missing"))
}

func TestObject_Insert(t *testing.T) {
	obj := NewObject()
	obj.Set("a", Int(1))
	obj.Set("c", Int(3))

	// A new member lands at the requested position
	obj.Insert(1, "b", Int(2))
	assert.Equal(t, []string{"a", "b", "c"}, obj.Keys())
	v, ok := obj.Get("b")
	require.True(t, ok)
	assert.Equal(t, Int(2), v)

	// An existing member is moved, not duplicated
	obj.Insert(0, "c", Int(30))
	assert.Equal(t, []string{"c", "a", "b"}, obj.Keys())
	assert.Equal(t, 3, obj.Len())

	// Out-of-range positions clamp to the ends
	obj.Insert(99, "a", Int(1))
	assert.Equal(t, []string{"c", "b", "a"}, obj.Keys())
	obj.Insert(-1, "a", Int(1))
	assert.Equal(t, []string{"a", "c", "b"}, obj.Keys())
}

func TestMarshal_NoHTMLEscaping(t *testing.T) {
	data, err := String("<toggled>").MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"<toggled>"`, string(data))

	obj := NewObject()
	obj.Set("a<b>", String("x & y"))
	obj.Set("list", NewArray(String("<1>")))
	data, err = obj.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"a<b>":"x & y","list":["<1>"]}`, string(data))
}

func TestArray_SetAt_Pads(t *testing.T) {
	arr := NewArray(Int(10))
	arr.SetAt(3, Int(40))

	require.Equal(t, 4, arr.Len())
	one, ok := arr.At(1)
	require.True(t, ok)
	assert.Equal(t, Null{}, one)
	three, ok := arr.At(3)
	require.True(t, ok)
	assert.Equal(t, Int(40), three)
}

func TestArray_Remove_Shifts(t *testing.T) {
	arr := NewArray(Int(10), Int(20), Int(30))

	assert.True(t, arr.Remove(1))
	require.Equal(t, 2, arr.Len())
	last, ok := arr.At(1)
	require.True(t, ok)
	assert.Equal(t, Int(30), last)

	assert.False(t, arr.Remove(5))
	assert.False(t, arr.Remove(-1))
}

func TestClone_IsDeep(t *testing.T) {
	inner := NewObject()
	inner.Set("b", Int(1))
	root := NewObject()
	root.Set("a", inner)
	root.Set("list", NewArray(Int(10), Int(20)))

	clone := root.Clone().(*Object)

	// Mutate the clone; the source must not change
	clonedInner, ok := clone.Get("a")
	require.True(t, ok)
	clonedInner.(*Object).Set("b", Int(99))
	clonedList, ok := clone.Get("list")
	require.True(t, ok)
	clonedList.(*Array).SetAt(0, Int(77))

	sourceInner, _ := root.Get("a")
	b, _ := sourceInner.(*Object).Get("b")
	assert.Equal(t, Int(1), b)
	sourceList, _ := root.Get("list")
	first, _ := sourceList.(*Array).At(0)
	assert.Equal(t, Int(10), first)
}

func TestKind(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected Kind
	}{
		{name: "null", value: Null{}, expected: KindNull},
		{name: "bool", value: Bool(true), expected: KindBool},
		{name: "number", value: Int(5), expected: KindNumber},
		{name: "string", value: String("x"), expected: KindString},
		{name: "array", value: NewArray(), expected: KindArray},
		{name: "object", value: NewObject(), expected: KindObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.Kind())
		})
	}
}

func TestEqual(t *testing.T) {
	makeDoc := func() Value {
		obj := NewObject()
		obj.Set("a", Int(1))
		obj.Set("b", NewArray(Int(10), String("x"), Null{}))
		return obj
	}

	assert.True(t, Equal(makeDoc(), makeDoc()))
	assert.True(t, Equal(Null{}, Null{}))
	assert.False(t, Equal(Null{}, Bool(false)))
	assert.False(t, Equal(Int(1), Int(2)))
	assert.False(t, Equal(String("a"), String("b")))

	// Same members, different insertion order
	first := NewObject()
	first.Set("a", Int(1))
	first.Set("b", Int(2))
	second := NewObject()
	second.Set("b", Int(2))
	second.Set("a", Int(1))
	assert.False(t, Equal(first, second))

	// Different array lengths
	assert.False(t, Equal(NewArray(Int(1)), NewArray(Int(1), Int(2))))
}

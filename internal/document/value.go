// Package document models a JSON document as a tagged-union value type and
// provides loading, saving and path navigation over it. Objects remember key
// insertion order, which map-based representations cannot, so a document
// survives a load/save round trip without its members being reshuffled.
package document

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Kind identifies the variant of a Value
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns a human-readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a single JSON value: Null, Bool, Number, String, *Array or
// *Object. Every variant marshals back to standard JSON without HTML
// escaping, so strings containing '<', '>' or '&' survive a save/load round
// trip byte for byte.
type Value interface {
	json.Marshaler
	Kind() Kind
	Clone() Value
}

// encodeString appends s to buf as a JSON string literal. The default
// json.Marshal escapes '<', '>' and '&' for embedding in HTML, which would
// rewrite user strings and the placeholder sentinel on every save.
func encodeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates the value with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Null is the JSON null value
type Null struct{}

func (Null) Kind() Kind   { return KindNull }
func (Null) Clone() Value { return Null{} }

func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// Bool is a JSON boolean
type Bool bool

func (b Bool) Kind() Kind   { return KindBool }
func (b Bool) Clone() Value { return b }

func (b Bool) MarshalJSON() ([]byte, error) {
	return strconv.AppendBool(nil, bool(b)), nil
}

// Number is a JSON number, kept as its literal text so integers, floats and
// large values survive unchanged.
type Number string

// Int creates a Number from an integer
func Int(i int) Number {
	return Number(strconv.Itoa(i))
}

func (n Number) Kind() Kind   { return KindNumber }
func (n Number) Clone() Value { return n }

func (n Number) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("0"), nil
	}
	return []byte(n), nil
}

// String is a JSON string
type String string

func (s String) Kind() Kind   { return KindString }
func (s String) Clone() Value { return s }

func (s String) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeString(&buf, string(s)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Array is a JSON array
type Array struct {
	items []Value
}

// NewArray creates an array holding the given items
func NewArray(items ...Value) *Array {
	return &Array{items: items}
}

func (a *Array) Kind() Kind { return KindArray }

func (a *Array) Clone() Value {
	items := make([]Value, len(a.items))
	for i, item := range a.items {
		items[i] = item.Clone()
	}
	return &Array{items: items}
}

// Len returns the number of elements
func (a *Array) Len() int {
	return len(a.items)
}

// At returns the element at index i, reporting whether it exists
func (a *Array) At(i int) (Value, bool) {
	if i < 0 || i >= len(a.items) {
		return nil, false
	}
	return a.items[i], true
}

// SetAt stores v at index i, padding with nulls when i is past the end
func (a *Array) SetAt(i int, v Value) {
	if i < 0 {
		return
	}
	for len(a.items) <= i {
		a.items = append(a.items, Null{})
	}
	a.items[i] = v
}

// Append adds v to the end of the array
func (a *Array) Append(v Value) {
	a.items = append(a.items, v)
}

// Remove deletes the element at index i, shifting later elements down.
// It reports whether the index existed.
func (a *Array) Remove(i int) bool {
	if i < 0 || i >= len(a.items) {
		return false
	}
	a.items = append(a.items[:i], a.items[i+1:]...)
	return true
}

// Items returns the backing slice; callers must not grow or shrink it
func (a *Array) Items() []Value {
	return a.items
}

func (a *Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range a.items {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := item.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Object is a JSON object whose members keep their insertion order
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject creates an empty object
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

func (o *Object) Kind() Kind { return KindObject }

func (o *Object) Clone() Value {
	clone := &Object{
		keys:   append([]string(nil), o.keys...),
		values: make(map[string]Value, len(o.values)),
	}
	for key, value := range o.values {
		clone.values[key] = value.Clone()
	}
	return clone
}

// Len returns the number of members
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the member keys in insertion order
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Get returns the value for key, reporting whether the member exists
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set stores v under key; a new key is appended, an existing one keeps its
// position.
func (o *Object) Set(key string, v Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Insert stores v under key at position i in the key order; an existing
// member is moved. A position past either end clamps to that end.
func (o *Object) Insert(i int, key string, v Value) {
	o.Delete(key)
	if i < 0 {
		i = 0
	}
	if i > len(o.keys) {
		i = len(o.keys)
	}
	o.keys = append(o.keys, "")
	copy(o.keys[i+1:], o.keys[i:])
	o.keys[i] = key
	o.values[key] = v
}

// Delete removes the member for key, reporting whether it existed
func (o *Object) Delete(key string) bool {
	if _, exists := o.values[key]; !exists {
		return false
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeString(&buf, key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		valueData, err := o.values[key].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(valueData)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Equal reports deep structural equality of two values. Object members must
// match in insertion order as well as content; numbers compare by literal
// text.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case Number:
		return av == b.(Number)
	case String:
		return av == b.(String)
	case *Array:
		bv := b.(*Array)
		if len(av.items) != len(bv.items) {
			return false
		}
		for i := range av.items {
			if !Equal(av.items[i], bv.items[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv := b.(*Object)
		if len(av.keys) != len(bv.keys) {
			return false
		}
		for i, key := range av.keys {
			if bv.keys[i] != key {
				return false
			}
			if !Equal(av.values[key], bv.values[key]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

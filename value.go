// Package json2hcl turns a JSON document into the body of a jsonencode( ... ) call. Unlike the
// standard library, it works by first deserializing the input into a Value tree. This is less
// efficient, but keeps everything about the document that matters for re-rendering it: the order
// of object keys and the exact text of numbers.
package json2hcl

import (
	"container/list"
	"math"
)

type Type int8

const (
	TypeNull Type = iota
	TypeBool
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	}
	return ""
}

type (
	// Value describes a json value. It is only implemented by types in this package. Picture it
	// as a set type from other languages.
	Value interface {
		Type() Type
		append(*Serializer, int, []byte) []byte
	}

	// Null represents a null json value.
	Null struct{}
	// Bool represents a boolean json value.
	Bool bool
	// Number represents a numeric json value. Literal holds the text the number was parsed from
	// and is what gets serialized when set.
	Number struct {
		Literal string
		Float   float64
		Integer uint64
		IsFloat bool
		IsNeg   bool
	}
	// String represents a string json value.
	String string
	// Array represents an array json value.
	Array []Value
	// Object represents an object json value. Keys keep the order they were first set in.
	Object struct {
		m *orderedMap[string, Value]
	}
)

// Int returns a Number holding i.
func Int(i int64) Number {
	if i < 0 {
		return Number{Integer: uint64(-(i + 1)) + 1, IsNeg: true}
	}
	return Number{Integer: uint64(i)}
}

// Float returns a Number holding f.
func Float(f float64) Number {
	return Number{Float: f, IsFloat: true, IsNeg: math.Signbit(f)}
}

func (Null) Type() Type   { return TypeNull }
func (Bool) Type() Type   { return TypeBool }
func (Number) Type() Type { return TypeNumber }
func (String) Type() Type { return TypeString }
func (Array) Type() Type  { return TypeArray }
func (Object) Type() Type { return TypeObject }

var (
	_ Value = Null{}
	_ Value = Bool(false)
	_ Value = Number{}
	_ Value = String("")
	_ Value = Array(nil)
	_ Value = Object{}
)

// Float64 returns the number as a float64, converting integers.
func (n Number) Float64() float64 {
	if n.IsFloat {
		return n.Float
	}
	f := float64(n.Integer)
	if n.IsNeg {
		f = -f
	}
	return f
}

func (o *Object) init() {
	if o.m == nil {
		o.m = &orderedMap[string, Value]{
			keys: list.New(),
			m:    make(map[string]orderedMapEntry[Value]),
		}
	}
}

// Get returns the value stored under key.
func (o Object) Get(key string) (Value, bool) {
	return o.m.get(key)
}

// Set stores the value under key. An existing key keeps its position and has its value replaced.
func (o *Object) Set(key string, value Value) {
	o.init()
	o.m.set(key, value)
}

// Len returns the length of the object.
func (o Object) Len() int {
	return o.m.len()
}

// Delete removes the key from the object.
func (o Object) Delete(key string) {
	o.m.remove(key)
}

// Keys returns the keys of the object in order.
func (o Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	iter := o.Iter()
	for {
		k, _, ok := iter.Next()
		if !ok {
			return keys
		}
		keys = append(keys, k)
	}
}

// Iter returns an iterator over the entries of the object in order.
func (o Object) Iter() *ObjectIterator {
	return &ObjectIterator{iter: o.m.iter()}
}

type ObjectIterator struct {
	iter *orderedMapIterator[string, Value]
}

func (o *ObjectIterator) Next() (string, Value, bool) {
	return o.iter.next()
}

type orderedMap[K comparable, V any] struct {
	// Linked list of keys in insertion order.
	keys *list.List
	// The values of the map.
	m map[K]orderedMapEntry[V]
}

type orderedMapEntry[V any] struct {
	key   *list.Element
	value V
}

func (o *orderedMap[K, V]) len() int {
	if o == nil {
		return 0
	}
	return len(o.m)
}

func (o *orderedMap[K, V]) iter() *orderedMapIterator[K, V] {
	iter := orderedMapIterator[K, V]{}
	if o != nil && o.keys != nil {
		iter.e = o.keys.Front()
		iter.m = o.m
	}
	return &iter
}

func (o *orderedMap[K, V]) get(k K) (V, bool) {
	if o == nil {
		var empty V
		return empty, false
	}
	e, ok := o.m[k]
	return e.value, ok
}

// set overwrites the element in the map, appending the key if it is new.
func (o *orderedMap[K, V]) set(k K, v V) {
	if e, ok := o.m[k]; ok {
		e.value = v
		o.m[k] = e
		return
	}
	o.m[k] = orderedMapEntry[V]{
		key:   o.keys.PushBack(k),
		value: v,
	}
}

func (o *orderedMap[K, V]) remove(k K) {
	if o == nil {
		return
	}
	if e, ok := o.m[k]; ok {
		o.keys.Remove(e.key)
		delete(o.m, k)
	}
}

type orderedMapIterator[K comparable, V any] struct {
	e *list.Element
	m map[K]orderedMapEntry[V]
}

func (o *orderedMapIterator[K, V]) next() (K, V, bool) {
	if o.e == nil {
		var emptyK K
		var emptyV V
		return emptyK, emptyV, false
	}

	key := o.e.Value.(K)
	o.e = o.e.Next()
	return key, o.m[key].value, true
}

// Equal reports whether a and b describe the same json value. Objects must have the same keys in
// the same order. Numbers are compared by value.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}
	switch a := a.(type) {
	case Null:
		return true
	case Bool:
		return a == b.(Bool)
	case String:
		return a == b.(String)
	case Number:
		return numbersEqual(a, b.(Number))
	case Array:
		b := b.(Array)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true
	case Object:
		b := b.(Object)
		if a.Len() != b.Len() {
			return false
		}
		ai, bi := a.Iter(), b.Iter()
		for {
			ak, av, ok := ai.Next()
			if !ok {
				return true
			}
			bk, bv, _ := bi.Next()
			if ak != bk || !Equal(av, bv) {
				return false
			}
		}
	}
	return false
}

func numbersEqual(a, b Number) bool {
	if !a.IsFloat && !b.IsFloat {
		if a.Integer == 0 && b.Integer == 0 {
			return true
		}
		return a.Integer == b.Integer && a.IsNeg == b.IsNeg
	}
	return a.Float64() == b.Float64()
}

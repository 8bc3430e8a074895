package json2hcl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Null{}, "null"},
		{Bool(true), "bool"},
		{Int(1), "number"},
		{String("s"), "string"},
		{Array{}, "array"},
		{Object{}, "object"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.Type().String())
	}
	assert.Equal(t, "", Type(42).String())
}

func TestObjectOrder(t *testing.T) {
	var o Object
	assert.Equal(t, 0, o.Len())
	_, ok := o.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, o.Keys())

	o.Set("b", Int(1))
	o.Set("a", Int(2))
	o.Set("c", Int(3))
	assert.Equal(t, []string{"b", "a", "c"}, o.Keys())

	// Replacing a value keeps the key where it was.
	o.Set("b", String("x"))
	assert.Equal(t, []string{"b", "a", "c"}, o.Keys())
	v, ok := o.Get("b")
	require.True(t, ok)
	assert.Equal(t, String("x"), v)
	assert.Equal(t, 3, o.Len())

	o.Delete("a")
	o.Delete("missing")
	assert.Equal(t, []string{"b", "c"}, o.Keys())

	o.Set("a", Null{})
	assert.Equal(t, []string{"b", "c", "a"}, o.Keys())

	iter := o.Iter()
	var got []string
	for {
		k, v, ok := iter.Next()
		if !ok {
			break
		}
		got = append(got, k+"="+v.Type().String())
	}
	assert.Equal(t, []string{"b=string", "c=number", "a=null"}, got)
}

func TestNumberConstructors(t *testing.T) {
	assert.Equal(t, Number{Integer: 5}, Int(5))
	assert.Equal(t, Number{Integer: 5, IsNeg: true}, Int(-5))
	assert.Equal(t, Number{Integer: 1 << 63, IsNeg: true}, Int(math.MinInt64))
	assert.Equal(t, -5.0, Int(-5).Float64())
	assert.Equal(t, 2.5, Float(2.5).Float64())
	assert.True(t, Float(-2.5).IsNeg)
}

func TestEqual(t *testing.T) {
	obj := func(kvs ...any) Object {
		var o Object
		for i := 0; i < len(kvs); i += 2 {
			o.Set(kvs[i].(string), kvs[i+1].(Value))
		}
		return o
	}

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"nulls", Null{}, Null{}, true},
		{"nil", nil, nil, true},
		{"nil and null", nil, Null{}, false},
		{"bools", Bool(true), Bool(true), true},
		{"different bools", Bool(true), Bool(false), false},
		{"strings", String("a"), String("a"), true},
		{"different types", String("1"), Int(1), false},
		{"literal ignored", Number{Literal: "1.0", Float: 1, IsFloat: true}, Int(1), true},
		{"negative zero", Number{Literal: "-0", IsNeg: true}, Int(0), true},
		{"different sign", Int(-1), Int(1), false},
		{"arrays", Array{Int(1), String("a")}, Array{Int(1), String("a")}, true},
		{"array length", Array{Int(1)}, Array{Int(1), Int(1)}, false},
		{"objects", obj("a", Int(1), "b", Null{}), obj("a", Int(1), "b", Null{}), true},
		{"object order", obj("a", Int(1), "b", Null{}), obj("b", Null{}, "a", Int(1)), false},
		{"object values", obj("a", Int(1)), obj("a", Int(2)), false},
		{"nested", Array{obj("a", Array{})}, Array{obj("a", Array{})}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a))
		})
	}
}

// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package ast defines the tree representation of a decoded JSON document.
package ast

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/creachadair/jload/internal/escape"

	"go4.org/mem"
)

// A Value is a single JSON value: an object, array, string, number,
// Boolean, or null.
type Value interface {
	// JSON renders the value as JSON text.
	JSON() string
}

// An Object is a collection of key-value members. Members keep the order
// in which their keys were first inserted.
type Object struct {
	Members []*Member
}

// Find returns the member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Set sets the value of key in o. If the key is already present its value
// is replaced in place, keeping its position; otherwise a new member is
// appended.
func (o *Object) Set(key string, v Value) {
	if m := o.Find(key); m != nil {
		m.Value = v
		return
	}
	o.Members = append(o.Members, &Member{Key: key, Value: v})
}

// Len reports the number of members of o.
func (o *Object) Len() int { return len(o.Members) }

// Sort sorts the members of o in ascending order by key.
func (o *Object) Sort() {
	sort.Slice(o.Members, func(i, j int) bool {
		return o.Members[i].Key < o.Members[j].Key
	})
}

// JSON renders o as JSON text.
func (o *Object) JSON() string {
	if len(o.Members) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	sb.WriteString(o.Members[0].JSON())
	for _, m := range o.Members[1:] {
		sb.WriteByte(',')
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o *Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o.Members)) }

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value. The
// value is converted as by ToValue.
func Field(key string, value any) *Member {
	return &Member{Key: key, Value: ToValue(value)}
}

// JSON renders m as JSON text.
func (m *Member) JSON() string { return String(m.Key).JSON() + ":" + m.Value.JSON() }

// An Array is a sequence of values.
type Array struct {
	Values []Value
}

// Len reports the number of elements of a.
func (a *Array) Len() int { return len(a.Values) }

// JSON renders a as JSON text.
func (a *Array) JSON() string {
	if len(a.Values) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(a.Values[0].JSON())
	for _, v := range a.Values[1:] {
		sb.WriteByte(',')
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a *Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a.Values)) }

// A String is a string value, with escape sequences already decoded.
type String string

// JSON renders s as a quoted JSON string literal.
func (s String) JSON() string {
	return `"` + string(escape.Quote(mem.S(string(s)))) + `"`
}

// An Int is an integer value.
type Int int64

// JSON renders z as JSON text.
func (z Int) JSON() string { return strconv.FormatInt(int64(z), 10) }

// A Real is a floating-point value.
type Real float64

// JSON renders r as JSON text. The rendering always carries a fraction or
// exponent, so reparsing it yields a Real rather than an Int.
func (r Real) JSON() string {
	s := strconv.FormatFloat(float64(r), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON renders b as JSON text.
func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

// Null represents the null constant.
type Null struct{}

// JSON renders the null constant.
func (Null) JSON() string { return "null" }

// ToValue converts a string, int, int64, float64, bool, nil, or Value into
// a Value. It panics if v does not have one of those types.
func ToValue(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case string:
		return String(t)
	case int:
		return Int(t)
	case int64:
		return Int(t)
	case float64:
		return Real(t)
	case bool:
		return Bool(t)
	case nil:
		return Null{}
	default:
		panic(fmt.Sprintf("no conversion for %T", v))
	}
}

package main

import (
	"fmt"
	"strconv"
)

// Type is a Mini-PL static type.
type Type string

const (
	TypeInt    Type = "int"
	TypeString Type = "string"
	TypeBool   Type = "bool"
)

// Value is a runtime value tagged with its type. Only the field matching
// Type is meaningful.
type Value struct {
	Type Type
	Int  int32
	Bool bool
	Str  string
}

func IntValue(n int32) Value     { return Value{Type: TypeInt, Int: n} }
func BoolValue(b bool) Value     { return Value{Type: TypeBool, Bool: b} }
func StringValue(s string) Value { return Value{Type: TypeString, Str: s} }

// DefaultValue returns the value a freshly declared variable of type t holds.
func DefaultValue(t Type) Value {
	switch t {
	case TypeInt:
		return IntValue(0)
	case TypeBool:
		return BoolValue(false)
	case TypeString:
		return StringValue("")
	default:
		panic(fmt.Sprintf("no default value for type %q", t))
	}
}

// AsInt returns the integer payload. It panics on a tag mismatch, which the
// type checker rules out for checked programs.
func (v Value) AsInt() int32 {
	v.expect(TypeInt)
	return v.Int
}

func (v Value) AsBool() bool {
	v.expect(TypeBool)
	return v.Bool
}

func (v Value) AsString() string {
	v.expect(TypeString)
	return v.Str
}

func (v Value) expect(t Type) {
	if v.Type != t {
		panic(fmt.Sprintf("value of type %q used as %q", v.Type, t))
	}
}

// Equal reports whether two values of the same type hold the same payload.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type {
		panic(fmt.Sprintf("comparing values of types %q and %q", v.Type, other.Type))
	}
	switch v.Type {
	case TypeInt:
		return v.Int == other.Int
	case TypeBool:
		return v.Bool == other.Bool
	default:
		return v.Str == other.Str
	}
}

// String returns the text print writes for the value.
func (v Value) String() string {
	switch v.Type {
	case TypeInt:
		return strconv.FormatInt(int64(v.Int), 10)
	case TypeBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

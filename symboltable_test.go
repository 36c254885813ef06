package main

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestNewSymbolTable(t *testing.T) {
	st := NewSymbolTable()
	be.True(t, st != nil)
	be.Equal(t, st.Len(), 0)
	be.Equal(t, len(st.Symbols()), 0)
}

func TestDefineSymbol(t *testing.T) {
	st := NewSymbolTable()

	sym, ok := st.Define("x", TypeInt, 3)
	be.True(t, ok)
	be.Equal(t, sym.Name, "x")
	be.Equal(t, sym.Type, TypeInt)
	be.Equal(t, sym.Row, 3)
	be.Equal(t, st.Len(), 1)
}

func TestDefineSymbolTwice(t *testing.T) {
	st := NewSymbolTable()
	first, ok := st.Define("x", TypeInt, 1)
	be.True(t, ok)

	// The second definition fails and hands back the original declaration.
	existing, ok := st.Define("x", TypeString, 7)
	be.True(t, !ok)
	be.True(t, existing == first)
	be.Equal(t, existing.Type, TypeInt)
	be.Equal(t, existing.Row, 1)
	be.Equal(t, st.Len(), 1)
}

func TestResolveSymbol(t *testing.T) {
	st := NewSymbolTable()
	be.True(t, st.Resolve("x") == nil)

	sym, _ := st.Define("x", TypeBool, 1)
	be.True(t, st.Resolve("x") == sym)
	be.True(t, st.Resolve("X") == nil)
}

func TestSymbolDefaultValues(t *testing.T) {
	st := NewSymbolTable()
	i, _ := st.Define("i", TypeInt, 1)
	s, _ := st.Define("s", TypeString, 2)
	b, _ := st.Define("b", TypeBool, 3)

	be.Equal(t, st.Value(i), IntValue(0))
	be.Equal(t, st.Value(s), StringValue(""))
	be.Equal(t, st.Value(b), BoolValue(false))
}

func TestSetValueAndReset(t *testing.T) {
	st := NewSymbolTable()
	x, _ := st.Define("x", TypeInt, 1)

	st.SetValue(x, IntValue(42))
	be.Equal(t, st.Value(x), IntValue(42))

	st.Reset(x)
	be.Equal(t, st.Value(x), IntValue(0))
}

func TestSetValueWrongTypePanics(t *testing.T) {
	st := NewSymbolTable()
	x, _ := st.Define("x", TypeInt, 1)

	defer func() {
		be.True(t, recover() != nil)
	}()
	st.SetValue(x, StringValue("oops"))
}

func TestSymbolsSortedByName(t *testing.T) {
	st := NewSymbolTable()
	st.Define("zeta", TypeInt, 1)
	st.Define("alpha", TypeString, 2)
	st.Define("mid", TypeBool, 3)

	var names []string
	for _, sym := range st.Symbols() {
		names = append(names, sym.Name)
	}
	be.Equal(t, names, []string{"alpha", "mid", "zeta"})
}

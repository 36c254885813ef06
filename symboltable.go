package main

import "sort"

// Symbol is a declared variable. Row is where it was declared.
type Symbol struct {
	Name string
	Type Type
	Row  int
}

// SymbolTable maps variable names to their declarations and current values.
// Mini-PL has a single global scope.
type SymbolTable struct {
	symbols map[string]*Symbol
	values  map[*Symbol]Value
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		symbols: make(map[string]*Symbol),
		values:  make(map[*Symbol]Value),
	}
}

// Define adds a new symbol. It returns the existing symbol and false if the
// name is already taken.
func (st *SymbolTable) Define(name string, typ Type, row int) (*Symbol, bool) {
	if existing, ok := st.symbols[name]; ok {
		return existing, false
	}
	sym := &Symbol{Name: name, Type: typ, Row: row}
	st.symbols[name] = sym
	return sym, true
}

// Resolve looks up a symbol by name. Returns nil if not found.
func (st *SymbolTable) Resolve(name string) *Symbol {
	return st.symbols[name]
}

// Value returns the current value of sym, or the default for its type if
// nothing has been stored yet.
func (st *SymbolTable) Value(sym *Symbol) Value {
	if v, ok := st.values[sym]; ok {
		return v
	}
	return DefaultValue(sym.Type)
}

// SetValue stores v for sym. The value must have the symbol's type.
func (st *SymbolTable) SetValue(sym *Symbol, v Value) {
	v.expect(sym.Type)
	st.values[sym] = v
}

// Reset gives sym its default value again.
func (st *SymbolTable) Reset(sym *Symbol) {
	st.values[sym] = DefaultValue(sym.Type)
}

// Len returns the number of defined symbols.
func (st *SymbolTable) Len() int {
	return len(st.symbols)
}

// Symbols returns every symbol sorted by name.
func (st *SymbolTable) Symbols() []*Symbol {
	syms := make([]*Symbol, 0, len(st.symbols))
	for _, sym := range st.symbols {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i].Name < syms[j].Name })
	return syms
}

package runtime

import (
	"fmt"
	"sort"
)

// --- Symbols ---------------------------------------------------------------

// Kind is the kind of value a symbol holds.
type Kind int8

// Pre-defined symbol kinds.
const (
	Undefined  Kind = iota
	NumberType      // float64 value
	RuleType        // value is a grammar rule
	StringType      // string value
)

func (k Kind) String() string {
	switch k {
	case NumberType:
		return "number"
	case RuleType:
		return "rule"
	case StringType:
		return "string"
	}
	return "undefined"
}

// Symbol is a named entry of a symbol table.
type Symbol struct {
	name  string
	Kind  Kind
	Value interface{}
}

// NewSymbol creates a new symbol of kind Undefined.
func NewSymbol(name string) *Symbol {
	return &Symbol{name: name}
}

// WithKind sets the initial kind of a symbol. Use as
//
//    sym := NewSymbol("x").WithKind(NumberType)
//
func (s *Symbol) WithKind(k Kind) *Symbol {
	s.Kind = k
	return s
}

// Name gets the symbol's name.
func (s *Symbol) Name() string {
	return s.name
}

// SetNumber stores a number and sets the kind to NumberType.
func (s *Symbol) SetNumber(x float64) {
	s.Kind, s.Value = NumberType, x
}

// Number returns the value of a number symbol. ok is false for symbols of
// other kinds.
func (s *Symbol) Number() (x float64, ok bool) {
	if s.Kind != NumberType {
		return 0, false
	}
	x, ok = s.Value.(float64)
	return
}

// String is a debug Stringer for symbols.
func (s *Symbol) String() string {
	if s.Kind == Undefined {
		return fmt.Sprintf("<%s>", s.name)
	}
	return fmt.Sprintf("<%s:%s=%v>", s.name, s.Kind, s.Value)
}

// === Symbol Tables =========================================================

// SymbolTable stores symbols by name.
type SymbolTable struct {
	table map[string]*Symbol
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{table: make(map[string]*Symbol)}
}

// Resolve checks for a symbol in the table. Returns the symbol or nil.
func (t *SymbolTable) Resolve(name string) *Symbol {
	return t.table[name]
}

// ResolveOrDefine finds a symbol in the table and inserts a new one if not
// found. The flag tells wether the symbol has already been present.
func (t *SymbolTable) ResolveOrDefine(name string) (*Symbol, bool) {
	if name == "" {
		return nil, false
	}
	if sym := t.Resolve(name); sym != nil {
		return sym, true
	}
	sym, _ := t.Define(name)
	return sym, false
}

// Define creates a new symbol in the table, replacing an existing one with the
// same name. Returns the new symbol and the previously stored one (or nil).
// The name may not be empty.
func (t *SymbolTable) Define(name string) (*Symbol, *Symbol) {
	if name == "" {
		return nil, nil
	}
	sym := NewSymbol(name)
	return sym, t.Insert(sym)
}

// Insert inserts a pre-created symbol and returns the symbol it replaces, if any.
func (t *SymbolTable) Insert(sym *Symbol) *Symbol {
	old := t.table[sym.name]
	t.table[sym.name] = sym
	return old
}

// Size counts the symbols in a table.
func (t *SymbolTable) Size() int {
	return len(t.table)
}

// Names returns the names of all symbols, sorted.
func (t *SymbolTable) Names() []string {
	names := make([]string, 0, len(t.table))
	for name := range t.table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Each calls f for every symbol of the table, in order of names.
func (t *SymbolTable) Each(f func(*Symbol)) {
	for _, name := range t.Names() {
		f(t.table[name])
	}
}

// === Scopes ================================================================

// Scope is a named scope, which may contain symbol definitions. Scopes link back
// to a parent scope, forming a tree.
type Scope struct {
	Name   string
	Parent *Scope
	symtab *SymbolTable
}

// NewScope creates a new scope.
func NewScope(name string, parent *Scope) *Scope {
	return &Scope{
		Name:   name,
		Parent: parent,
		symtab: NewSymbolTable(),
	}
}

func (s *Scope) String() string {
	return fmt.Sprintf("<scope %s>", s.Name)
}

// Symbols returns the symbol table of a scope.
func (s *Scope) Symbols() *SymbolTable {
	return s.symtab
}

// Define defines a symbol in the scope. Returns the new symbol and the one
// previously stored under this name, if any.
func (s *Scope) Define(name string) (*Symbol, *Symbol) {
	return s.symtab.Define(name)
}

// Resolve finds a symbol in s or its ancestors. Returns the symbol (or nil) and
// the scope it was found in.
func (s *Scope) Resolve(name string) (*Symbol, *Scope) {
	for sc := s; sc != nil; sc = sc.Parent {
		if sym := sc.symtab.Resolve(name); sym != nil {
			return sym, sc
		}
	}
	return nil, nil
}

// ---------------------------------------------------------------------------

// ScopeTree is used as a stack of scopes. Pushing and popping scopes builds
// a tree. The zero value is an empty tree.
type ScopeTree struct {
	base *Scope
	tos  *Scope
}

// Current gets the current scope of a stack (TOS).
func (st *ScopeTree) Current() *Scope {
	if st.tos == nil {
		panic("attempt to access scope from empty stack")
	}
	return st.tos
}

// Globals gets the outermost scope.
func (st *ScopeTree) Globals() *Scope {
	if st.base == nil {
		panic("attempt to access global scope from empty stack")
	}
	return st.base
}

// Depth returns the number of scopes on the stack.
func (st *ScopeTree) Depth() int {
	n := 0
	for sc := st.tos; sc != nil; sc = sc.Parent {
		n++
	}
	return n
}

// PushNewScope creates a new scope as a child of the current one and makes it
// the current scope.
func (st *ScopeTree) PushNewScope(name string) *Scope {
	sc := NewScope(name, st.tos)
	if st.tos == nil {
		st.base = sc
	}
	st.tos = sc
	tracer().P("scope", name).Debugf("pushing new scope")
	return sc
}

// PopScope pops the current scope.
func (st *ScopeTree) PopScope() *Scope {
	if st.tos == nil {
		panic("attempt to pop scope from empty stack")
	}
	sc := st.tos
	tracer().Debugf("popping scope [%s]", sc.Name)
	st.tos = sc.Parent
	if st.tos == nil {
		st.base = nil
	}
	return sc
}

package runtime

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestDefineAndResolve(t *testing.T) {
	symtab := NewSymbolTable()
	sym, old := symtab.Define("x")
	if sym == nil || old != nil {
		t.Fatalf("expected new symbol without predecessor")
	}
	if symtab.Resolve("x") != sym {
		t.Errorf("cannot find stored symbol in table")
	}
	if _, found := symtab.ResolveOrDefine("x"); !found {
		t.Errorf("expected x to be found")
	}
	if _, found := symtab.ResolveOrDefine("y"); found || symtab.Size() != 2 {
		t.Errorf("expected y to be defined on the fly")
	}
	if sym2, old := symtab.Define("x"); old != sym || sym2 == sym {
		t.Errorf("symbol should have been replaced")
	}
	if s, _ := symtab.Define(""); s != nil {
		t.Errorf("expected empty name to be rejected")
	}
}

func TestSymbolKinds(t *testing.T) {
	sym := NewSymbol("x")
	if _, ok := sym.Number(); ok {
		t.Errorf("undefined symbol should not have a number")
	}
	sym.SetNumber(2.5)
	if x, ok := sym.Number(); !ok || x != 2.5 {
		t.Errorf("expected x=2.5, have %v", sym)
	}
	if s := NewSymbol("r").WithKind(RuleType).String(); s != "<r:rule=<nil>>" {
		t.Errorf("unexpected string %q", s)
	}
}

func TestNamesSorted(t *testing.T) {
	symtab := NewSymbolTable()
	for _, n := range []string{"c", "a", "b"} {
		symtab.Define(n)
	}
	var names string
	symtab.Each(func(sym *Symbol) { names += sym.Name() })
	if names != "abc" {
		t.Errorf("expected symbols in order of names, have %q", names)
	}
}

func TestScopeUpsearch(t *testing.T) {
	parent := NewScope("parent", nil)
	scope := NewScope("current", parent)
	parent.Define("new-sym")
	sym, sc := scope.Resolve("new-sym")
	if sym == nil || sc != parent {
		t.Fatalf("expected to find symbol in parent scope")
	}
	if sym, sc = scope.Resolve("none"); sym != nil || sc != nil {
		t.Errorf("expected unknown symbol to resolve to nil")
	}
}

func TestScopeTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.runtime")
	defer teardown()
	//
	tree := &ScopeTree{}
	globals := tree.PushNewScope("globals")
	globals.Define("pi")
	inner := tree.PushNewScope("inner")
	if tree.Depth() != 2 || tree.Current() != inner || tree.Globals() != globals {
		t.Fatalf("scope tree in unexpected state")
	}
	if sym, sc := tree.Current().Resolve("pi"); sym == nil || sc != globals {
		t.Errorf("expected pi to be found in global scope")
	}
	if tree.PopScope() != inner || tree.Current() != globals {
		t.Errorf("expected pop to return to global scope")
	}
	tree.PopScope()
	if tree.Depth() != 0 {
		t.Errorf("expected empty scope tree")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("expected pop from empty tree to panic")
		}
	}()
	tree.PopScope()
}

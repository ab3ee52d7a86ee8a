package ll

import (
	"errors"
	"testing"

	"github.com/npillmayer/gorll/ll/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestRepeatBounds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	a := b.Token(scanner.Ident)
	for _, bounds := range [][2]int{{0, 1}, {0, Unbounded}, {1, Unbounded}, {2, 2}, {3, 5}} {
		g, err := b.Repeat(a, bounds[0], bounds[1], nil)
		if err != nil {
			t.Errorf("expected repeat %v to be valid, got %v", bounds, err)
			continue
		}
		if min, max := g.Bounds(); min != bounds[0] || max != bounds[1] {
			t.Errorf("expected bounds %v, have %d,%d", bounds, min, max)
		}
	}
	for _, bounds := range [][2]int{{-1, 1}, {2, 1}, {0, 0}} {
		_, err := b.Repeat(a, bounds[0], bounds[1], nil)
		if !errors.Is(err, ErrInvalidRepeatBounds) {
			t.Errorf("expected repeat %v to fail with invalid bounds, got %v", bounds, err)
		}
	}
}

func TestBind(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	a := b.Token(scanner.Ident)
	r := b.Recurse()
	if r.Target() != nil {
		t.Errorf("expected fresh recursion node to be unbound")
	}
	if err := r.Bind(a); err != nil {
		t.Fatal(err)
	}
	if err := r.Bind(a); !errors.Is(err, ErrAlreadyBound) {
		t.Errorf("expected second bind to fail, got %v", err)
	}
	if err := a.Bind(r); err == nil {
		t.Errorf("expected binding a token node to fail")
	}
	if err := b.Recurse().Bind(nil); err == nil {
		t.Errorf("expected binding to nil to fail")
	}
}

func TestGrammarString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("G", TokenNames(scanner.TokenName))
	id := b.Token(scanner.Ident)
	num := b.Token(scanner.Int)
	lpar, rpar := b.Token('('), b.Token(')')
	r := b.Recurse()
	e := b.Choice(id, b.Seq(lpar, b.Star(r), rpar), b.Opt(num)).Named("E")
	if err := r.Bind(e); err != nil {
		t.Fatal(err)
	}
	plus, _ := b.Repeat(id, 2, 4, nil)
	tests := []struct {
		g    *Grammar
		want string
	}{
		{e, "E = Ident | ('(' {@E} ')') | [Int]"},
		{b.Plus(num), "{Int}+"},
		{plus, "Ident{2,4}"},
		{b.Seq(id, e), "Ident E"},
	}
	for i, test := range tests {
		if s := test.g.String(); s != test.want {
			t.Errorf("test #%d: expected %q, have %q", i, test.want, s)
		}
	}
	if b.Size() != 12 {
		t.Errorf("expected builder to have created 12 nodes, has %d", b.Size())
	}
}

func TestNilChildPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ll")
	defer teardown()
	//
	defer func() {
		if recover() == nil {
			t.Errorf("expected Seq with nil child to panic")
		}
	}()
	b := NewGrammarBuilder("G")
	b.Seq(b.Token(scanner.Ident), nil)
}

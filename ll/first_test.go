package ll

import (
	"errors"
	"testing"

	"github.com/npillmayer/gorll"
	"github.com/npillmayer/gorll/ll/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const (
	tA gorll.TokType = iota + 1
	tB
	tC
)

func tokens(codes ...gorll.TokType) *TokenSet {
	return NewTokenSet(codes...)
}

func TestFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	a, bb, c := b.Token(tA), b.Token(tB), b.Token(tC)
	optA := b.Opt(a)
	tests := []struct {
		name     string
		g        *Grammar
		first    *TokenSet
		nullable bool
	}{
		{"token", a, tokens(tA), false},
		{"seq", b.Seq(a, bb), tokens(tA), false},
		{"seq-opt-prefix", b.Seq(optA, bb), tokens(tA, tB), false},
		{"seq-all-nullable", b.Seq(optA, b.Star(bb)), tokens(tA, tB), true},
		{"choice", b.Choice(a, bb, c), tokens(tA, tB, tC), false},
		{"choice-nullable", b.Choice(optA, bb), tokens(tA, tB), true},
		{"opt", optA, tokens(tA), true},
		{"plus", b.Plus(c), tokens(tC), false},
		{"star", b.Star(c), tokens(tC), true},
		{"empty-seq", b.Seq(), tokens(), true},
	}
	for _, test := range tests {
		ga, err := Analyze(test.g)
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if first := ga.First(test.g); !first.Equals(test.first) {
			t.Errorf("%s: expected FIRST=%s, have %s", test.name, test.first, first)
		}
		if ga.Nullable(test.g) != test.nullable {
			t.Errorf("%s: expected nullable=%v", test.name, test.nullable)
		}
	}
}

func TestRepeatOfNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	g := b.Plus(b.Opt(b.Token(tA)))
	ga, err := Analyze(g)
	if err != nil {
		t.Fatal(err)
	}
	if !ga.Nullable(g) {
		t.Errorf("expected repetition of nullable child to be nullable")
	}
}

func TestLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	// E = E '+' a | a
	r := b.Recurse()
	e := b.Choice(b.Seq(r, b.Token(tB), b.Token(tA)), b.Token(tA)).Named("E")
	if err := r.Bind(e); err != nil {
		t.Fatal(err)
	}
	if _, err := Compile(e); !errors.Is(err, ErrLeftRecursion) {
		t.Errorf("expected left recursion, got %v", err)
	}
	// hidden left recursion: S = [a] S b
	b = NewGrammarBuilder("H")
	r = b.Recurse()
	s := b.Seq(b.Opt(b.Token(tA)), r, b.Token(tB)).Named("S")
	_ = r.Bind(s)
	if _, err := Analyze(s); !errors.Is(err, ErrLeftRecursion) {
		t.Errorf("expected hidden left recursion, got %v", err)
	}
}

func TestConsumingCycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	// L = a [L]
	r := b.Recurse()
	l := b.Seq(b.Token(tA), b.Opt(r)).Named("L")
	if err := r.Bind(l); err != nil {
		t.Fatal(err)
	}
	p, err := Compile(l)
	if err != nil {
		t.Fatal(err)
	}
	if !p.First().Equals(tokens(tA)) || p.Nullable() {
		t.Errorf("expected FIRST(L)=[1] and not nullable, have %s", p.First())
	}
}

func TestChoiceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("G", TokenNames(scanner.TokenName))
	id := b.Token(scanner.Ident)
	g := b.Choice(b.Seq(id, b.Token('=')), b.Seq(b.Opt(b.Token('-')), id))
	_, err := b.Compile(g)
	if !errors.Is(err, ErrLookaheadConflict) {
		t.Fatalf("expected lookahead conflict, got %v", err)
	}
	var conflict *LookaheadConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected error of type LookaheadConflictError")
	}
	if !conflict.Overlap.Equals(tokens(scanner.Ident)) {
		t.Errorf("expected overlap [Ident], have %s", conflict.Overlap.Format(scanner.TokenName))
	}
	if conflict.Node != g {
		t.Errorf("expected conflict to be located at the choice")
	}
}

func TestUnboundRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	g := b.Seq(b.Token(tA), b.Recurse())
	if _, err := Compile(g); !errors.Is(err, ErrUnresolvedForwardReference) {
		t.Errorf("expected unresolved forward reference, got %v", err)
	}
}

func TestAnalysisEach(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	a := b.Token(tA)
	g := b.Seq(a, b.Opt(b.Token(tB)), a)
	ga, err := Analyze(g)
	if err != nil {
		t.Fatal(err)
	}
	var serials []int
	ga.Each(func(n *Grammar, first *TokenSet, nullable bool) {
		serials = append(serials, n.Serial())
	})
	if len(serials) != 4 {
		t.Fatalf("expected 4 distinct nodes, have %v", serials)
	}
	for i := 1; i < len(serials); i++ {
		if serials[i-1] >= serials[i] {
			t.Errorf("expected nodes ordered by serial, have %v", serials)
		}
	}
	if ga.Start() != g {
		t.Errorf("expected analysis to start at g")
	}
}

package ebnf

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/gorll/ll"
	"github.com/npillmayer/gorll/ll/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const listGrammar = `
List  = "(" { Item } ")" .
Item  = ident | number | List .
`

func listFrontEnd(t *testing.T) *FrontEnd {
	fe := New(TokenTable{"ident": scanner.Ident, "number": scanner.Int}, SourceName("list.ebnf"))
	if err := fe.Define(listGrammar); err != nil {
		t.Fatal(err)
	}
	return fe
}

func parse(t *testing.T, p *ll.Parser, input string) (interface{}, error) {
	tz := scanner.GoTokenizer("test", strings.NewReader(input))
	return p.Parse(ll.NewCursor(tz, ll.WithInput("test", input), ll.WithNames(p.TokenNames())))
}

func TestListTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ebnf")
	defer teardown()
	//
	fe := listFrontEnd(t)
	p, err := fe.Compile("List")
	if err != nil {
		t.Fatal(err)
	}
	v, err := parse(t, p, "(a 1 (b))")
	if err != nil {
		t.Fatal(err)
	}
	tree, ok := v.(*ll.Tree)
	if !ok {
		t.Fatalf("expected a parse tree, have %T", v)
	}
	want := "(List ( (Item a) (Item 1) (Item (List ( (Item b) ))) ))"
	if tree.String() != want {
		t.Errorf("expected %s, have %s", want, tree)
	}
	if fe.Rules().Size() != 2 {
		t.Errorf("expected 2 rules, have %d", fe.Rules().Size())
	}
}

func TestListError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ebnf")
	defer teardown()
	//
	p, err := listFrontEnd(t).Compile("List")
	if err != nil {
		t.Fatal(err)
	}
	_, err = parse(t, p, "(a ;)")
	if !errors.Is(err, ll.ErrUnexpectedToken) {
		t.Fatalf("expected unexpected token, got %v", err)
	}
	want := `test:1:4: found token ';'(;) but expected ')'`
	if err.Error() != want {
		t.Errorf("expected message\n%s\nhave\n%s", want, err)
	}
}

func TestFactories(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ebnf")
	defer teardown()
	//
	fe := listFrontEnd(t)
	count := func(children []interface{}) interface{} {
		n := 0
		for _, ch := range children {
			if x, ok := ch.(int); ok {
				n += x
			}
		}
		return n
	}
	fe.Factory("Item", func(children []interface{}) interface{} {
		if x, ok := children[0].(int); ok {
			return x
		}
		return 1
	})
	fe.Factory("List", count)
	p, err := fe.Compile("List")
	if err != nil {
		t.Fatal(err)
	}
	v, err := parse(t, p, "(a b (c d (e)) f)")
	if err != nil {
		t.Fatal(err)
	}
	if v != 6 {
		t.Errorf("expected 6 leaves, have %v", v)
	}
}

func TestUndefinedNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ebnf")
	defer teardown()
	//
	fe := New(TokenTable{"ident": scanner.Ident})
	if err := fe.Define(`S = A ident | B . A = C .`); err != nil {
		t.Fatal(err)
	}
	_, err := fe.Grammar("S")
	if !errors.Is(err, ll.ErrUnresolvedForwardReference) {
		t.Fatalf("expected unresolved reference, got %v", err)
	}
	if err.Error() != "the following names are undefined: B, C" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if _, err = fe.Grammar("X"); err == nil {
		t.Errorf("expected undefined start rule to fail")
	}
}

func TestGrammarDefects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ebnf")
	defer teardown()
	//
	tokens := TokenTable{"ident": scanner.Ident, "number": scanner.Int}
	tests := []struct {
		src  string
		err  error
		text string
	}{
		{`E = E "+" number | number .`, ll.ErrLeftRecursion, ""},
		{`S = ident "=" | ident ":" .`, ll.ErrLookaheadConflict, ""},
		{`S = "a" … "z" .`, nil, "ranges"},
		{`S = ident ":=" .`, nil, "not a token"},
	}
	for i, test := range tests {
		fe := New(tokens)
		if err := fe.Define(test.src); err != nil {
			t.Errorf("test #%d: %v", i, err)
			continue
		}
		_, err := fe.Compile(fe.Rules().Names()[0])
		if err == nil {
			t.Errorf("test #%d: expected grammar to be rejected", i)
			continue
		}
		if test.err != nil && !errors.Is(err, test.err) {
			t.Errorf("test #%d: expected %v, got %v", i, test.err, err)
		}
		if test.text != "" && !strings.Contains(err.Error(), test.text) {
			t.Errorf("test #%d: expected error mentioning %q, got %v", i, test.text, err)
		}
	}
}

func TestDefineTwice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ebnf")
	defer teardown()
	//
	fe := New(TokenTable{"ident": scanner.Ident})
	if err := fe.Rule("S", `ident { ident }`); err != nil {
		t.Fatal(err)
	}
	if err := fe.Rule("S", `ident`); err == nil {
		t.Errorf("expected second definition of S to fail")
	}
	if err := fe.Rule("ident", `"x"`); err == nil {
		t.Errorf("expected rule named like a token to fail")
	}
	if err := fe.Define(`S = ( ident .`); err == nil {
		t.Errorf("expected syntax error")
	}
}

func TestEmptyProduction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ebnf")
	defer teardown()
	//
	fe := New(TokenTable{"ident": scanner.Ident})
	if err := fe.Define(`S = ident Rest . Rest = .`); err != nil {
		t.Fatal(err)
	}
	p, err := fe.Compile("S")
	if err != nil {
		t.Fatal(err)
	}
	v, err := parse(t, p, "x")
	if err != nil {
		t.Fatal(err)
	}
	if s := v.(*ll.Tree).String(); s != "(S x)" {
		t.Errorf("expected empty rule to be left out, have %s", s)
	}
}

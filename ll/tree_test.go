package ll

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/gorll/ll/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("kv")
	pair := b.SeqWith(TreeFactory("pair"), b.Token(scanner.Ident), b.Token('='), b.Token(scanner.Int))
	list := b.SeqWith(TreeFactory("list"), pair, b.Star(b.Seq(b.Token(','), pair)))
	p, err := b.Compile(list)
	if err != nil {
		t.Fatal(err)
	}
	v, err := p.Parse(cursor("a=1, b=2"))
	if err != nil {
		t.Fatal(err)
	}
	tree := v.(*Tree)
	if s := tree.String(); s != "(list (pair a = 1) , (pair b = 2))" {
		t.Errorf("unexpected tree %s", s)
	}
	var lines []string
	tree.Walk(func(depth int, node interface{}) {
		text := LeafString(node)
		if sub, ok := node.(*Tree); ok {
			text = sub.Rule
		}
		lines = append(lines, fmt.Sprintf("%d:%s", depth, text))
	})
	want := "0:list 1:pair 2:a 2:= 2:1 1:, 1:pair 2:b 2:= 2:2"
	if have := strings.Join(lines, " "); have != want {
		t.Errorf("expected walk\n%s\nhave\n%s", want, have)
	}
}

func TestFlatten(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.ll")
	defer teardown()
	//
	named := &Tree{Rule: "x"}
	values := []interface{}{
		1,
		[]interface{}{2, NoValue, &Tree{Children: []interface{}{3}}},
		named,
		[]interface{}{},
	}
	flat := Flatten(values)
	if len(flat) != 4 {
		t.Fatalf("expected 4 values, have %v", flat)
	}
	for i, x := range []int{1, 2, 3} {
		if flat[i] != x {
			t.Errorf("expected value #%d to be %d, have %v", i, x, flat[i])
		}
	}
	if flat[3] != named {
		t.Errorf("expected named tree to be kept, have %v", flat[3])
	}
	if s := LeafString(42); s != "42" {
		t.Errorf("expected leaf string 42, have %q", s)
	}
}

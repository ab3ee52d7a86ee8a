package query

import (
	"errors"
	"testing"

	"github.com/npillmayer/gorll/ll"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func makeParser(t *testing.T) *Parser {
	p, err := NewParser()
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestParseQueries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.lang")
	defer teardown()
	//
	p := makeParser(t)
	tests := []struct {
		input string
		ast   string
	}{
		{"go", "go"},
		{`"getting started"`, `"getting started"`},
		{"title:go", "title:go"},
		{`title:"hello world"`, `title:"hello world"`},
		{"a b", "(and a b)"},
		{"a OR b", "(or a b)"},
		{"a b OR c d", "(and a (or b c) d)"},
		{"-draft", "-draft"},
		{"-(a OR b)", "-(or a b)"},
		{`title:go -draft (tutorial OR "getting started")`,
			`(and title:go -draft (or tutorial "getting started"))`},
		{"((a))", "a"},
	}
	for _, test := range tests {
		q, err := p.Parse(test.input)
		if err != nil {
			t.Errorf("%q: %v", test.input, err)
			continue
		}
		if q.String() != test.ast {
			t.Errorf("%q: expected %s, have %s", test.input, test.ast, q)
		}
	}
}

func TestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.lang")
	defer teardown()
	//
	p := makeParser(t)
	doc := Document{
		"title": "Go Tutorial",
		"body":  "Getting started with parsers",
	}
	tests := []struct {
		input string
		match bool
	}{
		{"go", true},
		{"GO tutorial", true},
		{"title:parsers", false},
		{"body:parsers", true},
		{"-draft", true},
		{"-go", false},
		{"rust OR go", true},
		{"rust OR python", false},
		{`title:go "getting started"`, true},
		{`title:go -(rust OR "started")`, false},
		{"author:norbert", false},
	}
	for _, test := range tests {
		q, err := p.Parse(test.input)
		if err != nil {
			t.Errorf("%q: %v", test.input, err)
			continue
		}
		if q.Match(doc) != test.match {
			t.Errorf("%q: expected match = %v", test.input, test.match)
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.lang")
	defer teardown()
	//
	p := makeParser(t)
	for _, input := range []string{"", "a )", "(a", "title:", "OR a", "a OR", "- -a", "42"} {
		if _, err := p.Parse(input); !errors.Is(err, ll.ErrUnexpectedToken) {
			t.Errorf("%q: expected syntax error, got %v", input, err)
		}
	}
}

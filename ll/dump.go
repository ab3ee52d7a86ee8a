package ll

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/gorll"
)

// nodeDigest is the structural description of a compiled node which enters
// the fingerprint of a parser. Factories do not enter the fingerprint.
// Nodes are identified by their position in the parser's node list, as
// grammars may combine nodes of more than one builder.
type nodeDigest struct {
	Index    int
	Kind     int8
	Name     string
	Code     int
	Min, Max int
	First    []int
	Nullable bool
	Children []int
}

// Fingerprint returns a hash over the structure of the compiled grammar, its
// FIRST sets and nullability. Compiling the same grammar twice results in
// parsers with identical fingerprints.
func (p *Parser) Fingerprint() string {
	index := make(map[*Grammar]int, len(p.nodes))
	for i, g := range p.nodes {
		index[g] = i
	}
	digests := make([]nodeDigest, 0, len(p.nodes))
	p.Each(func(g *Grammar, lookahead *TokenSet, nullable bool) {
		d := nodeDigest{
			Index:    index[g],
			Kind:     int8(g.kind),
			Name:     g.name,
			Code:     int(g.code),
			Min:      g.min,
			Max:      g.max,
			Nullable: nullable,
		}
		for _, c := range lookahead.Codes() {
			d.First = append(d.First, int(c))
		}
		for _, ch := range g.edges() {
			d.Children = append(d.Children, index[ch])
		}
		digests = append(digests, d)
	})
	h, err := structhash.Hash(digests, 1)
	if err != nil {
		tracer().Errorf("cannot hash parser: %v", err)
		return ""
	}
	return h
}

// Dump traces the compiled grammar at debug level: every node with its
// lookahead, followed by the dispatch table for choices.
func (p *Parser) Dump() {
	tracer().Debugf("--- parser for %s -------------------------", p.start.label())
	p.Each(func(g *Grammar, lookahead *TokenSet, nullable bool) {
		eps := ""
		if nullable {
			eps = " ε"
		}
		tracer().Debugf("%4d %-8s %-20s %s%s", g.serial, g.kind, g.label(),
			lookahead.Format(p.names), eps)
	})
	for _, g := range p.nodes {
		if g.kind != ChoiceKind {
			continue
		}
		var b strings.Builder
		for _, e := range p.dispatchOf(g) {
			fmt.Fprintf(&b, " %s→%d", tokenName(e.token, p.names), e.alt)
		}
		tracer().Debugf("dispatch %s:%s", g.label(), b.String())
	}
	tracer().Debugf("fingerprint %s", p.Fingerprint())
}

type dispatchEntry struct {
	token gorll.TokType
	alt   int
}

// dispatchOf returns the dispatch table row of choice node g, ordered by
// token type.
func (p *Parser) dispatchOf(g *Grammar) []dispatchEntry {
	row, ok := p.rows[g]
	if !ok {
		return nil
	}
	var entries []dispatchEntry
	p.dispatch.Row(row, func(col int, a, b int32) {
		entries = append(entries, dispatchEntry{token: gorll.TokType(col), alt: int(a)})
	})
	return entries
}

package ll

import (
	"fmt"

	"github.com/npillmayer/gorll"
	"github.com/npillmayer/gorll/ll/sparse"
)

// Compile creates a parser for the grammar graph starting at root.
//
// Compilation computes FIRST sets for all nodes and builds one runtime parser per
// distinct grammar node, sharing parsers for shared sub-grammars. Recursion nodes
// may refer to nodes whose parser is not yet complete; they are wired in a second
// pass over the graph.
//
// Compile returns a LeftRecursionError, LookaheadConflictError or
// UnresolvedReferenceError for grammars which are not LL(1) or not complete.
// Every call of Compile is independent of other calls; compiling a grammar
// again yields a parser with identical behaviour.
func Compile(root *Grammar, opts ...CompileOption) (*Parser, error) {
	if root == nil {
		return nil, fmt.Errorf("cannot compile nil grammar")
	}
	c := newCompiler(opts)
	p, err := c.build(root)
	if err != nil {
		return nil, err
	}
	nodes := reachable(root)
	if err := c.bindRecursions(root, map[*Grammar]bool{}); err != nil {
		return nil, err
	}
	parsers := make(map[*Grammar]parser, len(nodes))
	for _, g := range nodes {
		parsers[g] = c.memo[g].parser
	}
	tracer().Infof("compiled grammar %s: %d nodes, %d choices", root.label(), len(nodes), len(c.rows))
	return &Parser{
		root:     p,
		start:    root,
		nodes:    nodes,
		parsers:  parsers,
		dispatch: c.dispatch,
		rows:     c.rows,
		names:    c.names,
	}, nil
}

// build returns the parser for g, creating it if necessary.
func (c *compiler) build(g *Grammar) (parser, error) {
	rec, err := c.first(g)
	if err != nil {
		return nil, err
	}
	if rec.parser != nil {
		return rec.parser, nil
	}
	base := parserBase{
		grammar:   g,
		lookahead: rec.tokens,
		nullable:  rec.nullable,
		trace:     c.trace,
	}
	rec.building = true
	defer func() { rec.building = false }()
	switch g.kind {
	case TokenKind:
		rec.parser = &tokenParser{parserBase: base, code: g.code, leaf: g.leaf}
	case SequenceKind:
		children, err := c.buildAll(g.children)
		if err != nil {
			return nil, err
		}
		rec.parser = &sequenceParser{parserBase: base, children: children, factory: g.factory}
	case ChoiceKind:
		alts, err := c.buildAll(g.children)
		if err != nil {
			return nil, err
		}
		row, err := c.fillDispatch(g)
		if err != nil {
			return nil, err
		}
		rec.parser = &choiceParser{parserBase: base, alternatives: alts, table: c.dispatch, row: row}
	case RepeatKind:
		child, err := c.build(g.children[0])
		if err != nil {
			return nil, err
		}
		rec.parser = &repeatParser{
			parserBase: base,
			child:      child,
			min:        g.min,
			max:        g.max,
			factory:    g.factory,
		}
	case RecurseKind:
		// register the parser before visiting the target, which may lead back here
		rp := &recurseParser{parserBase: base}
		rec.parser = rp
		if trec := c.memo[g.target]; trec != nil && trec.building {
			tracer().Debugf("deferring binding of %s", g.label())
			break
		}
		child, err := c.build(g.target)
		if err != nil {
			return nil, err
		}
		rp.child = child
	}
	return rec.parser, nil
}

// fillDispatch allocates a row of the dispatch table for choice g and enters
// the alternative index for every token of the alternatives' FIRST sets.
// Rows are numbered per compilation run, as grammar serials are unique per
// builder only.
func (c *compiler) fillDispatch(g *Grammar) (int, error) {
	if row, ok := c.rows[g]; ok {
		return row, nil
	}
	row := len(c.rows)
	c.rows[g] = row
	for i, alt := range g.children {
		for _, code := range c.memo[alt].tokens.Codes() {
			c.dispatch.Add(row, int(code), int32(i))
		}
	}
	// alternatives have been checked for disjoint FIRST sets already
	var err error
	c.dispatch.Row(row, func(col int, a, b int32) {
		if err == nil && c.dispatch.IsPair(row, col) {
			err = fmt.Errorf("internal error: %s dispatches %s to alternatives %d and %d",
				g.label(), tokenName(gorll.TokType(col), c.names), a, b)
		}
	})
	return row, err
}

func (c *compiler) buildAll(grammars []*Grammar) ([]parser, error) {
	parsers := make([]parser, len(grammars))
	for i, g := range grammars {
		p, err := c.build(g)
		if err != nil {
			return nil, err
		}
		parsers[i] = p
	}
	return parsers, nil
}

// bindRecursions is the second pass: it walks the grammar graph and binds the
// parser of every recursion node to the parser of its target.
func (c *compiler) bindRecursions(g *Grammar, done map[*Grammar]bool) error {
	if done[g] {
		return nil
	}
	done[g] = true
	if g.kind == RecurseKind {
		rp, _ := c.memo[g].parser.(*recurseParser)
		trec := c.memo[g.target]
		if rp == nil || trec == nil || trec.parser == nil {
			return &UnresolvedReferenceError{Node: g}
		}
		rp.child = trec.parser
	}
	for _, ch := range g.edges() {
		if err := c.bindRecursions(ch, done); err != nil {
			return err
		}
	}
	return nil
}

// --- Parser ----------------------------------------------------------------

// Parser is a compiled grammar. It is immutable and may be used concurrently,
// provided every goroutine uses its own token source.
type Parser struct {
	root     parser
	start    *Grammar
	nodes    []*Grammar
	parsers  map[*Grammar]parser
	dispatch *sparse.IntMatrix
	rows     map[*Grammar]int
	names    gorll.TokTypeStringer
}

// Parse parses input from a token source. It returns the value produced by the
// start node's factory, or nil if the grammar matched the empty input or the
// factory returned NoValue.
//
// If the token source does not start with a token of FIRST(start) and the
// grammar is not nullable, Parse returns the token source's error for
// an unexpected token.
func (p *Parser) Parse(ts TokenSource) (interface{}, error) {
	out, err := parse(p.root, ts)
	if err != nil {
		return nil, err
	}
	switch out.Kind {
	case NotApplicable:
		return nil, ts.Unexpected(p.root.base().lookahead)
	case Epsilon:
		return nil, nil
	}
	if isNoValue(out.Value) {
		return nil, nil
	}
	return out.Value, nil
}

// Grammar returns the start node of the parser's grammar.
func (p *Parser) Grammar() *Grammar {
	return p.start
}

// First returns a copy of the start node's lookahead.
func (p *Parser) First() *TokenSet {
	return p.root.base().lookahead.Copy()
}

// Nullable is a predicate: will the parser accept empty input?
func (p *Parser) Nullable() bool {
	return p.root.base().nullable
}

// Size returns the number of runtime parser nodes.
func (p *Parser) Size() int {
	return len(p.nodes)
}

// Lookahead returns the lookahead of the runtime parser for grammar node g and
// whether g is nullable. The third return value is false if g is not part of
// the compiled grammar.
func (p *Parser) Lookahead(g *Grammar) (*TokenSet, bool, bool) {
	rp, ok := p.parsers[g]
	if !ok {
		return nil, false, false
	}
	return rp.base().lookahead.Copy(), rp.base().nullable, true
}

// Each calls f for every grammar node of the parser, ordered by serial number.
func (p *Parser) Each(f func(g *Grammar, lookahead *TokenSet, nullable bool)) {
	for _, g := range p.nodes {
		b := p.parsers[g].base()
		f(g, b.lookahead.Copy(), b.nullable)
	}
}

// TokenNames returns the stringer for token types the parser was compiled
// with, or nil.
func (p *Parser) TokenNames() gorll.TokTypeStringer {
	return p.names
}

package ll

import (
	"sort"

	"github.com/npillmayer/gorll"
	"github.com/npillmayer/gorll/ll/sparse"
	"github.com/npillmayer/schuko/gconf"
)

// firstRecord holds the FIRST set of a grammar node, together with its
// parser once it has been built. A record without tokens is still being
// computed.
type firstRecord struct {
	tokens   *TokenSet
	nullable bool
	parser   parser
	building bool // parser construction in progress
}

func (rec *firstRecord) resolved() bool {
	return rec.tokens != nil
}

// compiler is the context of a single analysis or compilation run.
// It must not be shared between concurrent runs.
type compiler struct {
	memo     map[*Grammar]*firstRecord
	strict   bool                  // check sequences for conflicts
	trace    bool                  // trace parse outcomes
	names    gorll.TokTypeStringer // for diagnostics
	dispatch *sparse.IntMatrix     // choice dispatch table
	rows     map[*Grammar]int      // choice node → row in dispatch table
}

// CompileOption configures analysis and compilation of a grammar.
type CompileOption func(*compiler)

// StrictSequences turns on conflict checks for sequences: a child may not start
// with a token which an optional predecessor may start with. Default is taken
// from configuration key "ll.strict-sequences", which in turn defaults to false.
func StrictSequences(b bool) CompileOption {
	return func(c *compiler) {
		c.strict = b
	}
}

// TraceOutcomes makes parsers trace the outcome of every node at debug level.
// Default is taken from configuration key "ll.trace-outcomes".
func TraceOutcomes(b bool) CompileOption {
	return func(c *compiler) {
		c.trace = b
	}
}

// WithTokenNames sets a stringer for token types, used in error messages.
func WithTokenNames(names gorll.TokTypeStringer) CompileOption {
	return func(c *compiler) {
		c.names = names
	}
}

func newCompiler(opts []CompileOption) *compiler {
	c := &compiler{
		memo:     make(map[*Grammar]*firstRecord),
		strict:   gconf.GetBool("ll.strict-sequences"),
		trace:    gconf.GetBool("ll.trace-outcomes"),
		dispatch: sparse.NewIntMatrix(-1),
		rows:     make(map[*Grammar]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// first computes FIRST(g) and nullability of g. Visiting a node again while
// its record is unresolved means that g is reachable from itself without
// consuming input.
func (c *compiler) first(g *Grammar) (*firstRecord, error) {
	if rec, ok := c.memo[g]; ok {
		if !rec.resolved() {
			return nil, &LeftRecursionError{Node: g}
		}
		return rec, nil
	}
	rec := &firstRecord{}
	c.memo[g] = rec
	var tokens *TokenSet
	var nullable bool
	var err error
	switch g.kind {
	case TokenKind:
		tokens = NewTokenSet(g.code)
	case SequenceKind:
		tokens, nullable, err = c.firstOfSequence(g)
	case ChoiceKind:
		tokens, nullable, err = c.firstOfChoice(g)
	case RepeatKind:
		var chrec *firstRecord
		if chrec, err = c.first(g.children[0]); err == nil {
			tokens = chrec.tokens.Copy()
			nullable = g.min == 0 || chrec.nullable
		}
	case RecurseKind:
		if g.target == nil {
			err = &UnresolvedReferenceError{Node: g}
			break
		}
		var trec *firstRecord
		if trec, err = c.first(g.target); err == nil {
			tokens = trec.tokens.Copy()
			nullable = trec.nullable
		}
	}
	if err != nil {
		delete(c.memo, g)
		return nil, err
	}
	rec.tokens, rec.nullable = tokens, nullable
	tracer().Debugf("FIRST(%s) = %s, ε=%v", g.label(), tokens.Format(c.names), nullable)
	return rec, nil
}

// A sequence starts with the tokens of its children, up to and including the
// first child which is not nullable.
func (c *compiler) firstOfSequence(g *Grammar) (*TokenSet, bool, error) {
	tokens := NewTokenSet()
	var prefix []*Grammar // nullable children seen so far
	for _, ch := range g.children {
		rec, err := c.first(ch)
		if err != nil {
			return nil, false, err
		}
		if c.strict {
			for _, p := range prefix {
				prec := c.memo[p]
				if prec.tokens.Intersects(rec.tokens) {
					return nil, false, c.conflict(g, p, ch, prec.tokens.Intersection(rec.tokens))
				}
			}
		}
		tokens.Union(rec.tokens)
		if !rec.nullable {
			return tokens, false, nil
		}
		prefix = append(prefix, ch)
	}
	return tokens, true, nil
}

// Alternatives of a choice have to start with distinct tokens.
func (c *compiler) firstOfChoice(g *Grammar) (*TokenSet, bool, error) {
	tokens := NewTokenSet()
	nullable := false
	recs := make([]*firstRecord, len(g.children))
	for i, ch := range g.children {
		rec, err := c.first(ch)
		if err != nil {
			return nil, false, err
		}
		for j := 0; j < i; j++ {
			if recs[j].tokens.Intersects(rec.tokens) {
				overlap := recs[j].tokens.Intersection(rec.tokens)
				return nil, false, c.conflict(g, g.children[j], ch, overlap)
			}
		}
		recs[i] = rec
		tokens.Union(rec.tokens)
		nullable = nullable || rec.nullable
	}
	return tokens, nullable, nil
}

func (c *compiler) conflict(g, a, b *Grammar, overlap *TokenSet) error {
	err := &LookaheadConflictError{
		Node:    g,
		First:   a,
		Second:  b,
		Overlap: overlap,
		Names:   c.names,
	}
	tracer().Errorf(err.Error())
	return err
}

// reachable returns all nodes reachable from root, in order of serial numbers.
func reachable(root *Grammar) []*Grammar {
	seen := map[*Grammar]bool{root: true}
	nodes := []*Grammar{root}
	for i := 0; i < len(nodes); i++ {
		for _, ch := range nodes[i].edges() {
			if !seen[ch] {
				seen[ch] = true
				nodes = append(nodes, ch)
			}
		}
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].serial < nodes[j].serial
	})
	return nodes
}

// --- Analysis --------------------------------------------------------------

// Analysis holds FIRST sets and nullability for all nodes reachable from a
// start node.
type Analysis struct {
	start   *Grammar
	nodes   []*Grammar
	records map[*Grammar]*firstRecord
}

// Analyze computes FIRST sets for all nodes reachable from root, without building
// a parser. It reports the same grammar defects as Compile.
func Analyze(root *Grammar, opts ...CompileOption) (*Analysis, error) {
	c := newCompiler(opts)
	nodes := reachable(root)
	for _, g := range nodes {
		if _, err := c.first(g); err != nil {
			return nil, err
		}
	}
	return &Analysis{start: root, nodes: nodes, records: c.memo}, nil
}

// Start returns the start node of the analysis.
func (a *Analysis) Start() *Grammar {
	return a.start
}

// First returns a copy of FIRST(g), or nil if g is not part of the analysis.
func (a *Analysis) First(g *Grammar) *TokenSet {
	if rec, ok := a.records[g]; ok {
		return rec.tokens.Copy()
	}
	return nil
}

// Nullable is a predicate: may g match the empty input?
func (a *Analysis) Nullable(g *Grammar) bool {
	if rec, ok := a.records[g]; ok {
		return rec.nullable
	}
	return false
}

// Each calls f for every node of the analysis, ordered by serial number.
func (a *Analysis) Each(f func(g *Grammar, first *TokenSet, nullable bool)) {
	for _, g := range a.nodes {
		rec := a.records[g]
		f(g, rec.tokens.Copy(), rec.nullable)
	}
}

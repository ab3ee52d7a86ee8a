package ll

import (
	"fmt"

	"github.com/npillmayer/gorll"
	"github.com/npillmayer/gorll/ll/sparse"
)

// TokenSource is the interface parsers use to read tokens.
//
// Current returns the type of the current token and has no side effects.
// Advance consumes the current token and returns a value for it, created by leaf.
// Unexpected creates the error for an unexpected current token, given the token
// types which would have been acceptable.
type TokenSource interface {
	Current() gorll.TokType
	Advance(leaf LeafFactory) interface{}
	Unexpected(expected *TokenSet) error
}

// consumer is implemented by token sources which count consumed tokens, like
// Cursor. Repetitions use it to stop after an iteration which matched without
// consuming input, as happens for a token at EOF.
type consumer interface {
	Consumed() int
}

func consumed(ts TokenSource) int {
	if c, ok := ts.(consumer); ok {
		return c.Consumed()
	}
	return -1
}

// OutcomeKind tells how a parser node reacted to the input.
type OutcomeKind int8

// Outcomes of a parser node.
const (
	NotApplicable OutcomeKind = iota // current token does not start this node
	Epsilon                          // node legitimately matched no input
	Matched                          // node consumed tokens and produced a value
)

func (k OutcomeKind) String() string {
	switch k {
	case NotApplicable:
		return "not-applicable"
	case Epsilon:
		return "ε"
	}
	return "matched"
}

// Outcome is the result of a parser node. Value is set for kind Matched only.
type Outcome struct {
	Kind  OutcomeKind
	Value interface{}
}

var (
	notApplicable = Outcome{Kind: NotApplicable}
	epsilon       = Outcome{Kind: Epsilon}
)

func matched(v interface{}) Outcome {
	return Outcome{Kind: Matched, Value: v}
}

// --- Runtime parser nodes --------------------------------------------------

// parser is implemented by the runtime node types of this file only.
type parser interface {
	base() *parserBase
	doParse(ts TokenSource) (Outcome, error)
}

type parserBase struct {
	grammar   *Grammar
	lookahead *TokenSet
	nullable  bool
	trace     bool
}

func (b *parserBase) base() *parserBase {
	return b
}

// parse checks the current token against the lookahead of p before handing
// over to p.
func parse(p parser, ts TokenSource) (Outcome, error) {
	b := p.base()
	if !b.lookahead.Contains(ts.Current()) {
		if b.nullable {
			return epsilon, nil
		}
		return notApplicable, nil
	}
	out, err := p.doParse(ts)
	if b.trace {
		tracer().Debugf("%s: %s", b.grammar.label(), out.Kind)
	}
	return out, err
}

type tokenParser struct {
	parserBase
	code gorll.TokType
	leaf LeafFactory
}

func (p *tokenParser) doParse(ts TokenSource) (Outcome, error) {
	if ts.Current() != p.code {
		return notApplicable, nil
	}
	return matched(ts.Advance(p.leaf)), nil
}

// sequenceParser matches its children first come, first served: an optional
// child consumes a token even if a later child would have needed it.
type sequenceParser struct {
	parserBase
	children []parser
	factory  NodeFactory
}

func (p *sequenceParser) doParse(ts TokenSource) (Outcome, error) {
	values := make([]interface{}, 0, len(p.children))
	for _, ch := range p.children {
		out, err := parse(ch, ts)
		if err != nil {
			return out, err
		}
		switch out.Kind {
		case NotApplicable:
			return out, ts.Unexpected(ch.base().lookahead)
		case Matched:
			if !isNoValue(out.Value) {
				values = append(values, out.Value)
			}
		}
	}
	return matched(p.factory(values)), nil
}

type choiceParser struct {
	parserBase
	alternatives []parser
	table        *sparse.IntMatrix // token type → alternative, shared
	row          int
}

func (p *choiceParser) doParse(ts TokenSource) (Outcome, error) {
	if i := p.table.Value(p.row, int(ts.Current())); i != p.table.NullValue() {
		return parse(p.alternatives[i], ts)
	}
	if p.nullable {
		return epsilon, nil
	}
	return notApplicable, nil
}

type repeatParser struct {
	parserBase
	child    parser
	min, max int
	factory  NodeFactory
}

func (p *repeatParser) doParse(ts TokenSource) (Outcome, error) {
	var values []interface{}
	chbase := p.child.base()
	count := 0
loop:
	for count < p.max && (count < p.min || chbase.lookahead.Contains(ts.Current()) || chbase.nullable) {
		mark := consumed(ts)
		out, err := parse(p.child, ts)
		if err != nil {
			return out, err
		}
		switch out.Kind {
		case Epsilon: // a nullable child would match forever
			break loop
		case NotApplicable:
			if count < p.min {
				return out, ts.Unexpected(chbase.lookahead)
			}
			break loop
		}
		if !isNoValue(out.Value) {
			values = append(values, out.Value)
		}
		count++
		if mark >= 0 && consumed(ts) == mark {
			break // no progress
		}
	}
	if values == nil {
		values = []interface{}{}
	}
	return matched(p.factory(values)), nil
}

type recurseParser struct {
	parserBase
	child parser // bound in the second compiler pass
}

func (p *recurseParser) doParse(ts TokenSource) (Outcome, error) {
	if p.child == nil {
		return notApplicable, fmt.Errorf("%w: parser for %s not bound",
			ErrUnresolvedForwardReference, p.grammar.label())
	}
	return parse(p.child, ts)
}

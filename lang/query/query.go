/*
Package query implements a mini-language for search queries, defined in EBNF.

    Query  = Clause { [ "OR" ] Clause } .
    Clause = [ "-" ] ( Term | "(" Query ")" ) .
    Term   = word [ ":" Value ] | phrase .
    Value  = word | phrase .

Adjacent clauses must all match, clauses joined by OR are alternatives, and
a leading minus negates a clause. A term may be restricted to a field of
a document by prefixing it with the field name and a colon:

    title:go -draft (tutorial OR "getting started")

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package query

import (
	"strconv"
	"strings"

	"github.com/npillmayer/gorll"
	"github.com/npillmayer/gorll/ll"
	"github.com/npillmayer/gorll/ll/ebnf"
	"github.com/npillmayer/gorll/ll/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gorll.lang'.
func tracer() tracing.Trace {
	return tracing.Select("gorll.lang")
}

// Grammar is the EBNF definition of queries.
const Grammar = `
Query  = Clause { [ "OR" ] Clause } .
Clause = [ "-" ] ( Term | "(" Query ")" ) .
Term   = word [ ":" Value ] | phrase .
Value  = word | phrase .
`

// OR is the token type of keyword OR. Other tokens are those of the Go tokenizer.
const OR gorll.TokType = 1000

// Tokens is the token table for the query grammar.
var Tokens = ebnf.TokenTable{
	"word":   scanner.Ident,
	"phrase": scanner.String,
	"OR":     OR,
}

// --- Query AST -------------------------------------------------------------

// Document is a set of named text fields.
type Document map[string]string

// Query is a node of a query AST.
type Query interface {
	Match(doc Document) bool
	String() string
}

// And matches if all sub-queries match.
type And []Query

// Or matches if any sub-query matches.
type Or []Query

// Not matches if its sub-query does not match.
type Not struct {
	Q Query
}

// Term matches documents containing Value, ignoring case. If Field is set,
// only this field is searched.
type Term struct {
	Field string
	Value string
}

func (q And) Match(doc Document) bool {
	for _, sub := range q {
		if !sub.Match(doc) {
			return false
		}
	}
	return true
}

func (q Or) Match(doc Document) bool {
	for _, sub := range q {
		if sub.Match(doc) {
			return true
		}
	}
	return false
}

func (q Not) Match(doc Document) bool {
	return !q.Q.Match(doc)
}

func (q Term) Match(doc Document) bool {
	v := strings.ToLower(q.Value)
	if q.Field != "" {
		return strings.Contains(strings.ToLower(doc[q.Field]), v)
	}
	for _, text := range doc {
		if strings.Contains(strings.ToLower(text), v) {
			return true
		}
	}
	return false
}

func (q And) String() string { return list("and", q) }
func (q Or) String() string  { return list("or", q) }
func (q Not) String() string { return "-" + q.Q.String() }

func (q Term) String() string {
	v := q.Value
	if strings.ContainsAny(v, " \t\"") {
		v = strconv.Quote(v)
	}
	if q.Field != "" {
		return q.Field + ":" + v
	}
	return v
}

func list(op string, qs []Query) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(op)
	for _, q := range qs {
		b.WriteByte(' ')
		b.WriteString(q.String())
	}
	b.WriteByte(')')
	return b.String()
}

// --- Parser ----------------------------------------------------------------

// Parser parses queries. It may be used concurrently.
type Parser struct {
	fe     *ebnf.FrontEnd
	parser *ll.Parser
}

// NewParser compiles the query grammar.
func NewParser() (*Parser, error) {
	fe := ebnf.New(Tokens, ebnf.SourceName("query.ebnf"))
	if err := fe.Define(Grammar); err != nil {
		return nil, err
	}
	fe.Factory("Value", value).
		Factory("Term", term).
		Factory("Clause", clause).
		Factory("Query", query)
	p, err := fe.Compile("Query")
	if err != nil {
		return nil, err
	}
	return &Parser{fe: fe, parser: p}, nil
}

// Parse parses a query. All of the input has to be consumed.
func (p *Parser) Parse(input string) (Query, error) {
	tz := keywords{scanner.GoTokenizer("query", strings.NewReader(input), scanner.UnifyStrings(true))}
	cur := ll.NewCursor(tz, ll.WithInput("query", input), ll.WithNames(p.fe.TokenName))
	v, err := p.parser.Parse(cur)
	if err != nil {
		return nil, err
	}
	if !cur.AtEOF() {
		return nil, cur.Unexpected(ll.NewTokenSet(scanner.EOF))
	}
	tracer().Debugf("query = %v", v)
	return v.(Query), nil
}

// keywords is a tokenizer recognizing keyword OR.
type keywords struct {
	scanner.Tokenizer
}

func (k keywords) NextToken() gorll.Token {
	tok := k.Tokenizer.NextToken()
	if tok.TokType() != scanner.Ident || tok.Lexeme() != "OR" {
		return tok
	}
	var pos gorll.Position
	if p, ok := tok.(gorll.Positioned); ok {
		pos = p.Position()
	}
	return scanner.MakeToken(OR, tok.Lexeme(), tok.Span(), pos)
}

// --- Node factories --------------------------------------------------------

func isToken(v interface{}, tt gorll.TokType) bool {
	tok, ok := v.(gorll.Token)
	return ok && tok.TokType() == tt
}

func text(v interface{}) string {
	tok := v.(gorll.Token)
	if tok.TokType() == scanner.String {
		if s, err := strconv.Unquote(tok.Lexeme()); err == nil {
			return s
		}
	}
	return tok.Lexeme()
}

// Value = word | phrase
func value(children []interface{}) interface{} {
	return text(children[0])
}

// Term = word [ ":" Value ] | phrase
func term(children []interface{}) interface{} {
	if len(children) == 3 {
		return Term{Field: text(children[0]), Value: children[2].(string)}
	}
	return Term{Value: text(children[0])}
}

// Clause = [ "-" ] ( Term | "(" Query ")" )
func clause(children []interface{}) interface{} {
	var q Query
	for _, ch := range children {
		if sub, ok := ch.(Query); ok {
			q = sub
			break
		}
	}
	if isToken(children[0], '-') {
		return Not{Q: q}
	}
	return q
}

// Query = Clause { [ "OR" ] Clause }
//
// OR binds tighter than the implicit AND of adjacent clauses.
func query(children []interface{}) interface{} {
	var and And
	var or Or
	joined := false
	for _, ch := range children {
		if isToken(ch, OR) {
			joined = true
			continue
		}
		if or != nil && !joined {
			and = append(and, collapse(or))
			or = nil
		}
		or = append(or, ch.(Query))
		joined = false
	}
	and = append(and, collapse(or))
	if len(and) == 1 {
		return and[0]
	}
	return and
}

func collapse(or Or) Query {
	if len(or) == 1 {
		return or[0]
	}
	return or
}

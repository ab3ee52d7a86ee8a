package ebnf

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/gorll"
	"github.com/npillmayer/gorll/ll"
	"github.com/npillmayer/gorll/ll/scanner"
	"github.com/npillmayer/gorll/runtime"
	xebnf "golang.org/x/exp/ebnf"
)

// TokenTable maps token names and literals of a grammar to token types.
type TokenTable map[string]gorll.TokType

// FrontEnd collects EBNF rules and converts them to grammars.
type FrontEnd struct {
	tokens    TokenTable
	source    string
	rules     *runtime.SymbolTable
	factories map[string]ll.NodeFactory
	leaf      ll.LeafFactory
	names     map[gorll.TokType]string
}

// Option configures a front end.
type Option func(*FrontEnd)

// SourceName sets the name of the grammar source, used in error messages.
func SourceName(name string) Option {
	return func(fe *FrontEnd) {
		fe.source = name
	}
}

// LeafFactory sets the leaf factory for all tokens of the grammar.
// Default is ll.TokenLeaf.
func LeafFactory(lf ll.LeafFactory) Option {
	return func(fe *FrontEnd) {
		if lf != nil {
			fe.leaf = lf
		}
	}
}

// New creates a front end for grammars over the given tokens.
func New(tokens TokenTable, opts ...Option) *FrontEnd {
	fe := &FrontEnd{
		tokens:    make(TokenTable, len(tokens)),
		source:    "grammar",
		rules:     runtime.NewSymbolTable(),
		factories: make(map[string]ll.NodeFactory),
		leaf:      ll.TokenLeaf,
		names:     make(map[gorll.TokType]string),
	}
	keys := make([]string, 0, len(tokens))
	for k, code := range tokens {
		fe.tokens[k] = code
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys { // first name wins
		if _, ok := fe.names[tokens[k]]; !ok {
			fe.names[tokens[k]] = k
		}
	}
	for _, opt := range opts {
		opt(fe)
	}
	return fe
}

// Define adds the productions of an EBNF source text. Rules may not be defined
// more than once.
func (fe *FrontEnd) Define(src string) error {
	g, err := xebnf.Parse(fe.source, strings.NewReader(src))
	if err != nil {
		return err
	}
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := fe.tokens[name]; ok {
			return fmt.Errorf("%s: rule %s is already defined as a token", g[name].Pos(), name)
		}
		sym, found := fe.rules.ResolveOrDefine(name)
		if found {
			return fmt.Errorf("%s: rule %s defined twice", g[name].Pos(), name)
		}
		sym.Kind, sym.Value = runtime.RuleType, g[name]
		tracer().Debugf("defined rule %s", name)
	}
	return nil
}

// Rule adds a single production name = expr.
func (fe *FrontEnd) Rule(name, expr string) error {
	return fe.Define(fmt.Sprintf("%s = %s .", name, expr))
}

// Factory sets the node factory for a rule. The factory receives the values
// of the rule's right hand side as a flat list, see ll.Flatten.
func (fe *FrontEnd) Factory(rule string, nf ll.NodeFactory) *FrontEnd {
	fe.factories[rule] = nf
	return fe
}

// Rules returns the symbol table of rules.
func (fe *FrontEnd) Rules() *runtime.SymbolTable {
	return fe.rules
}

// TokenName is a token type stringer using the names of the token table.
func (fe *FrontEnd) TokenName(tt gorll.TokType) string {
	if name, ok := fe.names[tt]; ok {
		if utf8.RuneCountInString(name) == 1 || !isIdent(name) {
			return fmt.Sprintf("%q", name)
		}
		return name
	}
	return scanner.TokenName(tt)
}

// Grammar converts the rules reachable from rule start to a grammar graph.
func (fe *FrontEnd) Grammar(start string) (*ll.Grammar, error) {
	g, _, err := fe.convert(start)
	return g, err
}

// Compile converts the rules reachable from rule start and compiles them to
// a parser.
func (fe *FrontEnd) Compile(start string, opts ...ll.CompileOption) (*ll.Parser, error) {
	g, b, err := fe.convert(start)
	if err != nil {
		return nil, err
	}
	return b.Compile(g, opts...)
}

// UndefinedNamesError lists names which are neither rules nor tokens.
type UndefinedNamesError struct {
	Names []string
}

func (e *UndefinedNamesError) Error() string {
	return "the following names are undefined: " + strings.Join(e.Names, ", ")
}

func (e *UndefinedNamesError) Unwrap() error {
	return ll.ErrUnresolvedForwardReference
}

// --- Conversion ------------------------------------------------------------

type converter struct {
	fe        *FrontEnd
	b         *ll.GrammarBuilder
	recs      map[string]*ll.Grammar // one recursion node per rule
	nodes     map[string]*ll.Grammar // rule nodes
	toks      map[gorll.TokType]*ll.Grammar
	undefined map[string]bool
	err       error
}

func (fe *FrontEnd) convert(start string) (*ll.Grammar, *ll.GrammarBuilder, error) {
	if fe.rules.Resolve(start) == nil {
		return nil, nil, fmt.Errorf("start rule %s is not defined", start)
	}
	c := &converter{
		fe:        fe,
		b:         ll.NewGrammarBuilder(start, ll.TokenNames(fe.TokenName), ll.DefaultLeafFactory(fe.leaf)),
		recs:      make(map[string]*ll.Grammar),
		nodes:     make(map[string]*ll.Grammar),
		toks:      make(map[gorll.TokType]*ll.Grammar),
		undefined: make(map[string]bool),
	}
	c.ref(start)
	if len(c.undefined) > 0 {
		names := make([]string, 0, len(c.undefined))
		for n := range c.undefined {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, nil, &UndefinedNamesError{Names: names}
	}
	if c.err != nil {
		return nil, nil, c.err
	}
	tracer().Debugf("converted %d rules reachable from %s to %d nodes", len(c.nodes), start, c.b.Size())
	return c.nodes[start], c.b, nil
}

// ref returns the recursion node for a rule, converting the rule on first use.
func (c *converter) ref(name string) *ll.Grammar {
	if r, ok := c.recs[name]; ok {
		return r
	}
	r := c.b.Recurse().Named(name)
	c.recs[name] = r
	prod := c.fe.rules.Resolve(name).Value.(*xebnf.Production)
	rhs := c.expr(prod.Expr)
	node := c.b.SeqWith(c.factory(name), rhs).Named(name)
	c.nodes[name] = node
	if err := r.Bind(node); err != nil {
		c.fail(err)
	}
	return r
}

func (c *converter) factory(rule string) ll.NodeFactory {
	if nf, ok := c.fe.factories[rule]; ok {
		return func(children []interface{}) interface{} {
			return nf(ll.Flatten(children))
		}
	}
	return ll.TreeFactory(rule)
}

func (c *converter) expr(x xebnf.Expression) *ll.Grammar {
	switch e := x.(type) {
	case nil:
		return c.b.Seq()
	case xebnf.Alternative:
		return c.b.Choice(c.list(e)...)
	case xebnf.Sequence:
		return c.b.Seq(c.list(e)...)
	case *xebnf.Group:
		return c.expr(e.Body)
	case *xebnf.Option:
		return c.b.Opt(c.expr(e.Body))
	case *xebnf.Repetition:
		return c.b.Star(c.expr(e.Body))
	case *xebnf.Name:
		if code, ok := c.fe.tokens[e.String]; ok {
			return c.token(code)
		}
		if c.fe.rules.Resolve(e.String) == nil {
			c.undefined[e.String] = true
			return c.b.Seq()
		}
		return c.ref(e.String)
	case *xebnf.Token:
		if code, ok := c.fe.tokens[e.String]; ok {
			return c.token(code)
		}
		if r, size := utf8.DecodeRuneInString(e.String); size > 0 && size == len(e.String) {
			return c.token(gorll.TokType(r))
		}
		c.fail(fmt.Errorf("%s: literal %q is not a token", e.Pos(), e.String))
	case *xebnf.Range:
		c.fail(fmt.Errorf("%s: character ranges are not supported", e.Pos()))
	default:
		c.fail(fmt.Errorf("%s: unexpected expression %T", x.Pos(), x))
	}
	return c.b.Seq()
}

func (c *converter) list(exprs []xebnf.Expression) []*ll.Grammar {
	nodes := make([]*ll.Grammar, len(exprs))
	for i, x := range exprs {
		nodes[i] = c.expr(x)
	}
	return nodes
}

func (c *converter) token(code gorll.TokType) *ll.Grammar {
	if t, ok := c.toks[code]; ok {
		return t
	}
	t := c.b.Token(code)
	c.toks[code] = t
	return t
}

func (c *converter) fail(err error) {
	tracer().Errorf(err.Error())
	if c.err == nil {
		c.err = err
	}
}

func isIdent(s string) bool {
	for i, r := range s {
		if r != '_' && !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z') && (i == 0 || r < '0' || r > '9') {
			return false
		}
	}
	return s != ""
}

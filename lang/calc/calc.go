/*
Package calc is a small calculator language, built with package ll.

Statements are arithmetic expressions or assignments to variables:

    Stmt   = "let" ident "=" Expr | Expr .
    Expr   = Term { ( "+" | "-" ) Term } .
    Term   = Factor { ( "*" | "/" ) Factor } .
    Factor = number | ident | "-" Factor | "(" Expr ")" .

Variables live in a session scope, below a scope of constants (pi and e).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/npillmayer/gorll"
	"github.com/npillmayer/gorll/ll"
	"github.com/npillmayer/gorll/ll/scanner"
	"github.com/npillmayer/gorll/ll/scanner/lexmach"
	"github.com/npillmayer/gorll/runtime"
	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
)

// tracer traces with key 'gorll.lang'.
func tracer() tracing.Trace {
	return tracing.Select("gorll.lang")
}

// Evaluation errors.
var (
	ErrDivisionByZero    = errors.New("division by zero")
	ErrUndefinedVariable = errors.New("undefined variable")
)

// Token types of the calculator.
const (
	NUM gorll.TokType = scanner.Float
	ID  gorll.TokType = scanner.Ident
	LET gorll.TokType = 1000
)

var literals = []string{"(", ")", "+", "-", "*", "/", "="}

func tokenIds() map[string]int {
	ids := map[string]int{
		"number": int(NUM),
		"ident":  int(ID),
		"let":    int(LET),
	}
	for _, lit := range literals {
		ids[lit] = int(lit[0])
	}
	return ids
}

func initLexer(lexer *lexmachine.Lexer) {
	lexer.Add([]byte(`[0-9]+(\.[0-9]+)?`), lexmach.MakeToken("number", int(NUM)))
	lexer.Add([]byte(`[a-zA-Z_][a-zA-Z0-9_]*`), lexmach.MakeToken("ident", int(ID)))
	lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
}

// Calculator evaluates statements. Variables persist between statements.
// A Calculator must not be used concurrently.
type Calculator struct {
	lexer   *lexmach.LMAdapter
	eval    *ll.Parser
	tree    *ll.Parser
	scopes  *runtime.ScopeTree
	session *runtime.Scope
}

// New creates a calculator with a fresh session scope.
func New() (*Calculator, error) {
	lexer, err := lexmach.NewLMAdapter(initLexer, literals, []string{"let"}, tokenIds())
	if err != nil {
		return nil, err
	}
	c := &Calculator{lexer: lexer, scopes: &runtime.ScopeTree{}}
	if c.eval, err = compile(lexer.TokenName, false); err != nil {
		return nil, err
	}
	if c.tree, err = compile(lexer.TokenName, true); err != nil {
		return nil, err
	}
	constants := c.scopes.PushNewScope("constants")
	for name, x := range map[string]float64{"pi": math.Pi, "e": math.E} {
		sym, _ := constants.Define(name)
		sym.SetNumber(x)
	}
	c.session = c.scopes.PushNewScope("session")
	return c, nil
}

// Eval parses and evaluates a statement. An assignment results in the
// assigned value.
func (c *Calculator) Eval(input string) (float64, error) {
	v, err := c.parse(c.eval, input)
	if err != nil {
		return 0, err
	}
	x, err := v.(expr)(c.scopes.Current())
	if err != nil {
		return 0, err
	}
	tracer().Debugf("%s = %g", input, x)
	return x, nil
}

// Tree parses a statement and returns its parse tree.
func (c *Calculator) Tree(input string) (*ll.Tree, error) {
	v, err := c.parse(c.tree, input)
	if err != nil {
		return nil, err
	}
	return v.(*ll.Tree), nil
}

// Variables returns the variables of the session, ordered by name.
func (c *Calculator) Variables() []*runtime.Symbol {
	var vars []*runtime.Symbol
	c.session.Symbols().Each(func(sym *runtime.Symbol) {
		vars = append(vars, sym)
	})
	return vars
}

// TokenName is a stringer for the token types of the calculator.
func (c *Calculator) TokenName(tt gorll.TokType) string {
	return c.lexer.TokenName(tt)
}

func (c *Calculator) parse(p *ll.Parser, input string) (interface{}, error) {
	sc, err := c.lexer.NamedScanner("input", input)
	if err != nil {
		return nil, err
	}
	var scanErr error
	sc.SetErrorHandler(func(e error) {
		if scanErr == nil {
			scanErr = e
		}
	})
	cur := ll.NewCursor(sc, ll.WithInput("input", input), ll.WithNames(c.lexer.TokenName))
	v, err := p.Parse(cur)
	if scanErr != nil {
		return nil, fmt.Errorf("illegal input: %w", scanErr)
	}
	if err != nil {
		return nil, err
	}
	if !cur.AtEOF() {
		return nil, cur.Unexpected(ll.NewTokenSet(scanner.EOF))
	}
	return v, nil
}

// --- Grammar ---------------------------------------------------------------

// expr is the result of parsing a statement in evaluation mode.
type expr func(sc *runtime.Scope) (float64, error)

// compile builds the grammar, either producing parse trees or expressions.
func compile(names gorll.TokTypeStringer, trees bool) (*ll.Parser, error) {
	b := ll.NewGrammarBuilder("calc", ll.TokenNames(names))
	pick := func(rule string, nf ll.NodeFactory) ll.NodeFactory {
		if trees {
			return ll.TreeFactory(rule)
		}
		return nf
	}
	leaf := func(lf ll.LeafFactory) ll.LeafFactory {
		if trees {
			return ll.TokenLeaf
		}
		return lf
	}
	rexpr := b.Recurse()
	rfactor := b.Recurse()
	factor := b.Choice(
		b.TokenWith(NUM, leaf(number)),
		b.TokenWith(ID, leaf(variable)),
		b.SeqWith(pick("neg", negate), b.Token('-'), rfactor),
		b.SeqWith(pick("group", second), b.Token('('), rexpr, b.Token(')')),
	).Named("Factor")
	term := b.SeqWith(pick("Term", fold),
		factor,
		b.Star(b.Seq(b.Choice(b.Token('*'), b.Token('/')), factor)),
	).Named("Term")
	sum := b.SeqWith(pick("Expr", fold),
		term,
		b.Star(b.Seq(b.Choice(b.Token('+'), b.Token('-')), term)),
	).Named("Expr")
	stmt := b.Choice(
		b.SeqWith(pick("let", assign), b.Token(LET), b.Token(ID), b.Token('='), rexpr),
		sum,
	).Named("Stmt")
	if err := rexpr.Bind(sum); err != nil {
		return nil, err
	}
	if err := rfactor.Bind(factor); err != nil {
		return nil, err
	}
	return b.Compile(stmt)
}

// --- Semantics -------------------------------------------------------------

func number(tok gorll.Token) interface{} {
	x, err := strconv.ParseFloat(tok.Lexeme(), 64)
	return expr(func(*runtime.Scope) (float64, error) {
		return x, err
	})
}

func variable(tok gorll.Token) interface{} {
	name := tok.Lexeme()
	return expr(func(sc *runtime.Scope) (float64, error) {
		if sym, _ := sc.Resolve(name); sym != nil {
			if x, ok := sym.Number(); ok {
				return x, nil
			}
		}
		return 0, fmt.Errorf("%w: %s", ErrUndefinedVariable, name)
	})
}

func negate(children []interface{}) interface{} {
	operand := children[1].(expr)
	return expr(func(sc *runtime.Scope) (float64, error) {
		x, err := operand(sc)
		return -x, err
	})
}

func second(children []interface{}) interface{} {
	return children[1]
}

// fold combines an operand followed by a list of (operator, operand) pairs,
// left to right.
func fold(children []interface{}) interface{} {
	acc := children[0].(expr)
	if len(children) == 1 {
		return acc
	}
	for _, p := range children[1].([]interface{}) {
		pair := p.([]interface{})
		acc = binary(scanner.Lexeme(pair[0]), acc, pair[1].(expr))
	}
	return acc
}

func binary(op string, left, right expr) expr {
	return func(sc *runtime.Scope) (float64, error) {
		x, err := left(sc)
		if err != nil {
			return 0, err
		}
		y, err := right(sc)
		if err != nil {
			return 0, err
		}
		switch op {
		case "+":
			return x + y, nil
		case "-":
			return x - y, nil
		case "*":
			return x * y, nil
		}
		if y == 0 {
			return 0, ErrDivisionByZero
		}
		return x / y, nil
	}
}

func assign(children []interface{}) interface{} {
	name := scanner.Lexeme(children[1])
	rhs := children[3].(expr)
	return expr(func(sc *runtime.Scope) (float64, error) {
		x, err := rhs(sc)
		if err != nil {
			return 0, err
		}
		sym, _ := sc.Symbols().ResolveOrDefine(name)
		sym.SetNumber(x)
		return x, nil
	})
}

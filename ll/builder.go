package ll

import (
	"fmt"

	"github.com/npillmayer/gorll"
)

// GrammarBuilder creates the nodes of a grammar graph. It is the owner of all the
// nodes it creates and assigns a serial number to each of them.
//
//    b := ll.NewGrammarBuilder("G")
//    num := b.Token(scanner.Int)
//    list, err := b.Repeat(num, 1, ll.Unbounded, sum)
//
// Nodes are wired bottom-up; recursive rules use b.Recurse() and bind the
// recursion node once the target exists.
type GrammarBuilder struct {
	name  string
	nodes []*Grammar
	nf    NodeFactory
	leaf  LeafFactory
	names gorll.TokTypeStringer
}

// BuilderOption configures a grammar builder.
type BuilderOption func(*GrammarBuilder)

// DefaultNodeFactory sets the node factory for sequences and repetitions created
// without an explicit one. The initial default is Collect.
func DefaultNodeFactory(nf NodeFactory) BuilderOption {
	return func(b *GrammarBuilder) {
		if nf != nil {
			b.nf = nf
		}
	}
}

// DefaultLeafFactory sets the leaf factory for token nodes created with Token.
// The initial default is TokenLeaf.
func DefaultLeafFactory(lf LeafFactory) BuilderOption {
	return func(b *GrammarBuilder) {
		if lf != nil {
			b.leaf = lf
		}
	}
}

// TokenNames sets a stringer for token types. Token nodes will be named after
// their token type, and diagnostics will use the names.
func TokenNames(names gorll.TokTypeStringer) BuilderOption {
	return func(b *GrammarBuilder) {
		b.names = names
	}
}

// NewGrammarBuilder creates a builder for a grammar called name.
func NewGrammarBuilder(name string, opts ...BuilderOption) *GrammarBuilder {
	b := &GrammarBuilder{
		name: name,
		nf:   Collect,
		leaf: TokenLeaf,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the grammar's name.
func (b *GrammarBuilder) Name() string {
	return b.name
}

// Size returns the number of nodes created so far.
func (b *GrammarBuilder) Size() int {
	return len(b.nodes)
}

// TokenNames returns the stringer for token types, if any.
func (b *GrammarBuilder) TokenNames() gorll.TokTypeStringer {
	return b.names
}

func (b *GrammarBuilder) add(g *Grammar) *Grammar {
	g.serial = len(b.nodes)
	b.nodes = append(b.nodes, g)
	return g
}

func mustHaveChildren(op string, children []*Grammar) {
	for i, ch := range children {
		if ch == nil {
			panic(fmt.Sprintf("%s: child #%d is nil", op, i))
		}
	}
}

// Token creates a node matching a single token of type code.
func (b *GrammarBuilder) Token(code gorll.TokType) *Grammar {
	return b.TokenWith(code, b.leaf)
}

// TokenWith creates a node matching a single token of type code. The token's
// value will be created by leaf.
func (b *GrammarBuilder) TokenWith(code gorll.TokType, leaf LeafFactory) *Grammar {
	if leaf == nil {
		leaf = b.leaf
	}
	g := &Grammar{kind: TokenKind, code: code, leaf: leaf}
	if b.names != nil {
		g.name = b.names(code)
	}
	return b.add(g)
}

// Seq creates a node matching children in order, using the default node factory.
func (b *GrammarBuilder) Seq(children ...*Grammar) *Grammar {
	return b.SeqWith(nil, children...)
}

// SeqWith creates a node matching children in order. The children's values are
// combined by nf.
func (b *GrammarBuilder) SeqWith(nf NodeFactory, children ...*Grammar) *Grammar {
	mustHaveChildren("Seq", children)
	if nf == nil {
		nf = b.nf
	}
	ch := make([]*Grammar, len(children))
	copy(ch, children)
	return b.add(&Grammar{kind: SequenceKind, children: ch, factory: nf})
}

// Choice creates a node matching exactly one of its alternatives. A choice has no
// node factory of its own, but passes the value of the matching alternative.
func (b *GrammarBuilder) Choice(alternatives ...*Grammar) *Grammar {
	mustHaveChildren("Choice", alternatives)
	ch := make([]*Grammar, len(alternatives))
	copy(ch, alternatives)
	return b.add(&Grammar{kind: ChoiceKind, children: ch})
}

// Repeat creates a node matching child at least min and at most max times.
// Use Unbounded for max to allow an arbitrary number of repetitions.
// If nf is nil, the default node factory is used.
//
// Repeat will return a RepeatBoundsError unless 0 ≤ min ≤ max and max > 0.
func (b *GrammarBuilder) Repeat(child *Grammar, min, max int, nf NodeFactory) (*Grammar, error) {
	if min < 0 || max < min || max == 0 {
		return nil, &RepeatBoundsError{Min: min, Max: max}
	}
	mustHaveChildren("Repeat", []*Grammar{child})
	if nf == nil {
		nf = b.nf
	}
	return b.add(&Grammar{
		kind:     RepeatKind,
		children: []*Grammar{child},
		min:      min,
		max:      max,
		factory:  nf,
	}), nil
}

func (b *GrammarBuilder) repeat(child *Grammar, min, max int) *Grammar {
	g, err := b.Repeat(child, min, max, nil)
	if err != nil { // cannot happen with constant bounds
		panic(err)
	}
	return g
}

// Opt creates a node matching child zero or one times.
func (b *GrammarBuilder) Opt(child *Grammar) *Grammar {
	return b.repeat(child, 0, 1)
}

// Star creates a node matching child zero or more times.
func (b *GrammarBuilder) Star(child *Grammar) *Grammar {
	return b.repeat(child, 0, Unbounded)
}

// Plus creates a node matching child one or more times.
func (b *GrammarBuilder) Plus(child *Grammar) *Grammar {
	return b.repeat(child, 1, Unbounded)
}

// Recurse creates a recursion node. Its target has to be set with Bind before
// a grammar containing it is compiled.
func (b *GrammarBuilder) Recurse() *Grammar {
	return b.add(&Grammar{kind: RecurseKind})
}

// Compile compiles a grammar with start node root, using the token names of
// the builder for diagnostics. See function Compile.
func (b *GrammarBuilder) Compile(root *Grammar, opts ...CompileOption) (*Parser, error) {
	if b.names != nil {
		opts = append([]CompileOption{WithTokenNames(b.names)}, opts...)
	}
	tracer().Debugf("compiling grammar %s with %d nodes", b.name, len(b.nodes))
	return Compile(root, opts...)
}

// Dump traces all nodes of the grammar at debug level.
func (b *GrammarBuilder) Dump() {
	for _, g := range b.nodes {
		tracer().Debugf("%4d: %s", g.serial, g)
	}
}

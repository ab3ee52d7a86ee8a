package ll

import (
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/gorll"
)

// Kind is the kind of a grammar node. The set of kinds is closed.
type Kind int8

// Kinds of grammar nodes.
const (
	TokenKind    Kind = iota // matches a single token
	SequenceKind             // matches its children in order
	ChoiceKind               // matches exactly one of its children
	RepeatKind               // matches its child min…max times
	RecurseKind              // refers to another node, bound after construction
)

func (k Kind) String() string {
	switch k {
	case TokenKind:
		return "Token"
	case SequenceKind:
		return "Sequence"
	case ChoiceKind:
		return "Choice"
	case RepeatKind:
		return "Repeat"
	case RecurseKind:
		return "Recurse"
	}
	return fmt.Sprintf("Kind(%d)", int8(k))
}

// Unbounded is the maximum count for repetitions without an upper bound.
const Unbounded = math.MaxInt

// NodeFactory reduces the values of the children of a sequence or repetition
// to a single value. The list of children may be empty. Returning NoValue will
// leave the result out of the list of the parent node.
type NodeFactory func(children []interface{}) interface{}

// LeafFactory creates a value from an input token. It is called by a token
// source when a token node consumes a token.
type LeafFactory func(tok gorll.Token) interface{}

type noValue struct{}

// NoValue may be returned by a NodeFactory to have the result dropped from
// the parent's list of children.
var NoValue interface{} = noValue{}

func isNoValue(v interface{}) bool {
	_, ok := v.(noValue)
	return ok
}

// Collect is a NodeFactory which returns the list of children.
func Collect(children []interface{}) interface{} {
	return children
}

// Drop is a NodeFactory which always returns NoValue.
func Drop([]interface{}) interface{} {
	return NoValue
}

// TokenLeaf is a LeafFactory which returns the token itself.
func TokenLeaf(tok gorll.Token) interface{} {
	return tok
}

// --- Grammar nodes ---------------------------------------------------------

// Grammar is a node of a grammar graph. Nodes are created by a GrammarBuilder
// and are immutable, except for binding the target of a recursion node.
// Grammar nodes are compared by identity.
type Grammar struct {
	kind     Kind
	serial   int
	name     string
	code     gorll.TokType // token type of token nodes
	children []*Grammar    // sequence and choice children, repeat child
	min, max int           // repetition bounds
	factory  NodeFactory   // nil for choice and recursion nodes
	leaf     LeafFactory   // token nodes only
	target   *Grammar      // recursion nodes only
}

// Kind returns the kind of the node.
func (g *Grammar) Kind() Kind {
	return g.kind
}

// Serial returns the number the builder assigned to this node.
func (g *Grammar) Serial() int {
	return g.serial
}

// Name returns the display name of g, which may be empty.
func (g *Grammar) Name() string {
	return g.name
}

// Named sets the display name of g. Names are used for diagnostics only.
func (g *Grammar) Named(name string) *Grammar {
	g.name = name
	return g
}

// Code returns the token type of a token node.
func (g *Grammar) Code() gorll.TokType {
	return g.code
}

// Children returns a copy of the children of a sequence, choice or repeat node.
func (g *Grammar) Children() []*Grammar {
	ch := make([]*Grammar, len(g.children))
	copy(ch, g.children)
	return ch
}

// Bounds returns the minimum and maximum count of a repeat node.
func (g *Grammar) Bounds() (int, int) {
	return g.min, g.max
}

// Target returns the target of a recursion node, or nil if not yet bound.
func (g *Grammar) Target() *Grammar {
	return g.target
}

// Bind sets the target of a recursion node. A recursion node may be bound
// exactly once.
func (g *Grammar) Bind(target *Grammar) error {
	if g.kind != RecurseKind {
		return fmt.Errorf("cannot bind %s node %s", g.kind, g.label())
	}
	if target == nil {
		return fmt.Errorf("cannot bind recursion node %s to nil", g.label())
	}
	if g.target != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyBound, g.label())
	}
	g.target = target
	tracer().Debugf("bound recursion node %s to %s", g.label(), target.label())
	return nil
}

// edges returns the nodes g refers to, including the target of a recursion.
func (g *Grammar) edges() []*Grammar {
	if g.kind == RecurseKind {
		if g.target == nil {
			return nil
		}
		return []*Grammar{g.target}
	}
	return g.children
}

// label is a short identification of g for messages.
func (g *Grammar) label() string {
	if g.name != "" {
		return g.name
	}
	if g.kind == TokenKind {
		return fmt.Sprintf("<%d>", g.code)
	}
	return fmt.Sprintf("%s#%d", g.kind, g.serial)
}

// String renders g in an EBNF-like notation. Named children are not expanded.
func (g *Grammar) String() string {
	var b strings.Builder
	if g.name != "" && g.kind != TokenKind {
		b.WriteString(g.name)
		b.WriteString(" = ")
	}
	g.render(&b, true)
	return b.String()
}

func (g *Grammar) render(b *strings.Builder, top bool) {
	if !top && g.name != "" {
		b.WriteString(g.name)
		return
	}
	switch g.kind {
	case TokenKind:
		b.WriteString(g.label())
	case SequenceKind:
		g.renderList(b, " ", top)
	case ChoiceKind:
		g.renderList(b, " | ", top)
	case RepeatKind:
		child := g.children[0]
		switch {
		case g.min == 0 && g.max == 1:
			b.WriteByte('[')
			child.render(b, false)
			b.WriteByte(']')
		case g.min == 0 && g.max == Unbounded:
			b.WriteByte('{')
			child.render(b, false)
			b.WriteByte('}')
		case g.min == 1 && g.max == Unbounded:
			b.WriteByte('{')
			child.render(b, false)
			b.WriteString("}+")
		case g.max == Unbounded:
			child.render(b, false)
			fmt.Fprintf(b, "{%d,}", g.min)
		default:
			child.render(b, false)
			fmt.Fprintf(b, "{%d,%d}", g.min, g.max)
		}
	case RecurseKind:
		b.WriteByte('@')
		if g.target == nil {
			b.WriteByte('?')
		} else {
			b.WriteString(g.target.label())
		}
	}
}

func (g *Grammar) renderList(b *strings.Builder, sep string, top bool) {
	if !top {
		b.WriteByte('(')
	}
	for i, ch := range g.children {
		if i > 0 {
			b.WriteString(sep)
		}
		ch.render(b, false)
	}
	if !top {
		b.WriteByte(')')
	}
}

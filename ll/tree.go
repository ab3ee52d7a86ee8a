package ll

import (
	"fmt"
	"strings"

	"github.com/npillmayer/gorll"
)

// Tree is a generic parse tree node. Children are either *Tree or values
// produced by leaf factories, usually tokens.
type Tree struct {
	Rule     string
	Children []interface{}
}

// TreeFactory returns a NodeFactory creating a tree node for rule. Child values
// of type []interface{}, as produced by Collect, are spliced into the list of
// children, and so are children of trees without a rule name.
func TreeFactory(rule string) NodeFactory {
	return func(children []interface{}) interface{} {
		return &Tree{Rule: rule, Children: Flatten(children)}
	}
}

// Flatten splices nested lists of values and trees without a rule name into a
// single list.
func Flatten(values []interface{}) []interface{} {
	flat := make([]interface{}, 0, len(values))
	var splice func([]interface{})
	splice = func(l []interface{}) {
		for _, v := range l {
			switch x := v.(type) {
			case []interface{}:
				splice(x)
			case *Tree:
				if x.Rule == "" {
					splice(x.Children)
				} else {
					flat = append(flat, x)
				}
			default:
				if !isNoValue(v) {
					flat = append(flat, v)
				}
			}
		}
	}
	splice(values)
	return flat
}

// Walk calls f for t and all its descendents in pre-order. depth is 0 for t.
func (t *Tree) Walk(f func(depth int, node interface{})) {
	t.walk(0, f)
}

func (t *Tree) walk(depth int, f func(int, interface{})) {
	f(depth, t)
	for _, ch := range t.Children {
		if sub, ok := ch.(*Tree); ok {
			sub.walk(depth+1, f)
		} else {
			f(depth+1, ch)
		}
	}
}

// String renders t as an S-expression. Tokens are printed by their lexeme.
func (t *Tree) String() string {
	var b strings.Builder
	t.render(&b)
	return b.String()
}

func (t *Tree) render(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(t.Rule)
	for _, ch := range t.Children {
		b.WriteByte(' ')
		switch x := ch.(type) {
		case *Tree:
			x.render(b)
		default:
			b.WriteString(LeafString(x))
		}
	}
	b.WriteByte(')')
}

// LeafString is a display string for a leaf value of a parse tree.
func LeafString(v interface{}) string {
	switch x := v.(type) {
	case gorll.Token:
		return x.Lexeme()
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

package ll

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/gorll"
)

// Error kinds. Errors returned from this package match one of these with errors.Is.
//
// All kinds except ErrUnexpectedToken signal a defect of the grammar; they
// are reported during grammar construction or compilation, never while parsing.
var (
	ErrLeftRecursion              = errors.New("left recursion")
	ErrLookaheadConflict          = errors.New("lookahead conflict")
	ErrInvalidRepeatBounds        = errors.New("invalid repeat bounds")
	ErrUnresolvedForwardReference = errors.New("unresolved forward reference")
	ErrUnexpectedToken            = errors.New("unexpected token")
	ErrAlreadyBound               = errors.New("recursion node already bound")
)

// LeftRecursionError is returned by Compile if a node is reachable from itself
// without consuming a token.
type LeftRecursionError struct {
	Node *Grammar // node which closed the loop
}

func (e *LeftRecursionError) Error() string {
	return fmt.Sprintf("grammar %s starts a left recursive loop", e.Node.label())
}

func (e *LeftRecursionError) Unwrap() error {
	return ErrLeftRecursion
}

// LookaheadConflictError is returned by Compile if two alternatives of a choice
// (or, with strict sequences, two positions of a sequence) start with a common
// token type.
type LookaheadConflictError struct {
	Node    *Grammar // the choice or sequence
	First   *Grammar // the earlier child
	Second  *Grammar // the later child
	Overlap *TokenSet
	Names   gorll.TokTypeStringer
}

func (e *LookaheadConflictError) Error() string {
	return fmt.Sprintf("conflicting lookahead %s for grammars %s and %s in %s",
		e.Overlap.Format(e.Names), e.First.label(), e.Second.label(), e.Node.label())
}

func (e *LookaheadConflictError) Unwrap() error {
	return ErrLookaheadConflict
}

// RepeatBoundsError is returned when creating a repetition with invalid bounds.
type RepeatBoundsError struct {
	Min, Max int
}

func (e *RepeatBoundsError) Error() string {
	return fmt.Sprintf("repetition must have 0<=min<=max and max>0, but have min=%d, max=%d",
		e.Min, e.Max)
}

func (e *RepeatBoundsError) Unwrap() error {
	return ErrInvalidRepeatBounds
}

// UnresolvedReferenceError is returned by Compile if a recursion node has not been
// bound to a target.
type UnresolvedReferenceError struct {
	Node *Grammar
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("recursion node %s has no target", e.Node.label())
}

func (e *UnresolvedReferenceError) Unwrap() error {
	return ErrUnresolvedForwardReference
}

// --- Parse errors ----------------------------------------------------------

// UnexpectedTokenError is the only error produced during parsing. It is created
// by the token source, which knows about input positions.
type UnexpectedTokenError struct {
	Expected *TokenSet
	Found    gorll.TokType
	Lexeme   string
	Pos      gorll.Position
	Line     string // text of the input line, if known
	Names    gorll.TokTypeStringer
}

// Error formats a message like
//
//    input:1:5: found token Ident(b) but expected ')'
//
func (e *UnexpectedTokenError) Error() string {
	var b strings.Builder
	if e.Pos.Source != "" {
		b.WriteString(e.Pos.Source)
		b.WriteByte(':')
	}
	if e.Pos.IsValid() {
		fmt.Fprintf(&b, "%d:%d:", e.Pos.Line, e.Pos.Column)
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString("found token ")
	b.WriteString(tokenName(e.Found, e.Names))
	if e.Lexeme != "" {
		fmt.Fprintf(&b, "(%s)", e.Lexeme)
	}
	if e.Expected.Size() == 1 {
		b.WriteString(" but expected ")
		b.WriteString(tokenName(e.Expected.Codes()[0], e.Names))
	} else {
		b.WriteString(" but expected one of ")
		b.WriteString(e.Expected.Format(e.Names))
	}
	return b.String()
}

func (e *UnexpectedTokenError) Unwrap() error {
	return ErrUnexpectedToken
}

// Snippet returns the input line containing the unexpected token, with a marker
// below the token's column. If the input line is unknown, Snippet returns
// an empty string.
func (e *UnexpectedTokenError) Snippet() string {
	if e.Line == "" || !e.Pos.IsValid() {
		return ""
	}
	col := e.Pos.Column - 1
	if col < 0 {
		col = 0
	}
	var b strings.Builder
	b.WriteString(e.Line)
	b.WriteByte('\n')
	n := 0 // columns count runes
	for _, r := range e.Line {
		if n >= col {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		n++
	}
	b.WriteByte('^')
	return b.String()
}

package ll

import (
	"strings"

	"github.com/npillmayer/gorll"
	"github.com/npillmayer/gorll/ll/scanner"
)

// Cursor is a TokenSource reading from a scanner. It keeps the current token
// and creates UnexpectedTokenErrors with input positions.
type Cursor struct {
	tz     scanner.Tokenizer
	tok    gorll.Token
	source string   // name of the input
	lines  []string // input text, if known
	names  gorll.TokTypeStringer
	count  int // number of tokens consumed
}

var _ TokenSource = (*Cursor)(nil)

// CursorOption configures a cursor.
type CursorOption func(*Cursor)

// WithInput tells the cursor about the name and text of the input. The text is
// used to include the offending line in parse errors.
func WithInput(source, text string) CursorOption {
	return func(c *Cursor) {
		c.source = source
		c.lines = strings.Split(text, "\n")
	}
}

// WithNames sets a stringer for token types. Default is scanner.TokenName.
func WithNames(names gorll.TokTypeStringer) CursorOption {
	return func(c *Cursor) {
		if names != nil {
			c.names = names
		}
	}
}

// NewCursor creates a cursor and reads the first token from tz.
func NewCursor(tz scanner.Tokenizer, opts ...CursorOption) *Cursor {
	c := &Cursor{tz: tz, names: scanner.TokenName}
	for _, opt := range opts {
		opt(c)
	}
	c.tok = tz.NextToken()
	return c
}

// Current returns the type of the current token.
func (c *Cursor) Current() gorll.TokType {
	return c.tok.TokType()
}

// Token returns the current token.
func (c *Cursor) Token() gorll.Token {
	return c.tok
}

// AtEOF is a predicate: has all input been consumed?
func (c *Cursor) AtEOF() bool {
	return c.tok.TokType() == scanner.EOF
}

// Consumed returns the number of tokens consumed so far.
func (c *Cursor) Consumed() int {
	return c.count
}

// Advance consumes the current token and returns leaf(token). If leaf is nil,
// the token itself is returned. The cursor never moves beyond EOF.
func (c *Cursor) Advance(leaf LeafFactory) interface{} {
	tok := c.tok
	if !c.AtEOF() {
		c.tok = c.tz.NextToken()
		c.count++
	}
	if leaf == nil {
		return tok
	}
	return leaf(tok)
}

// Unexpected creates an error for the current token.
func (c *Cursor) Unexpected(expected *TokenSet) error {
	err := &UnexpectedTokenError{
		Expected: expected.Copy(),
		Found:    c.tok.TokType(),
		Lexeme:   c.tok.Lexeme(),
		Names:    c.names,
	}
	if c.AtEOF() {
		err.Lexeme = ""
	}
	if p, ok := c.tok.(gorll.Positioned); ok {
		err.Pos = p.Position()
	}
	if err.Pos.Source == "" {
		err.Pos.Source = c.source
	}
	if l := err.Pos.Line; l > 0 && l <= len(c.lines) {
		err.Line = c.lines[l-1]
	}
	tracer().Debugf("parse error: %v", err)
	return err
}

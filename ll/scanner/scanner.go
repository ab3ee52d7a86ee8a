/*
Package scanner defines the tokenizer interface parsers of package ll read
their input from.

Package scanner itself provides a tokenizer for Go-like input built on
'text/scanner'. Sub-package `lexmach` provides one built on lexmachine, for
languages with tokens of their own.

Tokens produced by both tokenizers know their line and column in the input,
which parsers use for diagnostics.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/gorll"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gorll.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("gorll.scanner")
}

// Token types of the Go tokenizer. Their values are those of text/scanner,
// all of them negative. Single character tokens use the character as type.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is the interface for token producers.
// At the end of input, NextToken returns EOF tokens on every call.
type Tokenizer interface {
	NextToken() gorll.Token
	SetErrorHandler(func(error))
}

// GoScanner tokenizes Go-like input. Create one with GoTokenizer.
type GoScanner struct {
	scanner.Scanner
	Error        func(error) // receives malformed input errors
	unifyStrings bool
}

var _ Tokenizer = (*GoScanner)(nil)

func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a tokenizer for identifiers, numbers, strings and
// operator characters as the Go language defines them. Comments are skipped.
// sourceID names the input in token positions.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *GoScanner {
	t := &GoScanner{Error: logError}
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler replaces the error handler. A nil handler restores tracing
// of errors.
func (t *GoScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		h = logError
	}
	t.Error = h
}

// NextToken scans the next token of the input.
func (t *GoScanner) NextToken() gorll.Token {
	r := t.Scan()
	switch {
	case r == scanner.EOF:
		tracer().Debugf("%s: end of input", t.Filename)
	case t.unifyStrings && (r == scanner.RawString || r == scanner.Char):
		r = scanner.String
	}
	return Token{
		kind:   gorll.TokType(r),
		lexeme: t.TokenText(),
		span:   gorll.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
		pos: gorll.Position{
			Source: t.Position.Filename,
			Line:   t.Position.Line,
			Column: t.Position.Column,
		},
	}
}

// --- Tokens ----------------------------------------------------------------

// Token is the token type both tokenizers produce. It carries no value: leaf
// factories of a parser convert lexemes to values.
type Token struct {
	kind   gorll.TokType
	lexeme string
	span   gorll.Span
	pos    gorll.Position
}

var _ gorll.Positioned = Token{}

// MakeToken creates a token. pos may be the zero position for tokenizers which
// do not track lines.
func MakeToken(typ gorll.TokType, lexeme string, span gorll.Span, pos gorll.Position) Token {
	return Token{kind: typ, lexeme: lexeme, span: span, pos: pos}
}

func (t Token) TokType() gorll.TokType {
	return t.kind
}

// Value is always nil.
func (t Token) Value() interface{} {
	return nil
}

func (t Token) Lexeme() string {
	return t.lexeme
}

func (t Token) Span() gorll.Span {
	return t.span
}

// Position returns line and column of the token's first character.
func (t Token) Position() gorll.Position {
	return t.pos
}

func (t Token) String() string {
	return fmt.Sprintf("<%d|%q@%s>", t.kind, t.lexeme, t.pos)
}

// --- Options ---------------------------------------------------------------

// Option configures the Go tokenizer.
type Option func(*GoScanner)

// SkipComments tells the tokenizer whether to drop comments (the default) or
// return them as tokens of type Comment.
func SkipComments(b bool) Option {
	return func(t *GoScanner) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings makes the tokenizer report raw strings and character literals
// as tokens of type String.
func UnifyStrings(b bool) Option {
	return func(t *GoScanner) {
		t.unifyStrings = b
	}
}

// TokenName is a gorll.TokTypeStringer for the token types of the Go
// tokenizer. Single character tokens are printed as quoted characters.
func TokenName(tt gorll.TokType) string {
	if tt < 0 {
		return scanner.TokenString(rune(tt))
	}
	return fmt.Sprintf("%q", rune(tt))
}

// Lexeme returns the text of a token value, which parsers hand to factories
// as a gorll.Token, a string or a byte slice.
func Lexeme(token interface{}) string {
	switch t := token.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case gorll.Token:
		return t.Lexeme()
	default:
		return fmt.Sprintf("%v", t)
	}
}

package lexmach

import (
	"strings"

	"github.com/npillmayer/gorll"
	"github.com/npillmayer/gorll/ll/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'gorll.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("gorll.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
	names map[int]string // token ids to token names, for diagnostics
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values. Literals and keywords
// take precedence over the patterns init adds to the lexer.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{
		names: make(map[int]string, len(tokenIds)),
	}
	for name, id := range tokenIds {
		adapter.names[id] = name
	}
	adapter.Lexer = lexmachine.NewLexer()
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	init(adapter.Lexer)
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// TokenName is a gorll.TokTypeStringer, using the token names given at
// adapter creation time. EOF is named "EOF".
func (lm *LMAdapter) TokenName(tt gorll.TokType) string {
	if tt == scanner.EOF {
		return "EOF"
	}
	if name, ok := lm.names[int(tt)]; ok {
		return name
	}
	return scanner.TokenName(tt)
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	return lm.NamedScanner("", input)
}

// NamedScanner creates a scanner for a given input, naming the input source
// for token positions.
func (lm *LMAdapter) NamedScanner(source, input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, source: source, Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	source  string
	last    gorll.Position // position of last token, used for EOF
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface.
//
// Input which cannot be matched is reported to the error handler and skipped.
func (lms *LMScanner) NextToken() gorll.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		end := uint64(len(lms.scanner.Text))
		return scanner.MakeToken(scanner.EOF, "", gorll.Span{end, end}, lms.last)
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	lms.last = gorll.Position{
		Source: lms.source,
		Line:   token.StartLine,
		Column: token.StartColumn,
	}
	return scanner.MakeToken(
		gorll.TokType(token.Type),
		string(token.Lexeme),
		gorll.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
		lms.last,
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

package lexmach

import (
	"testing"

	"github.com/npillmayer/gorll"
	"github.com/npillmayer/gorll/ll/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 2, 3, 3}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		token := sc.NextToken()
		count := 0
		for token.TokType() != scanner.EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = sc.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestLMPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gorll.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	sc, err := LM.NamedScanner("test", "a\nbb")
	if err != nil {
		t.Fatal(err)
	}
	first := sc.NextToken().(gorll.Positioned).Position()
	second := sc.NextToken().(gorll.Positioned).Position()
	if !first.IsValid() || !second.IsValid() {
		t.Fatalf("expected tokens to carry positions, have %s and %s", first, second)
	}
	if first.Source != "test" {
		t.Errorf("expected source name 'test', have %q", first.Source)
	}
	if second.Line != first.Line+1 {
		t.Errorf("expected second token on next line, have %s and %s", first, second)
	}
	eof := sc.NextToken()
	if eof.TokType() != scanner.EOF {
		t.Errorf("expected EOF, have %v", eof)
	}
	if eof.Span().From() != 4 {
		t.Errorf("expected EOF at offset 4, have %d", eof.Span().From())
	}
}

func TestLMTokenName(t *testing.T) {
	LM := makeAdapter(t)
	if n := LM.TokenName(gorll.TokType(tokenIds["NUM"])); n != "NUM" {
		t.Errorf("expected token name NUM, have %q", n)
	}
	if n := LM.TokenName(scanner.EOF); n != "EOF" {
		t.Errorf("expected token name EOF, have %q", n)
	}
}

func makeAdapter(t *testing.T) *LMAdapter {
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*\n?`), Skip)
		lexer.Add([]byte(`\"[^"]*\"`), MakeToken("STRING", tokenIds["STRING"]))
		lexer.Add([]byte(`#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`), MakeToken("ID", tokenIds["ID"]))
		lexer.Add([]byte(`[1-9][0-9]*`), MakeToken("NUM", tokenIds["NUM"]))
		lexer.Add([]byte(`( |\,|\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	return LM
}

var literals []string       // The tokens representing literal strings
var keywords []string       // The keyword tokens
var tokens []string         // All of the tokens (including literals and keywords)
var tokenIds map[string]int // A map from the token names to their int ids

func initTokens() {
	literals = []string{
		"(",
		")",
		"=",
		"+",
		"-",
		"*",
		"/",
	}
	keywords = []string{
		"nil",
	}
	tokens = []string{
		"ID",
		"NUM",
		"STRING",
	}
	tokens = append(tokens, keywords...)
	tokens = append(tokens, literals...)
	tokenIds = make(map[string]int)
	tokenIds["ID"] = scanner.Ident
	tokenIds["NUM"] = scanner.Int
	tokenIds["STRING"] = int(scanner.String)
	for i, tok := range tokens[3:] {
		tokenIds[tok] = i + 10
	}
}

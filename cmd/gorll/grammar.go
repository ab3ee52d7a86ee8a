package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/gorll/ll"
	"github.com/npillmayer/gorll/ll/ebnf"
	"github.com/npillmayer/gorll/ll/scanner"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// goTokens names the token types of the Go tokenizer for use in EBNF grammars.
var goTokens = ebnf.TokenTable{
	"ident":  scanner.Ident,
	"int":    scanner.Int,
	"float":  scanner.Float,
	"char":   scanner.Char,
	"string": scanner.String,
}

func loadGrammar(filename, start string) (*ebnf.FrontEnd, *ll.Parser, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("read grammar: %w", err)
	}
	fe := ebnf.New(goTokens, ebnf.SourceName(filepath.Base(filename)))
	if err := fe.Define(string(src)); err != nil {
		return nil, nil, err
	}
	if start == "" {
		names := fe.Rules().Names()
		if len(names) == 0 {
			return nil, nil, errors.New("grammar has no rules")
		}
		start = names[0]
		tracer().Infof("no start rule given, using %s", start)
	}
	p, err := fe.Compile(start)
	if err != nil {
		return nil, nil, err
	}
	p.Dump()
	return fe, p, nil
}

func newCheckCmd() *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Compile an EBNF grammar and print its lookahead table",
		Long: `Compile an EBNF grammar and print FIRST sets and nullability of every
grammar node, followed by the fingerprint of the compiled grammar.

Left recursion and lookahead conflicts are reported as errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := loadGrammar(args[0], start)
			if err != nil {
				return err
			}
			names := p.TokenNames()
			p.Each(func(g *ll.Grammar, lookahead *ll.TokenSet, nullable bool) {
				eps := ""
				if nullable {
					eps = "  ε"
				}
				name := g.Name()
				if name == "" {
					name = g.String()
				}
				pterm.Printf("%4d  %-8s  %-30s  %s%s\n", g.Serial(), g.Kind(), name,
					lookahead.Format(names), eps)
			})
			pterm.Info.Println(fmt.Sprintf("%d nodes, fingerprint %s", p.Size(), p.Fingerprint()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&start, "start", "s", "", "Start rule (default: first rule in alphabetical order)")
	return cmd
}

func newParseCmd() *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "parse FILE INPUT...",
		Short: "Parse input with an EBNF grammar and print the parse tree",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fe, p, err := loadGrammar(args[0], start)
			if err != nil {
				return err
			}
			input := strings.Join(args[1:], " ")
			tz := scanner.GoTokenizer("input", strings.NewReader(input))
			cur := ll.NewCursor(tz, ll.WithInput("input", input), ll.WithNames(fe.TokenName))
			v, err := p.Parse(cur)
			if err != nil {
				return err
			}
			if !cur.AtEOF() {
				return cur.Unexpected(ll.NewTokenSet(scanner.EOF))
			}
			tracer().Infof("consumed %d tokens", cur.Consumed())
			if tree, ok := v.(*ll.Tree); ok {
				renderTree(tree)
			} else {
				pterm.Info.Println("empty input")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&start, "start", "s", "", "Start rule (default: first rule in alphabetical order)")
	return cmd
}

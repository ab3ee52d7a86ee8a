/*
Command gorll is a command line tool for experiments with LL(1) grammars.

	gorll repl                          interactive calculator
	gorll check  FILE --start S         compile an EBNF grammar and print its lookahead table
	gorll parse  FILE --start S INPUT…  parse input with an EBNF grammar and print the parse tree

Grammars for check and parse are written in Go-style EBNF. Lexical names
ident, int, float, char and string denote the tokens of the Go tokenizer,
single-character literals stand for themselves.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gorll.cli'
func tracer() tracing.Trace {
	return tracing.Select("gorll.cli")
}

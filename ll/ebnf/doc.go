/*
Package ebnf creates LL(1) grammars from a textual grammar definition.

Grammars are written in the EBNF dialect of the Go language specification
(see golang.org/x/exp/ebnf):

    Query  = Clause { [ "OR" ] Clause } .
    Clause = [ "-" ] ( Term | "(" Query ")" ) .
    Term   = word [ ":" Value ] | phrase .
    Value  = word | phrase .

Names which are keys of the token table (like "word" above) and quoted literals
denote tokens; other names refer to rules. Literals not found in the token table
must consist of a single character, which is taken as its own token type, as
does the Go tokenizer of package scanner.

    fe := ebnf.New(ebnf.TokenTable{"word": scanner.Ident, "phrase": scanner.String, "OR": OR})
    err := fe.Define(src)
    parser, err := fe.Compile("Query")

By default, every rule produces an ll.Tree. Clients may replace this for
selected rules with a node factory of their own.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ebnf

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'gorll.ebnf'.
func tracer() tracing.Trace {
	return tracing.Select("gorll.ebnf")
}

/*
Package ll implements deterministic recursive-descent parsers, built from combinators.

Building a Grammar

Grammars are graphs of combinator nodes, created by a grammar builder object.
Terminals carry a token type, which is opaque to the parser and used for
comparison only. Non-terminals are sequences, choices and repetitions of other
nodes. Recursive rules are made possible by recursion nodes, which are bound to
their target after the target has been constructed.

Example:

    b := ll.NewGrammarBuilder("E")
    E := b.Recurse().Named("E")
    term := b.Token(scanner.Ident).Named("term")
    nested := b.Seq(b.Token('('), E, b.Token(')'))
    expr := b.Choice(term, nested)
    E.Bind(expr)                      // E  ->  term | ( E )

Sequence and repetition nodes reduce the values of their children to a single
value by calling a NodeFactory. A factory may return NoValue to have its result
left out of its parent's list of children.

Static Grammar Analysis

Before parsing, a grammar has to be compiled. Compilation computes FIRST sets
for every node of the grammar graph and determines all nodes which may match
the empty input. Grammars must be LL(1): alternatives of a choice must start with
distinct tokens, and no node may reach itself without consuming a token (left
recursion). Violations are reported as errors from Compile.

    parser, err := b.Compile(expr)    // or ll.Compile(expr)
    if err != nil {
        // LeftRecursionError, LookaheadConflictError, UnresolvedReferenceError
    }

Sequences are by default not checked for conflicts between an optional child and
its successors. An optional token followed by the same token therefore compiles
fine, but the optional child will always consume the token first. Option
StrictSequences (or configuration key "ll.strict-sequences") turns on the check.

Parsing

Parsers consume tokens from a TokenSource. Cursor is a TokenSource on top of a
scanner.Tokenizer.

    sc := scanner.GoTokenizer("input", strings.NewReader("((a))"))
    value, err := parser.Parse(ll.NewCursor(sc))

Parsing stops at the first unexpected token; the error is an UnexpectedTokenError
telling the expected token types and the position of the offending token.
Compiled parsers are immutable and may be used by concurrent goroutines, each
with its own token source.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'gorll.ll'.
func tracer() tracing.Trace {
	return tracing.Select("gorll.ll")
}

/*
Package gorll is a toolbox for deterministic recursive-descent parsing.

GoRLL builds LL(1) parsers from combinators: clients assemble a grammar as a graph
of token, sequence, choice, repetition and recursion nodes and compile it into an
executable parser. Grammar defects (left recursion, ambiguous lookahead) are detected
when compiling, not when parsing. Package structure is as follows:

■ ll: Package ll implements the grammar combinators, FIRST-set analysis and the
runtime parsers. Sub-packages provide scanners and a textual EBNF front end.

■ runtime: Package runtime provides unsophisticated supporting data types for
interpreter runtimes, e.g. symbol tables and scopes.

■ lang: Example languages, built on top of package ll.

■ cmd/gorll: A command line tool to check EBNF grammars, parse input and play
with the calculator language.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gorll

/*
Package runtime implements symbol tables and scopes for languages built with
package ll.

Symbols are named values of a small set of kinds. Symbol tables are attached
to scopes, and scopes link back to their parent, forming a tree. Resolving a
name searches the current scope first, then its ancestors.

    tree := &runtime.ScopeTree{}
    tree.PushNewScope("globals")
    sym, _ := tree.Current().Define("pi")
    sym.SetNumber(3.14159)

Example languages use scopes for variables; the EBNF front end uses a symbol
table for its rules.

For a thorough discussion of an interpreter's runtime environment, refer to
"Language Implementation Patterns" by Terence Parr.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package runtime

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'gorll.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("gorll.runtime")
}

/*
Package lr implements LR(0) grammar analysis: the grammar model, the
characteristic finite state machine (CFSM) and the ACTION/GOTO tables.

Reading a Grammar

Grammars are read from plain text, one group of rules per line. The left-hand
side is separated from the alternatives by '->' (or '=', if no arrow is
present), alternatives are separated by '|'. Symbols of an alternative are
separated by whitespace; if an alternative contains no whitespace, every
character is a symbol of its own. Symbols consisting of upper-case letters
are non-terminals, every other symbol is a terminal. '@' denotes an empty
right-hand side.

Example:

    g := lr.ParseGrammar("G", `
        S -> a A
        A -> b | @
    `)

This results in the following augmented grammar:

   g.Dump()

   0: [S'] ::= [S]
   1: [S] ::= [a A]
   2: [A] ::= [b]
   3: [A] ::= [@]

Rule 0 is inserted for the new start symbol S'. It is inserted only if the
grammar text is free of errors, see Grammar.Errors().

Parser Construction

A characteristic finite state machine (CFSM) is built from the grammar,
i.e. the canonical collection of LR(0) item sets. The CFSM will then be
transformed into a GOTO table and an ACTION table. Conflicts between actions
are not resolved but recorded; a grammar without conflicts is LR(0).

Example:

    ga, err := lr.Analysis(g)         // refuses grammars with errors
    lrgen := lr.NewTableGenerator(ga)
    err = lrgen.CreateTables()        // construct LR(0) parser tables
    if lrgen.HasConflicts { ... }     // see lrgen.Tables().Conflicts()

The CFSM is available to the client and may be exported to Graphviz's
Dot-format.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrzero.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrzero.lr")
}

/*
Command lr0 is a command line tool for studying LR(0) grammars. It reads a
grammar, builds the CFSM and the parse tables, reports conflicts and traces
the parse of input strings step by step.

	lr0 analyze grammar.txt ab abb     # grammar info, tables, traces
	lr0 table grammar.txt              # ACTION/GOTO tables only
	lr0 dot grammar.txt > cfsm.dot     # CFSM in Graphviz Dot format
	lr0 repl                           # interactive mode

A grammar file holds one group of rules per line, e.g.

	S -> a A
	A -> b | @

Defaults for the step limit, the tokenizer mode and the trace level may be
kept in a TOML file (see flag --config).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrzero.cli'
func tracer() tracing.Trace {
	return tracing.Select("lrzero.cli")
}

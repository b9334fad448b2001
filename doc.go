/*
Package lrzero is a toolbox for studying LR(0) grammars.

It builds the canonical collection of LR(0) item sets for a context-free
grammar, derives ACTION and GOTO tables from it, reports shift/reduce and
reduce/reduce conflicts and drives table-based shift-reduce parses of
candidate input strings, recording every step of the parse.
Package structure is as follows:

■ lr: Package lr implements the grammar model, the characteristic finite
state machine (CFSM) and the LR(0) parser tables.

■ lr/lr0: Package lr0 implements a shift-reduce parser driven by LR(0) tables.

■ lr/scanner: Package scanner splits candidate input strings into terminals.

■ lr/report: Package report bundles a complete analysis into plain data.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lrzero

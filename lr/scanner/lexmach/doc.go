/*
Package lexmach provides an adapter to use the lexmachine scanner generator for
tokenizing input of LR(0) parsers.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

The usual way to use this package is to let it derive a scanner from the
terminals of a grammar. Every terminal becomes a literal pattern, white space
is skipped and every other character is delivered as a token of type
Unknown, which no parser table will accept:

	LM, err := lexmach.TerminalTokenizer(g)
	if err != nil {
		// do error handling
	}
	scan, err := LM.Scanner("id + ( id )")

Longest match applies, so for a grammar with terminals "i" and "id", input
"id" results in a single token.

Clients who need more liberty in how to set up lexmachine may use
NewLMAdapter with an init function adding further patterns:

	init := func(lexer *lexmachine.Lexer) {
		// lexmach.Skip      is a pre-defined action which ignores the scanned match
		// lexmach.MakeToken is a pre-defined action which wraps a scanned match into a
		//                   token
	}
	LM, err := NewLMAdapter(init, literals, tokenIds)

A scanner is instantiated for each concrete input sequence and implements the
scanner.Tokenizer interface.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach

package lrzero

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// --- Symbol conventions ----------------------------------------------------

// Grammars are written as plain text, where symbols follow a couple of
// conventions. These are shared between the grammar, the parser and the
// presentation layer.
const (
	EndMarker   = "$" // terminal appended to every input and to the start rule
	EndGlyph    = "#" // how EndMarker is displayed to users
	EmptyMarker = "@" // explicit empty right-hand side
	EmptyGlyph  = "ε" // how an empty right-hand side is displayed
	Dot         = "•" // marks the position of the dot within an item
	StartSuffix = "'" // appended to the start symbol for the augmented grammar
)

// Displayed returns sym with the end marker replaced by its display glyph.
func Displayed(sym string) string {
	if sym == EndMarker {
		return EndGlyph
	}
	return sym
}

// DisplayString replaces every end marker in s by its display glyph.
func DisplayString(s string) string {
	return strings.ReplaceAll(s, EndMarker, EndGlyph)
}

// JoinSymbols concatenates symbols for display. Single-character symbols are
// written without separator, as in "aAb", otherwise symbols are separated by
// blanks.
func JoinSymbols(syms []string) string {
	sep := ""
	for _, sym := range syms {
		if utf8.RuneCountInString(sym) > 1 {
			sep = " "
			break
		}
	}
	return strings.Join(syms, sep)
}

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. Tokenizers decide about the
// numbering, the only pre-defined value is EOF.
type TokType int

// EOF is the token type signalling the end of input. It is identical to
// text/scanner.EOF.
const EOF TokType = -1

// Tokens represent input tokens. They are produced by a tokenizer and
// reflect terminals in a grammar.
//
// An example would be a token for an identifier terminal:
//
//    TokType = 3           // index of the terminal (tokenizer specific)
//    Lexeme  = "id"        // the terminal as it is named in the grammar
//    Span    = 4…6         // occured from position 4 in the input string
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run.
// A span denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

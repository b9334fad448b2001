/*
Package scanner defines an interface for tokenizers feeding the LR(0) parser
of package lr0.

The parser identifies terminals by the lexeme of a token. Two tokenizers are
provided here: (1) a character tokenizer, a thin wrapper over the Go std lib
'text/scanner', which delivers every character of the input as a token of its
own, and (2) a symbol tokenizer for input which has already been split into
terminals. A third tokenizer, based on lexmachine, lives in sub-package
`lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"strings"
	"text/scanner"

	"github.com/npillmayer/lrzero"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrzero.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrzero.scanner")
}

// EOF is identical to text/scanner.EOF.
const EOF = lrzero.EOF

// Tokenizer is a scanner interface. After the end of input has been reached,
// NextToken keeps returning tokens of type EOF.
type Tokenizer interface {
	NextToken() lrzero.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Character tokenizer ---------------------------------------------------

// CharTokenizer is a tokenizer which delivers every character of the input
// as a token, including white space. The token type is the character's code
// point. Create one with NewCharTokenizer.
type CharTokenizer struct {
	scanner.Scanner
	Error func(error) // error handler
}

var _ Tokenizer = (*CharTokenizer)(nil)

// NewCharTokenizer creates a tokenizer splitting input into characters.
func NewCharTokenizer(sourceID string, input io.Reader) *CharTokenizer {
	t := &CharTokenizer{Error: logError}
	t.Init(input)
	t.Filename = sourceID
	t.Mode = 0       // no identifiers, numbers, strings etc.
	t.Whitespace = 0 // white space is significant
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	return t
}

// CharTokenizerFor is a shortcut to create a character tokenizer for a string.
func CharTokenizerFor(input string) *CharTokenizer {
	return NewCharTokenizer("input", strings.NewReader(input))
}

// SetErrorHandler sets an error handler for the scanner.
func (t *CharTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *CharTokenizer) NextToken() lrzero.Token {
	r := t.Scan()
	if r == scanner.EOF {
		tracer().Debugf("CharTokenizer reached end of input")
		pos := uint64(t.Pos().Offset)
		return MakeDefaultToken(EOF, "", lrzero.Span{pos, pos})
	}
	return MakeDefaultToken(
		lrzero.TokType(r),
		t.TokenText(),
		lrzero.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	)
}

// --- Symbol tokenizer ------------------------------------------------------

// SymbolTokenizer delivers a pre-split sequence of symbols. The token type of
// a symbol is its index within the sequence, spans count symbols.
type SymbolTokenizer struct {
	symbols []string
	pos     int
	Error   func(error)
}

var _ Tokenizer = (*SymbolTokenizer)(nil)

// NewSymbolTokenizer creates a tokenizer for a sequence of symbols.
func NewSymbolTokenizer(symbols []string) *SymbolTokenizer {
	return &SymbolTokenizer{symbols: symbols, Error: logError}
}

// FieldsTokenizer creates a tokenizer for the white-space separated fields
// of input.
func FieldsTokenizer(input string) *SymbolTokenizer {
	return NewSymbolTokenizer(strings.Fields(input))
}

// SetErrorHandler sets an error handler for the scanner. A symbol tokenizer
// never reports errors.
func (t *SymbolTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *SymbolTokenizer) NextToken() lrzero.Token {
	if t.pos >= len(t.symbols) {
		p := uint64(len(t.symbols))
		return MakeDefaultToken(EOF, "", lrzero.Span{p, p})
	}
	p := t.pos
	t.pos++
	return MakeDefaultToken(lrzero.TokType(p), t.symbols[p], lrzero.Span{uint64(p), uint64(p + 1)})
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for all
// the tokenizers of this module.
type DefaultToken struct {
	kind   lrzero.TokType
	lexeme string
	Val    interface{}
	span   lrzero.Span
}

// MakeDefaultToken creates a token.
func MakeDefaultToken(typ lrzero.TokType, lexeme string, span lrzero.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

// TokType is part of interface lrzero.Token.
func (t DefaultToken) TokType() lrzero.TokType {
	return t.kind
}

// Value returns a client-supplied value, if any.
func (t DefaultToken) Value() interface{} {
	return t.Val
}

// Lexeme is part of interface lrzero.Token.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span is part of interface lrzero.Token.
func (t DefaultToken) Span() lrzero.Span {
	return t.span
}

func (t DefaultToken) String() string {
	if t.kind == EOF {
		return "<EOF>"
	}
	return fmt.Sprintf("%q%v", t.lexeme, t.span)
}

// Lexemes reads all tokens from a tokenizer, up to EOF, and returns their
// lexemes.
func Lexemes(t Tokenizer) []string {
	var lexemes []string
	for tok := t.NextToken(); tok.TokType() != EOF; tok = t.NextToken() {
		lexemes = append(lexemes, tok.Lexeme())
	}
	return lexemes
}

package scanner

import (
	"strings"
	"testing"

	"github.com/npillmayer/lrzero"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"",
	"a",
	"ab",
	"i+(i+i)",
	"a b",
	"äß€",
}

var tokenCounts = []int{0, 1, 2, 7, 3, 3}

func TestCharTokenizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		scan := NewCharTokenizer("test", strings.NewReader(input))
		token := scan.NextToken()
		count := 0
		for token.TokType() != EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = scan.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestCharTokenizerKeepsWhitespace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.scanner")
	defer teardown()
	//
	lexemes := Lexemes(CharTokenizerFor("a b\t"))
	expected := []string{"a", " ", "b", "\t"}
	if strings.Join(lexemes, "|") != strings.Join(expected, "|") {
		t.Errorf("expected lexemes %q, got %q", expected, lexemes)
	}
}

func TestCharTokenizerEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.scanner")
	defer teardown()
	//
	scan := CharTokenizerFor("x")
	scan.NextToken()
	for i := 0; i < 3; i++ {
		if tok := scan.NextToken(); tok.TokType() != EOF {
			t.Fatalf("expected EOF after end of input, got %v", tok)
		}
	}
}

func TestCharTokenizerSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.scanner")
	defer teardown()
	//
	scan := CharTokenizerFor("aä")
	tok := scan.NextToken()
	if tok.Span() != (lrzero.Span{0, 1}) {
		t.Errorf("expected span (0…1) for 'a', got %v", tok.Span())
	}
	tok = scan.NextToken()
	if tok.Span() != (lrzero.Span{1, 3}) { // byte offsets
		t.Errorf("expected span (1…3) for 'ä', got %v", tok.Span())
	}
}

func TestFieldsTokenizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.scanner")
	defer teardown()
	//
	scan := FieldsTokenizer("  id + ( id )  ")
	lexemes := Lexemes(scan)
	if len(lexemes) != 5 || lexemes[0] != "id" || lexemes[4] != ")" {
		t.Errorf("unexpected lexemes %q", lexemes)
	}
	if tok := scan.NextToken(); tok.TokType() != EOF || tok.Span().From() != 5 {
		t.Errorf("expected EOF at position 5, got %v", tok)
	}
}

package lexmach

import (
	"strings"
	"testing"

	"github.com/npillmayer/lrzero/lr"
	"github.com/npillmayer/lrzero/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"",
	"x",
	"begin x ; x end",
	"beginx;xend",
	"begin\nx\tend",
	"begin y end",
}

var tokenCounts = []int{0, 1, 5, 5, 3, 3}

// Alternatives without white space are split into characters, so "x" is a
// terminal, but "begin" is only a terminal because it is followed by other symbols.
func blockGrammar(t *testing.T) *lr.Grammar {
	g := lr.ParseGrammar("block", `
		S -> begin L end
		L -> L ; x | x
	`)
	if err := g.Err(); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.scanner")
	defer teardown()
	//
	LM, err := TerminalTokenizer(blockGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		token := sc.NextToken()
		count := 0
		for token.TokType() != scanner.EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = sc.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestLMUnknownInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.scanner")
	defer teardown()
	//
	LM, err := TerminalTokenizer(blockGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	sc, _ := LM.Scanner("x ; y")
	sc.NextToken()
	sc.NextToken()
	tok := sc.NextToken()
	if tok.TokType() != Unknown || tok.Lexeme() != "y" {
		t.Errorf("expected unknown token 'y', got %d/%q", tok.TokType(), tok.Lexeme())
	}
	if tok.Span().From() != 4 || tok.Span().To() != 5 {
		t.Errorf("expected span (4…5), got %v", tok.Span())
	}
}

func TestLMLongestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.scanner")
	defer teardown()
	//
	g := lr.ParseGrammar("longest", "S -> i S | id x")
	LM, err := TerminalTokenizer(g)
	if err != nil {
		t.Fatal(err)
	}
	sc, err := LM.Scanner("iidx")
	if err != nil {
		t.Fatal(err)
	}
	lexemes := scanner.Lexemes(sc)
	if strings.Join(lexemes, " ") != "i id x" {
		t.Errorf("expected lexemes [i id x], got %q", lexemes)
	}
}

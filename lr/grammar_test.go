package lr

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/pkg/errors"
)

func TestGrammarParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := ParseGrammar("G", `
		S -> a A
		A -> b | @
	`)
	if err := g.Err(); err != nil {
		t.Fatal(err)
	}
	g.Dump()
	if g.Size() != 4 {
		t.Fatalf("expected 4 rules (including S'), have %d", g.Size())
	}
	if g.Start() != "S'" || g.Rule(0).String() != "S' -> S" {
		t.Errorf("expected augmented start rule S' -> S, have %v", g.Rule(0))
	}
	if r := g.Rule(1); r.LHS != "S" || strings.Join(r.RHS(), " ") != "a A" {
		t.Errorf("expected rule 1 to be S -> a A, is %v", r)
	}
	if !g.Rule(3).IsEpsilon() || g.Rule(3).Len() != 0 || g.Rule(3).Display() != "ε" {
		t.Errorf("expected rule 3 to be an epsilon rule, is %v", g.Rule(3))
	}
	if strings.Join(g.Terminals(), ",") != "$,a,b" {
		t.Errorf("unexpected terminals %v", g.Terminals())
	}
	if strings.Join(g.NonTerminals(), ",") != "A,S,S'" {
		t.Errorf("unexpected non-terminals %v", g.NonTerminals())
	}
	if g.IsTerminal("@") || g.IsNonTerminal("@") {
		t.Errorf("empty marker must not be a grammar symbol")
	}
}

func TestGrammarSeparators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := ParseGrammar("G", "S = x -> y\nno rule here\nS -> a=b")
	if err := g.Err(); err != nil {
		t.Fatal(err)
	}
	// "S = x -> y" contains '->', so it is split there, with LHS "S = x"
	if g.Rule(1).LHS != "S = x" {
		t.Errorf("expected split at first '->', LHS is %q", g.Rule(1).LHS)
	}
	if r := g.Rule(2); strings.Join(r.RHS(), " ") != "a = b" {
		t.Errorf("expected a=b to be split into characters, is %v", r)
	}
	if g.Size() != 3 {
		t.Errorf("expected line without separator to be skipped, have %d rules", g.Size())
	}
}

func TestGrammarMultiCharSymbols(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := ParseGrammar("G", "EXPR -> EXPR + id | id")
	if err := g.Err(); err != nil {
		t.Fatal(err)
	}
	if strings.Join(g.Rule(1).RHS(), "|") != "EXPR|+|id" {
		t.Errorf("unexpected RHS %v", g.Rule(1).RHS())
	}
	if r := g.Rule(2); strings.Join(r.RHS(), "|") != "i|d" {
		t.Errorf("expected 'id' without white space to be split into characters, is %v", r.RHS())
	}
	if !g.IsTerminal("id") || !g.IsTerminal("i") || !g.IsNonTerminal("EXPR") {
		t.Errorf("unexpected symbol classification: %v / %v", g.Terminals(), g.NonTerminals())
	}
}

func TestGrammarClassification(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	for sym, upper := range map[string]bool{
		"A": true, "E1": true, "S'": true, "AB_C": true,
		"a": false, "Ab": false, "1": false, "+": false, "": false,
	} {
		if isUpperName(sym) != upper {
			t.Errorf("isUpperName(%q) should be %v", sym, upper)
		}
	}
}

func TestGrammarErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := ParseGrammar("G", "S -> a | \nA -> b\n -> c")
	errs := g.Errors()
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, have %d: %v", len(errs), errs)
	}
	if errs[0].Line != 1 || errs[0].LHS != "S" {
		t.Errorf("expected first error in line 1 for S, is %v", errs[0])
	}
	if errs[1].Line != 3 {
		t.Errorf("expected second error in line 3, is %v", errs[1])
	}
	if g.IsAugmented() {
		t.Errorf("grammar with errors must not be augmented")
	}
	if g.Size() != 2 { // S -> a, A -> b
		t.Errorf("expected remaining alternatives to be read, have %d rules", g.Size())
	}
	if errors.Cause(g.Err()) != ErrGrammarInvalid {
		t.Errorf("expected Err() to wrap ErrGrammarInvalid, is %v", g.Err())
	}
	if _, err := Analysis(g); errors.Cause(err) != ErrGrammarInvalid {
		t.Errorf("expected analysis to refuse grammar, err = %v", err)
	}
}

func TestGrammarEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := ParseGrammar("G", "\n   \n")
	if len(g.Errors()) != 1 {
		t.Errorf("expected an error for empty grammar, have %v", g.Errors())
	}
}

func TestGrammarStartNameClash(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := ParseGrammar("G", "S -> S' a | b\nS' -> c")
	if err := g.Err(); err != nil {
		t.Fatal(err)
	}
	if g.Start() != "S''" {
		t.Errorf("expected fresh start symbol S'', have %q", g.Start())
	}
}

func TestGrammarMatchRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := ParseGrammar("G", "S -> a | a | b")
	r, inx := g.MatchRule("S", []string{"a"})
	if inx != 1 || r != g.Rule(1) {
		t.Errorf("expected first matching rule 1, have %d", inx)
	}
	if _, inx = g.MatchRule("S", []string{"c"}); inx != -1 {
		t.Errorf("expected no match for S -> c, have %d", inx)
	}
}

func TestGrammarCheck(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := ParseGrammar("G", "S -> a A\nA -> b | @")
	if err := g.Check(); err != nil {
		t.Errorf("expected clean grammar, have %v", err)
	}
	g = ParseGrammar("G", "S -> a B")
	if err := g.Check(); err == nil || !strings.Contains(err.Error(), "missing production B") {
		t.Errorf("expected missing production B, have %v", err)
	}
	g = ParseGrammar("G", "S -> a\nX -> b")
	if err := g.Check(); err == nil || !strings.Contains(err.Error(), "unreachable") {
		t.Errorf("expected X to be unreachable, have %v", err)
	}
}

func TestGrammarDiagnosticsComplete(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	expected := []string{
		"line 5: missing production B",
		"line 2: X is unreachable",
		"line 3: Y is unreachable",
		"line 4: Z is unreachable",
	}
	for run := 0; run < 10; run++ {
		g := ParseGrammar("G", "S -> a\nX -> b\nY -> c\nZ -> d\nZ -> B")
		diags := g.Diagnostics()
		if strings.Join(diags, "|") != strings.Join(expected, "|") {
			t.Fatalf("unexpected diagnostics %v", diags)
		}
	}
}

func TestGrammarComments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := ParseGrammar("G", "# S -> b\nS -> a\n   # A -> c")
	if err := g.Err(); err != nil {
		t.Fatal(err)
	}
	if g.Size() != 2 || g.IsNonTerminal("#") {
		t.Errorf("expected comment lines to be skipped, have rules %v", g.Rules())
	}
}

func TestGrammarLowerCaseLHS(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	g := ParseGrammar("G", "S -> a b\nb -> c")
	if strings.Join(g.Terminals(), " ") != "$ a c" {
		t.Errorf("expected terminals $ a c, have %v", g.Terminals())
	}
	if !g.IsNonTerminal("b") || g.IsTerminal("b") {
		t.Errorf("expected b to be a non-terminal only")
	}
	if !IsRuleLine("A = b") || IsRuleLine("ab") {
		t.Errorf("IsRuleLine does not recognize separators")
	}
}

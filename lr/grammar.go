package lr

import (
	"fmt"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/lrzero"
	"github.com/pkg/errors"
	"golang.org/x/exp/ebnf"
)

// === Rules =================================================================

// Rule is a type for rules of a grammar. Rules cannot be shared between grammars.
// The serial number of a rule is its index within the grammar and is used by
// reduce actions.
type Rule struct {
	Serial int      // order number of this rule within a grammar
	LHS    string   // symbol of left hand side
	rhs    []string // right hand side symbols
	Line   int      // line of the grammar text the rule stems from
}

// RHS gets the right hand side of a rule as a shallow copy. Clients should
// treat it as read-only.
func (r *Rule) RHS() []string {
	dup := make([]string, len(r.rhs))
	copy(dup, r.rhs)
	return dup
}

// IsEpsilon is true for a rule with the empty marker as its sole RHS symbol.
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 1 && r.rhs[0] == lrzero.EmptyMarker
}

// Len returns the number of symbols a reduce by this rule pops from the
// parse stack, i.e. 0 for epsilon rules.
func (r *Rule) Len() int {
	if r.IsEpsilon() {
		return 0
	}
	return len(r.rhs)
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.LHS, strings.Join(r.rhs, " "))
}

// Display returns the RHS of a rule for users, with an empty RHS shown as ε.
func (r *Rule) Display() string {
	if r.IsEpsilon() || len(r.rhs) == 0 {
		return lrzero.EmptyGlyph
	}
	return strings.Join(r.rhs, " ")
}

// matches is true if r has left hand side lhs and right hand side rhs.
func (r *Rule) matches(lhs string, rhs []string) bool {
	if r.LHS != lhs || len(r.rhs) != len(rhs) {
		return false
	}
	for i, sym := range r.rhs {
		if rhs[i] != sym {
			return false
		}
	}
	return true
}

// === Grammars ==============================================================

// Grammar is a type for a context free grammar read from text. Create one
// with ParseGrammar. A grammar is immutable after it has been read.
type Grammar struct {
	Name         string
	rules        []*Rule
	terminals    *treeset.Set
	nonterminals *treeset.Set
	start        string // start symbol, S' after augmentation
	augmented    bool
	errors       []*GrammarError
}

func newGrammar(name string) *Grammar {
	return &Grammar{
		Name:         name,
		rules:        make([]*Rule, 0, 16),
		terminals:    treeset.NewWithStringComparator(),
		nonterminals: treeset.NewWithStringComparator(),
	}
}

// ParseGrammar reads a grammar from text. Lines starting with '#' are
// comments. Syntax errors are collected and available through Errors().
// Only if no error occured, the grammar is augmented by a new start rule
//
//    S' -> S
//
// which becomes rule 0.
func ParseGrammar(name string, text string) *Grammar {
	g := newGrammar(name)
	for i, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		g.parseLine(i+1, line)
	}
	for _, A := range g.nonterminals.Values() { // symbols with rules are never terminals
		g.terminals.Remove(A)
	}
	if len(g.rules) == 0 && len(g.errors) == 0 {
		g.addError(0, "", "grammar does not contain any rules")
	}
	if len(g.errors) == 0 {
		g.augment()
	} else {
		tracer().Infof("grammar %q has %d error(s), will not be augmented", name, len(g.errors))
	}
	return g
}

// IsRuleLine is true if line contains a rule separator, "->" or "=".
// Other lines are skipped by ParseGrammar.
func IsRuleLine(line string) bool {
	return strings.Contains(line, "->") || strings.Contains(line, "=")
}

func (g *Grammar) parseLine(lineno int, line string) {
	if !IsRuleLine(line) {
		tracer().Debugf("line %d has no rule separator, skipping", lineno)
		return
	}
	sep := "->"
	if !strings.Contains(line, sep) {
		sep = "="
	}
	at := strings.Index(line, sep)
	lhs := strings.TrimSpace(line[:at])
	if lhs == "" {
		g.addError(lineno, lhs, fmt.Sprintf("rule '%s' has no left-hand side", line))
		return
	}
	g.nonterminals.Add(lhs)
	if g.start == "" {
		g.start = lhs
	}
	for _, alt := range strings.Split(line[at+len(sep):], "|") {
		rhs := splitAlternative(alt)
		if len(rhs) == 0 {
			g.addError(lineno, lhs, fmt.Sprintf("right-hand side of '%s -> ' is empty, use '%s' to denote the empty string",
				lhs, lrzero.EmptyMarker))
			continue
		}
		g.rules = append(g.rules, &Rule{
			Serial: len(g.rules),
			LHS:    lhs,
			rhs:    rhs,
			Line:   lineno,
		})
		for _, sym := range rhs {
			if isTerminalName(sym) {
				g.terminals.Add(sym)
			}
		}
	}
}

// An alternative containing whitespace is split at whitespace, otherwise every
// character is a symbol.
func splitAlternative(alt string) []string {
	alt = strings.TrimSpace(alt)
	if strings.IndexFunc(alt, unicode.IsSpace) >= 0 {
		return strings.Fields(alt)
	}
	syms := make([]string, 0, len(alt))
	for _, r := range alt {
		syms = append(syms, string(r))
	}
	return syms
}

// isUpperName is true if name contains at least one cased letter and all of
// its cased letters are upper case.
func isUpperName(name string) bool {
	cased := false
	for _, r := range name {
		if unicode.IsLower(r) || unicode.IsTitle(r) {
			return false
		} else if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

func isTerminalName(sym string) bool {
	return sym != lrzero.EmptyMarker && !isUpperName(sym)
}

func (g *Grammar) addError(lineno int, lhs string, msg string) {
	e := &GrammarError{Line: lineno, LHS: lhs, Msg: msg}
	tracer().Errorf("grammar %q: %v", g.Name, e)
	g.errors = append(g.errors, e)
}

// augment inserts S' -> S as rule 0. It must not be called more than once.
func (g *Grammar) augment() {
	if g.augmented {
		panic("grammar has already been augmented")
	}
	start := g.start + lrzero.StartSuffix
	for g.nonterminals.Contains(start) || g.terminals.Contains(start) {
		start += lrzero.StartSuffix
	}
	r0 := &Rule{LHS: start, rhs: []string{g.start}}
	g.rules = append([]*Rule{r0}, g.rules...)
	for i, r := range g.rules {
		r.Serial = i
	}
	g.nonterminals.Add(start)
	g.terminals.Add(lrzero.EndMarker)
	g.start = start
	g.augmented = true
}

// --- Accessors -------------------------------------------------------------

// Errors returns the syntax errors found while reading the grammar.
func (g *Grammar) Errors() []*GrammarError {
	return g.errors
}

// Err returns nil for a grammar without syntax errors, and an error
// wrapping ErrGrammarInvalid otherwise.
func (g *Grammar) Err() error {
	if len(g.errors) == 0 {
		return nil
	}
	msgs := make([]string, len(g.errors))
	for i, e := range g.errors {
		msgs[i] = e.Error()
	}
	return errors.Wrap(ErrGrammarInvalid, strings.Join(msgs, "; "))
}

// IsAugmented is true if rule 0 is the augmented start rule.
func (g *Grammar) IsAugmented() bool {
	return g.augmented
}

// Start returns the start symbol. For an augmented grammar this is S'.
func (g *Grammar) Start() string {
	return g.start
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule gets a grammar rule by serial number.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// Rules returns all rules, ordered by serial number.
func (g *Grammar) Rules() []*Rule {
	return g.rules
}

// Terminals returns the terminals of the grammar, sorted.
func (g *Grammar) Terminals() []string {
	return stringValues(g.terminals)
}

// NonTerminals returns the non-terminals of the grammar, sorted.
func (g *Grammar) NonTerminals() []string {
	return stringValues(g.nonterminals)
}

// IsTerminal is true if sym is a terminal of g.
func (g *Grammar) IsTerminal(sym string) bool {
	return g.terminals.Contains(sym)
}

// IsNonTerminal is true if sym is a non-terminal of g.
func (g *Grammar) IsNonTerminal(sym string) bool {
	return g.nonterminals.Contains(sym)
}

// FindNonTermRules returns all rules with LHS A, ordered by serial number.
func (g *Grammar) FindNonTermRules(A string) []*Rule {
	var rules []*Rule
	for _, r := range g.rules {
		if r.LHS == A {
			rules = append(rules, r)
		}
	}
	return rules
}

// MatchRule finds the first rule with a given LHS and RHS. Returns the rule
// and its serial number, or (nil, -1) if no rule matches.
func (g *Grammar) MatchRule(lhs string, rhs []string) (*Rule, int) {
	for i, r := range g.rules {
		if r.matches(lhs, rhs) {
			return r, i
		}
	}
	return nil, -1
}

// Dump is a debugging helper, tracing all rules of g.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ---------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: [%s] ::= [%s]", r.Serial, r.LHS, strings.Join(r.rhs, " "))
	}
	tracer().Debugf("terminals     = %v", g.Terminals())
	tracer().Debugf("non-terminals = %v", g.NonTerminals())
	tracer().Debugf("-------------------------------------------")
}

func stringValues(set *treeset.Set) []string {
	values := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		values = append(values, v.(string))
	}
	return values
}

// === Grammar Check =========================================================

// Check looks for defects of a grammar which do not prevent building an
// automaton. It folds the messages of Diagnostics into one error, or returns
// nil for a clean grammar.
func (g *Grammar) Check() error {
	diags := g.Diagnostics()
	if len(diags) == 0 {
		return nil
	}
	tracer().Infof("grammar %q: %d diagnostic(s)", g.Name, len(diags))
	return errors.New(strings.Join(diags, "; "))
}

// Diagnostics lists symbols used as non-terminals without any rule, followed
// by non-terminals unreachable from the start symbol. Both groups are sorted
// by symbol. The grammar is converted to EBNF productions for the analysis.
func (g *Grammar) Diagnostics() []string {
	eg, start := g.ebnfGrammar()
	if eg == nil {
		return nil
	}
	missing := make(map[string]scanner.Position)
	for _, prod := range eg {
		walkNames(prod.Expr, func(x *ebnf.Name) {
			if _, ok := eg[x.String]; ok {
				return
			}
			if pos, ok := missing[x.String]; !ok || x.StringPos.Line < pos.Line {
				missing[x.String] = x.StringPos
			}
		})
	}
	reached := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		prod := eg[queue[0]]
		queue = queue[1:]
		if prod == nil {
			continue
		}
		walkNames(prod.Expr, func(x *ebnf.Name) {
			if !reached[x.String] {
				reached[x.String] = true
				queue = append(queue, x.String)
			}
		})
	}
	var diags []string
	names := treeset.NewWithStringComparator()
	for name := range missing {
		names.Add(name)
	}
	for _, name := range stringValues(names) {
		diags = append(diags, fmt.Sprintf("line %d: missing production %s", missing[name].Line, name))
	}
	names.Clear()
	for name := range eg {
		if !reached[name] {
			names.Add(name)
		}
	}
	for _, name := range stringValues(names) {
		diags = append(diags, fmt.Sprintf("line %d: %s is unreachable", eg[name].Name.StringPos.Line, name))
	}
	return diags
}

// ebnfGrammar converts the rules of g, without the augmented start rule.
func (g *Grammar) ebnfGrammar() (ebnf.Grammar, string) {
	rules, start := g.rules, g.start
	if g.augmented {
		rules, start = g.rules[1:], g.rules[0].rhs[0]
	}
	if len(rules) == 0 {
		return nil, ""
	}
	eg := ebnf.Grammar{}
	for _, r := range rules {
		prod, ok := eg[r.LHS]
		if !ok {
			prod = &ebnf.Production{Name: &ebnf.Name{StringPos: g.position(r.Line), String: r.LHS}}
			eg[r.LHS] = prod
		}
		seq := g.ebnfSequence(r)
		switch x := prod.Expr.(type) {
		case nil:
			prod.Expr = seq
		case ebnf.Alternative:
			prod.Expr = append(x, seq)
		default:
			prod.Expr = ebnf.Alternative{x, seq}
		}
	}
	return eg, start
}

func (g *Grammar) ebnfSequence(r *Rule) ebnf.Expression {
	if r.IsEpsilon() {
		return &ebnf.Token{StringPos: g.position(r.Line), String: ""}
	}
	seq := make(ebnf.Sequence, 0, len(r.rhs))
	for _, sym := range r.rhs {
		if isUpperName(sym) || g.IsNonTerminal(sym) {
			seq = append(seq, &ebnf.Name{StringPos: g.position(r.Line), String: sym})
		} else {
			seq = append(seq, &ebnf.Token{StringPos: g.position(r.Line), String: sym})
		}
	}
	if len(seq) == 1 {
		return seq[0]
	}
	return seq
}

func (g *Grammar) position(line int) scanner.Position {
	return scanner.Position{Filename: g.Name, Line: line, Column: 1}
}

// walkNames calls f for every name referenced in x.
func walkNames(x ebnf.Expression, f func(*ebnf.Name)) {
	switch x := x.(type) {
	case ebnf.Alternative:
		for _, e := range x {
			walkNames(e, f)
		}
	case ebnf.Sequence:
		for _, e := range x {
			walkNames(e, f)
		}
	case *ebnf.Name:
		f(x)
	}
}

package lr

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/lrzero"
	"github.com/npillmayer/lrzero/lr/sparse"
	"github.com/pkg/errors"
)

// === Actions ===============================================================

// ActionKind is the kind of an entry of the ACTION table.
type ActionKind uint8

// Kinds of actions.
const (
	NoAction       ActionKind = iota // empty table entry
	ShiftAction                      // shift and go to a state
	ReduceAction                     // reduce by a rule
	AcceptAction                     // accept the input
	ConflictAction                   // more than one action for a table entry
)

// Action is an entry of the ACTION table. Shift actions carry the
// destination state, reduce actions the serial number of a rule. A conflict
// action carries all colliding actions.
type Action struct {
	Kind   ActionKind
	Target int      // state for shift actions, rule for reduce actions
	alts   []Action // colliding actions, for conflicts only
}

// Shift creates a shift action.
func Shift(state int) Action {
	return Action{Kind: ShiftAction, Target: state}
}

// Reduce creates a reduce action.
func Reduce(rule int) Action {
	return Action{Kind: ReduceAction, Target: rule}
}

// Accept creates an accept action.
func Accept() Action {
	return Action{Kind: AcceptAction}
}

// IsNone is true for an empty table entry.
func (a Action) IsNone() bool {
	return a.Kind == NoAction
}

// Alternatives returns the colliding actions of a conflict, or the action
// itself otherwise.
func (a Action) Alternatives() []Action {
	if a.Kind != ConflictAction {
		return []Action{a}
	}
	alts := make([]Action, len(a.alts))
	copy(alts, a.alts)
	return alts
}

// Equals compares two actions.
func (a Action) Equals(b Action) bool {
	if a.Kind != b.Kind || a.Target != b.Target || len(a.alts) != len(b.alts) {
		return false
	}
	for i := range a.alts {
		if !a.alts[i].Equals(b.alts[i]) {
			return false
		}
	}
	return true
}

// includes is true if b is a or one of the actions of conflict a.
func (a Action) includes(b Action) bool {
	if a.Equals(b) {
		return true
	}
	for _, alt := range a.alts {
		if alt.Equals(b) {
			return true
		}
	}
	return false
}

// combine creates a conflict action from a and b.
func (a Action) combine(b Action) Action {
	alts := append(a.Alternatives(), b.Alternatives()...)
	return Action{Kind: ConflictAction, alts: alts}
}

func (a Action) String() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("s%d", a.Target)
	case ReduceAction:
		return fmt.Sprintf("r%d", a.Target)
	case AcceptAction:
		return "acc"
	case ConflictAction:
		s := make([]string, len(a.alts))
		for i, alt := range a.alts {
			s[i] = alt.String()
		}
		return strings.Join(s, "/")
	}
	return "<none>"
}

// === Conflicts =============================================================

// ConflictKind classifies a conflict.
type ConflictKind uint8

// Kinds of conflicts.
const (
	ShiftReduce  ConflictKind = iota // shift collides with reduce or accept
	ReduceReduce                     // two different reduce actions collide
	AcceptReduce                     // accept collides with reduce
)

func (k ConflictKind) String() string {
	switch k {
	case ShiftReduce:
		return "shift/reduce"
	case ReduceReduce:
		return "reduce/reduce"
	}
	return "accept/reduce"
}

// Conflict records a collision of actions for an entry of the ACTION table.
type Conflict struct {
	State  int    // state of the table entry
	Symbol string // terminal of the table entry
	Action Action // combined action at the time the conflict was detected
}

// Kind classifies the conflict.
func (c Conflict) Kind() ConflictKind {
	var shifts, accepts int
	for _, a := range c.Action.Alternatives() {
		switch a.Kind {
		case ShiftAction:
			shifts++
		case AcceptAction:
			accepts++
		}
	}
	if shifts > 0 {
		return ShiftReduce
	} else if accepts > 0 {
		return AcceptReduce
	}
	return ReduceReduce
}

// Message returns a human readable description of the conflict.
func (c Conflict) Message() string {
	return fmt.Sprintf("State %d, Symbol '%s': Conflict [%s]", c.State, c.Symbol, c.Action)
}

func (c Conflict) String() string {
	return c.Message()
}

// === Table Generator =======================================================

// TableGenerator is a generator object to construct LR(0) parser tables.
// Clients usually create a Grammar G, then a LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for an LR(0)-parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	tables       *Tables
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	return lrgen
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = buildCFSM(lrgen.ga)
	}
	return lrgen.dfa
}

// Tables returns the ACTION and GOTO tables. The tables have to be built by
// calling CreateTables() previously.
func (lrgen *TableGenerator) Tables() *Tables {
	if lrgen.tables == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.tables
}

// CreateTables creates the CFSM and the parser tables. Conflicts do not
// prevent the tables from being built, they are recorded in the tables and
// flagged by lrgen.HasConflicts. An error is returned only for internal
// inconsistencies.
func (lrgen *TableGenerator) CreateTables() error {
	tables, err := BuildTables(lrgen.CFSM())
	if err != nil {
		return err
	}
	lrgen.tables = tables
	lrgen.HasConflicts = !tables.IsLR0()
	return nil
}

// === Tables ================================================================

// Tables holds the ACTION and the GOTO table for a CFSM, together with all
// conflicts found while building them. Tables are read-only once built and
// may be shared between parsers.
type Tables struct {
	g              *Grammar
	dfa            *CFSM
	actions        []map[string]Action // per state: terminal -> action
	gotoT          *sparse.IntMatrix   // state x non-terminal column
	ntcols         map[string]int      // non-terminal -> column of gotoT
	conflicts      []Conflict
	messages       map[string]bool // conflict messages already recorded
	conflictStates *treeset.Set
}

// BuildTables constructs the ACTION and GOTO tables for a CFSM. For every
// state, transitions with terminals result in shift actions, transitions with
// non-terminals in GOTO entries. Completed items of the start rule result in
// an accept action for the end marker, other completed items in reduce
// actions for every terminal.
func BuildTables(dfa *CFSM) (*Tables, error) {
	T := newTables(dfa)
	g := dfa.g
	terminals := g.Terminals()
	for _, state := range dfa.states {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		edges := dfa.EdgesFrom(state.ID)
		for _, e := range edges {
			if g.IsTerminal(e.Label) {
				T.AddAction(state.ID, e.Label, Shift(e.To))
			}
		}
		for _, e := range edges {
			if g.IsNonTerminal(e.Label) {
				T.setGoto(state.ID, e.Label, e.To)
			}
		}
		for _, i := range state.items.Items() {
			if !i.IsComplete() {
				continue
			}
			if i.rule.LHS == g.Start() && i.AtEnd() {
				T.AddAction(state.ID, lrzero.EndMarker, Accept())
				continue
			}
			rule, inx := g.MatchRule(i.rule.LHS, i.rule.rhs) // find the rule
			if inx < 0 {
				return nil, errors.Wrapf(ErrInconsistent, "state %d: no rule for item %v", state.ID, i)
			}
			tracer().Debugf("    creating reduce_%d action entries for %v", inx, rule)
			r := Reduce(inx)
			for _, t := range terminals {
				if t != lrzero.EndMarker {
					T.AddAction(state.ID, t, r)
				}
			}
			if a := T.Action(state.ID, lrzero.EndMarker); a.Kind != AcceptAction {
				T.AddAction(state.ID, lrzero.EndMarker, r)
			}
		}
	}
	if len(T.conflicts) > 0 {
		tracer().Infof("grammar %q is not LR(0), %d conflict(s)", g.Name, len(T.conflicts))
	}
	return T, nil
}

func newTables(dfa *CFSM) *Tables {
	nonterms := dfa.g.NonTerminals()
	T := &Tables{
		g:              dfa.g,
		dfa:            dfa,
		actions:        make([]map[string]Action, dfa.Size()),
		gotoT:          sparse.NewIntMatrix(dfa.Size(), len(nonterms), sparse.DefaultNullValue),
		ntcols:         make(map[string]int, len(nonterms)),
		messages:       make(map[string]bool),
		conflictStates: treeset.NewWithIntComparator(),
	}
	for i := range T.actions {
		T.actions[i] = make(map[string]Action)
	}
	for col, A := range nonterms {
		T.ntcols[A] = col
	}
	return T
}

// AddAction enters action a at (state, sym). If a different action is
// present, the entry becomes a conflict carrying both actions, and the
// conflict is recorded. Actions are never overwritten.
func (T *Tables) AddAction(state int, sym string, a Action) {
	existing, ok := T.actions[state][sym]
	if !ok || existing.IsNone() {
		T.actions[state][sym] = a
		return
	}
	if existing.includes(a) {
		return
	}
	combined := existing.combine(a)
	T.actions[state][sym] = combined
	T.conflictStates.Add(state)
	c := Conflict{State: state, Symbol: sym, Action: combined}
	if msg := c.Message(); !T.messages[msg] {
		T.messages[msg] = true
		T.conflicts = append(T.conflicts, c)
		tracer().Infof("%s conflict: %s", c.Kind(), msg)
	}
}

func (T *Tables) setGoto(state int, A string, to int) {
	T.gotoT.Set(state, T.ntcols[A], int32(to))
}

// Action returns the entry of the ACTION table at (state, terminal).
// Empty entries are returned as an Action of kind NoAction.
func (T *Tables) Action(state int, terminal string) Action {
	if state < 0 || state >= len(T.actions) {
		return Action{}
	}
	return T.actions[state][terminal]
}

// Goto returns the entry of the GOTO table at (state, non-terminal).
func (T *Tables) Goto(state int, A string) (int, bool) {
	col, ok := T.ntcols[A]
	if !ok || state < 0 || state >= T.gotoT.M() {
		return -1, false
	}
	v := T.gotoT.Value(state, col)
	if v == T.gotoT.NullValue() {
		return -1, false
	}
	return int(v), true
}

// IsLR0 is true if no conflicts have been found.
func (T *Tables) IsLR0() bool {
	return len(T.conflicts) == 0
}

// Conflicts returns all conflicts, in order of detection.
func (T *Tables) Conflicts() []Conflict {
	return T.conflicts
}

// ConflictMessages returns the messages of all conflicts, in order of detection.
func (T *Tables) ConflictMessages() []string {
	msgs := make([]string, len(T.conflicts))
	for i, c := range T.conflicts {
		msgs[i] = c.Message()
	}
	return msgs
}

// ConflictStates returns the IDs of all states with conflicts, sorted.
func (T *Tables) ConflictStates() []int {
	ids := make([]int, 0, T.conflictStates.Size())
	for _, v := range T.conflictStates.Values() {
		ids = append(ids, v.(int))
	}
	return ids
}

// IsConflictState is true if state has at least one conflicting entry.
func (T *Tables) IsConflictState(state int) bool {
	return T.conflictStates.Contains(state)
}

// Grammar returns the grammar the tables have been built for.
func (T *Tables) Grammar() *Grammar {
	return T.g
}

// CFSM returns the automaton the tables have been built from.
func (T *Tables) CFSM() *CFSM {
	return T.dfa
}

// --- Display ---------------------------------------------------------------

// Headers returns the column headers for displaying the tables: the state
// column, terminal columns (lower-case terminals first, then others, the end
// marker last, shown as its display glyph) and non-terminal columns
// (excluding the start symbol).
func (T *Tables) Headers() []string {
	terms, nonterms := T.columns()
	headers := make([]string, 0, 1+len(terms)+len(nonterms))
	headers = append(headers, "State")
	for _, t := range terms {
		headers = append(headers, lrzero.Displayed(t))
	}
	return append(headers, nonterms...)
}

// Rows returns the tables in row-major order, matching Headers(). Empty
// entries are empty strings.
func (T *Tables) Rows() [][]string {
	terms, nonterms := T.columns()
	rows := make([][]string, len(T.actions))
	for state := range T.actions {
		row := make([]string, 0, 1+len(terms)+len(nonterms))
		row = append(row, fmt.Sprintf("%d", state))
		for _, t := range terms {
			if a := T.Action(state, t); !a.IsNone() {
				row = append(row, lrzero.DisplayString(a.String()))
			} else {
				row = append(row, "")
			}
		}
		for _, A := range nonterms {
			if to, ok := T.Goto(state, A); ok {
				row = append(row, fmt.Sprintf("%d", to))
			} else {
				row = append(row, "")
			}
		}
		rows[state] = row
	}
	return rows
}

func (T *Tables) columns() (terms []string, nonterms []string) {
	var lower, other []string
	hasEnd := false
	for _, t := range T.g.Terminals() { // sorted
		if t == lrzero.EndMarker {
			hasEnd = true
		} else if isLowerName(t) {
			lower = append(lower, t)
		} else {
			other = append(other, t)
		}
	}
	terms = append(lower, other...)
	if hasEnd {
		terms = append(terms, lrzero.EndMarker)
	}
	for _, A := range T.g.NonTerminals() {
		if A != T.g.Start() {
			nonterms = append(nonterms, A)
		}
	}
	return
}

// isLowerName is true if name contains at least one cased letter and all of
// its cased letters are lower case.
func isLowerName(name string) bool {
	cased := false
	for _, r := range name {
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		} else if unicode.IsLower(r) {
			cased = true
		}
	}
	return cased
}

// Dump is a debugging helper, tracing the tables.
func (T *Tables) Dump() {
	tracer().Debugf("%v", T.Headers())
	for _, row := range T.Rows() {
		tracer().Debugf("%v", row)
	}
	for _, c := range T.conflicts {
		tracer().Debugf("%s", c)
	}
}

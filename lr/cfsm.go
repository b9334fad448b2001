package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/pkg/errors"
)

// LRAnalysis computes item set closures and goto sets for a grammar.
type LRAnalysis struct {
	g *Grammar
}

// Analysis creates an analyser for g. Grammars with syntax errors cannot be
// analysed; Analysis returns an error wrapping ErrGrammarInvalid for them.
func Analysis(g *Grammar) (*LRAnalysis, error) {
	if g == nil {
		return nil, errors.Wrap(ErrGrammarInvalid, "grammar is nil")
	}
	if err := g.Err(); err != nil {
		return nil, err
	}
	if !g.IsAugmented() {
		return nil, errors.Wrap(ErrGrammarInvalid, "grammar has not been augmented")
	}
	return &LRAnalysis{g: g}, nil
}

// Grammar returns the grammar this analyser operates on.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// Closure computes the closure of an item set. The argument is not modified.
func (ga *LRAnalysis) Closure(S *ItemSet) *ItemSet {
	return ga.closureSet(S)
}

// Goto computes the closure of the items of S which advance over symbol A.
// The result is empty if no item of S has A after the dot.
func (ga *LRAnalysis) Goto(S *ItemSet, A string) *ItemSet {
	return ga.gotoSetClosure(S, A)
}

// Compute the closure of a single item.
func (ga *LRAnalysis) closure(i Item) *ItemSet {
	S := newItemSet()
	S.Add(i)
	return ga.closureSet(S)
}

// For every item with a non-terminal A after the dot, add the start items of
// all rules for A, until no more items get added.
func (ga *LRAnalysis) closureSet(S *ItemSet) *ItemSet {
	C := S.Copy()
	for changed := true; changed; {
		changed = false
		for k := 0; k < C.Size(); k++ { // items added during the pass are visited, too
			A := C.items[k].PeekSymbol()
			if A == "" || !ga.g.IsNonTerminal(A) {
				continue
			}
			for _, r := range ga.g.FindNonTermRules(A) {
				if C.Add(ga.canonical(StartItem(r))) {
					changed = true
				}
			}
		}
	}
	return C
}

func (ga *LRAnalysis) gotoSet(closure *ItemSet, A string) *ItemSet {
	// for every item in closure C
	// if item in C:  N -> ... *A ...
	//     advance N -> ... A * ...
	gotoset := newItemSet()
	for _, i := range closure.Items() {
		if i.PeekSymbol() == A {
			ii := ga.canonical(i.Advance())
			tracer().Debugf("goto(%s) -%s-> %s", i, A, ii)
			gotoset.Add(ii)
		}
	}
	return gotoset
}

// canonical replaces the rule of an item by the first rule with the same LHS
// and RHS. Identical alternatives thus share their items.
func (ga *LRAnalysis) canonical(i Item) Item {
	if r, inx := ga.g.MatchRule(i.rule.LHS, i.rule.rhs); inx >= 0 && r != i.rule {
		return Item{rule: r, dot: i.dot}
	}
	return i
}

func (ga *LRAnalysis) gotoSetClosure(S *ItemSet, A string) *ItemSet {
	gotoset := ga.gotoSet(S, A)
	if gotoset.Empty() {
		return gotoset
	}
	gclosure := ga.closureSet(gotoset)
	tracer().Debugf("goto(%s) --%s--> %s", S, A, gclosure)
	return gclosure
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int      // serial ID of this state
	items  *ItemSet // configuration items within this state
	sig    string   // signature of items
	Accept bool     // does this state contain the completed start rule?
}

// Items returns the items of this state, in order of construction.
func (s *CFSMState) Items() []Item {
	return s.items.Items()
}

// ItemSet returns the item set of this state. Clients must not modify it.
func (s *CFSMState) ItemSet() *ItemSet {
	return s.items
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	s.items.Dump()
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, i := range s.items.Items() {
		if i.rule.Serial == 0 && i.AtEnd() {
			return true
		}
	}
	return false
}

// Edge is a CFSM transition between 2 states, directed and labeled with a
// grammar symbol.
type Edge struct {
	From  int
	To    int
	Label string
}

type transitionKey struct {
	from  int
	label string
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR(0) state diagram. Will be constructed by a TableGenerator.
// States are numbered in order of discovery, starting with 0.
type CFSM struct {
	g      *Grammar
	states []*CFSMState
	edges  *arraylist.List         // all the edges between states, in order of creation
	trans  map[transitionKey]int   // (state, symbol) -> state
	bySig  map[string][]*CFSMState // states by item set signature
	S0     *CFSMState              // start state
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	return &CFSM{
		g:      g,
		states: make([]*CFSMState, 0, 32),
		edges:  arraylist.New(),
		trans:  make(map[transitionKey]int),
		bySig:  make(map[string][]*CFSMState),
	}
}

// Add a state to the CFSM. Checks first if an equal state is present.
// Returns the state and a flag indicating a new state.
func (c *CFSM) addState(iset *ItemSet) (*CFSMState, bool) {
	sig := iset.signature()
	if s := c.findStateByItems(iset, sig); s != nil {
		return s, false
	}
	s := &CFSMState{ID: len(c.states), items: iset, sig: sig}
	s.Accept = s.containsCompletedStartRule()
	c.states = append(c.states, s)
	c.bySig[sig] = append(c.bySig[sig], s)
	tracer().Debugf("new state %d", s.ID)
	s.Dump()
	return s, true
}

// Find a CFSM state by the contained item set.
func (c *CFSM) findStateByItems(iset *ItemSet, sig string) *CFSMState {
	for _, s := range c.bySig[sig] {
		if s.items.Equals(iset) {
			return s
		}
	}
	return nil
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym string) {
	c.edges.Add(Edge{From: s0.ID, To: s1.ID, Label: sym})
	c.trans[transitionKey{s0.ID, sym}] = s1.ID
}

// Grammar returns the grammar this CFSM has been built for.
func (c *CFSM) Grammar() *Grammar {
	return c.g
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return len(c.states)
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	return c.states
}

// State returns the state with ID id, or nil.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= len(c.states) {
		return nil
	}
	return c.states[id]
}

// Transition returns the destination of the transition from state `from`
// with symbol sym.
func (c *CFSM) Transition(from int, sym string) (int, bool) {
	to, ok := c.trans[transitionKey{from, sym}]
	return to, ok
}

// Edges returns all transitions in order of creation.
func (c *CFSM) Edges() []Edge {
	r := make([]Edge, 0, c.edges.Size())
	it := c.edges.Iterator()
	for it.Next() {
		r = append(r, it.Value().(Edge))
	}
	return r
}

// EdgesFrom returns all transitions leaving state s, in order of creation.
func (c *CFSM) EdgesFrom(s int) []Edge {
	r := make([]Edge, 0, 2)
	it := c.edges.Iterator()
	for it.Next() {
		if e := it.Value().(Edge); e.From == s {
			r = append(r, e)
		}
	}
	return r
}

// AcceptingStates returns the IDs of all states containing the completed
// start rule.
func (c *CFSM) AcceptingStates() []int {
	acc := make([]int, 0, 1)
	for _, s := range c.states {
		if s.Accept {
			acc = append(acc, s.ID)
		}
	}
	return acc
}

// BuildCFSM analyses g and constructs its characteristic finite state machine.
// It returns an error wrapping ErrGrammarInvalid if g has syntax errors.
func BuildCFSM(g *Grammar) (*CFSM, error) {
	ga, err := Analysis(g)
	if err != nil {
		return nil, err
	}
	return buildCFSM(ga), nil
}

// buildCFSM constructs the characteristic finite state machine for a grammar.
// States are discovered breadth-first, starting from the closure of the start
// item. Symbols are processed in sorted order, making state numbering
// reproducible.
func buildCFSM(ga *LRAnalysis) *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := ga.g
	cfsm := emptyCFSM(G)
	closure0 := ga.closure(StartItem(G.Rule(0)))
	cfsm.S0, _ = cfsm.addState(closure0)
	queue := []*CFSMState{cfsm.S0}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, A := range s.items.nextSymbols() {
			tracer().Debugf("checking goto-set for symbol = %v", A)
			gotoset := ga.gotoSetClosure(s.items, A)
			if gotoset.Empty() {
				continue
			}
			snew, isNew := cfsm.addState(gotoset)
			if isNew {
				queue = append(queue, snew)
			}
			cfsm.addEdge(s, snew, A)
		}
		tracer().Debugf("-----------------------------------------------------------------")
	}
	tracer().Infof("CFSM for grammar %q has %d states", G.Name, cfsm.Size())
	return cfsm
}

// === Export ================================================================

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format. States listed in
// highlight (usually states with conflicts) are filled with a signal color.
func (c *CFSM) CFSM2GraphViz(w io.Writer, highlight ...int) error {
	marked := make(map[int]bool, len(highlight))
	for _, id := range highlight {
		marked[id] = true
	}
	var b strings.Builder
	b.WriteString(`digraph {
graph [rankdir=LR, splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.states {
		fmt.Fprintf(&b, "s%03d [fillcolor=%s label=\"{%d | %s}\"]\n",
			s.ID, nodecolor(s, marked[s.ID]), s.ID, forGraphviz(s.items))
	}
	for _, e := range c.Edges() {
		fmt.Fprintf(&b, "s%03d -> s%03d [label=\"%s\"]\n", e.From, e.To, escapeGraphviz(e.Label))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(state *CFSMState, marked bool) string {
	if marked {
		return "lightpink"
	} else if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(S *ItemSet) string {
	var b strings.Builder
	for _, i := range S.Items() {
		b.WriteString(escapeGraphviz(i.String()))
		b.WriteString(`\l`)
	}
	return b.String()
}

var graphvizEscaper = strings.NewReplacer(
	`\`, `\\`, `"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`,
)

func escapeGraphviz(s string) string {
	return graphvizEscaper.Replace(s)
}

/*
Package lr0 provides an LR(0)-parser. Clients have to use the tools of
package lr to prepare the necessary parse tables. The parser utilizes these
tables to decide whether an input is a sentence of the grammar, recording
every step it takes.

The parser is intended for studying grammars: every configuration of the
parser stacks is kept in a trace, which may be displayed to users step by
step. It is not intended for parsing large inputs.

Package lr0 can only handle LR(0) grammars. For grammars with conflicts the
parser refuses to start.

Usage

Clients read a grammar and construct the parse tables:

	g := lr.ParseGrammar("G", "S -> a A\nA -> b")
	ga, err := lr.Analysis(g)
	lrgen := lr.NewTableGenerator(ga)
	err = lrgen.CreateTables()

Then parse some input:

	p := lr0.NewParser(lrgen.Tables())
	result, err := p.ParseString("ab")
	if result.Accepted { ... }
	for _, step := range result.Steps { ... }

An error is returned only for malfunctions of the parser. Rejection of the
input is reported in the result.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr0

import (
	"github.com/npillmayer/lrzero"
	"github.com/npillmayer/lrzero/lr"
	"github.com/npillmayer/lrzero/lr/scanner"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
)

// tracer traces with key 'lrzero.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrzero.lr")
}

// Errors signalling a malfunction of the parser. Clients should check them
// with errors.Cause.
var (
	// ErrStepLimit is returned if a parse did not terminate within the
	// maximum number of steps.
	ErrStepLimit = errors.New("parser exceeded step limit")

	// ErrStackUnderflow is returned if a reduce would pop the bottom of the
	// parse stack.
	ErrStackUnderflow = errors.New("parse stack underflow")
)

// DefaultMaxSteps is the step limit of a parser if not set with MaxSteps.
const DefaultMaxSteps = 10000

// Parser is an LR(0)-parser type. Create and initialize one with
// lr0.NewParser(...). A parser may be used for more than one input, but not
// concurrently.
type Parser struct {
	G        *lr.Grammar
	tables   *lr.Tables
	maxSteps int
	states   []int    // state stack
	symbols  []string // symbol stack
}

// Option configures a parser.
type Option func(p *Parser)

// MaxSteps sets the maximum number of steps of a parse. A parse exceeding it
// fails with ErrStepLimit. Values < 1 select DefaultMaxSteps.
func MaxSteps(n int) Option {
	return func(p *Parser) {
		if n < 1 {
			n = DefaultMaxSteps
		}
		p.maxSteps = n
	}
}

// NewParser creates an LR(0) parser.
func NewParser(tables *lr.Tables, opts ...Option) *Parser {
	parser := &Parser{
		G:        tables.Grammar(),
		tables:   tables,
		maxSteps: DefaultMaxSteps,
		states:   make([]int, 0, 64),
		symbols:  make([]string, 0, 64),
	}
	for _, opt := range opts {
		opt(parser)
	}
	return parser
}

// Result is the outcome of a parse.
type Result struct {
	Attempted bool   // false if the grammar is not LR(0)
	Accepted  bool   // input has been accepted
	Steps     []Step // trace of the parse, including the final step
	Position  int    // index of the input symbol at which the parse ended
}

// ParseString parses input, every character of which is a terminal.
func (p *Parser) ParseString(input string) (*Result, error) {
	return p.Parse(scanner.CharTokenizerFor(input))
}

// Parse reads the input from a tokenizer and parses it. The lexemes of the
// tokens are taken as terminals. The tokenizer is read until EOF before the
// parse begins.
//
// If the grammar is not LR(0), no parse is attempted. Otherwise the result
// tells if the input has been accepted, and holds the steps taken.
func (p *Parser) Parse(scan scanner.Tokenizer) (*Result, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	result := &Result{}
	if !p.tables.IsLR0() {
		tracer().Infof("grammar %q is not LR(0), will not parse", p.G.Name)
		return result, nil
	}
	result.Attempted = true
	input := append(scanner.Lexemes(scan), lrzero.EndMarker)
	p.states = append(p.states[:0], 0)
	p.symbols = append(p.symbols[:0], lrzero.EndMarker)
	ptr := 0
	for stepno := 1; ; stepno++ {
		if stepno > p.maxSteps {
			return result, errors.Wrapf(ErrStepLimit, "after %d steps", p.maxSteps)
		}
		result.Position = ptr
		if ptr >= len(input) { // shifted the end marker
			tracer().Infof("input exhausted without accept")
			return result, nil
		}
		tos := p.states[len(p.states)-1]
		sym := input[ptr]
		action := p.tables.Action(tos, sym)
		tracer().Debugf("action(%d,%s) = %s", tos, sym, action)
		result.Steps = append(result.Steps, p.snapshot(stepno, input[ptr:], action))
		switch action.Kind {
		case lr.NoAction:
			tracer().Infof("syntax error at %q (#%d)", sym, ptr)
			return result, nil
		case lr.ShiftAction:
			tracer().Debugf("shifting, next state = %d", action.Target)
			p.states = append(p.states, action.Target)
			p.symbols = append(p.symbols, sym)
			ptr++
		case lr.ReduceAction:
			to, ok, err := p.reduce(p.G.Rule(action.Target))
			if err != nil {
				return result, err
			}
			if !ok {
				return result, nil
			}
			result.Steps[len(result.Steps)-1].Goto = to
		case lr.AcceptAction:
			tracer().Infof("input accepted")
			result.Accepted = true
			return result, nil
		default:
			return result, errors.Wrapf(lr.ErrInconsistent, "conflict action %s in state %d", action, tos)
		}
	}
}

// reduce performs a reduce action for a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// X1 to Xn are popped from the stacks, then the GOTO state for LHS is pushed.
// ok is false if there is no GOTO entry.
func (p *Parser) reduce(rule *lr.Rule) (int, bool, error) {
	if rule == nil {
		return -1, false, errors.Wrap(lr.ErrInconsistent, "reduce by unknown rule")
	}
	tracer().Debugf("reduce %v", rule)
	k := rule.Len()
	if k > len(p.states)-1 {
		return -1, false, errors.Wrapf(ErrStackUnderflow, "reduce %v with stack depth %d", rule, len(p.states))
	}
	p.states = p.states[:len(p.states)-k]
	p.symbols = p.symbols[:len(p.symbols)-k]
	tos := p.states[len(p.states)-1]
	to, ok := p.tables.Goto(tos, rule.LHS)
	if !ok {
		tracer().Infof("no goto for (%d,%s)", tos, rule.LHS)
		return -1, false, nil
	}
	tracer().Debugf("reduced to next state = %d", to)
	p.states = append(p.states, to)
	p.symbols = append(p.symbols, rule.LHS)
	return to, true, nil
}

func (p *Parser) snapshot(stepno int, rest []string, action lr.Action) Step {
	step := Step{
		Step:    stepno,
		States:  make([]int, len(p.states)),
		Symbols: make([]string, len(p.symbols)),
		Input:   make([]string, len(rest)),
		Action:  action,
		Goto:    -1,
	}
	copy(step.States, p.states)
	copy(step.Symbols, p.symbols)
	copy(step.Input, rest)
	return step
}

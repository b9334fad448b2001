/*
Package report runs a complete LR(0) analysis of a grammar and collects the
results as plain data, ready to be displayed or serialized as JSON.

	rep, err := report.Analyze(grammarText, []string{"ab", "abb"}, report.Options{})
	if err != nil {
		// internal failure
	}
	if !rep.IsLR0 {
		// see rep.Conflicts
	}

Grammar errors and conflicts are part of the report. Inputs are only parsed
for grammars which are LR(0).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package report

import (
	"bytes"
	"strings"

	"github.com/npillmayer/lrzero"
	"github.com/npillmayer/lrzero/lr"
	"github.com/npillmayer/lrzero/lr/lr0"
	"github.com/npillmayer/lrzero/lr/scanner"
	"github.com/npillmayer/lrzero/lr/scanner/lexmach"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
)

// tracer traces with key 'lrzero.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrzero.lr")
}

// Tokenizer modes, determining how an input string is split into terminals.
const (
	Chars     = "chars"     // every character is a terminal
	Fields    = "fields"    // white-space separated fields are terminals
	Terminals = "terminals" // longest match over the grammar's terminals
)

// Options control an analysis.
type Options struct {
	Name      string // name of the grammar, for tracing
	MaxSteps  int    // step limit per input, 0 for the parser's default
	Tokenizer string // tokenizer mode, Chars if empty
}

// Report is the result of an analysis.
type Report struct {
	Grammar          GrammarInfo   `json:"grammar_info"`
	DFA              DFAInfo       `json:"dfa_info"`
	Table            TableData     `json:"table_data"`
	TestResults      []InputResult `json:"test_results"`
	IsLR0            bool          `json:"is_lr0"`
	Conflicts        []string      `json:"conflicts"`
	ConflictStateIDs []int         `json:"conflict_state_ids"`
	DOT              string        `json:"dfa_dot,omitempty"`
}

// Production is a rule of the grammar. An empty right side is shown as ε.
type Production struct {
	Index int    `json:"index"`
	Left  string `json:"left"`
	Right string `json:"right"`
}

// GrammarInfo describes the grammar.
type GrammarInfo struct {
	Productions  []Production `json:"productions"`
	Terminals    []string     `json:"terminals"`
	NonTerminals []string     `json:"non_terminals"`
	Errors       []string     `json:"errors"`
	Diagnostics  []string     `json:"diagnostics,omitempty"`
}

// State is a state of the CFSM.
type State struct {
	ID         int      `json:"id"`
	Items      []string `json:"items"`
	IsConflict bool     `json:"is_conflict"`
}

// Transition is an edge of the CFSM.
type Transition struct {
	From   int    `json:"from"`
	To     int    `json:"to"`
	Symbol string `json:"symbol"`
}

// DFAInfo describes the CFSM.
type DFAInfo struct {
	States      []State      `json:"states"`
	Transitions []Transition `json:"transitions"`
}

// TableData holds the ACTION and GOTO tables for display.
type TableData struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// InputResult is the outcome of parsing one input.
type InputResult struct {
	Input   string         `json:"input"`
	Success bool           `json:"success"`
	Trace   []lr0.StepView `json:"trace"`
}

// Analyze reads a grammar, builds its CFSM and parse tables and, if the
// grammar is LR(0), parses every non-blank input. Grammar errors stop the
// analysis after the grammar info has been collected; they are reported in
// rep.Grammar.Errors. An error is returned only for internal failures.
func Analyze(text string, inputs []string, opts Options) (*Report, error) {
	if opts.Name == "" {
		opts.Name = "grammar"
	}
	switch opts.Tokenizer {
	case "", Chars, Fields, Terminals:
	default:
		return nil, errors.Errorf("unknown tokenizer mode %q", opts.Tokenizer)
	}
	rep := &Report{
		TestResults:      []InputResult{},
		Conflicts:        []string{},
		ConflictStateIDs: []int{},
	}
	g := lr.ParseGrammar(opts.Name, text)
	rep.Grammar = grammarInfo(g)
	if g.Err() != nil {
		tracer().Infof("grammar %q has errors, analysis stopped", opts.Name)
		return rep, nil
	}
	ga, err := lr.Analysis(g)
	if err != nil {
		return rep, err
	}
	lrgen := lr.NewTableGenerator(ga)
	if err = lrgen.CreateTables(); err != nil {
		return rep, err
	}
	T := lrgen.Tables()
	rep.IsLR0 = T.IsLR0()
	rep.Conflicts = append(rep.Conflicts, T.ConflictMessages()...)
	rep.ConflictStateIDs = append(rep.ConflictStateIDs, T.ConflictStates()...)
	rep.DFA = dfaInfo(lrgen.CFSM(), T)
	rep.Table = TableData{Headers: T.Headers(), Rows: T.Rows()}
	var dot bytes.Buffer
	if err = lrgen.CFSM().CFSM2GraphViz(&dot, T.ConflictStates()...); err != nil {
		return rep, errors.Wrap(err, "cannot export CFSM")
	}
	rep.DOT = dot.String()
	if !rep.IsLR0 {
		return rep, nil
	}
	var lm *lexmach.LMAdapter
	if opts.Tokenizer == Terminals {
		if lm, err = lexmach.TerminalTokenizer(g); err != nil {
			return rep, errors.Wrap(err, "cannot create tokenizer")
		}
	}
	parser := lr0.NewParser(T, lr0.MaxSteps(opts.MaxSteps))
	for _, input := range inputs {
		if input = strings.TrimSpace(input); input == "" {
			continue
		}
		scan, err := tokenizer(input, opts.Tokenizer, lm)
		if err != nil {
			return rep, err
		}
		result, err := parser.Parse(scan)
		if err != nil {
			return rep, errors.Wrapf(err, "parsing %q", input)
		}
		rep.TestResults = append(rep.TestResults, InputResult{
			Input:   input,
			Success: result.Accepted,
			Trace:   result.RenderSteps(),
		})
	}
	return rep, nil
}

func tokenizer(input string, mode string, lm *lexmach.LMAdapter) (scanner.Tokenizer, error) {
	switch mode {
	case "", Chars:
		return scanner.CharTokenizerFor(input), nil
	case Fields:
		return scanner.FieldsTokenizer(input), nil
	case Terminals:
		scan, err := lm.Scanner(input)
		return scan, err
	}
	return nil, errors.Errorf("unknown tokenizer mode %q", mode)
}

func grammarInfo(g *lr.Grammar) GrammarInfo {
	info := GrammarInfo{
		Productions:  []Production{},
		Terminals:    g.Terminals(),
		NonTerminals: g.NonTerminals(),
		Errors:       []string{},
	}
	for _, r := range g.Rules() {
		info.Productions = append(info.Productions, Production{
			Index: r.Serial,
			Left:  r.LHS,
			Right: r.Display(),
		})
	}
	for _, e := range g.Errors() {
		info.Errors = append(info.Errors, e.Error())
	}
	info.Diagnostics = g.Diagnostics()
	return info
}

func dfaInfo(cfsm *lr.CFSM, T *lr.Tables) DFAInfo {
	info := DFAInfo{
		States:      make([]State, 0, cfsm.Size()),
		Transitions: []Transition{},
	}
	for _, s := range cfsm.States() {
		st := State{ID: s.ID, IsConflict: T.IsConflictState(s.ID)}
		for _, i := range s.Items() {
			st.Items = append(st.Items, i.String())
		}
		info.States = append(info.States, st)
	}
	for _, e := range cfsm.Edges() {
		info.Transitions = append(info.Transitions, Transition{
			From:   e.From,
			To:     e.To,
			Symbol: lrzero.Displayed(e.Label),
		})
	}
	return info
}

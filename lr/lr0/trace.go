package lr0

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/lrzero"
	"github.com/npillmayer/lrzero/lr"
)

// Step is a snapshot of the parser, taken before an action is performed.
type Step struct {
	Step    int       // serial number, starting at 1
	States  []int     // state stack, bottom first
	Symbols []string  // symbol stack, bottom first, starting with the end marker
	Input   []string  // remaining input, including the end marker
	Action  lr.Action // action found in the ACTION table
	Goto    int       // state after a reduce, or -1
}

// StepView is a step prepared for display. The end marker is replaced by
// its display glyph.
type StepView struct {
	Step        int    `json:"step"`
	StateStack  string `json:"state_stack"`
	SymbolStack string `json:"symbol_stack"`
	Input       string `json:"input"`
	Action      string `json:"action"`
	Goto        string `json:"goto"`
}

// Render prepares a step for display.
func (s Step) Render() StepView {
	states := make([]string, len(s.States))
	for i, st := range s.States {
		states[i] = strconv.Itoa(st)
	}
	v := StepView{
		Step:        s.Step,
		StateStack:  strings.Join(states, " "),
		SymbolStack: lrzero.DisplayString(lrzero.JoinSymbols(s.Symbols)),
		Input:       lrzero.DisplayString(lrzero.JoinSymbols(s.Input)),
		Action:      "ERROR",
	}
	if !s.Action.IsNone() {
		v.Action = s.Action.String()
	}
	if s.Goto >= 0 {
		v.Goto = strconv.Itoa(s.Goto)
	}
	return v
}

func (s Step) String() string {
	v := s.Render()
	return fmt.Sprintf("%3d | %-12s | %-12s | %12s | %-5s | %s",
		v.Step, v.StateStack, v.SymbolStack, v.Input, v.Action, v.Goto)
}

// RenderSteps prepares all steps of a parse for display.
func (r *Result) RenderSteps() []StepView {
	views := make([]StepView, len(r.Steps))
	for i, s := range r.Steps {
		views[i] = s.Render()
	}
	return views
}

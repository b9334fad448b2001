package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/lrzero/lr/report"
	"github.com/pterm/pterm"
)

// printReport displays a complete analysis on the terminal.
func printReport(rep *report.Report) error {
	printGrammar(rep)
	if len(rep.Grammar.Errors) > 0 {
		return nil
	}
	if err := printStates(rep); err != nil {
		return err
	}
	if err := printTable(rep); err != nil {
		return err
	}
	printConflicts(rep)
	for _, res := range rep.TestResults {
		if err := printTrace(res); err != nil {
			return err
		}
	}
	return nil
}

func printGrammar(rep *report.Report) {
	pterm.DefaultSection.Println("Grammar")
	for _, p := range rep.Grammar.Productions {
		pterm.Printf("%3d  %s → %s\n", p.Index, p.Left, p.Right)
	}
	pterm.Println()
	pterm.Printf("terminals:     %s\n", strings.Join(rep.Grammar.Terminals, " "))
	pterm.Printf("non-terminals: %s\n", strings.Join(rep.Grammar.NonTerminals, " "))
	for _, e := range rep.Grammar.Errors {
		pterm.Error.Println(e)
	}
	for _, d := range rep.Grammar.Diagnostics {
		pterm.Warning.Println(d)
	}
}

func printStates(rep *report.Report) error {
	pterm.DefaultSection.Println("CFSM")
	data := pterm.TableData{{"State", "Items", "Transitions"}}
	trans := make(map[int][]string)
	for _, t := range rep.DFA.Transitions {
		trans[t.From] = append(trans[t.From], fmt.Sprintf("%s → %d", t.Symbol, t.To))
	}
	for _, s := range rep.DFA.States {
		id := strconv.Itoa(s.ID)
		if s.IsConflict {
			id = pterm.Red(id + " !")
		}
		data = append(data, []string{
			id,
			strings.Join(s.Items, "\n"),
			strings.Join(trans[s.ID], "\n"),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printTable(rep *report.Report) error {
	pterm.DefaultSection.Println("Parse Table")
	data := pterm.TableData{rep.Table.Headers}
	data = append(data, rep.Table.Rows...)
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printConflicts(rep *report.Report) {
	if rep.IsLR0 {
		pterm.Success.Println("grammar is LR(0)")
		return
	}
	pterm.Warning.Printf("grammar is not LR(0), %d conflict(s)\n", len(rep.Conflicts))
	for _, c := range rep.Conflicts {
		pterm.Println("  " + c)
	}
}

func printTrace(res report.InputResult) error {
	pterm.DefaultSection.Printf("Parse of %q\n", res.Input)
	data := pterm.TableData{{"Step", "States", "Symbols", "Input", "Action", "Goto"}}
	for _, s := range res.Trace {
		data = append(data, []string{
			strconv.Itoa(s.Step), s.StateStack, s.SymbolStack, s.Input, s.Action, s.Goto,
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	if res.Success {
		pterm.Success.Printf("%q accepted\n", res.Input)
	} else {
		pterm.Error.Printf("%q rejected\n", res.Input)
	}
	return nil
}

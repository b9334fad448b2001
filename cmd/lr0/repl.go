package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lrzero/lr"
	"github.com/npillmayer/lrzero/lr/report"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl [grammar file]",
		Short: "Enter rules and inputs interactively",
		Long: `repl starts an interactive session. Lines containing '->' or '=' are
added to the grammar, every other line is parsed as input. Lines starting
with '#' are ignored. Commands start with ':' (enter ':help' for a list).`,
		Args: cobra.MaximumNArgs(1),
		RunE: runREPL,
	}
	rootCmd.AddCommand(cmd)
}

// Intp is our interpreter object
type Intp struct {
	name  string
	rules []string // grammar text, line by line
	rep   *report.Report
	repl  *readline.Instance
}

func runREPL(cmd *cobra.Command, args []string) error {
	intp := &Intp{name: "repl"}
	if len(args) > 0 {
		if err := intp.load(args[0]); err != nil {
			return err
		}
	}
	repl, err := readline.New("lr0> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp.repl = repl
	pterm.Info.Println("Welcome to lr0")
	pterm.Info.Println("Quit with <ctrl>D")
	intp.REPL()
	return nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Println("Good bye!")
}

// Eval executes a command, adds a rule or parses an input, depending on the
// line given.
func (intp *Intp) Eval(line string) (bool, error) {
	if strings.HasPrefix(line, ":") {
		return intp.command(strings.Fields(line))
	}
	if strings.HasPrefix(line, "#") {
		return false, nil
	}
	if lr.IsRuleLine(line) {
		return false, intp.setRules(append(intp.rules, line))
	}
	if len(intp.rules) == 0 {
		return false, errors.New("no grammar yet, enter rules like 'S -> a S | b'")
	}
	rep, err := intp.analyse(intp.rules, []string{line})
	if err != nil {
		return false, err
	}
	if !rep.IsLR0 {
		printConflicts(rep)
		return false, errors.New("grammar is not LR(0), cannot parse")
	}
	for _, res := range rep.TestResults {
		if err := printTrace(res); err != nil {
			return false, err
		}
	}
	return false, nil
}

func (intp *Intp) command(args []string) (bool, error) {
	switch args[0] {
	case ":quit", ":q":
		return true, nil
	case ":help":
		pterm.Println(`  <rule>          add a rule, e.g. 'S -> a S | b'
  <input>         parse input
  :grammar        show the grammar
  :states         show the CFSM
  :table          show the parse table
  :report         show everything
  :load <file>    replace the grammar by the rules of a file
  :clear          remove all rules
  :quit           leave`)
		return false, nil
	case ":clear":
		intp.rules, intp.rep = nil, nil
		return false, nil
	case ":load":
		if len(args) != 2 {
			return false, errors.New("usage: :load <file>")
		}
		return false, intp.load(args[1])
	}
	if intp.rep == nil {
		return false, errors.New("no grammar yet")
	}
	switch args[0] {
	case ":grammar":
		printGrammar(intp.rep)
		return false, nil
	case ":states":
		return false, printStates(intp.rep)
	case ":table":
		if err := printTable(intp.rep); err != nil {
			return false, err
		}
		printConflicts(intp.rep)
		return false, nil
	case ":report":
		return false, printReport(intp.rep)
	}
	return false, errors.Errorf("unknown command %s", args[0])
}

// load replaces the grammar by the rules of a file. Blank lines and comments
// are dropped.
func (intp *Intp) load(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "unable to open grammar file")
	}
	defer f.Close()
	var rules []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" && !strings.HasPrefix(line, "#") {
			rules = append(rules, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "error while reading grammar file")
	}
	tracer().Infof("loaded %d lines from %s", len(rules), filename)
	return intp.setRules(rules)
}

// setRules analyses a new set of rules. They replace the current rules
// only if they are free of errors.
func (intp *Intp) setRules(rules []string) error {
	rep, err := intp.analyse(rules, nil)
	if err != nil {
		return err
	}
	intp.rules, intp.rep = rules, rep
	pterm.Info.Printf("%d rules, %d states\n", len(rep.Grammar.Productions), len(rep.DFA.States))
	for _, d := range rep.Grammar.Diagnostics {
		pterm.Warning.Println(d)
	}
	return nil
}

// analyse runs an analysis of rules. Grammar errors are shown and result
// in an error.
func (intp *Intp) analyse(rules []string, inputs []string) (*report.Report, error) {
	rep, err := report.Analyze(strings.Join(rules, "\n"), inputs, conf.options(intp.name))
	if err != nil {
		return nil, err
	}
	if len(rep.Grammar.Errors) > 0 {
		for _, e := range rep.Grammar.Errors {
			pterm.Error.Println(e)
		}
		return nil, errors.New("grammar rejected")
	}
	return rep, nil
}

package main

import (
	"encoding/json"
	"os"

	"github.com/npillmayer/lrzero/lr"
	"github.com/npillmayer/lrzero/lr/report"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var analyzeFlags = struct {
	json *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "analyze <grammar file> [input ...]",
		Short: "Analyse a grammar and parse inputs",
		Example: `  lr0 analyze expr.txt 'i+(i+i)' 'i+'
  cat expr.txt | lr0 analyze --json - 'i+i'`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyze,
	}
	analyzeFlags.json = cmd.Flags().Bool("json", false, "write the report as JSON")
	rootCmd.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:     "table <grammar file>",
		Short:   "Print the ACTION and GOTO tables of a grammar",
		Example: `  lr0 table expr.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTable,
	}
	rootCmd.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:     "dot <grammar file>",
		Short:   "Write the CFSM of a grammar in Graphviz Dot format",
		Example: `  lr0 dot expr.txt | dot -Tsvg > cfsm.svg`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDot,
	}
	rootCmd.AddCommand(cmd)
}

func analyze(path string, inputs []string) (*report.Report, error) {
	name, text, err := readGrammar(path)
	if err != nil {
		return nil, err
	}
	return report.Analyze(text, inputs, conf.options(name))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	rep, err := analyze(args[0], args[1:])
	if err != nil {
		return err
	}
	if *analyzeFlags.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return printReport(rep)
}

func runTable(cmd *cobra.Command, args []string) error {
	rep, err := analyze(args[0], nil)
	if err != nil {
		return err
	}
	if len(rep.Grammar.Errors) > 0 {
		printGrammar(rep)
		return errors.Wrapf(lr.ErrGrammarInvalid, "%d error(s)", len(rep.Grammar.Errors))
	}
	if err = printTable(rep); err != nil {
		return err
	}
	printConflicts(rep)
	return nil
}

func runDot(cmd *cobra.Command, args []string) error {
	name, text, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	g := lr.ParseGrammar(name, text)
	cfsm, err := lr.BuildCFSM(g)
	if err != nil {
		return err
	}
	tables, err := lr.BuildTables(cfsm)
	if err != nil {
		return err
	}
	return cfsm.CFSM2GraphViz(os.Stdout, tables.ConflictStates()...)
}

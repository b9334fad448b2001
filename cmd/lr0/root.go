package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/lrzero/lr/lr0"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lr0",
	Short: "Analyse LR(0) grammars and trace parses",
	Long: `lr0 reads a context free grammar and
- builds the characteristic finite state machine (CFSM),
- constructs the ACTION and GOTO tables and reports conflicts,
- parses input strings, recording every step of the parser.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var rootFlags = struct {
	config *string
}{}

// conf is the effective configuration, set up before any command runs.
var conf = defaultConfig()

func init() {
	flags := rootCmd.PersistentFlags()
	rootFlags.config = flags.String("config", "", "configuration file (default ./"+defaultConfigFile+", if present)")
	flags.Int("max-steps", lr0.DefaultMaxSteps, "maximum number of parser steps per input")
	flags.String("tokenizer", "chars", "how inputs are split into terminals [chars|fields|terminals]")
	flags.String("trace", "Error", "trace level [Debug|Info|Error]")
}

// Execute runs the command given on the command line.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

func setup(cmd *cobra.Command, args []string) error {
	initDisplay()
	c, err := loadConfig(*rootFlags.config)
	if err != nil {
		return err
	}
	if err = c.override(cmd.Flags()); err != nil {
		return err
	}
	conf = c
	gtrace.SyntaxTracer = gologadapter.New()
	setTraceLevel(conf.TraceLevel)
	tracer().Debugf("configuration: %+v", *conf)
	return nil
}

func setTraceLevel(level string) {
	l := tracing.TraceLevelFromString(level)
	for _, key := range []string{"lrzero.lr", "lrzero.scanner", "lrzero.cli"} {
		tracing.Select(key).SetTraceLevel(l)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// readGrammar reads grammar text from a file, or from stdin for "-".
// The grammar is named after the file.
func readGrammar(path string) (name string, text string, err error) {
	var buff []byte
	if path == "-" {
		name = "stdin"
		buff, err = io.ReadAll(os.Stdin)
	} else {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		buff, err = os.ReadFile(path)
	}
	if err != nil {
		return "", "", errors.Wrapf(err, "cannot read grammar")
	}
	return name, string(buff), nil
}

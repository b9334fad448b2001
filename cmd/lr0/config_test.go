package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/lrzero/lr/report"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/spf13/pflag"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.cli")
	defer teardown()
	//
	path := writeFile(t, "lr0.toml", "max-steps = 42\ntokenizer = \"fields\"\n")
	c, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.MaxSteps != 42 || c.Tokenizer != report.Fields || c.TraceLevel != "Error" {
		t.Errorf("unexpected configuration %+v", *c)
	}
}

func TestConfigErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.cli")
	defer teardown()
	//
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("expected explicitly named but missing file to be an error")
	}
	path := writeFile(t, "bad.toml", "tokenizer = \"words\"\n")
	if _, err := loadConfig(path); err == nil {
		t.Errorf("expected unknown tokenizer to be rejected")
	}
	path = writeFile(t, "broken.toml", "max-steps = \n")
	if _, err := loadConfig(path); err == nil {
		t.Errorf("expected syntax error to be reported")
	}
}

func TestConfigFlagsOverride(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.cli")
	defer teardown()
	//
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-steps", 0, "")
	flags.String("tokenizer", "chars", "")
	flags.String("trace", "Error", "")
	if err := flags.Parse([]string{"--max-steps=7"}); err != nil {
		t.Fatal(err)
	}
	c := defaultConfig()
	c.Tokenizer = report.Terminals
	if err := c.override(flags); err != nil {
		t.Fatal(err)
	}
	if c.MaxSteps != 7 {
		t.Errorf("expected max-steps from flag, have %d", c.MaxSteps)
	}
	if c.Tokenizer != report.Terminals {
		t.Errorf("expected unchanged tokenizer to keep value from file, have %q", c.Tokenizer)
	}
}

func TestReadGrammarName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.cli")
	defer teardown()
	//
	path := writeFile(t, "expr.txt", "S -> a S | b\n")
	name, text, err := readGrammar(path)
	if err != nil {
		t.Fatal(err)
	}
	if name != "expr" || text != "S -> a S | b\n" {
		t.Errorf("unexpected grammar %q: %q", name, text)
	}
}

func TestInterpreter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.cli")
	defer teardown()
	//
	intp := &Intp{name: t.Name()}
	if _, err := intp.Eval("ab"); err == nil {
		t.Errorf("expected input without grammar to be an error")
	}
	if _, err := intp.Eval("S -> a S | b"); err != nil {
		t.Fatal(err)
	}
	if _, err := intp.Eval("S -> "); err == nil {
		t.Errorf("expected faulty rule to be rejected")
	}
	if len(intp.rules) != 1 {
		t.Errorf("expected faulty rule to be dropped, have %v", intp.rules)
	}
	if _, err := intp.Eval("aab"); err != nil {
		t.Error(err)
	}
	if _, err := intp.Eval(":table"); err != nil {
		t.Error(err)
	}
	if _, err := intp.Eval(":frobnicate"); err == nil {
		t.Errorf("expected unknown command to be an error")
	}
	quit, err := intp.Eval(":quit")
	if err != nil || !quit {
		t.Errorf("expected :quit to end the session")
	}
}

func TestInterpreterSeparatorsAndComments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.cli")
	defer teardown()
	//
	intp := &Intp{name: t.Name()}
	if _, err := intp.Eval("S = a S | b"); err != nil {
		t.Fatal(err)
	}
	if len(intp.rules) != 1 {
		t.Errorf("expected rule with '=' separator to be added, have %v", intp.rules)
	}
	if _, err := intp.Eval("# S -> c"); err != nil {
		t.Error(err)
	}
	if len(intp.rules) != 1 {
		t.Errorf("expected comment to be ignored, have %v", intp.rules)
	}
	path := writeFile(t, "g.txt", "# comment -> x\nS -> a S\nS -> b\n")
	if err := intp.load(path); err != nil {
		t.Fatal(err)
	}
	if len(intp.rules) != 2 || len(intp.rep.Grammar.Productions) != 3 {
		t.Errorf("expected 2 rules without the comment, have %v", intp.rules)
	}
}

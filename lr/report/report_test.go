package report

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/rogpeppe/go-internal/txtar"
)

// Test cases are kept in testdata/*.txtar. Every archive holds a file
// 'grammar', optional 'inputs' (one per line) and 'expect', listing
// expectations as 'key: value' lines.
func TestAnalyzeGolden(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil || len(files) == 0 {
		t.Fatalf("no test cases found: %v", err)
	}
	for _, file := range files {
		ar, err := txtar.ParseFile(file)
		if err != nil {
			t.Fatal(err)
		}
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			checkArchive(t, ar)
		})
	}
}

func section(ar *txtar.Archive, name string) string {
	for _, f := range ar.Files {
		if f.Name == name {
			return string(f.Data)
		}
	}
	return ""
}

func checkArchive(t *testing.T, ar *txtar.Archive) {
	t.Logf("%s", strings.TrimSpace(string(ar.Comment)))
	expect := section(ar, "expect")
	opts := Options{Name: t.Name()}
	for _, line := range strings.Split(expect, "\n") {
		if strings.HasPrefix(line, "tokenizer: ") {
			opts.Tokenizer = strings.TrimPrefix(line, "tokenizer: ")
		}
	}
	inputs := strings.Split(section(ar, "inputs"), "\n")
	rep, err := Analyze(section(ar, "grammar"), inputs, opts)
	if err != nil {
		t.Fatal(err)
	}
	results := make(map[string]bool)
	for _, r := range rep.TestResults {
		results[r.Input] = r.Success
	}
	var conflicts []string
	for _, line := range strings.Split(expect, "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		kv := strings.SplitN(line, ": ", 2)
		if len(kv) != 2 {
			t.Fatalf("malformed expectation %q", line)
		}
		key, value := kv[0], kv[1]
		switch key {
		case "tokenizer":
		case "is_lr0":
			if strconv.FormatBool(rep.IsLR0) != value {
				t.Errorf("expected is_lr0 = %s, conflicts: %v", value, rep.Conflicts)
			}
		case "headers":
			if h := strings.Join(rep.Table.Headers, " "); h != value {
				t.Errorf("expected headers %q, have %q", value, h)
			}
		case "states":
			if n, _ := strconv.Atoi(value); len(rep.DFA.States) != n {
				t.Errorf("expected %d states, have %d", n, len(rep.DFA.States))
			}
		case "errors":
			if n, _ := strconv.Atoi(value); len(rep.Grammar.Errors) != n {
				t.Errorf("expected %d grammar errors, have %v", n, rep.Grammar.Errors)
			}
		case "accept", "reject":
			success, ok := results[value]
			if !ok {
				t.Errorf("input %q has not been parsed", value)
			} else if success != (key == "accept") {
				t.Errorf("expected input %q to be %sed", value, key)
			}
		case "conflict":
			conflicts = append(conflicts, value)
		case "conflict_states":
			var ids []string
			for _, id := range rep.ConflictStateIDs {
				ids = append(ids, strconv.Itoa(id))
			}
			if strings.Join(ids, " ") != value {
				t.Errorf("expected conflict states %s, have %v", value, rep.ConflictStateIDs)
			}
		default:
			t.Fatalf("unknown expectation %q", key)
		}
	}
	if len(conflicts) > 0 {
		if len(rep.Conflicts) == 0 || rep.Conflicts[0] != conflicts[0] {
			t.Errorf("expected first conflict %q, have %q", conflicts[0], rep.Conflicts)
		}
	}
	if !rep.IsLR0 && len(rep.TestResults) > 0 {
		t.Errorf("inputs must not be parsed for a grammar which is not LR(0)")
	}
}

func TestReportJSON(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	rep, err := Analyze("S -> a A\nA -> @", []string{"a"}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if p := rep.Grammar.Productions[2]; p.Left != "A" || p.Right != "ε" {
		t.Errorf("expected production 2 to be A -> ε, is %v", p)
	}
	if items := rep.DFA.States[0].Items; items[0] != "S' → •S" {
		t.Errorf("unexpected items of state 0: %v", items)
	}
	data, err := json.Marshal(rep)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err = json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"grammar_info", "dfa_info", "table_data", "test_results",
		"is_lr0", "conflicts", "conflict_state_ids"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected key %q in JSON report", key)
		}
	}
	trace := m["test_results"].([]interface{})[0].(map[string]interface{})["trace"].([]interface{})
	if step := trace[0].(map[string]interface{}); step["symbol_stack"] != "#" || step["action"] != "s2" {
		t.Errorf("unexpected first step %v", step)
	}
}

func TestAnalyzeDiagnostics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	rep, err := Analyze("S -> a B", nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Grammar.Diagnostics) != 1 || !strings.Contains(rep.Grammar.Diagnostics[0], "missing production B") {
		t.Errorf("expected diagnostic for missing B, have %v", rep.Grammar.Diagnostics)
	}
	if len(rep.DFA.States) == 0 {
		t.Errorf("diagnostics must not stop the analysis")
	}
}

func TestAnalyzeUnknownTokenizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	if _, err := Analyze("S -> a", []string{"a"}, Options{Tokenizer: "words"}); err == nil {
		t.Errorf("expected error for unknown tokenizer mode")
	}
	// not LR(0) and no inputs: the mode is checked nevertheless
	if _, err := Analyze("S -> ( S ) | ( S ) S", nil, Options{Tokenizer: "words"}); err == nil {
		t.Errorf("expected error for unknown tokenizer mode without parsing")
	}
}

func TestAnalyzeDiagnosticsStable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	var first string
	for run := 0; run < 20; run++ {
		rep, err := Analyze("S -> a\nX -> b\nY -> c\nZ -> d", nil, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if len(rep.Grammar.Diagnostics) != 3 {
			t.Fatalf("expected one diagnostic per unreachable symbol, have %v", rep.Grammar.Diagnostics)
		}
		diags := strings.Join(rep.Grammar.Diagnostics, "|")
		if run == 0 {
			first = diags
		} else if diags != first {
			t.Fatalf("diagnostics differ between runs: %q vs %q", diags, first)
		}
	}
}

func TestAnalyzeDuplicateAlternativeItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrzero.lr")
	defer teardown()
	//
	rep, err := Analyze("S -> a | a", nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if items := rep.DFA.States[0].Items; len(items) != 2 {
		t.Errorf("expected 2 items in state 0, have %q", items)
	}
	for _, st := range rep.DFA.States {
		seen := make(map[string]bool)
		for _, item := range st.Items {
			if seen[item] {
				t.Errorf("state %d lists item %q twice", st.ID, item)
			}
			seen[item] = true
		}
	}
}

package lr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errors returned by grammar analysis and table construction. Clients should
// check them with errors.Cause.
var (
	// ErrGrammarInvalid is returned when an automaton is requested for a
	// grammar carrying syntax errors.
	ErrGrammarInvalid = errors.New("grammar is invalid")

	// ErrInconsistent flags an internal defect, e.g., a reduce item which
	// does not correspond to any rule of the grammar. It is never caused
	// by user input.
	ErrInconsistent = errors.New("internal inconsistency")
)

// GrammarError is a syntax error within the text of a grammar. Errors are
// recorded per alternative; the remainder of the grammar is still read.
type GrammarError struct {
	Line int    // line number within the grammar text, starting at 1
	LHS  string // left-hand side of the offending rule, if known
	Msg  string
}

func (e *GrammarError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

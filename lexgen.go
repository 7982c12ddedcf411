// Package lexgen generates deterministic table-driven scanners from
// declarative token specifications. Each rule pairs a regular expression
// with a user supplied action; the pipeline parses the patterns, builds a
// Thompson NFA, determinizes it with subset construction, minimizes the
// result and optionally folds the transition table into byte equivalence
// classes before the scanner source is emitted.
package lexgen

import (
	"fmt"
	"io"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lexgen/machine"
	"github.com/projectdiscovery/lexgen/syntax"
	errorutil "github.com/projectdiscovery/utils/errors"
)

// Rule pairs a token pattern with the action source executed on match.
// Rule index equals position in the declaration list; index 0 has the
// highest priority when several rules match the same input.
type Rule struct {
	Pattern string
	Action  string
}

// Options configures a Generator.
type Options struct {
	// Rules in declaration order; earlier rules win ties
	Rules []Rule
	// Preamble is user source emitted before the generated tables
	Preamble string
	// ErrorHandler is the statement block run on a lexical error
	ErrorHandler string
	// InternalErrorHandler is the statement block run when the rule switch
	// falls through, which indicates corrupted tables
	InternalErrorHandler string
	// Trailer is user source emitted after the generated scanner
	Trailer string
	// PackageName of the generated file (default "lexer")
	PackageName string
	// EquivalenceClasses emits the classifier plus narrow-table variant
	EquivalenceClasses bool
	// NoMinimize skips Hopcroft minimization, useful when comparing raw
	// subset construction output
	NoMinimize bool
}

// Validate checks the options and fills defaults.
func (opts *Options) Validate() error {
	if opts.PackageName == "" {
		opts.PackageName = "lexer"
	}
	for i, rule := range opts.Rules {
		if rule.Pattern == "" {
			return errorutil.NewWithTag("lexgen", "rule %d has an empty pattern", i)
		}
	}
	return nil
}

// Generator owns the compiled automata for one specification.
type Generator struct {
	Options *Options

	exprs   []syntax.Expr
	nfa     *machine.NFABuilder
	dfa     *machine.DFA
	classes *machine.EquivalenceClasses
}

// MakeLexer builds the combined automaton for an ordered rule list: one
// global start node, one Thompson fragment per rule reachable over epsilon,
// each fragment exit marked as an end owned by the rule index. It returns
// the DFA together with the NFA builder so callers can dump either machine.
func MakeLexer(exprs []syntax.Expr) (*machine.DFA, *machine.NFABuilder, error) {
	nfa := machine.NewNFABuilder()
	var alloc int64
	start := alloc
	alloc++

	for rule, expr := range exprs {
		entry, exit := expr.Emit(nfa, &alloc)
		nfa.Epsilon(start, entry)
		nfa.AddEnd(exit, int64(rule))
	}
	nfa.AddStart(start)

	dfa := nfa.Build()
	if err := dfa.CheckInvariants(); err != nil {
		return nil, nil, err
	}
	return dfa, nfa, nil
}

// New parses the rule patterns and runs the full pipeline.
func New(opts *Options) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{Options: opts}
	for i, rule := range opts.Rules {
		expr, _, err := syntax.ParsePattern(rule.Pattern)
		if err != nil {
			return nil, errorutil.NewWithTag("lexgen", "rule %d: %s", i, err.Error())
		}
		g.exprs = append(g.exprs, expr)
	}

	dfa, nfa, err := MakeLexer(g.exprs)
	if err != nil {
		return nil, err
	}
	g.dfa, g.nfa = dfa, nfa

	if !opts.NoMinimize {
		before := g.dfa.NumStates()
		g.dfa.Minimize()
		if err := g.dfa.CheckInvariants(); err != nil {
			return nil, err
		}
		gologger.Verbose().Msgf("minimized dfa from %d to %d states", before, g.dfa.NumStates())
	}

	if opts.EquivalenceClasses {
		g.classes = g.dfa.Compress()
		gologger.Verbose().Msgf("folded %d byte columns into %d equivalence classes", machine.ByteMax, g.classes.ClassCount)
		for class, members := range g.classes.Summary() {
			gologger.Verbose().Msgf("class %d: %s", class, members)
		}
	}
	return g, nil
}

// DFA returns the compiled automaton.
func (g *Generator) DFA() *machine.DFA {
	return g.dfa
}

// NFA returns the builder the automaton was determinized from.
func (g *Generator) NFA() *machine.NFABuilder {
	return g.nfa
}

// Classes returns the equivalence classes, or nil when compression is off.
func (g *Generator) Classes() *machine.EquivalenceClasses {
	return g.classes
}

// Conflicts returns the rule conflicts observed during subset construction.
func (g *Generator) Conflicts() []machine.Conflict {
	return g.dfa.Conflicts
}

// ExecuteWithWriter emits the generated scanner source to the writer.
func (g *Generator) ExecuteWithWriter(writer io.Writer) error {
	if writer == nil {
		return errorutil.NewWithTag("lexgen", "writer destination cannot be nil")
	}
	source, err := g.Source()
	if err != nil {
		return err
	}
	_, err = writer.Write([]byte(source))
	return err
}

// WriteDFADot dumps the DFA as a GraphViz digraph.
func (g *Generator) WriteDFADot(writer io.Writer) error {
	return g.dfa.WriteDot(writer)
}

// WriteNFADot dumps the NFA as a GraphViz digraph.
func (g *Generator) WriteNFADot(writer io.Writer) error {
	return g.nfa.WriteDot(writer)
}

// DebugStats logs table statistics: a run-length summary of the transition
// table, its memory footprint, the accept metadata and, when enabled, the
// classifier layout.
func (g *Generator) DebugStats() {
	table := g.dfa.Transitions
	if g.classes != nil {
		table = g.classes.Transitions
	}

	var rle string
	count := 0
	curr := table[0]
	for _, entry := range table {
		if entry != curr {
			rle += fmt.Sprintf("(%d, %d), ", curr, count)
			count = 1
			curr = entry
			continue
		}
		count++
	}
	rle += fmt.Sprintf("(%d, %d)", curr, count)

	gologger.Print().Msgf("transition table (rle): %s", rle)
	gologger.Print().Msgf("transition table takes: %d i64 = %d bytes", len(table), len(table)*8)
	gologger.Print().Msgf("start state: %d", g.dfa.StartState)
	gologger.Print().Msgf("states: %d", g.dfa.NumStates())
	gologger.Print().Msgf("rule mapping: %v", g.dfa.RuleOf)
	if g.classes != nil {
		gologger.Print().Msgf("classifier: %v", g.classes.Classifier)
		gologger.Print().Msgf("classes: %d", g.classes.ClassCount)
	}
}

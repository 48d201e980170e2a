package induce

import (
	"github.com/wespiper/ufr-ds/internal/util"
)

// startSymbolName is the value of the virtual top-level symbol. It is never
// itself the LHS of a rule; it denotes the compressed sequence as a whole.
const startSymbolName = "S"

// ProductionRule is a single grammar rule: a non-terminal LHS that expands to
// an ordered sequence of symbols. Frequency counts external usage of the LHS
// (references from the compressed top-level sequence plus every other rule's
// RHS); Probability is Frequency normalized over the sum of all rule
// frequencies.
type ProductionRule struct {
	LHS         Symbol
	RHS         []Symbol
	Frequency   int
	Probability float64
}

// Copy returns a deep-copied duplicate of this rule; its RHS slice does not
// alias the receiver's.
func (r ProductionRule) Copy() ProductionRule {
	rhs := make([]Symbol, len(r.RHS))
	copy(rhs, r.RHS)
	return ProductionRule{
		LHS:         r.LHS,
		RHS:         rhs,
		Frequency:   r.Frequency,
		Probability: r.Probability,
	}
}

// RHSValues returns the value-strings of the rule's RHS symbols.
func (r ProductionRule) RHSValues() []string {
	vals := make([]string, len(r.RHS))
	for i, s := range r.RHS {
		vals[i] = s.Value
	}
	return vals
}

// Grammar is a context-free grammar over terminal tokens, built incrementally
// by the inducer. It is never safe to share a *Grammar between goroutines;
// per spec each call to the engine allocates and owns its own.
type Grammar struct {
	rulesByName map[string]int
	rules       []ProductionRule

	terminals    map[string]Symbol
	nonTerminals map[string]Symbol

	Start Symbol
}

// NewGrammar returns an empty grammar whose start symbol is the default "S".
func NewGrammar() *Grammar {
	start := Symbol{Value: startSymbolName, Kind: NonTerminal}
	return &Grammar{
		rulesByName:  make(map[string]int),
		terminals:    make(map[string]Symbol),
		nonTerminals: map[string]Symbol{startSymbolName: start},
		Start:        start,
	}
}

// resolveSymbol interns value as a Symbol: an existing non-terminal takes
// priority, then an existing terminal, and otherwise a freshly registered
// terminal is returned. This is the symbol-kind resolution rule from spec
// §4.1 and must never be short-circuited by naming heuristics.
func (g *Grammar) resolveSymbol(value string) Symbol {
	if sym, ok := g.nonTerminals[value]; ok {
		return sym
	}
	return g.registerTerminal(value)
}

// registerTerminal interns value as a terminal symbol, reusing the existing
// registration if present.
func (g *Grammar) registerTerminal(value string) Symbol {
	if sym, ok := g.terminals[value]; ok {
		return sym
	}
	sym := Symbol{Value: value, Kind: Terminal}
	g.terminals[value] = sym
	return sym
}

// AddRule interns lhsName as a non-terminal and rhsValues as symbols (via
// resolveSymbol), then adds or overwrites the rule lhsName -> rhsValues with
// frequency 0. Returns the new rule.
func (g *Grammar) AddRule(lhsName string, rhsValues []string) ProductionRule {
	lhs := Symbol{Value: lhsName, Kind: NonTerminal}
	g.nonTerminals[lhsName] = lhs

	rhs := make([]Symbol, len(rhsValues))
	for i, v := range rhsValues {
		rhs[i] = g.resolveSymbol(v)
	}

	rule := ProductionRule{LHS: lhs, RHS: rhs}

	if idx, exists := g.rulesByName[lhsName]; exists {
		g.rules[idx] = rule
	} else {
		g.rulesByName[lhsName] = len(g.rules)
		g.rules = append(g.rules, rule)
	}

	return rule
}

// RemoveRule deletes the rule named name, if any, and reports whether it was
// present. Used by singleton inlining to retire fully-inlined rules.
func (g *Grammar) RemoveRule(name string) (ProductionRule, bool) {
	idx, ok := g.rulesByName[name]
	if !ok {
		return ProductionRule{}, false
	}

	rule := g.rules[idx]
	g.rules = append(g.rules[:idx], g.rules[idx+1:]...)
	delete(g.rulesByName, name)
	delete(g.nonTerminals, name)

	for n, i := range g.rulesByName {
		if i > idx {
			g.rulesByName[n] = i - 1
		}
	}

	return rule, true
}

// setRule overwrites the existing rule with the same LHS name. The rule must
// already exist (added via AddRule); panics otherwise, which would be a bug
// in the caller.
func (g *Grammar) setRule(rule ProductionRule) {
	idx, ok := g.rulesByName[rule.LHS.Value]
	if !ok {
		panic("induce: setRule called for unknown rule " + rule.LHS.Value)
	}
	g.rules[idx] = rule
}

// Rule returns the rule named name and whether it exists.
func (g *Grammar) Rule(name string) (ProductionRule, bool) {
	idx, ok := g.rulesByName[name]
	if !ok {
		return ProductionRule{}, false
	}
	return g.rules[idx], true
}

// HasRule returns whether a rule named name exists.
func (g *Grammar) HasRule(name string) bool {
	_, ok := g.rulesByName[name]
	return ok
}

// Rules returns a defensive copy of the grammar's rules, in the order they
// were created (R1 before R2 before R3, ...).
func (g *Grammar) Rules() []ProductionRule {
	out := make([]ProductionRule, len(g.rules))
	for i, r := range g.rules {
		out[i] = r.Copy()
	}
	return out
}

// RuleNames returns the LHS names of every rule, in creation order.
func (g *Grammar) RuleNames() []string {
	names := make([]string, len(g.rules))
	for i, r := range g.rules {
		names[i] = r.LHS.Value
	}
	return names
}

// Len returns the number of rules currently in the grammar.
func (g *Grammar) Len() int {
	return len(g.rules)
}

// Terminals returns every terminal symbol registered in the grammar, sorted
// by value for deterministic iteration.
func (g *Grammar) Terminals() []Symbol {
	names := util.OrderedKeys(g.terminals)
	out := make([]Symbol, len(names))
	for i, n := range names {
		out[i] = g.terminals[n]
	}
	return out
}

// NonTerminals returns every non-terminal symbol registered in the grammar
// (including the start symbol, even if it is never a rule LHS), sorted by
// value for deterministic iteration.
func (g *Grammar) NonTerminals() []Symbol {
	names := util.OrderedKeys(g.nonTerminals)
	out := make([]Symbol, len(names))
	for i, n := range names {
		out[i] = g.nonTerminals[n]
	}
	return out
}

// AsTuples returns a deep-copied snapshot view of the grammar's rules, keyed
// by LHS name, with RHS given as value-strings. Used for comparison and
// export; mutating the result never affects the grammar.
func (g *Grammar) AsTuples() map[string][]string {
	out := make(map[string][]string, len(g.rules))
	for _, r := range g.rules {
		out[r.LHS.Value] = r.RHSValues()
	}
	return out
}

// Clone returns a fully independent deep copy of the grammar, preserving
// frequencies and probabilities. Mutating the clone never affects g and vice
// versa.
func (g *Grammar) Clone() *Grammar {
	g2 := &Grammar{
		rulesByName:  make(map[string]int, len(g.rulesByName)),
		rules:        make([]ProductionRule, len(g.rules)),
		terminals:    make(map[string]Symbol, len(g.terminals)),
		nonTerminals: make(map[string]Symbol, len(g.nonTerminals)),
		Start:        g.Start,
	}

	for k, v := range g.rulesByName {
		g2.rulesByName[k] = v
	}
	for i, r := range g.rules {
		g2.rules[i] = r.Copy()
	}
	for k, v := range g.terminals {
		g2.terminals[k] = v
	}
	for k, v := range g.nonTerminals {
		g2.nonTerminals[k] = v
	}

	return g2
}

// ApplyUsage recomputes Frequency and Probability for every surviving rule
// from an external-usage count keyed by rule LHS name. Rules not present in
// usage are treated as having frequency 0. If the total usage is zero, every
// probability is zero.
func (g *Grammar) ApplyUsage(usage map[string]int) {
	total := 0
	for _, name := range g.RuleNames() {
		total += usage[name]
	}

	for i := range g.rules {
		name := g.rules[i].LHS.Value
		freq := usage[name]
		var prob float64
		if total > 0 {
			prob = float64(freq) / float64(total)
		}
		g.rules[i].Frequency = freq
		g.rules[i].Probability = prob
	}
}

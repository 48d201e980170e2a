package induce

import "fmt"

// Inducer runs the RePair-style grammar induction algorithm of spec §4.3.
// The zero value is ready to use, with the default rule-name prefix "R".
type Inducer struct {
	// Prefix names introduced non-terminals "{Prefix}{n}" in creation order,
	// starting at 1. Defaults to "R" if empty.
	Prefix string
}

// NewInducer returns an Inducer with the default "R" rule-name prefix.
func NewInducer() *Inducer {
	return &Inducer{Prefix: "R"}
}

func (ind *Inducer) prefix() string {
	if ind.Prefix == "" {
		return "R"
	}
	return ind.Prefix
}

// Snapshot is a single point along the induction trace: an independent deep
// copy of the compressed sequence and the grammar as they stood at that
// step. Mutating one Snapshot never affects another.
type Snapshot struct {
	Compressed []Symbol
	Grammar    *Grammar
}

// Induce runs the main RePair loop followed by singleton inlining and usage
// recomputation, without recording intermediate snapshots, and returns the
// final compressed sequence and grammar.
func (ind *Inducer) Induce(tokens []string) ([]Symbol, *Grammar) {
	seq, g, _ := ind.run(tokens, false)
	return seq, g
}

// InduceTrace runs RePair recording a Snapshot after every successful
// substitution (pre-inlining, with usage freshly recomputed), then appends a
// final Snapshot taken after singleton inlining and a last usage
// recomputation. Per spec §9's open question, intermediate snapshots are
// deliberately not inlined: the emergence detector relies on a monotonically
// growing rule set to interpret entropy curvature.
func (ind *Inducer) InduceTrace(tokens []string) ([]Snapshot, []Symbol, *Grammar) {
	seq, g, trace := ind.run(tokens, true)
	return trace, seq, g
}

func (ind *Inducer) run(tokens []string, trace bool) ([]Symbol, *Grammar, []Snapshot) {
	g := NewGrammar()

	seq := make([]Symbol, len(tokens))
	for i, t := range tokens {
		seq[i] = g.registerTerminal(t)
	}

	var snapshots []Snapshot
	nextID := 1

	for {
		counts := digramCounts(seq)
		if len(counts) == 0 {
			break
		}

		d, count, ok := mostFrequentDigram(seq, counts)
		if !ok || count < 2 {
			break
		}

		lhsName := fmt.Sprintf("%s%d", ind.prefix(), nextID)
		nextID++

		g.AddRule(lhsName, []string{d[0].Value, d[1].Value})
		seq = replaceAll(seq, d, Symbol{Value: lhsName, Kind: NonTerminal})

		if trace {
			g.ApplyUsage(externalUsage(seq, g))
			snapshots = append(snapshots, Snapshot{
				Compressed: cloneSymbols(seq),
				Grammar:    g.Clone(),
			})
		}
	}

	seq = inlineSingletons(seq, g)
	g.ApplyUsage(externalUsage(seq, g))

	if trace {
		snapshots = append(snapshots, Snapshot{
			Compressed: cloneSymbols(seq),
			Grammar:    g.Clone(),
		})
	}

	return seq, g, snapshots
}

// externalUsage counts, for every non-terminal symbol appearing in seq or in
// any rule's RHS in g, how many times it is referenced. This is the
// "external usage" the spec defines frequency as.
func externalUsage(seq []Symbol, g *Grammar) map[string]int {
	usage := make(map[string]int)

	count := func(syms []Symbol) {
		for _, s := range syms {
			if s.IsNonTerminal() {
				usage[s.Value]++
			}
		}
	}

	count(seq)
	for _, r := range g.Rules() {
		count(r.RHS)
	}

	return usage
}

// inlineSingletons repeatedly inlines any rule whose external usage is at
// most 1: its sole occurrence (in seq or another rule's RHS) is replaced by
// its RHS and the rule is deleted. Continues until every surviving rule has
// external usage >= 2, per spec §4.3's rule-utility invariant.
func inlineSingletons(seq []Symbol, g *Grammar) []Symbol {
	for {
		usage := externalUsage(seq, g)

		target := ""
		for _, name := range g.RuleNames() {
			if usage[name] <= 1 {
				target = name
				break
			}
		}
		if target == "" {
			return seq
		}

		rule, _ := g.Rule(target)
		seq = expandOccurrences(seq, target, rule.RHS)

		for _, name := range g.RuleNames() {
			if name == target {
				continue
			}
			r, _ := g.Rule(name)
			r.RHS = expandOccurrences(r.RHS, target, rule.RHS)
			g.setRule(r)
		}

		g.RemoveRule(target)
	}
}

// expandOccurrences replaces every non-terminal symbol in syms named name
// with expansion, flattening the result.
func expandOccurrences(syms []Symbol, name string, expansion []Symbol) []Symbol {
	out := make([]Symbol, 0, len(syms))
	for _, s := range syms {
		if s.IsNonTerminal() && s.Value == name {
			out = append(out, expansion...)
		} else {
			out = append(out, s)
		}
	}
	return out
}

func cloneSymbols(seq []Symbol) []Symbol {
	out := make([]Symbol, len(seq))
	copy(out, seq)
	return out
}

// Reconstruct recursively expands every symbol in compressed against g: a
// non-terminal expands to the reconstruction of its rule's RHS, a terminal
// emits itself. A correct inducer guarantees this reproduces the original
// token sequence exactly.
func Reconstruct(compressed []Symbol, g *Grammar) []string {
	out := make([]string, 0, len(compressed))
	for _, s := range compressed {
		out = append(out, expandSymbol(s, g)...)
	}
	return out
}

func expandSymbol(s Symbol, g *Grammar) []string {
	if s.IsNonTerminal() {
		if rule, ok := g.Rule(s.Value); ok {
			out := make([]string, 0, len(rule.RHS))
			for _, rs := range rule.RHS {
				out = append(out, expandSymbol(rs, g)...)
			}
			return out
		}
	}
	return []string{s.Value}
}

// Lossless reports whether expanding compressed against g reproduces tokens
// exactly.
func Lossless(tokens []string, compressed []Symbol, g *Grammar) bool {
	reconstructed := Reconstruct(compressed, g)
	if len(reconstructed) != len(tokens) {
		return false
	}
	for i := range tokens {
		if reconstructed[i] != tokens[i] {
			return false
		}
	}
	return true
}

// Coverage returns the fraction of reconstructed tokens that originate from
// expanding a rule rather than being emitted directly as a terminal in
// compressed. 0 when the reconstruction is empty.
func Coverage(compressed []Symbol, g *Grammar) float64 {
	var fromRules, total int
	for _, s := range compressed {
		expanded := expandSymbol(s, g)
		total += len(expanded)
		if s.IsNonTerminal() {
			fromRules += len(expanded)
		}
	}
	if total == 0 {
		return 0
	}
	return float64(fromRules) / float64(total)
}

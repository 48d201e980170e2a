package induce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test_Induce_SingleDigram is scenario S1 from spec §8: a single repeated
// digram collapses to one rule referenced three times.
func Test_Induce_SingleDigram(t *testing.T) {
	assert := assert.New(t)

	tokens := []string{"a", "b", "a", "b", "a", "b"}
	ind := NewInducer()

	compressed, g := ind.Induce(tokens)

	assert.Equal(1, g.Len())
	r1, ok := g.Rule("R1")
	assert.True(ok)
	assert.Equal([]string{"a", "b"}, r1.RHSValues())
	assert.Equal(3, r1.Frequency)

	assert.Equal([]string{"R1", "R1", "R1"}, symbolValues(compressed))
	assert.True(Lossless(tokens, compressed, g))
}

// Test_Induce_NoRepetition is scenario S3: no digram repeats, so no rules are
// introduced and the compressed sequence equals the input.
func Test_Induce_NoRepetition(t *testing.T) {
	assert := assert.New(t)

	tokens := []string{"a", "b", "c", "d"}
	ind := NewInducer()

	compressed, g := ind.Induce(tokens)

	assert.Equal(0, g.Len())
	assert.Equal(tokens, symbolValues(compressed))
	assert.True(Lossless(tokens, compressed, g))
}

// Test_Induce_Nested is scenario S2: a repeated sub-pattern nested inside a
// larger repeated pattern must still reconstruct losslessly.
func Test_Induce_Nested(t *testing.T) {
	assert := assert.New(t)

	tokens := []string{"a", "b", "a", "b", "c", "a", "b", "a", "b", "c"}
	ind := NewInducer()

	compressed, g := ind.Induce(tokens)

	assert.True(g.Len() >= 1)
	assert.True(Lossless(tokens, compressed, g))
	assert.True(len(compressed) < len(tokens))
}

// Test_Induce_RuleUtility checks invariant 3: every surviving rule has
// external usage >= 2.
func Test_Induce_RuleUtility(t *testing.T) {
	assert := assert.New(t)

	tokens := []string{"a", "b", "a", "b", "c", "a", "b", "a", "b", "c", "x", "y", "z"}
	ind := NewInducer()

	_, g := ind.Induce(tokens)

	for _, r := range g.Rules() {
		assert.GreaterOrEqual(r.Frequency, 2, "rule %s has frequency %d", r.LHS.Value, r.Frequency)
	}
}

// Test_Induce_NameUniqueness checks invariant 5: rule names are disjoint
// from terminal values.
func Test_Induce_NameUniqueness(t *testing.T) {
	assert := assert.New(t)

	tokens := []string{"R1", "R1", "R1", "R1"}
	ind := NewInducer()

	_, g := ind.Induce(tokens)

	terminalValues := make(map[string]bool)
	for _, s := range g.Terminals() {
		terminalValues[s.Value] = true
	}
	for _, name := range g.RuleNames() {
		assert.False(terminalValues[name], "rule name %q collides with a terminal", name)
	}
}

func Test_InduceTrace_MonotonicRuleCountPreInlining(t *testing.T) {
	assert := assert.New(t)

	tokens := []string{"a", "b", "a", "b", "c", "a", "b", "a", "b", "c"}
	ind := NewInducer()

	trace, _, _ := ind.InduceTrace(tokens)
	assert.True(len(trace) >= 2)

	// every snapshot but the final one is pre-inlining and must have a
	// non-decreasing rule count.
	for i := 1; i < len(trace)-1; i++ {
		assert.True(trace[i].Grammar.Len() >= trace[i-1].Grammar.Len())
	}
}

func Test_InduceTrace_SnapshotsAreIndependent(t *testing.T) {
	assert := assert.New(t)

	tokens := []string{"a", "b", "a", "b", "a", "b"}
	ind := NewInducer()

	trace, _, _ := ind.InduceTrace(tokens)
	assert.True(len(trace) >= 1)

	first := trace[0]
	first.Grammar.AddRule("Rextra", []string{"z", "z"})
	first.Compressed[0] = Symbol{Value: "mutated", Kind: Terminal}

	for i := 1; i < len(trace); i++ {
		assert.False(trace[i].Grammar.HasRule("Rextra"))
	}
}

func Test_Coverage_EmptyReconstructionIsZero(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0.0, Coverage(nil, NewGrammar()))
}

func Test_Coverage_AllFromRules(t *testing.T) {
	assert := assert.New(t)

	tokens := []string{"a", "b", "a", "b", "a", "b"}
	ind := NewInducer()
	compressed, g := ind.Induce(tokens)

	assert.Equal(1.0, Coverage(compressed, g))
}

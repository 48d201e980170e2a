package induce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_AddRule_ResolvesExistingNonTerminalFirst(t *testing.T) {
	assert := assert.New(t)

	g := NewGrammar()
	g.AddRule("R1", []string{"a", "b"})
	r2 := g.AddRule("R2", []string{"R1", "c"})

	assert.Equal(Symbol{Value: "R1", Kind: NonTerminal}, r2.RHS[0])
	assert.Equal(Symbol{Value: "c", Kind: Terminal}, r2.RHS[1])
}

func Test_Grammar_AddRule_OverwritesExistingRule(t *testing.T) {
	assert := assert.New(t)

	g := NewGrammar()
	g.AddRule("R1", []string{"a", "b"})
	g.AddRule("R1", []string{"c", "d"})

	assert.Equal(1, g.Len())
	r, ok := g.Rule("R1")
	assert.True(ok)
	assert.Equal([]string{"c", "d"}, r.RHSValues())
}

func Test_Grammar_AsTuples_IsDeepCopy(t *testing.T) {
	assert := assert.New(t)

	g := NewGrammar()
	g.AddRule("R1", []string{"a", "b"})

	tuples := g.AsTuples()
	tuples["R1"][0] = "mutated"

	r, _ := g.Rule("R1")
	assert.Equal("a", r.RHS[0].Value)
}

func Test_Grammar_Clone_IsIndependent(t *testing.T) {
	assert := assert.New(t)

	g := NewGrammar()
	g.AddRule("R1", []string{"a", "b"})
	g.ApplyUsage(map[string]int{"R1": 4})

	g2 := g.Clone()
	g2.AddRule("R2", []string{"R1", "c"})
	g2.ApplyUsage(map[string]int{"R1": 1, "R2": 4})

	assert.Equal(1, g.Len())
	assert.Equal(2, g2.Len())

	r1, _ := g.Rule("R1")
	assert.Equal(4, r1.Frequency)

	r1clone, _ := g2.Rule("R1")
	assert.Equal(1, r1clone.Frequency)
}

func Test_Grammar_RemoveRule(t *testing.T) {
	assert := assert.New(t)

	g := NewGrammar()
	g.AddRule("R1", []string{"a", "b"})
	g.AddRule("R2", []string{"R1", "c"})

	removed, ok := g.RemoveRule("R1")
	assert.True(ok)
	assert.Equal("R1", removed.LHS.Value)
	assert.False(g.HasRule("R1"))
	assert.Equal(1, g.Len())

	// R2 should still be reachable at its original name.
	r2, ok := g.Rule("R2")
	assert.True(ok)
	assert.Equal("R2", r2.LHS.Value)
}

func Test_Grammar_NonTerminals_AlwaysIncludesStart(t *testing.T) {
	assert := assert.New(t)

	g := NewGrammar()
	nts := g.NonTerminals()
	assert.Len(nts, 1)
	assert.Equal("S", nts[0].Value)
}

func Test_Grammar_ApplyUsage_ZeroTotalGivesZeroProbabilities(t *testing.T) {
	assert := assert.New(t)

	g := NewGrammar()
	g.AddRule("R1", []string{"a", "b"})
	g.ApplyUsage(map[string]int{})

	r, _ := g.Rule("R1")
	assert.Equal(0, r.Frequency)
	assert.Equal(0.0, r.Probability)
}

package induce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Entropy_EmptyGrammarIsZero(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0.0, Entropy(NewGrammar()))
}

func Test_Entropy_ZeroTotalFrequencyIsZero(t *testing.T) {
	assert := assert.New(t)

	g := NewGrammar()
	g.AddRule("R1", []string{"a", "b"})

	assert.Equal(0.0, Entropy(g))
}

func Test_Entropy_SingleRuleIsZero(t *testing.T) {
	assert := assert.New(t)

	// a single rule accounts for 100% of usage: -1*log2(1) = 0.
	g := NewGrammar()
	g.AddRule("R1", []string{"a", "b"})
	g.ApplyUsage(map[string]int{"R1": 5})

	assert.Equal(0.0, Entropy(g))
}

func Test_Entropy_UniformDistributionIsMaximal(t *testing.T) {
	assert := assert.New(t)

	g := NewGrammar()
	g.AddRule("R1", []string{"a", "b"})
	g.AddRule("R2", []string{"c", "d"})
	g.ApplyUsage(map[string]int{"R1": 5, "R2": 5})

	// two equiprobable outcomes: H = 1 bit.
	assert.InDelta(1.0, Entropy(g), 1e-9)
}

func Test_Entropy_SkewedDistributionIsLowerThanUniform(t *testing.T) {
	assert := assert.New(t)

	uniform := NewGrammar()
	uniform.AddRule("R1", []string{"a", "b"})
	uniform.AddRule("R2", []string{"c", "d"})
	uniform.ApplyUsage(map[string]int{"R1": 5, "R2": 5})

	skewed := NewGrammar()
	skewed.AddRule("R1", []string{"a", "b"})
	skewed.AddRule("R2", []string{"c", "d"})
	skewed.ApplyUsage(map[string]int{"R1": 9, "R2": 1})

	assert.True(Entropy(skewed) < Entropy(uniform))
}

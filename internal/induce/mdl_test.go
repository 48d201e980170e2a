package induce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_EliasGamma_KnownValues(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(1, EliasGamma(1))
	assert.Equal(3, EliasGamma(2))
	assert.Equal(3, EliasGamma(3))
	assert.Equal(5, EliasGamma(4))
	assert.Equal(5, EliasGamma(7))
	assert.Equal(7, EliasGamma(8))
}

func Test_EliasGamma_NonPositiveTreatedAsOne(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(EliasGamma(1), EliasGamma(0))
	assert.Equal(EliasGamma(1), EliasGamma(-5))
}

func Test_Score_NoRepetitionRatioIsOne(t *testing.T) {
	assert := assert.New(t)

	// scenario S3: no rules, alphabet size equals distinct token count.
	tokens := []string{"a", "b", "c", "d"}
	compressed := termSeq(tokens...)
	g := NewGrammar()
	for _, tok := range tokens {
		g.registerTerminal(tok)
	}

	score := Score(compressed, g, 4, len(tokens), 4)
	assert.InDelta(1.0, score.Ratio, 1e-9)
}

func Test_Score_RepetitionCompressesBelowNaive(t *testing.T) {
	assert := assert.New(t)

	tokens := []string{"a", "b", "a", "b", "a", "b"}
	ind := NewInducer()
	compressed, g := ind.Induce(tokens)

	score := Score(compressed, g, 2, len(tokens), 2)
	assert.True(score.Total < score.NaiveBaseline, "expected induced grammar to cost less than the naive baseline")
	assert.True(score.Ratio > 1.0)
}

func Test_Score_IsNonNegative(t *testing.T) {
	assert := assert.New(t)

	tokens := []string{"a", "b", "a", "b", "c", "x", "y", "z"}
	ind := NewInducer()
	compressed, g := ind.Induce(tokens)

	score := Score(compressed, g, 8, len(tokens), 8)
	assert.True(score.GrammarCost >= 0)
	assert.True(score.DataCost >= 0)
	assert.True(score.Total >= 0)
	assert.True(score.NaiveBaseline >= 0)
}

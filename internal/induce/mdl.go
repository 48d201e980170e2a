package induce

import (
	"math"
	"math/bits"
)

// EliasGamma returns the bit length of the Elias-gamma universal code for n:
// 2*floor(log2 n) + 1 for n >= 1. The function is made total per spec by
// treating n <= 0 as n = 1.
func EliasGamma(n int) int {
	if n < 1 {
		n = 1
	}
	return 2*(bits.Len(uint(n))-1) + 1
}

// log2Clamped returns log2(x), clamping x to at least 2 so the result is
// always non-negative, per spec's numeric policy.
func log2Clamped(x float64) float64 {
	if x < 2 {
		x = 2
	}
	return math.Log2(x)
}

// MDLScore is the two-part minimum-description-length cost of a (grammar,
// compressed sequence) pair, along with the naive per-token baseline it is
// compared against.
type MDLScore struct {
	GrammarCost   float64
	DataCost      float64
	Total         float64
	NaiveBaseline float64
	Ratio         float64
}

// Score computes the MDL cost of representing compressed under g, where
// alphabetSize is |Σ| (the size of the original terminal alphabet, supplied
// by the caller), tokenCount is the length of the original token sequence,
// and distinctTokens is the number of distinct tokens in it.
//
// V = max(2, |Σ| + |rules|) and sym_cost = log2(V). Grammar cost charges
// sym_cost per RHS symbol across all rules and nothing else (no header or
// frequency cost), to avoid over-penalizing highly repetitive input. Data
// cost is the Elias-gamma length of the compressed sequence length plus
// sym_cost per compressed symbol.
func Score(compressed []Symbol, g *Grammar, alphabetSize, tokenCount, distinctTokens int) MDLScore {
	rules := g.Rules()

	vocab := alphabetSize + len(rules)
	symCost := log2Clamped(float64(vocab))

	var grammarCost float64
	for _, r := range rules {
		grammarCost += float64(len(r.RHS)) * symCost
	}

	dataCost := float64(EliasGamma(len(compressed))) + float64(len(compressed))*symCost
	total := grammarCost + dataCost

	sigma := distinctTokens
	if sigma < 2 {
		sigma = 2
	}
	naive := float64(EliasGamma(tokenCount)) + float64(tokenCount)*log2Clamped(float64(sigma))

	ratio := 1.0
	if total > 0 {
		ratio = naive / total
	}

	return MDLScore{
		GrammarCost:   grammarCost,
		DataCost:      dataCost,
		Total:         total,
		NaiveBaseline: naive,
		Ratio:         ratio,
	}
}

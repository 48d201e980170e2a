package induce

import "math"

// Entropy returns the Shannon entropy, in bits, of the grammar's rule-usage
// distribution: H = -sum(p_r * log2 p_r) where p_r = r.Frequency / total
// frequency. Returns 0 if the grammar has no rules or zero total frequency;
// a rule with zero frequency is treated as excluded from the distribution
// and contributes 0.
func Entropy(g *Grammar) float64 {
	rules := g.Rules()
	if len(rules) == 0 {
		return 0
	}

	var total int
	for _, r := range rules {
		total += r.Frequency
	}
	if total == 0 {
		return 0
	}

	var h float64
	for _, r := range rules {
		if r.Frequency == 0 {
			continue
		}
		p := float64(r.Frequency) / float64(total)
		h -= p * math.Log2(p)
	}

	return h
}

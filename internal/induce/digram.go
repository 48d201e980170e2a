package induce

// digram is an ordered pair of adjacent symbols.
type digram [2]Symbol

// digramCounts counts every adjacent, possibly-overlapping occurrence of each
// digram in seq. For "a a a" the digram (a,a) is counted twice.
func digramCounts(seq []Symbol) map[digram]int {
	counts := make(map[digram]int)
	for i := 0; i < len(seq)-1; i++ {
		counts[digram{seq[i], seq[i+1]}]++
	}
	return counts
}

// mostFrequentDigram picks the digram with the highest count in counts,
// breaking ties by leftmost first occurrence in seq: the scan only updates
// its running best on a strictly greater count, so the first digram to reach
// the eventual maximum wins. Reports ok=false if seq has fewer than two
// symbols.
func mostFrequentDigram(seq []Symbol, counts map[digram]int) (d digram, count int, ok bool) {
	if len(seq) < 2 {
		return digram{}, 0, false
	}

	best := -1
	var bestDigram digram
	seen := make(map[digram]bool, len(counts))

	for i := 0; i < len(seq)-1; i++ {
		cur := digram{seq[i], seq[i+1]}
		if seen[cur] {
			continue
		}
		seen[cur] = true

		if c := counts[cur]; c > best {
			best = c
			bestDigram = cur
		}
	}

	return bestDigram, best, true
}

// replaceAll performs a linear left-to-right, non-overlapping replacement of
// every occurrence of d in seq with lhs. For "a a a" with digram (a,a) it
// produces [lhs, a]: the scan advances by 2 on a match and by 1 otherwise,
// so overlapping candidate positions are never both replaced.
func replaceAll(seq []Symbol, d digram, lhs Symbol) []Symbol {
	out := make([]Symbol, 0, len(seq))

	for i := 0; i < len(seq); {
		if i+1 < len(seq) && seq[i] == d[0] && seq[i+1] == d[1] {
			out = append(out, lhs)
			i += 2
		} else {
			out = append(out, seq[i])
			i++
		}
	}

	return out
}

// Package entropy scores probes by the Shannon entropy of the outcome
// distribution they induce over a hypothesis set, and selects the probe
// with the highest score.
package entropy

import (
	"math"
	"sort"
)

// Oracle computes the outcome of a probe against one hypothesis.
// It must be pure: the same pair always produces the same outcome.
type Oracle[P, H any, O comparable] func(probe P, hypothesis H) (O, error)

// Partition groups hypotheses by the outcome the probe produces against
// each of them and returns the size of every group.
func Partition[P, H any, O comparable](probe P, hypotheses []H, oracle Oracle[P, H, O]) (map[O]int, error) {
	groups := make(map[O]int)
	for _, hypothesis := range hypotheses {
		outcome, err := oracle(probe, hypothesis)
		if err != nil {
			return nil, err
		}
		groups[outcome]++
	}
	return groups, nil
}

// Score returns the entropy in bits of the outcome distribution the probe
// induces over hypotheses. An empty hypothesis set scores 0.
func Score[P, H any, O comparable](probe P, hypotheses []H, oracle Oracle[P, H, O]) (float64, error) {
	if len(hypotheses) == 0 {
		return 0, nil
	}
	groups, err := Partition(probe, hypotheses, oracle)
	if err != nil {
		return 0, err
	}
	return Shannon(groups), nil
}

// Shannon returns -sum(p*log2(p)) over the group sizes.
// Sizes are summed smallest first so that two partitions with the same
// multiset of sizes always produce bit-identical results.
func Shannon[O comparable](groups map[O]int) float64 {
	if len(groups) <= 1 {
		return 0
	}
	counts := make([]int, 0, len(groups))
	total := 0
	for _, count := range groups {
		if count > 0 {
			counts = append(counts, count)
			total += count
		}
	}
	return FromCounts(counts, total)
}

// FromCounts is Shannon for a plain slice of group sizes summing to total.
// The slice is sorted in place.
func FromCounts(counts []int, total int) float64 {
	if total <= 0 {
		return 0
	}
	sort.Ints(counts)
	n := float64(total)
	h := 0.0
	for _, count := range counts {
		if count <= 0 || count == total {
			continue
		}
		p := float64(count) / n
		h -= p * math.Log2(p)
	}
	return h
}

// Binary is the entropy in bits of a two-outcome distribution with
// probability p for one outcome. Probabilities at or outside 0 and 1 score 0.
func Binary(p float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}
	q := 1 - p
	return -(p*math.Log2(p) + q*math.Log2(q))
}

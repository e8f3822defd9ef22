package comfort

import "sort"

// RankedCity is an Index with its competition rank. Tied scores share
// the lower rank number and the next distinct score skips ahead by the
// size of the tie group.
type RankedCity struct {
	Index
	Rank int `json:"rank"`
}

// Rank orders indices by descending score and assigns competition ranks.
// Ties compare by exact score equality; tied cities keep their relative
// order from the stable sort. Nil or empty input yields empty output.
func Rank(indices []Index) []RankedCity {
	if len(indices) == 0 {
		return []RankedCity{}
	}

	sorted := make([]Index, len(indices))
	copy(sorted, indices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	ranked := make([]RankedCity, 0, len(sorted))
	for i := 0; i < len(sorted); {
		// Find the end of the tie group starting at i.
		j := i + 1
		for j < len(sorted) && sorted[j].Score == sorted[i].Score {
			j++
		}
		for k := i; k < j; k++ {
			ranked = append(ranked, RankedCity{Index: sorted[k], Rank: i + 1})
		}
		i = j
	}

	return ranked
}

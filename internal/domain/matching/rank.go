package matching

import "sort"

// Scored pairs an item with its overlap score.
type Scored[T any] struct {
	Item  T
	Score int
}

// Rank scores every item, orders by descending score (stable, so the
// incoming order breaks ties) and keeps at most limit entries. A
// non-positive limit keeps everything.
func Rank[T any](items []T, requirements func(T) []string, skills []string, limit int) []Scored[T] {
	out := make([]Scored[T], 0, len(items))
	for _, it := range items {
		out = append(out, Scored[T]{Item: it, Score: Score(requirements(it), skills)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

package mix

import "github.com/ewilliams-labs/segue/internal/core/domain"

// BuildSetList accumulates tracks in order while the running total stays
// within the duration budget (seconds), stopping at the first track that
// would exceed it. It is a strict greedy prefix, not bin-packing: a smaller
// track later in the sequence is never pulled forward. If even the first
// track exceeds the budget, the result is empty.
func BuildSetList(tracks []domain.TrackFeatureSet, budget float64) []domain.TrackFeatureSet {
	setList := []domain.TrackFeatureSet{}
	total := 0.0
	for _, t := range tracks {
		if total+t.Duration > budget {
			break
		}
		setList = append(setList, t)
		total += t.Duration
	}
	return setList
}

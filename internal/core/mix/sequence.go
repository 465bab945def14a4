package mix

import (
	"sort"

	"github.com/ewilliams-labs/segue/internal/core/domain"
)

// Energy curve names understood by OrderByEnergy. Any other name leaves the
// input order untouched.
const (
	CurveBuild      = "build"
	CurveWave       = "wave"
	CurvePeakMiddle = "peak_middle"
	CurveConstant   = "constant"
)

// Planner orders collections of tracks. Planning is deterministic: the same
// input always yields the same sequence. An empty input yields an empty
// sequence, never an error; that policy holds for every method here.
type Planner struct {
	scorer *Scorer
}

// NewPlanner constructs a Planner that uses the given scorer for
// compatibility-driven ordering.
func NewPlanner(scorer *Scorer) *Planner {
	if scorer == nil {
		scorer = NewScorer(DefaultConfig())
	}
	return &Planner{scorer: scorer}
}

// OrderByEnergy reorders tracks to follow a named energy curve.
//
//   - build: ascending mean energy.
//   - wave: alternate the loudest and quietest halves; leftovers from an
//     uneven median split are appended in their sorted order, high tail first.
//   - peak_middle: ascend to a single peak at the midpoint, then descend.
//   - constant or anything unrecognized: input order.
func (p *Planner) OrderByEnergy(tracks []domain.TrackFeatureSet, curve string) []domain.TrackFeatureSet {
	out := make([]domain.TrackFeatureSet, len(tracks))
	copy(out, tracks)
	if len(out) < 2 {
		return out
	}

	switch curve {
	case CurveBuild:
		sortByEnergy(out, true)

	case CurveWave:
		median := medianEnergy(out)
		var high, low []domain.TrackFeatureSet
		for _, t := range out {
			if t.MeanEnergy > median {
				high = append(high, t)
			} else {
				low = append(low, t)
			}
		}
		sortByEnergy(high, false)
		sortByEnergy(low, true)

		out = out[:0]
		pairs := len(high)
		if len(low) < pairs {
			pairs = len(low)
		}
		for i := 0; i < pairs; i++ {
			out = append(out, high[i], low[i])
		}
		out = append(out, high[pairs:]...)
		out = append(out, low[pairs:]...)

	case CurvePeakMiddle:
		sortByEnergy(out, true)
		mid := len(out) / 2
		secondHalf := make([]domain.TrackFeatureSet, len(out)-mid)
		copy(secondHalf, out[mid:])
		sortByEnergy(secondHalf, false)
		copy(out[mid:], secondHalf)
	}

	return out
}

// OrderByCompatibility sequences tracks with a greedy nearest-neighbour walk
// over the directed compatibility matrix: anchor at the first input track,
// then repeatedly take the unplaced track with the highest score edge from
// the last placed one, breaking ties toward the lowest original index.
//
// This is a deliberately greedy heuristic, not a shortest-Hamiltonian-path
// solver; a globally better ordering may exist.
func (p *Planner) OrderByCompatibility(tracks []domain.TrackFeatureSet) ([]domain.TrackFeatureSet, error) {
	if len(tracks) == 0 {
		return []domain.TrackFeatureSet{}, nil
	}

	matrix, err := p.scorer.ScoreMatrix(tracks)
	if err != nil {
		return nil, err
	}

	order := make([]int, 0, len(tracks))
	order = append(order, 0)
	placed := make([]bool, len(tracks))
	placed[0] = true

	for len(order) < len(tracks) {
		current := order[len(order)-1]
		next := -1
		best := -1.0
		for j := range tracks {
			if placed[j] {
				continue
			}
			// A zero edge is a valid comparison value; strict > keeps the
			// lowest index on ties.
			if matrix[current][j] > best {
				best = matrix[current][j]
				next = j
			}
		}
		order = append(order, next)
		placed[next] = true
	}

	out := make([]domain.TrackFeatureSet, len(order))
	for i, idx := range order {
		out[i] = tracks[idx]
	}
	return out, nil
}

// RefineKeyTransitions greedily re-walks a sequence preferring root-note
// compatibility against the circle-of-fifths adjacency table: from the
// current track, the earliest remaining track in a compatible root wins;
// with no compatible root remaining, the earliest remaining track is taken.
func (p *Planner) RefineKeyTransitions(tracks []domain.TrackFeatureSet) []domain.TrackFeatureSet {
	if len(tracks) < 2 {
		out := make([]domain.TrackFeatureSet, len(tracks))
		copy(out, tracks)
		return out
	}

	remaining := make([]domain.TrackFeatureSet, len(tracks))
	copy(remaining, tracks)

	out := []domain.TrackFeatureSet{remaining[0]}
	remaining = remaining[1:]

	for len(remaining) > 0 {
		current := out[len(out)-1]
		compatible := compatibleRoots(current.Key.Root)

		pick := 0
		for i, t := range remaining {
			if _, ok := compatible[t.Key.Root]; ok {
				pick = i
				break
			}
		}

		out = append(out, remaining[pick])
		remaining = append(remaining[:pick], remaining[pick+1:]...)
	}
	return out
}

// RefineTempoTransitions sorts a sequence by tempo ascending so BPM moves
// gradually across the set. Applying this after RefineKeyTransitions gives
// a different result than the reverse order; callers own the pass ordering.
func (p *Planner) RefineTempoTransitions(tracks []domain.TrackFeatureSet) []domain.TrackFeatureSet {
	out := make([]domain.TrackFeatureSet, len(tracks))
	copy(out, tracks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Tempo < out[j].Tempo
	})
	return out
}

var noteOrder = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// compatibleRoots returns the root notes that mix smoothly out of the given
// root: the root itself, the perfect fourth and fifth, and the relative
// minor/major root. This models Camelot-wheel adjacency at root-note
// granularity.
func compatibleRoots(root string) map[string]struct{} {
	idx := -1
	for i, n := range noteOrder {
		if n == root {
			idx = i
			break
		}
	}
	if idx < 0 {
		return map[string]struct{}{root: {}}
	}
	return map[string]struct{}{
		noteOrder[idx]:        {},
		noteOrder[(idx+5)%12]: {}, // perfect fourth
		noteOrder[(idx+7)%12]: {}, // perfect fifth
		noteOrder[(idx+9)%12]: {}, // relative minor/major root
	}
}

func sortByEnergy(tracks []domain.TrackFeatureSet, ascending bool) {
	sort.SliceStable(tracks, func(i, j int) bool {
		if ascending {
			return tracks[i].MeanEnergy < tracks[j].MeanEnergy
		}
		return tracks[i].MeanEnergy > tracks[j].MeanEnergy
	})
}

func medianEnergy(tracks []domain.TrackFeatureSet) float64 {
	values := make([]float64, len(tracks))
	for i, t := range tracks {
		values[i] = t.MeanEnergy
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid]) / 2
	}
	return values[mid]
}

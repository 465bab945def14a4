package mix

import (
	"math"
	"sort"

	"github.com/ewilliams-labs/segue/internal/core/domain"
)

// CueDetector derives jump-in points from a track's onset series.
type CueDetector struct {
	cfg Config
}

// NewCueDetector constructs a CueDetector. A zero-value Config is replaced
// by DefaultConfig.
func NewCueDetector(cfg Config) *CueDetector {
	if cfg.MaxCuePoints == 0 {
		cfg = DefaultConfig()
	}
	return &CueDetector{cfg: cfg}
}

// Detect returns ranked, deduplicated cue points for a track.
//
// Each onset is classified against the beat grid: within BeatSyncWindow of a
// beat it is a beat-sync cue; otherwise, if its strength clears the
// StrongOnsetPercentile of all onset strengths, a strong onset; otherwise a
// plain onset. Candidates are ranked by strength and thinned with a greedy
// minimum-spacing filter; a rejected candidate is dropped, never merged into
// a neighbour. An empty onset series yields an empty result.
func (d *CueDetector) Detect(track domain.TrackFeatureSet) []domain.CuePoint {
	if len(track.Onsets) == 0 {
		return []domain.CuePoint{}
	}

	strengths := make([]float64, len(track.Onsets))
	for i, o := range track.Onsets {
		strengths[i] = o.Strength
	}
	strongCutoff := domain.Percentile(strengths, d.cfg.StrongOnsetPercentile)

	beatTimes := make([]float64, len(track.Beats))
	for i, b := range track.Beats {
		beatTimes[i] = b.Time
	}

	candidates := make([]domain.CuePoint, 0, len(track.Onsets))
	for _, onset := range track.Onsets {
		nearest, distance := nearestBeat(beatTimes, onset.Time)

		var category domain.CueCategory
		switch {
		case distance >= 0 && distance < d.cfg.BeatSyncWindow:
			category = domain.CueBeatSync
		case onset.Strength > strongCutoff:
			category = domain.CueStrongOnset
		default:
			category = domain.CueOnset
		}

		candidates = append(candidates, domain.CuePoint{
			Time:         onset.Time,
			Category:     category,
			Strength:     onset.Strength,
			NearestBeat:  nearest,
			BeatDistance: distance,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Strength > candidates[j].Strength
	})

	kept := []domain.CuePoint{}
	for _, c := range candidates {
		if len(kept) == d.cfg.MaxCuePoints {
			break
		}
		tooClose := false
		for _, k := range kept {
			if math.Abs(c.Time-k.Time) <= d.cfg.CueMinSpacing {
				tooClose = true
				break
			}
		}
		if !tooClose {
			kept = append(kept, c)
		}
	}
	return kept
}

// nearestBeat finds the beat closest to t. With an empty beat grid it
// returns (0, -1); a negative distance never classifies as beat-sync.
func nearestBeat(beatTimes []float64, t float64) (float64, float64) {
	if len(beatTimes) == 0 {
		return 0, -1
	}
	// Beat grids arrive time-ordered from the collaborator.
	i := sort.SearchFloat64s(beatTimes, t)
	best := math.Inf(1)
	nearest := 0.0
	for _, idx := range []int{i - 1, i} {
		if idx < 0 || idx >= len(beatTimes) {
			continue
		}
		if d := math.Abs(beatTimes[idx] - t); d < best {
			best = d
			nearest = beatTimes[idx]
		}
	}
	return nearest, best
}

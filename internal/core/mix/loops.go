package mix

import (
	"fmt"
	"sort"

	"github.com/ewilliams-labs/segue/internal/core/domain"
)

// LoopEngine derives loopable spans from a track's sections and beat grid.
type LoopEngine struct {
	cfg Config
}

// NewLoopEngine constructs a LoopEngine. A zero-value Config is replaced by
// DefaultConfig.
func NewLoopEngine(cfg Config) *LoopEngine {
	if cfg.MaxLoops == 0 {
		cfg = DefaultConfig()
	}
	return &LoopEngine{cfg: cfg}
}

// Suggest returns ranked, non-overlapping loop candidates with durations in
// [minDuration, maxDuration].
//
// Two generators feed one pool: every detected section whose span fits the
// bounds, and every beat-aligned span covering exactly a phrase length
// (4, 8, 16 or 32 beats). Instead of scanning all beat pairs, each start
// beat is probed only at the phrase-length offsets, which yields the same
// candidates as the quadratic scan. The pool is ranked by energy
// stability and reduced by greedy interval selection: a candidate touching
// any accepted span is dropped.
func (e *LoopEngine) Suggest(track domain.TrackFeatureSet, minDuration, maxDuration float64) []domain.LoopCandidate {
	var pool []domain.LoopCandidate

	for _, section := range track.Sections {
		duration := section.End - section.Start
		if duration < minDuration || duration > maxDuration {
			continue
		}
		stability, meanEnergy := spanStability(track, section.Start, section.End)
		pool = append(pool, domain.LoopCandidate{
			Start:      section.Start,
			End:        section.End,
			Duration:   duration,
			Source:     "section:" + section.Label,
			Stability:  stability,
			MeanEnergy: meanEnergy,
		})
	}

	for i := range track.Beats {
		for _, count := range e.cfg.PhraseLengths {
			j := i + count
			if j >= len(track.Beats) {
				break
			}
			start := track.Beats[i].Time
			end := track.Beats[j].Time
			duration := end - start
			if duration < minDuration || duration > maxDuration {
				continue
			}
			stability, meanEnergy := spanStability(track, start, end)
			pool = append(pool, domain.LoopCandidate{
				Start:      start,
				End:        end,
				Duration:   duration,
				Source:     fmt.Sprintf("beats:%d", count),
				Stability:  stability,
				MeanEnergy: meanEnergy,
			})
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Stability > pool[j].Stability
	})

	kept := []domain.LoopCandidate{}
	for _, candidate := range pool {
		if len(kept) == e.cfg.MaxLoops {
			break
		}
		overlaps := false
		for _, k := range kept {
			if candidate.Start < k.End && candidate.End > k.Start {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, candidate)
		}
	}
	return kept
}

// spanStability measures how flat the energy is across [start, end]:
// 1 - stddev/mean of the RMS samples in the span. A silent span (mean 0)
// has undefined variation and ranks lowest instead of dividing by zero.
func spanStability(track domain.TrackFeatureSet, start, end float64) (float64, float64) {
	values := track.EnergyInSpan(start, end)
	mean := domain.Mean(values)
	if mean == 0 {
		return 0, 0
	}
	return 1 - domain.StdDev(values)/mean, mean
}

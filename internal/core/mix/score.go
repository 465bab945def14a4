package mix

import (
	"fmt"
	"math"

	"github.com/ewilliams-labs/segue/internal/core/domain"
)

// Verdict bands for an overall compatibility score.
const (
	VerdictExcellent = "excellent"
	VerdictGood      = "good"
	VerdictModerate  = "moderate"
	VerdictLow       = "low"
)

// Scorer computes pairwise mixing compatibility. It is stateless and safe
// for concurrent use; results for the same ordered pair are identical
// across calls, so callers may memoize freely.
type Scorer struct {
	cfg Config
}

// NewScorer constructs a Scorer. The zero-value Config is replaced by
// DefaultConfig.
func NewScorer(cfg Config) *Scorer {
	if cfg.TempoWeight == 0 && cfg.KeyWeight == 0 && cfg.EnergyWeight == 0 {
		cfg = DefaultConfig()
	}
	return &Scorer{cfg: cfg}
}

// Score rates how well track b follows track a.
//
// Tempo degrades linearly at 2 points per BPM of difference. Key scoring is
// a coarse heuristic (same key 100, same root 80, otherwise 50), not full
// harmonic-mixing theory. Energy compares mean RMS relative to the louder
// of the two tracks.
func (s *Scorer) Score(a, b domain.TrackFeatureSet) (domain.CompatibilityScore, error) {
	if err := a.Validate(); err != nil {
		return domain.CompatibilityScore{}, fmt.Errorf("mix: score %q vs %q: %w", a.Ref, b.Ref, err)
	}
	if err := b.Validate(); err != nil {
		return domain.CompatibilityScore{}, fmt.Errorf("mix: score %q vs %q: %w", a.Ref, b.Ref, err)
	}

	tempo := clampScore(100 - 2*math.Abs(a.Tempo-b.Tempo))
	key := keyScore(a.Key, b.Key)
	energy := energyScore(a.MeanEnergy, b.MeanEnergy)

	overall := tempo*s.cfg.TempoWeight + key*s.cfg.KeyWeight + energy*s.cfg.EnergyWeight

	return domain.CompatibilityScore{
		TrackA:  a.Ref,
		TrackB:  b.Ref,
		Tempo:   tempo,
		Key:     key,
		Energy:  energy,
		Overall: clampScore(overall),
	}, nil
}

// ScoreMatrix computes the full directed score matrix for a batch. The
// diagonal is left at zero; it is never consulted by the planner.
func (s *Scorer) ScoreMatrix(tracks []domain.TrackFeatureSet) ([][]float64, error) {
	matrix := make([][]float64, len(tracks))
	for i := range tracks {
		matrix[i] = make([]float64, len(tracks))
		for j := range tracks {
			if i == j {
				continue
			}
			score, err := s.Score(tracks[i], tracks[j])
			if err != nil {
				return nil, err
			}
			matrix[i][j] = score.Overall
		}
	}
	return matrix, nil
}

// Verdict maps an overall score to a human-readable compatibility band.
func Verdict(overall float64) string {
	switch {
	case overall >= 80:
		return VerdictExcellent
	case overall >= 60:
		return VerdictGood
	case overall >= 40:
		return VerdictModerate
	default:
		return VerdictLow
	}
}

func keyScore(a, b domain.Key) float64 {
	switch {
	case a.Root == b.Root && a.Mode == b.Mode:
		return 100
	case a.Root == b.Root:
		return 80
	default:
		return 50
	}
}

func energyScore(meanA, meanB float64) float64 {
	max := math.Max(meanA, meanB)
	if max == 0 {
		// Both means are exactly zero: no difference to measure.
		return 100
	}
	return clampScore(100 - 100*math.Abs(meanA-meanB)/max)
}

package mix

import (
	"fmt"
	"math"

	"github.com/ewilliams-labs/segue/internal/core/domain"
)

// SuggestMixPoints finds good moments to blend out of track a and into
// track b. Exit points are energy valleys in a (quiet spots well past the
// opening); entry points are energy peaks in b (loud spots well before the
// end). Both are measured against a rolling average of the energy profile.
func SuggestMixPoints(cfg Config, a, b domain.TrackFeatureSet) (domain.MixPoints, error) {
	if cfg.RollingWindow == 0 {
		cfg = DefaultConfig()
	}
	if err := a.Validate(); err != nil {
		return domain.MixPoints{}, fmt.Errorf("mix: mix points %q -> %q: %w", a.Ref, b.Ref, err)
	}
	if err := b.Validate(); err != nil {
		return domain.MixPoints{}, fmt.Errorf("mix: mix points %q -> %q: %w", a.Ref, b.Ref, err)
	}

	exits := profileExtremes(a.Energy, cfg.RollingWindow, func(energy, avg, t float64) bool {
		return energy < avg*cfg.ValleyFactor && t > cfg.EdgeMargin
	})
	entries := profileExtremes(b.Energy, cfg.RollingWindow, func(energy, avg, t float64) bool {
		return energy > avg*cfg.PeakFactor && t < b.Duration-cfg.EdgeMargin
	})

	if len(exits) > cfg.MaxMixPoints {
		exits = exits[:cfg.MaxMixPoints]
	}
	if len(entries) > cfg.MaxMixPoints {
		entries = entries[:cfg.MaxMixPoints]
	}

	return domain.MixPoints{
		ExitPoints:          exits,
		EntryPoints:         entries,
		RecommendedDuration: math.Min(cfg.MaxMixDuration, a.Duration*cfg.MixDurationShare),
		TempoSyncRequired:   math.Abs(a.Tempo-b.Tempo) > cfg.TempoSyncSpread,
	}, nil
}

// profileExtremes returns, in time order, the timestamps where the energy
// profile satisfies the predicate against its centered rolling average.
func profileExtremes(samples []domain.EnergySample, window int, keep func(energy, avg, t float64) bool) []float64 {
	avg := rollingAverage(samples, window)
	var out []float64
	for i, s := range samples {
		if keep(s.RMS, avg[i], s.Time) {
			out = append(out, s.Time)
		}
	}
	return out
}

// rollingAverage computes a centered moving average. Near the edges the
// window shrinks to the samples that exist, so boundary values are not
// artificially damped into false peaks or valleys.
func rollingAverage(samples []domain.EnergySample, window int) []float64 {
	out := make([]float64, len(samples))
	if window < 1 {
		window = 1
	}
	half := window / 2
	for i := range samples {
		sum := 0.0
		count := 0
		for j := i - half; j < i-half+window; j++ {
			if j >= 0 && j < len(samples) {
				sum += samples[j].RMS
				count++
			}
		}
		out[i] = sum / float64(count)
	}
	return out
}

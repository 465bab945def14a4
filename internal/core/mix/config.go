// Package mix is the decision layer of the service: pure, deterministic
// functions that turn per-track feature sets into mixing decisions. Nothing
// in this package mutates a TrackFeatureSet, performs I/O, or holds state
// between calls.
package mix

// Config collects the heuristic policy constants the decision layer runs on.
// The defaults reproduce the tuned behavior of the original tooling; every
// value here is a policy choice, not a derived quantity, and changing one
// changes observable results.
type Config struct {
	// Compatibility weights (must sum to 1).
	TempoWeight  float64
	KeyWeight    float64
	EnergyWeight float64

	// Cue point detection.
	BeatSyncWindow        float64 // max onset-to-beat distance for "beat sync", seconds
	StrongOnsetPercentile float64 // strength percentile for "strong onset"
	CueMinSpacing         float64 // min distance between kept cue points, seconds
	MaxCuePoints          int

	// Loop suggestion.
	PhraseLengths []int // musically meaningful beat counts
	MaxLoops      int

	// Performance zone boundaries, as fractions of total duration.
	// A section is bucketed by where its start time falls:
	// [0,IntroEnd) intro, [IntroEnd,BuildEnd) build, [BuildEnd,DropEnd) drop,
	// [DropEnd,BreakdownEnd) breakdown, [BreakdownEnd,1] outro.
	IntroEnd     float64
	BuildEnd     float64
	DropEnd      float64
	BreakdownEnd float64

	// Mix point suggestion.
	ValleyFactor     float64 // exit when energy < factor * rolling average
	PeakFactor       float64 // entry when energy > factor * rolling average
	EdgeMargin       float64 // ignore exits before / entries after this margin, seconds
	RollingWindow    int     // samples in the rolling energy average
	MaxMixPoints     int
	MaxMixDuration   float64 // cap on recommended blend length, seconds
	MixDurationShare float64 // recommended blend length as a share of the outgoing track
	TempoSyncSpread  float64 // BPM difference beyond which sync is advised
}

// DefaultConfig returns the standard policy constants.
func DefaultConfig() Config {
	return Config{
		TempoWeight:  0.4,
		KeyWeight:    0.3,
		EnergyWeight: 0.3,

		BeatSyncWindow:        0.1,
		StrongOnsetPercentile: 80,
		CueMinSpacing:         2.0,
		MaxCuePoints:          20,

		PhraseLengths: []int{4, 8, 16, 32},
		MaxLoops:      10,

		IntroEnd:     0.2,
		BuildEnd:     0.4,
		DropEnd:      0.7,
		BreakdownEnd: 0.9,

		ValleyFactor:     0.8,
		PeakFactor:       1.2,
		EdgeMargin:       30,
		RollingWindow:    20,
		MaxMixPoints:     5,
		MaxMixDuration:   16,
		MixDurationShare: 0.1,
		TempoSyncSpread:  5,
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

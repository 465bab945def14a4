package domain

import "fmt"

// Key is a musical key: a root note plus a major/minor mode.
type Key struct {
	Root string `json:"root"` // "C", "C#", ... "B"
	Mode string `json:"mode"` // "major" or "minor"
}

func (k Key) String() string {
	if k.Root == "" {
		return ""
	}
	return k.Root + " " + k.Mode
}

// EnergySample is one point of the RMS energy profile.
type EnergySample struct {
	Time float64 `json:"time"`
	RMS  float64 `json:"rms"`
}

// BeatEvent is a timestamped rhythmic event with a strength value.
// Used for both the beat grid and the onset series.
type BeatEvent struct {
	Time     float64 `json:"time"`
	Strength float64 `json:"strength"`
}

// Section is a labeled structural span of a track.
type Section struct {
	Label string  `json:"label"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// TrackFeatureSet is the per-track analysis record produced by the
// feature-extraction collaborator. It is immutable once built: everything
// downstream (scores, cues, loops, zones) is derived from it, never
// written back into it.
type TrackFeatureSet struct {
	Ref      string  `json:"ref"`
	Duration float64 `json:"duration"` // seconds

	Tempo           float64 `json:"tempo"` // BPM
	TempoConfidence float64 `json:"tempo_confidence"`

	Key           Key     `json:"key"`
	KeyConfidence float64 `json:"key_confidence"`

	Energy       []EnergySample `json:"energy"`
	MeanEnergy   float64        `json:"mean_energy"`
	MaxEnergy    float64        `json:"max_energy"`
	EnergyStdDev float64        `json:"energy_stddev"`

	Beats    []BeatEvent `json:"beats"`
	Onsets   []BeatEvent `json:"onsets"`
	Sections []Section   `json:"sections"`
	Drops    []float64   `json:"drops"` // timestamps of energy breakdowns
}

// Validate rejects feature sets the decision layer cannot reason about.
func (t TrackFeatureSet) Validate() error {
	if t.Duration <= 0 {
		return fmt.Errorf("%w: track %q has duration %v", ErrInvalidTrack, t.Ref, t.Duration)
	}
	if t.Tempo <= 0 {
		return fmt.Errorf("%w: track %q has tempo %v", ErrInvalidTrack, t.Ref, t.Tempo)
	}
	return nil
}

// SummarizeEnergy recomputes the scalar energy summaries from the sample
// series. Callers building a TrackFeatureSet by hand (or from a wire format
// that omits the summaries) should call this once before use.
func (t *TrackFeatureSet) SummarizeEnergy() {
	values := make([]float64, len(t.Energy))
	for i, s := range t.Energy {
		values[i] = s.RMS
	}
	t.MeanEnergy = Mean(values)
	t.MaxEnergy = Max(values)
	t.EnergyStdDev = StdDev(values)
}

// EnergyInSpan returns the RMS values of samples with start <= t <= end.
func (t TrackFeatureSet) EnergyInSpan(start, end float64) []float64 {
	var values []float64
	for _, s := range t.Energy {
		if s.Time >= start && s.Time <= end {
			values = append(values, s.RMS)
		}
	}
	return values
}

package extractor

import "github.com/ewilliams-labs/segue/internal/core/domain"

// wireAnalysis is the analysis service's response for one track.
type wireAnalysis struct {
	TrackRef string        `json:"track_ref"`
	Duration float64       `json:"duration"`
	Tempo    wireTempo     `json:"tempo"`
	Key      wireKey       `json:"key"`
	Energy   []wireSample  `json:"energy"`
	Beats    []wireBeat    `json:"beats"`
	Onsets   []wireBeat    `json:"onsets"`
	Sections []wireSection `json:"sections"`
	Drops    []float64     `json:"drops,omitempty"`
}

type wireTempo struct {
	BPM        float64 `json:"bpm"`
	Confidence float64 `json:"confidence"`
}

type wireKey struct {
	Root       string  `json:"root"`
	Mode       string  `json:"mode"`
	Confidence float64 `json:"confidence"`
}

type wireSample struct {
	Time float64 `json:"time"`
	RMS  float64 `json:"rms"`
}

type wireBeat struct {
	Time     float64 `json:"time"`
	Strength float64 `json:"strength"`
}

type wireSection struct {
	Label string  `json:"label"`
	Start float64 `json:"start_time"`
	End   float64 `json:"end_time"`
}

// toDomain converts a wireAnalysis to a domain.TrackFeatureSet and fills the
// derived energy summaries.
func (wa wireAnalysis) toDomain() domain.TrackFeatureSet {
	track := domain.TrackFeatureSet{
		Ref:             wa.TrackRef,
		Duration:        wa.Duration,
		Tempo:           wa.Tempo.BPM,
		TempoConfidence: wa.Tempo.Confidence,
		Key:             domain.Key{Root: wa.Key.Root, Mode: wa.Key.Mode},
		KeyConfidence:   wa.Key.Confidence,
		Drops:           wa.Drops,
	}
	for _, s := range wa.Energy {
		track.Energy = append(track.Energy, domain.EnergySample{Time: s.Time, RMS: s.RMS})
	}
	for _, b := range wa.Beats {
		track.Beats = append(track.Beats, domain.BeatEvent{Time: b.Time, Strength: b.Strength})
	}
	for _, o := range wa.Onsets {
		track.Onsets = append(track.Onsets, domain.BeatEvent{Time: o.Time, Strength: o.Strength})
	}
	for _, s := range wa.Sections {
		track.Sections = append(track.Sections, domain.Section{Label: s.Label, Start: s.Start, End: s.End})
	}
	track.SummarizeEnergy()
	return track
}

package mix

import (
	"math"
	"testing"

	"github.com/ewilliams-labs/segue/internal/core/domain"
)

func TestCueDetector_Detect_Classification(t *testing.T) {
	detector := NewCueDetector(DefaultConfig())

	track := domain.TrackFeatureSet{
		Ref:      "a.mp3",
		Duration: 120,
		Tempo:    120,
		Beats: []domain.BeatEvent{
			{Time: 10, Strength: 1},
			{Time: 10.5, Strength: 1},
			{Time: 11, Strength: 1},
		},
		// Strengths 1..10; the 80th percentile cutoff is 8.2, so only the
		// strength-10 onset clears it.
		Onsets: []domain.BeatEvent{
			{Time: 10.05, Strength: 1}, // 0.05s from a beat: beat sync
			{Time: 30, Strength: 10},   // far from beats, very strong
			{Time: 50, Strength: 5},    // far from beats, middling
			{Time: 60, Strength: 2},
			{Time: 70, Strength: 3},
			{Time: 80, Strength: 4},
			{Time: 90, Strength: 6},
			{Time: 95, Strength: 7},
			{Time: 100, Strength: 8},
			{Time: 105, Strength: 9},
		},
	}

	cues := detector.Detect(track)

	byTime := map[float64]domain.CuePoint{}
	for _, c := range cues {
		byTime[c.Time] = c
	}

	if c, ok := byTime[10.05]; !ok || c.Category != domain.CueBeatSync {
		t.Errorf("onset at 10.05 should be beat sync, got %+v", c)
	} else {
		if c.NearestBeat != 10 {
			t.Errorf("nearest beat: want 10, got %v", c.NearestBeat)
		}
		if math.Abs(c.BeatDistance-0.05) > 1e-9 {
			t.Errorf("beat distance: want 0.05, got %v", c.BeatDistance)
		}
	}
	if c, ok := byTime[30]; !ok || c.Category != domain.CueStrongOnset {
		t.Errorf("onset at 30 should be strong onset, got %+v", c)
	}
	if c, ok := byTime[50]; !ok || c.Category != domain.CueOnset {
		t.Errorf("onset at 50 should be plain onset, got %+v", c)
	}

	// Ranked by strength descending.
	for i := 1; i < len(cues); i++ {
		if cues[i].Strength > cues[i-1].Strength {
			t.Fatalf("cues not ranked by strength: %+v", cues)
		}
	}
}

func TestCueDetector_Detect_MinSpacing(t *testing.T) {
	detector := NewCueDetector(DefaultConfig())

	// Strongest onset at 40s; neighbours within 2s must be dropped even
	// though they outrank later candidates.
	track := domain.TrackFeatureSet{
		Ref:      "a.mp3",
		Duration: 120,
		Tempo:    120,
		Onsets: []domain.BeatEvent{
			{Time: 40, Strength: 10},
			{Time: 41, Strength: 9},
			{Time: 41.9, Strength: 8},
			{Time: 50, Strength: 7},
			{Time: 51.5, Strength: 6},
		},
	}

	cues := detector.Detect(track)
	if len(cues) != 2 {
		t.Fatalf("want 2 surviving cues, got %d: %+v", len(cues), cues)
	}
	if cues[0].Time != 40 || cues[1].Time != 50 {
		t.Fatalf("want cues at 40 and 50, got %+v", cues)
	}
	for i := range cues {
		for j := i + 1; j < len(cues); j++ {
			if math.Abs(cues[i].Time-cues[j].Time) <= 2.0 {
				t.Fatalf("cues %d and %d within 2s: %+v", i, j, cues)
			}
		}
	}
}

func TestCueDetector_Detect_CapsAtTwenty(t *testing.T) {
	detector := NewCueDetector(DefaultConfig())

	track := domain.TrackFeatureSet{Ref: "a.mp3", Duration: 600, Tempo: 120}
	for i := 0; i < 60; i++ {
		track.Onsets = append(track.Onsets, domain.BeatEvent{
			Time:     float64(i) * 5, // well clear of the spacing filter
			Strength: float64(i),
		})
	}

	cues := detector.Detect(track)
	if len(cues) != 20 {
		t.Fatalf("want 20 cues, got %d", len(cues))
	}
}

func TestCueDetector_Detect_EmptyOnsets(t *testing.T) {
	detector := NewCueDetector(DefaultConfig())
	got := detector.Detect(domain.TrackFeatureSet{Ref: "a.mp3", Duration: 60, Tempo: 120})
	if len(got) != 0 {
		t.Fatalf("want empty result, got %+v", got)
	}
}

func TestCueDetector_Detect_NoBeatGrid(t *testing.T) {
	detector := NewCueDetector(DefaultConfig())
	track := domain.TrackFeatureSet{
		Ref:      "a.mp3",
		Duration: 60,
		Tempo:    120,
		Onsets:   []domain.BeatEvent{{Time: 5, Strength: 1}},
	}

	cues := detector.Detect(track)
	if len(cues) != 1 {
		t.Fatalf("want 1 cue, got %d", len(cues))
	}
	if cues[0].Category == domain.CueBeatSync {
		t.Errorf("no beat grid must not classify beat sync: %+v", cues[0])
	}
	if cues[0].BeatDistance != -1 {
		t.Errorf("beat distance sentinel: want -1, got %v", cues[0].BeatDistance)
	}
}

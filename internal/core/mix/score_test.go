package mix

import (
	"errors"
	"math"
	"testing"

	"github.com/ewilliams-labs/segue/internal/core/domain"
)

func track(ref string, tempo float64, key domain.Key, meanEnergy float64) domain.TrackFeatureSet {
	return domain.TrackFeatureSet{
		Ref:        ref,
		Duration:   240,
		Tempo:      tempo,
		Key:        key,
		MeanEnergy: meanEnergy,
	}
}

func TestScorer_Score(t *testing.T) {
	cMajor := domain.Key{Root: "C", Mode: "major"}
	cMinor := domain.Key{Root: "C", Mode: "minor"}
	gMajor := domain.Key{Root: "G", Mode: "major"}

	tests := []struct {
		name        string
		a, b        domain.TrackFeatureSet
		wantTempo   float64
		wantKey     float64
		wantEnergy  float64
		wantOverall float64
	}{
		{
			name:        "identical tracks score 100",
			a:           track("a", 128, cMajor, 0.5),
			b:           track("a", 128, cMajor, 0.5),
			wantTempo:   100,
			wantKey:     100,
			wantEnergy:  100,
			wantOverall: 100,
		},
		{
			name:        "close tempo and energy",
			a:           track("a", 128, cMajor, 0.50),
			b:           track("b", 130, cMajor, 0.52),
			wantTempo:   96,
			wantKey:     100,
			wantEnergy:  100 - 100*0.02/0.52,
			wantOverall: 96*0.4 + 100*0.3 + (100-100*0.02/0.52)*0.3,
		},
		{
			name:        "same root different mode",
			a:           track("a", 120, cMajor, 0.5),
			b:           track("b", 120, cMinor, 0.5),
			wantTempo:   100,
			wantKey:     80,
			wantEnergy:  100,
			wantOverall: 100*0.4 + 80*0.3 + 100*0.3,
		},
		{
			name:        "different root",
			a:           track("a", 120, cMajor, 0.5),
			b:           track("b", 120, gMajor, 0.5),
			wantTempo:   100,
			wantKey:     50,
			wantEnergy:  100,
			wantOverall: 100*0.4 + 50*0.3 + 100*0.3,
		},
		{
			name:        "huge tempo gap clamps to zero",
			a:           track("a", 80, cMajor, 0.5),
			b:           track("b", 175, cMajor, 0.5),
			wantTempo:   0,
			wantKey:     100,
			wantEnergy:  100,
			wantOverall: 0*0.4 + 100*0.3 + 100*0.3,
		},
		{
			name:        "both energies zero score 100",
			a:           track("a", 120, cMajor, 0),
			b:           track("b", 120, cMajor, 0),
			wantTempo:   100,
			wantKey:     100,
			wantEnergy:  100,
			wantOverall: 100,
		},
		{
			name:        "one energy zero scores 0",
			a:           track("a", 120, cMajor, 0),
			b:           track("b", 120, cMajor, 0.5),
			wantTempo:   100,
			wantKey:     100,
			wantEnergy:  0,
			wantOverall: 100*0.4 + 100*0.3,
		},
	}

	scorer := NewScorer(DefaultConfig())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := scorer.Score(tc.a, tc.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			approx := func(name string, got, want float64) {
				t.Helper()
				if math.Abs(got-want) > 1e-9 {
					t.Errorf("%s: want %v, got %v", name, want, got)
				}
			}
			approx("tempo", got.Tempo, tc.wantTempo)
			approx("key", got.Key, tc.wantKey)
			approx("energy", got.Energy, tc.wantEnergy)
			approx("overall", got.Overall, tc.wantOverall)

			for name, v := range map[string]float64{
				"tempo": got.Tempo, "key": got.Key, "energy": got.Energy, "overall": got.Overall,
			} {
				if v < 0 || v > 100 {
					t.Errorf("%s score %v out of [0,100]", name, v)
				}
			}
		})
	}
}

func TestScorer_Score_EndToEndScenario(t *testing.T) {
	// 128 vs 130 BPM, identical key, mean energies 0.50 vs 0.52.
	a := track("a", 128, domain.Key{Root: "C", Mode: "major"}, 0.50)
	b := track("b", 130, domain.Key{Root: "C", Mode: "major"}, 0.52)

	got, err := NewScorer(DefaultConfig()).Score(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Tempo != 96 {
		t.Errorf("tempo: want 96, got %v", got.Tempo)
	}
	if got.Key != 100 {
		t.Errorf("key: want 100, got %v", got.Key)
	}
	if math.Abs(got.Energy-96.15384615) > 1e-6 {
		t.Errorf("energy: want ~96.154, got %v", got.Energy)
	}
	if math.Abs(got.Overall-97.24615385) > 1e-6 {
		t.Errorf("overall: want ~97.246, got %v", got.Overall)
	}
}

func TestScorer_Score_InvalidInput(t *testing.T) {
	scorer := NewScorer(DefaultConfig())
	good := track("good", 128, domain.Key{Root: "C", Mode: "major"}, 0.5)

	bad := good
	bad.Duration = 0
	if _, err := scorer.Score(bad, good); !errors.Is(err, domain.ErrInvalidTrack) {
		t.Errorf("zero duration: want ErrInvalidTrack, got %v", err)
	}

	bad = good
	bad.Tempo = -1
	if _, err := scorer.Score(good, bad); !errors.Is(err, domain.ErrInvalidTrack) {
		t.Errorf("negative tempo: want ErrInvalidTrack, got %v", err)
	}
}

func TestScorer_ScoreMatrix(t *testing.T) {
	tracks := []domain.TrackFeatureSet{
		track("a", 128, domain.Key{Root: "C", Mode: "major"}, 0.5),
		track("b", 130, domain.Key{Root: "C", Mode: "major"}, 0.5),
		track("c", 90, domain.Key{Root: "F", Mode: "minor"}, 0.2),
	}

	matrix, err := NewScorer(DefaultConfig()).ScoreMatrix(tracks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matrix) != 3 {
		t.Fatalf("want 3 rows, got %d", len(matrix))
	}
	for i := range matrix {
		if matrix[i][i] != 0 {
			t.Errorf("diagonal [%d][%d] should stay 0, got %v", i, i, matrix[i][i])
		}
	}
	if matrix[0][1] <= matrix[0][2] {
		t.Errorf("near-identical pair should outscore distant pair: %v vs %v", matrix[0][1], matrix[0][2])
	}
}

func TestVerdict(t *testing.T) {
	tests := []struct {
		overall float64
		want    string
	}{
		{95, VerdictExcellent},
		{80, VerdictExcellent},
		{79.9, VerdictGood},
		{60, VerdictGood},
		{45, VerdictModerate},
		{40, VerdictModerate},
		{39.9, VerdictLow},
		{0, VerdictLow},
	}
	for _, tc := range tests {
		if got := Verdict(tc.overall); got != tc.want {
			t.Errorf("Verdict(%v): want %q, got %q", tc.overall, tc.want, got)
		}
	}
}

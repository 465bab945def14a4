package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/ewilliams-labs/segue/internal/core/domain"
)

const (
	notesMaxCues  = 5
	notesMaxLoops = 3

	energyHigh   = 0.1
	energyMedium = 0.05
)

// WriteNotes writes a plain-text performance report for one annotated track.
func WriteNotes(w io.Writer, track domain.TrackFeatureSet, cues []domain.CuePoint, loops []domain.LoopCandidate, zones domain.PerformanceZones) error {
	var b strings.Builder

	fmt.Fprintf(&b, "DJ PERFORMANCE NOTES\nTrack: %s\n%s\n\n", track.Ref, strings.Repeat("=", 50))

	fmt.Fprintf(&b, "TRACK INFO:\n")
	fmt.Fprintf(&b, "- BPM: %.1f\n", track.Tempo)
	fmt.Fprintf(&b, "- Key: %s\n", track.Key)
	fmt.Fprintf(&b, "- Duration: %.1fs\n", track.Duration)
	fmt.Fprintf(&b, "- Energy Level: %s\n\n", energyLevel(track.MeanEnergy))

	fmt.Fprintf(&b, "TOP CUE POINTS:\n")
	for i, cue := range cues {
		if i == notesMaxCues {
			break
		}
		fmt.Fprintf(&b, "%d. %.1fs - %s (strength %.2f)\n", i+1, cue.Time, cue.Category, cue.Strength)
	}

	fmt.Fprintf(&b, "\nLOOP SUGGESTIONS:\n")
	for i, loop := range loops {
		if i == notesMaxLoops {
			break
		}
		fmt.Fprintf(&b, "%d. %.1fs - %.1fs (%.1fs)\n   Source: %s\n", i+1, loop.Start, loop.End, loop.Duration, loop.Source)
	}

	fmt.Fprintf(&b, "\nPERFORMANCE ZONES:\n")
	for _, z := range []struct {
		name string
		zone domain.Zone
	}{
		{"Intro", zones.Intro},
		{"Build", zones.Build},
		{"Drop", zones.Drop},
		{"Breakdown", zones.Breakdown},
		{"Outro", zones.Outro},
	} {
		fmt.Fprintf(&b, "- %s: %.1fs - %.1fs\n", z.name, z.zone.Start, z.zone.End)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("export: write notes: %w", err)
	}
	return nil
}

func energyLevel(mean float64) string {
	switch {
	case mean > energyHigh:
		return "High"
	case mean > energyMedium:
		return "Medium"
	default:
		return "Low"
	}
}

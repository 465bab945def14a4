// Package export serializes planned sets into formats DJ software can
// import, plus a plain-text performance notes report.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ewilliams-labs/segue/internal/core/domain"
)

// Format names accepted by Write.
const (
	FormatM3U       = "m3u"
	FormatCSV       = "csv"
	FormatJSON      = "json"
	FormatRekordbox = "rekordbox"
)

// ErrUnknownFormat is returned for a format name Write does not support.
var ErrUnknownFormat = errors.New("export: unknown format")

// Write serializes the set in the named format.
func Write(w io.Writer, format, name string, tracks []domain.TrackFeatureSet) error {
	switch format {
	case FormatM3U:
		return WriteM3U(w, tracks)
	case FormatCSV:
		return WriteCSV(w, tracks)
	case FormatJSON:
		return WriteJSON(w, name, tracks)
	case FormatRekordbox:
		return WriteRekordboxXML(w, name, tracks)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteM3U writes an extended M3U playlist. Track refs double as both the
// display title and the location line.
func WriteM3U(w io.Writer, tracks []domain.TrackFeatureSet) error {
	if _, err := fmt.Fprintln(w, "#EXTM3U"); err != nil {
		return fmt.Errorf("export: write m3u: %w", err)
	}
	for _, track := range tracks {
		if _, err := fmt.Fprintf(w, "#EXTINF:%d,%s\n%s\n", int(track.Duration), track.Ref, track.Ref); err != nil {
			return fmt.Errorf("export: write m3u: %w", err)
		}
	}
	return nil
}

// WriteCSV writes one row per track with the scalar features a DJ cares
// about when eyeballing a set.
func WriteCSV(w io.Writer, tracks []domain.TrackFeatureSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ref", "duration", "bpm", "key", "mean_energy"}); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	for _, track := range tracks {
		row := []string{
			track.Ref,
			strconv.FormatFloat(track.Duration, 'f', 1, 64),
			strconv.FormatFloat(track.Tempo, 'f', 1, 64),
			track.Key.String(),
			strconv.FormatFloat(track.MeanEnergy, 'f', 4, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	return nil
}

type jsonSet struct {
	Name   string                   `json:"name"`
	Count  int                      `json:"count"`
	Tracks []domain.TrackFeatureSet `json:"tracks"`
}

// WriteJSON writes the full feature sets as an indented JSON document.
func WriteJSON(w io.Writer, name string, tracks []domain.TrackFeatureSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonSet{Name: name, Count: len(tracks), Tracks: tracks}); err != nil {
		return fmt.Errorf("export: write json: %w", err)
	}
	return nil
}

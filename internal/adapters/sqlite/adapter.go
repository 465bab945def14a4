// Package sqlite provides a SQLite-backed implementation of the feature
// repository port. Scalar features live in columns; the time series
// (energy, beats, onsets, sections, drops) are stored as JSON text since
// they are only ever read back whole.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ewilliams-labs/segue/internal/core/domain"
	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously
)

// Adapter implements the repository port for SQLite
type Adapter struct {
	db *sql.DB
}

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Save upserts one analysed track keyed by its ref.
func (a *Adapter) Save(ctx context.Context, track domain.TrackFeatureSet) error {
	energy, err := json.Marshal(track.Energy)
	if err != nil {
		return fmt.Errorf("failed to encode energy series: %w", err)
	}
	beats, err := json.Marshal(track.Beats)
	if err != nil {
		return fmt.Errorf("failed to encode beat series: %w", err)
	}
	onsets, err := json.Marshal(track.Onsets)
	if err != nil {
		return fmt.Errorf("failed to encode onset series: %w", err)
	}
	sections, err := json.Marshal(track.Sections)
	if err != nil {
		return fmt.Errorf("failed to encode sections: %w", err)
	}
	drops, err := json.Marshal(track.Drops)
	if err != nil {
		return fmt.Errorf("failed to encode drops: %w", err)
	}

	query := `
		INSERT INTO track_features (
			ref, duration, tempo, tempo_confidence,
			key_root, key_mode, key_confidence,
			mean_energy, max_energy, energy_stddev,
			energy, beats, onsets, sections, drops
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(ref) DO UPDATE SET
			duration=excluded.duration,
			tempo=excluded.tempo,
			tempo_confidence=excluded.tempo_confidence,
			key_root=excluded.key_root,
			key_mode=excluded.key_mode,
			key_confidence=excluded.key_confidence,
			mean_energy=excluded.mean_energy,
			max_energy=excluded.max_energy,
			energy_stddev=excluded.energy_stddev,
			energy=excluded.energy,
			beats=excluded.beats,
			onsets=excluded.onsets,
			sections=excluded.sections,
			drops=excluded.drops;
	`
	if _, err := a.db.ExecContext(
		ctx,
		query,
		track.Ref,
		track.Duration,
		track.Tempo,
		track.TempoConfidence,
		track.Key.Root,
		track.Key.Mode,
		track.KeyConfidence,
		track.MeanEnergy,
		track.MaxEnergy,
		track.EnergyStdDev,
		string(energy),
		string(beats),
		string(onsets),
		string(sections),
		string(drops),
	); err != nil {
		return fmt.Errorf("failed to save track %s: %w", track.Ref, err)
	}

	return nil
}

// GetByRef loads one analysed track, or domain.ErrNotFound.
func (a *Adapter) GetByRef(ctx context.Context, ref string) (domain.TrackFeatureSet, error) {
	row := a.db.QueryRowContext(ctx, selectColumns+" FROM track_features WHERE ref = ?", ref)
	track, err := scanTrack(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.TrackFeatureSet{}, domain.ErrNotFound
		}
		return domain.TrackFeatureSet{}, fmt.Errorf("failed to load track %s: %w", ref, err)
	}
	return track, nil
}

// List returns every cached track ordered by ref.
func (a *Adapter) List(ctx context.Context) ([]domain.TrackFeatureSet, error) {
	rows, err := a.db.QueryContext(ctx, selectColumns+" FROM track_features ORDER BY ref ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	defer rows.Close()

	var tracks []domain.TrackFeatureSet
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, track)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tracks: %w", err)
	}

	return tracks, nil
}

const selectColumns = `
	SELECT ref, duration, tempo, tempo_confidence,
		key_root, key_mode, key_confidence,
		mean_energy, max_energy, energy_stddev,
		energy, beats, onsets, sections, drops`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrack(row rowScanner) (domain.TrackFeatureSet, error) {
	var track domain.TrackFeatureSet
	var energy, beats, onsets, sections, drops sql.NullString
	if err := row.Scan(
		&track.Ref,
		&track.Duration,
		&track.Tempo,
		&track.TempoConfidence,
		&track.Key.Root,
		&track.Key.Mode,
		&track.KeyConfidence,
		&track.MeanEnergy,
		&track.MaxEnergy,
		&track.EnergyStdDev,
		&energy,
		&beats,
		&onsets,
		&sections,
		&drops,
	); err != nil {
		return domain.TrackFeatureSet{}, err
	}

	if err := decodeSeries(energy, &track.Energy); err != nil {
		return domain.TrackFeatureSet{}, fmt.Errorf("decode energy series: %w", err)
	}
	if err := decodeSeries(beats, &track.Beats); err != nil {
		return domain.TrackFeatureSet{}, fmt.Errorf("decode beat series: %w", err)
	}
	if err := decodeSeries(onsets, &track.Onsets); err != nil {
		return domain.TrackFeatureSet{}, fmt.Errorf("decode onset series: %w", err)
	}
	if err := decodeSeries(sections, &track.Sections); err != nil {
		return domain.TrackFeatureSet{}, fmt.Errorf("decode sections: %w", err)
	}
	if err := decodeSeries(drops, &track.Drops); err != nil {
		return domain.TrackFeatureSet{}, fmt.Errorf("decode drops: %w", err)
	}

	return track, nil
}

func decodeSeries[T any](raw sql.NullString, dst *T) error {
	if !raw.Valid || raw.String == "" || raw.String == "null" {
		return nil
	}
	return json.Unmarshal([]byte(raw.String), dst)
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS track_features (
		ref TEXT PRIMARY KEY,
		duration REAL NOT NULL,
		tempo REAL NOT NULL,
		tempo_confidence REAL,
		key_root TEXT,
		key_mode TEXT,
		key_confidence REAL,
		mean_energy REAL,
		max_energy REAL,
		energy_stddev REAL,
		energy TEXT,
		beats TEXT,
		onsets TEXT,
		sections TEXT,
		drops TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}

	return nil
}

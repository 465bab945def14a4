package domain

// CompatibilityScore rates how well an ordered pair of tracks mixes.
// All sub-scores and the overall score are in [0,100]. Scores are cheap,
// pure derivations; they are recomputed on demand and never persisted.
type CompatibilityScore struct {
	TrackA string `json:"track_a"`
	TrackB string `json:"track_b"`

	Tempo   float64 `json:"tempo"`
	Key     float64 `json:"key"`
	Energy  float64 `json:"energy"`
	Overall float64 `json:"overall"`
}

// CueCategory classifies how a cue point relates to the beat grid.
type CueCategory string

const (
	CueBeatSync    CueCategory = "beat_sync"
	CueStrongOnset CueCategory = "strong_onset"
	CueOnset       CueCategory = "onset"
)

// CuePoint is a recommended jump-in position derived from the onset series.
// BeatDistance is -1 when the track carries no beat grid at all.
type CuePoint struct {
	Time         float64     `json:"time"`
	Category     CueCategory `json:"category"`
	Strength     float64     `json:"strength"`
	NearestBeat  float64     `json:"nearest_beat"`
	BeatDistance float64     `json:"beat_distance"`
}

// LoopCandidate is a suggested loopable span. Source records where the
// candidate came from, e.g. "section:Chorus" or "beats:8".
type LoopCandidate struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Duration   float64 `json:"duration"`
	Source     string  `json:"source"`
	Stability  float64 `json:"stability"` // 1 - coefficient of variation
	MeanEnergy float64 `json:"mean_energy"`
}

// Zone is one performance region of a track. An unassigned zone keeps its
// zero value (start == end == 0).
type Zone struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Energy     float64 `json:"energy"`
	Complexity float64 `json:"complexity"` // energy standard deviation
}

// PerformanceZones buckets a track's sections into the five canonical
// DJ performance roles. Assignment is positional, not acoustic: "drop"
// means "highest-energy section starting in the middle third", not a
// detected bass drop.
type PerformanceZones struct {
	Intro     Zone `json:"intro"`
	Build     Zone `json:"build"`
	Drop      Zone `json:"drop"`
	Breakdown Zone `json:"breakdown"`
	Outro     Zone `json:"outro"`
}

// MixPoints suggests where to blend out of one track and into another.
type MixPoints struct {
	ExitPoints          []float64 `json:"exit_points"`  // energy valleys in the outgoing track
	EntryPoints         []float64 `json:"entry_points"` // energy peaks in the incoming track
	RecommendedDuration float64   `json:"recommended_duration"`
	TempoSyncRequired   bool      `json:"tempo_sync_required"`
}

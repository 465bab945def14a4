// Package services coordinates the feature extractor, the feature cache,
// and the mix decision layer behind a single application-facing API.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ewilliams-labs/segue/internal/core/domain"
	"github.com/ewilliams-labs/segue/internal/core/mix"
	"github.com/ewilliams-labs/segue/internal/core/ports"
)

// Orchestrator wires the driven ports to the mix core.
type Orchestrator struct {
	extractor ports.FeatureExtractor
	repo      ports.FeatureRepository

	cfg     mix.Config
	scorer  *mix.Scorer
	planner *mix.Planner
	cues    *mix.CueDetector
	loops   *mix.LoopEngine
	zones   *mix.ZoneSegmenter

	workers int
}

// NewOrchestrator constructs an Orchestrator. workers bounds the batch
// analysis fan-out; values below 1 are clamped to 1.
func NewOrchestrator(extractor ports.FeatureExtractor, repo ports.FeatureRepository, cfg mix.Config, workers int) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	scorer := mix.NewScorer(cfg)
	return &Orchestrator{
		extractor: extractor,
		repo:      repo,
		cfg:       cfg,
		scorer:    scorer,
		planner:   mix.NewPlanner(scorer),
		cues:      mix.NewCueDetector(cfg),
		loops:     mix.NewLoopEngine(cfg),
		zones:     mix.NewZoneSegmenter(cfg),
		workers:   workers,
	}
}

// BatchFailure records one track that could not be analysed.
type BatchFailure struct {
	Ref    string `json:"ref"`
	Reason string `json:"reason"`
}

// BatchReport aggregates the outcome of a batch analysis. Analyzed and
// Failed preserve the order of the requested refs.
type BatchReport struct {
	ID       string         `json:"id"`
	Analyzed []string       `json:"analyzed"`
	Failed   []BatchFailure `json:"failed"`
}

// CompatibilityReport pairs the raw score with the verdict band and the
// suggested transition between the two tracks.
type CompatibilityReport struct {
	Score     domain.CompatibilityScore `json:"score"`
	Verdict   string                    `json:"verdict"`
	MixPoints domain.MixPoints          `json:"mix_points"`
}

// AnalyzeTrack extracts features for one track and caches the result.
func (o *Orchestrator) AnalyzeTrack(ctx context.Context, ref string) (domain.TrackFeatureSet, error) {
	track, err := o.extractor.Extract(ctx, ref)
	if err != nil {
		return domain.TrackFeatureSet{}, fmt.Errorf("service: extract %s: %w", ref, err)
	}
	if err := track.Validate(); err != nil {
		return domain.TrackFeatureSet{}, fmt.Errorf("service: extract %s: %w", ref, err)
	}
	track.SummarizeEnergy()
	if err := o.repo.Save(ctx, track); err != nil {
		return domain.TrackFeatureSet{}, fmt.Errorf("service: cache %s: %w", ref, err)
	}
	return track, nil
}

// AnalyzeBatch analyses every ref with bounded concurrency. A track that
// fails does not abort the batch; it lands in the report's Failed list.
func (o *Orchestrator) AnalyzeBatch(ctx context.Context, refs []string) (BatchReport, error) {
	if len(refs) == 0 {
		return BatchReport{}, fmt.Errorf("service: analyze batch: %w", domain.ErrEmptyBatch)
	}

	results := make([]error, len(refs))
	sem := make(chan struct{}, o.workers)
	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, ref string) {
			defer wg.Done()
			defer func() { <-sem }()
			_, err := o.AnalyzeTrack(ctx, ref)
			results[i] = err
		}(i, ref)
	}
	wg.Wait()

	report := BatchReport{ID: uuid.NewString()}
	for i, ref := range refs {
		if results[i] != nil {
			report.Failed = append(report.Failed, BatchFailure{Ref: ref, Reason: results[i].Error()})
			continue
		}
		report.Analyzed = append(report.Analyzed, ref)
	}
	return report, nil
}

// Compatibility scores the ordered pair (from, to) and suggests mix points.
func (o *Orchestrator) Compatibility(ctx context.Context, fromRef, toRef string) (CompatibilityReport, error) {
	from, err := o.getOrAnalyze(ctx, fromRef)
	if err != nil {
		return CompatibilityReport{}, err
	}
	to, err := o.getOrAnalyze(ctx, toRef)
	if err != nil {
		return CompatibilityReport{}, err
	}

	score, err := o.scorer.Score(from, to)
	if err != nil {
		return CompatibilityReport{}, fmt.Errorf("service: score %s -> %s: %w", fromRef, toRef, err)
	}
	points, err := mix.SuggestMixPoints(o.cfg, from, to)
	if err != nil {
		return CompatibilityReport{}, fmt.Errorf("service: mix points %s -> %s: %w", fromRef, toRef, err)
	}
	return CompatibilityReport{
		Score:     score,
		Verdict:   mix.Verdict(score.Overall),
		MixPoints: points,
	}, nil
}

// Track returns the feature set for one ref, extracting on a cache miss.
func (o *Orchestrator) Track(ctx context.Context, ref string) (domain.TrackFeatureSet, error) {
	return o.getOrAnalyze(ctx, ref)
}

// TrackCues returns ranked cue points for a cached track. minStrength in
// (0,1] drops cues below that onset strength; 0 keeps everything.
func (o *Orchestrator) TrackCues(ctx context.Context, ref string, minStrength float64) ([]domain.CuePoint, error) {
	track, err := o.getOrAnalyze(ctx, ref)
	if err != nil {
		return nil, err
	}
	cues := o.cues.Detect(track)
	if minStrength <= 0 {
		return cues, nil
	}
	kept := make([]domain.CuePoint, 0, len(cues))
	for _, cue := range cues {
		if cue.Strength >= minStrength {
			kept = append(kept, cue)
		}
	}
	return kept, nil
}

// TrackLoops returns loop candidates with durations inside [minDuration, maxDuration].
func (o *Orchestrator) TrackLoops(ctx context.Context, ref string, minDuration, maxDuration float64) ([]domain.LoopCandidate, error) {
	track, err := o.getOrAnalyze(ctx, ref)
	if err != nil {
		return nil, err
	}
	return o.loops.Suggest(track, minDuration, maxDuration), nil
}

// TrackZones segments a cached track into performance zones.
func (o *Orchestrator) TrackZones(ctx context.Context, ref string) (domain.PerformanceZones, error) {
	track, err := o.getOrAnalyze(ctx, ref)
	if err != nil {
		return domain.PerformanceZones{}, err
	}
	return o.zones.Segment(track), nil
}

// PlanRequest selects the ordering strategy for a set.
//
// Greedy and Curve are alternatives; when Greedy is set the curve is
// ignored. KeyPass and TempoPass refine the base order in that sequence.
// Budget trims the ordered set to a seconds budget when positive.
type PlanRequest struct {
	Refs      []string `json:"refs"`
	Curve     string   `json:"curve"`
	Greedy    bool     `json:"greedy"`
	KeyPass   bool     `json:"key_pass"`
	TempoPass bool     `json:"tempo_pass"`
	Budget    float64  `json:"budget_seconds"`
}

// SetTransition annotates one adjacent pair in a planned set.
type SetTransition struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Score   float64 `json:"score"`
	Verdict string  `json:"verdict"`
}

// SetPlan is a fully ordered, budget-trimmed set list.
type SetPlan struct {
	ID            string                   `json:"id"`
	Tracks        []domain.TrackFeatureSet `json:"tracks"`
	Transitions   []SetTransition          `json:"transitions"`
	TotalDuration float64                  `json:"total_duration"`
}

// PlanSet orders the requested tracks and annotates adjacent transitions.
func (o *Orchestrator) PlanSet(ctx context.Context, req PlanRequest) (SetPlan, error) {
	if len(req.Refs) == 0 {
		return SetPlan{}, fmt.Errorf("service: plan set: %w", domain.ErrEmptyBatch)
	}

	tracks := make([]domain.TrackFeatureSet, 0, len(req.Refs))
	for _, ref := range req.Refs {
		track, err := o.getOrAnalyze(ctx, ref)
		if err != nil {
			return SetPlan{}, err
		}
		tracks = append(tracks, track)
	}

	ordered := tracks
	if req.Greedy {
		var err error
		ordered, err = o.planner.OrderByCompatibility(tracks)
		if err != nil {
			return SetPlan{}, fmt.Errorf("service: plan set: %w", err)
		}
	} else if req.Curve != "" {
		ordered = o.planner.OrderByEnergy(tracks, req.Curve)
	}
	if req.KeyPass {
		ordered = o.planner.RefineKeyTransitions(ordered)
	}
	if req.TempoPass {
		ordered = o.planner.RefineTempoTransitions(ordered)
	}
	if req.Budget > 0 {
		ordered = mix.BuildSetList(ordered, req.Budget)
	}

	plan := SetPlan{ID: uuid.NewString(), Tracks: ordered}
	for _, track := range ordered {
		plan.TotalDuration += track.Duration
	}
	for i := 0; i+1 < len(ordered); i++ {
		score, err := o.scorer.Score(ordered[i], ordered[i+1])
		if err != nil {
			return SetPlan{}, fmt.Errorf("service: plan set: %w", err)
		}
		plan.Transitions = append(plan.Transitions, SetTransition{
			From:    ordered[i].Ref,
			To:      ordered[i+1].Ref,
			Score:   score.Overall,
			Verdict: mix.Verdict(score.Overall),
		})
	}
	return plan, nil
}

// getOrAnalyze serves a track from the cache, falling back to a fresh
// extraction on a miss.
func (o *Orchestrator) getOrAnalyze(ctx context.Context, ref string) (domain.TrackFeatureSet, error) {
	track, err := o.repo.GetByRef(ctx, ref)
	if err == nil {
		return track, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.TrackFeatureSet{}, fmt.Errorf("service: load %s: %w", ref, err)
	}
	return o.AnalyzeTrack(ctx, ref)
}

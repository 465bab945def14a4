package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ewilliams-labs/segue/internal/core/domain"
)

type recordingAnalyzer struct {
	mu       sync.Mutex
	analyzed []string
	failRef  string
}

func (r *recordingAnalyzer) AnalyzeTrack(ctx context.Context, ref string) (domain.TrackFeatureSet, error) {
	if ref == r.failRef {
		return domain.TrackFeatureSet{}, errors.New("analyzer: boom")
	}
	r.mu.Lock()
	r.analyzed = append(r.analyzed, ref)
	r.mu.Unlock()
	return domain.TrackFeatureSet{Ref: ref, Duration: 240, Tempo: 128}, nil
}

func TestPoolProcessesJobs(t *testing.T) {
	analyzer := &recordingAnalyzer{failRef: "bad"}
	pool := NewPool(analyzer, 2, 10)
	pool.Start(2)

	for _, ref := range []string{"a", "b", "bad", "c"} {
		pool.Submit(Job{Ref: ref})
	}
	pool.Stop()

	analyzer.mu.Lock()
	defer analyzer.mu.Unlock()
	if len(analyzer.analyzed) != 3 {
		t.Fatalf("analyzed = %v, want 3 tracks", analyzer.analyzed)
	}
	seen := make(map[string]bool, len(analyzer.analyzed))
	for _, ref := range analyzer.analyzed {
		seen[ref] = true
	}
	for _, want := range []string{"a", "b", "c"} {
		if !seen[want] {
			t.Errorf("track %s was not analyzed", want)
		}
	}
	if seen["bad"] {
		t.Error("failed track must not be recorded as analyzed")
	}
}

func TestPoolDropsWhenQueueFull(t *testing.T) {
	analyzer := &recordingAnalyzer{}
	pool := NewPool(analyzer, 1, 1)
	// Not started: the queue holds one job, the rest are dropped.

	pool.Submit(Job{Ref: "a"})
	pool.Submit(Job{Ref: "b"})

	pool.Start(1)
	pool.Stop()

	analyzer.mu.Lock()
	defer analyzer.mu.Unlock()
	if len(analyzer.analyzed) != 1 || analyzer.analyzed[0] != "a" {
		t.Fatalf("analyzed = %v, want [a]", analyzer.analyzed)
	}
}

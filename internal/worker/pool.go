// Package worker provides background processing for track analysis jobs.
package worker

import (
	"context"
	"log"
	"sync"

	"github.com/ewilliams-labs/segue/internal/core/domain"
)

// Analyzer is the slice of the orchestrator the pool needs.
type Analyzer interface {
	AnalyzeTrack(ctx context.Context, ref string) (domain.TrackFeatureSet, error)
}

// Job represents a background analysis task for one track.
type Job struct {
	Ref string
}

// Pool manages background workers for async analysis jobs.
type Pool struct {
	analyzer Analyzer
	jobs     chan Job
	wg       sync.WaitGroup
}

// NewPool creates a worker pool with the given worker count and queue size.
func NewPool(analyzer Analyzer, workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{analyzer: analyzer, jobs: make(chan Job, queueSize)}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		log.Printf("WARN worker: dropping job for %s", job.Ref)
	}
}

func (p *Pool) processJob(job Job) {
	if job.Ref == "" {
		log.Printf("WARN worker: skipping job with empty ref")
		return
	}

	track, err := p.analyzer.AnalyzeTrack(context.Background(), job.Ref)
	if err != nil {
		log.Printf("WARN worker: failed to analyze %s: %v", job.Ref, err)
		return
	}
	log.Printf("worker: analyzed %s (%.1f BPM, %.1fs)", track.Ref, track.Tempo, track.Duration)
}

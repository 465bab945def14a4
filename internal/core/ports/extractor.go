package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/ewilliams-labs/segue/internal/core/domain"
)

// ErrExtraction indicates the feature-extraction collaborator failed for a
// track. The core never retries extraction; any retry policy lives behind
// this boundary.
var ErrExtraction = errors.New("extraction failed")

// ExtractionError carries the track reference an extraction failed for.
type ExtractionError struct {
	Ref string
	Err error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("extraction failed for %q", e.Ref)
	}
	return fmt.Sprintf("extraction failed for %q: %v", e.Ref, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtraction
}

// FeatureExtractor is the audio-analysis collaborator boundary. Extract is
// called once per track; the returned feature set is treated as immutable
// by everything downstream.
type FeatureExtractor interface {
	Extract(ctx context.Context, ref string) (domain.TrackFeatureSet, error)
}

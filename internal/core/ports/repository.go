package ports

import (
	"context"

	"github.com/ewilliams-labs/segue/internal/core/domain"
)

// FeatureRepository caches analysed feature sets so tracks are extracted
// once and planned many times.
type FeatureRepository interface {
	Save(ctx context.Context, track domain.TrackFeatureSet) error
	GetByRef(ctx context.Context, ref string) (domain.TrackFeatureSet, error)
	List(ctx context.Context) ([]domain.TrackFeatureSet, error)
}

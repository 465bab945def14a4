package mix

import "github.com/ewilliams-labs/segue/internal/core/domain"

// ZoneSegmenter buckets a track's sections into the five performance zones.
type ZoneSegmenter struct {
	cfg Config
}

// NewZoneSegmenter constructs a ZoneSegmenter. A zero-value Config is
// replaced by DefaultConfig.
func NewZoneSegmenter(cfg Config) *ZoneSegmenter {
	if cfg.DropEnd == 0 {
		cfg = DefaultConfig()
	}
	return &ZoneSegmenter{cfg: cfg}
}

// Segment assigns each zone the highest-mean-energy section whose start time
// falls in that zone's fractional window of the track. The assignment is
// purely positional: a "drop" is whatever loud section starts in the middle
// third, not an acoustically detected bass drop. Zones with no qualifying
// section keep their zero value, including for a track with no sections at
// all.
func (z *ZoneSegmenter) Segment(track domain.TrackFeatureSet) domain.PerformanceZones {
	var zones domain.PerformanceZones
	if track.Duration <= 0 {
		return zones
	}

	for _, section := range track.Sections {
		values := track.EnergyInSpan(section.Start, section.End)
		energy := domain.Mean(values)

		var target *domain.Zone
		switch fraction := section.Start / track.Duration; {
		case fraction < z.cfg.IntroEnd:
			target = &zones.Intro
		case fraction < z.cfg.BuildEnd:
			target = &zones.Build
		case fraction < z.cfg.DropEnd:
			target = &zones.Drop
		case fraction < z.cfg.BreakdownEnd:
			target = &zones.Breakdown
		default:
			target = &zones.Outro
		}

		if energy > target.Energy {
			*target = domain.Zone{
				Start:      section.Start,
				End:        section.End,
				Energy:     energy,
				Complexity: domain.StdDev(values),
			}
		}
	}
	return zones
}

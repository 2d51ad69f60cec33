// Package stats derives the headline numbers reported alongside query
// results.
package stats

import "github.com/geosignal/quakescope/internal/models"

// Summary aggregates one result set. An aggregate stays nil when no event
// contributes a value, so a missing measurement never reads as zero.
type Summary struct {
	Count         int      `json:"count"`
	MeanMagnitude *float64 `json:"meanMagnitude"`
	MaxMagnitude  *float64 `json:"maxMagnitude"`
	MaxDepthKm    *float64 `json:"maxDepthKm"`
}

// Summarize computes the summary over events.
func Summarize(events []models.Event) Summary {
	s := Summary{Count: len(events)}

	var magSum float64
	magCount := 0

	for _, ev := range events {
		if ev.Magnitude != nil {
			magSum += *ev.Magnitude
			magCount++
			if s.MaxMagnitude == nil || *ev.Magnitude > *s.MaxMagnitude {
				v := *ev.Magnitude
				s.MaxMagnitude = &v
			}
		}
		if ev.DepthKm != nil {
			if s.MaxDepthKm == nil || *ev.DepthKm > *s.MaxDepthKm {
				v := *ev.DepthKm
				s.MaxDepthKm = &v
			}
		}
	}

	if magCount > 0 {
		mean := magSum / float64(magCount)
		s.MeanMagnitude = &mean
	}

	return s
}

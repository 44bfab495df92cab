// Package catalog provides time-domain thinning of event collections ahead
// of waveform work, where each fixed-length trace must contain one event.
package catalog

import (
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/quakelab/seissect/internal/model"
)

// ExcludeCloseTimed drops events that occur too close together in time.
// Events are considered in chronological order: when two consecutive events
// are closer than windowLength the earlier one is dropped, and when they are
// closer than minInterval both are dropped. minInterval must be strictly
// less than windowLength. The returned slice is sorted by time.
func ExcludeCloseTimed(events []model.Event, windowLength, minInterval time.Duration) ([]model.Event, error) {
	if minInterval >= windowLength {
		return nil, eris.Wrapf(model.ErrConfig,
			"catalog: min interval %s must be less than window length %s", minInterval, windowLength)
	}

	sorted := make([]model.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	drop := make([]bool, len(sorted))
	for i := 0; i+1 < len(sorted); i++ {
		gap := sorted[i+1].Time.Sub(sorted[i].Time)
		if gap >= windowLength {
			continue
		}
		drop[i] = true
		if gap < minInterval {
			drop[i+1] = true
		}
	}

	kept := make([]model.Event, 0, len(sorted))
	for i, ev := range sorted {
		if !drop[i] {
			kept = append(kept, ev)
		}
	}

	if removed := len(sorted) - len(kept); removed > 0 {
		zap.L().Debug("catalog: close-timed events excluded",
			zap.Int("removed", removed),
			zap.Int("kept", len(kept)),
		)
	}
	return kept, nil
}

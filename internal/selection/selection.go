// Package selection filters event collections by map-view or section-view
// shapes built on the geometry kernel.
package selection

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/quakelab/seissect/internal/geodesy"
	"github.com/quakelab/seissect/internal/geometry"
	"github.com/quakelab/seissect/internal/model"
)

// OnMap retains the events whose epicenters fall inside the shape anchored
// at center. All points, the anchor included, are projected into one planar
// frame derived from the center; dimensions are interpreted in unit. Input
// order is preserved and no event is duplicated.
func OnMap(events []model.Event, shape model.Shape, center model.GeographicPoint, zone int, unit model.Unit) ([]model.Event, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	anchor, err := geodesy.ToPlanar(center, zone, unit)
	if err != nil {
		return nil, err
	}
	for i, ev := range events {
		if err := geodesy.ValidatePoint(ev.Geographic()); err != nil {
			return nil, eris.Wrapf(err, "selection: event %d", i)
		}
	}

	var selected []model.Event
	for _, ev := range events {
		p, err := geodesy.ToPlanarFrame(ev.Geographic(), anchor.Zone, anchor.North, unit)
		if err != nil {
			return nil, err
		}
		if geometry.Contains(shape, p.X-anchor.X, p.Y-anchor.Y) {
			selected = append(selected, ev)
		}
	}

	zap.L().Debug("selection: map-view filter",
		zap.String("shape", string(shape.Kind)),
		zap.Int("in", len(events)),
		zap.Int("out", len(selected)),
	)
	return selected, nil
}

// OnSection filters projected events in the (along-strike, depth) plane of
// a cross section. The shape is anchored at centerAlongKM/centerDepthKM and
// its dimensions are kilometers. Input order is preserved.
func OnSection(events []model.ProjectedEvent, shape model.Shape, centerAlongKM, centerDepthKM float64) ([]model.ProjectedEvent, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	var selected []model.ProjectedEvent
	for _, pe := range events {
		if geometry.Contains(shape, pe.AlongKM-centerAlongKM, pe.Event.DepthKM-centerDepthKM) {
			selected = append(selected, pe)
		}
	}
	return selected, nil
}

// Package section builds families of parallel cross-section planes around a
// center point and strike azimuth, and assigns catalog events to them.
package section

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/quakelab/seissect/internal/geodesy"
	"github.com/quakelab/seissect/internal/model"
)

// BuildParams configures a section family. All distances are kilometers.
type BuildParams struct {
	Center            model.GeographicPoint
	StrikeDeg         float64
	NumLeft           int
	NumRight          int
	MapLengthKM       float64
	SectionDistanceKM float64
	EventDistanceKM   float64
	DepthMinKM        float64
	DepthMaxKM        float64
	Zone              int // 0 derives the zone from the center longitude
	Unit              model.Unit
}

// Validate checks the parameters eagerly, before any projection work.
func (p BuildParams) Validate() error {
	if p.MapLengthKM <= 0 {
		return eris.Wrapf(model.ErrConfig, "section: map length %v must be > 0", p.MapLengthKM)
	}
	if p.SectionDistanceKM <= 0 {
		return eris.Wrapf(model.ErrConfig, "section: section distance %v must be > 0", p.SectionDistanceKM)
	}
	if p.EventDistanceKM <= 0 {
		return eris.Wrapf(model.ErrConfig, "section: event distance %v must be > 0", p.EventDistanceKM)
	}
	if p.NumLeft < 0 || p.NumRight < 0 {
		return eris.Wrapf(model.ErrConfig, "section: section counts (%d, %d) must be non-negative", p.NumLeft, p.NumRight)
	}
	if p.DepthMinKM > p.DepthMaxKM {
		return eris.Wrapf(model.ErrConfig, "section: depth range [%v, %v] is inverted", p.DepthMinKM, p.DepthMaxKM)
	}
	if !p.Unit.Valid() {
		return eris.Wrapf(model.ErrConfig, "section: unsupported unit %q", p.Unit)
	}
	return nil
}

// Build projects the center once and lays out sections at offsets
// k*sectionDistance for k in [-numLeft, numRight], translated along the
// direction perpendicular to strike. All sections share the center's
// projection frame, strike, half-length, tolerance, and depth range.
func Build(p BuildParams) (model.SectionSet, error) {
	if err := p.Validate(); err != nil {
		return model.SectionSet{}, err
	}

	center, err := geodesy.ToPlanar(p.Center, p.Zone, p.Unit)
	if err != nil {
		return model.SectionSet{}, err
	}

	strike := math.Mod(p.StrikeDeg, 360.0)
	if strike < 0 {
		strike += 360.0
	}

	// Unit vector perpendicular to strike (azimuth strike+90), in math
	// convention: angle 90-(strike+90) = -strike.
	sin, cos := math.Sincos(-strike * degToRad)

	step := p.SectionDistanceKM
	if p.Unit == model.UnitMeters {
		step *= 1000.0
	}

	sections := make([]model.Section, 0, p.NumLeft+p.NumRight+1)
	for k := -p.NumLeft; k <= p.NumRight; k++ {
		c := center
		c.X += float64(k) * step * cos
		c.Y += float64(k) * step * sin
		sections = append(sections, model.Section{
			Index:        k,
			Center:       c,
			StrikeDeg:    strike,
			HalfLengthKM: p.MapLengthKM / 2,
			ToleranceKM:  p.EventDistanceKM,
			DepthMinKM:   p.DepthMinKM,
			DepthMaxKM:   p.DepthMaxKM,
		})
	}

	return model.SectionSet{
		Sections: sections,
		Zone:     center.Zone,
		North:    center.North,
		Unit:     p.Unit,
	}, nil
}

const degToRad = math.Pi / 180.0

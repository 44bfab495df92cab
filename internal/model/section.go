package model

import "math"

// Section is one cross-section plane: a centerline point in the projected
// plane, the shared strike azimuth, and the membership bounds. Index 0 is
// the primary section through the user-given center; negative indices
// extend to one side, positive to the other.
type Section struct {
	Index        int         `json:"index"`
	Center       PlanarPoint `json:"center"`
	StrikeDeg    float64     `json:"strike"`
	HalfLengthKM float64     `json:"half_length_km"`
	ToleranceKM  float64     `json:"tolerance_km"`
	DepthMinKM   float64     `json:"depth_min_km"`
	DepthMaxKM   float64     `json:"depth_max_km"`
}

// Trace returns the centerline endpoints in plane coordinates, for drawing.
// The endpoints sit half-length away from the center along the strike
// direction, converted to the section's native unit.
func (s Section) Trace() (start, end PlanarPoint) {
	theta := (90.0 - s.StrikeDeg) * math.Pi / 180.0
	half := s.HalfLengthKM
	if s.Center.Unit == UnitMeters {
		half *= 1000.0
	}
	dx := half * math.Cos(theta)
	dy := half * math.Sin(theta)

	start, end = s.Center, s.Center
	start.X -= dx
	start.Y -= dy
	end.X += dx
	end.Y += dy
	return start, end
}

// SectionSet is the ordered family of parallel sections, index ascending.
// All sections share the projection frame recorded in Zone/North/Unit.
type SectionSet struct {
	Sections []Section `json:"sections"`
	Zone     int       `json:"zone"`
	North    bool      `json:"north"`
	Unit     Unit      `json:"unit"`
}

// ByIndex returns the section with the given offset index, if present.
func (ss SectionSet) ByIndex(index int) (Section, bool) {
	for _, s := range ss.Sections {
		if s.Index == index {
			return s, true
		}
	}
	return Section{}, false
}

// ProjectedEvent joins an event with its coordinates in a specific
// section's frame: signed distance along strike and signed perpendicular
// distance from the centerline, both in kilometers.
type ProjectedEvent struct {
	Event        Event   `json:"event"`
	SectionIndex int     `json:"section_index"`
	AlongKM      float64 `json:"along_km"`
	PerpKM       float64 `json:"perp_km"`
}

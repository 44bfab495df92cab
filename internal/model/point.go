// Package model holds the core value types shared by the geodesy, geometry,
// section, and selection packages: coordinate points, events, sections, and
// selection shapes.
package model

import (
	"time"

	"encoding/json"

	"github.com/rotisserie/eris"
)

// Unit is the linear unit of planar coordinates.
type Unit string

// Supported planar units.
const (
	UnitMeters     Unit = "m"
	UnitKilometers Unit = "km"
)

// Scale returns the factor that converts meters into this unit.
func (u Unit) Scale() float64 {
	if u == UnitKilometers {
		return 1.0 / 1000.0
	}
	return 1.0
}

// Valid reports whether the unit is one of the supported values.
func (u Unit) Valid() bool {
	return u == UnitMeters || u == UnitKilometers
}

// GeographicPoint is a WGS84 longitude/latitude pair in decimal degrees.
type GeographicPoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// PlanarPoint is a projected UTM coordinate pair. Easting and northing are
// expressed in Unit, and are only meaningful together with the zone and
// hemisphere they were projected against.
type PlanarPoint struct {
	X     float64 `json:"x"` // easting
	Y     float64 `json:"y"` // northing
	Zone  int     `json:"zone"`
	North bool    `json:"north"`
	Unit  Unit    `json:"unit"`
}

// SameFrame reports whether two planar points share zone, hemisphere, and unit.
// Points from mismatched frames must not be compared without re-projection.
func (p PlanarPoint) SameFrame(q PlanarPoint) bool {
	return p.Zone == q.Zone && p.North == q.North && p.Unit == q.Unit
}

// Event is a single catalog record. The core reads Lon, Lat, and DepthKM;
// Time is used only by catalog thinning; Payload is carried through
// unmodified and never interpreted.
type Event struct {
	Lon     float64         `json:"lon"`
	Lat     float64         `json:"lat"`
	DepthKM float64         `json:"depth"`
	Time    time.Time       `json:"time,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Geographic returns the event epicenter as a GeographicPoint.
func (e Event) Geographic() GeographicPoint {
	return GeographicPoint{Lon: e.Lon, Lat: e.Lat}
}

// ErrConfig marks invalid builder or selector configuration: non-positive
// lengths, inverted depth ranges, negative section counts, malformed shapes.
var ErrConfig = eris.New("invalid configuration")

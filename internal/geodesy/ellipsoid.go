// Package geodesy converts between WGS84 geographic coordinates and
// projected UTM planar coordinates. The forward and inverse Transverse
// Mercator series carry enough terms to round-trip within 1e-7 degrees and
// one millimeter anywhere inside the UTM validity band.
package geodesy

import (
	"math"

	"github.com/rotisserie/eris"
)

// WGS84 reference ellipsoid.
const (
	SemiMajorAxis = 6378137.0           // meters
	Flattening    = 1.0 / 298.257223563
)

// UTM projection constants.
const (
	scaleFactor        = 0.9996
	falseEasting       = 500000.0    // meters
	falseNorthingSouth = 10000000.0  // meters, southern hemisphere offset
	zoneWidthDeg       = 6.0
)

// UTM validity band.
const (
	MinLatitude = -80.0
	MaxLatitude = 84.0
)

// Derived ellipsoid quantities, computed once.
var (
	e2  = Flattening * (2 - Flattening) // first eccentricity squared
	e4  = e2 * e2
	e6  = e4 * e2
	ep2 = e2 / (1 - e2) // second eccentricity squared
	e1  = (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))
)

// ErrDomain marks coordinates outside the valid geographic or UTM range.
var ErrDomain = eris.New("coordinate outside valid domain")

// ErrShapeMismatch marks batched inputs whose lengths disagree.
var ErrShapeMismatch = eris.New("batched inputs have mismatched lengths")

// ZoneFromLongitude derives the UTM zone for a longitude in (-180, 180].
// Longitude exactly 180 falls into zone 60.
func ZoneFromLongitude(lon float64) int {
	zone := int(math.Floor((lon+180.0)/zoneWidthDeg)) + 1
	if zone > 60 {
		zone = 60
	}
	return zone
}

// centralMeridian returns the zone's central meridian in degrees.
func centralMeridian(zone int) float64 {
	return float64(zone-1)*zoneWidthDeg - 180.0 + zoneWidthDeg/2
}

// meridianArc returns the distance along the meridian from the equator to
// latitude phi (radians), in meters.
func meridianArc(phi float64) float64 {
	return SemiMajorAxis * ((1-e2/4-3*e4/64-5*e6/256)*phi -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*phi) +
		(15*e4/256+45*e6/1024)*math.Sin(4*phi) -
		(35*e6/3072)*math.Sin(6*phi))
}

// footpointLatitude inverts the meridian arc: given a meridian distance in
// meters it returns the latitude (radians) of the footpoint.
func footpointLatitude(m float64) float64 {
	mu := m / (SemiMajorAxis * (1 - e2/4 - 3*e4/64 - 5*e6/256))
	return mu +
		(3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu) +
		(1097*e1*e1*e1*e1/512)*math.Sin(8*mu)
}

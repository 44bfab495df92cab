package geodesy

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/quakelab/seissect/internal/model"
)

const degToRad = math.Pi / 180.0

// ToPlanar projects a geographic point into UTM planar coordinates. If zone
// is 0 the zone is derived from the longitude; the hemisphere follows the
// latitude sign. Easting and northing are scaled to the requested unit.
func ToPlanar(p model.GeographicPoint, zone int, unit model.Unit) (model.PlanarPoint, error) {
	if zone == 0 {
		if err := validateGeographic(p); err != nil {
			return model.PlanarPoint{}, err
		}
		zone = ZoneFromLongitude(p.Lon)
	}
	return ToPlanarFrame(p, zone, p.Lat >= 0, unit)
}

// ToPlanarFrame projects a geographic point against an explicit zone and
// hemisphere. Points may lie outside the zone or across the equator from
// the hemisphere; the projection stays continuous so that a whole catalog
// can share one frame.
func ToPlanarFrame(p model.GeographicPoint, zone int, north bool, unit model.Unit) (model.PlanarPoint, error) {
	if err := validateGeographic(p); err != nil {
		return model.PlanarPoint{}, err
	}
	if err := validateFrame(zone, unit); err != nil {
		return model.PlanarPoint{}, err
	}

	phi := p.Lat * degToRad
	lam := (p.Lon - centralMeridian(zone)) * degToRad

	sinPhi, cosPhi := math.Sincos(phi)
	tanPhi := sinPhi / cosPhi

	nu := SemiMajorAxis / math.Sqrt(1-e2*sinPhi*sinPhi)
	t := tanPhi * tanPhi
	c := ep2 * cosPhi * cosPhi
	a1 := cosPhi * lam

	a2 := a1 * a1
	a3 := a2 * a1
	a4 := a3 * a1
	a5 := a4 * a1
	a6 := a5 * a1

	x := scaleFactor*nu*(a1+
		(1-t+c)*a3/6+
		(5-18*t+t*t+72*c-58*ep2)*a5/120) + falseEasting

	y := scaleFactor * (meridianArc(phi) + nu*tanPhi*(a2/2+
		(5-t+9*c+4*c*c)*a4/24+
		(61-58*t+t*t+600*c-330*ep2)*a6/720))
	if !north {
		y += falseNorthingSouth
	}

	s := unit.Scale()
	return model.PlanarPoint{X: x * s, Y: y * s, Zone: zone, North: north, Unit: unit}, nil
}

// ToGeographic inverts a UTM planar point back to geographic coordinates
// using the zone, hemisphere, and unit recorded on the point.
func ToGeographic(p model.PlanarPoint) (model.GeographicPoint, error) {
	if err := validateFrame(p.Zone, p.Unit); err != nil {
		return model.GeographicPoint{}, err
	}
	if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
		return model.GeographicPoint{}, eris.Wrap(ErrDomain, "geodesy: non-finite planar coordinate")
	}

	// Back to meters relative to the central meridian and the equator.
	s := p.Unit.Scale()
	x := p.X/s - falseEasting
	y := p.Y / s
	if !p.North {
		y -= falseNorthingSouth
	}

	phi1 := footpointLatitude(y / scaleFactor)
	sinPhi1, cosPhi1 := math.Sincos(phi1)
	tanPhi1 := sinPhi1 / cosPhi1

	c1 := ep2 * cosPhi1 * cosPhi1
	t1 := tanPhi1 * tanPhi1
	w := 1 - e2*sinPhi1*sinPhi1
	nu1 := SemiMajorAxis / math.Sqrt(w)
	rho1 := SemiMajorAxis * (1 - e2) / (w * math.Sqrt(w))
	d := x / (nu1 * scaleFactor)

	d2 := d * d
	d3 := d2 * d
	d4 := d3 * d
	d5 := d4 * d
	d6 := d5 * d

	phi := phi1 - (nu1*tanPhi1/rho1)*(d2/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*d4/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*d6/720)

	lam := (d -
		(1+2*t1+c1)*d3/6 +
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*d5/120) / cosPhi1

	return model.GeographicPoint{
		Lon: centralMeridian(p.Zone) + lam/degToRad,
		Lat: phi / degToRad,
	}, nil
}

// ToPlanarBatch projects equal-length longitude and latitude slices
// element-wise against a shared zone. All inputs are validated before any
// element is transformed; a failed call returns no partial results.
func ToPlanarBatch(lons, lats []float64, zone int, unit model.Unit) ([]model.PlanarPoint, error) {
	if len(lons) != len(lats) {
		return nil, eris.Wrapf(ErrShapeMismatch, "geodesy: %d longitudes vs %d latitudes", len(lons), len(lats))
	}
	for i := range lons {
		if err := validateGeographic(model.GeographicPoint{Lon: lons[i], Lat: lats[i]}); err != nil {
			return nil, eris.Wrapf(err, "geodesy: element %d", i)
		}
	}
	out := make([]model.PlanarPoint, len(lons))
	for i := range lons {
		p := model.GeographicPoint{Lon: lons[i], Lat: lats[i]}
		z := zone
		if z == 0 {
			z = ZoneFromLongitude(p.Lon)
		}
		pp, err := ToPlanarFrame(p, z, p.Lat >= 0, unit)
		if err != nil {
			return nil, err
		}
		out[i] = pp
	}
	return out, nil
}

// ToGeographicBatch inverts a slice of planar points element-wise.
func ToGeographicBatch(points []model.PlanarPoint) ([]model.GeographicPoint, error) {
	for i, p := range points {
		if err := validateFrame(p.Zone, p.Unit); err != nil {
			return nil, eris.Wrapf(err, "geodesy: element %d", i)
		}
	}
	out := make([]model.GeographicPoint, len(points))
	for i, p := range points {
		gp, err := ToGeographic(p)
		if err != nil {
			return nil, eris.Wrapf(err, "geodesy: element %d", i)
		}
		out[i] = gp
	}
	return out, nil
}

// ValidatePoint checks that a geographic point is finite and inside the
// UTM validity band. Exposed so callers can fail whole batches before any
// projection work begins.
func ValidatePoint(p model.GeographicPoint) error {
	return validateGeographic(p)
}

func validateGeographic(p model.GeographicPoint) error {
	if math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) || math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) {
		return eris.Wrap(ErrDomain, "geodesy: non-finite geographic coordinate")
	}
	if p.Lon <= -180 || p.Lon > 180 {
		return eris.Wrapf(ErrDomain, "geodesy: longitude %v outside (-180, 180]", p.Lon)
	}
	if p.Lat < MinLatitude || p.Lat > MaxLatitude {
		return eris.Wrapf(ErrDomain, "geodesy: latitude %v outside [%v, %v]", p.Lat, MinLatitude, MaxLatitude)
	}
	return nil
}

func validateFrame(zone int, unit model.Unit) error {
	if zone < 1 || zone > 60 {
		return eris.Wrapf(ErrDomain, "geodesy: zone %d outside [1, 60]", zone)
	}
	if !unit.Valid() {
		return eris.Wrapf(ErrDomain, "geodesy: unsupported unit %q", unit)
	}
	return nil
}

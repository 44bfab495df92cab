// Package export renders assigner and selector output for downstream
// collaborators: EWKB geometries for PostGIS, shapefiles and XLSX workbooks
// for GIS and spreadsheet tooling.
package export

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"

	"github.com/quakelab/seissect/internal/geodesy"
	"github.com/quakelab/seissect/internal/model"
)

// EncodePointEWKB encodes a geographic point as EWKB bytes with SRID 4326.
func EncodePointEWKB(p model.GeographicPoint) ([]byte, error) {
	g := geom.NewPointFlat(geom.XY, []float64{p.Lon, p.Lat}).SetSRID(4326)
	data, err := ewkb.Marshal(g, ewkb.NDR)
	if err != nil {
		return nil, eris.Wrap(err, "export: encode point EWKB")
	}
	return data, nil
}

// EncodeTraceEWKB encodes a section's centerline as an EWKB linestring in
// geographic coordinates, SRID 4326. The planar trace endpoints are
// inverse-projected through the section's own frame.
func EncodeTraceEWKB(s model.Section) ([]byte, error) {
	start, end := s.Trace()

	gs, err := geodesy.ToGeographic(start)
	if err != nil {
		return nil, eris.Wrap(err, "export: trace start")
	}
	ge, err := geodesy.ToGeographic(end)
	if err != nil {
		return nil, eris.Wrap(err, "export: trace end")
	}

	ls := geom.NewLineStringFlat(geom.XY, []float64{gs.Lon, gs.Lat, ge.Lon, ge.Lat}).SetSRID(4326)
	data, err := ewkb.Marshal(ls, ewkb.NDR)
	if err != nil {
		return nil, eris.Wrap(err, "export: encode trace EWKB")
	}
	return data, nil
}

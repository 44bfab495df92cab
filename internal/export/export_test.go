package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"

	"github.com/quakelab/seissect/internal/model"
	"github.com/quakelab/seissect/internal/section"
)

func testSectionSet(t *testing.T) model.SectionSet {
	t.Helper()

	set, err := section.Build(section.BuildParams{
		Center:            model.GeographicPoint{Lon: 13.2, Lat: 38.8},
		StrikeDeg:         155,
		NumLeft:           1,
		NumRight:          1,
		MapLengthKM:       40,
		SectionDistanceKM: 5,
		EventDistanceKM:   3,
		DepthMaxKM:        50,
		Unit:              model.UnitKilometers,
	})
	require.NoError(t, err)
	return set
}

func TestEncodePointEWKB(t *testing.T) {
	data, err := EncodePointEWKB(model.GeographicPoint{Lon: 13.2, Lat: 38.8})
	require.NoError(t, err)

	g, err := ewkb.Unmarshal(data)
	require.NoError(t, err)

	pt, ok := g.(*geom.Point)
	require.True(t, ok)
	assert.Equal(t, 4326, pt.SRID())
	assert.Equal(t, 13.2, pt.X())
	assert.Equal(t, 38.8, pt.Y())
}

func TestEncodeTraceEWKB(t *testing.T) {
	set := testSectionSet(t)
	s, ok := set.ByIndex(0)
	require.True(t, ok)

	data, err := EncodeTraceEWKB(s)
	require.NoError(t, err)

	g, err := ewkb.Unmarshal(data)
	require.NoError(t, err)

	ls, ok := g.(*geom.LineString)
	require.True(t, ok)
	assert.Equal(t, 4326, ls.SRID())
	require.Equal(t, 2, ls.NumCoords())

	// The trace is centered on the section center, so the endpoint midpoint
	// lands back near it.
	start := ls.Coord(0)
	end := ls.Coord(1)
	assert.InDelta(t, 13.2, (start.X()+end.X())/2, 1e-3)
	assert.InDelta(t, 38.8, (start.Y()+end.Y())/2, 1e-3)
}

func TestWriteSectionTraces(t *testing.T) {
	set := testSectionSet(t)
	path := filepath.Join(t.TempDir(), "traces.shp")

	require.NoError(t, WriteSectionTraces(path, set))

	r, err := shp.Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, shp.POLYLINE, r.GeometryType)

	n := 0
	for r.Next() {
		_, shape := r.Shape()
		line, ok := shape.(*shp.PolyLine)
		require.True(t, ok)
		assert.EqualValues(t, 2, line.NumPoints)
		n++
	}
	assert.Equal(t, len(set.Sections), n)

	fields := r.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, "INDEX", fields[0].String())
	assert.Equal(t, "STRIKE", fields[1].String())
	assert.Equal(t, "HALFLEN_KM", fields[2].String())
}

func TestWriteEpicenters(t *testing.T) {
	events := []model.Event{
		{Lon: 13.2, Lat: 38.8, DepthKM: 10.5},
		{Lon: 13.25, Lat: 38.82, DepthKM: 7.1},
	}
	path := filepath.Join(t.TempDir(), "epicenters.shp")

	require.NoError(t, WriteEpicenters(path, events))

	r, err := shp.Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, shp.POINT, r.GeometryType)

	var pts []*shp.Point
	for r.Next() {
		_, shape := r.Shape()
		pt, ok := shape.(*shp.Point)
		require.True(t, ok)
		pts = append(pts, pt)
	}
	require.Len(t, pts, 2)
	assert.Equal(t, 13.2, pts[0].X)
	assert.Equal(t, 38.8, pts[0].Y)
}

func TestWriteSectionWorkbook(t *testing.T) {
	groups := map[int][]model.ProjectedEvent{
		1: {{
			Event:        model.Event{Lon: 13.21, Lat: 38.81, DepthKM: 9.5, Time: time.Date(2023, 4, 12, 6, 0, 0, 0, time.UTC)},
			SectionIndex: 1,
			AlongKM:      2.5,
			PerpKM:       -0.75,
		}},
		-1: nil,
		0: {{
			Event:        model.Event{Lon: 13.2, Lat: 38.8, DepthKM: 10.5},
			SectionIndex: 0,
			AlongKM:      0.1,
			PerpKM:       1.2,
		}},
	}
	path := filepath.Join(t.TempDir(), "sections.xlsx")

	require.NoError(t, WriteSectionWorkbook(path, groups))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	require.Len(t, f.Sheets, 3)
	assert.Equal(t, "section -1", f.Sheets[0].Name)
	assert.Equal(t, "section 0", f.Sheets[1].Name)
	assert.Equal(t, "section 1", f.Sheets[2].Name)

	// Header plus one data row on the populated sheets.
	require.Len(t, f.Sheets[1].Rows, 2)
	assert.Equal(t, "lon", f.Sheets[1].Rows[0].Cells[0].String())

	alongCell := f.Sheets[2].Rows[1].Cells[3]
	along, err := alongCell.Float()
	require.NoError(t, err)
	assert.InDelta(t, 2.5, along, 1e-9)

	assert.Equal(t, "2023-04-12T06:00:00Z", f.Sheets[2].Rows[1].Cells[5].String())
}

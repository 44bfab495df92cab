package export

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/quakelab/seissect/internal/geodesy"
	"github.com/quakelab/seissect/internal/model"
)

// WriteSectionTraces writes each section's centerline as a polyline record
// in geographic coordinates, with the section index and strike as
// attributes.
func WriteSectionTraces(path string, set model.SectionSet) error {
	w, err := shp.Create(path, shp.POLYLINE)
	if err != nil {
		return eris.Wrapf(err, "export: create shapefile %s", path)
	}
	defer w.Close()

	fields := []shp.Field{
		shp.NumberField("INDEX", 10),
		shp.FloatField("STRIKE", 12, 4),
		shp.FloatField("HALFLEN_KM", 12, 4),
	}
	if err := w.SetFields(fields); err != nil {
		return eris.Wrap(err, "export: set shapefile fields")
	}

	for row, s := range set.Sections {
		start, end := s.Trace()
		gs, err := geodesy.ToGeographic(start)
		if err != nil {
			return eris.Wrapf(err, "export: section %d trace start", s.Index)
		}
		ge, err := geodesy.ToGeographic(end)
		if err != nil {
			return eris.Wrapf(err, "export: section %d trace end", s.Index)
		}

		line := shp.NewPolyLine([][]shp.Point{{
			{X: gs.Lon, Y: gs.Lat},
			{X: ge.Lon, Y: ge.Lat},
		}})
		w.Write(line)

		if err := w.WriteAttribute(row, 0, s.Index); err != nil {
			return eris.Wrap(err, "export: write INDEX attribute")
		}
		if err := w.WriteAttribute(row, 1, s.StrikeDeg); err != nil {
			return eris.Wrap(err, "export: write STRIKE attribute")
		}
		if err := w.WriteAttribute(row, 2, s.HalfLengthKM); err != nil {
			return eris.Wrap(err, "export: write HALFLEN_KM attribute")
		}
	}

	zap.L().Info("section traces exported",
		zap.String("path", path),
		zap.Int("sections", len(set.Sections)),
	)
	return nil
}

// WriteEpicenters writes event epicenters as point records with depth as an
// attribute. Used for exporting shape-selection results.
func WriteEpicenters(path string, events []model.Event) error {
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "export: create shapefile %s", path)
	}
	defer w.Close()

	if err := w.SetFields([]shp.Field{shp.FloatField("DEPTH_KM", 12, 4)}); err != nil {
		return eris.Wrap(err, "export: set shapefile fields")
	}

	for row, ev := range events {
		w.Write(&shp.Point{X: ev.Lon, Y: ev.Lat})
		if err := w.WriteAttribute(row, 0, ev.DepthKM); err != nil {
			return eris.Wrap(err, "export: write DEPTH_KM attribute")
		}
	}

	zap.L().Info("epicenters exported",
		zap.String("path", path),
		zap.Int("events", len(events)),
	)
	return nil
}

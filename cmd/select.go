package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quakelab/seissect/internal/export"
	"github.com/quakelab/seissect/internal/model"
	"github.com/quakelab/seissect/internal/selection"
)

var selectFlags struct {
	catalog   string
	shape     string
	radius    float64
	width     float64
	height    float64
	rotation  float64
	centerLon float64
	centerLat float64
	zone      int
	unit      string
	shpOut    string
}

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Select catalog events inside a map-view shape",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		shape, err := shapeFromFlags()
		if err != nil {
			return err
		}

		s, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.ListEvents(ctx, selectFlags.catalog, 0, 0)
		if err != nil {
			return err
		}

		center := model.GeographicPoint{Lon: selectFlags.centerLon, Lat: selectFlags.centerLat}
		selected, err := selection.OnMap(events, shape, center, selectFlags.zone, model.Unit(selectFlags.unit))
		if err != nil {
			return err
		}

		zap.L().Info("map-view selection",
			zap.String("catalog", selectFlags.catalog),
			zap.Int("in", len(events)),
			zap.Int("out", len(selected)),
		)

		if selectFlags.shpOut != "" {
			return export.WriteEpicenters(selectFlags.shpOut, selected)
		}

		enc := json.NewEncoder(os.Stdout)
		for _, ev := range selected {
			if err := enc.Encode(ev); err != nil {
				return eris.Wrap(err, "encode event")
			}
		}
		return nil
	},
}

// shapeFromFlags builds the selection shape from the command flags.
func shapeFromFlags() (model.Shape, error) {
	var shape model.Shape
	switch model.ShapeKind(selectFlags.shape) {
	case model.ShapeCircle:
		shape = model.Circle(selectFlags.radius)
	case model.ShapeOval:
		shape = model.Oval(selectFlags.width, selectFlags.height)
	case model.ShapeRectangle:
		shape = model.Rectangle(selectFlags.width, selectFlags.height)
	default:
		return model.Shape{}, eris.Errorf("unknown shape %q (circle, oval, rectangle)", selectFlags.shape)
	}
	shape.RotationDeg = selectFlags.rotation
	return shape, shape.Validate()
}

func init() {
	f := selectCmd.Flags()
	f.StringVar(&selectFlags.catalog, "catalog", "default", "catalog name")
	f.StringVar(&selectFlags.shape, "shape", "circle", "selection shape: circle, oval, rectangle")
	f.Float64Var(&selectFlags.radius, "radius", 0, "circle radius")
	f.Float64Var(&selectFlags.width, "width", 0, "oval/rectangle width")
	f.Float64Var(&selectFlags.height, "height", 0, "oval/rectangle height")
	f.Float64Var(&selectFlags.rotation, "rotation", 0, "shape rotation, degrees counter-clockwise")
	f.Float64Var(&selectFlags.centerLon, "center-lon", 0, "shape center longitude")
	f.Float64Var(&selectFlags.centerLat, "center-lat", 0, "shape center latitude")
	f.IntVar(&selectFlags.zone, "zone", 0, "UTM zone (0 derives from center)")
	f.StringVar(&selectFlags.unit, "unit", "km", "planar unit: m or km")
	f.StringVar(&selectFlags.shpOut, "shp-out", "", "write selected epicenters to a shapefile")
	rootCmd.AddCommand(selectCmd)
}

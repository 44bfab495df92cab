package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quakelab/seissect/internal/geodesy"
	"github.com/quakelab/seissect/internal/model"
)

var convertFlags struct {
	lon      float64
	lat      float64
	easting  float64
	northing float64
	zone     int
	south    bool
	unit     string
	inverse  bool
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert between geographic and UTM coordinates",
	RunE: func(cmd *cobra.Command, args []string) error {
		unit := model.Unit(convertFlags.unit)

		if convertFlags.inverse {
			p := model.PlanarPoint{
				X:     convertFlags.easting,
				Y:     convertFlags.northing,
				Zone:  convertFlags.zone,
				North: !convertFlags.south,
				Unit:  unit,
			}
			gp, err := geodesy.ToGeographic(p)
			if err != nil {
				return err
			}
			fmt.Printf("lon=%.7f lat=%.7f\n", gp.Lon, gp.Lat)
			return nil
		}

		pp, err := geodesy.ToPlanar(model.GeographicPoint{Lon: convertFlags.lon, Lat: convertFlags.lat}, convertFlags.zone, unit)
		if err != nil {
			return err
		}
		fmt.Printf("easting=%.4f northing=%.4f zone=%d hemisphere=%s unit=%s\n",
			pp.X, pp.Y, pp.Zone, hemisphereName(pp.North), pp.Unit)
		return nil
	},
}

func hemisphereName(north bool) string {
	if north {
		return "north"
	}
	return "south"
}

func init() {
	convertCmd.Flags().Float64Var(&convertFlags.lon, "lon", 0, "longitude in decimal degrees")
	convertCmd.Flags().Float64Var(&convertFlags.lat, "lat", 0, "latitude in decimal degrees")
	convertCmd.Flags().Float64Var(&convertFlags.easting, "easting", 0, "UTM easting (inverse mode)")
	convertCmd.Flags().Float64Var(&convertFlags.northing, "northing", 0, "UTM northing (inverse mode)")
	convertCmd.Flags().IntVar(&convertFlags.zone, "zone", 0, "UTM zone (0 derives from longitude)")
	convertCmd.Flags().BoolVar(&convertFlags.south, "south", false, "southern hemisphere (inverse mode)")
	convertCmd.Flags().StringVar(&convertFlags.unit, "unit", "km", "planar unit: m or km")
	convertCmd.Flags().BoolVar(&convertFlags.inverse, "inverse", false, "convert UTM to geographic")
	rootCmd.AddCommand(convertCmd)
}

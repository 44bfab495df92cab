package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quakelab/seissect/internal/export"
	"github.com/quakelab/seissect/internal/model"
	"github.com/quakelab/seissect/internal/section"
	"github.com/quakelab/seissect/internal/store"
)

var sectionsFlags struct {
	catalog         string
	centerLon       float64
	centerLat       float64
	strike          float64
	numLeft         int
	numRight        int
	mapLength       float64
	sectionDistance float64
	eventDistance   float64
	depthMin        float64
	depthMax        float64
	zone            int
	unit            string
	paramsFile      string
	xlsxOut         string
	shpOut          string
	save            bool
}

var sectionsCmd *cobra.Command

func newSectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "Build cross sections and assign catalog events to them",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			applySectionDefaults()

			var params section.BuildParams
			if sectionsFlags.paramsFile != "" {
				p, err := section.LoadParams(sectionsFlags.paramsFile)
				if err != nil {
					return err
				}
				params = *p
			} else {
				params = section.BuildParams{
					Center:            model.GeographicPoint{Lon: sectionsFlags.centerLon, Lat: sectionsFlags.centerLat},
					StrikeDeg:         sectionsFlags.strike,
					NumLeft:           sectionsFlags.numLeft,
					NumRight:          sectionsFlags.numRight,
					MapLengthKM:       sectionsFlags.mapLength,
					SectionDistanceKM: sectionsFlags.sectionDistance,
					EventDistanceKM:   sectionsFlags.eventDistance,
					DepthMinKM:        sectionsFlags.depthMin,
					DepthMaxKM:        sectionsFlags.depthMax,
					Zone:              sectionsFlags.zone,
					Unit:              model.Unit(sectionsFlags.unit),
				}
			}

			set, err := section.Build(params)
			if err != nil {
				return err
			}

			s, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			events, err := s.ListEvents(ctx, sectionsFlags.catalog, 0, 0)
			if err != nil {
				return err
			}

			groups, err := section.Assign(ctx, events, set)
			if err != nil {
				return err
			}

			counts := make(map[int]int, len(groups))
			assigned := 0
			for idx, g := range groups {
				counts[idx] = len(g)
				assigned += len(g)
			}

			indices := make([]int, 0, len(groups))
			for idx := range groups {
				indices = append(indices, idx)
			}
			sort.Ints(indices)
			for _, idx := range indices {
				fmt.Printf("section %+d: %d events\n", idx, counts[idx])
			}
			fmt.Printf("assigned %d of %d events\n", assigned, len(events))

			if sectionsFlags.xlsxOut != "" {
				if err := export.WriteSectionWorkbook(sectionsFlags.xlsxOut, groups); err != nil {
					return err
				}
			}
			if sectionsFlags.shpOut != "" {
				if err := export.WriteSectionTraces(sectionsFlags.shpOut, set); err != nil {
					return err
				}
			}

			if sectionsFlags.save {
				run := &store.SectionRun{
					Catalog:  sectionsFlags.catalog,
					Params:   params,
					Sections: set,
					Counts:   counts,
				}
				if err := s.SaveSectionRun(ctx, run); err != nil {
					return err
				}
				zap.L().Info("section run saved", zap.String("run_id", run.ID))
				fmt.Printf("run %s\n", run.ID)
			}

			return nil
		},
	}
}

func init() {
	sectionsCmd = newSectionsCmd()
	f := sectionsCmd.Flags()
	f.StringVar(&sectionsFlags.catalog, "catalog", "default", "catalog name")
	f.Float64Var(&sectionsFlags.centerLon, "center-lon", 0, "center longitude")
	f.Float64Var(&sectionsFlags.centerLat, "center-lat", 0, "center latitude")
	f.Float64Var(&sectionsFlags.strike, "strike", 0, "strike azimuth, degrees from north")
	f.IntVar(&sectionsFlags.numLeft, "num-left", 0, "sections left of the primary")
	f.IntVar(&sectionsFlags.numRight, "num-right", 0, "sections right of the primary")
	f.Float64Var(&sectionsFlags.mapLength, "map-length", 0, "section line length, km")
	f.Float64Var(&sectionsFlags.sectionDistance, "section-distance", 0, "spacing between sections, km")
	f.Float64Var(&sectionsFlags.eventDistance, "event-distance", 0, "max perpendicular distance, km")
	f.Float64Var(&sectionsFlags.depthMin, "depth-min", 0, "minimum depth, km")
	f.Float64Var(&sectionsFlags.depthMax, "depth-max", 0, "maximum depth, km")
	f.IntVar(&sectionsFlags.zone, "zone", 0, "UTM zone (0 derives from center)")
	f.StringVar(&sectionsFlags.unit, "unit", "", "planar unit: m or km")
	f.StringVar(&sectionsFlags.paramsFile, "params", "", "YAML file with section run parameters (overrides geometry flags)")
	f.StringVar(&sectionsFlags.xlsxOut, "xlsx-out", "", "write per-section events to an XLSX workbook")
	f.StringVar(&sectionsFlags.shpOut, "shp-out", "", "write section traces to a shapefile")
	f.BoolVar(&sectionsFlags.save, "save", false, "persist the run in the store")
	rootCmd.AddCommand(sectionsCmd)
}

// applySectionDefaults fills unset section flags from config.
func applySectionDefaults() {
	sc := cfg.Section
	if !sectionsCmd.Flags().Changed("strike") && sc.StrikeDeg != 0 {
		sectionsFlags.strike = sc.StrikeDeg
	}
	if !sectionsCmd.Flags().Changed("map-length") && sc.MapLengthKM > 0 {
		sectionsFlags.mapLength = sc.MapLengthKM
	}
	if !sectionsCmd.Flags().Changed("section-distance") && sc.SectionDistanceKM > 0 {
		sectionsFlags.sectionDistance = sc.SectionDistanceKM
	}
	if !sectionsCmd.Flags().Changed("event-distance") && sc.EventDistanceKM > 0 {
		sectionsFlags.eventDistance = sc.EventDistanceKM
	}
	if !sectionsCmd.Flags().Changed("num-left") {
		sectionsFlags.numLeft = sc.NumLeft
	}
	if !sectionsCmd.Flags().Changed("num-right") {
		sectionsFlags.numRight = sc.NumRight
	}
	if !sectionsCmd.Flags().Changed("depth-min") {
		sectionsFlags.depthMin = sc.DepthMinKM
	}
	if !sectionsCmd.Flags().Changed("depth-max") && sc.DepthMaxKM > 0 {
		sectionsFlags.depthMax = sc.DepthMaxKM
	}
	if !sectionsCmd.Flags().Changed("zone") {
		sectionsFlags.zone = sc.Zone
	}
	if !sectionsCmd.Flags().Changed("unit") && sectionsFlags.unit == "" {
		if sc.Unit != "" {
			sectionsFlags.unit = sc.Unit
		} else {
			sectionsFlags.unit = "km"
		}
	}
}

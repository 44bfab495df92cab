package section

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/quakelab/seissect/internal/model"
)

// LoadParams reads section run parameters from a YAML file. The file has a
// top-level "sections" key so a run description can live alongside other
// project settings:
//
//	sections:
//	  center_lon: 13.2
//	  center_lat: 38.8
//	  strike: 155
//	  num_left: 2
//	  num_right: 3
//	  map_length_km: 40
//	  section_distance_km: 5
//	  event_distance_km: 3
//	  depth_max_km: 50
func LoadParams(path string) (*BuildParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "section: read params %s", path)
	}

	var wrapper struct {
		Sections struct {
			CenterLon       float64 `yaml:"center_lon"`
			CenterLat       float64 `yaml:"center_lat"`
			Strike          float64 `yaml:"strike"`
			NumLeft         int     `yaml:"num_left"`
			NumRight        int     `yaml:"num_right"`
			MapLength       float64 `yaml:"map_length_km"`
			SectionDistance float64 `yaml:"section_distance_km"`
			EventDistance   float64 `yaml:"event_distance_km"`
			DepthMin        float64 `yaml:"depth_min_km"`
			DepthMax        float64 `yaml:"depth_max_km"`
			Zone            int     `yaml:"zone"`
			Unit            string  `yaml:"unit"`
		} `yaml:"sections"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrapf(err, "section: parse params %s", path)
	}

	sec := wrapper.Sections
	unit := model.Unit(sec.Unit)
	if unit == "" {
		unit = model.UnitKilometers
	}

	params := &BuildParams{
		Center:            model.GeographicPoint{Lon: sec.CenterLon, Lat: sec.CenterLat},
		StrikeDeg:         sec.Strike,
		NumLeft:           sec.NumLeft,
		NumRight:          sec.NumRight,
		MapLengthKM:       sec.MapLength,
		SectionDistanceKM: sec.SectionDistance,
		EventDistanceKM:   sec.EventDistance,
		DepthMinKM:        sec.DepthMin,
		DepthMaxKM:        sec.DepthMax,
		Zone:              sec.Zone,
		Unit:              unit,
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

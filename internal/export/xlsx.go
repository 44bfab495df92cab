package export

import (
	"fmt"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/quakelab/seissect/internal/model"
)

// WriteSectionWorkbook writes one sheet per section with the assigned
// events and their projected coordinates. Sheets are ordered by section
// index ascending; rows keep the assigner's order.
func WriteSectionWorkbook(path string, groups map[int][]model.ProjectedEvent) error {
	indices := make([]int, 0, len(groups))
	for idx := range groups {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	f := xlsx.NewFile()
	for _, idx := range indices {
		sheet, err := f.AddSheet(fmt.Sprintf("section %d", idx))
		if err != nil {
			return eris.Wrapf(err, "export: add sheet for section %d", idx)
		}

		header := sheet.AddRow()
		for _, name := range []string{"lon", "lat", "depth_km", "along_km", "perp_km", "time"} {
			header.AddCell().SetString(name)
		}

		for _, pe := range groups[idx] {
			row := sheet.AddRow()
			row.AddCell().SetFloat(pe.Event.Lon)
			row.AddCell().SetFloat(pe.Event.Lat)
			row.AddCell().SetFloat(pe.Event.DepthKM)
			row.AddCell().SetFloat(pe.AlongKM)
			row.AddCell().SetFloat(pe.PerpKM)
			if pe.Event.Time.IsZero() {
				row.AddCell().SetString("")
			} else {
				row.AddCell().SetString(pe.Event.Time.UTC().Format("2006-01-02T15:04:05Z"))
			}
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save workbook %s", path)
	}
	return nil
}

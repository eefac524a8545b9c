package main

import (
	"encoding/csv"
	"os"
	"strconv"

	"mcsas/histogram"
)

// writeHistogramCSV writes one parameter's histogram as a column-wise CSV
// with a header line naming every field.
func writeHistogramCSV(path string, h *histogram.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		h.Param.Name + "_center", h.Param.Name + "_width",
		"Yvol_mean", "Yvol_std", "Ynum_mean", "Ynum_std",
		"min_required_volume", "min_required_number",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for b := range h.Centers {
		row := []string{
			ftoa(h.Centers[b]), ftoa(h.Widths[b]),
			ftoa(h.YvolMean[b]), ftoa(h.YvolStd[b]),
			ftoa(h.YnumMean[b]), ftoa(h.YnumStd[b]),
			ftoa(h.MinRequiredVolume[b]), ftoa(h.MinRequiredNumber[b]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

package output

import (
	"encoding/csv"
	"fmt"
	"strconv"
)

// CSVTableWriter writes score tables as CSV.
type CSVTableWriter struct{}

// Write outputs the score table as CSV.
func (w *CSVTableWriter) Write(report *ScoreTableReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	writer := csv.NewWriter(out)

	// Write header
	headers := []string{"Rank", "Score"}
	if options.Explain {
		headers = append(headers, "EffectiveRank", "Base", "Normalized", "PercentExp",
			"Weighted", "Raw", "Penalty", "Gated", "CutOff")
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	// Write data
	for _, row := range report.Items {
		b := row.Breakdown
		record := []string{
			strconv.Itoa(row.Rank),
			FormatNumber(b.Score),
		}
		if options.Explain {
			record = append(record,
				strconv.Itoa(b.Rank),
				fmt.Sprintf("%.6f", b.Base),
				fmt.Sprintf("%.6f", b.Normalized),
				fmt.Sprintf("%.6f", b.PercentExp),
				fmt.Sprintf("%.6f", b.Weighted),
				fmt.Sprintf("%.6f", b.Raw),
				fmt.Sprintf("%.6f", b.Penalty),
				strconv.FormatBool(b.Gated),
				strconv.FormatBool(b.CutOff),
			)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

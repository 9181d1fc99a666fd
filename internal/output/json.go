package output

import (
	"encoding/json"
	"fmt"
	"time"
)

// JSONTableWriter writes score tables as JSON.
type JSONTableWriter struct{}

// JSONTableReport is the JSON output structure for a score table.
type JSONTableReport struct {
	Profile     string          `json:"profile,omitempty"`
	Curve       JSONCurve       `json:"curve"`
	Percent     float64         `json:"percent"`
	MinPercent  float64         `json:"minPercent"`
	GeneratedAt string          `json:"generatedAt"`
	TotalRanks  int             `json:"totalRanks"`
	Items       []JSONTableItem `json:"items"`
}

// JSONCurve summarizes the curve a table was computed with.
type JSONCurve struct {
	Shape         string  `json:"shape"`
	MaxPoints     float64 `json:"maxPoints"`
	MinBase       float64 `json:"minBase"`
	MaxRank       int     `json:"maxRank"`
	Cutoff        string  `json:"cutoff"`
	Floor         string  `json:"floor"`
	RoundingScale int     `json:"roundingScale"`
}

// JSONTableItem is the JSON output structure for a single rank.
type JSONTableItem struct {
	Rank      int            `json:"rank"`
	Score     float64        `json:"score"`
	Status    string         `json:"status,omitempty"`
	Breakdown *JSONBreakdown `json:"breakdown,omitempty"`
}

// JSONBreakdown holds the score breakdown for a rank in JSON format.
type JSONBreakdown struct {
	EffectiveRank int     `json:"effectiveRank"`
	Base          float64 `json:"base"`
	Normalized    float64 `json:"normalized"`
	PercentExp    float64 `json:"percentExp"`
	Weighted      float64 `json:"weighted"`
	Raw           float64 `json:"raw"`
	Penalty       float64 `json:"penalty"`
}

// Write outputs the score table as JSON.
func (w *JSONTableWriter) Write(report *ScoreTableReport, options OutputOptions) error {
	items := make([]JSONTableItem, len(report.Items))
	for i, row := range report.Items {
		b := row.Breakdown
		item := JSONTableItem{
			Rank:   row.Rank,
			Score:  b.Score,
			Status: rowStatus(b),
		}
		if options.Explain {
			item.Breakdown = &JSONBreakdown{
				EffectiveRank: b.Rank,
				Base:          b.Base,
				Normalized:    b.Normalized,
				PercentExp:    b.PercentExp,
				Weighted:      b.Weighted,
				Raw:           b.Raw,
				Penalty:       b.Penalty,
			}
		}
		items[i] = item
	}

	c := report.Curve
	jsonReport := JSONTableReport{
		Profile: report.Profile,
		Curve: JSONCurve{
			Shape:         string(c.Shape),
			MaxPoints:     c.MaxPoints,
			MinBase:       c.MinBase,
			MaxRank:       c.MaxRank,
			Cutoff:        string(c.EffectiveCutoff()),
			Floor:         string(c.EffectiveFloor()),
			RoundingScale: c.RoundingScale,
		},
		Percent:     report.Percent,
		MinPercent:  report.MinPercent,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		TotalRanks:  len(items),
		Items:       items,
	}

	return writeJSON(jsonReport, options.OutputPath)
}

func writeJSON(data interface{}, outputPath string) error {
	out, file, err := openOutputWriter(outputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

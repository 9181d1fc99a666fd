package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// CITableWriter writes score tables as NDJSON (one JSON object per line) for CI pipelines.
type CITableWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type        string  `json:"type"`
	Shape       string  `json:"shape"`
	TotalRanks  int     `json:"totalRanks"`
	ZeroCount   int     `json:"zeroCount"`
	GatedCount  int     `json:"gatedCount"`
	CutOffCount int     `json:"cutoffCount"`
	MaxScore    float64 `json:"maxScore"`
	MinScore    float64 `json:"minScore"`
}

// CIRankEntry represents a single rank in CI output.
type CIRankEntry struct {
	Type   string  `json:"type"`
	Rank   int     `json:"rank"`
	Score  float64 `json:"score"`
	Status string  `json:"status,omitempty"`
}

// Write outputs the score table as NDJSON.
func (w *CITableWriter) Write(report *ScoreTableReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	summary := CISummary{
		Type:       "summary",
		Shape:      string(report.Curve.Shape),
		TotalRanks: len(report.Items),
	}
	for i, row := range report.Items {
		b := row.Breakdown
		switch {
		case b.Gated:
			summary.GatedCount++
		case b.CutOff:
			summary.CutOffCount++
		}
		if b.Score == 0 {
			summary.ZeroCount++
		}
		if i == 0 || b.Score > summary.MaxScore {
			summary.MaxScore = b.Score
		}
		if i == 0 || b.Score < summary.MinScore {
			summary.MinScore = b.Score
		}
	}

	// Write summary line
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	// Write rank entries
	for _, row := range report.Items {
		entry := CIRankEntry{
			Type:   "rank",
			Rank:   row.Rank,
			Score:  row.Breakdown.Score,
			Status: rowStatus(row.Breakdown),
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

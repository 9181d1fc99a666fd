package output

import (
	"time"

	"github.com/masmgr/rankcurve/config"
	"github.com/masmgr/rankcurve/internal/curve"
)

// Compile-time interface conformance checks.
var (
	_ TableReportWriter = (*ConsoleTableWriter)(nil)
	_ TableReportWriter = (*JSONTableWriter)(nil)
	_ TableReportWriter = (*CSVTableWriter)(nil)
	_ TableReportWriter = (*MarkdownTableWriter)(nil)
	_ TableReportWriter = (*CITableWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	OutputPath string
	Explain    bool
}

// ScoreRow is one requested rank and its computed breakdown.
// Rank is the rank as requested; Breakdown.Rank is the effective rank after clamping.
type ScoreRow struct {
	Rank      int
	Breakdown curve.Breakdown
}

// ScoreTableReport holds the scores of a rank range under one curve.
type ScoreTableReport struct {
	Profile     string
	Curve       config.CurveConfig
	Percent     float64
	MinPercent  float64
	GeneratedAt time.Time
	Items       []ScoreRow
}

// TableReportWriter writes score table reports.
type TableReportWriter interface {
	Write(report *ScoreTableReport, options OutputOptions) error
}

// NewTableReportWriter creates a table writer for the specified format.
func NewTableReportWriter(format OutputFormat) TableReportWriter {
	switch format {
	case FormatJSON:
		return &JSONTableWriter{}
	case FormatCSV:
		return &CSVTableWriter{}
	case FormatMarkdown:
		return &MarkdownTableWriter{}
	case FormatCI:
		return &CITableWriter{}
	default:
		return &ConsoleTableWriter{}
	}
}

// BuildScoreTable scores every rank in [from, to] at a fixed completion.
// Ranks outside the curve are still listed; the engine clamps them.
// Callers bound the range; a range ending at math.MaxInt does not wrap.
func BuildScoreTable(e *curve.Engine, from, to int, percent, minPercent float64) []ScoreRow {
	if to < from {
		return nil
	}
	n := to - from + 1
	rows := make([]ScoreRow, n)
	for i := range rows {
		rank := from + i
		rows[i] = ScoreRow{
			Rank:      rank,
			Breakdown: e.Explain(rank, percent, minPercent),
		}
	}
	return rows
}

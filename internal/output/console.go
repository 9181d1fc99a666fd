package output

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ConsoleTableWriter writes score tables to the console.
type ConsoleTableWriter struct{}

// Write outputs the score table to the console.
func (w *ConsoleTableWriter) Write(report *ScoreTableReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	color.New(color.FgGreen).Fprintln(out, "Score Table")
	if report.Profile != "" {
		fmt.Fprintf(out, "Profile: %s\n", report.Profile)
	}
	fmt.Fprintf(out, "Shape: %s (maxPoints %s, minBase %s, maxRank %d)\n",
		report.Curve.Shape,
		FormatNumber(report.Curve.MaxPoints),
		FormatNumber(report.Curve.MinBase),
		report.Curve.MaxRank,
	)
	fmt.Fprintf(out, "Percent: %s (min %s)\n", FormatNumber(report.Percent), FormatNumber(report.MinPercent))
	fmt.Fprintf(out, "Total ranks: %d\n\n", len(report.Items))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	// Write header
	if options.Explain {
		fmt.Fprintln(tw, "Rank\tScore\tBase\tN\tE\tW\tRaw\tPenalty\tStatus")
	} else {
		fmt.Fprintln(tw, "Rank\tScore\tStatus")
	}

	// Write rows
	for _, row := range report.Items {
		b := row.Breakdown
		status := rowStatus(b)
		if status != "" {
			status = color.RedString(status)
		}
		if options.Explain {
			fmt.Fprintf(tw, "%d\t%s\t%.4f\t%.4f\t%.3f\t%.4f\t%.4f\t%.4f\t%s\n",
				row.Rank,
				scoreColor(b.Score, report.Curve.MaxPoints)(FormatNumber(b.Score)),
				b.Base,
				b.Normalized,
				b.PercentExp,
				b.Weighted,
				b.Raw,
				b.Penalty,
				status,
			)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\n",
				row.Rank,
				scoreColor(b.Score, report.Curve.MaxPoints)(FormatNumber(b.Score)),
				status,
			)
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if options.Explain {
		fmt.Fprintln(out, "\nBreakdown: N=Normalized percent, E=Percent exponent, W=Weighted percent")
	}

	return nil
}

// scoreColor picks a color by the score's share of maxPoints.
func scoreColor(score, maxPoints float64) func(string, ...interface{}) string {
	if maxPoints <= 0 {
		return color.WhiteString
	}
	switch ratio := score / maxPoints; {
	case ratio >= 2.0/3.0:
		return color.GreenString
	case ratio >= 1.0/3.0:
		return color.YellowString
	case score > 0:
		return color.WhiteString
	default:
		return color.RedString
	}
}

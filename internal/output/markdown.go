package output

import (
	"fmt"
	"strings"
)

// MarkdownTableWriter writes score tables as Markdown.
type MarkdownTableWriter struct{}

// Write outputs the score table as Markdown.
func (w *MarkdownTableWriter) Write(report *ScoreTableReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Header
	fmt.Fprintln(out, "# Score Table")
	fmt.Fprintln(out)
	if report.Profile != "" {
		fmt.Fprintf(out, "**Profile:** %s\n\n", escapeMarkdown(report.Profile))
	}
	fmt.Fprintf(out, "**Shape:** `%s` (maxPoints %s, minBase %s, maxRank %d)\n\n",
		report.Curve.Shape,
		FormatNumber(report.Curve.MaxPoints),
		FormatNumber(report.Curve.MinBase),
		report.Curve.MaxRank,
	)
	fmt.Fprintf(out, "**Percent:** %s (min %s)\n\n", FormatNumber(report.Percent), FormatNumber(report.MinPercent))

	// Table header
	if options.Explain {
		fmt.Fprintln(out, "| Rank | Score | Base | N | E | W | Raw | Penalty | Status |")
		fmt.Fprintln(out, "|------|-------|------|---|---|---|-----|---------|--------|")
	} else {
		fmt.Fprintln(out, "| Rank | Score | Status |")
		fmt.Fprintln(out, "|------|-------|--------|")
	}

	// Table rows
	for _, row := range report.Items {
		b := row.Breakdown
		if options.Explain {
			fmt.Fprintf(out, "| %d | %s | %.4f | %.4f | %.3f | %.4f | %.4f | %.4f | %s |\n",
				row.Rank, FormatNumber(b.Score), b.Base, b.Normalized, b.PercentExp,
				b.Weighted, b.Raw, b.Penalty, statusEmoji(rowStatus(b)))
		} else {
			fmt.Fprintf(out, "| %d | %s | %s |\n", row.Rank, FormatNumber(b.Score), statusEmoji(rowStatus(b)))
		}
	}

	if options.Explain {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "*N = normalized percent, E = percent exponent, W = weighted percent*")
	}

	return nil
}

func statusEmoji(status string) string {
	switch status {
	case statusGated:
		return "🔒 gated"
	case statusCutOff:
		return "⛔ cutoff"
	default:
		return "🟢"
	}
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}

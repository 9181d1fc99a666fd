package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/rankcurve/internal/output"
)

func writeTableReport(c *cli.Context, report *output.ScoreTableReport) error {
	opts := OutputOptions(c)
	writer := output.NewTableReportWriter(opts.Format)
	if err := writer.Write(report, opts); err != nil {
		return err
	}
	if opts.OutputPath != "" {
		log.Info().
			Str("path", opts.OutputPath).
			Str("format", string(opts.Format)).
			Int("ranks", len(report.Items)).
			Msg("score table written")
	}
	return nil
}

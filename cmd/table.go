package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/rankcurve/internal/output"
)

// maxTableRanks caps the number of rows a single table may contain.
const maxTableRanks = 10000

// TableCmd returns the table command.
func TableCmd() *cli.Command {
	flags := append([]cli.Flag{
		&cli.IntFlag{
			Name:  "from",
			Usage: "First rank of the table",
			Value: 1,
		},
		&cli.IntFlag{
			Name:  "to",
			Usage: "Last rank of the table (default: maxRank)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
			Value:   "console",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	}, percentFlags()...)

	return &cli.Command{
		Name:    "table",
		Aliases: []string{"t"},
		Usage:   "Score every rank in a range",
		Flags:   flags,
		Action:  tableAction,
	}
}

func tableAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	from, to := c.Int("from"), c.Int("to")
	if to == 0 {
		to = ctx.Curve.MaxRank
	}
	if from < 1 {
		return fmt.Errorf("invalid --from %d: ranks start at 1", from)
	}
	if to < from {
		return fmt.Errorf("invalid range: --to %d is before --from %d", to, from)
	}
	if to-from >= maxTableRanks {
		return fmt.Errorf("invalid range: %d..%d exceeds %d ranks", from, to, maxTableRanks)
	}

	percent, minPercent := c.Float64("percent"), c.Float64("min-percent")
	report := &output.ScoreTableReport{
		Profile:     ctx.Profile,
		Curve:       ctx.Curve,
		Percent:     percent,
		MinPercent:  minPercent,
		GeneratedAt: time.Now(),
		Items:       output.BuildScoreTable(ctx.Engine, from, to, percent, minPercent),
	}

	return writeTableReport(c, report)
}

package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/rankcurve/internal/output"
)

// ScoreCmd returns the score command.
func ScoreCmd() *cli.Command {
	flags := append([]cli.Flag{
		&cli.IntFlag{
			Name:     "rank",
			Aliases:  []string{"r"},
			Usage:    "Rank of the entry (1 is the top rank)",
			Required: true,
		},
	}, percentFlags()...)

	return &cli.Command{
		Name:   "score",
		Usage:  "Compute the score of one entry",
		Flags:  flags,
		Action: scoreAction,
	}
}

func scoreAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	b := ctx.Engine.Explain(c.Int("rank"), c.Float64("percent"), c.Float64("min-percent"))
	out := c.App.Writer

	if !c.Bool("explain") {
		_, err := fmt.Fprintln(out, output.FormatNumber(b.Score))
		return err
	}

	color.New(color.FgGreen).Fprintf(out, "Score: %s\n", output.FormatNumber(b.Score))
	fmt.Fprintf(out, "Shape:       %s\n", ctx.Curve.Shape)
	fmt.Fprintf(out, "Rank:        %d (requested %d)\n", b.Rank, c.Int("rank"))
	fmt.Fprintf(out, "Percent:     %s\n", output.FormatNumber(b.Percent))
	switch {
	case b.Gated:
		gate := ctx.Curve.HighRankPercentGate
		past := "past"
		if gate.Inclusive {
			past = "at or past"
		}
		color.New(color.FgRed).Fprintf(out, "Gated:       rank %s %d requires %s%%\n",
			past, gate.ThresholdRank, output.FormatNumber(gate.RequiredPercent))
		return nil
	case b.CutOff:
		color.New(color.FgRed).Fprintf(out, "Cut off:     rank at or past maxRank %d\n", ctx.Curve.MaxRank)
		return nil
	}
	fmt.Fprintf(out, "Base:        %.6f\n", b.Base)
	fmt.Fprintf(out, "Normalized:  %.6f\n", b.Normalized)
	fmt.Fprintf(out, "PercentExp:  %.6f\n", b.PercentExp)
	fmt.Fprintf(out, "Weighted:    %.6f\n", b.Weighted)
	fmt.Fprintf(out, "Raw:         %.6f\n", b.Raw)
	fmt.Fprintf(out, "Penalty:     %.6f\n", b.Penalty)
	return nil
}

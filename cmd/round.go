package cmd

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/rankcurve/config"
	"github.com/masmgr/rankcurve/internal/output"
	"github.com/masmgr/rankcurve/internal/rounding"
)

// RoundCmd returns the round command.
func RoundCmd() *cli.Command {
	return &cli.Command{
		Name:      "round",
		Usage:     "Round a number half-up to a fixed number of decimal places",
		ArgsUsage: "<number>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "scale",
				Usage: "Decimal places",
				Value: rounding.DefaultScale,
			},
		},
		Action: roundAction,
	}
}

func roundAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("round expects exactly one number, got %d arguments", c.NArg())
	}

	num, err := strconv.ParseFloat(c.Args().First(), 64)
	if err != nil {
		return fmt.Errorf("invalid number: %s", c.Args().First())
	}

	scale := c.Int("scale")
	if scale < 0 || scale > config.MaxRoundingScale {
		return fmt.Errorf("invalid --scale %d: must be between 0 and %d", scale, config.MaxRoundingScale)
	}

	_, err = fmt.Fprintln(c.App.Writer, output.FormatNumber(rounding.Round(num, scale)))
	return err
}

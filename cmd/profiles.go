package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/rankcurve/internal/output"
)

// ProfilesCmd returns the profiles command.
func ProfilesCmd() *cli.Command {
	return &cli.Command{
		Name:   "profiles",
		Usage:  "List configured profiles and built-in presets",
		Action: profilesAction,
	}
}

func profilesAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Name\tShape\tMaxPoints\tMaxRank\tSource")
	fmt.Fprintf(tw, "(default)\t%s\t%s\t%d\tconfig\n", cfg.Curve.Shape, output.FormatNumber(cfg.Curve.MaxPoints), cfg.Curve.MaxRank)
	for _, name := range cfg.ProfileNames() {
		cc, err := cfg.Resolve(name)
		if err != nil {
			return err
		}
		source := "preset"
		if _, ok := cfg.Profiles[name]; ok {
			source = "config"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", name, cc.Shape, output.FormatNumber(cc.MaxPoints), cc.MaxRank, source)
	}
	return tw.Flush()
}

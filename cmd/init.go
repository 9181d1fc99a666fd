package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/rankcurve/config"
)

// InitCmd returns the init command.
func InitCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a configuration file with default values",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Config file path; .yaml/.yml writes YAML, anything else JSON",
				Value:   ".rankcurve.json",
			},
			&cli.StringFlag{
				Name:  "preset",
				Usage: "Use a preset curve as the top-level curve (" + strings.Join(presetNames(), ", ") + ")",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing file",
			},
		},
		Action: initAction,
	}
}

func initAction(c *cli.Context) error {
	path := c.String("output")
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	if name := c.String("preset"); name != "" {
		cc, ok := config.Presets()[name]
		if !ok {
			return fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(presetNames(), ", "))
		}
		cfg.Curve = cc
	}

	if err := config.SaveConfig(cfg, path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	log.Info().Str("path", path).Str("shape", string(cfg.Curve.Shape)).Msg("config written")
	return nil
}

func presetNames() []string {
	names := make([]string, 0, len(config.Shapes()))
	for _, kind := range config.Shapes() {
		names = append(names, string(kind))
	}
	return names
}

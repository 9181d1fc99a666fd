package cmd

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/rankcurve/config"
)

// ValidateCmd returns the validate command.
func ValidateCmd() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Load and validate configuration files",
		ArgsUsage: "[glob ...]",
		Action:    validateAction,
	}
}

func validateAction(c *cli.Context) error {
	paths, err := configPaths(c)
	if err != nil {
		return err
	}

	out := c.App.Writer
	failed := 0
	for _, path := range paths {
		label := path
		if label == "" {
			label = "(defaults)"
		}

		if err := validateConfigFile(path); err != nil {
			failed++
			log.Error().Err(err).Str("path", label).Msg("invalid config")
			color.New(color.FgRed).Fprintf(out, "FAIL  %s: %v\n", label, err)
			continue
		}
		log.Info().Str("path", label).Msg("config valid")
		color.New(color.FgGreen).Fprintf(out, "OK    %s\n", label)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d config files invalid", failed, len(paths))
	}
	return nil
}

// configPaths expands glob arguments. Without arguments it returns the
// --config path, the discovered default file, or "" for built-in defaults.
func configPaths(c *cli.Context) ([]string, error) {
	if c.NArg() == 0 {
		if path := c.String("config"); path != "" {
			return []string{path}, nil
		}
		return []string{config.FindConfigFile()}, nil
	}

	seen := make(map[string]struct{})
	var paths []string
	for _, pattern := range c.Args().Slice() {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			log.Warn().Str("pattern", pattern).Msg("no config files matched")
			continue
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no config files matched %v", c.Args().Slice())
	}
	sort.Strings(paths)
	return paths, nil
}

func validateConfigFile(path string) error {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	if _, err := parseLogLevel(cfg.Log.Level); err != nil {
		return err
	}
	return cfg.Validate()
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/rankcurve/config"
	"github.com/masmgr/rankcurve/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "rankcurve",
		Usage:   "Score leaderboard entries from rank and completion percent",
		Version: "1.0.0",
		Commands: []*cli.Command{
			ScoreCmd(),
			TableCmd(),
			RoundCmd(),
			ValidateCmd(),
			InitCmd(),
			ProfilesCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (JSON or YAML)",
			},
			&cli.StringFlag{
				Name:    "profile",
				Aliases: []string{"p"},
				Usage:   "Curve profile or preset name (default: top-level curve)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (trace, debug, info, warn, error)",
			},
		},
		Before: func(c *cli.Context) error {
			level := c.String("log-level")
			if level == "" {
				level = "info"
			}
			return setupLogger(level)
		},
	}
}

// setupLogger routes the global logger to stderr in console format.
func setupLogger(level string) error {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return nil
}

func parseLogLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level: %s", s)
	}
	return lvl, nil
}

// Percent flags shared by score and table.
func percentFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:  "percent",
			Usage: "Completion percent of the entry (0-100)",
			Value: 100,
		},
		&cli.Float64Flag{
			Name:  "min-percent",
			Usage: "Lowest completion percent that still earns points",
			Value: 1,
		},
		&cli.BoolFlag{
			Name:  "explain",
			Usage: "Show score breakdown",
		},
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "csv":
		return output.FormatCSV
	case "markdown", "md":
		return output.FormatMarkdown
	case "ci", "ndjson":
		return output.FormatCI
	default:
		return output.FormatConsole
	}
}

// loadConfig loads configuration from file or defaults.
// The file's log level applies unless --log-level was given.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if !c.IsSet("log-level") && cfg.Log.Level != "" {
		if err := setupLogger(cfg.Log.Level); err != nil {
			return nil, fmt.Errorf("config log level: %w", err)
		}
	}

	return cfg, nil
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		log.Error().Err(err).Msg("rankcurve failed")
		os.Exit(1)
	}
}

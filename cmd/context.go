package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/rankcurve/config"
	"github.com/masmgr/rankcurve/internal/curve"
	"github.com/masmgr/rankcurve/internal/output"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across the scoring commands.
type CommandContext struct {
	Config  *config.Config
	Profile string
	Curve   config.CurveConfig
	Engine  *curve.Engine
}

// NewCommandContext creates a context from CLI flags.
// It loads configuration, resolves the selected profile, and builds the engine.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	profile := c.String("profile")
	cc, err := cfg.Resolve(profile)
	if err != nil {
		return nil, err
	}

	engine, err := curve.New(cc)
	if err != nil {
		if profile == "" {
			return nil, fmt.Errorf("curve: %w", err)
		}
		return nil, fmt.Errorf("profile %q: %w", profile, err)
	}

	log.Debug().
		Str("profile", profile).
		Str("shape", string(cc.Shape)).
		Float64("maxPoints", cc.MaxPoints).
		Float64("minBase", cc.MinBase).
		Int("maxRank", cc.MaxRank).
		Msg("curve resolved")

	return &CommandContext{
		Config:  cfg,
		Profile: profile,
		Curve:   cc,
		Engine:  engine,
	}, nil
}

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(c.String("format")),
		OutputPath: c.String("output"),
		Explain:    c.Bool("explain"),
	}
}

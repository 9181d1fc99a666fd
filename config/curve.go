package config

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/masmgr/rankcurve/internal/rounding"
)

// ShapeKind selects the base-score strategy of a curve.
type ShapeKind string

const (
	ShapeConvexPower            ShapeKind = "convex-power"
	ShapeInverseDecayPower      ShapeKind = "inverse-decay-power"
	ShapeSinglePhaseExponential ShapeKind = "single-phase-exponential"
	ShapeTwoPhaseExponential    ShapeKind = "two-phase-exponential"
	ShapePlateauThenExponential ShapeKind = "plateau-then-exponential"
)

// Shapes lists every supported shape in declaration order.
func Shapes() []ShapeKind {
	return []ShapeKind{
		ShapeConvexPower,
		ShapeInverseDecayPower,
		ShapeSinglePhaseExponential,
		ShapeTwoPhaseExponential,
		ShapePlateauThenExponential,
	}
}

// Ascending reports whether the shape awards more points to higher rank numbers.
func (s ShapeKind) Ascending() bool {
	return s == ShapeConvexPower
}

// usesBoundary reports whether topBoundary and the decay fractions apply.
func (s ShapeKind) usesBoundary() bool {
	return s == ShapeTwoPhaseExponential || s == ShapePlateauThenExponential
}

// CutoffPolicy decides what happens to ranks at or beyond MaxRank.
type CutoffPolicy string

const (
	// CutoffSaturate clamps rank to MaxRank, where the curve yields its end value.
	CutoffSaturate CutoffPolicy = "saturate"
	// CutoffHardZero scores ranks >= MaxRank as 0 and evaluates the curve on [1, MaxRank-1].
	CutoffHardZero CutoffPolicy = "hard-zero"
)

// FloorPolicy decides the lower bound of a final score.
type FloorPolicy string

const (
	FloorZero    FloorPolicy = "zero"
	FloorMinBase FloorPolicy = "min-base"
)

// PercentBias holds the exponents applied to normalized percent at rank 1 (Low) and MaxRank (High).
type PercentBias struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// PercentGate zeroes scores past ThresholdRank whose percent is below RequiredPercent.
type PercentGate struct {
	ThresholdRank   int     `json:"thresholdRank" yaml:"thresholdRank"`
	RequiredPercent float64 `json:"requiredPercent" yaml:"requiredPercent"`
	Inclusive       bool    `json:"inclusive,omitempty" yaml:"inclusive,omitempty"` // gate ThresholdRank itself too
}

// Applies reports whether the gate zeroes the given rank and percent.
func (g *PercentGate) Applies(rank int, percent float64) bool {
	if g == nil {
		return false
	}
	past := rank > g.ThresholdRank
	if g.Inclusive {
		past = rank >= g.ThresholdRank
	}
	return past && percent < g.RequiredPercent
}

// CurveConfig holds every parameter of a scoring curve.
type CurveConfig struct {
	Shape     ShapeKind `json:"shape" yaml:"shape"`
	MaxPoints float64   `json:"maxPoints" yaml:"maxPoints"`
	MinBase   float64   `json:"minBase" yaml:"minBase"`
	MaxRank   int       `json:"maxRank" yaml:"maxRank"`

	ShapeExp float64 `json:"shapeExp,omitempty" yaml:"shapeExp,omitempty"` // convex-power, single-phase-exponential
	DecayExp float64 `json:"decayExp,omitempty" yaml:"decayExp,omitempty"` // inverse-decay-power

	// TopBoundary is the last plateau rank, or the phase boundary of two-phase-exponential.
	TopBoundary           int     `json:"topBoundary,omitempty" yaml:"topBoundary,omitempty"`
	FractionAtTopBoundary float64 `json:"fractionAtTopBoundary,omitempty" yaml:"fractionAtTopBoundary,omitempty"`
	TailFractionAtEnd     float64 `json:"tailFractionAtEnd,omitempty" yaml:"tailFractionAtEnd,omitempty"`

	PercentBias         *PercentBias `json:"percentBias,omitempty" yaml:"percentBias,omitempty"`
	HighRankPercentGate *PercentGate `json:"highRankPercentGate,omitempty" yaml:"highRankPercentGate,omitempty"`

	NonFullPenalty float64      `json:"nonFullPenalty" yaml:"nonFullPenalty"`
	Cutoff         CutoffPolicy `json:"cutoff,omitempty" yaml:"cutoff,omitempty"`
	Floor          FloorPolicy  `json:"floor,omitempty" yaml:"floor,omitempty"`
	RoundingScale  int          `json:"roundingScale" yaml:"roundingScale"`
}

// MaxRoundingScale is the largest accepted RoundingScale.
const MaxRoundingScale = 15

// DefaultNonFullPenalty is the fraction removed from scores below 100%.
const DefaultNonFullPenalty = 1.0 / 3.0

// EffectiveCutoff returns the cutoff policy, defaulting to CutoffSaturate.
func (c CurveConfig) EffectiveCutoff() CutoffPolicy {
	if c.Cutoff == "" {
		return CutoffSaturate
	}
	return c.Cutoff
}

// EffectiveFloor returns the floor policy, defaulting to FloorZero.
func (c CurveConfig) EffectiveFloor() FloorPolicy {
	if c.Floor == "" {
		return FloorZero
	}
	return c.Floor
}

// DefaultCurveConfig returns the convex curve with rank-biased percent.
func DefaultCurveConfig() CurveConfig {
	return CurveConfig{
		Shape:     ShapeConvexPower,
		MaxPoints: 350,
		MinBase:   0,
		MaxRank:   151,
		ShapeExp:  2.0,
		PercentBias: &PercentBias{
			Low:  1.3,
			High: 0.8,
		},
		NonFullPenalty: DefaultNonFullPenalty,
		Cutoff:         CutoffSaturate,
		Floor:          FloorZero,
		RoundingScale:  rounding.DefaultScale,
	}
}

// decodeSeed holds the shape-independent fields a decoded curve starts from.
func decodeSeed() CurveConfig {
	return CurveConfig{
		NonFullPenalty: DefaultNonFullPenalty,
		RoundingScale:  rounding.DefaultScale,
	}
}

// UnmarshalJSON decodes a curve; omitted nonFullPenalty and roundingScale keep their defaults.
func (c *CurveConfig) UnmarshalJSON(data []byte) error {
	type plain CurveConfig
	p := plain(decodeSeed())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = CurveConfig(p)
	return nil
}

// UnmarshalYAML is the YAML counterpart of UnmarshalJSON.
func (c *CurveConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain CurveConfig
	p := plain(decodeSeed())
	if err := unmarshal(&p); err != nil {
		return err
	}
	*c = CurveConfig(p)
	return nil
}

// Presets returns one ready-to-use curve per shape, keyed by profile name.
func Presets() map[string]CurveConfig {
	inverse := CurveConfig{
		Shape:          ShapeInverseDecayPower,
		MaxPoints:      350,
		MinBase:        0,
		MaxRank:        151,
		DecayExp:       0.5,
		NonFullPenalty: DefaultNonFullPenalty,
		Cutoff:         CutoffSaturate,
		Floor:          FloorZero,
		RoundingScale:  2,
	}

	single := inverse
	single.Shape = ShapeSinglePhaseExponential
	single.DecayExp = 0
	single.ShapeExp = 2.0

	plateau := CurveConfig{
		Shape:                 ShapePlateauThenExponential,
		MaxPoints:             350,
		MinBase:               0,
		MaxRank:               151,
		TopBoundary:           10,
		FractionAtTopBoundary: 0.95,
		TailFractionAtEnd:     0.01,
		NonFullPenalty:        DefaultNonFullPenalty,
		Cutoff:                CutoffSaturate,
		Floor:                 FloorZero,
		RoundingScale:         2,
	}

	twoPhase := plateau
	twoPhase.Shape = ShapeTwoPhaseExponential
	twoPhase.HighRankPercentGate = &PercentGate{ThresholdRank: 75, RequiredPercent: 100}

	return map[string]CurveConfig{
		string(ShapeConvexPower):            DefaultCurveConfig(),
		string(ShapeInverseDecayPower):      inverse,
		string(ShapeSinglePhaseExponential): single,
		string(ShapePlateauThenExponential): plateau,
		string(ShapeTwoPhaseExponential):    twoPhase,
	}
}

// ConfigError reports an invalid curve configuration.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid curve config: %s=%v: %s", e.Field, e.Value, e.Reason)
}

func invalid(field string, value any, reason string) error {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}

// Validate checks the configuration and returns a *ConfigError for the first violation.
func (c CurveConfig) Validate() error {
	if c.MaxRank <= 1 {
		return invalid("maxRank", c.MaxRank, "must be greater than 1")
	}
	if !isFinite(c.MaxPoints) {
		return invalid("maxPoints", c.MaxPoints, "must be finite")
	}
	if !isFinite(c.MinBase) {
		return invalid("minBase", c.MinBase, "must be finite")
	}

	switch c.Shape {
	case ShapeConvexPower, ShapeSinglePhaseExponential:
		if !(c.ShapeExp > 0) || !isFinite(c.ShapeExp) {
			return invalid("shapeExp", c.ShapeExp, "must be a positive number")
		}
	case ShapeInverseDecayPower:
		if !(c.DecayExp > 0) || !isFinite(c.DecayExp) {
			return invalid("decayExp", c.DecayExp, "must be a positive number")
		}
	case ShapeTwoPhaseExponential, ShapePlateauThenExponential:
	default:
		return invalid("shape", c.Shape, "unknown shape")
	}

	if c.Shape.usesBoundary() {
		if c.TopBoundary < 1 || c.TopBoundary > c.MaxRank-1 {
			return invalid("topBoundary", c.TopBoundary, fmt.Sprintf("must be within [1, %d]", c.MaxRank-1))
		}
		if !inUnitInterval(c.FractionAtTopBoundary) {
			return invalid("fractionAtTopBoundary", c.FractionAtTopBoundary, "must be within (0, 1]")
		}
		if !inUnitInterval(c.TailFractionAtEnd) {
			return invalid("tailFractionAtEnd", c.TailFractionAtEnd, "must be within (0, 1]")
		}
	}
	if c.Shape == ShapeTwoPhaseExponential {
		if c.MaxRank < 3 {
			return invalid("maxRank", c.MaxRank, "two-phase-exponential needs at least 3 ranks")
		}
		if c.TailFractionAtEnd > c.FractionAtTopBoundary {
			return invalid("tailFractionAtEnd", c.TailFractionAtEnd, "must not exceed fractionAtTopBoundary")
		}
	}

	if c.NonFullPenalty < 0 || c.NonFullPenalty > 1 || math.IsNaN(c.NonFullPenalty) {
		return invalid("nonFullPenalty", c.NonFullPenalty, "must be within [0, 1]")
	}

	if b := c.PercentBias; b != nil {
		if !(b.Low > 0) || !isFinite(b.Low) {
			return invalid("percentBias.low", b.Low, "must be a positive number")
		}
		if !(b.High > 0) || !isFinite(b.High) {
			return invalid("percentBias.high", b.High, "must be a positive number")
		}
	}

	if g := c.HighRankPercentGate; g != nil {
		if g.ThresholdRank < 1 {
			return invalid("highRankPercentGate.thresholdRank", g.ThresholdRank, "must be at least 1")
		}
		if g.RequiredPercent < 0 || g.RequiredPercent > 100 || math.IsNaN(g.RequiredPercent) {
			return invalid("highRankPercentGate.requiredPercent", g.RequiredPercent, "must be within [0, 100]")
		}
	}

	switch c.Cutoff {
	case "", CutoffSaturate, CutoffHardZero:
	default:
		return invalid("cutoff", c.Cutoff, "must be \"saturate\" or \"hard-zero\"")
	}
	switch c.Floor {
	case "", FloorZero, FloorMinBase:
	default:
		return invalid("floor", c.Floor, "must be \"zero\" or \"min-base\"")
	}

	if c.RoundingScale < 0 || c.RoundingScale > MaxRoundingScale {
		return invalid("roundingScale", c.RoundingScale, fmt.Sprintf("must be within [0, %d]", MaxRoundingScale))
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func inUnitInterval(v float64) bool {
	return v > 0 && v <= 1
}

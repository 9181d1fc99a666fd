package curve

import (
	"math"

	"github.com/masmgr/rankcurve/config"
	"github.com/masmgr/rankcurve/internal/rounding"
)

// Engine maps (rank, percent, minPercent) to a rounded score.
// It is immutable after construction and safe for concurrent use.
type Engine struct {
	cfg     config.CurveConfig
	shape   shape
	rounder rounding.Rounder
	cutoff  config.CutoffPolicy
	floor   float64
}

// Breakdown holds every intermediate value of a single score computation.
type Breakdown struct {
	Rank       int     // effective rank after clamping
	Percent    float64 // effective percent after clamping
	Base       float64
	Normalized float64
	PercentExp float64 // 1 when no percent bias is configured
	Weighted   float64 // Normalized^PercentExp
	Raw        float64 // Base*Weighted, before penalty
	Penalty    float64 // amount removed for percent != 100
	Score      float64
	Gated      bool // zeroed by the high-rank percent gate
	CutOff     bool // zeroed by the hard-zero rank cutoff
}

// New validates cfg and builds an Engine.
func New(cfg config.CurveConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s, err := newShape(cfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		shape:   s,
		rounder: rounding.New(cfg.RoundingScale),
		cutoff:  cfg.EffectiveCutoff(),
	}
	if cfg.EffectiveFloor() == config.FloorMinBase {
		e.floor = e.rounder.Round(cfg.MinBase)
	}
	return e, nil
}

// MustNew is like New but panics on an invalid configuration.
func MustNew(cfg config.CurveConfig) *Engine {
	e, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// Config returns the configuration the engine was built from.
func (e *Engine) Config() config.CurveConfig {
	return e.cfg
}

// Round rounds num to the configured scale.
func (e *Engine) Round(num float64) float64 {
	return e.rounder.Round(num)
}

// Score returns the rounded score for an entry.
func (e *Engine) Score(rank int, percent, minPercent float64) float64 {
	return e.Explain(rank, percent, minPercent).Score
}

// BaseScore returns the rank-only component of the score.
// Under the hard-zero cutoff, ranks at or beyond maxRank have a base of 0.
func (e *Engine) BaseScore(rank int) float64 {
	r, cut := e.effectiveRank(rank)
	if cut {
		return 0
	}
	return e.shape.base(r)
}

// Explain computes a score and returns every intermediate value.
func (e *Engine) Explain(rank int, percent, minPercent float64) Breakdown {
	percent = clampPercent(percent)
	minPercent = clampPercent(minPercent)

	b := Breakdown{Rank: rank, Percent: percent, PercentExp: 1}

	if e.cfg.HighRankPercentGate.Applies(rank, percent) {
		b.Gated = true
		return b
	}

	r, cut := e.effectiveRank(rank)
	b.Rank = r
	if cut {
		b.CutOff = true
		return b
	}

	b.Base = e.shape.base(r)
	b.Normalized = NormalizePercent(percent, minPercent)
	b.Weighted = b.Normalized
	if bias := e.cfg.PercentBias; bias != nil {
		b.PercentExp = lerp(bias.Low, bias.High, RankPosition(r, e.cfg.MaxRank))
		b.Weighted = math.Pow(b.Normalized, b.PercentExp)
	}

	b.Raw = b.Base * b.Weighted
	if percent != 100 {
		b.Penalty = b.Raw * e.cfg.NonFullPenalty
	}

	b.Score = math.Max(e.rounder.Round(b.Raw-b.Penalty), e.floor)
	return b
}

// effectiveRank clamps rank per the cutoff policy and reports whether it is cut off.
func (e *Engine) effectiveRank(rank int) (int, bool) {
	if e.cutoff == config.CutoffHardZero {
		if rank >= e.cfg.MaxRank {
			return e.cfg.MaxRank, true
		}
		return clampInt(rank, 1, e.cfg.MaxRank-1), false
	}
	return clampInt(rank, 1, e.cfg.MaxRank), false
}

func clampPercent(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return clampFloat(p, 0, 100)
}

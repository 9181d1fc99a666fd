package curve

import (
	"fmt"
	"math"

	"github.com/masmgr/rankcurve/config"
)

// shape computes the rank-only base score. Callers clamp rank to [1, maxRank] first.
type shape interface {
	base(rank int) float64
}

func newShape(cfg config.CurveConfig) (shape, error) {
	switch cfg.Shape {
	case config.ShapeConvexPower:
		return convexPower{minBase: cfg.MinBase, gap: cfg.MaxPoints - cfg.MinBase, maxRank: cfg.MaxRank, exp: cfg.ShapeExp}, nil
	case config.ShapeInverseDecayPower:
		return newInverseDecayPower(cfg), nil
	case config.ShapeSinglePhaseExponential:
		return singlePhase{minBase: cfg.MinBase, gap: cfg.MaxPoints - cfg.MinBase, maxRank: cfg.MaxRank, exp: cfg.ShapeExp}, nil
	case config.ShapePlateauThenExponential:
		return newPlateau(cfg), nil
	case config.ShapeTwoPhaseExponential:
		return newTwoPhase(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported shape %q", cfg.Shape)
	}
}

// convexPower rises from minBase at rank 1 to maxPoints at maxRank.
type convexPower struct {
	minBase, gap float64
	maxRank      int
	exp          float64
}

func (s convexPower) base(rank int) float64 {
	t := RankPosition(rank, s.maxRank)
	return s.minBase + s.gap*math.Pow(t, s.exp)
}

// inverseDecayPower falls from maxPoints at rank 1 to minBase at maxRank along (rank-1)^exp.
type inverseDecayPower struct {
	maxPoints, minBase float64
	maxRank            int
	coeff              float64
	exp                float64
}

func newInverseDecayPower(cfg config.CurveConfig) inverseDecayPower {
	span := math.Pow(float64(cfg.MaxRank-1), cfg.DecayExp)
	return inverseDecayPower{
		maxPoints: cfg.MaxPoints,
		minBase:   cfg.MinBase,
		maxRank:   cfg.MaxRank,
		coeff:     (cfg.MinBase - cfg.MaxPoints) / span,
		exp:       cfg.DecayExp,
	}
}

func (s inverseDecayPower) base(rank int) float64 {
	if rank >= s.maxRank {
		return s.minBase
	}
	return s.maxPoints + s.coeff*math.Pow(float64(rank-1), s.exp)
}

// singlePhase falls from maxPoints at rank 1 to minBase at maxRank along u^exp.
type singlePhase struct {
	minBase, gap float64
	maxRank      int
	exp          float64
}

func (s singlePhase) base(rank int) float64 {
	u := 1 - RankPosition(rank, s.maxRank)
	return s.minBase + s.gap*math.Pow(u, s.exp)
}

// plateau holds maxPoints through topBoundary, then decays exponentially toward minBase.
type plateau struct {
	maxPoints, minBase float64
	topBoundary        int
	maxRank            int
	startGap           float64 // gap above minBase at topBoundary+1
	rate               float64
}

func newPlateau(cfg config.CurveConfig) plateau {
	start := cfg.TopBoundary + 1
	return plateau{
		maxPoints:   cfg.MaxPoints,
		minBase:     cfg.MinBase,
		topBoundary: cfg.TopBoundary,
		maxRank:     cfg.MaxRank,
		startGap:    (cfg.MaxPoints - cfg.MinBase) * cfg.FractionAtTopBoundary,
		rate:        DecayRate(cfg.TailFractionAtEnd, cfg.MaxRank-start),
	}
}

func (s plateau) base(rank int) float64 {
	switch {
	case rank <= s.topBoundary:
		return s.maxPoints
	case rank >= s.maxRank:
		return s.minBase
	}
	steps := float64(rank - (s.topBoundary + 1))
	return s.minBase + s.startGap*math.Exp(-s.rate*steps)
}

// twoPhase joins two exponential segments at boundary; both evaluate to the
// same fraction there so the curve is continuous.
type twoPhase struct {
	minBase, gap float64
	boundary     int
	maxRank      int
	topRate      float64
	tailRate     float64
	atBoundary   float64
}

func newTwoPhase(cfg config.CurveConfig) twoPhase {
	r0 := clampInt(cfg.TopBoundary, 2, cfg.MaxRank-1)
	topRate := DecayRate(cfg.FractionAtTopBoundary, r0-1)
	atBoundary := math.Exp(-topRate * float64(r0-1))
	return twoPhase{
		minBase:    cfg.MinBase,
		gap:        cfg.MaxPoints - cfg.MinBase,
		boundary:   r0,
		maxRank:    cfg.MaxRank,
		topRate:    topRate,
		tailRate:   math.Max(0, DecayRate(cfg.TailFractionAtEnd/atBoundary, cfg.MaxRank-r0)),
		atBoundary: atBoundary,
	}
}

func (s twoPhase) fraction(rank int) float64 {
	if rank <= s.boundary {
		return math.Exp(-s.topRate * float64(rank-1))
	}
	return s.atBoundary * math.Exp(-s.tailRate*float64(rank-s.boundary))
}

func (s twoPhase) base(rank int) float64 {
	if rank >= s.maxRank {
		return s.minBase
	}
	return s.minBase + s.gap*clamp(s.fraction(rank))
}

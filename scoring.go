package geflip

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ScoringWeights are the heuristic constants of the ranking score. Their
// exact values are tuning, not contract: the invariant is only that a
// higher-profit, more liquid candidate outranks a lower-profit, illiquid
// one within the same strategy. They are kept configurable so the tuning
// can change without a release.
type ScoringWeights struct {
	// Profit scales the log of the total potential profit.
	Profit float64 `yaml:"profit"`
	// Velocity scales the log of the flip velocity.
	Velocity float64 `yaml:"velocity"`
	// Margin scales the per-unit margin percentage for high_margin.
	Margin float64 `yaml:"margin"`
	// DipBonus scales the negative 24h change for dip_buys.
	DipBonus float64 `yaml:"dip_bonus"`
	// MomentumBonus scales the positive 1h change for momentum_plays.
	MomentumBonus float64 `yaml:"momentum_bonus"`
	// TierExcellent and TierGood are the balanced strategy's tier bonuses.
	TierExcellent float64 `yaml:"tier_excellent"`
	TierGood      float64 `yaml:"tier_good"`
}

// DefaultWeights returns the tuned defaults.
func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		Profit:        3.0,
		Velocity:      1.5,
		Margin:        0.8,
		DipBonus:      0.5,
		MomentumBonus: 0.5,
		TierExcellent: 4.0,
		TierGood:      2.0,
	}
}

// Validate rejects weights that would invert the ranking invariant.
func (w ScoringWeights) Validate() error {
	if w.Profit <= 0 {
		return fmt.Errorf("profit weight must be positive, got %g", w.Profit)
	}
	if w.Velocity < 0 || w.Margin < 0 || w.DipBonus < 0 || w.MomentumBonus < 0 {
		return fmt.Errorf("strategy weights must not be negative")
	}
	return nil
}

// LoadWeights reads scoring weights from a YAML file. Fields absent from
// the file keep their default value.
func LoadWeights(path string) (ScoringWeights, error) {
	w := DefaultWeights()
	b, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read weights: %w", err)
	}
	if err := yaml.Unmarshal(b, &w); err != nil {
		return w, fmt.Errorf("parse weights %s: %w", path, err)
	}
	if err := w.Validate(); err != nil {
		return w, fmt.Errorf("weights %s: %w", path, err)
	}
	return w, nil
}

// score computes the strategy-weighted score of one candidate. Profit and
// velocity enter on a log scale so one monster margin cannot drown out
// liquidity entirely.
func (w ScoringWeights) score(c Candidate, strategy Strategy) float64 {
	s := w.Profit*math.Log1p(float64(c.PotentialProfit)) +
		w.Velocity*math.Log1p(c.FlipVelocity)

	switch strategy {
	case HighMargin:
		s += w.Margin * c.MarginPct
	case DipBuys:
		if c.Change24h < 0 {
			s += w.DipBonus * -c.Change24h
		}
	case MomentumPlays:
		if c.Change1h > 0 {
			s += w.MomentumBonus * c.Change1h
		}
	case Balanced:
		switch c.Tradability {
		case Excellent:
			s += w.TierExcellent
		case Good:
			s += w.TierGood
		}
	}
	return s
}

// RankCandidates scores and sorts candidates for the strategy, best first,
// truncated to the top 30 before any external enrichment. The input slice
// is not modified.
func RankCandidates(candidates []Candidate, strategy Strategy, w ScoringWeights) []Candidate {
	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)
	for i := range ranked {
		ranked[i].Score = w.score(ranked[i], strategy)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].PotentialProfit > ranked[j].PotentialProfit
	})
	if len(ranked) > maxRanked {
		ranked = ranked[:maxRanked]
	}
	return ranked
}

// Analyze runs the whole pipeline: filter, then rank. It returns
// ErrNoCandidates when the filters leave nothing, so callers can show a
// single "no matches" message instead of an empty table.
func Analyze(items []Item, snap *Snapshot, budget int64, strategy Strategy, ignoreLowBuyLimits bool, w ScoringWeights) ([]Candidate, error) {
	cands, err := FilterCandidates(items, snap, budget, strategy, ignoreLowBuyLimits)
	if err != nil {
		return nil, err
	}
	if len(cands) == 0 {
		return nil, ErrNoCandidates
	}
	return RankCandidates(cands, strategy, w), nil
}

package strategy

import (
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/cache"
)

// Strategy names accepted by BuildCalculators.
const (
	NameRanking       = "weak_offense_strong_defense"
	NamePropsBaseline = "qb_td_props"
	NamePropsEnhanced = "qb_td_props_enhanced"
)

// Stores bundles the data access interfaces the calculators draw from.
type Stores struct {
	Stats    StatStore
	Signals  SignalStore
	Odds     OddsStore
	Matchups MatchupStore
}

// BuildCalculators constructs calculators for the named strategies. The
// enhanced prop strategy composes its own baseline so enabling it alongside
// the baseline yields two independent calculators.
func BuildCalculators(names []string, stores Stores, rankingCfg RankingConfig, propCfg PropConfig, reasonCache *cache.ExplanationCache) ([]Calculator, error) {
	calculators := make([]Calculator, 0, len(names))

	for _, name := range names {
		switch name {
		case NameRanking:
			calculators = append(calculators, NewRankingCalculator(stores.Stats, stores.Matchups, rankingCfg))
		case NamePropsBaseline:
			calculators = append(calculators, NewTDPropCalculator(stores.Stats, stores.Odds, stores.Matchups, propCfg, reasonCache))
		case NamePropsEnhanced:
			baseline := NewTDPropCalculator(stores.Stats, stores.Odds, stores.Matchups, propCfg, reasonCache)
			calculators = append(calculators, NewEnhancedTDPropCalculator(baseline, stores.Signals))
		default:
			return nil, fmt.Errorf("unknown strategy %q", name)
		}
	}

	return calculators, nil
}

package pricing

import (
	"math"
	"sort"

	"kitedesk/internal/model"
)

// TierMatch is the outcome of matching a quantity against a tier set. Tier is
// nil when nothing matched; UnitPrice and TotalPrice are zero in that case.
type TierMatch struct {
	Tier       *model.PricingTier
	UnitPrice  float64
	TotalPrice float64
}

// MatchTier picks the tier whose half-open interval [FromHours, ToHours)
// contains quantity and returns its rate together with quantity * rate.
//
// An empty tier set, a non-positive quantity or a non-finite quantity is a
// defined zero-case, not an error. Tiers with a non-positive rate are skipped
// while scanning. When no interval contains the quantity but the last tier
// (sorted by FromHours) is unbounded above, that tier applies even if the
// quantity sits below its lower bound; order entry relies on this when tier
// tables have gaps.
func MatchTier(quantity float64, tiers []model.PricingTier) TierMatch {
	if len(tiers) == 0 || quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return TierMatch{}
	}

	sorted := make([]model.PricingTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FromHours < sorted[j].FromHours
	})

	for i := range sorted {
		t := &sorted[i]
		if t.PricePerHour <= 0 || math.IsNaN(t.PricePerHour) {
			continue
		}
		if quantity < t.FromHours {
			continue
		}
		if t.ToHours != nil && quantity >= *t.ToHours {
			continue
		}
		return TierMatch{
			Tier:       t,
			UnitPrice:  t.PricePerHour,
			TotalPrice: quantity * t.PricePerHour,
		}
	}

	last := &sorted[len(sorted)-1]
	if last.ToHours == nil && last.PricePerHour > 0 {
		return TierMatch{
			Tier:       last,
			UnitPrice:  last.PricePerHour,
			TotalPrice: quantity * last.PricePerHour,
		}
	}

	return TierMatch{}
}

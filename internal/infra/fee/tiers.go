// Package fee provides delivery fee calculators other than the backend.
package fee

import (
	"slices"

	"storefront/config"
	"storefront/internal/domain/entity"
)

// TiersFromConfig orders the configured bands by distance, open-ended last,
// and fills in each band's lower bound.
func TiersFromConfig(bands []config.FeeTierConfig) []entity.FeeTier {
	sorted := slices.Clone(bands)
	slices.SortStableFunc(sorted, func(a, b config.FeeTierConfig) int {
		switch {
		case a.UpToKm == b.UpToKm:
			return 0
		case a.UpToKm == 0:
			return 1
		case b.UpToKm == 0:
			return -1
		case a.UpToKm < b.UpToKm:
			return -1
		default:
			return 1
		}
	})

	tiers := make([]entity.FeeTier, 0, len(sorted))
	var from float64
	for _, band := range sorted {
		tiers = append(tiers, entity.FeeTier{FromKm: from, UpToKm: band.UpToKm, Fee: band.Fee})
		if band.UpToKm == 0 {
			break
		}
		from = band.UpToKm
	}

	return tiers
}

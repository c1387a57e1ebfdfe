// Package insurance classifies a host's verified insurance status into a
// revenue-split tier.
package insurance

import (
	"strings"

	"kerbside/internal/domain"
)

// ResolveTier maps a verified insurance type to its revenue split. The
// function is total: matching is case-insensitive and any unrecognized
// value falls back to the 40% platform tier rather than erroring.
func ResolveTier(verifiedType string) domain.InsuranceTier {
	switch strings.ToLower(strings.TrimSpace(verifiedType)) {
	case "commercial":
		return domain.InsuranceTier{Type: domain.InsuranceCommercial, RevenueSplitPercent: 90}
	case "p2p":
		return domain.InsuranceTier{Type: domain.InsuranceP2P, RevenueSplitPercent: 75}
	default:
		return domain.InsuranceTier{Type: domain.InsuranceNone, RevenueSplitPercent: 40}
	}
}

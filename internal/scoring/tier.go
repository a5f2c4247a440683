package scoring

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Tier is a coarse readiness bucket derived from the readiness score.
type Tier string

// Tiers in ascending order of readiness.
const (
	TierCold      Tier = "cold"
	TierWarm      Tier = "warm"
	TierHot       Tier = "hot"
	TierQualified Tier = "qualified"
)

var tiers = []Tier{
	TierCold,
	TierWarm,
	TierHot,
	TierQualified,
}

// TierFor buckets a readiness score. Each band includes its lower bound.
func TierFor(score int) Tier {
	switch {
	case score >= 80:
		return TierQualified
	case score >= 60:
		return TierHot
	case score >= 40:
		return TierWarm
	default:
		return TierCold
	}
}

// ParseTier validates a string as a known tier.
func ParseTier(s string) (Tier, error) {
	v := Tier(s)
	if !slices.Contains(tiers, v) {
		return "", fmt.Errorf("unknown tier %q", s)
	}
	return v, nil
}

// AtLeast reports whether t ranks at or above floor.
func (t Tier) AtLeast(floor Tier) bool {
	return slices.Index(tiers, t) >= slices.Index(tiers, floor)
}

// UnmarshalJSON validates that the decoded string is a known tier.
func (t *Tier) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseTier(raw)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

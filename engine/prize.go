package engine

import (
	"sort"
)

// Fixed prize-pool cuts, in percent of the total pool, and the organizer
// floor in whole rupees.
const (
	OrgCutPercent  = 10
	FundCutPercent = 4
	OrgFloor       = 20
)

// PrizeTier defines the paid positions for pools up to PoolThreshold
// (inclusive). Splits are whole percentages of the post-cut pool, index 0 =
// 1st place; they must sum to exactly 100.
type PrizeTier struct {
	PoolThreshold int64 `json:"pool_threshold"`
	Splits        []int `json:"splits"`
}

// DefaultPrizeTiers is the tier table used when a season does not configure
// its own.
var DefaultPrizeTiers = []PrizeTier{
	{PoolThreshold: 500, Splits: []int{100}},
	{PoolThreshold: 1500, Splits: []int{55, 30, 15}},
	{PoolThreshold: 5000, Splits: []int{45, 25, 15, 10, 5}},
}

// PositionPayout is one paid position's final amount.
type PositionPayout struct {
	Position int   `json:"position"`
	Amount   int64 `json:"amount"`
}

// Distribution is the finalized split of a prize pool.
type Distribution struct {
	Org       int64            `json:"org"`
	Fund      int64            `json:"fund"`
	Positions []PositionPayout `json:"positions"`
}

// Total returns org + fund + all position payouts. It always equals the
// input pool size exactly; no rupee is lost or created by rounding.
func (d Distribution) Total() int64 {
	total := d.Org + d.Fund
	for _, p := range d.Positions {
		total += p.Amount
	}
	return total
}

// DistributePrizePool splits a prize pool into organizer cut, fund reserve
// and per-position payouts.
//
// The pool is entry fee times total player count, UC-exempt players
// included. Their waived fees come out of the organizer cut, clamped at the
// ₹20 floor with the shortfall moving to Fund, and Org > Fund is restored by
// a minimal transfer if the clamp violated it. The post-cut remainder is
// split per the tier's percentages; fractional rupees cascade upward, each
// position passing its remainder to the next-higher one, and anything left
// unresolved past 1st place goes to Fund.
func DistributePrizePool(poolSize, entryFee int64, ucExemptCount int, tiers []PrizeTier) (Distribution, error) {
	if poolSize <= 0 {
		return Distribution{}, newValidationError("pool_size", poolSize, "prize pool must be positive")
	}
	if len(tiers) == 0 {
		return Distribution{}, newValidationError("tiers", nil, "tier table is empty")
	}
	if entryFee < 0 {
		return Distribution{}, newValidationError("entry_fee", entryFee, "entry fee cannot be negative")
	}
	if ucExemptCount < 0 {
		return Distribution{}, newValidationError("uc_exempt_count", ucExemptCount, "exempt count cannot be negative")
	}

	tier, err := pickTier(poolSize, tiers)
	if err != nil {
		return Distribution{}, err
	}

	org := poolSize * OrgCutPercent / 100
	fund := poolSize * FundCutPercent / 100

	// Waived entry fees were never collected, so they come out of Org.
	if ucExemptCount > 0 {
		org -= int64(ucExemptCount) * entryFee
		if org < OrgFloor {
			shortfall := OrgFloor - org
			org = OrgFloor
			fund -= shortfall
		}
		if fund < 0 {
			return Distribution{}, newValidationError("uc_exempt_count", ucExemptCount,
				"waived fees exceed organizer and fund cuts")
		}
	}

	// Org > Fund is a hard rule; restore it with the minimum transfer. The
	// fund cannot go negative, so a degenerate pool may leave the two equal
	// at zero.
	if org <= fund {
		transfer := (fund-org)/2 + 1
		if transfer > fund {
			transfer = fund
		}
		fund -= transfer
		org += transfer
	}

	remaining := poolSize - org - fund
	if remaining < 0 {
		return Distribution{}, newValidationError("pool_size", poolSize, "cuts exceed prize pool")
	}
	if remaining > 0 && len(tier.Splits) == 0 {
		// Nothing to cascade into: the tier table is misconfigured.
		return Distribution{}, newValidationError("tiers", tier.PoolThreshold, "tier has no paid positions")
	}

	// Split in hundredths of a rupee, walking from the lowest paid position
	// upward. Each position keeps the whole rupees and passes the fraction
	// to the next-higher position; the carry left past 1st place is always
	// a whole amount (the splits sum to 100) and is added to Fund.
	positions := make([]PositionPayout, len(tier.Splits))
	var carry int64
	for i := len(tier.Splits) - 1; i >= 0; i-- {
		cents := remaining*int64(tier.Splits[i]) + carry
		positions[i] = PositionPayout{Position: i + 1, Amount: cents / 100}
		carry = cents % 100
	}
	fund += carry / 100

	return Distribution{Org: org, Fund: fund, Positions: positions}, nil
}

// pickTier selects the lowest tier whose threshold covers the pool. A pool
// larger than every threshold explicitly falls back to the highest tier
// rather than failing; callers are expected to log that fallback.
func pickTier(poolSize int64, tiers []PrizeTier) (PrizeTier, error) {
	sorted := make([]PrizeTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PoolThreshold < sorted[j].PoolThreshold
	})

	tier := sorted[len(sorted)-1] // fallback: highest threshold
	for _, t := range sorted {
		if poolSize <= t.PoolThreshold {
			tier = t
			break
		}
	}

	if len(tier.Splits) > 0 {
		if sum := splitSum(tier.Splits); sum != 100 {
			return PrizeTier{}, newValidationError("tiers", sum, "tier splits must sum to 100")
		}
	}
	return tier, nil
}

func splitSum(splits []int) int {
	sum := 0
	for _, s := range splits {
		sum += s
	}
	return sum
}

package engine

// SoloBonusConfig controls solo-support bonus eligibility.
// RequirePaidPosition gates the bonus on the player's host team finishing in
// a paid position; PaidPositions is how many positions the active tier pays.
type SoloBonusConfig struct {
	RequirePaidPosition bool
	PaidPositions       int
}

// SoloBonusCandidate is a SOLO player folded into a team, with the host
// team's final standing.
type SoloBonusCandidate struct {
	PlayerID     int
	TeamID       int
	TeamPosition int
}

// PlayerBonus is one solo-support payout.
type PlayerBonus struct {
	PlayerID int   `json:"player_id"`
	Amount   int64 `json:"amount"`
}

// SoloBonusResult carries the payouts and the donor pool balance left after
// distribution.
type SoloBonusResult struct {
	PerPlayer     []PlayerBonus `json:"per_player"`
	RemainingPool int64         `json:"remaining_pool"`
}

// AllocateSoloBonus splits the donor pool equally among eligible SOLO
// players. The total distributed never exceeds the pool balance: the split
// is floor division with the remainder handed out one rupee at a time from
// the first eligible player.
//
// An exhausted pool with eligible players returns a zero-bonus result
// alongside an InsufficientPoolError; callers log it and carry on, since a
// missing bonus is not a tournament failure. No eligible players is simply
// an empty result.
func AllocateSoloBonus(candidates []SoloBonusCandidate, donorPoolBalance int64, cfg SoloBonusConfig) (SoloBonusResult, error) {
	if donorPoolBalance < 0 {
		return SoloBonusResult{}, newValidationError("donor_pool_balance", donorPoolBalance, "donor pool cannot be negative")
	}

	eligible := make([]SoloBonusCandidate, 0, len(candidates))
	for _, c := range candidates {
		if cfg.RequirePaidPosition && (c.TeamPosition < 1 || c.TeamPosition > cfg.PaidPositions) {
			continue
		}
		eligible = append(eligible, c)
	}

	result := SoloBonusResult{
		PerPlayer:     make([]PlayerBonus, 0, len(eligible)),
		RemainingPool: donorPoolBalance,
	}
	if len(eligible) == 0 {
		return result, nil
	}
	if donorPoolBalance == 0 {
		return result, &InsufficientPoolError{Available: donorPoolBalance, Eligible: len(eligible)}
	}

	share := donorPoolBalance / int64(len(eligible))
	remainder := donorPoolBalance % int64(len(eligible))

	var distributed int64
	for i, c := range eligible {
		amount := share
		if int64(i) < remainder {
			amount++
		}
		if amount == 0 {
			continue
		}
		result.PerPlayer = append(result.PerPlayer, PlayerBonus{PlayerID: c.PlayerID, Amount: amount})
		distributed += amount
	}
	result.RemainingPool = donorPoolBalance - distributed

	return result, nil
}

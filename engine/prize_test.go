package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributePrizePool(t *testing.T) {
	t.Run("pool of 1000 with no exemptions", func(t *testing.T) {
		// 20 players at ₹50: Org = 100 (10%), Fund = 40 (4%), 860 across
		// the paid positions.
		dist, err := DistributePrizePool(1000, 50, 0, DefaultPrizeTiers)
		require.NoError(t, err)

		assert.Equal(t, int64(100), dist.Org)
		assert.Equal(t, int64(40), dist.Fund)
		require.Len(t, dist.Positions, 3)

		var paid int64
		for _, p := range dist.Positions {
			paid += p.Amount
		}
		assert.Equal(t, int64(860), paid)
		assert.Equal(t, int64(1000), dist.Total())
	})

	t.Run("uc-exempt fees come out of org", func(t *testing.T) {
		// Two waived ₹50 fees: Org 100 - 100 = 0, clamped to the ₹20
		// floor with the shortfall taken from Fund, then a minimal ₹1
		// transfer restores Org > Fund.
		dist, err := DistributePrizePool(1000, 50, 2, DefaultPrizeTiers)
		require.NoError(t, err)
		assert.Equal(t, int64(21), dist.Org)
		assert.Equal(t, int64(19), dist.Fund)
		assert.Equal(t, int64(1000), dist.Total())
	})

	t.Run("org must strictly exceed fund after clamping", func(t *testing.T) {
		// Org 200 - 180 = 20 (floor holds without shortfall), Fund 80:
		// minimal transfer restores Org > Fund.
		dist, err := DistributePrizePool(2000, 60, 3, DefaultPrizeTiers)
		require.NoError(t, err)
		assert.Greater(t, dist.Org, dist.Fund)
		assert.Equal(t, int64(2000), dist.Total())
	})

	t.Run("rounding cascade conserves every rupee", func(t *testing.T) {
		// 997 is prime against the splits, so every position rounds.
		for _, pool := range []int64{1, 7, 499, 501, 997, 1000, 1499, 4999} {
			dist, err := DistributePrizePool(pool, 0, 0, DefaultPrizeTiers)
			require.NoError(t, err, "pool %d", pool)
			assert.Equal(t, pool, dist.Total(), "pool %d", pool)
		}
	})

	t.Run("cascade passes remainders to higher positions", func(t *testing.T) {
		tiers := []PrizeTier{{PoolThreshold: 1000, Splits: []int{50, 30, 20}}}
		dist, err := DistributePrizePool(117, 0, 0, tiers)
		require.NoError(t, err)
		// Org 11, Fund 4, remaining 102. 3rd floors 20.40 to 20 and passes
		// the .40 up; 2nd gets 30.60 + .40 = 31; 1st keeps its exact 51.
		assert.Equal(t, int64(51), dist.Positions[0].Amount)
		assert.Equal(t, int64(31), dist.Positions[1].Amount)
		assert.Equal(t, int64(20), dist.Positions[2].Amount)
		assert.Equal(t, int64(117), dist.Total())
	})

	t.Run("non-positive pool is a validation error", func(t *testing.T) {
		for _, pool := range []int64{0, -50} {
			_, err := DistributePrizePool(pool, 50, 0, DefaultPrizeTiers)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		}
	})

	t.Run("pool above all thresholds falls back to the highest tier", func(t *testing.T) {
		dist, err := DistributePrizePool(50000, 100, 0, DefaultPrizeTiers)
		require.NoError(t, err)
		assert.Len(t, dist.Positions, 5)
		assert.Equal(t, int64(50000), dist.Total())
	})

	t.Run("tier without paid positions is a validation error", func(t *testing.T) {
		tiers := []PrizeTier{{PoolThreshold: 1000, Splits: nil}}
		_, err := DistributePrizePool(500, 50, 0, tiers)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("splits not summing to 100 are rejected", func(t *testing.T) {
		tiers := []PrizeTier{{PoolThreshold: 1000, Splits: []int{60, 30}}}
		_, err := DistributePrizePool(500, 50, 0, tiers)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("empty tier table is a validation error", func(t *testing.T) {
		_, err := DistributePrizePool(500, 50, 0, nil)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("waived fees beyond org and fund are rejected", func(t *testing.T) {
		// 10 waived ₹50 fees dwarf the 14% cuts of a ₹600 pool.
		_, err := DistributePrizePool(600, 50, 10, DefaultPrizeTiers)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})
}

func TestAllocateSoloBonus(t *testing.T) {
	cfg := SoloBonusConfig{RequirePaidPosition: true, PaidPositions: 3}
	candidates := []SoloBonusCandidate{
		{PlayerID: 1, TeamID: 10, TeamPosition: 1},
		{PlayerID: 2, TeamID: 11, TeamPosition: 3},
		{PlayerID: 3, TeamID: 12, TeamPosition: 7}, // unpaid position
	}

	t.Run("equal split among eligible players", func(t *testing.T) {
		result, err := AllocateSoloBonus(candidates, 100, cfg)
		require.NoError(t, err)
		require.Len(t, result.PerPlayer, 2)
		assert.Equal(t, int64(50), result.PerPlayer[0].Amount)
		assert.Equal(t, int64(50), result.PerPlayer[1].Amount)
		assert.Equal(t, int64(0), result.RemainingPool)
	})

	t.Run("remainder goes one rupee at a time from the first player", func(t *testing.T) {
		result, err := AllocateSoloBonus(candidates, 101, cfg)
		require.NoError(t, err)
		assert.Equal(t, int64(51), result.PerPlayer[0].Amount)
		assert.Equal(t, int64(50), result.PerPlayer[1].Amount)
		assert.Equal(t, int64(0), result.RemainingPool)
	})

	t.Run("never pays out more than the pool holds", func(t *testing.T) {
		for _, balance := range []int64{0, 1, 2, 3, 99, 100} {
			result, _ := AllocateSoloBonus(candidates, balance, cfg)
			var total int64
			for _, b := range result.PerPlayer {
				total += b.Amount
			}
			assert.LessOrEqual(t, total, balance, "balance %d", balance)
			assert.Equal(t, balance-total, result.RemainingPool, "balance %d", balance)
		}
	})

	t.Run("exhausted pool reports but does not fail hard", func(t *testing.T) {
		result, err := AllocateSoloBonus(candidates, 0, cfg)
		require.Error(t, err)
		var poolErr *InsufficientPoolError
		require.ErrorAs(t, err, &poolErr)
		assert.Equal(t, 2, poolErr.Eligible)
		assert.Empty(t, result.PerPlayer)
		assert.Equal(t, int64(0), result.RemainingPool)
	})

	t.Run("no eligible players is an empty result, not an error", func(t *testing.T) {
		unpaid := []SoloBonusCandidate{{PlayerID: 3, TeamID: 12, TeamPosition: 9}}
		result, err := AllocateSoloBonus(unpaid, 500, cfg)
		require.NoError(t, err)
		assert.Empty(t, result.PerPlayer)
		assert.Equal(t, int64(500), result.RemainingPool)
	})

	t.Run("eligibility gate can be disabled", func(t *testing.T) {
		open := SoloBonusConfig{RequirePaidPosition: false}
		result, err := AllocateSoloBonus(candidates, 90, open)
		require.NoError(t, err)
		assert.Len(t, result.PerPlayer, 3)
	})
}

package services

import (
	"testing"

	"github.com/bgmi-arena/tournament-system/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldUnclaimedPositions(t *testing.T) {
	t.Run("surplus positions move to fund", func(t *testing.T) {
		// 16 players at 100 fills a 5-position tier, but squad mode only
		// produced 4 teams. Position 5's payout must land in the fund.
		dist, err := engine.DistributePrizePool(1600, 100, 0, engine.DefaultPrizeTiers)
		require.NoError(t, err)
		require.Len(t, dist.Positions, 5)

		surplus := dist.Positions[4].Amount
		fundBefore := dist.Fund

		unclaimed := foldUnclaimedPositions(&dist, 4)

		assert.Equal(t, surplus, unclaimed)
		assert.Len(t, dist.Positions, 4)
		assert.Equal(t, fundBefore+surplus, dist.Fund)
		assert.Equal(t, int64(1600), dist.Total())
	})

	t.Run("enough teams leaves the split untouched", func(t *testing.T) {
		dist, err := engine.DistributePrizePool(1600, 100, 0, engine.DefaultPrizeTiers)
		require.NoError(t, err)
		fundBefore := dist.Fund

		unclaimed := foldUnclaimedPositions(&dist, 8)

		assert.Zero(t, unclaimed)
		assert.Len(t, dist.Positions, 5)
		assert.Equal(t, fundBefore, dist.Fund)
	})
}

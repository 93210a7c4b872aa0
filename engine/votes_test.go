package engine

import (
	"testing"

	"github.com/bgmi-arena/tournament-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func player(id int, opts ...func(*models.Player)) models.Player {
	p := models.Player{ID: id, Category: models.CategoryNoob}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func banned(p *models.Player) { p.IsBanned = true }

func category(c models.SkillCategory) func(*models.Player) {
	return func(p *models.Player) { p.Category = c }
}

func TestNormalizeVotes(t *testing.T) {
	players := []models.Player{
		player(1), player(2), player(3), player(4, banned), player(5),
	}

	t.Run("partitions voters into disjoint pools", func(t *testing.T) {
		votes := []models.Vote{
			{PlayerID: 1, Value: models.VoteIn},
			{PlayerID: 2, Value: models.VoteSolo},
			{PlayerID: 3, Value: models.VoteOut},
		}

		pools, err := NormalizeVotes(votes, players)
		require.NoError(t, err)
		assert.Equal(t, []int{1}, pools.InPool)
		assert.Equal(t, []int{2}, pools.SoloPool)
		assert.Equal(t, []int{3}, pools.OutPool)
	})

	t.Run("non-voters are excluded, not defaulted to out", func(t *testing.T) {
		votes := []models.Vote{{PlayerID: 1, Value: models.VoteIn}}

		pools, err := NormalizeVotes(votes, players)
		require.NoError(t, err)
		assert.Len(t, pools.InPool, 1)
		assert.Empty(t, pools.OutPool)
	})

	t.Run("banned players are dropped regardless of vote", func(t *testing.T) {
		votes := []models.Vote{
			{PlayerID: 4, Value: models.VoteIn},
			{PlayerID: 5, Value: models.VoteIn},
		}

		pools, err := NormalizeVotes(votes, players)
		require.NoError(t, err)
		assert.Equal(t, []int{5}, pools.InPool)
		assert.Empty(t, pools.SoloPool)
		assert.Empty(t, pools.OutPool)
	})

	t.Run("duplicate player vote is a validation error", func(t *testing.T) {
		votes := []models.Vote{
			{PlayerID: 1, Value: models.VoteIn},
			{PlayerID: 1, Value: models.VoteOut},
		}

		_, err := NormalizeVotes(votes, players)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("vote for unknown player fails fast", func(t *testing.T) {
		votes := []models.Vote{{PlayerID: 99, Value: models.VoteIn}}

		_, err := NormalizeVotes(votes, players)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("unknown vote value is rejected", func(t *testing.T) {
		votes := []models.Vote{{PlayerID: 1, Value: "maybe"}}

		_, err := NormalizeVotes(votes, players)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("empty input yields empty pools", func(t *testing.T) {
		pools, err := NormalizeVotes(nil, players)
		require.NoError(t, err)
		assert.Empty(t, pools.InPool)
		assert.Empty(t, pools.SoloPool)
		assert.Empty(t, pools.OutPool)
	})
}

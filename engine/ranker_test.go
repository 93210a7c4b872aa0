package engine

import (
	"testing"

	"github.com/bgmi-arena/tournament-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(teamID, points, dinners, placement, kills, lastPos int) models.RankingEntry {
	return models.RankingEntry{
		TeamID:          teamID,
		TotalPoints:     points,
		ChickenDinners:  dinners,
		PlacementPoints: placement,
		TotalKills:      kills,
		LastPosition:    lastPos,
	}
}

func rankedIDs(entries []models.RankingEntry) []int {
	ids := make([]int, len(entries))
	for i, e := range entries {
		ids[i] = e.TeamID
	}
	return ids
}

func TestRankTeams(t *testing.T) {
	t.Run("total points decide first", func(t *testing.T) {
		ranked := RankTeams([]models.RankingEntry{
			entry(1, 20, 0, 0, 0, 1),
			entry(2, 35, 0, 0, 0, 5),
		})
		assert.Equal(t, []int{2, 1}, rankedIDs(ranked))
	})

	t.Run("tie-break order is dinners, placement, kills, last position", func(t *testing.T) {
		ranked := RankTeams([]models.RankingEntry{
			entry(1, 30, 1, 15, 14, 3), // loses to 2 on dinners
			entry(2, 30, 2, 10, 10, 4),
			entry(3, 30, 2, 12, 8, 5), // beats 2 on placement points
			entry(4, 30, 2, 12, 9, 2), // beats 3 on kills
			entry(5, 30, 2, 12, 9, 1), // beats 4 on last-match position
		})
		assert.Equal(t, []int{5, 4, 3, 2, 1}, rankedIDs(ranked))
	})

	t.Run("full ties keep input order", func(t *testing.T) {
		ranked := RankTeams([]models.RankingEntry{
			entry(7, 30, 2, 12, 9, 2),
			entry(8, 30, 2, 12, 9, 2),
			entry(9, 30, 2, 12, 9, 2),
		})
		assert.Equal(t, []int{7, 8, 9}, rankedIDs(ranked))
	})

	t.Run("ranking twice yields identical order", func(t *testing.T) {
		input := []models.RankingEntry{
			entry(1, 30, 2, 12, 9, 2),
			entry(2, 30, 2, 12, 9, 2),
			entry(3, 41, 3, 20, 11, 1),
		}
		once := RankTeams(input)
		twice := RankTeams(once)
		assert.Equal(t, rankedIDs(once), rankedIDs(twice))
	})

	t.Run("ranks are assigned one-based without mutating input", func(t *testing.T) {
		input := []models.RankingEntry{
			entry(1, 10, 0, 5, 5, 4),
			entry(2, 25, 1, 16, 9, 1),
		}
		ranked := RankTeams(input)
		require.Len(t, ranked, 2)
		assert.Equal(t, 1, ranked[0].Rank)
		assert.Equal(t, 2, ranked[1].Rank)
		assert.Zero(t, input[0].Rank)
	})
}

func TestComputePoints(t *testing.T) {
	tests := []struct {
		name     string
		position int
		kills    int
		want     int
	}{
		{"chicken dinner with kills", 1, 5, 15},
		{"second place", 2, 0, 6},
		{"seventh and eighth share a point", 7, 2, 3},
		{"eighth", 8, 0, 1},
		{"ninth scores kills only", 9, 3, 3},
		{"sixteenth", 16, 4, 4},
		{"position outside the table", 17, 0, 0},
		{"zero position is invalid data, scores nothing", 0, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputePoints(tt.position, tt.kills))
		})
	}
}

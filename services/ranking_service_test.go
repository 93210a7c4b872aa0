package services

import (
	"context"
	"testing"

	"github.com/bgmi-arena/tournament-system/models"
	"github.com/bgmi-arena/tournament-system/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatsRepo struct {
	aggregates []models.RankingEntry
	stats      []models.TeamStats
}

func (f *fakeStatsRepo) Create(ctx context.Context, exec repositories.SQLExecutor, stats *models.TeamStats) error {
	return nil
}

func (f *fakeStatsRepo) ListByTeam(ctx context.Context, teamID int) ([]models.TeamStats, error) {
	return nil, nil
}

func (f *fakeStatsRepo) Aggregates(ctx context.Context, tournamentID int) ([]models.RankingEntry, []models.TeamStats, error) {
	return f.aggregates, f.stats, nil
}

func TestStandingsComputesPointsAndRanks(t *testing.T) {
	// Team 1 wins match 1 with 5 kills and places 3rd in match 2 with 2.
	// Team 2 places 2nd twice with 5 kills each time. Identical totals
	// (22), so dinners decide.
	repo := &fakeStatsRepo{
		aggregates: []models.RankingEntry{
			{TeamID: 2, TeamLabel: 2, TotalKills: 10, ChickenDinners: 0, LastPosition: 2},
			{TeamID: 1, TeamLabel: 1, TotalKills: 7, ChickenDinners: 1, LastPosition: 3},
		},
		stats: []models.TeamStats{
			{TeamID: 1, MatchNo: 1, Position: 1, Kills: 5},
			{TeamID: 1, MatchNo: 2, Position: 3, Kills: 2},
			{TeamID: 2, MatchNo: 1, Position: 2, Kills: 5},
			{TeamID: 2, MatchNo: 2, Position: 2, Kills: 5},
		},
	}
	svc := NewRankingService(repo)

	standings, err := svc.Standings(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, standings, 2)

	assert.Equal(t, 1, standings[0].TeamID)
	assert.Equal(t, 22, standings[0].TotalPoints)
	assert.Equal(t, 15, standings[0].PlacementPoints) // 10 + 5
	assert.Equal(t, 1, standings[0].Rank)

	assert.Equal(t, 2, standings[1].TeamID)
	assert.Equal(t, 22, standings[1].TotalPoints)
	assert.Equal(t, 12, standings[1].PlacementPoints) // 6 + 6
	assert.Equal(t, 2, standings[1].Rank)
}

func TestStandingsEmptyTournament(t *testing.T) {
	svc := NewRankingService(&fakeStatsRepo{})

	standings, err := svc.Standings(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, standings)
}

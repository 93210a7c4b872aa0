package services

import (
	"context"
	"fmt"

	"github.com/bgmi-arena/tournament-system/engine"
	"github.com/bgmi-arena/tournament-system/models"
	"github.com/bgmi-arena/tournament-system/repositories"
)

type RankingService interface {
	// Standings computes the tournament leaderboard from the recorded
	// match results. Ties break by chicken dinners, then placement points,
	// then kills, then last match position.
	Standings(ctx context.Context, tournamentID int) ([]models.RankingEntry, error)
}

type rankingService struct {
	statsRepo repositories.StatsRepository
}

func NewRankingService(statsRepo repositories.StatsRepository) RankingService {
	return &rankingService{statsRepo: statsRepo}
}

func (s *rankingService) Standings(ctx context.Context, tournamentID int) ([]models.RankingEntry, error) {
	aggregates, stats, err := s.statsRepo.Aggregates(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate results for tournament %d: %w", tournamentID, err)
	}

	placement := make(map[int]int, len(aggregates))
	total := make(map[int]int, len(aggregates))
	for _, st := range stats {
		placement[st.TeamID] += engine.PositionPoints(st.Position)
		total[st.TeamID] += engine.ComputePoints(st.Position, st.Kills)
	}
	for i := range aggregates {
		aggregates[i].PlacementPoints = placement[aggregates[i].TeamID]
		aggregates[i].TotalPoints = total[aggregates[i].TeamID]
	}

	return engine.RankTeams(aggregates), nil
}

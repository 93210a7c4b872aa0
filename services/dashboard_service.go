package services

import (
	"context"

	"github.com/bgmi-arena/tournament-system/models"
	"golang.org/x/sync/errgroup"
)

// TournamentDashboard bundles everything the tournament page renders in one
// response.
type TournamentDashboard struct {
	Tournament  *models.Tournament       `json:"tournament"`
	Teams       []*models.Team           `json:"teams"`
	Standings   []models.RankingEntry    `json:"standings"`
	Allocations []models.PrizeAllocation `json:"allocations,omitempty"`
}

type DashboardService interface {
	TournamentDashboard(ctx context.Context, tournamentID int) (*TournamentDashboard, error)
}

type dashboardService struct {
	tournamentService TournamentService
	teamService       TeamService
	rankingService    RankingService
	prizeService      PrizeService
}

func NewDashboardService(
	tournamentService TournamentService,
	teamService TeamService,
	rankingService RankingService,
	prizeService PrizeService,
) DashboardService {
	return &dashboardService{
		tournamentService: tournamentService,
		teamService:       teamService,
		rankingService:    rankingService,
		prizeService:      prizeService,
	}
}

func (s *dashboardService) TournamentDashboard(ctx context.Context, tournamentID int) (*TournamentDashboard, error) {
	tournament, err := s.tournamentService.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	dashboard := &TournamentDashboard{Tournament: tournament}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		teams, err := s.teamService.ListTeams(gctx, tournamentID)
		if err != nil {
			return err
		}
		dashboard.Teams = teams
		return nil
	})
	g.Go(func() error {
		standings, err := s.rankingService.Standings(gctx, tournamentID)
		if err != nil {
			return err
		}
		dashboard.Standings = standings
		return nil
	})
	if tournament.IsWinnerDeclared {
		g.Go(func() error {
			allocations, err := s.prizeService.ListAllocations(gctx, tournamentID)
			if err != nil {
				return err
			}
			dashboard.Allocations = allocations
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dashboard, nil
}

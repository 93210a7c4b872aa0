package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bgmi-arena/tournament-system/live"
	"github.com/bgmi-arena/tournament-system/models"
	"github.com/bgmi-arena/tournament-system/repositories"
)

type RecordResultInput struct {
	TeamID   int `json:"team_id"`
	MatchNo  int `json:"match_no"`
	Kills    int `json:"kills"`
	Deaths   int `json:"deaths"`
	Position int `json:"position"`
}

type MatchService interface {
	// RecordResult books one team's finishing stats for one match and
	// pushes refreshed standings to the tournament room.
	RecordResult(ctx context.Context, input RecordResultInput) (*models.TeamStats, error)
	ListTeamResults(ctx context.Context, teamID int) ([]models.TeamStats, error)
}

type matchService struct {
	statsRepo      repositories.StatsRepository
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	rankingService RankingService
	hub            *live.Hub
	logger         *slog.Logger
}

func NewMatchService(
	statsRepo repositories.StatsRepository,
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	rankingService RankingService,
	hub *live.Hub,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		statsRepo:      statsRepo,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		rankingService: rankingService,
		hub:            hub,
		logger:         logger,
	}
}

func (s *matchService) RecordResult(ctx context.Context, input RecordResultInput) (*models.TeamStats, error) {
	if input.MatchNo < 1 {
		return nil, fmt.Errorf("%w: match_no must be positive", ErrValidationFailed)
	}
	if input.Position < 1 {
		return nil, fmt.Errorf("%w: position must be positive", ErrValidationFailed)
	}
	if input.Kills < 0 || input.Deaths < 0 {
		return nil, fmt.Errorf("%w: kills and deaths cannot be negative", ErrValidationFailed)
	}

	team, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, team.TournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.StatusActive {
		return nil, ErrTournamentNotActive
	}
	if tournament.IsWinnerDeclared {
		return nil, ErrWinnersDeclared
	}

	stats := &models.TeamStats{
		TeamID:   input.TeamID,
		MatchNo:  input.MatchNo,
		Kills:    input.Kills,
		Deaths:   input.Deaths,
		Position: input.Position,
	}
	if err := s.statsRepo.Create(ctx, nil, stats); err != nil {
		switch {
		case errors.Is(err, repositories.ErrStatsPositionConflict):
			return nil, ErrPositionTaken
		case errors.Is(err, repositories.ErrStatsTeamInvalid):
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to record match result: %w", err)
	}

	s.logger.Info("match result recorded",
		slog.Int("tournament_id", team.TournamentID),
		slog.Int("team_id", input.TeamID),
		slog.Int("match_no", input.MatchNo),
		slog.Int("position", input.Position),
	)

	standings, err := s.rankingService.Standings(ctx, team.TournamentID)
	if err != nil {
		s.logger.Warn("failed to refresh standings after result",
			slog.Int("tournament_id", team.TournamentID),
			slog.Any("error", err),
		)
	} else {
		s.hub.BroadcastToRoom(live.RoomID(team.TournamentID), live.EventStandingsUpdated, standings)
	}

	return stats, nil
}

func (s *matchService) ListTeamResults(ctx context.Context, teamID int) ([]models.TeamStats, error) {
	stats, err := s.statsRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results for team %d: %w", teamID, err)
	}
	return stats, nil
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bgmi-arena/tournament-system/engine"
	"github.com/bgmi-arena/tournament-system/live"
	"github.com/bgmi-arena/tournament-system/models"
	"github.com/bgmi-arena/tournament-system/repositories"
)

type TeamService interface {
	// PreviewTeams balances the current vote pools into a proposed roster
	// without writing anything. The admin reviews this before committing.
	PreviewTeams(ctx context.Context, tournamentID int) ([]engine.TeamComposition, error)
	// CommitTeams persists a previously previewed composition. The first
	// commit wins; repeats are rejected until an admin resets the flag.
	CommitTeams(ctx context.Context, tournamentID int, composition []engine.TeamComposition) ([]*models.Team, error)
	ListTeams(ctx context.Context, tournamentID int) ([]*models.Team, error)
	GetTeam(ctx context.Context, teamID int) (*models.Team, error)
}

type teamService struct {
	db             *sql.DB
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	pollRepo       repositories.PollRepository
	playerRepo     repositories.PlayerRepository
	pollService    PollService
	hub            *live.Hub
	logger         *slog.Logger
}

func NewTeamService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	pollRepo repositories.PollRepository,
	playerRepo repositories.PlayerRepository,
	pollService PollService,
	hub *live.Hub,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		db:             db,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		pollRepo:       pollRepo,
		playerRepo:     playerRepo,
		pollService:    pollService,
		hub:            hub,
		logger:         logger,
	}
}

func (s *teamService) PreviewTeams(ctx context.Context, tournamentID int) ([]engine.TeamComposition, error) {
	tournament, pools, err := s.loadPools(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	inPlayers, err := s.playerRepo.ListByIDs(ctx, pools.InPool)
	if err != nil {
		return nil, err
	}
	soloPlayers, err := s.playerRepo.ListByIDs(ctx, pools.SoloPool)
	if err != nil {
		return nil, err
	}

	cfg := engine.DefaultBalancerConfig(tournament.TeamMode.MembersPerTeam(), tournament.BalanceMode)
	composition, err := engine.PreviewTeams(inPlayers, soloPlayers, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	return composition, nil
}

func (s *teamService) CommitTeams(ctx context.Context, tournamentID int, composition []engine.TeamComposition) ([]*models.Team, error) {
	if len(composition) == 0 {
		return nil, ErrEmptyComposition
	}

	_, pools, err := s.loadPools(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if err := validateComposition(composition, pools); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the tournament row so concurrent commits serialize on the
	// teams_generated check instead of racing past it.
	tournament, err := s.tournamentRepo.GetByIDForUpdate(ctx, tx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.TeamsGenerated {
		return nil, ErrTeamsAlreadyCreated
	}

	teams := make([]*models.Team, 0, len(composition))
	for _, c := range composition {
		team := &models.Team{
			TournamentID: tournamentID,
			Label:        c.Label,
		}
		for _, playerID := range c.Anchors {
			team.Members = append(team.Members, models.TeamMember{PlayerID: playerID})
		}
		for _, playerID := range c.Solos {
			team.Members = append(team.Members, models.TeamMember{PlayerID: playerID, IsSolo: true})
		}
		teams = append(teams, team)
	}

	if err := s.teamRepo.ReplaceForTournament(ctx, tx, tournamentID, teams); err != nil {
		return nil, fmt.Errorf("failed to persist teams for tournament %d: %w", tournamentID, err)
	}
	if err := s.tournamentRepo.SetTeamsGenerated(ctx, tx, tournamentID, true); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit team generation: %w", err)
	}

	s.logger.Info("teams committed",
		slog.Int("tournament_id", tournamentID),
		slog.Int("team_count", len(teams)),
	)
	s.hub.BroadcastToRoom(live.RoomID(tournamentID), live.EventTeamsCreated, teams)
	return teams, nil
}

func (s *teamService) ListTeams(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for tournament %d: %w", tournamentID, err)
	}
	return teams, nil
}

func (s *teamService) GetTeam(ctx context.Context, teamID int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (s *teamService) loadPools(ctx context.Context, tournamentID int) (*models.Tournament, engine.VotePools, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, engine.VotePools{}, ErrTournamentNotFound
		}
		return nil, engine.VotePools{}, err
	}

	poll, err := s.pollRepo.GetOpenByTournament(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrPollNotFound) {
			return nil, engine.VotePools{}, ErrPollNotFound
		}
		return nil, engine.VotePools{}, err
	}

	pools, err := s.pollService.Pools(ctx, poll.ID)
	if err != nil {
		return nil, engine.VotePools{}, err
	}
	return tournament, pools, nil
}

// validateComposition rejects compositions that reference players outside the
// tournament's vote pools, or that place the same player twice. A stale
// preview taken before a re-vote fails here instead of writing a bad roster.
func validateComposition(composition []engine.TeamComposition, pools engine.VotePools) error {
	inSet := make(map[int]struct{}, len(pools.InPool))
	for _, id := range pools.InPool {
		inSet[id] = struct{}{}
	}
	soloSet := make(map[int]struct{}, len(pools.SoloPool))
	for _, id := range pools.SoloPool {
		soloSet[id] = struct{}{}
	}

	seen := make(map[int]struct{})
	for _, team := range composition {
		for _, id := range team.Anchors {
			if _, ok := inSet[id]; !ok {
				return fmt.Errorf("%w: player %d is not in the IN pool", ErrCompositionConflict, id)
			}
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%w: player %d appears twice", ErrCompositionConflict, id)
			}
			seen[id] = struct{}{}
		}
		for _, id := range team.Solos {
			if _, ok := soloSet[id]; !ok {
				return fmt.Errorf("%w: player %d is not in the SOLO pool", ErrCompositionConflict, id)
			}
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%w: player %d appears twice", ErrCompositionConflict, id)
			}
			seen[id] = struct{}{}
		}
	}
	return nil
}

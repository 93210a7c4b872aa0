package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bgmi-arena/tournament-system/models"
	"github.com/bgmi-arena/tournament-system/repositories"
)

type CreateTournamentInput struct {
	SeasonID    int                `json:"season_id"`
	Name        string             `json:"name"`
	TeamMode    models.TeamMode    `json:"team_mode"`
	BalanceMode models.BalanceMode `json:"balance_mode"`
	EntryFee    int64              `json:"entry_fee"`
	StartDate   time.Time          `json:"start_date"`
	EndDate     time.Time          `json:"end_date"`
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, status *models.TournamentStatus) ([]models.Tournament, error)
	UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error
	// SyncStatuses moves tournaments along the soon -> registration ->
	// active path based on their dates. Completion only happens through
	// winner declaration, never on a timer.
	SyncStatuses(ctx context.Context) (int, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	logger         *slog.Logger
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository, logger *slog.Logger) TournamentService {
	return &tournamentService{tournamentRepo: tournamentRepo, logger: logger}
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	if input.TeamMode.MembersPerTeam() == 0 {
		return nil, fmt.Errorf("%w: unknown team mode %q", ErrValidationFailed, input.TeamMode)
	}
	switch input.BalanceMode {
	case models.BalanceCategory, models.BalanceWeighted:
	default:
		return nil, fmt.Errorf("%w: unknown balance mode %q", ErrValidationFailed, input.BalanceMode)
	}
	if input.EntryFee < 0 {
		return nil, fmt.Errorf("%w: entry fee cannot be negative", ErrValidationFailed)
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", ErrValidationFailed)
	}

	tournament := &models.Tournament{
		SeasonID:    input.SeasonID,
		Name:        input.Name,
		Status:      models.StatusSoon,
		TeamMode:    input.TeamMode,
		BalanceMode: input.BalanceMode,
		EntryFee:    input.EntryFee,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, fmt.Errorf("%w: tournament name already exists", ErrValidationFailed)
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, status *models.TournamentStatus) ([]models.Tournament, error) {
	return s.tournamentRepo.List(ctx, status)
}

func (s *tournamentService) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	switch status {
	case models.StatusSoon, models.StatusRegistration, models.StatusActive, models.StatusCanceled:
	case models.StatusCompleted:
		// Completion is owned by winner declaration.
		return fmt.Errorf("%w: completed is set by declaring winners", ErrValidationFailed)
	default:
		return fmt.Errorf("%w: unknown status %q", ErrValidationFailed, status)
	}
	if err := s.tournamentRepo.UpdateStatus(ctx, nil, id, status); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	return nil
}

func (s *tournamentService) SyncStatuses(ctx context.Context) (int, error) {
	now := time.Now()
	moved := 0

	advance := func(from, to models.TournamentStatus, due func(*models.Tournament) bool) error {
		list, err := s.tournamentRepo.List(ctx, &from)
		if err != nil {
			return err
		}
		for i := range list {
			t := &list[i]
			if !due(t) {
				continue
			}
			if err := s.tournamentRepo.UpdateStatus(ctx, nil, t.ID, to); err != nil {
				return err
			}
			s.logger.Info("tournament status advanced",
				slog.Int("tournament_id", t.ID),
				slog.String("from", string(from)),
				slog.String("to", string(to)),
			)
			moved++
		}
		return nil
	}

	registrationLead := 24 * time.Hour
	if err := advance(models.StatusSoon, models.StatusRegistration, func(t *models.Tournament) bool {
		return now.After(t.StartDate.Add(-registrationLead))
	}); err != nil {
		return moved, err
	}
	if err := advance(models.StatusRegistration, models.StatusActive, func(t *models.Tournament) bool {
		return now.After(t.StartDate)
	}); err != nil {
		return moved, err
	}

	return moved, nil
}

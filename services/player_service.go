package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bgmi-arena/tournament-system/engine"
	"github.com/bgmi-arena/tournament-system/models"
	"github.com/bgmi-arena/tournament-system/repositories"
	"github.com/bgmi-arena/tournament-system/storage"
	"github.com/google/uuid"
)

type CreatePlayerInput struct {
	UserID     int    `json:"user_id"`
	IGN        string `json:"ign"`
	IsUCExempt bool   `json:"is_uc_exempt"`
}

type PlayerService interface {
	Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetByID(ctx context.Context, id int) (*models.Player, error)
	GetByUserID(ctx context.Context, userID int) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	// AddStats increments a player's lifetime totals after a round. The
	// derived skill category catches up on the next scheduler pass.
	AddStats(ctx context.Context, id int, kills, deaths, wins, matchesPlayed int) error
	SetBanned(ctx context.Context, id int, banned bool) error
	SetUCExempt(ctx context.Context, id int, exempt bool) error
	UploadAvatar(ctx context.Context, id int, contentType string, file io.Reader) (*models.Player, error)
	// RecalculateCategories rederives every player's skill category from
	// lifetime K/D. The scheduler in cmd runs this periodically; the
	// category is a derived signal, never hand-maintained.
	RecalculateCategories(ctx context.Context) (int, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	thresholds engine.CategoryThresholds
	logger     *slog.Logger
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
	thresholds engine.CategoryThresholds,
	logger *slog.Logger,
) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		uploader:   uploader,
		thresholds: thresholds,
		logger:     logger,
	}
}

func (s *playerService) Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	if input.IGN == "" {
		return nil, fmt.Errorf("%w: ign is required", ErrValidationFailed)
	}

	player := &models.Player{
		UserID:     input.UserID,
		IGN:        input.IGN,
		Category:   models.CategoryBot, // no stats yet
		IsUCExempt: input.IsUCExempt,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerIGNConflict) {
			return nil, ErrIGNConflict
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	s.populateAvatarURL(player)
	return player, nil
}

func (s *playerService) GetByUserID(ctx context.Context, userID int) (*models.Player, error) {
	player, err := s.playerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	s.populateAvatarURL(player)
	return player, nil
}

func (s *playerService) AddStats(ctx context.Context, id int, kills, deaths, wins, matchesPlayed int) error {
	if kills < 0 || deaths < 0 || wins < 0 || matchesPlayed < 0 {
		return fmt.Errorf("%w: stat increments cannot be negative", ErrValidationFailed)
	}
	if err := s.playerRepo.UpdateStats(ctx, nil, id, kills, deaths, wins, matchesPlayed); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}
	return nil
}

func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	for i := range players {
		s.populateAvatarURL(&players[i])
	}
	return players, nil
}

func (s *playerService) SetBanned(ctx context.Context, id int, banned bool) error {
	if err := s.playerRepo.SetBanned(ctx, id, banned); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}
	return nil
}

func (s *playerService) SetUCExempt(ctx context.Context, id int, exempt bool) error {
	if err := s.playerRepo.SetUCExempt(ctx, id, exempt); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}
	return nil
}

func (s *playerService) UploadAvatar(ctx context.Context, id int, contentType string, file io.Reader) (*models.Player, error) {
	player, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%d/%s", id, uuid.NewString())
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar for player %d: %w", id, err)
	}

	oldKey := player.AvatarKey
	if err := s.playerRepo.UpdateAvatarKey(ctx, id, &result.Key); err != nil {
		// Best effort: don't leave the freshly uploaded object orphaned.
		if delErr := s.uploader.Delete(ctx, result.Key); delErr != nil {
			s.logger.Warn("failed to clean up orphaned avatar", slog.String("key", result.Key), slog.Any("error", delErr))
		}
		return nil, fmt.Errorf("failed to save avatar key for player %d: %w", id, err)
	}

	if oldKey != nil && *oldKey != "" {
		if delErr := s.uploader.Delete(ctx, *oldKey); delErr != nil {
			s.logger.Warn("failed to delete previous avatar", slog.String("key", *oldKey), slog.Any("error", delErr))
		}
	}

	player.AvatarKey = &result.Key
	s.populateAvatarURL(player)
	return player, nil
}

func (s *playerService) RecalculateCategories(ctx context.Context) (int, error) {
	players, err := s.playerRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load players for category recalculation: %w", err)
	}

	updated := 0
	for i := range players {
		p := &players[i]
		derived := engine.DeriveCategory(p.KD(), p.Kills, s.thresholds)
		if derived == p.Category {
			continue
		}
		if err := s.playerRepo.UpdateCategory(ctx, nil, p.ID, derived); err != nil {
			return updated, fmt.Errorf("failed to update category for player %d: %w", p.ID, err)
		}
		s.logger.Info("player category updated",
			slog.Int("player_id", p.ID),
			slog.String("from", string(p.Category)),
			slog.String("to", string(derived)),
		)
		updated++
	}
	return updated, nil
}

func (s *playerService) populateAvatarURL(p *models.Player) {
	if p.AvatarKey != nil && *p.AvatarKey != "" && s.uploader != nil {
		url := s.uploader.GetPublicURL(*p.AvatarKey)
		p.AvatarURL = &url
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bgmi-arena/tournament-system/engine"
	"github.com/bgmi-arena/tournament-system/models"
	"github.com/bgmi-arena/tournament-system/repositories"
)

type PollService interface {
	OpenPoll(ctx context.Context, tournamentID int, question string) (*models.Poll, error)
	ClosePoll(ctx context.Context, pollID int) error
	CastVote(ctx context.Context, pollID, playerID int, value models.VoteValue) (*models.Vote, error)
	GetPoll(ctx context.Context, pollID int) (*models.Poll, error)
	// Pools partitions the poll's votes into the in, solo and out pools
	// used by team generation. Banned players are dropped here.
	Pools(ctx context.Context, pollID int) (engine.VotePools, error)
}

type pollService struct {
	pollRepo       repositories.PollRepository
	playerRepo     repositories.PlayerRepository
	tournamentRepo repositories.TournamentRepository
	logger         *slog.Logger
}

func NewPollService(
	pollRepo repositories.PollRepository,
	playerRepo repositories.PlayerRepository,
	tournamentRepo repositories.TournamentRepository,
	logger *slog.Logger,
) PollService {
	return &pollService{
		pollRepo:       pollRepo,
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
		logger:         logger,
	}
}

func (s *pollService) OpenPoll(ctx context.Context, tournamentID int, question string) (*models.Poll, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.Status != models.StatusRegistration && tournament.Status != models.StatusActive {
		return nil, ErrTournamentNotActive
	}

	if existing, err := s.pollRepo.GetOpenByTournament(ctx, tournamentID); err == nil && existing != nil {
		return nil, ErrPollAlreadyOpen
	} else if err != nil && !errors.Is(err, repositories.ErrPollNotFound) {
		return nil, err
	}

	if question == "" {
		question = fmt.Sprintf("Playing %s tonight?", tournament.Name)
	}
	poll := &models.Poll{
		TournamentID: tournamentID,
		Question:     question,
		Status:       models.PollOpen,
	}
	if err := s.pollRepo.Create(ctx, poll); err != nil {
		if errors.Is(err, repositories.ErrPollTournamentInvalid) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	s.logger.Info("poll opened",
		slog.Int("poll_id", poll.ID),
		slog.Int("tournament_id", tournamentID),
	)
	return poll, nil
}

func (s *pollService) ClosePoll(ctx context.Context, pollID int) error {
	if err := s.pollRepo.Close(ctx, nil, pollID); err != nil {
		if errors.Is(err, repositories.ErrPollNotFound) {
			return ErrPollNotOpen
		}
		return err
	}
	s.logger.Info("poll closed", slog.Int("poll_id", pollID))
	return nil
}

func (s *pollService) CastVote(ctx context.Context, pollID, playerID int, value models.VoteValue) (*models.Vote, error) {
	switch value {
	case models.VoteIn, models.VoteOut, models.VoteSolo:
	default:
		return nil, fmt.Errorf("%w: unknown vote value %q", ErrValidationFailed, value)
	}

	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		if errors.Is(err, repositories.ErrPollNotFound) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}
	if poll.Status != models.PollOpen {
		return nil, ErrPollNotOpen
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if player.IsBanned {
		return nil, ErrPlayerBanned
	}

	vote := &models.Vote{
		PollID:   pollID,
		PlayerID: playerID,
		Value:    value,
	}
	if err := s.pollRepo.UpsertVote(ctx, vote); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPollNotFound):
			return nil, ErrPollNotFound
		case errors.Is(err, repositories.ErrVotePlayerInvalid):
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return vote, nil
}

func (s *pollService) GetPoll(ctx context.Context, pollID int) (*models.Poll, error) {
	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		if errors.Is(err, repositories.ErrPollNotFound) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}
	votes, err := s.pollRepo.ListVotes(ctx, pollID)
	if err != nil {
		return nil, err
	}
	poll.Votes = votes
	return poll, nil
}

func (s *pollService) Pools(ctx context.Context, pollID int) (engine.VotePools, error) {
	votes, err := s.pollRepo.ListVotes(ctx, pollID)
	if err != nil {
		return engine.VotePools{}, err
	}
	playerIDs := make([]int, 0, len(votes))
	for _, v := range votes {
		playerIDs = append(playerIDs, v.PlayerID)
	}
	players, err := s.playerRepo.ListByIDs(ctx, playerIDs)
	if err != nil {
		return engine.VotePools{}, err
	}
	pools, err := engine.NormalizeVotes(votes, players)
	if err != nil {
		return engine.VotePools{}, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	return pools, nil
}

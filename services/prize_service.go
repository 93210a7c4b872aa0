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
	"github.com/google/uuid"
)

// DeclareWinnersResult is the full outcome of a winner declaration, returned
// to the admin and broadcast to the tournament room.
type DeclareWinnersResult struct {
	TournamentID int                      `json:"tournament_id"`
	Standings    []models.RankingEntry    `json:"standings"`
	Distribution engine.Distribution      `json:"distribution"`
	Allocations  []models.PrizeAllocation `json:"allocations"`
	SoloBonuses  []engine.PlayerBonus     `json:"solo_bonuses"`
}

type PrizeService interface {
	// DeclareWinners finalizes a tournament: it freezes the standings,
	// splits the prize pool, books every payout as a transaction, pays the
	// solo-support bonus and flips the one-way winner flag. Everything
	// happens in a single transaction; a repeat call fails on the flag.
	DeclareWinners(ctx context.Context, tournamentID int) (*DeclareWinnersResult, error)
	ListAllocations(ctx context.Context, tournamentID int) ([]models.PrizeAllocation, error)
}

type prizeService struct {
	db             *sql.DB
	prizeRepo      repositories.PrizeRepository
	teamRepo       repositories.TeamRepository
	playerRepo     repositories.PlayerRepository
	tournamentRepo repositories.TournamentRepository
	rankingService RankingService
	tiers          []engine.PrizeTier
	hub            *live.Hub
	logger         *slog.Logger
}

func NewPrizeService(
	db *sql.DB,
	prizeRepo repositories.PrizeRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	tournamentRepo repositories.TournamentRepository,
	rankingService RankingService,
	tiers []engine.PrizeTier,
	hub *live.Hub,
	logger *slog.Logger,
) PrizeService {
	if len(tiers) == 0 {
		tiers = engine.DefaultPrizeTiers
	}
	return &prizeService{
		db:             db,
		prizeRepo:      prizeRepo,
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
		rankingService: rankingService,
		tiers:          tiers,
		hub:            hub,
		logger:         logger,
	}
}

func (s *prizeService) DeclareWinners(ctx context.Context, tournamentID int) (*DeclareWinnersResult, error) {
	standings, err := s.rankingService.Standings(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(standings) == 0 {
		return nil, ErrNoMatchResults
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID, true)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, ErrTeamsNotGenerated
	}

	anchorsByTeam := make(map[int][]int, len(teams))
	playerIDs := make([]int, 0)
	for _, team := range teams {
		for _, m := range team.Members {
			playerIDs = append(playerIDs, m.PlayerID)
			if !m.IsSolo {
				anchorsByTeam[team.ID] = append(anchorsByTeam[team.ID], m.PlayerID)
			}
		}
	}
	players, err := s.playerRepo.ListByIDs(ctx, playerIDs)
	if err != nil {
		return nil, err
	}
	ucExemptCount := 0
	for _, p := range players {
		if p.IsUCExempt {
			ucExemptCount++
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	tournament, err := s.tournamentRepo.GetByIDForUpdate(ctx, tx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if !tournament.TeamsGenerated {
		return nil, ErrTeamsNotGenerated
	}
	if err := s.tournamentRepo.MarkWinnerDeclared(ctx, tx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentAlreadyDeclared) {
			return nil, ErrWinnersDeclared
		}
		return nil, err
	}

	poolSize := tournament.EntryFee * int64(len(playerIDs))
	dist, err := engine.DistributePrizePool(poolSize, tournament.EntryFee, ucExemptCount, s.tiers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if unclaimed := foldUnclaimedPositions(&dist, len(standings)); unclaimed > 0 {
		s.logger.Warn("fewer ranked teams than paid positions, surplus moved to fund",
			slog.Int("tournament_id", tournamentID),
			slog.Int64("unclaimed", unclaimed),
		)
	}

	result := &DeclareWinnersResult{
		TournamentID: tournamentID,
		Standings:    standings,
		Distribution: dist,
	}

	if err := s.bookCut(ctx, tx, tournamentID, models.TxOrganizerFee, dist.Org, "organizer cut"); err != nil {
		return nil, err
	}
	if err := s.bookCut(ctx, tx, tournamentID, models.TxFundReserve, dist.Fund, "fund reserve"); err != nil {
		return nil, err
	}

	for _, payout := range dist.Positions {
		entry := standings[payout.Position-1]
		alloc := &models.PrizeAllocation{
			TournamentID: tournamentID,
			Position:     payout.Position,
			TeamID:       entry.TeamID,
			Amount:       payout.Amount,
		}
		if err := s.prizeRepo.CreateAllocation(ctx, tx, alloc); err != nil {
			return nil, fmt.Errorf("failed to record allocation for position %d: %w", payout.Position, err)
		}
		result.Allocations = append(result.Allocations, *alloc)

		if err := s.payTeam(ctx, tx, tournamentID, payout, anchorsByTeam[entry.TeamID]); err != nil {
			return nil, err
		}
	}

	bonuses, err := s.paySoloBonuses(ctx, tx, tournament, standings, len(dist.Positions))
	if err != nil {
		return nil, err
	}
	result.SoloBonuses = bonuses

	if err := s.tournamentRepo.UpdateStatus(ctx, tx, tournamentID, models.StatusCompleted); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit winner declaration: %w", err)
	}

	s.logger.Info("winners declared",
		slog.Int("tournament_id", tournamentID),
		slog.Int64("pool", poolSize),
		slog.Int64("org", dist.Org),
		slog.Int64("fund", dist.Fund),
		slog.Int("paid_positions", len(result.Allocations)),
		slog.Int("solo_bonuses", len(bonuses)),
	)
	s.hub.BroadcastToRoom(live.RoomID(tournamentID), live.EventWinnersDeclared, result)

	return result, nil
}

func (s *prizeService) ListAllocations(ctx context.Context, tournamentID int) ([]models.PrizeAllocation, error) {
	return s.prizeRepo.ListAllocations(ctx, tournamentID)
}

// foldUnclaimedPositions trims payouts for positions no ranked team can
// claim and moves their amounts into the fund reserve, so the booked total
// still equals the pool.
func foldUnclaimedPositions(dist *engine.Distribution, rankedTeams int) int64 {
	var unclaimed int64
	payable := dist.Positions[:0]
	for _, p := range dist.Positions {
		if p.Position > rankedTeams {
			unclaimed += p.Amount
			continue
		}
		payable = append(payable, p)
	}
	dist.Positions = payable
	dist.Fund += unclaimed
	return unclaimed
}

func (s *prizeService) bookCut(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, kind models.TransactionKind, amount int64, note string) error {
	if amount == 0 {
		return nil
	}
	txRow := &models.Transaction{
		UID:          uuid.NewString(),
		TournamentID: tournamentID,
		Kind:         kind,
		Amount:       amount,
		Note:         &note,
	}
	if err := s.prizeRepo.CreateTransaction(ctx, exec, txRow); err != nil {
		return fmt.Errorf("failed to book %s: %w", kind, err)
	}
	return nil
}

// payTeam splits a position payout equally among the team's anchor members,
// remainder rupees going to the earlier-listed members. Folded-in SOLO
// players are paid from the solo-support pool instead.
func (s *prizeService) payTeam(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, payout engine.PositionPayout, anchorIDs []int) error {
	if len(anchorIDs) == 0 || payout.Amount == 0 {
		return nil
	}
	share := payout.Amount / int64(len(anchorIDs))
	remainder := payout.Amount % int64(len(anchorIDs))

	note := fmt.Sprintf("position %d payout", payout.Position)
	for i, playerID := range anchorIDs {
		amount := share
		if int64(i) < remainder {
			amount++
		}
		if amount == 0 {
			continue
		}
		pid := playerID
		txRow := &models.Transaction{
			UID:          uuid.NewString(),
			TournamentID: tournamentID,
			PlayerID:     &pid,
			Kind:         models.TxPositionPayout,
			Amount:       amount,
			Note:         &note,
		}
		if err := s.prizeRepo.CreateTransaction(ctx, exec, txRow); err != nil {
			return fmt.Errorf("failed to book payout for player %d: %w", playerID, err)
		}
		if err := s.prizeRepo.CreditPlayerBalance(ctx, exec, playerID, amount); err != nil {
			return fmt.Errorf("failed to credit player %d: %w", playerID, err)
		}
	}
	return nil
}

func (s *prizeService) paySoloBonuses(
	ctx context.Context,
	exec repositories.SQLExecutor,
	tournament *models.Tournament,
	standings []models.RankingEntry,
	paidPositions int,
) ([]engine.PlayerBonus, error) {
	rankByTeam := make(map[int]int, len(standings))
	for _, entry := range standings {
		rankByTeam[entry.TeamID] = entry.Rank
	}

	soloMembers, err := s.teamRepo.ListSoloMembers(ctx, tournament.ID)
	if err != nil {
		return nil, err
	}
	candidates := make([]engine.SoloBonusCandidate, 0, len(soloMembers))
	for _, m := range soloMembers {
		candidates = append(candidates, engine.SoloBonusCandidate{
			PlayerID:     m.PlayerID,
			TeamID:       m.TeamID,
			TeamPosition: rankByTeam[m.TeamID],
		})
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	pool, err := s.prizeRepo.GetSoloPool(ctx, tournament.SeasonID)
	if err != nil {
		if errors.Is(err, repositories.ErrSoloPoolNotFound) {
			s.logger.Warn("no solo support pool for season, skipping bonuses",
				slog.Int("season_id", tournament.SeasonID),
			)
			return nil, nil
		}
		return nil, err
	}

	cfg := engine.SoloBonusConfig{RequirePaidPosition: true, PaidPositions: paidPositions}
	bonusResult, err := engine.AllocateSoloBonus(candidates, pool.Balance, cfg)
	if err != nil {
		var poolErr *engine.InsufficientPoolError
		if errors.As(err, &poolErr) {
			s.logger.Warn("solo support pool exhausted, bonuses skipped",
				slog.Int("season_id", tournament.SeasonID),
				slog.Int("eligible", poolErr.Eligible),
			)
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	var distributed int64
	for _, b := range bonusResult.PerPlayer {
		distributed += b.Amount
	}
	if distributed == 0 {
		return nil, nil
	}

	if err := s.prizeRepo.DebitSoloPool(ctx, exec, tournament.SeasonID, distributed); err != nil {
		return nil, fmt.Errorf("failed to debit solo support pool: %w", err)
	}

	note := "solo support bonus"
	for _, b := range bonusResult.PerPlayer {
		pid := b.PlayerID
		txRow := &models.Transaction{
			UID:          uuid.NewString(),
			TournamentID: tournament.ID,
			PlayerID:     &pid,
			Kind:         models.TxSoloBonus,
			Amount:       b.Amount,
			Note:         &note,
		}
		if err := s.prizeRepo.CreateTransaction(ctx, exec, txRow); err != nil {
			return nil, fmt.Errorf("failed to book solo bonus for player %d: %w", b.PlayerID, err)
		}
		if err := s.prizeRepo.CreditPlayerBalance(ctx, exec, b.PlayerID, b.Amount); err != nil {
			return nil, fmt.Errorf("failed to credit solo bonus for player %d: %w", b.PlayerID, err)
		}
	}

	return bonusResult.PerPlayer, nil
}

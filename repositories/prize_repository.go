package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bgmi-arena/tournament-system/models"
	"github.com/lib/pq"
)

var (
	ErrSoloPoolNotFound    = errors.New("solo support pool not found for season")
	ErrSoloPoolOverdrawn   = errors.New("solo support pool balance would go negative")
	ErrTransactionConflict = errors.New("transaction uid conflict")
)

type PrizeRepository interface {
	CreateAllocation(ctx context.Context, exec SQLExecutor, alloc *models.PrizeAllocation) error
	ListAllocations(ctx context.Context, tournamentID int) ([]models.PrizeAllocation, error)
	CreateTransaction(ctx context.Context, exec SQLExecutor, tx *models.Transaction) error
	CreditPlayerBalance(ctx context.Context, exec SQLExecutor, playerID int, amount int64) error
	GetSoloPool(ctx context.Context, seasonID int) (*models.SoloSupportPool, error)
	// DebitSoloPool decrements the pool inside the caller's transaction,
	// refusing to take the balance below zero.
	DebitSoloPool(ctx context.Context, exec SQLExecutor, seasonID int, amount int64) error
}

type postgresPrizeRepository struct {
	db *sql.DB
}

func NewPostgresPrizeRepository(db *sql.DB) PrizeRepository {
	return &postgresPrizeRepository{db: db}
}

func (r *postgresPrizeRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPrizeRepository) CreateAllocation(ctx context.Context, exec SQLExecutor, a *models.PrizeAllocation) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO prize_allocations (tournament_id, position, team_id, amount, is_distributed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		a.TournamentID, a.Position, a.TeamID, a.Amount, a.IsDistributed,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create prize allocation for position %d: %w", a.Position, err)
	}
	return nil
}

func (r *postgresPrizeRepository) ListAllocations(ctx context.Context, tournamentID int) ([]models.PrizeAllocation, error) {
	query := `
		SELECT id, tournament_id, position, team_id, amount, is_distributed, created_at
		FROM prize_allocations
		WHERE tournament_id = $1
		ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	allocations := make([]models.PrizeAllocation, 0)
	for rows.Next() {
		var a models.PrizeAllocation
		if err := rows.Scan(&a.ID, &a.TournamentID, &a.Position, &a.TeamID, &a.Amount, &a.IsDistributed, &a.CreatedAt); err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

func (r *postgresPrizeRepository) CreateTransaction(ctx context.Context, exec SQLExecutor, t *models.Transaction) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO transactions (uid, tournament_id, player_id, kind, amount, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		t.UID, t.TournamentID, t.PlayerID, t.Kind, t.Amount, t.Note,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrTransactionConflict
		}
		return fmt.Errorf("failed to create %s transaction: %w", t.Kind, err)
	}
	return nil
}

func (r *postgresPrizeRepository) CreditPlayerBalance(ctx context.Context, exec SQLExecutor, playerID int, amount int64) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE player_balances SET balance = balance + $1 WHERE player_id = $2`, amount, playerID)
	if err != nil {
		return fmt.Errorf("failed to credit player %d: %w", playerID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check credited rows: %w", err)
	}
	if rows == 0 {
		// First credit for this player.
		_, err = executor.ExecContext(ctx,
			`INSERT INTO player_balances (player_id, balance) VALUES ($1, $2)`, playerID, amount)
		if err != nil {
			return fmt.Errorf("failed to open balance for player %d: %w", playerID, err)
		}
	}
	return nil
}

func (r *postgresPrizeRepository) GetSoloPool(ctx context.Context, seasonID int) (*models.SoloSupportPool, error) {
	var p models.SoloSupportPool
	err := r.db.QueryRowContext(ctx,
		`SELECT id, season_id, balance, updated_at FROM solo_support_pools WHERE season_id = $1`, seasonID,
	).Scan(&p.ID, &p.SeasonID, &p.Balance, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSoloPoolNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPrizeRepository) DebitSoloPool(ctx context.Context, exec SQLExecutor, seasonID int, amount int64) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE solo_support_pools SET balance = balance - $1, updated_at = NOW()
		 WHERE season_id = $2 AND balance >= $1`, amount, seasonID)
	if err != nil {
		return fmt.Errorf("failed to debit solo pool for season %d: %w", seasonID, err)
	}
	return checkAffectedRows(result, ErrSoloPoolOverdrawn)
}

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
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerIGNConflict = errors.New("in-game name is already in use")
	ErrPlayerUserInvalid = errors.New("player user conflict or invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	GetByUserID(ctx context.Context, userID int) (*models.Player, error)
	ListByIDs(ctx context.Context, ids []int) ([]models.Player, error)
	ListAll(ctx context.Context) ([]models.Player, error)
	UpdateStats(ctx context.Context, exec SQLExecutor, id int, kills, deaths, wins, matchesPlayed int) error
	UpdateCategory(ctx context.Context, exec SQLExecutor, id int, category models.SkillCategory) error
	SetBanned(ctx context.Context, id int, banned bool) error
	SetUCExempt(ctx context.Context, id int, exempt bool) error
	UpdateAvatarKey(ctx context.Context, id int, avatarKey *string) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const playerColumns = `id, user_id, ign, category, kills, deaths, wins, matches_played, is_uc_exempt, is_banned, created_at, avatar_key`

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (user_id, ign, category, is_uc_exempt, is_banned)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.IGN, p.Category, p.IsUCExempt, p.IsBanned,
	).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				return ErrPlayerIGNConflict
			case "23503": // foreign_key_violation
				return ErrPlayerUserInvalid
			}
		}
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

func (r *postgresPlayerRepository) scanPlayer(rowScanner interface{ Scan(...interface{}) error }) (*models.Player, error) {
	var p models.Player
	err := rowScanner.Scan(
		&p.ID, &p.UserID, &p.IGN, &p.Category, &p.Kills, &p.Deaths,
		&p.Wins, &p.MatchesPlayed, &p.IsUCExempt, &p.IsBanned, &p.CreatedAt, &p.AvatarKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) GetByUserID(ctx context.Context, userID int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE user_id = $1`
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, userID))
}

func (r *postgresPlayerRepository) ListByIDs(ctx context.Context, ids []int) ([]models.Player, error) {
	if len(ids) == 0 {
		return []models.Player{}, nil
	}
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = ANY($1) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list players by ids: %w", err)
	}
	defer rows.Close()
	return r.collectPlayers(rows)
}

func (r *postgresPlayerRepository) ListAll(ctx context.Context) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()
	return r.collectPlayers(rows)
}

func (r *postgresPlayerRepository) collectPlayers(rows *sql.Rows) ([]models.Player, error) {
	players := make([]models.Player, 0)
	for rows.Next() {
		p, err := r.scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) UpdateStats(ctx context.Context, exec SQLExecutor, id int, kills, deaths, wins, matchesPlayed int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE players
		SET kills = kills + $1, deaths = deaths + $2, wins = wins + $3, matches_played = matches_played + $4
		WHERE id = $5`
	result, err := executor.ExecContext(ctx, query, kills, deaths, wins, matchesPlayed, id)
	if err != nil {
		return fmt.Errorf("failed to update player stats: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdateCategory(ctx context.Context, exec SQLExecutor, id int, category models.SkillCategory) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE players SET category = $1 WHERE id = $2`, category, id)
	if err != nil {
		return fmt.Errorf("failed to update player category: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) SetBanned(ctx context.Context, id int, banned bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE players SET is_banned = $1 WHERE id = $2`, banned, id)
	if err != nil {
		return fmt.Errorf("failed to update player ban flag: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) SetUCExempt(ctx context.Context, id int, exempt bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE players SET is_uc_exempt = $1 WHERE id = $2`, exempt, id)
	if err != nil {
		return fmt.Errorf("failed to update player exempt flag: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdateAvatarKey(ctx context.Context, id int, avatarKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE players SET avatar_key = $1 WHERE id = $2`, avatarKey, id)
	if err != nil {
		return fmt.Errorf("failed to update player avatar key: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

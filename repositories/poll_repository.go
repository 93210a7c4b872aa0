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
	ErrPollNotFound          = errors.New("poll not found")
	ErrPollTournamentInvalid = errors.New("poll tournament conflict or invalid")
	ErrVotePlayerInvalid     = errors.New("vote player conflict or invalid")
)

type PollRepository interface {
	Create(ctx context.Context, poll *models.Poll) error
	GetByID(ctx context.Context, id int) (*models.Poll, error)
	GetOpenByTournament(ctx context.Context, tournamentID int) (*models.Poll, error)
	Close(ctx context.Context, exec SQLExecutor, id int) error
	UpsertVote(ctx context.Context, vote *models.Vote) error
	ListVotes(ctx context.Context, pollID int) ([]models.Vote, error)
}

type postgresPollRepository struct {
	db *sql.DB
}

func NewPostgresPollRepository(db *sql.DB) PollRepository {
	return &postgresPollRepository{db: db}
}

func (r *postgresPollRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPollRepository) Create(ctx context.Context, p *models.Poll) error {
	query := `
		INSERT INTO polls (tournament_id, question, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, p.TournamentID, p.Question, p.Status).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrPollTournamentInvalid
		}
		return fmt.Errorf("failed to create poll: %w", err)
	}
	return nil
}

func (r *postgresPollRepository) scanPoll(rowScanner interface{ Scan(...interface{}) error }) (*models.Poll, error) {
	var p models.Poll
	err := rowScanner.Scan(&p.ID, &p.TournamentID, &p.Question, &p.Status, &p.CreatedAt, &p.ClosedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPollRepository) GetByID(ctx context.Context, id int) (*models.Poll, error) {
	query := `SELECT id, tournament_id, question, status, created_at, closed_at FROM polls WHERE id = $1`
	return r.scanPoll(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPollRepository) GetOpenByTournament(ctx context.Context, tournamentID int) (*models.Poll, error) {
	query := `
		SELECT id, tournament_id, question, status, created_at, closed_at
		FROM polls
		WHERE tournament_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 1`
	return r.scanPoll(r.db.QueryRowContext(ctx, query, tournamentID, models.PollOpen))
}

func (r *postgresPollRepository) Close(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE polls SET status = $1, closed_at = NOW() WHERE id = $2 AND status = $3`
	result, err := executor.ExecContext(ctx, query, models.PollClosed, id, models.PollOpen)
	if err != nil {
		return fmt.Errorf("failed to close poll %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPollNotFound)
}

// UpsertVote enforces the one-vote-per-(poll, player) invariant in the
// database: re-voting overwrites in place, it never appends.
func (r *postgresPollRepository) UpsertVote(ctx context.Context, v *models.Vote) error {
	query := `
		INSERT INTO votes (poll_id, player_id, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (poll_id, player_id)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING id, updated_at`

	err := r.db.QueryRowContext(ctx, query, v.PollID, v.PlayerID, v.Value).
		Scan(&v.ID, &v.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "votes_player_id_fkey":
				return ErrVotePlayerInvalid
			case "votes_poll_id_fkey":
				return ErrPollNotFound
			}
		}
		return fmt.Errorf("failed to upsert vote: %w", err)
	}
	return nil
}

func (r *postgresPollRepository) ListVotes(ctx context.Context, pollID int) ([]models.Vote, error) {
	query := `
		SELECT id, poll_id, player_id, value, updated_at
		FROM votes
		WHERE poll_id = $1
		ORDER BY player_id`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes for poll %d: %w", pollID, err)
	}
	defer rows.Close()

	votes := make([]models.Vote, 0)
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.PollID, &v.PlayerID, &v.Value, &v.UpdatedAt); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return votes, nil
}

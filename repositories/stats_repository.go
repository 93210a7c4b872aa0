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
	ErrStatsNotFound         = errors.New("team stats not found")
	ErrStatsTeamInvalid      = errors.New("stats team conflict or invalid")
	ErrStatsPositionConflict = errors.New("finishing position already taken in this match")
)

type StatsRepository interface {
	Create(ctx context.Context, exec SQLExecutor, stats *models.TeamStats) error
	ListByTeam(ctx context.Context, teamID int) ([]models.TeamStats, error)
	// Aggregates returns one ranking entry per team of the tournament,
	// with the points fields left at zero: points depend on the position
	// table, which belongs to the engine, not to SQL.
	Aggregates(ctx context.Context, tournamentID int) ([]models.RankingEntry, []models.TeamStats, error)
}

type postgresStatsRepository struct {
	db *sql.DB
}

func NewPostgresStatsRepository(db *sql.DB) StatsRepository {
	return &postgresStatsRepository{db: db}
}

func (r *postgresStatsRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresStatsRepository) Create(ctx context.Context, exec SQLExecutor, s *models.TeamStats) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO team_stats (team_id, match_no, kills, deaths, position)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		s.TeamID, s.MatchNo, s.Kills, s.Deaths, s.Position,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation: (tournament, match_no, position)
				return ErrStatsPositionConflict
			case "23503":
				return ErrStatsTeamInvalid
			}
		}
		return fmt.Errorf("failed to record team stats: %w", err)
	}
	return nil
}

func (r *postgresStatsRepository) ListByTeam(ctx context.Context, teamID int) ([]models.TeamStats, error) {
	query := `
		SELECT id, team_id, match_no, kills, deaths, position, created_at
		FROM team_stats
		WHERE team_id = $1
		ORDER BY match_no`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stats for team %d: %w", teamID, err)
	}
	defer rows.Close()
	return collectStats(rows)
}

func (r *postgresStatsRepository) Aggregates(ctx context.Context, tournamentID int) ([]models.RankingEntry, []models.TeamStats, error) {
	query := `
		SELECT ts.id, ts.team_id, t.label, ts.match_no, ts.kills, ts.deaths, ts.position, ts.created_at
		FROM team_stats ts
		JOIN teams t ON ts.team_id = t.id
		WHERE t.tournament_id = $1
		ORDER BY ts.team_id, ts.match_no`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load stats for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	stats := make([]models.TeamStats, 0)
	labels := make(map[int]int)
	for rows.Next() {
		var s models.TeamStats
		var label int
		if err := rows.Scan(&s.ID, &s.TeamID, &label, &s.MatchNo, &s.Kills, &s.Deaths, &s.Position, &s.CreatedAt); err != nil {
			return nil, nil, err
		}
		labels[s.TeamID] = label
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	entries := make([]models.RankingEntry, 0)
	byTeam := make(map[int]int)
	for _, s := range stats {
		idx, ok := byTeam[s.TeamID]
		if !ok {
			idx = len(entries)
			byTeam[s.TeamID] = idx
			entries = append(entries, models.RankingEntry{TeamID: s.TeamID, TeamLabel: labels[s.TeamID]})
		}
		e := &entries[idx]
		e.TotalKills += s.Kills
		if s.Position == 1 {
			e.ChickenDinners++
		}
		// Rows arrive in match order, so the last row per team carries the
		// most recent finishing position.
		e.LastPosition = s.Position
	}
	return entries, stats, nil
}

func collectStats(rows *sql.Rows) ([]models.TeamStats, error) {
	stats := make([]models.TeamStats, 0)
	for rows.Next() {
		var s models.TeamStats
		if err := rows.Scan(&s.ID, &s.TeamID, &s.MatchNo, &s.Kills, &s.Deaths, &s.Position, &s.CreatedAt); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

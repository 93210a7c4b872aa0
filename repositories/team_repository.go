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
	ErrTeamNotFound      = errors.New("team not found")
	ErrTeamMemberInvalid = errors.New("team member conflict or invalid")
)

type TeamRepository interface {
	// ReplaceForTournament atomically swaps the tournament's team set for
	// the given rosters: existing teams and members go away, the new ones
	// come in, all inside the caller's transaction. Either the whole roster
	// lands or none of it does.
	ReplaceForTournament(ctx context.Context, exec SQLExecutor, tournamentID int, teams []*models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByTournament(ctx context.Context, tournamentID int, includeMembers bool) ([]*models.Team, error)
	ListSoloMembers(ctx context.Context, tournamentID int) ([]models.TeamMember, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) ReplaceForTournament(ctx context.Context, exec SQLExecutor, tournamentID int, teams []*models.Team) error {
	if exec == nil {
		return errors.New("ReplaceForTournament requires a transaction executor")
	}

	// Members cascade via FK.
	if _, err := exec.ExecContext(ctx, `DELETE FROM teams WHERE tournament_id = $1`, tournamentID); err != nil {
		return fmt.Errorf("failed to clear teams for tournament %d: %w", tournamentID, err)
	}

	for _, team := range teams {
		err := exec.QueryRowContext(ctx,
			`INSERT INTO teams (tournament_id, label) VALUES ($1, $2) RETURNING id, created_at`,
			tournamentID, team.Label,
		).Scan(&team.ID, &team.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert team %d: %w", team.Label, err)
		}

		for i := range team.Members {
			m := &team.Members[i]
			m.TeamID = team.ID
			err := exec.QueryRowContext(ctx,
				`INSERT INTO team_members (team_id, player_id, is_solo) VALUES ($1, $2, $3) RETURNING id`,
				m.TeamID, m.PlayerID, m.IsSolo,
			).Scan(&m.ID)
			if err != nil {
				if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
					return fmt.Errorf("%w: player %d", ErrTeamMemberInvalid, m.PlayerID)
				}
				return fmt.Errorf("failed to insert member %d into team %d: %w", m.PlayerID, team.Label, err)
			}
		}
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	var t models.Team
	err := r.db.QueryRowContext(ctx,
		`SELECT id, tournament_id, label, created_at FROM teams WHERE id = $1`, id,
	).Scan(&t.ID, &t.TournamentID, &t.Label, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	members, err := r.listMembers(ctx, []int{t.ID})
	if err != nil {
		return nil, err
	}
	t.Members = members[t.ID]
	return &t, nil
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentID int, includeMembers bool) ([]*models.Team, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tournament_id, label, created_at FROM teams WHERE tournament_id = $1 ORDER BY label`,
		tournamentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	ids := make([]int, 0)
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.TournamentID, &t.Label, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, &t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if includeMembers && len(ids) > 0 {
		members, err := r.listMembers(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, t := range teams {
			t.Members = members[t.ID]
		}
	}
	return teams, nil
}

func (r *postgresTeamRepository) listMembers(ctx context.Context, teamIDs []int) (map[int][]models.TeamMember, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, team_id, player_id, is_solo FROM team_members WHERE team_id = ANY($1) ORDER BY id`,
		pq.Array(teamIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	members := make(map[int][]models.TeamMember)
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.ID, &m.TeamID, &m.PlayerID, &m.IsSolo); err != nil {
			return nil, err
		}
		members[m.TeamID] = append(members[m.TeamID], m)
	}
	return members, rows.Err()
}

// ListSoloMembers returns the folded-in SOLO players across a tournament's
// teams, for solo-support bonus allocation.
func (r *postgresTeamRepository) ListSoloMembers(ctx context.Context, tournamentID int) ([]models.TeamMember, error) {
	query := `
		SELECT tm.id, tm.team_id, tm.player_id, tm.is_solo
		FROM team_members tm
		JOIN teams t ON tm.team_id = t.id
		WHERE t.tournament_id = $1 AND tm.is_solo = TRUE
		ORDER BY tm.id`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list solo members for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	members := make([]models.TeamMember, 0)
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.ID, &m.TeamID, &m.PlayerID, &m.IsSolo); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

package models

import "time"

// TournamentStatus represents tournament lifecycle states, matching the ENUM in the DB.
type TournamentStatus string

const (
	StatusSoon         TournamentStatus = "soon"
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
	StatusCanceled     TournamentStatus = "canceled"
)

// TeamMode is the roster shape played in a tournament round. The trailing
// "+1" in the display names ("Squad 4+1") refers to folded-in SOLO players,
// which do not occupy anchor slots.
type TeamMode string

const (
	ModeSolo  TeamMode = "solo1"
	ModeDuo   TeamMode = "duo2"
	ModeTrio  TeamMode = "trio3"
	ModeSquad TeamMode = "squad4"
)

// MembersPerTeam returns the anchor-slot count for the mode, or 0 for an
// unknown mode.
func (m TeamMode) MembersPerTeam() int {
	switch m {
	case ModeSolo:
		return 1
	case ModeDuo:
		return 2
	case ModeTrio:
		return 3
	case ModeSquad:
		return 4
	}
	return 0
}

// BalanceMode selects the team-balancing algorithm.
type BalanceMode string

const (
	BalanceCategory BalanceMode = "category"
	BalanceWeighted BalanceMode = "weighted"
)

// Tournament represents one tournament round.
type Tournament struct {
	ID               int              `json:"id" db:"id"`
	SeasonID         int              `json:"season_id" db:"season_id"`
	Name             string           `json:"name" db:"name"`
	Status           TournamentStatus `json:"status" db:"status"`
	TeamMode         TeamMode         `json:"team_mode" db:"team_mode"`
	BalanceMode      BalanceMode      `json:"balance_mode" db:"balance_mode"`
	EntryFee         int64            `json:"entry_fee" db:"entry_fee"`
	TeamsGenerated   bool             `json:"teams_generated" db:"teams_generated"`
	IsWinnerDeclared bool             `json:"is_winner_declared" db:"is_winner_declared"`
	StartDate        time.Time        `json:"start_date" db:"start_date"`
	EndDate          time.Time        `json:"end_date" db:"end_date"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`

	Teams []Team `json:"teams,omitempty" db:"-"`
	Poll  *Poll  `json:"poll,omitempty" db:"-"`
}

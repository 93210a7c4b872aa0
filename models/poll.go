package models

import "time"

// PollStatus represents poll lifecycle states, matching the ENUM in the DB.
type PollStatus string

const (
	PollOpen   PollStatus = "open"
	PollClosed PollStatus = "closed"
)

// VoteValue is the participation choice a player casts on a poll.
type VoteValue string

const (
	VoteIn   VoteValue = "in"   // place me in a standard team
	VoteOut  VoteValue = "out"  // skip this tournament round
	VoteSolo VoteValue = "solo" // fold me into an existing team, track bonus separately
)

// Poll represents a team sign-up poll for one tournament round.
type Poll struct {
	ID           int        `json:"id" db:"id"`
	TournamentID int        `json:"tournament_id" db:"tournament_id"`
	Question     string     `json:"question" db:"question"`
	Status       PollStatus `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	ClosedAt     *time.Time `json:"closed_at,omitempty" db:"closed_at"`

	Votes []Vote `json:"votes,omitempty" db:"-"`
}

// Vote is one player's answer on a poll. At most one row exists per
// (poll, player) pair; re-voting overwrites.
type Vote struct {
	ID        int       `json:"id" db:"id"`
	PollID    int       `json:"poll_id" db:"poll_id"`
	PlayerID  int       `json:"player_id" db:"player_id"`
	Value     VoteValue `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Player *Player `json:"player,omitempty" db:"-"`
}

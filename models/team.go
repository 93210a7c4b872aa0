package models

import "time"

// Team is a generated roster inside one tournament. Label is the stable
// numeric name shown to players ("Team 3"), unique per tournament.
type Team struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Label        int       `json:"label" db:"label"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Members []TeamMember `json:"members,omitempty" db:"-"`
	Stats   []TeamStats  `json:"stats,omitempty" db:"-"`
}

// TeamMember links a player to a team. IsSolo marks folded-in SOLO players,
// as opposed to anchor-slot members placed by the balancer.
type TeamMember struct {
	ID       int  `json:"id" db:"id"`
	TeamID   int  `json:"team_id" db:"team_id"`
	PlayerID int  `json:"player_id" db:"player_id"`
	IsSolo   bool `json:"is_solo" db:"is_solo"`

	Player *Player `json:"player,omitempty" db:"-"`
}

// TeamStats is one team's result in one match: kills, deaths and finishing
// position (1 = best, unique per match among the teams in that match).
type TeamStats struct {
	ID        int       `json:"id" db:"id"`
	TeamID    int       `json:"team_id" db:"team_id"`
	MatchNo   int       `json:"match_no" db:"match_no"`
	Kills     int       `json:"kills" db:"kills"`
	Deaths    int       `json:"deaths" db:"deaths"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

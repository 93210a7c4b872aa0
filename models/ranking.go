package models

// RankingEntry is a derived per-team standing. It is computed fresh from
// persisted TeamStats each time and never written back by the ranking code.
type RankingEntry struct {
	TeamID          int `json:"team_id"`
	TeamLabel       int `json:"team_label"`
	TotalPoints     int `json:"total_points"`
	ChickenDinners  int `json:"chicken_dinners"`
	PlacementPoints int `json:"placement_points"`
	TotalKills      int `json:"total_kills"`
	LastPosition    int `json:"last_position"`
	Rank            int `json:"rank"`

	Team *Team `json:"team,omitempty"`
}

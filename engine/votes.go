package engine

import (
	"github.com/bgmi-arena/tournament-system/models"
)

// VotePools holds the three disjoint participation buckets produced from a
// poll's votes. Every non-banned player with a vote lands in exactly one
// pool; players without a vote are absent from all three.
type VotePools struct {
	InPool   []int `json:"in_pool"`
	SoloPool []int `json:"solo_pool"`
	OutPool  []int `json:"out_pool"`
}

// NormalizeVotes partitions poll votes into IN/SOLO/OUT buckets, dropping
// banned players regardless of how they voted. The players slice supplies
// ban status; a vote referencing a player not in the slice fails fast rather
// than producing a partial pool.
//
// A duplicate player id among the votes indicates an upstream uniqueness
// violation (the vote table guarantees one row per player per poll) and is
// rejected with a ValidationError.
func NormalizeVotes(votes []models.Vote, players []models.Player) (VotePools, error) {
	pools := VotePools{
		InPool:   make([]int, 0, len(votes)),
		SoloPool: make([]int, 0),
		OutPool:  make([]int, 0),
	}

	byID := make(map[int]*models.Player, len(players))
	for i := range players {
		byID[players[i].ID] = &players[i]
	}

	seen := make(map[int]bool, len(votes))
	for _, v := range votes {
		if seen[v.PlayerID] {
			return VotePools{}, newValidationError("player_id", v.PlayerID, "duplicate vote for player")
		}
		seen[v.PlayerID] = true

		p, ok := byID[v.PlayerID]
		if !ok {
			return VotePools{}, newValidationError("player_id", v.PlayerID, "vote references unknown player")
		}
		if p.IsBanned {
			continue
		}

		switch v.Value {
		case models.VoteIn:
			pools.InPool = append(pools.InPool, v.PlayerID)
		case models.VoteSolo:
			pools.SoloPool = append(pools.SoloPool, v.PlayerID)
		case models.VoteOut:
			pools.OutPool = append(pools.OutPool, v.PlayerID)
		default:
			return VotePools{}, newValidationError("value", string(v.Value), "unknown vote value")
		}
	}

	return pools, nil
}

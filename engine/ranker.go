package engine

import (
	"sort"

	"github.com/bgmi-arena/tournament-system/models"
)

// RankTeams orders team aggregates by the official tie-break rule:
// total points, then chicken dinners, then placement-only points, then total
// kills, all descending, then most recent match position ascending
// (position 1 beats position 2). The sort is stable, so entries tying on
// every key keep their input relative order. Rank fields are filled in
// 1-based on the returned slice; the input is not modified.
func RankTeams(aggregates []models.RankingEntry) []models.RankingEntry {
	ranked := make([]models.RankingEntry, len(aggregates))
	copy(ranked, aggregates)

	sort.SliceStable(ranked, func(i, j int) bool {
		return standsAbove(&ranked[i], &ranked[j])
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// standsAbove is the strict multi-key comparator. It deliberately is not a
// blended score: equal totals fall through to the next key, never to an
// arbitrary order.
func standsAbove(a, b *models.RankingEntry) bool {
	if a.TotalPoints != b.TotalPoints {
		return a.TotalPoints > b.TotalPoints
	}
	if a.ChickenDinners != b.ChickenDinners {
		return a.ChickenDinners > b.ChickenDinners
	}
	if a.PlacementPoints != b.PlacementPoints {
		return a.PlacementPoints > b.PlacementPoints
	}
	if a.TotalKills != b.TotalKills {
		return a.TotalKills > b.TotalKills
	}
	return a.LastPosition < b.LastPosition
}

package engine

import (
	"sort"

	"github.com/bgmi-arena/tournament-system/models"
)

// BalancerConfig controls the team partition. KDWeight and WinRateWeight
// form the linear combination used in weighted mode.
type BalancerConfig struct {
	MembersPerTeam int
	Mode           models.BalanceMode
	KDWeight       float64
	WinRateWeight  float64
}

// DefaultBalancerConfig returns the config used when a tournament does not
// override the weights.
func DefaultBalancerConfig(membersPerTeam int, mode models.BalanceMode) BalancerConfig {
	return BalancerConfig{
		MembersPerTeam: membersPerTeam,
		Mode:           mode,
		KDWeight:       0.7,
		WinRateWeight:  0.3,
	}
}

// TeamComposition is a proposed team produced by PreviewTeams. It is
// transient: it carries no identifiers that would be written, only the
// numeric label and the member player ids. Anchors are balancer-placed
// slots; Solos are folded-in SOLO players tracked separately for bonus
// eligibility.
type TeamComposition struct {
	Label   int   `json:"label"`
	Anchors []int `json:"anchors"`
	Solos   []int `json:"solos"`
}

// PreviewTeams partitions the IN pool into balanced teams and folds SOLO
// players into the least-full teams. It is pure and side-effect-free:
// calling it repeatedly with the same vote snapshot yields the same
// composition. Persisting a composition is CommitTeams' job; the commit path
// never recomputes the partition, so the admin gets exactly the preview they
// approved.
//
// An empty IN pool yields zero teams, not an error. A pool that does not
// divide evenly leaves the last teams one short, which is expected.
func PreviewTeams(inPool, soloPool []models.Player, cfg BalancerConfig) ([]TeamComposition, error) {
	if cfg.MembersPerTeam < 1 || cfg.MembersPerTeam > 4 {
		return nil, newValidationError("members_per_team", cfg.MembersPerTeam, "unsupported team size, must be 1-4")
	}
	if len(inPool) == 0 {
		return []TeamComposition{}, nil
	}

	var teams []TeamComposition
	switch cfg.Mode {
	case models.BalanceCategory:
		teams = partitionByCategory(inPool, cfg.MembersPerTeam)
	case models.BalanceWeighted:
		teams = partitionByWeightedScore(inPool, cfg)
	default:
		return nil, newValidationError("mode", string(cfg.Mode), "unknown balancing mode")
	}

	foldInSolos(teams, soloPool)
	return teams, nil
}

// categoryTeamCount applies the official team-count formulas. Squad-style
// modes (3 or 4 anchors) guarantee one PRO-tier anchor per team where
// possible: max(proCount, ceil(noobCount/size)). Duo-style modes pair pros
// with noobs and spill the remainder into their own teams:
// min(proCount, ceil(noobCount/size)) + leftover pros + leftover noobs.
// Solo mode is one player per team.
func categoryTeamCount(proCount, noobCount, membersPerTeam int) int {
	switch membersPerTeam {
	case 1:
		return proCount + noobCount
	case 2:
		possible := minInt(proCount, ceilDiv(noobCount, membersPerTeam))
		remainingPros := proCount - possible
		remainingNoobs := noobCount - possible*membersPerTeam
		if remainingNoobs < 0 {
			remainingNoobs = 0
		}
		return possible + remainingPros + remainingNoobs
	default:
		count := maxInt(proCount, ceilDiv(noobCount, membersPerTeam))
		if count < 1 {
			count = 1
		}
		return count
	}
}

func partitionByCategory(inPool []models.Player, membersPerTeam int) []TeamComposition {
	proCount, noobCount := 0, 0
	for i := range inPool {
		if inPool[i].Category.IsProTier() {
			proCount++
		} else {
			noobCount++
		}
	}

	teamCount := categoryTeamCount(proCount, noobCount, membersPerTeam)
	teams := newCompositions(teamCount)

	// Bucket by category, strongest tier first, preserving input order
	// inside a bucket. Drawing bucket by bucket into the emptiest team is
	// the round-robin draw: while a bucket lasts, every team receives one
	// representative of that tier before any team receives a second player,
	// and an exhausted bucket's leftovers land in the least-full teams.
	buckets := make(map[int][]int)
	for i := range inPool {
		tier := inPool[i].Category.Tier()
		buckets[tier] = append(buckets[tier], inPool[i].ID)
	}
	for tier := models.CategoryLegend.Tier(); tier >= models.CategoryBot.Tier(); tier-- {
		for _, playerID := range buckets[tier] {
			t := leastFullTeam(teams, true)
			teams[t].Anchors = append(teams[t].Anchors, playerID)
		}
	}
	return teams
}

func partitionByWeightedScore(inPool []models.Player, cfg BalancerConfig) []TeamComposition {
	type scored struct {
		id    int
		score float64
	}
	players := make([]scored, len(inPool))
	for i := range inPool {
		players[i] = scored{
			id:    inPool[i].ID,
			score: cfg.KDWeight*inPool[i].KD() + cfg.WinRateWeight*inPool[i].WinRate(),
		}
	}
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].score > players[j].score
	})

	teamCount := ceilDiv(len(players), cfg.MembersPerTeam)
	teams := newCompositions(teamCount)

	// Snake draft: 1..N, N..1, 1..N, ... so consecutive teams alternate
	// picking order and the cumulative skill gap stays minimal.
	for i, p := range players {
		round := i / teamCount
		pos := i % teamCount
		if round%2 == 1 {
			pos = teamCount - 1 - pos
		}
		teams[pos].Anchors = append(teams[pos].Anchors, p.id)
	}
	return teams
}

// foldInSolos appends each SOLO player to the team that currently has the
// fewest members (anchors + solos), one at a time. Solo assignments stay in
// the Solos list so bonus eligibility is trackable without touching the
// anchor balance.
func foldInSolos(teams []TeamComposition, soloPool []models.Player) {
	if len(teams) == 0 {
		return
	}
	for i := range soloPool {
		t := leastFullTeam(teams, false)
		teams[t].Solos = append(teams[t].Solos, soloPool[i].ID)
	}
}

func newCompositions(n int) []TeamComposition {
	teams := make([]TeamComposition, n)
	for i := range teams {
		teams[i] = TeamComposition{
			Label:   i + 1,
			Anchors: make([]int, 0),
			Solos:   make([]int, 0),
		}
	}
	return teams
}

// leastFullTeam returns the index of the team with the fewest members,
// lowest label winning ties. anchorsOnly restricts the count to anchor
// slots.
func leastFullTeam(teams []TeamComposition, anchorsOnly bool) int {
	best, bestSize := 0, -1
	for i := range teams {
		size := len(teams[i].Anchors)
		if !anchorsOnly {
			size += len(teams[i].Solos)
		}
		if bestSize == -1 || size < bestSize {
			best, bestSize = i, size
		}
	}
	return best
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package engine

import (
	"testing"

	"github.com/bgmi-arena/tournament-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stats(kills, deaths, wins, played int) func(*models.Player) {
	return func(p *models.Player) {
		p.Kills = kills
		p.Deaths = deaths
		p.Wins = wins
		p.MatchesPlayed = played
	}
}

// makePool builds n players starting at firstID, all in the given category.
func makePool(firstID, n int, c models.SkillCategory) []models.Player {
	pool := make([]models.Player, n)
	for i := range pool {
		pool[i] = player(firstID+i, category(c))
	}
	return pool
}

func allMembers(teams []TeamComposition) map[int]int {
	seen := make(map[int]int)
	for _, tm := range teams {
		for _, id := range tm.Anchors {
			seen[id]++
		}
		for _, id := range tm.Solos {
			seen[id]++
		}
	}
	return seen
}

func TestPreviewTeamsValidation(t *testing.T) {
	t.Run("unsupported team size", func(t *testing.T) {
		_, err := PreviewTeams(makePool(1, 4, models.CategoryNoob), nil,
			DefaultBalancerConfig(5, models.BalanceCategory))
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := PreviewTeams(makePool(1, 4, models.CategoryNoob), nil,
			DefaultBalancerConfig(4, "elo"))
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("empty in pool yields zero teams", func(t *testing.T) {
		teams, err := PreviewTeams(nil, makePool(1, 2, models.CategoryNoob),
			DefaultBalancerConfig(4, models.BalanceCategory))
		require.NoError(t, err)
		assert.Empty(t, teams)
	})
}

func TestCategoryTeamCount(t *testing.T) {
	t.Run("squad mode uses max of pros and noob capacity", func(t *testing.T) {
		// noobCount=9, proCount=2, Squad 4+1: max(2, ceil(9/4)) = 3
		assert.Equal(t, 3, categoryTeamCount(2, 9, 4))
	})

	t.Run("duo mode pairs pros with noobs and spills the rest", func(t *testing.T) {
		// proCount=5, noobCount=6: min(5, ceil(6/2)) = 3 paired teams,
		// 2 leftover pros, 0 leftover noobs, 5 teams total
		assert.Equal(t, 5, categoryTeamCount(5, 6, 2))
	})

	t.Run("solo mode is one team per player", func(t *testing.T) {
		assert.Equal(t, 7, categoryTeamCount(3, 4, 1))
	})
}

func TestPreviewTeamsCategoryMode(t *testing.T) {
	pros := makePool(1, 2, models.CategoryPro)
	noobs := makePool(10, 9, models.CategoryNoob)
	inPool := append(append([]models.Player{}, pros...), noobs...)

	teams, err := PreviewTeams(inPool, nil, DefaultBalancerConfig(4, models.BalanceCategory))
	require.NoError(t, err)
	require.Len(t, teams, 3)

	t.Run("every player lands in exactly one team", func(t *testing.T) {
		seen := allMembers(teams)
		assert.Len(t, seen, len(inPool))
		for id, count := range seen {
			assert.Equal(t, 1, count, "player %d assigned %d times", id, count)
		}
	})

	t.Run("no team exceeds the anchor capacity", func(t *testing.T) {
		for _, tm := range teams {
			assert.LessOrEqual(t, len(tm.Anchors), 4, "team %d", tm.Label)
		}
	})

	t.Run("pro anchors spread across distinct teams", func(t *testing.T) {
		proTeams := make(map[int]bool)
		for _, tm := range teams {
			for _, id := range tm.Anchors {
				if id <= 2 {
					proTeams[tm.Label] = true
				}
			}
		}
		assert.Len(t, proTeams, 2)
	})

	t.Run("labels are sequential from one", func(t *testing.T) {
		for i, tm := range teams {
			assert.Equal(t, i+1, tm.Label)
		}
	})
}

func TestPreviewTeamsWeightedMode(t *testing.T) {
	// Descending skill: player 1 is the strongest.
	inPool := []models.Player{
		player(1, stats(90, 30, 8, 10)),
		player(2, stats(80, 32, 7, 10)),
		player(3, stats(70, 35, 6, 10)),
		player(4, stats(60, 40, 5, 10)),
		player(5, stats(50, 45, 4, 10)),
		player(6, stats(40, 50, 3, 10)),
		player(7, stats(30, 55, 2, 10)),
		player(8, stats(20, 60, 1, 10)),
	}

	teams, err := PreviewTeams(inPool, nil, DefaultBalancerConfig(4, models.BalanceWeighted))
	require.NoError(t, err)
	require.Len(t, teams, 2)

	t.Run("snake draft alternates picking order", func(t *testing.T) {
		// Round 1: teams 1,2 pick players 1,2. Round 2 reverses: 2,1 pick
		// 3,4. So team 1 gets 1,4,5,8 and team 2 gets 2,3,6,7.
		assert.Equal(t, []int{1, 4, 5, 8}, teams[0].Anchors)
		assert.Equal(t, []int{2, 3, 6, 7}, teams[1].Anchors)
	})

	t.Run("uneven pool leaves the last teams short", func(t *testing.T) {
		short, err := PreviewTeams(inPool[:6], nil, DefaultBalancerConfig(4, models.BalanceWeighted))
		require.NoError(t, err)
		require.Len(t, short, 2)
		assert.Equal(t, 6, len(short[0].Anchors)+len(short[1].Anchors))
	})

	t.Run("preview is deterministic", func(t *testing.T) {
		again, err := PreviewTeams(inPool, nil, DefaultBalancerConfig(4, models.BalanceWeighted))
		require.NoError(t, err)
		assert.Equal(t, teams, again)
	})
}

func TestPreviewTeamsSoloFoldIn(t *testing.T) {
	inPool := makePool(1, 8, models.CategoryNoob)
	solos := makePool(100, 3, models.CategoryNoob)

	teams, err := PreviewTeams(inPool, solos, DefaultBalancerConfig(4, models.BalanceCategory))
	require.NoError(t, err)
	require.Len(t, teams, 2)

	t.Run("solos go to the least-full teams one at a time", func(t *testing.T) {
		total := 0
		for _, tm := range teams {
			total += len(tm.Solos)
			assert.LessOrEqual(t, len(tm.Solos), 2)
		}
		assert.Equal(t, 3, total)
	})

	t.Run("solos never occupy anchor slots", func(t *testing.T) {
		for _, tm := range teams {
			for _, id := range tm.Anchors {
				assert.Less(t, id, 100)
			}
		}
	})
}

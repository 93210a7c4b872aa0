package services

import (
	"testing"

	"github.com/bgmi-arena/tournament-system/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateComposition(t *testing.T) {
	pools := engine.VotePools{
		InPool:   []int{1, 2, 3, 4},
		SoloPool: []int{9},
	}

	t.Run("valid composition passes", func(t *testing.T) {
		composition := []engine.TeamComposition{
			{Label: 1, Anchors: []int{1, 2}},
			{Label: 2, Anchors: []int{3, 4}, Solos: []int{9}},
		}
		require.NoError(t, validateComposition(composition, pools))
	})

	t.Run("anchor outside IN pool rejected", func(t *testing.T) {
		composition := []engine.TeamComposition{
			{Label: 1, Anchors: []int{1, 77}},
		}
		err := validateComposition(composition, pools)
		assert.ErrorIs(t, err, ErrCompositionConflict)
	})

	t.Run("solo outside SOLO pool rejected", func(t *testing.T) {
		composition := []engine.TeamComposition{
			{Label: 1, Anchors: []int{1}, Solos: []int{2}},
		}
		err := validateComposition(composition, pools)
		assert.ErrorIs(t, err, ErrCompositionConflict)
	})

	t.Run("duplicate player rejected", func(t *testing.T) {
		composition := []engine.TeamComposition{
			{Label: 1, Anchors: []int{1, 2}},
			{Label: 2, Anchors: []int{2, 3}},
		}
		err := validateComposition(composition, pools)
		assert.ErrorIs(t, err, ErrCompositionConflict)
	})
}

package engine

import (
	"github.com/bgmi-arena/tournament-system/models"
)

// CategoryThresholds maps minimum K/D ratios to skill categories. A player
// with zero kills and a zero ratio is a BOT; everyone else lands in the
// highest tier whose threshold their K/D meets.
type CategoryThresholds struct {
	Legend    float64
	UltraPro  float64
	Pro       float64
	Noob      float64
	UltraNoob float64
}

// DefaultCategoryThresholds is the official threshold table.
var DefaultCategoryThresholds = CategoryThresholds{
	Legend:    1.7,
	UltraPro:  1.5,
	Pro:       1.0,
	Noob:      0.5,
	UltraNoob: 0.2,
}

// DeriveCategory recomputes a player's skill category from lifetime stats.
// The category is a derived signal, never authoritative input: the balancer
// reads it but the scheduler overwrites it from K/D periodically.
func DeriveCategory(kd float64, kills int, t CategoryThresholds) models.SkillCategory {
	switch {
	case kd >= t.Legend:
		return models.CategoryLegend
	case kd >= t.UltraPro:
		return models.CategoryUltraPro
	case kd >= t.Pro:
		return models.CategoryPro
	case kd >= t.Noob:
		return models.CategoryNoob
	case kd >= t.UltraNoob:
		return models.CategoryUltraNoob
	case kills == 0 && kd == 0:
		return models.CategoryBot
	default:
		return models.CategoryUltraNoob
	}
}

package engine

import (
	"testing"

	"github.com/bgmi-arena/tournament-system/models"
	"github.com/stretchr/testify/assert"
)

func TestDeriveCategory(t *testing.T) {
	tests := []struct {
		name  string
		kd    float64
		kills int
		want  models.SkillCategory
	}{
		{"legend at threshold", 1.7, 120, models.CategoryLegend},
		{"ultra pro", 1.55, 90, models.CategoryUltraPro},
		{"pro", 1.0, 50, models.CategoryPro},
		{"noob", 0.6, 20, models.CategoryNoob},
		{"ultra noob", 0.3, 5, models.CategoryUltraNoob},
		{"below every threshold but has kills", 0.1, 2, models.CategoryUltraNoob},
		{"never scored", 0, 0, models.CategoryBot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveCategory(tt.kd, tt.kills, DefaultCategoryThresholds))
		})
	}
}

package models

import "time"

// SkillCategory represents the player skill tiers, matching the ENUM in the DB.
type SkillCategory string

const (
	CategoryBot       SkillCategory = "bot"
	CategoryUltraNoob SkillCategory = "ultra_noob"
	CategoryNoob      SkillCategory = "noob"
	CategoryPro       SkillCategory = "pro"
	CategoryUltraPro  SkillCategory = "ultra_pro"
	CategoryLegend    SkillCategory = "legend"
)

// Tier returns the numeric rank of the category, higher is stronger.
func (c SkillCategory) Tier() int {
	switch c {
	case CategoryLegend:
		return 5
	case CategoryUltraPro:
		return 4
	case CategoryPro:
		return 3
	case CategoryNoob:
		return 2
	case CategoryUltraNoob:
		return 1
	case CategoryBot:
		return 0
	}
	return 0
}

// IsProTier reports whether the category counts toward the "pro" side of the
// team-count formulas (PRO and above).
func (c SkillCategory) IsProTier() bool {
	return c.Tier() >= CategoryPro.Tier()
}

// Player represents a tournament player profile.
type Player struct {
	ID            int           `json:"id" db:"id"`
	UserID        int           `json:"user_id" db:"user_id"`
	IGN           string        `json:"ign" db:"ign"`
	Category      SkillCategory `json:"category" db:"category"`
	Kills         int           `json:"kills" db:"kills"`
	Deaths        int           `json:"deaths" db:"deaths"`
	Wins          int           `json:"wins" db:"wins"`
	MatchesPlayed int           `json:"matches_played" db:"matches_played"`
	IsUCExempt    bool          `json:"is_uc_exempt" db:"is_uc_exempt"`
	IsBanned      bool          `json:"is_banned" db:"is_banned"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	AvatarKey     *string       `json:"-" db:"avatar_key"`
	AvatarURL     *string       `json:"avatar_url,omitempty" db:"-"`

	User *User `json:"user,omitempty" db:"-"`
}

// KD returns the lifetime kill/death ratio. A player with zero deaths is
// rated by raw kills to avoid division by zero.
func (p *Player) KD() float64 {
	if p.Deaths == 0 {
		return float64(p.Kills)
	}
	return float64(p.Kills) / float64(p.Deaths)
}

// WinRate returns wins per match played, in [0, 1].
func (p *Player) WinRate() float64 {
	if p.MatchesPlayed == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.MatchesPlayed)
}

// Package sustainability scores quote configurations.
package sustainability

import "github.com/GTDGit/ecolux_api/internal/models"

const (
	// BaseScore is the score of a configuration with no eco options.
	BaseScore = 100
	// MaxScore caps Score.
	MaxScore = 200
	// HighScoreThreshold marks a quote as sustainability-adopting in analytics.
	HighScoreThreshold = 150

	solarBonus        = 15
	ecoMaterialsBonus = 10
)

type scoreRule struct {
	key   string
	value string
	bonus int
}

var scoreRules = []scoreRule{
	{key: "solar_system", value: "premium", bonus: 25},
	{key: "battery_system", value: "extended", bonus: 20},
	{key: "materials", value: "premium_eco", bonus: 30},
}

// CO2Savings returns the product baseline plus presence-based bonuses:
// any truthy solar_system adds 15 and any truthy eco_materials adds 10.
func CO2Savings(baseline float64, cfg models.Configuration) float64 {
	savings := baseline
	if cfg.Truthy("solar_system") {
		savings += solarBonus
	}
	if cfg.Truthy("eco_materials") {
		savings += ecoMaterialsBonus
	}
	return savings
}

// Score returns BaseScore plus value-matched bonuses, capped at MaxScore.
func Score(cfg models.Configuration) int {
	score := BaseScore
	for _, r := range scoreRules {
		if cfg.String(r.key) == r.value {
			score += r.bonus
		}
	}
	return min(score, MaxScore)
}

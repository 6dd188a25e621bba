// Package pricing turns a product base price and a quote configuration into
// a total price.
package pricing

import "github.com/GTDGit/ecolux_api/internal/models"

// Surcharge is a fixed amount added when a configuration key holds an exact value.
type Surcharge struct {
	Key         string
	Value       string
	Amount      float64
	Description string
}

// Surcharges lists the recognized options in line-item order.
var Surcharges = []Surcharge{
	{Key: "solar_system", Value: "premium", Amount: 120000, Description: "Premium solar system"},
	{Key: "battery_system", Value: "extended", Amount: 80000, Description: "Extended battery system"},
	{Key: "materials", Value: "premium_eco", Amount: 150000, Description: "Premium eco materials"},
}

// Line is one row of a price breakdown.
type Line struct {
	Description string
	Key         string
	Value       string
	Amount      float64
}

// Price returns base plus every surcharge whose key matches its value exactly.
// Unknown keys and values add nothing.
func Price(base float64, cfg models.Configuration) float64 {
	total := base
	for _, s := range Surcharges {
		if s.applies(cfg) {
			total += s.Amount
		}
	}
	return total
}

// Breakdown returns the lines that make up Price: the base price first, then
// the applied surcharges.
func Breakdown(base float64, cfg models.Configuration) []Line {
	lines := []Line{{Description: "Base price", Amount: base}}
	for _, s := range Surcharges {
		if s.applies(cfg) {
			lines = append(lines, Line{Description: s.Description, Key: s.Key, Value: s.Value, Amount: s.Amount})
		}
	}
	return lines
}

// Total sums the amounts of lines.
func Total(lines []Line) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.Amount
	}
	return sum
}

func (s Surcharge) applies(cfg models.Configuration) bool {
	return cfg.String(s.Key) == s.Value
}

package pricebook

import (
	"math"

	"github.com/shopspring/decimal"
)

// Stats summarises the whole collection, never a filtered view.
type Stats struct {
	TotalItems     int     `json:"totalItems"`
	InventoryValue float64 `json:"inventoryValue"`
	AverageMargin  int     `json:"averageMargin"`
	MarginSamples  int     `json:"marginSamples"`
}

// roundHalfUp rounds to the nearest integer with halves going up, so
// -2.5 becomes -2.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func marginPercent(p Product) (float64, bool) {
	if p.RetailPrice == nil || p.UnitCost == nil {
		return 0, false
	}
	retail, cost := *p.RetailPrice, *p.UnitCost
	if retail == 0 || !isFinite(retail) || !isFinite(cost) {
		return 0, false
	}
	return (retail - cost) / retail * 100, true
}

// Margin returns the rounded margin percentage of one record, or nil when
// retail price or unit cost is missing. Negative margins are kept.
func Margin(p Product) *int {
	m, ok := marginPercent(p)
	if !ok {
		return nil
	}
	r := roundHalfUp(m)
	return &r
}

// ComputeStats aggregates item count, summed unit cost and the mean margin.
func ComputeStats(products []Product) Stats {
	value := decimal.Zero
	var marginSum float64
	samples := 0

	for _, p := range products {
		if p.UnitCost != nil && isFinite(*p.UnitCost) {
			value = value.Add(decimal.NewFromFloat(*p.UnitCost))
		}
		if m, ok := marginPercent(p); ok {
			marginSum += m
			samples++
		}
	}

	stats := Stats{
		TotalItems:     len(products),
		InventoryValue: value.InexactFloat64(),
		MarginSamples:  samples,
	}
	if samples > 0 {
		stats.AverageMargin = roundHalfUp(marginSum / float64(samples))
	}
	return stats
}

package domain

import "time"

// MapStatistics is the aggregate view shown on the map overview panel.
// It is recomputed by the stats worker and served from cache.
type MapStatistics struct {
	TotalPins      int            `json:"total_pins"`
	PinsThisWeek   int            `json:"pins_this_week"`
	TotalRegions   int            `json:"total_regions"`
	ByCategory     map[string]int `json:"by_category"`
	ByRegion       map[string]int `json:"by_region"`
	TotalUpvotes   int            `json:"total_upvotes"`
	TotalDownvotes int            `json:"total_downvotes"`
	LastUpdated    time.Time      `json:"last_updated"`
}

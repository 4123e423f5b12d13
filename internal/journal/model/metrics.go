package model

// DayMetrics is the derived per-date aggregate: how many events touched
// each category, and the mean rating rounded to two decimals.
type DayMetrics struct {
	CatCounts map[string]int `json:"catCounts"`
	AvgRating float64        `json:"avgRating"`
}

// MetricsStore maps date keys to their metrics. It is a cache over the
// EventStore and is fully recomputed whenever events change; the only
// other write path is an explicit cell override.
type MetricsStore map[string]DayMetrics

func (m MetricsStore) Clone() MetricsStore {
	out := make(MetricsStore, len(m))
	for date, dm := range m {
		counts := make(map[string]int, len(dm.CatCounts))
		for k, v := range dm.CatCounts {
			counts[k] = v
		}
		out[date] = DayMetrics{CatCounts: counts, AvgRating: dm.AvgRating}
	}
	return out
}

// TimelinePoint is one date on the mood timeline. AvgRating is nil for
// dates with no events, which is distinct from an average of zero.
type TimelinePoint struct {
	Date      string   `json:"date"`
	AvgRating *float64 `json:"avgRating"`
}

// RangeSummary aggregates a date range for the dashboard.
type RangeSummary struct {
	Start          string          `json:"start"`
	End            string          `json:"end"`
	CategoryTotals map[string]int  `json:"categoryTotals"`
	PurposeTotals  map[string]int  `json:"purposeTotals"`
	Timeline       []TimelinePoint `json:"timeline"`
}

// Package metrics derives per-day and per-range statistics from raw
// events. Everything here is a pure function over value snapshots.
package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/chrisissin/moodmap-journal/internal/journal/model"
)

const dateLayout = "2006-01-02"

// ComputeDay aggregates one day bucket. An event with N categories
// contributes 1 to each of N counters. AvgRating is the mean rating
// rounded to two decimals, 0 for an empty bucket.
func ComputeDay(events model.DayBucket) model.DayMetrics {
	counts := make(map[string]int)
	sum := 0
	for _, ev := range events {
		for _, cat := range ev.Categories {
			counts[cat]++
		}
		sum += ev.Rating
	}

	avg := 0.0
	if len(events) > 0 {
		avg = math.Round(float64(sum)/float64(len(events))*100) / 100
	}

	return model.DayMetrics{CatCounts: counts, AvgRating: avg}
}

// ComputeAll recomputes the whole metrics store from scratch. Total
// function, no partial failure.
func ComputeAll(store model.EventStore) model.MetricsStore {
	out := make(model.MetricsStore, len(store))
	for date, bucket := range store {
		out[date] = ComputeDay(bucket)
	}
	return out
}

// Range aggregates category and purpose totals over every calendar date
// in [start, end] inclusive. Dates with no events contribute a nil
// timeline point, which is distinct from an average of zero. A start
// after the end yields an empty summary, not an error.
func Range(store model.EventStore, start, end string) (model.RangeSummary, error) {
	summary := model.RangeSummary{
		Start:          start,
		End:            end,
		CategoryTotals: make(map[string]int),
		PurposeTotals:  make(map[string]int),
	}

	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return summary, fmt.Errorf("invalid start date '%s': %w", start, err)
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return summary, fmt.Errorf("invalid end date '%s': %w", end, err)
	}

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		bucket := store[date]

		point := model.TimelinePoint{Date: date}
		if len(bucket) > 0 {
			avg := ComputeDay(bucket).AvgRating
			point.AvgRating = &avg
		}
		summary.Timeline = append(summary.Timeline, point)

		for _, ev := range bucket {
			for _, cat := range ev.Categories {
				summary.CategoryTotals[cat]++
			}
			for _, pur := range ev.Purposes {
				summary.PurposeTotals[pur]++
			}
		}
	}

	return summary, nil
}

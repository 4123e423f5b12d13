package model

import "fmt"

// Context holds the optional situational fields attached to an event.
type Context struct {
	Weather  string `json:"weather,omitempty"`
	Location string `json:"location,omitempty"`
	Movement string `json:"movement,omitempty"`
}

// Event is one journaled occurrence inside an hour slot.
type Event struct {
	ID         string   `json:"id"`
	Hour       int      `json:"hour"`
	Note       string   `json:"note"`
	Rating     int      `json:"rating"`
	Categories []string `json:"categories"`
	Purposes   []string `json:"purposes"`
	Context    Context  `json:"context"`
}

func (e Event) Validate() error {
	if e.Hour < 0 || e.Hour > 23 {
		return fmt.Errorf("hour %d out of range [0,23]", e.Hour)
	}
	if e.Rating < 1 || e.Rating > 5 {
		return fmt.Errorf("rating %d out of range [1,5]", e.Rating)
	}
	return nil
}

// DayBucket is the ordered list of events for one calendar date.
type DayBucket []Event

// EventStore maps "YYYY-MM-DD" date keys to day buckets. It is passed by
// value into the core packages; they return fresh snapshots and never
// mutate the one they were given.
type EventStore map[string]DayBucket

// Clone returns a deep copy with freshly allocated day buckets.
func (s EventStore) Clone() EventStore {
	out := make(EventStore, len(s))
	for date, bucket := range s {
		day := make(DayBucket, len(bucket))
		copy(day, bucket)
		out[date] = day
	}
	return out
}

// Dates returns the store's date keys in unspecified order.
func (s EventStore) Dates() []string {
	dates := make([]string, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	return dates
}

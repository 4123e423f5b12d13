package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/chrisissin/moodmap-journal/internal/journal/model"
)

// Cypher for the two node kinds. Each date is one node carrying its
// payload as a JSON property; a whole-store save is a wipe and rewrite,
// which matches the last-writer-wins contract.
const (
	saveDayQuery = `
		MERGE (d:JournalDay {date: $date})
		SET d.events = $events
		RETURN d.date AS date
	`

	loadDaysQuery = `
		MATCH (d:JournalDay)
		RETURN d.date AS date, d.events AS events
	`

	clearDaysQuery = `MATCH (d:JournalDay) DETACH DELETE d`

	saveMetricsQuery = `
		MERGE (m:DayMetrics {date: $date})
		SET m.payload = $payload
		RETURN m.date AS date
	`

	loadMetricsQuery = `
		MATCH (m:DayMetrics)
		RETURN m.date AS date, m.payload AS payload
	`

	clearMetricsQuery = `MATCH (m:DayMetrics) DETACH DELETE m`
)

// BoltDriver persists the journal in a Neo4j/Memgraph instance over the
// bolt protocol.
type BoltDriver struct {
	Driver neo4j.DriverWithContext
}

func NewBoltDriver(uri, username, password string) (*BoltDriver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	log.Println("Connected to journal store")
	return &BoltDriver{Driver: driver}, nil
}

func (d *BoltDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *BoltDriver) run(ctx context.Context, query string, params map[string]interface{}) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return result, nil
}

func (d *BoltDriver) EnsureSchema(ctx context.Context) error {
	queries := []string{
		"CREATE INDEX ON :JournalDay(date);",
		"CREATE INDEX ON :DayMetrics(date);",
	}
	for _, q := range queries {
		if _, err := d.run(ctx, q, nil); err != nil {
			// Index may already exist, or the syntax may differ per
			// server flavor. Not fatal either way.
			log.Printf("Warning: failed to create index '%s': %v", q, err)
		}
	}
	return nil
}

func (d *BoltDriver) LoadEvents(ctx context.Context) (model.EventStore, error) {
	result, err := d.run(ctx, loadDaysQuery, nil)
	if err != nil {
		return nil, err
	}

	store := make(model.EventStore)
	for _, rec := range result.Records {
		date, payload, ok := datePayload(rec, "events")
		if !ok {
			continue
		}
		var bucket model.DayBucket
		if err := json.Unmarshal([]byte(payload), &bucket); err != nil {
			log.Printf("Warning: skipping corrupt day node %s: %v", date, err)
			continue
		}
		store[date] = bucket
	}
	return store, nil
}

func (d *BoltDriver) SaveEvents(ctx context.Context, store model.EventStore) error {
	if _, err := d.run(ctx, clearDaysQuery, nil); err != nil {
		return err
	}
	for date, bucket := range store {
		payload, err := json.Marshal(bucket)
		if err != nil {
			return fmt.Errorf("failed to encode day %s: %w", date, err)
		}
		params := map[string]interface{}{"date": date, "events": string(payload)}
		if _, err := d.run(ctx, saveDayQuery, params); err != nil {
			return err
		}
	}
	return nil
}

func (d *BoltDriver) LoadMetrics(ctx context.Context) (model.MetricsStore, error) {
	result, err := d.run(ctx, loadMetricsQuery, nil)
	if err != nil {
		return nil, err
	}

	metrics := make(model.MetricsStore)
	for _, rec := range result.Records {
		date, payload, ok := datePayload(rec, "payload")
		if !ok {
			continue
		}
		var dm model.DayMetrics
		if err := json.Unmarshal([]byte(payload), &dm); err != nil {
			log.Printf("Warning: skipping corrupt metrics node %s: %v", date, err)
			continue
		}
		metrics[date] = dm
	}
	return metrics, nil
}

func (d *BoltDriver) SaveMetrics(ctx context.Context, metrics model.MetricsStore) error {
	if _, err := d.run(ctx, clearMetricsQuery, nil); err != nil {
		return err
	}
	for date, dm := range metrics {
		payload, err := json.Marshal(dm)
		if err != nil {
			return fmt.Errorf("failed to encode metrics %s: %w", date, err)
		}
		params := map[string]interface{}{"date": date, "payload": string(payload)}
		if _, err := d.run(ctx, saveMetricsQuery, params); err != nil {
			return err
		}
	}
	return nil
}

func datePayload(rec *neo4j.Record, payloadKey string) (string, string, bool) {
	dateVal, _ := rec.Get("date")
	payloadVal, _ := rec.Get(payloadKey)
	date, ok := dateVal.(string)
	if !ok {
		return "", "", false
	}
	payload, ok := payloadVal.(string)
	if !ok {
		return "", "", false
	}
	return date, payload, true
}

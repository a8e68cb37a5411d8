package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Reading is the collector's report for a single zone: the JSON payload of
// a source message.
type Reading struct {
	Zone       string    `json:"zone"`
	Month      int       `json:"month,omitempty"`
	ObservedAt time.Time `json:"observed_at,omitzero"`
	Pollutants Levels    `json:"pollutants"`
	Weather    Weather   `json:"weather"`
	History    History   `json:"history,omitempty"`
}

// ToZone builds the zone record for a reading.
func (r Reading) ToZone() Zone {
	return Zone{
		Name:       r.Zone,
		Pollutants: r.Pollutants,
		Weather:    r.Weather,
		History:    r.History,
	}
}

// Assessment is the outcome of one monitoring cycle for a zone, destined for
// the sink topic.
type Assessment struct {
	ID            string    `json:"id"`
	Zone          string    `json:"zone"`
	Month         int       `json:"month"`
	Weather       Weather   `json:"weather"`
	Current       Levels    `json:"current"`
	Baseline      Levels    `json:"baseline"`
	Forecast      Levels    `json:"forecast"`
	Alert         AlertTier `json:"alert"`
	Elevated      []string  `json:"elevated,omitempty"`
	HistorySource string    `json:"history_source"` // "supplied" or "synthesized"
	ObservedAt    time.Time `json:"observed_at"`
	ProcessedAt   time.Time `json:"processed_at"`

	// Final is the classified zone state after the cycle.
	Final Zone `json:"-"`
}

package amqp

import (
	"encoding/json"
	"time"

	"github.com/frankiemarley/web-scraping-project-tutorial/internal/core"
)

// RevenueRefreshedMessage announces that the revenue table was replaced.
// Consumers re-read the table; the message only carries a summary.
type RevenueRefreshedMessage struct {
	RunID       string    `json:"run_id"`
	Source      string    `json:"source"`
	Records     int       `json:"records"`
	FirstPeriod string    `json:"first_period,omitempty"`
	LastPeriod  string    `json:"last_period,omitempty"`
	Total       int64     `json:"total"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewRevenueRefreshedMessage summarizes records, which need not be sorted.
func NewRevenueRefreshedMessage(runID, source string, records []core.Record) *RevenueRefreshedMessage {
	msg := &RevenueRefreshedMessage{
		RunID:     runID,
		Source:    source,
		Records:   len(records),
		Timestamp: time.Now(),
	}
	var first, last core.Date
	for i, r := range records {
		msg.Total += r.Amount
		if i == 0 || r.Period.Before(first.Time) {
			first = r.Period
		}
		if i == 0 || r.Period.After(last.Time) {
			last = r.Period
		}
	}
	if len(records) > 0 {
		msg.FirstPeriod = first.String()
		msg.LastPeriod = last.String()
	}
	return msg
}

// ToJSON converts the message to JSON bytes
func (m *RevenueRefreshedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RevenueRefreshedMessageFromJSON creates a message from JSON bytes
func RevenueRefreshedMessageFromJSON(data []byte) (*RevenueRefreshedMessage, error) {
	var msg RevenueRefreshedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Package history persists audit results to SQLite so past runs can be
// listed, inspected and compared.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tildaslashalef/webaudit/internal/audit"
	"github.com/tildaslashalef/webaudit/internal/pagespeed"
	"github.com/tildaslashalef/webaudit/internal/ulid"
	"github.com/tildaslashalef/webaudit/internal/utils"
)

// Audit is a stored audit run. Metrics and TechStack are kept as JSON blobs;
// the scores are broken out into columns for listing and sorting.
type Audit struct {
	ID            string
	RunName       string
	URL           string
	FinalURL      string
	Strategy      string
	Performance   float64
	Accessibility float64
	BestPractices float64
	SEO           float64
	Metrics       json.RawMessage
	TechStack     json.RawMessage
	FetchTime     *string
	CreatedAt     time.Time
}

// NewAudit converts a result record into a storable audit row, assigning a
// fresh id and a generated run name
func NewAudit(record *audit.ResultRecord) (*Audit, error) {
	metrics, err := json.Marshal(record.Metrics)
	if err != nil {
		return nil, fmt.Errorf("marshaling metrics: %w", err)
	}

	techStack, err := json.Marshal(record.TechStack)
	if err != nil {
		return nil, fmt.Errorf("marshaling tech stack: %w", err)
	}

	return &Audit{
		ID:            ulid.AuditID(),
		RunName:       utils.GenerateRunName(),
		URL:           record.URL,
		FinalURL:      record.FinalURL,
		Strategy:      string(record.Strategy),
		Performance:   record.Scores.Performance,
		Accessibility: record.Scores.Accessibility,
		BestPractices: record.Scores.BestPractices,
		SEO:           record.Scores.SEO,
		Metrics:       metrics,
		TechStack:     techStack,
		FetchTime:     record.FetchTime,
		CreatedAt:     time.Now(),
	}, nil
}

// ToResultRecord rebuilds the normalized record from a stored row
func (a *Audit) ToResultRecord() (*audit.ResultRecord, error) {
	var metrics map[string]audit.Metric
	if err := json.Unmarshal(a.Metrics, &metrics); err != nil {
		return nil, fmt.Errorf("unmarshaling metrics: %w", err)
	}

	var techStack audit.TechStack
	if err := json.Unmarshal(a.TechStack, &techStack); err != nil {
		return nil, fmt.Errorf("unmarshaling tech stack: %w", err)
	}

	return &audit.ResultRecord{
		URL:       a.URL,
		Strategy:  pagespeed.Strategy(a.Strategy),
		Timestamp: a.CreatedAt.Format(time.RFC3339),
		Scores: audit.Scores{
			Performance:   a.Performance,
			Accessibility: a.Accessibility,
			BestPractices: a.BestPractices,
			SEO:           a.SEO,
		},
		Metrics:   metrics,
		TechStack: techStack,
		FinalURL:  a.FinalURL,
		FetchTime: a.FetchTime,
	}, nil
}

package audit

import (
	"context"
	"fmt"

	"github.com/tildaslashalef/webaudit/internal/loggy"
	"github.com/tildaslashalef/webaudit/internal/pagespeed"
)

// Service runs audits: one blocking API call per invocation, then extraction.
// Failures from the upstream call are returned as-is for the caller to treat
// as fatal; there is no retry.
type Service struct {
	client *pagespeed.Client
	logger *loggy.Logger
}

// NewService creates a new audit service
func NewService(client *pagespeed.Client, logger *loggy.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// Run audits a single URL with the given strategy and returns the normalized
// record
func (s *Service) Run(ctx context.Context, targetURL string, strategy pagespeed.Strategy) (*ResultRecord, error) {
	s.logger.Info("Running audit", "url", targetURL, "strategy", string(strategy))

	raw, err := s.client.RunAudit(ctx, targetURL, strategy)
	if err != nil {
		return nil, fmt.Errorf("fetching report for %s (%s): %w", targetURL, strategy, err)
	}

	record := Extract(raw, targetURL, strategy)

	s.logger.Debug("Audit extracted",
		"url", targetURL,
		"strategy", string(strategy),
		"performance", record.Scores.Performance,
		"final_url", record.FinalURL,
	)

	return record, nil
}

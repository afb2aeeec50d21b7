package history

import (
	"context"
	"fmt"

	"github.com/tildaslashalef/webaudit/internal/audit"
	"github.com/tildaslashalef/webaudit/internal/loggy"
)

// Service wraps the repository with conversion between audit records and
// stored rows.
type Service struct {
	repo   Repository
	logger *loggy.Logger
}

// NewService creates a new history service
func NewService(repo Repository, logger *loggy.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Record stores one audit result and returns the stored row
func (s *Service) Record(ctx context.Context, record *audit.ResultRecord) (*Audit, error) {
	a, err := NewAudit(record)
	if err != nil {
		return nil, fmt.Errorf("preparing audit row: %w", err)
	}

	if err := s.repo.CreateAudit(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// Get retrieves one stored audit by id
func (s *Service) Get(ctx context.Context, id string) (*Audit, error) {
	return s.repo.GetAuditByID(ctx, id)
}

// List retrieves stored audits, newest first; url narrows the listing when
// non-empty
func (s *Service) List(ctx context.Context, url string, page, limit int) ([]*Audit, error) {
	params := NewPaginationParams(page, limit)
	if url != "" {
		return s.repo.ListAuditsByURL(ctx, url, params)
	}
	return s.repo.ListAudits(ctx, params)
}

// Delete removes one stored audit by id
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteAudit(ctx, id)
}

// Count returns the total number of stored audits
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.CountAudits(ctx)
}

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/tildaslashalef/webaudit/internal/loggy"
)

var (
	// ErrAuditNotFound is returned when an audit is not found
	ErrAuditNotFound = errors.New("audit not found")
)

// PaginationParams defines parameters for paginated queries
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams creates a new PaginationParams instance with default values
func NewPaginationParams(page, limit int) PaginationParams {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10 // Default to 10 items per page
	}
	if limit > 100 {
		limit = 100 // Cap at 100 items per page
	}
	return PaginationParams{
		Page:  page,
		Limit: limit,
	}
}

// Repository defines the interface for audit persistence operations
type Repository interface {
	CreateAudit(ctx context.Context, a *Audit) error
	GetAuditByID(ctx context.Context, id string) (*Audit, error)
	ListAudits(ctx context.Context, params PaginationParams) ([]*Audit, error)
	ListAuditsByURL(ctx context.Context, url string, params PaginationParams) ([]*Audit, error)
	DeleteAudit(ctx context.Context, id string) error
	CountAudits(ctx context.Context) (int, error)
}

// SQLRepository implements Repository using SQLite database
type SQLRepository struct {
	db      *sql.DB
	logger  *loggy.Logger
	builder sq.StatementBuilderType
}

// NewSQLRepository creates a new audit SQL repository
func NewSQLRepository(db *sql.DB, logger *loggy.Logger) Repository {
	return &SQLRepository{
		db:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

var auditColumns = []string{
	"id",
	"run_name",
	"url",
	"final_url",
	"strategy",
	"performance",
	"accessibility",
	"best_practices",
	"seo",
	"metrics",
	"tech_stack",
	"fetch_time",
	"created_at",
}

// CreateAudit saves a new audit row to the database
func (r *SQLRepository) CreateAudit(ctx context.Context, a *Audit) error {
	query, args, err := r.builder.
		Insert("audits").
		Columns(auditColumns...).
		Values(
			a.ID,
			a.RunName,
			a.URL,
			a.FinalURL,
			a.Strategy,
			a.Performance,
			a.Accessibility,
			a.BestPractices,
			a.SEO,
			a.Metrics,
			a.TechStack,
			a.FetchTime,
			a.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("inserting audit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no rows affected when creating audit")
	}

	r.logger.Info("Recorded audit", "id", a.ID, "run_name", a.RunName, "url", a.URL)
	return nil
}

// GetAuditByID retrieves an audit by its id
func (r *SQLRepository) GetAuditByID(ctx context.Context, id string) (*Audit, error) {
	query, args, err := r.builder.
		Select(auditColumns...).
		From("audits").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	a, err := scanAudit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAuditNotFound
		}
		return nil, fmt.Errorf("scanning audit: %w", err)
	}

	return a, nil
}

// ListAudits retrieves audits sorted newest first
func (r *SQLRepository) ListAudits(ctx context.Context, params PaginationParams) ([]*Audit, error) {
	return r.list(ctx, sq.Eq{}, params)
}

// ListAuditsByURL retrieves audits for a single URL, newest first
func (r *SQLRepository) ListAuditsByURL(ctx context.Context, url string, params PaginationParams) ([]*Audit, error) {
	return r.list(ctx, sq.Eq{"url": url}, params)
}

func (r *SQLRepository) list(ctx context.Context, where sq.Eq, params PaginationParams) ([]*Audit, error) {
	offset := (params.Page - 1) * params.Limit

	builder := r.builder.
		Select(auditColumns...).
		From("audits").
		OrderBy("created_at DESC").
		Limit(uint64(params.Limit)).
		Offset(uint64(offset))
	if len(where) > 0 {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audits: %w", err)
	}
	defer rows.Close()

	var audits []*Audit
	for rows.Next() {
		a, err := scanAudit(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning audit: %w", err)
		}
		audits = append(audits, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audits: %w", err)
	}

	return audits, nil
}

// DeleteAudit removes an audit by its id
func (r *SQLRepository) DeleteAudit(ctx context.Context, id string) error {
	query, args, err := r.builder.
		Delete("audits").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting audit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrAuditNotFound
	}

	r.logger.Info("Deleted audit", "id", id)
	return nil
}

// CountAudits returns the total number of stored audits
func (r *SQLRepository) CountAudits(ctx context.Context) (int, error) {
	query, args, err := r.builder.
		Select("COUNT(*)").
		From("audits").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building count query: %w", err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting audits: %w", err)
	}

	return count, nil
}

// scanner abstracts sql.Row and sql.Rows for shared scanning
type scanner interface {
	Scan(dest ...any) error
}

func scanAudit(s scanner) (*Audit, error) {
	var a Audit
	err := s.Scan(
		&a.ID,
		&a.RunName,
		&a.URL,
		&a.FinalURL,
		&a.Strategy,
		&a.Performance,
		&a.Accessibility,
		&a.BestPractices,
		&a.SEO,
		&a.Metrics,
		&a.TechStack,
		&a.FetchTime,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

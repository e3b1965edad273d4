package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	domain "github.com/shrinkstudio/shrink-tools-api/internal/domain/reports"
)

type ReportRepository struct{ db *sql.DB }

func NewReportRepository(db *sql.DB) *ReportRepository { return &ReportRepository{db: db} }

// Save inserts a report. A slug collision surfaces as ErrSlugTaken so the
// caller can retry with the next suffix.
func (r *ReportRepository) Save(ctx context.Context, rep *domain.Report) error {
	const q = `
INSERT INTO audit_reports
(id, slug, url, site_name, tool, overall_score, summary,
 categories, strengths, improvements, snapshot_url, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12);`

	categories, strengths, improvements, err := marshalSections(rep)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, q,
		rep.ID, rep.Slug, rep.URL, rep.SiteName, rep.Tool, rep.OverallScore, rep.Summary,
		categories, strengths, improvements, rep.SnapshotURL, rep.CreatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ErrSlugTaken
	}
	return err
}

// GetByID fetches a report by its UUID.
func (r *ReportRepository) GetByID(ctx context.Context, id domain.ReportID) (*domain.Report, error) {
	const q = selectColumns + ` WHERE id=$1 LIMIT 1;`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// GetBySlug fetches a report by its public slug.
func (r *ReportRepository) GetBySlug(ctx context.Context, slug string) (*domain.Report, error) {
	const q = selectColumns + ` WHERE slug=$1 LIMIT 1;`
	return r.scanOne(r.db.QueryRowContext(ctx, q, slug))
}

// LatestSlugLike returns the most recent slug starting with prefix, or ""
// when none exists.
func (r *ReportRepository) LatestSlugLike(ctx context.Context, prefix string) (string, error) {
	const q = `
SELECT slug FROM audit_reports
WHERE slug LIKE $1 || '%'
ORDER BY created_at DESC
LIMIT 1;`
	var slug string
	if err := r.db.QueryRowContext(ctx, q, escapeLikePattern(prefix)).Scan(&slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return slug, nil
}

// Latest lists the newest reports, optionally filtered by tool.
func (r *ReportRepository) Latest(ctx context.Context, tool domain.Tool, limit int) ([]*domain.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	query := selectColumns
	args := []interface{}{}
	if tool != "" {
		query += ` WHERE tool=$1 ORDER BY created_at DESC LIMIT $2;`
		args = append(args, tool, limit)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1;`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Report
	for rows.Next() {
		rep, err := scanReport(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

const selectColumns = `
SELECT id, slug, url, site_name, tool, overall_score, summary,
       categories, strengths, improvements, snapshot_url, created_at
FROM audit_reports`

func (r *ReportRepository) scanOne(row *sql.Row) (*domain.Report, error) {
	rep, err := scanReport(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rep, err
}

func scanReport(scan func(dest ...interface{}) error) (*domain.Report, error) {
	var rep domain.Report
	var categories, strengths, improvements []byte
	if err := scan(
		&rep.ID, &rep.Slug, &rep.URL, &rep.SiteName, &rep.Tool, &rep.OverallScore, &rep.Summary,
		&categories, &strengths, &improvements, &rep.SnapshotURL, &rep.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalSections(&rep, categories, strengths, improvements); err != nil {
		return nil, err
	}
	return &rep, nil
}

func marshalSections(rep *domain.Report) ([]byte, []byte, []byte, error) {
	categories, err := json.Marshal(rep.Categories)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal categories: %w", err)
	}
	strengths, err := json.Marshal(rep.Strengths)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal strengths: %w", err)
	}
	improvements, err := json.Marshal(rep.Improvements)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal improvements: %w", err)
	}
	return categories, strengths, improvements, nil
}

func unmarshalSections(rep *domain.Report, categories, strengths, improvements []byte) error {
	if err := json.Unmarshal(categories, &rep.Categories); err != nil {
		return fmt.Errorf("unmarshal categories: %w", err)
	}
	if err := json.Unmarshal(strengths, &rep.Strengths); err != nil {
		return fmt.Errorf("unmarshal strengths: %w", err)
	}
	if err := json.Unmarshal(improvements, &rep.Improvements); err != nil {
		return fmt.Errorf("unmarshal improvements: %w", err)
	}
	return nil
}

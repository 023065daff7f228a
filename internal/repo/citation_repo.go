// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Citation
// model. Citations are append-only from the analytics side: the pipeline
// ingests them, dashboards read them, and the only mutation is deletion.
//
// Reads are always ordered by run_date descending and bounded by an explicit
// limit so a single dashboard fetch cannot drag the whole history across the
// wire. Reads join against non-deleted queries, so citations orphaned by a
// query soft delete silently disappear from every aggregation.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aeolytics/aeo-backend/internal/domain"
)

// CitationFilter narrows citation reads. Zero values mean "no filter".
type CitationFilter struct {
	QueryID string
	Engine  string
	Since   time.Time
}

// CreateCitation inserts one citation row produced by the processing
// pipeline. RunDate defaults to now (UTC) when unset.
func CreateCitation(ctx context.Context, db *gorm.DB, c *domain.Citation) (*domain.Citation, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.RunDate.IsZero() {
		c.RunDate = time.Now().UTC()
	}
	c.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// ListRecentCitations returns up to limit of the user's most recent citations
// (run_date descending), excluding rows whose query was soft-deleted. The
// caller supplies the cap; services default it from configuration.
func ListRecentCitations(ctx context.Context, db *gorm.DB, userID string, f CitationFilter, limit int) ([]domain.Citation, error) {
	q := db.WithContext(ctx).
		Model(&domain.Citation{}).
		Joins("JOIN queries ON queries.id = citations.query_id AND queries.status <> ?", domain.QueryStatusDeleted).
		Where("citations.user_id = ?", userID)
	if f.QueryID != "" {
		q = q.Where("citations.query_id = ?", f.QueryID)
	}
	if f.Engine != "" {
		q = q.Where("citations.engine = ?", f.Engine)
	}
	if !f.Since.IsZero() {
		q = q.Where("citations.run_date >= ?", f.Since)
	}
	var out []domain.Citation
	err := q.Order("citations.run_date desc").Limit(limit).Find(&out).Error
	return out, err
}

// DeleteCitation hard-deletes one citation, enforcing ownership.
// Returns ErrNotFound when nothing matched.
func DeleteCitation(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Citation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCitationsByIDs hard-deletes a batch of citations owned by userID and
// returns how many rows were removed. IDs that do not exist (or belong to
// someone else) are skipped, not errors.
func DeleteCitationsByIDs(ctx context.Context, db *gorm.DB, userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&domain.Citation{})
	return res.RowsAffected, res.Error
}

// CitationsStats returns aggregate metadata for a user's citations: total row
// count and the most recent run date. When the user has no citations the
// count is 0 and lastRun is nil.
func CitationsStats(ctx context.Context, db *gorm.DB, userID string) (count int64, lastRun *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Citation{}).Where("user_id = ?", userID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	var row struct {
		RunDate time.Time
	}
	if err = q.Select("run_date").Order("run_date DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.RunDate, nil
}

// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Query
// model. Queries soft-delete: DeleteQuery flips status to "deleted" and every
// read in this file filters such rows out.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aeolytics/aeo-backend/internal/domain"
)

// CreateQuery inserts a new active Query row owned by userID. Engines must
// already be filtered to the owner's plan by the service layer.
func CreateQuery(ctx context.Context, db *gorm.DB, userID, text string, domainID *string, tags, engines []string) (*domain.Query, error) {
	q := &domain.Query{
		ID:         uuid.NewString(),
		UserID:     userID,
		Text:       text,
		DomainID:   domainID,
		IntentTags: tags,
		Engines:    engines,
		Status:     domain.QueryStatusActive,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(q).Error; err != nil {
		return nil, err
	}
	return q, nil
}

// ListQueries returns the user's non-deleted queries ordered by creation time
// descending.
func ListQueries(ctx context.Context, db *gorm.DB, userID string) ([]domain.Query, error) {
	var out []domain.Query
	err := db.WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, domain.QueryStatusDeleted).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// ListQueriesPage returns a page of the user's non-deleted queries, ordered
// by creation time descending. Use CountActiveQueries / a separate count for
// pagination metadata.
func ListQueriesPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.Query, error) {
	var out []domain.Query
	err := db.WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, domain.QueryStatusDeleted).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountQueries returns the number of non-deleted queries owned by userID.
func CountQueries(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Query{}).
		Where("user_id = ? AND status <> ?", userID, domain.QueryStatusDeleted).
		Count(&total).Error
	return total, err
}

// CountActiveQueries returns the number of queries counted against the plan
// quota: status "active" only (paused queries do not consume quota).
func CountActiveQueries(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Query{}).
		Where("user_id = ? AND status = ?", userID, domain.QueryStatusActive).
		Count(&total).Error
	return total, err
}

// GetQuery fetches a single non-deleted query by id and owner, or ErrNotFound.
func GetQuery(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Query, error) {
	var q domain.Query
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND status <> ?", id, userID, domain.QueryStatusDeleted).
		First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateQueryStatus sets the status of a non-deleted query. It is also the
// soft-delete primitive: passing domain.QueryStatusDeleted removes the row
// from all subsequent reads. Returns ErrNotFound when nothing matched.
func UpdateQueryStatus(ctx context.Context, db *gorm.DB, id, userID, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.Query{}).
		Where("id = ? AND user_id = ? AND status <> ?", id, userID, domain.QueryStatusDeleted).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDeleteQuery marks a query deleted. Subsequent reads exclude it; its
// citations remain but become orphans excluded from aggregations.
func SoftDeleteQuery(ctx context.Context, db *gorm.DB, id, userID string) error {
	return UpdateQueryStatus(ctx, db, id, userID, domain.QueryStatusDeleted)
}

// TouchQueryRun stamps LastRun on a query after it was submitted to the
// processing pipeline.
func TouchQueryRun(ctx context.Context, db *gorm.DB, id, userID string, ranAt time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.Query{}).
		Where("id = ? AND user_id = ? AND status <> ?", id, userID, domain.QueryStatusDeleted).
		Update("last_run", ranAt)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListQueryIDs returns the ids of the user's non-deleted queries. Used to
// exclude orphaned citations from aggregations.
func ListQueryIDs(ctx context.Context, db *gorm.DB, userID string) ([]string, error) {
	var ids []string
	err := db.WithContext(ctx).
		Model(&domain.Query{}).
		Where("user_id = ? AND status <> ?", userID, domain.QueryStatusDeleted).
		Pluck("id", &ids).Error
	return ids, err
}

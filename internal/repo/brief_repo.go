// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the FixItBrief
// model. Briefs are created from generator output, advance through a status
// ladder, and are hard-deleted.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aeolytics/aeo-backend/internal/domain"
)

// CreateBrief inserts a generated brief owned by userID.
func CreateBrief(ctx context.Context, db *gorm.DB, b *domain.FixItBrief) (*domain.FixItBrief, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = domain.BriefStatusGenerated
	}
	b.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(b).Error; err != nil {
		return nil, err
	}
	return b, nil
}

// ListBriefs returns all briefs owned by userID, newest first.
func ListBriefs(ctx context.Context, db *gorm.DB, userID string) ([]domain.FixItBrief, error) {
	var out []domain.FixItBrief
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// GetBrief fetches one brief by id and owner, or ErrNotFound.
func GetBrief(ctx context.Context, db *gorm.DB, id, userID string) (*domain.FixItBrief, error) {
	var b domain.FixItBrief
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBriefStatus sets the status of a brief, enforcing ownership.
// Returns ErrNotFound when nothing matched. Transition ordering is enforced
// by the service layer, not here.
func UpdateBriefStatus(ctx context.Context, db *gorm.DB, id, userID, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.FixItBrief{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteBrief hard-deletes one brief, enforcing ownership.
func DeleteBrief(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.FixItBrief{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteBriefsByIDs hard-deletes a batch of briefs owned by userID and
// returns the number of rows removed.
func DeleteBriefsByIDs(ctx context.Context, db *gorm.DB, userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&domain.FixItBrief{})
	return res.RowsAffected, res.Error
}

// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Domain
// model (tracked websites).
//
// All functions are context-aware, accept a *gorm.DB handle, and scope every
// statement by the owning user id, so cross-user access is impossible by
// construction of the query. They follow the "thin repository" approach: no
// business logic, only CRUD persistence and query composition. Quota and
// duplicate checks live in the service layer.
//
// Error semantics:
//   - When a domain is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aeolytics/aeo-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateDomain inserts a new Domain row owned by userID with the given
// normalized hostname and status "pending". The id is a randomly generated
// UUID and CreatedAt is set to UTC.
func CreateDomain(ctx context.Context, db *gorm.DB, userID, hostname string) (*domain.Domain, error) {
	d := &domain.Domain{
		ID:        uuid.NewString(),
		UserID:    userID,
		Hostname:  hostname,
		Status:    domain.DomainStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

// ListDomains returns all domains belonging to userID, ordered by creation
// time descending. It returns an empty slice if the user has none.
func ListDomains(ctx context.Context, db *gorm.DB, userID string) ([]domain.Domain, error) {
	var out []domain.Domain
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// GetDomain fetches a single domain by id and owner, or ErrNotFound.
func GetDomain(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Domain, error) {
	var d domain.Domain
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FindDomainByHostname fetches the owner's domain with the given normalized
// hostname. Returns ErrNotFound when no such row exists.
func FindDomainByHostname(ctx context.Context, db *gorm.DB, userID, hostname string) (*domain.Domain, error) {
	var d domain.Domain
	err := db.WithContext(ctx).
		Where("user_id = ? AND hostname = ?", userID, hostname).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CountDomains returns the number of domains owned by userID. Domains are
// hard-deleted, so every surviving row counts against the plan quota.
func CountDomains(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Domain{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// DeleteDomain hard-deletes a domain by id, enforcing ownership. If no rows
// are affected (missing or not owned by userID), it returns ErrNotFound.
func DeleteDomain(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Domain{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateDomainStatus sets the status of a domain owned by userID.
// Returns ErrNotFound when the domain does not exist.
func UpdateDomainStatus(ctx context.Context, db *gorm.DB, id, userID, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.Domain{}).
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

// TouchDomainCheck records a completed citation check against a domain:
// bumps the citations counter, marks the domain active, and stores the run
// date as the last check time. Missing domains are ignored (the weak query
// reference may be nil or stale).
func TouchDomainCheck(ctx context.Context, db *gorm.DB, id, userID string, ranAt time.Time) error {
	err := db.WithContext(ctx).
		Model(&domain.Domain{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"citations_count": gorm.Expr("citations_count + 1"),
			"status":          domain.DomainStatusActive,
			"last_check":      ranAt,
		}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// AdjustDomainQueryCount shifts the denormalized queries counter by delta,
// clamped at zero by the caller's usage pattern (delta is +1 on query create,
// -1 on soft delete).
func AdjustDomainQueryCount(ctx context.Context, db *gorm.DB, id, userID string, delta int) error {
	return db.WithContext(ctx).
		Model(&domain.Domain{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("queries_count", gorm.Expr("queries_count + ?", delta)).Error
}

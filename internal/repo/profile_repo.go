// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Profile
// model, which carries the billing plan consulted by every entitlement check.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/aeolytics/aeo-backend/internal/domain"
)

// GetProfile fetches the profile for userID. When the user has never been
// seen before, a free-plan profile is returned without being persisted, so
// read paths work for fresh accounts.
func GetProfile(ctx context.Context, db *gorm.DB, userID string) (*domain.Profile, error) {
	var p domain.Profile
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.Profile{UserID: userID, Plan: domain.PlanFree}, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertPlan records the plan supplied by the billing provider for userID,
// creating the profile row when absent. This is the only write path for the
// plan column.
func UpsertPlan(ctx context.Context, db *gorm.DB, userID string, plan domain.Plan) (*domain.Profile, error) {
	now := time.Now().UTC()
	var p domain.Profile
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		p = domain.Profile{UserID: userID, Plan: plan, CreatedAt: now, UpdatedAt: now}
		if cerr := db.WithContext(ctx).Create(&p).Error; cerr != nil {
			return nil, cerr
		}
		return &p, nil
	case err != nil:
		return nil, err
	}
	if uerr := db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("user_id = ?", userID).
		Update("plan", plan).Error; uerr != nil {
		return nil, uerr
	}
	p.Plan = plan
	return &p, nil
}

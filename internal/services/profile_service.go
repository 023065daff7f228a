// Package services – ProfileService
//
// This file implements ProfileService, the read side of the billing
// integration: it exposes the stored plan, the entitlements it resolves to,
// and current usage against the quotas. The only write is SetPlan, called by
// the billing sync endpoint with a provider-supplied value.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/aeolytics/aeo-backend/internal/domain"
	"github.com/aeolytics/aeo-backend/internal/entitlement"
	"github.com/aeolytics/aeo-backend/internal/repo"
)

// Usage is the current consumption against plan quotas.
type Usage struct {
	Domains       int64 `json:"domains"`
	ActiveQueries int64 `json:"active_queries"`
}

// AccountOverview is the profile plus everything the plan entitles and how
// much of it is used.
type AccountOverview struct {
	Profile domain.Profile     `json:"profile"`
	Limits  entitlement.Limits `json:"limits"`
	Usage   Usage              `json:"usage"`
}

// ProfileService reads profiles and applies billing plan updates.
type ProfileService struct {
	DB *gorm.DB
}

// NewProfileService constructs a ProfileService.
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// PlanFor returns the caller's plan, degrading to free when the profile
// cannot be read. Every entitlement-gated handler goes through here.
func (s *ProfileService) PlanFor(ctx context.Context, userID string) domain.Plan {
	p, err := repo.GetProfile(ctx, s.DB, userID)
	if err != nil {
		return domain.PlanFree
	}
	return p.Plan
}

// Overview returns the profile, its resolved limits, and current usage.
func (s *ProfileService) Overview(ctx context.Context, userID string) (*AccountOverview, error) {
	p, err := repo.GetProfile(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	domains, err := repo.CountDomains(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	queries, err := repo.CountActiveQueries(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	return &AccountOverview{
		Profile: *p,
		Limits:  entitlement.ResolveLimits(p.Plan),
		Usage:   Usage{Domains: domains, ActiveQueries: queries},
	}, nil
}

// SetPlan records the plan supplied by the billing provider. Values outside
// the known enum are stored as-is and resolve to free-tier limits, matching
// the fail-safe entitlement policy.
func (s *ProfileService) SetPlan(ctx context.Context, userID string, plan domain.Plan) (*domain.Profile, error) {
	return repo.UpsertPlan(ctx, s.DB, userID, plan)
}

// Package services – DomainService
//
// This file implements the DomainService, which manages tracked websites.
// It normalizes hostnames, enforces plan domain quotas and per-owner
// uniqueness before any store call, and coordinates repository operations.
// The acting user's id and plan arrive as explicit parameters on every
// method; nothing is read from ambient state.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/aeolytics/aeo-backend/internal/domain"
	"github.com/aeolytics/aeo-backend/internal/entitlement"
)

// DomainRepo defines the repository contract required by DomainService.
type DomainRepo interface {
	// CreateDomain inserts a new pending domain row for the given user.
	CreateDomain(ctx context.Context, db *gorm.DB, userID, hostname string) (*domain.Domain, error)

	// ListDomains returns all domains belonging to the user.
	ListDomains(ctx context.Context, db *gorm.DB, userID string) ([]domain.Domain, error)

	// GetDomain fetches a domain by id ensuring it belongs to the user.
	GetDomain(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Domain, error)

	// FindDomainByHostname fetches the user's domain with that hostname.
	FindDomainByHostname(ctx context.Context, db *gorm.DB, userID, hostname string) (*domain.Domain, error)

	// CountDomains returns the number of domains counted against the quota.
	CountDomains(ctx context.Context, db *gorm.DB, userID string) (int64, error)

	// DeleteDomain hard-deletes a domain (only if it belongs to the user).
	DeleteDomain(ctx context.Context, db *gorm.DB, id, userID string) error
}

// DomainService provides domain lifecycle operations: creation behind the
// plan quota and duplicate gates, listing, and hard deletion.
type DomainService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the domain repository used by this service.
	Repo DomainRepo
}

// NewDomainService constructs a DomainService.
func NewDomainService(db *gorm.DB, r DomainRepo) *DomainService {
	return &DomainService{DB: db, Repo: r}
}

// Create registers a new tracked domain for userID. The hostname is
// normalized first; the plan quota and the per-owner duplicate check both run
// before the insert, and on violation the store is never called.
func (s *DomainService) Create(ctx context.Context, userID string, plan domain.Plan, hostname string) (*domain.Domain, error) {
	hostname = NormalizeHostname(hostname)
	if hostname == "" {
		return nil, ErrEmptyHostname
	}

	limits := entitlement.ResolveLimits(plan)
	count, err := s.Repo.CountDomains(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	if count >= int64(limits.MaxDomains) {
		return nil, ErrQuotaExceeded
	}

	if _, err := s.Repo.FindDomainByHostname(ctx, s.DB, userID, hostname); err == nil {
		return nil, ErrDuplicateDomain
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return s.Repo.CreateDomain(ctx, s.DB, userID, hostname)
}

// List returns all domains for a user, newest first.
func (s *DomainService) List(ctx context.Context, userID string) ([]domain.Domain, error) {
	return s.Repo.ListDomains(ctx, s.DB, userID)
}

// Delete hard-deletes a domain owned by userID. Not reversible.
func (s *DomainService) Delete(ctx context.Context, userID, id string) error {
	err := s.Repo.DeleteDomain(ctx, s.DB, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrDomainNotFound
	}
	return err
}

// NormalizeHostname canonicalizes user input into the stored hostname form:
// surrounding whitespace removed, http/https scheme stripped, at most one
// trailing slash stripped, lowercased.
func NormalizeHostname(raw string) string {
	h := strings.TrimSpace(raw)
	h = strings.TrimPrefix(h, "https://")
	h = strings.TrimPrefix(h, "http://")
	h = strings.TrimSuffix(h, "/")
	return strings.ToLower(h)
}

package services

import (
	"context"
	"testing"

	"github.com/aeolytics/aeo-backend/internal/domain"
	"github.com/aeolytics/aeo-backend/internal/entitlement"
	"github.com/aeolytics/aeo-backend/internal/repo"
)

func TestPlanFor_UnknownUserIsFree(t *testing.T) {
	s := NewProfileService(newServiceDB(t))
	if got := s.PlanFor(context.Background(), "never-seen"); got != domain.PlanFree {
		t.Fatalf("PlanFor = %q, want free", got)
	}
}

func TestSetPlan_UpsertsAndSticks(t *testing.T) {
	db := newServiceDB(t)
	s := NewProfileService(db)
	ctx := context.Background()

	p, err := s.SetPlan(ctx, "u1", domain.PlanPro)
	if err != nil {
		t.Fatalf("SetPlan: %v", err)
	}
	if p.Plan != domain.PlanPro {
		t.Fatalf("Plan = %q, want pro", p.Plan)
	}
	if got := s.PlanFor(ctx, "u1"); got != domain.PlanPro {
		t.Fatalf("PlanFor after set = %q, want pro", got)
	}

	// Second call updates in place rather than inserting a duplicate row.
	if _, err := s.SetPlan(ctx, "u1", domain.PlanAgency); err != nil {
		t.Fatalf("SetPlan update: %v", err)
	}
	if got := s.PlanFor(ctx, "u1"); got != domain.PlanAgency {
		t.Fatalf("PlanFor after update = %q, want agency", got)
	}

	var count int64
	if err := db.Model(&domain.Profile{}).Where("user_id = ?", "u1").Count(&count).Error; err != nil {
		t.Fatalf("count profiles: %v", err)
	}
	if count != 1 {
		t.Fatalf("profile rows = %d, want 1", count)
	}
}

func TestSetPlan_UnknownValueResolvesToFreeLimits(t *testing.T) {
	s := NewProfileService(newServiceDB(t))
	ctx := context.Background()

	if _, err := s.SetPlan(ctx, "u1", domain.Plan("enterprise")); err != nil {
		t.Fatalf("SetPlan: %v", err)
	}
	ov, err := s.Overview(ctx, "u1")
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if ov.Profile.Plan != domain.Plan("enterprise") {
		t.Fatalf("stored plan = %q, want the raw provider value", ov.Profile.Plan)
	}
	free := entitlement.ResolveLimits(domain.PlanFree)
	if ov.Limits.MaxQueries != free.MaxQueries || ov.Limits.MaxDomains != free.MaxDomains {
		t.Fatalf("limits = %+v, want free-tier limits", ov.Limits)
	}
}

func TestOverview_UsageCountsActiveQueriesOnly(t *testing.T) {
	db := newServiceDB(t)
	ctx := context.Background()

	if _, err := repo.UpsertPlan(ctx, db, "u1", domain.PlanPro); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	if _, err := repo.CreateDomain(ctx, db, "u1", "acme.dev"); err != nil {
		t.Fatalf("seed domain: %v", err)
	}
	active, err := repo.CreateQuery(ctx, db, "u1", "best crm", nil, nil, []string{domain.EngineChatGPT})
	if err != nil {
		t.Fatalf("seed query: %v", err)
	}
	paused, err := repo.CreateQuery(ctx, db, "u1", "best erp", nil, nil, []string{domain.EngineChatGPT})
	if err != nil {
		t.Fatalf("seed query: %v", err)
	}
	if err := repo.UpdateQueryStatus(ctx, db, paused.ID, "u1", domain.QueryStatusPaused); err != nil {
		t.Fatalf("pause query: %v", err)
	}
	_ = active

	s := NewProfileService(db)
	ov, err := s.Overview(ctx, "u1")
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if ov.Usage.Domains != 1 {
		t.Fatalf("Usage.Domains = %d, want 1", ov.Usage.Domains)
	}
	if ov.Usage.ActiveQueries != 1 {
		t.Fatalf("Usage.ActiveQueries = %d, want 1 (paused excluded)", ov.Usage.ActiveQueries)
	}
	if ov.Limits.MaxQueries != 1000 {
		t.Fatalf("Limits.MaxQueries = %d, want pro tier 1000", ov.Limits.MaxQueries)
	}
}

func TestOverview_FreshUserGetsFreeDefaults(t *testing.T) {
	s := NewProfileService(newServiceDB(t))
	ov, err := s.Overview(context.Background(), "fresh")
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if ov.Profile.Plan != domain.PlanFree {
		t.Fatalf("Plan = %q, want free", ov.Profile.Plan)
	}
	if ov.Usage.Domains != 0 || ov.Usage.ActiveQueries != 0 {
		t.Fatalf("Usage = %+v, want zeros", ov.Usage)
	}
}

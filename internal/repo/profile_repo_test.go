package repo

import (
	"context"
	"testing"

	"github.com/aeolytics/aeo-backend/internal/domain"
)

func TestGetProfile_UnknownUserDefaultsToFree(t *testing.T) {
	db := newDomainRepoDB(t, &domain.Profile{})

	p, err := GetProfile(context.Background(), db, "fresh")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p.UserID != "fresh" || p.Plan != domain.PlanFree {
		t.Fatalf("unexpected profile: %+v", p)
	}

	// The synthetic free profile is not persisted.
	var count int64
	if err := db.Model(&domain.Profile{}).Count(&count).Error; err != nil || count != 0 {
		t.Fatalf("persisted rows = %d / %v, want 0", count, err)
	}
}

func TestUpsertPlan_CreateThenUpdate(t *testing.T) {
	db := newDomainRepoDB(t, &domain.Profile{})
	ctx := context.Background()

	p, err := UpsertPlan(ctx, db, "u1", domain.PlanPro)
	if err != nil {
		t.Fatalf("UpsertPlan create: %v", err)
	}
	if p.Plan != domain.PlanPro || p.CreatedAt.IsZero() {
		t.Fatalf("unexpected profile: %+v", p)
	}

	p, err = UpsertPlan(ctx, db, "u1", domain.PlanAgency)
	if err != nil {
		t.Fatalf("UpsertPlan update: %v", err)
	}
	if p.Plan != domain.PlanAgency {
		t.Fatalf("Plan = %q, want agency", p.Plan)
	}

	got, err := GetProfile(ctx, db, "u1")
	if err != nil || got.Plan != domain.PlanAgency {
		t.Fatalf("persisted plan = %q / %v, want agency", got.Plan, err)
	}
	var count int64
	if err := db.Model(&domain.Profile{}).Count(&count).Error; err != nil || count != 1 {
		t.Fatalf("profile rows = %d / %v, want 1", count, err)
	}
}

package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aeolytics/aeo-backend/internal/domain"
)

func TestCreateBrief_DefaultsStatusAndID(t *testing.T) {
	db := newDomainRepoDB(t, &domain.FixItBrief{})

	b, err := CreateBrief(context.Background(), db, &domain.FixItBrief{
		QueryID: "q1",
		UserID:  "u1",
		Title:   "t",
		FAQEntries: []domain.FAQEntry{
			{Question: "q?", Answer: "a.", Keywords: []string{"aeo"}},
		},
	})
	if err != nil {
		t.Fatalf("CreateBrief: %v", err)
	}
	if b.ID == "" || b.Status != domain.BriefStatusGenerated {
		t.Fatalf("unexpected brief: %+v", b)
	}

	got, err := GetBrief(context.Background(), db, b.ID, "u1")
	if err != nil {
		t.Fatalf("GetBrief: %v", err)
	}
	if len(got.FAQEntries) != 1 || got.FAQEntries[0].Keywords[0] != "aeo" {
		t.Fatalf("FAQEntries did not survive the round trip: %+v", got.FAQEntries)
	}
}

func TestListBriefs_NewestFirstScoped(t *testing.T) {
	db := newDomainRepoDB(t, &domain.FixItBrief{})
	ctx := context.Background()

	old := &domain.FixItBrief{ID: "old", QueryID: "q1", UserID: "u1", CreatedAt: time.Now().UTC().Add(-time.Hour), Status: domain.BriefStatusGenerated}
	if err := db.Create(old).Error; err != nil {
		t.Fatalf("seed old: %v", err)
	}
	if _, err := CreateBrief(ctx, db, &domain.FixItBrief{QueryID: "q1", UserID: "u1"}); err != nil {
		t.Fatalf("seed new: %v", err)
	}
	if _, err := CreateBrief(ctx, db, &domain.FixItBrief{QueryID: "q2", UserID: "other"}); err != nil {
		t.Fatalf("seed other user: %v", err)
	}

	out, err := ListBriefs(ctx, db, "u1")
	if err != nil {
		t.Fatalf("ListBriefs: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[len(out)-1].ID != "old" {
		t.Fatalf("oldest brief not last: %+v", out)
	}
}

func TestUpdateBriefStatus_NotFound(t *testing.T) {
	db := newDomainRepoDB(t, &domain.FixItBrief{})
	ctx := context.Background()

	b, err := CreateBrief(ctx, db, &domain.FixItBrief{QueryID: "q1", UserID: "u1"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := UpdateBriefStatus(ctx, db, b.ID, "u1", domain.BriefStatusDownloaded); err != nil {
		t.Fatalf("UpdateBriefStatus: %v", err)
	}
	got, err := GetBrief(ctx, db, b.ID, "u1")
	if err != nil || got.Status != domain.BriefStatusDownloaded {
		t.Fatalf("status = %q / %v, want downloaded", got.Status, err)
	}

	if err := UpdateBriefStatus(ctx, db, b.ID, "intruder", domain.BriefStatusImplemented); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign update err = %v, want ErrNotFound", err)
	}
	if err := UpdateBriefStatus(ctx, db, "missing", "u1", domain.BriefStatusImplemented); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing update err = %v, want ErrNotFound", err)
	}
}

func TestDeleteBriefs(t *testing.T) {
	db := newDomainRepoDB(t, &domain.FixItBrief{})
	ctx := context.Background()

	b1, err := CreateBrief(ctx, db, &domain.FixItBrief{QueryID: "q1", UserID: "u1"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	b2, err := CreateBrief(ctx, db, &domain.FixItBrief{QueryID: "q1", UserID: "u1"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	foreign, err := CreateBrief(ctx, db, &domain.FixItBrief{QueryID: "q2", UserID: "other"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := DeleteBrief(ctx, db, b1.ID, "u1"); err != nil {
		t.Fatalf("DeleteBrief: %v", err)
	}
	if err := DeleteBrief(ctx, db, b1.ID, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}

	n, err := DeleteBriefsByIDs(ctx, db, "u1", []string{b2.ID, foreign.ID})
	if err != nil {
		t.Fatalf("DeleteBriefsByIDs: %v", err)
	}
	if n != 1 {
		t.Fatalf("deleted %d rows, want 1 (foreign skipped)", n)
	}
}

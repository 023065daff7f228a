package repo

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/aeolytics/aeo-backend/internal/domain"
)

func TestCreateQuery_PersistsSerializedSlices(t *testing.T) {
	db := newDomainRepoDB(t, &domain.Query{})
	ctx := context.Background()

	q, err := CreateQuery(ctx, db, "u1", "best crm", nil,
		[]string{"commercial"}, []string{domain.EngineChatGPT, domain.EngineGemini})
	if err != nil {
		t.Fatalf("CreateQuery: %v", err)
	}
	if q.ID == "" || q.Status != domain.QueryStatusActive {
		t.Fatalf("unexpected query: %+v", q)
	}

	got, err := GetQuery(ctx, db, q.ID, "u1")
	if err != nil {
		t.Fatalf("GetQuery: %v", err)
	}
	if len(got.Engines) != 2 || got.Engines[1] != domain.EngineGemini {
		t.Fatalf("Engines did not survive the round trip: %v", got.Engines)
	}
	if len(got.IntentTags) != 1 || got.IntentTags[0] != "commercial" {
		t.Fatalf("IntentTags did not survive the round trip: %v", got.IntentTags)
	}
}

func TestCountActiveQueries_ExcludesPausedAndDeleted(t *testing.T) {
	db := newDomainRepoDB(t, &domain.Query{})
	ctx := context.Background()

	active, err := CreateQuery(ctx, db, "u1", "a", nil, nil, nil)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	paused, err := CreateQuery(ctx, db, "u1", "b", nil, nil, nil)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	deleted, err := CreateQuery(ctx, db, "u1", "c", nil, nil, nil)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := UpdateQueryStatus(ctx, db, paused.ID, "u1", domain.QueryStatusPaused); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if err := SoftDeleteQuery(ctx, db, deleted.ID, "u1"); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	quota, err := CountActiveQueries(ctx, db, "u1")
	if err != nil || quota != 1 {
		t.Fatalf("CountActiveQueries = %d / %v, want 1", quota, err)
	}
	// CountQueries keeps paused rows, drops deleted ones.
	total, err := CountQueries(ctx, db, "u1")
	if err != nil || total != 2 {
		t.Fatalf("CountQueries = %d / %v, want 2", total, err)
	}

	ids, err := ListQueryIDs(ctx, db, "u1")
	if err != nil {
		t.Fatalf("ListQueryIDs: %v", err)
	}
	sort.Strings(ids)
	want := []string{active.ID, paused.ID}
	sort.Strings(want)
	if len(ids) != 2 || ids[0] != want[0] || ids[1] != want[1] {
		t.Fatalf("ListQueryIDs = %v, want %v", ids, want)
	}
}

func TestUpdateQueryStatus_DeletedRowsAreImmutable(t *testing.T) {
	db := newDomainRepoDB(t, &domain.Query{})
	ctx := context.Background()

	q, err := CreateQuery(ctx, db, "u1", "a", nil, nil, nil)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := SoftDeleteQuery(ctx, db, q.ID, "u1"); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	// A deleted query cannot be revived or re-deleted.
	if err := UpdateQueryStatus(ctx, db, q.ID, "u1", domain.QueryStatusActive); !errors.Is(err, ErrNotFound) {
		t.Fatalf("revive err = %v, want ErrNotFound", err)
	}
	if err := SoftDeleteQuery(ctx, db, q.ID, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
	if _, err := GetQuery(ctx, db, q.ID, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetQuery after delete err = %v, want ErrNotFound", err)
	}
}

func TestListQueriesPage_Offsets(t *testing.T) {
	db := newDomainRepoDB(t, &domain.Query{})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := CreateQuery(ctx, db, "u1", "q", nil, nil, nil); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	first, err := ListQueriesPage(ctx, db, "u1", 0, 2)
	if err != nil || len(first) != 2 {
		t.Fatalf("page 1 = %d rows / %v, want 2", len(first), err)
	}
	last, err := ListQueriesPage(ctx, db, "u1", 4, 2)
	if err != nil || len(last) != 1 {
		t.Fatalf("final page = %d rows / %v, want 1", len(last), err)
	}
	beyond, err := ListQueriesPage(ctx, db, "u1", 10, 2)
	if err != nil || len(beyond) != 0 {
		t.Fatalf("past-the-end page = %d rows / %v, want 0", len(beyond), err)
	}
}

func TestTouchQueryRun(t *testing.T) {
	db := newDomainRepoDB(t, &domain.Query{})
	ctx := context.Background()

	q, err := CreateQuery(ctx, db, "u1", "a", nil, nil, nil)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	ran := time.Date(2025, 6, 10, 8, 30, 0, 0, time.UTC)
	if err := TouchQueryRun(ctx, db, q.ID, "u1", ran); err != nil {
		t.Fatalf("TouchQueryRun: %v", err)
	}
	got, err := GetQuery(ctx, db, q.ID, "u1")
	if err != nil {
		t.Fatalf("GetQuery: %v", err)
	}
	if got.LastRun == nil || !got.LastRun.Equal(ran) {
		t.Fatalf("LastRun = %v, want %v", got.LastRun, ran)
	}
	if err := TouchQueryRun(ctx, db, "missing", "u1", ran); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing err = %v, want ErrNotFound", err)
	}
}

// Package services – BulkService
//
// This file implements the bulk operation executor: one logical action
// (delete, update, or process) applied to a list of entity ids in fixed-size
// batches. Batches run strictly sequentially with a short pause between them
// to bound load on the store; a failing batch converts every id in it to an
// accounted failure and processing continues with the next batch. Progress is
// observable through a callback fired after every batch.
package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/aeolytics/aeo-backend/internal/domain"
	"github.com/aeolytics/aeo-backend/internal/entitlement"
	"github.com/aeolytics/aeo-backend/internal/pipeline"
	"github.com/aeolytics/aeo-backend/internal/repo"
)

// Bulk operation types.
const (
	BulkOpDelete  = "delete"
	BulkOpUpdate  = "update"
	BulkOpProcess = "process"
)

// Bulk entity types.
const (
	BulkEntityQuery    = "query"
	BulkEntityCitation = "citation"
	BulkEntityBrief    = "brief"
	BulkEntityDomain   = "domain"
)

// QueryUpdate is the closed set of query fields a bulk update may touch.
type QueryUpdate struct {
	Status *string `json:"status,omitempty"`
}

// DomainUpdate is the closed set of domain fields a bulk update may touch.
type DomainUpdate struct {
	Status *string `json:"status,omitempty"`
}

// BulkRequest describes one bulk action.
type BulkRequest struct {
	Op     string   `json:"op"`
	Entity string   `json:"entity"`
	IDs    []string `json:"ids"`

	QueryUpdate  *QueryUpdate  `json:"query_update,omitempty"`
	DomainUpdate *DomainUpdate `json:"domain_update,omitempty"`
}

// BulkResult is the aggregate outcome of a bulk action. Success is true iff
// no id failed.
type BulkResult struct {
	Success      bool     `json:"success"`
	SuccessCount int      `json:"success_count"`
	FailureCount int      `json:"failure_count"`
	Errors       []string `json:"errors"`
}

// Progress is invoked after every batch with the number of ids processed so
// far and the total. It always fires at least once for a non-empty id list.
type Progress func(processed, total int)

// BulkStore applies one batch of a bulk request. Implementations may issue a
// single bulk statement or per-id statements; the executor only requires that
// an error means the whole batch failed.
type BulkStore interface {
	Apply(ctx context.Context, userID string, req BulkRequest, batch []string) error
}

// BulkService runs bulk requests against the store in bounded batches.
type BulkService struct {
	Store BulkStore

	// BatchSize caps ids per batch; <= 0 falls back to 10.
	BatchSize int
	// Pause is the delay between consecutive batches; zero disables it.
	Pause time.Duration
}

// NewBulkService constructs a BulkService over the GORM-backed store with the
// reference batch size and a short inter-batch pause.
func NewBulkService(db *gorm.DB, submitter pipeline.Submitter) *BulkService {
	return &BulkService{
		Store:     &gormBulkStore{DB: db, Submitter: submitter},
		BatchSize: 10,
		Pause:     150 * time.Millisecond,
	}
}

func (s *BulkService) batchSize() int {
	if s.BatchSize > 0 {
		return s.BatchSize
	}
	return 10
}

// Execute runs a bulk request for userID. Plans without the bulk_operations
// feature are refused before any store call. An empty id list returns an
// immediate zero-count success. Cancellation of ctx stops before the next
// batch; ids not yet attempted are counted as failures.
func (s *BulkService) Execute(ctx context.Context, userID string, plan domain.Plan, req BulkRequest, progress Progress) (*BulkResult, error) {
	tr := otel.Tracer("services/BulkService")
	ctx, span := tr.Start(ctx, "Execute",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("bulk.op", req.Op),
			attribute.String("bulk.entity", req.Entity),
			attribute.Int("bulk.ids", len(req.IDs)),
		),
	)
	defer span.End()

	if !entitlement.CanAccessFeature(plan, entitlement.FeatureBulkOps) {
		return nil, ErrNotEntitled
	}
	if err := validateBulkRequest(req); err != nil {
		return nil, err
	}

	res := &BulkResult{Errors: []string{}}
	total := len(req.IDs)
	if total == 0 {
		res.Success = true
		return res, nil
	}

	size := s.batchSize()
	processed := 0
	for start := 0; start < total; start += size {
		if start > 0 && s.Pause > 0 {
			select {
			case <-ctx.Done():
				res.FailureCount += total - processed
				res.Errors = append(res.Errors, ctx.Err().Error())
				res.Success = false
				return res, nil
			case <-time.After(s.Pause):
			}
		}

		end := start + size
		if end > total {
			end = total
		}
		batch := req.IDs[start:end]

		if err := s.Store.Apply(ctx, userID, req, batch); err != nil {
			res.FailureCount += len(batch)
			res.Errors = append(res.Errors, fmt.Sprintf("batch %d: %v", start/size+1, err))
		} else {
			res.SuccessCount += len(batch)
		}
		processed += len(batch)
		if progress != nil {
			progress(processed, total)
		}
	}

	res.Success = res.FailureCount == 0
	return res, nil
}

// validateBulkRequest rejects op/entity combinations outside the supported
// matrix before anything touches the store.
func validateBulkRequest(req BulkRequest) error {
	switch req.Op {
	case BulkOpDelete:
		switch req.Entity {
		case BulkEntityQuery, BulkEntityCitation, BulkEntityBrief, BulkEntityDomain:
			return nil
		}
	case BulkOpUpdate:
		switch req.Entity {
		case BulkEntityQuery:
			if req.QueryUpdate == nil || req.QueryUpdate.Status == nil {
				return ErrUnknownBulkOp
			}
			if st := *req.QueryUpdate.Status; st != domain.QueryStatusActive && st != domain.QueryStatusPaused {
				return ErrInvalidStatus
			}
			return nil
		case BulkEntityDomain:
			if req.DomainUpdate == nil || req.DomainUpdate.Status == nil {
				return ErrUnknownBulkOp
			}
			switch *req.DomainUpdate.Status {
			case domain.DomainStatusPending, domain.DomainStatusActive, domain.DomainStatusError:
				return nil
			}
			return ErrInvalidStatus
		}
	case BulkOpProcess:
		if req.Entity == BulkEntityQuery {
			return nil
		}
	}
	return ErrUnknownBulkOp
}

// gormBulkStore is the production BulkStore over the repository layer.
type gormBulkStore struct {
	DB        *gorm.DB
	Submitter pipeline.Submitter
}

// Apply executes one batch. Deletes use a single owner-scoped bulk statement;
// updates and soft deletes run per id so ownership filtering stays in the
// repository functions; process submits the batch to the pipeline and stamps
// LastRun.
func (g *gormBulkStore) Apply(ctx context.Context, userID string, req BulkRequest, batch []string) error {
	switch req.Op {
	case BulkOpDelete:
		switch req.Entity {
		case BulkEntityCitation:
			_, err := repo.DeleteCitationsByIDs(ctx, g.DB, userID, batch)
			return err
		case BulkEntityBrief:
			_, err := repo.DeleteBriefsByIDs(ctx, g.DB, userID, batch)
			return err
		case BulkEntityQuery:
			for _, id := range batch {
				if err := repo.SoftDeleteQuery(ctx, g.DB, id, userID); err != nil && err != gorm.ErrRecordNotFound {
					return err
				}
			}
			return nil
		case BulkEntityDomain:
			for _, id := range batch {
				if err := repo.DeleteDomain(ctx, g.DB, id, userID); err != nil && err != gorm.ErrRecordNotFound {
					return err
				}
			}
			return nil
		}
	case BulkOpUpdate:
		switch req.Entity {
		case BulkEntityQuery:
			for _, id := range batch {
				if err := repo.UpdateQueryStatus(ctx, g.DB, id, userID, *req.QueryUpdate.Status); err != nil && err != gorm.ErrRecordNotFound {
					return err
				}
			}
			return nil
		case BulkEntityDomain:
			for _, id := range batch {
				if err := repo.UpdateDomainStatus(ctx, g.DB, id, userID, *req.DomainUpdate.Status); err != nil && err != gorm.ErrRecordNotFound {
					return err
				}
			}
			return nil
		}
	case BulkOpProcess:
		engines := map[string]struct{}{}
		now := time.Now().UTC()
		for _, id := range batch {
			q, err := repo.GetQuery(ctx, g.DB, id, userID)
			if err != nil {
				continue // stale ids are skipped, not batch failures
			}
			for _, e := range q.Engines {
				engines[e] = struct{}{}
			}
			_ = repo.TouchQueryRun(ctx, g.DB, id, userID, now)
		}
		all := make([]string, 0, len(engines))
		for e := range engines {
			all = append(all, e)
		}
		sort.Strings(all)
		return g.Submitter.Submit(ctx, userID, batch, all)
	}
	return ErrUnknownBulkOp
}

// Package services – QueryService
//
// This file implements QueryService, which owns the lifecycle of monitored
// queries. It validates and normalizes query text, enforces the plan query
// quota before any insert, silently filters requested engines down to the
// plan's allowed set (creation proceeds with the reduced set, even when it
// ends up empty), soft-deletes, and submits run requests to the external
// processing pipeline.
//
// Observability: the write paths are OpenTelemetry-instrumented; spans carry
// the acting user id.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
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

// QueryService coordinates query persistence, entitlement filtering, and
// pipeline submission.
type QueryService struct {
	DB        *gorm.DB
	Submitter pipeline.Submitter

	// MaxTextRunes caps stored query text by rune length; 0 disables the cap.
	MaxTextRunes int
}

// NewQueryService constructs a QueryService with a no-op pipeline submitter
// unless one is injected afterwards.
func NewQueryService(db *gorm.DB) *QueryService {
	return &QueryService{DB: db, Submitter: pipeline.NopSubmitter{}, MaxTextRunes: 500}
}

// Create persists a new query for userID. Text is normalized and must be
// non-empty; the plan quota is checked before the insert; requested engines
// outside the plan are dropped without failing the call. A nil or empty
// engine request defaults to the plan's full allowed set.
func (s *QueryService) Create(ctx context.Context, userID string, plan domain.Plan, text string, domainID *string, tags, engines []string) (*domain.Query, error) {
	tr := otel.Tracer("services/QueryService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	text = normalizeText(text)
	if text == "" {
		return nil, ErrEmptyQueryText
	}
	if s.MaxTextRunes > 0 && len([]rune(text)) > s.MaxTextRunes {
		text = string([]rune(text)[:s.MaxTextRunes])
	}

	limits := entitlement.ResolveLimits(plan)
	active, err := repo.CountActiveQueries(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	if active >= int64(limits.MaxQueries) {
		return nil, ErrQuotaExceeded
	}

	if len(engines) == 0 {
		engines = limits.AllowedEngines
	} else {
		engines = entitlement.FilterEngines(plan, engines)
	}

	if domainID != nil && *domainID != "" {
		if _, err := repo.GetDomain(ctx, s.DB, *domainID, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDomainNotFound
			}
			return nil, err
		}
	} else {
		domainID = nil
	}

	q, err := repo.CreateQuery(ctx, s.DB, userID, text, domainID, tags, engines)
	if err != nil {
		return nil, err
	}
	if q.DomainID != nil {
		// Counter drift here is cosmetic; ignore the error.
		_ = repo.AdjustDomainQueryCount(ctx, s.DB, *q.DomainID, userID, 1)
	}
	return q, nil
}

// List returns all non-deleted queries for a user, newest first.
func (s *QueryService) List(ctx context.Context, userID string) ([]domain.Query, error) {
	return repo.ListQueries(ctx, s.DB, userID)
}

// ListPage returns a page of non-deleted queries and the total count.
// It applies defaults for invalid page/pageSize.
func (s *QueryService) ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.Query, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountQueries(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Query{}, 0, nil
	}

	items, err := repo.ListQueriesPage(ctx, s.DB, userID, offset, pageSize)
	return items, total, err
}

// SetStatus pauses or resumes a query. Only "active" and "paused" are
// accepted here; deletion goes through Delete.
func (s *QueryService) SetStatus(ctx context.Context, userID, id, status string) error {
	if status != domain.QueryStatusActive && status != domain.QueryStatusPaused {
		return ErrInvalidStatus
	}
	err := repo.UpdateQueryStatus(ctx, s.DB, id, userID, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrQueryNotFound
	}
	return err
}

// Delete soft-deletes a query: the row stays but disappears from every read,
// and its citations drop out of aggregations. The domain's denormalized
// query counter is decremented.
func (s *QueryService) Delete(ctx context.Context, userID, id string) error {
	q, err := repo.GetQuery(ctx, s.DB, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQueryNotFound
		}
		return err
	}
	if err := repo.SoftDeleteQuery(ctx, s.DB, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQueryNotFound
		}
		return err
	}
	if q.DomainID != nil {
		_ = repo.AdjustDomainQueryCount(ctx, s.DB, *q.DomainID, userID, -1)
	}
	return nil
}

// Run submits one query to the external processing pipeline using the engine
// set persisted at creation time, then stamps LastRun. Citations for the run
// arrive later through the ingest endpoint.
func (s *QueryService) Run(ctx context.Context, userID, id string) error {
	tr := otel.Tracer("services/QueryService")
	ctx, span := tr.Start(ctx, "Run",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("query.id", id),
		),
	)
	defer span.End()

	q, err := repo.GetQuery(ctx, s.DB, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQueryNotFound
		}
		return err
	}
	if err := s.Submitter.Submit(ctx, userID, []string{q.ID}, q.Engines); err != nil {
		return err
	}
	return repo.TouchQueryRun(ctx, s.DB, id, userID, time.Now().UTC())
}

// normalizeText trims whitespace and collapses runs of whitespace to one space.
func normalizeText(s string) string {
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
}

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)

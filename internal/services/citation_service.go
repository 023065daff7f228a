// Package services – CitationService
//
// This file implements CitationService, which owns reads and ingest of
// citation rows and assembles the dashboard payload from the pure aggregate
// package. Reads are always bounded: the service caps every fetch at
// FetchLimit rows (run_date descending) so a dashboard render cannot pull
// unbounded history.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/aeolytics/aeo-backend/internal/aggregate"
	"github.com/aeolytics/aeo-backend/internal/domain"
	"github.com/aeolytics/aeo-backend/internal/entitlement"
	"github.com/aeolytics/aeo-backend/internal/repo"
)

// DefaultFetchLimit bounds citation reads when no explicit limit is
// configured. It matches the reference dashboard behavior of showing the 100
// most recent checks.
const DefaultFetchLimit = 100

// Dashboard is the aggregated payload behind the main dashboard view.
type Dashboard struct {
	Stats     aggregate.Stats           `json:"stats"`
	Positions aggregate.PositionBuckets `json:"positions"`
	Top       []aggregate.QueryRank     `json:"top_queries"`
	Trend     []aggregate.TrendPoint    `json:"trend,omitempty"`
}

// IngestInput is one citation record delivered by the processing pipeline.
type IngestInput struct {
	QueryID         string
	Engine          string
	ResponseText    string
	Cited           bool
	Position        *string
	ConfidenceScore float64
	RunDate         time.Time
}

// CitationService reads, ingests, and deletes citation rows.
type CitationService struct {
	DB *gorm.DB

	// FetchLimit caps every citation read; <= 0 falls back to
	// DefaultFetchLimit.
	FetchLimit int
}

// NewCitationService constructs a CitationService with the default read cap.
func NewCitationService(db *gorm.DB) *CitationService {
	return &CitationService{DB: db, FetchLimit: DefaultFetchLimit}
}

func (s *CitationService) limit() int {
	if s.FetchLimit > 0 {
		return s.FetchLimit
	}
	return DefaultFetchLimit
}

// ListRecent returns the user's most recent citations (run_date descending),
// bounded by the configured cap and optionally filtered by query or engine.
func (s *CitationService) ListRecent(ctx context.Context, userID string, f repo.CitationFilter) ([]domain.Citation, error) {
	return repo.ListRecentCitations(ctx, s.DB, userID, f, s.limit())
}

// Ingest records one citation produced by the pipeline. The target query must
// exist and not be soft-deleted; rows for unknown queries are refused so the
// store never accumulates orphans from a bad pipeline run. The owning
// domain's counters are bumped when the query has one.
func (s *CitationService) Ingest(ctx context.Context, userID string, in IngestInput) (*domain.Citation, error) {
	tr := otel.Tracer("services/CitationService")
	ctx, span := tr.Start(ctx, "Ingest",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("query.id", in.QueryID),
			attribute.String("engine", in.Engine),
		),
	)
	defer span.End()

	q, err := repo.GetQuery(ctx, s.DB, in.QueryID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQueryNotFound
		}
		return nil, err
	}

	score := in.ConfidenceScore
	if score < 0 {
		score = 0
	} else if score > 1 {
		score = 1
	}

	c := &domain.Citation{
		QueryID:         q.ID,
		UserID:          userID,
		Engine:          in.Engine,
		ResponseText:    in.ResponseText,
		Cited:           in.Cited,
		Position:        in.Position,
		ConfidenceScore: score,
		RunDate:         in.RunDate,
	}
	created, err := repo.CreateCitation(ctx, s.DB, c)
	if err != nil {
		return nil, err
	}
	if q.DomainID != nil {
		_ = repo.TouchDomainCheck(ctx, s.DB, *q.DomainID, userID, created.RunDate)
	}
	return created, nil
}

// Delete hard-deletes one citation owned by userID.
func (s *CitationService) Delete(ctx context.Context, userID, id string) error {
	err := repo.DeleteCitation(ctx, s.DB, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCitationNotFound
	}
	return err
}

// BuildDashboard fetches the user's recent citations and queries and computes
// the dashboard aggregates. The trend series covers `days` calendar days
// ending today and is omitted for plans without the trend_analytics feature;
// everything else renders for every plan, degrading to zeros with no data.
func (s *CitationService) BuildDashboard(ctx context.Context, userID string, plan domain.Plan, days int) (*Dashboard, error) {
	if days <= 0 {
		days = 7
	}

	citations, err := repo.ListRecentCitations(ctx, s.DB, userID, repo.CitationFilter{}, s.limit())
	if err != nil {
		return nil, err
	}
	queries, err := repo.ListQueries(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Stats:     aggregate.ComputeStats(citations),
		Positions: aggregate.PositionDistribution(citations),
		Top:       aggregate.TopQueries(queries, citations, 5),
	}
	if entitlement.CanAccessFeature(plan, entitlement.FeatureTrends) {
		d.Trend = aggregate.TrendSeries(citations, days, time.Now().UTC())
	}
	return d, nil
}

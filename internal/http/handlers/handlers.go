// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the service contracts the handlers consume and the shared
// wiring. Handlers are transport-thin: they validate input, resolve the acting
// user and plan, call application services, and translate results (including
// the sentinel service errors) into HTTP responses with stable error codes.
package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aeolytics/aeo-backend/internal/domain"
	"github.com/aeolytics/aeo-backend/internal/repo"
	"github.com/aeolytics/aeo-backend/internal/services"
	"github.com/aeolytics/aeo-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// ProfileService resolves the caller's plan and account overview.
type ProfileService interface {
	// PlanFor returns the caller's plan, free when unknown.
	PlanFor(ctx context.Context, userID string) domain.Plan
	// Overview returns profile, resolved limits, and usage.
	Overview(ctx context.Context, userID string) (*services.AccountOverview, error)
	// SetPlan records the plan supplied by the billing provider.
	SetPlan(ctx context.Context, userID string, plan domain.Plan) (*domain.Profile, error)
}

// DomainService defines domain lifecycle operations consumed by HTTP handlers.
type DomainService interface {
	// Create registers a tracked domain behind the quota and duplicate gates.
	Create(ctx context.Context, userID string, plan domain.Plan, hostname string) (*domain.Domain, error)
	// List returns all domains for a user.
	List(ctx context.Context, userID string) ([]domain.Domain, error)
	// Delete hard-deletes a domain.
	Delete(ctx context.Context, userID, id string) error
}

// QueryService defines query lifecycle operations consumed by HTTP handlers.
type QueryService interface {
	// Create persists a query with plan-filtered engines.
	Create(ctx context.Context, userID string, plan domain.Plan, text string, domainID *string, tags, engines []string) (*domain.Query, error)
	// List returns all non-deleted queries.
	List(ctx context.Context, userID string) ([]domain.Query, error)
	// ListPage returns a page of non-deleted queries and the total count.
	ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.Query, int64, error)
	// SetStatus pauses or resumes a query.
	SetStatus(ctx context.Context, userID, id, status string) error
	// Delete soft-deletes a query.
	Delete(ctx context.Context, userID, id string) error
	// Run submits a query to the processing pipeline.
	Run(ctx context.Context, userID, id string) error
}

// CitationService defines citation reads, pipeline ingest, and dashboard
// assembly.
type CitationService interface {
	// ListRecent returns the bounded, run_date-descending citation feed.
	ListRecent(ctx context.Context, userID string, f repo.CitationFilter) ([]domain.Citation, error)
	// Ingest records one pipeline-produced citation.
	Ingest(ctx context.Context, userID string, in services.IngestInput) (*domain.Citation, error)
	// Delete hard-deletes a citation.
	Delete(ctx context.Context, userID, id string) error
	// BuildDashboard computes the dashboard aggregates.
	BuildDashboard(ctx context.Context, userID string, plan domain.Plan, days int) (*services.Dashboard, error)
}

// BriefService defines Fix-It brief operations.
type BriefService interface {
	// Generate produces and persists a brief (feature-gated).
	Generate(ctx context.Context, userID string, plan domain.Plan, queryID, instruction string) (*domain.FixItBrief, error)
	// List returns all briefs for a user.
	List(ctx context.Context, userID string) ([]domain.FixItBrief, error)
	// Get returns one brief.
	Get(ctx context.Context, userID, id string) (*domain.FixItBrief, error)
	// Advance moves a brief forward along the status ladder.
	Advance(ctx context.Context, userID, id, status string) (*domain.FixItBrief, error)
	// Delete hard-deletes a brief.
	Delete(ctx context.Context, userID, id string) error
}

// BulkService runs batched bulk operations.
type BulkService interface {
	// Execute applies one bulk request in sequential batches.
	Execute(ctx context.Context, userID string, plan domain.Plan, req services.BulkRequest, progress services.Progress) (*services.BulkResult, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for the public API. It depends on abstract
// service interfaces to keep transport concerns separate from business logic.
type Handlers struct {
	profileSvc  ProfileService
	domainSvc   DomainService
	querySvc    QueryService
	citationSvc CitationService
	briefSvc    BriefService
	bulkSvc     BulkService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(profileSvc ProfileService, domainSvc DomainService, querySvc QueryService, citationSvc CitationService, briefSvc BriefService, bulkSvc BulkService) *Handlers {
	return &Handlers{
		profileSvc:  profileSvc,
		domainSvc:   domainSvc,
		querySvc:    querySvc,
		citationSvc: citationSvc,
		briefSvc:    briefSvc,
		bulkSvc:     bulkSvc,
	}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

// plan resolves the caller's plan for entitlement-gated handlers.
func (h *Handlers) plan(c *gin.Context) domain.Plan {
	return h.profileSvc.PlanFor(c.Request.Context(), userID(c))
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

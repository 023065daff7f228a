// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/aeolytics/aeo-backend/internal/brief"
	"github.com/aeolytics/aeo-backend/internal/config"
	"github.com/aeolytics/aeo-backend/internal/domain"
	"github.com/aeolytics/aeo-backend/internal/http/handlers"
	"github.com/aeolytics/aeo-backend/internal/http/middleware"
	"github.com/aeolytics/aeo-backend/internal/pipeline"
	"github.com/aeolytics/aeo-backend/internal/repo"
	"github.com/aeolytics/aeo-backend/internal/services"
)

// domainRepoShim adapts the repository free functions to the
// services.DomainRepo interface expected by the DomainService. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type domainRepoShim struct{}

// CreateDomain proxies repo.CreateDomain.
func (domainRepoShim) CreateDomain(ctx context.Context, db *gorm.DB, userID, hostname string) (*domain.Domain, error) {
	return repo.CreateDomain(ctx, db, userID, hostname)
}

// ListDomains proxies repo.ListDomains.
func (domainRepoShim) ListDomains(ctx context.Context, db *gorm.DB, userID string) ([]domain.Domain, error) {
	return repo.ListDomains(ctx, db, userID)
}

// GetDomain proxies repo.GetDomain.
func (domainRepoShim) GetDomain(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Domain, error) {
	return repo.GetDomain(ctx, db, id, userID)
}

// FindDomainByHostname proxies repo.FindDomainByHostname.
func (domainRepoShim) FindDomainByHostname(ctx context.Context, db *gorm.DB, userID, hostname string) (*domain.Domain, error) {
	return repo.FindDomainByHostname(ctx, db, userID, hostname)
}

// CountDomains proxies repo.CountDomains (quota support).
func (domainRepoShim) CountDomains(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return repo.CountDomains(ctx, db, userID)
}

// DeleteDomain proxies repo.DeleteDomain.
func (domainRepoShim) DeleteDomain(ctx context.Context, db *gorm.DB, id, userID string) error {
	return repo.DeleteDomain(ctx, db, id, userID)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), idempotency and rate
// limiting, CORS and security headers, health and metrics endpoints, and then
// mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per user/IP, bypass on replay)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key", // project-specific sensitive header example
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
		},
		func(ctx context.Context, userID, scope, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, userID, scope, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/pipeline/generators
	var submitter pipeline.Submitter = pipeline.NopSubmitter{}
	if cfg.PipelineEndpoint != "" {
		submitter = pipeline.NewHTTPSubmitter(cfg.PipelineEndpoint, cfg.PipelineAPIKey)
	}

	profileSvc := services.NewProfileService(db)
	domainSvc := services.NewDomainService(db, domainRepoShim{})
	querySvc := &services.QueryService{
		DB:           db,
		Submitter:    submitter,
		MaxTextRunes: 500,
	}
	citationSvc := &services.CitationService{
		DB:         db,
		FetchLimit: cfg.CitationFetchLimit,
	}
	briefSvc := services.NewBriefService(db)
	if cfg.BriefEndpoint != "" {
		briefSvc.Generator = brief.NewOpenAIGenerator(cfg.BriefEndpoint, cfg.BriefAPIKey, cfg.BriefModel)
	}
	bulkSvc := services.NewBulkService(db, submitter)
	bulkSvc.BatchSize = cfg.BulkBatchSize
	bulkSvc.Pause = cfg.BulkPause

	h := handlers.New(profileSvc, domainSvc, querySvc, citationSvc, briefSvc, bulkSvc)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Account
		api.GET("/me", h.Me)
		api.PUT("/me/plan", h.SetPlan)

		// Domains
		api.POST("/domains", h.CreateDomain)
		api.GET("/domains", h.ListDomains)
		api.DELETE("/domains/:id", h.DeleteDomain)

		// Queries
		api.POST("/queries", h.CreateQuery)
		api.GET("/queries", h.ListQueries)
		api.PATCH("/queries/:id/status", h.UpdateQueryStatus)
		api.DELETE("/queries/:id", h.DeleteQuery)
		api.POST("/queries/:id/run", h.RunQuery)

		// Citations and dashboard
		api.GET("/citations", h.ListCitations)
		api.POST("/citations", h.IngestCitation)
		api.DELETE("/citations/:id", h.DeleteCitation)
		api.GET("/dashboard", h.Dashboard)

		// Fix-It briefs
		api.POST("/briefs", h.GenerateBrief)
		api.GET("/briefs", h.ListBriefs)
		api.GET("/briefs/:id", h.GetBrief)
		api.PATCH("/briefs/:id/status", h.AdvanceBrief)
		api.DELETE("/briefs/:id", h.DeleteBrief)

		// Bulk operations
		api.POST("/bulk", h.ExecuteBulk)

		// Exports (compressed; CSV payloads shrink well)
		exports := api.Group("/exports", gzip.Gzip(gzip.DefaultCompression))
		{
			exports.GET("/csv/:entity", h.ExportCSV)
			exports.GET("/json/:entity", h.ExportJSON)
			exports.GET("/report", h.VisibilityReport)
		}
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}

// Citation HTTP handlers: the recent-citations feed, the pipeline ingest
// callback, citation deletion, and the aggregated dashboard.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aeolytics/aeo-backend/internal/domain"
	"github.com/aeolytics/aeo-backend/internal/repo"
	"github.com/aeolytics/aeo-backend/internal/services"
	"github.com/aeolytics/aeo-backend/internal/utils"
)

// IngestCitationRequest is one citation result posted back by the processing
// pipeline.
type IngestCitationRequest struct {
	QueryID         string  `json:"query_id" binding:"required"`
	Engine          string  `json:"engine" binding:"required" example:"ChatGPT"`
	ResponseText    string  `json:"response_text,omitempty"`
	Cited           bool    `json:"cited"`
	Position        *string `json:"position,omitempty" example:"top"`
	ConfidenceScore float64 `json:"confidence_score" example:"0.92"`
	RunDate         string  `json:"run_date,omitempty" example:"2025-06-01T09:30:00Z"`
}

// ListCitationsResponse wraps the bounded recent-citations feed.
type ListCitationsResponse struct {
	Citations []domain.Citation `json:"citations"`
	Count     int               `json:"count"`
}

// ListCitations godoc
// @ID          listCitations
// @Summary     List recent citations
// @Description Returns the most recent citation results (run date descending, bounded). Citations of deleted queries are excluded.
// @Tags        Citations
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       query_id   query   string  false "Filter by query ID"
// @Param       engine     query   string  false "Filter by engine"       example(ChatGPT)
// @Param       since      query   string  false "Only runs at/after this RFC3339 time"
//
// @Success     200  {object}  handlers.ListCitationsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /citations [get]
func (h *Handlers) ListCitations(c *gin.Context) {
	f := repo.CitationFilter{
		QueryID: c.Query("query_id"),
		Engine:  c.Query("engine"),
	}
	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			fail(c, http.StatusBadRequest, ErrCodeValidationFailed, "since must be RFC3339")
			return
		}
		f.Since = t
	}
	items, err := h.citationSvc.ListRecent(c.Request.Context(), userID(c), f)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListCitationsResponse{Citations: items, Count: len(items)})
}

// IngestCitation godoc
// @ID          ingestCitation
// @Summary     Ingest a pipeline citation result
// @Description Records one citation result produced by the processing pipeline and stamps the owning domain.
// @Tags        Citations
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.IngestCitationRequest  true  "Citation result"
//
// @Success     201  {object}  domain.Citation
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Query not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /citations [post]
func (h *Handlers) IngestCitation(c *gin.Context) {
	var req IngestCitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	in := services.IngestInput{
		QueryID:         req.QueryID,
		Engine:          req.Engine,
		ResponseText:    req.ResponseText,
		Cited:           req.Cited,
		Position:        req.Position,
		ConfidenceScore: req.ConfidenceScore,
	}
	if req.RunDate != "" {
		t, err := time.Parse(time.RFC3339, req.RunDate)
		if err != nil {
			fail(c, http.StatusBadRequest, ErrCodeValidationFailed, "run_date must be RFC3339")
			return
		}
		in.RunDate = t
	}
	cit, err := h.citationSvc.Ingest(c.Request.Context(), userID(c), in)
	switch {
	case errors.Is(err, services.ErrQueryNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "query not found")
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeStoreFailure, err.Error())
	default:
		ok(c, http.StatusCreated, cit)
	}
}

// DeleteCitation godoc
// @ID          deleteCitation
// @Summary     Delete a citation
// @Tags        Citations
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Citation ID"
//
// @Success     204  {string}  string "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /citations/{id} [delete]
func (h *Handlers) DeleteCitation(c *gin.Context) {
	err := h.citationSvc.Delete(c.Request.Context(), userID(c), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrCitationNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "citation not found")
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeStoreFailure, err.Error())
	default:
		noContent(c)
	}
}

// Dashboard godoc
// @ID          dashboard
// @Summary     Visibility dashboard
// @Description Aggregated citation stats: visibility score, per-engine rates, position distribution, top queries, and (plan permitting) a daily trend series.
// @Tags        Citations
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       days       query   int     false "Trend window in days"   minimum(1) maximum(90) default(7)
//
// @Success     200  {object}  services.Dashboard
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /dashboard [get]
func (h *Handlers) Dashboard(c *gin.Context) {
	days := utils.AtoiDefault(c.Query("days"), 7)
	if days < 1 {
		days = 1
	}
	if days > 90 {
		days = 90
	}
	d, err := h.citationSvc.BuildDashboard(c.Request.Context(), userID(c), h.plan(c), days)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, d)
}

// Query HTTP handlers.
//
// This file exposes REST endpoints for monitored-query resources:
//   - POST   /queries              (create, quota-gated, engine-filtered)
//   - GET    /queries              (list, paginated)
//   - PATCH  /queries/{id}/status  (pause/resume)
//   - DELETE /queries/{id}         (soft delete)
//   - POST   /queries/{id}/run     (submit to the processing pipeline)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aeolytics/aeo-backend/internal/domain"
	"github.com/aeolytics/aeo-backend/internal/services"
)

// CreateQueryRequest is the JSON payload for creating a query. Engines
// outside the caller's plan are silently dropped; an empty list defaults to
// everything the plan allows.
type CreateQueryRequest struct {
	Text       string   `json:"text" binding:"required,min=1" example:"best crm for startups"`
	DomainID   *string  `json:"domain_id,omitempty"`
	IntentTags []string `json:"intent_tags,omitempty" example:"commercial"`
	Engines    []string `json:"engines,omitempty" example:"ChatGPT,Perplexity"`
}

// UpdateQueryStatusRequest is the JSON payload for pausing or resuming.
type UpdateQueryStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active paused" example:"paused"`
}

// ListQueriesResponse wraps a page of queries and pagination information.
type ListQueriesResponse struct {
	Queries    []domain.Query `json:"queries"`
	Pagination Pagination     `json:"pagination"`
}

// CreateQuery godoc
// @ID          createQuery
// @Summary     Create a monitored query
// @Description Creates a query for the current user. Requested engines are intersected with the plan's allowed set.
// @Tags        Queries
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.CreateQueryRequest  true  "Create query payload"
//
// @Success     201  {object}  domain.Query
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     402  {object}  handlers.ErrorResponse  "Quota exceeded"
// @Failure     404  {object}  handlers.ErrorResponse  "Domain not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /queries [post]
func (h *Handlers) CreateQuery(c *gin.Context) {
	var req CreateQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	q, err := h.querySvc.Create(c.Request.Context(), userID(c), h.plan(c), req.Text, req.DomainID, req.IntentTags, req.Engines)
	switch {
	case errors.Is(err, services.ErrEmptyQueryText):
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, "query text is empty")
	case errors.Is(err, services.ErrQuotaExceeded):
		fail(c, http.StatusPaymentRequired, ErrCodeQuotaExceeded, "query limit reached for your plan")
	case errors.Is(err, services.ErrDomainNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "domain not found")
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeStoreFailure, err.Error())
	default:
		ok(c, http.StatusCreated, q)
	}
}

// ListQueries godoc
// @ID          listQueries
// @Summary     List monitored queries (paginated)
// @Tags        Queries
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       page       query   int     false "Page number"      minimum(1) default(1)
// @Param       page_size  query   int     false "Items per page"   minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListQueriesResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /queries [get]
func (h *Handlers) ListQueries(c *gin.Context) {
	page, pageSize := clampPagination(c)
	items, total, err := h.querySvc.ListPage(c.Request.Context(), userID(c), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListQueriesResponse{
		Queries: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// UpdateQueryStatus godoc
// @ID          updateQueryStatus
// @Summary     Pause or resume a query
// @Tags        Queries
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Query ID"
// @Param       body       body    handlers.UpdateQueryStatusRequest  true  "New status"
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /queries/{id}/status [patch]
func (h *Handlers) UpdateQueryStatus(c *gin.Context) {
	var req UpdateQueryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status must be active or paused")
		return
	}
	err := h.querySvc.SetStatus(c.Request.Context(), userID(c), c.Param("id"), req.Status)
	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, "status must be active or paused")
	case errors.Is(err, services.ErrQueryNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "query not found")
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeStoreFailure, err.Error())
	default:
		noContent(c)
	}
}

// DeleteQuery godoc
// @ID          deleteQuery
// @Summary     Delete a query
// @Description Soft delete: the query disappears from reads and its citations from aggregations.
// @Tags        Queries
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Query ID"
//
// @Success     204  {string}  string "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /queries/{id} [delete]
func (h *Handlers) DeleteQuery(c *gin.Context) {
	err := h.querySvc.Delete(c.Request.Context(), userID(c), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrQueryNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "query not found")
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeStoreFailure, err.Error())
	default:
		noContent(c)
	}
}

// RunQuery godoc
// @ID          runQuery
// @Summary     Run a citation check now
// @Description Submits the query to the processing pipeline; citations arrive asynchronously.
// @Tags        Queries
// @Produce     json
//
// @Param       X-User-ID        header  string  false "User ID (demo header)"      example(user123)
// @Param       Idempotency-Key  header  string  false "Safe-retry key for this run"
// @Param       id               path    string  true  "Query ID"
//
// @Success     202  {object}  map[string]string
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /queries/{id}/run [post]
func (h *Handlers) RunQuery(c *gin.Context) {
	err := h.querySvc.Run(c.Request.Context(), userID(c), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrQueryNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "query not found")
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeStoreFailure, err.Error())
	default:
		ok(c, http.StatusAccepted, gin.H{"status": "submitted"})
	}
}

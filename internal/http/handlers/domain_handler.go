// Domain HTTP handlers.
//
// This file exposes REST endpoints for tracked-domain resources:
//   - POST   /domains        (create, quota- and duplicate-gated)
//   - GET    /domains        (list)
//   - DELETE /domains/{id}   (hard delete)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aeolytics/aeo-backend/internal/services"
)

// CreateDomainRequest is the JSON payload for registering a domain.
type CreateDomainRequest struct {
	// Hostname may include a scheme and trailing slash; it is normalized
	// before storage.
	Hostname string `json:"hostname" binding:"required,min=1,max=255" example:"https://example.com/"`
}

// CreateDomain godoc
// @ID          createDomain
// @Summary     Register a tracked domain
// @Description Normalizes the hostname and creates a pending domain, enforcing the plan quota and per-account uniqueness.
// @Tags        Domains
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.CreateDomainRequest  true  "Create domain payload"
//
// @Success     201  {object}  domain.Domain
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     402  {object}  handlers.ErrorResponse  "Quota exceeded"
// @Failure     409  {object}  handlers.ErrorResponse  "Duplicate hostname"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /domains [post]
func (h *Handlers) CreateDomain(c *gin.Context) {
	var req CreateDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	d, err := h.domainSvc.Create(c.Request.Context(), userID(c), h.plan(c), req.Hostname)
	switch {
	case errors.Is(err, services.ErrEmptyHostname):
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, "hostname is empty")
	case errors.Is(err, services.ErrQuotaExceeded):
		fail(c, http.StatusPaymentRequired, ErrCodeQuotaExceeded, "domain limit reached for your plan")
	case errors.Is(err, services.ErrDuplicateDomain):
		fail(c, http.StatusConflict, ErrCodeDuplicateEntity, "domain already exists")
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeStoreFailure, err.Error())
	default:
		ok(c, http.StatusCreated, d)
	}
}

// ListDomains godoc
// @ID          listDomains
// @Summary     List tracked domains
// @Tags        Domains
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {array}   domain.Domain
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /domains [get]
func (h *Handlers) ListDomains(c *gin.Context) {
	items, err := h.domainSvc.List(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// DeleteDomain godoc
// @ID          deleteDomain
// @Summary     Delete a tracked domain
// @Description Hard delete; not reversible.
// @Tags        Domains
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Domain ID"
//
// @Success     204  {string}  string "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /domains/{id} [delete]
func (h *Handlers) DeleteDomain(c *gin.Context) {
	err := h.domainSvc.Delete(c.Request.Context(), userID(c), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrDomainNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "domain not found")
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeStoreFailure, err.Error())
	default:
		noContent(c)
	}
}

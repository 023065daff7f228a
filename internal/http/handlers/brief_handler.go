// Fix-It brief HTTP handlers. Brief generation is plan-gated; the status
// ladder (generated, downloaded, implemented) only moves forward.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aeolytics/aeo-backend/internal/domain"
	"github.com/aeolytics/aeo-backend/internal/services"
)

// GenerateBriefRequest is the JSON payload for generating a brief.
type GenerateBriefRequest struct {
	QueryID     string `json:"query_id" binding:"required"`
	Instruction string `json:"instruction,omitempty" example:"focus on pricing objections"`
}

// AdvanceBriefRequest moves a brief to a later status.
type AdvanceBriefRequest struct {
	Status string `json:"status" binding:"required,oneof=generated downloaded implemented" example:"downloaded"`
}

// ListBriefsResponse wraps a user's briefs.
type ListBriefsResponse struct {
	Briefs []domain.FixItBrief `json:"briefs"`
	Count  int                 `json:"count"`
}

// GenerateBrief godoc
// @ID          generateBrief
// @Summary     Generate a Fix-It brief
// @Description Produces a content brief (title, outline, FAQ entries) for an uncited query. Requires the fix_it_briefs feature.
// @Tags        Briefs
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.GenerateBriefRequest  true  "Brief request"
//
// @Success     201  {object}  domain.FixItBrief
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     402  {object}  handlers.ErrorResponse  "Plan not entitled"
// @Failure     404  {object}  handlers.ErrorResponse  "Query not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /briefs [post]
func (h *Handlers) GenerateBrief(c *gin.Context) {
	var req GenerateBriefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	b, err := h.briefSvc.Generate(c.Request.Context(), userID(c), h.plan(c), req.QueryID, req.Instruction)
	switch {
	case errors.Is(err, services.ErrNotEntitled):
		fail(c, http.StatusPaymentRequired, ErrCodeNotEntitled, "fix-it briefs are not included in your plan")
	case errors.Is(err, services.ErrQueryNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "query not found")
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	default:
		ok(c, http.StatusCreated, b)
	}
}

// ListBriefs godoc
// @ID          listBriefs
// @Summary     List Fix-It briefs
// @Tags        Briefs
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {object}  handlers.ListBriefsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /briefs [get]
func (h *Handlers) ListBriefs(c *gin.Context) {
	items, err := h.briefSvc.List(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListBriefsResponse{Briefs: items, Count: len(items)})
}

// GetBrief godoc
// @ID          getBrief
// @Summary     Get a brief
// @Tags        Briefs
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Brief ID"
//
// @Success     200  {object}  domain.FixItBrief
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /briefs/{id} [get]
func (h *Handlers) GetBrief(c *gin.Context) {
	b, err := h.briefSvc.Get(c.Request.Context(), userID(c), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrBriefNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "brief not found")
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeStoreFailure, err.Error())
	default:
		ok(c, http.StatusOK, b)
	}
}

// AdvanceBrief godoc
// @ID          advanceBrief
// @Summary     Advance a brief's status
// @Description Moves a brief forward along generated, downloaded, implemented. Backward moves are rejected.
// @Tags        Briefs
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Brief ID"
// @Param       body       body    handlers.AdvanceBriefRequest  true  "New status"
//
// @Success     200  {object}  domain.FixItBrief
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /briefs/{id}/status [patch]
func (h *Handlers) AdvanceBrief(c *gin.Context) {
	var req AdvanceBriefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status must be generated, downloaded, or implemented")
		return
	}
	b, err := h.briefSvc.Advance(c.Request.Context(), userID(c), c.Param("id"), req.Status)
	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, "briefs can only move forward")
	case errors.Is(err, services.ErrBriefNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "brief not found")
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeStoreFailure, err.Error())
	default:
		ok(c, http.StatusOK, b)
	}
}

// DeleteBrief godoc
// @ID          deleteBrief
// @Summary     Delete a brief
// @Tags        Briefs
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Brief ID"
//
// @Success     204  {string}  string "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /briefs/{id} [delete]
func (h *Handlers) DeleteBrief(c *gin.Context) {
	err := h.briefSvc.Delete(c.Request.Context(), userID(c), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrBriefNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "brief not found")
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeStoreFailure, err.Error())
	default:
		noContent(c)
	}
}

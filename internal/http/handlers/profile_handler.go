// Account HTTP handlers: the /me overview and the plan webhook-style setter.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aeolytics/aeo-backend/internal/domain"
)

// SetPlanRequest is the JSON payload the billing integration posts when a
// subscription changes.
type SetPlanRequest struct {
	Plan string `json:"plan" binding:"required,oneof=free pro agency" example:"pro"`
}

// Me godoc
// @ID          me
// @Summary     Account overview
// @Description Returns the caller's profile, resolved plan limits, and current usage.
// @Tags        Account
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {object}  services.AccountOverview
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /me [get]
func (h *Handlers) Me(c *gin.Context) {
	ov, err := h.profileSvc.Overview(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ov)
}

// SetPlan godoc
// @ID          setPlan
// @Summary     Set the caller's plan
// @Description Records the plan supplied by the billing provider. Entitlements apply on the next request; existing data is untouched.
// @Tags        Account
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.SetPlanRequest  true  "New plan"
//
// @Success     200  {object}  domain.Profile
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /me/plan [put]
func (h *Handlers) SetPlan(c *gin.Context) {
	var req SetPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "plan must be free, pro, or agency")
		return
	}
	p, err := h.profileSvc.SetPlan(c.Request.Context(), userID(c), domain.Plan(req.Plan))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeStoreFailure, err.Error())
		return
	}
	ok(c, http.StatusOK, p)
}

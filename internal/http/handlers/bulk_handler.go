// Bulk operation HTTP handler. One endpoint executes delete/update/process
// over up to a few hundred ids; the service batches the work and isolates
// batch failures, so a partial outcome still returns 200 with per-id counts.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/aeolytics/aeo-backend/internal/services"
)

// maxBulkIDs bounds a single bulk request; larger jobs should be split by the
// client.
const maxBulkIDs = 500

// ExecuteBulk godoc
// @ID          executeBulk
// @Summary     Execute a bulk operation
// @Description Applies delete, update, or process to a list of entity ids in batches. Failures are isolated per batch and reported in the result.
// @Tags        Bulk
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    services.BulkRequest  true  "Bulk request"
//
// @Success     200  {object}  services.BulkResult
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     402  {object}  handlers.ErrorResponse  "Plan not entitled"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /bulk [post]
func (h *Handlers) ExecuteBulk(c *gin.Context) {
	var req services.BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if len(req.IDs) > maxBulkIDs {
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, "too many ids in one request")
		return
	}

	uid := userID(c)
	progress := func(processed, total int) {
		log.Debug().
			Str("user_id", uid).
			Str("op", req.Op).
			Str("entity", req.Entity).
			Int("processed", processed).
			Int("total", total).
			Msg("bulk progress")
	}

	res, err := h.bulkSvc.Execute(c.Request.Context(), uid, h.plan(c), req, progress)
	switch {
	case errors.Is(err, services.ErrNotEntitled):
		fail(c, http.StatusPaymentRequired, ErrCodeNotEntitled, "bulk operations are not included in your plan")
	case errors.Is(err, services.ErrUnknownBulkOp):
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	default:
		ok(c, http.StatusOK, res)
	}
}

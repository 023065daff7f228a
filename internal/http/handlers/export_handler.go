// Export HTTP handlers: CSV/JSON downloads and the visibility report. CSV and
// the report are plan-gated; the report honors custom branding only for
// white-label plans.
package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aeolytics/aeo-backend/internal/domain"
	"github.com/aeolytics/aeo-backend/internal/entitlement"
	"github.com/aeolytics/aeo-backend/internal/export"
	"github.com/aeolytics/aeo-backend/internal/repo"
)

// ExportCSV godoc
// @ID          exportCSV
// @Summary     Download an entity set as CSV
// @Description Streams the caller's domains, queries, or citations as a CSV attachment. Requires the csv_export feature.
// @Tags        Exports
// @Produce     text/csv
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       entity     path    string  true  "Entity set"  Enums(domains, queries, citations)
//
// @Success     200  {string}  string "CSV document"
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown entity"
// @Failure     402  {object}  handlers.ErrorResponse  "Plan not entitled"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /exports/csv/{entity} [get]
func (h *Handlers) ExportCSV(c *gin.Context) {
	plan := h.plan(c)
	if !entitlement.CanAccessFeature(plan, entitlement.FeatureCSVExport) {
		fail(c, http.StatusPaymentRequired, ErrCodeNotEntitled, "csv export is not included in your plan")
		return
	}

	ctx := c.Request.Context()
	uid := userID(c)
	entity := strings.TrimSuffix(c.Param("entity"), ".csv")

	var t export.Table
	switch entity {
	case "domains":
		items, err := h.domainSvc.List(ctx, uid)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
		t = export.DomainsTable(items)
	case "queries":
		items, err := h.querySvc.List(ctx, uid)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
		t = export.QueriesTable(items)
	case "citations":
		items, err := h.citationSvc.ListRecent(ctx, uid, repo.CitationFilter{})
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
		t = export.CitationsTable(items)
	default:
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, "entity must be domains, queries, or citations")
		return
	}

	filename := fmt.Sprintf("%s-%s.csv", entity, time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(export.CSV(t)))
}

// ExportJSON godoc
// @ID          exportJSON
// @Summary     Download an entity set as JSON
// @Description Streams the caller's domains, queries, or citations as a pretty-printed JSON attachment.
// @Tags        Exports
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       entity     path    string  true  "Entity set"  Enums(domains, queries, citations)
//
// @Success     200  {string}  string "JSON document"
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown entity"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /exports/json/{entity} [get]
func (h *Handlers) ExportJSON(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	entity := strings.TrimSuffix(c.Param("entity"), ".json")

	var (
		doc string
		err error
	)
	switch entity {
	case "domains":
		var items []domain.Domain
		if items, err = h.domainSvc.List(ctx, uid); err == nil {
			doc, err = export.JSON(items)
		}
	case "queries":
		var items []domain.Query
		if items, err = h.querySvc.List(ctx, uid); err == nil {
			doc, err = export.JSON(items)
		}
	case "citations":
		var items []domain.Citation
		if items, err = h.citationSvc.ListRecent(ctx, uid, repo.CitationFilter{}); err == nil {
			doc, err = export.JSON(items)
		}
	default:
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, "entity must be domains, queries, or citations")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	filename := fmt.Sprintf("%s-%s.json", entity, time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}

// VisibilityReport godoc
// @ID          visibilityReport
// @Summary     Generate the visibility report
// @Description Builds the report document (metrics plus recommendations) over the recent citation window. Requires the pdf_reports feature; the branding parameter is honored only for white-label plans.
// @Tags        Exports
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"   example(user123)
// @Param       branding   query   string  false "Custom report branding"  example(Acme Agency)
//
// @Success     200  {object}  export.Report
// @Failure     402  {object}  handlers.ErrorResponse  "Plan not entitled"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /exports/report [get]
func (h *Handlers) VisibilityReport(c *gin.Context) {
	plan := h.plan(c)
	if !entitlement.CanAccessFeature(plan, entitlement.FeaturePDFReports) {
		fail(c, http.StatusPaymentRequired, ErrCodeNotEntitled, "reports are not included in your plan")
		return
	}

	ctx := c.Request.Context()
	uid := userID(c)

	citations, err := h.citationSvc.ListRecent(ctx, uid, repo.CitationFilter{})
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	queries, err := h.querySvc.List(ctx, uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	branding := ""
	if entitlement.CanAccessFeature(plan, entitlement.FeatureWhiteLabel) {
		branding = strings.TrimSpace(c.Query("branding"))
	}
	ok(c, http.StatusOK, export.BuildReport(citations, queries, branding, time.Now().UTC()))
}

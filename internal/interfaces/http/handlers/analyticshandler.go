package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/servicedesk/internal/application/analytics/usecases"
	"github.com/orris-inc/servicedesk/internal/domain/analytics"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

const csvContentType = "text/csv; charset=utf-8"

type analyticsService interface {
	Overview(ctx context.Context, q usecases.ReportQuery) (*analytics.Overview, error)
	Trend(ctx context.Context, q usecases.ReportQuery) ([]analytics.TrendPoint, error)
	Agents(ctx context.Context, q usecases.ReportQuery) ([]analytics.AgentStats, error)
	SLA(ctx context.Context, q usecases.ReportQuery) ([]analytics.PriorityCompliance, error)
	Export(ctx context.Context, q usecases.ReportQuery, report string, w io.Writer) (string, error)
}

type AnalyticsHandler struct {
	analytics analyticsService
	logger    logger.Interface
}

func NewAnalyticsHandler(analytics analyticsService, logger logger.Interface) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, logger: logger}
}

func (h *AnalyticsHandler) reportQuery(c *gin.Context) (usecases.ReportQuery, bool) {
	actor, ok := currentActor(c)
	if !ok {
		return usecases.ReportQuery{}, false
	}
	q := usecases.ReportQuery{
		Actor:    actor,
		Priority: c.Query("priority"),
		Status:   c.Query("status"),
	}

	var err error
	if q.From, err = utils.ParseTimeQuery(c, "from", false); err == nil {
		if q.To, err = utils.ParseTimeQuery(c, "to", true); err == nil {
			q.TenantID, err = utils.ParseOptionalUintQuery(c, "tenant_id")
		}
	}
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return usecases.ReportQuery{}, false
	}
	return q, true
}

// Overview godoc
// @Summary Ticket totals, MTTR and SLA compliance
// @Security Bearer
// @Tags analytics
// @Produce json
// @Param from query string false "RFC3339 or YYYY-MM-DD"
// @Param to query string false "RFC3339 or YYYY-MM-DD"
// @Param priority query string false "Priority"
// @Param status query string false "Status"
// @Param tenant_id query int false "Tenant (global admins)"
// @Success 200 {object} utils.APIResponse{data=analytics.Overview}
// @Router /analytics/overview [get]
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	q, ok := h.reportQuery(c)
	if !ok {
		return
	}
	result, err := h.analytics.Overview(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *AnalyticsHandler) Trend(c *gin.Context) {
	q, ok := h.reportQuery(c)
	if !ok {
		return
	}
	result, err := h.analytics.Trend(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *AnalyticsHandler) Agents(c *gin.Context) {
	q, ok := h.reportQuery(c)
	if !ok {
		return
	}
	result, err := h.analytics.Agents(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *AnalyticsHandler) SLA(c *gin.Context) {
	q, ok := h.reportQuery(c)
	if !ok {
		return
	}
	result, err := h.analytics.SLA(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Export godoc
// @Summary Download a report as CSV
// @Security Bearer
// @Tags analytics
// @Produce text/csv
// @Param report query string true "tickets|agents|sla"
// @Success 200 {file} file
// @Failure 400 {object} utils.APIResponse "Unknown report"
// @Router /analytics/export [get]
func (h *AnalyticsHandler) Export(c *gin.Context) {
	q, ok := h.reportQuery(c)
	if !ok {
		return
	}

	// Buffered so a failure halfway through still yields a JSON error.
	var buf bytes.Buffer
	filename, err := h.analytics.Export(c.Request.Context(), q, c.Query("report"), &buf)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, csvContentType, buf.Bytes())
}

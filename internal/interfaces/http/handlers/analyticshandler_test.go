package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/servicedesk/internal/application/analytics/usecases"
	"github.com/orris-inc/servicedesk/internal/domain/analytics"
	"github.com/orris-inc/servicedesk/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
)

type mockAnalyticsService struct {
	query    usecases.ReportQuery
	overview *analytics.Overview
	csv      string
	err      error
}

func (m *mockAnalyticsService) Overview(_ context.Context, q usecases.ReportQuery) (*analytics.Overview, error) {
	m.query = q
	return m.overview, m.err
}

func (m *mockAnalyticsService) Trend(_ context.Context, q usecases.ReportQuery) ([]analytics.TrendPoint, error) {
	m.query = q
	return nil, m.err
}

func (m *mockAnalyticsService) Agents(_ context.Context, q usecases.ReportQuery) ([]analytics.AgentStats, error) {
	m.query = q
	return nil, m.err
}

func (m *mockAnalyticsService) SLA(_ context.Context, q usecases.ReportQuery) ([]analytics.PriorityCompliance, error) {
	m.query = q
	return nil, m.err
}

func (m *mockAnalyticsService) Export(_ context.Context, q usecases.ReportQuery, report string, w io.Writer) (string, error) {
	m.query = q
	switch report {
	case usecases.ReportTickets, usecases.ReportAgents, usecases.ReportSLA:
	default:
		return "", errors.NewValidationError("unknown report: " + report)
	}
	if _, err := io.WriteString(w, m.csv); err != nil {
		return "", err
	}
	return report + "-report-20260101.csv", nil
}

func TestAnalyticsOverview_Filters(t *testing.T) {
	svc := &mockAnalyticsService{overview: &analytics.Overview{Total: 12}}
	h := NewAnalyticsHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/analytics/overview", nil)
	testutil.SetQueryParams(c, map[string]string{
		"from":     "2026-01-01",
		"to":       "2026-01-31T12:00:00Z",
		"priority": "HIGH",
	})
	testutil.SetAuthContext(c, 2, testutil.TenantID(1), authorization.RoleITManager)

	h.Overview(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.query.From)
	require.NotNil(t, svc.query.To)
	assert.Equal(t, 12, svc.query.To.Hour())
	assert.Equal(t, "HIGH", svc.query.Priority)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var got analytics.Overview
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, int64(12), got.Total)
}

func TestAnalyticsOverview_InvalidDate(t *testing.T) {
	h := NewAnalyticsHandler(&mockAnalyticsService{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/analytics/overview", nil)
	testutil.SetQueryParams(c, map[string]string{"from": "last week"})
	testutil.SetAuthContext(c, 2, testutil.TenantID(1), authorization.RoleITManager)

	h.Overview(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsExport(t *testing.T) {
	t.Run("csv attachment", func(t *testing.T) {
		body := "\"Agent\",\"Email\"\r\n\"Ana\",\"ana@example.com\"\r\n"
		h := NewAnalyticsHandler(&mockAnalyticsService{csv: body}, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/analytics/export", nil)
		testutil.SetQueryParams(c, map[string]string{"report": "agents"})
		testutil.SetAuthContext(c, 2, testutil.TenantID(1), authorization.RoleITManager)

		h.Export(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, csvContentType, w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="agents-report-20260101.csv"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, body, w.Body.String())
	})

	t.Run("unknown report", func(t *testing.T) {
		h := NewAnalyticsHandler(&mockAnalyticsService{}, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/analytics/export", nil)
		testutil.SetQueryParams(c, map[string]string{"report": "revenue"})
		testutil.SetAuthContext(c, 2, testutil.TenantID(1), authorization.RoleITManager)

		h.Export(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, w.Header().Get("Content-Disposition"))
	})
}

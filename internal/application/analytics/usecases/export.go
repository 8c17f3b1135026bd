package usecases

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/orris-inc/servicedesk/internal/domain/analytics"
	"github.com/orris-inc/servicedesk/internal/domain/sla"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
	"github.com/orris-inc/servicedesk/internal/shared/csvexport"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/labels"
)

const (
	ReportTickets = "tickets"
	ReportAgents  = "agents"
	ReportSLA     = "sla"
)

var (
	TicketsHeader = []string{
		"Ticket Number", "Subject", "Status", "Priority", "Category", "Requester", "Assignee",
		"Created At", "Resolved At", "Closed At", "Resolution Minutes", "SLA Breached",
	}
	AgentsHeader = []string{"Agent", "Email", "Assigned", "Resolved", "MTTR Minutes", "SLA Compliance %"}
	SLAHeader    = []string{
		"Ticket Number", "Priority", "First Response Target", "First Response At", "First Response Breached",
		"Resolution Target", "Resolved At", "Resolution Breached",
	}
)

// Export writes report as CSV to w and returns the suggested file name.
func (uc *AnalyticsUseCases) Export(ctx context.Context, q ReportQuery, report string, w io.Writer) (string, error) {
	var build func(context.Context, ticket.Filter) ([][]string, error)
	switch report {
	case ReportTickets:
		build = uc.ticketRows
	case ReportAgents:
		build = uc.agentRows
	case ReportSLA:
		build = uc.slaRows
	default:
		return "", errors.NewValidationError("unknown report: " + report)
	}

	filter, err := buildFilter(q)
	if err != nil {
		return "", err
	}
	rows, err := build(ctx, filter)
	if err != nil {
		return "", err
	}

	if err := csvexport.NewWriter(w).WriteAll(rows); err != nil {
		uc.logger.Errorw("failed to write csv export", "report", report, "error", err)
		return "", errors.NewInternalError("failed to write export")
	}
	uc.logger.Infow("analytics export generated", "report", report, "rows", len(rows)-1, "user_id", q.Actor.UserID)
	return fmt.Sprintf("%s-report-%s.csv", report, biztime.DayKey(biztime.NowUTC())), nil
}

func (uc *AnalyticsUseCases) ticketRows(ctx context.Context, filter ticket.Filter) ([][]string, error) {
	data, err := uc.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(data.Tickets)*2)
	for _, t := range data.Tickets {
		ids = append(ids, t.RequesterID())
		if a := t.AssigneeID(); a != nil {
			ids = append(ids, *a)
		}
	}
	users, err := uc.users.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Errorw("failed to load users for export", "error", err)
		return nil, errors.NewInternalError("failed to load report data")
	}
	name := func(id *uint) string {
		if id == nil {
			return ""
		}
		if u, ok := users[*id]; ok {
			return u.Name()
		}
		return ""
	}

	rows := [][]string{TicketsHeader}
	for _, t := range data.Tickets {
		requester := t.RequesterID()
		created := t.CreatedAt()
		resolution := ""
		if m, ok := analytics.ResolutionMinutes(t); ok {
			resolution = formatFloat(analytics.Round2(m))
		}
		breached := ""
		if tr := data.Trackings[t.ID()]; tr != nil {
			breached = yesNo(!tr.IsCompliant())
		}
		rows = append(rows, []string{
			t.Number(),
			t.Subject(),
			labels.Humanize(t.Status().String()),
			labels.Humanize(t.Priority().String()),
			t.Category(),
			name(&requester),
			name(t.AssigneeID()),
			formatTime(&created),
			formatTime(t.ResolvedAt()),
			formatTime(t.ClosedAt()),
			resolution,
			breached,
		})
	}
	return rows, nil
}

func (uc *AnalyticsUseCases) agentRows(ctx context.Context, filter ticket.Filter) ([][]string, error) {
	data, err := uc.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	agents, err := uc.agentDirectory(ctx, data.Tickets)
	if err != nil {
		uc.logger.Errorw("failed to load agents for export", "error", err)
		return nil, errors.NewInternalError("failed to load report data")
	}

	rows := [][]string{AgentsHeader}
	for _, s := range analytics.ComputeAgents(data, agents) {
		rows = append(rows, []string{
			s.Name,
			s.Email,
			strconv.FormatInt(s.Assigned, 10),
			strconv.FormatInt(s.Resolved, 10),
			formatFloat(s.MTTRMinutes),
			formatFloat(s.SLACompliancePercent),
		})
	}
	return rows, nil
}

func (uc *AnalyticsUseCases) slaRows(ctx context.Context, filter ticket.Filter) ([][]string, error) {
	data, err := uc.load(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := [][]string{SLAHeader}
	for _, t := range data.Tickets {
		tr := data.Trackings[t.ID()]
		if tr == nil {
			continue
		}
		rows = append(rows, slaRow(t, tr))
	}
	return rows, nil
}

func slaRow(t *ticket.Ticket, tr *sla.Tracking) []string {
	frTarget := tr.FirstResponseTarget()
	resTarget := tr.ResolutionTarget()
	return []string{
		t.Number(),
		labels.Humanize(t.Priority().String()),
		formatTime(&frTarget),
		formatTime(tr.FirstResponseAt()),
		yesNo(tr.FirstResponseBreached()),
		formatTime(&resTarget),
		formatTime(tr.ResolvedAt()),
		yesNo(tr.ResolutionBreached()),
	}
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

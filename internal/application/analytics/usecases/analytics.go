package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/servicedesk/internal/domain/analytics"
	"github.com/orris-inc/servicedesk/internal/domain/sla"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

const (
	DefaultCacheTTL = 60 * time.Second
	defaultRange    = 30 * 24 * time.Hour
	maxTrendDays    = 366
)

// Cache stores computed reports. Implementations may be unavailable, in
// which case Get misses and Set is a no-op.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type ReportQuery struct {
	Actor    authorization.Actor
	From     *time.Time
	To       *time.Time
	Priority string
	Status   string
	// TenantID is honored for global admins only.
	TenantID *uint
}

// AnalyticsUseCases computes the reporting endpoints over filtered tickets.
type AnalyticsUseCases struct {
	tickets   ticket.Repository
	trackings sla.TrackingRepository
	users     user.Repository
	cache     Cache
	ttl       time.Duration
	logger    logger.Interface
}

// NewAnalyticsUseCases builds the use cases. cache may be nil.
func NewAnalyticsUseCases(
	tickets ticket.Repository,
	trackings sla.TrackingRepository,
	users user.Repository,
	cache Cache,
	ttl time.Duration,
	logger logger.Interface,
) *AnalyticsUseCases {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &AnalyticsUseCases{tickets: tickets, trackings: trackings, users: users, cache: cache, ttl: ttl, logger: logger}
}

func (uc *AnalyticsUseCases) Overview(ctx context.Context, q ReportQuery) (*analytics.Overview, error) {
	var out analytics.Overview
	err := uc.cached(ctx, "overview", q, &out, func(d analytics.Dataset, _ ticket.Filter) (any, error) {
		return analytics.ComputeOverview(d), nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Trend defaults to the last 30 days when the range is open.
func (uc *AnalyticsUseCases) Trend(ctx context.Context, q ReportQuery) ([]analytics.TrendPoint, error) {
	from, to := reportRange(q)
	if to.Sub(from) > maxTrendDays*24*time.Hour {
		return nil, errors.NewValidationError(fmt.Sprintf("trend range cannot exceed %d days", maxTrendDays))
	}
	q.From, q.To = &from, &to

	var out []analytics.TrendPoint
	err := uc.cached(ctx, "trend", q, &out, func(d analytics.Dataset, f ticket.Filter) (any, error) {
		return analytics.ComputeTrend(d.Tickets, *f.CreatedFrom, *f.CreatedTo), nil
	})
	return out, err
}

// Agents reports per-assignee figures. Agents without a manager role only
// see their own row.
func (uc *AnalyticsUseCases) Agents(ctx context.Context, q ReportQuery) ([]analytics.AgentStats, error) {
	var out []analytics.AgentStats
	err := uc.cached(ctx, "agents", q, &out, func(d analytics.Dataset, _ ticket.Filter) (any, error) {
		agents, err := uc.agentDirectory(ctx, d.Tickets)
		if err != nil {
			return nil, err
		}
		return analytics.ComputeAgents(d, agents), nil
	})
	return out, err
}

func (uc *AnalyticsUseCases) SLA(ctx context.Context, q ReportQuery) ([]analytics.PriorityCompliance, error) {
	var out []analytics.PriorityCompliance
	err := uc.cached(ctx, "sla", q, &out, func(d analytics.Dataset, _ ticket.Filter) (any, error) {
		return analytics.ComputeSLA(d), nil
	})
	return out, err
}

// cached serves key from the cache or computes it and stores the result.
// dest must be a pointer to the type compute returns.
func (uc *AnalyticsUseCases) cached(ctx context.Context, report string, q ReportQuery, dest any, compute func(analytics.Dataset, ticket.Filter) (any, error)) error {
	filter, err := buildFilter(q)
	if err != nil {
		return err
	}
	key := cacheKey(report, filter)

	if uc.cache != nil {
		hit, err := uc.cache.Get(ctx, key, dest)
		if err != nil {
			uc.logger.Warnw("analytics cache read failed", "key", key, "error", err)
		}
		if hit {
			return nil
		}
	}

	data, err := uc.load(ctx, filter)
	if err != nil {
		return err
	}
	result, err := compute(data, filter)
	if err != nil {
		uc.logger.Errorw("failed to compute report", "report", report, "error", err)
		return errors.NewInternalError("failed to compute " + report + " report")
	}

	// round-trip through JSON so cached and fresh responses share one shape
	raw, err := json.Marshal(result)
	if err != nil {
		return errors.NewInternalError("failed to encode " + report + " report")
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return errors.NewInternalError("failed to encode " + report + " report")
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, result, uc.ttl); err != nil {
			uc.logger.Warnw("analytics cache write failed", "key", key, "error", err)
		}
	}
	uc.logger.Debugw("analytics report computed", "report", report, "tickets", len(data.Tickets))
	return nil
}

func (uc *AnalyticsUseCases) load(ctx context.Context, filter ticket.Filter) (analytics.Dataset, error) {
	tickets, err := uc.tickets.ListForReport(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to load tickets for report", "error", err)
		return analytics.Dataset{}, errors.NewInternalError("failed to load report data")
	}
	ids := make([]uint, 0, len(tickets))
	for _, t := range tickets {
		ids = append(ids, t.ID())
	}
	trackings, err := uc.trackings.ListByTicketIDs(ctx, ids)
	if err != nil {
		uc.logger.Errorw("failed to load SLA trackings for report", "error", err)
		return analytics.Dataset{}, errors.NewInternalError("failed to load report data")
	}
	return analytics.Dataset{Tickets: tickets, Trackings: trackings}, nil
}

func (uc *AnalyticsUseCases) agentDirectory(ctx context.Context, tickets []*ticket.Ticket) (map[uint]analytics.Agent, error) {
	ids := make([]uint, 0)
	for _, t := range tickets {
		if a := t.AssigneeID(); a != nil {
			ids = append(ids, *a)
		}
	}
	users, err := uc.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load agents: %w", err)
	}
	out := make(map[uint]analytics.Agent, len(users))
	for id, u := range users {
		out[id] = analytics.Agent{Name: u.Name(), Email: u.Email().String()}
	}
	return out, nil
}

func buildFilter(q ReportQuery) (ticket.Filter, error) {
	filter := ticket.Filter{
		TenantID:    q.Actor.TenantFilter(),
		CreatedFrom: q.From,
		CreatedTo:   q.To,
	}
	if q.Actor.IsGlobalAdmin() && q.TenantID != nil {
		filter.TenantID = q.TenantID
	}
	if !q.Actor.IsManager() {
		id := q.Actor.UserID
		filter.AssigneeID = &id
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return filter, errors.NewValidationError("to must not be before from")
	}
	if q.Priority != "" {
		p := vo.Priority(strings.ToUpper(q.Priority))
		if !p.IsValid() {
			return filter, errors.NewValidationError("invalid priority: " + q.Priority)
		}
		filter.Priority = &p
	}
	if q.Status != "" {
		s := vo.TicketStatus(strings.ToUpper(q.Status))
		if !s.IsValid() {
			return filter, errors.NewValidationError("invalid status: " + q.Status)
		}
		filter.Statuses = []vo.TicketStatus{s}
	}
	return filter, nil
}

// reportRange closes an open range at the end of the current minute, which
// keeps the cache key stable between requests.
func reportRange(q ReportQuery) (time.Time, time.Time) {
	to := biztime.NowUTC().Truncate(time.Minute).Add(time.Minute)
	if q.To != nil {
		to = *q.To
	}
	from := to.Add(-defaultRange)
	if q.From != nil {
		from = *q.From
	}
	return from, to
}

func cacheKey(report string, f ticket.Filter) string {
	part := func(p *uint) string {
		if p == nil {
			return "*"
		}
		return fmt.Sprint(*p)
	}
	ts := func(t *time.Time) string {
		if t == nil {
			return "*"
		}
		return t.UTC().Format(time.RFC3339)
	}
	prio := "*"
	if f.Priority != nil {
		prio = f.Priority.String()
	}
	status := "*"
	if len(f.Statuses) > 0 {
		status = f.Statuses[0].String()
	}
	return strings.Join([]string{
		"analytics", report, part(f.TenantID), part(f.AssigneeID), ts(f.CreatedFrom), ts(f.CreatedTo), prio, status,
	}, ":")
}

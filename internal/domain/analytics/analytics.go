// Package analytics reduces ticket and SLA tracking rows into report figures.
// Inputs are already filtered by the caller; nothing here touches storage.
package analytics

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/orris-inc/servicedesk/internal/domain/sla"
	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
)

// Dataset is the ticket set of one report with the SLA tracking of each ticket.
type Dataset struct {
	Tickets   []*ticket.Ticket
	Trackings map[uint]*sla.Tracking
}

func (d Dataset) tracking(t *ticket.Ticket) *sla.Tracking {
	if d.Trackings == nil {
		return nil
	}
	return d.Trackings[t.ID()]
}

type Overview struct {
	Total                   int64            `json:"total"`
	ByStatus                map[string]int64 `json:"by_status"`
	ByPriority              map[string]int64 `json:"by_priority"`
	Open                    int64            `json:"open"`
	MTTRMinutes             float64          `json:"mttr_minutes"`
	AvgFirstResponseMinutes float64          `json:"avg_first_response_minutes"`
	SLACompliancePercent    float64          `json:"sla_compliance_percent"`
	FirstResponseBreaches   int64            `json:"first_response_breaches"`
	ResolutionBreaches      int64            `json:"resolution_breaches"`
}

type TrendPoint struct {
	Date     string `json:"date"`
	Created  int64  `json:"created"`
	Resolved int64  `json:"resolved"`
}

type AgentStats struct {
	AgentID              uint    `json:"agent_id"`
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Assigned             int64   `json:"assigned"`
	Resolved             int64   `json:"resolved"`
	MTTRMinutes          float64 `json:"mttr_minutes"`
	SLACompliancePercent float64 `json:"sla_compliance_percent"`
}

type PriorityCompliance struct {
	Priority          string  `json:"priority"`
	Total             int64   `json:"total"`
	Breached          int64   `json:"breached"`
	CompliancePercent float64 `json:"compliance_percent"`
}

// Agent identifies an assignee in the agents report.
type Agent struct {
	Name  string
	Email string
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ResolutionMinutes is completion minus creation for done tickets.
func ResolutionMinutes(t *ticket.Ticket) (float64, bool) {
	if !t.Status().IsDone() {
		return 0, false
	}
	done := t.CompletedAt()
	if done == nil {
		return 0, false
	}
	return biztime.MinutesBetween(t.CreatedAt(), *done), true
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.n++
}

func (m mean) value() float64 {
	if m.n == 0 {
		return 0
	}
	return Round2(m.sum / float64(m.n))
}

type compliance struct {
	tracked   int64
	compliant int64
}

func (c *compliance) add(tr *sla.Tracking) {
	if tr == nil {
		return
	}
	c.tracked++
	if tr.IsCompliant() {
		c.compliant++
	}
}

// percent is 100 when nothing is tracked.
func (c compliance) percent() float64 {
	if c.tracked == 0 {
		return 100
	}
	return Round2(float64(c.compliant) / float64(c.tracked) * 100)
}

func ComputeOverview(d Dataset) Overview {
	o := Overview{
		ByStatus:   make(map[string]int64, len(vo.AllStatuses)),
		ByPriority: make(map[string]int64, len(vo.AllPriorities)),
	}
	for _, s := range vo.AllStatuses {
		o.ByStatus[s.String()] = 0
	}
	for _, p := range vo.AllPriorities {
		o.ByPriority[p.String()] = 0
	}

	var mttr, firstResponse mean
	var comp compliance
	for _, t := range d.Tickets {
		o.Total++
		o.ByStatus[t.Status().String()]++
		o.ByPriority[t.Priority().String()]++
		if !t.Status().IsDone() {
			o.Open++
		}
		if m, ok := ResolutionMinutes(t); ok {
			mttr.add(m)
		}

		tr := d.tracking(t)
		comp.add(tr)
		if tr == nil {
			continue
		}
		if at := tr.FirstResponseAt(); at != nil {
			firstResponse.add(biztime.MinutesBetween(t.CreatedAt(), *at))
		}
		if tr.FirstResponseBreached() {
			o.FirstResponseBreaches++
		}
		if tr.ResolutionBreached() {
			o.ResolutionBreaches++
		}
	}

	o.MTTRMinutes = mttr.value()
	o.AvgFirstResponseMinutes = firstResponse.value()
	o.SLACompliancePercent = comp.percent()
	return o
}

// ComputeTrend counts created and resolved tickets per business day from
// from to to, emitting zero rows for quiet days.
func ComputeTrend(tickets []*ticket.Ticket, from, to time.Time) []TrendPoint {
	days := biztime.DaysBetween(from, to)
	index := make(map[string]int, len(days))
	points := make([]TrendPoint, len(days))
	for i, day := range days {
		index[day] = i
		points[i].Date = day
	}
	for _, t := range tickets {
		if i, ok := index[biztime.DayKey(t.CreatedAt())]; ok {
			points[i].Created++
		}
		if at := t.ResolvedAt(); at != nil {
			if i, ok := index[biztime.DayKey(*at)]; ok {
				points[i].Resolved++
			}
		}
	}
	return points
}

// ComputeAgents groups assigned tickets per assignee, sorted by resolved
// count descending then name.
func ComputeAgents(d Dataset, agents map[uint]Agent) []AgentStats {
	type acc struct {
		stats AgentStats
		mttr  mean
		comp  compliance
	}
	byAgent := map[uint]*acc{}
	for _, t := range d.Tickets {
		id := t.AssigneeID()
		if id == nil {
			continue
		}
		a, ok := byAgent[*id]
		if !ok {
			info := agents[*id]
			a = &acc{stats: AgentStats{AgentID: *id, Name: info.Name, Email: info.Email}}
			byAgent[*id] = a
		}
		a.stats.Assigned++
		if m, ok := ResolutionMinutes(t); ok {
			a.stats.Resolved++
			a.mttr.add(m)
		}
		a.comp.add(d.tracking(t))
	}

	out := make([]AgentStats, 0, len(byAgent))
	for _, a := range byAgent {
		a.stats.MTTRMinutes = a.mttr.value()
		a.stats.SLACompliancePercent = a.comp.percent()
		out = append(out, a.stats)
	}
	slices.SortFunc(out, func(a, b AgentStats) int {
		if a.Resolved != b.Resolved {
			if a.Resolved > b.Resolved {
				return -1
			}
			return 1
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return int(a.AgentID) - int(b.AgentID)
	})
	return out
}

// ComputeSLA reports compliance per priority, highest priority first.
func ComputeSLA(d Dataset) []PriorityCompliance {
	comps := map[vo.Priority]*compliance{}
	for _, p := range vo.AllPriorities {
		comps[p] = &compliance{}
	}
	for _, t := range d.Tickets {
		if c, ok := comps[t.Priority()]; ok {
			c.add(d.tracking(t))
		}
	}

	out := make([]PriorityCompliance, 0, len(vo.AllPriorities))
	for i := len(vo.AllPriorities) - 1; i >= 0; i-- {
		p := vo.AllPriorities[i]
		c := comps[p]
		out = append(out, PriorityCompliance{
			Priority:          p.String(),
			Total:             c.tracked,
			Breached:          c.tracked - c.compliant,
			CompliancePercent: c.percent(),
		})
	}
	return out
}

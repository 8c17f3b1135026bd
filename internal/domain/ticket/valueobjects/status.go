package valueobjects

import "slices"

type TicketStatus string

const (
	StatusNew        TicketStatus = "NEW"
	StatusOpen       TicketStatus = "OPEN"
	StatusInProgress TicketStatus = "IN_PROGRESS"
	StatusPending    TicketStatus = "PENDING"
	StatusResolved   TicketStatus = "RESOLVED"
	StatusClosed     TicketStatus = "CLOSED"
	StatusReopened   TicketStatus = "REOPENED"
)

var AllStatuses = []TicketStatus{
	StatusNew, StatusOpen, StatusInProgress, StatusPending,
	StatusResolved, StatusClosed, StatusReopened,
}

var statusTransitions = map[TicketStatus][]TicketStatus{
	StatusNew:        {StatusOpen, StatusInProgress, StatusClosed},
	StatusOpen:       {StatusInProgress, StatusPending, StatusResolved, StatusClosed},
	StatusInProgress: {StatusPending, StatusResolved, StatusClosed},
	StatusPending:    {StatusInProgress, StatusResolved, StatusClosed},
	StatusResolved:   {StatusClosed, StatusReopened},
	StatusClosed:     {StatusReopened},
	StatusReopened:   {StatusInProgress, StatusPending, StatusResolved, StatusClosed},
}

func (s TicketStatus) String() string { return string(s) }

func (s TicketStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	return slices.Contains(statusTransitions[s], next)
}

// AllowedTransitions lists the statuses reachable from s.
func (s TicketStatus) AllowedTransitions() []TicketStatus {
	return slices.Clone(statusTransitions[s])
}

func (s TicketStatus) IsResolved() bool { return s == StatusResolved }
func (s TicketStatus) IsClosed() bool   { return s == StatusClosed }
func (s TicketStatus) IsReopened() bool { return s == StatusReopened }

// IsDone is true for RESOLVED and CLOSED, the states counted by MTTR.
func (s TicketStatus) IsDone() bool {
	return s == StatusResolved || s == StatusClosed
}

package valueobjects

import "time"

type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

var AllPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

var priorityWeights = map[Priority]int{
	PriorityLow:      1,
	PriorityMedium:   2,
	PriorityHigh:     3,
	PriorityCritical: 4,
}

// SLATargets are the built-in response and resolution windows used when no
// policy matches.
type SLATargets struct {
	FirstResponse time.Duration
	Resolution    time.Duration
}

var defaultTargets = map[Priority]SLATargets{
	PriorityCritical: {15 * time.Minute, 4 * time.Hour},
	PriorityHigh:     {time.Hour, 8 * time.Hour},
	PriorityMedium:   {4 * time.Hour, 24 * time.Hour},
	PriorityLow:      {8 * time.Hour, 72 * time.Hour},
}

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	_, ok := priorityWeights[p]
	return ok
}

// Weight orders priorities, higher is more urgent.
func (p Priority) Weight() int {
	return priorityWeights[p]
}

func (p Priority) DefaultSLATargets() SLATargets {
	if t, ok := defaultTargets[p]; ok {
		return t
	}
	return defaultTargets[PriorityMedium]
}

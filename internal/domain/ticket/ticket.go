// Package ticket is the incident/request aggregate: status lifecycle,
// priority, assignment, and the audit trail of field changes.
package ticket

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
)

const (
	maxSubjectLength     = 200
	maxDescriptionLength = 10000
	maxTags              = 10
)

type Ticket struct {
	id           uint
	number       string
	tenantID     *uint
	subject      string
	description  string
	category     string
	priority     vo.Priority
	status       vo.TicketStatus
	ticketTypeID *uint
	requesterID  uint
	assigneeID   *uint
	assetID      *uint
	tags         []string
	customFields map[string]any
	resolvedAt   *time.Time
	closedAt     *time.Time
	version      int
	createdAt    time.Time
	updatedAt    time.Time

	changes []FieldChange
}

// State carries persisted ticket fields into ReconstructTicket.
type State struct {
	ID           uint
	Number       string
	TenantID     *uint
	Subject      string
	Description  string
	Category     string
	Priority     vo.Priority
	Status       vo.TicketStatus
	TicketTypeID *uint
	RequesterID  uint
	AssigneeID   *uint
	AssetID      *uint
	Tags         []string
	CustomFields map[string]any
	ResolvedAt   *time.Time
	ClosedAt     *time.Time
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FieldChange is one audited modification, turned into a history row.
type FieldChange struct {
	Field    string
	OldValue string
	NewValue string
}

func NewTicket(subject, description, category string, priority vo.Priority, requesterID uint, tenantID *uint) (*Ticket, error) {
	subject = strings.TrimSpace(subject)
	description = strings.TrimSpace(description)
	if err := validateSubject(subject); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	if requesterID == 0 {
		return nil, fmt.Errorf("requester ID is required")
	}
	cat, err := vo.NormalizeCategory(category)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Ticket{
		tenantID:     tenantID,
		subject:      subject,
		description:  description,
		category:     cat,
		priority:     priority,
		status:       vo.StatusNew,
		requesterID:  requesterID,
		tags:         []string{},
		customFields: map[string]any{},
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructTicket(s State) (*Ticket, error) {
	if s.ID == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if s.Number == "" {
		return nil, fmt.Errorf("ticket number is required")
	}
	if !s.Status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", s.Status)
	}
	if !s.Priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", s.Priority)
	}
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	fields := s.CustomFields
	if fields == nil {
		fields = map[string]any{}
	}
	return &Ticket{
		id:           s.ID,
		number:       s.Number,
		tenantID:     s.TenantID,
		subject:      s.Subject,
		description:  s.Description,
		category:     s.Category,
		priority:     s.Priority,
		status:       s.Status,
		ticketTypeID: s.TicketTypeID,
		requesterID:  s.RequesterID,
		assigneeID:   s.AssigneeID,
		assetID:      s.AssetID,
		tags:         tags,
		customFields: fields,
		resolvedAt:   s.ResolvedAt,
		closedAt:     s.ClosedAt,
		version:      s.Version,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
	}, nil
}

func (t *Ticket) ID() uint                    { return t.id }
func (t *Ticket) Number() string              { return t.number }
func (t *Ticket) TenantID() *uint             { return t.tenantID }
func (t *Ticket) Subject() string             { return t.subject }
func (t *Ticket) Description() string         { return t.description }
func (t *Ticket) Category() string            { return t.category }
func (t *Ticket) Priority() vo.Priority       { return t.priority }
func (t *Ticket) Status() vo.TicketStatus     { return t.status }
func (t *Ticket) TicketTypeID() *uint         { return t.ticketTypeID }
func (t *Ticket) RequesterID() uint           { return t.requesterID }
func (t *Ticket) AssigneeID() *uint           { return t.assigneeID }
func (t *Ticket) AssetID() *uint              { return t.assetID }
func (t *Ticket) Tags() []string              { return slices.Clone(t.tags) }
func (t *Ticket) CustomFields() map[string]any { return maps.Clone(t.customFields) }
func (t *Ticket) ResolvedAt() *time.Time      { return t.resolvedAt }
func (t *Ticket) ClosedAt() *time.Time        { return t.closedAt }
func (t *Ticket) Version() int                { return t.version }
func (t *Ticket) CreatedAt() time.Time        { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time        { return t.updatedAt }

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) SetNumber(number string) error {
	if t.number != "" {
		return fmt.Errorf("ticket number is already set")
	}
	if number == "" {
		return fmt.Errorf("ticket number cannot be empty")
	}
	t.number = number
	return nil
}

// SetClassification attaches the ticket type and affected asset at creation.
func (t *Ticket) SetClassification(ticketTypeID, assetID *uint) {
	t.ticketTypeID = ticketTypeID
	t.assetID = assetID
}

func (t *Ticket) SetTags(tags []string) error {
	clean := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.Contains(clean, tag) {
			continue
		}
		clean = append(clean, tag)
	}
	if len(clean) > maxTags {
		return fmt.Errorf("a ticket can have at most %d tags", maxTags)
	}
	if !slices.Equal(clean, t.tags) {
		t.record("tags", strings.Join(t.tags, ","), strings.Join(clean, ","))
		t.tags = clean
		t.touch()
	}
	return nil
}

// SetCustomFields replaces the values; callers validate them against definitions.
func (t *Ticket) SetCustomFields(values map[string]any) {
	if values == nil {
		values = map[string]any{}
	}
	t.customFields = maps.Clone(values)
	t.touch()
}

func (t *Ticket) UpdateSubject(subject string) error {
	subject = strings.TrimSpace(subject)
	if err := validateSubject(subject); err != nil {
		return err
	}
	if subject != t.subject {
		t.record("subject", t.subject, subject)
		t.subject = subject
		t.touch()
	}
	return nil
}

func (t *Ticket) UpdateDescription(description string) error {
	description = strings.TrimSpace(description)
	if err := validateDescription(description); err != nil {
		return err
	}
	if description != t.description {
		t.record("description", "", "")
		t.description = description
		t.touch()
	}
	return nil
}

func (t *Ticket) ChangeCategory(category string) error {
	cat, err := vo.NormalizeCategory(category)
	if err != nil {
		return err
	}
	if cat != t.category {
		t.record("category", t.category, cat)
		t.category = cat
		t.touch()
	}
	return nil
}

// ChangePriority reports whether the priority actually changed.
func (t *Ticket) ChangePriority(p vo.Priority) (bool, error) {
	if !p.IsValid() {
		return false, fmt.Errorf("invalid priority: %s", p)
	}
	if p == t.priority {
		return false, nil
	}
	t.record("priority", string(t.priority), string(p))
	t.priority = p
	t.touch()
	return true, nil
}

// AssignTo sets the assignee. A NEW ticket moves to OPEN.
func (t *Ticket) AssignTo(assigneeID uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}
	if t.status.IsClosed() {
		return fmt.Errorf("cannot assign a closed ticket")
	}
	if t.assigneeID != nil && *t.assigneeID == assigneeID {
		return nil
	}
	t.record("assignee_id", uintString(t.assigneeID), fmt.Sprint(assigneeID))
	t.assigneeID = &assigneeID
	if t.status == vo.StatusNew {
		t.record("status", string(t.status), string(vo.StatusOpen))
		t.status = vo.StatusOpen
	}
	t.touch()
	return nil
}

// ChangeStatus applies a state machine transition. Moving to the current
// status is a no-op.
func (t *Ticket) ChangeStatus(next vo.TicketStatus) error {
	if !next.IsValid() {
		return fmt.Errorf("invalid status: %s", next)
	}
	if next == t.status {
		return nil
	}
	if !t.status.CanTransitionTo(next) {
		return fmt.Errorf("cannot transition from %s to %s", t.status, next)
	}

	now := biztime.NowUTC()
	t.record("status", string(t.status), string(next))
	t.status = next

	switch {
	case next.IsResolved():
		if t.resolvedAt == nil {
			t.resolvedAt = &now
		}
	case next.IsClosed():
		if t.resolvedAt == nil {
			t.resolvedAt = &now
		}
		t.closedAt = &now
	case next.IsReopened():
		t.resolvedAt = nil
		t.closedAt = nil
	}
	t.touch()
	return nil
}

// CompletedAt is the time used for resolution metrics: closedAt, else resolvedAt.
func (t *Ticket) CompletedAt() *time.Time {
	if t.closedAt != nil {
		return t.closedAt
	}
	return t.resolvedAt
}

// PullChanges returns and clears the changes recorded since the last call.
func (t *Ticket) PullChanges() []FieldChange {
	out := t.changes
	t.changes = nil
	return out
}

func (t *Ticket) record(field, oldValue, newValue string) {
	// skip audit noise while the ticket is still being built
	if t.id == 0 {
		return
	}
	t.changes = append(t.changes, FieldChange{Field: field, OldValue: oldValue, NewValue: newValue})
}

func (t *Ticket) touch() {
	t.updatedAt = biztime.NowUTC()
	t.version++
}

func validateSubject(s string) error {
	if s == "" {
		return fmt.Errorf("subject is required")
	}
	if utf8.RuneCountInString(s) > maxSubjectLength {
		return fmt.Errorf("subject exceeds maximum length of %d characters", maxSubjectLength)
	}
	return nil
}

func validateDescription(s string) error {
	if s == "" {
		return fmt.Errorf("description is required")
	}
	if utf8.RuneCountInString(s) > maxDescriptionLength {
		return fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}
	return nil
}

func uintString(p *uint) string {
	if p == nil {
		return ""
	}
	return fmt.Sprint(*p)
}

package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/orris-inc/servicedesk/internal/shared/biztime"
)

const maxCommentLength = 10000

type Comment struct {
	id        uint
	ticketID  uint
	authorID  uint
	body      string
	internal  bool
	createdAt time.Time
}

func NewComment(ticketID, authorID uint, body string, internal bool) (*Comment, error) {
	body = strings.TrimSpace(body)
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if body == "" {
		return nil, fmt.Errorf("comment body cannot be empty")
	}
	if utf8.RuneCountInString(body) > maxCommentLength {
		return nil, fmt.Errorf("comment exceeds maximum length of %d characters", maxCommentLength)
	}
	return &Comment{
		ticketID:  ticketID,
		authorID:  authorID,
		body:      body,
		internal:  internal,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructComment(id, ticketID, authorID uint, body string, internal bool, createdAt time.Time) *Comment {
	return &Comment{id: id, ticketID: ticketID, authorID: authorID, body: body, internal: internal, createdAt: createdAt}
}

func (c *Comment) ID() uint             { return c.id }
func (c *Comment) TicketID() uint       { return c.ticketID }
func (c *Comment) AuthorID() uint       { return c.authorID }
func (c *Comment) Body() string         { return c.body }
func (c *Comment) IsInternal() bool     { return c.internal }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }

func (c *Comment) SetID(id uint) { c.id = id }

// CountsAsFirstResponse is true for a public reply from someone other than the requester.
func (c *Comment) CountsAsFirstResponse(requesterID uint) bool {
	return !c.internal && c.authorID != requesterID
}

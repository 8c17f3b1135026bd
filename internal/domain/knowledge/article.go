// Package knowledge is the knowledge base article aggregate.
package knowledge

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/orris-inc/servicedesk/internal/shared/biztime"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
)

func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

const (
	maxTitleLength   = 200
	maxContentLength = 100000
	maxSlugLength    = 120
)

type Article struct {
	id              uint
	tenantID        *uint
	title           string
	slug            string
	content         string
	category        string
	tags            []string
	status          Status
	authorID        uint
	viewCount       int64
	helpfulCount    int64
	notHelpfulCount int64
	publishedAt     *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

func NewArticle(tenantID *uint, authorID uint, title, content, category string, tags []string) (*Article, error) {
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	now := biztime.NowUTC()
	a := &Article{tenantID: tenantID, authorID: authorID, status: StatusDraft, createdAt: now}
	if err := a.Edit(title, content, category, tags); err != nil {
		return nil, err
	}
	a.slug = Slugify(a.title)
	return a, nil
}

// ArticleCounters groups the engagement counters for reconstruction.
type ArticleCounters struct {
	Views      int64
	Helpful    int64
	NotHelpful int64
}

func ReconstructArticle(
	id uint,
	tenantID *uint,
	title, slug, content, category string,
	tags []string,
	status Status,
	authorID uint,
	counters ArticleCounters,
	publishedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Article {
	if tags == nil {
		tags = []string{}
	}
	return &Article{
		id:              id,
		tenantID:        tenantID,
		title:           title,
		slug:            slug,
		content:         content,
		category:        category,
		tags:            tags,
		status:          status,
		authorID:        authorID,
		viewCount:       counters.Views,
		helpfulCount:    counters.Helpful,
		notHelpfulCount: counters.NotHelpful,
		publishedAt:     publishedAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (a *Article) ID() uint                { return a.id }
func (a *Article) TenantID() *uint         { return a.tenantID }
func (a *Article) Title() string           { return a.title }
func (a *Article) Slug() string            { return a.slug }
func (a *Article) Content() string         { return a.content }
func (a *Article) Category() string        { return a.category }
func (a *Article) Tags() []string          { return append([]string(nil), a.tags...) }
func (a *Article) Status() Status          { return a.status }
func (a *Article) AuthorID() uint          { return a.authorID }
func (a *Article) ViewCount() int64        { return a.viewCount }
func (a *Article) HelpfulCount() int64     { return a.helpfulCount }
func (a *Article) NotHelpfulCount() int64  { return a.notHelpfulCount }
func (a *Article) PublishedAt() *time.Time { return a.publishedAt }
func (a *Article) CreatedAt() time.Time    { return a.createdAt }
func (a *Article) UpdatedAt() time.Time    { return a.updatedAt }

func (a *Article) SetID(id uint) { a.id = id }

// SetSlug is used by the use case after resolving collisions.
func (a *Article) SetSlug(slug string) { a.slug = slug }

func (a *Article) IsPublished() bool { return a.status == StatusPublished }

func (a *Article) Edit(title, content, category string, tags []string) error {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	}
	if content == "" {
		return fmt.Errorf("content is required")
	}
	if len(content) > maxContentLength {
		return fmt.Errorf("content exceeds maximum length of %d bytes", maxContentLength)
	}
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			clean = append(clean, t)
		}
	}
	a.title = title
	a.content = content
	a.category = strings.TrimSpace(category)
	a.tags = clean
	a.updatedAt = biztime.NowUTC()
	return nil
}

func (a *Article) Publish() error {
	if a.status == StatusPublished {
		return nil
	}
	now := biztime.NowUTC()
	a.status = StatusPublished
	if a.publishedAt == nil {
		a.publishedAt = &now
	}
	a.updatedAt = now
	return nil
}

func (a *Article) Archive() error {
	if a.status == StatusDraft {
		return fmt.Errorf("only published articles can be archived")
	}
	a.status = StatusArchived
	a.updatedAt = biztime.NowUTC()
	return nil
}

// HelpfulRatio is helpful/(helpful+not helpful), 0 without votes.
func (a *Article) HelpfulRatio() float64 {
	total := a.helpfulCount + a.notHelpfulCount
	if total == 0 {
		return 0
	}
	return float64(a.helpfulCount) / float64(total)
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases title and joins alphanumeric runs with '-'.
func Slugify(title string) string {
	s := strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if len(s) > maxSlugLength {
		s = strings.TrimRight(s[:maxSlugLength], "-")
	}
	if s == "" {
		s = "article"
	}
	return s
}

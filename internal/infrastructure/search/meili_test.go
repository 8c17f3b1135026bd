package search

import (
	"encoding/json"
	"testing"
	"time"

	meili "github.com/meilisearch/meilisearch-go"
	"github.com/stretchr/testify/assert"

	"github.com/orris-inc/servicedesk/internal/domain/knowledge"
)

func TestBuildFilters(t *testing.T) {
	tenant := uint(4)
	got := buildFilters(knowledge.SearchQuery{
		Statuses: []knowledge.Status{knowledge.StatusPublished, knowledge.StatusDraft},
		Category: `VPN "legacy"`,
		TenantID: &tenant,
	})
	assert.Equal(t, []string{
		`status IN ["PUBLISHED", "DRAFT"]`,
		`category = "VPN \"legacy\""`,
		`tenant_id IN [0, 4]`,
	}, got)

	assert.Empty(t, buildFilters(knowledge.SearchQuery{Text: "printer"}))
}

func TestHitID(t *testing.T) {
	id, ok := hitID(meili.Hit{"id": json.RawMessage(`17`)})
	assert.True(t, ok)
	assert.Equal(t, uint(17), id)

	_, ok = hitID(meili.Hit{"title": json.RawMessage(`"x"`)})
	assert.False(t, ok)
}

func TestToDocument_GlobalArticle(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a := knowledge.ReconstructArticle(9, nil, "Reset VPN", "reset-vpn", "steps", "NETWORK",
		[]string{"vpn"}, knowledge.StatusPublished, 1, knowledge.ArticleCounters{}, &now, now, now)

	doc := toDocument(a)
	assert.Equal(t, uint(9), doc.ID)
	assert.Zero(t, doc.TenantID)
	assert.Equal(t, "PUBLISHED", doc.Status)
}

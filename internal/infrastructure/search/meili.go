// Package search indexes knowledge base articles in Meilisearch.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	meili "github.com/meilisearch/meilisearch-go"

	"github.com/orris-inc/servicedesk/internal/domain/knowledge"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

const healthInterval = 10 * time.Second

var _ knowledge.SearchIndex = (*MeiliIndex)(nil)

// articleDocument is the indexed shape. Global articles carry tenant_id 0.
type articleDocument struct {
	ID       uint     `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Status   string   `json:"status"`
	TenantID uint     `json:"tenant_id"`
}

// MeiliIndex reports itself unavailable while Meilisearch is unreachable so
// callers fall back to SQL search.
type MeiliIndex struct {
	client  meili.ServiceManager
	uid     string
	healthy atomic.Bool
	done    chan struct{}
	logger  logger.Interface
}

func NewMeiliIndex(url, apiKey, uid string, log logger.Interface) *MeiliIndex {
	m := &MeiliIndex{
		client: meili.New(url, meili.WithAPIKey(apiKey)),
		uid:    uid,
		done:   make(chan struct{}),
		logger: log.With("component", "search.meili"),
	}

	if _, err := m.client.Health(); err != nil {
		m.logger.Warnw("meilisearch unavailable, using SQL search", "url", url, "error", err)
	} else {
		m.healthy.Store(true)
		m.configure()
	}

	go m.healthLoop()
	return m
}

func (m *MeiliIndex) configure() {
	if _, err := m.client.CreateIndex(&meili.IndexConfig{Uid: m.uid, PrimaryKey: "id"}); err != nil {
		m.logger.Debugw("create index (may already exist)", "index", m.uid, "error", err)
	}

	index := m.client.Index(m.uid)
	filterable := []interface{}{"status", "category", "tenant_id"}
	if _, err := index.UpdateFilterableAttributes(&filterable); err != nil {
		m.logger.Warnw("failed to update filterable attributes", "index", m.uid, "error", err)
	}
	searchable := []string{"title", "content", "tags"}
	if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
		m.logger.Warnw("failed to update searchable attributes", "index", m.uid, "error", err)
	}
}

func (m *MeiliIndex) healthLoop() {
	ticker := time.NewTicker(healthInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			_, err := m.client.Health()
			was := m.healthy.Load()
			m.healthy.Store(err == nil)
			if err == nil && !was {
				m.logger.Infow("meilisearch recovered, reconfiguring index", "index", m.uid)
				m.configure()
			}
		}
	}
}

func (m *MeiliIndex) Close() {
	close(m.done)
}

func (m *MeiliIndex) Available() bool {
	return m.healthy.Load()
}

func (m *MeiliIndex) Index(_ context.Context, a *knowledge.Article) error {
	doc := toDocument(a)
	if _, err := m.client.Index(m.uid).AddDocuments([]articleDocument{doc}, nil); err != nil {
		return fmt.Errorf("failed to index article %d: %w", a.ID(), err)
	}
	return nil
}

func (m *MeiliIndex) Remove(_ context.Context, id uint) error {
	if _, err := m.client.Index(m.uid).DeleteDocument(strconv.FormatUint(uint64(id), 10), nil); err != nil {
		return fmt.Errorf("failed to remove article %d from index: %w", id, err)
	}
	return nil
}

func (m *MeiliIndex) Search(_ context.Context, q knowledge.SearchQuery) ([]uint, int64, error) {
	if !m.healthy.Load() {
		return nil, 0, fmt.Errorf("meilisearch unhealthy")
	}

	req := &meili.SearchRequest{
		Offset:               int64(q.Offset),
		Limit:                int64(q.Limit),
		AttributesToRetrieve: []string{"id"},
	}
	if filters := buildFilters(q); len(filters) > 0 {
		req.Filter = filters
	}

	resp, err := m.client.Index(m.uid).Search(q.Text, req)
	if err != nil {
		m.healthy.Store(false)
		return nil, 0, fmt.Errorf("meilisearch search: %w", err)
	}

	ids := make([]uint, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		if id, ok := hitID(hit); ok {
			ids = append(ids, id)
		}
	}
	return ids, resp.EstimatedTotalHits, nil
}

func toDocument(a *knowledge.Article) articleDocument {
	doc := articleDocument{
		ID:       a.ID(),
		Title:    a.Title(),
		Content:  a.Content(),
		Category: a.Category(),
		Tags:     a.Tags(),
		Status:   string(a.Status()),
	}
	if t := a.TenantID(); t != nil {
		doc.TenantID = *t
	}
	return doc
}

// buildFilters returns AND-ed filter expressions.
func buildFilters(q knowledge.SearchQuery) []string {
	var filters []string
	if len(q.Statuses) > 0 {
		quoted := make([]string, 0, len(q.Statuses))
		for _, s := range q.Statuses {
			quoted = append(quoted, strconv.Quote(string(s)))
		}
		filters = append(filters, fmt.Sprintf("status IN [%s]", strings.Join(quoted, ", ")))
	}
	if q.Category != "" {
		filters = append(filters, fmt.Sprintf("category = %s", strconv.Quote(q.Category)))
	}
	if q.TenantID != nil {
		filters = append(filters, fmt.Sprintf("tenant_id IN [0, %d]", *q.TenantID))
	}
	return filters
}

func hitID(hit meili.Hit) (uint, bool) {
	raw, ok := hit["id"]
	if !ok {
		return 0, false
	}
	var id uint
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, false
	}
	return id, true
}

// Package services holds infrastructure services used by the use cases:
// ticket numbering and the notification hub.
package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/orris-inc/servicedesk/internal/domain/ticket"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
	"github.com/orris-inc/servicedesk/internal/shared/constants"
	"github.com/orris-inc/servicedesk/internal/shared/db"
)

const ticketNumberPrefix = "INC"

var _ ticket.NumberGenerator = (*TicketNumberGenerator)(nil)

// TicketNumberGenerator issues INC-YYYYMMDD-NNNN numbers. The daily sequence
// is seeded from the highest stored number and then kept in memory, so one
// process owns numbering; the unique index on tickets.number catches races
// between instances.
type TicketNumberGenerator struct {
	db    *gorm.DB
	mu    sync.Mutex
	cache map[string]int
}

func NewTicketNumberGenerator(gdb *gorm.DB) *TicketNumberGenerator {
	return &TicketNumberGenerator{
		db:    gdb,
		cache: make(map[string]int),
	}
}

func (g *TicketNumberGenerator) Generate(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	day := biztime.NowUTC().Format("20060102")
	seq, err := g.nextSequence(ctx, day)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%04d", ticketNumberPrefix, day, seq), nil
}

func (g *TicketNumberGenerator) nextSequence(ctx context.Context, day string) (int, error) {
	if seq, ok := g.cache[day]; ok {
		g.cache[day] = seq + 1
		return seq + 1, nil
	}
	// only today's entry is worth keeping
	clear(g.cache)

	prefix := fmt.Sprintf("%s-%s-", ticketNumberPrefix, day)
	// The sequence outgrows four digits on busy days, so a plain string MAX
	// would rank -9999 above -10000.
	var latest []string
	err := db.GetTxFromContext(ctx, g.db).
		Table(constants.TableTickets).
		Where("number LIKE ?", prefix+"%").
		Order("LENGTH(number) DESC, number DESC").
		Limit(1).
		Pluck("number", &latest).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get max ticket number: %w", err)
	}

	seq := 1
	if len(latest) > 0 && strings.HasPrefix(latest[0], prefix) {
		if n, err := strconv.Atoi(strings.TrimPrefix(latest[0], prefix)); err == nil {
			seq = n + 1
		}
	}

	g.cache[day] = seq
	return seq, nil
}

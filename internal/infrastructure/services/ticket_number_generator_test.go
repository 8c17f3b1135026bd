package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
)

func setupTicketDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gdb.AutoMigrate(&models.TicketModel{}))
	return gdb
}

func storeTicketNumber(t *testing.T, gdb *gorm.DB, number string) {
	t.Helper()
	require.NoError(t, gdb.Create(&models.TicketModel{
		Number: number, Subject: "s", Description: "d",
		Category: "GENERAL", Priority: "LOW", Status: "NEW", RequesterID: 1,
	}).Error)
}

func TestTicketNumberGenerator(t *testing.T) {
	gdb := setupTicketDB(t)

	restore := biztime.SetNowForTest(time.Date(2026, 5, 4, 23, 0, 0, 0, time.UTC))
	defer restore()

	storeTicketNumber(t, gdb, "INC-20260504-0041")

	g := NewTicketNumberGenerator(gdb)
	ctx := context.Background()

	first, err := g.Generate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INC-20260504-0042", first)

	second, err := g.Generate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INC-20260504-0043", second)

	restore2 := biztime.SetNowForTest(time.Date(2026, 5, 5, 0, 1, 0, 0, time.UTC))
	defer restore2()
	next, err := g.Generate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INC-20260505-0001", next)
}

func TestTicketNumberGenerator_PastFourDigits(t *testing.T) {
	gdb := setupTicketDB(t)

	restore := biztime.SetNowForTest(time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC))
	defer restore()

	storeTicketNumber(t, gdb, "INC-20260504-9999")
	storeTicketNumber(t, gdb, "INC-20260504-10000")

	next, err := NewTicketNumberGenerator(gdb).Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "INC-20260504-10001", next)
}

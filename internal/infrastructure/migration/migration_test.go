package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/orris-inc/servicedesk/internal/shared/constants"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestNewManager_StrategySelection(t *testing.T) {
	log := logger.NewNop()

	tests := []struct {
		name        string
		driver      string
		autoMigrate bool
		want        string
	}{
		{"mysql uses goose", constants.DriverMySQL, false, "goose"},
		{"sqlite uses automigrate", constants.DriverSQLite, false, "gorm-automigrate"},
		{"forced automigrate", constants.DriverMySQL, true, "gorm-automigrate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(tt.driver, tt.autoMigrate, log)
			assert.Equal(t, tt.want, m.GetStrategy().GetName())
		})
	}
}

func TestManager_AutoMigrateCreatesTables(t *testing.T) {
	db := openSQLite(t)
	m := NewManager(constants.DriverSQLite, false, logger.NewNop())

	require.NoError(t, m.Migrate(db))

	for _, table := range []string{
		constants.TableUsers,
		constants.TableUserRoles,
		constants.TableTickets,
		constants.TableSLATrackings,
		constants.TableArticles,
		constants.TableNotificationPreferences,
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestManager_VersionRequiresGoose(t *testing.T) {
	db := openSQLite(t)
	m := NewManager(constants.DriverSQLite, false, logger.NewNop())

	_, err := m.Version(db)
	assert.Error(t, err)
	assert.Error(t, m.Down(db, 1))
}

func TestScripts_Embedded(t *testing.T) {
	migrations, err := Scripts()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Equal(t, int64(1), migrations[0].Version)
}

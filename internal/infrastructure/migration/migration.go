// Package migration applies the database schema, either from the embedded
// goose scripts or through gorm AutoMigrate.
package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/servicedesk/internal/shared/constants"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

// Manager picks a strategy for the configured driver and runs it.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager chooses goose for mysql and AutoMigrate for sqlite or when
// autoMigrate is forced.
func NewManager(driver string, autoMigrate bool, log logger.Interface) *Manager {
	var strategy Strategy
	if autoMigrate || driver == constants.DriverSQLite {
		strategy = NewGormAutoMigrateStrategy(log)
	} else {
		strategy = NewGooseStrategy(driver, log)
	}
	return NewManagerWithStrategy(strategy, log)
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

func (m *Manager) versioned() (VersionedStrategy, error) {
	v, ok := m.strategy.(VersionedStrategy)
	if !ok {
		return nil, fmt.Errorf("strategy %s does not track versions", m.strategy.GetName())
	}
	return v, nil
}

func (m *Manager) Down(db *gorm.DB, steps int) error {
	v, err := m.versioned()
	if err != nil {
		return err
	}
	return v.MigrateDown(db, steps)
}

func (m *Manager) Version(db *gorm.DB) (int64, error) {
	v, err := m.versioned()
	if err != nil {
		return 0, err
	}
	return v.GetVersion(db)
}

func (m *Manager) Status(db *gorm.DB) error {
	v, err := m.versioned()
	if err != nil {
		return err
	}
	return v.Status(db)
}

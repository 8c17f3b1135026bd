package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	customfieldUsecases "github.com/orris-inc/servicedesk/internal/application/customfield/usecases"
	slaUsecases "github.com/orris-inc/servicedesk/internal/application/sla/usecases"
	tenantUsecases "github.com/orris-inc/servicedesk/internal/application/tenant/usecases"
	userUsecases "github.com/orris-inc/servicedesk/internal/application/user/usecases"
	"github.com/orris-inc/servicedesk/internal/infrastructure/auth"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/servicedesk/internal/infrastructure/repository"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

func newTestSeeder(t *testing.T, permissions PolicyInitializer) (*Seeder, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	log := logger.NewNop()
	userRepo := repository.NewUserRepository(db, log)
	tenantRepo := repository.NewTenantRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)

	return NewSeeder(UseCases{
		Organizations: tenantUsecases.NewOrganizationUseCases(orgRepo, log),
		Tenants:       tenantUsecases.NewTenantUseCases(tenantRepo, orgRepo, log),
		CreateUser:    userUsecases.NewCreateUserUseCase(userRepo, tenantRepo, auth.NewBcryptPasswordHasher(bcrypt.MinCost), log),
		Policies:      slaUsecases.NewPolicyUseCases(repository.NewSLAPolicyRepository(db), log),
		TicketTypes:   customfieldUsecases.NewTicketTypeUseCases(repository.NewTicketTypeRepository(db), log),
	}, permissions, log), db
}

func TestSeeder_RunIsRepeatable(t *testing.T) {
	calls := 0
	s, db := newTestSeeder(t, func() error { calls++; return nil })
	ctx := context.Background()

	first, err := s.Run(ctx, DefaultFile())
	require.NoError(t, err)
	assert.NotZero(t, first.OrganizationID)
	assert.NotZero(t, first.TenantID)
	assert.True(t, first.AdminCreated)
	assert.Equal(t, 4, first.Policies)
	assert.Equal(t, 3, first.TicketTypes)

	second, err := s.Run(ctx, DefaultFile())
	require.NoError(t, err)
	assert.Equal(t, first.OrganizationID, second.OrganizationID)
	assert.Equal(t, first.TenantID, second.TenantID)
	assert.False(t, second.AdminCreated)
	assert.Zero(t, second.Policies)
	assert.Zero(t, second.TicketTypes)
	assert.Equal(t, 2, calls)

	var users int64
	require.NoError(t, db.Model(&models.UserModel{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}

func TestParse(t *testing.T) {
	doc := []byte(`
organization:
  name: Acme
tenant:
  code: acme-it
  name: Acme IT
admin:
  email: root@acme.test
  name: Root
  password: Secret1234
sla_policies:
  - name: Urgent
    priority: CRITICAL
    first_response_minutes: 10
    resolution_minutes: 120
ticket_types:
  - name: Outage
    default_priority: CRITICAL
`)
	f, err := Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, "Acme", f.Organization.Name)
	assert.Equal(t, "acme-it", f.Tenant.Code)
	require.Len(t, f.SLAPolicies, 1)
	assert.Equal(t, 10, f.SLAPolicies[0].FirstResponseMinutes)
	require.Len(t, f.TicketTypes, 1)
	assert.Equal(t, "Outage", f.TicketTypes[0].Name)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "organization:\n  name: A\n  colour: red\ntenant:\n  code: a\nadmin:\n  email: a@b.c\n"},
		{"missing tenant", "organization:\n  name: A\nadmin:\n  email: a@b.c\n"},
		{"not yaml", "organization: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

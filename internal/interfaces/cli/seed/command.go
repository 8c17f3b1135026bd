package seed

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	customfieldUsecases "github.com/orris-inc/servicedesk/internal/application/customfield/usecases"
	slaUsecases "github.com/orris-inc/servicedesk/internal/application/sla/usecases"
	tenantUsecases "github.com/orris-inc/servicedesk/internal/application/tenant/usecases"
	userUsecases "github.com/orris-inc/servicedesk/internal/application/user/usecases"
	"github.com/orris-inc/servicedesk/internal/infrastructure/auth"
	"github.com/orris-inc/servicedesk/internal/infrastructure/config"
	"github.com/orris-inc/servicedesk/internal/infrastructure/database"
	"github.com/orris-inc/servicedesk/internal/infrastructure/migration"
	"github.com/orris-inc/servicedesk/internal/infrastructure/permission"
	"github.com/orris-inc/servicedesk/internal/infrastructure/repository"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

var (
	env  string
	file string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load bootstrap data",
		Long:  `Create the default organization, tenant, global admin, SLA policies, ticket types and permission policies. Existing records are left alone.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to a YAML seed file (default: built-in data)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.Logger, false); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	data := DefaultFile()
	if file != "" {
		if data, err = Load(file); err != nil {
			return err
		}
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()
	db := database.Get()

	if err := migration.NewManager(cfg.Database.Driver, false, log).Migrate(db); err != nil {
		return err
	}

	enforcer, err := permission.NewEnforcer(db, log)
	if err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(db, log)
	tenantRepo := repository.NewTenantRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)

	seeder := NewSeeder(UseCases{
		Organizations: tenantUsecases.NewOrganizationUseCases(orgRepo, log),
		Tenants:       tenantUsecases.NewTenantUseCases(tenantRepo, orgRepo, log),
		CreateUser:    userUsecases.NewCreateUserUseCase(userRepo, tenantRepo, hasher, log),
		Policies:      slaUsecases.NewPolicyUseCases(repository.NewSLAPolicyRepository(db), log),
		TicketTypes:   customfieldUsecases.NewTicketTypeUseCases(repository.NewTicketTypeRepository(db), log),
	}, func() error { return permission.InitDefaultPermissions(enforcer) }, log)

	res, err := seeder.Run(context.Background(), data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Organization: %d\n", res.OrganizationID)
	fmt.Fprintf(out, "Tenant:       %d\n", res.TenantID)
	fmt.Fprintf(out, "Admin:        %s (created: %t)\n", data.Admin.Email, res.AdminCreated)
	fmt.Fprintf(out, "SLA policies: %d created\n", res.Policies)
	fmt.Fprintf(out, "Ticket types: %d created\n", res.TicketTypes)
	return nil
}

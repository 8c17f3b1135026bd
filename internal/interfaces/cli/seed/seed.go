// Package seed loads the bootstrap data a fresh installation needs: one
// organization and tenant, a global admin, default SLA policies, ticket types
// and the casbin policy table.
package seed

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	customfieldUsecases "github.com/orris-inc/servicedesk/internal/application/customfield/usecases"
	slaUsecases "github.com/orris-inc/servicedesk/internal/application/sla/usecases"
	tenantUsecases "github.com/orris-inc/servicedesk/internal/application/tenant/usecases"
	userUsecases "github.com/orris-inc/servicedesk/internal/application/user/usecases"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type File struct {
	Organization OrganizationSeed `yaml:"organization"`
	Tenant       TenantSeed       `yaml:"tenant"`
	Admin        AdminSeed        `yaml:"admin"`
	SLAPolicies  []PolicySeed     `yaml:"sla_policies"`
	TicketTypes  []TicketTypeSeed `yaml:"ticket_types"`
}

type OrganizationSeed struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type TenantSeed struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type AdminSeed struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
}

type PolicySeed struct {
	Name                 string `yaml:"name"`
	Priority             string `yaml:"priority"`
	FirstResponseMinutes int    `yaml:"first_response_minutes"`
	ResolutionMinutes    int    `yaml:"resolution_minutes"`
}

type TicketTypeSeed struct {
	Name            string `yaml:"name"`
	Description     string `yaml:"description"`
	DefaultPriority string `yaml:"default_priority"`
}

// DefaultFile is used when no seed file is given.
func DefaultFile() *File {
	return &File{
		Organization: OrganizationSeed{Name: "Default Organization", Description: "Created by seed"},
		Tenant:       TenantSeed{Code: "default", Name: "Default Tenant"},
		Admin:        AdminSeed{Email: "admin@example.com", Name: "Administrator", Password: "ChangeMe123"},
		SLAPolicies: []PolicySeed{
			{Name: "Critical", Priority: "CRITICAL", FirstResponseMinutes: 15, ResolutionMinutes: 240},
			{Name: "High", Priority: "HIGH", FirstResponseMinutes: 60, ResolutionMinutes: 480},
			{Name: "Medium", Priority: "MEDIUM", FirstResponseMinutes: 240, ResolutionMinutes: 1440},
			{Name: "Low", Priority: "LOW", FirstResponseMinutes: 480, ResolutionMinutes: 4320},
		},
		TicketTypes: []TicketTypeSeed{
			{Name: "Incident", Description: "Something is broken", DefaultPriority: "HIGH"},
			{Name: "Service Request", Description: "Request for access, hardware or software", DefaultPriority: "MEDIUM"},
			{Name: "Question", Description: "How do I...", DefaultPriority: "LOW"},
		},
	}
}

// Parse decodes a YAML seed document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if f.Organization.Name == "" || f.Tenant.Code == "" || f.Admin.Email == "" {
		return nil, fmt.Errorf("seed file needs organization.name, tenant.code and admin.email")
	}
	return &f, nil
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// UseCases are the application operations seeding goes through.
type UseCases struct {
	Organizations *tenantUsecases.OrganizationUseCases
	Tenants       *tenantUsecases.TenantUseCases
	CreateUser    *userUsecases.CreateUserUseCase
	Policies      *slaUsecases.PolicyUseCases
	TicketTypes   *customfieldUsecases.TicketTypeUseCases
}

// PolicyInitializer writes the default role grants.
type PolicyInitializer func() error

// Result counts what a run created. Existing records are skipped.
type Result struct {
	OrganizationID uint
	TenantID       uint
	AdminCreated   bool
	Policies       int
	TicketTypes    int
}

type Seeder struct {
	uc          UseCases
	permissions PolicyInitializer
	logger      logger.Interface
}

func NewSeeder(uc UseCases, permissions PolicyInitializer, log logger.Interface) *Seeder {
	return &Seeder{uc: uc, permissions: permissions, logger: log}
}

// systemActor acts as a tenant-less global admin so seeded policies and
// ticket types are shared by every tenant.
var systemActor = authorization.Actor{Roles: authorization.Roles{authorization.RoleGlobalAdmin}}

// Run is safe to repeat.
func (s *Seeder) Run(ctx context.Context, f *File) (*Result, error) {
	res := &Result{}

	if s.permissions != nil {
		if err := s.permissions(); err != nil {
			return nil, fmt.Errorf("failed to seed permissions: %w", err)
		}
	}

	orgID, err := s.organization(ctx, f.Organization)
	if err != nil {
		return nil, err
	}
	res.OrganizationID = orgID

	tenantID, err := s.tenant(ctx, orgID, f.Tenant)
	if err != nil {
		return nil, err
	}
	res.TenantID = tenantID

	_, err = s.uc.CreateUser.Execute(ctx, userUsecases.CreateUserCommand{
		Actor:    systemActor,
		Email:    f.Admin.Email,
		Name:     f.Admin.Name,
		Password: f.Admin.Password,
		Roles:    []string{string(authorization.RoleGlobalAdmin)},
	})
	switch {
	case err == nil:
		res.AdminCreated = true
	case errors.IsConflictError(err) || errors.IsDuplicateError(err):
		s.logger.Infow("admin already exists", "email", f.Admin.Email)
	default:
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	if res.Policies, err = s.policies(ctx, f.SLAPolicies); err != nil {
		return nil, err
	}
	if res.TicketTypes, err = s.ticketTypes(ctx, f.TicketTypes); err != nil {
		return nil, err
	}

	s.logger.Infow("seed completed",
		"organization_id", res.OrganizationID,
		"tenant_id", res.TenantID,
		"admin_created", res.AdminCreated,
		"policies", res.Policies,
		"ticket_types", res.TicketTypes)
	return res, nil
}

func (s *Seeder) organization(ctx context.Context, seed OrganizationSeed) (uint, error) {
	orgs, _, err := s.uc.Organizations.List(ctx, 1, 100)
	if err != nil {
		return 0, fmt.Errorf("failed to list organizations: %w", err)
	}
	for _, o := range orgs {
		if strings.EqualFold(o.Name, seed.Name) {
			return o.ID, nil
		}
	}
	org, err := s.uc.Organizations.Create(ctx, tenantUsecases.OrganizationCommand{Name: seed.Name, Description: seed.Description})
	if err != nil {
		return 0, fmt.Errorf("failed to create organization: %w", err)
	}
	return org.ID, nil
}

func (s *Seeder) tenant(ctx context.Context, orgID uint, seed TenantSeed) (uint, error) {
	tenants, _, err := s.uc.Tenants.List(ctx, tenantUsecases.ListTenantsQuery{
		Actor:          systemActor,
		OrganizationID: &orgID,
		Search:         seed.Code,
		Page:           1,
		PageSize:       100,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list tenants: %w", err)
	}
	for _, t := range tenants {
		if strings.EqualFold(t.Code, seed.Code) {
			return t.ID, nil
		}
	}
	t, err := s.uc.Tenants.Create(ctx, tenantUsecases.CreateTenantCommand{OrganizationID: orgID, Code: seed.Code, Name: seed.Name})
	if err != nil {
		return 0, fmt.Errorf("failed to create tenant %q: %w", seed.Code, err)
	}
	return t.ID, nil
}

func (s *Seeder) policies(ctx context.Context, seeds []PolicySeed) (int, error) {
	existing, err := s.uc.Policies.List(ctx, systemActor, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to list sla policies: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, p := range existing {
		if p.TenantID == nil {
			have[strings.ToUpper(p.Priority)] = true
		}
	}

	created := 0
	for _, p := range seeds {
		if have[strings.ToUpper(p.Priority)] {
			continue
		}
		if _, err := s.uc.Policies.Create(ctx, slaUsecases.PolicyCommand{
			Actor:                systemActor,
			Name:                 p.Name,
			Priority:             p.Priority,
			FirstResponseMinutes: p.FirstResponseMinutes,
			ResolutionMinutes:    p.ResolutionMinutes,
			Default:              true,
		}); err != nil {
			return created, fmt.Errorf("failed to create sla policy %q: %w", p.Name, err)
		}
		have[strings.ToUpper(p.Priority)] = true
		created++
	}
	return created, nil
}

func (s *Seeder) ticketTypes(ctx context.Context, seeds []TicketTypeSeed) (int, error) {
	existing, err := s.uc.TicketTypes.List(ctx, systemActor, true)
	if err != nil {
		return 0, fmt.Errorf("failed to list ticket types: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, t := range existing {
		have[strings.ToLower(t.Name)] = true
	}

	created := 0
	for _, t := range seeds {
		if have[strings.ToLower(t.Name)] {
			continue
		}
		if _, err := s.uc.TicketTypes.Create(ctx, customfieldUsecases.TicketTypeCommand{
			Actor:           systemActor,
			Name:            t.Name,
			Description:     t.Description,
			DefaultPriority: t.DefaultPriority,
			Global:          true,
		}); err != nil {
			return created, fmt.Errorf("failed to create ticket type %q: %w", t.Name, err)
		}
		have[strings.ToLower(t.Name)] = true
		created++
	}
	return created, nil
}

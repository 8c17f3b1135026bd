package usecases

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/application/user/dto"
	"github.com/orris-inc/servicedesk/internal/domain/tenant"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	vo "github.com/orris-inc/servicedesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type CreateUserCommand struct {
	Actor    authorization.Actor
	Email    string
	Name     string
	Password string
	Roles    []string
	TenantID *uint
}

type CreateUserUseCase struct {
	userRepo   user.Repository
	tenantRepo tenant.Repository
	hasher     user.PasswordHasher
	logger     logger.Interface
}

func NewCreateUserUseCase(
	userRepo user.Repository,
	tenantRepo tenant.Repository,
	hasher user.PasswordHasher,
	logger logger.Interface,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		hasher:     hasher,
		logger:     logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing create user use case", "actor_id", cmd.Actor.UserID)

	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := vo.ValidatePassword(cmd.Password); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	roles, err := parseRoles(cmd.Roles)
	if err != nil {
		return nil, err
	}
	if err := checkGrant(cmd.Actor, roles); err != nil {
		return nil, err
	}

	// tenant admins always create inside their own tenant
	tenantID := cmd.Actor.TenantID
	if cmd.Actor.IsGlobalAdmin() {
		tenantID = cmd.TenantID
	}
	if tenantID != nil {
		t, err := uc.tenantRepo.GetByID(ctx, *tenantID)
		if err != nil {
			uc.logger.Errorw("failed to get tenant", "tenant_id", *tenantID, "error", err)
			return nil, errors.NewInternalError("failed to create user")
		}
		if t == nil {
			return nil, errors.NewNotFoundError("tenant not found")
		}
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to check email", "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}
	if exists {
		return nil, errors.NewConflictError("email already registered")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}

	u, err := user.NewUser(email, cmd.Name, hash, tenantID, roles)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("email already registered")
		}
		uc.logger.Errorw("failed to create user", "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}

	uc.logger.Infow("user created successfully", "user_id", u.ID(), "roles", roles.Strings())
	return dto.ToUserDTO(u), nil
}

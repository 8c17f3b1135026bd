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

type RegisterCommand struct {
	Email      string
	Password   string
	Name       string
	TenantCode string
}

type RegisterUseCase struct {
	userRepo   user.Repository
	tenantRepo tenant.Repository
	hasher     user.PasswordHasher
	tokens     TokenService
	logger     logger.Interface
}

func NewRegisterUseCase(
	userRepo user.Repository,
	tenantRepo tenant.Repository,
	hasher user.PasswordHasher,
	tokens TokenService,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		hasher:     hasher,
		tokens:     tokens,
		logger:     logger,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*AuthResult, error) {
	uc.logger.Infow("executing register use case", "tenant_code", cmd.TenantCode)

	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := vo.ValidatePassword(cmd.Password); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	code, err := tenant.NormalizeCode(cmd.TenantCode)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	t, err := uc.tenantRepo.GetByCode(ctx, code)
	if err != nil {
		uc.logger.Errorw("failed to get tenant", "code", code, "error", err)
		return nil, errors.NewInternalError("failed to register")
	}
	if t == nil || !t.IsActive() {
		return nil, errors.NewNotFoundError("tenant not found")
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to check email", "error", err)
		return nil, errors.NewInternalError("failed to register")
	}
	if exists {
		return nil, errors.NewConflictError("email already registered")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to register")
	}

	tenantID := t.ID()
	u, err := user.NewUser(email, cmd.Name, hash, &tenantID, authorization.Roles{authorization.RoleEndUser})
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("email already registered")
		}
		uc.logger.Errorw("failed to create user", "error", err)
		return nil, errors.NewInternalError("failed to register")
	}

	tokens, err := uc.tokens.Generate(u)
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to generate tokens")
	}

	uc.logger.Infow("user registered successfully", "user_id", u.ID(), "tenant_id", tenantID)
	return &AuthResult{User: dto.ToUserDTO(u), Tokens: tokens}, nil
}

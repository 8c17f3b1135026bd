package usecases

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/application/user/dto"
	"github.com/orris-inc/servicedesk/internal/domain/tenant"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	vo "github.com/orris-inc/servicedesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/servicedesk/internal/shared/biztime"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	userRepo   user.Repository
	tenantRepo tenant.Repository
	hasher     user.PasswordHasher
	tokens     TokenService
	logger     logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	tenantRepo tenant.Repository,
	hasher user.PasswordHasher,
	tokens TokenService,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		hasher:     hasher,
		tokens:     tokens,
		logger:     logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*AuthResult, error) {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil || cmd.Password == "" {
		return nil, errors.NewInvalidCredentialsError()
	}

	u, err := uc.userRepo.GetByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, errors.NewInternalError("failed to login")
	}
	// unknown email and wrong password are indistinguishable to the caller
	if u == nil {
		uc.logger.Warnw("login attempt for unknown email", "email_domain", email.Domain())
		return nil, errors.NewInvalidCredentialsError()
	}
	if err := uc.hasher.Verify(cmd.Password, u.PasswordHash()); err != nil {
		uc.logger.Warnw("login attempt with wrong password", "user_id", u.ID())
		return nil, errors.NewInvalidCredentialsError()
	}
	if !u.IsActive() {
		uc.logger.Warnw("login attempt for inactive user", "user_id", u.ID())
		return nil, errors.NewAccountInactiveError()
	}
	if err := ensureTenantActive(ctx, uc.tenantRepo, u); err != nil {
		uc.logger.Warnw("login attempt for user of inactive tenant", "user_id", u.ID())
		return nil, err
	}

	tokens, err := uc.tokens.Generate(u)
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to generate tokens")
	}

	u.RecordLogin(biztime.NowUTC())
	if err := uc.userRepo.UpdateLastLogin(ctx, u); err != nil {
		// non-critical
		uc.logger.Warnw("failed to update last login", "user_id", u.ID(), "error", err)
	}

	uc.logger.Infow("user logged in successfully", "user_id", u.ID())
	return &AuthResult{User: dto.ToUserDTO(u), Tokens: tokens}, nil
}

func ensureTenantActive(ctx context.Context, tenantRepo tenant.Repository, u *user.User) error {
	if u.TenantID() == nil {
		return nil
	}
	t, err := tenantRepo.GetByID(ctx, *u.TenantID())
	if err != nil {
		return errors.NewInternalError("failed to load tenant")
	}
	if t == nil || !t.IsActive() {
		return errors.NewAccountInactiveError()
	}
	return nil
}

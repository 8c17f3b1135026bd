package usecases

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/application/user/dto"
	"github.com/orris-inc/servicedesk/internal/domain/tenant"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenUseCase struct {
	userRepo   user.Repository
	tenantRepo tenant.Repository
	tokens     TokenService
	logger     logger.Interface
}

func NewRefreshTokenUseCase(
	userRepo user.Repository,
	tenantRepo tenant.Repository,
	tokens TokenService,
	logger logger.Interface,
) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		tokens:     tokens,
		logger:     logger,
	}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*AuthResult, error) {
	if cmd.RefreshToken == "" {
		return nil, errors.NewValidationError("refresh token is required")
	}

	userID, err := uc.tokens.ParseRefresh(cmd.RefreshToken)
	if err != nil {
		uc.logger.Warnw("invalid refresh token", "error", err)
		if errors.IsAuthError(err) {
			return nil, err
		}
		return nil, errors.NewTokenInvalidError()
	}

	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to refresh token")
	}
	if u == nil {
		return nil, errors.NewTokenInvalidError()
	}
	if !u.IsActive() {
		return nil, errors.NewAccountInactiveError()
	}
	if err := ensureTenantActive(ctx, uc.tenantRepo, u); err != nil {
		return nil, err
	}

	tokens, err := uc.tokens.Generate(u)
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to generate tokens")
	}

	uc.logger.Infow("token refreshed successfully", "user_id", u.ID())
	return &AuthResult{User: dto.ToUserDTO(u), Tokens: tokens}, nil
}

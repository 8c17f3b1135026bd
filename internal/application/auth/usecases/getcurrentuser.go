package usecases

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/application/user/dto"
	"github.com/orris-inc/servicedesk/internal/domain/tenant"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type TenantRef struct {
	ID   uint   `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type CurrentUserResult struct {
	*dto.UserDTO
	Tenant *TenantRef `json:"tenant"`
}

type GetCurrentUserUseCase struct {
	userRepo   user.Repository
	tenantRepo tenant.Repository
	logger     logger.Interface
}

func NewGetCurrentUserUseCase(userRepo user.Repository, tenantRepo tenant.Repository, logger logger.Interface) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{userRepo: userRepo, tenantRepo: tenantRepo, logger: logger}
}

func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, userID uint) (*CurrentUserResult, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to get user")
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	result := &CurrentUserResult{UserDTO: dto.ToUserDTO(u)}
	if u.TenantID() != nil {
		t, err := uc.tenantRepo.GetByID(ctx, *u.TenantID())
		if err != nil {
			uc.logger.Errorw("failed to get tenant", "tenant_id", *u.TenantID(), "error", err)
			return nil, errors.NewInternalError("failed to get user")
		}
		if t != nil {
			result.Tenant = &TenantRef{ID: t.ID(), Code: t.Code(), Name: t.Name()}
		}
	}
	return result, nil
}

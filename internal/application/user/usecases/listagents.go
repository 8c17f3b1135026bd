package usecases

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/application/user/dto"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/mapper"
)

type ListAgentsUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListAgentsUseCase(userRepo user.Repository, logger logger.Interface) *ListAgentsUseCase {
	return &ListAgentsUseCase{userRepo: userRepo, logger: logger}
}

// Execute lists active assignable users of tenantID, or of the actor's tenant
// when the actor is not a global admin.
func (uc *ListAgentsUseCase) Execute(ctx context.Context, actor authorization.Actor, tenantID *uint) ([]*dto.UserSummaryDTO, error) {
	scope := actor.TenantFilter()
	if actor.IsGlobalAdmin() && tenantID != nil {
		scope = tenantID
	}
	users, err := uc.userRepo.ListByRoles(ctx, scope, authorization.AssignableRoles)
	if err != nil {
		uc.logger.Errorw("failed to list agents", "error", err)
		return nil, errors.NewInternalError("failed to list agents")
	}
	active := make([]*user.User, 0, len(users))
	for _, u := range users {
		if u.IsActive() {
			active = append(active, u)
		}
	}
	return mapper.MapSlice(active, dto.ToUserSummary), nil
}

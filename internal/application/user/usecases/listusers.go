package usecases

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/application/user/dto"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/mapper"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

type ListUsersQuery struct {
	Actor    authorization.Actor
	TenantID *uint
	Role     string
	Active   *bool
	Search   string
	Page     int
	PageSize int
}

type ListUsersResult struct {
	Users    []*dto.UserDTO
	Total    int64
	Page     int
	PageSize int
}

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo, logger: logger}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, q ListUsersQuery) (*ListUsersResult, error) {
	p := utils.ValidatePagination(q.Page, q.PageSize)
	filter := user.Filter{
		TenantID: q.Actor.TenantFilter(),
		Active:   q.Active,
		Search:   q.Search,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	if q.Actor.IsGlobalAdmin() && q.TenantID != nil {
		filter.TenantID = q.TenantID
	}
	if q.Role != "" {
		r, ok := authorization.ParseRole(q.Role)
		if !ok {
			return nil, errors.NewValidationError("invalid role: " + q.Role)
		}
		filter.Role = &r
	}

	users, total, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, errors.NewInternalError("failed to list users")
	}

	return &ListUsersResult{
		Users:    mapper.MapSlice(users, dto.ToUserDTO),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}

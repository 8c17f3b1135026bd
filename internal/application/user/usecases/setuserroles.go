package usecases

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/application/user/dto"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type SetUserRolesCommand struct {
	Actor  authorization.Actor
	UserID uint
	Roles  []string
}

type SetUserRolesUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewSetUserRolesUseCase(userRepo user.Repository, logger logger.Interface) *SetUserRolesUseCase {
	return &SetUserRolesUseCase{userRepo: userRepo, logger: logger}
}

func (uc *SetUserRolesUseCase) Execute(ctx context.Context, cmd SetUserRolesCommand) (*dto.UserDTO, error) {
	roles, err := parseRoles(cmd.Roles)
	if err != nil {
		return nil, err
	}
	if err := checkGrant(cmd.Actor, roles); err != nil {
		uc.logger.Warnw("role grant rejected", "actor_id", cmd.Actor.UserID, "user_id", cmd.UserID)
		return nil, err
	}

	u, err := loadUser(ctx, uc.userRepo, uc.logger, cmd.Actor, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if err := u.SetRoles(roles); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user roles", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update roles")
	}

	uc.logger.Infow("user roles replaced", "user_id", u.ID(), "roles", roles.Strings(), "actor_id", cmd.Actor.UserID)
	return dto.ToUserDTO(u), nil
}

package usecases

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/application/user/dto"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type SetUserActiveCommand struct {
	Actor  authorization.Actor
	UserID uint
	Active bool
}

type SetUserActiveUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewSetUserActiveUseCase(userRepo user.Repository, logger logger.Interface) *SetUserActiveUseCase {
	return &SetUserActiveUseCase{userRepo: userRepo, logger: logger}
}

func (uc *SetUserActiveUseCase) Execute(ctx context.Context, cmd SetUserActiveCommand) (*dto.UserDTO, error) {
	if !cmd.Active && cmd.Actor.UserID == cmd.UserID {
		return nil, errors.NewValidationError("you cannot deactivate your own account")
	}

	u, err := loadUser(ctx, uc.userRepo, uc.logger, cmd.Actor, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.Active {
		u.Activate()
	} else {
		u.Deactivate()
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update user")
	}

	uc.logger.Infow("user activation changed", "user_id", u.ID(), "active", cmd.Active, "actor_id", cmd.Actor.UserID)
	return dto.ToUserDTO(u), nil
}

package usecases

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/application/user/dto"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	vo "github.com/orris-inc/servicedesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type UpdateUserCommand struct {
	Actor  authorization.Actor
	UserID uint
	Name   *string
	Email  *string
}

type UpdateUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewUpdateUserUseCase(userRepo user.Repository, logger logger.Interface) *UpdateUserUseCase {
	return &UpdateUserUseCase{userRepo: userRepo, logger: logger}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, cmd UpdateUserCommand) (*dto.UserDTO, error) {
	u, err := loadUser(ctx, uc.userRepo, uc.logger, cmd.Actor, cmd.UserID)
	if err != nil {
		return nil, err
	}

	name := u.Name()
	if cmd.Name != nil {
		name = *cmd.Name
	}
	email := u.Email()
	if cmd.Email != nil {
		email, err = vo.NewEmail(*cmd.Email)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if email != u.Email() {
			exists, err := uc.userRepo.ExistsByEmail(ctx, email.String())
			if err != nil {
				uc.logger.Errorw("failed to check email", "error", err)
				return nil, errors.NewInternalError("failed to update user")
			}
			if exists {
				return nil, errors.NewConflictError("email already registered")
			}
		}
	}

	if err := u.UpdateProfile(name, email); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("email already registered")
		}
		uc.logger.Errorw("failed to update user", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update user")
	}

	uc.logger.Infow("user updated successfully", "user_id", u.ID(), "actor_id", cmd.Actor.UserID)
	return dto.ToUserDTO(u), nil
}

package usecases

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type DeleteUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewDeleteUserUseCase(userRepo user.Repository, logger logger.Interface) *DeleteUserUseCase {
	return &DeleteUserUseCase{userRepo: userRepo, logger: logger}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, actor authorization.Actor, userID uint) error {
	if actor.UserID == userID {
		return errors.NewValidationError("you cannot delete your own account")
	}
	u, err := loadUser(ctx, uc.userRepo, uc.logger, actor, userID)
	if err != nil {
		return err
	}
	if err := uc.userRepo.Delete(ctx, u.ID()); err != nil {
		uc.logger.Errorw("failed to delete user", "user_id", u.ID(), "error", err)
		return errors.NewInternalError("failed to delete user")
	}
	uc.logger.Infow("user deleted", "user_id", u.ID(), "actor_id", actor.UserID)
	return nil
}

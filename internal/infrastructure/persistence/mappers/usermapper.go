package mappers

import (
	"fmt"

	"github.com/orris-inc/servicedesk/internal/domain/user"
	vo "github.com/orris-inc/servicedesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
)

// UserMapper converts users together with their role rows.
type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	RoleModels(u *user.User) []models.RoleAssignmentModel
	ToDomain(model *models.UserModel) (*user.User, error)
	ToDomainList(list []models.UserModel) ([]*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		TenantID:     u.TenantID(),
		Email:        u.Email().String(),
		Name:         u.Name(),
		PasswordHash: u.PasswordHash(),
		Active:       u.IsActive(),
		LastLoginAt:  u.LastLoginAt(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func (m *UserMapperImpl) RoleModels(u *user.User) []models.RoleAssignmentModel {
	roles := u.Roles()
	out := make([]models.RoleAssignmentModel, 0, len(roles))
	for _, r := range roles {
		out = append(out, models.RoleAssignmentModel{UserID: u.ID(), Role: r.String()})
	}
	return out
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	email, err := vo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid stored email (id=%d): %w", model.ID, err)
	}
	names := make([]string, 0, len(model.Roles))
	for _, r := range model.Roles {
		names = append(names, r.Role)
	}
	return user.ReconstructUser(
		model.ID,
		model.TenantID,
		email,
		model.Name,
		model.PasswordHash,
		model.Active,
		authorization.RolesFromStrings(names),
		utcPtr(model.LastLoginAt),
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	), nil
}

func (m *UserMapperImpl) ToDomainList(list []models.UserModel) ([]*user.User, error) {
	out := make([]*user.User, 0, len(list))
	for i := range list {
		u, err := m.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

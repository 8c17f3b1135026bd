package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/servicedesk/internal/domain/user"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/servicedesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/db"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

var userOrderByFields = map[string]string{
	"id":         "id",
	"name":       "name",
	"email":      "email",
	"created_at": "created_at",
}

// UserRepository stores users and their role assignments.
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

func NewUserRepository(gdb *gorm.DB, logger logger.Interface) *UserRepository {
	return &UserRepository{
		db:     gdb,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	model.Roles = r.mapper.RoleModels(u)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	u.SetID(model.ID)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	roles := r.mapper.RoleModels(u)

	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.UserModel{}).
			Where("id = ?", model.ID).
			Select("tenant_id", "email", "name", "password_hash", "active", "last_login_at", "updated_at").
			Updates(model)
		if result.Error != nil {
			return fmt.Errorf("failed to update user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("user not found")
		}

		if err := tx.Where("user_id = ?", model.ID).Delete(&models.RoleAssignmentModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear user roles: %w", err)
		}
		if len(roles) > 0 {
			if err := tx.Create(&roles).Error; err != nil {
				return fmt.Errorf("failed to assign user roles: %w", err)
			}
		}
		return nil
	})
}

// Delete soft deletes the user and keeps the role rows for auditing.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.UserModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Preload("Roles").First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Preload("Roles").Where("email = ?", email).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

// ExistsByEmail also sees soft-deleted rows because the unique index does.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Unscoped().Model(&models.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) List(ctx context.Context, filter user.Filter) ([]*user.User, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{}).
		Scopes(db.TenantScope("tenant_id", filter.TenantID))

	if filter.Role != nil {
		query = query.Where("id IN (?)", r.roleHolders([]authorization.Role{*filter.Role}))
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	query = query.Scopes(db.Search(filter.Search, "name", "email"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var list []models.UserModel
	if err := query.
		Preload("Roles").
		Scopes(db.OrderBy(userOrderByFields, "id", "asc", "id ASC"), db.Paginate(filter.Page, filter.PageSize)).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users, err := r.mapper.ToDomainList(list)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) ListByRoles(ctx context.Context, tenantID *uint, roles []authorization.Role) ([]*user.User, error) {
	if len(roles) == 0 {
		return []*user.User{}, nil
	}
	var list []models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).
		Preload("Roles").
		Scopes(db.TenantScope("tenant_id", tenantID)).
		Where("active = ?", true).
		Where("id IN (?)", r.roleHolders(roles)).
		Order("name ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	return r.mapper.ToDomainList(list)
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*user.User, error) {
	out := make(map[uint]*user.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var list []models.UserModel
	// deleted users still label the tickets they touched
	if err := db.GetTxFromContext(ctx, r.db).Unscoped().Preload("Roles").Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}
	for i := range list {
		u, err := r.mapper.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out[u.ID()] = u
	}
	return out, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, u *user.User) error {
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{}).
		Where("id = ?", u.ID()).
		UpdateColumn("last_login_at", u.LastLoginAt()).Error; err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

func (r *UserRepository) roleHolders(roles []authorization.Role) *gorm.DB {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.String())
	}
	return r.db.Model(&models.RoleAssignmentModel{}).
		Select("user_id").
		Where("role IN ?", names)
}

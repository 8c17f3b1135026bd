package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/orris-inc/servicedesk/internal/domain/tenant"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	vo "github.com/orris-inc/servicedesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
)

type mockUserRepository struct {
	CreateFunc          func(ctx context.Context, u *user.User) error
	UpdateFunc          func(ctx context.Context, u *user.User) error
	GetByIDFunc         func(ctx context.Context, id uint) (*user.User, error)
	GetByEmailFunc      func(ctx context.Context, email string) (*user.User, error)
	ExistsByEmailFunc   func(ctx context.Context, email string) (bool, error)
	UpdateLastLoginFunc func(ctx context.Context, u *user.User) error
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	u.SetID(1)
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id uint) error { return nil }

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) List(ctx context.Context, filter user.Filter) ([]*user.User, int64, error) {
	return nil, 0, nil
}

func (m *mockUserRepository) ListByRoles(ctx context.Context, tenantID *uint, roles []authorization.Role) ([]*user.User, error) {
	return nil, nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*user.User, error) {
	return map[uint]*user.User{}, nil
}

func (m *mockUserRepository) UpdateLastLogin(ctx context.Context, u *user.User) error {
	if m.UpdateLastLoginFunc != nil {
		return m.UpdateLastLoginFunc(ctx, u)
	}
	return nil
}

type mockTenantRepository struct {
	GetByIDFunc   func(ctx context.Context, id uint) (*tenant.Tenant, error)
	GetByCodeFunc func(ctx context.Context, code string) (*tenant.Tenant, error)
}

func (m *mockTenantRepository) Create(ctx context.Context, t *tenant.Tenant) error { return nil }
func (m *mockTenantRepository) Update(ctx context.Context, t *tenant.Tenant) error { return nil }

func (m *mockTenantRepository) GetByID(ctx context.Context, id uint) (*tenant.Tenant, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return tenant.ReconstructTenant(id, 1, "acme", "Acme", true, time.Now(), time.Now()), nil
}

func (m *mockTenantRepository) GetByCode(ctx context.Context, code string) (*tenant.Tenant, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *mockTenantRepository) List(ctx context.Context, filter tenant.Filter) ([]*tenant.Tenant, int64, error) {
	return nil, 0, nil
}

// fakeHasher prefixes instead of hashing.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (fakeHasher) Verify(plain, hash string) error {
	if hash != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

type mockTokenService struct {
	GenerateFunc     func(u *user.User) (*TokenPair, error)
	ParseRefreshFunc func(token string) (uint, error)
}

func (m *mockTokenService) Generate(u *user.User) (*TokenPair, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(u)
	}
	return &TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}, nil
}

func (m *mockTokenService) ParseRefresh(token string) (uint, error) {
	if m.ParseRefreshFunc != nil {
		return m.ParseRefreshFunc(token)
	}
	return 0, errors.New("invalid")
}

func testUser(id uint, email, password string, active bool, tenantID *uint, roles ...authorization.Role) *user.User {
	e, _ := vo.NewEmail(email)
	now := time.Now()
	return user.ReconstructUser(id, tenantID, e, "Test User", "hashed:"+password, active, authorization.Roles(roles), nil, now, now)
}

func uintPtr(v uint) *uint { return &v }

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
	users             map[uint]*user.User
	ListFunc          func(ctx context.Context, filter user.Filter) ([]*user.User, int64, error)
	ListByRolesFunc   func(ctx context.Context, tenantID *uint, roles []authorization.Role) ([]*user.User, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
	updated           int
	deleted           []uint
}

func newMockUserRepository(users ...*user.User) *mockUserRepository {
	m := &mockUserRepository{users: map[uint]*user.User{}}
	for _, u := range users {
		m.users[u.ID()] = u
	}
	return m
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	u.SetID(uint(len(m.users) + 100))
	m.users[u.ID()] = u
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	m.updated++
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id uint) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email().String() == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	u, _ := m.GetByEmail(ctx, email)
	return u != nil, nil
}

func (m *mockUserRepository) List(ctx context.Context, filter user.Filter) ([]*user.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockUserRepository) ListByRoles(ctx context.Context, tenantID *uint, roles []authorization.Role) ([]*user.User, error) {
	if m.ListByRolesFunc != nil {
		return m.ListByRolesFunc(ctx, tenantID, roles)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*user.User, error) {
	return m.users, nil
}

func (m *mockUserRepository) UpdateLastLogin(ctx context.Context, u *user.User) error { return nil }

type mockTenantRepository struct {
	tenants map[uint]*tenant.Tenant
}

func (m *mockTenantRepository) Create(ctx context.Context, t *tenant.Tenant) error { return nil }
func (m *mockTenantRepository) Update(ctx context.Context, t *tenant.Tenant) error { return nil }

func (m *mockTenantRepository) GetByID(ctx context.Context, id uint) (*tenant.Tenant, error) {
	return m.tenants[id], nil
}

func (m *mockTenantRepository) GetByCode(ctx context.Context, code string) (*tenant.Tenant, error) {
	return nil, nil
}

func (m *mockTenantRepository) List(ctx context.Context, filter tenant.Filter) ([]*tenant.Tenant, int64, error) {
	return nil, 0, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (fakeHasher) Verify(plain, hash string) error {
	if hash != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

func testUser(id uint, email string, active bool, tenantID *uint, roles ...authorization.Role) *user.User {
	e, _ := vo.NewEmail(email)
	now := time.Now()
	return user.ReconstructUser(id, tenantID, e, "User "+email, "hashed:x", active, authorization.Roles(roles), nil, now, now)
}

func uintPtr(v uint) *uint { return &v }

func adminOf(tenantID uint) authorization.Actor {
	return authorization.Actor{UserID: 1, TenantID: uintPtr(tenantID), Roles: authorization.Roles{authorization.RoleAdmin}}
}

func globalAdmin() authorization.Actor {
	return authorization.Actor{UserID: 1, Roles: authorization.Roles{authorization.RoleGlobalAdmin}}
}

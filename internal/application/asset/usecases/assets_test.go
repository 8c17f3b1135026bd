package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/servicedesk/internal/domain/asset"
	"github.com/orris-inc/servicedesk/internal/domain/user"
	uvo "github.com/orris-inc/servicedesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

type mockAssetRepository struct {
	assets     map[uint]*asset.Asset
	lastFilter asset.Filter
}

func newMockAssetRepository() *mockAssetRepository {
	return &mockAssetRepository{assets: map[uint]*asset.Asset{}}
}

func (m *mockAssetRepository) Create(ctx context.Context, a *asset.Asset) error {
	a.SetID(uint(len(m.assets) + 1))
	m.assets[a.ID()] = a
	return nil
}

func (m *mockAssetRepository) Update(ctx context.Context, a *asset.Asset) error { return nil }

func (m *mockAssetRepository) Delete(ctx context.Context, id uint) error {
	delete(m.assets, id)
	return nil
}

func (m *mockAssetRepository) GetByID(ctx context.Context, id uint) (*asset.Asset, error) {
	return m.assets[id], nil
}

func (m *mockAssetRepository) ExistsByTag(ctx context.Context, tag string) (bool, error) {
	for _, a := range m.assets {
		if a.AssetTag() == tag {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAssetRepository) List(ctx context.Context, filter asset.Filter) ([]*asset.Asset, int64, error) {
	m.lastFilter = filter
	var out []*asset.Asset
	for _, a := range m.assets {
		if filter.AssigneeID != nil && (a.AssigneeID() == nil || *a.AssigneeID() != *filter.AssigneeID) {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

type mockUserRepository struct {
	user.Repository
	users map[uint]*user.User
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return m.users[id], nil
}

func testUser(id uint, tenantID *uint, active bool) *user.User {
	e, _ := uvo.NewEmail(fmt.Sprintf("user%d@example.com", id))
	now := time.Now()
	return user.ReconstructUser(id, tenantID, e, "User", "hash", active, authorization.Roles{authorization.RoleEndUser}, nil, now, now)
}

func uintPtr(v uint) *uint { return &v }

var agent = authorization.Actor{UserID: 2, TenantID: uintPtr(1), Roles: authorization.Roles{authorization.RoleAgent}}

func newAssetUseCases() (*AssetUseCases, *mockAssetRepository) {
	repo := newMockAssetRepository()
	users := &mockUserRepository{users: map[uint]*user.User{
		5: testUser(5, uintPtr(1), true),
		6: testUser(6, uintPtr(1), false),
		7: testUser(7, uintPtr(2), true),
	}}
	return NewAssetUseCases(repo, users, logger.NewNop()), repo
}

func TestAssetUseCases_CreateAndDuplicateTag(t *testing.T) {
	uc, _ := newAssetUseCases()
	ctx := context.Background()

	created, err := uc.Create(ctx, AssetCommand{Actor: agent, AssetTag: "lap-0042", Name: "ThinkPad", Type: "hardware", SerialNumber: " SN1 "})
	require.NoError(t, err)
	assert.Equal(t, "LAP-0042", created.AssetTag)
	assert.Equal(t, "IN_STOCK", created.Status)
	assert.Equal(t, "SN1", created.SerialNumber)
	assert.Equal(t, uint(1), *created.TenantID)

	_, err = uc.Create(ctx, AssetCommand{Actor: agent, AssetTag: "LAP-0042", Name: "Other", Type: "HARDWARE"})
	assert.True(t, errors.IsConflictError(err))

	_, err = uc.Create(ctx, AssetCommand{Actor: agent, AssetTag: "LAP-0043", Name: "Other", Type: "TOASTER"})
	assert.True(t, errors.IsValidationError(err))
}

func TestAssetUseCases_AssignLifecycle(t *testing.T) {
	uc, _ := newAssetUseCases()
	ctx := context.Background()
	created, err := uc.Create(ctx, AssetCommand{Actor: agent, AssetTag: "MON-1", Name: "Monitor", Type: "PERIPHERAL"})
	require.NoError(t, err)

	_, err = uc.Assign(ctx, agent, created.ID, 6)
	assert.True(t, errors.IsValidationError(err), "inactive user")
	_, err = uc.Assign(ctx, agent, created.ID, 7)
	assert.True(t, errors.IsValidationError(err), "other tenant")

	assigned, err := uc.Assign(ctx, agent, created.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, "IN_USE", assigned.Status)
	assert.Equal(t, uint(5), *assigned.AssigneeID)

	mine, err := uc.ListMine(ctx, authorization.Actor{UserID: 5, TenantID: uintPtr(1), Roles: authorization.Roles{authorization.RoleEndUser}})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	unassigned, err := uc.Unassign(ctx, agent, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "IN_STOCK", unassigned.Status)
	assert.Nil(t, unassigned.AssigneeID)

	_, err = uc.Update(ctx, created.ID, AssetCommand{Actor: agent, Status: "RETIRED"})
	require.NoError(t, err)
	_, err = uc.Assign(ctx, agent, created.ID, 5)
	assert.True(t, errors.IsValidationError(err), "retired assets cannot be assigned")
}

func TestAssetUseCases_TenantIsolation(t *testing.T) {
	uc, _ := newAssetUseCases()
	ctx := context.Background()
	created, err := uc.Create(ctx, AssetCommand{Actor: agent, AssetTag: "SRV-1", Name: "Server", Type: "HARDWARE"})
	require.NoError(t, err)

	other := authorization.Actor{UserID: 9, TenantID: uintPtr(2), Roles: authorization.Roles{authorization.RoleAgent}}
	_, err = uc.Get(ctx, other, created.ID)
	assert.True(t, errors.IsNotFoundError(err))
	assert.True(t, errors.IsNotFoundError(uc.Visible(ctx, other, created.ID)))
}

func TestAssetUseCases_ListFilters(t *testing.T) {
	uc, repo := newAssetUseCases()

	_, err := uc.List(context.Background(), ListAssetsQuery{Actor: agent, Status: "BROKEN"})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.List(context.Background(), ListAssetsQuery{Actor: agent, Type: "network", Status: "in_use"})
	require.NoError(t, err)
	assert.Equal(t, asset.TypeNetwork, *repo.lastFilter.Type)
	assert.Equal(t, asset.StatusInUse, *repo.lastFilter.Status)
	assert.Equal(t, uint(1), *repo.lastFilter.TenantID)
}

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/servicedesk/internal/domain/asset"
	"github.com/orris-inc/servicedesk/internal/domain/customfield"
	"github.com/orris-inc/servicedesk/internal/domain/knowledge"
	"github.com/orris-inc/servicedesk/internal/domain/notification"
	"github.com/orris-inc/servicedesk/internal/domain/tenant"
	vo "github.com/orris-inc/servicedesk/internal/domain/ticket/valueobjects"
)

func TestNotificationPreferenceRepository_Upsert(t *testing.T) {
	repo := NewNotificationPreferenceRepository(setupTestDB(t))
	ctx := context.Background()

	pref, err := notification.NewPreference(7, notification.EventTicketAssigned, true, false, false)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, []*notification.Preference{pref}))

	got, err := repo.Get(ctx, 7, notification.EventTicketAssigned)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Realtime())

	pref, err = notification.NewPreference(7, notification.EventTicketAssigned, true, true, true)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, []*notification.Preference{pref}))

	list, err := repo.ListByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Realtime())
	assert.True(t, list[0].Email())

	pref, err = notification.NewPreference(7, notification.EventTicketAssigned, false, false, false)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, []*notification.Preference{pref}))

	got, err = repo.Get(ctx, 7, notification.EventTicketAssigned)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.InApp())
	assert.False(t, got.Email())
	assert.False(t, got.Realtime())

	none, err := repo.Get(ctx, 7, notification.EventSLABreached)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestNotificationRepository_ReadState(t *testing.T) {
	repo := NewNotificationRepository(setupTestDB(t))
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		n, err := notification.NewNotification(5, notification.EventTicketCreated, title, "body", nil)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, n))
	}

	list, total, err := repo.ListByUser(ctx, 5, true, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 2)

	first := list[0]
	first.MarkRead()
	require.NoError(t, repo.Update(ctx, first))

	unread, err := repo.CountUnread(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	marked, err := repo.MarkAllRead(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)

	unread, err = repo.CountUnread(ctx, 5)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestArticleRepository(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))
	ctx := context.Background()

	global, err := knowledge.NewArticle(nil, 1, "Reset your password", "Open **settings**.", "accounts", []string{"password"})
	require.NoError(t, err)
	local, err := knowledge.NewArticle(uintPtr(2), 1, "Connect to VPN", "Install the client.", "network", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, global))
	require.NoError(t, repo.Create(ctx, local))

	exists, err := repo.SlugExists(ctx, global.Slug())
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.IncrementViews(ctx, global.ID()))
	require.NoError(t, repo.AddVote(ctx, global.ID(), true))
	require.NoError(t, repo.AddVote(ctx, global.ID(), false))

	got, err := repo.GetByID(ctx, global.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ViewCount())
	assert.Equal(t, int64(1), got.HelpfulCount())
	assert.Equal(t, int64(1), got.NotHelpfulCount())
	assert.Equal(t, []string{"password"}, got.Tags())

	list, total, err := repo.List(ctx, knowledge.Filter{TenantID: uintPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, global.ID(), list[0].ID())

	require.NoError(t, local.Publish())
	require.NoError(t, repo.Update(ctx, local))
	list, _, err = repo.List(ctx, knowledge.Filter{Statuses: []knowledge.Status{knowledge.StatusPublished}, Search: "vpn"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, local.ID(), list[0].ID())

	ordered, err := repo.GetByIDs(ctx, []uint{local.ID(), 999, global.ID()})
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, local.ID(), ordered[0].ID())
}

func TestCustomFieldRepository_Scopes(t *testing.T) {
	gdb := setupTestDB(t)
	types := NewTicketTypeRepository(gdb)
	fields := NewCustomFieldRepository(gdb)
	ctx := context.Background()

	incident, err := customfield.NewTicketType(nil, "Incident", "", vo.PriorityHigh)
	require.NoError(t, err)
	request, err := customfield.NewTicketType(uintPtr(1), "Access request", "", vo.PriorityLow)
	require.NoError(t, err)
	require.NoError(t, types.Create(ctx, incident))
	require.NoError(t, types.Create(ctx, request))

	listed, err := types.List(ctx, uintPtr(2), true)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Incident", listed[0].Name())

	shared, err := customfield.NewCustomField(nil, "location", "Location", customfield.FieldText, nil, false, 0)
	require.NoError(t, err)
	bound, err := customfield.NewCustomField(uintPtr(incident.ID()), "impact", "Impact", customfield.FieldSelect, []string{"low", "high"}, true, 1)
	require.NoError(t, err)
	require.NoError(t, fields.Create(ctx, shared))
	require.NoError(t, fields.Create(ctx, bound))

	forIncident, err := fields.ListForType(ctx, uintPtr(incident.ID()), true)
	require.NoError(t, err)
	require.Len(t, forIncident, 2)
	assert.Equal(t, []string{"low", "high"}, forIncident[1].Options())

	unbound, err := fields.ListForType(ctx, nil, true)
	require.NoError(t, err)
	assert.Len(t, unbound, 1)

	exists, err := fields.KeyExists(ctx, uintPtr(incident.ID()), "impact")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = fields.KeyExists(ctx, nil, "impact")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTenantAndAssetRepositories(t *testing.T) {
	gdb := setupTestDB(t)
	orgs := NewOrganizationRepository(gdb)
	tenants := NewTenantRepository(gdb)
	assets := NewAssetRepository(gdb)
	ctx := context.Background()

	org, err := tenant.NewOrganization("Acme", "")
	require.NoError(t, err)
	require.NoError(t, orgs.Create(ctx, org))
	tn, err := tenant.NewTenant(org.ID(), "acme-eu", "Acme EU")
	require.NoError(t, err)
	require.NoError(t, tenants.Create(ctx, tn))

	count, err := orgs.CountTenants(ctx, org.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	byCode, err := tenants.GetByCode(ctx, "acme-eu")
	require.NoError(t, err)
	require.NotNil(t, byCode)
	assert.Equal(t, tn.ID(), byCode.ID())

	a, err := asset.NewAsset(uintPtr(tn.ID()), "lap-0042", "ThinkPad", asset.TypeHardware)
	require.NoError(t, err)
	require.NoError(t, assets.Create(ctx, a))
	require.NoError(t, a.AssignTo(9))
	require.NoError(t, assets.Update(ctx, a))

	got, err := assets.GetByID(ctx, a.ID())
	require.NoError(t, err)
	assert.Equal(t, "LAP-0042", got.AssetTag())
	assert.Equal(t, asset.StatusInUse, got.Status())

	taken, err := assets.ExistsByTag(ctx, "LAP-0042")
	require.NoError(t, err)
	assert.True(t, taken)

	list, total, err := assets.List(ctx, asset.Filter{AssigneeID: uintPtr(9)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

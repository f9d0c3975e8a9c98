package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inklusi/internal/accessgate/models"
	"inklusi/internal/accessgate/service"
	"inklusi/internal/accessgate/store/whitelist"
	"inklusi/pkg/domain-errors"
	"inklusi/pkg/platform/audit"
	auditmemory "inklusi/pkg/platform/audit/store/memory"
	"inklusi/pkg/testutil"
)

var frozenNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

const (
	adminEmail = "admin@inklusi.id"
	staffEmail = "staff@inklusi.id"
)

type gateFixture struct {
	service *service.Service
	store   *whitelist.InMemoryStore
	audit   *auditmemory.Store
	ctx     context.Context
}

func newGate(t *testing.T) *gateFixture {
	t.Helper()
	store := whitelist.New()
	auditStore := auditmemory.New()
	publisher := audit.NewStorePublisher(auditStore, nil)

	svc, err := service.New(store, service.WithAuditPublisher(publisher))
	require.NoError(t, err)

	f := &gateFixture{service: svc, store: store, audit: auditStore, ctx: testutil.FixedTimeContext(frozenNow)}
	require.NoError(t, svc.Bootstrap(f.ctx, adminEmail, "Root Admin"))
	return f
}

// addActive creates and activates an entry through the public invite flow.
func (f *gateFixture) addActive(t *testing.T, email, name string, level models.AccessLevel) {
	t.Helper()
	_, invite, err := f.service.AddEntry(f.ctx, adminEmail, email, name, level)
	require.NoError(t, err)
	require.NoError(t, f.service.ClaimInvite(f.ctx, email, invite))
}

func TestAuthorizeDefaultDeny(t *testing.T) {
	f := newGate(t)

	t.Run("unknown e-mail is denied for every action", func(t *testing.T) {
		for _, action := range []models.Action{
			models.ActionViewStatistics, models.ActionReviewVerification,
			models.ActionMergeRecords, models.ActionManageUsers, models.ActionManageWhitelist,
		} {
			_, err := f.service.Authorize(f.ctx, "unknown@x.com", action)
			require.Error(t, err, string(action))
			assert.True(t, domainerrors.HasCode(err, domainerrors.CodeForbidden))
		}
	})

	t.Run("empty caller is denied", func(t *testing.T) {
		_, err := f.service.Authorize(f.ctx, "", models.ActionViewStatistics)
		require.Error(t, err)
		assert.True(t, domainerrors.HasCode(err, domainerrors.CodeForbidden))
	})

	t.Run("unclaimed invite is denied", func(t *testing.T) {
		_, _, err := f.service.AddEntry(f.ctx, adminEmail, "pending@inklusi.id", "Pending", models.LevelStaff)
		require.NoError(t, err)

		_, err = f.service.Authorize(f.ctx, "pending@inklusi.id", models.ActionViewStatistics)
		require.Error(t, err)
		assert.True(t, domainerrors.HasCode(err, domainerrors.CodeForbidden))
	})

	t.Run("denials are audited", func(t *testing.T) {
		f := newGate(t)
		_, _ = f.service.Authorize(f.ctx, "unknown@x.com", models.ActionMergeRecords)
		assert.NotEmpty(t, f.audit.ByAction(audit.EventAuthorizationDenied))
	})
}

func TestAuthorizeTiers(t *testing.T) {
	f := newGate(t)
	f.addActive(t, staffEmail, "Staff Member", models.LevelStaff)
	f.addActive(t, "researcher@inklusi.id", "Researcher", models.LevelResearcher)

	t.Run("staff holds the staff capability set and nothing above", func(t *testing.T) {
		for _, action := range []models.Action{models.ActionViewStatistics, models.ActionReviewVerification, models.ActionMergeRecords} {
			level, err := f.service.Authorize(f.ctx, staffEmail, action)
			require.NoError(t, err, string(action))
			assert.Equal(t, models.LevelStaff, level)
		}
		for _, action := range []models.Action{models.ActionManageUsers, models.ActionManageWhitelist} {
			_, err := f.service.Authorize(f.ctx, staffEmail, action)
			require.Error(t, err, string(action))
			assert.True(t, domainerrors.HasCode(err, domainerrors.CodeForbidden))
		}
	})

	t.Run("researcher only reads statistics", func(t *testing.T) {
		_, err := f.service.Authorize(f.ctx, "researcher@inklusi.id", models.ActionViewStatistics)
		require.NoError(t, err)

		_, err = f.service.Authorize(f.ctx, "researcher@inklusi.id", models.ActionReviewVerification)
		require.Error(t, err)
	})

	t.Run("admin holds everything", func(t *testing.T) {
		for _, action := range []models.Action{
			models.ActionViewStatistics, models.ActionReviewVerification,
			models.ActionMergeRecords, models.ActionManageUsers, models.ActionManageWhitelist,
		} {
			_, err := f.service.Authorize(f.ctx, adminEmail, action)
			require.NoError(t, err, string(action))
		}
	})
}

func TestAddEntry(t *testing.T) {
	t.Run("duplicate e-mail is a conflict", func(t *testing.T) {
		f := newGate(t)
		_, _, err := f.service.AddEntry(f.ctx, adminEmail, staffEmail, "Staff", models.LevelStaff)
		require.NoError(t, err)

		_, _, err = f.service.AddEntry(f.ctx, adminEmail, staffEmail, "Staff Again", models.LevelStaff)
		require.Error(t, err)
		assert.True(t, domainerrors.HasCode(err, domainerrors.CodeConflict))
	})

	t.Run("non-admin caller cannot add", func(t *testing.T) {
		f := newGate(t)
		f.addActive(t, staffEmail, "Staff", models.LevelStaff)

		_, _, err := f.service.AddEntry(f.ctx, staffEmail, "new@inklusi.id", "New", models.LevelStaff)
		require.Error(t, err)
		assert.True(t, domainerrors.HasCode(err, domainerrors.CodeForbidden))
	})

	t.Run("mutation is audited", func(t *testing.T) {
		f := newGate(t)
		_, _, err := f.service.AddEntry(f.ctx, adminEmail, staffEmail, "Staff", models.LevelStaff)
		require.NoError(t, err)
		assert.NotEmpty(t, f.audit.ByAction(audit.EventWhitelistEntryAdded))
	})
}

func TestClaimInvite(t *testing.T) {
	f := newGate(t)
	_, invite, err := f.service.AddEntry(f.ctx, adminEmail, staffEmail, "Staff", models.LevelStaff)
	require.NoError(t, err)

	t.Run("wrong secret is rejected", func(t *testing.T) {
		err := f.service.ClaimInvite(f.ctx, staffEmail, "not-the-secret")
		require.Error(t, err)
		assert.True(t, domainerrors.HasCode(err, domainerrors.CodeForbidden))
	})

	t.Run("correct secret activates exactly once", func(t *testing.T) {
		require.NoError(t, f.service.ClaimInvite(f.ctx, staffEmail, invite))

		_, err := f.service.Authorize(f.ctx, staffEmail, models.ActionViewStatistics)
		assert.NoError(t, err)

		// The secret is single-use.
		err = f.service.ClaimInvite(f.ctx, staffEmail, invite)
		require.Error(t, err)
	})
}

func TestRemoveEntry(t *testing.T) {
	t.Run("last active admin is protected", func(t *testing.T) {
		f := newGate(t)
		err := f.service.RemoveEntry(f.ctx, adminEmail, adminEmail)
		require.Error(t, err)
		assert.True(t, domainerrors.HasCode(err, domainerrors.CodeConflict))
	})

	t.Run("removal works with another admin present", func(t *testing.T) {
		f := newGate(t)
		f.addActive(t, "second@inklusi.id", "Second Admin", models.LevelAdmin)

		require.NoError(t, f.service.RemoveEntry(f.ctx, adminEmail, "second@inklusi.id"))

		_, err := f.service.Authorize(f.ctx, "second@inklusi.id", models.ActionViewStatistics)
		require.Error(t, err)
	})
}

func TestBootstrap(t *testing.T) {
	f := newGate(t)

	// A second bootstrap with entries present is a no-op.
	require.NoError(t, f.service.Bootstrap(f.ctx, "other@inklusi.id", "Other"))
	_, err := f.service.Authorize(f.ctx, "other@inklusi.id", models.ActionViewStatistics)
	require.Error(t, err)
}

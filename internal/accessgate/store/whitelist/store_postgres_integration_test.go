//go:build integration

package whitelist_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"inklusi/internal/accessgate/models"
	"inklusi/internal/accessgate/store/whitelist"
	"inklusi/migrations"
	"inklusi/pkg/platform/sentinel"
	"inklusi/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *whitelist.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.postgres.ExecSchema(s.T(), migrations.Schema())
	s.store = whitelist.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "admin_whitelist"))
}

func (s *PostgresStoreSuite) newEntry(email string, level models.AccessLevel) *models.WhitelistEntry {
	entry, err := models.NewWhitelistEntry(email, "Reviewer "+email, level, "hash-"+email, time.Now().UTC())
	s.Require().NoError(err)
	return entry
}

func (s *PostgresStoreSuite) TestEmailIsUnique() {
	ctx := context.Background()

	s.Require().NoError(s.store.CreateIfEmailFree(ctx, s.newEntry("rani@inklusi.id", models.LevelStaff)))

	err := s.store.CreateIfEmailFree(ctx, s.newEntry("rani@inklusi.id", models.LevelAdmin))
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestFindByEmailRoundTrip() {
	ctx := context.Background()
	entry := s.newEntry("dimas@inklusi.id", models.LevelResearcher)
	s.Require().NoError(s.store.CreateIfEmailFree(ctx, entry))

	found, err := s.store.FindByEmail(ctx, "dimas@inklusi.id")
	s.Require().NoError(err)
	s.Require().Equal(entry.ID, found.ID)
	s.Require().Equal(models.LevelResearcher, found.AccessLevel)
	s.Require().False(found.Active)
	s.Require().Nil(found.ActivatedAt)

	_, err = s.store.FindByEmail(ctx, "nobody@inklusi.id")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestUpdatePersistsActivation() {
	ctx := context.Background()
	entry := s.newEntry("sari@inklusi.id", models.LevelStaff)
	s.Require().NoError(s.store.CreateIfEmailFree(ctx, entry))

	s.Require().NoError(entry.Activate(time.Now().UTC()))
	s.Require().NoError(s.store.Update(ctx, entry))

	found, err := s.store.FindByEmail(ctx, "sari@inklusi.id")
	s.Require().NoError(err)
	s.Require().True(found.Active)
	s.Require().NotNil(found.ActivatedAt)
	s.Require().Empty(found.InviteHash)
}

func (s *PostgresStoreSuite) TestCountActiveAdmins() {
	ctx := context.Background()

	admin := s.newEntry("admin@inklusi.id", models.LevelAdmin)
	s.Require().NoError(admin.Activate(time.Now().UTC()))
	s.Require().NoError(s.store.CreateIfEmailFree(ctx, admin))

	// Inactive admins and active staff do not count.
	s.Require().NoError(s.store.CreateIfEmailFree(ctx, s.newEntry("pending@inklusi.id", models.LevelAdmin)))
	staff := s.newEntry("staff@inklusi.id", models.LevelStaff)
	s.Require().NoError(staff.Activate(time.Now().UTC()))
	s.Require().NoError(s.store.CreateIfEmailFree(ctx, staff))

	count, err := s.store.CountActiveAdmins(ctx)
	s.Require().NoError(err)
	s.Require().Equal(1, count)
}

func (s *PostgresStoreSuite) TestDeleteRemovesEntry() {
	ctx := context.Background()
	s.Require().NoError(s.store.CreateIfEmailFree(ctx, s.newEntry("gone@inklusi.id", models.LevelResearcher)))

	s.Require().NoError(s.store.Delete(ctx, "gone@inklusi.id"))
	s.Require().ErrorIs(s.store.Delete(ctx, "gone@inklusi.id"), sentinel.ErrNotFound)

	entries, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Empty(entries)
}

//go:build integration

package postgres_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"inklusi/migrations"
	"inklusi/pkg/platform/audit"
	"inklusi/pkg/platform/audit/store/postgres"
	"inklusi/pkg/testutil/containers"
)

type OutboxSuite struct {
	suite.Suite
	container *containers.PostgresContainer
	store     *postgres.Store
}

func TestOutboxSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OutboxSuite))
}

func (s *OutboxSuite) SetupSuite() {
	s.container = containers.NewPostgresContainer(s.T())
	s.container.ExecSchema(s.T(), migrations.Schema())
	s.store = postgres.New(s.container.DB)
}

func (s *OutboxSuite) SetupTest() {
	s.Require().NoError(s.container.TruncateTables(context.Background(), "audit_outbox"))
}

func (s *OutboxSuite) appendEvent(action audit.AuditEvent, at time.Time) {
	s.Require().NoError(s.store.Append(context.Background(), audit.Event{
		Category:   action.Category(),
		Timestamp:  at,
		Action:     string(action),
		Subject:    "subject",
		ActorEmail: "reviewer@inklusi.id",
	}))
}

func (s *OutboxSuite) TestPendingIsOldestFirstAndDrains() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	s.appendEvent(audit.EventVerificationApproved, base.Add(2*time.Second))
	s.appendEvent(audit.EventVerificationSubmitted, base)
	s.appendEvent(audit.EventAuthorizationDenied, base.Add(time.Second))

	rows, err := s.store.Pending(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(rows, 3)

	var first map[string]any
	s.Require().NoError(json.Unmarshal(rows[0].Payload, &first))
	s.Require().Equal(string(audit.EventVerificationSubmitted), first["Action"])
	s.Require().Equal(string(audit.CategoryCompliance), rows[0].Category)
	s.Require().Equal(string(audit.CategorySecurity), rows[1].Category)

	ids := []uuid.UUID{rows[0].ID, rows[1].ID}
	s.Require().NoError(s.store.MarkPublished(ctx, ids))

	remaining, err := s.store.Pending(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(remaining, 1)
	s.Require().Equal(rows[2].ID, remaining[0].ID)
}

func (s *OutboxSuite) TestPendingHonorsLimit() {
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		s.appendEvent(audit.EventRatingSubmitted, base.Add(time.Duration(i)*time.Millisecond))
	}

	rows, err := s.store.Pending(context.Background(), 2)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
}

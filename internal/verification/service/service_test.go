package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"inklusi/internal/verification/models"
	"inklusi/internal/verification/service"
	"inklusi/internal/verification/service/mocks"
	"inklusi/pkg/domain"
	dErrors "inklusi/pkg/domain-errors"
	"inklusi/pkg/platform/sentinel"
	"inklusi/pkg/testutil"
)

var frozenNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

const reviewerEmail = "reviewer@kemnaker.go.id"

type fixture struct {
	requests     *mocks.MockRequestStore
	institutions *mocks.MockInstitutionStore
	gate         *mocks.MockAccessGate
	service      *service.Service
	reviewer     service.Reviewer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		requests:     mocks.NewMockRequestStore(ctrl),
		institutions: mocks.NewMockInstitutionStore(ctrl),
		gate:         mocks.NewMockAccessGate(ctrl),
		reviewer:     service.Reviewer{ID: domain.NewAdminID(), Email: reviewerEmail},
	}
	svc, err := service.New(f.requests, f.institutions, f.gate, nil)
	require.NoError(t, err)
	f.service = svc
	return f
}

func (f *fixture) expectAuthorized() {
	f.gate.EXPECT().AuthorizeReviewer(gomock.Any(), reviewerEmail).Return(f.reviewer, nil)
}

func pendingRequest(target domain.InstitutionID) *models.VerificationRequest {
	return &models.VerificationRequest{
		ID:          domain.NewRequestID(),
		TargetType:  models.TargetCompany,
		TargetID:    target,
		DocumentURL: "https://docs.example/akta.pdf",
		Status:      models.StatusPending,
		CreatedAt:   frozenNow.Add(-time.Hour),
	}
}

func resolvedCopy(req *models.VerificationRequest, decision models.Decision, notes string, by domain.AdminID) *models.VerificationRequest {
	cp := *req
	cp.ApplyResolution(decision, notes, by, frozenNow)
	return &cp
}

func TestSubmit(t *testing.T) {
	ctx := testutil.FixedTimeContext(frozenNow)
	target := domain.NewInstitutionID()

	t.Run("files a pending request", func(t *testing.T) {
		f := newFixture(t)
		f.institutions.EXPECT().Exists(gomock.Any(), models.TargetCompany, target).Return(true, nil)
		f.requests.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		req, err := f.service.Submit(ctx, models.TargetCompany, target, "https://docs.example/akta.pdf")
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, req.Status)
		assert.Equal(t, frozenNow, req.CreatedAt)
	})

	t.Run("unknown institution is not found", func(t *testing.T) {
		f := newFixture(t)
		f.institutions.EXPECT().Exists(gomock.Any(), models.TargetCompany, target).Return(false, nil)

		_, err := f.service.Submit(ctx, models.TargetCompany, target, "https://docs.example/akta.pdf")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("second active request is a conflict", func(t *testing.T) {
		f := newFixture(t)
		f.institutions.EXPECT().Exists(gomock.Any(), models.TargetCompany, target).Return(true, nil)
		f.requests.EXPECT().Create(gomock.Any(), gomock.Any()).Return(sentinel.ErrConflict)

		_, err := f.service.Submit(ctx, models.TargetCompany, target, "https://docs.example/akta.pdf")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("invalid input never reaches the stores", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Submit(ctx, models.TargetCompany, target, "  ")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestResolve(t *testing.T) {
	ctx := testutil.FixedTimeContext(frozenNow)

	t.Run("approval flips the institution flag in the same unit", func(t *testing.T) {
		f := newFixture(t)
		f.expectAuthorized()

		req := pendingRequest(domain.NewInstitutionID())
		resolved := resolvedCopy(req, models.DecisionApproved, "", f.reviewer.ID)
		f.requests.EXPECT().
			ResolveIfPending(gomock.Any(), req.ID, models.DecisionApproved, "", f.reviewer.ID, frozenNow).
			Return(resolved, nil)
		f.institutions.EXPECT().MarkVerified(gomock.Any(), req.TargetType, req.TargetID, frozenNow).Return(nil)

		got, err := f.service.Resolve(ctx, reviewerEmail, req.ID, models.DecisionApproved, "")
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, got.Status)
	})

	t.Run("rejection leaves the institution untouched", func(t *testing.T) {
		f := newFixture(t)
		f.expectAuthorized()

		req := pendingRequest(domain.NewInstitutionID())
		resolved := resolvedCopy(req, models.DecisionRejected, "document expired", f.reviewer.ID)
		f.requests.EXPECT().
			ResolveIfPending(gomock.Any(), req.ID, models.DecisionRejected, "document expired", f.reviewer.ID, frozenNow).
			Return(resolved, nil)

		got, err := f.service.Resolve(ctx, reviewerEmail, req.ID, models.DecisionRejected, "document expired")
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, got.Status)
		assert.Equal(t, "document expired", got.AdminNotes)
	})

	t.Run("rejection without notes is refused before any write", func(t *testing.T) {
		f := newFixture(t)
		f.expectAuthorized()

		_, err := f.service.Resolve(ctx, reviewerEmail, domain.NewRequestID(), models.DecisionRejected, "  ")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("denied reviewer gets no further", func(t *testing.T) {
		f := newFixture(t)
		f.gate.EXPECT().
			AuthorizeReviewer(gomock.Any(), reviewerEmail).
			Return(service.Reviewer{}, dErrors.New(dErrors.CodeForbidden, "you are not authorized to perform this action"))

		_, err := f.service.Resolve(ctx, reviewerEmail, domain.NewRequestID(), models.DecisionApproved, "")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	t.Run("losing the race surfaces a conflict", func(t *testing.T) {
		f := newFixture(t)
		f.expectAuthorized()

		req := pendingRequest(domain.NewInstitutionID())
		f.requests.EXPECT().
			ResolveIfPending(gomock.Any(), req.ID, models.DecisionApproved, "", f.reviewer.ID, frozenNow).
			Return(nil, sentinel.ErrAlreadyResolved)

		_, err := f.service.Resolve(ctx, reviewerEmail, req.ID, models.DecisionApproved, "")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("transient store error is retried once", func(t *testing.T) {
		f := newFixture(t)
		f.expectAuthorized()

		req := pendingRequest(domain.NewInstitutionID())
		resolved := resolvedCopy(req, models.DecisionApproved, "", f.reviewer.ID)
		gomock.InOrder(
			f.requests.EXPECT().
				ResolveIfPending(gomock.Any(), req.ID, models.DecisionApproved, "", f.reviewer.ID, frozenNow).
				Return(nil, errors.New("connection reset")),
			f.requests.EXPECT().
				ResolveIfPending(gomock.Any(), req.ID, models.DecisionApproved, "", f.reviewer.ID, frozenNow).
				Return(resolved, nil),
		)
		f.institutions.EXPECT().MarkVerified(gomock.Any(), req.TargetType, req.TargetID, frozenNow).Return(nil)

		got, err := f.service.Resolve(ctx, reviewerEmail, req.ID, models.DecisionApproved, "")
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, got.Status)
	})

	t.Run("retry after a committed first attempt is idempotent", func(t *testing.T) {
		f := newFixture(t)
		f.expectAuthorized()

		req := pendingRequest(domain.NewInstitutionID())
		resolved := resolvedCopy(req, models.DecisionApproved, "", f.reviewer.ID)
		gomock.InOrder(
			f.requests.EXPECT().
				ResolveIfPending(gomock.Any(), req.ID, models.DecisionApproved, "", f.reviewer.ID, frozenNow).
				Return(nil, errors.New("broken pipe mid-commit")),
			f.requests.EXPECT().
				ResolveIfPending(gomock.Any(), req.ID, models.DecisionApproved, "", f.reviewer.ID, frozenNow).
				Return(nil, sentinel.ErrAlreadyResolved),
		)
		f.requests.EXPECT().FindByID(gomock.Any(), req.ID).Return(resolved, nil)

		got, err := f.service.Resolve(ctx, reviewerEmail, req.ID, models.DecisionApproved, "")
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, got.Status)
	})

	t.Run("retry conflict against a different reviewer stays a conflict", func(t *testing.T) {
		f := newFixture(t)
		f.expectAuthorized()

		req := pendingRequest(domain.NewInstitutionID())
		otherReviewer := resolvedCopy(req, models.DecisionRejected, "late", domain.NewAdminID())
		gomock.InOrder(
			f.requests.EXPECT().
				ResolveIfPending(gomock.Any(), req.ID, models.DecisionApproved, "", f.reviewer.ID, frozenNow).
				Return(nil, errors.New("broken pipe mid-commit")),
			f.requests.EXPECT().
				ResolveIfPending(gomock.Any(), req.ID, models.DecisionApproved, "", f.reviewer.ID, frozenNow).
				Return(nil, sentinel.ErrAlreadyResolved),
		)
		f.requests.EXPECT().FindByID(gomock.Any(), req.ID).Return(otherReviewer, nil)

		_, err := f.service.Resolve(ctx, reviewerEmail, req.ID, models.DecisionApproved, "")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func TestListQueue(t *testing.T) {
	ctx := testutil.FixedTimeContext(frozenNow)

	t.Run("returns pending oldest first", func(t *testing.T) {
		f := newFixture(t)
		f.expectAuthorized()

		oldest := pendingRequest(domain.NewInstitutionID())
		newest := pendingRequest(domain.NewInstitutionID())
		newest.CreatedAt = oldest.CreatedAt.Add(time.Minute)
		f.requests.EXPECT().ListPending(gomock.Any(), models.TargetType("")).
			Return([]*models.VerificationRequest{oldest, newest}, nil)

		queue, err := f.service.ListQueue(ctx, reviewerEmail, "")
		require.NoError(t, err)
		require.Len(t, queue, 2)
		assert.Equal(t, oldest.ID, queue[0].ID)
	})

	t.Run("rejects an unknown filter", func(t *testing.T) {
		f := newFixture(t)
		f.expectAuthorized()

		_, err := f.service.ListQueue(ctx, reviewerEmail, "ngo")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

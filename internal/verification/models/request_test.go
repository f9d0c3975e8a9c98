package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inklusi/pkg/domain"
	dErrors "inklusi/pkg/domain-errors"
)

var testTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newPending(t *testing.T) *VerificationRequest {
	t.Helper()
	req, err := NewVerificationRequest(TargetCompany, domain.NewInstitutionID(), "https://docs.example/akta.pdf", testTime)
	require.NoError(t, err)
	return req
}

func TestNewVerificationRequest(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		req := newPending(t)
		assert.Equal(t, StatusPending, req.Status)
		assert.False(t, req.IsResolved())
		assert.Nil(t, req.ResolvedAt)
		assert.Nil(t, req.ResolvedBy)
	})

	t.Run("rejects missing document", func(t *testing.T) {
		_, err := NewVerificationRequest(TargetCampus, domain.NewInstitutionID(), "   ", testTime)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects unknown target type", func(t *testing.T) {
		_, err := NewVerificationRequest("ngo", domain.NewInstitutionID(), "https://docs.example/akta.pdf", testTime)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestResolution(t *testing.T) {
	admin := domain.NewAdminID()
	resolvedAt := testTime.Add(time.Hour)

	t.Run("approve is terminal", func(t *testing.T) {
		req := newPending(t)
		require.NoError(t, req.CanResolve())
		require.NoError(t, ValidateResolution(DecisionApproved, ""))

		req.ApplyResolution(DecisionApproved, "", admin, resolvedAt)

		assert.Equal(t, StatusApproved, req.Status)
		assert.True(t, req.IsResolved())
		require.NotNil(t, req.ResolvedBy)
		assert.Equal(t, admin, *req.ResolvedBy)
		assert.Error(t, req.CanResolve())
	})

	t.Run("reject requires notes", func(t *testing.T) {
		err := ValidateResolution(DecisionRejected, "  ")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

		assert.NoError(t, ValidateResolution(DecisionRejected, "document is expired"))
	})

	t.Run("reject keeps notes for the institution", func(t *testing.T) {
		req := newPending(t)
		req.ApplyResolution(DecisionRejected, " document is expired ", admin, resolvedAt)

		assert.Equal(t, StatusRejected, req.Status)
		assert.Equal(t, "document is expired", req.AdminNotes)
	})

	t.Run("unknown decision rejected", func(t *testing.T) {
		err := ValidateResolution("escalated", "notes")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseRequestID("")
		require.Error(t, err)
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseInstitutionID("not-a-uuid")
		require.Error(t, err)
	})

	t.Run("round-trips a valid UUID", func(t *testing.T) {
		raw := uuid.New().String()
		id, err := ParseAdminID(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, id.String())
	})

	t.Run("error names the ID kind", func(t *testing.T) {
		_, err := ParseTalentID("xyz")
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "talent id"))
	})
}

func TestIsNil(t *testing.T) {
	var zero RequestID
	assert.True(t, zero.IsNil())
	assert.False(t, NewRequestID().IsNil())
}

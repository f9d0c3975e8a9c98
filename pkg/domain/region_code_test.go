package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegionCode(t *testing.T) {
	t.Run("empty means undetermined", func(t *testing.T) {
		code, err := ParseRegionCode("  ")
		require.NoError(t, err)
		assert.True(t, code.IsZero())
	})

	t.Run("province and city lengths", func(t *testing.T) {
		province, err := ParseRegionCode("32")
		require.NoError(t, err)
		assert.True(t, province.IsProvince())

		city, err := ParseRegionCode("3273")
		require.NoError(t, err)
		assert.True(t, city.IsCity())
		assert.Equal(t, province, city.Province())
	})

	t.Run("rejects other lengths and non-digits", func(t *testing.T) {
		for _, raw := range []string{"3", "327", "32735", "3a", "32-7"} {
			_, err := ParseRegionCode(raw)
			require.Error(t, err, raw)
		}
	})
}

func TestRegionCodeWithin(t *testing.T) {
	city := RegionCode("3273")
	province := RegionCode("32")

	assert.True(t, city.Within(province))
	assert.True(t, city.Within(city))
	assert.True(t, province.Within(province))
	assert.False(t, province.Within(city))
	assert.False(t, RegionCode("3173").Within(province))

	// Undetermined jurisdiction is inside nothing.
	assert.False(t, RegionCode("").Within(province))
	assert.False(t, city.Within(""))
}

package jurisdiction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inklusi/internal/region"
	"inklusi/pkg/domain"
	dErrors "inklusi/pkg/domain-errors"
)

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	return NewResolver(region.Default())
}

func authority(kind ScopeKind, code domain.RegionCode) Authority {
	return Authority{ID: domain.NewAuthorityID(), Name: "Dinas Tenaga Kerja", ScopeKind: kind, RegionCode: code}
}

func TestResolveScope(t *testing.T) {
	r := testResolver(t)

	t.Run("national sees everything", func(t *testing.T) {
		scope, err := r.ResolveScope(authority(ScopeNational, ""))
		require.NoError(t, err)
		assert.Equal(t, ScopeNational, scope.Kind())

		for _, subject := range []domain.RegionCode{"3273", "32", "11", ""} {
			assert.True(t, scope.Matches(subject), string(subject))
		}
	})

	t.Run("province matches by prefix", func(t *testing.T) {
		scope, err := r.ResolveScope(authority(ScopeProvince, "32"))
		require.NoError(t, err)

		assert.True(t, scope.Matches("32"))
		assert.True(t, scope.Matches("3273"))
		assert.True(t, scope.Matches("3271"))
		assert.False(t, scope.Matches("31"))
		assert.False(t, scope.Matches("3173"))
		assert.False(t, scope.Matches(""))
	})

	t.Run("city matches exactly", func(t *testing.T) {
		scope, err := r.ResolveScope(authority(ScopeCity, "3273"))
		require.NoError(t, err)

		assert.True(t, scope.Matches("3273"))
		assert.False(t, scope.Matches("3271"))
		assert.False(t, scope.Matches("32"))
		assert.False(t, scope.Matches(""))
	})

	t.Run("undetermined subject excluded from every non-national scope", func(t *testing.T) {
		province, err := r.ResolveScope(authority(ScopeProvince, "32"))
		require.NoError(t, err)
		city, err := r.ResolveScope(authority(ScopeCity, "3273"))
		require.NoError(t, err)

		assert.False(t, province.Matches(""))
		assert.False(t, city.Matches(""))
	})
}

func TestResolveScopeValidation(t *testing.T) {
	r := testResolver(t)

	cases := map[string]Authority{
		"national with a region code":     authority(ScopeNational, "32"),
		"province with a city code":       authority(ScopeProvince, "3273"),
		"province with no code":           authority(ScopeProvince, ""),
		"city with a province code":       authority(ScopeCity, "32"),
		"city with no code":               authority(ScopeCity, ""),
		"unknown province":                authority(ScopeProvince, "98"),
		"unknown city":                    authority(ScopeCity, "9899"),
		"unknown scope kind":              {ID: domain.NewAuthorityID(), ScopeKind: "district", RegionCode: "3273"},
	}
	for name, a := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := r.ResolveScope(a)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

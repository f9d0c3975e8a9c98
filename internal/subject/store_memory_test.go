package subject

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inklusi/internal/jurisdiction"
	"inklusi/internal/region"
	"inklusi/pkg/domain"
)

func seededDirectory(t *testing.T) *InMemoryDirectory {
	t.Helper()
	d := NewInMemoryDirectory()
	d.AddTalent(Talent{ID: domain.NewTalentID(), Name: "Andi", RegionCode: "3273"})
	d.AddTalent(Talent{ID: domain.NewTalentID(), Name: "Budi", RegionCode: "3271"})
	d.AddTalent(Talent{ID: domain.NewTalentID(), Name: "Citra", RegionCode: ""})
	d.AddTalent(Talent{ID: domain.NewTalentID(), Name: "Dewi", RegionCode: "3173"})
	d.AddCompany(Company{ID: domain.NewCompanyID(), Name: "PT Akses", RegionCode: "3273", Verified: true})
	d.AddCompany(Company{ID: domain.NewCompanyID(), Name: "PT Nusantara", RegionCode: ""})
	return d
}

func scopeFor(t *testing.T, kind jurisdiction.ScopeKind, code domain.RegionCode) jurisdiction.Scope {
	t.Helper()
	resolver := jurisdiction.NewResolver(region.Default())
	scope, err := resolver.ResolveScope(jurisdiction.Authority{
		ID: domain.NewAuthorityID(), Name: "test", ScopeKind: kind, RegionCode: code,
	})
	require.NoError(t, err)
	return scope
}

func talentNames(talents []Talent) []string {
	names := make([]string, 0, len(talents))
	for _, talent := range talents {
		names = append(names, talent.Name)
	}
	return names
}

func TestListTalents(t *testing.T) {
	ctx := context.Background()
	d := seededDirectory(t)

	t.Run("national sees every talent", func(t *testing.T) {
		talents, err := d.ListTalents(ctx, scopeFor(t, jurisdiction.ScopeNational, ""))
		require.NoError(t, err)
		assert.Equal(t, []string{"Andi", "Budi", "Citra", "Dewi"}, talentNames(talents))
	})

	t.Run("province sees its cities, not undetermined rows", func(t *testing.T) {
		talents, err := d.ListTalents(ctx, scopeFor(t, jurisdiction.ScopeProvince, "32"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Andi", "Budi"}, talentNames(talents))
	})

	t.Run("city sees exact matches only", func(t *testing.T) {
		talents, err := d.ListTalents(ctx, scopeFor(t, jurisdiction.ScopeCity, "3273"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Andi"}, talentNames(talents))
	})
}

func TestListCompanies(t *testing.T) {
	ctx := context.Background()
	d := seededDirectory(t)

	companies, err := d.ListCompanies(ctx, scopeFor(t, jurisdiction.ScopeCity, "3273"))
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "PT Akses", companies[0].Name)
	assert.True(t, companies[0].Verified)

	all, err := d.ListCompanies(ctx, scopeFor(t, jurisdiction.ScopeNational, ""))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

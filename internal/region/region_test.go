package region

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	t.Run("valid nesting", func(t *testing.T) {
		catalog, err := NewCatalog([]Region{
			{Code: "32", Name: "Jawa Barat", Kind: KindProvince},
			{Code: "3273", Name: "Kota Bandung", Kind: KindCity},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, catalog.Len())
		assert.True(t, catalog.Contains("3273"))

		cities := catalog.CitiesOf("32")
		require.Len(t, cities, 1)
		assert.Equal(t, "Kota Bandung", cities[0].Name)
	})

	t.Run("city without owning province is rejected", func(t *testing.T) {
		_, err := NewCatalog([]Region{
			{Code: "3273", Name: "Kota Bandung", Kind: KindCity},
		})
		require.Error(t, err)
	})

	t.Run("kind and code length must agree", func(t *testing.T) {
		_, err := NewCatalog([]Region{
			{Code: "3273", Name: "Kota Bandung", Kind: KindProvince},
		})
		require.Error(t, err)
	})

	t.Run("duplicates are rejected", func(t *testing.T) {
		_, err := NewCatalog([]Region{
			{Code: "32", Name: "Jawa Barat", Kind: KindProvince},
			{Code: "32", Name: "Jabar", Kind: KindProvince},
		})
		require.Error(t, err)
	})
}

func TestDefaultCatalog(t *testing.T) {
	catalog := Default()
	require.NotZero(t, catalog.Len())

	province, ok := catalog.Lookup("32")
	require.True(t, ok)
	assert.Equal(t, KindProvince, province.Kind)

	city, ok := catalog.Lookup("3273")
	require.True(t, ok)
	assert.Equal(t, KindCity, city.Kind)

	// Every city in the shipped data nests under a shipped province.
	for _, p := range catalog.Provinces() {
		for _, c := range catalog.CitiesOf(p.Code) {
			assert.Equal(t, p.Code, c.Code.Province())
		}
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("loads a valid catalog file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "regions.json")
		data := `[
			{"code": "32", "name": "Jawa Barat", "kind": "province"},
			{"code": "3273", "name": "Kota Bandung", "kind": "city"}
		]`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		catalog, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 2, catalog.Len())
	})

	t.Run("rejects a structurally invalid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "regions.json")
		data := `[{"code": "3273", "name": "Kota Bandung", "kind": "city"}]`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		_, err := LoadFile(path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
	})
}

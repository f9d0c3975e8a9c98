package region

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile builds a catalog from a JSON file of Region entries. Used when
// operators supply the full national reference set.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read region catalog: %w", err)
	}
	var entries []Region
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse region catalog: %w", err)
	}
	return NewCatalog(entries)
}

// Default returns the built-in seed catalog covering the provinces and cities
// the platform launched with. Province codes follow the national statistical
// numbering ("32" West Java, "3273" Bandung).
func Default() *Catalog {
	catalog, err := NewCatalog([]Region{
		{Code: "31", Name: "DKI Jakarta", Kind: KindProvince},
		{Code: "3171", Name: "Jakarta Selatan", Kind: KindCity},
		{Code: "3172", Name: "Jakarta Timur", Kind: KindCity},
		{Code: "3173", Name: "Jakarta Pusat", Kind: KindCity},
		{Code: "32", Name: "Jawa Barat", Kind: KindProvince},
		{Code: "3271", Name: "Bogor", Kind: KindCity},
		{Code: "3273", Name: "Bandung", Kind: KindCity},
		{Code: "3275", Name: "Bekasi", Kind: KindCity},
		{Code: "33", Name: "Jawa Tengah", Kind: KindProvince},
		{Code: "3374", Name: "Semarang", Kind: KindCity},
		{Code: "34", Name: "DI Yogyakarta", Kind: KindProvince},
		{Code: "3471", Name: "Yogyakarta", Kind: KindCity},
		{Code: "35", Name: "Jawa Timur", Kind: KindProvince},
		{Code: "3578", Name: "Surabaya", Kind: KindCity},
	})
	if err != nil {
		// The seed is compile-time data; a validation failure is a bug.
		panic(err)
	}
	return catalog
}

package domain

import (
	"strings"

	dErrors "inklusi/pkg/domain-errors"
)

// RegionCode is a nesting-prefix administrative region identifier: every city
// code begins with its owning province's code ("3273" is a city inside
// province "32"). The empty value means "jurisdiction undetermined" and is
// never matched by a province or city scope.
//
// Usage: construct via ParseRegionCode at trust boundaries; direct casting
// bypasses validation.
type RegionCode string

const (
	regionCodeProvinceLen = 2
	regionCodeCityLen     = 4
)

// ParseRegionCode validates external input. Accepts the empty string (which
// stays "undetermined"), a 2-digit province code, or a 4-digit city code.
func ParseRegionCode(s string) (RegionCode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if len(s) != regionCodeProvinceLen && len(s) != regionCodeCityLen {
		return "", dErrors.New(dErrors.CodeInvalidInput, "region code must be 2 (province) or 4 (city) digits")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", dErrors.New(dErrors.CodeInvalidInput, "region code must be numeric")
		}
	}
	return RegionCode(s), nil
}

func (c RegionCode) String() string { return string(c) }

// IsZero reports whether the code is unset (undetermined jurisdiction).
func (c RegionCode) IsZero() bool { return c == "" }

// IsProvince reports whether the code is at province granularity.
func (c RegionCode) IsProvince() bool { return len(c) == regionCodeProvinceLen }

// IsCity reports whether the code is at city granularity.
func (c RegionCode) IsCity() bool { return len(c) == regionCodeCityLen }

// Province returns the owning province code. For a province code it returns
// itself; for the zero value it returns the zero value.
func (c RegionCode) Province() RegionCode {
	if len(c) < regionCodeProvinceLen {
		return ""
	}
	return c[:regionCodeProvinceLen]
}

// Within reports whether c falls inside the given prefix code. An unset code
// is within nothing.
func (c RegionCode) Within(prefix RegionCode) bool {
	if c.IsZero() || prefix.IsZero() {
		return false
	}
	return strings.HasPrefix(string(c), string(prefix))
}

package domain

import "testing"

// FuzzParseRegionCode checks that any accepted code is structurally sound:
// province or city length, numeric, and that a city always nests inside the
// province returned by Province().
func FuzzParseRegionCode(f *testing.F) {
	for _, seed := range []string{"", "32", "3273", "31", "9999", "ab", "3", "32735"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		code, err := ParseRegionCode(raw)
		if err != nil {
			return
		}
		if code.IsZero() {
			return
		}
		if !code.IsProvince() && !code.IsCity() {
			t.Fatalf("accepted code %q is neither province nor city", code)
		}
		for _, r := range string(code) {
			if r < '0' || r > '9' {
				t.Fatalf("accepted code %q contains non-digit", code)
			}
		}
		if code.IsCity() && !code.Within(code.Province()) {
			t.Fatalf("city %q not within its province %q", code, code.Province())
		}
	})
}

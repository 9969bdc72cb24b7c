package service

import (
	"fmt"
	"strings"

	"github.com/lite-lake/infra-bamctl/internal/domain"
)

// NormalizeOwnerInZone resolves an owner name that may be absolute or
// zone-relative against the zone's absolute name. It returns the absolute
// owner name and the zone-relative label (empty at the apex).
func NormalizeOwnerInZone(owner, zoneAbs string) (fqdn, label string, err error) {
	z := strings.TrimSuffix(zoneAbs, ".")
	n := strings.TrimSuffix(strings.TrimSpace(owner), ".")
	if n == "" {
		return "", "", fmt.Errorf("%w: owner name", domain.ErrEmptyValue)
	}

	if strings.EqualFold(n, z) {
		return z, "", nil
	}
	if z != "" && strings.HasSuffix(strings.ToLower(n), "."+strings.ToLower(z)) {
		return n, n[:len(n)-len(z)-1], nil
	}
	if z == "" {
		return n, n, nil
	}
	return n + "." + z, n, nil
}

// FoldFQDN lowercases and strips the trailing dot for name comparison.
func FoldFQDN(name string) string {
	return strings.ToLower(strings.TrimSuffix(name, "."))
}

package service

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/lite-lake/infra-bamctl/internal/domain"
)

// ParsePrefix parses and canonicalizes a CIDR string. A bare address is
// accepted as a host prefix (/32 or /128). Host bits are masked off, so
// "192.0.2.5/24" canonicalizes to "192.0.2.0/24".
func ParsePrefix(cidr string) (netip.Prefix, error) {
	s := strings.TrimSpace(cidr)
	if s == "" {
		return netip.Prefix{}, fmt.Errorf("%w: empty", domain.ErrInvalidCIDR)
	}
	if !strings.Contains(s, "/") {
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return netip.Prefix{}, fmt.Errorf("%w: %q: %v", domain.ErrInvalidCIDR, cidr, err)
		}
		return netip.PrefixFrom(addr, addr.BitLen()), nil
	}
	p, err := netip.ParsePrefix(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("%w: %q: %v", domain.ErrInvalidCIDR, cidr, err)
	}
	return p.Masked(), nil
}

// CanonicalCIDR returns the canonical text form of a CIDR string.
func CanonicalCIDR(cidr string) (string, error) {
	p, err := ParsePrefix(cidr)
	if err != nil {
		return "", err
	}
	return p.String(), nil
}

// ParseBlockList splits a whitespace-separated CIDR list (the BAM_BLOCKS
// format) into canonical prefixes, preserving input order.
func ParseBlockList(value string) ([]netip.Prefix, error) {
	var blocks []netip.Prefix
	for _, token := range strings.Fields(value) {
		p, err := ParsePrefix(token)
		if err != nil {
			return nil, fmt.Errorf("block list entry %q: %w", token, err)
		}
		blocks = append(blocks, p)
	}
	return blocks, nil
}

// SelectParentBlock picks the candidate block the requested network must be
// created under: same address family, numerically containing the request,
// and the most specific such candidate. Equally specific candidates tie-break
// by input order, first match wins.
func SelectParentBlock(network netip.Prefix, blocks []netip.Prefix) (netip.Prefix, error) {
	if !network.IsValid() {
		return netip.Prefix{}, domain.ErrInvalidCIDR
	}
	if len(blocks) == 0 {
		return netip.Prefix{}, domain.ErrMissingBlocks
	}

	best := netip.Prefix{}
	for _, b := range blocks {
		if b.Addr().Is4() != network.Addr().Is4() {
			continue
		}
		if !containsPrefix(b, network) {
			continue
		}
		if !best.IsValid() || b.Bits() > best.Bits() {
			best = b
		}
	}
	if !best.IsValid() {
		return netip.Prefix{}, fmt.Errorf("%w: %s", domain.ErrNoParentBlock, network)
	}
	return best, nil
}

// containsPrefix reports whether every address in inner lies within outer.
// Both prefixes are assumed masked.
func containsPrefix(outer, inner netip.Prefix) bool {
	return outer.Bits() <= inner.Bits() && outer.Contains(inner.Addr())
}

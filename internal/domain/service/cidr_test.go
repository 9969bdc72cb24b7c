package service

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/lite-lake/infra-bamctl/internal/domain"
)

func mustPrefix(t *testing.T, s string) netip.Prefix {
	t.Helper()
	p, err := ParsePrefix(s)
	if err != nil {
		t.Fatalf("ParsePrefix(%q): %v", s, err)
	}
	return p
}

func mustPrefixes(t *testing.T, list string) []netip.Prefix {
	t.Helper()
	blocks, err := ParseBlockList(list)
	if err != nil {
		t.Fatalf("ParseBlockList(%q): %v", list, err)
	}
	return blocks
}

func TestParsePrefix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "canonical v4", input: "192.0.2.0/24", want: "192.0.2.0/24"},
		{name: "host bits masked", input: "192.0.2.5/24", want: "192.0.2.0/24"},
		{name: "bare v4 address", input: "192.0.2.5", want: "192.0.2.5/32"},
		{name: "canonical v6", input: "2001:db8::/32", want: "2001:db8::/32"},
		{name: "bare v6 address", input: "2001:db8::1", want: "2001:db8::1/128"},
		{name: "whitespace trimmed", input: "  10.0.0.0/8 ", want: "10.0.0.0/8"},
		{name: "empty", input: "", wantErr: domain.ErrInvalidCIDR},
		{name: "garbage", input: "not-a-cidr", wantErr: domain.ErrInvalidCIDR},
		{name: "bad prefix length", input: "192.0.2.0/33", wantErr: domain.ErrInvalidCIDR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePrefix(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParsePrefix(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePrefix(%q) unexpected error: %v", tt.input, err)
			}
			if p.String() != tt.want {
				t.Errorf("ParsePrefix(%q) = %s, want %s", tt.input, p, tt.want)
			}
		})
	}
}

func TestParseBlockList(t *testing.T) {
	blocks, err := ParseBlockList(" 192.0.0.0/8  2001:db8::/32 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].String() != "192.0.0.0/8" || blocks[1].String() != "2001:db8::/32" {
		t.Errorf("unexpected blocks: %v", blocks)
	}

	if _, err := ParseBlockList("192.0.0.0/8 bogus"); !errors.Is(err, domain.ErrInvalidCIDR) {
		t.Errorf("invalid entry error = %v, want %v", err, domain.ErrInvalidCIDR)
	}

	blocks, err = ParseBlockList("")
	if err != nil || blocks != nil {
		t.Errorf("empty list = %v, %v; want nil, nil", blocks, err)
	}
}

func TestSelectParentBlock(t *testing.T) {
	tests := []struct {
		name    string
		network string
		blocks  string
		want    string
		wantErr error
	}{
		{
			name:    "single containing block",
			network: "192.0.2.0/24",
			blocks:  "192.0.0.0/8 212.0.0.0/8",
			want:    "192.0.0.0/8",
		},
		{
			name:    "no containing block",
			network: "192.168.1.0/24",
			blocks:  "192.0.0.0/8 212.0.0.0/8",
			wantErr: domain.ErrNoParentBlock,
		},
		{
			name:    "most specific wins",
			network: "192.0.2.0/24",
			blocks:  "192.0.0.0/8 192.0.2.0/24",
			want:    "192.0.2.0/24",
		},
		{
			name:    "most specific wins regardless of order",
			network: "192.0.2.128/25",
			blocks:  "192.0.2.0/24 192.0.0.0/8",
			want:    "192.0.2.0/24",
		},
		{
			name:    "tie broken by input order",
			network: "10.1.2.0/24",
			blocks:  "10.1.0.0/16 10.1.0.0/16",
			want:    "10.1.0.0/16",
		},
		{
			name:    "family mismatch skipped",
			network: "2001:db8:1::/48",
			blocks:  "192.0.0.0/8 2001:db8::/32",
			want:    "2001:db8::/32",
		},
		{
			name:    "v6 request with only v4 blocks",
			network: "2001:db8:1::/48",
			blocks:  "0.0.0.0/0",
			wantErr: domain.ErrNoParentBlock,
		},
		{
			name:    "exact same prefix contains itself",
			network: "192.0.2.0/24",
			blocks:  "192.0.2.0/24",
			want:    "192.0.2.0/24",
		},
		{
			name:    "request wider than candidate",
			network: "192.0.0.0/8",
			blocks:  "192.0.2.0/24",
			wantErr: domain.ErrNoParentBlock,
		},
		{
			name:    "empty candidate list",
			network: "192.0.2.0/24",
			blocks:  "",
			wantErr: domain.ErrMissingBlocks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectParentBlock(mustPrefix(t, tt.network), mustPrefixes(t, tt.blocks))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("SelectParentBlock() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SelectParentBlock() unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("SelectParentBlock() = %s, want %s", got, tt.want)
			}
		})
	}
}

// The selected parent must always contain the request, whatever the
// candidate mix.
func TestSelectParentBlockNeverLeaks(t *testing.T) {
	blocks := mustPrefixes(t, "10.0.0.0/8 172.16.0.0/12 192.168.0.0/16 2001:db8::/32")
	requests := []string{
		"10.1.0.0/16", "172.16.5.0/24", "192.168.200.0/24", "2001:db8:ffff::/48",
	}
	for _, req := range requests {
		network := mustPrefix(t, req)
		parent, err := SelectParentBlock(network, blocks)
		if err != nil {
			t.Fatalf("SelectParentBlock(%s): %v", req, err)
		}
		if parent.Bits() > network.Bits() || !parent.Contains(network.Addr()) {
			t.Errorf("selected parent %s does not contain %s", parent, network)
		}
	}
}

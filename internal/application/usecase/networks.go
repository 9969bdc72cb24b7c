package usecase

import (
	"context"
	"fmt"

	"github.com/lite-lake/infra-bamctl/internal/domain"
	"github.com/lite-lake/infra-bamctl/internal/domain/entity"
	"github.com/lite-lake/infra-bamctl/internal/domain/service"
	"github.com/lite-lake/infra-bamctl/internal/infrastructure/bluecat"
)

// Networks is the network-object accessor. Every call is one or a small
// bounded number of remote round-trips; nothing is cached locally.
type Networks struct {
	s *Session
}

// Get looks a network up by its exact CIDR range. Absence is a nil result,
// never an error.
func (n *Networks) Get(ctx context.Context, cidr string) (*entity.Network, error) {
	item, err := n.s.client.FindNetworkByRange(ctx, n.s.configRef.Name, cidr)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	detail, err := n.s.client.GetNetwork(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	return mapNetwork(detail), nil
}

// Create creates a network under the most specific configured parent block
// containing it. An already-existing range is reported rather than
// recreated; with existOK false that report is an error.
func (n *Networks) Create(ctx context.Context, cidr string, existOK bool) (*entity.CreateNetworkResult, error) {
	prefix, err := service.ParsePrefix(cidr)
	if err != nil {
		return nil, err
	}

	existing, err := n.s.client.FindNetworkByRange(ctx, n.s.configRef.Name, prefix.String())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !existOK {
			return nil, fmt.Errorf("%w: network %s (id %d)", domain.ErrConflict, existing.Range, existing.ID)
		}
		net, err := n.Get(ctx, prefix.String())
		if err != nil {
			return nil, err
		}
		if net == nil {
			net = &entity.Network{ID: existing.ID, Type: existing.Type, Range: existing.Range}
		}
		return &entity.CreateNetworkResult{
			Status:  entity.CreateNetworkExists,
			Network: net,
			BlockID: existing.ParentID(),
		}, nil
	}

	blocks, err := n.s.settings.ParentBlocks()
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: set %s to a space-separated CIDR list", domain.ErrMissingBlocks, "BAM_BLOCKS")
	}

	parent, err := service.SelectParentBlock(prefix, blocks)
	if err != nil {
		return nil, err
	}

	block, err := n.s.client.ResolveBlockByRange(ctx, n.s.configRef.Name, parent.String())
	if err != nil {
		return nil, domain.WrapOp("resolve parent block", err)
	}

	created, err := n.s.client.CreateNetworkInBlock(ctx, block.ID, prefix.String())
	if err != nil {
		return nil, err
	}

	return &entity.CreateNetworkResult{
		Status: entity.CreateNetworkCreated,
		Network: &entity.Network{
			ID:    created.ID,
			Type:  created.Type,
			Range: created.Range,
		},
		BlockID: block.ID,
	}, nil
}

// Delete removes a network by its exact CIDR range. The delete endpoint is
// never contacted for an absent range; with missingOK that absence is a
// false return instead of an error.
func (n *Networks) Delete(ctx context.Context, cidr string, missingOK bool) (bool, error) {
	canonical, err := service.CanonicalCIDR(cidr)
	if err != nil {
		return false, err
	}
	item, err := n.s.client.FindNetworkByRange(ctx, n.s.configRef.Name, canonical)
	if err != nil {
		return false, err
	}
	if item == nil {
		if missingOK {
			return false, nil
		}
		return false, fmt.Errorf("%w: network %s", domain.ErrNotFound, canonical)
	}
	if err := n.s.client.DeleteNetwork(ctx, item.ID); err != nil {
		return false, err
	}
	return true, nil
}

func mapNetwork(d bluecat.NetworkDetail) *entity.Network {
	net := &entity.Network{
		ID:      d.ID,
		Type:    d.Type,
		Range:   d.Range,
		Name:    d.Name,
		Gateway: d.Gateway,
	}
	if d.DefaultView != nil {
		net.View = d.DefaultView.Name
	}
	if d.Location != nil {
		net.Location = d.Location.Name
	}
	if d.Usage != nil {
		net.Usage = &entity.NetworkUsage{
			Assigned:   d.Usage.Assigned,
			Unassigned: d.Usage.Unassigned,
			Total:      d.Usage.Total,
		}
	}
	return net
}

package bluecat

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/lite-lake/infra-bamctl/internal/domain"
	"github.com/lite-lake/infra-bamctl/internal/domain/service"
)

// ResolveConfiguration looks up a configuration by exact name.
func (c *Client) ResolveConfiguration(ctx context.Context, name string) (Ref, error) {
	return selectSingle[Ref](ctx, c, "configurations", fmt.Sprintf("name:'%s'", name), "configuration")
}

// ResolveView looks up a DNS view by configuration and view name.
func (c *Client) ResolveView(ctx context.Context, configName, viewName string) (Ref, error) {
	filter := fmt.Sprintf("configuration.name:'%s' and name:'%s'", configName, viewName)
	return selectSingle[Ref](ctx, c, "views", filter, "view")
}

// ResolveZone looks up a zone by view id and absolute name.
func (c *Client) ResolveZone(ctx context.Context, viewID int64, zoneAbs string) (Zone, error) {
	filter := fmt.Sprintf("view.id:%d and absoluteName:'%s'", viewID, strings.TrimSuffix(zoneAbs, "."))
	return selectSingle[Zone](ctx, c, "zones", filter, "zone")
}

// ResolveBlockByRange looks up a block by its exact CIDR range.
func (c *Client) ResolveBlockByRange(ctx context.Context, configName, blockCIDR string) (RangeRef, error) {
	cidr, err := service.CanonicalCIDR(blockCIDR)
	if err != nil {
		return RangeRef{}, err
	}
	filter := fmt.Sprintf("configuration.name:'%s' and range:'%s'", configName, cidr)
	return selectSingle[RangeRef](ctx, c, "blocks", filter, "block")
}

// FindNetworkByRange looks up a network by its exact CIDR range. Absence is
// a nil result, not an error; more than one match is ErrAmbiguous.
func (c *Client) FindNetworkByRange(ctx context.Context, configName, netCIDR string) (*RangeRef, error) {
	cidr, err := service.CanonicalCIDR(netCIDR)
	if err != nil {
		return nil, err
	}
	filter := fmt.Sprintf("configuration.name:'%s' and range:'%s'", configName, cidr)
	item, err := selectSingle[RangeRef](ctx, c, "networks", filter, "network")
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// FindAddressByIP looks up the platform's address object for one IP.
// Absence is a nil result.
func (c *Client) FindAddressByIP(ctx context.Context, configName, ip string) (*Address, error) {
	filter := fmt.Sprintf("address:'%s' and configuration.name:'%s'", ip, configName)
	params := url.Values{}
	params.Set("filter", filter)
	params.Set("limit", "5")
	params.Set("fields", "id,type,address,name")

	items, err := getPage[Address](ctx, c, "addresses", params)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	if len(items) > 1 {
		return nil, fmt.Errorf("%w: %d address objects for %s in %s", domain.ErrAmbiguous, len(items), ip, configName)
	}
	return &items[0], nil
}

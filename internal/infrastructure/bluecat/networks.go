package bluecat

import (
	"context"
	"fmt"
	"net/url"

	"github.com/lite-lake/infra-bamctl/internal/domain"
	"github.com/lite-lake/infra-bamctl/internal/domain/service"
)

// GetNetwork fetches one network by id with the detail fields the CLI shows.
func (c *Client) GetNetwork(ctx context.Context, networkID int64) (NetworkDetail, error) {
	params := url.Values{}
	params.Set("fields", "id,type,range,name,gateway,defaultView,location,usage,userDefinedFields")

	var detail NetworkDetail
	if err := c.get(ctx, fmt.Sprintf("networks/%d", networkID), params, &detail); err != nil {
		return NetworkDetail{}, err
	}
	return detail, nil
}

// CreateNetworkInBlock creates a network scoped under an existing block.
// The object type follows the address family of the range.
func (c *Client) CreateNetworkInBlock(ctx context.Context, blockID int64, netCIDR string) (Created, error) {
	prefix, err := service.ParsePrefix(netCIDR)
	if err != nil {
		return Created{}, err
	}
	netType := "IPv6Network"
	if prefix.Addr().Is4() {
		netType = "IPv4Network"
	}

	body := map[string]any{"type": netType, "range": prefix.String()}
	var created Created
	if err := c.post(ctx, fmt.Sprintf("blocks/%d/networks", blockID), nil, body, &created); err != nil {
		return Created{}, err
	}
	if created.ID == 0 {
		return Created{}, fmt.Errorf("%w: create network returned no id", domain.ErrRemote)
	}
	return created, nil
}

func (c *Client) DeleteNetwork(ctx context.Context, networkID int64) error {
	return c.delete(ctx, fmt.Sprintf("networks/%d", networkID))
}

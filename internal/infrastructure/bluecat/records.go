package bluecat

import (
	"context"
	"fmt"
	"net/netip"
	"net/url"

	"github.com/lite-lake/infra-bamctl/internal/domain"
)

const recordFields = "id,type,recordType,name,absoluteName,rdata,ttl,reverseRecord"

// ListZoneRecords walks every resource record in a zone.
func (c *Client) ListZoneRecords(ctx context.Context, zoneID int64) ([]RecordRow, error) {
	params := url.Values{}
	params.Set("fields", recordFields)
	return getAll[RecordRow](ctx, c, fmt.Sprintf("zones/%d/resourceRecords", zoneID), params)
}

// ListRecordAddresses returns the IP addresses linked to a host record.
func (c *Client) ListRecordAddresses(ctx context.Context, recordID int64) ([]Address, error) {
	params := url.Values{}
	params.Set("fields", "id,type,address")
	return getAll[Address](ctx, c, fmt.Sprintf("resourceRecords/%d/addresses", recordID), params)
}

// ListAddressRecords returns the resource records linked to an address
// object, PTR and reverse-flagged host records included.
func (c *Client) ListAddressRecords(ctx context.Context, addressID int64) ([]RecordRow, error) {
	params := url.Values{}
	params.Set("fields", recordFields)
	return getAll[RecordRow](ctx, c, fmt.Sprintf("addresses/%d/resourceRecords", addressID), params)
}

// CreateHostRecord creates an address-bearing record (the platform's native
// form of A/AAAA) with the reverse-mapping flag as requested.
func (c *Client) CreateHostRecord(ctx context.Context, zoneID int64, label, fqdn string, ip netip.Addr, ttl int, withReverse bool) (int64, error) {
	addrType := "IPv6Address"
	if ip.Is4() {
		addrType = "IPv4Address"
	}
	name := label
	if name == "" {
		name = fqdn
	}
	body := map[string]any{
		"type":          "HostRecord",
		"name":          name,
		"absoluteName":  fqdn,
		"ttl":           ttl,
		"reverseRecord": withReverse,
		"addresses":     []map[string]string{{"type": addrType, "address": ip.String()}},
	}
	return c.createRecord(ctx, zoneID, body)
}

// CreateGenericRecord creates a non-address record (CNAME/MX/NS/TXT).
func (c *Client) CreateGenericRecord(ctx context.Context, zoneID int64, label, fqdn, rrType, rdata string, ttl int) (int64, error) {
	name := label
	if name == "" {
		name = fqdn
	}
	body := map[string]any{
		"type":         "GenericRecord",
		"name":         name,
		"absoluteName": fqdn,
		"ttl":          ttl,
		"recordType":   rrType,
		"rdata":        rdata,
	}
	return c.createRecord(ctx, zoneID, body)
}

func (c *Client) createRecord(ctx context.Context, zoneID int64, body map[string]any) (int64, error) {
	var created Created
	if err := c.post(ctx, fmt.Sprintf("zones/%d/resourceRecords", zoneID), nil, body, &created); err != nil {
		return 0, err
	}
	if created.ID == 0 {
		return 0, fmt.Errorf("%w: create resource record returned no id", domain.ErrRemote)
	}
	return created.ID, nil
}

// GetResourceRecordRaw fetches a record as the platform shapes it, for
// read-modify-write updates.
func (c *Client) GetResourceRecordRaw(ctx context.Context, recordID int64) (map[string]any, error) {
	var rec map[string]any
	if err := c.get(ctx, fmt.Sprintf("resourceRecords/%d", recordID), nil, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// PutResourceRecord writes a full record body back.
func (c *Client) PutResourceRecord(ctx context.Context, recordID int64, body map[string]any) error {
	return c.put(ctx, fmt.Sprintf("resourceRecords/%d", recordID), body, nil)
}

func (c *Client) DeleteResourceRecord(ctx context.Context, recordID int64) error {
	return c.delete(ctx, fmt.Sprintf("resourceRecords/%d", recordID))
}

package bluecat

import (
	"strconv"
	"strings"
)

// Row shapes for the REST v2 endpoints this client touches. Responses are
// HAL documents; collections arrive wrapped in a "data" array.

type collection[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}

type LinkRef struct {
	Href string `json:"href"`
}

type sessionResponse struct {
	BasicAuthenticationCredentials string `json:"basicAuthenticationCredentials"`
}

// Ref identifies a named platform object.
type Ref struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
}

type Zone struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	AbsoluteName string `json:"absoluteName"`
}

// RangeRef is a block or network row keyed by its CIDR range.
type RangeRef struct {
	ID    int64              `json:"id"`
	Type  string             `json:"type"`
	Range string             `json:"range"`
	Links map[string]LinkRef `json:"_links"`
}

// ParentID extracts the containing object's id from the HAL "up" link
// (/api/v2/blocks/<id>). Zero when the link is absent or malformed.
func (r RangeRef) ParentID() int64 {
	href := r.Links["up"].Href
	if href == "" {
		return 0
	}
	parts := strings.Split(strings.TrimRight(href, "/"), "/")
	id, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

type NetworkDetail struct {
	ID                int64          `json:"id"`
	Type              string         `json:"type"`
	Range             string         `json:"range"`
	Name              string         `json:"name"`
	Gateway           string         `json:"gateway"`
	DefaultView       *Ref           `json:"defaultView"`
	Location          *Ref           `json:"location"`
	Usage             *NetworkUsage  `json:"usage"`
	UserDefinedFields map[string]any `json:"userDefinedFields"`
}

type NetworkUsage struct {
	Assigned   int `json:"assigned"`
	Unassigned int `json:"unassigned"`
	Total      int `json:"total"`
}

type Address struct {
	ID      int64  `json:"id"`
	Type    string `json:"type"`
	Address string `json:"address"`
	Name    string `json:"name"`
}

// RecordRow is one resource record as the zone or address listing returns
// it. Type is the platform object type (HostRecord, GenericRecord, ...);
// RecordType is the DNS type for generic records.
type RecordRow struct {
	ID            int64  `json:"id"`
	Type          string `json:"type"`
	RecordType    string `json:"recordType"`
	Name          string `json:"name"`
	AbsoluteName  string `json:"absoluteName"`
	Rdata         string `json:"rdata"`
	TTL           *int   `json:"ttl"`
	ReverseRecord bool   `json:"reverseRecord"`
}

type Created struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Range string `json:"range"`
}

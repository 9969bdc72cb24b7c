package entity

// Network is an IPv4/IPv6 network object in the remote address manager.
// The ID is opaque and assigned remotely; Range is the canonical CIDR.
type Network struct {
	ID       int64
	Type     string
	Range    string
	Name     string
	Gateway  string
	View     string
	Location string
	Usage    *NetworkUsage
}

type NetworkUsage struct {
	Assigned   int
	Unassigned int
	Total      int
}

type CreateNetworkStatus string

const (
	CreateNetworkCreated CreateNetworkStatus = "created"
	CreateNetworkExists  CreateNetworkStatus = "exists"
)

type CreateNetworkResult struct {
	Status  CreateNetworkStatus
	Network *Network
	BlockID int64
}

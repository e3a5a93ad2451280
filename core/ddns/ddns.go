package ddns

import (
	"context"

	"github.com/jxo-me/namesilo-ddns/sdk/ddns"
)

// IDDNS interface
type IDDNS interface {
	String() string
	// Endpoint GetEndpoint
	Endpoint() string
	// DescribeRecord returns nil without error when the host has no record.
	DescribeRecord(ctx context.Context, domain, hostName string) (*ddns.HostRecord, error)
	// UpdateRecord points the record at newIP.
	UpdateRecord(ctx context.Context, record *ddns.HostRecord, newIP string) (*ddns.Response, error)
}

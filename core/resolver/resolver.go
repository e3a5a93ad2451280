package resolver

import "context"

// IResolver discovers the public IPv4 address of this host.
type IResolver interface {
	String() string
	Resolve(ctx context.Context) (string, error)
}

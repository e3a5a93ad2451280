package cache

type IIpCache interface {
	// Load returns the last reconciled IP, or "" when unknown.
	Load() string
	Save(ip string) error
}

package service

import (
	"context"
	"sync"

	"github.com/jxo-me/namesilo-ddns/config"
	"github.com/jxo-me/namesilo-ddns/consts"
	"github.com/jxo-me/namesilo-ddns/sdk/ddns"
)

type fakeProvider struct {
	mu          sync.Mutex
	records     map[string]*ddns.HostRecord
	describeErr map[string]error
	updateErr   map[string]error
	described   []string
	updated     map[string]string
	inFlight    int
	maxInFlight int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		records:     map[string]*ddns.HostRecord{},
		describeErr: map[string]error{},
		updateErr:   map[string]error{},
		updated:     map[string]string{},
	}
}

func (p *fakeProvider) add(domain, host, ip string, code int) {
	r := &ddns.HostRecord{Domain: domain, HostName: host, Type: "A", RecordID: host + "-id", CurrentIP: ip, TTL: 3600, StatusCode: code}
	p.records[r.FQDN()] = r
}

func (p *fakeProvider) String() string   { return "fake" }
func (p *fakeProvider) Endpoint() string { return "" }

func (p *fakeProvider) DescribeRecord(ctx context.Context, domain, hostName string) (*ddns.HostRecord, error) {
	fqdn := (&ddns.HostRecord{Domain: domain, HostName: hostName}).FQDN()
	p.mu.Lock()
	p.described = append(p.described, fqdn)
	p.inFlight++
	if p.inFlight > p.maxInFlight {
		p.maxInFlight = p.inFlight
	}
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.inFlight--
		p.mu.Unlock()
	}()

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.describeErr[fqdn]; err != nil {
		return nil, err
	}
	r, ok := p.records[fqdn]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (p *fakeProvider) UpdateRecord(ctx context.Context, record *ddns.HostRecord, newIP string) (*ddns.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.updateErr[record.FQDN()]; err != nil {
		return nil, err
	}
	p.updated[record.FQDN()] = newIP
	p.records[record.FQDN()].CurrentIP = newIP
	return &ddns.Response{Code: ddns.StatusActive, Detail: "success"}, nil
}

func (p *fakeProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.described) + len(p.updated)
}

type memCache struct {
	mu      sync.Mutex
	ip      string
	saves   int
	saveErr error
}

func (c *memCache) Load() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ip
}

func (c *memCache) Save(ip string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saveErr != nil {
		return c.saveErr
	}
	c.saves++
	c.ip = ip
	return nil
}

type staticResolver struct {
	ip    string
	err   error
	calls int
}

func (r *staticResolver) String() string { return "static" }

func (r *staticResolver) Resolve(ctx context.Context) (string, error) {
	r.calls++
	return r.ip, r.err
}

type recordingHook struct {
	calls   int
	domains *config.Domains
}

func (h *recordingHook) String() string { return "recording" }

func (h *recordingHook) ExecHook(ctx context.Context, domains *config.Domains) consts.UpdateStatusType {
	h.calls++
	h.domains = domains
	return consts.UpdatedNothing
}

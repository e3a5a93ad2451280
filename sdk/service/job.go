package service

import (
	"context"
	"sync"

	"github.com/jxo-me/namesilo-ddns/config"
	"github.com/jxo-me/namesilo-ddns/consts"
	iCache "github.com/jxo-me/namesilo-ddns/core/cache"
	iDDNS "github.com/jxo-me/namesilo-ddns/core/ddns"
	iHook "github.com/jxo-me/namesilo-ddns/core/hook"
	"github.com/jxo-me/namesilo-ddns/core/logger"
	iResolver "github.com/jxo-me/namesilo-ddns/core/resolver"
	"github.com/jxo-me/namesilo-ddns/sdk/ddns"
	"github.com/pkg/errors"
)

// PassResult is the outcome of one reconciliation pass.
type PassResult struct {
	IP string
	// Domains holds every configured host in config order.
	Domains []*config.Domain
	// Errors is indexed like Domains; nil for hosts that did not fail.
	Errors       []error
	CacheHit     bool
	CacheUpdated bool
	// Err is set when the pass was aborted before any host was processed.
	Err error
}

func (r *PassResult) filter(statuses ...consts.UpdateStatusType) []*config.Domain {
	var out []*config.Domain
	for _, d := range r.Domains {
		for _, s := range statuses {
			if d.UpdateStatus == s {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

func (r *PassResult) Updated() []*config.Domain {
	return r.filter(consts.UpdatedSuccess)
}

// Skipped are hosts that needed no remote write.
func (r *PassResult) Skipped() []*config.Domain {
	return r.filter(consts.UpdatedNothing, consts.UpdatedIgnored)
}

func (r *PassResult) NotFound() []*config.Domain {
	return r.filter(consts.UpdatedNotFound)
}

func (r *PassResult) Errored() []*config.Domain {
	return r.filter(consts.UpdatedFailed)
}

// HasErrors reports a pass-level failure or any host-level failure.
func (r *PassResult) HasErrors() bool {
	if r.Err != nil {
		return true
	}
	for _, err := range r.Errors {
		if err != nil {
			return true
		}
	}
	return false
}

// Job runs reconciliation passes. It keeps no state between passes.
type Job struct {
	Conf     *config.Root
	DDNS     iDDNS.IDDNS
	Cache    iCache.IIpCache
	Resolver iResolver.IResolver
	Hook     iHook.IHook
	logger   logger.ILogger
}

func NewJob(conf *config.Root, d iDDNS.IDDNS, c iCache.IIpCache, r iResolver.IResolver, h iHook.IHook, log logger.ILogger) *Job {
	if log == nil {
		log = logger.Default()
	}
	return &Job{
		Conf:     conf,
		DDNS:     d,
		Cache:    c,
		Resolver: r,
		Hook:     h,
		logger:   log,
	}
}

// Run performs one full pass.
func (j *Job) Run(ctx context.Context) *PassResult {
	res := &PassResult{}
	j.logger.Debugf("Starting %s DDNS refresh check", j.DDNS.String())

	ip, err := j.resolve(ctx)
	if err != nil {
		res.Err = err
		j.logger.Errorf("Aborting DDNS refresh check: %s", err)
		return res
	}
	res.IP = ip
	j.logger.Debugf("Host IP: %s", ip)

	if j.Conf.UseCache {
		if cachedIp := j.Cache.Load(); cachedIp != "" && cachedIp == ip {
			res.CacheHit = true
			res.Domains = j.Conf.Domains()
			for _, domain := range res.Domains {
				domain.UpdateStatus = consts.UpdatedNothing
			}
			res.Errors = make([]error, len(res.Domains))
			j.logger.Infof("Current host IP is the same as the cached IP %s, skipping further processing", cachedIp)
			return res
		}
	}

	res.Domains = j.Conf.Domains()
	res.Errors = make([]error, len(res.Domains))
	j.reconcileAll(ctx, ip, res.Domains, res.Errors)

	if j.Conf.UseCache {
		// 只有全部主机都成功时才更新缓存
		if res.HasErrors() {
			j.logger.Warnf("%d host(s) failed, ip cache not updated", len(res.Errored())+len(res.NotFound()))
		} else if err := j.Cache.Save(ip); err != nil {
			j.logger.Errorf("Failed to save ip cache: %s", err)
		} else {
			res.CacheUpdated = true
		}
	}

	if j.Hook != nil {
		j.Hook.ExecHook(ctx, &config.Domains{Ipv4Addr: ip, Ipv4Domains: res.Domains})
	}

	j.logger.Debugf("Finished %s DDNS refresh check: %d updated, %d skipped, %d not found, %d failed",
		j.DDNS.String(), len(res.Updated()), len(res.Skipped()), len(res.NotFound()), len(res.Errored()))
	return res
}

func (j *Job) resolve(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, j.Conf.Timeout())
	defer cancel()

	ip, err := j.Resolver.Resolve(ctx)
	if err != nil {
		if errors.Is(err, ddns.ErrIPDiscovery) {
			return "", err
		}
		return "", errors.Wrapf(ddns.ErrIPDiscovery, "%s: %v", j.Resolver.String(), err)
	}
	return ip, nil
}

// reconcileAll processes hosts with at most Conf.Concurrency in flight and
// returns once every host has finished.
func (j *Job) reconcileAll(ctx context.Context, ip string, domains []*config.Domain, errs []error) {
	workers := j.Conf.Concurrency
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, domain := range domains {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, domain *config.Domain) {
			defer wg.Done()
			defer func() { <-sem }()
			errs[i] = j.reconcile(ctx, ip, domain)
		}(i, domain)
	}
	wg.Wait()
}

func (j *Job) reconcile(ctx context.Context, ip string, domain *config.Domain) (err error) {
	log := j.logger.WithFields(map[string]any{"domain": domain.String()})
	log.Debugf("Processing %s", domain)

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic while reconciling %s: %v", domain, r)
			domain.UpdateStatus = consts.UpdatedFailed
			log.Errorf("%s", err)
		}
	}()

	record, err := j.describe(ctx, domain)
	if err != nil {
		domain.UpdateStatus = consts.UpdatedFailed
		log.Errorf("Failed to query record for %s: %s", domain, err)
		return err
	}

	decision := ddns.Decide(ip, record)
	switch decision {
	case ddns.DecisionUpdate:
		log.Warnf("Updating %s from %s to %s", domain, record.CurrentIP, ip)
		if _, err = j.update(ctx, record, ip); err != nil {
			domain.UpdateStatus = consts.UpdatedFailed
			log.Errorf("Failed to update %s: %s", domain, err)
			return err
		}
		domain.UpdateStatus = consts.UpdatedSuccess
		log.Warnf("Updated %s to %s", domain, ip)
		return nil
	case ddns.DecisionNotFound:
		domain.UpdateStatus = decision.Status()
		log.Warnf("No record found for %s", domain)
		return errors.Wrap(ddns.ErrRecordNotFound, domain.String())
	case ddns.DecisionIgnore:
		domain.UpdateStatus = decision.Status()
		log.Infof("Skipped updating %s because its status code is %d", domain, record.StatusCode)
		return nil
	default:
		domain.UpdateStatus = decision.Status()
		log.Infof("Skipped updating %s because the IP address is current (%s)", domain, ip)
		return nil
	}
}

func (j *Job) describe(ctx context.Context, domain *config.Domain) (*ddns.HostRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, j.Conf.Timeout())
	defer cancel()
	return j.DDNS.DescribeRecord(ctx, domain.DomainName, domain.SubDomain)
}

func (j *Job) update(ctx context.Context, record *ddns.HostRecord, ip string) (*ddns.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, j.Conf.Timeout())
	defer cancel()
	return j.DDNS.UpdateRecord(ctx, record, ip)
}

package parsing

import (
	"github.com/jxo-me/namesilo-ddns/config"
	iHook "github.com/jxo-me/namesilo-ddns/core/hook"
	"github.com/jxo-me/namesilo-ddns/core/logger"
	"github.com/jxo-me/namesilo-ddns/sdk/cache"
	"github.com/jxo-me/namesilo-ddns/sdk/ddns/namesilo"
	"github.com/jxo-me/namesilo-ddns/sdk/hook"
	"github.com/jxo-me/namesilo-ddns/sdk/resolver"
	"github.com/jxo-me/namesilo-ddns/sdk/service"
	"github.com/pkg/errors"
)

var (
	ErrMissingAPIKey = namesilo.ErrMissingAPIKey
)

// ParseJob wires the provider, ip cache, resolver and webhook described by cfg into a Job.
func ParseJob(cfg *config.Root, apiKey string, log logger.ILogger) (*service.Job, error) {
	if cfg == nil {
		return nil, errors.New("parsing: nil config")
	}
	if log == nil {
		log = logger.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dns, err := namesilo.New(apiKey,
		namesilo.WithTTL(cfg.TTL),
		namesilo.WithTimeout(cfg.Timeout()),
		namesilo.WithLogger(log.WithFields(map[string]any{"provider": namesilo.Code})),
	)
	if err != nil {
		return nil, err
	}

	var h iHook.IHook
	if cfg.Webhook != nil && cfg.Webhook.WebhookURL != "" {
		h = hook.NewHook(cfg.Webhook, cfg.Timeout(), log)
	}

	return service.NewJob(
		cfg,
		dns,
		cache.NewIpCache(cfg.CachePath, log),
		resolver.NewResolver(cfg.Ipv4, cfg.Timeout(), log),
		h,
		log,
	), nil
}

// ParseService builds the scheduled DDNS service for cfg.
func ParseService(cfg *config.Root, apiKey string, log logger.ILogger) (*service.DDNSService, error) {
	job, err := ParseJob(cfg, apiKey, log)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Default()
	}
	return service.NewDDNS(job, cfg, log), nil
}

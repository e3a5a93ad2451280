package util

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/pkg/errors"
)

// DNSServerEnv 自定义 DNS 服务器, 如 1.1.1.1:53
const DNSServerEnv = "DDNS_DNS_SERVER"

const defaultTimeout = 30 * time.Second

var dialer = &net.Dialer{
	Timeout:   30 * time.Second,
	KeepAlive: 30 * time.Second,
}

func dialContext(network string) func(ctx context.Context, _, address string) (net.Conn, error) {
	return func(ctx context.Context, n, address string) (net.Conn, error) {
		if network != "" {
			n = network
		}
		if server := os.Getenv(DNSServerEnv); server != "" {
			d := *dialer
			d.Resolver = &net.Resolver{
				PreferGo: true,
				Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
					return dialer.DialContext(ctx, "udp", server)
				},
			}
			return d.DialContext(ctx, n, address)
		}
		return dialer.DialContext(ctx, n, address)
	}
}

// CreateHTTPClient creates a client honouring proxy settings
func CreateHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialContext(""),
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// CreateNoProxyHTTPClient creates a client bypassing proxies and pinned to
// network, e.g. tcp4, so the echoed address is the host's own
func CreateNoProxyHTTPClient(network string, timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               nil,
			DialContext:         dialContext(network),
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

// GetHTTPResponseOrg 处理HTTP结果，返回byte
func GetHTTPResponseOrg(resp *http.Response, requestURL string, err error) ([]byte, error) {
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = redact(ue.URL)
		}
		return nil, errors.Wrapf(err, "request %s", redact(requestURL))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read response from %s", redact(requestURL))
	}

	// 300及以上状态码都算异常
	if resp.StatusCode >= 300 {
		return body, errors.Errorf("request %s returned %s", redact(requestURL), resp.Status)
	}

	return body, nil
}

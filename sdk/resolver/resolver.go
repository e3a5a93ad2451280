package resolver

import (
	"context"
	"io"
	"net/http"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/jxo-me/namesilo-ddns/config"
	"github.com/jxo-me/namesilo-ddns/core/logger"
	"github.com/jxo-me/namesilo-ddns/internal/util"
	"github.com/jxo-me/namesilo-ddns/sdk/ddns"
	"github.com/pkg/errors"
)

// Ipv4Reg IPv4正则
var Ipv4Reg = regexp.MustCompile(`((25[0-5]|(2[0-4]|1{0,1}[0-9]){0,1}[0-9])\.){3,3}(25[0-5]|(2[0-4]|1{0,1}[0-9]){0,1}[0-9])`)

const (
	TypeURL          = "url"
	TypeNetInterface = "netInterface"
	TypeCmd          = "cmd"
)

// Resolver 获取本机公网 IPv4
type Resolver struct {
	conf   config.Ipv4
	client *http.Client
	logger logger.ILogger
}

func NewResolver(conf *config.Ipv4, timeout time.Duration, log logger.ILogger) *Resolver {
	r := &Resolver{
		client: util.CreateNoProxyHTTPClient("tcp4", timeout),
		logger: log,
	}
	if conf != nil {
		r.conf = *conf
	}
	if r.conf.GetType == "" {
		r.conf.GetType = TypeURL
	}
	if r.conf.GetType == TypeURL && r.conf.URL == "" {
		r.conf.URL = config.DefaultIpv4URL
	}
	if r.logger == nil {
		r.logger = logger.Default()
	}
	return r
}

func (r *Resolver) String() string {
	return r.conf.GetType
}

// Resolve 获得IPv4地址
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	var ip string
	// 判断从哪里获取IP
	switch r.conf.GetType {
	case TypeNetInterface:
		ip = r.getIpv4AddrFromInterface()
	case TypeURL:
		ip = r.getIpv4AddrFromUrl(ctx)
	case TypeCmd:
		ip = r.getIpv4AddrFromCmd(ctx)
	default:
		return "", errors.Wrapf(ddns.ErrIPDiscovery, "unknown getType %q", r.conf.GetType)
	}
	if ip == "" {
		return "", errors.Wrapf(ddns.ErrIPDiscovery, "no IPv4 address found via %s", r.conf.GetType)
	}
	return ip, nil
}

func (r *Resolver) getIpv4AddrFromInterface() string {
	ipv4, err := util.GetNetInterface()
	if err != nil {
		r.logger.Debugf("Failed to get IPv4 from network interface! error: %s", err)
		return ""
	}

	for _, netInterface := range ipv4 {
		if netInterface.Name == r.conf.NetInterface && len(netInterface.Address) > 0 {
			return netInterface.Address[0]
		}
	}

	r.logger.Debugf("Failed to get IPv4 from network interface! Interface name: %s", r.conf.NetInterface)
	return ""
}

func (r *Resolver) getIpv4AddrFromUrl(ctx context.Context) string {
	for _, url := range strings.Split(r.conf.URL, ",") {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		if result := r.lookup(ctx, url); result != "" {
			return result
		}
	}
	return ""
}

func (r *Resolver) lookup(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		r.logger.Debugf("Failed to build IPv4 request for %s: %s", url, err)
		return ""
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Debugf("Failed to get IPv4 from %s: %s", url, err)
		return ""
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		r.logger.Debugf("Failed to read IPv4 result! Interface: %s", url)
		return ""
	}
	if resp.StatusCode != http.StatusOK {
		r.logger.Debugf("IPv4 interface %s returned %s", url, resp.Status)
		return ""
	}
	result := Ipv4Reg.FindString(string(body))
	if result == "" {
		r.logger.Debugf("Failed to get IPv4 result! Interface: %s, return value: %q", url, body)
	}
	return result
}

func (r *Resolver) getIpv4AddrFromCmd(ctx context.Context) string {
	cmd := r.conf.Cmd
	if cmd == "" {
		return ""
	}
	// run cmd with proper shell
	var execCmd *exec.Cmd
	if runtime.GOOS == "windows" {
		execCmd = exec.CommandContext(ctx, "powershell", "-Command", cmd)
	} else {
		// If Bash does not exist, use sh
		if _, err := exec.LookPath("bash"); err != nil {
			execCmd = exec.CommandContext(ctx, "sh", "-c", cmd)
		} else {
			execCmd = exec.CommandContext(ctx, "bash", "-c", cmd)
		}
	}
	out, err := execCmd.CombinedOutput()
	if err != nil {
		r.logger.Debugf("Failed to get IPv4 result! Failed to execute command: %s, error: %q, exit status code: %s", execCmd.String(), out, err)
		return ""
	}
	result := Ipv4Reg.FindString(string(out))
	if result == "" {
		r.logger.Debugf("Failed to get IPv4 result! Command: %s, standard output: %q", execCmd.String(), out)
	}
	return result
}

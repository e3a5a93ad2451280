package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jxo-me/namesilo-ddns/config"
	"github.com/jxo-me/namesilo-ddns/consts"
	"github.com/jxo-me/namesilo-ddns/core/logger"
	"github.com/jxo-me/namesilo-ddns/internal/util"
)

type DDNSService struct {
	Job   *Job
	Conf  *config.Root
	Delay time.Duration
	// SkipNetworkCheck starts the first pass without probing the provider endpoint.
	SkipNetworkCheck bool
	ctx              context.Context
	cancel           context.CancelFunc
	stop             chan struct{}
	stopOnce         sync.Once
	status           int32 // status is the current timer status.
	inflight         int32
	logger           logger.ILogger
}

func NewDDNS(job *Job, conf *config.Root, log logger.ILogger) *DDNSService {
	if log == nil {
		log = logger.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &DDNSService{
		Job:    job,
		Conf:   conf,
		Delay:  conf.Interval(),
		ctx:    ctx,
		cancel: cancel,
		stop:   make(chan struct{}),
		status: consts.StatusReady,
		logger: log,
	}

	return s
}

func (s *DDNSService) String() string {
	return s.Job.DDNS.String()
}

// Hash identifies the configuration the service was built from.
func (s *DDNSService) Hash() string {
	byt, err := json.Marshal(s.Conf)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(byt)
	return hex.EncodeToString(sum[:])
}

// RunOnce runs a single pass unless one is already in flight, in which case it returns nil.
func (s *DDNSService) RunOnce() (res *PassResult) {
	if !atomic.CompareAndSwapInt32(&s.inflight, 0, 1) {
		s.logger.Warnf("%s DDNS pass is still running, skipping this run", s.String())
		return nil
	}
	defer atomic.StoreInt32(&s.inflight, 0)
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf("%s DDNS pass panicked: %v", s.String(), r)
		}
	}()

	return s.Job.Run(s.ctx)
}

func (s *DDNSService) Worker() error {
	var (
		timerIntervalTicker = time.NewTicker(s.Delay)
	)
	defer timerIntervalTicker.Stop()
	for {
		select {
		case <-timerIntervalTicker.C:
			// Check the timer status.
			switch atomic.LoadInt32(&s.status) {
			case consts.StatusRunning:
				s.logger.Debugf("%s DDNS service is running!", s.String())
				s.RunOnce()
			case consts.StatusStopped:
				s.logger.Debugf("%s DDNS service has been stopped!", s.String())
			case consts.StatusClosed:
				s.logger.Debugf("%s DDNS service is closed!", s.String())
				return nil
			}
		// call to stop polling
		case <-s.stop:
			s.logger.Debugf("%s DDNS service has been manually stopped!", s.String())
			return nil
		}
	}
}

// Start runs the first pass immediately and, when cron is enabled, keeps
// running passes every Delay until Stop is called.
func (s *DDNSService) Start() error {
	atomic.StoreInt32(&s.status, consts.StatusRunning)
	// 等待网络连接
	if !s.SkipNetworkCheck && !s.waitForNetworkConnected() {
		return nil
	}
	s.RunOnce()
	if !s.Conf.CronConfig.RunCron {
		return nil
	}
	s.logger.Infof("%s DDNS service scheduled every %s", s.String(), s.Delay)
	return s.Worker()
}

// Pause keeps the timer alive without running passes.
func (s *DDNSService) Pause() {
	atomic.CompareAndSwapInt32(&s.status, consts.StatusRunning, consts.StatusStopped)
}

func (s *DDNSService) Resume() {
	atomic.CompareAndSwapInt32(&s.status, consts.StatusStopped, consts.StatusRunning)
}

func (s *DDNSService) Stop() error {
	atomic.StoreInt32(&s.status, consts.StatusClosed)
	s.stopOnce.Do(func() {
		close(s.stop)
		s.cancel()
	})
	return nil
}

// waitForNetworkConnected 等待网络连接后继续, Stop 时返回 false
func (s *DDNSService) waitForNetworkConnected() bool {
	// 延时 5 秒
	timeout := time.Second * consts.NetworkConnectedTimeout
	addr := s.Job.DDNS.Endpoint()
	if addr == "" {
		return true
	}
	loopbackServer := "[::1]:53"
	find := false
	client := util.CreateHTTPClient(timeout)
	for {
		resp, err := client.Get(addr)
		if err == nil {
			s.logger.Debugf("The network is connected: %s", addr)
			_ = resp.Body.Close()
			return true
		}
		// 如果 err 包含回环地址（[::1]:53）则表示没有 DNS 服务器，设置 DNS 服务器
		if strings.Contains(err.Error(), loopbackServer) && !find {
			server := "1.1.1.1:53"
			s.logger.Infof("Failed to resolve loopback address %s! %s will be used by default, set %s to customize the DNS server", loopbackServer, server, util.DNSServerEnv)

			_ = os.Setenv(util.DNSServerEnv, server)
			find = true
			continue
		}

		s.logger.Infof("Waiting for network connection: %s. Try again in %s...", err, timeout)
		select {
		case <-s.stop:
			return false
		case <-time.After(timeout):
		}
	}
}

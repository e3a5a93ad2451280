package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/jxo-me/namesilo-ddns/core/logger"
	"github.com/jxo-me/namesilo-ddns/sdk/ddns"
	"github.com/pkg/errors"
)

// cacheFile is the on-disk layout, kept compatible with existing cache.json files.
type cacheFile struct {
	IPAddress string `json:"ipAddress"`
}

// IpCache 上次成功同步的IP, 保存在本地文件
type IpCache struct {
	Path   string
	logger logger.ILogger
}

func NewIpCache(path string, log logger.ILogger) *IpCache {
	if log == nil {
		log = logger.Default()
	}
	return &IpCache{
		Path:   path,
		logger: log,
	}
}

// Load 读取缓存, 文件不存在或无法解析时返回空字符串
func (c *IpCache) Load() string {
	byt, err := os.ReadFile(c.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warnf("Failed to read ip cache %s: %v", c.Path, err)
		}
		return ""
	}

	var f cacheFile
	if err = json.Unmarshal(byt, &f); err != nil {
		c.logger.Warnf("Ignoring unreadable ip cache %s: %v", c.Path, err)
		return ""
	}
	c.logger.Debugf("Loaded ip cache: %s", f.IPAddress)
	return strings.TrimSpace(f.IPAddress)
}

// Save 先写临时文件再重命名, 失败时不影响原有缓存
func (c *IpCache) Save(ip string) (err error) {
	byt, err := json.Marshal(cacheFile{IPAddress: ip})
	if err != nil {
		return errors.Wrapf(ddns.ErrCacheIO, "encode: %v", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.Path), "."+filepath.Base(c.Path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(ddns.ErrCacheIO, "create temp file: %v", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(byt); err != nil {
		return errors.Wrapf(ddns.ErrCacheIO, "write %s: %v", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrapf(ddns.ErrCacheIO, "sync %s: %v", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(ddns.ErrCacheIO, "close %s: %v", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.Wrapf(ddns.ErrCacheIO, "chmod %s: %v", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), c.Path); err != nil {
		return errors.Wrapf(ddns.ErrCacheIO, "rename to %s: %v", c.Path, err)
	}

	c.logger.Infof("Updated ip cache %s: %s", c.Path, ip)
	return nil
}

package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jxo-me/namesilo-ddns/consts"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	ConfigFilePathENV = "DDNS_CONFIG_FILE_PATH"
	envPrefix         = "DDNS"
)

// DefaultIpv4URL 获取公网IPv4的默认接口, 按顺序尝试
const DefaultIpv4URL = "https://api.ipify.org, https://myip.ipip.net, https://ddns.oray.com/checkip"

var (
	ErrNoRecords       = errors.New("config: no records configured")
	ErrEmptyDomainName = errors.New("config: domainName is required")
	ErrInvalidInterval = errors.New("config: cronConfig.intervalMinutes must be positive")
	ErrInvalidFormat   = errors.New("config: unsupported output format")
)

// ReadConfig 读取并校验配置文件, 支持 json/yaml/toml 等 viper 支持的格式
func ReadConfig(configPath string, log *zerolog.Logger) (Root, error) {
	var root Root

	v := viper.New()
	v.SetConfigFile(configPath)
	if filepath.Ext(configPath) == "" {
		v.SetConfigType("json")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return root, errors.Wrapf(err, "config: read %s", configPath)
	}
	if err := v.Unmarshal(&root); err != nil {
		return root, errors.Wrapf(err, "config: parse %s", configPath)
	}
	if err := root.Validate(); err != nil {
		return root, err
	}

	if log != nil {
		log.Debug().
			Str("path", configPath).
			Int("records", len(root.Records)).
			Bool("useCache", root.UseCache).
			Bool("runCron", root.CronConfig.RunCron).
			Msg("config loaded")
	}
	return root, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("useCache", false)
	v.SetDefault("cachePath", consts.DefaultCachePath)
	v.SetDefault("concurrency", 1)
	v.SetDefault("timeoutSeconds", consts.DefaultTimeoutSeconds)
	v.SetDefault("cronConfig.runCron", false)
	v.SetDefault("cronConfig.intervalMinutes", consts.DefaultIntervalMinutes)
	v.SetDefault("ipv4.getType", "url")
	v.SetDefault("ipv4.url", DefaultIpv4URL)
}

// Validate 校验配置并补全默认值
func (r *Root) Validate() error {
	if len(r.Records) == 0 {
		return ErrNoRecords
	}
	for i, rec := range r.Records {
		if strings.TrimSpace(rec.DomainName) == "" {
			return errors.Wrapf(ErrEmptyDomainName, "records[%d]", i)
		}
	}
	if r.CronConfig.IntervalMinutes < 0 {
		return ErrInvalidInterval
	}
	if r.CronConfig.IntervalMinutes == 0 {
		r.CronConfig.IntervalMinutes = consts.DefaultIntervalMinutes
	}
	if r.Concurrency < 1 {
		r.Concurrency = 1
	}
	if r.TimeoutSeconds <= 0 {
		r.TimeoutSeconds = consts.DefaultTimeoutSeconds
	}
	if r.CachePath == "" {
		r.CachePath = consts.DefaultCachePath
	}
	if r.Ipv4 == nil {
		r.Ipv4 = &Ipv4{GetType: "url", URL: DefaultIpv4URL}
	}
	return nil
}

// Interval 两次同步之间的间隔
func (r Root) Interval() time.Duration {
	if r.CronConfig.IntervalMinutes <= 0 {
		return consts.DefaultIntervalMinutes * time.Minute
	}
	return time.Duration(r.CronConfig.IntervalMinutes) * time.Minute
}

// Timeout 单次远端调用的超时时间
func (r Root) Timeout() time.Duration {
	if r.TimeoutSeconds <= 0 {
		return consts.DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// Domains 按配置顺序展开所有主机
func (r Root) Domains() []*Domain {
	var domains []*Domain
	for _, rec := range r.Records {
		for _, host := range rec.HostNames {
			domains = append(domains, &Domain{
				DomainName:   rec.DomainName,
				SubDomain:    host,
				UpdateStatus: consts.UpdatedPending,
			})
		}
	}
	return domains
}

// Write 以 yaml 或 json 输出配置
func (r Root) Write(w io.Writer, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(r)
	default:
		return errors.Wrap(ErrInvalidFormat, format)
	}
}

// GetConfigFilePath 获得配置文件路径
func GetConfigFilePath() string {
	configFilePath := os.Getenv(ConfigFilePathENV)
	if configFilePath != "" {
		return configFilePath
	}
	return consts.DefaultConfigPath
}

// CheckConfigFile 配置文件不存在时给出明确的错误
func CheckConfigFile(configPath string) error {
	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("config: file %s does not exist", configPath)
		}
		return errors.Wrapf(err, "config: stat %s", configPath)
	}
	return nil
}

package config

// Root is the base options to configure the service
type Root struct {
	LogLevel string     `json:"logLevel" yaml:"logLevel" mapstructure:"logLevel"`
	Log      *LogConfig `json:"log,omitempty" yaml:"log,omitempty" mapstructure:"log"`
	// 是否使用本地IP缓存, IP未变化时跳过远端查询
	UseCache  bool   `json:"useCache" yaml:"useCache" mapstructure:"useCache"`
	CachePath string `json:"cachePath,omitempty" yaml:"cachePath,omitempty" mapstructure:"cachePath"`
	// 同时处理的主机数, 1 为顺序处理
	Concurrency int `json:"concurrency,omitempty" yaml:"concurrency,omitempty" mapstructure:"concurrency"`
	// 0 表示沿用远端记录的 TTL
	TTL            int            `json:"ttl,omitempty" yaml:"ttl,omitempty" mapstructure:"ttl"`
	TimeoutSeconds int            `json:"timeoutSeconds,omitempty" yaml:"timeoutSeconds,omitempty" mapstructure:"timeoutSeconds"`
	CronConfig     CronConfig     `json:"cronConfig" yaml:"cronConfig" mapstructure:"cronConfig"`
	Ipv4           *Ipv4          `json:"ipv4,omitempty" yaml:"ipv4,omitempty" mapstructure:"ipv4"`
	Webhook        *Webhook       `json:"webhook,omitempty" yaml:"webhook,omitempty" mapstructure:"webhook"`
	Records        []DomainConfig `json:"records" yaml:"records" mapstructure:"records"`
}

// DomainConfig 一个域名及其需要同步的主机名, 空字符串表示根域名
type DomainConfig struct {
	DomainName string   `json:"domainName" yaml:"domainName" mapstructure:"domainName"`
	HostNames  []string `json:"hostNames" yaml:"hostNames" mapstructure:"hostNames"`
}

type CronConfig struct {
	RunCron         bool `json:"runCron" yaml:"runCron" mapstructure:"runCron"`
	IntervalMinutes int  `json:"intervalMinutes" yaml:"intervalMinutes" mapstructure:"intervalMinutes"`
}

type Ipv4 struct {
	// 获取IP类型 url/netInterface/cmd
	GetType      string `json:"getType" yaml:"getType" mapstructure:"getType"`
	URL          string `json:"url,omitempty" yaml:"url,omitempty" mapstructure:"url"`
	NetInterface string `json:"netInterface,omitempty" yaml:"netInterface,omitempty" mapstructure:"netInterface"`
	Cmd          string `json:"cmd,omitempty" yaml:"cmd,omitempty" mapstructure:"cmd"`
}

// Webhook Webhook
type Webhook struct {
	// 支持的变量 #{ipv4Addr}=新的IPv4地址,
	// #{ipv4Result}=IPv4地址更新结果: 未改变 失败 成功,
	// #{ipv4Domains}=IPv4的域名，多个以,分割
	WebhookURL string `json:"webhookURL" yaml:"webhookURL" mapstructure:"webhookURL"`
	// 如 RequestBody 为空则为 GET 请求，否则为 POST 请求。支持的变量同上
	WebhookRequestBody string `json:"webhookRequestBody,omitempty" yaml:"webhookRequestBody,omitempty" mapstructure:"webhookRequestBody"`
	// 一行一个Header, 如：Authorization: Bearer API_KEY
	WebhookHeaders string `json:"webhookHeaders,omitempty" yaml:"webhookHeaders,omitempty" mapstructure:"webhookHeaders"`
}

type LogRotationConfig struct {
	MaxSize    int  `json:"maxSize" yaml:"maxSize" mapstructure:"maxSize"`
	MaxAge     int  `json:"maxAge" yaml:"maxAge" mapstructure:"maxAge"`
	MaxBackups int  `json:"maxBackups" yaml:"maxBackups" mapstructure:"maxBackups"`
	LocalTime  bool `json:"localTime" yaml:"localTime" mapstructure:"localTime"`
	Compress   bool `json:"compress" yaml:"compress" mapstructure:"compress"`
}

type LogConfig struct {
	// stderr, stdout, none 或文件路径
	Output   string             `json:"output,omitempty" yaml:"output,omitempty" mapstructure:"output"`
	Format   string             `json:"format,omitempty" yaml:"format,omitempty" mapstructure:"format"`
	Rotation *LogRotationConfig `json:"rotation,omitempty" yaml:"rotation,omitempty" mapstructure:"rotation"`
}

package consts

// UpdateStatusType 更新状态
type UpdateStatusType string

const (
	// UpdatedPending 未处理
	UpdatedPending UpdateStatusType = "Pending"
	// UpdatedNothing 未改变
	UpdatedNothing UpdateStatusType = "UnChanged"
	// UpdatedFailed 更新失败
	UpdatedFailed UpdateStatusType = "Failure"
	// UpdatedSuccess 更新成功
	UpdatedSuccess UpdateStatusType = "Success"
	// UpdatedIgnored 记录状态异常, 不更新
	UpdatedIgnored UpdateStatusType = "Ignored"
	// UpdatedNotFound 远端没有该记录
	UpdatedNotFound UpdateStatusType = "NotFound"
)

const (
	HeaderContentType       = "Content-Type"
	DefaultDDNSName         = "default"
	NetworkConnectedTimeout = 5
	DefaultIntervalMinutes  = 20
	DefaultTimeoutSeconds   = 30
	DefaultCachePath        = "./cache.json"
	DefaultConfigPath       = "./ddnsConfig.json"
	APIKeyENV               = "API_KEY"
)

const (
	StatusReady   int32 = 0  // Job or Timer is ready for running.
	StatusRunning int32 = 1  // Job or Timer is already running.
	StatusStopped int32 = 2  // Job or Timer is stopped.
	StatusClosed  int32 = -1 // Job or Timer is closed and waiting to be deleted.
)

package ddns

import (
	"github.com/jxo-me/namesilo-ddns/consts"
)

// StatusActive is the provider reply code for a live record that may be updated.
const StatusActive = 300

// HostRecord is the remote state of one host, fetched fresh on every pass.
type HostRecord struct {
	Domain     string
	HostName   string
	Type       string
	RecordID   string
	CurrentIP  string
	TTL        int
	StatusCode int
}

// FQDN 完整域名, 主机名为空时为根域名
func (r *HostRecord) FQDN() string {
	if r.HostName != "" {
		return r.HostName + "." + r.Domain
	}
	return r.Domain
}

// Response 更新记录后的远端应答
type Response struct {
	Code     int
	Detail   string
	RecordID string
}

// Decision is the outcome of comparing the observed IP to a HostRecord.
type Decision int

const (
	DecisionNotFound Decision = iota
	DecisionIgnore
	DecisionSkip
	DecisionUpdate
)

func (d Decision) String() string {
	switch d {
	case DecisionNotFound:
		return "NotFound"
	case DecisionIgnore:
		return "Ignore"
	case DecisionSkip:
		return "Skip"
	case DecisionUpdate:
		return "Update"
	default:
		return "Unknown"
	}
}

// Status maps a decision that needs no remote write to the host outcome.
func (d Decision) Status() consts.UpdateStatusType {
	switch d {
	case DecisionNotFound:
		return consts.UpdatedNotFound
	case DecisionIgnore:
		return consts.UpdatedIgnored
	case DecisionSkip:
		return consts.UpdatedNothing
	default:
		return consts.UpdatedPending
	}
}

// Decide compares the observed IP with the remote record. A nil record means
// the provider has no record for the host.
func Decide(observedIP string, record *HostRecord) Decision {
	switch {
	case record == nil:
		return DecisionNotFound
	case record.StatusCode != StatusActive:
		return DecisionIgnore
	case record.CurrentIP == observedIP:
		return DecisionSkip
	default:
		return DecisionUpdate
	}
}

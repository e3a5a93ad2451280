package namesilo

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jxo-me/namesilo-ddns/core/logger"
	"github.com/jxo-me/namesilo-ddns/internal/util"
	"github.com/jxo-me/namesilo-ddns/sdk/ddns"
	"github.com/pkg/errors"
)

const (
	Endpoint string = "https://www.namesilo.com/api"
	Code     string = "namesilo"
)

var ErrMissingAPIKey = errors.New("namesilo: api key is required")

// NameSilo DNS provider
type NameSilo struct {
	apiKey   string
	endpoint string
	ttl      int
	client   *http.Client
	logger   logger.ILogger
}

// namesiloResp 查询和修改的公共应答
type namesiloResp struct {
	XMLName xml.Name `xml:"namesilo"`
	Reply   struct {
		Code           string           `xml:"code"`
		Detail         string           `xml:"detail"`
		RecordID       string           `xml:"record_id"`
		ResourceRecord []resourceRecord `xml:"resource_record"`
	} `xml:"reply"`
}

type resourceRecord struct {
	RecordID string `xml:"record_id"`
	Type     string `xml:"type"`
	Host     string `xml:"host"`
	Value    string `xml:"value"`
	TTL      string `xml:"ttl"`
}

type Option func(*NameSilo)

// WithEndpoint overrides the api base url.
func WithEndpoint(endpoint string) Option {
	return func(n *NameSilo) {
		n.endpoint = strings.TrimRight(endpoint, "/")
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(n *NameSilo) {
		n.client = client
	}
}

// WithTTL forces the ttl sent on update; 0 keeps the record's ttl.
func WithTTL(ttl int) Option {
	return func(n *NameSilo) {
		n.ttl = ttl
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(n *NameSilo) {
		n.client = util.CreateHTTPClient(timeout)
	}
}

func WithLogger(log logger.ILogger) Option {
	return func(n *NameSilo) {
		n.logger = log
	}
}

func New(apiKey string, opts ...Option) (*NameSilo, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	n := &NameSilo{
		apiKey:   apiKey,
		endpoint: Endpoint,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.client == nil {
		n.client = util.CreateHTTPClient(0)
	}
	if n.logger == nil {
		n.logger = logger.Default()
	}
	return n, nil
}

func (n *NameSilo) String() string {
	return Code
}

func (n *NameSilo) Endpoint() string {
	return n.endpoint
}

// DescribeRecord 查询主机当前的解析记录
func (n *NameSilo) DescribeRecord(ctx context.Context, domain, hostName string) (*ddns.HostRecord, error) {
	params := url.Values{}
	params.Set("domain", domain)

	var result namesiloResp
	if err := n.request(ctx, "dnsListRecords", params, &result); err != nil {
		return nil, err
	}

	code, err := strconv.Atoi(strings.TrimSpace(result.Reply.Code))
	if err != nil {
		return nil, ddns.NewParseError("dnsListRecords", []byte(result.Reply.Code), err)
	}

	fqdn := domain
	if hostName != "" {
		fqdn = hostName + "." + domain
	}
	for _, rr := range result.Reply.ResourceRecord {
		if rr.Host != fqdn {
			continue
		}
		ttl, err := strconv.Atoi(strings.TrimSpace(rr.TTL))
		if err != nil {
			return nil, ddns.NewParseError("dnsListRecords", []byte(rr.TTL), err)
		}
		return &ddns.HostRecord{
			Domain:     domain,
			HostName:   hostName,
			Type:       rr.Type,
			RecordID:   rr.RecordID,
			CurrentIP:  rr.Value,
			TTL:        ttl,
			StatusCode: code,
		}, nil
	}

	if code != ddns.StatusActive {
		n.logger.Warnf("namesilo listed %s with code %d: %s", domain, code, result.Reply.Detail)
	}
	return nil, nil
}

// UpdateRecord 修改记录的值
func (n *NameSilo) UpdateRecord(ctx context.Context, record *ddns.HostRecord, newIP string) (*ddns.Response, error) {
	if record == nil || record.RecordID == "" {
		return nil, errors.Wrap(ddns.ErrRejected, "namesilo: record id is required")
	}
	ttl := record.TTL
	if n.ttl > 0 {
		ttl = n.ttl
	}

	params := url.Values{}
	params.Set("domain", record.Domain)
	params.Set("rrid", record.RecordID)
	params.Set("rrhost", record.HostName)
	params.Set("rrvalue", newIP)
	params.Set("rrttl", strconv.Itoa(ttl))

	var result namesiloResp
	if err := n.request(ctx, "dnsUpdateRecord", params, &result); err != nil {
		return nil, err
	}

	code, err := strconv.Atoi(strings.TrimSpace(result.Reply.Code))
	if err != nil {
		return nil, ddns.NewParseError("dnsUpdateRecord", []byte(result.Reply.Code), err)
	}
	resp := &ddns.Response{
		Code:     code,
		Detail:   result.Reply.Detail,
		RecordID: result.Reply.RecordID,
	}
	if code != ddns.StatusActive {
		return resp, errors.Wrapf(ddns.ErrRejected, "namesilo: update %s: code %d: %s", record.FQDN(), code, resp.Detail)
	}
	return resp, nil
}

// request 统一请求接口
func (n *NameSilo) request(ctx context.Context, operation string, params url.Values, result *namesiloResp) error {
	params.Set("version", "1")
	params.Set("type", "xml")
	params.Set("key", n.apiKey)
	requestURL := n.endpoint + "/" + operation + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return ddns.NewTransportError(operation, err)
	}

	resp, err := n.client.Do(req)
	body, err := util.GetHTTPResponseOrg(resp, requestURL, err)
	if err != nil {
		return ddns.NewTransportError(operation, err)
	}

	if err = xml.Unmarshal(body, result); err != nil {
		return ddns.NewParseError(operation, body, err)
	}
	return nil
}

package hook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jxo-me/namesilo-ddns/config"
	"github.com/jxo-me/namesilo-ddns/consts"
	"github.com/jxo-me/namesilo-ddns/core/logger"
	"github.com/jxo-me/namesilo-ddns/internal/util"
)

const (
	Code = "webhook"
)

// Webhook Webhook
type Webhook struct {
	WebhookURL         string
	WebhookRequestBody string
	WebhookHeaders     string
	client             *http.Client
	logger             logger.ILogger
}

// hasJSONPrefix returns true if the string starts with a JSON open brace.
func hasJSONPrefix(s string) bool {
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}

func NewHook(conf *config.Webhook, timeout time.Duration, log logger.ILogger) *Webhook {
	if log == nil {
		log = logger.Default()
	}
	w := &Webhook{
		client: util.CreateHTTPClient(timeout),
		logger: log,
	}
	if conf != nil {
		w.WebhookURL = conf.WebhookURL
		w.WebhookRequestBody = conf.WebhookRequestBody
		w.WebhookHeaders = conf.WebhookHeaders
	}
	return w
}

func (w *Webhook) String() string {
	return Code
}

// ExecHook 通知本次同步结果, 返回汇总后的状态
func (w *Webhook) ExecHook(ctx context.Context, domains *config.Domains) (v4Status consts.UpdateStatusType) {
	v4Status = w.getDomainsStatus(domains.Ipv4Domains)

	if w.WebhookURL == "" || v4Status == consts.UpdatedNothing {
		return
	}

	// 成功和失败都要触发webhook
	method := http.MethodGet
	postPara := ""
	contentType := "application/x-www-form-urlencoded"
	if w.WebhookRequestBody != "" {
		method = http.MethodPost
		postPara = w.replacePara(domains, w.WebhookRequestBody, v4Status)
		if json.Valid([]byte(postPara)) {
			contentType = "application/json"
		} else if hasJSONPrefix(postPara) {
			// 如果 RequestBody 的 JSON 无效但前缀为 JSON 括号则为 JSON
			w.logger.Warn("Webhook RequestBody is not valid JSON")
		}
	}
	requestURL := w.replacePara(domains, w.WebhookURL, v4Status)
	u, err := url.Parse(requestURL)
	if err != nil {
		w.logger.Errorf("Webhook URL is invalid: %s", err)
		return
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), strings.NewReader(postPara))
	if err != nil {
		w.logger.Errorf("Failed to create webhook request: %s", err)
		return
	}

	headers := w.CheckParseHeaders(w.WebhookHeaders)
	for key, value := range headers {
		req.Header.Add(key, value)
	}
	req.Header.Set(consts.HeaderContentType, contentType)

	resp, err := w.client.Do(req)
	body, err := util.GetHTTPResponseOrg(resp, requestURL, err)
	if err == nil {
		w.logger.Infof("Webhook called, response: %q", string(body))
	} else {
		w.logger.Errorf("Webhook call failed: %s", err)
	}
	return
}

// getDomainsStatus 获取域名状态
func (w *Webhook) getDomainsStatus(domains []*config.Domain) consts.UpdateStatusType {
	successNum := 0
	for _, v4 := range domains {
		switch v4.UpdateStatus {
		case consts.UpdatedFailed, consts.UpdatedNotFound:
			// 一个失败，全部失败
			return consts.UpdatedFailed
		case consts.UpdatedSuccess:
			successNum++
		}
	}

	if successNum > 0 {
		// 迭代完成后一个成功，就成功
		return consts.UpdatedSuccess
	}
	return consts.UpdatedNothing
}

// replacePara 替换参数
func (w *Webhook) replacePara(domains *config.Domains, orgPara string, ipv4Result consts.UpdateStatusType) string {
	orgPara = strings.ReplaceAll(orgPara, "#{ipv4Addr}", domains.Ipv4Addr)
	orgPara = strings.ReplaceAll(orgPara, "#{ipv4Result}", string(ipv4Result))
	orgPara = strings.ReplaceAll(orgPara, "#{ipv4Domains}", w.getDomainsStr(domains.Ipv4Domains))
	return orgPara
}

// getDomainsStr 用逗号分割域名
func (w *Webhook) getDomainsStr(domains []*config.Domain) string {
	names := make([]string, 0, len(domains))
	for _, v4 := range domains {
		names = append(names, v4.String())
	}
	return strings.Join(names, ",")
}

func (w *Webhook) CheckParseHeaders(headerStr string) (headers map[string]string) {
	headers = make(map[string]string)
	headerArr := strings.Split(strings.ReplaceAll(headerStr, "\r\n", "\n"), "\n")
	for _, headerStr := range headerArr {
		headerStr = strings.TrimSpace(headerStr)
		if headerStr != "" {
			parts := strings.SplitN(headerStr, ":", 2)
			if len(parts) != 2 {
				w.logger.Warnf("Invalid webhook header: %s", headerStr)
				continue
			}
			headers[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}
	return headers
}

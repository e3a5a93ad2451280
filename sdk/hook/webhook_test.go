package hook

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jxo-me/namesilo-ddns/config"
	"github.com/jxo-me/namesilo-ddns/consts"
	xlogger "github.com/jxo-me/namesilo-ddns/sdk/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method      string
	query       string
	body        string
	contentType string
	auth        string
}

func newCapture(t *testing.T) (*captured, string) {
	t.Helper()
	c := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		c.method = r.Method
		c.query = r.URL.RawQuery
		c.body = string(b)
		c.contentType = r.Header.Get("Content-Type")
		c.auth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, "ok")
	}))
	t.Cleanup(srv.Close)
	return c, srv.URL
}

func domains(statuses ...consts.UpdateStatusType) *config.Domains {
	d := &config.Domains{Ipv4Addr: "5.6.7.8"}
	names := []string{"", "www", "home"}
	for i, s := range statuses {
		d.Ipv4Domains = append(d.Ipv4Domains, &config.Domain{DomainName: "example.com", SubDomain: names[i], UpdateStatus: s})
	}
	return d
}

func TestExecHookGet(t *testing.T) {
	c, u := newCapture(t)
	w := NewHook(&config.Webhook{WebhookURL: u + "?ip=#{ipv4Addr}&result=#{ipv4Result}"}, time.Second, xlogger.Nop())

	status := w.ExecHook(context.Background(), domains(consts.UpdatedSuccess, consts.UpdatedNothing))

	assert.Equal(t, consts.UpdatedSuccess, status)
	assert.Equal(t, http.MethodGet, c.method)
	assert.Equal(t, "ip=5.6.7.8&result=Success", c.query)
}

func TestExecHookPostJSON(t *testing.T) {
	c, u := newCapture(t)
	w := NewHook(&config.Webhook{
		WebhookURL:         u,
		WebhookRequestBody: `{"ip":"#{ipv4Addr}","domains":"#{ipv4Domains}","result":"#{ipv4Result}"}`,
		WebhookHeaders:     "Authorization: Bearer token\r\nX-Empty",
	}, time.Second, xlogger.Nop())

	status := w.ExecHook(context.Background(), domains(consts.UpdatedSuccess, consts.UpdatedFailed))

	assert.Equal(t, consts.UpdatedFailed, status)
	assert.Equal(t, http.MethodPost, c.method)
	assert.Equal(t, "application/json", c.contentType)
	assert.Equal(t, "Bearer token", c.auth)
	assert.JSONEq(t, `{"ip":"5.6.7.8","domains":"example.com,www.example.com","result":"Failure"}`, c.body)
}

func TestExecHookNothingChanged(t *testing.T) {
	c, u := newCapture(t)
	w := NewHook(&config.Webhook{WebhookURL: u}, time.Second, xlogger.Nop())

	status := w.ExecHook(context.Background(), domains(consts.UpdatedNothing, consts.UpdatedIgnored))

	assert.Equal(t, consts.UpdatedNothing, status)
	assert.Empty(t, c.method)
}

func TestGetDomainsStatus(t *testing.T) {
	w := NewHook(nil, time.Second, xlogger.Nop())

	assert.Equal(t, consts.UpdatedFailed, w.getDomainsStatus(domains(consts.UpdatedNotFound).Ipv4Domains))
	assert.Equal(t, consts.UpdatedNothing, w.getDomainsStatus(nil))
}

func TestCheckParseHeaders(t *testing.T) {
	w := NewHook(nil, time.Second, xlogger.Nop())

	headers := w.CheckParseHeaders("Authorization: Bearer a:b\nX-Test: 1\n\nbroken")
	require.Len(t, headers, 2)
	assert.Equal(t, "Bearer a:b", headers["Authorization"])
	assert.Equal(t, "1", headers["X-Test"])
}

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jxo-me/namesilo-ddns/consts"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestReadConfig(t *testing.T) {
	path := writeConfig(t, "ddnsConfig.json", `{
  "logLevel": "debug",
  "useCache": true,
  "cronConfig": { "runCron": true, "intervalMinutes": 5 },
  "records": [
    { "domainName": "example.com", "hostNames": ["", "www"] },
    { "domainName": "example.org", "hostNames": ["home"] }
  ]
}`)
	log := zerolog.Nop()

	root, err := ReadConfig(path, &log)
	require.NoError(t, err)

	assert.Equal(t, "debug", root.LogLevel)
	assert.True(t, root.UseCache)
	assert.True(t, root.CronConfig.RunCron)
	assert.Equal(t, 5*time.Minute, root.Interval())
	require.Len(t, root.Records, 2)
	assert.Equal(t, []string{"", "www"}, root.Records[0].HostNames)
	assert.Equal(t, consts.DefaultCachePath, root.CachePath)
	assert.Equal(t, 1, root.Concurrency)
	assert.Equal(t, 30*time.Second, root.Timeout())
	require.NotNil(t, root.Ipv4)
	assert.Equal(t, "url", root.Ipv4.GetType)
	assert.Equal(t, DefaultIpv4URL, root.Ipv4.URL)
}

func TestReadConfigDefaultInterval(t *testing.T) {
	path := writeConfig(t, "ddnsConfig.json", `{
  "cronConfig": { "runCron": true },
  "records": [ { "domainName": "example.com", "hostNames": [""] } ]
}`)

	root, err := ReadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, consts.DefaultIntervalMinutes, root.CronConfig.IntervalMinutes)
	assert.Equal(t, 20*time.Minute, root.Interval())
	assert.Equal(t, "info", root.LogLevel)
}

func TestReadConfigYaml(t *testing.T) {
	path := writeConfig(t, "ddns.yaml", `
useCache: true
records:
  - domainName: example.com
    hostNames: ["www"]
webhook:
  webhookURL: http://localhost/hook
`)

	root, err := ReadConfig(path, nil)
	require.NoError(t, err)
	assert.True(t, root.UseCache)
	require.NotNil(t, root.Webhook)
	assert.Equal(t, "http://localhost/hook", root.Webhook.WebhookURL)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}

func TestReadConfigNoRecords(t *testing.T) {
	path := writeConfig(t, "ddnsConfig.json", `{"useCache": true, "records": []}`)

	_, err := ReadConfig(path, nil)
	assert.True(t, errors.Is(err, ErrNoRecords))
}

func TestValidate(t *testing.T) {
	r := &Root{Records: []DomainConfig{{DomainName: " "}}}
	assert.True(t, errors.Is(r.Validate(), ErrEmptyDomainName))

	r = &Root{
		Records:    []DomainConfig{{DomainName: "example.com"}},
		CronConfig: CronConfig{IntervalMinutes: -1},
	}
	assert.True(t, errors.Is(r.Validate(), ErrInvalidInterval))
}

func TestDomains(t *testing.T) {
	r := Root{Records: []DomainConfig{
		{DomainName: "example.com", HostNames: []string{"", "www"}},
		{DomainName: "example.org", HostNames: []string{"home"}},
	}}

	domains := r.Domains()
	require.Len(t, domains, 3)
	assert.Equal(t, "example.com", domains[0].String())
	assert.Equal(t, "www.example.com", domains[1].String())
	assert.Equal(t, "home.example.org", domains[2].String())
	for _, d := range domains {
		assert.Equal(t, consts.UpdatedPending, d.UpdateStatus)
	}
}

func TestWrite(t *testing.T) {
	r := Root{
		UseCache: true,
		Records:  []DomainConfig{{DomainName: "example.com", HostNames: []string{"www"}}},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, "yaml"))
	assert.Contains(t, buf.String(), "domainName: example.com")
	assert.Contains(t, buf.String(), "useCache: true")

	buf.Reset()
	require.NoError(t, r.Write(&buf, "json"))
	assert.Contains(t, buf.String(), `"domainName": "example.com"`)

	assert.True(t, errors.Is(r.Write(&buf, "xml"), ErrInvalidFormat))
}

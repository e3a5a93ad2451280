package resolver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/jxo-me/namesilo-ddns/config"
	"github.com/jxo-me/namesilo-ddns/sdk/ddns"
	xlogger "github.com/jxo-me/namesilo-ddns/sdk/logger"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoServer(t *testing.T, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestResolveURL(t *testing.T) {
	u := echoServer(t, "Current IP: 5.6.7.8\n")
	r := NewResolver(&config.Ipv4{GetType: TypeURL, URL: u}, time.Second, xlogger.Nop())

	ip, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "5.6.7.8", ip)
}

func TestResolveURLFallback(t *testing.T) {
	bad := echoServer(t, "no address here")
	good := echoServer(t, "5.6.7.8")
	r := NewResolver(&config.Ipv4{GetType: TypeURL, URL: bad + ", " + good}, time.Second, xlogger.Nop())

	ip, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "5.6.7.8", ip)
}

func TestResolveURLStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "1.1.1.1 is down", http.StatusInternalServerError)
	}))
	defer srv.Close()
	r := NewResolver(&config.Ipv4{GetType: TypeURL, URL: srv.URL}, time.Second, xlogger.Nop())

	_, err := r.Resolve(context.Background())
	assert.True(t, errors.Is(err, ddns.ErrIPDiscovery))
}

func TestResolveURLNoAddress(t *testing.T) {
	u := echoServer(t, "nothing")
	r := NewResolver(&config.Ipv4{GetType: TypeURL, URL: u}, time.Second, xlogger.Nop())

	_, err := r.Resolve(context.Background())
	assert.True(t, errors.Is(err, ddns.ErrIPDiscovery))
}

func TestResolveCmd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a posix shell")
	}
	r := NewResolver(&config.Ipv4{GetType: TypeCmd, Cmd: "echo 9.8.7.6"}, time.Second, xlogger.Nop())

	ip, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "9.8.7.6", ip)
}

func TestResolveUnknownType(t *testing.T) {
	r := NewResolver(&config.Ipv4{GetType: "dns"}, time.Second, xlogger.Nop())

	_, err := r.Resolve(context.Background())
	assert.True(t, errors.Is(err, ddns.ErrIPDiscovery))
}

func TestResolveUnknownInterface(t *testing.T) {
	r := NewResolver(&config.Ipv4{GetType: TypeNetInterface, NetInterface: "does-not-exist0"}, time.Second, xlogger.Nop())

	_, err := r.Resolve(context.Background())
	assert.True(t, errors.Is(err, ddns.ErrIPDiscovery))
}

func TestNewResolverDefaults(t *testing.T) {
	r := NewResolver(nil, 0, nil)
	assert.Equal(t, TypeURL, r.String())
	assert.Equal(t, config.DefaultIpv4URL, r.conf.URL)
}

package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jxo-me/namesilo-ddns/sdk/ddns"
	xlogger "github.com/jxo-me/namesilo-ddns/sdk/logger"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *IpCache {
	t.Helper()
	return NewIpCache(filepath.Join(t.TempDir(), "cache.json"), xlogger.Nop())
}

func TestRoundTrip(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.Save("5.6.7.8"))
	assert.Equal(t, "5.6.7.8", c.Load())

	require.NoError(t, c.Save("1.2.3.4"))
	assert.Equal(t, "1.2.3.4", c.Load())
}

func TestFileFormat(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, c.Save("5.6.7.8"))

	byt, err := os.ReadFile(c.Path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ipAddress":"5.6.7.8"}`, string(byt))
}

func TestLoadMissingFile(t *testing.T) {
	c := newTestCache(t)
	assert.Equal(t, "", c.Load())
}

func TestLoadCorruptFile(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, os.WriteFile(c.Path, []byte(`{"ipAddress":`), 0644))

	assert.Equal(t, "", c.Load())
}

func TestLoadExistingFile(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, os.WriteFile(c.Path, []byte(`{"ipAddress":"9.9.9.9"}`), 0644))

	assert.Equal(t, "9.9.9.9", c.Load())
}

func TestSaveFailureKeepsPrevious(t *testing.T) {
	c := NewIpCache(filepath.Join(t.TempDir(), "missing-dir", "cache.json"), nil)

	err := c.Save("5.6.7.8")
	assert.True(t, errors.Is(err, ddns.ErrCacheIO))
	assert.Equal(t, "", c.Load())
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, c.Save("5.6.7.8"))

	entries, err := os.ReadDir(filepath.Dir(c.Path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cache.json", entries[0].Name())
}

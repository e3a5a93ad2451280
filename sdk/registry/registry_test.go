package registry

import (
	"testing"

	reg "github.com/jxo-me/namesilo-ddns/core/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedService struct{ name string }

func (s namedService) String() string { return s.name }
func (s namedService) Hash() string   { return s.name }
func (s namedService) Start() error   { return nil }
func (s namedService) Stop() error    { return nil }

func TestDDNSRegistry(t *testing.T) {
	r := new(DDNSRegistry)

	require.NoError(t, r.Register("namesilo", namedService{"namesilo"}))
	assert.ErrorIs(t, r.Register("namesilo", namedService{"other"}), reg.ErrDup)
	assert.NoError(t, r.Register("", namedService{"ignored"}))

	assert.True(t, r.IsRegistered("namesilo"))
	assert.Equal(t, "namesilo", r.Get("namesilo").String())
	assert.Nil(t, r.Get("missing"))
	assert.Len(t, r.GetAll(), 1)

	r.Unregister("namesilo")
	assert.False(t, r.IsRegistered("namesilo"))
	assert.Empty(t, r.GetAll())
}

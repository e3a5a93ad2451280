package ddns

import (
	"io"
	"testing"

	"github.com/jxo-me/namesilo-ddns/consts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		ip       string
		record   *HostRecord
		expected Decision
	}{
		{
			name:     "missing record",
			ip:       "5.6.7.8",
			record:   nil,
			expected: DecisionNotFound,
		},
		{
			name:     "inactive record with different ip",
			ip:       "5.6.7.8",
			record:   &HostRecord{CurrentIP: "1.2.3.4", StatusCode: 1},
			expected: DecisionIgnore,
		},
		{
			name:     "inactive record with same ip",
			ip:       "5.6.7.8",
			record:   &HostRecord{CurrentIP: "5.6.7.8", StatusCode: 280},
			expected: DecisionIgnore,
		},
		{
			name:     "current record",
			ip:       "5.6.7.8",
			record:   &HostRecord{CurrentIP: "5.6.7.8", StatusCode: StatusActive},
			expected: DecisionSkip,
		},
		{
			name:     "stale record",
			ip:       "5.6.7.8",
			record:   &HostRecord{CurrentIP: "1.2.3.4", StatusCode: StatusActive},
			expected: DecisionUpdate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := Decide(tt.ip, tt.record)
			second := Decide(tt.ip, tt.record)
			assert.Equal(t, tt.expected, first)
			assert.Equal(t, first, second, "decide must be deterministic")
		})
	}
}

func TestDecideDoesNotMutateRecord(t *testing.T) {
	record := &HostRecord{Domain: "example.com", CurrentIP: "1.2.3.4", StatusCode: StatusActive, TTL: 3600}
	before := *record

	Decide("5.6.7.8", record)

	assert.Equal(t, before, *record)
}

func TestDecisionStatus(t *testing.T) {
	assert.Equal(t, consts.UpdatedNotFound, DecisionNotFound.Status())
	assert.Equal(t, consts.UpdatedIgnored, DecisionIgnore.Status())
	assert.Equal(t, consts.UpdatedNothing, DecisionSkip.Status())
	assert.Equal(t, "Update", DecisionUpdate.String())
}

func TestFQDN(t *testing.T) {
	assert.Equal(t, "example.com", (&HostRecord{Domain: "example.com"}).FQDN())
	assert.Equal(t, "www.example.com", (&HostRecord{Domain: "example.com", HostName: "www"}).FQDN())
}

func TestParseErrorIsTransport(t *testing.T) {
	err := errors.Wrap(NewParseError("list", []byte("<html>"), io.ErrUnexpectedEOF), "describe www.example.com")

	assert.True(t, errors.Is(err, ErrTransport))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, "<html>", perr.Body)
}

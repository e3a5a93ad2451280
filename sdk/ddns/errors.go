package ddns

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrIPDiscovery aborts the whole pass.
	ErrIPDiscovery = errors.New("ip discovery failed")
	// ErrTransport covers network, http and response parsing failures of a single host.
	ErrTransport = errors.New("provider transport failed")
	// ErrRecordNotFound marks a configured host without a matching remote record.
	ErrRecordNotFound = errors.New("record not found")
	// ErrRejected is returned when the provider answers an update with a non-success code.
	ErrRejected = errors.New("provider rejected the request")
	// ErrCacheIO is returned when the ip cache cannot be written.
	ErrCacheIO = errors.New("ip cache io failed")
)

// TransportError wraps a failed call to the provider.
type TransportError struct {
	Op  string
	Err error
}

func NewTransportError(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTransport, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// ParseError is a malformed provider response. It is treated as a TransportError.
type ParseError struct {
	Op   string
	Body string
	Err  error
}

func NewParseError(op string, body []byte, err error) error {
	const maxBody = 256
	b := string(body)
	if len(b) > maxBody {
		b = b[:maxBody]
	}
	return &ParseError{Op: op, Body: b, Err: err}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: malformed response %q: %v", ErrTransport, e.Op, e.Body, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrTransport }

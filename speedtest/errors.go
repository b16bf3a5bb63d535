package speedtest

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrEmptyInput is returned when a summary is requested over zero
// measurements.
var ErrEmptyInput = errors.New("no measurements to summarize")

// TransportError reports a request that could not be sent or whose response
// could not be read. It is fatal for the run; nothing in the engine retries.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a response that violates the endpoint contract,
// e.g. a missing or unparseable Server-Timing header.
type ProtocolError struct {
	Header string
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Header, e.Reason)
}

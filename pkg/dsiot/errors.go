package dsiot

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldAbsent marks a parameter path the device does not expose in
	// its current tree.
	ErrFieldAbsent = errors.New("dsiot: field absent")

	// ErrUnsupportedValue marks a requested value outside the device's
	// current capability. It must never result in an outgoing command.
	ErrUnsupportedValue = errors.New("dsiot: unsupported value")

	// ErrUnknownFamily marks a device whose type tag has no registered
	// descriptor.
	ErrUnknownFamily = errors.New("dsiot: unknown device family")
)

// TransportError is any failure talking to the device endpoint, including a
// non-success per-request status code in an otherwise valid response.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dsiot: transport error (code %d): %s", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("dsiot: transport error (code %d)", e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

package app

import "errors"

// Request errors, reported to the initiating client through the ack
// channel. The error text is the wire code.
var (
	ErrNotFound      = errors.New("NotFound")
	ErrUnauthorized  = errors.New("Unauthorized")
	ErrMissingTarget = errors.New("MissingTarget")
	ErrUnbound       = errors.New("Unbound")
	ErrStore         = errors.New("StoreError")
)

// ErrorCode maps a coordinator or relay error to its wire code.
// Unrecognized errors count as store failures.
func ErrorCode(err error) string {
	for _, e := range []error{ErrNotFound, ErrUnauthorized, ErrMissingTarget, ErrUnbound, ErrStore} {
		if errors.Is(err, e) {
			return e.Error()
		}
	}
	return ErrStore.Error()
}

package session

import "errors"

// The no-op conditions. Callers at the UI boundary treat every one of them as
// "nothing happened" rather than as a failure.
var (
	ErrBlankContent     = errors.New("message content is blank")
	ErrNoActiveBot      = errors.New("no bot selected")
	ErrNotAuthenticated = errors.New("no signed-in user")
	ErrStaleReply       = errors.New("conversation changed before reply was delivered")
)

// IsNoop reports whether err is one of the silent no-op conditions.
func IsNoop(err error) bool {
	return errors.Is(err, ErrBlankContent) ||
		errors.Is(err, ErrNoActiveBot) ||
		errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrStaleReply)
}

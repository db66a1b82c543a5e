package client

import "errors"

var (
	// ErrMalformedMessage covers unparseable JSON and missing required fields.
	ErrMalformedMessage = errors.New("malformed message")
	// ErrDanglingReference means an event named a puppet the registry does not hold.
	ErrDanglingReference = errors.New("dangling puppet reference")
	// ErrDuplicateEntity means an event introduced a puppet the registry already holds.
	ErrDuplicateEntity = errors.New("duplicate puppet")
	// ErrNoInstance means a puppet event arrived before any instance digest.
	ErrNoInstance = errors.New("no active instance")

	ErrNotConnected  = errors.New("not connected")
	ErrSendQueueFull = errors.New("send queue full")
)

// IsDesync reports whether err means local state has drifted from the
// server and a fresh instance digest is needed.
func IsDesync(err error) bool {
	return errors.Is(err, ErrDanglingReference) ||
		errors.Is(err, ErrDuplicateEntity) ||
		errors.Is(err, ErrNoInstance)
}

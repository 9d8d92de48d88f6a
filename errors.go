package routeros

import "errors"

var (
	ErrTimeout     = errors.New("routeros: command timed out")
	ErrClosed      = errors.New("routeros: connection closed")
	ErrQueueFull   = errors.New("routeros: pending command queue full")
	ErrProtocol    = errors.New("routeros: protocol error")
	ErrEmptyPath   = errors.New("routeros: request path required")
	ErrLoginFailed = errors.New("routeros: login rejected")
)

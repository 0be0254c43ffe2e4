// internal/core/services/errors.go
package services

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// FailureClass buckets run failures for operator-facing messages
type FailureClass int

const (
	FailureOther FailureClass = iota
	FailureTimeout
	FailureConnection
)

func (c FailureClass) String() string {
	switch c {
	case FailureTimeout:
		return "timeout"
	case FailureConnection:
		return "connection"
	default:
		return "other"
	}
}

// Message returns the human-readable log line for the class
func (c FailureClass) Message() string {
	switch c {
	case FailureTimeout:
		return "request timed out"
	case FailureConnection:
		return "connection error"
	default:
		return "sync failed"
	}
}

// Classify sorts err into timeout, connection or other failures
func Classify(err error) FailureClass {
	if err == nil {
		return FailureOther
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &opErr),
		errors.As(err, &dnsErr),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET):
		return FailureConnection
	}

	return FailureOther
}

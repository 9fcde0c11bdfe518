package gate

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/puddle/v2"
)

// Class tells whether an error is worth another attempt.
type Class int

const (
	Unknown Class = iota
	Transient
	Fatal
)

func (c Class) String() string {
	switch c {
	case Transient:
		return "transient"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// SQLSTATE codes that signal a busy, lost or deadlocked connection.
var transientCodes = map[string]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"53300": {}, // too_many_connections
	"57P01": {}, // admin_shutdown
	"57P02": {}, // crash_shutdown
	"57P03": {}, // cannot_connect_now
}

// Classify maps an error raised while talking to a data store onto a retry class.
func Classify(err error) Class {
	if err == nil {
		return Unknown
	}

	if errors.Is(err, context.Canceled) {
		return Fatal
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if _, ok := transientCodes[pgErr.Code]; ok || strings.HasPrefix(pgErr.Code, "08") {
			return Transient
		}
		return Fatal
	}

	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return Transient
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return Transient
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return Transient
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, puddle.ErrClosedPool) {
		return Transient
	}

	return Unknown
}

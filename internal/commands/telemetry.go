package commands

import (
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// TelemetryStatus is the outcome bucket reported for a command run.
type TelemetryStatus string

const (
	TelemetryStatusSuccess TelemetryStatus = "success"
	// TelemetryStatusRejected marks errors caused by the caller's input, such as a
	// missing post or a failed field rule. They are logged as warnings.
	TelemetryStatusRejected     TelemetryStatus = "rejected"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes a finished command run.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry replaces the handler's own outcome logging.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// RejectionFunc reports whether err is the caller's fault rather than a system failure.
type RejectionFunc func(err error) bool

// IsFieldRejection matches ozzo-validation field errors.
func IsFieldRejection(err error) bool {
	var fieldErrs validation.Errors
	return errors.As(err, &fieldErrs)
}

// RejectOn builds a RejectionFunc matching field errors plus any of sentinels.
func RejectOn(sentinels ...error) RejectionFunc {
	return func(err error) bool {
		if IsFieldRejection(err) {
			return true
		}
		for _, sentinel := range sentinels {
			if errors.Is(err, sentinel) {
				return true
			}
		}
		return false
	}
}

// DefaultTelemetry logs outcomes with logger, or with the handler's logger when nil.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	return func(ctx context.Context, _ T, info TelemetryInfo) {
		entry := logger
		if entry == nil {
			entry = info.Logger
		}
		if entry == nil {
			entry = logging.NoOp()
		}
		logOutcome(logging.WithFields(entry, info.Fields), info)
	}
}

func logOutcome(entry interfaces.Logger, info TelemetryInfo) {
	elapsed := info.Duration.Milliseconds()
	switch info.Status {
	case TelemetryStatusSuccess:
		entry.Info("command.execute.success", "duration_ms", elapsed)
	case TelemetryStatusRejected:
		entry.Warn("command.execute.rejected", "duration_ms", elapsed, "error", info.Error)
	case TelemetryStatusContextError:
		entry.Error("command.execute.context_error", "duration_ms", elapsed, "error", info.Error)
	default:
		entry.Error("command.execute.failed", "duration_ms", elapsed, "error", info.Error)
	}
}

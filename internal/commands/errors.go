package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"
	commandRejected         = "COMMAND_REJECTED"
)

// tagError wraps err in a go-errors envelope unless a service already did.
func tagError(err error, category goerrors.Category, message, code string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}

// wrapValidationError tags a message that failed Validate before the handler ran.
func wrapValidationError(err error) error {
	return tagError(err, goerrors.CategoryValidation, "command validation failed", commandValidationCode)
}

func wrapContextError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return tagError(err, goerrors.CategoryCommand, "command execution cancelled", commandContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return tagError(err, goerrors.CategoryCommand, "command execution deadline exceeded", commandContextTimeout)
	default:
		return tagError(err, goerrors.CategoryCommand, "command context error", commandContextErrorCode)
	}
}

func wrapExecuteError(err error) error {
	return tagError(err, goerrors.CategoryCommand, "command execution failed", commandExecuteFailed)
}

// wrapRejectedError tags caller errors; HTTP callers still map the unwrapped cause.
func wrapRejectedError(err error) error {
	return tagError(err, goerrors.CategoryCommand, "command rejected", commandRejected)
}

package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to command errors.
const (
	TextCodeValidation     = "COMMAND_VALIDATION_FAILED"
	TextCodeContextCancel  = "COMMAND_CONTEXT_CANCELED"
	TextCodeContextTimeout = "COMMAND_CONTEXT_TIMEOUT"
	TextCodeContextError   = "COMMAND_CONTEXT_ERROR"
	TextCodeExecute        = "COMMAND_EXECUTION_FAILED"
)

func statusFor(err error) TelemetryStatus {
	switch {
	case err == nil:
		return TelemetryStatusSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return TelemetryStatusContextError
	}
	return TelemetryStatusFailed
}

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(TextCodeValidation)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(TextCodeContextCancel)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(TextCodeContextTimeout)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
		WithTextCode(TextCodeContextError)
}

// wrapExecuteError keeps errors that already carry a go-errors category,
// such as structure errors from the mapper.
func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(TextCodeExecute)
}

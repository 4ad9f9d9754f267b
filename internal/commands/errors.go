package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes carried by wrapped command errors so API and CLI surfaces can
// report failures uniformly.
const (
	CodeValidationFailed = "BLOG_COMMAND_VALIDATION_FAILED"
	CodeCanceled         = "BLOG_COMMAND_CANCELED"
	CodeTimedOut         = "BLOG_COMMAND_TIMED_OUT"
	CodeContextFailed    = "BLOG_COMMAND_CONTEXT_FAILED"
	CodeExecutionFailed  = "BLOG_COMMAND_EXECUTION_FAILED"
)

// wrap attaches a category, message, and text code unless the error already
// carries them from a nested handler.
func wrap(err error, category goerrors.Category, message, code string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}

func wrapValidationError(err error) error {
	return wrap(err, goerrors.CategoryValidation, "command message rejected", CodeValidationFailed)
}

func wrapContextError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return wrap(err, goerrors.CategoryCommand, "command canceled", CodeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return wrap(err, goerrors.CategoryCommand, "command timed out", CodeTimedOut)
	default:
		return wrap(err, goerrors.CategoryCommand, "command context failed", CodeContextFailed)
	}
}

func wrapExecuteError(err error) error {
	return wrap(err, goerrors.CategoryCommand, "command failed", CodeExecutionFailed)
}

package errutil

import (
	"context"
	"errors"
	"net/http"

	"github.com/campus-lab/coursepath/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Error tags classify failures across the service. The HTTP controller maps
// them to status codes; everything else treats them as opaque labels.
var (
	// TagNotFound marks absent sessions or assistant registrations
	TagNotFound = goerr.NewTag("not_found")
	// TagValidation marks malformed caller input
	TagValidation = goerr.NewTag("validation")
	// TagUpstream marks hosted-assistant or store failures
	TagUpstream = goerr.NewTag("upstream")
	// TagParse marks unusable assistant output
	TagParse = goerr.NewTag("parse")
	// TagTimeout marks an exhausted run-poll deadline
	TagTimeout = goerr.NewTag("timeout")
)

// HTTPStatus maps an error to the HTTP status code the route layer should
// return. Parse and upstream failures are indistinguishable to the caller:
// both are server errors.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case goerr.HasTag(err, TagNotFound):
		return http.StatusNotFound
	case goerr.HasTag(err, TagValidation):
		return http.StatusBadRequest
	case goerr.HasTag(err, TagTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Handle logs the error with a message and returns it unchanged.
// This function ensures that all errors, especially 5xx errors, are properly logged.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	return err
}

// HandleHTTP logs the error and writes an appropriate HTTP error response.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	http.Error(w, err.Error(), statusCode)
}

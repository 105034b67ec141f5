package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/utils/logging"
)

// Handle logs the error with a message and reports it to Sentry when a client is
// configured. The error is returned as-is.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logError(ctx, msg, err)
	report(err)
	return err
}

// HandleHTTP logs the error and writes a JSON error response. Only 5xx errors are
// reported to Sentry.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logError(ctx, "HTTP error", err, slog.Int("status", statusCode))
	if statusCode >= http.StatusInternalServerError {
		report(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	body := map[string]string{"error": err.Error()}
	if encErr := json.NewEncoder(w).Encode(body); encErr != nil {
		logging.From(ctx).Error("failed to write error response", "error", encErr)
	}
}

func logError(ctx context.Context, msg string, err error, attrs ...any) {
	logger := logging.From(ctx)

	args := append([]any{"error", err.Error()}, attrs...)
	var ge *goerr.Error
	if errors.As(err, &ge) {
		args = append(args, "values", ge.Values(), "stack", ge.Stacks())
	}
	logger.Error(msg, args...)
}

func report(err error) {
	hub := sentry.CurrentHub()
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		var ge *goerr.Error
		if errors.As(err, &ge) {
			scope.SetContext("goerr", sentry.Context(ge.Values()))
		}
		hub.CaptureException(err)
	})
}

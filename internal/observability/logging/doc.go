// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package. Production output
// is JSON; local development can switch to colored text output rendered by
// github.com/lmittmann/tint.
//
// Example usage:
//
//	logger := logging.NewLogger(logging.Options{Level: "info", Format: "json"})
//	logger.Info("server starting", slog.String("addr", ":8080"))
//
//	func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    logger := logging.WithRequestID(r.Context(), h.Logger)
//	    logger.Info("processing request")
//	}
package logging

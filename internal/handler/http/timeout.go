package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout returns middleware that bounds request handling. When d elapses
// before the handler responds, the client gets 504 and the handler's context
// is canceled; later writes by the handler are discarded.
//
// A panic in the handler is re-raised on the serving goroutine so Recover
// still sees it.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			r = r.WithContext(ctx)

			done := make(chan struct{})
			panicked := make(chan any, 1)
			tw := &timeoutResponseWriter{ResponseWriter: w, header: w.Header().Clone()}

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case p := <-panicked:
				panic(p)
			case <-done:
				return
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.timedOut = true
				if !tw.wroteHeader {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusGatewayTimeout)
					_, _ = w.Write([]byte(`{"error":"request timeout"}` + "\n"))
				}
			}
		})
	}
}

// timeoutResponseWriter serializes writes against the timeout response.
// Headers are buffered in a private map until the first write so a timed out
// handler cannot race on the real header map.
type timeoutResponseWriter struct {
	http.ResponseWriter
	mu          sync.Mutex
	header      http.Header
	timedOut    bool
	wroteHeader bool
}

func (w *timeoutResponseWriter) Header() http.Header {
	return w.header
}

func (w *timeoutResponseWriter) WriteHeader(statusCode int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writeHeaderLocked(statusCode)
}

func (w *timeoutResponseWriter) writeHeaderLocked(statusCode int) {
	if w.timedOut || w.wroteHeader {
		return
	}
	w.wroteHeader = true
	dst := w.ResponseWriter.Header()
	for k, v := range w.header {
		dst[k] = v
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *timeoutResponseWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	w.writeHeaderLocked(http.StatusOK)
	return w.ResponseWriter.Write(data)
}

package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/google/uuid"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Middleware wraps next with request logging and panic recovery. Each request gets a
// request_id field that downstream loggers pick up through logging.ForContext.
func Middleware(logger interfaces.Logger, next http.Handler) http.Handler {
	if logger == nil {
		logger = logging.NoOp()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		ctx := logging.ContextWithFields(r.Context(), map[string]any{"request_id": requestID})
		r = r.WithContext(ctx)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		log := logging.ForContext(ctx, logger)

		defer func() {
			if p := recover(); p != nil {
				log.Error("http.request.panic", "method", r.Method, "path", r.URL.Path, "panic", p)
				writeJSON(rec, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
			}
			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
				"bytes", rec.written,
			}
			switch {
			case rec.status >= 500:
				log.Error("http.request", args...)
			case rec.status >= 400:
				log.Warn("http.request", args...)
			default:
				log.Info("http.request", args...)
			}
		}()

		next.ServeHTTP(rec, r)
	})
}

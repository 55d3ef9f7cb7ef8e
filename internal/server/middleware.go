package server

import (
	"net/http"
	"time"

	"visrender/internal/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// RequestLogger logs every request handled by inner
func RequestLogger(inner http.Handler, name string) http.Handler {
	log := logger.Component("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		inner.ServeHTTP(rec, r)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		fields := logger.Fields{
			"method":      r.Method,
			"uri":         r.RequestURI,
			"route":       name,
			"status":      rec.status,
			"bytes":       rec.bytes,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if rec.status >= http.StatusInternalServerError {
			log.Warn("Request failed", fields)
			return
		}
		log.Debug("Request handled", fields)
	})
}

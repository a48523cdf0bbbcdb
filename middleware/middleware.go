package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"notes-api/db"
)

// RequestLogger records the method, path, and body of every request before
// passing it on. The body is restored so downstream decoders see it intact.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		logrus.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"body":   string(body),
		}).Info("request")

		next.ServeHTTP(w, r)
	})
}

// UnknownEndpoint answers any request that matched no mounted route.
func UnknownEndpoint(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "unknown endpoint")
}

// HandlerFunc is a route handler that reports failures instead of writing
// them itself.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Errors adapts a HandlerFunc into an http.HandlerFunc, translating store
// error kinds into HTTP responses. It is the single place errors become
// status codes.
func Errors(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		logrus.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error(err.Error())

		var derr *db.Error
		if errors.As(err, &derr) {
			switch derr.Kind {
			case db.KindMalformedID:
				writeError(w, http.StatusBadRequest, "malformatted id")
				return
			case db.KindValidation:
				writeError(w, http.StatusBadRequest, derr.Message)
				return
			case db.KindNotFound:
				w.WriteHeader(http.StatusNotFound)
				return
			}
		}

		w.WriteHeader(http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

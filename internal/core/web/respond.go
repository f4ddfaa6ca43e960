package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/georgemunganga/stockbook-backend/internal/core/errx"
	logx "github.com/georgemunganga/stockbook-backend/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
)

// Respond writes body as JSON with the given status.
func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// RespondError maps err to its HTTP status and writes {"error": message}.
// Internal errors are logged and masked.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status := errx.Status(err)
	if status == http.StatusInternalServerError {
		logx.Error().Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	Respond(w, status, map[string]string{"error": errx.PublicMessage(err)})
}

// Decode reads a JSON request body into v. An empty body leaves v untouched.
func Decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errx.Wrap(err, errx.KindValidation, "invalid request body")
	}
	return nil
}

package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/matthewbaird/snippetchooser/internal/chooser"
)

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON encode error: %v", err)
	}
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// errorStatus maps chooser errors to an HTTP status and error code.
func errorStatus(err error) (int, string) {
	switch {
	case chooser.IsNotFound(err):
		return http.StatusNotFound, "NOT_FOUND"
	case chooser.IsValidation(err):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// errorToHTTP writes the response for err. Internal errors are logged and
// their message is not exposed.
func errorToHTTP(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		writeError(w, status, code, "internal server error")
		return
	}
	writeError(w, status, code, err.Error())
}

// parsePage reads the 1-indexed page number from "p" or "page". Missing or
// malformed values mean page 1; out-of-range pages are clamped later.
func parsePage(r *http.Request) int {
	q := r.URL.Query()
	raw := q.Get("p")
	if raw == "" {
		raw = q.Get("page")
	}
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}

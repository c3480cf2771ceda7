package http

import (
	"encoding/json"
	"io"
	"net/http"

	"ledger/internal/core"
	"ledger/internal/log"
)

const maxBodyBytes = 1 << 20

// decode reads a JSON request body into dst. An empty body decodes to
// the zero value so operations whose fields are all optional work with
// no body at all.
func decode(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if err == io.EOF {
			return nil
		}
		return core.Validationf("invalid request body: %v", err)
	}
	return nil
}

// writeOK renders a success response. Every payload gets the ok status
// discriminator stamped on it.
func (s *Server) writeOK(w http.ResponseWriter, payload map[string]any) {
	payload["status"] = "ok"
	s.writeJSON(w, http.StatusOK, payload)
}

// writeError maps the error taxonomy onto HTTP statuses and renders the
// structured error payload. Unclassified errors are reported without
// their internals.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := err.Error()
	switch {
	case core.IsValidation(err):
		status = http.StatusBadRequest
	case core.IsNotFound(err):
		status = http.StatusNotFound
	default:
		s.logger.ErrorContext(r.Context(), "Operation failed",
			log.FieldPath, r.URL.Path,
			log.FieldError, err)
		message = "internal error"
	}
	s.writeJSON(w, status, map[string]any{
		"status":  "error",
		"message": message,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", log.FieldError, err)
	}
}

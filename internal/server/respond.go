package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/talentvec/talentvec/internal/faults"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding response", zap.Error(err))
	}
}

// writeError maps fault kinds to HTTP statuses. Anything without a kind is
// an internal error and its details stay out of the response.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := faults.KindOf(err)

	var status int
	message := err.Error()

	switch kind {
	case faults.InvalidInput:
		status = http.StatusBadRequest
	case faults.NotFound:
		status = http.StatusNotFound
	case faults.ProviderFailure:
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
		message = "internal error"
	}

	s.logger.Error("request failed",
		zap.String("request_id", requestID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.String("kind", kind.String()),
		zap.Error(err),
	)

	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return faults.Wrap(faults.InvalidInput, err, "decoding request body")
	}
	return nil
}

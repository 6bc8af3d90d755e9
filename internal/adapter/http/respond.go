package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"leadflare/internal/core/domain"
	"leadflare/internal/core/port"
)

type errorResponse struct {
	Error      string            `json:"error"`
	Details    string            `json:"details,omitempty"`
	Fields     []string          `json:"fields,omitempty"`
	Advisories []domain.Advisory `json:"advisories,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// encoding should rarely fail; the status is already sent
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps use case errors to status codes. Anything unrecognised is
// logged and reported as a generic internal error.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *domain.ValidationError
		lerr *domain.LaunchError
	)
	switch {
	case errors.As(err, &verr):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid input", Fields: verr.Fields})
	case errors.As(err, &lerr):
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "campaign not launchable", Advisories: lerr.Advisories})
	case errors.Is(err, port.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrInvalidTransition):
		h.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, port.ErrStaleRequest):
		h.writeJSON(w, http.StatusConflict, errorResponse{Error: "request superseded"})
	default:
		h.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// decode reads a JSON body into v. An empty body leaves v untouched when
// optional is set.
func decode(r *http.Request, v any, optional bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if optional && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (h *Handler) badRequest(w http.ResponseWriter, msg string) {
	h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

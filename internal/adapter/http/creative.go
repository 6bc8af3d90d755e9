package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"leadflare/internal/core/domain"
	"leadflare/internal/core/port"
)

type generateResponse struct {
	Success      bool                 `json:"success"`
	Creatives    domain.CreativeBatch `json:"creatives"`
	GeneratedAt  time.Time            `json:"generated_at"`
	CampaignName string               `json:"campaignName"`
	Sequence     uint64               `json:"sequence,omitempty"`
}

// handleGenerateCreatives generates ad creatives for a campaign context.
// A missing context results in HTTP 400 and a superseded request in
// HTTP 409. Provider failures degrade to fallback copy inside the use case,
// so only unexpected errors produce HTTP 500.
func (h *Handler) handleGenerateCreatives(w http.ResponseWriter, r *http.Request) {
	var req port.GenerateReq
	if err := decode(r, &req, false); err != nil {
		h.badRequest(w, "invalid JSON")
		return
	}

	out, err := h.creatives.Generate(r.Context(), req)
	switch {
	case errors.Is(err, port.ErrMissingContext):
		h.badRequest(w, "Missing campaign context")
		return
	case errors.Is(err, port.ErrUnknownContentType):
		h.badRequest(w, err.Error())
		return
	case errors.Is(err, port.ErrStaleRequest):
		h.writeError(w, r, err)
		return
	case err != nil:
		h.logger.Error("generate creatives error", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to generate creatives",
			Details: err.Error(),
		})
		return
	}

	h.writeJSON(w, http.StatusOK, generateResponse{
		Success:      true,
		Creatives:    out.Creatives,
		GeneratedAt:  out.GeneratedAt,
		CampaignName: out.CampaignName,
		Sequence:     out.Sequence,
	})
}

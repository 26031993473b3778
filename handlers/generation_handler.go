package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"novaLetterAPI/internal/types/letter"
	"novaLetterAPI/services"
)

type GenerationHandler struct {
	generationService *services.GenerationService
}

func NewGenerationHandler(generationService *services.GenerationService) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
	}
}

// GenerateLetter produces letter text from a free-form prompt. Generation is
// available without an account; the provider chain plus static fallback means
// this endpoint only errors on bad input or a canceled request.
func (h *GenerationHandler) GenerateLetter(w http.ResponseWriter, r *http.Request) {
	// Provider calls can be slow, so this gets a longer budget than the
	// storage endpoints.
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	var req letter.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		respondWithError(w, http.StatusBadRequest, "Prompt is required")
		return
	}

	text, fallback, err := h.generationService.Generate(ctx, req.Prompt, req.Context)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Letter generation failed")
		return
	}

	respondWithJSON(w, http.StatusOK, letter.GenerateResponse{
		Text:     text,
		Fallback: fallback,
	})
}

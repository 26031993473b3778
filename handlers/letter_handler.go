package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"novaLetterAPI/internal/types/letter"
	"novaLetterAPI/middleware"
	"novaLetterAPI/services"
)

type LetterHandler struct {
	letterService *services.LetterService
}

func NewLetterHandler(letterService *services.LetterService) *LetterHandler {
	return &LetterHandler{
		letterService: letterService,
	}
}

// respondWithLetterError maps service errors to HTTP statuses. Storage being
// unconfigured is a 503 so the client can tell "save is unavailable" apart
// from a real failure.
func respondWithLetterError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrStorageUnavailable):
		respondWithError(w, http.StatusServiceUnavailable, "Letter storage is not configured")
	case errors.Is(err, services.ErrLetterNotFound):
		respondWithError(w, http.StatusNotFound, "Letter not found")
	default:
		respondWithError(w, http.StatusInternalServerError, "Server error")
	}
}

func (h *LetterHandler) GetLetters(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	letters, warning, err := h.letterService.List(ctx, userID, r.URL.Query().Get("q"))
	if err != nil {
		respondWithLetterError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, letter.ListLettersResponse{
		Letters: letters,
		Warning: warning,
	})
}

func (h *LetterHandler) GetLetter(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	l, err := h.letterService.Get(ctx, userID, mux.Vars(r)["id"])
	if err != nil {
		respondWithLetterError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, l)
}

func (h *LetterHandler) CreateLetter(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req letter.CreateLetterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Alignment != "" && !req.Alignment.Valid() {
		respondWithError(w, http.StatusBadRequest, "Invalid alignment")
		return
	}

	l, err := h.letterService.Create(ctx, userID, &req)
	if err != nil {
		respondWithLetterError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, l)
}

func (h *LetterHandler) UpdateLetter(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req letter.UpdateLetterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	l, err := h.letterService.Update(ctx, userID, mux.Vars(r)["id"], &req)
	if err != nil {
		if errors.Is(err, services.ErrStorageUnavailable) || errors.Is(err, services.ErrLetterNotFound) {
			respondWithLetterError(w, err)
		} else {
			respondWithError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusOK, l)
}

func (h *LetterHandler) DeleteLetter(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := h.letterService.Delete(ctx, userID, mux.Vars(r)["id"]); err != nil {
		respondWithLetterError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Letter deleted successfully"})
}

func (h *LetterHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	favorite, err := h.letterService.ToggleFavorite(ctx, userID, mux.Vars(r)["id"])
	if err != nil {
		respondWithLetterError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"favorite": favorite})
}

func (h *LetterHandler) AddSticker(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req letter.AddStickerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Type == "" {
		respondWithError(w, http.StatusBadRequest, "Sticker type is required")
		return
	}

	stickers, err := h.letterService.AddSticker(ctx, userID, mux.Vars(r)["id"], req.Type)
	if err != nil {
		respondWithLetterError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, letter.StickersResponse{Stickers: stickers})
}

func (h *LetterHandler) UpdateSticker(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req letter.UpdateStickerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	vars := mux.Vars(r)
	stickers, err := h.letterService.UpdateSticker(ctx, userID, vars["id"], vars["stickerId"], &req)
	if err != nil {
		respondWithLetterError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, letter.StickersResponse{Stickers: stickers})
}

func (h *LetterHandler) DuplicateSticker(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	vars := mux.Vars(r)
	stickers, err := h.letterService.DuplicateSticker(ctx, userID, vars["id"], vars["stickerId"])
	if err != nil {
		respondWithLetterError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, letter.StickersResponse{Stickers: stickers})
}

func (h *LetterHandler) DeleteSticker(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	vars := mux.Vars(r)
	stickers, err := h.letterService.DeleteSticker(ctx, userID, vars["id"], vars["stickerId"])
	if err != nil {
		respondWithLetterError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, letter.StickersResponse{Stickers: stickers})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

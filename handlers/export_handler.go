package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"novaLetterAPI/internal/types/letter"
	"novaLetterAPI/services"
)

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// ExportLetter renders the posted composition as a PNG or PDF download.
// Failures produce an error response, never a silent 200 with no body.
func (h *ExportHandler) ExportLetter(w http.ResponseWriter, r *http.Request) {
	var req letter.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Alignment != "" && !req.Alignment.Valid() {
		respondWithError(w, http.StatusBadRequest, "Invalid alignment")
		return
	}

	data, contentType, filename, err := h.exportService.Export(req.Composition, req.Format)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedFormat) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("ExportHandler: export failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Letter export failed")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

package handlers

import (
	"net/http"

	"novaLetterAPI/internal/catalog"
)

type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// GetCatalog returns the full decoration catalog: fonts, papers, ink colors
// and sticker glyphs. The catalog is compiled in, so this never fails.
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, catalog.All())
}

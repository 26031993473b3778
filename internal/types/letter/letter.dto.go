package letter

type CreateLetterRequest struct {
	Title       string `json:"title"`
	Composition
}

type UpdateLetterRequest struct {
	Title     *string    `json:"title,omitempty"`
	Content   *string    `json:"content,omitempty"`
	Font      *string    `json:"font,omitempty"`
	Paper     *string    `json:"paper,omitempty"`
	Color     *string    `json:"color,omitempty"`
	Alignment *Alignment `json:"alignment,omitempty"`
	Signature *string    `json:"signature,omitempty"`
	Stickers  *[]Sticker `json:"stickers,omitempty"`
}

type AddStickerRequest struct {
	Type string `json:"type"`
}

// UpdateStickerRequest carries a move and/or a resize. Nil fields are left
// untouched.
type UpdateStickerRequest struct {
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
	Size *float64 `json:"size,omitempty"`
}

type ListLettersResponse struct {
	Letters []Letter `json:"letters"`
	Warning string   `json:"warning,omitempty"`
}

type StickersResponse struct {
	Stickers []Sticker `json:"stickers"`
}

type GenerateRequest struct {
	Prompt  string `json:"prompt"`
	Context string `json:"context,omitempty"`
}

type GenerateResponse struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

type ExportRequest struct {
	Format string `json:"format"`
	Composition
}

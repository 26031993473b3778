package letter

import "time"

type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Valid reports whether a is one of the three supported alignments.
func (a Alignment) Valid() bool {
	return a == AlignLeft || a == AlignCenter || a == AlignRight
}

// Sticker is one decoration placed on the letter canvas. X and Y are
// percentages (0-100) of the canvas width/height, not pixels, so a saved
// letter renders the same at any resolution. Rotation is in degrees and
// Size is a scale factor clamped by the board.
type Sticker struct {
	ID       string  `json:"id" firestore:"id"`
	Type     string  `json:"type" firestore:"type"`
	X        float64 `json:"x" firestore:"x"`
	Y        float64 `json:"y" firestore:"y"`
	Rotation float64 `json:"rotation" firestore:"rotation"`
	Size     float64 `json:"size" firestore:"size"`
}

// Composition is the in-memory state of one letter being edited: the body
// text, the chosen catalog entries, an optional signature (PNG data URI
// captured from the signature pad) and the placed stickers in z-order.
type Composition struct {
	Content   string    `json:"content" firestore:"content"`
	Font      string    `json:"font" firestore:"font"`
	Paper     string    `json:"paper" firestore:"paper"`
	Color     string    `json:"color" firestore:"color"`
	Alignment Alignment `json:"alignment" firestore:"alignment"`
	Signature string    `json:"signature,omitempty" firestore:"signature"`
	Stickers  []Sticker `json:"stickers" firestore:"stickers"`
}

// Letter is a saved composition snapshot, owned by one user.
type Letter struct {
	ID        string    `json:"id" firestore:"-"`
	UserID    string    `json:"userId" firestore:"userId"`
	Title     string    `json:"title" firestore:"title"`
	Favorite  bool      `json:"favorite" firestore:"favorite"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`

	Composition
}

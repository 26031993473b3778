// Package board implements the sticker placement engine. A Board owns the
// ordered sticker list of one composition and enforces the spatial
// invariants: sizes stay inside [MinSize, MaxSize] and positions stay inside
// the canvas with a size-dependent safety margin. All operations are total;
// an unknown id is a no-op, never an error.
package board

import (
	"crypto/rand"
	"math"
	mrand "math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"novaLetterAPI/internal/types/letter"
)

const (
	// MinSize and MaxSize bound the sticker scale factor.
	MinSize = 0.5
	MaxSize = 2.5

	// SafeMarginPct is the margin, in canvas percentage points per unit of
	// size, that keeps a sticker's bounds inside the canvas. A sticker of
	// size s may occupy [SafeMarginPct*s, 100-SafeMarginPct*s] on each axis.
	SafeMarginPct = 5.0

	// DefaultSize is the scale a freshly added sticker gets.
	DefaultSize = 1.0

	// maxRotation bounds the random seed rotation to [-15, 15] degrees.
	maxRotation = 15.0

	// duplicateOffset is the percentage-point shift applied to a copy.
	duplicateOffset = 10.0
)

// Board mutates a sticker list in place. It is not safe for concurrent use;
// callers serialize access the same way the single UI thread does.
type Board struct {
	stickers []letter.Sticker
	selected string
}

// New returns an empty board.
func New() *Board {
	return &Board{}
}

// Load wraps an existing sticker list, e.g. one read back from storage.
// The slice is copied so storage snapshots are never mutated in place.
func Load(stickers []letter.Sticker) *Board {
	b := &Board{stickers: make([]letter.Sticker, len(stickers))}
	copy(b.stickers, stickers)
	return b
}

// Stickers returns the current list in z-order (insertion order).
func (b *Board) Stickers() []letter.Sticker {
	return b.stickers
}

// Selected returns the currently selected sticker, or nil.
func (b *Board) Selected() *letter.Sticker {
	return b.find(b.selected)
}

// Add creates a sticker of the given catalog type centered on the canvas
// with a random rotation in [-15, 15] degrees and the default size, appends
// it and returns a copy. Add always succeeds.
func (b *Board) Add(stickerType string) letter.Sticker {
	s := letter.Sticker{
		ID:       newStickerID(),
		Type:     stickerType,
		X:        50,
		Y:        50,
		Rotation: randomRotation(),
		Size:     DefaultSize,
	}
	b.stickers = append(b.stickers, s)
	return s
}

// Select marks the sticker as the active target and returns it. Selecting an
// unknown id clears nothing and returns nil.
func (b *Board) Select(id string) *letter.Sticker {
	s := b.find(id)
	if s == nil {
		return nil
	}
	b.selected = id
	return s
}

// Move relocates a sticker. The raw pointer coordinates are clamped against
// the sticker's size-dependent margin before being stored, so the placement
// invariant holds no matter what the drag event reported. Unknown id is a
// no-op.
func (b *Board) Move(id string, x, y float64) {
	s := b.find(id)
	if s == nil {
		return
	}
	s.X, s.Y = clampPosition(x, y, s.Size)
}

// Resize clamps the requested size to [MinSize, MaxSize] and then re-clamps
// the sticker's position against the new margin: growing a sticker near an
// edge pushes it back inside rather than rejecting the resize. Unknown id is
// a no-op. Resize is idempotent for a repeated identical size.
func (b *Board) Resize(id string, size float64) {
	s := b.find(id)
	if s == nil {
		return
	}
	s.Size = clampSize(size)
	s.X, s.Y = clampPosition(s.X, s.Y, s.Size)
}

// Duplicate copies a sticker with a new id, a +10 percentage-point offset on
// both axes (clamped for the copy's size) and a fresh random rotation. The
// copy is appended and becomes the selection. Returns nil for an unknown id.
func (b *Board) Duplicate(id string) *letter.Sticker {
	src := b.find(id)
	if src == nil {
		return nil
	}
	dup := *src
	dup.ID = newStickerID()
	dup.Rotation = randomRotation()
	dup.X, dup.Y = clampPosition(src.X+duplicateOffset, src.Y+duplicateOffset, dup.Size)
	b.stickers = append(b.stickers, dup)
	b.selected = dup.ID
	return &b.stickers[len(b.stickers)-1]
}

// Delete removes a sticker, clearing the selection if it pointed at it.
// Unknown id is a no-op.
func (b *Board) Delete(id string) {
	for i := range b.stickers {
		if b.stickers[i].ID == id {
			b.stickers = append(b.stickers[:i], b.stickers[i+1:]...)
			if b.selected == id {
				b.selected = ""
			}
			return
		}
	}
}

func (b *Board) find(id string) *letter.Sticker {
	if id == "" {
		return nil
	}
	for i := range b.stickers {
		if b.stickers[i].ID == id {
			return &b.stickers[i]
		}
	}
	return nil
}

// Margin returns the per-axis safety margin for a given size.
func Margin(size float64) float64 {
	return SafeMarginPct * size
}

func clampSize(size float64) float64 {
	return math.Min(MaxSize, math.Max(MinSize, size))
}

func clampPosition(x, y, size float64) (float64, float64) {
	m := Margin(size)
	return math.Min(100-m, math.Max(m, x)), math.Min(100-m, math.Max(m, y))
}

func randomRotation() float64 {
	return mrand.Float64()*2*maxRotation - maxRotation
}

// newStickerID returns a ULID. ULIDs sort by creation time, which matches
// the append-only z-order.
func newStickerID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

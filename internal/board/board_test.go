package board

import (
	"math/rand"
	"testing"

	"novaLetterAPI/internal/types/letter"
)

func inBounds(t *testing.T, s letter.Sticker) {
	t.Helper()
	m := Margin(s.Size)
	if s.X < m || s.X > 100-m {
		t.Errorf("sticker %s x=%v outside [%v, %v] for size %v", s.ID, s.X, m, 100-m, s.Size)
	}
	if s.Y < m || s.Y > 100-m {
		t.Errorf("sticker %s y=%v outside [%v, %v] for size %v", s.ID, s.Y, m, 100-m, s.Size)
	}
}

func TestAdd_Defaults(t *testing.T) {
	b := New()
	s := b.Add("heart")

	if s.ID == "" {
		t.Fatal("Add returned empty id")
	}
	if s.Type != "heart" {
		t.Errorf("Type = %q, want %q", s.Type, "heart")
	}
	if s.X != 50 || s.Y != 50 {
		t.Errorf("position = (%v, %v), want (50, 50)", s.X, s.Y)
	}
	if s.Size != DefaultSize {
		t.Errorf("Size = %v, want %v", s.Size, DefaultSize)
	}
	if s.Rotation < -15 || s.Rotation > 15 {
		t.Errorf("Rotation = %v, want within [-15, 15]", s.Rotation)
	}
	if len(b.Stickers()) != 1 {
		t.Errorf("list length = %d, want 1", len(b.Stickers()))
	}
}

func TestMove_Clamps(t *testing.T) {
	b := New()
	s := b.Add("rose")

	b.Move(s.ID, 99, 99)

	got := b.Stickers()[0]
	want := 100 - Margin(got.Size)
	if got.X != want || got.Y != want {
		t.Errorf("position = (%v, %v), want (%v, %v)", got.X, got.Y, want, want)
	}

	b.Move(s.ID, -20, 0.1)
	got = b.Stickers()[0]
	m := Margin(got.Size)
	if got.X != m || got.Y != m {
		t.Errorf("position = (%v, %v), want (%v, %v)", got.X, got.Y, m, m)
	}
}

func TestMove_ClampDependsOnSize(t *testing.T) {
	// Three stickers of sizes 1.0, 2.0, 0.5 at (50,50); moving the second to
	// (99,99) must clamp to 100 - SafeMarginPct*2 on both axes.
	b := New()
	a := b.Add("heart")
	mid := b.Add("rose")
	c := b.Add("dove")

	b.Resize(a.ID, 1.0)
	b.Resize(mid.ID, 2.0)
	b.Resize(c.ID, 0.5)

	b.Move(mid.ID, 99, 99)

	got := *b.Select(mid.ID)
	want := 100 - SafeMarginPct*2
	if got.X != want || got.Y != want {
		t.Errorf("position = (%v, %v), want (%v, %v)", got.X, got.Y, want, want)
	}
}

func TestResize_ClampsSizeAndRepositions(t *testing.T) {
	b := New()
	s := b.Add("heart")

	b.Resize(s.ID, 5.0)

	got := b.Stickers()[0]
	if got.Size != MaxSize {
		t.Errorf("Size = %v, want %v", got.Size, MaxSize)
	}
	// Default placement (50,50) already satisfies the widest margin.
	inBounds(t, got)

	// Park the sticker at the edge for size 0.5, then grow it: the position
	// must be pulled inward for the new margin rather than the resize failing.
	b.Resize(s.ID, 0.5)
	b.Move(s.ID, 99, 99)
	b.Resize(s.ID, 2.5)

	got = b.Stickers()[0]
	if got.Size != 2.5 {
		t.Errorf("Size = %v, want 2.5", got.Size)
	}
	want := 100 - Margin(2.5)
	if got.X != want || got.Y != want {
		t.Errorf("position = (%v, %v), want (%v, %v)", got.X, got.Y, want, want)
	}
}

func TestResize_Idempotent(t *testing.T) {
	b := New()
	s := b.Add("kiss")
	b.Move(s.ID, 80, 20)

	b.Resize(s.ID, 1.7)
	once := b.Stickers()[0]

	b.Resize(s.ID, 1.7)
	twice := b.Stickers()[0]

	if once != twice {
		t.Errorf("second identical resize changed state: %+v != %+v", once, twice)
	}
}

func TestInvariant_RandomOpSequence(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := New()
	ids := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		ids = append(ids, b.Add("ring").ID)
	}

	for i := 0; i < 500; i++ {
		id := ids[rng.Intn(len(ids))]
		if rng.Intn(2) == 0 {
			b.Move(id, rng.Float64()*300-100, rng.Float64()*300-100)
		} else {
			b.Resize(id, rng.Float64()*6-1)
		}
	}

	for _, s := range b.Stickers() {
		if s.Size < MinSize || s.Size > MaxSize {
			t.Errorf("size %v outside [%v, %v]", s.Size, MinSize, MaxSize)
		}
		inBounds(t, s)
	}
}

func TestAddThenDelete_RestoresList(t *testing.T) {
	b := New()
	first := b.Add("heart")
	second := b.Add("rose")

	before := append([]letter.Sticker(nil), b.Stickers()...)

	added := b.Add("cupid")
	b.Delete(added.ID)

	after := b.Stickers()
	if len(after) != len(before) {
		t.Fatalf("list length = %d, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("element %d changed: %+v != %+v", i, after[i], before[i])
		}
	}
	if after[0].ID != first.ID || after[1].ID != second.ID {
		t.Error("remaining elements out of order")
	}
}

func TestDuplicate(t *testing.T) {
	b := New()
	src := b.Add("dove")
	b.Resize(src.ID, 1.8)
	b.Move(src.ID, 40, 40)

	dup := b.Duplicate(src.ID)
	if dup == nil {
		t.Fatal("Duplicate returned nil for a known id")
	}

	seen := map[string]bool{}
	for _, s := range b.Stickers() {
		if seen[s.ID] {
			t.Fatalf("id collision: %s", s.ID)
		}
		seen[s.ID] = true
	}

	if dup.Size != 1.8 {
		t.Errorf("duplicate size = %v, want source size 1.8", dup.Size)
	}
	if dup.X != 50 || dup.Y != 50 {
		t.Errorf("duplicate position = (%v, %v), want (50, 50)", dup.X, dup.Y)
	}
	if sel := b.Selected(); sel == nil || sel.ID != dup.ID {
		t.Error("duplicate did not become the selection")
	}
	inBounds(t, *dup)
}

func TestDuplicate_OffsetClamped(t *testing.T) {
	b := New()
	src := b.Add("heart")
	b.Move(src.ID, 95, 95)

	dup := b.Duplicate(src.ID)
	want := 100 - Margin(dup.Size)
	if dup.X != want || dup.Y != want {
		t.Errorf("duplicate position = (%v, %v), want clamped (%v, %v)", dup.X, dup.Y, want, want)
	}
}

func TestDelete_ClearsSelection(t *testing.T) {
	b := New()
	s := b.Add("ring")
	b.Select(s.ID)

	b.Delete(s.ID)

	if b.Selected() != nil {
		t.Error("selection survived deleting the selected sticker")
	}
	if len(b.Stickers()) != 0 {
		t.Errorf("list length = %d, want 0", len(b.Stickers()))
	}
}

func TestUnknownID_IsNoOp(t *testing.T) {
	b := New()
	s := b.Add("heart")
	before := b.Stickers()[0]

	b.Move("no-such-id", 1, 1)
	b.Resize("no-such-id", 9)
	b.Delete("no-such-id")
	if got := b.Select("no-such-id"); got != nil {
		t.Errorf("Select(unknown) = %+v, want nil", got)
	}
	if got := b.Duplicate("no-such-id"); got != nil {
		t.Errorf("Duplicate(unknown) = %+v, want nil", got)
	}

	if len(b.Stickers()) != 1 || b.Stickers()[0] != before {
		t.Errorf("unknown-id operations mutated state: %+v", b.Stickers())
	}
	_ = s
}

func TestLoad_CopiesSlice(t *testing.T) {
	src := []letter.Sticker{{ID: "a", Type: "heart", X: 50, Y: 50, Size: 1}}
	b := Load(src)
	b.Move("a", 99, 99)

	if src[0].X != 50 {
		t.Error("Load mutated the caller's slice")
	}
}

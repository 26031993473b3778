package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"novaLetterAPI/internal/types/letter"
)

func TestRender_EmptyComposition(t *testing.T) {
	r := New("")
	img, err := r.Render(letter.Composition{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	b := img.Bounds()
	if b.Dx() != PageWidth*Oversample || b.Dy() != PageHeight*Oversample {
		t.Errorf("bitmap = %dx%d, want %dx%d", b.Dx(), b.Dy(), PageWidth*Oversample, PageHeight*Oversample)
	}

	// The page background must be painted: an empty letter is still a letter.
	_, _, _, a := img.At(b.Dx()/2, b.Dy()/2).RGBA()
	if a == 0 {
		t.Error("center pixel is fully transparent, expected painted background")
	}
}

func TestRender_WithStickersAndText(t *testing.T) {
	r := New("")
	comp := letter.Composition{
		Content:   "My dearest,\n\nEvery day with you is a gift.",
		Font:      "great-vibes",
		Paper:     "parchment",
		Color:     "rose",
		Alignment: letter.AlignCenter,
		Stickers: []letter.Sticker{
			{ID: "a", Type: "heart", X: 20, Y: 30, Rotation: 12, Size: 1.5},
			{ID: "b", Type: "dove", X: 80, Y: 70, Rotation: -8, Size: 0.5},
		},
	}

	img, err := r.Render(comp)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if img.Bounds().Dx() != PageWidth*Oversample {
		t.Errorf("width = %d, want %d", img.Bounds().Dx(), PageWidth*Oversample)
	}
}

func TestRender_UnknownCatalogIDsFallBack(t *testing.T) {
	r := New("")
	comp := letter.Composition{
		Font:     "comic-sans",
		Paper:    "papyrus",
		Color:    "octarine",
		Stickers: []letter.Sticker{{ID: "x", Type: "dragon", X: 50, Y: 50, Size: 1}},
	}
	if _, err := r.Render(comp); err != nil {
		t.Fatalf("Render with unknown catalog ids failed: %v", err)
	}
}

func TestRenderPNG_ProducesDecodableImage(t *testing.T) {
	r := New("")
	data, err := r.RenderPNG(letter.Composition{Color: "mint"})
	if err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("RenderPNG returned no bytes")
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	if decoded.Bounds().Dx() != PageWidth*Oversample {
		t.Errorf("decoded width = %d, want %d", decoded.Bounds().Dx(), PageWidth*Oversample)
	}
}

func TestRender_SignatureComposited(t *testing.T) {
	sig := image.NewRGBA(image.Rect(0, 0, 40, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 40; x++ {
			sig.Set(x, y, color.RGBA{R: 10, G: 10, B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, sig); err != nil {
		t.Fatal(err)
	}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	r := New("")
	if _, err := r.Render(letter.Composition{Signature: uri}); err != nil {
		t.Fatalf("Render with signature failed: %v", err)
	}
}

func TestDecodeSignature(t *testing.T) {
	if _, err := DecodeSignature("not-a-data-uri"); err == nil {
		t.Error("expected error for a non-data-URI signature")
	}
	if _, err := DecodeSignature("data:image/png;base64,!!!"); err == nil {
		t.Error("expected error for invalid base64")
	}
}

func TestRotateImage_Bounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	got := rotateImage(src, 90)
	if got.Bounds().Dx() != 10 || got.Bounds().Dy() != 10 {
		t.Errorf("90 degree rotation of 10x10 = %v, want 10x10", got.Bounds())
	}

	got = rotateImage(src, 45)
	if got.Bounds().Dx() < 10 || got.Bounds().Dy() < 10 {
		t.Errorf("45 degree rotation shrank the image: %v", got.Bounds())
	}
}

func TestRotateImage_PreservesCenter(t *testing.T) {
	// A 3x3 red blob around the source center: rotation pivots on the
	// center, so whatever destination pixel lands there must sample red
	// regardless of how nearest-neighbor rounding falls.
	src := image.NewRGBA(image.Rect(0, 0, 11, 11))
	for y := 4; y <= 6; y++ {
		for x := 4; x <= 6; x++ {
			src.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}

	got := rotateImage(src, 33)
	b := got.Bounds()
	cr, _, _, ca := got.At(b.Dx()/2, b.Dy()/2).RGBA()
	if ca == 0 || cr == 0 {
		t.Error("center region lost during rotation")
	}
}

func TestHexToRGB(t *testing.T) {
	r, g, b := hexToRGB("#ff0000")
	if r != 1 || g != 0 || b != 0 {
		t.Errorf("hexToRGB(#ff0000) = (%v, %v, %v)", r, g, b)
	}
	r, g, b = hexToRGB("bogus")
	if r == 0 && g == 0 && b == 0 {
		t.Error("invalid hex should fall back to gray, not black")
	}
}

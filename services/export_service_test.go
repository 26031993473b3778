package services

import (
	"bytes"
	"image/png"
	"testing"

	"novaLetterAPI/internal/render"
	"novaLetterAPI/internal/types/letter"
)

func testComposition() letter.Composition {
	return letter.Composition{
		Content:   "Meet me where the lanterns are lit.",
		Font:      "dancing-script",
		Paper:     "classic",
		Color:     "lavender",
		Alignment: letter.AlignCenter,
		Stickers: []letter.Sticker{
			{ID: "s1", Type: "heart", X: 20, Y: 30, Rotation: 10, Size: 1.2},
		},
	}
}

func TestExport_PNG(t *testing.T) {
	svc := NewExportService(render.New(""))

	data, contentType, filename, err := svc.Export(testComposition(), "image")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if contentType != "image/png" {
		t.Errorf("contentType = %q", contentType)
	}
	if filename != "valentine-letter.png" {
		t.Errorf("filename = %q", filename)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("export is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != render.PageWidth*render.Oversample {
		t.Errorf("width = %d, want %d", img.Bounds().Dx(), render.PageWidth*render.Oversample)
	}
}

func TestExport_PNGAliasAndDefault(t *testing.T) {
	svc := NewExportService(render.New(""))
	for _, format := range []string{"png", "", "IMAGE"} {
		_, contentType, _, err := svc.Export(testComposition(), format)
		if err != nil {
			t.Fatalf("Export(%q) failed: %v", format, err)
		}
		if contentType != "image/png" {
			t.Errorf("Export(%q) contentType = %q", format, contentType)
		}
	}
}

func TestExport_PDF(t *testing.T) {
	svc := NewExportService(render.New(""))

	data, contentType, filename, err := svc.Export(testComposition(), "pdf")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if contentType != "application/pdf" {
		t.Errorf("contentType = %q", contentType)
	}
	if filename != "valentine-letter.pdf" {
		t.Errorf("filename = %q", filename)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestExport_UnsupportedFormat(t *testing.T) {
	svc := NewExportService(render.New(""))
	if _, _, _, err := svc.Export(testComposition(), "docx"); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}

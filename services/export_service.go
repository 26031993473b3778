package services

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"strings"

	"github.com/go-pdf/fpdf"

	"novaLetterAPI/internal/render"
	"novaLetterAPI/internal/types/letter"
)

// Export artifacts always carry these names, matching what the web client
// offers in its download dialog.
const (
	exportPNGFilename = "valentine-letter.png"
	exportPDFFilename = "valentine-letter.pdf"
)

// ErrUnsupportedFormat is returned for export formats other than image/pdf.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ExportService turns a letter composition into a downloadable artifact.
// Any rendering or encoding failure is returned to the caller so it reaches
// the client as an error response instead of disappearing into a log line.
type ExportService struct {
	renderer *render.Renderer
}

func NewExportService(renderer *render.Renderer) *ExportService {
	return &ExportService{renderer: renderer}
}

// Export renders the composition in the requested format. Supported formats
// are "image" (PNG, also accepted as "png") and "pdf". The PDF is a single
// page sized in points to the rendered bitmap's pixel dimensions, with the
// bitmap placed full-bleed.
func (s *ExportService) Export(comp letter.Composition, format string) (data []byte, contentType, filename string, err error) {
	switch strings.ToLower(format) {
	case "image", "png", "":
		data, err = s.renderer.RenderPNG(comp)
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to render letter image: %w", err)
		}
		return data, "image/png", exportPNGFilename, nil

	case "pdf":
		data, err = s.exportPDF(comp)
		if err != nil {
			return nil, "", "", err
		}
		return data, "application/pdf", exportPDFFilename, nil

	default:
		return nil, "", "", fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
}

func (s *ExportService) exportPDF(comp letter.Composition) ([]byte, error) {
	img, err := s.renderer.Render(comp)
	if err != nil {
		return nil, fmt.Errorf("failed to render letter image: %w", err)
	}

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("failed to encode letter image: %w", err)
	}

	bounds := img.Bounds()
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.AddPage()
	pdf.RegisterImageOptionsReader("letter", fpdf.ImageOptions{ImageType: "PNG"}, &pngBuf)
	pdf.ImageOptions("letter", 0, 0, w, h, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to assemble pdf: %w", err)
	}
	return buf.Bytes(), nil
}

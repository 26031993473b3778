// Package render rasterizes a letter composition into a bitmap. The layout
// mirrors the editor's preview pane: a colored page, a translucent white
// writing surface with ruled lines in the paper's tint, the wrapped body
// text, stickers at their resting transform, and the signature bottom-right.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"novaLetterAPI/internal/catalog"
	"novaLetterAPI/internal/types/letter"
)

const (
	// PageWidth and PageHeight are the on-screen layout dimensions of the
	// composition region in CSS pixels.
	PageWidth  = 600
	PageHeight = 800

	// Oversample is the fixed rasterization factor: the bitmap is 2x the
	// layout dimensions so exports stay crisp on high-density screens.
	Oversample = 2

	padding       = 32.0
	bodyFontSize  = 21.0
	stickerSize   = 32.0
	signatureMaxW = 200.0
)

// Renderer draws compositions. assetDir is the shipped asset root, with
// fonts under fonts/ and paper art under paper/; when a font or texture
// cannot be loaded the renderer degrades to a plainer page rather than
// failing the export.
type Renderer struct {
	assetDir string
}

func New(assetDir string) *Renderer {
	return &Renderer{assetDir: assetDir}
}

// Render rasterizes the composition at the fixed oversampling factor and
// returns the bitmap. An empty composition still produces a fully painted
// page of the expected dimensions.
func (r *Renderer) Render(comp letter.Composition) (image.Image, error) {
	w := PageWidth * Oversample
	h := PageHeight * Oversample

	dc := gg.NewContext(w, h)
	defer dc.Close()

	theme := catalog.ColorByID(comp.Color)
	paper := catalog.PaperByID(comp.Paper)

	// Page background in the selected color theme.
	dc.SetHexColor(theme.Value)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("failed to paint page background: %w", err)
	}

	r.drawPaperArt(dc, paper, w, h)

	// Writing surface: the preview lays a 90% white sheet over the paper art.
	dc.SetRGBA(1, 1, 1, 0.9)
	dc.DrawRectangle(padding, padding, float64(w)-2*padding, float64(h)-2*padding)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("failed to paint writing surface: %w", err)
	}

	r.drawRuledLines(dc, paper, w, h)

	face := r.loadFace(catalog.FontByID(comp.Font), bodyFontSize*Oversample)
	if face != nil {
		dc.SetFont(face)
		r.drawBody(dc, comp, w)
	}

	r.drawStickers(dc, comp.Stickers, w, h)

	if comp.Signature != "" {
		if err := drawSignature(dc, comp.Signature, w, h); err != nil {
			log.Printf("Render: skipping signature: %v", err)
		}
	}

	return dc.Image(), nil
}

// RenderPNG rasterizes the composition and encodes it as PNG.
func (r *Renderer) RenderPNG(comp letter.Composition) ([]byte, error) {
	img, err := r.Render(comp)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return out.Bytes(), nil
}

// drawPaperArt stretches the paper texture over the page when the asset is
// shipped alongside the binary. Missing art is not an error; the theme color
// already painted underneath stands in for it.
func (r *Renderer) drawPaperArt(dc *gg.Context, paper catalog.Paper, w, h int) {
	if r.assetDir == "" || paper.Full == "" {
		return
	}
	path := filepath.Join(r.assetDir, "paper", filepath.Base(paper.Full))
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		log.Printf("Render: unreadable paper art %s: %v", path, err)
		return
	}
	dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		DstWidth:  float64(w),
		DstHeight: float64(h),
	})
}

// drawRuledLines paints the paper's horizontal guide lines at low opacity,
// the same repeating pattern the preview builds with a CSS gradient.
func (r *Renderer) drawRuledLines(dc *gg.Context, paper catalog.Paper, w, h int) {
	spacing := paper.LineSpacing * 16 * Oversample // rem -> px at the layout's root size
	if spacing <= 0 {
		return
	}
	cr, cg, cb := hexToRGB(paper.LineColor)
	dc.Push()
	dc.SetLineWidth(1 * Oversample)
	dc.SetRGBA(cr, cg, cb, 0.2)
	for y := padding + spacing; y < float64(h)-padding; y += spacing {
		dc.DrawLine(padding, y, float64(w)-padding, y)
		if err := dc.Stroke(); err != nil {
			break
		}
	}
	dc.Pop()
}

// drawBody wraps the letter text to the writing surface width and draws each
// line honoring the selected alignment.
func (r *Renderer) drawBody(dc *gg.Context, comp letter.Composition, w int) {
	if comp.Content == "" {
		return
	}
	maxWidth := float64(w) - 4*padding
	_, lineHeight := dc.MeasureString("Mg")
	if lineHeight <= 0 {
		return
	}

	y := 2*padding + lineHeight
	for _, para := range strings.Split(comp.Content, "\n") {
		for _, line := range wrapLine(dc, para, maxWidth) {
			lw, _ := dc.MeasureString(line)
			x := 2 * padding
			switch comp.Alignment {
			case letter.AlignCenter:
				x = 2*padding + (maxWidth-lw)/2
			case letter.AlignRight:
				x = 2*padding + maxWidth - lw
			}
			dc.SetRGB(0.15, 0.12, 0.12)
			dc.DrawString(line, x, y)
			y += lineHeight * 1.4
		}
	}
}

// drawStickers draws each decoration at its resting transform. There is no
// animation system here, so no transient scale state needs resetting before
// capture; stickers always render at their stored size and rotation.
func (r *Renderer) drawStickers(dc *gg.Context, stickers []letter.Sticker, w, h int) {
	for _, s := range stickers {
		glyph, ok := catalog.StickerByID(s.Type)
		if !ok {
			log.Printf("Render: unknown sticker type %q, skipping", s.Type)
			continue
		}
		cx := s.X / 100 * float64(w)
		cy := s.Y / 100 * float64(h)
		size := stickerSize * s.Size * Oversample

		sprite := r.renderStickerSprite(glyph, size)
		if sprite == nil {
			continue
		}
		rotated := rotateImage(sprite, s.Rotation)
		b := rotated.Bounds()
		buf := gg.ImageBufFromImage(rotated)
		dc.DrawImage(buf, cx-float64(b.Dx())/2, cy-float64(b.Dy())/2)
	}
}

// renderStickerSprite draws one glyph centered on a transparent square
// bitmap sized to the sticker's scale.
func (r *Renderer) renderStickerSprite(glyph catalog.StickerGlyph, size float64) image.Image {
	side := int(math.Ceil(size * 1.4))
	if side <= 0 {
		return nil
	}
	sc := gg.NewContext(side, side)
	defer sc.Close()
	sc.Clear()

	face := r.loadFace(catalog.FontByID(""), size)
	if face == nil {
		// Still produce a visible marker so placement is inspectable even
		// without fonts installed.
		sc.SetRGBA(0.9, 0.3, 0.4, 0.85)
		sc.DrawCircle(float64(side)/2, float64(side)/2, size/2)
		if err := sc.Fill(); err != nil {
			return nil
		}
	} else {
		sc.SetFont(face)
		sc.SetRGB(0.85, 0.2, 0.3)
		sc.DrawStringAnchored(glyph.Emoji, float64(side)/2, float64(side)/2, 0.5, 0.5)
	}

	return cloneImage(sc.Image())
}

// loadFace loads a font face from the asset directory, trying common system
// fonts as a fallback. Returns nil if nothing is available.
func (r *Renderer) loadFace(font catalog.Font, points float64) text.Face {
	candidates := []string{}
	if r.assetDir != "" {
		candidates = append(candidates, filepath.Join(r.assetDir, "fonts", font.File))
	}
	candidates = append(candidates,
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
		"/System/Library/Fonts/Supplemental/Arial.ttf",
		"C:\\Windows\\Fonts\\arial.ttf",
	)
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		source, err := text.NewFontSourceFromFile(path)
		if err != nil {
			continue
		}
		return source.Face(points)
	}
	return nil
}

// wrapLine greedily wraps one paragraph to maxWidth using the current face.
func wrapLine(dc *gg.Context, para string, maxWidth float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if lw, _ := dc.MeasureString(candidate); lw > maxWidth {
			lines = append(lines, current)
			current = word
		} else {
			current = candidate
		}
	}
	return append(lines, current)
}

// drawSignature decodes the data-URI PNG captured from the signature pad and
// composites it above the bottom-right corner, capped at the pad's display
// width and keeping aspect.
func drawSignature(dc *gg.Context, dataURI string, w, h int) error {
	img, err := DecodeSignature(dataURI)
	if err != nil {
		return err
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return fmt.Errorf("signature image is empty")
	}

	dstW := float64(b.Dx())
	maxW := signatureMaxW * Oversample
	if dstW > maxW {
		dstW = maxW
	}
	dstH := dstW * float64(b.Dy()) / float64(b.Dx())

	x := float64(w) - 2*padding - dstW
	y := float64(h) - 2*padding - dstH

	buf := gg.ImageBufFromImage(img)
	dc.DrawImageEx(buf, gg.DrawImageOptions{
		X:         x,
		Y:         y,
		DstWidth:  dstW,
		DstHeight: dstH,
	})
	return nil
}

// DecodeSignature parses a "data:image/png;base64,..." URI into an image.
func DecodeSignature(dataURI string) (image.Image, error) {
	idx := strings.Index(dataURI, "base64,")
	if idx < 0 {
		return nil, fmt.Errorf("signature is not a base64 data URI")
	}
	raw, err := base64.StdEncoding.DecodeString(dataURI[idx+len("base64,"):])
	if err != nil {
		return nil, fmt.Errorf("failed to decode signature: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse signature image: %w", err)
	}
	return img, nil
}

// rotateImage rotates src by the given angle in degrees around its center
// using inverse nearest-neighbor mapping. The destination is sized to hold
// the rotated bounds.
func rotateImage(src image.Image, degrees float64) *image.RGBA {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)

	sb := src.Bounds()
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	dw := int(math.Ceil(math.Abs(sw*cos) + math.Abs(sh*sin)))
	dh := int(math.Ceil(math.Abs(sw*sin) + math.Abs(sh*cos)))

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	scx, scy := sw/2, sh/2
	dcx, dcy := float64(dw)/2, float64(dh)/2

	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			// Inverse rotation back into source space.
			dx := float64(x) + 0.5 - dcx
			dy := float64(y) + 0.5 - dcy
			sx := dx*cos + dy*sin + scx
			sy := -dx*sin + dy*cos + scy
			ix, iy := int(sx), int(sy)
			if ix >= 0 && iy >= 0 && ix < sb.Dx() && iy < sb.Dy() {
				dst.Set(x, y, src.At(sb.Min.X+ix, sb.Min.Y+iy))
			}
		}
	}
	return dst
}

func cloneImage(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

func hexToRGB(hex string) (r, g, b float64) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0.4, 0.4, 0.4
	}
	var ri, gi, bi int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &ri, &gi, &bi); err != nil {
		return 0.4, 0.4, 0.4
	}
	return float64(ri) / 255, float64(gi) / 255, float64(bi) / 255
}

// Package catalog holds the static, read-only tables the editor offers:
// fonts, paper backgrounds, color themes and sticker glyphs. The tables
// mirror the app's shipped assets; there is no logic here beyond lookups
// with safe defaults.
package catalog

type Font struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Family string `json:"family"`
	File   string `json:"file"`
}

type Paper struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Preview     string  `json:"preview"`
	Full        string  `json:"full"`
	LineColor   string  `json:"lineColor"`
	LineSpacing float64 `json:"lineSpacing"`
}

type Color struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type StickerGlyph struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

// Catalog is the full set of tables, shaped for a single JSON response.
type Catalog struct {
	Fonts    []Font         `json:"fonts"`
	Papers   []Paper        `json:"papers"`
	Colors   []Color        `json:"colors"`
	Stickers []StickerGlyph `json:"stickers"`
}

var Fonts = []Font{
	{ID: "great-vibes", Name: "Great Vibes", Family: "'Great Vibes', cursive", File: "GreatVibes-Regular.ttf"},
	{ID: "dancing-script", Name: "Dancing Script", Family: "'Dancing Script', cursive", File: "DancingScript-Regular.ttf"},
	{ID: "parisienne", Name: "Parisienne", Family: "'Parisienne', cursive", File: "Parisienne-Regular.ttf"},
	{ID: "playfair", Name: "Playfair Display", Family: "'Playfair Display', serif", File: "PlayfairDisplay-Regular.ttf"},
	{ID: "roboto", Name: "Roboto", Family: "'Roboto', sans-serif", File: "Roboto-Regular.ttf"},
}

var Papers = []Paper{
	{ID: "classic", Name: "Classic White", Preview: "/assets/paper/paper1.png", Full: "/assets/paper/paper1.png", LineColor: "#94424f", LineSpacing: 2.5},
	{ID: "parchment", Name: "Vintage Parchment", Preview: "/assets/paper/paper2.jpg", Full: "/assets/paper/paper2.jpg", LineColor: "#8b4513", LineSpacing: 3},
	{ID: "cream", Name: "Cream Texture", Preview: "/assets/paper/paper3.jpg", Full: "/assets/paper/paper3.jpg", LineColor: "#666666", LineSpacing: 2},
	{ID: "carton", Name: "Carton", Preview: "/assets/paper/paper6.jpg", Full: "/assets/paper/paper6.jpg", LineColor: "#666666", LineSpacing: 2},
}

var Colors = []Color{
	{ID: "white", Name: "White", Value: "#ffffff"},
	{ID: "cream", Name: "Cream", Value: "#fff8e7"},
	{ID: "rose", Name: "Rose", Value: "#ffe4e6"},
	{ID: "mint", Name: "Mint", Value: "#dcfce7"},
	{ID: "sky", Name: "Sky", Value: "#e0f2fe"},
	{ID: "lavender", Name: "Lavender", Value: "#ede9fe"},
	{ID: "peach", Name: "Peach", Value: "#ffd7cc"},
	{ID: "sage", Name: "Sage", Value: "#e2e8d5"},
	{ID: "blush", Name: "Blush", Value: "#fce7f3"},
	{ID: "seashell", Name: "Seashell", Value: "#fff5ee"},
	{ID: "honeydew", Name: "Honeydew", Value: "#f0fff0"},
	{ID: "azure", Name: "Azure", Value: "#f0ffff"},
}

var Stickers = []StickerGlyph{
	{ID: "heart", Name: "Heart", Emoji: "❤️"},
	{ID: "rose", Name: "Rose", Emoji: "\U0001F339"},
	{ID: "kiss", Name: "Kiss", Emoji: "\U0001F48B"},
	{ID: "ring", Name: "Ring", Emoji: "\U0001F48D"},
	{ID: "dove", Name: "Dove", Emoji: "\U0001F54A️"},
	{ID: "cupid", Name: "Cupid", Emoji: "\U0001F47C"},
}

// All returns every table in one value.
func All() Catalog {
	return Catalog{Fonts: Fonts, Papers: Papers, Colors: Colors, Stickers: Stickers}
}

// FontByID returns the font for id, falling back to the first entry.
func FontByID(id string) Font {
	for _, f := range Fonts {
		if f.ID == id {
			return f
		}
	}
	return Fonts[0]
}

// PaperByID returns the paper for id, falling back to the first entry.
func PaperByID(id string) Paper {
	for _, p := range Papers {
		if p.ID == id {
			return p
		}
	}
	return Papers[0]
}

// ColorByID returns the color for id, falling back to white.
func ColorByID(id string) Color {
	for _, c := range Colors {
		if c.ID == id {
			return c
		}
	}
	return Colors[0]
}

// StickerByID returns the glyph for id and whether it exists.
func StickerByID(id string) (StickerGlyph, bool) {
	for _, s := range Stickers {
		if s.ID == id {
			return s, true
		}
	}
	return StickerGlyph{}, false
}

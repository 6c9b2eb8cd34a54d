package avatar

import (
	"bytes"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// Generator renders single-letter avatars as PNG bytes. Rendering is
// deterministic: the same letter always produces byte-identical output,
// since the background color is a pure function of the code point and
// there is no randomness anywhere in the draw path.
type Generator struct {
	width  int
	height int

	mu   sync.Mutex // font.Face is not safe for concurrent glyph lookups
	face font.Face
}

// NewGenerator builds a generator for fixed-size avatars. The letter is
// drawn at half the image height, matching the upstream canvas styling.
func NewGenerator(width, height int) (*Generator, error) {
	ft, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    float64(height) * 0.5,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	return &Generator{width: width, height: height, face: face}, nil
}

// BackgroundHex derives the fill color from the letter's code point.
// The scheme is cosmetic only; collisions between letters are acceptable.
func BackgroundHex(letter rune) string {
	h := strconv.FormatInt(int64(letter)*1234567, 16)
	if len(h) < 6 {
		h += strings.Repeat("0", 6-len(h))
	}
	return "#" + h[:6]
}

// Render produces the PNG bytes for one letter: colored background with
// the letter centered in white.
func (g *Generator) Render(letter rune) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	dc := gg.NewContext(g.width, g.height)
	dc.SetHexColor(BackgroundHex(letter))
	dc.Clear()
	dc.SetFontFace(g.face)
	dc.SetHexColor("#FFFFFF")
	dc.DrawStringAnchored(string(letter), float64(g.width)/2, float64(g.height)/2, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LetterFor picks the cache key for a username: its first rune, lowercased.
func LetterFor(username string) rune {
	r, _ := utf8.DecodeRuneInString(username)
	if r == utf8.RuneError {
		return 'u'
	}
	return unicode.ToLower(r)
}

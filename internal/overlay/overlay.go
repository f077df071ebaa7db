// Package overlay checks overlay fonts and renders a still preview of the
// centered text on the first slide.
package overlay

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	// Decoders for slide formats beyond the JPEG and PNG support gg pulls in.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/backmassage/slidereel/internal/ffmpeg"
)

// LoadFont reads and parses a TrueType font file.
func LoadFont(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return f, nil
}

// ValidateFont reports whether path holds a font this package can parse.
// ffmpeg reads more formats than freetype-go does (OpenType CFF, collections),
// so callers treat a failure as a warning.
func ValidateFont(path string) error {
	_, err := LoadFont(path)
	return err
}

// RenderPreview draws o centered on the image at imagePath and writes the
// result to out as PNG. It approximates the drawtext filter, so glyph
// placement can differ from the encoded video by a few pixels.
func RenderPreview(imagePath, out string, o ffmpeg.Overlay) error {
	img, err := gg.LoadImage(imagePath)
	if err != nil {
		return fmt.Errorf("load %s: %w", imagePath, err)
	}
	f, err := LoadFont(o.FontPath)
	if err != nil {
		return err
	}
	face := truetype.NewFace(f, &truetype.Options{Size: float64(o.FontSize), Hinting: font.HintingFull})
	defer face.Close()

	dc := gg.NewContextForImage(img)
	dc.SetFontFace(face)
	dc.SetColor(ParseColor(o.FontColor))
	dc.DrawStringAnchored(o.Text, float64(dc.Width())/2, float64(dc.Height())/2, 0.5, 0.5)
	if err := dc.SavePNG(out); err != nil {
		return fmt.Errorf("write preview %s: %w", out, err)
	}
	return nil
}

var namedColors = map[string]color.Color{
	"white":  color.White,
	"black":  color.Black,
	"red":    color.RGBA{R: 0xff, A: 0xff},
	"green":  color.RGBA{G: 0x80, A: 0xff},
	"lime":   color.RGBA{G: 0xff, A: 0xff},
	"blue":   color.RGBA{B: 0xff, A: 0xff},
	"yellow": color.RGBA{R: 0xff, G: 0xff, A: 0xff},
	"cyan":   color.RGBA{G: 0xff, B: 0xff, A: 0xff},
	"orange": color.RGBA{R: 0xff, G: 0xa5, A: 0xff},
	"gray":   color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
}

// ParseColor maps an ffmpeg color spec to a color. It understands common
// names and "#RRGGBB" or "0xRRGGBB" hex (an "@alpha" suffix is ignored).
// Anything else falls back to white.
func ParseColor(spec string) color.Color {
	s := strings.ToLower(strings.TrimSpace(spec))
	if i := strings.IndexByte(s, '@'); i >= 0 {
		s = s[:i]
	}
	if c, ok := namedColors[s]; ok {
		return c
	}
	hex := strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	if len(hex) == 6 || len(hex) == 8 {
		var r, g, b, a uint8 = 0, 0, 0, 0xff
		var n int
		var err error
		if len(hex) == 8 {
			n, err = fmt.Sscanf(hex, "%02x%02x%02x%02x", &r, &g, &b, &a)
		} else {
			n, err = fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
		}
		if err == nil && n == len(hex)/2 {
			return color.NRGBA{R: r, G: g, B: b, A: a}
		}
	}
	return color.White
}

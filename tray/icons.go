package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/yllada/chatdock/common"
)

// IconConfig defines the configuration for icon generation.
type IconConfig struct {
	Size        int
	FillColor   color.RGBA
	BorderColor color.RGBA
	AccentColor color.RGBA
	DotColor    color.RGBA
}

// DefaultIconConfig returns the tray icon palette.
func DefaultIconConfig() IconConfig {
	return IconConfig{
		Size:        common.TrayIconSize,
		FillColor:   color.RGBA{66, 103, 210, 255},  // Indigo
		BorderColor: color.RGBA{98, 134, 235, 255},  // Light indigo
		AccentColor: color.RGBA{140, 170, 245, 255}, // Highlight
		DotColor:    color.RGBA{255, 255, 255, 255}, // White
	}
}

// IconGenerator draws the speech-bubble tray icon.
type IconGenerator struct {
	config IconConfig
}

// NewIconGenerator creates a new icon generator with the given config.
func NewIconGenerator(config IconConfig) *IconGenerator {
	return &IconGenerator{config: config}
}

// Generate creates a PNG icon and returns the bytes, or nil if encoding
// fails.
func (g *IconGenerator) Generate() []byte {
	size := g.config.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	g.drawBubble(img)
	g.drawDots(img)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// drawBubble draws a rounded rectangle with a tail at the bottom left.
func (g *IconGenerator) drawBubble(img *image.RGBA) {
	size := float64(g.config.Size)
	left, right := 1.0, size-1
	top, bottom := 2.0, size*0.72
	radius := size * 0.22

	inBody := func(x, y float64) bool {
		if x < left || x > right || y < top || y > bottom {
			return false
		}
		cx := clamp(x, left+radius, right-radius)
		cy := clamp(y, top+radius, bottom-radius)
		dx, dy := x-cx, y-cy
		return dx*dx+dy*dy <= radius*radius
	}
	// Tail: triangle below the body, leaning left.
	inTail := func(x, y float64) bool {
		tailTop, tailBottom := bottom-1, size-1.5
		if y < tailTop || y > tailBottom {
			return false
		}
		progress := (y - tailTop) / (tailBottom - tailTop)
		tailLeft := size*0.22 - progress*size*0.08
		tailRight := size*0.48 - progress*size*0.26
		return x >= tailLeft && x <= tailRight
	}
	inside := func(x, y float64) bool { return inBody(x, y) || inTail(x, y) }

	for y := 0; y < g.config.Size; y++ {
		for x := 0; x < g.config.Size; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			if !inside(fx, fy) {
				continue
			}

			isBorder := !inside(fx-1, fy) || !inside(fx+1, fy) ||
				!inside(fx, fy-1) || !inside(fx, fy+1)
			switch {
			case isBorder:
				img.Set(x, y, g.config.BorderColor)
			case fy < size*0.3:
				img.Set(x, y, g.config.AccentColor)
			default:
				img.Set(x, y, g.config.FillColor)
			}
		}
	}
}

// drawDots draws three typing dots across the middle of the bubble.
func (g *IconGenerator) drawDots(img *image.RGBA) {
	size := g.config.Size
	cy := size * 2 / 5
	for _, cx := range []int{size * 3 / 10, size / 2, size * 7 / 10} {
		for dy := -1; dy <= 0; dy++ {
			for dx := -1; dx <= 0; dx++ {
				img.Set(cx+dx, cy+dy+1, g.config.DotColor)
			}
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// GenerateIcon generates the tray icon with the default palette.
func GenerateIcon() []byte {
	return NewIconGenerator(DefaultIconConfig()).Generate()
}

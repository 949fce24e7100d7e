package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

const bytesPerPixel = 3

// ImageTexture looks up colors in an 8-bit RGB bitmap using nearest-neighbor filtering
type ImageTexture struct {
	Width  int
	Height int
	Pix    []uint8 // Row-major RGB triples, top row first
}

// NewImageTexture creates a new image texture over an RGB buffer
func NewImageTexture(width, height int, pix []uint8) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pix:    pix,
	}
}

// Value samples the texture at (u, v). Coordinates are clamped to [0, 1] and v is
// flipped so that v=0 is the bottom row. Missing or short data renders solid cyan.
func (t *ImageTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pix) < t.Width*t.Height*bytesPerPixel {
		return core.NewVec3(0, 1, 1)
	}

	u = core.Clamp(u, 0, 1)
	v = 1.0 - core.Clamp(v, 0, 1)

	i := int(u * float64(t.Width))
	j := int(v * float64(t.Height))
	if i >= t.Width {
		i = t.Width - 1
	}
	if j >= t.Height {
		j = t.Height - 1
	}

	const colorScale = 1.0 / 255.0
	offset := j*t.Width*bytesPerPixel + i*bytesPerPixel
	return core.NewVec3(
		colorScale*float64(t.Pix[offset]),
		colorScale*float64(t.Pix[offset+1]),
		colorScale*float64(t.Pix[offset+2]),
	)
}

package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ProcessColor turns a pixel accumulator of samples into an 8-bit color: NaN
// components become zero, the sum is divided by the sample count, gamma 2 is
// applied and the result is clamped to [0, 0.999] before scaling by 256.
func ProcessColor(sum core.Vec3, samples int) color.RGBA {
	scale := 1.0
	if samples > 0 {
		scale = 1.0 / float64(samples)
	}

	return color.RGBA{
		R: processComponent(sum.X, scale),
		G: processComponent(sum.Y, scale),
		B: processComponent(sum.Z, scale),
		A: 255,
	}
}

func processComponent(c, scale float64) uint8 {
	if math.IsNaN(c) {
		c = 0
	}
	c *= scale
	if c < 0 {
		c = 0
	}
	return uint8(256 * core.Clamp(math.Sqrt(c), 0.0, 0.999))
}

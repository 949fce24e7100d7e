package loaders

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ImageData is a decoded 8-bit RGB bitmap, rows stored top first
type ImageData struct {
	Width  int
	Height int
	Pix    []uint8 // Width*Height RGB triples
}

type decodeFunc func(io.Reader) (image.Image, error)

// Decoders are chosen by extension. TGA has no magic number, so sniffing
// through image.Decode is not reliable once it is registered.
var decoders = map[string]decodeFunc{
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
}

// SupportedExtensions lists the file extensions LoadImage understands
func SupportedExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp", ".tga"}
}

// LoadImage decodes an image file into an RGB buffer
func LoadImage(filename string) (*ImageData, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("loaders: unsupported image format %q", ext)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loaders: failed to open image file: %w", err)
	}
	defer file.Close()

	img, err := decode(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("loaders: failed to decode %s: %w", filepath.Base(filename), err)
	}

	return FromImage(img), nil
}

// FromImage converts any decoded image to an RGB buffer. Alpha is dropped.
func FromImage(img image.Image) *ImageData {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	pix := make([]uint8, 0, width*height*3)
	for y := 0; y < height; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+width*4]
		for x := 0; x < width; x++ {
			pix = append(pix, row[x*4], row[x*4+1], row[x*4+2])
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pix:    pix,
	}
}

// At returns the RGB triple at pixel (x, y)
func (d *ImageData) At(x, y int) (r, g, b uint8) {
	i := (y*d.Width + x) * 3
	return d.Pix[i], d.Pix[i+1], d.Pix[i+2]
}

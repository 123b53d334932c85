package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/df07/go-raytracer-bvh/pkg/core"
)

// maxChannel scales a [0, 1] colour channel so that 1.0 still maps to 255
const maxChannel = 255.999

// ImageData accumulates colour per pixel. Pixel (x, y) has y = 0 on the
// bottom row, the way the camera's t coordinate grows upward.
type ImageData struct {
	Width  int
	Height int
	pixels []core.Vec3
}

// NewImageData creates a black image
func NewImageData(width, height int) *ImageData {
	return &ImageData{
		Width:  width,
		Height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

func (img *ImageData) index(x, y int) int {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		panic(fmt.Sprintf("renderer: pixel (%d, %d) outside %dx%d image", x, y, img.Width, img.Height))
	}
	return y*img.Width + x
}

// Set replaces the colour of a pixel
func (img *ImageData) Set(x, y int, c core.Vec3) {
	img.pixels[img.index(x, y)] = c
}

// Add accumulates a sample into a pixel
func (img *ImageData) Add(x, y int, c core.Vec3) {
	i := img.index(x, y)
	img.pixels[i] = img.pixels[i].Add(c)
}

// Get returns the accumulated colour of a pixel
func (img *ImageData) Get(x, y int) core.Vec3 {
	return img.pixels[img.index(x, y)]
}

// WritePPM writes the image as a plain-text PPM (P3), top row first, with
// every pixel divided by samples.
func (img *ImageData) WritePPM(w io.Writer, samples int) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for y := img.Height - 1; y >= 0; y-- {
		for x := 0; x < img.Width; x++ {
			r, g, b := channels(img.Get(x, y), samples)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
				return fmt.Errorf("failed to write PPM pixel: %w", err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}

// ToRGBA converts the image for the standard image encoders, top row first
func (img *ImageData) ToRGBA(samples int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b := channels(img.Get(x, y), samples)
			out.SetRGBA(x, img.Height-1-y, color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255})
		}
	}
	return out
}

// channels averages an accumulated colour and quantizes it to 0..255
func channels(c core.Vec3, samples int) (r, g, b int) {
	scale := 1.0
	if samples > 0 {
		scale = 1.0 / float64(samples)
	}
	quantize := func(v float64) int {
		return clamp(int(math.Round(maxChannel*v*scale)), 0, 255)
	}
	return quantize(c.X), quantize(c.Y), quantize(c.Z)
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

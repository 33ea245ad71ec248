package core_test

import (
	"image"
	"image/color"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/vkboot/core"
)

var testImage image.Image

func init() {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xFF})
		}
	}
	testImage = img
}

func TestGetPixelsSize(t *testing.T) {
	c := qt.New(t)

	pixels, err := core.GetPixels(testImage, 64*4)
	c.Assert(err, qt.IsNil)
	c.Assert(len(pixels), qt.Equals, 64*64*4)
}

func BenchmarkGetPixelsSmallRowPitch(b *testing.B) {
	for idx := 0; idx < b.N; idx++ {
		core.GetPixels(testImage, 4)
	}
}

func BenchmarkGetPixelsMediumRowPitch(b *testing.B) {
	for idx := 0; idx < b.N; idx++ {
		core.GetPixels(testImage, 200)
	}
}

func BenchmarkGetPixelsBigRowPitch(b *testing.B) {
	for idx := 0; idx < b.N; idx++ {
		core.GetPixels(testImage, 1000)
	}
}

package main

import (
	"bytes"
	"image/png"
	"unsafe"

	"github.com/gobuffalo/packr"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/vkboot/core"
)

// StaticResources holds assets compiled into the binary
var StaticResources packr.Box

func init() {
	StaticResources = packr.NewBox("./resources")
}

// setWindowIcon decorates the window with the embedded icon.
// A missing or broken icon is not worth failing the bootstrap over.
func setWindowIcon(window *sdl.Window) {
	img, err := png.Decode(bytes.NewReader(StaticResources.Bytes("icon.png")))
	if err != nil {
		log.Warn("Skipping window icon: ", err)
		return
	}

	bounds := img.Bounds()
	pixels, err := core.GetPixels(img, 4*bounds.Dx())
	if err != nil {
		log.Warn("Skipping window icon: ", err)
		return
	}

	iconSurface, err := sdl.CreateRGBSurfaceWithFormatFrom(
		unsafe.Pointer(&pixels[0]),
		int32(bounds.Dx()),
		int32(bounds.Dy()),
		32,
		int32(4*bounds.Dx()),
		uint32(sdl.PIXELFORMAT_ABGR8888))
	if err != nil {
		log.Warn("Skipping window icon: ", err)
		return
	}
	defer iconSurface.Free()

	window.SetIcon(iconSurface)
}

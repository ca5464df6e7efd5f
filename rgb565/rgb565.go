// Package rgb565 provides the 16-bit RGB565 and 8-bit RGB332 pixel formats
// used by the RA8875 display controller.
//
// Colors are quantized by truncating each channel to its high-order bits.
// The conversion is deterministic and lossy; no dithering or rounding is
// performed.
package rgb565

import (
	"image"
	"image/color"
)

// RGB565 is a 16-bit color with 5 bits of red, 6 of green and 5 of blue.
type RGB565 uint16

// RGBA converts the RGB565 color to standard RGBA. Channels are expanded by
// bit replication so that full-scale values map to full-scale RGBA.
func (c RGB565) RGBA() (r, g, b, a uint32) {
	r5 := uint32(c >> 11 & 0x1F)
	g6 := uint32(c >> 5 & 0x3F)
	b5 := uint32(c & 0x1F)
	r8 := r5<<3 | r5>>2
	g8 := g6<<2 | g6>>4
	b8 := b5<<3 | b5>>2
	return r8 * 0x101, g8 * 0x101, b8 * 0x101, 0xFFFF
}

// RGB332 is an 8-bit color with 3 bits of red, 3 of green and 2 of blue.
type RGB332 uint8

// RGBA converts the RGB332 color to standard RGBA by bit replication.
func (c RGB332) RGBA() (r, g, b, a uint32) {
	r3 := uint32(c >> 5 & 0x07)
	g3 := uint32(c >> 2 & 0x07)
	b2 := uint32(c & 0x03)
	r8 := r3<<5 | r3<<2 | r3>>1
	g8 := g3<<5 | g3<<2 | g3>>1
	b8 := b2<<6 | b2<<4 | b2<<2 | b2
	return r8 * 0x101, g8 * 0x101, b8 * 0x101, 0xFFFF
}

func toRGB565(c color.Color) color.Color {
	if v, ok := c.(RGB565); ok {
		return v
	}
	r, g, b, _ := c.RGBA()
	// Keep the top 5/6/5 bits of each 8-bit channel.
	r8 := r >> 8
	g8 := g >> 8
	b8 := b >> 8
	return RGB565(r8>>3<<11 | g8>>2<<5 | b8>>3)
}

func toRGB332(c color.Color) color.Color {
	if v, ok := c.(RGB332); ok {
		return v
	}
	r, g, b, _ := c.RGBA()
	r8 := r >> 8
	g8 := g >> 8
	b8 := b >> 8
	return RGB332(r8>>5<<5 | g8>>5<<2 | b8>>6)
}

// RGB565Model converts colors to RGB565 by channel truncation.
var RGB565Model = color.ModelFunc(toRGB565)

// RGB332Model converts colors to RGB332 by channel truncation.
var RGB332Model = color.ModelFunc(toRGB332)

// Common RGB565 colors.
const (
	Black   RGB565 = 0x0000
	Blue    RGB565 = 0x001F
	Red     RGB565 = 0xF800
	Green   RGB565 = 0x07E0
	Cyan    RGB565 = 0x07FF
	Magenta RGB565 = 0xF81F
	Yellow  RGB565 = 0xFFE0
	White   RGB565 = 0xFFFF
)

// Image is an in-memory RGB565 image. Pixels are stored as two bytes each,
// high byte first, the order the RA8875 memory write port expects, so Pix
// can be streamed to the display without conversion.
type Image struct {
	Pix    []byte          // Pixel data, 2 bytes per pixel, big-endian
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewImage creates a new RGB565 image with the specified bounds.
func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &Image{Rect: r}
	}
	stride := w * 2
	return &Image{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return RGB565Model
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *Image) At(x, y int) color.Color {
	return p.RGB565At(x, y)
}

// RGB565At returns the RGB565 color of the pixel at (x, y).
func (p *Image) RGB565At(x, y int) RGB565 {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return 0
	}
	offset := p.pixOffset(x, y)
	return RGB565(uint16(p.Pix[offset])<<8 | uint16(p.Pix[offset+1]))
}

// Set sets the color of the pixel at (x, y).
func (p *Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	p.setRGB565(x, y, RGB565Model.Convert(c).(RGB565))
}

// SetRGB565 sets the RGB565 color of the pixel at (x, y).
// This is faster than Set as it skips color conversion.
func (p *Image) SetRGB565(x, y int, c RGB565) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	p.setRGB565(x, y, c)
}

func (p *Image) setRGB565(x, y int, c RGB565) {
	offset := p.pixOffset(x, y)
	p.Pix[offset] = byte(c >> 8)
	p.Pix[offset+1] = byte(c)
}

// pixOffset returns the byte offset of the pixel at (x, y).
func (p *Image) pixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}

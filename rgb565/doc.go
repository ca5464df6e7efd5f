// Package rgb565 provides the pixel formats of the RA8875 display controller.
//
// The RA8875 framebuffer holds either 16-bit RGB565 or 8-bit RGB332 pixels.
// At 16bpp the memory write port consumes two bytes per pixel, high byte
// first.
//
// Memory layout example for a 2-pixel row of an Image:
//
//	Pixels: (31,0,0)  (0,63,0)
//	Values: 0xF800    0x07E0
//	Bytes:  0xF8 0x00 0x07 0xE0
//
// This package provides:
//
// - RGB565: a 16-bit 5/6/5 color type
// - RGB332: an 8-bit 3/3/2 color type
// - RGB565Model, RGB332Model: truncating color models
// - Image: an image.Image implementation laid out for bulk streaming
//
// Conversion from richer colors keeps the high-order bits of each channel:
//
//	c := rgb565.RGB565Model.Convert(color.RGBA{R: 0xFF, G: 0x80, B: 0x40, A: 0xFF})
//	// c == rgb565.RGB565(0xFC08): top 5/6/5 bits of each channel
//
// Example usage:
//
//	// Create a 480x272 image
//	img := rgb565.NewImage(image.Rect(0, 0, 480, 272))
//
//	// Set a pixel
//	img.SetRGB565(10, 20, rgb565.Red)
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(rgb565.White), image.Point{}, draw.Src)
package rgb565

// Package ra8875 controls a RA8875 TFT display controller via SPI.
//
// The RA8875 drives TFT panels up to 800×480 pixels and embeds a 2D drawing
// engine, so lines, rectangles and circles are rasterized on-chip. This
// driver implements the display.Drawer interface from periph.io.
//
// # Chip Characteristics
//
// - 16bpp (RGB565) or 8bpp (RGB332) framebuffer, held on-chip
// - Hardware-accelerated pixel, line, rectangle and circle drawing
// - Hardware active window (rectangular clipping region)
// - Hardware scrolling window
// - PWM backlight control
// - Commands and data multiplexed over SPI prefix bytes (no D/C pin)
//
// # Hardware Connection
//
// Connect the RA8875 board to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VIN         → 3.3V or 5V depending on the board
//	SCK         → SPI Clock (SCLK)
//	MOSI        → SPI Data Out (MOSI)
//	MISO        → SPI Data In (MISO)
//	CS          → SPI Chip Select
//	RST         → Optional: GPIO for hardware reset
//	WAIT        → Optional: GPIO for draw-engine busy sensing
//
// # Basic Usage
//
// Example of creating and using the display:
//
//	package main
//
//	import (
//		"image"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/ra8875"
//		"periph.io/x/devices/v3/ra8875/rgb565"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open SPI bus
//		spiBus, _ := spireg.Open("")
//
//		// Create device
//		dev, _ := ra8875.NewSPI(spiBus, &ra8875.Opts{
//			W: 480,
//			H: 272,
//		})
//		defer dev.Halt()
//
//		// Hardware-accelerated primitives
//		dev.FillScreen(rgb565.Black)
//		dev.DrawLine(0, 0, 479, 271, rgb565.White)
//		dev.DrawCircle(240, 136, 80, rgb565.Red, true)
//
//		// Or draw any Go image through the adapter
//		img := rgb565.NewImage(dev.Bounds())
//		for x := 0; x < 480; x++ {
//			img.SetRGB565(x, 136, rgb565.Green)
//		}
//		dev.Draw(dev.Bounds(), img, image.Point{})
//	}
//
// # Using Hardware Reset Pin (Optional)
//
// If the RST pin is connected to a GPIO, provide it in the Opts struct:
//
//	rstPin := gpioreg.ByName("GPIO25")
//
//	dev, _ := ra8875.NewSPI(spiBus, &ra8875.Opts{
//		W:   480,
//		H:   272,
//		RST: rstPin,
//	})
//
// The driver pulls RST low for 100ms, releases it and waits another 100ms
// before configuring the chip. Without a RST pin a register-level software
// reset is issued instead.
//
// # Initialization Failures
//
// A failed NewSPI leaves the chip in a partially configured state; there is
// no rollback. Perform a hardware reset (power cycle or RST pulse) before
// attempting to initialize again. Resuming a failed initialization is not
// supported.
//
// # Drawing Modes
//
// The driver exposes two paths to the framebuffer:
//
// ## Hardware Primitives
//
// Pixel, line, rectangle and circle commands execute on the chip's own
// drawing engine. The driver programs the shape registers, starts the
// command and polls the busy flag until the engine finishes. When the WAIT
// line is wired in Opts, completion is sensed on that pin instead of
// reading the status register over the bus. Either way the poll is
// bounded: a chip that never reports completion yields ErrTimeout instead
// of hanging the caller.
//
//	dev.DrawRect(10, 10, 100, 60, rgb565.Yellow, true)
//
// ## Bulk Pixel Streams
//
// Arbitrary image content is streamed through the memory write port. The
// active window is narrowed to the destination region so the cursor wraps
// at region edges, then pre-quantized pixels are sent as single bulk
// transfers:
//
//	dev.Draw(image.Rect(0, 0, 100, 100), myImage, image.Point{})
//
// # Colors
//
// Input colors are quantized to the configured depth by truncating each
// channel to its high-order bits (5/6/5 at 16bpp, 3/3/2 at 8bpp). The
// conversion is deterministic and lossy; no dithering is performed. Use the
// rgb565 package types to skip conversion entirely.
//
// # Concurrency
//
// A Dev performs no internal locking. It must be owned by a single
// goroutine at a time; concurrent use requires external mutual exclusion.
//
// # Display Resolution
//
// The chip ships in two panel classes. Common options:
//
//	Opts{W: 480, H: 272} // 4.3" panels
//	Opts{W: 800, H: 480} // 5" and 7" panels
//
// Width must be a multiple of 8 (a hardware addressing granularity) and
// ≤800. Height must be ≤480.
//
// # Datasheet
//
// For register descriptions and timing information, see:
// https://cdn-shop.adafruit.com/datasheets/RA8875.pdf
//
// # Compatibility with periph.io
//
// This driver implements the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
//
// It can be used with any periph.io tool or library expecting a
// display.Drawer.
package ra8875

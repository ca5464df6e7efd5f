// Package ra8875 controls a RA8875 TFT display controller via SPI.
//
// The RA8875 drives TFT panels up to 800x480 pixels and contains a
// hardware-accelerated 2D drawing engine (pixel, line, rectangle, circle).
//
// See the examples for how to use this package.
package ra8875

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ra8875/rgb565"
)

// Errors returned by the driver. Bus-level failures are returned as-is from
// the underlying conn.Conn and are never retried here.
var (
	// ErrUnsupportedGeometry is returned before any bus traffic when the
	// requested panel dimensions cannot be addressed by the chip. The width
	// must be a multiple of 8 pixels, a hardware addressing granularity.
	ErrUnsupportedGeometry = errors.New("ra8875: unsupported panel geometry")

	// ErrOutOfBounds is returned before any bus traffic when coordinates
	// fall outside the configured panel area or the current active window.
	ErrOutOfBounds = errors.New("ra8875: coordinates outside panel bounds")

	// ErrTimeout is returned when the drawing engine's busy flag does not
	// clear within the bounded poll budget. The command is abandoned but the
	// device remains usable; the caller may retry at its own policy.
	ErrTimeout = errors.New("ra8875: drawing engine busy flag did not clear")
)

// ColorDepth is the framebuffer color depth in bits per pixel.
type ColorDepth uint8

const (
	Depth16bpp ColorDepth = 16 // RGB565, two bytes per pixel
	Depth8bpp  ColorDepth = 8  // RGB332, one byte per pixel
)

// Rotation selects the panel scan direction.
//
// The RA8875 has no axis-swapping remap, so only 0° and 180° are available.
type Rotation uint8

const (
	Rotate0   Rotation = iota // Native orientation
	Rotate180                 // Both scan directions reversed
)

// Maximum panel dimensions addressable by the chip.
const (
	maxWidth  = 800
	maxHeight = 480
)

// Opts is the configuration for the RA8875 display.
type Opts struct {
	// Panel dimensions in pixels.
	W int // Width (default: 480, must be a multiple of 8 and ≤800)
	H int // Height (default: 272, must be ≤480)

	// Depth is the framebuffer color depth. Defaults to Depth16bpp.
	Depth ColorDepth

	// Rotation of the panel.
	Rotation Rotation

	// Freq is the SPI clock. Defaults to 4MHz; the chip accepts writes up
	// to 20MHz once the PLL is programmed.
	Freq physic.Frequency

	// Optional hardware reset pin. When nil a software reset is issued
	// instead.
	RST gpio.PinIO

	// Optional WAIT line. The chip drives it low while the drawing engine
	// is busy; when wired, draw completion is sensed on this pin instead of
	// polling the status register over the bus.
	Wait gpio.PinIO
}

// Dev is the device handle for the RA8875 display.
//
// A Dev is not safe for concurrent use; callers must serialize access. A
// failed initialization leaves the chip partially configured: perform a
// hardware reset before attempting to create the device again.
type Dev struct {
	// Communication
	c    conn.Conn  // SPI connection
	rst  gpio.PinIO // Reset pin (optional)
	wait gpio.PinIO // Busy line (optional)

	// Panel geometry and configuration
	rect  image.Rectangle
	win   image.Rectangle // current active window
	depth ColorDepth
	rot   Rotation

	// State
	halted bool
}

// NewSPI creates a new RA8875 device connected via SPI.
//
// The SPI port is configured for Mode0 (CPOL=0, CPHA=0), 8-bit transfers.
// The RA8875 multiplexes commands and data over a prefix byte, so no
// Data/Command GPIO pin is needed.
//
// opts can be nil to use defaults (480x272, 16bpp).
func NewSPI(p spi.Port, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{W: 480, H: 272}
	}

	// Geometry is validated before any bus traffic. The horizontal width
	// register holds (width/8)-1, so widths that are not multiples of 8
	// cannot be expressed.
	if opts.W <= 0 || opts.W%8 != 0 || opts.W > maxWidth {
		return nil, ErrUnsupportedGeometry
	}
	if opts.H <= 0 || opts.H > maxHeight {
		return nil, ErrUnsupportedGeometry
	}

	depth := opts.Depth
	if depth == 0 {
		depth = Depth16bpp
	}
	if depth != Depth16bpp && depth != Depth8bpp {
		return nil, errors.New("ra8875: color depth must be 8 or 16 bits per pixel")
	}

	freq := opts.Freq
	if freq == 0 {
		freq = 4 * physic.MegaHertz
	}

	c, err := p.Connect(freq, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}

	d := &Dev{
		c:     c,
		rst:   opts.RST,
		wait:  opts.Wait,
		rect:  image.Rect(0, 0, opts.W, opts.H),
		depth: depth,
		rot:   opts.Rotation,
	}

	if err := d.init(opts); err != nil {
		return nil, err
	}

	return d, nil
}

// syncTiming holds the panel timing parameters programmed during
// initialization. Values are the RA8875 datasheet figures for the two panel
// classes the chip ships with.
type syncTiming struct {
	pixclk        byte
	hsyncNondisp  byte
	hsyncStart    byte
	hsyncPW       byte
	hsyncFinetune byte
	vsyncNondisp  uint16
	vsyncStart    uint16
	vsyncPW       byte
}

// timingFor returns the sync timing for the given panel width. Panels up to
// 480 pixels wide use the 480x272 class timings, wider panels the 800x480
// class.
func timingFor(width int) syncTiming {
	if width <= 480 {
		return syncTiming{
			pixclk:       pcsrDataFalling | pcsrClockDiv4,
			hsyncNondisp: 10,
			hsyncStart:   8,
			hsyncPW:      48,
			vsyncNondisp: 3,
			vsyncStart:   8,
			vsyncPW:      10,
		}
	}
	return syncTiming{
		pixclk:       pcsrDataFalling | pcsrClockDiv2,
		hsyncNondisp: 26,
		hsyncStart:   32,
		hsyncPW:      96,
		vsyncNondisp: 32,
		vsyncStart:   23,
		vsyncPW:      2,
	}
}

// init drives the chip from reset to a configured, displaying state.
//
// Any transport failure aborts the sequence and leaves the chip partially
// configured; a hardware reset is required before retrying.
func (d *Dev) init(opts *Opts) error {
	// Hardware reset sequence, or a register-level soft reset when no RST
	// pin is wired.
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("ra8875: failed to pull RST low: %w", err)
		}
		time.Sleep(100 * time.Millisecond)

		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("ra8875: failed to pull RST high: %w", err)
		}
		time.Sleep(100 * time.Millisecond)
	} else {
		if err := d.writeReg(regPWRR, pwrrSoftReset); err != nil {
			return err
		}
		time.Sleep(time.Millisecond)
		if err := d.writeReg(regPWRR, pwrrNormal); err != nil {
			return err
		}
		time.Sleep(10 * time.Millisecond)
	}

	// Program the PLL to reach the pixel clock. The chip needs a settle
	// delay after each divider write before it may be clocked further.
	if err := d.writeReg(regPLLC1, pllc1Div1+10); err != nil {
		return err
	}
	time.Sleep(time.Millisecond)
	if err := d.writeReg(regPLLC2, pllc2Div4); err != nil {
		return err
	}
	time.Sleep(time.Millisecond)

	// System configuration: color depth, 8-bit MCU interface.
	sysr := sysr16bpp
	if d.depth == Depth8bpp {
		sysr = sysr8bpp
	}
	if err := d.writeReg(regSYSR, sysr|sysrMCU8); err != nil {
		return err
	}

	t := timingFor(d.rect.Dx())
	if err := d.writeReg(regPCSR, t.pixclk); err != nil {
		return err
	}
	time.Sleep(time.Millisecond)

	width := d.rect.Dx()
	height := d.rect.Dy()

	// Horizontal timing registers.
	hRegs := []struct{ reg, val byte }{
		{regHDWR, byte(width/8 - 1)},
		{regHNDFTR, t.hsyncFinetune},
		{regHNDR, (t.hsyncNondisp - t.hsyncFinetune - 2) / 8},
		{regHSTR, t.hsyncStart/8 - 1},
		{regHPWR, t.hsyncPW/8 - 1},
	}
	for _, r := range hRegs {
		if err := d.writeReg(r.reg, r.val); err != nil {
			return err
		}
	}

	// Vertical timing registers.
	vRegs := []struct{ reg, val byte }{
		{regVDHR0, byte((height - 1) & 0xFF)},
		{regVDHR1, byte((height - 1) >> 8)},
		{regVNDR0, byte(t.vsyncNondisp - 1)},
		{regVNDR1, byte(t.vsyncNondisp >> 8)},
		{regVSTR0, byte(t.vsyncStart - 1)},
		{regVSTR1, byte(t.vsyncStart >> 8)},
		{regVPWR, t.vsyncPW - 1},
	}
	for _, r := range vRegs {
		if err := d.writeReg(r.reg, r.val); err != nil {
			return err
		}
	}

	// Active window covers the full panel.
	if err := d.SetActiveWindow(d.rect); err != nil {
		return err
	}

	if err := d.writeScanDirection(); err != nil {
		return err
	}

	// Clear display RAM. The full-window clear runs at the pixel clock and
	// has no completion interrupt worth waiting on at init time.
	if err := d.writeReg(regMCLR, mclrStart|mclrFullWindow); err != nil {
		return err
	}
	time.Sleep(500 * time.Millisecond)

	// Display output on, after the power-up delay above has elapsed.
	if err := d.writeReg(regPWRR, pwrrNormal|pwrrDisplayOn); err != nil {
		return err
	}

	// Panel enable is tied to GPIOX on common breakout boards.
	if err := d.writeReg(regGPIOX, 1); err != nil {
		return err
	}

	// Backlight PWM at full duty.
	if err := d.writeReg(regP1CR, p1crEnable|pwmClockDiv1024); err != nil {
		return err
	}
	return d.writeReg(regP1DCR, 0xFF)
}

// writeScanDirection programs the panel scan direction for the configured
// rotation.
func (d *Dev) writeScanDirection() error {
	dpcr := byte(0)
	if d.rot == Rotate180 {
		dpcr = dpcrHorizontalFlip | dpcrVerticalFlip
	}
	return d.writeReg(regDPCR, dpcr)
}

// writeCmd selects the target register for the next data cycle.
func (d *Dev) writeCmd(reg byte) error {
	return d.c.Tx([]byte{cmdWrite, reg}, nil)
}

// writeData writes one data byte to the currently selected register.
func (d *Dev) writeData(val byte) error {
	return d.c.Tx([]byte{dataWrite, val}, nil)
}

// writeDataBulk streams a byte sequence to the currently selected register
// as a single bus transaction.
func (d *Dev) writeDataBulk(p []byte) error {
	buf := make([]byte, 1+len(p))
	buf[0] = dataWrite
	copy(buf[1:], p)
	return d.c.Tx(buf, nil)
}

// readData reads one data byte from the currently selected register.
func (d *Dev) readData() (byte, error) {
	var buf [2]byte
	if err := d.c.Tx([]byte{dataRead, 0x00}, buf[:]); err != nil {
		return 0, err
	}
	return buf[1], nil
}

// writeReg writes a register as a select-then-transfer pair.
func (d *Dev) writeReg(reg, val byte) error {
	if err := d.writeCmd(reg); err != nil {
		return err
	}
	return d.writeData(val)
}

// readReg reads a register as a select-then-transfer pair.
func (d *Dev) readReg(reg byte) (byte, error) {
	if err := d.writeCmd(reg); err != nil {
		return 0, err
	}
	return d.readData()
}

// Status reads the chip status register.
func (d *Dev) Status() (byte, error) {
	var buf [2]byte
	if err := d.c.Tx([]byte{cmdRead, 0x00}, buf[:]); err != nil {
		return 0, err
	}
	return buf[1], nil
}

// setCursor positions the memory write cursor.
func (d *Dev) setCursor(x, y int) error {
	regs := []struct{ reg, val byte }{
		{regCURH0, byte(x & 0xFF)},
		{regCURH1, byte(x >> 8)},
		{regCURV0, byte(y & 0xFF)},
		{regCURV1, byte(y >> 8)},
	}
	for _, r := range regs {
		if err := d.writeReg(r.reg, r.val); err != nil {
			return err
		}
	}
	return nil
}

// ColorModel returns the color model of the display for the configured
// color depth.
func (d *Dev) ColorModel() color.Model {
	if d.depth == Depth8bpp {
		return rgb565.RGB332Model
	}
	return rgb565.RGB565Model
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Depth returns the configured color depth.
func (d *Dev) Depth() ColorDepth {
	return d.depth
}

// DisplayOn turns the display output on or off without touching the
// framebuffer.
func (d *Dev) DisplayOn(on bool) error {
	if d.halted {
		return errors.New("ra8875: halted")
	}
	val := pwrrNormal
	if on {
		val |= pwrrDisplayOn
	}
	return d.writeReg(regPWRR, val)
}

// SetBacklight sets the backlight PWM duty cycle (0 is off, 255 is full).
func (d *Dev) SetBacklight(duty byte) error {
	if d.halted {
		return errors.New("ra8875: halted")
	}
	return d.writeReg(regP1DCR, duty)
}

// Sleep puts the chip into or out of sleep mode. The display output is
// re-enabled when leaving sleep.
func (d *Dev) Sleep(s bool) error {
	if d.halted {
		return errors.New("ra8875: halted")
	}
	if s {
		return d.writeReg(regPWRR, pwrrSleep)
	}
	return d.writeReg(regPWRR, pwrrNormal|pwrrDisplayOn)
}

// SetRotation sets the panel scan direction.
func (d *Dev) SetRotation(rot Rotation) error {
	if d.halted {
		return errors.New("ra8875: halted")
	}
	d.rot = rot
	return d.writeScanDirection()
}

// Halt powers off the display output.
// After calling Halt, the device will not accept further commands until it
// is re-initialized.
func (d *Dev) Halt() error {
	d.halted = true
	return d.writeReg(regPWRR, pwrrNormal)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ra8875.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

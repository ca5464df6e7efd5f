package ra8875

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/devices/v3/ra8875/rgb565"
)

// drawPollBudget is the maximum number of busy-status register reads per
// draw command. The bound converts a stuck chip into ErrTimeout instead of
// an unbounded spin; at 4MHz SPI it corresponds to roughly 80ms.
const drawPollBudget = 20000

// Primitive is a drawing operation natively supported by the chip's 2D
// engine. The set is closed: Pixel, Line, Rect and Circle.
type Primitive interface {
	primitive()
}

// Pixel is a single pixel write.
type Pixel struct {
	X, Y int
	C    color.Color
}

// Line is a straight line between two points, endpoints included.
type Line struct {
	X0, Y0 int
	X1, Y1 int
	C      color.Color
}

// Rect is an axis-aligned rectangle between two corners, borders included.
type Rect struct {
	X0, Y0 int
	X1, Y1 int
	C      color.Color
	Filled bool
}

// Circle is a circle of radius R centered at (X, Y).
type Circle struct {
	X, Y   int
	R      int
	C      color.Color
	Filled bool
}

func (Pixel) primitive()  {}
func (Line) primitive()   {}
func (Rect) primitive()   {}
func (Circle) primitive() {}

// DrawPrimitive executes one hardware drawing command and waits for its
// completion.
//
// Every call re-asserts all registers it needs; nothing is carried over from
// previous calls. At most one command is in flight at a time: the busy flag
// is polled clear before DrawPrimitive returns. A line or rectangle whose
// start equals its end, and a circle of radius zero, degrade to a single
// pixel write since the engine's behavior for degenerate geometry is
// undocumented.
func (d *Dev) DrawPrimitive(p Primitive) error {
	if d.halted {
		return errors.New("ra8875: halted")
	}

	switch p := p.(type) {
	case Pixel:
		return d.drawPixel(p.X, p.Y, p.C)

	case Line:
		if !d.inBounds(p.X0, p.Y0) || !d.inBounds(p.X1, p.Y1) {
			return ErrOutOfBounds
		}
		if p.X0 == p.X1 && p.Y0 == p.Y1 {
			return d.drawPixel(p.X0, p.Y0, p.C)
		}
		if err := d.writeLineEndpoints(p.X0, p.Y0, p.X1, p.Y1); err != nil {
			return err
		}
		if err := d.setDrawColor(p.C); err != nil {
			return err
		}
		if err := d.writeReg(regDCR, dcrLineRectStart|dcrDrawLine); err != nil {
			return err
		}
		return d.waitIdle(dcrLineRectStart)

	case Rect:
		x0, x1 := order(p.X0, p.X1)
		y0, y1 := order(p.Y0, p.Y1)
		if !d.inBounds(x0, y0) || !d.inBounds(x1, y1) {
			return ErrOutOfBounds
		}
		if x0 == x1 && y0 == y1 {
			return d.drawPixel(x0, y0, p.C)
		}
		if err := d.writeLineEndpoints(x0, y0, x1, y1); err != nil {
			return err
		}
		if err := d.setDrawColor(p.C); err != nil {
			return err
		}
		cmd := dcrLineRectStart | dcrDrawRect
		if p.Filled {
			cmd |= dcrFill
		}
		if err := d.writeReg(regDCR, cmd); err != nil {
			return err
		}
		return d.waitIdle(dcrLineRectStart)

	case Circle:
		if p.R < 0 {
			return ErrOutOfBounds
		}
		if !d.inBounds(p.X-p.R, p.Y-p.R) || !d.inBounds(p.X+p.R, p.Y+p.R) {
			return ErrOutOfBounds
		}
		if p.R == 0 {
			return d.drawPixel(p.X, p.Y, p.C)
		}
		regs := []struct{ reg, val byte }{
			{regDCHR0, byte(p.X & 0xFF)},
			{regDCHR1, byte(p.X >> 8)},
			{regDCVR0, byte(p.Y & 0xFF)},
			{regDCVR1, byte(p.Y >> 8)},
			{regDCRR, byte(p.R)},
		}
		for _, r := range regs {
			if err := d.writeReg(r.reg, r.val); err != nil {
				return err
			}
		}
		if err := d.setDrawColor(p.C); err != nil {
			return err
		}
		cmd := dcrCircleStart
		if p.Filled {
			cmd |= dcrFill
		}
		if err := d.writeReg(regDCR, cmd); err != nil {
			return err
		}
		return d.waitIdle(dcrCircleStart)

	default:
		return fmt.Errorf("ra8875: unsupported primitive %T", p)
	}
}

// DrawPixel sets a single pixel.
func (d *Dev) DrawPixel(x, y int, c color.Color) error {
	return d.DrawPrimitive(Pixel{X: x, Y: y, C: c})
}

// DrawLine draws a line between two points.
func (d *Dev) DrawLine(x0, y0, x1, y1 int, c color.Color) error {
	return d.DrawPrimitive(Line{X0: x0, Y0: y0, X1: x1, Y1: y1, C: c})
}

// DrawRect draws a rectangle between two corners.
func (d *Dev) DrawRect(x0, y0, x1, y1 int, c color.Color, filled bool) error {
	return d.DrawPrimitive(Rect{X0: x0, Y0: y0, X1: x1, Y1: y1, C: c, Filled: filled})
}

// DrawCircle draws a circle of radius r centered at (x, y).
func (d *Dev) DrawCircle(x, y, r int, c color.Color, filled bool) error {
	return d.DrawPrimitive(Circle{X: x, Y: y, R: r, C: c, Filled: filled})
}

// FillScreen fills the whole panel using the hardware rectangle engine.
func (d *Dev) FillScreen(c color.Color) error {
	return d.DrawPrimitive(Rect{
		X1:     d.rect.Dx() - 1,
		Y1:     d.rect.Dy() - 1,
		C:      c,
		Filled: true,
	})
}

// drawPixel positions the memory write cursor and writes one quantized
// color value. No draw command or busy-status cycle is involved.
func (d *Dev) drawPixel(x, y int, c color.Color) error {
	if !d.inBounds(x, y) {
		return ErrOutOfBounds
	}
	if err := d.setCursor(x, y); err != nil {
		return err
	}
	if err := d.writeCmd(regMRWC); err != nil {
		return err
	}
	return d.writeDataBulk(d.pixelBytes(c))
}

// writeLineEndpoints programs the line/rectangle start and end coordinate
// registers.
func (d *Dev) writeLineEndpoints(x0, y0, x1, y1 int) error {
	regs := []struct{ reg, val byte }{
		{regDLHSR0, byte(x0 & 0xFF)},
		{regDLHSR1, byte(x0 >> 8)},
		{regDLVSR0, byte(y0 & 0xFF)},
		{regDLVSR1, byte(y0 >> 8)},
		{regDLHER0, byte(x1 & 0xFF)},
		{regDLHER1, byte(x1 >> 8)},
		{regDLVER0, byte(y1 & 0xFF)},
		{regDLVER1, byte(y1 >> 8)},
	}
	for _, r := range regs {
		if err := d.writeReg(r.reg, r.val); err != nil {
			return err
		}
	}
	return nil
}

// setDrawColor quantizes c to the configured depth and writes the
// foreground color registers, one channel per register.
func (d *Dev) setDrawColor(c color.Color) error {
	var ch [3]byte
	if d.depth == Depth8bpp {
		v := rgb565.RGB332Model.Convert(c).(rgb565.RGB332)
		ch[0] = byte(v>>5) & 0x07
		ch[1] = byte(v>>2) & 0x07
		ch[2] = byte(v) & 0x03
	} else {
		v := rgb565.RGB565Model.Convert(c).(rgb565.RGB565)
		ch[0] = byte(v>>11) & 0x1F
		ch[1] = byte(v>>5) & 0x3F
		ch[2] = byte(v) & 0x1F
	}
	regs := []struct{ reg, val byte }{
		{regFGCR0, ch[0]},
		{regFGCR1, ch[1]},
		{regFGCR2, ch[2]},
	}
	for _, r := range regs {
		if err := d.writeReg(r.reg, r.val); err != nil {
			return err
		}
	}
	return nil
}

// pixelBytes quantizes c to the configured depth in the byte order the
// memory write port expects (high byte first at 16bpp).
func (d *Dev) pixelBytes(c color.Color) []byte {
	if d.depth == Depth8bpp {
		v := rgb565.RGB332Model.Convert(c).(rgb565.RGB332)
		return []byte{byte(v)}
	}
	v := rgb565.RGB565Model.Convert(c).(rgb565.RGB565)
	return []byte{byte(v >> 8), byte(v)}
}

// waitIdle polls the draw engine busy flag until it clears, bounded by
// drawPollBudget reads. When a WAIT line is wired it is sensed instead,
// saving the status-register bus cycles.
func (d *Dev) waitIdle(flag byte) error {
	if d.wait != nil {
		// The chip holds the WAIT line low while the engine runs.
		for i := 0; i < drawPollBudget; i++ {
			if d.wait.Read() == gpio.High {
				return nil
			}
		}
		return ErrTimeout
	}
	for i := 0; i < drawPollBudget; i++ {
		v, err := d.readReg(regDCR)
		if err != nil {
			return err
		}
		if v&flag == 0 {
			return nil
		}
	}
	return ErrTimeout
}

// inBounds reports whether (x, y) is addressable: the chip discards writes
// outside the active window, so coordinates are validated against it rather
// than the full panel.
func (d *Dev) inBounds(x, y int) bool {
	return (image.Point{X: x, Y: y}).In(d.win)
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

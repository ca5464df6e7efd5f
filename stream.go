package ra8875

import (
	"errors"
	"image"
)

// WriteDirection is the memory cursor auto-increment order used while
// streaming pixels.
type WriteDirection byte

const (
	// LeftRightTopDown is the chip's default addressing mode.
	LeftRightTopDown WriteDirection = iota
	RightLeftTopDown
	TopDownLeftRight
	BottomUpLeftRight
)

// SetActiveWindow programs the hardware clipping window. Drawing and memory
// writes outside the window are discarded by the chip, so subsequent
// primitive and stream coordinates are validated against the window and
// rejected with ErrOutOfBounds until it is widened again.
//
// r uses exclusive-max image semantics and must be non-empty and within the
// panel, else ErrOutOfBounds is returned with no bus traffic issued.
func (d *Dev) SetActiveWindow(r image.Rectangle) error {
	if d.halted {
		return errors.New("ra8875: halted")
	}
	if r.Empty() || !r.In(d.rect) {
		return ErrOutOfBounds
	}

	x0, y0 := r.Min.X, r.Min.Y
	x1, y1 := r.Max.X-1, r.Max.Y-1
	regs := []struct{ reg, val byte }{
		{regHSAW0, byte(x0 & 0xFF)},
		{regHSAW1, byte(x0 >> 8)},
		{regVSAW0, byte(y0 & 0xFF)},
		{regVSAW1, byte(y0 >> 8)},
		{regHEAW0, byte(x1 & 0xFF)},
		{regHEAW1, byte(x1 >> 8)},
		{regVEAW0, byte(y1 & 0xFF)},
		{regVEAW1, byte(y1 >> 8)},
	}
	for _, reg := range regs {
		if err := d.writeReg(reg.reg, reg.val); err != nil {
			return err
		}
	}
	d.win = r
	return nil
}

// PixelStream is a scoped handle for bulk pixel writes. It must be closed
// on every exit path: Close restores the chip's default addressing mode so
// that subsequent operations are not corrupted by a leftover stream mode.
type PixelStream struct {
	d      *Dev
	closed bool
}

// BeginPixelStream positions the memory write cursor at (x, y), sets the
// auto-increment direction and opens the memory write port.
//
// The returned stream accepts pre-quantized pixel data via Write. The
// caller should defer Close.
func (d *Dev) BeginPixelStream(x, y int, dir WriteDirection) (*PixelStream, error) {
	if d.halted {
		return nil, errors.New("ra8875: halted")
	}
	if !d.inBounds(x, y) {
		return nil, ErrOutOfBounds
	}

	if err := d.writeReg(regMWCR0, mwcr0GraphicsMode|(byte(dir)<<2)&mwcr0DirMask); err != nil {
		return nil, err
	}
	if err := d.setCursor(x, y); err != nil {
		// Best effort: no handle exists yet to restore the mode via Close.
		_ = d.writeReg(regMWCR0, mwcr0GraphicsMode)
		return nil, err
	}
	if err := d.writeCmd(regMRWC); err != nil {
		_ = d.writeReg(regMWCR0, mwcr0GraphicsMode)
		return nil, err
	}
	return &PixelStream{d: d}, nil
}

// Write streams pre-quantized color values (2 bytes per pixel at 16bpp,
// high byte first) as a single bulk transfer. This is the performance
// path for area fills: the chip only accepts byte-granular transfers and
// per-pixel register selects would dominate the bus otherwise.
func (s *PixelStream) Write(pix []byte) (int, error) {
	if s.closed {
		return 0, errors.New("ra8875: write on closed pixel stream")
	}
	if len(pix) == 0 {
		return 0, nil
	}
	if err := s.d.writeDataBulk(pix); err != nil {
		return 0, err
	}
	return len(pix), nil
}

// Close restores the default addressing mode. It is idempotent.
func (s *PixelStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.d.writeReg(regMWCR0, mwcr0GraphicsMode)
}

// SetScrollWindow defines the region of the panel affected by
// SetScrollOffset.
func (d *Dev) SetScrollWindow(r image.Rectangle) error {
	if d.halted {
		return errors.New("ra8875: halted")
	}
	if r.Empty() || !r.In(d.rect) {
		return ErrOutOfBounds
	}

	x0, y0 := r.Min.X, r.Min.Y
	x1, y1 := r.Max.X-1, r.Max.Y-1
	regs := []struct{ reg, val byte }{
		{regHSSW0, byte(x0 & 0xFF)},
		{regHSSW1, byte(x0 >> 8)},
		{regVSSW0, byte(y0 & 0xFF)},
		{regVSSW1, byte(y0 >> 8)},
		{regHESW0, byte(x1 & 0xFF)},
		{regHESW1, byte(x1 >> 8)},
		{regVESW0, byte(y1 & 0xFF)},
		{regVESW1, byte(y1 >> 8)},
	}
	for _, reg := range regs {
		if err := d.writeReg(reg.reg, reg.val); err != nil {
			return err
		}
	}
	return nil
}

// SetScrollOffset shifts the scroll window content by (x, y) pixels.
func (d *Dev) SetScrollOffset(x, y int) error {
	if d.halted {
		return errors.New("ra8875: halted")
	}
	if x < 0 || x >= d.rect.Dx() || y < 0 || y >= d.rect.Dy() {
		return ErrOutOfBounds
	}

	regs := []struct{ reg, val byte }{
		{regHOFS0, byte(x & 0xFF)},
		{regHOFS1, byte(x >> 8)},
		{regVOFS0, byte(y & 0xFF)},
		{regVOFS1, byte(y >> 8)},
	}
	for _, reg := range regs {
		if err := d.writeReg(reg.reg, reg.val); err != nil {
			return err
		}
	}
	return nil
}

package ra8875

import (
	"errors"
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ra8875/rgb565"
)

var _ display.Drawer = &Dev{}

// Draw draws an image onto the display.
// The dst rectangle specifies the destination region on the display. The
// src image is read starting at sp.
//
// Uniform sources are routed to the hardware filled-rectangle engine; full
// frame *rgb565.Image sources are streamed without conversion. Everything
// else is quantized to the configured color depth by channel truncation
// and streamed through a scoped active window, amortizing the per-pixel
// register-select overhead.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errors.New("ra8875: halted")
	}

	// Clip to display bounds, shifting the source point along with the
	// clipped origin so the visible part keeps its alignment.
	clipped := dst.Intersect(d.rect)
	if clipped.Empty() {
		return nil
	}
	sp = sp.Add(clipped.Min.Sub(dst.Min))
	dst = clipped

	if u, ok := src.(*image.Uniform); ok {
		return d.DrawPrimitive(Rect{
			X0:     dst.Min.X,
			Y0:     dst.Min.Y,
			X1:     dst.Max.X - 1,
			Y1:     dst.Max.Y - 1,
			C:      u.C,
			Filled: true,
		})
	}

	// Fast path: a full-frame native image streams as-is.
	if img, ok := src.(*rgb565.Image); ok && d.depth == Depth16bpp {
		zeroPoint := image.Point{}
		if dst == d.rect && sp == zeroPoint && img.Rect == d.rect {
			return d.writeRegion(dst, img.Pix)
		}
	}

	return d.writeRegion(dst, d.convertRegion(dst, src, sp))
}

// SetPixel sets a single pixel's color.
func (d *Dev) SetPixel(x, y int, c color.Color) error {
	return d.DrawPrimitive(Pixel{X: x, Y: y, C: c})
}

// FillRect fills a rectangular region with a single color using the
// hardware rectangle engine.
func (d *Dev) FillRect(r image.Rectangle, c color.Color) error {
	if r.Empty() {
		return ErrOutOfBounds
	}
	return d.DrawPrimitive(Rect{
		X0:     r.Min.X,
		Y0:     r.Min.Y,
		X1:     r.Max.X - 1,
		Y1:     r.Max.Y - 1,
		C:      c,
		Filled: true,
	})
}

// convertRegion quantizes the source pixels covering dst into the configured
// depth, row-major, in stream byte order.
func (d *Dev) convertRegion(dst image.Rectangle, src image.Image, sp image.Point) []byte {
	bpp := 2
	if d.depth == Depth8bpp {
		bpp = 1
	}
	buf := make([]byte, 0, dst.Dx()*dst.Dy()*bpp)
	for y := 0; y < dst.Dy(); y++ {
		for x := 0; x < dst.Dx(); x++ {
			c := src.At(sp.X+x, sp.Y+y)
			if d.depth == Depth8bpp {
				v := rgb565.RGB332Model.Convert(c).(rgb565.RGB332)
				buf = append(buf, byte(v))
			} else {
				v := rgb565.RGB565Model.Convert(c).(rgb565.RGB565)
				buf = append(buf, byte(v>>8), byte(v))
			}
		}
	}
	return buf
}

// writeRegion scopes the active window to r, streams pix into it and
// restores the full-panel window afterwards, on error paths included.
func (d *Dev) writeRegion(r image.Rectangle, pix []byte) error {
	if err := d.SetActiveWindow(r); err != nil {
		return err
	}
	s, err := d.BeginPixelStream(r.Min.X, r.Min.Y, LeftRightTopDown)
	if err != nil {
		// Best effort: the window was already narrowed.
		_ = d.SetActiveWindow(d.rect)
		return err
	}
	_, werr := s.Write(pix)
	cerr := s.Close()
	rerr := d.SetActiveWindow(d.rect)
	if werr != nil {
		return werr
	}
	if cerr != nil {
		return cerr
	}
	return rerr
}

package ra8875

import (
	"image"
	"image/color"
	"testing"

	"periph.io/x/conn/v3/conntest"
	"periph.io/x/devices/v3/ra8875/rgb565"
)

// windowOps returns the expected active window register writes for r.
func windowOps(r image.Rectangle) []conntest.IO {
	x0, y0 := r.Min.X, r.Min.Y
	x1, y1 := r.Max.X-1, r.Max.Y-1
	var ops []conntest.IO
	ops = append(ops, regWriteOps(regHSAW0, byte(x0&0xFF))...)
	ops = append(ops, regWriteOps(regHSAW1, byte(x0>>8))...)
	ops = append(ops, regWriteOps(regVSAW0, byte(y0&0xFF))...)
	ops = append(ops, regWriteOps(regVSAW1, byte(y0>>8))...)
	ops = append(ops, regWriteOps(regHEAW0, byte(x1&0xFF))...)
	ops = append(ops, regWriteOps(regHEAW1, byte(x1>>8))...)
	ops = append(ops, regWriteOps(regVEAW0, byte(y1&0xFF))...)
	ops = append(ops, regWriteOps(regVEAW1, byte(y1>>8))...)
	return ops
}

// streamOps returns the expected traffic of one scoped region stream.
func streamOps(d *Dev, r image.Rectangle, pix []byte) []conntest.IO {
	var ops []conntest.IO
	ops = append(ops, windowOps(r)...)
	ops = append(ops, regWriteOps(regMWCR0, mwcr0GraphicsMode)...)
	ops = append(ops, regWriteOps(regCURH0, byte(r.Min.X&0xFF))...)
	ops = append(ops, regWriteOps(regCURH1, byte(r.Min.X>>8))...)
	ops = append(ops, regWriteOps(regCURV0, byte(r.Min.Y&0xFF))...)
	ops = append(ops, regWriteOps(regCURV1, byte(r.Min.Y>>8))...)
	ops = append(ops, conntest.IO{W: []byte{cmdWrite, regMRWC}})
	ops = append(ops, conntest.IO{W: append([]byte{dataWrite}, pix...)})
	ops = append(ops, regWriteOps(regMWCR0, mwcr0GraphicsMode)...)
	ops = append(ops, windowOps(d.rect)...)
	return ops
}

func TestDrawUniform(t *testing.T) {
	// Uniform sources take the hardware filled-rectangle path.
	dst := image.Rect(10, 10, 20, 20)
	var ops []conntest.IO
	ops = append(ops, endpointOps(10, 10, 19, 19)...)
	ops = append(ops, fgColorOps(rgb565.Red)...)
	ops = append(ops, regWriteOps(regDCR, dcrLineRectStart|dcrDrawRect|dcrFill)...)
	ops = append(ops, regReadOps(regDCR, 0x00)...)

	pb := &conntest.Playback{Ops: ops, DontPanic: true}
	d := testDev(pb)

	if err := d.Draw(dst, image.NewUniform(rgb565.Red), image.Point{}); err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestDrawFullFrameNative(t *testing.T) {
	// A full-frame rgb565.Image streams its backing buffer untouched.
	bounds := image.Rect(0, 0, 8, 2)
	img := rgb565.NewImage(bounds)
	img.SetRGB565(0, 0, rgb565.Red)
	img.SetRGB565(7, 1, rgb565.Blue)

	d := &Dev{rect: bounds, win: bounds, depth: Depth16bpp}
	pb := &conntest.Playback{Ops: streamOps(d, bounds, img.Pix), DontPanic: true}
	d.c = pb

	if err := d.Draw(bounds, img, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestDrawConvertsRegion(t *testing.T) {
	// A non-native source is quantized row-major over the destination.
	bounds := image.Rect(0, 0, 8, 4)
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{R: 0xFF, A: 0xFF})
	src.Set(1, 0, color.RGBA{G: 0xFF, A: 0xFF})
	src.Set(0, 1, color.RGBA{B: 0xFF, A: 0xFF})
	src.Set(1, 1, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})

	dst := image.Rect(2, 1, 4, 3)
	pix := []byte{
		0xF8, 0x00, 0x07, 0xE0,
		0x00, 0x1F, 0xFF, 0xFF,
	}

	d := &Dev{rect: bounds, win: bounds, depth: Depth16bpp}
	pb := &conntest.Playback{Ops: streamOps(d, dst, pix), DontPanic: true}
	d.c = pb

	if err := d.Draw(dst, src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestDrawClippedKeepsSourceAlignment(t *testing.T) {
	// When the destination sticks out past the panel edge, the source point
	// shifts along with the clipped origin.
	bounds := image.Rect(0, 0, 8, 4)
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	src.Set(2, 0, color.RGBA{R: 0xFF, A: 0xFF})
	src.Set(3, 0, color.RGBA{G: 0xFF, A: 0xFF})
	src.Set(2, 1, color.RGBA{B: 0xFF, A: 0xFF})
	src.Set(3, 1, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})

	pix := []byte{
		0xF8, 0x00, 0x07, 0xE0,
		0x00, 0x1F, 0xFF, 0xFF,
	}

	d := &Dev{rect: bounds, win: bounds, depth: Depth16bpp}
	pb := &conntest.Playback{Ops: streamOps(d, image.Rect(0, 0, 2, 2), pix), DontPanic: true}
	d.c = pb

	if err := d.Draw(image.Rect(-2, 0, 2, 2), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestDrawClipsToBounds(t *testing.T) {
	rec := &conntest.Record{}
	d := &Dev{c: rec, rect: image.Rect(0, 0, 480, 272), win: image.Rect(0, 0, 480, 272), depth: Depth16bpp}

	// A destination entirely off-panel is a no-op.
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if err := d.Draw(image.Rect(500, 300, 510, 310), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if len(rec.Ops) != 0 {
		t.Errorf("recorded %d bus transactions, want 0", len(rec.Ops))
	}
}

func TestSetPixelOutOfBounds(t *testing.T) {
	rec := &conntest.Record{}
	d := &Dev{c: rec, rect: image.Rect(0, 0, 480, 272), win: image.Rect(0, 0, 480, 272), depth: Depth16bpp}

	if err := d.SetPixel(480, 272, rgb565.Red); err == nil {
		t.Fatal("SetPixel outside the panel should fail")
	}
	if len(rec.Ops) != 0 {
		t.Errorf("recorded %d bus transactions, want 0", len(rec.Ops))
	}
}

func TestFillRect(t *testing.T) {
	var ops []conntest.IO
	ops = append(ops, endpointOps(0, 0, 99, 49)...)
	ops = append(ops, fgColorOps(rgb565.Yellow)...)
	ops = append(ops, regWriteOps(regDCR, dcrLineRectStart|dcrDrawRect|dcrFill)...)
	ops = append(ops, regReadOps(regDCR, 0x00)...)

	pb := &conntest.Playback{Ops: ops, DontPanic: true}
	d := testDev(pb)

	if err := d.FillRect(image.Rect(0, 0, 100, 50), rgb565.Yellow); err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

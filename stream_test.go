package ra8875

import (
	"errors"
	"image"
	"reflect"
	"testing"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/conntest"
)

// failingConn fails the nth bus transaction and records the writes around it.
type failingConn struct {
	failAt int
	n      int
	ops    []conntest.IO
}

func (f *failingConn) String() string { return "failingConn" }

func (f *failingConn) Duplex() conn.Duplex { return conn.Full }

func (f *failingConn) Tx(w, r []byte) error {
	f.n++
	if f.n == f.failAt {
		return errors.New("bus failure")
	}
	f.ops = append(f.ops, conntest.IO{W: append([]byte(nil), w...)})
	return nil
}

func TestSetActiveWindow(t *testing.T) {
	var ops []conntest.IO
	ops = append(ops, regWriteOps(regHSAW0, 10)...)
	ops = append(ops, regWriteOps(regHSAW1, 0)...)
	ops = append(ops, regWriteOps(regVSAW0, 20)...)
	ops = append(ops, regWriteOps(regVSAW1, 0)...)
	ops = append(ops, regWriteOps(regHEAW0, 109)...)
	ops = append(ops, regWriteOps(regHEAW1, 0)...)
	ops = append(ops, regWriteOps(regVEAW0, 119)...)
	ops = append(ops, regWriteOps(regVEAW1, 0)...)

	pb := &conntest.Playback{Ops: ops, DontPanic: true}
	d := testDev(pb)

	if err := d.SetActiveWindow(image.Rect(10, 20, 110, 120)); err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSetActiveWindowIdempotent(t *testing.T) {
	rec := &conntest.Record{}
	d := &Dev{c: rec, rect: image.Rect(0, 0, 480, 272), win: image.Rect(0, 0, 480, 272), depth: Depth16bpp}

	r := image.Rect(0, 0, 480, 272)
	if err := d.SetActiveWindow(r); err != nil {
		t.Fatal(err)
	}
	n := len(rec.Ops)
	if err := d.SetActiveWindow(r); err != nil {
		t.Fatal(err)
	}
	if len(rec.Ops) != 2*n {
		t.Fatalf("second call recorded %d transactions, want %d", len(rec.Ops)-n, n)
	}
	// Identical bounds produce identical register-write sequences.
	if !reflect.DeepEqual(rec.Ops[:n], rec.Ops[n:]) {
		t.Errorf("register sequences differ:\nfirst:  %v\nsecond: %v", rec.Ops[:n], rec.Ops[n:])
	}
}

func TestSetActiveWindowOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		r    image.Rectangle
	}{
		{"empty", image.Rectangle{}},
		{"inverted", image.Rect(100, 100, 100, 100)},
		{"past right edge", image.Rect(0, 0, 481, 272)},
		{"past bottom edge", image.Rect(0, 0, 480, 273)},
		{"negative origin", image.Rect(-1, 0, 100, 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &conntest.Record{}
			d := &Dev{c: rec, rect: image.Rect(0, 0, 480, 272), win: image.Rect(0, 0, 480, 272), depth: Depth16bpp}
			if err := d.SetActiveWindow(tt.r); !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("SetActiveWindow() = %v, want ErrOutOfBounds", err)
			}
			if len(rec.Ops) != 0 {
				t.Errorf("recorded %d bus transactions, want 0", len(rec.Ops))
			}
		})
	}
}

func TestPixelStream(t *testing.T) {
	pix := []byte{0xF8, 0x00, 0x07, 0xE0, 0x00, 0x1F}

	var ops []conntest.IO
	ops = append(ops, regWriteOps(regMWCR0, mwcr0GraphicsMode|byte(TopDownLeftRight)<<2)...)
	ops = append(ops, regWriteOps(regCURH0, 5)...)
	ops = append(ops, regWriteOps(regCURH1, 0)...)
	ops = append(ops, regWriteOps(regCURV0, 6)...)
	ops = append(ops, regWriteOps(regCURV1, 0)...)
	ops = append(ops, conntest.IO{W: []byte{cmdWrite, regMRWC}})
	// The whole pixel run goes out as one bulk transfer.
	ops = append(ops, conntest.IO{W: append([]byte{dataWrite}, pix...)})
	// Close restores the default addressing mode.
	ops = append(ops, regWriteOps(regMWCR0, mwcr0GraphicsMode)...)

	pb := &conntest.Playback{Ops: ops, DontPanic: true}
	d := testDev(pb)

	s, err := d.BeginPixelStream(5, 6, TopDownLeftRight)
	if err != nil {
		t.Fatal(err)
	}
	n, err := s.Write(pix)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(pix) {
		t.Errorf("Write() = %d, want %d", n, len(pix))
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// Close is idempotent and a closed stream rejects writes.
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Write(pix); err == nil {
		t.Error("Write on closed stream should fail")
	}

	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestBeginPixelStreamOutOfBounds(t *testing.T) {
	rec := &conntest.Record{}
	d := &Dev{c: rec, rect: image.Rect(0, 0, 480, 272), win: image.Rect(0, 0, 480, 272), depth: Depth16bpp}
	if _, err := d.BeginPixelStream(480, 0, LeftRightTopDown); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("BeginPixelStream() = %v, want ErrOutOfBounds", err)
	}
	if len(rec.Ops) != 0 {
		t.Errorf("recorded %d bus transactions, want 0", len(rec.Ops))
	}
}

func TestBeginPixelStreamRestoresModeOnFailure(t *testing.T) {
	// A failure after the write direction was programmed leaves no handle
	// to close, so the default addressing mode is restored right away.
	c := &failingConn{failAt: 3} // first cursor register select
	d := &Dev{c: c, rect: image.Rect(0, 0, 480, 272), win: image.Rect(0, 0, 480, 272), depth: Depth16bpp}

	if _, err := d.BeginPixelStream(5, 6, TopDownLeftRight); err == nil {
		t.Fatal("BeginPixelStream should fail on a bus error")
	}

	want := regWriteOps(regMWCR0, mwcr0GraphicsMode)
	if len(c.ops) < len(want) {
		t.Fatalf("recorded %d transactions, want at least %d", len(c.ops), len(want))
	}
	got := c.ops[len(c.ops)-len(want):]
	if !reflect.DeepEqual(got, want) {
		t.Errorf("last transactions = %v, want default mode restore %v", got, want)
	}
}

func TestSetScrollWindow(t *testing.T) {
	var ops []conntest.IO
	ops = append(ops, regWriteOps(regHSSW0, 0)...)
	ops = append(ops, regWriteOps(regHSSW1, 0)...)
	ops = append(ops, regWriteOps(regVSSW0, 0)...)
	ops = append(ops, regWriteOps(regVSSW1, 0)...)
	ops = append(ops, regWriteOps(regHESW0, 0xDF)...)
	ops = append(ops, regWriteOps(regHESW1, 0x01)...)
	ops = append(ops, regWriteOps(regVESW0, 0x0F)...)
	ops = append(ops, regWriteOps(regVESW1, 0x01)...)

	pb := &conntest.Playback{Ops: ops, DontPanic: true}
	d := testDev(pb)

	if err := d.SetScrollWindow(d.Bounds()); err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSetScrollOffset(t *testing.T) {
	var ops []conntest.IO
	ops = append(ops, regWriteOps(regHOFS0, 0x2C)...)
	ops = append(ops, regWriteOps(regHOFS1, 0x01)...)
	ops = append(ops, regWriteOps(regVOFS0, 16)...)
	ops = append(ops, regWriteOps(regVOFS1, 0)...)

	pb := &conntest.Playback{Ops: ops, DontPanic: true}
	d := testDev(pb)

	if err := d.SetScrollOffset(300, 16); err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}

	if err := d.SetScrollOffset(480, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("SetScrollOffset(480, 0) = %v, want ErrOutOfBounds", err)
	}
}

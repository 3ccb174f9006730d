package canvas

import (
	"errors"
	"image/color"
	"image/draw"
	"testing"
)

var _ draw.Image = (*Canvas)(nil)

func TestNew(t *testing.T) {
	fill := color.NRGBA{R: 121, G: 85, B: 72, A: 255}
	c, err := New(8, 4, fill)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got, want := len(c.Pix()), 8*4*4; got != want {
		t.Fatalf("len(Pix()) = %d, want %d", got, want)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			if got := c.RGBAAt(x, y); got != fill {
				t.Fatalf("RGBAAt(%d,%d) = %v, want %v", x, y, got, fill)
			}
		}
	}
}

func TestNewInvalidSize(t *testing.T) {
	tests := []struct{ w, h int }{
		{0, 10}, {10, 0}, {-1, 5}, {5, -3}, {0, 0},
	}
	for _, tt := range tests {
		c, err := New(tt.w, tt.h, Transparent)
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("New(%d, %d) error = %v, want ErrInvalidSize", tt.w, tt.h, err)
		}
		if c != nil {
			t.Errorf("New(%d, %d) returned non-nil canvas", tt.w, tt.h)
		}
	}
}

func TestSetRGBAOutOfBounds(t *testing.T) {
	c, _ := New(10, 10, color.NRGBA{A: 255})
	orig := append([]uint8(nil), c.Pix()...)

	for _, p := range []struct{ x, y int }{
		{-1, 5}, {10, 5}, {5, -1}, {5, 10}, {-100, -100}, {100, 100},
	} {
		c.SetRGBA(p.x, p.y, color.NRGBA{R: 255, A: 255})
		c.Blend(p.x, p.y, color.NRGBA{R: 255, A: 255})
	}

	for i, v := range c.Pix() {
		if v != orig[i] {
			t.Fatalf("out-of-bounds write modified index %d: got %d, want %d", i, v, orig[i])
		}
	}
	if got := c.RGBAAt(-1, 0); got != Transparent {
		t.Errorf("RGBAAt out of bounds = %v, want transparent", got)
	}
}

func TestAlphaBlend(t *testing.T) {
	tests := []struct {
		name    string
		old, in color.NRGBA
		want    color.NRGBA
	}{
		{
			name: "empty destination takes incoming verbatim",
			old:  color.NRGBA{R: 10, G: 20, B: 30, A: 0},
			in:   color.NRGBA{R: 40, G: 30, B: 25, A: 77},
			want: color.NRGBA{R: 40, G: 30, B: 25, A: 77},
		},
		{
			name: "opaque incoming replaces color, keeps alpha",
			old:  color.NRGBA{R: 10, G: 20, B: 30, A: 200},
			in:   color.NRGBA{R: 250, G: 150, B: 50, A: 255},
			want: color.NRGBA{R: 250, G: 150, B: 50, A: 200},
		},
		{
			name: "transparent incoming is a no-op",
			old:  color.NRGBA{R: 10, G: 20, B: 30, A: 255},
			in:   color.NRGBA{R: 250, G: 150, B: 50, A: 0},
			want: color.NRGBA{R: 10, G: 20, B: 30, A: 255},
		},
		{
			name: "half blend truncates",
			old:  color.NRGBA{R: 0, G: 100, B: 255, A: 255},
			in:   color.NRGBA{R: 255, G: 0, B: 0, A: 51}, // a = 0.2
			want: color.NRGBA{R: 51, G: 80, B: 204, A: 255},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AlphaBlend(tt.old, tt.in); got != tt.want {
				t.Errorf("AlphaBlend(%v, %v) = %v, want %v", tt.old, tt.in, got, tt.want)
			}
		})
	}
}

func TestSetConvertsPremultiplied(t *testing.T) {
	c, _ := New(2, 2, Transparent)
	// color.RGBA is premultiplied: 50% alpha red.
	c.Set(1, 1, color.RGBA{R: 128, A: 128})
	got := c.RGBAAt(1, 1)
	if got.A != 128 || got.R != 255 {
		t.Errorf("Set(premultiplied) stored %v, want R=255 A=128", got)
	}
}

func TestFillVerticalGradient(t *testing.T) {
	c, _ := New(3, 10, Transparent)
	top := color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	bottom := color.NRGBA{R: 100, G: 200, B: 50, A: 255}
	c.FillVerticalGradient(top, bottom)

	if got := c.RGBAAt(0, 0); got != top {
		t.Errorf("first row = %v, want %v", got, top)
	}
	if got, want := c.RGBAAt(2, 5), (color.NRGBA{R: 50, G: 100, B: 25, A: 255}); got != want {
		t.Errorf("middle row = %v, want %v", got, want)
	}
	prev := -1
	for y := 0; y < 10; y++ {
		g := int(c.RGBAAt(1, y).G)
		if g < prev {
			t.Fatalf("gradient not monotonic at row %d: %d < %d", y, g, prev)
		}
		prev = g
	}
}

func TestClone(t *testing.T) {
	c, _ := New(4, 4, color.NRGBA{R: 1, A: 255})
	d := c.Clone()
	d.SetRGBA(0, 0, color.NRGBA{R: 9, A: 255})
	if c.RGBAAt(0, 0).R != 1 {
		t.Error("Clone shares the pixel buffer with the original")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#795548", color.NRGBA{R: 0x79, G: 0x55, B: 0x48, A: 255}, false},
		{"f5ebdc", color.NRGBA{R: 245, G: 235, B: 220, A: 255}, false},
		{"#00000050", color.NRGBA{A: 0x50}, false},
		{"#12345", color.NRGBA{}, true},
		{"#zz0000", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMustParseHexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseHex(bad) did not panic")
		}
	}()
	MustParseHex("nope")
}

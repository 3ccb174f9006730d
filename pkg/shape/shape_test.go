package shape

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/xob0t/stonegen/pkg/canvas"
)

var cream = color.RGBA{R: 245, G: 235, B: 220, A: 255}

// grid returns half-pixel sample points covering [lo, hi].
func grid(lo, hi float64) []float64 {
	var pts []float64
	for v := lo; v <= hi; v += 0.5 {
		pts = append(pts, v)
	}
	return pts
}

func TestInsideRoundedRectZeroRadiusIsRect(t *testing.T) {
	const cx, cy, w, h = 10.0, 10.0, 8.0, 6.0
	for _, px := range grid(0, 20) {
		for _, py := range grid(0, 20) {
			want := px >= cx-w/2 && px <= cx+w/2 && py >= cy-h/2 && py <= cy+h/2
			if got := InsideRoundedRect(px, py, cx, cy, w, h, 0); got != want {
				t.Fatalf("InsideRoundedRect(%v, %v) radius 0 = %v, want %v", px, py, got, want)
			}
		}
	}
}

func TestInsideRoundedRectFullRadiusIsCircle(t *testing.T) {
	const cx, cy, r = 0.0, 0.0, 5.0
	for _, px := range grid(-7, 7) {
		for _, py := range grid(-7, 7) {
			want := px*px+py*py <= r*r
			if got := InsideRoundedRect(px, py, cx, cy, 2*r, 2*r, r); got != want {
				t.Fatalf("InsideRoundedRect(%v, %v) w=h=2r = %v, want %v", px, py, got, want)
			}
		}
	}
}

func TestInsideRoundedRectReflectionSymmetry(t *testing.T) {
	const cx, cy, w, h, r = 20.0, 15.0, 12.0, 7.0, 2.5
	for _, px := range grid(10, 30) {
		for _, py := range grid(8, 22) {
			base := InsideRoundedRect(px, py, cx, cy, w, h, r)
			if got := InsideRoundedRect(2*cx-px, py, cx, cy, w, h, r); got != base {
				t.Fatalf("x-reflection of (%v, %v): %v, want %v", px, py, got, base)
			}
			if got := InsideRoundedRect(px, 2*cy-py, cx, cy, w, h, r); got != base {
				t.Fatalf("y-reflection of (%v, %v): %v, want %v", px, py, got, base)
			}
		}
	}
}

func TestInsideRoundedRectCorners(t *testing.T) {
	// 20x10 centered at the origin, radius 3: corner centers at (±7, ±2).
	tests := []struct {
		x, y float64
		want bool
	}{
		{-10, 0, true},      // straight left edge
		{0, -5, true},       // straight top edge
		{-7, -5, true},      // where the top edge meets the arc
		{-10, -5, false},    // clipped corner
		{-9.2, -4.2, false}, // just outside the arc
		{-8, -3, true},      // inside the arc
		{10.5, 0, false},
	}
	for _, tt := range tests {
		if got := InsideRoundedRect(tt.x, tt.y, 0, 0, 20, 10, 3); got != tt.want {
			t.Errorf("InsideRoundedRect(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDimensions(t *testing.T) {
	tests := []struct {
		o       Orientation
		w, h, r float64
	}{
		{Flat, 20, 12, 3},
		{Standing, 20, 28, 5},
		{Capstone, 16, 16, 8},
	}
	for _, tt := range tests {
		w, h, r := Dimensions(20, tt.o)
		if w != tt.w || h != tt.h || r != tt.r {
			t.Errorf("Dimensions(20, %v) = (%v, %v, %v), want (%v, %v, %v)", tt.o, w, h, r, tt.w, tt.h, tt.r)
		}
	}
	if Standing.String() != "standing" || Orientation(9).String() != "Orientation(9)" {
		t.Errorf("unexpected Orientation.String() output")
	}
}

func TestDrawStoneInvalidSize(t *testing.T) {
	c, _ := canvas.New(16, 16, canvas.Transparent)
	for _, size := range []float64{0, -4} {
		err := DrawStone(c, Stone{X: 8, Y: 8, Size: size, Color: cream})
		if !errors.Is(err, ErrInvalidStone) {
			t.Errorf("DrawStone(size %v) error = %v, want ErrInvalidStone", size, err)
		}
	}
	for i, v := range c.Pix() {
		if v != 0 {
			t.Fatalf("rejected stone touched pixel byte %d", i)
		}
	}
}

func TestDrawStoneFootprint(t *testing.T) {
	c, _ := canvas.New(64, 64, canvas.Transparent)
	s := Stone{X: 32, Y: 32, Size: 20, Color: cream, Orientation: Flat}
	if err := DrawStone(c, s); err != nil {
		t.Fatalf("DrawStone() error = %v", err)
	}

	w, h, r := Dimensions(s.Size, s.Orientation)
	bounds := Bounds(s)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			a := c.RGBAAt(x, y).A
			if !(image.Point{X: x, Y: y}).In(bounds) {
				if a != 0 {
					t.Fatalf("pixel (%d,%d) outside %v has alpha %d", x, y, bounds, a)
				}
				continue
			}
			fx, fy := float64(x), float64(y)
			inBody := InsideRoundedRect(fx, fy, s.X, s.Y, w, h, r)
			inShadow := InsideRoundedRect(fx, fy, s.X+ShadowOffset, s.Y+ShadowOffset, w, h, r)
			if !inBody && !inShadow && a != 0 {
				t.Fatalf("pixel (%d,%d) outside both masks has alpha %d", x, y, a)
			}
		}
	}
}

func TestDrawStoneColors(t *testing.T) {
	c, _ := canvas.New(64, 64, canvas.Transparent)
	if err := DrawStone(c, Stone{X: 32, Y: 32, Size: 20, Color: cream}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"body center shaded", 32, 32, color.NRGBA{R: 226, G: 217, B: 203, A: 255}},
		{"border at left edge", 22, 32, color.NRGBA{R: 122, G: 117, B: 110, A: 255}},
		{"shadow on transparency", 43, 36, ShadowOnEmpty},
	}
	for _, tt := range tests {
		if got := c.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: RGBAAt(%d,%d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDrawStoneShadowBlendsOverBackground(t *testing.T) {
	bg := color.NRGBA{R: 121, G: 85, B: 72, A: 255}
	c, _ := canvas.New(64, 64, bg)
	if err := DrawStone(c, Stone{X: 32, Y: 32, Size: 20, Color: cream}); err != nil {
		t.Fatal(err)
	}
	want := color.NRGBA{R: 96, G: 68, B: 57, A: 255}
	if got := c.RGBAAt(43, 36); got != want {
		t.Errorf("shadow over background = %v, want %v", got, want)
	}
	if got := c.RGBAAt(2, 2); got != bg {
		t.Errorf("untouched background = %v, want %v", got, bg)
	}
}

func TestShadowOnTransparencyStaysVisible(t *testing.T) {
	c, _ := canvas.New(64, 64, canvas.Transparent)
	// Shadow-only pixel of the first stone: right of its body, inside the
	// offset shadow.
	if err := DrawStone(c, Stone{X: 20, Y: 20, Size: 20, Color: cream}); err != nil {
		t.Fatal(err)
	}
	if got := c.RGBAAt(32, 28); got != ShadowOnEmpty {
		t.Fatalf("shadow on empty pixel = %v, want %v", got, ShadowOnEmpty)
	}

	// The second stone's shadow covers (32, 28) but its body does not, so the
	// existing shadow is blended and keeps its alpha.
	if err := DrawStone(c, Stone{X: 32, Y: 19, Size: 20, Color: cream}); err != nil {
		t.Fatal(err)
	}
	want := canvas.AlphaBlend(ShadowOnEmpty, ShadowColor)
	if got := c.RGBAAt(32, 28); got != want {
		t.Errorf("overlapping shadow = %v, want %v", got, want)
	}
	if want.A != 180 {
		t.Errorf("blended shadow alpha = %d, want 180", want.A)
	}
}

func TestDrawStoneClipsAtEdges(t *testing.T) {
	c, _ := canvas.New(16, 16, canvas.Transparent)
	// Mostly off-canvas; must not panic.
	for _, o := range []Orientation{Flat, Standing, Capstone} {
		if err := DrawStone(c, Stone{X: -2, Y: 15, Size: 12, Color: cream, Orientation: o}); err != nil {
			t.Fatalf("DrawStone(%v) error = %v", o, err)
		}
	}
}

func TestFillRoundedRect(t *testing.T) {
	bg := color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	c, _ := canvas.New(20, 20, bg)
	FillRoundedRect(c, 10, 10, 10, 10, 0, color.NRGBA{A: 255})

	if got := c.RGBAAt(10, 10); got != (color.NRGBA{A: 255}) {
		t.Errorf("inside = %v, want opaque black", got)
	}
	if got := c.RGBAAt(5, 5); got != (color.NRGBA{A: 255}) {
		t.Errorf("corner of zero-radius rect = %v, want opaque black", got)
	}
	if got := c.RGBAAt(4, 10); got != bg {
		t.Errorf("outside = %v, want background", got)
	}
}

// Package shape rasterizes stone pieces onto a canvas.
package shape

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/xob0t/stonegen/pkg/canvas"
)

// ErrInvalidStone is returned for stones with a non-positive size.
var ErrInvalidStone = errors.New("shape: invalid stone")

const (
	// ShadowOffset is the shadow displacement in pixels along both axes.
	ShadowOffset = 4
	// BorderWidth is the ring thickness in pixels.
	BorderWidth = 3
)

// ShadowColor is blended under every stone where something is already
// painted. Alpha 77 blends at roughly 30%.
var ShadowColor = color.NRGBA{R: 40, G: 30, B: 25, A: 77}

// ShadowOnEmpty is written where the shadow lands on a transparent pixel, so
// stones on transparent layers keep a visible shadow.
var ShadowOnEmpty = color.NRGBA{R: 40, G: 30, B: 25, A: 180}

// Orientation selects a stone's silhouette.
type Orientation int

const (
	Flat Orientation = iota
	Standing
	Capstone
)

func (o Orientation) String() string {
	switch o {
	case Flat:
		return "flat"
	case Standing:
		return "standing"
	case Capstone:
		return "capstone"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// Stone describes one piece to draw, centered at (X, Y).
type Stone struct {
	X, Y        float64
	Size        float64
	Color       color.RGBA
	Orientation Orientation
}

// Dimensions returns the body width, height and corner radius for a stone of
// the given size.
func Dimensions(size float64, o Orientation) (w, h, r float64) {
	switch o {
	case Standing:
		w, h = size, size*1.4
	case Capstone:
		w = size * 0.8
		return w, w, w / 2
	default:
		w, h = size, size*0.6
	}
	return w, h, math.Min(w, h) * 0.25
}

// Bounds returns the pixel rectangle any pass of DrawStone may touch.
func Bounds(s Stone) image.Rectangle {
	w, h, _ := Dimensions(s.Size, s.Orientation)
	return image.Rect(
		int(s.X-w/2-BorderWidth), int(s.Y-h/2-BorderWidth),
		int(s.X+w/2+ShadowOffset), int(s.Y+h/2+ShadowOffset),
	)
}

// InsideRoundedRect reports whether (px, py) lies in the rounded rectangle
// centered at (cx, cy). Corner arcs only apply inside their own quadrant, so
// points on a straight edge near a corner stay inside.
func InsideRoundedRect(px, py, cx, cy, width, height, radius float64) bool {
	left := cx - width/2
	right := cx + width/2
	top := cy - height/2
	bottom := cy + height/2

	if left+radius <= px && px <= right-radius && top <= py && py <= bottom {
		return true
	}
	if left <= px && px <= right && top+radius <= py && py <= bottom-radius {
		return true
	}

	var kx, ky float64
	switch {
	case px < left+radius:
		kx = left + radius
	case px > right-radius:
		kx = right - radius
	default:
		return false
	}
	switch {
	case py < top+radius:
		ky = top + radius
	case py > bottom-radius:
		ky = bottom - radius
	default:
		return false
	}
	dx := px - kx
	dy := py - ky
	return dx*dx+dy*dy <= radius*radius
}

// DrawStone paints the shadow, the shaded body and the border ring, in that
// order. Each pass only visits its own bounding box.
func DrawStone(c *canvas.Canvas, s Stone) error {
	if !(s.Size > 0) || math.IsInf(s.Size, 0) {
		return fmt.Errorf("%w: size %v", ErrInvalidStone, s.Size)
	}
	w, h, r := Dimensions(s.Size, s.Orientation)

	drawShadow(c, s.X+ShadowOffset, s.Y+ShadowOffset, w, h, r)
	drawBody(c, s.X, s.Y, w, h, r, s.Color)
	drawBorder(c, s.X, s.Y, w, h, r, s.Color)
	return nil
}

func drawShadow(c *canvas.Canvas, cx, cy, w, h, r float64) {
	for py := int(cy - h/2); py < int(cy+h/2); py++ {
		for px := int(cx - w/2); px < int(cx+w/2); px++ {
			if !InsideRoundedRect(float64(px), float64(py), cx, cy, w, h, r) {
				continue
			}
			if c.RGBAAt(px, py).A == 0 {
				c.SetRGBA(px, py, ShadowOnEmpty)
			} else {
				c.Blend(px, py, ShadowColor)
			}
		}
	}
}

func drawBody(c *canvas.Canvas, cx, cy, w, h, r float64, col color.RGBA) {
	top := cy - h/2
	for py := int(top); py < int(cy+h/2); py++ {
		light := 1 - (float64(py)-top)/h*0.15
		shade := color.NRGBA{
			R: scale(col.R, light),
			G: scale(col.G, light),
			B: scale(col.B, light),
			A: 255,
		}
		for px := int(cx - w/2); px < int(cx+w/2); px++ {
			if InsideRoundedRect(float64(px), float64(py), cx, cy, w, h, r) {
				c.SetRGBA(px, py, shade)
			}
		}
	}
}

func drawBorder(c *canvas.Canvas, cx, cy, w, h, r float64, col color.RGBA) {
	const bw = BorderWidth
	ring := color.NRGBA{R: scale(col.R, 0.5), G: scale(col.G, 0.5), B: scale(col.B, 0.5), A: 255}
	iw, ih, ir := w-bw*2, h-bw*2, math.Max(0, r-bw)

	for py := int(cy - h/2 - bw); py < int(cy+h/2+bw); py++ {
		for px := int(cx - w/2 - bw); px < int(cx+w/2+bw); px++ {
			x, y := float64(px), float64(py)
			if !InsideRoundedRect(x, y, cx, cy, w, h, r) {
				continue
			}
			if iw > 0 && ih > 0 && InsideRoundedRect(x, y, cx, cy, iw, ih, ir) {
				continue
			}
			c.SetRGBA(px, py, ring)
		}
	}
}

// FillRoundedRect blends col over every pixel inside the rounded rectangle.
func FillRoundedRect(c *canvas.Canvas, cx, cy, w, h, r float64, col color.NRGBA) {
	for py := int(cy - h/2); py <= int(cy+h/2); py++ {
		for px := int(cx - w/2); px <= int(cx+w/2); px++ {
			if InsideRoundedRect(float64(px), float64(py), cx, cy, w, h, r) {
				c.Blend(px, py, col)
			}
		}
	}
}

// scale multiplies a channel by f, clamped to 255 and truncated.
func scale(v uint8, f float64) uint8 {
	return uint8(math.Min(255, float64(v)*f))
}

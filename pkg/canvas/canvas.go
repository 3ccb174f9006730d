// Package canvas provides an owned, explicitly sized RGBA pixel grid with
// straight (non-premultiplied) alpha.
//
// A Canvas satisfies draw.Image, so anything in image/draw or
// golang.org/x/image can paint on it alongside the stone rasterizer.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrInvalidSize is returned for non-positive canvas dimensions.
var ErrInvalidSize = errors.New("canvas: invalid size")

// Transparent is the zero color.
var Transparent = color.NRGBA{}

// Canvas is a width×height grid stored as a flat RGBA buffer, 4 bytes per pixel.
type Canvas struct {
	width  int
	height int
	pix    []uint8
}

// New creates a canvas filled with fill.
func New(width, height int, fill color.NRGBA) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	c := &Canvas{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
	if fill != Transparent {
		c.Fill(fill)
	}
	return c, nil
}

// Width returns the width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the height in pixels.
func (c *Canvas) Height() int { return c.height }

// Pix returns the raw RGBA buffer, row-major, 4 bytes per pixel.
func (c *Canvas) Pix() []uint8 { return c.pix }

// Fill sets every pixel to col.
func (c *Canvas) Fill(col color.NRGBA) {
	for i := 0; i < len(c.pix); i += 4 {
		c.pix[i+0] = col.R
		c.pix[i+1] = col.G
		c.pix[i+2] = col.B
		c.pix[i+3] = col.A
	}
}

// FillVerticalGradient paints each row with a linear interpolation between
// top (first row) and bottom (last row). Channels are truncated.
func (c *Canvas) FillVerticalGradient(top, bottom color.NRGBA) {
	for y := 0; y < c.height; y++ {
		f := float64(y) / float64(c.height)
		col := color.NRGBA{
			R: lerp(top.R, bottom.R, f),
			G: lerp(top.G, bottom.G, f),
			B: lerp(top.B, bottom.B, f),
			A: lerp(top.A, bottom.A, f),
		}
		for x := 0; x < c.width; x++ {
			c.SetRGBA(x, y, col)
		}
	}
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*f)
}

func (c *Canvas) offset(x, y int) (int, bool) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return 0, false
	}
	return (y*c.width + x) * 4, true
}

// SetRGBA writes one pixel. Out-of-bounds writes are dropped so shape code can
// overscan without clipping every call.
func (c *Canvas) SetRGBA(x, y int, col color.NRGBA) {
	i, ok := c.offset(x, y)
	if !ok {
		return
	}
	c.pix[i+0] = col.R
	c.pix[i+1] = col.G
	c.pix[i+2] = col.B
	c.pix[i+3] = col.A
}

// RGBAAt returns the pixel at (x, y), or Transparent outside the canvas.
func (c *Canvas) RGBAAt(x, y int) color.NRGBA {
	i, ok := c.offset(x, y)
	if !ok {
		return Transparent
	}
	return color.NRGBA{R: c.pix[i+0], G: c.pix[i+1], B: c.pix[i+2], A: c.pix[i+3]}
}

// Blend composites col over the pixel at (x, y) using AlphaBlend.
func (c *Canvas) Blend(x, y int, col color.NRGBA) {
	i, ok := c.offset(x, y)
	if !ok {
		return
	}
	old := color.NRGBA{R: c.pix[i+0], G: c.pix[i+1], B: c.pix[i+2], A: c.pix[i+3]}
	out := AlphaBlend(old, col)
	c.pix[i+0] = out.R
	c.pix[i+1] = out.G
	c.pix[i+2] = out.B
	c.pix[i+3] = out.A
}

// AlphaBlend mixes in over old with weight in.A/255 and keeps old's alpha.
// An empty destination (old.A == 0) takes in verbatim.
func AlphaBlend(old, in color.NRGBA) color.NRGBA {
	if old.A == 0 {
		return in
	}
	a := float64(in.A) / 255
	mix := func(o, n uint8) uint8 {
		// The float64 conversions keep the compiler from fusing into an FMA,
		// which would change truncation on some architectures.
		return uint8(float64(float64(o)*(1-a)) + float64(float64(n)*a))
	}
	return color.NRGBA{
		R: mix(old.R, in.R),
		G: mix(old.G, in.G),
		B: mix(old.B, in.B),
		A: old.A,
	}
}

// Clone returns a deep copy.
func (c *Canvas) Clone() *Canvas {
	pix := make([]uint8, len(c.pix))
	copy(pix, c.pix)
	return &Canvas{width: c.width, height: c.height, pix: pix}
}

// ColorModel implements image.Image.
func (c *Canvas) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (c *Canvas) Bounds() image.Rectangle { return image.Rect(0, 0, c.width, c.height) }

// At implements image.Image.
func (c *Canvas) At(x, y int) color.Color { return c.RGBAAt(x, y) }

// Set implements draw.Image.
func (c *Canvas) Set(x, y int, col color.Color) {
	c.SetRGBA(x, y, color.NRGBAModel.Convert(col).(color.NRGBA))
}

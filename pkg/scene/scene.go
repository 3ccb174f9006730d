// Package scene composes the app's raster assets: launcher icon, adaptive
// icon foreground, splash logo and store feature graphic.
package scene

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/xob0t/stonegen/pkg/canvas"
	"github.com/xob0t/stonegen/pkg/shape"
)

// ErrUnknownScene is returned by Parse for unrecognized names.
var ErrUnknownScene = errors.New("scene: unknown scene")

// Palette.
var (
	Background = canvas.MustParseHex("#795548")
	Cream      = color.RGBA{R: 245, G: 235, B: 220, A: 255}
	Charcoal   = color.RGBA{R: 60, G: 55, B: 50, A: 255}
)

// Kind identifies one composition.
type Kind int

const (
	AppIcon Kind = iota
	Foreground
	Splash
	Feature
)

// Kinds lists every scene in a stable order.
var Kinds = []Kind{AppIcon, Foreground, Splash, Feature}

var kindNames = [...]string{
	AppIcon:    "app",
	Foreground: "foreground",
	Splash:     "splash",
	Feature:    "feature",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// DefaultSize returns the shipped dimensions of k.
func (k Kind) DefaultSize() (w, h int) {
	switch k {
	case Splash:
		return 512, 512
	case Feature:
		return FeatureWidth, FeatureHeight
	default:
		return 1024, 1024
	}
}

// Parse maps a name such as "splash" to its Kind.
func Parse(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// Render draws k at the given size. Square scenes use width and ignore height.
func Render(k Kind, width, height int) (*canvas.Canvas, error) {
	switch k {
	case AppIcon:
		return RenderAppIcon(width)
	case Foreground:
		return RenderForeground(width)
	case Splash:
		return RenderSplash(width)
	case Feature:
		return RenderFeature(width, height)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownScene, k)
	}
}

// placement positions a stone relative to the canvas center in units of the
// scene's spacing.
type placement struct {
	dx, dy float64
	color  color.RGBA
	o      shape.Orientation
}

// RenderAppIcon draws the launcher icon: a path of cream stones crossing a
// brown tile, with two charcoal stones.
func RenderAppIcon(size int) (*canvas.Canvas, error) {
	return compose(size, Background, 0.18, 0.15, []placement{
		{-1.5, 1.2, Cream, shape.Flat},
		{-0.3, 0.4, Cream, shape.Flat},
		{0.9, -0.4, Cream, shape.Flat},
		{2.0, -1.2, Cream, shape.Flat},
		{-0.5, -0.8, Charcoal, shape.Standing},
		{1.3, 0.6, Charcoal, shape.Flat},
	})
}

// RenderForeground draws the adaptive-icon foreground layer on transparency.
func RenderForeground(size int) (*canvas.Canvas, error) {
	return compose(size, canvas.Transparent, 0.12, 0.10, []placement{
		{-1.0, 0.8, Cream, shape.Flat},
		{0.2, 0.1, Cream, shape.Flat},
		{1.3, -0.7, Cream, shape.Flat},
		{-0.3, -0.5, Charcoal, shape.Standing},
		{0.9, 0.5, Charcoal, shape.Flat},
	})
}

// RenderSplash draws the splash-screen logo on transparency.
func RenderSplash(size int) (*canvas.Canvas, error) {
	return compose(size, canvas.Transparent, 0.15, 0.12, []placement{
		{-0.8, 0.5, Cream, shape.Flat},
		{0.4, -0.2, Cream, shape.Flat},
		{-0.2, -0.6, Charcoal, shape.Standing},
	})
}

func compose(size int, bg color.NRGBA, stoneScale, spacingScale float64, stones []placement) (*canvas.Canvas, error) {
	c, err := canvas.New(size, size, bg)
	if err != nil {
		return nil, err
	}
	center := float64(size) / 2
	spacing := float64(size) * spacingScale
	for _, p := range stones {
		err := shape.DrawStone(c, shape.Stone{
			X:           center + spacing*p.dx,
			Y:           center + spacing*p.dy,
			Size:        float64(size) * stoneScale,
			Color:       p.color,
			Orientation: p.o,
		})
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

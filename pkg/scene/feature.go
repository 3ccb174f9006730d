// feature.go — Store feature graphic: gradient banner with the app icon,
// title, tagline and a stack of pieces.
package scene

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/xob0t/stonegen/pkg/canvas"
	"github.com/xob0t/stonegen/pkg/shape"
)

// Feature graphic layout is authored at 1024x500 and scaled uniformly.
const (
	FeatureWidth  = 1024
	FeatureHeight = 500

	Title   = "stones"
	Tagline = "A game of roads and flats"
)

var (
	gradientTop    = color.NRGBA{R: 52, G: 58, B: 68, A: 255}
	gradientBottom = color.NRGBA{R: 60, G: 66, B: 74, A: 255}
	accent         = color.NRGBA{R: 121, G: 85, B: 72, A: 255}
	taglineColor   = color.NRGBA{R: 200, G: 190, B: 180, A: 255}

	lightPiece       = color.NRGBA{R: 245, G: 240, B: 230, A: 255}
	lightPieceBorder = color.NRGBA{R: 139, G: 115, B: 85, A: 255}
	darkPiece        = color.NRGBA{R: 61, G: 61, B: 61, A: 255}
	darkPieceBorder  = color.NRGBA{R: 107, G: 107, B: 107, A: 255}
)

// RenderFeature draws the store banner at width x height.
func RenderFeature(width, height int) (*canvas.Canvas, error) {
	c, err := canvas.New(width, height, canvas.Transparent)
	if err != nil {
		return nil, err
	}
	c.FillVerticalGradient(gradientTop, gradientBottom)

	s := math.Min(float64(width)/FeatureWidth, float64(height)/FeatureHeight)
	u := func(v float64) float64 { return v * s }
	midY := float64(height) / 2

	// Icon with a soft drop shadow.
	iconSize := max(int(u(300)), 1)
	ix, iy := int(u(80)), int(midY)-iconSize/2
	softShadow(c, float64(ix)+float64(iconSize)/2, float64(iy)+float64(iconSize)/2+u(5),
		float64(iconSize), u(20), u(12))

	icon, err := RenderAppIcon(512)
	if err != nil {
		return nil, err
	}
	dst := image.Rect(ix, iy, ix+iconSize, iy+iconSize)
	xdraw.CatmullRom.Scale(c, dst, icon, icon.Bounds(), xdraw.Over, nil)

	// Title, rule and tagline.
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}
	titleFace, err := face(fonts.bold, u(72))
	if err != nil {
		return nil, err
	}
	defer titleFace.Close()
	tagFace, err := face(fonts.regular, u(28))
	if err != nil {
		return nil, err
	}
	defer tagFace.Close()

	textX := u(420)
	titleY := midY - u(50)
	title := cases.Upper(language.English).String(Title)
	drawText(c, titleFace, title, textX+u(2), titleY+u(2), color.NRGBA{A: 80})
	drawText(c, titleFace, title, textX, titleY, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	ruleY := titleY + u(75)
	shape.FillRoundedRect(c, textX+u(160), ruleY+u(1), u(320), u(2), 0, accent)

	tagY := titleY + u(85)
	drawText(c, tagFace, Tagline, textX+u(1), tagY+u(1), color.NRGBA{A: 40})
	drawText(c, tagFace, Tagline, textX, tagY, taglineColor)

	// Stack of three flats topped by a capstone.
	px, py := u(850), midY+u(30)
	flat := func(y float64, fill, border color.NRGBA) {
		pieceEllipse(c, px, y, u(45), u(11), u(2), u(3), fill, border, 40)
	}
	flat(py+u(35), darkPiece, darkPieceBorder)
	flat(py+u(18), lightPiece, lightPieceBorder)
	flat(py, darkPiece, darkPieceBorder)
	pieceEllipse(c, px, py-u(20), u(18), u(15), u(2), u(3), lightPiece, lightPieceBorder, 30)

	return c, nil
}

// drawText draws s with its top edge at y.
func drawText(c *canvas.Canvas, f font.Face, s string, x, y float64, col color.NRGBA) {
	d := &font.Drawer{
		Dst:  c,
		Src:  image.NewUniform(col),
		Face: f,
	}
	ascent := f.Metrics().Ascent
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x * 64)),
		Y: fixed.Int26_6(math.Round(y*64)) + ascent,
	}
	d.DrawString(s)
}

// softShadow approximates a blurred rounded square by stacking translucent
// layers that shrink toward the center.
func softShadow(c *canvas.Canvas, cx, cy, size, radius, blur float64) {
	const layers = 6
	for i := 0; i < layers; i++ {
		grow := blur * (1 - float64(i)/layers)
		shape.FillRoundedRect(c, cx, cy, size+grow, size+grow, radius+grow/2, color.NRGBA{A: 10})
	}
}

// pieceEllipse draws a shadowed elliptical piece: shadow offset by off with the
// given alpha, a border ring of width bw, then the fill.
func pieceEllipse(c *canvas.Canvas, cx, cy, rx, ry, bw, off float64, fill, border color.NRGBA, shadowAlpha uint8) {
	fillEllipse(c, cx+off, cy+off, rx, ry, color.NRGBA{A: shadowAlpha})
	fillEllipse(c, cx, cy, rx, ry, border)
	fillEllipse(c, cx, cy, rx-bw, ry-bw, fill)
}

// kappa places cubic control points so four segments approximate a quarter
// circle each.
const kappa = 0.5522847498

func fillEllipse(c *canvas.Canvas, cx, cy, rx, ry float64, col color.NRGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	b := c.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = xdraw.Over

	f := func(v float64) float32 { return float32(v) }
	kx, ky := rx*kappa, ry*kappa
	z.MoveTo(f(cx+rx), f(cy))
	z.CubeTo(f(cx+rx), f(cy+ky), f(cx+kx), f(cy+ry), f(cx), f(cy+ry))
	z.CubeTo(f(cx-kx), f(cy+ry), f(cx-rx), f(cy+ky), f(cx-rx), f(cy))
	z.CubeTo(f(cx-rx), f(cy-ky), f(cx-kx), f(cy-ry), f(cx), f(cy-ry))
	z.CubeTo(f(cx+kx), f(cy-ry), f(cx+rx), f(cy-ky), f(cx+rx), f(cy))
	z.ClosePath()
	z.Draw(c, b, image.NewUniform(col), image.Point{})
}

// fonts.go — Embedded Go fonts for feature-graphic text.
// Uses golang.org/x/image/font/opentype; both faces are compiled in so
// rendering never depends on fonts installed on the build machine.
package scene

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// fontSet holds the parsed title and body fonts.
type fontSet struct {
	bold    *opentype.Font
	regular *opentype.Font
}

var loadFonts = sync.OnceValues(func() (*fontSet, error) {
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse Go Bold: %w", err)
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse Go Regular: %w", err)
	}
	return &fontSet{bold: bold, regular: regular}, nil
})

// face returns a face of f at size points and 72 DPI.
func face(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}

// Package snapshot renders an engine frame to a PNG image with seed discs and
// an optional caption.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/Garsondee/coordinate-borders/internal/border"
	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Options controls Render.
type Options struct {
	Scale      float64 // output scale; 0 or 1 keeps the frame size
	SeedRadius float64 // radius of the seed discs; 0 draws none
	Caption    string
}

var captionBackground = color.RGBA{R: 6, G: 10, B: 6, A: 210}

// Render copies frame, draws a disc in each seed's group colour, scales the
// result and stamps the caption in the top-left corner.
func Render(frame *border.Frame, seeds border.SeedSet, p border.Palette, o Options) (*image.RGBA, error) {
	dc := gg.NewContextForImage(frame.RGBA())
	defer func() { _ = dc.Close() }()

	if o.SeedRadius > 0 {
		for i := 0; i < seeds.Len(); i++ {
			s := seeds.At(i)
			dc.SetColor(p.Color(s.Group))
			dc.DrawCircle(s.Pos.X, s.Pos.Y, o.SeedRadius)
			if err := dc.Fill(); err != nil {
				return nil, fmt.Errorf("draw seed %d: %w", i, err)
			}
		}
	}

	out := scale(dc.Image(), o.Scale)
	if o.Caption != "" {
		drawCaption(out, o.Caption)
	}
	return out, nil
}

func scale(src image.Image, f float64) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	interp := xdraw.Interpolator(xdraw.NearestNeighbor)
	if f > 0 && f != 1 {
		w = max(1, int(float64(w)*f))
		h = max(1, int(float64(h)*f))
		if f < 1 {
			interp = xdraw.ApproxBiLinear
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	interp.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

func drawCaption(dst *image.RGBA, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(6, 4+face.Ascent),
	}
	box := image.Rect(2, 2, 10+d.MeasureString(text).Ceil(), 8+face.Height)
	xdraw.Draw(dst, box, image.NewUniform(captionBackground), image.Point{}, xdraw.Over)
	d.DrawString(text)
}

// Write encodes img as PNG.
func Write(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Save writes img to path as PNG.
func Save(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return err
	}
	if err := Write(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

package border

import (
	"image"
	"image/color"
)

// Frame is an RGBA8 pixel buffer, row-major, 4 bytes per pixel.
// Pixel (x, y) starts at byte (x + y*width) * 4.
type Frame struct {
	width  int
	height int
	Pix    []byte
}

// NewFrame returns a transparent width×height frame.
func NewFrame(width, height int) *Frame {
	return &Frame{
		width:  width,
		height: height,
		Pix:    make([]byte, width*height*4),
	}
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.height }

// Row returns the bytes of row y.
func (f *Frame) Row(y int) []byte {
	stride := f.width * 4
	return f.Pix[y*stride : (y+1)*stride]
}

// Set writes c at (x, y). Writes outside the frame are dropped.
func (f *Frame) Set(x, y int, c color.RGBA) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	i := (x + y*f.width) * 4
	f.Pix[i+0] = c.R
	f.Pix[i+1] = c.G
	f.Pix[i+2] = c.B
	f.Pix[i+3] = c.A
}

// At returns the colour at (x, y), or transparent outside the frame.
func (f *Frame) At(x, y int) color.RGBA {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return color.RGBA{}
	}
	i := (x + y*f.width) * 4
	return color.RGBA{R: f.Pix[i+0], G: f.Pix[i+1], B: f.Pix[i+2], A: f.Pix[i+3]}
}

// Fill sets every pixel to c.
func (f *Frame) Fill(c color.RGBA) {
	for i := 0; i < len(f.Pix); i += 4 {
		f.Pix[i+0] = c.R
		f.Pix[i+1] = c.G
		f.Pix[i+2] = c.B
		f.Pix[i+3] = c.A
	}
}

// FillRect fills the w×h square whose top-left corner is (x, y), clipped to
// the frame.
func (f *Frame) FillRect(x, y, w, h int, c color.RGBA) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			f.Set(x+dx, y+dy, c)
		}
	}
}

// RGBA wraps the frame as an *image.RGBA sharing the same pixels.
func (f *Frame) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pix,
		Stride: f.width * 4,
		Rect:   image.Rect(0, 0, f.width, f.height),
	}
}

func setPixel(row []byte, x int, c color.RGBA) {
	i := x * 4
	row[i+0] = c.R
	row[i+1] = c.G
	row[i+2] = c.B
	row[i+3] = c.A
}

// PaintSeeds draws a size×size marker in each seed's group colour, anchored
// at the seed's integer position and extending right and down.
func PaintSeeds(f *Frame, seeds SeedSet, p Palette, size int) {
	for _, s := range seeds.seeds {
		f.FillRect(int(s.Pos.X), int(s.Pos.Y), size, size, p.Color(s.Group))
	}
}

// PaintMarkers draws a size×size square of colour c at every vertex,
// extending right and down from the vertex and clipped to the frame.
func PaintMarkers(f *Frame, vertices []image.Point, size int, c color.RGBA) {
	for _, v := range vertices {
		f.FillRect(v.X, v.Y, size, size, c)
	}
}

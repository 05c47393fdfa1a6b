package maze

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

var (
	wallColor    = color.RGBA{0x30, 0x30, 0x38, 0xff}
	openColor    = color.RGBA{0xe8, 0xe8, 0xe0, 0xff}
	oxygenColor  = color.RGBA{0x20, 0x80, 0xf0, 0xff}
	unknownColor = color.RGBA{0x00, 0x00, 0x00, 0xff}
	droidColor   = color.RGBA{0xe0, 0x30, 0x20, 0xff}
)

func tileColor(t Tile) color.RGBA {
	switch t {
	case Wall:
		return wallColor
	case Open:
		return openColor
	case Oxygen:
		return oxygenColor
	}
	return unknownColor
}

// Image renders g with one block of scale×scale pixels per location,
// north at the top.
func Image(g *Grid, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	min, max := g.Bounds()
	src := image.NewRGBA(image.Rect(0, 0, max.X-min.X+1, max.Y-min.Y+1))
	draw.Draw(src, src.Bounds(), image.NewUniform(unknownColor), image.Point{}, draw.Src)
	for p, t := range g.tiles {
		src.SetRGBA(p.X-min.X, max.Y-p.Y, tileColor(t))
	}
	if d := g.Droid; g.Known(d) && g.At(d) != Oxygen {
		src.SetRGBA(d.X-min.X, max.Y-d.Y, droidColor)
	}
	if scale == 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// WritePNG writes Image(g, scale) to w in PNG format.
func WritePNG(w io.Writer, g *Grid, scale int) error {
	return errors.Wrap(png.Encode(w, Image(g, scale)), "encoding maze image")
}

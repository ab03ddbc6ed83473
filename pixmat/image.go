package pixmat

import (
	"fmt"
	"image"
	"image/color"
)

// Image is a height x width x channels grid of 8-bit samples in raster order.
type Image struct {
	// Pix holds the samples. The sample c of the pixel at (x, y) is at
	// Pix[(y*Width+x)*Channels+c].
	Pix []uint8
	// Height is the number of rows.
	Height int
	// Width is the number of columns.
	Width int
	// Channels is the number of samples per pixel, 3 for RGB.
	Channels int
}

var _ image.Image = (*Image)(nil)

func NewImage(height, width, channels int) *Image {
	return &Image{
		Pix:      make([]uint8, height*width*channels),
		Height:   height,
		Width:    width,
		Channels: channels,
	}
}

func (img *Image) Shape() Shape {
	return Shape{Height: img.Height, Width: img.Width, Channels: img.Channels}
}

// Validate checks that the buffer length agrees with the dimensions.
func (img *Image) Validate() error {
	if img.Height < 0 || img.Width < 0 || img.Channels < 1 {
		return fmt.Errorf("%w: %s", ErrInvalidShape, img.Shape())
	}
	if n := img.Height * img.Width * img.Channels; len(img.Pix) != n {
		return fmt.Errorf("%w: %s needs %d samples, got %d", ErrInvalidShape, img.Shape(), n, len(img.Pix))
	}
	return nil
}

func (img *Image) ColorModel() color.Model {
	return color.RGBAModel
}

func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// At returns an opaque colour. Single channel images are read as gray, and
// only the first three channels of wider images are used.
func (img *Image) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return color.RGBA{}
	}
	i := (y*img.Width + x) * img.Channels
	s := img.Pix[i : i+img.Channels : i+img.Channels]
	if len(s) < 3 {
		return color.RGBA{R: s[0], G: s[0], B: s[0], A: 0xFF}
	}
	return color.RGBA{R: s[0], G: s[1], B: s[2], A: 0xFF}
}

// Package imageio decodes and encodes the images handed to and produced by
// the colour transfer.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"colortrans/pixmat"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

// Decode reads any registered image format from path.
func Decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "file", path, "error", closeErr)
		}
	}()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image %q: %w", path, err)
	}
	return img, format, nil
}

// Load decodes path into a 3-channel RGB raster.
func Load(path string) (*pixmat.Image, string, error) {
	img, format, err := Decode(path)
	if err != nil {
		return nil, "", err
	}
	return FromImage(img), format, nil
}

// FromImage copies img into a 3-channel RGB raster. Alpha is dropped without
// compositing, so translucent pixels keep their straight colour.
func FromImage(img image.Image) *pixmat.Image {
	b := img.Bounds()
	res := pixmat.NewImage(b.Dy(), b.Dx(), 3)

	if src, ok := img.(*pixmat.Image); ok && src.Channels == 3 {
		copy(res.Pix, src.Pix)
		return res
	}

	i := 0
	if src, ok := img.(*image.NRGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, y):]
			for x := range b.Dx() {
				copy(res.Pix[i:i+3], row[x*4:x*4+3])
				i += 3
			}
		}
		return res
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			res.Pix[i], res.Pix[i+1], res.Pix[i+2] = c.R, c.G, c.B
			i += 3
		}
	}
	return res
}

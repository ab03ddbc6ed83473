package imageio

import (
	"image"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// Downscale shrinks img so that its longer side is at most maxSide pixels,
// keeping the aspect ratio. Images already small enough, or maxSide < 1,
// are returned unchanged.
func Downscale(logger *slog.Logger, img image.Image, maxSide int) image.Image {
	srcBounds := img.Bounds()
	srcWidth := float64(srcBounds.Dx())
	srcHeight := float64(srcBounds.Dy())

	if maxSide < 1 || max(srcWidth, srcHeight) <= float64(maxSide) {
		return img
	}

	scale := float64(maxSide) / max(srcWidth, srcHeight)
	destWidth := max(1, int(math.Round(srcWidth*scale)))
	destHeight := max(1, int(math.Round(srcHeight*scale)))

	logger.Info("resizing", "width", destWidth, "height", destHeight)
	dest := image.NewNRGBA(image.Rect(0, 0, destWidth, destHeight))
	draw.CatmullRom.Scale(dest, dest.Bounds(), img, srcBounds, draw.Src, nil)

	return dest
}

// Package inspect reports the colour statistics the transfer methods work
// from, so a reference can be judged before it is used.
package inspect

import (
	"fmt"
	"log/slog"

	"colortrans/imageio"
	"colortrans/linalg"
	"colortrans/palette"
	"colortrans/pixmat"
	"colortrans/stats"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/mat"
)

type CLICmd struct {
	Image string `arg:"" help:"Path to image or RIFF .pal palette to describe." type:"existingfile"`
}

// Report holds per-channel statistics of an image. Covariance and
// Eigenvalues are only set for images with at least two pixels.
type Report struct {
	Shape       pixmat.Shape
	Mean        []float64
	StdDev      []float64
	Covariance  [][]float64
	Eigenvalues []float64

	// MeanHex and MeanLab describe the mean colour of a 3 channel image.
	MeanHex string
	MeanLab [3]float64
}

// Describe computes the Report for img.
func Describe(img *pixmat.Image) (Report, error) {
	x, shape, err := pixmat.ToMatrix(img)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		Shape:  shape,
		Mean:   stats.Mean(x),
		StdDev: stats.StdDev(x),
	}

	if shape.Pixels() > 1 {
		cov := stats.Covariance(x)
		r.Covariance = rows(cov)
		if r.Eigenvalues, _, err = linalg.Eigen(cov); err != nil {
			return Report{}, fmt.Errorf("could not decompose covariance: %w", err)
		}
	}

	if shape.Channels == 3 {
		c := colorful.Color{R: r.Mean[0] / 255, G: r.Mean[1] / 255, B: r.Mean[2] / 255}.Clamped()
		r.MeanHex = c.Hex()
		r.MeanLab[0], r.MeanLab[1], r.MeanLab[2] = c.Lab()
	}

	return r, nil
}

func rows(m mat.Matrix) [][]float64 {
	n, _ := m.Dims()
	res := make([][]float64, n)
	for i := range n {
		res[i] = mat.Row(nil, i, m)
	}
	return res
}

func (c *CLICmd) Run(logger *slog.Logger) error {
	var (
		img *pixmat.Image
		err error
	)
	if palette.IsPaletteFile(c.Image) {
		img, err = palette.Load(c.Image)
	} else {
		img, _, err = imageio.Load(c.Image)
	}
	if err != nil {
		return err
	}

	r, err := Describe(img)
	if err != nil {
		return fmt.Errorf("could not describe %q: %w", c.Image, err)
	}

	logger.Info("statistics",
		"file", c.Image,
		"shape", r.Shape,
		"mean", r.Mean,
		"stddev", r.StdDev,
		"covariance", r.Covariance,
		"eigenvalues", r.Eigenvalues,
		"mean_hex", r.MeanHex,
		"mean_lab", r.MeanLab,
	)
	return nil
}

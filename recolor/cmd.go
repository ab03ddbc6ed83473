package recolor

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"colortrans/imageio"
	"colortrans/palette"
	"colortrans/pixmat"
	"colortrans/transfer"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Content          string          `arg:"" help:"Path to content image (qualitative appearance)." type:"existingfile"`
	Reference        string          `arg:"" help:"Path to reference image or RIFF .pal palette (desired colors)." type:"existingfile"`
	Output           string          `arg:"" help:"Path to output image." type:"path"`
	Method           string          `help:"Algorithm to use for color transfer (${enum})." short:"m" enum:"${methods}" default:"lhm" env:"COLORTRANS_METHOD"`
	Workers          int             `help:"Goroutines for the per-pixel transform, 0 for one per CPU." default:"1" env:"COLORTRANS_WORKERS"`
	Format           string          `help:"Output format, auto picks it from the output extension." enum:"${formats}" default:"auto" env:"COLORTRANS_FORMAT"`
	Force            bool            `help:"Overwrite the output file if it exists." short:"f" env:"COLORTRANS_FORCE"`
	ReferenceMaxSide int             `help:"Downscale the reference to at most this many pixels on its longer side before computing statistics, 0 to disable." default:"0" env:"COLORTRANS_REFERENCE_MAX_SIDE"`
	Selected         transfer.Method `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	var err error
	if c.Selected, err = transfer.ParseMethod(c.Method); err != nil {
		return err
	}

	if c.Workers < 0 {
		return fmt.Errorf("invalid number of workers: %d", c.Workers)
	}
	if c.ReferenceMaxSide < 0 {
		return fmt.Errorf("invalid reference size: %d", c.ReferenceMaxSide)
	}

	if c.Output, err = filepath.Abs(c.Output); err != nil {
		return fmt.Errorf("invalid output path %q: %w", c.Output, err)
	}
	if info, err := os.Stat(filepath.Dir(c.Output)); err != nil || !info.IsDir() {
		if err == nil {
			err = fmt.Errorf("not a directory")
		}
		return fmt.Errorf("invalid output folder %q: %w", filepath.Dir(c.Output), err)
	}
	if !c.Force {
		if _, err := os.Stat(c.Output); err == nil {
			return fmt.Errorf("%w: %q, use --force to overwrite", imageio.ErrExists, c.Output)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat output file %q: %w", c.Output, err)
		}
	}

	return nil
}

func (c *CLICmd) Run(logger *slog.Logger) error {
	logger = logger.With("method", c.Selected.String())

	content, _, err := imageio.Load(c.Content)
	if err != nil {
		return err
	}
	logger.Debug("loaded content", "file", c.Content, "shape", content.Shape())

	reference, err := c.loadReference(logger)
	if err != nil {
		return err
	}
	logger.Debug("loaded reference", "file", c.Reference, "shape", reference.Shape())

	start := time.Now()
	out, err := c.Selected.Transfer(content, reference, transfer.WithWorkers(c.Workers))
	if err != nil {
		return fmt.Errorf("could not transfer colors from %q to %q: %w", c.Reference, c.Content, err)
	}
	logger.Info("transferred", "shape", out.Shape(), "elapsed", time.Since(start))

	if err := imageio.Save(c.Output, out, c.Format, c.Force); err != nil {
		return err
	}
	logger.Info("saved", "file", c.Output)
	return nil
}

func (c *CLICmd) loadReference(logger *slog.Logger) (*pixmat.Image, error) {
	if palette.IsPaletteFile(c.Reference) {
		return palette.Load(c.Reference)
	}

	img, _, err := imageio.Decode(c.Reference)
	if err != nil {
		return nil, err
	}
	img = imageio.Downscale(logger.With("file", c.Reference), img, c.ReferenceMaxSide)
	return imageio.FromImage(img), nil
}

package render

import (
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"cleanml/internal/errors"
)

const (
	figWidth  = 7 * vg.Inch
	figHeight = 5 * vg.Inch
)

// SaveFig writes the plot as a PNG, creating the directory tree first.
// The image is written to a temp file and renamed into place so a
// failed render never leaves a truncated artifact behind.
func SaveFig(p *plot.Plot, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.IOFailure("failed to create plot directory "+dir, err)
	}

	wt, err := p.WriterTo(figWidth, figHeight, "png")
	if err != nil {
		return errors.Wrapf(err, "failed to render figure %s", path)
	}

	tmp, err := os.CreateTemp(dir, ".fig-*.png")
	if err != nil {
		return errors.IOFailure("failed to create temp figure file", err)
	}
	if _, err := wt.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.IOFailure("failed to write figure "+path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.IOFailure("failed to close temp figure file", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.IOFailure("failed to move figure into place at "+path, err)
	}
	return nil
}

// Package output renders run artifacts; currently the per-k mean accuracy
// curve produced by the grid search.
package output

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/tanvis507/playerknn/modelselection"
	"github.com/tanvis507/playerknn/pkg/errors"
)

// SaveAccuracyCurve writes the per-k mean validation accuracy curve to an
// image file. The format follows the path extension (.png, .svg, .pdf).
func SaveAccuracyCurve(curve []modelselection.KAccuracy, path string) error {
	if len(curve) == 0 {
		return errors.NewValueError("SaveAccuracyCurve", "empty curve")
	}

	pts := make(plotter.XYs, len(curve))
	for i, point := range curve {
		pts[i].X = float64(point.K)
		pts[i].Y = point.MeanAccuracy
	}

	p := plot.New()
	p.Title.Text = "Cross-validated accuracy by neighbor count"
	p.X.Label.Text = "k (neighbors)"
	p.Y.Label.Text = "mean validation accuracy"

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return errors.Wrap(err, "build accuracy curve")
	}
	p.Add(plotter.NewGrid(), line, points)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save accuracy curve to %s", path)
	}
	return nil
}

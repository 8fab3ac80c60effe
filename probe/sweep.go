package probe

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"hrr-numbers/hrr"
)

// Point is the outcome of one β in a sweep.
type Point struct {
	Beta      float64 `yaml:"beta"`
	Pairs     int     `yaml:"pairs"`
	Failures  int     `yaml:"failures"`
	ErrorRate float64 `yaml:"error_rate"`
}

// Sweep builds one basis for bound per β and probes each with cfg. Points
// are returned in increasing β.
func Sweep(ctx context.Context, bound int64, betas []float64, cfg Config, log logrus.FieldLogger) ([]Point, error) {
	if len(betas) == 0 {
		return nil, fmt.Errorf("probe: no β to sweep")
	}
	sorted := append([]float64(nil), betas...)
	sort.Float64s(sorted)

	points := make([]Point, 0, len(sorted))
	for _, beta := range sorted {
		b, err := hrr.NewBasis(bound, beta)
		if err != nil {
			return nil, err
		}
		rep, err := Run(ctx, b, cfg, log)
		if err != nil {
			return nil, err
		}
		points = append(points, Point{Beta: beta, Pairs: rep.Pairs, Failures: rep.Failures, ErrorRate: rep.ErrorRate})
	}
	return points, nil
}

// Plot renders error rate against β as a line with markers and saves it to
// path. The image format follows the file extension (png, svg, pdf, ...).
func Plot(points []Point, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "β"
	p.Y.Label.Text = "error rate"
	p.Y.Min = 0

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.Beta
		xys[i].Y = pt.ErrorRate
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	marks, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	p.Add(plotter.NewGrid(), line, marks)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return err
	}
	return nil
}

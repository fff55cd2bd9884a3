// Package plotpath renders a top-down view of the converted camera
// trajectory, a quick visual sanity check on the exported poses.
package plotpath

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/pose.report/internal/rosmsg"
)

// WritePathPlot saves a PNG of the camera path projected onto the ROS x/y
// plane (x forward, y left), in pose order.
func WritePathPlot(poses []rosmsg.PoseStamped, outPath string) error {
	if len(poses) == 0 {
		return fmt.Errorf("no poses to plot")
	}

	pts := make(plotter.XYs, 0, len(poses))
	for _, ps := range poses {
		pts = append(pts, plotter.XY{X: ps.Pose.Position.X, Y: ps.Pose.Position.Y})
	}

	p := plot.New()
	p.Title.Text = "Camera path (top-down)"
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("build path line: %w", err)
	}
	line.Width = vg.Points(1)
	p.Add(line)
	p.Add(plotter.NewGrid())

	if err := p.Save(8*vg.Inch, 8*vg.Inch, outPath); err != nil {
		return fmt.Errorf("save path plot: %w", err)
	}
	return nil
}

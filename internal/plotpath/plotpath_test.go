package plotpath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/pose.report/internal/rosmsg"
)

func TestWritePathPlot(t *testing.T) {
	poses := []rosmsg.PoseStamped{
		{Pose: rosmsg.Pose{Position: rosmsg.Point{X: 0, Y: 0, Z: 0}}},
		{Pose: rosmsg.Pose{Position: rosmsg.Point{X: 1, Y: 0.5, Z: 0.1}}},
		{Pose: rosmsg.Pose{Position: rosmsg.Point{X: 2, Y: -0.5, Z: 0.2}}},
	}

	out := filepath.Join(t.TempDir(), "path.png")
	if err := WritePathPlot(poses, out); err != nil {
		t.Fatalf("WritePathPlot: %v", err)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("plot file not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
}

func TestWritePathPlotEmpty(t *testing.T) {
	out := filepath.Join(t.TempDir(), "path.png")
	if err := WritePathPlot(nil, out); err == nil {
		t.Fatal("expected error for empty pose list")
	}
}

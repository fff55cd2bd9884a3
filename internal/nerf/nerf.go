// Package nerf loads camera poses exported by a Nerfstudio/COLMAP data
// preparation run. The input is the project's transforms.json: an unordered
// list of frames, each carrying the source image path and a 4x4
// camera-to-world transform in the OpenCV axis convention.
package nerf

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// rotationTolerance bounds how far the rotation block of a transform may
// drift from a proper rotation before the frame is rejected. Upstream writes
// matrices with limited decimal precision, so this is looser than machine
// epsilon.
const rotationTolerance = 1e-4

// Dataset mirrors the subset of transforms.json this tool consumes.
type Dataset struct {
	Frames []Frame `json:"frames"`
}

// Frame is one captured camera sample.
type Frame struct {
	FilePath        string      `json:"file_path"`
	TransformMatrix [][]float64 `json:"transform_matrix"`
}

// Load reads and decodes a transforms.json document.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transforms: %w", err)
	}
	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode transforms: %w", err)
	}
	return &d, nil
}

// SortedFrames returns the frames ordered by file path. The upstream
// extraction zero-pads image names (frame_0001.png, frame_0002.png, ...), so
// lexical order is acquisition order.
func (d *Dataset) SortedFrames() []Frame {
	frames := make([]Frame, len(d.Frames))
	copy(frames, d.Frames)
	sort.Slice(frames, func(i, j int) bool {
		return frames[i].FilePath < frames[j].FilePath
	})
	return frames
}

var framePattern = regexp.MustCompile(`frame_(\d+)`)

// FrameNumber extracts the 1-based frame number from an image path such as
// "images/frame_0001.png".
func FrameNumber(filePath string) (int, error) {
	m := framePattern.FindStringSubmatch(filePath)
	if m == nil {
		return 0, fmt.Errorf("no frame number in %q", filePath)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("frame number in %q: %w", filePath, err)
	}
	return n, nil
}

// Matrix converts the frame's nested-list transform into a 4x4 dense matrix,
// checking that it encodes a rigid-body pose: finite entries, a [0 0 0 1]
// bottom row, and an orthonormal rotation block with determinant +1.
func (f *Frame) Matrix() (*mat.Dense, error) {
	if len(f.TransformMatrix) != 4 {
		return nil, fmt.Errorf("transform has %d rows, want 4", len(f.TransformMatrix))
	}
	m := mat.NewDense(4, 4, nil)
	for i, row := range f.TransformMatrix {
		if len(row) != 4 {
			return nil, fmt.Errorf("transform row %d has %d columns, want 4", i, len(row))
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("transform entry [%d][%d] is not finite", i, j)
			}
			m.Set(i, j, v)
		}
	}
	for j, want := range []float64{0, 0, 0, 1} {
		if math.Abs(m.At(3, j)-want) > rotationTolerance {
			return nil, fmt.Errorf("bottom row is not [0 0 0 1]")
		}
	}
	if err := checkRotation(m.Slice(0, 3, 0, 3)); err != nil {
		return nil, err
	}
	return m, nil
}

// checkRotation verifies R·Rᵀ ≈ I and det(R) ≈ +1.
func checkRotation(r mat.Matrix) error {
	var rrt mat.Dense
	rrt.Mul(r, r.T())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(rrt.At(i, j)-want) > rotationTolerance {
				return fmt.Errorf("rotation block is not orthonormal")
			}
		}
	}
	if det := mat.Det(r); math.Abs(det-1) > rotationTolerance {
		return fmt.Errorf("rotation block has determinant %.6f, want +1", det)
	}
	return nil
}

// Package poseconv re-expresses camera-to-world transforms from the OpenCV
// axis convention used by COLMAP/Nerfstudio in the ROS REP-103 convention,
// and stamps each pose from its frame number in the source video.
package poseconv

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/banshee-data/pose.report/internal/media"
	"github.com/banshee-data/pose.report/internal/nerf"
	"github.com/banshee-data/pose.report/internal/rosmsg"
)

// Errors surfaced by Convert. All are fatal: the converter produces either
// the full pose list or nothing. ErrInvalidFrameRate is the media probe's
// sentinel, so callers can match a bad rate at either layer.
var (
	ErrEmptyDataset     = errors.New("dataset has no frames")
	ErrInvalidFrameRate = media.ErrInvalidFrameRate
)

// MalformedFrameError identifies the frame that could not be converted.
type MalformedFrameError struct {
	Index    int
	FilePath string
	Err      error
}

func (e *MalformedFrameError) Error() string {
	return fmt.Sprintf("frame %d (%s): %v", e.Index, e.FilePath, e.Err)
}

func (e *MalformedFrameError) Unwrap() error { return e.Err }

// cvToROS maps OpenCV camera axes (+X right, +Y down, +Z forward) onto ROS
// REP-103 axes (+X forward, +Y left, +Z up). A single shared value, applied
// unchanged to every frame.
var cvToROS = mat.NewDense(3, 3, []float64{
	0, 0, 1,
	-1, 0, 0,
	0, -1, 0,
})

// Convert maps every frame to a stamped ROS pose, preserving input order.
// Timestamps derive from each frame's 1-based number in the source video, so
// frame_0001 lands at t=0.
func Convert(frames []nerf.Frame, fps float64, frameID string) ([]rosmsg.PoseStamped, error) {
	if len(frames) == 0 {
		return nil, ErrEmptyDataset
	}
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidFrameRate, fps)
	}

	poses := make([]rosmsg.PoseStamped, 0, len(frames))
	for i, frame := range frames {
		number, err := nerf.FrameNumber(frame.FilePath)
		if err != nil {
			return nil, &MalformedFrameError{Index: i, FilePath: frame.FilePath, Err: err}
		}
		if number < 1 {
			return nil, &MalformedFrameError{Index: i, FilePath: frame.FilePath,
				Err: fmt.Errorf("frame number %d, want >= 1", number)}
		}
		m, err := frame.Matrix()
		if err != nil {
			return nil, &MalformedFrameError{Index: i, FilePath: frame.FilePath, Err: err}
		}
		pos, orient, err := ConvertPose(m)
		if err != nil {
			return nil, &MalformedFrameError{Index: i, FilePath: frame.FilePath, Err: err}
		}
		poses = append(poses, rosmsg.PoseStamped{
			Header: rosmsg.Header{
				Stamp:   rosmsg.TimeAtFrame(number-1, fps),
				FrameID: frameID,
			},
			Pose: rosmsg.Pose{Position: pos, Orientation: orient},
		})
	}
	return poses, nil
}

// ConvertPose re-expresses a single 4x4 camera-to-world transform in ROS
// axes, returning the translation and a unit orientation quaternion.
func ConvertPose(c2w *mat.Dense) (rosmsg.Point, rosmsg.Quaternion, error) {
	rows, cols := c2w.Dims()
	if rows != 4 || cols != 4 {
		return rosmsg.Point{}, rosmsg.Quaternion{}, fmt.Errorf("transform is %dx%d, want 4x4", rows, cols)
	}

	var rot mat.Dense
	rot.Mul(cvToROS, c2w.Slice(0, 3, 0, 3))

	var trans mat.VecDense
	trans.MulVec(cvToROS, mat.NewVecDense(3, []float64{
		c2w.At(0, 3), c2w.At(1, 3), c2w.At(2, 3),
	}))

	q := quatFromRotation(&rot)
	pos := rosmsg.Point{X: trans.AtVec(0), Y: trans.AtVec(1), Z: trans.AtVec(2)}
	return pos, rosmsg.Quaternion{X: q.Imag, Y: q.Jmag, Z: q.Kmag, W: q.Real}, nil
}

// quatFromRotation extracts a unit quaternion from a 3x3 rotation matrix.
// It branches on the largest of the trace and the three diagonal terms so
// the divisor stays well away from zero, including for rotations near 180
// degrees where the naive trace formula breaks down.
func quatFromRotation(r *mat.Dense) quat.Number {
	m00, m01, m02 := r.At(0, 0), r.At(0, 1), r.At(0, 2)
	m10, m11, m12 := r.At(1, 0), r.At(1, 1), r.At(1, 2)
	m20, m21, m22 := r.At(2, 0), r.At(2, 1), r.At(2, 2)

	var q quat.Number
	switch tr := m00 + m11 + m22; {
	case tr > 0:
		s := 2 * math.Sqrt(tr+1)
		q = quat.Number{
			Real: s / 4,
			Imag: (m21 - m12) / s,
			Jmag: (m02 - m20) / s,
			Kmag: (m10 - m01) / s,
		}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1 + m00 - m11 - m22)
		q = quat.Number{
			Real: (m21 - m12) / s,
			Imag: s / 4,
			Jmag: (m01 + m10) / s,
			Kmag: (m02 + m20) / s,
		}
	case m11 > m22:
		s := 2 * math.Sqrt(1 + m11 - m00 - m22)
		q = quat.Number{
			Real: (m02 - m20) / s,
			Imag: (m01 + m10) / s,
			Jmag: s / 4,
			Kmag: (m12 + m21) / s,
		}
	default:
		s := 2 * math.Sqrt(1 + m22 - m00 - m11)
		q = quat.Number{
			Real: (m10 - m01) / s,
			Imag: (m02 + m20) / s,
			Jmag: (m12 + m21) / s,
			Kmag: s / 4,
		}
	}
	return quat.Scale(1/quat.Abs(q), q)
}

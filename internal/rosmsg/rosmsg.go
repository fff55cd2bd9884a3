// Package rosmsg carries the subset of ROS2 message shapes this tool emits
// (geometry_msgs/PoseStamped and its parts) and their YAML document form.
package rosmsg

import (
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

const nanosPerSecond = 1_000_000_000

// Time is a ROS2 builtin_interfaces/Time: whole seconds plus nanoseconds in
// [0, 1e9).
type Time struct {
	Sec     int64 `yaml:"sec"`
	Nanosec int64 `yaml:"nanosec"`
}

// TimeAtFrame derives the stamp for a 0-based frame index at the given frame
// rate. The nanosecond part rounds to nearest and carries into seconds, so
// Nanosec never reaches 1e9.
func TimeAtFrame(index int, fps float64) Time {
	elapsed := float64(index) / fps
	sec := math.Floor(elapsed)
	t := Time{
		Sec:     int64(sec),
		Nanosec: int64(math.Round((elapsed - sec) * nanosPerSecond)),
	}
	if t.Nanosec >= nanosPerSecond {
		t.Sec++
		t.Nanosec -= nanosPerSecond
	}
	return t
}

// Compare orders two stamps: -1 if t is earlier than u, 0 if equal, +1 if
// later.
func (t Time) Compare(u Time) int {
	switch {
	case t.Sec < u.Sec:
		return -1
	case t.Sec > u.Sec:
		return 1
	case t.Nanosec < u.Nanosec:
		return -1
	case t.Nanosec > u.Nanosec:
		return 1
	}
	return 0
}

// Header is std_msgs/Header: the stamp plus the reference frame the pose is
// expressed in.
type Header struct {
	Stamp   Time   `yaml:"stamp"`
	FrameID string `yaml:"frame_id"`
}

// Point is geometry_msgs/Point.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Quaternion is geometry_msgs/Quaternion.
type Quaternion struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
	W float64 `yaml:"w"`
}

// Pose is geometry_msgs/Pose.
type Pose struct {
	Position    Point      `yaml:"position"`
	Orientation Quaternion `yaml:"orientation"`
}

// PoseStamped is geometry_msgs/PoseStamped.
type PoseStamped struct {
	Header Header `yaml:"header"`
	Pose   Pose   `yaml:"pose"`
}

// Document is the body of the emitted YAML file.
type Document struct {
	Poses []PoseStamped `yaml:"poses"`
}

// OutputFileName names the emitted document after the source video.
func OutputFileName(videoStem string) string {
	return "COLMAP_camera_pose_" + videoStem + ".yaml"
}

// WriteDocument writes the pose list as YAML, preceded by a comment block
// stating what each record is and which frame it is relative to.
func WriteDocument(w io.Writer, doc *Document, frameID string) error {
	header := fmt.Sprintf(
		"# ROS2-compatible 6DoF camera poses extracted from Nerfstudio (COLMAP).\n"+
			"# Each entry represents a geometry_msgs/PoseStamped message.\n"+
			"# The pose describes the camera's frame (camera_link) relative to the '%s' frame.\n"+
			"# Coordinate system has been transformed to the ROS standard (X forward, Y left, Z up).\n",
		frameID)
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("write document header: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode poses: %w", err)
	}
	return enc.Close()
}

// Package media probes source video metadata via ffprobe.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrInvalidFrameRate reports a probed rate that is unreadable or not a
// positive finite number.
var ErrInvalidFrameRate = errors.New("frame rate must be a positive finite number")

// ProbeFrameRate returns the frame rate of the first video stream in the
// file, as reported by ffprobe's r_frame_rate field (a "num/den" rational).
// ffprobe must be on PATH.
func ProbeFrameRate(ctx context.Context, videoPath string) (float64, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return 0, fmt.Errorf("video file: %w", err)
	}
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=r_frame_rate",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return 0, fmt.Errorf("ffprobe %s: %s", videoPath, bytes.TrimSpace(exitErr.Stderr))
		}
		return 0, fmt.Errorf("ffprobe %s: %w", videoPath, err)
	}
	return ParseFrameRate(string(out))
}

// ParseFrameRate parses an r_frame_rate rational such as "30000/1001".
// A bare number without a denominator is accepted; some containers report
// the rate that way.
func ParseFrameRate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	numStr, denStr, ok := strings.Cut(s, "/")
	if !ok {
		denStr = "1"
	}
	num, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidFrameRate, s, err)
	}
	den, err := strconv.ParseFloat(denStr, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidFrameRate, s, err)
	}
	if den == 0 {
		return 0, fmt.Errorf("%w: %q has zero denominator", ErrInvalidFrameRate, s)
	}
	fps := num / den
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return 0, fmt.Errorf("%w: got %q", ErrInvalidFrameRate, s)
	}
	return fps, nil
}

// Stem returns the video's base name without its extension, used to name
// artifacts derived from it.
func Stem(videoPath string) string {
	base := filepath.Base(videoPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

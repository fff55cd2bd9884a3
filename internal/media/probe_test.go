package media

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
)

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "integer rate", input: "30/1", want: 30},
		{name: "ntsc rate", input: "30000/1001", want: 30000.0 / 1001.0},
		{name: "bare number", input: "25", want: 25},
		{name: "trailing newline", input: "60/1\n", want: 60},
		{name: "zero denominator", input: "0/0", wantErr: true},
		{name: "zero rate", input: "0/1", wantErr: true},
		{name: "negative rate", input: "-30/1", wantErr: true},
		{name: "junk", input: "not-a-rate", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFrameRate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseFrameRate(%q) = %v, want error", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidFrameRate) {
					t.Errorf("ParseFrameRate(%q) error %v is not ErrInvalidFrameRate", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFrameRate(%q): %v", tt.input, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseFrameRate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestProbeFrameRateMissingFile(t *testing.T) {
	_, err := ProbeFrameRate(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	if err == nil {
		t.Fatal("expected error for missing video file")
	}
	// A missing file is an IO failure, not a rate failure.
	if errors.Is(err, ErrInvalidFrameRate) {
		t.Errorf("missing-file error %v should not be ErrInvalidFrameRate", err)
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "/data/videos/bigScrew2.mp4", want: "bigScrew2"},
		{input: "clip.mov", want: "clip"},
		{input: "archive/no_extension", want: "no_extension"},
		{input: "a/b/two.dots.mkv", want: "two.dots"},
	}
	for _, tt := range tests {
		if got := Stem(tt.input); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

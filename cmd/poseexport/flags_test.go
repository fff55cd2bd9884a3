package main

import "testing"

// TestFlagDefaults verifies the flags exist with the expected defaults.
func TestFlagDefaults(t *testing.T) {
	if frameID == nil {
		t.Fatal("frame-id flag not defined")
	}
	if *frameID != "map" {
		t.Errorf("expected frame-id default to be %q, got %q", "map", *frameID)
	}

	if plotFlag == nil {
		t.Fatal("plot flag not defined")
	}
	if *plotFlag {
		t.Error("expected plot default to be false")
	}

	for name, f := range map[string]*string{
		"project":    projectPath,
		"video":      videoPath,
		"output-dir": outputDir,
	} {
		if f == nil {
			t.Fatalf("%s flag not defined", name)
		}
		if *f != "" {
			t.Errorf("expected %s default to be empty, got %q", name, *f)
		}
	}
}

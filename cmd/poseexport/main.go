// poseexport converts Nerfstudio/COLMAP camera poses (transforms.json) into
// a ROS2-compatible YAML list of geometry_msgs/PoseStamped records,
// timestamped from the source video's frame rate.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/banshee-data/pose.report/internal/media"
	"github.com/banshee-data/pose.report/internal/nerf"
	"github.com/banshee-data/pose.report/internal/plotpath"
	"github.com/banshee-data/pose.report/internal/poseconv"
	"github.com/banshee-data/pose.report/internal/rosmsg"
	"github.com/banshee-data/pose.report/internal/version"
)

var (
	projectPath = flag.String("project", "", "Nerfstudio project directory containing transforms.json")
	videoPath   = flag.String("video", "", "Original video file, used to derive frame timestamps")
	outputDir   = flag.String("output-dir", "", "Directory the YAML file is written to")
	frameID     = flag.String("frame-id", "map", "Fixed world frame_id for the pose headers")
	plotFlag    = flag.Bool("plot", false, "Also write a top-down camera path plot")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println("poseexport " + version.String())
		return
	}

	if *projectPath == "" || *videoPath == "" || *outputDir == "" {
		log.Fatal("-project, -video and -output-dir are required")
	}

	transformsPath := filepath.Join(*projectPath, "transforms.json")
	log.Printf("Reading transforms from: %s", transformsPath)
	dataset, err := nerf.Load(transformsPath)
	if err != nil {
		log.Fatalf("failed to load transforms: %v", err)
	}

	log.Printf("Getting FPS from: %s", *videoPath)
	fps, err := media.ProbeFrameRate(context.Background(), *videoPath)
	if err != nil {
		log.Fatalf("failed to probe frame rate: %v", err)
	}
	log.Printf("Detected FPS: %g", fps)

	poses, err := poseconv.Convert(dataset.SortedFrames(), fps, *frameID)
	if err != nil {
		log.Fatalf("failed to convert poses: %v", err)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	stem := media.Stem(*videoPath)
	outPath := filepath.Join(*outputDir, rosmsg.OutputFileName(stem))
	f, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("failed to create %s: %v", outPath, err)
	}
	if err := rosmsg.WriteDocument(f, &rosmsg.Document{Poses: poses}, *frameID); err != nil {
		f.Close()
		log.Fatalf("failed to write %s: %v", outPath, err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("failed to close %s: %v", outPath, err)
	}
	log.Printf("Saved %d poses to %s", len(poses), outPath)

	if *plotFlag {
		plotFile := filepath.Join(*outputDir, "COLMAP_camera_path_"+stem+".png")
		if err := plotpath.WritePathPlot(poses, plotFile); err != nil {
			log.Fatalf("failed to plot camera path: %v", err)
		}
		log.Printf("Saved camera path plot to %s", plotFile)
	}
}

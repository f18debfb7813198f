// slicer - mesh-to-toolpath slicing core
//
// Slices an STL model into layer cross-sections, concentric perimeter
// walls, and gyroid infill, and prints a per-layer summary.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/krasin/steel-slicer/gcode"
	"github.com/krasin/steel-slicer/mesh"
	"github.com/krasin/steel-slicer/pipeline"
	"github.com/krasin/steel-slicer/slicer"
)

var (
	layerMode     string
	layerValue    float64
	lineWidth     float64
	wallCount     int
	lineSpacing   float64
	samplingStep  float64
	tolerance     float64
	maxIterations int
)

func main() {
	root := &cobra.Command{
		Use:   "slicer",
		Short: "Mesh-to-toolpath slicing core",
	}

	sliceCmd := &cobra.Command{
		Use:   "slice <file.stl>",
		Short: "Slice a model and print a per-layer summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSlice(cmd.Context(), args[0])
		},
	}
	sliceCmd.Flags().StringVar(&layerMode, "layer-mode", "thickness", "layer schedule mode: thickness or count")
	sliceCmd.Flags().Float64Var(&layerValue, "layer-value", 1.0, "layer thickness (mm) or layer count, per --layer-mode")
	sliceCmd.Flags().Float64Var(&lineWidth, "line-width", 0.5, "extruded line width (mm)")
	sliceCmd.Flags().IntVar(&wallCount, "wall-count", 3, "number of concentric perimeter walls")
	sliceCmd.Flags().Float64Var(&lineSpacing, "line-spacing", 1.0, "gyroid infill line spacing (mm)")
	sliceCmd.Flags().Float64Var(&samplingStep, "sampling-step", 0, "adaptive sampling base step Δx (0 = default π/50)")
	sliceCmd.Flags().Float64Var(&tolerance, "tolerance", 0.1, "adaptive sampling slope tolerance")
	sliceCmd.Flags().IntVar(&maxIterations, "max-iterations", 100, "max refinement bisections per sample step")
	root.AddCommand(sliceCmd)

	infoCmd := &cobra.Command{
		Use:   "info <file.stl>",
		Short: "Display mesh statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}
	root.AddCommand(infoCmd)

	gcodeCheckCmd := &cobra.Command{
		Use:   "gcode-check <file.gcode>",
		Short: "Parse a G-code file and print its decoded command list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGcodeCheck(args[0])
		},
	}
	root.AddCommand(gcodeCheckCmd)

	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}

func runSlice(ctx context.Context, path string) error {
	m, err := mesh.Load(path)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	mode := slicer.Thickness
	if layerMode == "count" {
		mode = slicer.Count
	}

	cfg := pipeline.Config{
		LayerMode:     mode,
		LayerValue:    layerValue,
		LineWidth:     lineWidth,
		WallCount:     wallCount,
		LineSpacing:   lineSpacing,
		SamplingStep:  samplingStep,
		Tolerance:     tolerance,
		MaxIterations: maxIterations,
	}

	res, err := pipeline.Run(ctx, m, cfg)
	if err != nil {
		return fmt.Errorf("slice: %w", err)
	}

	fmt.Printf("%-10s %-10s %-18s %-14s\n", "Z", "Polygons", "Perimeter Verts", "Infill Verts")
	for _, lr := range res.Layers {
		perimeterVerts := 0
		for _, walls := range lr.Walls {
			for _, w := range walls {
				for _, loop := range w.Loops {
					perimeterVerts += len(loop)
				}
			}
		}
		infillVerts := len(lr.Vertices) - perimeterVerts
		if infillVerts < 0 {
			infillVerts = 0
		}
		fmt.Printf("%-10.4f %-10d %-18d %-14d\n", lr.Z, len(lr.Polygons), perimeterVerts, infillVerts)
	}

	if len(res.Errors) > 0 {
		fmt.Fprintf(os.Stderr, "\n%d layer(s) reported errors:\n", len(res.Errors))
		for _, le := range res.Errors {
			fmt.Fprintf(os.Stderr, "  %v\n", le)
		}
	}

	return nil
}

func runInfo(path string) error {
	m, err := mesh.Load(path)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	minB, maxB := m.Bounds()
	size := m.Size()
	center := m.Center()

	fmt.Printf("File:       %s\n", filepath.Base(path))
	fmt.Println()
	fmt.Printf("Vertices:   %d\n", m.VertexCount())
	fmt.Printf("Triangles:  %d\n", m.TriangleCount())
	fmt.Println()
	fmt.Printf("Bounds Min: (%.3f, %.3f, %.3f)\n", minB.X, minB.Y, minB.Z)
	fmt.Printf("Bounds Max: (%.3f, %.3f, %.3f)\n", maxB.X, maxB.Y, maxB.Z)
	fmt.Printf("Dimensions: %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	fmt.Printf("Center:     (%.3f, %.3f, %.3f)\n", center.X, center.Y, center.Z)

	return nil
}

func runGcodeCheck(path string) error {
	e, err := gcode.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse gcode: %w", err)
	}

	fmt.Printf("%s: %d recognized command(s)\n", filepath.Base(path), len(e.Operations))
	for i, op := range e.Operations {
		fmt.Printf("%4d  %-5s %v\n", i, op.Cmd, op.Args)
	}

	return nil
}

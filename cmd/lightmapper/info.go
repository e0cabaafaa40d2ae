package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/taigrr/lightmapper/pkg/models"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <mesh.obj|mesh.glb>",
		Short: "Show mesh statistics relevant to baking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mesh, err := models.LoadMesh(args[0])
			if err != nil {
				return fmt.Errorf("load mesh: %w", err)
			}
			printInfo(cmd.OutOrStdout(), args[0], mesh)
			return nil
		},
	}
}

func printInfo(w io.Writer, path string, mesh *models.Mesh) {
	size := mesh.Size()

	fmt.Fprintf(w, "File:       %s\n", filepath.Base(path))
	fmt.Fprintf(w, "Vertices:   %d\n", mesh.VertexCount())
	fmt.Fprintf(w, "Triangles:  %d\n", mesh.TriangleCount())
	fmt.Fprintf(w, "Bounds:     %v to %v\n", mesh.BoundsMin, mesh.BoundsMax)
	fmt.Fprintf(w, "Size:       %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)

	if !mesh.HasUVs {
		fmt.Fprintln(w, "UVs:        none (cannot be baked)")
		return
	}
	umin, umax := mesh.UVBounds()
	fmt.Fprintf(w, "UV bounds:  (%.3f, %.3f) to (%.3f, %.3f)\n", umin.X, umin.Y, umax.X, umax.Y)
	if umin.X < 0 || umin.Y < 0 || umax.X > 1 || umax.Y > 1 {
		fmt.Fprintln(w, "Warning:    UVs leave [0,1]; texels outside are clamped to the edge")
	}
}

package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Cabbache/meshtransform/internal/mesh"
)

// newTransformCmd groups the vertex-stream transformation commands. Each
// subcommand reads an ASCII mesh stream (Wavefront OBJ or ASCII STL) from
// stdin, transforms every vertex line, and writes the stream to stdout.
func newTransformCmd() *cobra.Command {
	transformCmd := &cobra.Command{
		Use:   "transform",
		Short: "Apply a geometric transformation to a mesh vertex stream on stdin",
	}

	transformCmd.AddCommand(newTranslateCmd())
	transformCmd.AddCommand(newRotateCmd())
	transformCmd.AddCommand(newScaleCmd())
	transformCmd.AddCommand(newWarpCmd())

	return transformCmd
}

// runTransform streams stdin through the transformer to stdout.
func runTransform(cmd *cobra.Command, t mesh.Transformer) error {
	return mesh.Apply(t, cmd.InOrStdin(), cmd.OutOrStdout())
}

func newTranslateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "translate <x,y,z>",
		Short: "Translate every vertex by a vector with comma separated values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := mesh.ParseVec(args[0])
			if err != nil {
				return err
			}
			return runTransform(cmd, mesh.Translate{Offset: offset})
		},
	}
}

func newRotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate <axis x,y,z> <angle>",
		Short: "Rotate every vertex about an axis through the origin by an angle in radians",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			axis, err := mesh.ParseVec(args[0])
			if err != nil {
				return err
			}
			angle, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return err
			}
			return runTransform(cmd, mesh.Rotate{Axis: axis, Angle: angle})
		},
	}
}

func newScaleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scale <x,y,z>",
		Short: "Scale every vertex componentwise by a vector with comma separated values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			factors, err := mesh.ParseVec(args[0])
			if err != nil {
				return err
			}
			return runTransform(cmd, mesh.Scale{Factors: factors})
		},
	}
}

func newWarpCmd() *cobra.Command {
	var lineSpecs []string

	warpCmd := &cobra.Command{
		Use:   "warp [--line \"ox,oy,oz hx,hy,hz\"]...",
		Short: "Warp every vertex guided by a set of lines. This transformation is non-linear",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines := make([]mesh.Line, 0, len(lineSpecs))
			for _, spec := range lineSpecs {
				line, err := mesh.ParseGuideLine(spec)
				if err != nil {
					return err
				}
				lines = append(lines, line)
			}

			// No lines given: warp against the x and z axes through the
			// origin. A single line is rejected by NewWarp.
			if len(lines) == 0 {
				lines = []mesh.Line{
					{Heading: r3.Vec{X: 1}},
					{Heading: r3.Vec{Z: 1}},
				}
			}

			warp, err := mesh.NewWarp(lines)
			if err != nil {
				return err
			}
			return runTransform(cmd, warp)
		},
	}

	warpCmd.Flags().StringArrayVar(&lineSpecs, "line", nil,
		"Specifies a line with two vectors (origin then heading). Should be used multiple times")

	return warpCmd
}

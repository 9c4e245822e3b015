package cmd

import (
	"fmt"
	"os"

	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/Cabbache/meshtransform/internal/mesh"
)

// newInfoCmd creates the `info` command, which inspects an STL file without
// involving the host application.
func newInfoCmd() *cobra.Command {
	infoCmd := &cobra.Command{
		Use:   "info <mesh.stl>",
		Short: "Inspect an STL file (binary or ASCII) and report its geometry stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			info, err := mesh.ReadInfo(f)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				data, err := json.ConfigCompatibleWithStandardLibrary.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			case "text":
				fmt.Fprintf(out, "File:         %s\n", args[0])
				fmt.Fprintf(out, "Format:       %s\n", info.Format)
				fmt.Fprintf(out, "Triangles:    %d\n", info.Triangles)
				fmt.Fprintf(out, "Bounds min:   %g, %g, %g\n", info.Min[0], info.Min[1], info.Min[2])
				fmt.Fprintf(out, "Bounds max:   %g, %g, %g\n", info.Max[0], info.Max[1], info.Max[2])
				fmt.Fprintf(out, "Surface area: %g\n", info.SurfaceArea)
			default:
				return fmt.Errorf("unsupported format %q (want 'text' or 'json')", format)
			}
			return nil
		},
	}

	infoCmd.Flags().StringP("format", "f", "text", "Output format ('text' or 'json').")

	return infoCmd
}

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Cabbache/meshtransform/internal/config"
	"github.com/Cabbache/meshtransform/internal/host"
	"github.com/Cabbache/meshtransform/internal/host/blender"
	"github.com/Cabbache/meshtransform/internal/observability"
	"github.com/Cabbache/meshtransform/internal/render"
)

// newHostSession creates the host session for a render run. It is a package
// variable so tests can substitute the in-memory host.
var newHostSession = func(cfg config.HostConfig, logger *zap.Logger) host.Session {
	return blender.NewSession(cfg, logger)
}

// newRenderCmd creates and configures the `render` command.
func newRenderCmd() *cobra.Command {
	renderCmd := &cobra.Command{
		Use:   "render <mesh.stl>",
		Short: "Clear prior mesh geometry, import an STL file and render a still PNG",
		Long: `Drives a headless Blender session: every mesh object whose name starts
with the cleanup prefix is deleted from the scene, the given STL file is
imported, and a still image is rendered to <input>.png (suffix appended to
the input path, original extension kept).`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags to their viper keys so command-line flags override
			// values from the config file and environment.
			if err := viper.BindPFlag("host.binary", cmd.Flags().Lookup("blender")); err != nil {
				return err
			}
			if err := viper.BindPFlag("host.scene_file", cmd.Flags().Lookup("scene")); err != nil {
				return err
			}
			if err := viper.BindPFlag("host.cleanup_prefix", cmd.Flags().Lookup("prefix")); err != nil {
				return err
			}
			return viper.BindPFlag("host.render_timeout", cmd.Flags().Lookup("timeout"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Use the context passed from main.go (signal-aware).
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := config.NewConfigFromViper(viper.GetViper())
			if err != nil {
				return err
			}

			inputPath := args[0]
			renderID := uuid.New().String()
			logger.Info("Starting render run",
				zap.String("renderID", renderID),
				zap.String("input", inputPath),
				zap.String("scene", cfg.Host.SceneName),
				zap.String("cleanup_prefix", cfg.Host.CleanupPrefix),
			)

			session := newHostSession(cfg.Host, logger)
			pipeline, err := render.New(cfg, logger, session)
			if err != nil {
				return fmt.Errorf("failed to initialize render pipeline: %w", err)
			}

			outputPath, err := pipeline.Run(ctx, inputPath)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					logger.Warn("Render aborted gracefully", zap.String("renderID", renderID))
				}
				return err
			}

			logger.Info("Render run completed", zap.String("renderID", renderID))
			fmt.Fprintf(cmd.OutOrStdout(), "Render complete: %s\n", outputPath)
			return nil
		},
	}

	renderCmd.Flags().String("blender", "", "Path to the Blender executable. (Overrides config/env)")
	renderCmd.Flags().String("scene", "", "Optional .blend scene file opened before the run.")
	renderCmd.Flags().StringP("prefix", "p", "", "Name prefix of mesh objects deleted before import. (Overrides config/env)")
	renderCmd.Flags().Duration("timeout", 0, "Timeout for the host render run. (Overrides config/env)")

	return renderCmd
}

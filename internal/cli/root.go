package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/glyphforge/glyphforge/pkg/buildinfo"
)

// Execute runs the glyphforge CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool
	var configPath string

	root := &cobra.Command{
		Use:          "glyphforge",
		Short:        "GlyphForge synthesizes and validates raster glyph capsules",
		Long:         `GlyphForge is a CLI tool for generating musical symbol rasters, running them through the binarize/skeletonize/validate pipeline, and packaging the results as content-addressed capsules.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")

	root.AddCommand(newGenerateCmd(&configPath))
	root.AddCommand(newMorphCmd(&configPath))
	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newRegistryCmd(&configPath))
	root.AddCommand(newAssetsCmd(&configPath))

	return root.ExecuteContext(ctx)
}

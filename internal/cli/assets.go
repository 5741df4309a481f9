package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/glyphforge/glyphforge/pkg/source"
)

// newAssetsCmd creates the assets command listing morph sources.
func newAssetsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "List source rasters available for morphing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssets(cmd.Context(), *configPath)
		},
	}
	return cmd
}

func runAssets(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	names, err := source.NewDir(cfg.Paths.AssetRoot).List(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		printDetail("no assets under %s", cfg.Paths.AssetRoot)
		return nil
	}

	printSuccess("%d assets in %s", len(names), cfg.Paths.AssetRoot)
	for _, name := range names {
		printDetail("%s", name)
	}
	return nil
}

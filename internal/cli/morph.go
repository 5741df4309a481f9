package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/glyphforge/glyphforge/pkg/blend"
	"github.com/glyphforge/glyphforge/pkg/capsule"
	"github.com/glyphforge/glyphforge/pkg/export"
	"github.com/glyphforge/glyphforge/pkg/forge"
)

// morphOpts holds the command-line flags for the morph command.
type morphOpts struct {
	mode      string   // blend formula name
	factor    float64  // interpolation factor
	name      string   // template name override
	overrides []string // validator overrides, "Name=reason"
	outDir    string   // export directory override
	noExport  bool     // validate only, write nothing
}

// newMorphCmd creates the morph command for blending two source rasters.
func newMorphCmd(configPath *string) *cobra.Command {
	opts := morphOpts{mode: string(blend.ModeLinear), factor: 0.5}

	cmd := &cobra.Command{
		Use:   "morph <source-a> <source-b>",
		Short: "Blend two source rasters into a validated capsule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMorph(cmd.Context(), args[0], args[1], *configPath, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", opts.mode, "blend mode: linear, alpha, additive, multiply, screen, overlay")
	cmd.Flags().Float64VarP(&opts.factor, "factor", "f", opts.factor, "interpolation factor in [0, 1]")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "template name (default derived from the sources)")
	cmd.Flags().StringArrayVar(&opts.overrides, "override", nil, "validator override as \"Validator Name=reason\" (repeatable)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "export directory (default from config)")
	cmd.Flags().BoolVar(&opts.noExport, "no-export", false, "run the pipeline without writing files")

	return cmd
}

func runMorph(ctx context.Context, sourceA, sourceB, configPath string, opts *morphOpts) error {
	prog := newProgress(loggerFromContext(ctx))

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	overrides, err := parseOverrides(opts.overrides)
	if err != nil {
		return err
	}
	mode, err := blend.ParseMode(opts.mode)
	if err != nil {
		return err
	}

	f := newForge(ctx, cfg)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Morphing %s and %s...", sourceA, sourceB))
	spinner.Start()
	c, err := f.Morph(ctx, forge.MorphRequest{
		SourceA:   sourceA,
		SourceB:   sourceB,
		Mode:      mode,
		Factor:    opts.factor,
		Name:      opts.name,
		Overrides: overrides,
	})
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Morph failed: %v", err))
		return err
	}
	defer c.Close()
	spinner.Stop()

	printCapsuleSummary(c)

	if opts.noExport {
		prog.done("Morph complete (dry run)")
		return nil
	}

	outDir := cfg.Paths.ExportDir
	if opts.outDir != "" {
		outDir = opts.outDir
	}
	reg, err := openRegistry(ctx, cfg)
	if err != nil {
		return err
	}
	defer reg.Close()

	if err := export.New(outDir, reg).Export(ctx, c); err != nil {
		return err
	}
	printFile(filepath.Join(outDir, c.Metadata().CapsuleID+".png"))
	prog.done("Morph exported")
	return nil
}

// printCapsuleSummary prints the capsule ID, validity, and per-validator
// results.
func printCapsuleSummary(c *capsule.Capsule) {
	if c.Valid() {
		printSuccess("Capsule %s is valid", c.Metadata().CapsuleID)
	} else {
		printWarning("Capsule %s failed validation", c.Metadata().CapsuleID)
	}
	printKeyValue("hash", c.Metadata().TemplateHash)
	if m := c.Metrics(); m != nil {
		printKeyValue("density", fmt.Sprintf("%.2f%%", m.Density))
	}
	for _, res := range c.Results() {
		status := StyleSuccess.Render(iconSuccess)
		if !res.Valid {
			status = styleIconError.Render(iconError)
		}
		printDetail("%s %s: %s", status, res.Validator, res.Message)
	}
}

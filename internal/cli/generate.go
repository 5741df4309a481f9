package cli

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/glyphforge/glyphforge/pkg/export"
	"github.com/glyphforge/glyphforge/pkg/forge"
	"github.com/glyphforge/glyphforge/pkg/gen"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	sizes     string   // comma-separated WxH list; first is the primary
	seed      int64    // generation seed
	seedSet   bool     // whether --seed was given
	outputs   []string // output forms: raw, binarized, skeletonized
	edgeCases []string // edge-case variants: rotated, cropped, blurred
	overrides []string // validator overrides, "Name=reason"
	outDir    string   // export directory override
	noExport  bool     // validate only, write nothing
}

// newGenerateCmd creates the generate command. With one kind argument it
// runs a single generation; with several (or --all) it runs a batch with a
// progress view; without any it opens an interactive kind picker.
func newGenerateCmd(configPath *string) *cobra.Command {
	opts := generateOpts{sizes: "64x96"}
	var all bool

	cmd := &cobra.Command{
		Use:   "generate [kind...]",
		Short: "Synthesize glyph capsules and export them to disk",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seedSet = cmd.Flags().Changed("seed")

			kinds := args
			if all {
				kinds = gen.DefaultRegistry().Kinds()
			}
			if len(kinds) == 0 {
				selected, err := pickKind()
				if err != nil {
					return err
				}
				if selected == "" {
					return nil // user quit the picker
				}
				kinds = []string{selected}
			}
			if len(kinds) == 1 {
				return runGenerate(cmd.Context(), kinds[0], *configPath, &opts)
			}
			return runBatch(cmd.Context(), kinds, *configPath, &opts)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "generate every registered kind")

	cmd.Flags().StringVarP(&opts.sizes, "sizes", "s", opts.sizes, "comma-separated WxH sizes; the first is the primary")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "seed for stochastic generators")
	cmd.Flags().StringSliceVar(&opts.outputs, "output", nil, "output forms: raw, binarized (default), skeletonized")
	cmd.Flags().StringSliceVar(&opts.edgeCases, "edge-cases", nil, "edge-case variants: rotated, cropped, blurred")
	cmd.Flags().StringArrayVar(&opts.overrides, "override", nil, "validator override as \"Validator Name=reason\" (repeatable)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "export directory (default from config)")
	cmd.Flags().BoolVar(&opts.noExport, "no-export", false, "run the pipeline without writing files")

	return cmd
}

// buildRequest converts flags into a forge request.
func (o *generateOpts) buildRequest(kind string) (forge.Request, error) {
	dims, err := parseSizes(o.sizes)
	if err != nil {
		return forge.Request{}, err
	}

	overrides, err := parseOverrides(o.overrides)
	if err != nil {
		return forge.Request{}, err
	}

	req := forge.Request{
		Kind:       kind,
		Dimensions: dims,
		Overrides:  overrides,
	}
	if o.seedSet {
		seed := o.seed
		req.Seed = &seed
	}
	for _, s := range o.outputs {
		form, err := forge.ParseOutputForm(s)
		if err != nil {
			return forge.Request{}, err
		}
		req.Outputs = append(req.Outputs, form)
	}
	for _, s := range o.edgeCases {
		ec, err := forge.ParseEdgeCaseKind(s)
		if err != nil {
			return forge.Request{}, err
		}
		req.EdgeCases = append(req.EdgeCases, ec)
	}
	return req, nil
}

func runGenerate(ctx context.Context, kind, configPath string, opts *generateOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	req, err := opts.buildRequest(kind)
	if err != nil {
		return err
	}

	f := newForge(ctx, cfg)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %s...", kind))
	spinner.Start()
	set, err := f.Generate(ctx, req)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Generation failed: %v", err))
		return err
	}
	defer set.Close()
	spinner.Stop()

	capsules := set.All()
	valid := 0
	for _, c := range capsules {
		if c.Valid() {
			valid++
		}
	}
	if valid == len(capsules) {
		printSuccess("Generated %d capsules", len(capsules))
	} else {
		printWarning("Generated %d capsules, %d failed validation", len(capsules), len(capsules)-valid)
	}
	for _, c := range capsules {
		status := StyleSuccess.Render(iconSuccess)
		if !c.Valid() {
			status = StyleWarning.Render(iconWarning)
		}
		printDetail("%s %s  density %.2f%%", status, c.Metadata().CapsuleID, c.Metrics().Density)
	}

	if opts.noExport {
		prog.done("Pipeline complete (dry run)")
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

	if err := export.New(outDir, reg).ExportSet(ctx, set); err != nil {
		return err
	}
	for _, c := range capsules {
		printFile(filepath.Join(outDir, c.Metadata().CapsuleID+".png"))
	}
	prog.done(fmt.Sprintf("Exported %d capsules", len(capsules)))
	return nil
}

// runBatch generates several kinds sequentially behind a bubbletea progress
// view, exporting each finished set before moving on.
func runBatch(ctx context.Context, kinds []string, configPath string, opts *generateOpts) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	f := newForge(ctx, cfg)

	outDir := cfg.Paths.ExportDir
	if opts.outDir != "" {
		outDir = opts.outDir
	}
	var exporter *export.Exporter
	if !opts.noExport {
		reg, err := openRegistry(ctx, cfg)
		if err != nil {
			return err
		}
		defer reg.Close()
		exporter = export.New(outDir, reg)
	}

	run := func(kind string) batchResult {
		req, err := opts.buildRequest(kind)
		if err != nil {
			return batchResult{Kind: kind, Err: err}
		}
		set, err := f.Generate(ctx, req)
		if err != nil {
			return batchResult{Kind: kind, Err: err}
		}
		defer set.Close()
		if exporter != nil {
			if err := exporter.ExportSet(ctx, set); err != nil {
				return batchResult{Kind: kind, Err: err}
			}
		}
		return batchResult{Kind: kind, Capsules: len(set.All()), Valid: set.Primary.Valid()}
	}

	final, err := tea.NewProgram(NewBatchModel(kinds, run)).Run()
	if err != nil {
		return err
	}

	m, ok := final.(BatchModel)
	if !ok {
		return nil
	}
	failed := 0
	for _, r := range m.Results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		printWarning("%d of %d kinds failed", failed, len(kinds))
		for _, r := range m.Results {
			if r.Err != nil {
				printDetail("%s: %v", r.Kind, r.Err)
			}
		}
		return fmt.Errorf("batch finished with %d failures", failed)
	}
	printSuccess("Generated %d kinds into %s", len(m.Results), outDir)
	return nil
}

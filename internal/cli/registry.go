package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/glyphforge/glyphforge/pkg/raster"
)

// newRegistryCmd creates the registry command for inspecting recorded
// capsules.
func newRegistryCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "List capsules recorded in the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegistryList(cmd.Context(), *configPath)
		},
	}
	return cmd
}

func runRegistryList(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	reg, err := openRegistry(ctx, cfg)
	if err != nil {
		return err
	}
	defer reg.Close()

	recs, err := reg.List(ctx)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		printDetail("registry is empty")
		return nil
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(recs))
	for i, r := range recs {
		status := iconSuccess
		if !r.Valid {
			status = iconWarning
		}
		rows[i] = []string{status, r.CapsuleID, raster.ShortHash(r.TemplateHash), r.CreatedAt.Format("2006-01-02 15:04")}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Capsule", "Hash", "Recorded").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 && row < len(recs) && !recs[row].Valid {
				return StyleWarning
			}
			return lipgloss.NewStyle()
		})

	fmt.Println(t.Render())
	printDetail("%d records (%s backend)", len(recs), cfg.Registry.Backend)
	return nil
}

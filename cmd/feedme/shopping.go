package feedme

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/esteban0203/FMA-2/internal/app"
	"github.com/esteban0203/FMA-2/internal/repository"
	"github.com/esteban0203/FMA-2/internal/service"
	"github.com/esteban0203/FMA-2/internal/view"
)

var (
	shoppingFormat string
	shoppingOut    string
)

var shoppingCmd = &cobra.Command{
	Use:   "shopping",
	Short: "Work with the shopping list",
}

var shoppingExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the shopping list as text, csv, json, or yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := service.ParseExportFormat(shoppingFormat)
		if err != nil {
			return err
		}
		var w io.Writer = cmd.OutOrStdout()
		if shoppingOut != "" {
			if err := app.EnsureDBDir(shoppingOut); err != nil {
				return err
			}
			f, err := os.Create(shoppingOut)
			if err != nil {
				return fmt.Errorf("create %s: %w", shoppingOut, err)
			}
			defer f.Close()
			w = f
		}
		return withRepo(cmd.Context(), func(repo repository.Repository) error {
			v := view.NewInventory(repo)
			v.SetTab(view.TabShopping)
			v.OpenExport()
			if err := v.Export(cmd.Context(), w, format); err != nil {
				return err
			}
			if shoppingOut != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported shopping list to %s\n", shoppingOut)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(shoppingCmd)
	shoppingCmd.AddCommand(shoppingExportCmd)
	shoppingExportCmd.Flags().StringVar(&shoppingFormat, "format", string(service.ExportText), "Output format: text, csv, json, or yaml")
	shoppingExportCmd.Flags().StringVar(&shoppingOut, "out", "", "Write to this file instead of stdout")
}

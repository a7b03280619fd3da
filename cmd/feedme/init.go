package feedme

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/esteban0203/FMA-2/internal/app"
	"github.com/esteban0203/FMA-2/internal/repository"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local feedme database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Store == app.StoreMemory {
			fmt.Fprintln(cmd.OutOrStdout(), "Memory store needs no initialization")
			return nil
		}
		path, err := cfg.ResolveDBPath()
		if err != nil {
			return err
		}
		repo, err := repository.OpenSQLite(cmd.Context(), path)
		if err != nil {
			return err
		}
		defer repo.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized feedme database at %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

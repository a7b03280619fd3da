package feedme

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect feedme configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cfg.ResolveDBPath()
		if err != nil {
			return err
		}
		file := cfg.File
		if file == "" {
			file = "(none)"
		}
		fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
		fmt.Fprintf(cmd.OutOrStdout(), "config_file\t%s\n", file)
		fmt.Fprintf(cmd.OutOrStdout(), "db\t%s\n", path)
		fmt.Fprintf(cmd.OutOrStdout(), "log_level\t%s\n", cfg.LogLevel)
		fmt.Fprintf(cmd.OutOrStdout(), "store\t%s\n", cfg.Store)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
}

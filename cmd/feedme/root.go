package feedme

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/esteban0203/FMA-2/internal/app"
)

var (
	cfgFile   string
	dbPath    string
	storeKind string
	logLevel  string

	cfg *app.Config
)

var rootCmd = &cobra.Command{
	Use:   "feedme",
	Short: "feedme plans meals and tracks your kitchen from the terminal",
	Long: "feedme (Feed My ADHD) is a meal-planning and kitchen-inventory assistant: " +
		"an overview of what to eat now, a meal plan, inventory and shopping list, " +
		"an Add Meals wizard and a points profile.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $HOME/.feedme.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "", "Data store: memory or sqlite")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "loglevel", "l", "", "Log level: debug, info, warn, error, or fatal")
}

// initConfig merges the config file and environment with flags, flags winning.
func initConfig(cmd *cobra.Command) error {
	loaded, err := app.LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		loaded.DBPath = dbPath
	}
	if flags.Changed("store") {
		loaded.Store = storeKind
		if err := loaded.Validate(); err != nil {
			return err
		}
	}
	if flags.Changed("loglevel") {
		loaded.LogLevel = logLevel
	}
	if err := app.SetLogLevel(loaded.LogLevel); err != nil {
		return err
	}
	cfg = loaded
	app.Log.WithField("store", cfg.Store).WithField("config", cfg.File).Debug("configuration loaded")
	return nil
}

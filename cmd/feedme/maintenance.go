package feedme

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/esteban0203/FMA-2/internal/app"
	"github.com/esteban0203/FMA-2/internal/repository"
)

var (
	doctorFix    bool
	backupOut    string
	backupDir    string
	restoreFile  string
	restoreForce bool
)

func withSQLite(ctx context.Context, run func(*repository.SQLite, string) error) error {
	if cfg.Store != app.StoreSQLite {
		return fmt.Errorf("this command needs the sqlite store (current: %s)", cfg.Store)
	}
	path, err := cfg.ResolveDBPath()
	if err != nil {
		return err
	}
	repo, err := repository.OpenSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer repo.Close()
	return run(repo, path)
}

func defaultBackupDir(dbPath string) string {
	if backupDir != "" {
		return backupDir
	}
	return filepath.Join(filepath.Dir(dbPath), "backups")
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSQLite(cmd.Context(), func(repo *repository.SQLite, _ string) error {
			report, err := repo.Doctor(cmd.Context(), doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, msg := range report.IntegrityErrors {
				fmt.Fprintf(out, "Integrity: %s\n", msg)
			}
			fmt.Fprintf(out, "Orphan recipe rows: %d\n", report.OrphanRows)
			fmt.Fprintf(out, "Unreadable lists: %d\n", report.InvalidLists)
			fmt.Fprintf(out, "Unreadable plan requests: %d\n", report.InvalidPlans)
			if doctorFix {
				fmt.Fprintf(out, "Fixed rows: %d\n", report.FixedRows)
				// Re-check after fixes so exit status reflects final state.
				if report, err = repo.Doctor(cmd.Context(), false); err != nil {
					return err
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage database backups",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create database backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSQLite(cmd.Context(), func(repo *repository.SQLite, path string) error {
			out := backupOut
			if out == "" {
				out = filepath.Join(defaultBackupDir(path), fmt.Sprintf("feedme-%s.db", time.Now().Format("20060102-150405")))
			}
			info, err := repo.Backup(cmd.Context(), out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created backup: %s\n", info.Path)
			fmt.Fprintf(cmd.OutOrStdout(), "Checksum: %s\n", info.Checksum)
			return nil
		})
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cfg.ResolveDBPath()
		if err != nil {
			return err
		}
		items, err := repository.ListBackups(defaultBackupDir(path))
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No backups yet")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "FILE\tSIZE\tCREATED\tCHECKSUM")
		for _, it := range items {
			sum := it.Checksum
			if !it.Verified {
				sum = "unverified"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\t%s\n", it.Path, it.SizeBytes, it.CreatedAt.Format(time.RFC3339), sum)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore database from backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		if restoreFile == "" {
			return fmt.Errorf("--file is required")
		}
		path, err := cfg.ResolveDBPath()
		if err != nil {
			return err
		}
		info, err := repository.RestoreBackup(cmd.Context(), restoreFile, path, restoreForce)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored backup from %s (schema v%d)\n", restoreFile, info.SchemaVersion)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd, backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)

	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Attempt safe auto-fixes")
	backupCreateCmd.Flags().StringVar(&backupOut, "out", "", "Backup output file path")
	backupCreateCmd.Flags().StringVar(&backupDir, "dir", "", "Backup directory (used when --out is empty)")
	backupListCmd.Flags().StringVar(&backupDir, "dir", "", "Backup directory (default: alongside DB under backups/)")
	backupRestoreCmd.Flags().StringVar(&restoreFile, "file", "", "Backup .db file path")
	backupRestoreCmd.Flags().BoolVar(&restoreForce, "force", false, "Overwrite existing DB if present")
}

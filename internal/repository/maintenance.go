package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/esteban0203/FMA-2/internal/app"
	"github.com/esteban0203/FMA-2/internal/db"
)

type BackupInfo struct {
	Path          string    `json:"path"`
	Checksum      string    `json:"checksum"`
	CreatedAt     time.Time `json:"created_at"`
	SizeBytes     int64     `json:"size_bytes"`
	SchemaVersion int       `json:"schema_version,omitempty"`
	Verified      bool      `json:"verified"`
}

type DoctorReport struct {
	IntegrityErrors []string `json:"integrity_errors,omitempty"`
	OrphanRows      int      `json:"orphan_rows"`
	InvalidLists    int      `json:"invalid_lists"`
	InvalidPlans    int      `json:"invalid_plans"`
	FixedRows       int      `json:"fixed_rows,omitempty"`
}

func (r DoctorReport) Healthy() bool {
	return len(r.IntegrityErrors) == 0 && r.OrphanRows == 0 && r.InvalidLists == 0 && r.InvalidPlans == 0
}

var listColumns = []struct{ table, column string }{
	{"inventory_items", "used_in_json"},
	{"shopping_items", "for_meals_json"},
	{"plan_requests", "favorite_recipe_ids_json"},
}

// Doctor checks the database file and the rows the schema cannot validate on
// its own. With fix set, orphaned recipe rows are deleted and unreadable
// lists are reset to empty; broken plan preferences are only reported.
func (s *SQLite) Doctor(ctx context.Context, fix bool) (DoctorReport, error) {
	report := DoctorReport{}

	rows, err := s.db.QueryContext(ctx, `PRAGMA integrity_check`)
	if err != nil {
		return report, fmt.Errorf("doctor integrity check: %w", err)
	}
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			_ = rows.Close()
			return report, fmt.Errorf("doctor integrity scan: %w", err)
		}
		if msg != "ok" {
			report.IntegrityErrors = append(report.IntegrityErrors, msg)
		}
	}
	_ = rows.Close()

	if err := s.db.QueryRowContext(ctx, `
SELECT
  (SELECT COUNT(1) FROM recipe_ingredients i LEFT JOIN recipes r ON r.id = i.recipe_id WHERE r.id IS NULL) +
  (SELECT COUNT(1) FROM recipe_steps st LEFT JOIN recipes r ON r.id = st.recipe_id WHERE r.id IS NULL)
`).Scan(&report.OrphanRows); err != nil {
		return report, fmt.Errorf("doctor orphan check: %w", err)
	}

	type badRow struct {
		table, column string
		id            any
	}
	badLists := make([]badRow, 0)
	for _, lc := range listColumns {
		ids, err := s.invalidJSONRows(ctx, lc.table, lc.column, func(raw string) bool {
			var v []string
			return json.Unmarshal([]byte(raw), &v) == nil
		})
		if err != nil {
			return report, err
		}
		for _, id := range ids {
			badLists = append(badLists, badRow{lc.table, lc.column, id})
		}
	}
	report.InvalidLists = len(badLists)

	badPlans, err := s.invalidJSONRows(ctx, "plan_requests", "preferences_json", func(raw string) bool {
		return json.Valid([]byte(raw)) && strings.HasPrefix(strings.TrimSpace(raw), "{")
	})
	if err != nil {
		return report, err
	}
	report.InvalidPlans = len(badPlans)

	if !fix || (report.OrphanRows == 0 && len(badLists) == 0) {
		return report, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return report, fmt.Errorf("doctor fix begin tx: %w", err)
	}
	for _, q := range []string{
		`DELETE FROM recipe_ingredients WHERE recipe_id NOT IN (SELECT id FROM recipes)`,
		`DELETE FROM recipe_steps WHERE recipe_id NOT IN (SELECT id FROM recipes)`,
	} {
		res, err := tx.ExecContext(ctx, q)
		if err != nil {
			_ = tx.Rollback()
			return report, fmt.Errorf("doctor delete orphans: %w", err)
		}
		n, _ := res.RowsAffected()
		report.FixedRows += int(n)
	}
	for _, b := range badLists {
		q := fmt.Sprintf(`UPDATE %s SET %s = '[]' WHERE id = ?`, b.table, b.column)
		if _, err := tx.ExecContext(ctx, q, b.id); err != nil {
			_ = tx.Rollback()
			return report, fmt.Errorf("doctor fix %s row %v: %w", b.table, b.id, err)
		}
		report.FixedRows++
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("doctor fix commit: %w", err)
	}
	return report, nil
}

func (s *SQLite) invalidJSONRows(ctx context.Context, table, column string, valid func(string) bool) ([]any, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT id, IFNULL(%s, '') FROM %s`, column, table))
	if err != nil {
		return nil, fmt.Errorf("doctor scan %s.%s: %w", table, column, err)
	}
	defer rows.Close()
	out := make([]any, 0)
	for rows.Next() {
		var id any
		var raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("doctor scan %s.%s: %w", table, column, err)
		}
		if !valid(raw) {
			out = append(out, id)
		}
	}
	return out, rows.Err()
}

func (s *SQLite) Backup(ctx context.Context, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if _, err := os.Stat(outPath); err == nil {
		return BackupInfo{}, fmt.Errorf("backup %s already exists", outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, outPath); err != nil {
		return BackupInfo{}, fmt.Errorf("snapshot database: %w", err)
	}
	sum, err := checksum(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+checksumExt, []byte(sum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: sum, CreatedAt: st.ModTime(), SizeBytes: st.Size(), SchemaVersion: db.LatestVersion(), Verified: true}, nil
}

var (
	ErrNoChecksum       = errors.New("backup has no checksum file")
	ErrChecksumMismatch = errors.New("backup checksum mismatch")
	ErrNotFeedmeBackup  = errors.New("not a feedme database")
)

const checksumExt = ".sha256"

// VerifyBackup checks a snapshot before it may replace the live database: the
// checksum sidecar must exist and match, and the file must open as a healthy
// feedme database whose schema this build knows.
func VerifyBackup(ctx context.Context, path string) (BackupInfo, error) {
	want, err := os.ReadFile(path + checksumExt)
	if errors.Is(err, fs.ErrNotExist) {
		return BackupInfo{}, fmt.Errorf("%s: %w", path, ErrNoChecksum)
	}
	if err != nil {
		return BackupInfo{}, fmt.Errorf("read checksum for %s: %w", path, err)
	}
	sum, err := checksum(path)
	if err != nil {
		return BackupInfo{}, err
	}
	if strings.TrimSpace(string(want)) != sum {
		return BackupInfo{}, fmt.Errorf("%s: %w", path, ErrChecksumMismatch)
	}

	snapshot, err := db.OpenReadOnly(path)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("%s: %w: %v", path, ErrNotFeedmeBackup, err)
	}
	defer snapshot.Close()

	var verdict string
	if err := snapshot.QueryRowContext(ctx, `PRAGMA integrity_check`).Scan(&verdict); err != nil {
		return BackupInfo{}, fmt.Errorf("%s: %w: %v", path, ErrNotFeedmeBackup, err)
	}
	if verdict != "ok" {
		return BackupInfo{}, fmt.Errorf("%s: %w: integrity check: %s", path, ErrNotFeedmeBackup, verdict)
	}
	version, err := db.SchemaVersion(snapshot)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("%s: %w: %v", path, ErrNotFeedmeBackup, err)
	}
	if version < 1 || version > db.LatestVersion() {
		return BackupInfo{}, fmt.Errorf("%s: %w: schema version %d (supported 1-%d)", path, ErrNotFeedmeBackup, version, db.LatestVersion())
	}

	st, err := os.Stat(path)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: path, Checksum: sum, CreatedAt: st.ModTime(), SizeBytes: st.Size(), SchemaVersion: version}, nil
}

// RestoreBackup replaces dbPath with a verified snapshot. The snapshot is
// staged next to dbPath and renamed into place, so a failed restore leaves the
// old database untouched. dbPath must not be open.
func RestoreBackup(ctx context.Context, backupPath, dbPath string, force bool) (BackupInfo, error) {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return BackupInfo{}, fmt.Errorf("database %s already exists; use --force to replace it", dbPath)
		}
	}
	info, err := VerifyBackup(ctx, backupPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := app.EnsureDBDir(dbPath); err != nil {
		return BackupInfo{}, err
	}
	if err := stageAndSwap(backupPath, dbPath, info.Checksum); err != nil {
		return BackupInfo{}, err
	}
	app.Log.WithField("backup", backupPath).WithField("db", dbPath).Info("database restored")
	return info, nil
}

func stageAndSwap(src, dst, wantSum string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open backup: %w", err)
	}
	defer in.Close()
	staged, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".restore-*")
	if err != nil {
		return fmt.Errorf("stage restore: %w", err)
	}
	stagedPath := staged.Name()
	defer os.Remove(stagedPath)

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(staged, h), in); err != nil {
		_ = staged.Close()
		return fmt.Errorf("stage restore: %w", err)
	}
	if err := staged.Sync(); err != nil {
		_ = staged.Close()
		return fmt.Errorf("stage restore: %w", err)
	}
	if err := staged.Close(); err != nil {
		return fmt.Errorf("stage restore: %w", err)
	}
	if hex.EncodeToString(h.Sum(nil)) != wantSum {
		return fmt.Errorf("%s changed during restore: %w", src, ErrChecksumMismatch)
	}
	// Journal files from the replaced database would be replayed against the
	// snapshot.
	for _, ext := range []string{"-wal", "-shm", "-journal"} {
		_ = os.Remove(dst + ext)
	}
	if err := os.Rename(stagedPath, dst); err != nil {
		return fmt.Errorf("swap in restored database: %w", err)
	}
	return nil
}

func ListBackups(dir string) ([]BackupInfo, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".db" {
			continue
		}
		full := filepath.Join(dir, e.Name())
		st, err := e.Info()
		if err != nil {
			continue
		}
		info := BackupInfo{Path: full, CreatedAt: st.ModTime(), SizeBytes: st.Size()}
		if want, err := os.ReadFile(full + checksumExt); err == nil {
			info.Checksum = strings.TrimSpace(string(want))
			if sum, err := checksum(full); err == nil {
				info.Verified = sum == info.Checksum
			}
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("checksum %s: %w", path, err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("checksum %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

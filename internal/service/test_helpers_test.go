package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/esteban0203/FMA-2/internal/repository"
)

func newTestRepo(t *testing.T) *repository.SQLite {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feedme.db")
	repo, err := repository.OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

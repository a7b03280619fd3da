package feedme

import (
	"context"
	"fmt"
	"strings"

	"github.com/esteban0203/FMA-2/internal/app"
	"github.com/esteban0203/FMA-2/internal/repository"
)

func openRepo(ctx context.Context) (repository.Repository, error) {
	switch cfg.Store {
	case app.StoreMemory:
		return repository.NewMemory(), nil
	case app.StoreSQLite:
		path, err := cfg.ResolveDBPath()
		if err != nil {
			return nil, err
		}
		app.Log.WithField("path", path).Debug("opening database")
		return repository.OpenSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

func withRepo(ctx context.Context, run func(repository.Repository) error) error {
	repo, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()
	return run(repo)
}

func parseOnOff(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid toggle %q (expected on or off)", value)
	}
}

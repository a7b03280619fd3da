package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS recipes (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  meal_type TEXT NOT NULL CHECK(meal_type IN ('breakfast','lunch','dinner','snack')),
  servings INTEGER NOT NULL CHECK(servings > 0),
  cook_time TEXT NOT NULL,
  points_efficiency INTEGER NOT NULL DEFAULT 0 CHECK(points_efficiency >= 0),
  points_nutrition INTEGER NOT NULL DEFAULT 0 CHECK(points_nutrition >= 0),
  points_cooking INTEGER NOT NULL DEFAULT 0 CHECK(points_cooking >= 0),
  position INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS recipe_ingredients (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  recipe_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  amount TEXT NOT NULL,
  is_complete INTEGER NOT NULL DEFAULT 0,
  is_fresh INTEGER NOT NULL DEFAULT 0,
  FOREIGN KEY(recipe_id) REFERENCES recipes(id) ON DELETE CASCADE,
  UNIQUE(recipe_id, position)
);

CREATE TABLE IF NOT EXISTS recipe_steps (
  recipe_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  instruction TEXT NOT NULL,
  PRIMARY KEY(recipe_id, position),
  FOREIGN KEY(recipe_id) REFERENCES recipes(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS inventory_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  section TEXT NOT NULL,
  name TEXT NOT NULL,
  quantity TEXT NOT NULL,
  expires_in TEXT NOT NULL DEFAULT '',
  used_in_json TEXT NOT NULL DEFAULT '[]',
  low_stock INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS shopping_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  aisle TEXT NOT NULL,
  name TEXT NOT NULL,
  quantity TEXT NOT NULL,
  for_meals_json TEXT NOT NULL DEFAULT '[]',
  urgent INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS milestones (
  id TEXT PRIMARY KEY,
  category TEXT NOT NULL CHECK(category IN ('efficiency','nutrition','cooking')),
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  points_required INTEGER NOT NULL CHECK(points_required > 0),
  reward INTEGER NOT NULL CHECK(reward >= 0),
  status TEXT NOT NULL CHECK(status IN ('in_progress','completed')),
  position INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS user_points (
  category TEXT PRIMARY KEY CHECK(category IN ('efficiency','nutrition','cooking')),
  points INTEGER NOT NULL CHECK(points >= 0)
);
`,
	},
	{
		version: 2,
		name:    "user_settings",
		sql: `
CREATE TABLE IF NOT EXISTS user_settings (
  id INTEGER PRIMARY KEY CHECK(id = 1),
  measurement_system TEXT NOT NULL CHECK(measurement_system IN ('metric','imperial')),
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS user_allergens (
  position INTEGER NOT NULL,
  name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS user_appliances (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  is_available INTEGER NOT NULL DEFAULT 0,
  position INTEGER NOT NULL
);
`,
	},
	{
		version: 3,
		name:    "plan_requests",
		sql: `
CREATE TABLE IF NOT EXISTS plan_requests (
  id TEXT PRIMARY KEY,
  created_at TEXT NOT NULL,
  breakfast INTEGER NOT NULL CHECK(breakfast >= 0),
  lunch INTEGER NOT NULL CHECK(lunch >= 0),
  dinner INTEGER NOT NULL CHECK(dinner >= 0),
  snack INTEGER NOT NULL CHECK(snack >= 0),
  estimated_days INTEGER NOT NULL CHECK(estimated_days >= 0),
  preferences_json TEXT NOT NULL,
  favorite_recipe_ids_json TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_plan_requests_created_at ON plan_requests(created_at);
`,
	},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}
	return nil
}

func LatestVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion is the highest applied migration, or 0 when db has no
// schema_migrations table.
func SchemaVersion(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = 'schema_migrations'`).Scan(&n); err != nil {
		return 0, fmt.Errorf("look up schema_migrations: %w", err)
	}
	if n == 0 {
		return 0, nil
	}
	var version int
	if err := db.QueryRow(`SELECT IFNULL(MAX(version), 0) FROM schema_migrations`).Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

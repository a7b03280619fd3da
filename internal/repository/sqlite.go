package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/esteban0203/FMA-2/internal/app"
	"github.com/esteban0203/FMA-2/internal/catalog"
	"github.com/esteban0203/FMA-2/internal/db"
	"github.com/esteban0203/FMA-2/internal/model"
)

type SQLite struct {
	db *sql.DB
}

func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if err := app.EnsureDBDir(path); err != nil {
		return nil, err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	s := &SQLite{db: sqldb}
	if err := s.seed(ctx); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) seed(ctx context.Context) error {
	var recipeCount int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM recipes`).Scan(&recipeCount); err != nil {
		return fmt.Errorf("count recipes: %w", err)
	}
	var settingsCount int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM user_settings`).Scan(&settingsCount); err != nil {
		return fmt.Errorf("count settings: %w", err)
	}
	if recipeCount > 0 && settingsCount > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	if recipeCount == 0 {
		if err := seedCatalog(ctx, tx); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if settingsCount == 0 {
		if err := writeSettings(ctx, tx, catalog.DefaultSettings()); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	app.Log.WithField("recipes", recipeCount == 0).WithField("settings", settingsCount == 0).Debug("seeded sqlite repository")
	return nil
}

func seedCatalog(ctx context.Context, tx *sql.Tx) error {
	for i, r := range catalog.Recipes() {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO recipes(id, title, meal_type, servings, cook_time, points_efficiency, points_nutrition, points_cooking, position)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
`, r.ID, r.Title, string(r.Type), r.Servings, r.CookTime, r.Points.Efficiency, r.Points.Nutrition, r.Points.Cooking, i); err != nil {
			return fmt.Errorf("seed recipe %q: %w", r.Title, err)
		}
		for pos, ing := range r.Ingredients {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO recipe_ingredients(recipe_id, position, name, amount, is_complete, is_fresh)
VALUES(?, ?, ?, ?, ?, ?)
`, r.ID, pos, ing.Name, ing.Amount, boolToInt(ing.IsComplete), boolToInt(ing.IsFresh)); err != nil {
				return fmt.Errorf("seed ingredient %q for %q: %w", ing.Name, r.Title, err)
			}
		}
		for pos, step := range r.Instructions {
			if _, err := tx.ExecContext(ctx, `INSERT INTO recipe_steps(recipe_id, position, instruction) VALUES(?, ?, ?)`, r.ID, pos, step); err != nil {
				return fmt.Errorf("seed step %d for %q: %w", pos+1, r.Title, err)
			}
		}
	}

	for _, it := range catalog.Inventory() {
		usedIn, err := marshalStrings(it.UsedIn)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO inventory_items(section, name, quantity, expires_in, used_in_json, low_stock)
VALUES(?, ?, ?, ?, ?, ?)
`, string(it.Section), it.Name, it.Quantity, it.ExpiresIn, usedIn, boolToInt(it.LowStock)); err != nil {
			return fmt.Errorf("seed inventory item %q: %w", it.Name, err)
		}
	}

	for _, it := range catalog.ShoppingList() {
		forMeals, err := marshalStrings(it.ForMeals)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO shopping_items(aisle, name, quantity, for_meals_json, urgent)
VALUES(?, ?, ?, ?, ?)
`, string(it.Aisle), it.Name, it.Quantity, forMeals, boolToInt(it.Urgent)); err != nil {
			return fmt.Errorf("seed shopping item %q: %w", it.Name, err)
		}
	}

	for i, m := range catalog.Milestones() {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO milestones(id, category, title, description, points_required, reward, status, position)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, m.ID, string(m.Category), m.Title, m.Description, m.PointsRequired, m.Reward, string(m.Status), i); err != nil {
			return fmt.Errorf("seed milestone %q: %w", m.ID, err)
		}
	}

	points := catalog.UserPoints()
	for _, c := range model.AllPointsCategories {
		if _, err := tx.ExecContext(ctx, `INSERT INTO user_points(category, points) VALUES(?, ?)`, string(c), points.Get(c)); err != nil {
			return fmt.Errorf("seed %s points: %w", c, err)
		}
	}
	return nil
}

func (s *SQLite) Recipes(ctx context.Context) ([]model.Recipe, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, title, meal_type, servings, cook_time, points_efficiency, points_nutrition, points_cooking
FROM recipes
ORDER BY position, id
`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	recipes := make([]model.Recipe, 0)
	index := map[string]int{}
	for rows.Next() {
		var r model.Recipe
		var mealType string
		if err := rows.Scan(&r.ID, &r.Title, &mealType, &r.Servings, &r.CookTime, &r.Points.Efficiency, &r.Points.Nutrition, &r.Points.Cooking); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		r.Type = model.MealType(mealType)
		index[r.ID] = len(recipes)
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	rows.Close()

	if err := s.attachIngredients(ctx, recipes, index, ""); err != nil {
		return nil, err
	}
	if err := s.attachSteps(ctx, recipes, index, ""); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *SQLite) Recipe(ctx context.Context, id string) (model.Recipe, error) {
	var r model.Recipe
	var mealType string
	err := s.db.QueryRowContext(ctx, `
SELECT id, title, meal_type, servings, cook_time, points_efficiency, points_nutrition, points_cooking
FROM recipes
WHERE id = ?
`, id).Scan(&r.ID, &r.Title, &mealType, &r.Servings, &r.CookTime, &r.Points.Efficiency, &r.Points.Nutrition, &r.Points.Cooking)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Recipe{}, fmt.Errorf("recipe %q: %w", id, ErrNotFound)
		}
		return model.Recipe{}, fmt.Errorf("lookup recipe %q: %w", id, err)
	}
	r.Type = model.MealType(mealType)

	recipes := []model.Recipe{r}
	index := map[string]int{r.ID: 0}
	if err := s.attachIngredients(ctx, recipes, index, id); err != nil {
		return model.Recipe{}, err
	}
	if err := s.attachSteps(ctx, recipes, index, id); err != nil {
		return model.Recipe{}, err
	}
	return recipes[0], nil
}

func (s *SQLite) attachIngredients(ctx context.Context, recipes []model.Recipe, index map[string]int, id string) error {
	query := `SELECT recipe_id, name, amount, is_complete, is_fresh FROM recipe_ingredients`
	args := []any{}
	if id != "" {
		query += ` WHERE recipe_id = ?`
		args = append(args, id)
	}
	query += ` ORDER BY recipe_id, position`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list recipe ingredients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var recipeID string
		var ing model.RecipeIngredient
		var complete, fresh int
		if err := rows.Scan(&recipeID, &ing.Name, &ing.Amount, &complete, &fresh); err != nil {
			return fmt.Errorf("scan recipe ingredient: %w", err)
		}
		i, ok := index[recipeID]
		if !ok {
			continue
		}
		ing.IsComplete = complete == 1
		ing.IsFresh = fresh == 1
		recipes[i].Ingredients = append(recipes[i].Ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate recipe ingredients: %w", err)
	}
	return nil
}

func (s *SQLite) attachSteps(ctx context.Context, recipes []model.Recipe, index map[string]int, id string) error {
	query := `SELECT recipe_id, instruction FROM recipe_steps`
	args := []any{}
	if id != "" {
		query += ` WHERE recipe_id = ?`
		args = append(args, id)
	}
	query += ` ORDER BY recipe_id, position`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list recipe steps: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var recipeID, step string
		if err := rows.Scan(&recipeID, &step); err != nil {
			return fmt.Errorf("scan recipe step: %w", err)
		}
		if i, ok := index[recipeID]; ok {
			recipes[i].Instructions = append(recipes[i].Instructions, step)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate recipe steps: %w", err)
	}
	return nil
}

func (s *SQLite) Inventory(ctx context.Context) ([]model.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT section, name, quantity, expires_in, used_in_json, low_stock
FROM inventory_items
ORDER BY id
`)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	items := make([]model.InventoryItem, 0)
	for rows.Next() {
		var it model.InventoryItem
		var section, usedIn string
		var low int
		if err := rows.Scan(&section, &it.Name, &it.Quantity, &it.ExpiresIn, &usedIn, &low); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		it.Section = model.StorageSection(section)
		it.LowStock = low == 1
		if it.UsedIn, err = unmarshalStrings(usedIn); err != nil {
			return nil, fmt.Errorf("decode used_in for %q: %w", it.Name, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory: %w", err)
	}
	return items, nil
}

func (s *SQLite) ShoppingList(ctx context.Context) ([]model.ShoppingItem, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT aisle, name, quantity, for_meals_json, urgent
FROM shopping_items
ORDER BY id
`)
	if err != nil {
		return nil, fmt.Errorf("list shopping items: %w", err)
	}
	defer rows.Close()

	items := make([]model.ShoppingItem, 0)
	for rows.Next() {
		var it model.ShoppingItem
		var aisle, forMeals string
		var urgent int
		if err := rows.Scan(&aisle, &it.Name, &it.Quantity, &forMeals, &urgent); err != nil {
			return nil, fmt.Errorf("scan shopping item: %w", err)
		}
		it.Aisle = model.ShoppingAisle(aisle)
		it.Urgent = urgent == 1
		if it.ForMeals, err = unmarshalStrings(forMeals); err != nil {
			return nil, fmt.Errorf("decode for_meals for %q: %w", it.Name, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shopping items: %w", err)
	}
	return items, nil
}

func (s *SQLite) Milestones(ctx context.Context) ([]model.Milestone, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, category, title, description, points_required, reward, status
FROM milestones
ORDER BY position, id
`)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	defer rows.Close()

	out := make([]model.Milestone, 0)
	for rows.Next() {
		var m model.Milestone
		var category, status string
		if err := rows.Scan(&m.ID, &category, &m.Title, &m.Description, &m.PointsRequired, &m.Reward, &status); err != nil {
			return nil, fmt.Errorf("scan milestone: %w", err)
		}
		m.Category = model.PointsCategory(category)
		m.Status = model.MilestoneStatus(status)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate milestones: %w", err)
	}
	return out, nil
}

func (s *SQLite) UserPoints(ctx context.Context) (model.Points, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, points FROM user_points`)
	if err != nil {
		return model.Points{}, fmt.Errorf("list user points: %w", err)
	}
	defer rows.Close()

	var p model.Points
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return model.Points{}, fmt.Errorf("scan user points: %w", err)
		}
		switch model.PointsCategory(category) {
		case model.Efficiency:
			p.Efficiency = n
		case model.Nutrition:
			p.Nutrition = n
		case model.Cooking:
			p.Cooking = n
		}
	}
	if err := rows.Err(); err != nil {
		return model.Points{}, fmt.Errorf("iterate user points: %w", err)
	}
	return p, nil
}

func (s *SQLite) Settings(ctx context.Context) (model.UserSettings, error) {
	var out model.UserSettings
	var system string
	if err := s.db.QueryRowContext(ctx, `SELECT measurement_system FROM user_settings WHERE id = 1`).Scan(&system); err != nil {
		if err == sql.ErrNoRows {
			return model.UserSettings{}, fmt.Errorf("user settings: %w", ErrNotFound)
		}
		return model.UserSettings{}, fmt.Errorf("load user settings: %w", err)
	}
	out.MeasurementSystem = model.MeasurementSystem(system)

	allergens, err := s.db.QueryContext(ctx, `SELECT name FROM user_allergens ORDER BY position`)
	if err != nil {
		return model.UserSettings{}, fmt.Errorf("list allergens: %w", err)
	}
	out.Allergens = []string{}
	for allergens.Next() {
		var name string
		if err := allergens.Scan(&name); err != nil {
			allergens.Close()
			return model.UserSettings{}, fmt.Errorf("scan allergen: %w", err)
		}
		out.Allergens = append(out.Allergens, name)
	}
	if err := allergens.Err(); err != nil {
		allergens.Close()
		return model.UserSettings{}, fmt.Errorf("iterate allergens: %w", err)
	}
	allergens.Close()

	appliances, err := s.db.QueryContext(ctx, `SELECT id, name, is_available FROM user_appliances ORDER BY position`)
	if err != nil {
		return model.UserSettings{}, fmt.Errorf("list appliances: %w", err)
	}
	defer appliances.Close()
	for appliances.Next() {
		var a model.Appliance
		var available int
		if err := appliances.Scan(&a.ID, &a.Name, &available); err != nil {
			return model.UserSettings{}, fmt.Errorf("scan appliance: %w", err)
		}
		a.IsAvailable = available == 1
		out.Appliances = append(out.Appliances, a)
	}
	if err := appliances.Err(); err != nil {
		return model.UserSettings{}, fmt.Errorf("iterate appliances: %w", err)
	}
	return out, nil
}

func (s *SQLite) SaveSettings(ctx context.Context, settings model.UserSettings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save settings tx: %w", err)
	}
	if err := writeSettings(ctx, tx, settings); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save settings tx: %w", err)
	}
	return nil
}

func writeSettings(ctx context.Context, tx *sql.Tx, settings model.UserSettings) error {
	if _, err := tx.ExecContext(ctx, `
INSERT INTO user_settings(id, measurement_system, updated_at)
VALUES(1, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET measurement_system=excluded.measurement_system, updated_at=excluded.updated_at
`, string(settings.MeasurementSystem)); err != nil {
		return fmt.Errorf("save measurement system: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_allergens`); err != nil {
		return fmt.Errorf("clear allergens: %w", err)
	}
	for i, name := range settings.Allergens {
		if _, err := tx.ExecContext(ctx, `INSERT INTO user_allergens(position, name) VALUES(?, ?)`, i, name); err != nil {
			return fmt.Errorf("save allergen %q: %w", name, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_appliances`); err != nil {
		return fmt.Errorf("clear appliances: %w", err)
	}
	for i, a := range settings.Appliances {
		if _, err := tx.ExecContext(ctx, `INSERT INTO user_appliances(id, name, is_available, position) VALUES(?, ?, ?, ?)`, a.ID, a.Name, boolToInt(a.IsAvailable), i); err != nil {
			return fmt.Errorf("save appliance %q: %w", a.ID, err)
		}
	}
	return nil
}

func (s *SQLite) SavePlanRequest(ctx context.Context, req model.PlanRequest) error {
	if req.ID == "" {
		return fmt.Errorf("plan request id is required")
	}
	prefs, err := json.Marshal(req.Preferences)
	if err != nil {
		return fmt.Errorf("encode plan preferences: %w", err)
	}
	favorites, err := marshalStrings(req.FavoriteRecipeIDs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO plan_requests(id, created_at, breakfast, lunch, dinner, snack, estimated_days, preferences_json, favorite_recipe_ids_json)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
`, req.ID, req.CreatedAt.UTC().Format(time.RFC3339Nano), req.Counts.Breakfast, req.Counts.Lunch, req.Counts.Dinner, req.Counts.Snack, req.EstimatedDays, string(prefs), favorites)
	if err != nil {
		return fmt.Errorf("save plan request %s: %w", req.ID, err)
	}
	return nil
}

func (s *SQLite) PlanRequests(ctx context.Context) ([]model.PlanRequest, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, created_at, breakfast, lunch, dinner, snack, estimated_days, preferences_json, favorite_recipe_ids_json
FROM plan_requests
ORDER BY created_at, id
`)
	if err != nil {
		return nil, fmt.Errorf("list plan requests: %w", err)
	}
	defer rows.Close()

	out := make([]model.PlanRequest, 0)
	for rows.Next() {
		var req model.PlanRequest
		var createdAt, prefs, favorites string
		if err := rows.Scan(&req.ID, &createdAt, &req.Counts.Breakfast, &req.Counts.Lunch, &req.Counts.Dinner, &req.Counts.Snack, &req.EstimatedDays, &prefs, &favorites); err != nil {
			return nil, fmt.Errorf("scan plan request: %w", err)
		}
		if req.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at for plan request %s: %w", req.ID, err)
		}
		if err := json.Unmarshal([]byte(prefs), &req.Preferences); err != nil {
			return nil, fmt.Errorf("decode preferences for plan request %s: %w", req.ID, err)
		}
		if req.FavoriteRecipeIDs, err = unmarshalStrings(favorites); err != nil {
			return nil, fmt.Errorf("decode favorites for plan request %s: %w", req.ID, err)
		}
		if len(req.FavoriteRecipeIDs) == 0 {
			req.FavoriteRecipeIDs = nil
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plan requests: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode string list: %w", err)
	}
	return string(b), nil
}

func unmarshalStrings(raw string) ([]string, error) {
	out := []string{}
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/esteban0203/FMA-2/internal/catalog"
	"github.com/esteban0203/FMA-2/internal/model"
)

type Memory struct {
	mu        sync.RWMutex
	recipes   []model.Recipe
	inventory []model.InventoryItem
	shopping  []model.ShoppingItem
	miles     []model.Milestone
	points    model.Points
	settings  model.UserSettings
	requests  []model.PlanRequest
}

func NewMemory() *Memory {
	return &Memory{
		recipes:   catalog.Recipes(),
		inventory: catalog.Inventory(),
		shopping:  catalog.ShoppingList(),
		miles:     catalog.Milestones(),
		points:    catalog.UserPoints(),
		settings:  catalog.DefaultSettings(),
	}
}

func (m *Memory) Recipes(ctx context.Context) ([]model.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Recipe, 0, len(m.recipes))
	for _, r := range m.recipes {
		r.Ingredients = append([]model.RecipeIngredient(nil), r.Ingredients...)
		r.Instructions = append([]string(nil), r.Instructions...)
		out = append(out, r)
	}
	return out, nil
}

func (m *Memory) Recipe(ctx context.Context, id string) (model.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.recipes {
		if r.ID == id {
			r.Ingredients = append([]model.RecipeIngredient(nil), r.Ingredients...)
			r.Instructions = append([]string(nil), r.Instructions...)
			return r, nil
		}
	}
	return model.Recipe{}, fmt.Errorf("recipe %q: %w", id, ErrNotFound)
}

func (m *Memory) Inventory(ctx context.Context) ([]model.InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.InventoryItem(nil), m.inventory...), nil
}

func (m *Memory) ShoppingList(ctx context.Context) ([]model.ShoppingItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.ShoppingItem(nil), m.shopping...), nil
}

func (m *Memory) Milestones(ctx context.Context) ([]model.Milestone, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.Milestone(nil), m.miles...), nil
}

func (m *Memory) UserPoints(ctx context.Context) (model.Points, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.points, nil
}

func (m *Memory) Settings(ctx context.Context) (model.UserSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings.Clone(), nil
}

func (m *Memory) SaveSettings(ctx context.Context, s model.UserSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s.Clone()
	return nil
}

func (m *Memory) SavePlanRequest(ctx context.Context, req model.PlanRequest) error {
	if req.ID == "" {
		return fmt.Errorf("plan request id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.requests {
		if existing.ID == req.ID {
			return fmt.Errorf("plan request %q already saved", req.ID)
		}
	}
	m.requests = append(m.requests, req)
	return nil
}

func (m *Memory) PlanRequests(ctx context.Context) ([]model.PlanRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.PlanRequest(nil), m.requests...), nil
}

func (m *Memory) Close() error { return nil }

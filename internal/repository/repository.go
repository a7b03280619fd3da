package repository

import (
	"context"
	"errors"

	"github.com/esteban0203/FMA-2/internal/model"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	Recipes(ctx context.Context) ([]model.Recipe, error)
	Recipe(ctx context.Context, id string) (model.Recipe, error)
	Inventory(ctx context.Context) ([]model.InventoryItem, error)
	ShoppingList(ctx context.Context) ([]model.ShoppingItem, error)
	Milestones(ctx context.Context) ([]model.Milestone, error)
	UserPoints(ctx context.Context) (model.Points, error)

	Settings(ctx context.Context) (model.UserSettings, error)
	SaveSettings(ctx context.Context, s model.UserSettings) error

	SavePlanRequest(ctx context.Context, req model.PlanRequest) error
	PlanRequests(ctx context.Context) ([]model.PlanRequest, error)

	Close() error
}

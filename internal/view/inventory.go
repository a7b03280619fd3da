package view

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/esteban0203/FMA-2/internal/model"
	"github.com/esteban0203/FMA-2/internal/repository"
	"github.com/esteban0203/FMA-2/internal/service"
)

type InventoryTab string

const (
	TabAvailable InventoryTab = "available"
	TabShopping  InventoryTab = "shopping"
)

func ParseInventoryTab(s string) (InventoryTab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "available":
		return TabAvailable, nil
	case "shopping", "shopping-list":
		return TabShopping, nil
	default:
		return "", fmt.Errorf("unknown inventory tab %q (expected available or shopping)", s)
	}
}

type Inventory struct {
	repo       repository.Repository
	tab        InventoryTab
	expanded   map[model.StorageSection]bool
	exportOpen bool
}

func NewInventory(repo repository.Repository) *Inventory {
	return &Inventory{
		repo:     repo,
		tab:      TabAvailable,
		expanded: map[model.StorageSection]bool{model.SectionExpiringSoon: true},
	}
}

func (v *Inventory) Tab() InventoryTab                      { return v.tab }
func (v *Inventory) SetTab(tab InventoryTab)                { v.tab = tab }
func (v *Inventory) IsExpanded(s model.StorageSection) bool { return v.expanded[s] }

func (v *Inventory) ToggleSection(s model.StorageSection) {
	v.expanded[s] = !v.expanded[s]
}

func (v *Inventory) OpenExport()      { v.exportOpen = true }
func (v *Inventory) CloseExport()     { v.exportOpen = false }
func (v *Inventory) ExportOpen() bool { return v.exportOpen }

func (v *Inventory) Export(ctx context.Context, w io.Writer, format service.ExportFormat) error {
	items, err := v.repo.ShoppingList(ctx)
	if err != nil {
		return fmt.Errorf("load shopping list: %w", err)
	}
	if err := service.ExportShoppingList(w, items, format); err != nil {
		return err
	}
	v.exportOpen = false
	return nil
}

func (v *Inventory) Render(ctx context.Context, w io.Writer) error {
	heading(w, "Inventory")
	if v.tab == TabAvailable {
		fmt.Fprintln(w, "(Available) | Shopping List")
	} else {
		fmt.Fprintln(w, "Available | (Shopping List)")
	}

	if v.exportOpen {
		section(w, "Export Shopping List")
		for _, f := range []service.ExportFormat{service.ExportText, service.ExportCSV, service.ExportJSON, service.ExportYAML} {
			fmt.Fprintf(w, "  - %s\n", f)
		}
		return nil
	}

	switch v.tab {
	case TabAvailable:
		return v.renderAvailable(ctx, w)
	case TabShopping:
		return v.renderShopping(ctx, w)
	}
	return fmt.Errorf("unknown inventory tab %q", v.tab)
}

func (v *Inventory) renderAvailable(ctx context.Context, w io.Writer) error {
	items, err := v.repo.Inventory(ctx)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	for _, s := range model.AllStorageSections {
		inSection := service.ItemsInSection(items, s)
		marker := "+"
		if v.expanded[s] {
			marker = "-"
		}
		section(w, fmt.Sprintf("%s %s (%d)", marker, s.Label(), len(inSection)))
		if !v.expanded[s] {
			continue
		}
		for _, it := range inSection {
			fmt.Fprintf(w, "  %s - %s", it.Name, it.Quantity)
			if it.ExpiresIn != "" {
				fmt.Fprintf(w, " (expires in %s)", it.ExpiresIn)
			}
			if it.LowStock {
				fmt.Fprint(w, " [low]")
			}
			fmt.Fprintln(w)
			if len(it.UsedIn) > 0 {
				fmt.Fprintf(w, "    used in: %s\n", strings.Join(it.UsedIn, ", "))
			}
		}
	}
	return nil
}

func (v *Inventory) renderShopping(ctx context.Context, w io.Writer) error {
	items, err := v.repo.ShoppingList(ctx)
	if err != nil {
		return fmt.Errorf("load shopping list: %w", err)
	}
	for _, a := range model.AllShoppingAisles {
		inAisle := service.ItemsInAisle(items, a)
		if len(inAisle) == 0 {
			continue
		}
		section(w, a.Label())
		for _, it := range inAisle {
			mark := " "
			if it.Urgent {
				mark = "!"
			}
			fmt.Fprintf(w, "  [%s] %s - %s\n", mark, it.Name, it.Quantity)
			if len(it.ForMeals) > 0 {
				fmt.Fprintf(w, "      for: %s\n", strings.Join(it.ForMeals, ", "))
			}
		}
	}
	return nil
}

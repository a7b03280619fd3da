package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/esteban0203/FMA-2/internal/model"
)

type ExportFormat string

const (
	ExportText ExportFormat = "text"
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
	ExportYAML ExportFormat = "yaml"
)

func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return ExportText, nil
	case "csv":
		return ExportCSV, nil
	case "json":
		return ExportJSON, nil
	case "yaml", "yml":
		return ExportYAML, nil
	default:
		return "", fmt.Errorf("unknown export format %q (expected text, csv, json, or yaml)", s)
	}
}

type shoppingExport struct {
	Items  []model.ShoppingItem `json:"items" yaml:"items"`
	Urgent int                  `json:"urgent" yaml:"urgent"`
}

func ExportShoppingList(w io.Writer, items []model.ShoppingItem, format ExportFormat) error {
	ordered := make([]model.ShoppingItem, 0, len(items))
	for _, aisle := range model.AllShoppingAisles {
		ordered = append(ordered, ItemsInAisle(items, aisle)...)
	}

	switch format {
	case ExportText:
		return writeShoppingText(w, ordered)
	case ExportCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"aisle", "name", "quantity", "for_meals", "urgent"}); err != nil {
			return fmt.Errorf("write shopping csv header: %w", err)
		}
		for _, it := range ordered {
			record := []string{string(it.Aisle), it.Name, it.Quantity, strings.Join(it.ForMeals, "; "), strconv.FormatBool(it.Urgent)}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("write shopping csv row %q: %w", it.Name, err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("flush shopping csv: %w", err)
		}
		return nil
	case ExportJSON:
		b, err := json.MarshalIndent(newShoppingExport(ordered), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal shopping json: %w", err)
		}
		if _, err := fmt.Fprintln(w, string(b)); err != nil {
			return fmt.Errorf("write shopping json: %w", err)
		}
		return nil
	case ExportYAML:
		b, err := yaml.Marshal(newShoppingExport(ordered))
		if err != nil {
			return fmt.Errorf("marshal shopping yaml: %w", err)
		}
		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("write shopping yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func newShoppingExport(items []model.ShoppingItem) shoppingExport {
	out := shoppingExport{Items: items}
	for _, it := range items {
		if it.Urgent {
			out.Urgent++
		}
	}
	return out
}

func writeShoppingText(w io.Writer, items []model.ShoppingItem) error {
	var b strings.Builder
	b.WriteString("Shopping List\n")
	for _, aisle := range model.AllShoppingAisles {
		inAisle := ItemsInAisle(items, aisle)
		if len(inAisle) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s\n", aisle.Label())
		for _, it := range inAisle {
			mark := " "
			if it.Urgent {
				mark = "!"
			}
			fmt.Fprintf(&b, "[%s] %s - %s", mark, it.Name, it.Quantity)
			if len(it.ForMeals) > 0 {
				fmt.Fprintf(&b, " (for %s)", strings.Join(it.ForMeals, ", "))
			}
			b.WriteString("\n")
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write shopping text: %w", err)
	}
	return nil
}

package service_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v2"

	"github.com/esteban0203/FMA-2/internal/catalog"
	"github.com/esteban0203/FMA-2/internal/service"
)

func TestExportShoppingListText(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := service.ExportShoppingList(&buf, catalog.ShoppingList(), service.ExportText); err != nil {
		t.Fatalf("export text: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Produce\n[!] Bell Peppers - 3 (for Veggie Stir Fry)",
		"[ ] Carrots - 1 lb (for Veggie Stir Fry, Chicken Soup)",
		"Meat\n[ ] Ground Turkey - 1 lb",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestExportShoppingListCSV(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := service.ExportShoppingList(&buf, catalog.ShoppingList(), service.ExportCSV); err != nil {
		t.Fatalf("export csv: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 6 {
		t.Fatalf("expected header plus 5 rows, got %d", len(records))
	}
	if records[4][1] != "Rice" || records[4][3] != "Veggie Stir Fry; Chicken Rice Bowl" {
		t.Fatalf("unexpected pantry row %v", records[4])
	}
}

func TestExportShoppingListStructured(t *testing.T) {
	t.Parallel()
	var jsonBuf, yamlBuf bytes.Buffer
	if err := service.ExportShoppingList(&jsonBuf, catalog.ShoppingList(), service.ExportJSON); err != nil {
		t.Fatalf("export json: %v", err)
	}
	if err := service.ExportShoppingList(&yamlBuf, catalog.ShoppingList(), service.ExportYAML); err != nil {
		t.Fatalf("export yaml: %v", err)
	}

	var fromJSON struct {
		Items  []map[string]any `json:"items"`
		Urgent int              `json:"urgent"`
	}
	if err := json.Unmarshal(jsonBuf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	var fromYAML struct {
		Items  []map[string]any `yaml:"items"`
		Urgent int              `yaml:"urgent"`
	}
	if err := yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if fromJSON.Urgent != 2 || fromYAML.Urgent != 2 || len(fromJSON.Items) != 5 || len(fromYAML.Items) != 5 {
		t.Fatalf("unexpected structured exports json=%+v yaml=%+v", fromJSON, fromYAML)
	}
}

func TestParseExportFormat(t *testing.T) {
	t.Parallel()
	if f, err := service.ParseExportFormat("YML"); err != nil || f != service.ExportYAML {
		t.Fatalf("expected yaml, got %q err=%v", f, err)
	}
	if _, err := service.ParseExportFormat("pdf"); err == nil {
		t.Fatalf("expected pdf to be rejected")
	}
}

package feedme

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"

	"github.com/esteban0203/FMA-2/internal/repository"
	"github.com/esteban0203/FMA-2/internal/wizard"
)

// resetFlags puts every flag back to its default so runs do not leak into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, "", args...)
	if err != nil {
		t.Fatalf("feedme %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestRootHelp(t *testing.T) {
	out := mustRun(t, "--help")
	if !strings.Contains(out, "add-meals") {
		t.Fatalf("expected help to list add-meals, got:\n%s", out)
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedme.db")
	for i := 0; i < 2; i++ {
		out := mustRun(t, "--db", path, "init")
		if !strings.Contains(out, "Initialized feedme database at "+path) {
			t.Fatalf("run %d: unexpected output %q", i+1, out)
		}
	}
}

func TestBadStoreRejected(t *testing.T) {
	if _, err := run(t, "", "--store", "postgres", "overview"); err == nil {
		t.Fatalf("expected unknown store to fail")
	}
	if _, err := run(t, "", "--store", "memory", "-l", "chatty", "overview"); err == nil {
		t.Fatalf("expected bad log level to fail")
	}
}

func TestScreenCommands(t *testing.T) {
	out := mustRun(t, "--store", "memory", "overview", "--phase", "shop")
	if !strings.Contains(out, "Total points: 520") || !strings.Contains(out, "(Shop)") {
		t.Fatalf("unexpected overview:\n%s", out)
	}

	out = mustRun(t, "--store", "memory", "plan", "--recipe", "2")
	if !strings.Contains(out, "Chicken Caesar Salad") || !strings.Contains(out, "missing") {
		t.Fatalf("unexpected recipe detail:\n%s", out)
	}
	if _, err := run(t, "", "--store", "memory", "plan", "--recipe", "99"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	out = mustRun(t, "--store", "memory", "inventory", "--expand", "pantry,freezer")
	if !strings.Contains(out, "Olive Oil") || !strings.Contains(out, "Ground Beef") {
		t.Fatalf("expected expanded sections:\n%s", out)
	}

	out = mustRun(t, "--store", "memory", "profile", "--category", "nutrition")
	if !strings.Contains(out, "280/60 points") {
		t.Fatalf("unexpected points view:\n%s", out)
	}

	out = mustRun(t, "--store", "memory", "shopping", "export", "--format", "csv")
	if !strings.HasPrefix(out, "aisle,name,quantity,for_meals,urgent") {
		t.Fatalf("unexpected export:\n%s", out)
	}
}

func TestSettingsPersistAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedme.db")
	mustRun(t, "--db", path, "settings", "allergen", "soy")
	mustRun(t, "--db", path, "settings", "measurement", "imperial")
	mustRun(t, "--db", path, "settings", "appliance", "airfryer")
	if _, err := run(t, "", "--db", path, "settings", "allergen", "cheese"); err == nil {
		t.Fatalf("expected unknown allergen to fail")
	}

	out := mustRun(t, "--db", path, "settings", "show", "--yaml")
	var doc struct {
		Allergens   []string        `yaml:"allergens"`
		Measurement string          `yaml:"measurement_system"`
		Appliances  map[string]bool `yaml:"appliances"`
	}
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode settings: %v\n%s", err, out)
	}
	if len(doc.Allergens) != 1 || doc.Allergens[0] != "Soy" || doc.Measurement != "imperial" || !doc.Appliances["airfryer"] {
		t.Fatalf("unexpected settings %+v", doc)
	}
}

func TestAddMealsRecordsPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedme.db")

	if _, err := run(t, "", "--db", path, "add-meals"); !errors.Is(err, wizard.ErrNoMealsRequested) {
		t.Fatalf("expected ErrNoMealsRequested, got %v", err)
	}
	if _, err := run(t, "", "--db", path, "add-meals", "--dinner", "1", "--favorites=false", "--pick", "3"); err == nil {
		t.Fatalf("expected --pick without --favorites to fail")
	}

	out := mustRun(t, "--db", path, "add-meals", "--dinner", "2", "--snack", "3", "--dietary", "vegan", "--pick", "3")
	for _, want := range []string{"Saved plan request", "5 meals, about 2 days", "Favourites: 3", "Next screen: Meal Plan"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	mustRun(t, "--db", path, "add-meals", "--breakfast", "1", "--favorites=false")

	out = mustRun(t, "--db", path, "plans")
	if !strings.Contains(out, "0/0/2/3\t2\tmedium\t3") || !strings.Contains(out, "1/0/0/0\t1") {
		t.Fatalf("unexpected plan list:\n%s", out)
	}
}

func TestShellSession(t *testing.T) {
	script := strings.Join([]string{
		"go profile",
		"login",
		"go inventory",
		"scroll 50",
		"scroll 0",
		"view shopping",
		"go add",
		"inc dinner",
		"next",
		"next",
		"favorites off",
		"generate",
		"go profile",
		"points cooking",
		"logout",
		"quit",
	}, "\n")
	out, err := run(t, script, "--store", "memory", "shell")
	if err != nil {
		t.Fatalf("shell: %v\n%s", err, out)
	}
	for _, want := range []string{
		"error: sign in first",
		"| Inventory | Meal Plan | [Overview] | Add Meals | Profile |",
		"tab bar: hidden",
		"tab bar: shown",
		"(Shopping List)",
		"Next screen: Meal Plan",
		"95/100 points",
		"Get Started",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in session output:\n%s", want, out)
		}
	}
}

func TestDoctorAndBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feedme.db")

	out := mustRun(t, "--db", path, "doctor")
	if !strings.Contains(out, "Orphan recipe rows: 0") {
		t.Fatalf("unexpected doctor output:\n%s", out)
	}
	if _, err := run(t, "", "--store", "memory", "doctor"); err == nil {
		t.Fatalf("expected doctor to require sqlite")
	}

	backup := filepath.Join(dir, "snap.db")
	out = mustRun(t, "--db", path, "backup", "create", "--out", backup)
	if !strings.Contains(out, "Created backup: "+backup) {
		t.Fatalf("unexpected backup output:\n%s", out)
	}
	restored := filepath.Join(dir, "restored.db")
	junk := filepath.Join(dir, "junk.db")
	if err := os.WriteFile(junk, []byte("not a database"), 0o644); err != nil {
		t.Fatalf("write junk: %v", err)
	}
	if _, err := run(t, "", "--db", restored, "backup", "restore", "--file", junk); !errors.Is(err, repository.ErrNoChecksum) {
		t.Fatalf("expected restore of an unchecked file to fail, got %v", err)
	}
	out = mustRun(t, "--db", restored, "backup", "restore", "--file", backup)
	if !strings.Contains(out, "schema v3") {
		t.Fatalf("unexpected restore output:\n%s", out)
	}
	out = mustRun(t, "--db", restored, "plan")
	if !strings.Contains(out, "Pasta Primavera") {
		t.Fatalf("restored database is missing recipes:\n%s", out)
	}
}

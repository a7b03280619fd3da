package nav_test

import (
	"errors"
	"testing"

	"github.com/esteban0203/FMA-2/internal/nav"
	"github.com/esteban0203/FMA-2/internal/state"
)

func TestShellFollowsAuth(t *testing.T) {
	t.Parallel()
	store := state.NewStore()
	shell := nav.NewShell(store)
	defer shell.Close()

	if shell.Current() != nav.RouteLogin || shell.Root() != nav.RouteLogin {
		t.Fatalf("expected Login before sign in, got %q", shell.Current())
	}
	if err := shell.Navigate(nav.RouteProfile); !errors.Is(err, nav.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	store.Auth.Login()
	if shell.Root() != nav.RouteMain || shell.Current() != nav.RouteOverview {
		t.Fatalf("expected Main/Overview after login, got %q/%q", shell.Root(), shell.Current())
	}

	if err := shell.Navigate(nav.RouteProfile); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	store.Auth.SignOut()
	if store.Auth.IsAuthenticated() {
		t.Fatalf("expected signed out")
	}
	if shell.Current() != nav.RouteLogin || shell.Root() != nav.RouteLogin {
		t.Fatalf("expected Login after sign out, got %q", shell.Current())
	}
	if shell.TabBarVisible() {
		t.Fatalf("tab bar must not show on Login")
	}

	store.Auth.Login()
	if shell.Current() != nav.RouteOverview {
		t.Fatalf("expected fresh session to start on Overview, got %q", shell.Current())
	}
	if err := shell.GoBack(); !errors.Is(err, nav.ErrNoHistory) {
		t.Fatalf("expected history cleared on sign out, got %v", err)
	}
}

func TestShellHistory(t *testing.T) {
	t.Parallel()
	store := state.NewStore()
	store.Auth.Login()
	shell := nav.NewShell(store)
	defer shell.Close()

	for _, r := range []string{nav.RouteAddMeals, nav.RouteMealPlan, nav.RouteMealPlan} {
		if err := shell.Navigate(r); err != nil {
			t.Fatalf("navigate %q: %v", r, err)
		}
	}
	if err := shell.Navigate("Settings"); !errors.Is(err, nav.ErrUnknownRoute) {
		t.Fatalf("expected ErrUnknownRoute, got %v", err)
	}
	if shell.Current() != nav.RouteMealPlan {
		t.Fatalf("failed navigation changed the screen to %q", shell.Current())
	}

	if err := shell.GoBack(); err != nil {
		t.Fatalf("go back: %v", err)
	}
	if shell.Current() != nav.RouteAddMeals {
		t.Fatalf("expected Add Meals, got %q", shell.Current())
	}
	if err := shell.GoBack(); err != nil {
		t.Fatalf("go back: %v", err)
	}
	if shell.Current() != nav.RouteOverview {
		t.Fatalf("expected Overview, got %q", shell.Current())
	}
	if err := shell.GoBack(); !errors.Is(err, nav.ErrNoHistory) {
		t.Fatalf("expected ErrNoHistory, got %v", err)
	}
}

func TestTabBarVisibilityTracksScroll(t *testing.T) {
	t.Parallel()
	store := state.NewStore()
	store.Auth.Login()
	shell := nav.NewShell(store)
	defer shell.Close()

	tracker := state.NewScrollTracker(store.NavBar)
	tracker.OnScroll(30)
	if shell.TabBarVisible() {
		t.Fatalf("expected tab bar hidden after scrolling down")
	}
	tracker.OnScroll(0)
	if !shell.TabBarVisible() {
		t.Fatalf("expected tab bar visible at the top")
	}
}

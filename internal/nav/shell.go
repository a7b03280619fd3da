package nav

import (
	"errors"
	"fmt"
	"sync"

	"github.com/esteban0203/FMA-2/internal/app"
	"github.com/esteban0203/FMA-2/internal/state"
)

const (
	RouteLogin     = "Login"
	RouteMain      = "Main"
	RouteOverview  = "Overview"
	RouteMealPlan  = "Meal Plan"
	RouteInventory = "Inventory"
	RouteAddMeals  = "Add Meals"
	RouteProfile   = "Profile"
)

var Tabs = []string{RouteInventory, RouteMealPlan, RouteOverview, RouteAddMeals, RouteProfile}

const initialTab = RouteOverview

var (
	ErrUnknownRoute     = errors.New("unknown route")
	ErrNotAuthenticated = errors.New("not signed in")
	ErrNoHistory        = errors.New("no previous screen")
)

type Navigator interface {
	Navigate(route string) error
	GoBack() error
}

type Shell struct {
	store *state.Store

	mu      sync.Mutex
	tab     string
	history []string

	unsubscribe func()
}

func NewShell(store *state.Store) *Shell {
	s := &Shell{store: store, tab: initialTab}
	s.unsubscribe = store.Auth.Subscribe(s.onAuthChange)
	return s
}

func (s *Shell) onAuthChange(authenticated bool) {
	s.mu.Lock()
	s.tab = initialTab
	s.history = nil
	s.mu.Unlock()
	root := RouteLogin
	if authenticated {
		root = RouteMain
	}
	app.Log.WithField("root", root).Debug("navigation root changed")
}

func (s *Shell) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *Shell) Root() string {
	if s.store.Auth.IsAuthenticated() {
		return RouteMain
	}
	return RouteLogin
}

func (s *Shell) Current() string {
	if !s.store.Auth.IsAuthenticated() {
		return RouteLogin
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

func IsTab(route string) bool {
	for _, t := range Tabs {
		if t == route {
			return true
		}
	}
	return false
}

func (s *Shell) Navigate(route string) error {
	if !s.store.Auth.IsAuthenticated() {
		return fmt.Errorf("navigate to %q: %w", route, ErrNotAuthenticated)
	}
	if route == RouteMain {
		route = initialTab
	}
	if !IsTab(route) {
		return fmt.Errorf("navigate to %q: %w", route, ErrUnknownRoute)
	}

	s.mu.Lock()
	from := s.tab
	if from != route {
		s.history = append(s.history, from)
		s.tab = route
	}
	s.mu.Unlock()

	app.Log.WithField("from", from).WithField("to", route).Debug("navigate")
	return nil
}

func (s *Shell) GoBack() error {
	if !s.store.Auth.IsAuthenticated() {
		return fmt.Errorf("go back: %w", ErrNotAuthenticated)
	}
	s.mu.Lock()
	if len(s.history) == 0 {
		s.mu.Unlock()
		return ErrNoHistory
	}
	prev := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.tab = prev
	s.mu.Unlock()

	app.Log.WithField("to", prev).Debug("navigate back")
	return nil
}

func (s *Shell) TabBarVisible() bool {
	return s.store.Auth.IsAuthenticated() && s.store.NavBar.Visible()
}

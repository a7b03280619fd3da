package feedme

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/esteban0203/FMA-2/internal/app"
	"github.com/esteban0203/FMA-2/internal/model"
	"github.com/esteban0203/FMA-2/internal/nav"
	"github.com/esteban0203/FMA-2/internal/repository"
	"github.com/esteban0203/FMA-2/internal/service"
	"github.com/esteban0203/FMA-2/internal/state"
	"github.com/esteban0203/FMA-2/internal/view"
	"github.com/esteban0203/FMA-2/internal/wizard"
)

var errQuit = errors.New("quit")

// session is one interactive run: a shared state store, the navigation shell
// and one instance of every screen, so local screen state survives tab switches.
type session struct {
	store  *state.Store
	shell  *nav.Shell
	scroll *state.ScrollTracker
	out    io.Writer

	login     *view.Login
	overview  *view.Overview
	mealPlan  *view.MealPlan
	inventory *view.Inventory
	addMeals  *view.AddMeals
	profile   *view.Profile
}

func newSession(ctx context.Context, repo repository.Repository, out io.Writer) (*session, error) {
	recipes, err := repo.Recipes(ctx)
	if err != nil {
		return nil, err
	}
	store := state.NewStore()
	shell := nav.NewShell(store)
	w := wizard.New(shell, recipes)
	w.OnComplete(func(req model.PlanRequest) error {
		return repo.SavePlanRequest(ctx, req)
	})
	s := &session{
		store:     store,
		shell:     shell,
		scroll:    state.NewScrollTracker(store.NavBar),
		out:       out,
		login:     view.NewLogin(store.Auth),
		overview:  view.NewOverview(repo),
		mealPlan:  view.NewMealPlan(repo),
		inventory: view.NewInventory(repo),
		addMeals:  view.NewAddMeals(w),
		profile:   view.NewProfile(repo, store.Auth),
	}
	return s, nil
}

func (s *session) close() { s.shell.Close() }

func (s *session) screen() view.Screen {
	switch s.shell.Current() {
	case nav.RouteLogin:
		return s.login
	case nav.RouteOverview:
		return s.overview
	case nav.RouteMealPlan:
		return s.mealPlan
	case nav.RouteInventory:
		return s.inventory
	case nav.RouteAddMeals:
		return s.addMeals
	case nav.RouteProfile:
		return s.profile
	}
	panic("feedme: unhandled route " + s.shell.Current())
}

func (s *session) render(ctx context.Context) error {
	if err := s.screen().Render(ctx, s.out); err != nil {
		return err
	}
	if s.shell.TabBarVisible() {
		labels := make([]string, len(nav.Tabs))
		for i, t := range nav.Tabs {
			if t == s.shell.Current() {
				labels[i] = "[" + t + "]"
			} else {
				labels[i] = t
			}
		}
		fmt.Fprintf(s.out, "\n| %s |\n", strings.Join(labels, " | "))
	}
	return nil
}

func (s *session) run(ctx context.Context, in io.Reader) error {
	if err := s.render(ctx); err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rerender, err := s.exec(ctx, line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			continue
		}
		if rerender {
			if err := s.render(ctx); err != nil {
				return err
			}
		}
	}
}

func parseRoute(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "overview", "home":
		return nav.RouteOverview, nil
	case "meal plan", "plan", "meal-plan":
		return nav.RouteMealPlan, nil
	case "inventory":
		return nav.RouteInventory, nil
	case "add meals", "add", "add-meals":
		return nav.RouteAddMeals, nil
	case "profile":
		return nav.RouteProfile, nil
	}
	return "", fmt.Errorf("unknown screen %q", name)
}

// exec runs one command line. The bool reports whether the screen changed.
func (s *session) exec(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
	app.Log.WithField("command", cmd).Debug("shell command")

	switch cmd {
	case "quit", "exit":
		return false, errQuit
	case "help":
		fmt.Fprint(s.out, shellHelp)
		return false, nil
	case "show":
		return true, nil
	}

	if s.shell.Current() == nav.RouteLogin {
		switch cmd {
		case "login", "start", "get-started":
			s.login.GetStarted()
			return true, nil
		}
		return false, fmt.Errorf("sign in first (type login)")
	}

	switch cmd {
	case "logout":
		s.profile.Logout()
		return true, nil
	case "go", "tab":
		route, err := parseRoute(rest)
		if err != nil {
			return false, err
		}
		if err := s.shell.Navigate(route); err != nil {
			return false, err
		}
		// A new screen starts scrolled to the top.
		s.scroll.Reset()
		s.store.NavBar.SetVisible(true)
		return true, nil
	case "back":
		if err := s.shell.GoBack(); err != nil {
			return false, err
		}
		s.scroll.Reset()
		s.store.NavBar.SetVisible(true)
		return true, nil
	case "scroll":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: scroll <offset>")
		}
		offset, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return false, fmt.Errorf("invalid offset %q", args[0])
		}
		s.scroll.OnScroll(offset)
		if s.store.NavBar.Visible() {
			fmt.Fprintln(s.out, "tab bar: shown")
		} else {
			fmt.Fprintln(s.out, "tab bar: hidden")
		}
		return false, nil
	}

	switch s.shell.Current() {
	case nav.RouteOverview:
		return s.execOverview(cmd, rest)
	case nav.RouteMealPlan:
		return s.execMealPlan(ctx, cmd, rest)
	case nav.RouteInventory:
		return s.execInventory(ctx, cmd, rest)
	case nav.RouteAddMeals:
		return s.execAddMeals(cmd, args, rest)
	case nav.RouteProfile:
		return s.execProfile(ctx, cmd, rest)
	}
	return false, fmt.Errorf("unknown command %q (type help)", cmd)
}

func (s *session) execOverview(cmd, rest string) (bool, error) {
	if cmd != "phase" {
		return false, fmt.Errorf("unknown command %q on Overview (type help)", cmd)
	}
	p, err := view.ParsePhase(rest)
	if err != nil {
		return false, err
	}
	s.overview.SetPhase(p)
	return true, nil
}

func (s *session) execMealPlan(ctx context.Context, cmd, rest string) (bool, error) {
	switch cmd {
	case "open":
		return true, s.mealPlan.OpenRecipe(ctx, rest)
	case "close":
		s.mealPlan.CloseRecipe()
		return true, nil
	}
	return false, fmt.Errorf("unknown command %q on Meal Plan (type help)", cmd)
}

func (s *session) execInventory(ctx context.Context, cmd, rest string) (bool, error) {
	switch cmd {
	case "view":
		tab, err := view.ParseInventoryTab(rest)
		if err != nil {
			return false, err
		}
		s.inventory.SetTab(tab)
		return true, nil
	case "toggle":
		sec, err := model.ParseStorageSection(rest)
		if err != nil {
			return false, err
		}
		s.inventory.ToggleSection(sec)
		return true, nil
	case "export":
		if rest == "" {
			s.inventory.OpenExport()
			return true, nil
		}
		format, err := service.ParseExportFormat(rest)
		if err != nil {
			return false, err
		}
		return false, s.inventory.Export(ctx, s.out, format)
	case "close":
		s.inventory.CloseExport()
		return true, nil
	}
	return false, fmt.Errorf("unknown command %q on Inventory (type help)", cmd)
}

func (s *session) execAddMeals(cmd string, args []string, rest string) (bool, error) {
	w := s.addMeals.Wizard
	mealArg := func() (model.MealType, error) {
		if len(args) < 1 {
			return "", fmt.Errorf("usage: %s <meal type>", cmd)
		}
		return model.ParseMealType(args[0])
	}

	switch cmd {
	case "inc", "dec", "suggest":
		t, err := mealArg()
		if err != nil {
			return false, err
		}
		switch cmd {
		case "inc":
			w.Increment(t)
		case "dec":
			w.Decrement(t)
		default:
			w.ApplySuggestion(t)
		}
		return true, nil
	case "count":
		t, err := mealArg()
		if err != nil {
			return false, err
		}
		if len(args) != 2 {
			return false, fmt.Errorf("usage: count <meal type> <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return false, fmt.Errorf("invalid count %q", args[1])
		}
		w.SetCount(t, n)
		return true, nil
	case "next":
		return true, w.Next()
	case "prev":
		return true, w.Back()
	case "skill":
		l, err := model.ParseSkillLevel(rest)
		if err != nil {
			return false, err
		}
		w.SetSkillLevel(l)
		return true, nil
	case "time":
		c, err := model.ParseCookingTime(rest)
		if err != nil {
			return false, err
		}
		w.SetCookingTime(c)
		return true, nil
	case "diet":
		return true, w.ToggleDietary(rest)
	case "notes":
		w.SetNotes(rest)
		return true, nil
	case "favorites", "leftovers", "optimize":
		on, err := parseOnOff(rest)
		if err != nil {
			return false, err
		}
		switch cmd {
		case "favorites":
			w.SetUseFavorites(on)
		case "leftovers":
			w.SetUseLeftovers(on)
		default:
			w.SetOptimizeIngredients(on)
		}
		return true, nil
	case "generate":
		out, err := w.Generate()
		if err != nil {
			return false, err
		}
		if out.NeedsFavorites {
			return true, nil
		}
		s.planSaved(out.Request)
		return true, nil
	case "fav":
		return true, w.ToggleFavorite(rest)
	case "finish":
		req, err := w.Finish()
		if err != nil {
			return false, err
		}
		s.planSaved(req)
		return true, nil
	}
	return false, fmt.Errorf("unknown command %q on Add Meals (type help)", cmd)
}

// planSaved runs after the wizard has recorded req and opened the Meal Plan.
func (s *session) planSaved(req model.PlanRequest) {
	s.addMeals.Wizard.Reset()
	printPlanSaved(s.out, req, s.shell.Current())
}

func (s *session) execProfile(ctx context.Context, cmd, rest string) (bool, error) {
	switch cmd {
	case "points":
		c := model.Efficiency
		if rest != "" {
			var err error
			if c, err = model.ParsePointsCategory(rest); err != nil {
				return false, err
			}
		}
		if s.profile.PointsOpen() {
			s.profile.SelectCategory(c)
		} else {
			s.profile.OpenPoints(c)
		}
		return true, nil
	case "settings":
		s.profile.OpenSettings()
		return true, nil
	case "close":
		s.profile.ClosePoints()
		s.profile.CloseSettings()
		return true, nil
	case "allergen":
		return true, s.profile.ToggleAllergen(ctx, rest)
	case "measurement":
		m, err := model.ParseMeasurementSystem(rest)
		if err != nil {
			return false, err
		}
		return true, s.profile.SetMeasurementSystem(ctx, m)
	case "appliance":
		return true, s.profile.ToggleAppliance(ctx, rest)
	}
	return false, fmt.Errorf("unknown command %q on Profile (type help)", cmd)
}

const shellHelp = `Everywhere:
  show                 redraw the current screen
  login                sign in from the Login screen
  logout               sign out
  go <screen>          overview, plan, inventory, add, profile
  back                 previous screen
  scroll <offset>      report a scroll position
  quit
Overview:    phase <plan|shop|cook|track>
Meal Plan:   open <recipe id>, close
Inventory:   view <available|shopping>, toggle <section>, export [format], close
Add Meals:   inc|dec|suggest <type>, count <type> <n>, next, prev,
             skill <level>, time <range>, diet <tag>, notes <text>,
             favorites|leftovers|optimize <on|off>, generate, fav <id>, finish
Profile:     points [category], settings, close,
             allergen <name>, measurement <metric|imperial>, appliance <id>
`

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(cmd.Context(), func(repo repository.Repository) error {
			s, err := newSession(cmd.Context(), repo, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer s.close()
			return s.run(cmd.Context(), cmd.InOrStdin())
		})
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

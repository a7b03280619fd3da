package feedme

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/esteban0203/FMA-2/internal/model"
	"github.com/esteban0203/FMA-2/internal/nav"
	"github.com/esteban0203/FMA-2/internal/repository"
	"github.com/esteban0203/FMA-2/internal/state"
	"github.com/esteban0203/FMA-2/internal/view"
	"github.com/esteban0203/FMA-2/internal/wizard"
)

var (
	addBreakfast int
	addLunch     int
	addDinner    int
	addSnack     int
	addSkill     string
	addTime      string
	addDietary   []string
	addNotes     string
	addFavorites bool
	addLeftovers bool
	addOptimize  bool
	addPick      []string
)

var addMealsCmd = &cobra.Command{
	Use:   "add-meals",
	Short: "Run the Add Meals flow and record the plan request",
	RunE: func(cmd *cobra.Command, args []string) error {
		skill, err := model.ParseSkillLevel(addSkill)
		if err != nil {
			return err
		}
		cookTime, err := model.ParseCookingTime(addTime)
		if err != nil {
			return err
		}
		if len(addPick) > 0 && !addFavorites {
			return fmt.Errorf("--pick requires --favorites")
		}

		return withRepo(cmd.Context(), func(repo repository.Repository) error {
			recipes, err := repo.Recipes(cmd.Context())
			if err != nil {
				return err
			}

			store := state.NewStore()
			store.Auth.Login()
			shell := nav.NewShell(store)
			defer shell.Close()
			if err := shell.Navigate(nav.RouteAddMeals); err != nil {
				return err
			}

			w := wizard.New(shell, recipes)
			w.OnComplete(func(req model.PlanRequest) error {
				return repo.SavePlanRequest(cmd.Context(), req)
			})
			w.SetCount(model.Breakfast, addBreakfast)
			w.SetCount(model.Lunch, addLunch)
			w.SetCount(model.Dinner, addDinner)
			w.SetCount(model.Snack, addSnack)
			if err := w.Next(); err != nil {
				return fmt.Errorf("%w: set at least one of --breakfast, --lunch, --dinner, --snack", err)
			}

			w.SetSkillLevel(skill)
			w.SetCookingTime(cookTime)
			for _, tag := range addDietary {
				if model.HasTag(w.Preferences().Dietary, tag) {
					continue
				}
				if err := w.ToggleDietary(tag); err != nil {
					return err
				}
			}
			w.SetNotes(addNotes)
			w.SetUseFavorites(addFavorites)
			w.SetUseLeftovers(addLeftovers)
			w.SetOptimizeIngredients(addOptimize)
			if err := w.Next(); err != nil {
				return err
			}

			if err := view.NewAddMeals(w).Render(cmd.Context(), cmd.OutOrStdout()); err != nil {
				return err
			}

			out, err := w.Generate()
			if err != nil {
				return err
			}
			req := out.Request
			if out.NeedsFavorites {
				for _, id := range addPick {
					if err := w.ToggleFavorite(strings.TrimSpace(id)); err != nil {
						return err
					}
				}
				if req, err = w.Finish(); err != nil {
					return err
				}
			}

			printPlanSaved(cmd.OutOrStdout(), req, shell.Current())
			return nil
		})
	},
}

func printPlanSaved(w io.Writer, req model.PlanRequest, screen string) {
	fmt.Fprintf(w, "\nSaved plan request %s: %d meals, about %d days\n", req.ID, req.Counts.Total(), req.EstimatedDays)
	if len(req.FavoriteRecipeIDs) > 0 {
		fmt.Fprintf(w, "Favourites: %s\n", strings.Join(req.FavoriteRecipeIDs, ", "))
	}
	fmt.Fprintf(w, "Next screen: %s\n", screen)
}

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List recorded plan requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(cmd.Context(), func(repo repository.Repository) error {
			reqs, err := repo.PlanRequests(cmd.Context())
			if err != nil {
				return err
			}
			if len(reqs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No plan requests yet")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tCREATED\tB/L/D/S\tDAYS\tSKILL\tFAVORITES")
			for _, r := range reqs {
				c := r.Counts
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d/%d/%d/%d\t%d\t%s\t%s\n",
					r.ID, r.CreatedAt.Local().Format(time.RFC3339),
					c.Breakfast, c.Lunch, c.Dinner, c.Snack,
					r.EstimatedDays, r.Preferences.SkillLevel, strings.Join(r.FavoriteRecipeIDs, ","))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(addMealsCmd, plansCmd)

	f := addMealsCmd.Flags()
	f.IntVar(&addBreakfast, "breakfast", 0, "Breakfasts to plan")
	f.IntVar(&addLunch, "lunch", 0, "Lunches to plan")
	f.IntVar(&addDinner, "dinner", 0, "Dinners to plan")
	f.IntVar(&addSnack, "snack", 0, "Snacks to plan")
	f.StringVar(&addSkill, "skill", string(model.SkillMedium), "Skill level: easy, medium, or advanced")
	f.StringVar(&addTime, "time", string(model.CookingMedium), "Cooking time: 15-30, 30-60, or 60+")
	f.StringSliceVar(&addDietary, "dietary", nil, "Dietary preferences (Vegetarian, Vegan, Gluten-Free, Low-Carb, High-Protein)")
	f.StringVar(&addNotes, "notes", "", "Additional notes")
	f.BoolVar(&addFavorites, "favorites", true, "Choose favourite recipes before generating")
	f.BoolVar(&addLeftovers, "leftovers", true, "Plan around leftovers")
	f.BoolVar(&addOptimize, "optimize", true, "Optimize ingredient usage")
	f.StringSliceVar(&addPick, "pick", nil, "Recipe ids to mark as favourites")
}

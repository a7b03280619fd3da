package wizard

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/esteban0203/FMA-2/internal/app"
	"github.com/esteban0203/FMA-2/internal/catalog"
	"github.com/esteban0203/FMA-2/internal/model"
	"github.com/esteban0203/FMA-2/internal/nav"
	"github.com/esteban0203/FMA-2/internal/service"
)

type Step int

const (
	StepCounts Step = iota + 1
	StepPreferences
	StepReview
	// StepFavorites is only reached from review when favourites are requested.
	StepFavorites
)

const mainSteps = 3

func (s Step) String() string {
	switch s {
	case StepCounts:
		return "counts"
	case StepPreferences:
		return "preferences"
	case StepReview:
		return "review"
	case StepFavorites:
		return "favorites"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

var (
	ErrNoMealsRequested  = errors.New("no meals requested")
	ErrInvalidTransition = errors.New("invalid wizard transition")
	ErrUnknownRecipe     = errors.New("unknown recipe")
)

type Navigator interface {
	Navigate(route string) error
}

// Outcome is the result of Generate. When NeedsFavorites is set the wizard has
// moved to StepFavorites and Request is empty until Finish.
type Outcome struct {
	NeedsFavorites bool
	Request        model.PlanRequest
}

// Recorder persists a finished plan request. It runs before the Meal Plan
// screen opens; an error leaves the wizard where it was.
type Recorder func(model.PlanRequest) error

type Wizard struct {
	nav     Navigator
	recipes []model.Recipe
	now     func() time.Time
	record  Recorder

	step      Step
	counts    model.MealCounts
	prefs     model.Preferences
	favorites []string
}

func DefaultPreferences() model.Preferences {
	return model.Preferences{
		SkillLevel:          model.SkillMedium,
		CookingTime:         model.CookingMedium,
		Dietary:             []string{},
		UseFavorites:        true,
		UseLeftovers:        true,
		OptimizeIngredients: true,
	}
}

func New(navigator Navigator, recipes []model.Recipe) *Wizard {
	w := &Wizard{
		nav:     navigator,
		recipes: append([]model.Recipe(nil), recipes...),
		now:     time.Now,
	}
	w.Reset()
	return w
}

func (w *Wizard) OnComplete(r Recorder) { w.record = r }

func (w *Wizard) Reset() {
	w.step = StepCounts
	w.counts = model.MealCounts{}
	w.prefs = DefaultPreferences()
	w.favorites = nil
}

func (w *Wizard) Step() Step                      { return w.step }
func (w *Wizard) Counts() model.MealCounts        { return w.counts }
func (w *Wizard) Recipes() []model.Recipe         { return append([]model.Recipe(nil), w.recipes...) }
func (w *Wizard) Favorites() []string             { return append([]string(nil), w.favorites...) }
func (w *Wizard) Count(t model.MealType) int      { return w.counts.Get(t) }
func (w *Wizard) Total() int                      { return w.counts.Total() }
func (w *Wizard) IsFavorite(recipeID string) bool { return model.HasTag(w.favorites, recipeID) }

func (w *Wizard) Preferences() model.Preferences {
	p := w.prefs
	p.Dietary = append([]string{}, w.prefs.Dietary...)
	return p
}

func (w *Wizard) Increment(t model.MealType) {
	w.counts.Set(t, w.counts.Get(t)+1)
}

func (w *Wizard) Decrement(t model.MealType) {
	if n := w.counts.Get(t); n > 0 {
		w.counts.Set(t, n-1)
	}
}

func (w *Wizard) SetCount(t model.MealType, n int) {
	if n < 0 {
		n = 0
	}
	w.counts.Set(t, n)
}

func (w *Wizard) ApplySuggestion(t model.MealType) {
	w.counts.Set(t, catalog.SuggestionFor(t).Recommended)
}

func (w *Wizard) CanAdvance() bool {
	switch w.step {
	case StepCounts, StepPreferences:
		return w.Total() > 0
	default:
		return false
	}
}

func (w *Wizard) Next() error {
	switch w.step {
	case StepCounts, StepPreferences:
		if w.Total() == 0 {
			return ErrNoMealsRequested
		}
		w.moveTo(w.step + 1)
	default:
		return fmt.Errorf("next from %s: %w", w.step, ErrInvalidTransition)
	}
	return nil
}

func (w *Wizard) Back() error {
	switch w.step {
	case StepPreferences:
		w.moveTo(StepCounts)
	case StepReview:
		w.moveTo(StepPreferences)
	case StepFavorites:
		w.moveTo(StepReview)
	default:
		return fmt.Errorf("back from %s: %w", w.step, ErrInvalidTransition)
	}
	return nil
}

func (w *Wizard) moveTo(next Step) {
	app.Log.WithFields(logrus.Fields{"from": w.step.String(), "to": next.String()}).Debug("wizard step")
	w.step = next
}

func (w *Wizard) SetSkillLevel(l model.SkillLevel)   { w.prefs.SkillLevel = l }
func (w *Wizard) SetCookingTime(c model.CookingTime) { w.prefs.CookingTime = c }
func (w *Wizard) SetNotes(notes string)              { w.prefs.Notes = notes }
func (w *Wizard) SetUseFavorites(v bool)             { w.prefs.UseFavorites = v }
func (w *Wizard) SetUseLeftovers(v bool)             { w.prefs.UseLeftovers = v }
func (w *Wizard) SetOptimizeIngredients(v bool)      { w.prefs.OptimizeIngredients = v }

func (w *Wizard) ToggleDietary(tag string) error {
	name, ok := model.Canonical(catalog.DietaryTags, tag)
	if !ok {
		return fmt.Errorf("unknown dietary preference %q", tag)
	}
	w.prefs.Dietary = model.ToggleTag(w.prefs.Dietary, name)
	return nil
}

func (w *Wizard) EstimatedDays() int {
	return service.EstimatedDays(w.counts)
}

func (w *Wizard) Progress() float64 {
	s := int(w.step)
	if s > mainSteps {
		s = mainSteps
	}
	return float64(s) / mainSteps
}

// Generate ends the review step. Without favourites it builds the plan request
// and opens the Meal Plan screen; with favourites it moves to StepFavorites.
func (w *Wizard) Generate() (Outcome, error) {
	if w.step != StepReview {
		return Outcome{}, fmt.Errorf("generate from %s: %w", w.step, ErrInvalidTransition)
	}
	if w.Total() == 0 {
		return Outcome{}, ErrNoMealsRequested
	}
	if w.prefs.UseFavorites {
		w.moveTo(StepFavorites)
		return Outcome{NeedsFavorites: true}, nil
	}
	req, err := w.complete()
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Request: req}, nil
}

func (w *Wizard) ToggleFavorite(recipeID string) error {
	if w.step != StepFavorites {
		return fmt.Errorf("toggle favourite on %s: %w", w.step, ErrInvalidTransition)
	}
	for _, r := range w.recipes {
		if r.ID == recipeID {
			w.favorites = model.ToggleTag(w.favorites, recipeID)
			return nil
		}
	}
	return fmt.Errorf("favourite %q: %w", recipeID, ErrUnknownRecipe)
}

func (w *Wizard) Finish() (model.PlanRequest, error) {
	if w.step != StepFavorites {
		return model.PlanRequest{}, fmt.Errorf("finish from %s: %w", w.step, ErrInvalidTransition)
	}
	return w.complete()
}

func (w *Wizard) complete() (model.PlanRequest, error) {
	if w.Total() == 0 {
		return model.PlanRequest{}, ErrNoMealsRequested
	}
	req := model.PlanRequest{
		ID:                uuid.NewString(),
		CreatedAt:         w.now().UTC(),
		Counts:            w.counts,
		Preferences:       w.Preferences(),
		FavoriteRecipeIDs: w.Favorites(),
		EstimatedDays:     w.EstimatedDays(),
	}
	if w.record != nil {
		if err := w.record(req); err != nil {
			return model.PlanRequest{}, fmt.Errorf("record plan request: %w", err)
		}
	}
	if err := w.nav.Navigate(nav.RouteMealPlan); err != nil {
		return model.PlanRequest{}, fmt.Errorf("open meal plan: %w", err)
	}
	app.Log.WithFields(logrus.Fields{
		"plan_id": req.ID,
		"meals":   req.Counts.Total(),
		"days":    req.EstimatedDays,
	}).Debug("plan request generated")
	return req, nil
}

package view

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/esteban0203/FMA-2/internal/model"
)

type Screen interface {
	Render(ctx context.Context, w io.Writer) error
}

const barCells = 20

func bar(fraction float64) string {
	fraction = math.Min(math.Max(fraction, 0), 1)
	filled := int(math.Round(fraction * barCells))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barCells-filled) + "]"
}

func percent(fraction float64) string {
	return fmt.Sprintf("%.0f%%", fraction*100)
}

func pointTags(p model.Points) string {
	tags := make([]string, 0, len(model.AllPointsCategories))
	for _, c := range model.AllPointsCategories {
		if v := p.Get(c); v > 0 {
			tags = append(tags, fmt.Sprintf("+%d %s", v, c))
		}
	}
	return strings.Join(tags, ", ")
}

func mealIcon(t model.MealType) string {
	switch t {
	case model.Breakfast:
		return "sunrise"
	case model.Lunch:
		return "sun"
	case model.Dinner:
		return "moon"
	case model.Snack:
		return "apple"
	}
	panic(fmt.Sprintf("view: unhandled meal type %q", string(t)))
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("=", len(title)))
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", title)
}

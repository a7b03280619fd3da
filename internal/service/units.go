package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/esteban0203/FMA-2/internal/model"
)

type unitKind string

const (
	unitKindMass   unitKind = "mass"
	unitKindVolume unitKind = "volume"
)

type unitDef struct {
	kind       unitKind
	toBaseUnit float64
	system     model.MeasurementSystem
}

var unitTable = map[string]unitDef{
	// mass (base = g)
	"mg":  {kind: unitKindMass, toBaseUnit: 0.001, system: model.Metric},
	"g":   {kind: unitKindMass, toBaseUnit: 1, system: model.Metric},
	"kg":  {kind: unitKindMass, toBaseUnit: 1000, system: model.Metric},
	"oz":  {kind: unitKindMass, toBaseUnit: 28.349523125, system: model.Imperial},
	"lb":  {kind: unitKindMass, toBaseUnit: 453.59237, system: model.Imperial},
	"lbs": {kind: unitKindMass, toBaseUnit: 453.59237, system: model.Imperial},

	// volume (base = ml)
	"ml":    {kind: unitKindVolume, toBaseUnit: 1, system: model.Metric},
	"l":     {kind: unitKindVolume, toBaseUnit: 1000, system: model.Metric},
	"tsp":   {kind: unitKindVolume, toBaseUnit: 4.92892159375, system: model.Imperial},
	"tbsp":  {kind: unitKindVolume, toBaseUnit: 14.78676478125, system: model.Imperial},
	"cup":   {kind: unitKindVolume, toBaseUnit: 236.5882365, system: model.Imperial},
	"cups":  {kind: unitKindVolume, toBaseUnit: 236.5882365, system: model.Imperial},
	"fl-oz": {kind: unitKindVolume, toBaseUnit: 29.5735295625, system: model.Imperial},
}

// LocalizeAmount rewrites an ingredient amount such as "2 cups" or "1/2 lb"
// into system. Amounts without a known unit ("4 large", "1 head") and amounts
// already in system are returned unchanged.
func LocalizeAmount(amount string, system model.MeasurementSystem) string {
	qty, unit, ok := splitAmount(amount)
	if !ok {
		return amount
	}
	def, ok := unitTable[unit]
	if !ok || def.system == system {
		return amount
	}
	base := qty * def.toBaseUnit

	switch {
	case system == model.Metric && def.kind == unitKindMass:
		if base >= 1000 {
			return formatQty(base/1000) + " kg"
		}
		return formatQty(base) + " g"
	case system == model.Metric && def.kind == unitKindVolume:
		if base >= 1000 {
			return formatQty(base/1000) + " l"
		}
		return formatQty(base) + " ml"
	case system == model.Imperial && def.kind == unitKindMass:
		if lb := unitTable["lb"].toBaseUnit; base >= lb {
			return formatQty(base/lb) + " lb"
		}
		return formatQty(base/unitTable["oz"].toBaseUnit) + " oz"
	default:
		switch {
		case base < unitTable["tbsp"].toBaseUnit:
			return formatQty(base/unitTable["tsp"].toBaseUnit) + " tsp"
		case base < unitTable["cup"].toBaseUnit/4:
			return formatQty(base/unitTable["tbsp"].toBaseUnit) + " tbsp"
		}
		cups := base / unitTable["cup"].toBaseUnit
		if formatQty(cups) == "1" {
			return "1 cup"
		}
		return formatQty(cups) + " cups"
	}
}

func splitAmount(amount string) (float64, string, bool) {
	fields := strings.Fields(strings.ToLower(amount))
	if len(fields) < 2 {
		return 0, "", false
	}
	qty, ok := parseQty(fields[0])
	if !ok {
		return 0, "", false
	}
	rest := fields[1:]
	if frac, ok := parseQty(rest[0]); ok && strings.Contains(rest[0], "/") && len(rest) > 1 {
		qty += frac
		rest = rest[1:]
	}
	if len(rest) != 1 {
		return 0, "", false
	}
	return qty, rest[0], true
}

func parseQty(s string) (float64, bool) {
	num, den, isFraction := strings.Cut(s, "/")
	n, ok := parseCount(num)
	if !ok {
		return 0, false
	}
	if !isFraction {
		return n, true
	}
	d, ok := parseCount(den)
	if !ok || d == 0 {
		return 0, false
	}
	return n / d, true
}

func parseCount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func formatQty(v float64) string {
	if v >= 10 {
		return strconv.FormatFloat(math.Round(v), 'f', -1, 64)
	}
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}

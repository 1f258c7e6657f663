package models

import (
	"errors"
	"fmt"
	"time"
)

// MinServings is the smallest serving multiplier accepted for an item.
const MinServings = 0.25

// ErrInvalidServings is returned by ScaleItem when servings is below
// MinServings.
var ErrInvalidServings = errors.New("servings below minimum")

// Food is an unscaled reference portion used to build a NutritionItem.
type Food struct {
	Name        string
	Calories    float64
	Protein     float64
	Carbs       float64
	Fat         float64
	ServingSize float64
}

// ScaleItem multiplies the reference macros by servings once, producing the
// item that gets stored with a meal.
func ScaleItem(id string, food Food, servings float64) (NutritionItem, error) {
	if servings < MinServings {
		return NutritionItem{}, fmt.Errorf("%w: %.2f", ErrInvalidServings, servings)
	}
	return NutritionItem{
		ID:          id,
		Name:        food.Name,
		Calories:    food.Calories * servings,
		Protein:     food.Protein * servings,
		Carbs:       food.Carbs * servings,
		Fat:         food.Fat * servings,
		ServingSize: food.ServingSize,
		Servings:    servings,
	}, nil
}

// Totals returns the meal's stored aggregate.
func (m Meal) Totals() NutritionTotals {
	return NutritionTotals{
		Calories: m.TotalCalories,
		Protein:  m.TotalProtein,
		Carbs:    m.TotalCarbs,
		Fat:      m.TotalFat,
	}
}

// SumItems folds the items of a meal into a single total.
func SumItems(items []NutritionItem) NutritionTotals {
	var t NutritionTotals
	for _, it := range items {
		t = t.Add(NutritionTotals{Calories: it.Calories, Protein: it.Protein, Carbs: it.Carbs, Fat: it.Fat})
	}
	return t
}

func (m *Meal) setTotals(t NutritionTotals) {
	m.TotalCalories = t.Calories
	m.TotalProtein = t.Protein
	m.TotalCarbs = t.Carbs
	m.TotalFat = t.Fat
}

// Recompute resets the totals to the sum of the current items.
func (m *Meal) Recompute() {
	m.setTotals(SumItems(m.Items))
}

// AddItem appends an item and adds its macros to the totals.
func (m *Meal) AddItem(item NutritionItem) {
	m.Items = append(m.Items, item)
	m.setTotals(m.Totals().Add(NutritionTotals{
		Calories: item.Calories,
		Protein:  item.Protein,
		Carbs:    item.Carbs,
		Fat:      item.Fat,
	}))
}

// RemoveItem drops the item with the given id and subtracts its macros.
// It reports whether an item was removed.
func (m *Meal) RemoveItem(itemID string) bool {
	for i, it := range m.Items {
		if it.ID != itemID {
			continue
		}
		m.Items = append(m.Items[:i:i], m.Items[i+1:]...)
		m.setTotals(m.Totals().Add(NutritionTotals{
			Calories: -it.Calories,
			Protein:  -it.Protein,
			Carbs:    -it.Carbs,
			Fat:      -it.Fat,
		}))
		return true
	}
	return false
}

// MealPatch carries the fields of a partial meal update. Replacing Items
// recomputes the totals.
type MealPatch struct {
	Date  *time.Time
	Type  *MealType
	Items []NutritionItem
	Notes *string
}

// Apply merges the patch into m.
func (p MealPatch) Apply(m *Meal) {
	if p.Date != nil {
		m.Date = *p.Date
	}
	if p.Type != nil {
		m.Type = *p.Type
	}
	if p.Items != nil {
		m.Items = append([]NutritionItem(nil), p.Items...)
		m.Recompute()
	}
	if p.Notes != nil {
		n := *p.Notes
		m.Notes = &n
	}
}

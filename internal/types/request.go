package types

import "strings"

// Sentinel option values meaning "no constraint".
const (
	OptionAny  = "Any"
	OptionNone = "None"
)

// CustomizationRequest is the structured recipe request assembled by the
// customization wizard. Every field except Ingredients is drawn from a fixed
// option set and defaults to its sentinel value.
type CustomizationRequest struct {
	Ingredients string `json:"ingredients"`
	Cuisine     string `json:"cuisine"`
	Taste       string `json:"taste"`
	MealType    string `json:"mealType"`
	Portion     string `json:"portion"`
	Dietary     string `json:"dietary"`
	SpiceLevel  string `json:"spiceLevel"`
	CookingTime string `json:"cookingTime"`
	Difficulty  string `json:"difficulty"`
}

// NewCustomizationRequest returns a request with every preference field set
// to its default sentinel.
func NewCustomizationRequest() CustomizationRequest {
	return CustomizationRequest{
		Cuisine:     OptionAny,
		Taste:       OptionAny,
		MealType:    OptionAny,
		Portion:     "2-3 people",
		Dietary:     OptionNone,
		SpiceLevel:  "Medium",
		CookingTime: OptionAny,
		Difficulty:  OptionAny,
	}
}

// WithDefaults fills every blank preference field with its sentinel, so a
// request arriving from outside the wizard still has all nine fields set.
func (r CustomizationRequest) WithDefaults() CustomizationRequest {
	defaults := NewCustomizationRequest()
	defaults.Ingredients = r.Ingredients
	for _, name := range []string{"cuisine", "taste", "mealType", "portion", "dietary", "spiceLevel", "cookingTime", "difficulty"} {
		if v := r.Field(name); v != "" {
			defaults.SetField(name, v)
		}
	}
	return defaults
}

// HasIngredients reports whether the ingredients field holds any non-blank
// text. A request must not be submitted without it.
func (r CustomizationRequest) HasIngredients() bool {
	return strings.TrimSpace(r.Ingredients) != ""
}

// Field returns the value of the named request field.
func (r CustomizationRequest) Field(name string) string {
	switch name {
	case "ingredients":
		return r.Ingredients
	case "cuisine":
		return r.Cuisine
	case "taste":
		return r.Taste
	case "mealType":
		return r.MealType
	case "portion":
		return r.Portion
	case "dietary":
		return r.Dietary
	case "spiceLevel":
		return r.SpiceLevel
	case "cookingTime":
		return r.CookingTime
	case "difficulty":
		return r.Difficulty
	}
	return ""
}

// SetField overwrites the named request field.
func (r *CustomizationRequest) SetField(name, value string) {
	switch name {
	case "ingredients":
		r.Ingredients = value
	case "cuisine":
		r.Cuisine = value
	case "taste":
		r.Taste = value
	case "mealType":
		r.MealType = value
	case "portion":
		r.Portion = value
	case "dietary":
		r.Dietary = value
	case "spiceLevel":
		r.SpiceLevel = value
	case "cookingTime":
		r.CookingTime = value
	case "difficulty":
		r.Difficulty = value
	}
}

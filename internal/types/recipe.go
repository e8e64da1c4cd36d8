package types

import (
	"encoding/json"
	"strings"
)

// Recipe format tags. The representation is decided once, when the payload
// is ingested, and carried with the recipe from then on.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Nutrition holds the approximate per-serving breakdown the model returns.
type Nutrition struct {
	Calories string `json:"calories,omitempty"`
	Protein  string `json:"protein,omitempty"`
	Carbs    string `json:"carbs,omitempty"`
	Fat      string `json:"fat,omitempty"`
}

// Recipe is either a structured recipe or a freeform block of text,
// depending on whether the model produced parseable JSON. Format tells the
// two apart; Text is populated only for freeform recipes.
type Recipe struct {
	Format string `json:"format"`

	Title        string     `json:"title,omitempty"`
	Description  string     `json:"description,omitempty"`
	PrepTime     string     `json:"prepTime,omitempty"`
	CookTime     string     `json:"cookTime,omitempty"`
	TotalTime    string     `json:"totalTime,omitempty"`
	Difficulty   string     `json:"difficulty,omitempty"`
	Servings     string     `json:"servings,omitempty"`
	Cuisine      string     `json:"cuisine,omitempty"`
	Ingredients  []string   `json:"ingredients,omitempty"`
	Instructions []string   `json:"instructions,omitempty"`
	Tips         []string   `json:"tips,omitempty"`
	Nutrition    *Nutrition `json:"nutrition,omitempty"`
	Alternatives []string   `json:"alternatives,omitempty"`

	Text string `json:"text,omitempty"`
}

// FreeformRecipe wraps raw model output that did not parse as JSON.
func FreeformRecipe(text string) Recipe {
	return Recipe{Format: FormatText, Text: text}
}

// ParseRecipe turns raw model output into a Recipe, preferring the
// structured representation. Markdown code fences around the JSON are
// stripped first; anything that still fails to parse is kept as freeform
// text.
func ParseRecipe(raw string) Recipe {
	cleaned := StripCodeFence(raw)

	var r Recipe
	if err := json.Unmarshal([]byte(cleaned), &r); err == nil && r.Title != "" {
		r.Format = FormatJSON
		r.Text = ""
		return r
	}
	return FreeformRecipe(strings.TrimSpace(raw))
}

// StripCodeFence removes a surrounding markdown code fence, with or without
// a "json" language tag, from model output.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	parts := strings.SplitN(s, "```", 3)
	if len(parts) < 2 {
		return s
	}
	body := parts[1]
	body = strings.TrimPrefix(body, "json")
	return strings.TrimSpace(body)
}

// jsonRecipe mirrors Recipe without the methods, for (un)marshalling the
// structured form.
type jsonRecipe struct {
	Format       string     `json:"format,omitempty"`
	Title        string     `json:"title,omitempty"`
	Description  string     `json:"description,omitempty"`
	PrepTime     string     `json:"prepTime,omitempty"`
	CookTime     string     `json:"cookTime,omitempty"`
	TotalTime    string     `json:"totalTime,omitempty"`
	Difficulty   string     `json:"difficulty,omitempty"`
	Servings     string     `json:"servings,omitempty"`
	Cuisine      string     `json:"cuisine,omitempty"`
	Ingredients  []string   `json:"ingredients,omitempty"`
	Instructions []string   `json:"instructions,omitempty"`
	Tips         []string   `json:"tips,omitempty"`
	Nutrition    *Nutrition `json:"nutrition,omitempty"`
	Alternatives []string   `json:"alternatives,omitempty"`
	Text         string     `json:"text,omitempty"`
}

// MarshalJSON emits a bare string for freeform recipes and an object for
// structured ones, matching what older persisted entries look like.
func (r Recipe) MarshalJSON() ([]byte, error) {
	if r.Format == FormatText {
		return json.Marshal(r.Text)
	}
	return json.Marshal(jsonRecipe{
		Format:       r.Format,
		Title:        r.Title,
		Description:  r.Description,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		TotalTime:    r.TotalTime,
		Difficulty:   r.Difficulty,
		Servings:     r.Servings,
		Cuisine:      r.Cuisine,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Tips:         r.Tips,
		Nutrition:    r.Nutrition,
		Alternatives: r.Alternatives,
	})
}

// UnmarshalJSON accepts both representations: a JSON object for structured
// recipes and a bare string for the historical freeform form.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*r = FreeformRecipe(text)
		return nil
	}

	var jr jsonRecipe
	if err := json.Unmarshal(data, &jr); err != nil {
		return err
	}
	*r = Recipe{
		Format:       FormatJSON,
		Title:        jr.Title,
		Description:  jr.Description,
		PrepTime:     jr.PrepTime,
		CookTime:     jr.CookTime,
		TotalTime:    jr.TotalTime,
		Difficulty:   jr.Difficulty,
		Servings:     jr.Servings,
		Cuisine:      jr.Cuisine,
		Ingredients:  jr.Ingredients,
		Instructions: jr.Instructions,
		Tips:         jr.Tips,
		Nutrition:    jr.Nutrition,
		Alternatives: jr.Alternatives,
	}
	return nil
}

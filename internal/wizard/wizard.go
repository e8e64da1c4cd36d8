// Package wizard implements the step-by-step customization flow that builds
// a structured recipe request. The flow is an ordered list of step
// descriptors; the builder walks the list one field at a time and emits the
// finished request on the terminal advance.
package wizard

import (
	"strings"

	"github.com/savora-ai/savora/backend/internal/types"
)

// Step input kinds.
const (
	KindText   = "text"
	KindSelect = "select"
)

// Step describes one wizard question: the request field it populates, how it
// is rendered, and the rule that gates leaving it.
type Step struct {
	Field       string   `json:"field"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Kind        string   `json:"kind"`
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []string `json:"options,omitempty"`

	validate func(value string) bool
}

func nonBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// Steps is the fixed wizard sequence. Only the ingredients step can refuse
// an advance; every select option, including the sentinels, is valid.
var Steps = []Step{
	{
		Field:       "ingredients",
		Title:       "What ingredients do you have?",
		Subtitle:    "Enter ingredients separated by commas",
		Kind:        KindText,
		Placeholder: "e.g., chicken, rice, tomatoes, garlic",
		validate:    nonBlank,
	},
	{
		Field:   "cuisine",
		Title:   "What cuisine type would you prefer?",
		Kind:    KindSelect,
		Options: []string{"Any", "Indian", "Chinese", "Italian", "Mexican", "Thai", "Japanese", "Mediterranean", "American", "French"},
	},
	{
		Field:   "taste",
		Title:   "What's your taste preference?",
		Kind:    KindSelect,
		Options: []string{"Any", "Sweet", "Spicy", "Savory", "Tangy", "Mild"},
	},
	{
		Field:   "mealType",
		Title:   "What type of meal?",
		Kind:    KindSelect,
		Options: []string{"Any", "Breakfast", "Lunch", "Dinner", "Snack", "Dessert", "Appetizer"},
	},
	{
		Field:   "portion",
		Title:   "How many servings?",
		Kind:    KindSelect,
		Options: []string{"1 person", "2-3 people", "4-5 people", "6+ people"},
	},
	{
		Field:   "dietary",
		Title:   "Any dietary restrictions?",
		Kind:    KindSelect,
		Options: []string{"None", "Vegetarian", "Vegan", "Gluten-Free", "Keto", "Paleo", "Low-Carb", "Dairy-Free"},
	},
	{
		Field:   "spiceLevel",
		Title:   "Spice level preference?",
		Kind:    KindSelect,
		Options: []string{"Mild", "Medium", "Hot", "Extra Hot"},
	},
	{
		Field:   "cookingTime",
		Title:   "How much time do you have?",
		Kind:    KindSelect,
		Options: []string{"Any", "Under 15 mins", "15-30 mins", "30-60 mins", "Over 1 hour"},
	},
}

// TotalSteps is the number of questions in the wizard.
func TotalSteps() int {
	return len(Steps)
}

// Builder walks the wizard steps, mutating one request field at a time.
// A builder serves exactly one recipe request; a new one is created for the
// next.
type Builder struct {
	step    int // zero-based index into Steps
	request types.CustomizationRequest
	done    bool
}

// NewBuilder returns a builder positioned on the first step with every
// request field at its default.
func NewBuilder() *Builder {
	return &Builder{request: types.NewCustomizationRequest()}
}

// NewBuilderAt restores a builder from a persisted step index and request.
// Out-of-range indexes are clamped to the step list.
func NewBuilderAt(step int, request types.CustomizationRequest) *Builder {
	if step < 0 {
		step = 0
	}
	if step >= len(Steps) {
		step = len(Steps) - 1
	}
	return &Builder{step: step, request: request}
}

// Step returns the one-based index of the current step.
func (b *Builder) Step() int {
	return b.step + 1
}

// Current returns the descriptor for the current step.
func (b *Builder) Current() Step {
	return Steps[b.step]
}

// Request returns the request as assembled so far.
func (b *Builder) Request() types.CustomizationRequest {
	return b.request
}

// Progress reports completion as a fraction for display only.
func (b *Builder) Progress() float64 {
	return float64(b.Step()) / float64(len(Steps))
}

// Done reports whether the terminal advance has happened.
func (b *Builder) Done() bool {
	return b.done
}

// SetField overwrites the field associated with the current step. It never
// moves the step.
func (b *Builder) SetField(value string) {
	b.request.SetField(Steps[b.step].Field, value)
}

// Advance moves to the next step, or on the last step emits the completed
// request. The advance is refused, with no state change, when the current
// step's rule rejects its field value.
func (b *Builder) Advance() (request types.CustomizationRequest, submitted bool, ok bool) {
	step := Steps[b.step]
	if step.validate != nil && !step.validate(b.request.Field(step.Field)) {
		return types.CustomizationRequest{}, false, false
	}
	if b.step == len(Steps)-1 {
		b.done = true
		return b.request, true, true
	}
	b.step++
	return types.CustomizationRequest{}, false, true
}

// Retreat moves one step back; it is a no-op on the first step.
func (b *Builder) Retreat() {
	if b.step > 0 {
		b.step--
	}
}

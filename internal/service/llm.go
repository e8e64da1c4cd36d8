package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/savora-ai/savora/backend/config"
	"github.com/savora-ai/savora/backend/internal/types"
)

// ErrGenerationRejected means the model provider was reached but refused or
// failed the request. Anything else coming out of the client is a transport
// problem: the provider was unreachable or its response was malformed.
var ErrGenerationRejected = errors.New("generation rejected by model provider")

// LLMService handles interactions with the OpenRouter chat-completion API.
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg *config.Config) (*LLMService, error) {
	if cfg.OpenRouterAPIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY or OPENROUTER_API_KEY_FILE must be set")
	}

	return &LLMService{
		apiKey: cfg.OpenRouterAPIKey,
		apiURL: cfg.OpenRouterAPIURL,
		model:  cfg.OpenRouterModel,
		client: &http.Client{Timeout: 90 * time.Second},
	}, nil
}

// Model returns the configured model identifier.
func (s *LLMService) Model() string {
	return s.model
}

// Configured reports whether a provider API key is present.
func (s *LLMService) Configured() bool {
	return s.apiKey != ""
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the OpenRouter API
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// completion sends one prompt and returns the raw model output.
func (s *LLMService) completion(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	reqBody := Request{
		Model:       s.model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrGenerationRejected, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrGenerationRejected)
	}

	return result.Choices[0].Message.Content, nil
}

// Generate produces a recipe for the structured request. The request passes
// into the prompt verbatim; no retry is attempted on failure.
func (s *LLMService) Generate(ctx context.Context, req types.CustomizationRequest) (types.Recipe, error) {
	prompt := fmt.Sprintf(`You are a professional chef AI assistant. Create a detailed recipe based on these requirements:

INGREDIENTS AVAILABLE: %s
CUISINE TYPE: %s
TASTE PREFERENCE: %s
MEAL TYPE: %s
PORTION SIZE: %s
DIETARY RESTRICTIONS: %s
SPICE LEVEL: %s
COOKING TIME: %s

Please provide a recipe in this EXACT JSON format (respond with ONLY valid JSON, no markdown):
{
    "title": "Creative dish name",
    "description": "Brief enticing description of the dish",
    "prepTime": "15 mins",
    "cookTime": "30 mins",
    "totalTime": "45 mins",
    "difficulty": "Easy/Medium/Hard",
    "servings": "%s",
    "cuisine": "%s",
    "ingredients": ["Ingredient 1 with measurement", "Ingredient 2 with measurement"],
    "instructions": ["Step 1 instruction", "Step 2 instruction"],
    "tips": ["Helpful tip 1", "Helpful tip 2"],
    "nutrition": {"calories": "approximate per serving", "protein": "approximate", "carbs": "approximate", "fat": "approximate"},
    "alternatives": ["Alternative ingredient suggestion 1", "Alternative ingredient suggestion 2"]
}

Make the recipe creative, practical, and delicious! Ensure it matches the %s spice level and can be prepared within %s. Return ONLY the JSON object, no additional text.`,
		req.Ingredients, req.Cuisine, req.Taste, req.MealType, req.Portion,
		req.Dietary, req.SpiceLevel, req.CookingTime,
		req.Portion, req.Cuisine, req.SpiceLevel, req.CookingTime)

	raw, err := s.completion(ctx, prompt, 0.7, 2000)
	if err != nil {
		return types.Recipe{}, err
	}

	return types.ParseRecipe(raw), nil
}

// Answer replies to a cooking question scoped to the given recipe. The
// recipe context rides along on every call so answers stay on-dish.
func (s *LLMService) Answer(ctx context.Context, question string, recipe types.Recipe) (string, error) {
	recipeContext := recipe.Text
	if recipe.Format == types.FormatJSON {
		if data, err := json.Marshal(recipe); err == nil {
			recipeContext = string(data)
		}
	}

	prompt := fmt.Sprintf(`You are a friendly and helpful cooking assistant named Chef Savora. The user is cooking this recipe:

%s

User's question: %s

Provide a clear, helpful, and friendly answer to their cooking question. Be concise and practical.
Use emojis occasionally to be more engaging. If you don't know something, be honest about it.`,
		recipeContext, question)

	return s.completion(ctx, prompt, 0.7, 500)
}

// Rescue suggests fixes for a cooking problem in progress.
func (s *LLMService) Rescue(ctx context.Context, problem, dishType string) (string, error) {
	prompt := fmt.Sprintf(`You are an expert chef helping someone fix a cooking problem. Be calm, reassuring, and practical.

DISH TYPE: %s
PROBLEM: %s

Provide immediate, practical solutions to rescue this dish. Be specific and actionable.
Format your response as:

QUICK FIXES (what to do RIGHT NOW):
[Immediate actions]

ADJUSTMENTS NEEDED:
[Specific adjustments]

PRO TIP:
[How to prevent this next time]

Be encouraging - most cooking mistakes can be fixed!`,
		dishType, problem)

	return s.completion(ctx, prompt, 0.7, 800)
}

// Nutrition analyzes a recipe or ingredient list. The payload is the model's
// JSON when it parses and a quoted string otherwise.
func (s *LLMService) Nutrition(ctx context.Context, subject string) (json.RawMessage, error) {
	prompt := fmt.Sprintf(`Analyze the nutritional content of this recipe/ingredients:

%s

Provide a detailed nutritional breakdown in this JSON format:
{
    "perServing": {"calories": "number", "protein": "Xg", "carbs": "Xg", "fat": "Xg", "fiber": "Xg", "sugar": "Xg", "sodium": "Xmg"},
    "healthScore": "1-10 rating",
    "benefits": ["health benefit 1", "health benefit 2"],
    "considerations": ["dietary consideration 1"],
    "tips": "tip to make it healthier"
}

Return ONLY valid JSON.`, subject)

	raw, err := s.completion(ctx, prompt, 0.5, 800)
	if err != nil {
		return nil, err
	}
	return structuredOrText(raw), nil
}

// MealPlan generates a 7-day meal plan.
func (s *LLMService) MealPlan(ctx context.Context, preferences, dietary string, peopleCount int) (json.RawMessage, error) {
	prompt := fmt.Sprintf(`Create a 7-day meal plan with the following requirements:

PREFERENCES: %s
DIETARY RESTRICTIONS: %s
SERVINGS: %d people

Provide a meal plan in this JSON format:
{
    "weekPlan": [
        {
            "day": "Monday",
            "breakfast": {"name": "dish name", "quickDescription": "brief description"},
            "lunch": {"name": "dish name", "quickDescription": "brief description"},
            "dinner": {"name": "dish name", "quickDescription": "brief description"},
            "snack": {"name": "snack name", "quickDescription": "brief description"}
        }
    ],
    "shoppingList": ["ingredient 1", "ingredient 2"],
    "tips": ["meal prep tip 1", "meal prep tip 2"]
}

Make it varied, nutritious, and practical. Return ONLY valid JSON.`,
		preferences, dietary, peopleCount)

	raw, err := s.completion(ctx, prompt, 0.7, 3000)
	if err != nil {
		return nil, err
	}
	return structuredOrText(raw), nil
}

// SuggestIngredients proposes complementary ingredients for what the user
// already has.
func (s *LLMService) SuggestIngredients(ctx context.Context, ingredients string) (json.RawMessage, error) {
	prompt := fmt.Sprintf(`The user has these ingredients: %s

Suggest 5-8 complementary ingredients that would pair well to make delicious dishes.
Return as a JSON array of objects:
[
    {"ingredient": "name", "reason": "why it pairs well", "dishes": ["possible dish 1", "possible dish 2"]}
]

Return ONLY valid JSON.`, ingredients)

	raw, err := s.completion(ctx, prompt, 0.7, 1000)
	if err != nil {
		return nil, err
	}
	return structuredOrText(raw), nil
}

// structuredOrText strips any markdown fence and returns the model output as
// raw JSON when it parses, or as a JSON string otherwise.
func structuredOrText(raw string) json.RawMessage {
	cleaned := types.StripCodeFence(raw)
	if json.Valid([]byte(cleaned)) {
		return json.RawMessage(cleaned)
	}
	quoted, _ := json.Marshal(strings.TrimSpace(raw))
	return json.RawMessage(quoted)
}

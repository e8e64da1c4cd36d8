package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savora-ai/savora/backend/internal/service"
)

type fakeKitchen struct {
	err error

	rescueProblem string
	rescueDish    string
	planPrefs     string
	planDietary   string
	planPeople    int
}

func (f *fakeKitchen) Rescue(_ context.Context, problem, dishType string) (string, error) {
	f.rescueProblem = problem
	f.rescueDish = dishType
	if f.err != nil {
		return "", f.err
	}
	return "QUICK FIXES:\nAdd a splash of water.", nil
}

func (f *fakeKitchen) Nutrition(_ context.Context, _ string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"healthScore":"7"}`), nil
}

func (f *fakeKitchen) MealPlan(_ context.Context, preferences, dietary string, peopleCount int) (json.RawMessage, error) {
	f.planPrefs = preferences
	f.planDietary = dietary
	f.planPeople = peopleCount
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"weekPlan":[]}`), nil
}

func (f *fakeKitchen) SuggestIngredients(_ context.Context, _ string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`[{"ingredient":"garlic"}]`), nil
}

func kitchenRouter(llm KitchenService) *gin.Engine {
	router := gin.New()
	NewKitchenHandler(llm).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestRescue(t *testing.T) {
	fake := &fakeKitchen{}
	router := kitchenRouter(fake)

	w := performRequest(router, http.MethodPost, "/api/v1/rescue",
		map[string]string{"problem": "too salty", "dishType": "soup"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["solution"], "QUICK FIXES")
	assert.Equal(t, "too salty", fake.rescueProblem)
	assert.Equal(t, "soup", fake.rescueDish)

	// The problem field is required.
	w = performRequest(router, http.MethodPost, "/api/v1/rescue", map[string]string{"dishType": "soup"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNutrition(t *testing.T) {
	router := kitchenRouter(&fakeKitchen{})

	w := performRequest(router, http.MethodPost, "/api/v1/nutrition",
		map[string]string{"ingredients": "2 eggs, spinach"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	nutrition := body["nutrition"].(map[string]any)
	assert.Equal(t, "7", nutrition["healthScore"])

	// Neither a recipe nor ingredients is an error.
	w = performRequest(router, http.MethodPost, "/api/v1/nutrition", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMealPlanDefaults(t *testing.T) {
	fake := &fakeKitchen{}
	router := kitchenRouter(fake)

	w := performRequest(router, http.MethodPost, "/api/v1/meal-plan", map[string]any{})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "balanced", fake.planPrefs)
	assert.Equal(t, "none", fake.planDietary)
	assert.Equal(t, 2, fake.planPeople)

	w = performRequest(router, http.MethodPost, "/api/v1/meal-plan",
		map[string]any{"preferences": "high protein", "dietary": "vegetarian", "peopleCount": 4})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "high protein", fake.planPrefs)
	assert.Equal(t, "vegetarian", fake.planDietary)
	assert.Equal(t, 4, fake.planPeople)
}

func TestSuggestIngredients(t *testing.T) {
	router := kitchenRouter(&fakeKitchen{})

	w := performRequest(router, http.MethodPost, "/api/v1/suggest-ingredients",
		map[string]string{"ingredients": "chicken, rice"})
	require.Equal(t, http.StatusOK, w.Code)

	suggestions := decodeBody(t, w)["suggestions"].([]any)
	require.Len(t, suggestions, 1)

	w = performRequest(router, http.MethodPost, "/api/v1/suggest-ingredients", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestKitchenFailureStatuses(t *testing.T) {
	t.Run("rejection", func(t *testing.T) {
		router := kitchenRouter(&fakeKitchen{err: fmt.Errorf("%w: nope", service.ErrGenerationRejected)})
		w := performRequest(router, http.MethodPost, "/api/v1/rescue",
			map[string]string{"problem": "burnt"})
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("transport", func(t *testing.T) {
		router := kitchenRouter(&fakeKitchen{err: fmt.Errorf("timeout")})
		w := performRequest(router, http.MethodPost, "/api/v1/rescue",
			map[string]string{"problem": "burnt"})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

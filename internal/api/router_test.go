package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	flyercore "meal-planner-api/internal/core/flyer"
	menucore "meal-planner-api/internal/core/menu"
	"meal-planner-api/internal/infrastructure/config"
)

type stubPlanner struct{}

func (stubPlanner) GeneratePlan(context.Context, menucore.GenerateInput) (*menucore.GenerateResult, error) {
	return &menucore.GenerateResult{Plan: &menucore.MealPlan{}}, nil
}

type stubFlyer struct{}

func (stubFlyer) Recognize(context.Context) ([]flyercore.Item, error) { return nil, nil }
func (stubFlyer) RecognizeAndStore(context.Context) error             { return nil }

type stubImages struct{}

func (stubImages) GenerateImage(context.Context, string) (string, error) { return "", nil }

type stubSaver struct{}

func (stubSaver) AppendLegacyMenu(context.Context, map[string]any, map[string]any, []menucore.Ingredient, []menucore.InstructionRecord) (string, error) {
	return "menu_20250601_123456", nil
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	return SetupRouter(cfg, Services{
		Planner: stubPlanner{},
		Flyer:   stubFlyer{},
		Images:  stubImages{},
		Saver:   stubSaver{},
	})
}

func TestHealthRoute(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "healthy"}`, w.Body.String())
}

func TestRoutesRegistered(t *testing.T) {
	router := newRouter(t)

	paths := make(map[string]string, 5)
	for _, r := range router.Routes() {
		paths[r.Path] = r.Method
	}

	assert.Equal(t, http.MethodGet, paths["/health"])
	assert.Equal(t, http.MethodPost, paths["/generate"])
	assert.Equal(t, http.MethodPost, paths["/generate_menu_from_flyer"])
	assert.Equal(t, http.MethodPost, paths["/flyer_image_processor"])
	assert.Equal(t, http.MethodPost, paths["/save_recipe"])
}

func TestRequestIDHeader(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

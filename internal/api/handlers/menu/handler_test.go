package menu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	flyercore "meal-planner-api/internal/core/flyer"
	menucore "meal-planner-api/internal/core/menu"
	"meal-planner-api/internal/pkg/common"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testResult = &menucore.GenerateResult{
	Plan: &menucore.MealPlan{Title: "Chicken Salad"},
	Records: menucore.Records{
		Header:    menucore.HeaderRecord{Title: "Chicken Salad", Cuisine: "washoku", TotalTimeMin: 25},
		Nutrition: menucore.Nutrition{Kcal: 560, ProteinG: 30, FatG: 20, CarbG: 45, SaltG: 2.5},
		Ingredients: []menucore.Ingredient{
			{Name: "鶏胸肉", Quantity: "200", Unit: "g"},
		},
		Instructions: []menucore.InstructionRecord{
			{Step: 1, Text: "茹でる"},
			{Step: 2, Text: "和える"},
		},
	},
	Demo: []map[string]any{{"gender": "女性", "age": 34}},
}

type fakePlanner struct {
	result *menucore.GenerateResult
	err    error
	input  menucore.GenerateInput
}

func (f *fakePlanner) GeneratePlan(_ context.Context, in menucore.GenerateInput) (*menucore.GenerateResult, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeFlyer struct {
	items    []flyercore.Item
	err      error
	storeErr error
	stored   bool
}

func (f *fakeFlyer) Recognize(context.Context) ([]flyercore.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeFlyer) RecognizeAndStore(context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.stored = true
	return f.storeErr
}

type fakeImages struct {
	data string
	err  error
}

func (f *fakeImages) GenerateImage(context.Context, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.data, nil
}

type fakeSaver struct {
	header       map[string]any
	nutrition    map[string]any
	ingredients  []menucore.Ingredient
	instructions []menucore.InstructionRecord
	err          error
}

func (f *fakeSaver) AppendLegacyMenu(_ context.Context, header, nutrition map[string]any, ingredients []menucore.Ingredient, instructions []menucore.InstructionRecord) (string, error) {
	f.header = header
	f.nutrition = nutrition
	f.ingredients = ingredients
	f.instructions = instructions
	if f.err != nil {
		return "", f.err
	}
	return "menu_20250601_123456", nil
}

func newTestRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.POST("/generate", h.HandleGenerate)
	r.POST("/generate_menu_from_flyer", h.HandleGenerateFromFlyer)
	r.POST("/flyer_image_processor", h.HandleFlyerImageProcessor)
	r.POST("/save_recipe", h.HandleSaveRecipe)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleGenerate(t *testing.T) {
	planner := &fakePlanner{result: testResult}
	h := NewHandler(planner, &fakeFlyer{}, &fakeImages{}, &fakeSaver{})

	w := doRequest(t, newTestRouter(h), http.MethodPost, "/generate", `{"prompt": "ignored"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, planner.input.Products)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "header")
	assert.Contains(t, resp, "nutrition")
	assert.Contains(t, resp, "ingredients")
	assert.Contains(t, resp, "instructions")

	var header []map[string]any
	require.NoError(t, json.Unmarshal(resp["header"], &header))
	require.Len(t, header, 1)
	assert.Equal(t, "Chicken Salad", header[0]["title"])
}

func TestHandleGenerateError(t *testing.T) {
	planner := &fakePlanner{err: common.NewModelInvocationError("model call failed", nil)}
	h := NewHandler(planner, &fakeFlyer{}, &fakeImages{}, &fakeSaver{})

	w := doRequest(t, newTestRouter(h), http.MethodPost, "/generate", `{}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["detail"], "model call failed")
}

func TestHandleGenerateFromFlyer(t *testing.T) {
	planner := &fakePlanner{result: testResult}
	fl := &fakeFlyer{items: []flyercore.Item{
		{Name: "鶏もも肉", Quantity: "300g", Price: "298円", SaleDate: "土曜日"},
		{Name: "キャベツ", Quantity: "1玉", Price: "98円", SaleDate: ""},
	}}
	h := NewHandler(planner, fl, &fakeImages{data: "aW1hZ2U="}, &fakeSaver{})

	w := doRequest(t, newTestRouter(h), http.MethodPost, "/generate_menu_from_flyer", `{}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"鶏もも肉", "キャベツ"}, planner.input.Products)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "image_base64")
	assert.Contains(t, resp, "demo")
	assert.Contains(t, resp, "flyer_products")

	var image string
	require.NoError(t, json.Unmarshal(resp["image_base64"], &image))
	assert.Equal(t, "aW1hZ2U=", image)

	// flyer_products 必須是完整的商品物件，而非僅商品名稱
	var flyerProducts []map[string]any
	require.NoError(t, json.Unmarshal(resp["flyer_products"], &flyerProducts))
	require.Len(t, flyerProducts, 2)
	assert.Equal(t, "鶏もも肉", flyerProducts[0]["商品"])
	assert.Equal(t, "300g", flyerProducts[0]["数量"])
	assert.Equal(t, "298円", flyerProducts[0]["値段"])
	assert.Equal(t, "土曜日", flyerProducts[0]["特売日"])
	assert.Equal(t, "", flyerProducts[1]["特売日"])
}

func TestHandleGenerateFromFlyerImageError(t *testing.T) {
	planner := &fakePlanner{result: testResult}
	fl := &fakeFlyer{items: []flyercore.Item{{Name: "鶏もも肉"}}}
	h := NewHandler(planner, fl, &fakeImages{err: common.NewNoImageInResponseError()}, &fakeSaver{})

	w := doRequest(t, newTestRouter(h), http.MethodPost, "/generate_menu_from_flyer", `{}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "no image found")
}

func TestHandleFlyerImageProcessor(t *testing.T) {
	fl := &fakeFlyer{items: []flyercore.Item{{Name: "鶏もも肉"}}}
	h := NewHandler(&fakePlanner{}, fl, &fakeImages{}, &fakeSaver{})

	w := doRequest(t, newTestRouter(h), http.MethodPost, "/flyer_image_processor", `{"prompt": ""}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, fl.stored)
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))
}

func TestHandleSaveRecipe(t *testing.T) {
	saver := &fakeSaver{}
	h := NewHandler(&fakePlanner{}, &fakeFlyer{}, &fakeImages{}, saver)

	body := `{
		"header": [{"title": "Chicken Salad", "total_time_min": 25}],
		"nutrition": [{"kcal": 560, "protein_g": 30, "fat_g": 20, "carb_g": 45, "salt_g": 2.5}],
		"ingredients": [{"name": "鶏胸肉", "quantity": "200", "unit": "g"}],
		"instructions": [{"step": 1, "text": "茹でる"}],
		"user_id": "user_007"
	}`
	w := doRequest(t, newTestRouter(h), http.MethodPost, "/save_recipe", body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result": "ok"}`, w.Body.String())

	assert.Equal(t, "Chicken Salad", saver.header["title"])
	assert.Equal(t, 560.0, saver.nutrition["kcal"])
	require.Len(t, saver.ingredients, 1)
	assert.Equal(t, "鶏胸肉", saver.ingredients[0].Name)
	require.Len(t, saver.instructions, 1)
	assert.Equal(t, 1, saver.instructions[0].Step)
}

func TestHandleSaveRecipeError(t *testing.T) {
	saver := &fakeSaver{err: common.NewPersistenceError("寫入 created_menu 失敗", nil)}
	h := NewHandler(&fakePlanner{}, &fakeFlyer{}, &fakeImages{}, saver)

	w := doRequest(t, newTestRouter(h), http.MethodPost, "/save_recipe", `{"header": [], "nutrition": []}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "created_menu")
}

func TestHandleSaveRecipeBadBody(t *testing.T) {
	saver := &fakeSaver{}
	h := NewHandler(&fakePlanner{}, &fakeFlyer{}, &fakeImages{}, saver)

	w := doRequest(t, newTestRouter(h), http.MethodPost, "/save_recipe", `not json`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to parse request body")
	// 解析失敗不進倉儲，也不帶倉儲錯誤代碼
	assert.NotContains(t, w.Body.String(), common.ErrCodePersistence)
	assert.Nil(t, saver.ingredients)
}

package menu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeopleBlock(t *testing.T) {
	rows := []map[string]any{
		{"gender": "女性", "age": 34, "dietary_style": "低糖質", "feeling": "さっぱりしたもの"},
		{"gender": "男性", "age": 36},
	}

	block := PeopleBlock(rows)
	lines := strings.Split(block, "\n")

	assert.Len(t, lines, 2)
	assert.Equal(t, "・性別: 女性、年齢: 34、食事スタイル: 低糖質、気分・要望: さっぱりしたもの", lines[0])
	assert.Equal(t, "・性別: 男性、年齢: 36", lines[1])
}

func TestPeopleBlockSkipsBlankFields(t *testing.T) {
	rows := []map[string]any{
		{"gender": "女性", "age": 40, "dietary_style": "  ", "cooking_time": nil},
	}
	assert.Equal(t, "・性別: 女性、年齢: 40", PeopleBlock(rows))
}

func TestPeopleBlockEmpty(t *testing.T) {
	assert.Equal(t, "", PeopleBlock(nil))
}

func TestGeneratePrompt(t *testing.T) {
	rows := []map[string]any{
		{"gender": "女性", "age": 34},
		{"gender": "男性", "age": 36},
	}
	prompt := GeneratePrompt(rows)

	assert.Contains(t, prompt, "2人分のメニュー")
	assert.Contains(t, prompt, "・性別: 女性、年齢: 34")
	assert.Contains(t, prompt, "調理時間は30分以内")
}

func TestFlyerPrompt(t *testing.T) {
	rows := []map[string]any{{"gender": "女性", "age": 34}}
	prompt := FlyerPrompt(rows, []string{"鶏もも肉", "キャベツ"})

	assert.Contains(t, prompt, "1人分のメニュー")
	assert.Contains(t, prompt, "- 鶏もも肉")
	assert.Contains(t, prompt, "- キャベツ")
	assert.Contains(t, prompt, "商品リスト")
}

func TestInventoryPrompt(t *testing.T) {
	fridge := []map[string]any{{"name": "卵", "quantity": 6}}
	recipe := []map[string]any{{"name": "小麦粉", "quantity": "100g"}}
	flyer := []map[string]any{{"name": "豚肉", "price": "98円"}}

	prompt := InventoryPrompt(fridge, recipe, flyer)

	assert.Contains(t, prompt, "冷蔵庫にある材料")
	assert.Contains(t, prompt, "name: 卵、quantity: 6")
	assert.Contains(t, prompt, "name: 小麦粉")
	assert.Contains(t, prompt, "name: 豚肉、price: 98円")
}

func TestFormatRowsDeterministic(t *testing.T) {
	rows := []map[string]any{{"b": "2", "a": "1", "c": nil}}
	assert.Equal(t, "a: 1、b: 2", FormatRows(rows))
}

func TestFoodImagePrompt(t *testing.T) {
	prompt := FoodImagePrompt("Chicken Salad", []string{"chicken", "spinach"})

	assert.Contains(t, prompt, "Chicken Salad")
	assert.Contains(t, prompt, "chicken, spinach")
	assert.Contains(t, prompt, "base64")
}

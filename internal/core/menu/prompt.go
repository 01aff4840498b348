package menu

import (
	"fmt"
	"sort"
	"strings"
)

// SystemPrompt 献立生成のシステムプロンプト。出力形式は JSON リテラルの例で指定し、
// 余計な文章を含めないことをモデルに要求する。
const SystemPrompt = `あなたは「パーソナル栄養プランナーAI」です。
以下の条件に従って、献立をJSON形式で出力してください。

【役割】
- 目的: ユーザーの食事目標を最小の手間で達成する献立を作成する。

【必須条件】
1. 栄養基準を満たす（後述のnutrition_targets）
2. 禁止食材／アレルゲンを含まない（後述のfood_restrictions）
3. 在庫優先: 冷蔵庫在庫（後述のinventory）を優先的に消費
4. 調理時間と調理器具制約（後述のtime_limit, equipment）を守る
5. 指定ジャンル（後述のcuisine_genres）を守る

【出力形式】
必ず以下のJSON形式で出力してください（コードブロックは不要）：
{
    "title": "メニュー名",
    "cuisine": "和食",
    "total_time_min": 25,
    "nutrition": {
        "kcal": 560,
        "protein_g": 30,
        "fat_g": 20,
        "carb_g": 45,
        "salt_g": 2.5
    },
    "instructions": [
        "手順1",
        "手順2"
    ],
    "ingredients": [
        {
            "name": "鶏胸肉",
            "quantity": "200",
            "unit": "g"
        },
        {
            "name": "塩麹",
            "quantity": "大さじ1.5",
            "unit": ""
        },
        {
            "name": "ほうれん草",
            "quantity": "100",
            "unit": "g"
        }
    ]
}

注意事項：
- nutritionの値は必ず数値型で出力（単位は含めない）
- ingredientsは必ずオブジェクトの配列として出力
- total_time_minは必ず整数値で出力`

// PeopleBlock 將人口統計快照整理為每人一行的描述。
// 空白或缺失的屬性直接省略，不輸出佔位文字。
func PeopleBlock(rows []map[string]any) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		line := fmt.Sprintf("・性別: %s、年齢: %s", field(row, "gender"), field(row, "age"))
		if v := field(row, "dietary_style"); v != "" {
			line += "、食事スタイル: " + v
		}
		if v := field(row, "feeling"); v != "" {
			line += "、気分・要望: " + v
		}
		if v := field(row, "cooking_time"); v != "" {
			line += "、希望調理時間: " + v
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// GeneratePrompt 人口統計快照のみを文脈にした献立生成プロンプト。
// 0 人でもプロンプト自体は有効（"0人分" としてそのまま依頼する）。
func GeneratePrompt(rows []map[string]any) string {
	return fmt.Sprintf(`以下の条件で %d人分のメニューを生成してください：
## 対象者の情報
%s

## その他の条件：
- 調理時間は30分以内
- 栄養バランスを考慮`, len(rows), PeopleBlock(rows))
}

// FlyerPrompt チラシの商品リストを加味した献立生成プロンプト
func FlyerPrompt(rows []map[string]any, productNames []string) string {
	bullets := make([]string, 0, len(productNames))
	for _, name := range productNames {
		bullets = append(bullets, "- "+name)
	}
	return fmt.Sprintf(`以下の条件で %d人分のメニューを生成してください：

## 対象者の情報
%s

## 近くのスーパーの商品リスト
%s

## その他の条件
- 栄養バランスを考慮すること
- 可能な範囲で近くのスーパーの商品リストを使用してレシピを作ること`, len(rows), PeopleBlock(rows), strings.Join(bullets, "\n"))
}

// InventoryPrompt 冷蔵庫在庫・レシピ材料・チラシデータを文脈にした献立生成プロンプト
func InventoryPrompt(fridgeItems, recipeIngredients, flyer []map[string]any) string {
	return fmt.Sprintf(`以下の条件でメニューを生成してください：

1. 冷蔵庫にある材料：
%s

2. レシピの材料：
%s

3. フライヤーのデータ：
%s

4. その他の条件：
- 調理時間は30分以内
- 栄養バランスを考慮
- 簡単な手順で作れる料理`, FormatRows(fridgeItems), FormatRows(recipeIngredients), FormatRows(flyer))
}

// FoodImagePrompt 料理写真生成用の英語プロンプト
func FoodImagePrompt(title string, ingredientNames []string) string {
	return fmt.Sprintf(
		"High quality food photograph, %s, ingredients: %s, beautiful plating, Japanese cuisine, "+
			"shot from above, natural lighting, plain background, no watermark, no text, no logo. "+
			"Respond ONLY with a PNG image as base64, NO description, NO explanation, NO text.",
		title, strings.Join(ingredientNames, ", "))
}

// FormatRows 將表格快照整理為每行一筆、鍵名排序的純文字（プロンプト向け）
func FormatRows(rows []map[string]any) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if v := field(row, k); v != "" {
				parts = append(parts, k+": "+v)
			}
		}
		lines = append(lines, strings.Join(parts, "、"))
	}
	return strings.Join(lines, "\n")
}

// field 取出欄位值的字串表示，nil 與空白視為缺失
func field(row map[string]any, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

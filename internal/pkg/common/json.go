package common

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ExtractJSON 去除模型回應中的附帶格式（程式碼圍欄、前後雜訊文字）。
// 若存在 ```json 開頭圍欄，只取其後的文字；若存在 ``` 結尾圍欄，只取其前的文字。
func ExtractJSON(text string) string {
	if i := strings.Index(text, "```json"); i != -1 {
		text = text[i+len("```json"):]
	}
	if i := strings.Index(text, "```"); i != -1 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

// ParseJSON 解析 JSON 字符串到結構體
func ParseJSON(data string, v interface{}) error {
	return decodeJSON(strings.NewReader(data), v)
}

func decodeJSON(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := dec.Decode(v); err != nil {
		return err
	}

	// 確保沒有多餘資料
	for {
		t, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		// 若讀到額外 token，視為錯誤
		if t != nil {
			return fmt.Errorf("unexpected extra JSON data")
		}
	}
}

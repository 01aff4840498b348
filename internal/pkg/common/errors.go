package common

import (
	"errors"
	"net/http"
)

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap 返回原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// 預定義錯誤代碼
const (
	ErrCodeConfiguration     = "CONFIGURATION_ERROR"    // 缺少必要環境變數，啟動時致命
	ErrCodeModelInvocation   = "MODEL_INVOCATION_ERROR" // 模型調用失敗、無候選、被安全過濾或回應為空
	ErrCodeMalformedResponse = "MALFORMED_RESPONSE"     // 模型輸出去除圍欄後仍無法解析為 JSON
	ErrCodeSchemaViolation   = "SCHEMA_VIOLATION"       // 解析後的 JSON 缺少必要欄位
	ErrCodeNoImageInResponse = "NO_IMAGE_IN_RESPONSE"   // 圖片生成回應中沒有二進制部分
	ErrCodeStorageLookup     = "STORAGE_LOOKUP_ERROR"   // 物件儲存中找不到符合的圖片
	ErrCodePersistence       = "PERSISTENCE_ERROR"      // 資料倉儲讀寫失敗
)

// NewConfigurationError 創建設定錯誤（啟動時致命）
func NewConfigurationError(message string) *CustomError {
	return NewError(ErrCodeConfiguration, message, http.StatusInternalServerError, nil)
}

// NewModelInvocationError 創建模型調用錯誤
func NewModelInvocationError(message string, err error) *CustomError {
	return NewError(ErrCodeModelInvocation, message, http.StatusInternalServerError, err)
}

// NewMalformedResponseError 創建回應解析錯誤，附帶原始文字以便排查
func NewMalformedResponseError(err error, text string) *CustomError {
	return NewError(ErrCodeMalformedResponse, "model response is not valid JSON (text: "+text+")", http.StatusInternalServerError, err)
}

// NewSchemaViolationError 創建欄位缺失錯誤，指出第一個缺少的鍵
func NewSchemaViolationError(missingKey string) *CustomError {
	return NewError(ErrCodeSchemaViolation, "model response missing required key: "+missingKey, http.StatusInternalServerError, nil)
}

// NewNoImageInResponseError 創建無圖片錯誤
func NewNoImageInResponseError() *CustomError {
	return NewError(ErrCodeNoImageInResponse, "no image found in the response", http.StatusInternalServerError, nil)
}

// NewStorageLookupError 創建物件儲存查找錯誤
func NewStorageLookupError(message string, err error) *CustomError {
	return NewError(ErrCodeStorageLookup, message, http.StatusInternalServerError, err)
}

// NewPersistenceError 創建資料倉儲錯誤
func NewPersistenceError(message string, err error) *CustomError {
	return NewError(ErrCodePersistence, message, http.StatusInternalServerError, err)
}

// ErrorCode 取出錯誤代碼，非自定義錯誤返回空字串
func ErrorCode(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

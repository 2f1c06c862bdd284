package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"

	"github.com/BaSui01/mediaflow/api"
	"github.com/BaSui01/mediaflow/types"
)

// =============================================================================
// 🎯 响应辅助函数
// =============================================================================

// WriteJSON 写入 JSON 响应
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// 编码失败时响应头已发出，只能放弃
		return
	}
}

// WriteError 写入错误响应。调用方消息必须包含可用的底层细节，
// 绝不只给一句笼统说法。
func WriteError(w http.ResponseWriter, err *types.Error, logger *zap.Logger) {
	status := err.HTTPStatus
	if status == 0 {
		status = mapErrorCodeToHTTPStatus(err.Code)
	}

	message := err.Message
	if err.Cause != nil {
		message = message + ": " + err.Cause.Error()
	}

	if logger != nil {
		logger.Error("API error",
			zap.String("code", string(err.Code)),
			zap.String("message", err.Message),
			zap.Int("status", status),
			zap.Error(err.Cause),
		)
	}

	WriteJSON(w, status, api.ErrorResponse{Error: message})
}

// WriteErrorMessage 写入简单错误消息
func WriteErrorMessage(w http.ResponseWriter, status int, code types.ErrorCode, message string, logger *zap.Logger) {
	err := types.NewError(code, message).WithHTTPStatus(status)
	WriteError(w, err, logger)
}

// =============================================================================
// 🔄 错误码到 HTTP 状态码映射
// =============================================================================

func mapErrorCodeToHTTPStatus(code types.ErrorCode) int {
	switch code {
	// 4xx 客户端错误：输入需调用方修正，拦截同请求不可重试
	case types.ErrInvalidRequest, types.ErrContentBlocked:
		return http.StatusBadRequest

	// 5xx 服务端错误：空结果与上游失败都按意外上游状况处理
	case types.ErrEmptyResult, types.ErrUpstreamError, types.ErrInternalError:
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// handleProviderError 统一处理 Provider 返回的错误
func handleProviderError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if typedErr, ok := err.(*types.Error); ok {
		WriteError(w, typedErr, logger)
		return
	}

	internalErr := types.NewError(types.ErrInternalError, "provider error").
		WithCause(err)
	WriteError(w, internalErr, logger)
}

// =============================================================================
// 📝 响应包装器
// =============================================================================

// ResponseWriter 包装 http.ResponseWriter 以捕获状态码
type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

// NewResponseWriter 创建响应包装器
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		StatusCode:     http.StatusOK,
	}
}

// WriteHeader 捕获状态码
func (rw *ResponseWriter) WriteHeader(code int) {
	rw.StatusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// =============================================================================
// 🛡️ 请求验证辅助函数
// =============================================================================

// DecodeJSONBody 解码 JSON 请求体
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}, logger *zap.Logger) error {
	if r.Body == nil {
		err := types.NewError(types.ErrInvalidRequest, "request body is empty")
		WriteError(w, err, logger)
		return err
	}

	decoder := json.NewDecoder(r.Body)

	if err := decoder.Decode(dst); err != nil {
		apiErr := types.NewError(types.ErrInvalidRequest, "invalid JSON body").
			WithCause(err).
			WithHTTPStatus(http.StatusBadRequest)
		WriteError(w, apiErr, logger)
		return apiErr
	}

	return nil
}

// maxFormMemory 是 multipart 表单解析的内存上限，超出部分落盘。
const maxFormMemory = 32 << 20 // 32 MB

// firstFile 返回表单字段的首个文件，没有则为 nil。
func firstFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

// slotSource 判定媒体槽位实际采用的输入来源，两路都缺席时返回空串。
func slotSource(fh *multipart.FileHeader, base64Text string) string {
	switch {
	case fh != nil:
		return "file"
	case base64Text != "":
		return "base64"
	default:
		return ""
	}
}

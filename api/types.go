package api

// =============================================================================
// 图片生成类型
// =============================================================================

// Image 是返回给调用方的生成图片。
type Image struct {
	// base64 编码的图片字节
	ImageBytes string `json:"imageBytes"`
	// 图片 MIME 类型
	MimeType string `json:"mimeType"`
}

// ImageResponse 是图片生成端点的成功响应。
type ImageResponse struct {
	Image Image `json:"image"`
}

// =============================================================================
// 提示词重写类型
// =============================================================================

// RewriteRequest 是提示词重写端点的请求体。
type RewriteRequest struct {
	// 用户的原始提示词
	Prompt string `json:"prompt"`
}

// RewriteResponse 是提示词重写端点的成功响应。
type RewriteResponse struct {
	// 重写后的提示词
	SuggestedPrompt string `json:"suggestedPrompt"`
}

// =============================================================================
// 视频生成类型
// =============================================================================

// VideoOperationResponse 是视频生成端点的成功响应，
// name 为远端长时操作标识，由外部协作方轮询。
type VideoOperationResponse struct {
	Name string `json:"name"`
}

// =============================================================================
// 错误类型
// =============================================================================

// ErrorResponse 是所有端点的统一错误响应。
type ErrorResponse struct {
	Error string `json:"error"`
}

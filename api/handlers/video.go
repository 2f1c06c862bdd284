package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/mediaflow/api"
	"github.com/BaSui01/mediaflow/internal/metrics"
	"github.com/BaSui01/mediaflow/media"
	"github.com/BaSui01/mediaflow/mediagen"
	"github.com/BaSui01/mediaflow/types"
)

// =============================================================================
// 🎬 视频生成接口 Handler
// =============================================================================

// VideoHandler 视频生成接口处理器
type VideoHandler struct {
	provider  mediagen.Provider
	collector *metrics.Collector
	logger    *zap.Logger
}

// NewVideoHandler 创建视频生成处理器
func NewVideoHandler(provider mediagen.Provider, collector *metrics.Collector, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{
		provider:  provider,
		collector: collector,
		logger:    logger,
	}
}

// HandleGenerate 处理视频生成请求，返回远端长时操作句柄。
// @Summary 发起视频生成
// @Description 提交视频生成任务并返回操作标识，轮询由调用方完成
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Param prompt formData string true "提示词"
// @Param model formData string false "视频模型"
// @Param negativePrompt formData string false "负向提示词"
// @Param aspectRatio formData string false "画幅比例"
// @Param imageFile formData file false "首帧图片文件"
// @Param imageBase64 formData string false "base64 首帧图片（文件缺席时生效）"
// @Param imageMimeType formData string false "base64 图片的 MIME 类型"
// @Param lastFrameFile formData file false "尾帧图片文件"
// @Param referenceImageFiles formData file false "参考图片文件（可重复）"
// @Param videoFile formData file false "续写源视频文件"
// @Success 200 {object} api.VideoOperationResponse "操作句柄"
// @Failure 400 {object} api.ErrorResponse "无效请求"
// @Failure 500 {object} api.ErrorResponse "内部错误"
// @Router /api/v1/videos/generate [post]
func (h *VideoHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	// 内容类型守卫先于一切解析与出站调用
	if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrInvalidRequest,
			"Expected multipart/form-data", h.logger)
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		apiErr := types.NewError(types.ErrInvalidRequest, "failed to parse form").
			WithCause(err).
			WithHTTPStatus(http.StatusBadRequest)
		WriteError(w, apiErr, h.logger)
		return
	}

	prompt := r.FormValue("prompt")
	if prompt == "" {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrInvalidRequest,
			"Missing prompt", h.logger)
		return
	}

	req, err := h.buildVideoRequest(r, prompt)
	if err != nil {
		handleProviderError(w, err, h.logger)
		return
	}

	ctx := context.WithoutCancel(r.Context())

	start := time.Now()
	name, err := h.provider.StartVideoGeneration(ctx, req)
	duration := time.Since(start)

	if h.collector != nil {
		status := "success"
		if err != nil {
			status = string(types.GetErrorCode(err))
		}
		h.collector.RecordGeneration("video", h.provider.Name(), req.Model, status, duration)
	}

	if err != nil {
		handleProviderError(w, err, h.logger)
		return
	}

	h.logger.Info("video generation started",
		zap.String("model", req.Model),
		zap.String("operation", name),
		zap.Int("reference_images", len(req.ReferenceImages)),
		zap.Duration("duration", duration),
	)

	WriteJSON(w, http.StatusOK, api.VideoOperationResponse{Name: name})
}

// buildVideoRequest 把表单字段与媒体槽位汇集为出站请求。
// 未填写的可选字段保持零值，由提供商负责缺席语义。
func (h *VideoHandler) buildVideoRequest(r *http.Request, prompt string) (*mediagen.VideoRequest, error) {
	// 首帧槽位：文件流优先于 base64 文本
	imageFile := firstFile(r, "imageFile")
	imageBase64 := r.FormValue("imageBase64")
	image, err := media.ResolveImageSlot(imageFile, imageBase64, r.FormValue("imageMimeType"))
	if err != nil {
		return nil, err
	}
	if src := slotSource(imageFile, imageBase64); src != "" && h.collector != nil {
		h.collector.RecordMediaInput("first_frame", src)
	}

	var lastFrame *media.Encoded
	if fh := firstFile(r, "lastFrameFile"); fh != nil {
		lastFrame, err = media.FromFileHeader(fh)
		if err != nil {
			return nil, err
		}
	}

	var video *media.Encoded
	if fh := firstFile(r, "videoFile"); fh != nil {
		video, err = media.FromFileHeader(fh)
		if err != nil {
			return nil, err
		}
	}

	var refs []*media.Encoded
	if r.MultipartForm != nil {
		refs, err = media.FromFileHeaders(r.MultipartForm.File["referenceImageFiles"])
		if err != nil {
			return nil, err
		}
	}

	return &mediagen.VideoRequest{
		Prompt:          prompt,
		Model:           r.FormValue("model"),
		NegativePrompt:  r.FormValue("negativePrompt"),
		AspectRatio:     r.FormValue("aspectRatio"),
		Image:           image,
		LastFrame:       lastFrame,
		Video:           video,
		ReferenceImages: refs,
	}, nil
}

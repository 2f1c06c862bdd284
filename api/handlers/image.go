package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/mediaflow/api"
	"github.com/BaSui01/mediaflow/internal/metrics"
	"github.com/BaSui01/mediaflow/media"
	"github.com/BaSui01/mediaflow/mediagen"
	"github.com/BaSui01/mediaflow/types"
)

// =============================================================================
// 🎨 图片生成接口 Handler
// =============================================================================

// ImageHandler 图片生成接口处理器
type ImageHandler struct {
	provider  mediagen.Provider
	collector *metrics.Collector
	logger    *zap.Logger
}

// NewImageHandler 创建图片生成处理器
func NewImageHandler(provider mediagen.Provider, collector *metrics.Collector, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{
		provider:  provider,
		collector: collector,
		logger:    logger,
	}
}

// HandleGenerate 处理图片生成请求
// @Summary 生成图片
// @Description 根据提示词（可选携带条件图片）同步生成一张图片
// @Tags 图片
// @Accept multipart/form-data
// @Produce json
// @Param prompt formData string true "提示词"
// @Param imageFile formData file false "条件图片文件"
// @Param imageBase64 formData string false "base64 条件图片（文件缺席时生效）"
// @Param imageMimeType formData string false "base64 图片的 MIME 类型"
// @Success 200 {object} api.ImageResponse "生成结果"
// @Failure 400 {object} api.ErrorResponse "无效请求"
// @Failure 500 {object} api.ErrorResponse "内部错误"
// @Router /api/v1/images/generate [post]
func (h *ImageHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		apiErr := types.NewError(types.ErrInvalidRequest, "failed to parse form").
			WithCause(err).
			WithHTTPStatus(http.StatusBadRequest)
		WriteError(w, apiErr, h.logger)
		return
	}

	// 提示词必须存在且非空（空字符串视为缺失）
	prompt := r.FormValue("prompt")
	if prompt == "" {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrInvalidRequest,
			"Missing prompt", h.logger)
		return
	}

	// 条件图片槽位：文件流优先于 base64 文本
	imageFile := firstFile(r, "imageFile")
	imageBase64 := r.FormValue("imageBase64")
	conditioning, err := media.ResolveImageSlot(imageFile, imageBase64, r.FormValue("imageMimeType"))
	if err != nil {
		handleProviderError(w, err, h.logger)
		return
	}
	if src := slotSource(imageFile, imageBase64); src != "" && h.collector != nil {
		h.collector.RecordMediaInput("image", src)
	}

	req := &mediagen.ImageRequest{
		Prompt: prompt,
		Model:  r.FormValue("model"),
		Image:  conditioning,
	}

	// 出站调用与入站连接解耦：调用方断开不撤销远端生成
	ctx := context.WithoutCancel(r.Context())

	start := time.Now()
	result, err := h.provider.GenerateImage(ctx, req)
	duration := time.Since(start)

	h.recordGeneration("image", req.Model, err, duration)

	if err != nil {
		handleProviderError(w, err, h.logger)
		return
	}

	h.logger.Info("image generated",
		zap.String("model", req.Model),
		zap.String("mime_type", result.MimeType),
		zap.Bool("conditioned", conditioning != nil),
		zap.Duration("duration", duration),
	)

	WriteJSON(w, http.StatusOK, api.ImageResponse{
		Image: api.Image{
			ImageBytes: result.Bytes,
			MimeType:   result.MimeType,
		},
	})
}

// recordGeneration 上报生成请求指标
func (h *ImageHandler) recordGeneration(kind, model string, err error, duration time.Duration) {
	if h.collector == nil {
		return
	}
	status := "success"
	if err != nil {
		status = string(types.GetErrorCode(err))
	}
	h.collector.RecordGeneration(kind, h.provider.Name(), model, status, duration)
}

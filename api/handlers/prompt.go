package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/mediaflow/api"
	"github.com/BaSui01/mediaflow/internal/metrics"
	"github.com/BaSui01/mediaflow/mediagen"
	"github.com/BaSui01/mediaflow/types"
)

// promptMagicSystemInstruction 指导文本模型把用户的简单提示词改写为
// 电影感"强力提示词"。全文作为 systemInstruction 下发，不做模板化。
const promptMagicSystemInstruction = `You are an expert prompt engineer for a generative AI video model. Your task is to take a user's simple or vague prompt and rewrite it into a "power prompt" that is more descriptive, vivid, and cinematic.

Follow these best practices:
1.  **Be Specific and Detailed:** Add concrete details about the subject, the setting, the action, and the mood. Instead of "a car driving," write "A vintage red convertible speeds down a winding coastal highway at sunset."
2.  **Use Strong Verbs and Adjectives:** Use evocative language to create a strong visual.
3.  **Incorporate Camera Work:** Suggest camera movements (e.g., "a sweeping drone shot," "a close-up on the character's eyes," "a slow-motion pan").
4.  **Define the Style:** Specify the artistic style (e.g., "cinematic, film noir style," "3D cartoon animation," "hyperrealistic macro photo").
5.  **Describe the Atmosphere:** Set the mood with lighting and color cues (e.g., "bathed in the eerie glow of a green neon sign," "warm, golden hour light," "cool blue tones").
6.  **Add Sound Cues (Optional but good):** If relevant, include sound effects or dialogue in quotes. (e.g., SFX: "tires screeching," Dialogue: "He whispered, 'It was you all along.'").

Your goal is to transform the user's initial idea into a prompt that will generate a visually stunning and compelling video. Do not reply with anything other than the rewritten prompt itself.`

// =============================================================================
// ✨ 提示词重写接口 Handler
// =============================================================================

// PromptHandler 提示词重写接口处理器
type PromptHandler struct {
	provider  mediagen.Provider
	collector *metrics.Collector
	logger    *zap.Logger
}

// NewPromptHandler 创建提示词重写处理器
func NewPromptHandler(provider mediagen.Provider, collector *metrics.Collector, logger *zap.Logger) *PromptHandler {
	return &PromptHandler{
		provider:  provider,
		collector: collector,
		logger:    logger,
	}
}

// HandleRewrite 处理提示词重写请求
// @Summary 重写提示词
// @Description 把用户的简单提示词改写为更具画面感的版本
// @Tags 提示词
// @Accept json
// @Produce json
// @Param request body api.RewriteRequest true "重写请求"
// @Success 200 {object} api.RewriteResponse "重写结果"
// @Failure 400 {object} api.ErrorResponse "无效请求"
// @Failure 500 {object} api.ErrorResponse "内部错误"
// @Router /api/v1/prompts/magic [post]
func (h *PromptHandler) HandleRewrite(w http.ResponseWriter, r *http.Request) {
	var req api.RewriteRequest
	if err := DecodeJSONBody(w, r, &req, h.logger); err != nil {
		return
	}

	if req.Prompt == "" {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrInvalidRequest,
			"Missing prompt", h.logger)
		return
	}

	ctx := context.WithoutCancel(r.Context())

	start := time.Now()
	suggested, err := h.provider.GenerateText(ctx, req.Prompt, promptMagicSystemInstruction)
	duration := time.Since(start)

	if h.collector != nil {
		status := "success"
		if err != nil {
			status = string(types.GetErrorCode(err))
		}
		h.collector.RecordGeneration("prompt", h.provider.Name(), "", status, duration)
	}

	if err != nil {
		handleProviderError(w, err, h.logger)
		return
	}

	// 模型给出空补全时原样透传，由调用方决定如何呈现
	h.logger.Info("prompt rewritten",
		zap.Int("prompt_len", len(req.Prompt)),
		zap.Int("suggestion_len", len(suggested)),
		zap.Duration("duration", duration),
	)

	WriteJSON(w, http.StatusOK, api.RewriteResponse{SuggestedPrompt: suggested})
}

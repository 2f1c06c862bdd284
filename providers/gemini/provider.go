package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/mediaflow/mediagen"
	"github.com/BaSui01/mediaflow/types"
)

// Client 调用 Google generativelanguage REST API 执行图片生成、文本生成
// 与视频生成启动。Gemini API 特点：
// 1. 使用 x-goog-api-key 请求头认证
// 2. 图片与文本走同步的 :generateContent 端点
// 3. 视频走 :generateVideos 长时操作端点，立即返回操作句柄
type Client struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// Config Gemini 客户端配置
type Config struct {
	// API Key（进程级凭证，启动时校验）
	APIKey string `yaml:"api_key" env:"API_KEY"`
	// 基础 URL（可选）
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
	// 图片生成默认模型
	ImageModel string `yaml:"image_model" env:"IMAGE_MODEL"`
	// 文本生成默认模型
	TextModel string `yaml:"text_model" env:"TEXT_MODEL"`
	// 视频生成默认模型
	VideoModel string `yaml:"video_model" env:"VIDEO_MODEL"`
	// 请求超时
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// NewClient 创建 Gemini 客户端。凭证缺失是致命的启动错误，而非每请求错误。
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = mediagen.DefaultImageModel
	}
	if cfg.TextModel == "" {
		cfg.TextModel = mediagen.DefaultTextModel
	}
	if cfg.VideoModel == "" {
		cfg.VideoModel = mediagen.DefaultVideoModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}, nil
}

func (c *Client) Name() string { return "gemini" }

// GenerateImage 通过 :generateContent 同步生成一张图片。
func (c *Client) GenerateImage(ctx context.Context, req *mediagen.ImageRequest) (*mediagen.ImageResult, error) {
	model := req.Model
	if model == "" {
		model = c.cfg.ImageModel
	}

	// 出站请求组装：提示词在前，条件图片仅在提供时追加
	parts := []geminiPart{{Text: req.Prompt}}
	if req.Image != nil {
		parts = append(parts, geminiPart{
			InlineData: &geminiInlineData{
				MimeType: req.Image.MimeType,
				Data:     req.Image.Bytes,
			},
		})
	}

	body := generateContentRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
	}

	var gResp generateContentResponse
	if err := c.post(ctx, model, "generateContent", body, &gResp); err != nil {
		return nil, err
	}

	result, rerr := extractImage(&gResp)
	if rerr != nil {
		return nil, rerr.WithProvider(c.Name())
	}
	return result, nil
}

// GenerateText 通过 :generateContent 获取单条文本补全。
// 空补全原样透传，不做二次校验。
func (c *Client) GenerateText(ctx context.Context, prompt, systemInstruction string) (string, error) {
	body := generateContentRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: prompt}},
		}},
	}
	if systemInstruction != "" {
		body.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: systemInstruction}},
		}
	}

	var gResp generateContentResponse
	if err := c.post(ctx, c.cfg.TextModel, "generateContent", body, &gResp); err != nil {
		return "", err
	}

	return extractText(&gResp), nil
}

// StartVideoGeneration 通过 :generateVideos 启动长时视频生成，
// 立即返回远端操作标识，不做任何阻塞等待或轮询。
func (c *Client) StartVideoGeneration(ctx context.Context, req *mediagen.VideoRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.cfg.VideoModel
	}

	instance := veoInstance{Prompt: req.Prompt}
	if req.Image != nil {
		instance.Image = encodeVeoImage(req.Image)
	}
	if req.Video != nil {
		instance.Video = &veoVideo{
			BytesBase64Encoded: req.Video.Bytes,
			MimeType:           req.Video.MimeType,
		}
	}

	// 每个可选字段都走显式存在性分支：提供商区分"字段缺失"与"字段为空"
	var params *veoParams
	ensureParams := func() *veoParams {
		if params == nil {
			params = &veoParams{}
		}
		return params
	}
	if req.AspectRatio != "" {
		ensureParams().AspectRatio = req.AspectRatio
	}
	if req.NegativePrompt != "" {
		ensureParams().NegativePrompt = req.NegativePrompt
	}
	if req.LastFrame != nil {
		ensureParams().LastFrame = encodeVeoImage(req.LastFrame)
	}
	if len(req.ReferenceImages) > 0 {
		refs := make([]veoReferenceImage, 0, len(req.ReferenceImages))
		for _, ref := range req.ReferenceImages {
			refs = append(refs, veoReferenceImage{
				Image:         *encodeVeoImage(ref),
				ReferenceType: mediagen.ReferenceTypeAsset,
			})
		}
		ensureParams().ReferenceImages = refs
	}

	body := veoStartRequest{
		Instances:  []veoInstance{instance},
		Parameters: params,
	}

	var op veoOperation
	if err := c.post(ctx, model, "generateVideos", body, &op); err != nil {
		return "", err
	}
	return op.Name, nil
}

// Ready 探测 API 可达性，供就绪检查使用。
func (c *Client) Ready(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/v1beta/models", strings.TrimRight(c.cfg.BaseURL, "/"))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	c.buildHeaders(httpReq)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gemini readiness check failed: status=%d msg=%s",
			resp.StatusCode, readErrMsg(resp.Body))
	}
	return nil
}

func (c *Client) buildHeaders(req *http.Request) {
	// Gemini 使用 x-goog-api-key 认证
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
}

// post 发出一次出站调用并解码响应。不重试，任何传输或提供商侧错误
// 都带着底层细节作为 UPSTREAM_ERROR 上浮。
func (c *Client) post(ctx context.Context, model, verb string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return types.NewError(types.ErrInternalError, "failed to encode provider request").
			WithCause(err).WithProvider(c.Name())
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:%s",
		strings.TrimRight(c.cfg.BaseURL, "/"), model, verb)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return types.NewError(types.ErrInternalError, "failed to create provider request").
			WithCause(err).WithProvider(c.Name())
	}
	c.buildHeaders(httpReq)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return types.NewError(types.ErrUpstreamError,
			fmt.Sprintf("gemini %s request failed: %v", verb, err)).
			WithCause(err).WithProvider(c.Name())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg := readErrMsg(resp.Body)
		c.logger.Warn("gemini request rejected",
			zap.String("model", model),
			zap.String("verb", verb),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(start)),
		)
		return types.NewError(types.ErrUpstreamError,
			fmt.Sprintf("gemini %s error: status=%d msg=%s", verb, resp.StatusCode, msg)).
			WithProvider(c.Name())
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return types.NewError(types.ErrUpstreamError,
			fmt.Sprintf("failed to decode gemini %s response: %v", verb, err)).
			WithCause(err).WithProvider(c.Name())
	}

	c.logger.Debug("gemini request completed",
		zap.String("model", model),
		zap.String("verb", verb),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// readErrMsg 尽力从错误响应体中取出提供商的错误消息。
func readErrMsg(r io.Reader) string {
	raw, _ := io.ReadAll(r)
	var eResp geminiErrorResp
	if err := json.Unmarshal(raw, &eResp); err == nil && eResp.Error.Message != "" {
		return eResp.Error.Message
	}
	return string(raw)
}

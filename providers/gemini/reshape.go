package gemini

import (
	"fmt"
	"net/http"

	"github.com/BaSui01/mediaflow/media"
	"github.com/BaSui01/mediaflow/mediagen"
	"github.com/BaSui01/mediaflow/types"
)

// Gemini wire types for the :generateContent endpoint.

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data"` // base64 encoded
}

type generateContentRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`
}

type geminiErrorResp struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Gemini wire types for the :generateVideos long-running endpoint.

type veoImage struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType,omitempty"`
}

type veoVideo struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType,omitempty"`
}

type veoReferenceImage struct {
	Image         veoImage `json:"image"`
	ReferenceType string   `json:"referenceType"`
}

type veoInstance struct {
	Prompt string    `json:"prompt"`
	Image  *veoImage `json:"image,omitempty"`
	Video  *veoVideo `json:"video,omitempty"`
}

type veoParams struct {
	AspectRatio     string              `json:"aspectRatio,omitempty"`
	NegativePrompt  string              `json:"negativePrompt,omitempty"`
	LastFrame       *veoImage           `json:"lastFrame,omitempty"`
	ReferenceImages []veoReferenceImage `json:"referenceImages,omitempty"`
}

type veoStartRequest struct {
	Instances  []veoInstance `json:"instances"`
	Parameters *veoParams    `json:"parameters,omitempty"`
}

type veoOperation struct {
	Name string `json:"name"`
}

func encodeVeoImage(enc *media.Encoded) *veoImage {
	return &veoImage{
		BytesBase64Encoded: enc.Bytes,
		MimeType:           enc.MimeType,
	}
}

// extractImage 按顺序扫描候选内容分部，取第一个携带内联媒体数据的分部。
// 没有媒体分部时：有拦截原因则映射为 CONTENT_BLOCKED（原因原文透出），
// 否则映射为 EMPTY_RESULT。
func extractImage(resp *generateContentResponse) (*mediagen.ImageResult, *types.Error) {
	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil {
				continue
			}
			mimeType := part.InlineData.MimeType
			if mimeType == "" {
				mimeType = media.DefaultImageMimeType
			}
			return &mediagen.ImageResult{
				Bytes:    part.InlineData.Data,
				MimeType: mimeType,
			}, nil
		}
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, types.NewError(types.ErrContentBlocked,
			fmt.Sprintf("request was blocked: %s", resp.PromptFeedback.BlockReason)).
			WithHTTPStatus(http.StatusBadRequest)
	}

	return nil, types.NewError(types.ErrEmptyResult, "no image returned from model").
		WithHTTPStatus(http.StatusInternalServerError)
}

// extractText 取第一个候选的首个文本分部。空文本原样返回。
func extractText(resp *generateContentResponse) string {
	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil {
				return part.Text
			}
		}
	}
	return ""
}

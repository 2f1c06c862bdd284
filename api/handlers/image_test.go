package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/mediaflow/api"
	"github.com/BaSui01/mediaflow/mediagen"
	"github.com/BaSui01/mediaflow/types"
)

// =============================================================================
// 🧪 ImageHandler 测试
// =============================================================================

func TestImageHandler_MissingPrompt(t *testing.T) {
	t.Parallel()

	mock := &mockProvider{}
	h := NewImageHandler(mock, nil, zap.NewNop())

	req := newMultipartRequest(t, "/api/v1/images/generate", map[string]string{}, nil)
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing prompt")
	// 验证失败不得触发任何出站调用
	assert.Equal(t, 0, mock.calls)
}

func TestImageHandler_Base64DataURL(t *testing.T) {
	t.Parallel()

	var captured *mediagen.ImageRequest
	mock := &mockProvider{
		generateImageFunc: func(ctx context.Context, req *mediagen.ImageRequest) (*mediagen.ImageResult, error) {
			captured = req
			return &mediagen.ImageResult{Bytes: "T1VU", MimeType: "image/png"}, nil
		},
	}
	h := NewImageHandler(mock, nil, zap.NewNop())

	req := newMultipartRequest(t, "/api/v1/images/generate", map[string]string{
		"prompt":      "a cat",
		"imageBase64": "data:image/webp;base64,QUJD",
	}, nil)
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// data URL 前缀在首个逗号处剥离；未提供 MIME 时回落到 image/png
	require.NotNil(t, captured.Image)
	assert.Equal(t, "QUJD", captured.Image.Bytes)
	assert.Equal(t, "image/png", captured.Image.MimeType)

	var resp api.ImageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "T1VU", resp.Image.ImageBytes)
	assert.Equal(t, "image/png", resp.Image.MimeType)
}

func TestImageHandler_FileBeatsBase64(t *testing.T) {
	t.Parallel()

	var captured *mediagen.ImageRequest
	mock := &mockProvider{
		generateImageFunc: func(ctx context.Context, req *mediagen.ImageRequest) (*mediagen.ImageResult, error) {
			captured = req
			return &mediagen.ImageResult{Bytes: "X", MimeType: "image/png"}, nil
		},
	}
	h := NewImageHandler(mock, nil, zap.NewNop())

	req := newMultipartRequest(t, "/api/v1/images/generate",
		map[string]string{
			"prompt":        "a cat",
			"imageBase64":   "aWdub3JlZA==",
			"imageMimeType": "image/gif",
		},
		[]formFile{{
			field:       "imageFile",
			filename:    "cat.jpg",
			contentType: "image/jpeg",
			content:     []byte("ABC"),
		}},
	)
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// 文件流优先；MIME 取自文件分部头而非用户字段
	require.NotNil(t, captured.Image)
	assert.Equal(t, "QUJD", captured.Image.Bytes) // base64("ABC")
	assert.Equal(t, "image/jpeg", captured.Image.MimeType)
}

func TestImageHandler_BlockedMapsTo400(t *testing.T) {
	t.Parallel()

	mock := &mockProvider{
		generateImageFunc: func(ctx context.Context, req *mediagen.ImageRequest) (*mediagen.ImageResult, error) {
			return nil, types.NewError(types.ErrContentBlocked, "request was blocked: SAFETY").
				WithHTTPStatus(http.StatusBadRequest)
		},
	}
	h := NewImageHandler(mock, nil, zap.NewNop())

	req := newMultipartRequest(t, "/api/v1/images/generate",
		map[string]string{"prompt": "a cat"}, nil)
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "SAFETY")
}

func TestImageHandler_EmptyResultMapsTo500(t *testing.T) {
	t.Parallel()

	mock := &mockProvider{
		generateImageFunc: func(ctx context.Context, req *mediagen.ImageRequest) (*mediagen.ImageResult, error) {
			return nil, types.NewError(types.ErrEmptyResult, "no image returned from model")
		},
	}
	h := NewImageHandler(mock, nil, zap.NewNop())

	req := newMultipartRequest(t, "/api/v1/images/generate",
		map[string]string{"prompt": "a cat"}, nil)
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "no image returned from model")
}

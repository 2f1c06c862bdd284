package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/mediaflow/api"
)

// =============================================================================
// 🧪 PromptHandler 测试
// =============================================================================

func newJSONRequest(t *testing.T, target, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestPromptHandler_MissingPrompt(t *testing.T) {
	t.Parallel()

	mock := &mockProvider{}
	h := NewPromptHandler(mock, nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.HandleRewrite(rec, newJSONRequest(t, "/api/v1/prompts/magic", `{}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing prompt")
	assert.Equal(t, 0, mock.calls)
}

func TestPromptHandler_InvalidJSON(t *testing.T) {
	t.Parallel()

	mock := &mockProvider{}
	h := NewPromptHandler(mock, nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.HandleRewrite(rec, newJSONRequest(t, "/api/v1/prompts/magic", `{not json`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, mock.calls)
}

func TestPromptHandler_Rewrite(t *testing.T) {
	t.Parallel()

	var gotPrompt, gotInstruction string
	mock := &mockProvider{
		generateTextFunc: func(ctx context.Context, prompt, systemInstruction string) (string, error) {
			gotPrompt = prompt
			gotInstruction = systemInstruction
			return "A vintage red convertible speeds down a winding coastal highway at sunset.", nil
		},
	}
	h := NewPromptHandler(mock, nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.HandleRewrite(rec, newJSONRequest(t, "/api/v1/prompts/magic", `{"prompt":"a car driving"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a car driving", gotPrompt)
	assert.Contains(t, gotInstruction, "expert prompt engineer")

	var resp api.RewriteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.SuggestedPrompt, "convertible")
}

func TestPromptHandler_EmptySuggestionPassesThrough(t *testing.T) {
	t.Parallel()

	mock := &mockProvider{
		generateTextFunc: func(ctx context.Context, prompt, systemInstruction string) (string, error) {
			return "", nil
		},
	}
	h := NewPromptHandler(mock, nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.HandleRewrite(rec, newJSONRequest(t, "/api/v1/prompts/magic", `{"prompt":"a car"}`))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.RewriteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "", resp.SuggestedPrompt)
}

// Package mediagen defines the unified generative-media request and result
// models plus the provider interface consumed by the HTTP handlers.
package mediagen

import (
	"context"

	"github.com/BaSui01/mediaflow/media"
)

// Default model identifiers per endpoint. Identifiers are opaque strings;
// the provider is the source of truth for valid models.
const (
	DefaultImageModel = "gemini-2.5-flash-image-preview"
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultVideoModel = "veo-3.1-generate-preview"
)

// ReferenceTypeAsset is the classification tag applied to every reference
// image entry. No per-entry override is supported yet.
const ReferenceTypeAsset = "asset"

// ImageRequest represents an image generation request.
type ImageRequest struct {
	Prompt string
	Model  string
	// Image is the optional conditioning image. Nil means the provider
	// sees a text-only request.
	Image *media.Encoded
}

// ImageResult represents a single generated image.
type ImageResult struct {
	Bytes    string `json:"imageBytes"`
	MimeType string `json:"mimeType"`
}

// VideoRequest represents a video generation start request.
// Optional fields appear in the outbound payload only when non-nil/non-empty;
// the provider distinguishes absence from an empty value.
type VideoRequest struct {
	Prompt          string
	Model           string
	NegativePrompt  string
	AspectRatio     string
	Image           *media.Encoded
	LastFrame       *media.Encoded
	ReferenceImages []*media.Encoded
	Video           *media.Encoded
}

// Provider defines the generative-media provider interface. Implementations
// are stateless and safe for concurrent use; each method issues exactly one
// outbound call with no retries.
type Provider interface {
	// GenerateImage creates one image synchronously.
	GenerateImage(ctx context.Context, req *ImageRequest) (*ImageResult, error)

	// GenerateText returns a single text completion for the prompt,
	// steered by an optional system instruction.
	GenerateText(ctx context.Context, prompt, systemInstruction string) (string, error)

	// StartVideoGeneration starts a long-running video generation and
	// returns the remote operation identifier immediately. Polling is the
	// caller's concern.
	StartVideoGeneration(ctx context.Context, req *VideoRequest) (string, error)

	// Name returns the provider name.
	Name() string
}

// Package api defines the inbound and outbound JSON contract of the
// mediaflow HTTP API.
//
// # API Overview
//
// mediaflow provides a RESTful API for:
//   - Synchronous image generation (multipart form in, inline image out)
//   - Prompt rewriting ("prompt magic")
//   - Starting long-running video generation (operation handle out)
//   - Health monitoring and metrics
//
// Success payloads mirror the shapes the client UI consumes directly:
// {image:{imageBytes,mimeType}}, {suggestedPrompt}, and {name}. Every
// failure is a JSON {error} envelope paired with a 4xx/5xx status.
package api

// =============================================================================
// 📦 MediaFlow 默认配置
// =============================================================================
// 提供所有配置项的合理默认值
// =============================================================================
package config

import (
	"time"

	"github.com/BaSui01/mediaflow/providers/gemini"
)

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Server:    DefaultServerConfig(),
		Gemini:    DefaultGeminiConfig(),
		Log:       DefaultLogConfig(),
		Telemetry: DefaultTelemetryConfig(),
	}
}

// DefaultServerConfig 返回默认服务器配置
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		HTTPPort:           8080,
		MetricsPort:        9091,
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       5 * time.Minute,
		ShutdownTimeout:    15 * time.Second,
		CORSAllowedOrigins: []string{"*"},
		RateLimitRPS:       100,
		RateLimitBurst:     200,
	}
}

// DefaultGeminiConfig 返回默认 Gemini 配置。
// API Key 没有默认值，必须由环境或配置文件提供。
func DefaultGeminiConfig() gemini.Config {
	return gemini.Config{
		BaseURL: "https://generativelanguage.googleapis.com",
		Timeout: 2 * time.Minute,
	}
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            "info",
		Format:           "json",
		OutputPaths:      []string{"stdout"},
		EnableCaller:     true,
		EnableStacktrace: false,
	}
}

// DefaultTelemetryConfig 返回默认遥测配置
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:      false,
		OTLPEndpoint: "localhost:4317",
		ServiceName:  "mediaflow",
		SampleRate:   0.1,
	}
}

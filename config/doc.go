// Copyright (c) MediaFlow Authors.
// Licensed under the MIT License.

/*
Package config 提供 MediaFlow 的统一配置加载与验证。

# 概述

config 包以 Builder 模式加载配置，优先级为默认值 → YAML 文件 →
环境变量（前缀 MEDIAFLOW，按结构层级拼接，如
MEDIAFLOW_SERVER_HTTP_PORT、MEDIAFLOW_GEMINI_API_KEY）。
为兼容原生变量名，GEMINI_API_KEY 无前缀也可直接提供凭证。

# 核心类型

  - Config          — 完整配置（Server、Gemini、Log、Telemetry）
  - ServerConfig    — 端口、超时、CORS、限流
  - LogConfig       — zap 日志级别与格式
  - TelemetryConfig — OTLP 导出开关与端点
  - Loader          — 配置加载器，支持自定义验证器

# 主要能力

  - 环境变量覆盖通过反射递归处理嵌套结构，支持 Duration 与逗号分隔切片
  - Validate 把凭证缺失与非法端口视为致命的启动错误
*/
package config

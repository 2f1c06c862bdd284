// Copyright (c) MediaFlow Authors.
// Licensed under the MIT License.

/*
Package handlers 提供 MediaFlow HTTP API 的请求处理器实现。

# 概述

handlers 包实现了 MediaFlow 所有 HTTP 端点的请求处理逻辑，
包括图片生成、提示词重写、视频生成发起、健康检查以及统一的
响应/错误处理。所有 Handler 均遵循标准 net/http 接口，
通过 Swagger 注解生成 API 文档。

# 核心类型

  - ImageHandler   — 图片生成处理器（multipart 表单入，内联图片出）
  - PromptHandler  — 提示词重写处理器（JSON 入，suggestedPrompt 出）
  - VideoHandler   — 视频生成发起处理器（multipart 表单入，操作句柄出）
  - HealthHandler  — 服务健康检查（/health, /healthz, /ready, /version）
  - HealthCheck    — 可插拔健康检查接口（提供商连通性等）

# 主要能力

  - 统一错误格式：所有失败返回 {"error": message} 加 4xx/5xx 状态码
  - ErrorCode → HTTP 状态码自动映射（客户端可修正的给 4xx，其余 5xx）
  - 媒体槽位解析：文件流优先于 base64 文本，MIME 取自分部头
  - 出站调用与入站连接解耦，调用方断开不撤销远端生成
  - 可扩展健康检查：RegisterCheck 注册自定义 HealthCheck 实现
*/
package handlers

// Copyright (c) MediaFlow Authors.
// Licensed under the MIT License.

/*
Package gemini 实现基于 Google generativelanguage REST API 的生成提供商。

# 概述

gemini 包封装对 Gemini 系列模型的出站调用：图片与文本走同步的
:generateContent 端点，视频走 :generateVideos 长时操作端点并立即
返回操作句柄。所有请求使用 x-goog-api-key 请求头认证，出站负载
严格区分"字段缺失"与"字段为空"。

# 核心类型

  - Client — 提供商客户端，实现 mediagen.Provider 接口
  - Config — API Key、基础 URL、各能力默认模型与请求超时

# 错误语义

  - 传输失败 / 非 2xx 响应 → UPSTREAM_ERROR（携带提供商错误消息）
  - 提示词被安全策略拦截   → CONTENT_BLOCKED（拦截原因原文透出）
  - 成功响应但无图片数据   → EMPTY_RESULT
  - 不做重试，由调用方决定是否重新提交
*/
package gemini

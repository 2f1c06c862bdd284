// Copyright (c) MediaFlow Authors.
// Licensed under the MIT License.

/*
Package mediagen 定义媒体生成的提供商无关抽象。

# 概述

mediagen 包声明生成请求/结果类型与 Provider 接口，是 HTTP 处理层
与具体提供商实现（providers/gemini）之间的契约。请求类型中的可选
媒体输入一律用 *media.Encoded 表达，nil 表示该槽位缺席。

# 核心类型

  - Provider     — 图片生成、文本生成与视频生成发起的统一接口
  - ImageRequest / ImageResult — 同步图片生成的入参与出参
  - VideoRequest — 视频生成发起的全部输入（首帧、尾帧、参考图、源视频）
*/
package mediagen

// Copyright (c) MediaFlow Authors.
// Licensed under the MIT License.

/*
包 media 提供异构媒体输入的规范化，将上传文件流与 base64 文本统一为
单一的编码媒体表示（base64 字节 + MIME 类型）。

# 概述

客户端可能以三种方式提供一张图片：上传的文件流、base64 文本字段，
或完全省略。本包把这三种形态收敛为 Encoded 值：文件流被完整读入后
base64 编码，MIME 类型取自分部声明的 Content-Type；base64 文本剥离
data-URL 前缀后原样使用；两者皆无时槽位为 nil，不进入出站请求。

# 核心类型

  - Encoded — base64 字节 + MIME 类型的规范化媒体载荷
  - ResolveImageSlot — 单槽位输入源仲裁（文件优先于 base64 文本）
  - FromFileHeaders — 有序序列的并发读取，保持输入顺序

# 约束

  - 每个流最多读取一次，读取失败绝不产出截断结果。
  - 参考图序列的顺序承载槽位语义，必须与输入一致。
*/
package media

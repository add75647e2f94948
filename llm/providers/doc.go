// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
# 概述

包 providers 提供 OpenAI 兼容 Chat Completions 协议的公共基础层：
请求/响应结构体、消息转换与 HTTP 错误映射。具体客户端见 openaicompat
与 openai 子包。

# 核心类型

  - BaseProviderConfig: APIKey、BaseURL、Model、Timeout
  - OpenAIConfig: 在基础配置上增加 Organization
  - OpenAICompat* 系列: 线上 JSON 结构（含 frequency_penalty）

# 核心函数

  - MapHTTPError: 将 HTTP 状态码映射为语义化的 llm.Error（含 Retryable 标记）
  - ReadErrorMessage: 解析 {"error":{...}} 错误体，失败回退原文
  - ConvertMessagesToOpenAI / ToLLMChatResponse: 双向格式转换
  - ChooseModel: 按优先级选择模型（请求 > 默认 > 兜底）
*/
package providers

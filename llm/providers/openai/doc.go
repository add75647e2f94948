// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
# 概述

包 openai 提供 OpenAI 官方端点的 Provider 预设。该包在 openaicompat
基础上只补充默认值：BaseURL https://api.openai.com、模型 gpt-4o，
以及可选的 OpenAI-Organization header。

# 核心结构体

  - OpenAIProvider: 嵌入 openaicompat.Provider，Completion 直接委托
*/
package openai

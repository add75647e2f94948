/*
包 llm 定义远端补全调用的统一契约：请求/响应模型、错误分类与中间件链。

# 概述

roundtable 中每个 Agent 的一次发言都归结为一次 [Provider.Completion] 调用。
本包只描述这次调用的形状，不关心具体服务商；HTTP 细节见
llm/providers/openaicompat。

# 核心类型

  - [Provider]：Completion / Name
  - [ChatRequest]：模型、按序排列的 [Message]，以及可选的采样参数
    Temperature / MaxTokens / FrequencyPenalty
  - [Error]：唯一的错误类型，通过 [ErrorCode] 区分失败原因；
    [ErrMissingCredential] 与 [ErrEmptyCompletion] 分别表示调用时缺少凭据、
    上游返回空内容

# 中间件

[Chain] 按注册顺序由外到内包裹 [Handler]，[Wrap] 把链挂到 Provider 上。
内置 Logging / Timeout / RateLimit / Retry / Metrics / Tracing /
EmptyCompletionGuard。默认重试次数为 0，失败按原样向上传播。
*/
package llm

// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 metrics 提供基于 Prometheus 的 LLM 调用与对话发言指标采集。

# 概述

Collector 使用独立的 prometheus.Registry（promauto.With），
同一进程内可以创建多个 Collector 而不会发生重复注册。
Handler 通过 promhttp 暴露该 Registry，供 /metrics 端点使用。

# 核心类型

  - Collector：同时实现 llm.MetricsCollector（挂在 MetricsMiddleware 上）
    与 conversation.TurnObserver（挂在 Session 上）。

# 指标

  - llm_requests_total{provider,model,status}：status 为 success
    或 llm.ErrorCode（如 LLM_RATE_LIMITED）。
  - llm_request_duration_seconds{provider,model}
  - llm_tokens_used_total{provider,model,type}：type 为 prompt/completion。
  - dialogue_turns_total{scenario,role}
*/
package metrics

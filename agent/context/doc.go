// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 context 为角色智能体提供上下文窗口管理。

# 概述

共享历史的对话会让每个参与者的 transcript 持续增长。WindowManager
只裁剪发往上游的请求视图，存储的 transcript 保持完整、只追加。
system 条目（角色设定）始终保留。

# 策略

  - none：原样发送（默认）
  - sliding_window：保留最近 MaxMessages 条非系统消息，KeepLastN 作为下限
  - token_budget：从最新消息往回累计 token，第一条放不下的消息之前全部丢弃
  - summarize：超出预算时用 Summarizer 把较早的消息压缩成一条摘要，
    失败时回退到 token_budget

token 计数来自 llm/tokenizer，未注入时使用离线估算器。

# 用法

	wm := context.NewWindowManager(context.WindowConfig{
		Strategy:    context.StrategySlidingWindow,
		MaxMessages: 24,
	}, nil, nil, logger)
	a, _ := agent.NewAgentBuilder(persona).
		WithProvider(p).
		WithContextManager(wm).
		Build()
*/
package context

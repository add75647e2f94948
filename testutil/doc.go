// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

/*
Package testutil 提供 roundtable 测试的共享工具和辅助函数。

# 概述

testutil 包为各包的单元测试提供统一的辅助能力，避免重复实现
相似的测试基础设施。

# 核心能力

  - 上下文辅助: TestContext / CancelledContext，自动注册 Cleanup 防止泄漏
  - 断言工具: AssertMessagesEqual，逐条比较角色、发言者与内容

# 子包

  - testutil/mocks: MockProvider（可按 Agent 脚本化回复、注入延迟与错误）、
    CaptureReporter（记录控制台事件）、MockRecorder（轮次录制器）
  - testutil/fixtures: 预置角色智能体与对话消息
*/
package testutil

// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 conversation 提供角色智能体之间的轮次驱动。

# 概述

每个驱动器决定一轮里谁发言、以什么顺序、收到什么提示词，
并把发言交给 Session 输出与录制。

# 驱动器

  - Independent：每轮所有 Agent 收到同一提示词，互不可见。
    Concurrent=false 时逐个调用并立即输出（sequential 场景），
    Concurrent=true 时通过 FanOut 并发调用，全部返回后按列表顺序输出。
  - Jury：喜剧演员并发讲笑话，拼接成评审提示词交给评委，输出 "Jury Decision:"。
  - SharedHistory：按固定顺序 Act，回复广播进其他所有人的 transcript，
    发言者自己只保留一份。

# 并发

FanOut 基于 errgroup：结果按输入顺序重组，与完成顺序无关；
首个失败取消其余调用并中止本轮。SharedHistory 严格串行。

# Session

Session 持有 RunID、Reporter、可选的 persistence.Recorder 与
TurnObserver。录制失败只记日志，控制台输出始终是主产物。
*/
package conversation

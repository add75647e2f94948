// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 deliberation 提供带主持人与观众的脚本化辩论。

# 概述

每一轮的流程固定：

 1. 主持人 Respond("Create a new debate question.") 产生问题
 2. Coin 决定谁先回答（Intn(2) == 0 时 Candidates[0] 先答）
 3. 先答者回答问题，后答者在看到先答者回答后作答
 4. Rebuttals 次（nil 时默认 2，0 跳过）交替反驳，每次引用对方上一句
 5. 观众通过 conversation.FanOut 并发对本轮全部候选人发言作出评价，
    结果按观众列表顺序输出

所有参与者都使用 Respond，各自的 transcript 保留整场辩论的历史。

# 计数

R 轮、默认反驳次数下：R 个问题、2R 个开场回答、4R 个反驳、
R 批观众评价（每批 len(Audience) 条）。

# 随机性

Coin 默认使用 math/rand/v2；测试中可注入固定或有偏的实现。
*/
package deliberation

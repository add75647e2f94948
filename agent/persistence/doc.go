// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 persistence 提供对话轮次的可插拔录制后端。

# 概述

控制台输出始终是一次运行的主要产物。开启录制后，每条发言
（发言者、角色、轮次、提示词与回复）会以 TurnRecord 的形式
写入所选后端，便于事后检索与分析。默认关闭。

# 核心接口

  - Store: 基础接口，提供 Close 和 Ping 健康检查。
  - Recorder: Record 写入一条轮次，Turns 按 Seq 读回一次运行。
  - TurnRecord: 一条发言，RunID + Seq 唯一定位。

# 后端实现

  - none: NopRecorder，丢弃所有记录（默认）。
  - memory: 内存实现，适合测试。
  - file: 每次运行一个 JSONL 文件。
  - sql: GORM，支持 sqlite（glebarez，纯 Go）、postgres、mysql，
    写入在可重试事务中完成。
  - redis: 每次运行一个 List，运行 ID 存入 Set，可设置 TTL。

# 使用方式

	rec, err := persistence.NewRecorder(cfg.Recorder, logger)
	defer rec.Close()
*/
package persistence

// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 database 提供基于 GORM 的数据库打开与连接池管理，供 SQL 轮次录制器使用。

# 核心类型

  - PoolManager：持有 GORM DB 与底层 sql.DB，提供 DB()、Ping()、Stats()、Close()。
  - PoolConfig：最大空闲/打开连接数、生命周期与健康检查间隔。
  - Dialector / Open：按驱动名（sqlite、postgres、mysql）构造连接。
    sqlite 使用纯 Go 的 glebarez/sqlite，无需 cgo。

# 事务

WithTransaction 执行单次事务；WithTransactionRetry 在死锁、序列化失败、
sqlite 锁冲突等场景下指数退避重试。
*/
package database

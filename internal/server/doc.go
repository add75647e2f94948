// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 server 管理 CLI 运行期间的辅助 HTTP 端点。

# 概述

配置了 metrics.addr 时，CLI 通过 Manager 在后台暴露
/metrics（Prometheus）与 /healthz，运行结束后优雅关闭。
未配置地址时不启动任何监听。

# 核心类型

  - Manager：封装 net/http.Server，提供非阻塞 Start、幂等 Shutdown、
    异步错误通道 Errors 与实际监听地址 Addr。
  - Config：监听地址、读取请求头超时、优雅关闭超时。
  - MetricsMux：组装 /metrics 与 /healthz 路由。
*/
package server

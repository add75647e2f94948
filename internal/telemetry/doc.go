// Package telemetry 封装 OpenTelemetry SDK 初始化，为补全调用提供 Tracer。
// 禁用时不连接任何外部服务，Tracer 为 noop 实现。
package telemetry

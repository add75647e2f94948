// Package tokenizer 提供统一的 Token 计数接口，
// 支持 tiktoken 精确计数与离线估算器，用于 transcript 窗口的 Token 预算。
package tokenizer

// Package tlsutil 为补全客户端提供加固的 TLS 与 HTTP Transport 配置（TLS 1.2+，仅 AEAD 密码套件）。
package tlsutil

// Package config 提供 roundtable 的配置加载。
//
// 优先级为默认值、YAML 文件、环境变量（前缀 ROUNDTABLE）。
// .env 文件通过 godotenv 加载，不覆盖已存在的变量；
// LLM.APIKey 为空时回落到 OPENAI_API_KEY。
package config

package agent

import "errors"

var (
	// ErrProviderNotSet LLM Provider 未设置
	ErrProviderNotSet = errors.New("llm provider not set")

	// ErrPersonaInvalid Persona 缺少名称或指令
	ErrPersonaInvalid = errors.New("persona requires a name and an instruction")

	// ErrConfigInvalid 配置无效
	ErrConfigInvalid = errors.New("invalid agent config")
)

package agent

import "fmt"

// Persona 是 Agent 的身份：名称、描述性角色和系统指令。创建后不可修改。
type Persona struct {
	name        string
	role        string
	instruction string
}

// NewPersona creates a persona with an explicit instruction.
func NewPersona(name, role, instruction string) Persona {
	return Persona{name: name, role: role, instruction: instruction}
}

// ComedianPersona builds the stand-up comedian instruction used by the joke scenarios.
func ComedianPersona(name, style string) Persona {
	return NewPersona(name, style, fmt.Sprintf("You are %s, a famous comedian known for %s.", name, style))
}

// FamousPersona builds "You are <name>, a famous <role>." (the jury judge).
func FamousPersona(name, role string) Persona {
	return NewPersona(name, role, fmt.Sprintf("You are %s, a famous %s.", name, role))
}

func (p Persona) Name() string        { return p.name }
func (p Persona) Role() string        { return p.role }
func (p Persona) Instruction() string { return p.instruction }

func (p Persona) String() string { return p.name }

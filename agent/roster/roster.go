// Package roster holds the built-in casts of every scenario and turns them
// into agents. Any cast can be replaced from YAML.
package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BaSui01/roundtable/agent"
	"github.com/BaSui01/roundtable/llm"
	"go.uber.org/zap"
)

// DefaultModel is used when Options.Model is empty.
const DefaultModel = "gpt-4o"

// ErrInvalidCast is returned for casts that cannot be staged.
var ErrInvalidCast = errors.New("roster: invalid cast")

// Member describes one persona. Comedians may leave Instruction empty, in
// which case it is derived from Role.
type Member struct {
	Name        string `yaml:"name" json:"name"`
	Role        string `yaml:"role" json:"role"`
	Instruction string `yaml:"instruction,omitempty" json:"instruction,omitempty"`
}

func (m Member) persona(derive func(name, role string) agent.Persona) agent.Persona {
	if strings.TrimSpace(m.Instruction) != "" || derive == nil {
		return agent.NewPersona(m.Name, m.Role, m.Instruction)
	}
	return derive(m.Name, m.Role)
}

// Cast groups the members of all scenarios.
type Cast struct {
	Comedians  []Member `yaml:"comedians,omitempty" json:"comedians,omitempty"`
	Judge      Member   `yaml:"judge,omitempty" json:"judge,omitempty"`
	Presidents []Member `yaml:"presidents,omitempty" json:"presidents,omitempty"`
	Moderator  Member   `yaml:"moderator,omitempty" json:"moderator,omitempty"`
	Candidates []Member `yaml:"candidates,omitempty" json:"candidates,omitempty"`
	Audience   []Member `yaml:"audience,omitempty" json:"audience,omitempty"`
}

// Merge returns c with every non-empty part of o replacing the matching part.
// Lists are replaced as a whole, never merged element by element.
func (c Cast) Merge(o Cast) Cast {
	if len(o.Comedians) > 0 {
		c.Comedians = o.Comedians
	}
	if o.Judge.Name != "" {
		c.Judge = o.Judge
	}
	if len(o.Presidents) > 0 {
		c.Presidents = o.Presidents
	}
	if o.Moderator.Name != "" {
		c.Moderator = o.Moderator
	}
	if len(o.Candidates) > 0 {
		c.Candidates = o.Candidates
	}
	if len(o.Audience) > 0 {
		c.Audience = o.Audience
	}
	return c
}

// Validate checks names are present and the debate has exactly two candidates.
func (c Cast) Validate() error {
	var errs []error
	check := func(group string, ms ...Member) {
		for i, m := range ms {
			if strings.TrimSpace(m.Name) == "" {
				errs = append(errs, fmt.Errorf("%w: %s[%d] has no name", ErrInvalidCast, group, i))
			}
		}
	}
	check("comedians", c.Comedians...)
	check("presidents", c.Presidents...)
	check("candidates", c.Candidates...)
	check("audience", c.Audience...)
	if len(c.Candidates) != 2 {
		errs = append(errs, fmt.Errorf("%w: debate needs exactly 2 candidates, got %d", ErrInvalidCast, len(c.Candidates)))
	}
	return errors.Join(errs...)
}

// Options controls how members become agents.
type Options struct {
	Provider llm.Provider
	Model    string
	// Context bounds every transcript sent upstream; nil sends it whole.
	Context agent.ContextManager
	Logger  *zap.Logger
}

func (o Options) model() string {
	if o.Model == "" {
		return DefaultModel
	}
	return o.Model
}

// ComedianSampling is used by the sequential and concurrent joke scenarios.
func ComedianSampling(model string) agent.Sampling {
	return agent.Sampling{Model: model, Temperature: 0.8, MaxTokens: 60, FrequencyPenalty: 0.7}
}

func build(p agent.Persona, s agent.Sampling, o Options) (*agent.Agent, error) {
	a, err := agent.NewAgentBuilder(p).
		WithProvider(o.Provider).
		WithSampling(s).
		WithContextManager(o.Context).
		WithLogger(o.Logger).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build %q: %w", p.Name(), err)
	}
	return a, nil
}

func buildAll(ms []Member, derive func(name, role string) agent.Persona, s agent.Sampling, o Options) ([]*agent.Agent, error) {
	out := make([]*agent.Agent, 0, len(ms))
	for _, m := range ms {
		a, err := build(m.persona(derive), s, o)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// ComedianAgents builds the joke tellers with the tuned comedian sampling.
func (c Cast) ComedianAgents(o Options) ([]*agent.Agent, error) {
	return buildAll(c.Comedians, agent.ComedianPersona, ComedianSampling(o.model()), o)
}

// JuryPanel builds the comedians and the judge of the jury scenario. Both
// use default sampling. The comedians get the same "a famous comedian known
// for <role>" instruction as the other comedian scenarios, since the roles
// read as descriptions of a style ("his quick wit ...") and "a famous <role>"
// would not parse. Only the judge uses FamousPersona.
func (c Cast) JuryPanel(o Options) ([]*agent.Agent, *agent.Agent, error) {
	s := agent.Sampling{Model: o.model()}
	comedians, err := buildAll(c.Comedians, agent.ComedianPersona, s, o)
	if err != nil {
		return nil, nil, err
	}
	judge, err := build(c.Judge.persona(agent.FamousPersona), s, o)
	if err != nil {
		return nil, nil, err
	}
	return comedians, judge, nil
}

// Table builds the shared-history participants.
func (c Cast) Table(o Options) ([]*agent.Agent, error) {
	return buildAll(c.Presidents, nil, agent.Sampling{Model: o.model()}, o)
}

// Stage is the debate cast as agents.
type Stage struct {
	Moderator  *agent.Agent
	Candidates [2]*agent.Agent
	Audience   []*agent.Agent
}

// DebateStage builds moderator, candidates and audience.
func (c Cast) DebateStage(o Options) (*Stage, error) {
	if len(c.Candidates) != 2 {
		return nil, fmt.Errorf("%w: debate needs exactly 2 candidates, got %d", ErrInvalidCast, len(c.Candidates))
	}
	s := agent.Sampling{Model: o.model()}
	mod, err := build(c.Moderator.persona(nil), s, o)
	if err != nil {
		return nil, err
	}
	cands, err := buildAll(c.Candidates, nil, s, o)
	if err != nil {
		return nil, err
	}
	audience, err := buildAll(c.Audience, nil, s, o)
	if err != nil {
		return nil, err
	}
	return &Stage{Moderator: mod, Candidates: [2]*agent.Agent{cands[0], cands[1]}, Audience: audience}, nil
}

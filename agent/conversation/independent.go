package conversation

import (
	"context"

	"github.com/BaSui01/roundtable/agent"
	"go.uber.org/zap"
)

// Independent gives every agent the same prompt each round. Agents never
// see each other's replies; each call is a fresh [system, user] request.
type Independent struct {
	Agents []*agent.Agent
	Prompt string
	Rounds int
	// Concurrent issues a round's calls at once and prints after all return.
	Concurrent bool
	// RoundHeaders prints "Round N:" before each round. Off by default so the
	// output is only the joke lines.
	RoundHeaders bool
}

func (d *Independent) validate() error {
	if len(d.Agents) == 0 {
		return ErrNoAgents
	}
	if d.Rounds < 0 {
		return ErrInvalidRounds
	}
	return nil
}

func (d *Independent) prompt() string {
	if d.Prompt == "" {
		return DefaultPrompt
	}
	return d.Prompt
}

// Run executes all rounds. On failure the rounds completed so far are
// returned together with the error; lines already printed stay printed.
func (d *Independent) Run(ctx context.Context, s *Session) ([]RoundResult, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	s.Logger().Info("independent run started",
		zap.Int("agents", len(d.Agents)),
		zap.Int("rounds", d.Rounds),
		zap.Bool("concurrent", d.Concurrent),
	)

	results := make([]RoundResult, 0, d.Rounds)
	for round := 1; round <= d.Rounds; round++ {
		if d.RoundHeaders {
			s.StartRound(round)
		} else {
			s.logRound(round)
		}

		var (
			rr  RoundResult
			err error
		)
		if d.Concurrent {
			rr, err = d.concurrentRound(ctx, s, round)
		} else {
			rr, err = d.sequentialRound(ctx, s, round)
		}
		if err != nil {
			return results, s.Fail(round, err)
		}
		results = append(results, rr)
	}
	return results, nil
}

// sequentialRound prints each reply as soon as it arrives.
func (d *Independent) sequentialRound(ctx context.Context, s *Session, round int) (RoundResult, error) {
	rr := RoundResult{Round: round}
	prompt := d.prompt()
	for _, a := range d.Agents {
		reply, err := a.Ask(ctx, prompt)
		if err != nil {
			return rr, err
		}
		t := Turn{Round: round, Speaker: a.Name(), Role: RoleComedian, Prompt: prompt, Text: reply}
		s.Emit(ctx, t)
		rr.Turns = append(rr.Turns, t)
	}
	return rr, nil
}

// concurrentRound prints nothing unless every call succeeds.
func (d *Independent) concurrentRound(ctx context.Context, s *Session, round int) (RoundResult, error) {
	rr := RoundResult{Round: round}
	prompt := d.prompt()
	replies, err := FanOut(ctx, d.Agents, func(ctx context.Context, a *agent.Agent) (string, error) {
		return a.Ask(ctx, prompt)
	})
	if err != nil {
		return rr, err
	}
	for i, a := range d.Agents {
		t := Turn{Round: round, Speaker: a.Name(), Role: RoleComedian, Prompt: prompt, Text: replies[i]}
		s.Emit(ctx, t)
		rr.Turns = append(rr.Turns, t)
	}
	return rr, nil
}

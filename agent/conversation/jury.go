package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/BaSui01/roundtable/agent"
	"go.uber.org/zap"
)

// Jury runs the comedians concurrently each round and asks a judge to pick
// the best joke.
type Jury struct {
	Comedians []*agent.Agent
	Judge     *agent.Agent
	Prompt    string
	Rounds    int
}

// JudgmentPrompt builds the judge's prompt from the round's jokes, in
// comedian order.
func JudgmentPrompt(names, jokes []string) string {
	var b strings.Builder
	b.WriteString("Here are the jokes told by the comedians:\n")
	for i, name := range names {
		fmt.Fprintf(&b, "%s: %s\n", name, jokes[i])
	}
	b.WriteString("Please decide which joke is the best and explain why it is so.")
	return b.String()
}

// Run executes all rounds.
func (d *Jury) Run(ctx context.Context, s *Session) ([]RoundResult, error) {
	if len(d.Comedians) == 0 {
		return nil, ErrNoAgents
	}
	if d.Judge == nil {
		return nil, ErrNoJudge
	}
	if d.Rounds < 0 {
		return nil, ErrInvalidRounds
	}
	prompt := d.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	s.Logger().Info("jury run started",
		zap.Int("comedians", len(d.Comedians)),
		zap.String("judge", d.Judge.Name()),
		zap.Int("rounds", d.Rounds),
	)

	names := make([]string, len(d.Comedians))
	for i, c := range d.Comedians {
		names[i] = c.Name()
	}

	results := make([]RoundResult, 0, d.Rounds)
	for round := 1; round <= d.Rounds; round++ {
		s.StartRound(round)
		rr := RoundResult{Round: round}

		jokes, err := FanOut(ctx, d.Comedians, func(ctx context.Context, a *agent.Agent) (string, error) {
			return a.Ask(ctx, prompt)
		})
		if err != nil {
			return results, s.Fail(round, err)
		}
		for i, name := range names {
			t := Turn{Round: round, Speaker: name, Role: RoleComedian, Prompt: prompt, Text: jokes[i]}
			s.Emit(ctx, t)
			rr.Turns = append(rr.Turns, t)
		}

		judgment := JudgmentPrompt(names, jokes)
		verdict, err := d.Judge.Ask(ctx, judgment)
		if err != nil {
			return results, s.Fail(round, fmt.Errorf("%s: %w", d.Judge.Name(), err))
		}

		s.Reporter().Heading("Jury Decision:")
		s.Reporter().Note(verdict + "\n")
		t := Turn{Round: round, Speaker: d.Judge.Name(), Role: RoleJudge, Prompt: judgment, Text: verdict}
		s.record(ctx, t)
		rr.Turns = append(rr.Turns, t)

		results = append(results, rr)
	}
	return results, nil
}

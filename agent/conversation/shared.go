package conversation

import (
	"context"
	"fmt"

	"github.com/BaSui01/roundtable/agent"
	"go.uber.org/zap"
)

// SharedHistory lets agents take turns in list order. Each agent speaks from
// its own transcript; its reply is then heard by every other agent, so all
// transcripts carry the whole conversation.
type SharedHistory struct {
	Agents []*agent.Agent
	Rounds int
}

// Run executes all rounds. Rounds are strictly sequential.
func (d *SharedHistory) Run(ctx context.Context, s *Session) ([]RoundResult, error) {
	if len(d.Agents) == 0 {
		return nil, ErrNoAgents
	}
	if d.Rounds < 0 {
		return nil, ErrInvalidRounds
	}
	s.Logger().Info("shared-history run started",
		zap.Int("agents", len(d.Agents)),
		zap.Int("rounds", d.Rounds),
	)

	results := make([]RoundResult, 0, d.Rounds)
	for round := 1; round <= d.Rounds; round++ {
		s.StartRound(round)
		rr := RoundResult{Round: round}

		for _, speaker := range d.Agents {
			reply, err := speaker.Act(ctx)
			if err != nil {
				return results, s.Fail(round, fmt.Errorf("%s: %w", speaker.Name(), err))
			}
			t := Turn{Round: round, Speaker: speaker.Name(), Role: RoleParticipant, Text: reply}
			s.Emit(ctx, t)
			rr.Turns = append(rr.Turns, t)

			Broadcast(d.Agents, speaker, reply)
		}
		results = append(results, rr)
	}
	return results, nil
}

// Broadcast makes every agent except speaker hear reply.
func Broadcast(agents []*agent.Agent, speaker *agent.Agent, reply string) {
	for _, other := range agents {
		if other == speaker {
			continue
		}
		other.Hear(speaker.Name(), reply)
	}
}

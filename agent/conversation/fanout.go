package conversation

import (
	"context"
	"fmt"

	"github.com/BaSui01/roundtable/agent"
	"golang.org/x/sync/errgroup"
)

// AgentFunc produces one agent's contribution to a fan-out.
type AgentFunc func(ctx context.Context, a *agent.Agent) (string, error)

// FanOut calls fn for every agent concurrently and returns the results in
// the order of agents, whatever order the calls complete in. The first
// failure cancels the remaining calls and is returned with the agent name.
func FanOut(ctx context.Context, agents []*agent.Agent, fn AgentFunc) ([]string, error) {
	results := make([]string, len(agents))
	g, gctx := errgroup.WithContext(ctx)
	for i, a := range agents {
		g.Go(func() error {
			out, err := fn(gctx, a)
			if err != nil {
				return fmt.Errorf("%s: %w", a.Name(), err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

package deliberation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/BaSui01/roundtable/agent"
	"github.com/BaSui01/roundtable/agent/conversation"
	"go.uber.org/zap"
)

// DefaultRebuttals is the number of rebuttal exchanges per round.
const DefaultRebuttals = 2

// QuestionPrompt asks the moderator for the round's question.
const QuestionPrompt = "Create a new debate question."

// Debate errors.
var (
	ErrNoModerator   = errors.New("deliberation: no moderator")
	ErrNoCandidates  = errors.New("deliberation: both candidates are required")
	ErrInvalidConfig = errors.New("deliberation: rounds and rebuttals must not be negative")
)

// Coin picks which candidate opens a round. Intn(2) == 0 selects Candidates[0].
type Coin interface {
	Intn(n int) int
}

// FairCoin draws from math/rand/v2.
type FairCoin struct{}

func (FairCoin) Intn(n int) int { return rand.IntN(n) }

// Debate is a scripted debate: per round the moderator asks a question, a
// coin decides who answers first, both answer, they exchange rebuttals, and
// the audience reacts concurrently.
type Debate struct {
	Moderator  *agent.Agent
	Candidates [2]*agent.Agent
	Audience   []*agent.Agent
	Rounds     int
	// Rebuttals is the number of first/second rebuttal pairs; nil means
	// DefaultRebuttals and 0 skips the rebuttals.
	Rebuttals *int
	// Coin defaults to FairCoin.
	Coin Coin
}

func (d *Debate) validate() error {
	if d.Moderator == nil {
		return ErrNoModerator
	}
	if d.Candidates[0] == nil || d.Candidates[1] == nil {
		return ErrNoCandidates
	}
	if d.Rounds < 0 || d.rebuttals() < 0 {
		return ErrInvalidConfig
	}
	return nil
}

func (d *Debate) rebuttals() int {
	if d.Rebuttals == nil {
		return DefaultRebuttals
	}
	return *d.Rebuttals
}

// RebuttalCount returns n as a Debate.Rebuttals value.
func RebuttalCount(n int) *int { return &n }

func (d *Debate) coin() Coin {
	if d.Coin == nil {
		return FairCoin{}
	}
	return d.Coin
}

// Order returns the round's (first, second) candidates.
func (d *Debate) Order() (first, second *agent.Agent) {
	if d.coin().Intn(2) == 0 {
		return d.Candidates[0], d.Candidates[1]
	}
	return d.Candidates[1], d.Candidates[0]
}

// OpeningPrompt is what the first candidate answers.
func OpeningPrompt(moderator, question string) string {
	return fmt.Sprintf("%s: %s\nPlease give a short and crisp answer.", moderator, question)
}

// ResponsePrompt is what the second candidate answers, quoting the first.
func ResponsePrompt(moderator, question, first, firstAnswer string) string {
	return fmt.Sprintf("%s: %s\n%s answered: %s\nNow it's your turn. Please keep it short and crisp.",
		moderator, question, first, firstAnswer)
}

// RebuttalPrompt asks a candidate to answer the other's last statement.
func RebuttalPrompt(other, said string) string {
	return fmt.Sprintf("%s said: %s\nRespond to their points. Please keep it short and crisp.", other, said)
}

// AudiencePrompt lists every candidate statement of the round in speaking order.
func AudiencePrompt(statements []conversation.Turn) string {
	var b strings.Builder
	b.WriteString("Here are the responses from the candidates:\n")
	for _, t := range statements {
		fmt.Fprintf(&b, "%s: %s\n", t.Speaker, t.Text)
	}
	b.WriteString("Who do you think won this round and why?")
	return b.String()
}

// Run executes all rounds. On failure the completed rounds are returned
// together with the error.
func (d *Debate) Run(ctx context.Context, s *conversation.Session) ([]conversation.RoundResult, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	s.Logger().Info("debate started",
		zap.String("moderator", d.Moderator.Name()),
		zap.String("candidate_a", d.Candidates[0].Name()),
		zap.String("candidate_b", d.Candidates[1].Name()),
		zap.Int("audience", len(d.Audience)),
		zap.Int("rounds", d.Rounds),
		zap.Int("rebuttals", d.rebuttals()),
	)

	results := make([]conversation.RoundResult, 0, d.Rounds)
	for round := 1; round <= d.Rounds; round++ {
		s.StartRound(round)
		rr, err := d.round(ctx, s, round)
		if err != nil {
			return results, s.Fail(round, err)
		}
		results = append(results, rr)
	}
	return results, nil
}

func (d *Debate) round(ctx context.Context, s *conversation.Session, round int) (conversation.RoundResult, error) {
	rr := conversation.RoundResult{Round: round}
	mod := d.Moderator.Name()
	rep := s.Reporter()

	// speak runs a Respond turn and emits it.
	speak := func(a *agent.Agent, role, prompt string) (conversation.Turn, error) {
		text, err := a.Respond(ctx, prompt)
		if err != nil {
			return conversation.Turn{}, fmt.Errorf("%s: %w", a.Name(), err)
		}
		t := conversation.Turn{Round: round, Speaker: a.Name(), Role: role, Prompt: prompt, Text: text}
		s.Emit(ctx, t)
		rr.Turns = append(rr.Turns, t)
		return t, nil
	}

	q, err := speak(d.Moderator, conversation.RoleModerator, QuestionPrompt)
	if err != nil {
		return rr, err
	}

	first, second := d.Order()
	s.Logger().Debug("speaking order", zap.Int("round", round), zap.String("first", first.Name()))

	rep.Heading(fmt.Sprintf("%s: %s, you are the first to answer.", mod, first.Name()))
	opening, err := speak(first, conversation.RoleCandidate, OpeningPrompt(mod, q.Text))
	if err != nil {
		return rr, err
	}

	rep.Heading(fmt.Sprintf("%s: %s, your response.", mod, second.Name()))
	last, err := speak(second, conversation.RoleCandidate, ResponsePrompt(mod, q.Text, first.Name(), opening.Text))
	if err != nil {
		return rr, err
	}
	statements := []conversation.Turn{opening, last}

	for i := 0; i < d.rebuttals(); i++ {
		rep.Heading(fmt.Sprintf("%s: %s, your rebuttal.", mod, first.Name()))
		r1, err := speak(first, conversation.RoleCandidate, RebuttalPrompt(second.Name(), last.Text))
		if err != nil {
			return rr, err
		}
		rep.Heading(fmt.Sprintf("%s: %s, your rebuttal.", mod, second.Name()))
		r2, err := speak(second, conversation.RoleCandidate, RebuttalPrompt(first.Name(), r1.Text))
		if err != nil {
			return rr, err
		}
		statements = append(statements, r1, r2)
		last = r2
	}

	if len(d.Audience) == 0 {
		return rr, nil
	}

	prompt := AudiencePrompt(statements)
	reactions, err := conversation.FanOut(ctx, d.Audience, func(ctx context.Context, a *agent.Agent) (string, error) {
		return a.Respond(ctx, prompt)
	})
	if err != nil {
		return rr, err
	}

	rep.Heading("Audience Decisions:")
	rep.Note("")
	for i, a := range d.Audience {
		t := conversation.Turn{Round: round, Speaker: a.Name(), Role: conversation.RoleAudience, Prompt: prompt, Text: reactions[i]}
		s.Emit(ctx, t)
		rep.Note("")
		rr.Turns = append(rr.Turns, t)
	}
	rep.Note("\n")
	return rr, nil
}
